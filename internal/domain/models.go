// internal/domain/models.go
package domain

// Product represents a tracked catalog item
type Product struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Category    string  `json:"category" db:"category"`
	Stock       int     `json:"stock" db:"stock"`
	Price       float64 `json:"price" db:"price"`
	MinStock    int     `json:"min_stock" db:"min_stock"`       // reorder point
	TargetStock int     `json:"target_stock" db:"target_stock"` // optimal stock level
	Unit        string  `json:"unit" db:"unit"`
}

// DefaultUnit is applied when a product is created without a unit label.
const DefaultUnit = "UND"

// ProductUpdate carries a partial product edit; nil fields are left untouched
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	Price       *float64 `json:"price"`
	MinStock    *int     `json:"min_stock"`
	TargetStock *int     `json:"target_stock"`
	Unit        *string  `json:"unit"`
}

// StockEventAction identifies why an audit event was recorded
type StockEventAction string

const (
	ActionCriticalReached StockEventAction = "critical_reached"
	ActionWarningReached  StockEventAction = "warning_reached"
	ActionOrderGenerated  StockEventAction = "order_generated"
	ActionIgnored         StockEventAction = "ignored"
	ActionArchived        StockEventAction = "archived"
	ActionInfo            StockEventAction = "info"
)

// EventSeverity is the severity band recorded on an audit event
type EventSeverity string

const (
	SeverityCritical EventSeverity = "critical"
	SeverityWarning  EventSeverity = "warning"
	SeverityInfo     EventSeverity = "info"
)

// Severity returns the severity band implied by the action.
func (a StockEventAction) Severity() EventSeverity {
	switch a {
	case ActionCriticalReached:
		return SeverityCritical
	case ActionWarningReached:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// StockEvent is an immutable audit record of a stock-affecting action.
// Events are never mutated after the fact except to flip IsArchived.
type StockEvent struct {
	ID          string           `json:"id" db:"id"`
	Timestamp   int64            `json:"timestamp" db:"timestamp"` // epoch millis
	ProductID   string           `json:"product_id" db:"product_id"`
	ProductName string           `json:"product_name" db:"product_name"` // snapshot at event time
	StockLevel  int              `json:"stock_level" db:"stock_level"`   // post-mutation value
	Action      StockEventAction `json:"action" db:"action"`
	Severity    EventSeverity    `json:"severity" db:"severity"`
	Message     string           `json:"message" db:"message"`
	IsArchived  bool             `json:"is_archived" db:"is_archived"`
}

// BusinessConfig is the per-owner business profile and threshold configuration
type BusinessConfig struct {
	OwnerID           string  `json:"owner_id" db:"owner_id"`
	BusinessName      string  `json:"business_name" db:"business_name"`
	CurrencySymbol    string  `json:"currency_symbol" db:"currency_symbol"`
	CriticalThreshold float64 `json:"critical_threshold" db:"critical_threshold"` // fraction of minStock, [0.05, 0.5]
	LowThreshold      float64 `json:"low_threshold" db:"low_threshold"`           // fraction of minStock, [0.5, 2.0]
	LogoInitials      string  `json:"logo_initials" db:"logo_initials"`
}

// BusinessConfigUpdate carries a partial settings edit
type BusinessConfigUpdate struct {
	BusinessName      *string  `json:"business_name"`
	CurrencySymbol    *string  `json:"currency_symbol"`
	CriticalThreshold *float64 `json:"critical_threshold"`
	LowThreshold      *float64 `json:"low_threshold"`
	LogoInitials      *string  `json:"logo_initials"`
}

// DefaultBusinessConfig returns the engine-default profile for an owner.
func DefaultBusinessConfig(ownerID string) BusinessConfig {
	return BusinessConfig{
		OwnerID:           ownerID,
		BusinessName:      "SmartStock Pro",
		CurrencySymbol:    "S/",
		CriticalThreshold: 0.4,
		LowThreshold:      1.0,
		LogoInitials:      "SP",
	}
}

// AlertSeverity ranks a derived management alert
type AlertSeverity string

const (
	AlertCritical   AlertSeverity = "critical"
	AlertPreventive AlertSeverity = "preventive"
	AlertExcess     AlertSeverity = "excess"
)

// ManagementAlert is a derived recommendation; it is recomputed on every
// read and never persisted.
type ManagementAlert struct {
	ID             string        `json:"id"`
	Severity       AlertSeverity `json:"severity"`
	ProductID      string        `json:"product_id"`
	ProductName    string        `json:"product_name"`
	Stock          int           `json:"stock"`
	Message        string        `json:"message"`
	ActionRequired int           `json:"action_required"` // suggested restock qty, 0 for excess
}

// ProductForecast is the velocity analysis for one product over the
// trailing event window.
type ProductForecast struct {
	Product          Product `json:"product"`
	DailyVelocity    float64 `json:"daily_velocity"`
	RotationCount    int     `json:"rotation_count"`
	DaysToEmpty      int     `json:"days_to_empty"` // -1 when velocity is zero
	IsStagnant       bool    `json:"is_stagnant"`
	RecommendedOrder int     `json:"recommended_order"`
	EstimatedInvest  float64 `json:"estimated_investment"`
}

// ReorderReport aggregates the products that currently need restocking
type ReorderReport struct {
	Items           []ProductForecast `json:"items"`
	TotalInvestment float64           `json:"total_investment"`
	GeneratedAt     int64             `json:"generated_at"`
}

// DashboardSummary is the KPI card payload for the inventory dashboard
type DashboardSummary struct {
	TotalStock    int     `json:"total_stock"`
	TotalValue    float64 `json:"total_value"`
	ProductCount  int     `json:"product_count"`
	CriticalCount int     `json:"critical_count"`
	LowCount      int     `json:"low_count"`
	ExcessCount   int     `json:"excess_count"`
	ActiveAlerts  int     `json:"active_alerts"`
}
