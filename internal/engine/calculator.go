package engine

import "github.com/smartstock/backend-go/internal/domain"

// Engine default thresholds, used when the owner has no stored
// business configuration.
const (
	DefaultCriticalThreshold = 0.4
	DefaultLowThreshold      = 1.0

	// ExcessMultiplier is deliberately not owner-configurable.
	ExcessMultiplier = 1.5

	fallbackMinStock    = 20
	fallbackTargetStock = 100
)

// Thresholds carries the owner-tunable classification fractions.
type Thresholds struct {
	Critical float64 // fraction of minStock below which stock is critical
	Low      float64 // multiplier of minStock at/below which stock is low
}

// DefaultThresholds returns the engine defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{Critical: DefaultCriticalThreshold, Low: DefaultLowThreshold}
}

// ThresholdsFrom maps a business configuration to classifier thresholds,
// falling back to engine defaults for absent config or zero values.
func ThresholdsFrom(cfg *domain.BusinessConfig) Thresholds {
	t := DefaultThresholds()
	if cfg == nil {
		return t
	}
	if cfg.CriticalThreshold > 0 {
		t.Critical = cfg.CriticalThreshold
	}
	if cfg.LowThreshold > 0 {
		t.Low = cfg.LowThreshold
	}
	return t
}

func minStockOf(p domain.Product) float64 {
	if p.MinStock <= 0 {
		return fallbackMinStock
	}
	return float64(p.MinStock)
}

func targetStockOf(p domain.Product) float64 {
	if p.TargetStock <= 0 {
		return fallbackTargetStock
	}
	return float64(p.TargetStock)
}

// IsCritical reports whether stock sits below the critical fraction of the
// product's own reorder point.
func IsCritical(p domain.Product, t Thresholds) bool {
	return float64(p.Stock) < minStockOf(p)*t.Critical
}

// IsLowStock reports whether stock is at or below the reorder band.
// Critical products are low by construction; callers must check
// IsCritical first and treat low as the non-critical preventive band.
func IsLowStock(p domain.Product, t Thresholds) bool {
	return float64(p.Stock) <= minStockOf(p)*t.Low
}

// IsExcess reports over-stock beyond the target level.
func IsExcess(p domain.Product) bool {
	return float64(p.Stock) > targetStockOf(p)*ExcessMultiplier
}

// RestockSuggestion is the quantity needed to reach the target stock level.
func RestockSuggestion(p domain.Product) int {
	if s := p.TargetStock - p.Stock; s > 0 {
		return s
	}
	return 0
}

// EstimatedInvestment projects the cash needed to execute the suggested
// restock order.
func EstimatedInvestment(p domain.Product) float64 {
	return float64(RestockSuggestion(p)) * p.Price
}

// StatusOf classifies a product into the 3-way table status, priority
// critical > low > normal. Excess is reported separately.
func StatusOf(p domain.Product, t Thresholds) domain.StockStatus {
	if IsCritical(p, t) {
		return domain.StatusCritical
	}
	if IsLowStock(p, t) {
		return domain.StatusReorder
	}
	return domain.StatusNormal
}

// TotalStock sums units across the collection.
func TotalStock(products []domain.Product) int {
	total := 0
	for _, p := range products {
		total += p.Stock
	}
	return total
}

// TotalValue sums stock valuation across the collection.
func TotalValue(products []domain.Product) float64 {
	total := 0.0
	for _, p := range products {
		total += float64(p.Stock) * p.Price
	}
	return total
}
