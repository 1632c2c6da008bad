package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/smartstock/backend-go/internal/domain"
)

// IgnoreWindow is how long an ignored alert stays suppressed.
const IgnoreWindow = 24 * time.Hour

// Alert id tags. Kept stable so repeated derivations are idempotent and
// consumers can deduplicate by id.
const (
	criticalTag   = "critica"
	preventiveTag = "preventiva"
	excessTag     = "exceso"
)

// Suppression is a read-only snapshot of the alert suppression state used
// while deriving alerts: per-product ignore expirations plus the set of
// products whose alerts were marked read this session.
type Suppression struct {
	IgnoredUntil map[string]int64    // productId -> epoch millis; 0 or past = not suppressed
	Read         map[string]struct{} // productIds dismissed until "mark all read" reset
}

// IsSuppressed reports whether the product's alerts are hidden at the
// given instant. Expiry is evaluated lazily here; there is no sweep.
func (s Suppression) IsSuppressed(productID string, now time.Time) bool {
	if until, ok := s.IgnoredUntil[productID]; ok && now.UnixMilli() < until {
		return true
	}
	_, read := s.Read[productID]
	return read
}

// DeriveAlerts scans the collection in iteration order and emits at most
// one alert per product, first match wins: critical, then preventive
// (low), then excess. Critical alerts therefore never co-exist with a
// preventive alert for the same product even though IsCritical implies
// IsLowStock numerically.
func DeriveAlerts(products []domain.Product, t Thresholds, sup Suppression, now time.Time) []domain.ManagementAlert {
	alerts := make([]domain.ManagementAlert, 0)

	for _, p := range products {
		if sup.IsSuppressed(p.ID, now) {
			continue
		}

		switch {
		case IsCritical(p, t):
			alerts = append(alerts, domain.ManagementAlert{
				ID:             fmt.Sprintf("%s-%s", criticalTag, p.ID),
				Severity:       domain.AlertCritical,
				ProductID:      p.ID,
				ProductName:    p.Name,
				Stock:          p.Stock,
				Message:        fmt.Sprintf("Immediate restock: critical level on %s", p.Name),
				ActionRequired: RestockSuggestion(p),
			})
		case IsLowStock(p, t):
			alerts = append(alerts, domain.ManagementAlert{
				ID:             fmt.Sprintf("%s-%s", preventiveTag, p.ID),
				Severity:       domain.AlertPreventive,
				ProductID:      p.ID,
				ProductName:    p.Name,
				Stock:          p.Stock,
				Message:        fmt.Sprintf("%s requires operational attention", p.Name),
				ActionRequired: RestockSuggestion(p),
			})
		case IsExcess(p):
			alerts = append(alerts, domain.ManagementAlert{
				ID:             fmt.Sprintf("%s-%s", excessTag, p.ID),
				Severity:       domain.AlertExcess,
				ProductID:      p.ID,
				ProductName:    p.Name,
				Stock:          p.Stock,
				Message:        fmt.Sprintf("Surplus detected: slow rotation on %s", p.Name),
				ActionRequired: 0,
			})
		}
	}

	// Rank by severity; the stable sort keeps product iteration order
	// inside each band so repeated derivations return identical lists.
	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank(alerts[i].Severity) < severityRank(alerts[j].Severity)
	})

	return alerts
}

func severityRank(s domain.AlertSeverity) int {
	switch s {
	case domain.AlertCritical:
		return 0
	case domain.AlertPreventive:
		return 1
	default:
		return 2
	}
}
