package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smartstock/backend-go/internal/domain"
)

func alertFixtures() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Rice", Stock: 5, Price: 135, MinStock: 20, TargetStock: 50},     // critical
		{ID: "2", Name: "Oil", Stock: 48, Price: 14.5, MinStock: 30, TargetStock: 100},   // normal
		{ID: "3", Name: "Tuna", Stock: 12, Price: 5.2, MinStock: 20, TargetStock: 50},    // preventive
		{ID: "4", Name: "Pasta", Stock: 240, Price: 2.8, MinStock: 30, TargetStock: 150}, // excess
	}
}

func emptySuppression() Suppression {
	return Suppression{IgnoredUntil: map[string]int64{}, Read: map[string]struct{}{}}
}

func TestDeriveAlertsSeverityOrderAndIDs(t *testing.T) {
	now := time.Now()
	alerts := DeriveAlerts(alertFixtures(), DefaultThresholds(), emptySuppression(), now)

	require.Len(t, alerts, 3)

	require.Equal(t, "critica-1", alerts[0].ID)
	require.Equal(t, domain.AlertCritical, alerts[0].Severity)
	require.Equal(t, 45, alerts[0].ActionRequired)

	require.Equal(t, "preventiva-3", alerts[1].ID)
	require.Equal(t, domain.AlertPreventive, alerts[1].Severity)
	require.Equal(t, 38, alerts[1].ActionRequired)

	require.Equal(t, "exceso-4", alerts[2].ID)
	require.Equal(t, domain.AlertExcess, alerts[2].Severity)
	require.Zero(t, alerts[2].ActionRequired, "excess alerts are informational")
}

func TestDeriveAlertsOneAlertPerProduct(t *testing.T) {
	// Critical implies low numerically, but only the critical alert may
	// appear for the product.
	now := time.Now()
	alerts := DeriveAlerts(alertFixtures(), DefaultThresholds(), emptySuppression(), now)

	seen := map[string]int{}
	for _, a := range alerts {
		seen[a.ProductID]++
	}
	for id, n := range seen {
		require.Equal(t, 1, n, "product %s has %d alerts", id, n)
	}
}

func TestDeriveAlertsIdempotent(t *testing.T) {
	now := time.Now()
	first := DeriveAlerts(alertFixtures(), DefaultThresholds(), emptySuppression(), now)
	second := DeriveAlerts(alertFixtures(), DefaultThresholds(), emptySuppression(), now)

	require.Equal(t, first, second)
}

func TestDeriveAlertsSuppression(t *testing.T) {
	now := time.Now()

	sup := emptySuppression()
	sup.IgnoredUntil["1"] = now.Add(IgnoreWindow).UnixMilli()
	sup.Read["3"] = struct{}{}

	alerts := DeriveAlerts(alertFixtures(), DefaultThresholds(), sup, now)
	require.Len(t, alerts, 1)
	require.Equal(t, "exceso-4", alerts[0].ID)

	// Suppression expires lazily: one instant past the ignore window the
	// critical product is back.
	later := now.Add(IgnoreWindow + time.Millisecond)
	alerts = DeriveAlerts(alertFixtures(), DefaultThresholds(), sup, later)
	require.Equal(t, "critica-1", alerts[0].ID)

	// A zeroed entry does not suppress.
	sup.IgnoredUntil["4"] = 0
	alerts = DeriveAlerts(alertFixtures(), DefaultThresholds(), sup, later)
	require.Len(t, alerts, 2)
}
