package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smartstock/backend-go/internal/domain"
)

func eventAt(productID string, ts time.Time, stockLevel int) domain.StockEvent {
	return domain.StockEvent{
		ID:         productID + ts.String(),
		Timestamp:  ts.UnixMilli(),
		ProductID:  productID,
		StockLevel: stockLevel,
		Action:     domain.ActionInfo,
		Severity:   domain.SeverityInfo,
	}
}

func TestEstimateVelocityRollingWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	p := domain.Product{ID: "p1", Stock: 65, MinStock: 20, TargetStock: 100}
	events := []domain.StockEvent{
		eventAt("p1", day(3), 100),
		eventAt("p1", day(2), 80),
		eventAt("p1", day(1), 80), // no change, not a rotation
		eventAt("p1", day(0), 65),
		eventAt("p2", day(1), 10), // other product, ignored
	}

	v := EstimateVelocity(p, events, now)

	require.Equal(t, 2, v.RotationCount)
	require.InDelta(t, 35.0/3.0, v.DailyRate, 0.001)
	require.Equal(t, 6, v.DaysToEmpty) // round(65 / 11.67)
	require.False(t, v.IsStagnant)
}

func TestEstimateVelocityIgnoresRestocks(t *testing.T) {
	now := time.Now()
	p := domain.Product{ID: "p1", Stock: 90}
	events := []domain.StockEvent{
		eventAt("p1", now.Add(-48*time.Hour), 50),
		eventAt("p1", now.Add(-24*time.Hour), 100), // restock, not negative consumption
		eventAt("p1", now.Add(-1*time.Hour), 90),
	}

	v := EstimateVelocity(p, events, now)

	require.Equal(t, 1, v.RotationCount)
	require.InDelta(t, 10.0/(47.0/24.0), v.DailyRate, 0.01)
}

func TestEstimateVelocityDegenerateCases(t *testing.T) {
	now := time.Now()
	p := domain.Product{ID: "p1", Stock: 40}

	// Fewer than two events in the window.
	v := EstimateVelocity(p, []domain.StockEvent{eventAt("p1", now.Add(-time.Hour), 40)}, now)
	require.Zero(t, v.DailyRate)
	require.Equal(t, -1, v.DaysToEmpty)
	require.True(t, v.IsStagnant)

	// Events outside the 7-day window are excluded.
	v = EstimateVelocity(p, []domain.StockEvent{
		eventAt("p1", now.AddDate(0, 0, -10), 100),
		eventAt("p1", now.AddDate(0, 0, -9), 60),
	}, now)
	require.Zero(t, v.DailyRate)
	require.True(t, v.IsStagnant)

	// Zero elapsed time between first and last event.
	ts := now.Add(-time.Hour)
	v = EstimateVelocity(p, []domain.StockEvent{eventAt("p1", ts, 50), eventAt("p1", ts, 40)}, now)
	require.Zero(t, v.DailyRate)

	// Stagnant only applies while stock remains.
	empty := domain.Product{ID: "p1", Stock: 0}
	v = EstimateVelocity(empty, nil, now)
	require.False(t, v.IsStagnant)
}

func TestEstimateVelocitySortsUnorderedEvents(t *testing.T) {
	now := time.Now()
	p := domain.Product{ID: "p1", Stock: 30}
	events := []domain.StockEvent{
		eventAt("p1", now.Add(-1*time.Hour), 30),
		eventAt("p1", now.Add(-49*time.Hour), 60),
		eventAt("p1", now.Add(-25*time.Hour), 40),
	}

	v := EstimateVelocity(p, events, now)

	require.Equal(t, 2, v.RotationCount)
	require.InDelta(t, 30.0/2.0, v.DailyRate, 0.01)
}
