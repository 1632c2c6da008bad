package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/engine"
)

func newTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seq := 0
	s := New(
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	return s, &now
}

func intPtr(v int) *int { return &v }

func TestUpdateProductBoundaryCrossingFiresOnce(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.AddProduct(domain.Product{Name: "Rice", Stock: 10, MinStock: 20, TargetStock: 50})

	// 10 -> 7 crosses below 20*0.4=8: exactly one critical event.
	_, ev, ok := s.UpdateProduct(p.ID, domain.ProductUpdate{Stock: intPtr(7)})
	require.True(t, ok)
	require.NotNil(t, ev)
	require.Equal(t, domain.ActionCriticalReached, ev.Action)
	require.Equal(t, domain.SeverityCritical, ev.Severity)
	require.Equal(t, 7, ev.StockLevel)
	require.Equal(t, "Rice", ev.ProductName)

	// 7 -> 6 stays inside the band: info, not another critical.
	_, ev, ok = s.UpdateProduct(p.ID, domain.ProductUpdate{Stock: intPtr(6)})
	require.True(t, ok)
	require.NotNil(t, ev)
	require.Equal(t, domain.ActionInfo, ev.Action)

	// Unchanged stock logs nothing.
	_, ev, ok = s.UpdateProduct(p.ID, domain.ProductUpdate{Stock: intPtr(6)})
	require.True(t, ok)
	require.Nil(t, ev)

	// Non-stock edits never log.
	name := "Rice Premium"
	_, ev, ok = s.UpdateProduct(p.ID, domain.ProductUpdate{Name: &name})
	require.True(t, ok)
	require.Nil(t, ev)

	events := s.Events(false)
	criticals := 0
	for _, e := range events {
		if e.Action == domain.ActionCriticalReached {
			criticals++
		}
	}
	require.Equal(t, 1, criticals)
}

func TestUpdateProductUnknownIDIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.Events(true)

	_, ev, ok := s.UpdateProduct("missing", domain.ProductUpdate{Stock: intPtr(1)})
	require.False(t, ok)
	require.Nil(t, ev)
	require.Equal(t, before, s.Events(true))

	_, ev, ok = s.AddStock("missing", 5, true)
	require.False(t, ok)
	require.Nil(t, ev)
}

func TestAddStockLogsAndClearsSuppression(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.AddProduct(domain.Product{Name: "Rice", Stock: 5, MinStock: 20, TargetStock: 50})

	_, ok := s.IgnoreAlert(p.ID)
	require.True(t, ok)
	require.Empty(t, alertsFor(s, p.ID), "ignored product should be suppressed")

	got, ev, ok := s.AddStock(p.ID, 45, true)
	require.True(t, ok)
	require.Equal(t, 50, got.Stock)
	require.Equal(t, domain.ActionOrderGenerated, ev.Action)
	require.Equal(t, domain.SeverityInfo, ev.Severity)
	require.Contains(t, ev.Message, "+45")

	// Restock zeroes the suppression entry; the product is fully stocked
	// now so it has no alert, but a fresh drop must alert immediately.
	_, _, ok = s.UpdateProduct(p.ID, domain.ProductUpdate{Stock: intPtr(4)})
	require.True(t, ok)
	require.NotEmpty(t, alertsFor(s, p.ID))

	// Plain ingress logs info.
	_, ev, ok = s.AddStock(p.ID, 1, false)
	require.True(t, ok)
	require.Equal(t, domain.ActionInfo, ev.Action)
}

func alertsFor(s *Store, productID string) []domain.ManagementAlert {
	match := make([]domain.ManagementAlert, 0)
	for _, a := range s.ActiveAlerts() {
		if a.ProductID == productID {
			match = append(match, a)
		}
	}
	return match
}

func TestIgnoreAlertExpires(t *testing.T) {
	s, now := newTestStore(t)
	p := s.AddProduct(domain.Product{Name: "Rice", Stock: 5, MinStock: 20, TargetStock: 50})

	ev, ok := s.IgnoreAlert(p.ID)
	require.True(t, ok)
	require.Equal(t, domain.ActionIgnored, ev.Action)
	require.Empty(t, alertsFor(s, p.ID))

	// One instant past the window the alert surfaces again.
	*now = now.Add(engine.IgnoreWindow + time.Millisecond)
	require.NotEmpty(t, alertsFor(s, p.ID))
}

func TestMarkReadAndMarkAllRead(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.AddProduct(domain.Product{Name: "A", Stock: 1, MinStock: 20, TargetStock: 50})
	b := s.AddProduct(domain.Product{Name: "B", Stock: 2, MinStock: 20, TargetStock: 50})

	s.MarkAlertRead(a.ID)
	require.Empty(t, alertsFor(s, a.ID))
	require.NotEmpty(t, alertsFor(s, b.ID))

	s.MarkAllRead()
	require.Empty(t, s.ActiveAlerts())

	s.ClearRead()
	require.NotEmpty(t, alertsFor(s, a.ID))
}

func TestDeleteProductCascades(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.AddProduct(domain.Product{Name: "Rice", Stock: 10, MinStock: 20, TargetStock: 50})
	other := s.AddProduct(domain.Product{Name: "Oil", Stock: 40, MinStock: 30, TargetStock: 100})

	s.UpdateProduct(p.ID, domain.ProductUpdate{Stock: intPtr(7)})
	s.UpdateProduct(other.ID, domain.ProductUpdate{Stock: intPtr(39)})
	s.IgnoreAlert(p.ID)
	s.MarkAlertRead(p.ID)

	require.True(t, s.DeleteProduct(p.ID))
	require.False(t, s.DeleteProduct(p.ID))

	_, found := s.Product(p.ID)
	require.False(t, found)

	for _, ev := range s.Events(true) {
		require.NotEqual(t, p.ID, ev.ProductID)
	}
	require.Empty(t, alertsFor(s, p.ID))
}

func TestTransitionRuleFollowsConfiguredThreshold(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.AddProduct(domain.Product{Name: "Rice", Stock: 12, MinStock: 20, TargetStock: 50})

	half := 0.5
	s.ApplyConfig(domain.BusinessConfigUpdate{CriticalThreshold: &half})

	// Band is now below 10, so 12 -> 9 is a critical crossing.
	_, ev, ok := s.UpdateProduct(p.ID, domain.ProductUpdate{Stock: intPtr(9)})
	require.True(t, ok)
	require.Equal(t, domain.ActionCriticalReached, ev.Action)
}

func TestApplyConfigReturnsPrevForRollback(t *testing.T) {
	s, _ := newTestStore(t)

	name := "Bodega Carmencita"
	prev, next := s.ApplyConfig(domain.BusinessConfigUpdate{BusinessName: &name})
	require.Equal(t, "SmartStock Pro", prev.BusinessName)
	require.Equal(t, name, next.BusinessName)
	require.Equal(t, name, s.Config().BusinessName)

	s.SetConfig(prev)
	require.Equal(t, "SmartStock Pro", s.Config().BusinessName)
}

func TestSummaryCounts(t *testing.T) {
	s, _ := newTestStore(t)
	s.ReplaceProducts([]domain.Product{
		{ID: "1", Name: "Critical", Stock: 5, Price: 10, MinStock: 20, TargetStock: 50},
		{ID: "2", Name: "Low", Stock: 12, Price: 2, MinStock: 20, TargetStock: 50},
		{ID: "3", Name: "Excess", Stock: 240, Price: 1, MinStock: 30, TargetStock: 150},
		{ID: "4", Name: "Normal", Stock: 48, Price: 3, MinStock: 30, TargetStock: 100},
	})

	sum := s.Summary()
	require.Equal(t, 4, sum.ProductCount)
	require.Equal(t, 305, sum.TotalStock)
	require.InDelta(t, 5*10+12*2+240*1+48*3.0, sum.TotalValue, 0.001)
	require.Equal(t, 1, sum.CriticalCount)
	require.Equal(t, 1, sum.LowCount)
	require.Equal(t, 1, sum.ExcessCount)
	require.Equal(t, 3, sum.ActiveAlerts)
}

func TestResetRestoresDemoState(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetOwner("owner-1")
	p := s.AddProduct(domain.Product{Name: "Extra", Stock: 1, MinStock: 5, TargetStock: 10})
	s.UpdateProduct(p.ID, domain.ProductUpdate{Stock: intPtr(0)})
	s.IgnoreAlert(p.ID)

	s.Reset()

	require.Empty(t, s.OwnerID())
	require.Len(t, s.Products(), len(domain.DemoInventory()))
	require.Empty(t, s.Events(true))
	require.Equal(t, domain.DefaultBusinessConfig(""), s.Config())
}

func TestForecastsUseRetainedEvents(t *testing.T) {
	s, now := newTestStore(t)
	s.ReplaceProducts([]domain.Product{{ID: "p1", Name: "Rice", Stock: 65, Price: 135, MinStock: 20, TargetStock: 100}})

	day := func(n int) int64 { return now.AddDate(0, 0, -n).UnixMilli() }
	s.ReplaceEvents([]domain.StockEvent{
		{ID: "e4", Timestamp: day(0), ProductID: "p1", StockLevel: 65},
		{ID: "e3", Timestamp: day(1), ProductID: "p1", StockLevel: 80},
		{ID: "e2", Timestamp: day(2), ProductID: "p1", StockLevel: 80},
		{ID: "e1", Timestamp: day(3), ProductID: "p1", StockLevel: 100},
	})

	forecasts := s.Forecasts()
	require.Len(t, forecasts, 1)
	f := forecasts[0]
	require.Equal(t, 2, f.RotationCount)
	require.InDelta(t, 35.0/3.0, f.DailyVelocity, 0.001)
	require.Equal(t, 6, f.DaysToEmpty)
	require.False(t, f.IsStagnant)
	require.Equal(t, 35, f.RecommendedOrder)
	require.InDelta(t, 35*135.0, f.EstimatedInvest, 0.001)
}
