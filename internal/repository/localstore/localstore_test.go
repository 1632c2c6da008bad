package localstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smartstock/backend-go/internal/domain"
)

func TestRoundTripAndClear(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	// Missing files read as empty, not as errors.
	products, err := s.GetProducts()
	require.NoError(t, err)
	require.Empty(t, products)

	want := []domain.Product{
		{ID: "1", Name: "Saco de Arroz", Category: "Abarrotes", Stock: 5, Price: 135, MinStock: 20, TargetStock: 50, Unit: "UND"},
	}
	require.NoError(t, s.SetProducts(want))

	got, err := s.GetProducts()
	require.NoError(t, err)
	require.Equal(t, want, got)

	events := []domain.StockEvent{
		{ID: "e1", Timestamp: 1700000000000, ProductID: "1", ProductName: "Saco de Arroz", StockLevel: 5, Action: domain.ActionCriticalReached, Severity: domain.SeverityCritical, Message: "CRITICAL! Stock dropped to 5"},
	}
	require.NoError(t, s.SetEvents(events))

	gotEvents, err := s.GetEvents()
	require.NoError(t, err)
	require.Equal(t, events, gotEvents)

	require.NoError(t, s.Clear())
	products, err = s.GetProducts()
	require.NoError(t, err)
	require.Empty(t, products)
	gotEvents, err = s.GetEvents()
	require.NoError(t, err)
	require.Empty(t, gotEvents)

	// Clearing an already-empty store is fine.
	require.NoError(t, s.Clear())
}

func TestSetReplacesPreviousSnapshot(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.SetProducts([]domain.Product{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, s.SetProducts([]domain.Product{{ID: "3"}}))

	got, err := s.GetProducts()
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "3", got[0].ID)
}
