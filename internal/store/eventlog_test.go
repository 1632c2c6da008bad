package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/engine"
)

func TestEventLogRetentionCap(t *testing.T) {
	var log EventLog
	for i := 0; i < 105; i++ {
		log.Append(domain.StockEvent{ID: fmt.Sprintf("ev-%d", i), Timestamp: int64(i)})
	}

	events := log.List(true)
	require.Len(t, events, RetentionCap)

	// Newest first; the five oldest were evicted.
	require.Equal(t, "ev-104", events[0].ID)
	require.Equal(t, "ev-5", events[len(events)-1].ID)
}

func TestEventLogArchiveIsNonDestructive(t *testing.T) {
	var log EventLog
	log.Append(domain.StockEvent{ID: "a"})
	log.Append(domain.StockEvent{ID: "b"})

	log.ArchiveAll()

	require.Empty(t, log.List(false))
	archived := log.List(true)
	require.Len(t, archived, 2)
	for _, ev := range archived {
		require.True(t, ev.IsArchived)
	}

	log.Clear()
	require.Empty(t, log.List(true))
	require.Zero(t, log.Len())
}

func TestEventLogReplaceEnforcesCap(t *testing.T) {
	snapshot := make([]domain.StockEvent, 120)
	for i := range snapshot {
		snapshot[i] = domain.StockEvent{ID: fmt.Sprintf("r-%d", i)}
	}

	var log EventLog
	log.Replace(snapshot)
	require.Equal(t, RetentionCap, log.Len())
	require.Equal(t, "r-0", log.List(true)[0].ID)
}

func TestClassifyTransitionEdgeTriggered(t *testing.T) {
	th := engine.DefaultThresholds()

	// minStock=20: critical band below 8, warning band at or below 20.
	action, _ := classifyTransition(10, 7, 20, th)
	require.Equal(t, domain.ActionCriticalReached, action)

	// Already inside the critical band: no second critical event.
	action, msg := classifyTransition(7, 6, 20, th)
	require.Equal(t, domain.ActionInfo, action)
	require.Contains(t, msg, "-1")

	action, _ = classifyTransition(25, 18, 20, th)
	require.Equal(t, domain.ActionWarningReached, action)

	// Crossing straight through the warning band into critical reports
	// the worse band.
	action, _ = classifyTransition(25, 5, 20, th)
	require.Equal(t, domain.ActionCriticalReached, action)

	// Upward movement is never a boundary crossing.
	action, msg = classifyTransition(6, 30, 20, th)
	require.Equal(t, domain.ActionInfo, action)
	require.Contains(t, msg, "+24")
}

func TestClassifyTransitionUsesConfiguredThreshold(t *testing.T) {
	// With criticalThreshold=0.5 and minStock=20 the band starts below 10.
	th := engine.Thresholds{Critical: 0.5, Low: 1.0}

	action, _ := classifyTransition(12, 9, 20, th)
	require.Equal(t, domain.ActionCriticalReached, action)

	// Same mutation under the default 0.4 band is only a warning crossing
	// if it crosses minStock, otherwise info.
	action, _ = classifyTransition(12, 9, 20, engine.DefaultThresholds())
	require.Equal(t, domain.ActionInfo, action)
}

func TestClassifyTransitionMinStockFallback(t *testing.T) {
	// Zero minStock behaves like the classifier's fallback of 20.
	action, _ := classifyTransition(10, 7, 0, engine.DefaultThresholds())
	require.Equal(t, domain.ActionCriticalReached, action)
}
