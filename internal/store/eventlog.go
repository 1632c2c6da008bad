package store

import (
	"fmt"

	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/engine"
)

// RetentionCap is the global audit-log retention limit. Oldest entries are
// evicted first, regardless of which product they belong to.
const RetentionCap = 100

// EventLog is the append-only, newest-first audit log. It is owned by the
// Store, which serializes access; the log itself holds no lock.
type EventLog struct {
	events []domain.StockEvent
}

// Append prepends the event and truncates to the retention cap.
func (l *EventLog) Append(ev domain.StockEvent) {
	l.events = append([]domain.StockEvent{ev}, l.events...)
	if len(l.events) > RetentionCap {
		l.events = l.events[:RetentionCap]
	}
}

// List returns a copy of the retained events, newest first. Archived
// entries are excluded unless includeArchived is set.
func (l *EventLog) List(includeArchived bool) []domain.StockEvent {
	out := make([]domain.StockEvent, 0, len(l.events))
	for _, ev := range l.events {
		if ev.IsArchived && !includeArchived {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// ArchiveAll soft-hides every current entry. Nothing is deleted; archived
// events remain visible behind the include-archived filter.
func (l *EventLog) ArchiveAll() {
	for i := range l.events {
		l.events[i].IsArchived = true
	}
}

// Clear irreversibly empties the log.
func (l *EventLog) Clear() {
	l.events = nil
}

// Replace swaps in a remote snapshot, newest first, enforcing the cap.
func (l *EventLog) Replace(events []domain.StockEvent) {
	l.events = append([]domain.StockEvent(nil), events...)
	if len(l.events) > RetentionCap {
		l.events = l.events[:RetentionCap]
	}
}

// Len reports the retained entry count, archived included.
func (l *EventLog) Len() int { return len(l.events) }

// classifyTransition applies the boundary-crossing rule to a stock
// mutation. It is edge-triggered: a critical or warning event fires only
// when the mutation moves stock from a better band into a worse one, so a
// product that stays critical across several small adjustments yields
// plain info events after the first crossing.
func classifyTransition(prev, next int, minStock int, th engine.Thresholds) (domain.StockEventAction, string) {
	m := float64(minStock)
	if minStock <= 0 {
		m = 20
	}
	criticalBand := m * th.Critical

	switch {
	case float64(next) < criticalBand && float64(prev) >= criticalBand:
		return domain.ActionCriticalReached, fmt.Sprintf("CRITICAL! Stock dropped to %d", next)
	case float64(next) <= m && float64(prev) > m:
		return domain.ActionWarningReached, fmt.Sprintf("Reorder point reached: %d", next)
	default:
		diff := next - prev
		return domain.ActionInfo, fmt.Sprintf("Stock adjustment: %+d. Level: %d", diff, next)
	}
}
