package engine

import (
	"math"
	"sort"
	"time"

	"github.com/smartstock/backend-go/internal/domain"
)

// VelocityWindow is the trailing period considered when estimating
// consumption from the audit log.
const VelocityWindow = 7 * 24 * time.Hour

// Velocity is a consumption estimate derived from audit-log stock deltas.
// It is a heuristic, not a committed forecast: rising stock (restocks) is
// ignored rather than counted as negative consumption.
type Velocity struct {
	DailyRate     float64 // units consumed per day
	RotationCount int     // number of observed downward movements
	DaysToEmpty   int     // -1 when DailyRate is zero
	IsStagnant    bool    // no movement despite stock on hand
}

// EstimateVelocity walks the product's events inside the trailing window,
// ordered ascending by timestamp, accumulating positive stock decreases
// between consecutive pairs. Fewer than two events, or zero elapsed time,
// yields a zero rate.
func EstimateVelocity(p domain.Product, events []domain.StockEvent, now time.Time) Velocity {
	cutoff := now.Add(-VelocityWindow).UnixMilli()

	window := make([]domain.StockEvent, 0, len(events))
	for _, ev := range events {
		if ev.ProductID == p.ID && ev.Timestamp > cutoff {
			window = append(window, ev)
		}
	}
	sort.Slice(window, func(i, j int) bool { return window[i].Timestamp < window[j].Timestamp })

	v := Velocity{DaysToEmpty: -1}

	if len(window) >= 2 {
		totalDecrease := 0
		for i := 1; i < len(window); i++ {
			diff := window[i-1].StockLevel - window[i].StockLevel
			if diff > 0 {
				totalDecrease += diff
				v.RotationCount++
			}
		}

		elapsedDays := float64(window[len(window)-1].Timestamp-window[0].Timestamp) / float64(24*time.Hour/time.Millisecond)
		if elapsedDays > 0 {
			v.DailyRate = float64(totalDecrease) / elapsedDays
		}
	}

	if v.DailyRate > 0 {
		v.DaysToEmpty = int(math.Round(float64(p.Stock) / v.DailyRate))
	}
	v.IsStagnant = v.RotationCount == 0 && p.Stock > 0

	return v
}
