package domain

import "strings"

// StockStatus is the 3-way classification shown on the inventory table.
// Excess is reported separately and is not part of this status.
type StockStatus int

const (
	StatusNormal StockStatus = iota
	StatusReorder
	StatusCritical
)

var stockStatusLabels = map[StockStatus]string{
	StatusNormal:   "Normal",
	StatusReorder:  "Reorder",
	StatusCritical: "Critical",
}

var stockStatusCodes = map[string]StockStatus{
	"normal":   StatusNormal,
	"reorder":  StatusReorder,
	"critical": StatusCritical,
}

// Label returns a human-readable label for a stock status.
func (s StockStatus) Label() string {
	if label, ok := stockStatusLabels[s]; ok {
		return label
	}

	return "Normal"
}

// ParseStockStatus returns the status for a given label (case-insensitive).
func ParseStockStatus(label string) (StockStatus, bool) {
	status, ok := stockStatusCodes[strings.ToLower(label)]

	return status, ok
}
