// Package stats implements the running totals for a tracker run.
//
// The aggregator is pure arithmetic with no I/O. It is owned exclusively
// by the tracker goroutine and therefore carries no locking. Profit is
// derived on every snapshot, never stored, so it cannot drift from the
// totals it is computed from.
package stats

import (
	"github.com/google/uuid"

	"github.com/okulov/casetrack/internal/model"
)

// Aggregator accumulates spend and drop value over a tracker run.
type Aggregator struct {
	attemptCost float64 // case price + key price, fixed per run

	casesOpened    int
	totalSpent     float64
	totalDropValue float64
}

// NewAggregator creates an aggregator with the fixed per-attempt cost.
func NewAggregator(casePrice, keyPrice float64) *Aggregator {
	return &Aggregator{attemptCost: casePrice + keyPrice}
}

// RecordDrop accounts one case opening: +1 cases opened, the per-attempt
// cost added to spend, the received value added to drop value. Returns a
// fresh snapshot tagged with the drop's correlation id.
func (a *Aggregator) RecordDrop(dropID uuid.UUID, received float64) model.Stats {
	a.casesOpened++
	a.totalSpent += a.attemptCost
	a.totalDropValue += received
	return a.snapshot(dropID)
}

// Snapshot returns the current totals without recording anything.
func (a *Aggregator) Snapshot() model.Stats {
	return a.snapshot(uuid.Nil)
}

func (a *Aggregator) snapshot(dropID uuid.UUID) model.Stats {
	return model.Stats{
		DropID:         dropID,
		TotalSpent:     a.totalSpent,
		TotalDropValue: a.totalDropValue,
		Profit:         a.totalDropValue - a.totalSpent,
		CasesOpened:    a.casesOpened,
	}
}
