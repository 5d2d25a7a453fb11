package stats

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecordDrop(t *testing.T) {
	agg := NewAggregator(15.0, 2.5)

	id := uuid.New()
	snap := agg.RecordDrop(id, 1500.0)

	if snap.DropID != id {
		t.Errorf("DropID = %v, want %v", snap.DropID, id)
	}
	if !almostEqual(snap.TotalSpent, 17.5) {
		t.Errorf("TotalSpent = %v, want 17.5", snap.TotalSpent)
	}
	if !almostEqual(snap.TotalDropValue, 1500.0) {
		t.Errorf("TotalDropValue = %v, want 1500.0", snap.TotalDropValue)
	}
	if !almostEqual(snap.Profit, 1482.5) {
		t.Errorf("Profit = %v, want 1482.5", snap.Profit)
	}
	if snap.CasesOpened != 1 {
		t.Errorf("CasesOpened = %d, want 1", snap.CasesOpened)
	}
}

func TestRecordDrop_Accumulates(t *testing.T) {
	const attemptCost = 10.0 + 2.0
	agg := NewAggregator(10.0, 2.0)

	received := []float64{5.0, 0.0, 120.5, 3.25}
	var sum float64
	var last = agg.Snapshot()
	for _, v := range received {
		sum += v
		last = agg.RecordDrop(uuid.New(), v)
	}

	n := float64(len(received))
	if !almostEqual(last.TotalSpent, n*attemptCost) {
		t.Errorf("TotalSpent = %v, want %v", last.TotalSpent, n*attemptCost)
	}
	if !almostEqual(last.TotalDropValue, sum) {
		t.Errorf("TotalDropValue = %v, want %v", last.TotalDropValue, sum)
	}
	if !almostEqual(last.Profit, sum-n*attemptCost) {
		t.Errorf("Profit = %v, want %v", last.Profit, sum-n*attemptCost)
	}
	if last.CasesOpened != len(received) {
		t.Errorf("CasesOpened = %d, want %d", last.CasesOpened, len(received))
	}
}

func TestSnapshot_DoesNotMutate(t *testing.T) {
	agg := NewAggregator(1.0, 1.0)
	agg.RecordDrop(uuid.New(), 10.0)

	before := agg.Snapshot()
	after := agg.Snapshot()

	if before != after {
		t.Errorf("repeated Snapshot differs: %+v vs %+v", before, after)
	}
	if before.CasesOpened != 1 {
		t.Errorf("CasesOpened = %d, want 1", before.CasesOpened)
	}
}
