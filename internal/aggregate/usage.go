package aggregate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"smart-meter-exploration/internal/model"
)

// Options selects the transforms applied by AverageUsage. Normalisation runs
// before the cumulative sum when both are set.
type Options struct {
	Normalised bool
	Cumulative bool
}

// AverageUsage returns each household's mean usage per half-hour slot.
//
// Normalised rows are divided by their sum so they describe the share of a
// day's usage in each slot; households whose sum is zero are excluded.
// Cumulative rows hold the running total, so the last slot is the daily total
// (or 1 when normalised).
func AverageUsage(m *model.UsageMatrix, opts Options) (*model.FeatureTable, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}

	b := newTableBuilder("average_usage", model.SlotLabels())
	households := m.Households()
	for j, p := range byPartition(m, wholeDay, 1) {
		if !p.complete([]int{0}) {
			b.exclude(households[j], model.ReasonMissingSlot)
			continue
		}
		row := make([]float64, model.SlotsPerDay)
		copy(row, p[0][:])

		if opts.Normalised && !scaleToOne(row) {
			b.exclude(households[j], model.ReasonZeroTotal)
			continue
		}
		if opts.Cumulative {
			floats.CumSum(row, row)
		}
		b.add(households[j], row)
	}
	return b.build(), nil
}

// scaleToOne scales row in place to sum to one. It reports false, leaving row
// untouched, when the sum is zero or not finite.
func scaleToOne(row []float64) bool {
	total := floats.Sum(row)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return false
	}
	floats.Scale(1/total, row)
	return true
}
