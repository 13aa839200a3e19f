// Package analysis summarises individual households' half-hourly readings.
package analysis

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"smart-meter-exploration/internal/model"
)

// UsageProfile is a household-level summary of half-hourly readings, for
// picking out unusual households before clustering.
type UsageProfile struct {
	Household string
	Tariff    model.Tariff
	Group     model.SocioGroup

	Start time.Time
	End   time.Time

	Count int

	Min  float64
	Max  float64
	Mean float64
	P05  float64
	P95  float64

	Spread float64

	// DailyKWh is Mean scaled to a full day of slots.
	DailyKWh float64
	// PeakSlot is the slot with the highest mean reading.
	PeakSlot model.Slot
}

// ComputeProfile summarises column j of m. A household without readings
// gets a zero profile with only its ID set.
func ComputeProfile(m *model.UsageMatrix, j int) UsageProfile {
	p := UsageProfile{Household: m.Households()[j]}

	vals := make([]float64, 0, m.Len())
	var slotSum [model.SlotsPerDay]float64
	var slotN [model.SlotsPerDay]int
	for i := 0; i < m.Len(); i++ {
		v, ok := m.Value(i, j)
		if !ok {
			continue
		}
		ts := m.Timestamp(i)
		if p.Count == 0 {
			p.Start = ts
		}
		p.End = ts
		p.Count++
		vals = append(vals, v)
		if s, aligned := model.SlotOf(ts); aligned {
			slotSum[s] += v
			slotN[s]++
		}
	}
	if p.Count == 0 {
		return p
	}

	sort.Float64s(vals)
	p.Min = vals[0]
	p.Max = vals[len(vals)-1]
	p.Mean = stat.Mean(vals, nil)
	p.P05 = stat.Quantile(0.05, stat.LinInterp, vals, nil)
	p.P95 = stat.Quantile(0.95, stat.LinInterp, vals, nil)
	p.Spread = p.P95 - p.P05
	p.DailyKWh = p.Mean * model.SlotsPerDay

	var slotMean [model.SlotsPerDay]float64
	for s := range slotMean {
		if slotN[s] > 0 {
			slotMean[s] = slotSum[s] / float64(slotN[s])
		}
	}
	p.PeakSlot = model.Slot(floats.MaxIdx(slotMean[:]))
	return p
}
