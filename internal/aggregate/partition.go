// Package aggregate turns a usage matrix into fixed-width per-household
// feature tables. Every producer reads the matrix and returns a new table;
// none of them mutate their input.
package aggregate

import (
	"errors"
	"math"
	"time"

	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
)

// ErrNilMatrix is returned when a producer is given no matrix.
var ErrNilMatrix = errors.New("usage matrix is nil")

// partitionFunc assigns a timestamp to one of n calendar partitions.
type partitionFunc func(t time.Time) int

func wholeDay(time.Time) int { return 0 }

func byDayType(t time.Time) int { return int(model.DayTypeOf(t)) }

func bySeason(t time.Time) int { return int(model.SeasonOf(t)) }

// profile holds one household's mean usage per (partition, slot). Cells with
// no reading are NaN.
type profile [][model.SlotsPerDay]float64

// byPartition averages every household's readings per (partition, slot).
// The result is indexed by household column.
func byPartition(m *model.UsageMatrix, part partitionFunc, nParts int) []profile {
	nh := m.HouseholdCount()
	sums := make([]profile, nh)
	counts := make([][][model.SlotsPerDay]int, nh)
	for j := range sums {
		sums[j] = make(profile, nParts)
		counts[j] = make([][model.SlotsPerDay]int, nParts)
	}

	for i := 0; i < m.Len(); i++ {
		ts := m.Timestamp(i)
		slot, _ := model.SlotOf(ts)
		p := part(ts)
		for j := 0; j < nh; j++ {
			v, ok := m.Value(i, j)
			if !ok {
				continue
			}
			sums[j][p][slot] += v
			counts[j][p][slot]++
		}
	}

	for j := range sums {
		for p := 0; p < nParts; p++ {
			for s := 0; s < model.SlotsPerDay; s++ {
				if counts[j][p][s] == 0 {
					sums[j][p][s] = math.NaN()
					continue
				}
				sums[j][p][s] /= float64(counts[j][p][s])
			}
		}
	}
	return sums
}

// complete reports whether the profile has a mean for every slot of every
// required partition.
func (p profile) complete(required []int) bool {
	for _, part := range required {
		for _, v := range p[part] {
			if math.IsNaN(v) {
				return false
			}
		}
	}
	return true
}

// tableBuilder accumulates kept rows and exclusions for one producer.
type tableBuilder struct {
	name  string
	table *model.FeatureTable
}

func newTableBuilder(name string, axis []string) *tableBuilder {
	return &tableBuilder{name: name, table: &model.FeatureTable{Axis: axis}}
}

func (b *tableBuilder) add(household string, row []float64) {
	b.table.Households = append(b.table.Households, household)
	b.table.Rows = append(b.table.Rows, row)
}

func (b *tableBuilder) exclude(household string, reason model.ExclusionReason) {
	b.table.Excluded = append(b.table.Excluded, model.Exclusion{Household: household, Reason: reason})
}

func (b *tableBuilder) build() *model.FeatureTable {
	if n := len(b.table.Excluded); n > 0 {
		monitoring.Logf("[aggregate] %s: kept %d households, excluded %d (missing=%d zero_total=%d zero_denominator=%d)",
			b.name, b.table.Len(), n,
			b.table.ExcludedCount(model.ReasonMissingSlot),
			b.table.ExcludedCount(model.ReasonZeroTotal),
			b.table.ExcludedCount(model.ReasonZeroDenominator))
	}
	return b.table
}

// finite reports whether every value in row is a finite number.
func finite(row []float64) bool {
	for _, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
