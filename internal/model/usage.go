package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrUnalignedTimestamp is returned when a reading is not on a half-hour boundary.
var ErrUnalignedTimestamp = errors.New("timestamp is not half-hour aligned")

// Reading is one half-hourly meter reading in long form.
type Reading struct {
	Household string
	Timestamp time.Time
	KWh       float64
}

// TimeRange is an inclusive span of timestamps.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// UsageMatrix holds half-hourly energy use with one row per timestamp and
// one column per household. It is immutable once built: accessors return
// copies, so the same matrix can be shared by every analysis variant.
//
// Missing readings are absent, never zero.
type UsageMatrix struct {
	timestamps []time.Time
	households []string
	index      map[string]int
	values     [][]float64 // [timestamp][household], NaN = absent
}

// NewUsageMatrix builds a matrix from wide-form data. values[i][j] is the
// reading for timestamps[i] and households[j]; NaN marks an absent reading.
// Inputs are copied. Rows are sorted by timestamp and columns by household ID.
func NewUsageMatrix(timestamps []time.Time, households []string, values [][]float64) (*UsageMatrix, error) {
	if len(values) != len(timestamps) {
		return nil, fmt.Errorf("got %d value rows for %d timestamps", len(values), len(timestamps))
	}

	cols := make([]int, len(households))
	seenHH := make(map[string]bool, len(households))
	for j, h := range households {
		if h == "" {
			return nil, fmt.Errorf("household %d has an empty ID", j)
		}
		if seenHH[h] {
			return nil, fmt.Errorf("duplicate household %q", h)
		}
		seenHH[h] = true
		cols[j] = j
	}
	sort.Slice(cols, func(a, b int) bool { return households[cols[a]] < households[cols[b]] })

	rows := make([]int, len(timestamps))
	for i, ts := range timestamps {
		if _, aligned := SlotOf(ts); !aligned {
			return nil, fmt.Errorf("%w: %s", ErrUnalignedTimestamp, ts.Format(time.RFC3339))
		}
		if len(values[i]) != len(households) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(values[i]), len(households))
		}
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool { return timestamps[rows[a]].Before(timestamps[rows[b]]) })

	m := &UsageMatrix{
		timestamps: make([]time.Time, len(rows)),
		households: make([]string, len(cols)),
		index:      make(map[string]int, len(cols)),
		values:     make([][]float64, len(rows)),
	}
	for j, c := range cols {
		m.households[j] = households[c]
		m.index[households[c]] = j
	}
	for i, r := range rows {
		if i > 0 && timestamps[r].Equal(m.timestamps[i-1]) {
			return nil, fmt.Errorf("duplicate timestamp %s", timestamps[r].Format(time.RFC3339))
		}
		m.timestamps[i] = timestamps[r]
		row := make([]float64, len(cols))
		for j, c := range cols {
			v := values[r][c]
			if math.IsInf(v, 0) {
				return nil, fmt.Errorf("infinite reading for %s at %s", households[c], timestamps[r].Format(time.RFC3339))
			}
			row[j] = v
		}
		m.values[i] = row
	}
	return m, nil
}

// NewUsageMatrixFromReadings builds a matrix from long-form readings.
// Several readings for the same household and timestamp are averaged.
func NewUsageMatrixFromReadings(readings []Reading) (*UsageMatrix, error) {
	type key struct {
		ts int64
		hh string
	}
	type accum struct {
		sum float64
		n   int
	}

	cells := make(map[key]*accum, len(readings))
	tsIdx := make(map[int64]time.Time)
	hhSeen := make(map[string]bool)
	for _, r := range readings {
		if math.IsNaN(r.KWh) {
			continue
		}
		k := key{ts: r.Timestamp.UnixNano(), hh: r.Household}
		a, ok := cells[k]
		if !ok {
			a = &accum{}
			cells[k] = a
		}
		a.sum += r.KWh
		a.n++
		tsIdx[k.ts] = r.Timestamp
		hhSeen[r.Household] = true
	}

	timestamps := make([]time.Time, 0, len(tsIdx))
	for _, ts := range tsIdx {
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

	households := make([]string, 0, len(hhSeen))
	for h := range hhSeen {
		households = append(households, h)
	}
	sort.Strings(households)

	values := make([][]float64, len(timestamps))
	for i, ts := range timestamps {
		row := make([]float64, len(households))
		for j, h := range households {
			if a, ok := cells[key{ts: ts.UnixNano(), hh: h}]; ok {
				row[j] = a.sum / float64(a.n)
			} else {
				row[j] = math.NaN()
			}
		}
		values[i] = row
	}
	return NewUsageMatrix(timestamps, households, values)
}

// Len returns the number of timestamps.
func (m *UsageMatrix) Len() int { return len(m.timestamps) }

// HouseholdCount returns the number of households.
func (m *UsageMatrix) HouseholdCount() int { return len(m.households) }

// Households returns the household IDs in column order.
func (m *UsageMatrix) Households() []string {
	out := make([]string, len(m.households))
	copy(out, m.households)
	return out
}

// HouseholdIndex returns the column of a household.
func (m *UsageMatrix) HouseholdIndex(id string) (int, bool) {
	j, ok := m.index[id]
	return j, ok
}

// Timestamp returns the timestamp of row i.
func (m *UsageMatrix) Timestamp(i int) time.Time { return m.timestamps[i] }

// Value returns the reading at row i, column j and whether it is present.
func (m *UsageMatrix) Value(i, j int) (float64, bool) {
	v := m.values[i][j]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ReadingCount returns the number of present readings.
func (m *UsageMatrix) ReadingCount() int {
	n := 0
	for _, row := range m.values {
		for _, v := range row {
			if !math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

// TimeRange returns the first and last timestamps.
func (m *UsageMatrix) TimeRange() (TimeRange, bool) {
	if len(m.timestamps) == 0 {
		return TimeRange{}, false
	}
	return TimeRange{Start: m.timestamps[0], End: m.timestamps[len(m.timestamps)-1]}, true
}
