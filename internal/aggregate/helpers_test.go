package aggregate

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
)

// usageFunc returns a household's reading at ts, or false when absent.
type usageFunc func(ts time.Time) (float64, bool)

// monday7Jan2013 starts a week with no bank holidays.
var monday7Jan2013 = time.Date(2013, time.January, 7, 0, 0, 0, 0, time.UTC)

func init() {
	monitoring.SetLogger(nil)
}

func makeMatrix(t *testing.T, from time.Time, days int, households map[string]usageFunc) *model.UsageMatrix {
	t.Helper()

	ids := make([]string, 0, len(households))
	for id := range households {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	n := days * model.SlotsPerDay
	timestamps := make([]time.Time, n)
	values := make([][]float64, n)
	for i := range timestamps {
		ts := from.Add(time.Duration(i) * model.SlotMinutes * time.Minute)
		timestamps[i] = ts
		row := make([]float64, len(ids))
		for j, id := range ids {
			v, ok := households[id](ts)
			if !ok {
				v = math.NaN()
			}
			row[j] = v
		}
		values[i] = row
	}

	m, err := model.NewUsageMatrix(timestamps, ids, values)
	require.NoError(t, err)
	return m
}

func constant(v float64) usageFunc {
	return func(time.Time) (float64, bool) { return v, true }
}

// bySlot returns base + step*slot.
func bySlot(base, step float64) usageFunc {
	return func(ts time.Time) (float64, bool) {
		s, _ := model.SlotOf(ts)
		return base + step*float64(s), true
	}
}

func withoutSlot(f usageFunc, slot model.Slot) usageFunc {
	return func(ts time.Time) (float64, bool) {
		if s, _ := model.SlotOf(ts); s == slot {
			return 0, false
		}
		return f(ts)
	}
}

func weekendWeekday(weekend, weekday float64) usageFunc {
	return func(ts time.Time) (float64, bool) {
		if model.DayTypeOf(ts) == model.WeekendOrHoliday {
			return weekend, true
		}
		return weekday, true
	}
}

// requireAccounted checks every household of m is either kept or excluded,
// never both.
func requireAccounted(t *testing.T, m *model.UsageMatrix, ft *model.FeatureTable) {
	t.Helper()
	require.NoError(t, ft.Validate())
	seen := map[string]bool{}
	for _, h := range ft.Households {
		seen[h] = true
	}
	for _, e := range ft.Excluded {
		require.False(t, seen[e.Household], "household %s both kept and excluded", e.Household)
		seen[e.Household] = true
	}
	require.Len(t, seen, m.HouseholdCount())
}
