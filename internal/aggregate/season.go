package aggregate

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"smart-meter-exploration/internal/model"
)

// SeasonContrast returns, per slot, the mean usage in season1 minus the mean
// usage in season2. A composite season2 ("spring and autumn") subtracts the
// average of the spring and autumn profiles. season1 must be a single season.
//
// Only the seasons taking part in the contrast need full slot coverage; a
// household with no summer readings still appears in a winter/spring table.
func SeasonContrast(m *model.UsageMatrix, season1, season2 model.SeasonSelector) (*model.FeatureTable, error) {
	if season1.Composite {
		return nil, fmt.Errorf("%w: %q cannot be the first season", model.ErrInvalidSeason, season1)
	}
	for _, sel := range []model.SeasonSelector{season1, season2} {
		for _, s := range sel.Seasons() {
			if s < 0 || int(s) >= model.SeasonCount {
				return nil, fmt.Errorf("%w: %d", model.ErrInvalidSeason, int(s))
			}
		}
	}
	if m == nil {
		return nil, ErrNilMatrix
	}

	required := seasonIndexes(season1, season2)
	b := newTableBuilder(fmt.Sprintf("season %s - %s", season1, season2), model.SlotLabels())
	households := m.Households()
	for j, p := range byPartition(m, bySeason, model.SeasonCount) {
		if !p.complete(required) {
			b.exclude(households[j], model.ReasonMissingSlot)
			continue
		}
		row := seasonMean(p, season1)
		floats.Sub(row, seasonMean(p, season2))
		b.add(households[j], row)
	}
	return b.build(), nil
}

// seasonMean averages the already-averaged profiles of the selected seasons.
func seasonMean(p profile, sel model.SeasonSelector) []float64 {
	seasons := sel.Seasons()
	out := make([]float64, model.SlotsPerDay)
	for _, s := range seasons {
		floats.Add(out, p[s][:])
	}
	floats.Scale(1/float64(len(seasons)), out)
	return out
}

func seasonIndexes(sels ...model.SeasonSelector) []int {
	var out []int
	seen := make(map[model.Season]bool)
	for _, sel := range sels {
		for _, s := range sel.Seasons() {
			if !seen[s] {
				seen[s] = true
				out = append(out, int(s))
			}
		}
	}
	return out
}
