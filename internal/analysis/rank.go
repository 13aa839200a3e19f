package analysis

import (
	"sort"

	"smart-meter-exploration/internal/model"
)

// RankByDailyUsage profiles every household with readings and sorts them by
// mean daily usage, highest first. Ties are broken by household ID. Tariff and
// group come from households when it lists the ID.
func RankByDailyUsage(m *model.UsageMatrix, households map[string]model.Household) []UsageProfile {
	out := make([]UsageProfile, 0, m.HouseholdCount())
	for j := 0; j < m.HouseholdCount(); j++ {
		p := ComputeProfile(m, j)
		if p.Count == 0 {
			continue
		}
		if h, ok := households[p.Household]; ok {
			p.Tariff, p.Group = h.Tariff, h.Group
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].DailyKWh != out[b].DailyKWh {
			return out[a].DailyKWh > out[b].DailyKWh
		}
		return out[a].Household < out[b].Household
	})
	return out
}
