// Package report renders clustering outcomes as PNG plots and HTML pages.
package report

import (
	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
)

// Distribution counts tariffs and socio-economic groups per cluster.
type Distribution struct {
	K int
	// Tariff[c][i] counts households of cluster c with model.Tariffs[i].
	Tariff [][]int
	// Group[c][i] counts households of cluster c with model.SocioGroups[i].
	Group [][]int
	// Unmatched lists labelled households missing from the registry.
	Unmatched []string
}

// NewDistribution joins cluster labels with the household registry.
// Households without a registry entry are left out and listed in Unmatched.
func NewDistribution(households []string, labels map[string]int, k int, registry map[string]model.Household) *Distribution {
	d := &Distribution{K: k, Tariff: make([][]int, k), Group: make([][]int, k)}
	for c := 0; c < k; c++ {
		d.Tariff[c] = make([]int, len(model.Tariffs))
		d.Group[c] = make([]int, len(model.SocioGroups))
	}

	for _, id := range households {
		c, ok := labels[id]
		if !ok || c < 0 || c >= k {
			continue
		}
		h, ok := registry[id]
		if !ok {
			d.Unmatched = append(d.Unmatched, id)
			continue
		}
		if i := indexOf(model.Tariffs, h.Tariff); i >= 0 {
			d.Tariff[c][i]++
		}
		if i := indexOf(model.SocioGroups, h.Group); i >= 0 {
			d.Group[c][i]++
		}
	}
	if len(d.Unmatched) > 0 {
		monitoring.Logf("[report] %d clustered households have no household record", len(d.Unmatched))
	}
	return d
}

// TariffShares returns each tariff's share of cluster c.
func (d *Distribution) TariffShares(c int) []float64 { return shares(d.Tariff[c]) }

// GroupShares returns each socio-economic group's share of cluster c.
func (d *Distribution) GroupShares(c int) []float64 { return shares(d.Group[c]) }

func shares(counts []int) []float64 {
	total := 0
	for _, n := range counts {
		total += n
	}
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, n := range counts {
		out[i] = float64(n) / float64(total)
	}
	return out
}

func indexOf[T comparable](xs []T, v T) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}
