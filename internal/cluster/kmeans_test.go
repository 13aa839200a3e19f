package cluster

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
)

func init() {
	monitoring.SetLogger(nil)
}

// makeTable builds a table of n households per centre, scattered around each
// centre with the given noise.
func makeTable(seed uint64, noise float64, n int, centres ...[]float64) *model.FeatureTable {
	rng := rand.New(rand.NewPCG(seed, 1))
	ft := &model.FeatureTable{}
	for i := range centres[0] {
		ft.Axis = append(ft.Axis, fmt.Sprintf("f%d", i))
	}
	for c, centre := range centres {
		for i := 0; i < n; i++ {
			row := make([]float64, len(centre))
			for d, v := range centre {
				row[d] = v + noise*(rng.Float64()-0.5)
			}
			ft.Households = append(ft.Households, fmt.Sprintf("G%d-%03d", c, i))
			ft.Rows = append(ft.Rows, row)
		}
	}
	return ft
}

func TestRun_SeparatesObviousGroups(t *testing.T) {
	ft := makeTable(3, 0.2, 20, []float64{0, 0, 0}, []float64{10, 10, 10}, []float64{-10, 5, 0})
	res, err := New(DefaultParams()).Run(ft, 3)
	require.NoError(t, err)

	assert.Equal(t, []int{20, 20, 20}, res.Sizes())
	for i, h := range res.Households {
		assert.Equal(t, i/20, res.Assignments[i], h)
		assert.Equal(t, res.Assignments[i], res.Labels[h])
	}
	assert.True(t, res.Converged)
}

func TestRun_Deterministic(t *testing.T) {
	ft := makeTable(9, 4, 15, []float64{0, 0}, []float64{3, 3}, []float64{0, 4})
	e := New(Params{Seed: 42})

	a, err := e.Run(ft, 4)
	require.NoError(t, err)
	b, err := e.Run(ft, 4)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different results (-first +second):\n%s", diff)
	}
}

func TestRun_CanonicalLabels(t *testing.T) {
	ft := makeTable(5, 0.1, 5, []float64{7}, []float64{-7})
	res, err := New(DefaultParams()).Run(ft, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Assignments[0])
	assert.Len(t, res.Centroids, 2)
	assert.InDelta(t, 7, res.Centroids[0][0], 0.1)
	assert.InDelta(t, -7, res.Centroids[1][0], 0.1)
}

func TestRun_InvalidK(t *testing.T) {
	ft := makeTable(1, 1, 3, []float64{0})
	e := New(DefaultParams())

	for _, k := range []int{0, -1, 4} {
		_, err := e.Run(ft, k)
		assert.True(t, errors.Is(err, ErrInvalidK), "k=%d", k)
	}

	res, err := e.Run(ft, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.Inertia, 1e-12, "one household per cluster")
}

func TestRun_IdenticalPointsStillFillEveryCluster(t *testing.T) {
	ft := &model.FeatureTable{
		Axis:       []string{"x"},
		Households: []string{"a", "b", "c", "d"},
		Rows:       [][]float64{{1}, {1}, {1}, {5}},
	}
	res, err := New(DefaultParams()).Run(ft, 3)
	require.NoError(t, err)
	for c, size := range res.Sizes() {
		assert.Positive(t, size, "cluster %d", c)
	}
}

func TestUpdate_ReseedsEmptyClusterWithFarthestPoint(t *testing.T) {
	l := newLloyd([][]float64{{0}, {1}, {9}}, 2)
	l.centroids = [][]float64{{0}, {100}}
	l.assign = []int{0, 0, 0}

	l.update()

	assert.Equal(t, []int{0, 0, 1}, l.assign)
	assert.InDelta(t, 0.5, l.centroids[0][0], 1e-12)
	assert.InDelta(t, 9, l.centroids[1][0], 1e-12)
}

func TestClusterMeans(t *testing.T) {
	ft := &model.FeatureTable{
		Axis:       []string{"x", "y"},
		Households: []string{"a", "b", "c"},
		Rows:       [][]float64{{1, 2}, {3, 4}, {10, 10}},
	}
	res := &Result{
		K:           2,
		Households:  ft.Households,
		Assignments: []int{0, 0, 1},
		Labels:      map[string]int{"a": 0, "b": 0, "c": 1},
	}

	means := res.ClusterMeans(ft)
	assert.Equal(t, [][]float64{{2, 3}, {10, 10}}, means)
	assert.Equal(t, []string{"a", "b"}, res.Members(0))
}
