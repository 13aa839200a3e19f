package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-meter-exploration/internal/aggregate"
	"smart-meter-exploration/internal/cluster"
	"smart-meter-exploration/internal/data"
	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
	"smart-meter-exploration/internal/variant"
)

func init() {
	monitoring.SetLogger(nil)
}

func makeSynthetic(t *testing.T, households, archetypes, days int) *data.SyntheticData {
	t.Helper()
	opts := data.DefaultSyntheticOptions()
	opts.Households = households
	opts.Archetypes = archetypes
	opts.Days = days
	d, err := data.Synthetic(opts)
	require.NoError(t, err)
	return d
}

func mustRegister(t *testing.T, r *variant.Registry, name string, k int, p variant.ProducerFunc) {
	t.Helper()
	require.NoError(t, r.Register(variant.Descriptor{Name: name, K: k, Producer: p}))
}

func averageUsage(m *model.UsageMatrix) (*model.FeatureTable, error) {
	return aggregate.AverageUsage(m, aggregate.Options{Normalised: true})
}

func TestRun_SeparatesArchetypes(t *testing.T) {
	d := makeSynthetic(t, 12, 2, 28)
	reg := variant.NewRegistry()
	mustRegister(t, reg, "shape", 2, averageUsage)
	runner := New(d.Matrix, reg, cluster.New(cluster.DefaultParams()))

	o, err := runner.Run("shape")
	require.NoError(t, err)
	require.Equal(t, 12, o.Table.Len())
	assert.NotEmpty(t, o.RunID)

	clusterOf := map[int]int{}
	for h, a := range d.Archetype {
		c := o.Result.Labels[h]
		if prev, ok := clusterOf[a]; ok {
			assert.Equal(t, prev, c, "household %s", h)
		}
		clusterOf[a] = c
	}
	assert.NotEqual(t, clusterOf[0], clusterOf[1])
}

func TestRunAll_DefaultsOnSyntheticYear(t *testing.T) {
	d := makeSynthetic(t, 16, 4, 365)
	runner := New(d.Matrix, variant.Defaults(), cluster.New(cluster.Params{Restarts: 3, Seed: 1}))

	outcomes := runner.RunAll()

	names := variant.Defaults().Names()
	require.Len(t, outcomes, len(names))
	ids := map[string]bool{}
	for i, o := range outcomes {
		assert.Equal(t, names[i], o.Variant.Name)
		require.NoError(t, o.Err, o.Variant.Name)
		for c, size := range o.Result.Sizes() {
			assert.Positive(t, size, "%s cluster %d", o.Variant.Name, c)
		}
		ids[o.RunID] = true
	}
	assert.Len(t, ids, 1, "one run id per batch")
}

func TestRunAll_IsolatesFailures(t *testing.T) {
	d := makeSynthetic(t, 6, 2, 7)
	reg := variant.NewRegistry()
	mustRegister(t, reg, "broken", 2, func(*model.UsageMatrix) (*model.FeatureTable, error) {
		return nil, errors.New("boom")
	})
	mustRegister(t, reg, "panics", 2, func(*model.UsageMatrix) (*model.FeatureTable, error) {
		panic("index out of range")
	})
	mustRegister(t, reg, "too_many_clusters", 50, averageUsage)
	mustRegister(t, reg, "fine", 2, averageUsage)

	outcomes := New(d.Matrix, reg, cluster.New(cluster.DefaultParams())).RunAll()

	require.Len(t, outcomes, 4)
	assert.EqualError(t, outcomes[0].Err, "aggregate broken: boom")
	assert.ErrorContains(t, outcomes[1].Err, "panic: index out of range")
	assert.True(t, errors.Is(outcomes[2].Err, cluster.ErrInvalidK))
	require.NoError(t, outcomes[3].Err)
	assert.Equal(t, 6, outcomes[3].Table.Len())
}

func TestRun_FailFast(t *testing.T) {
	d := makeSynthetic(t, 4, 2, 7)
	reg := variant.NewRegistry()
	boom := errors.New("boom")
	mustRegister(t, reg, "broken", 2, func(*model.UsageMatrix) (*model.FeatureTable, error) { return nil, boom })
	mustRegister(t, reg, "empty", 1, func(*model.UsageMatrix) (*model.FeatureTable, error) {
		return &model.FeatureTable{Axis: model.SlotLabels(), Excluded: []model.Exclusion{{Household: "x", Reason: model.ReasonMissingSlot}}}, nil
	})
	runner := New(d.Matrix, reg, cluster.New(cluster.DefaultParams()))

	_, err := runner.Run("missing")
	assert.True(t, errors.Is(err, variant.ErrNotFound))

	_, err = runner.Run("broken")
	assert.True(t, errors.Is(err, boom))

	_, err = runner.Run("empty")
	assert.True(t, errors.Is(err, ErrNoHouseholds))
}

func TestInertiaCurves(t *testing.T) {
	d := makeSynthetic(t, 8, 2, 14)
	reg := variant.NewRegistry()
	mustRegister(t, reg, "shape", 2, averageUsage)
	mustRegister(t, reg, "broken", 2, func(*model.UsageMatrix) (*model.FeatureTable, error) {
		return nil, errors.New("boom")
	})
	runner := New(d.Matrix, reg, cluster.New(cluster.DefaultParams()))

	curves := runner.InertiaCurves(20)
	require.Len(t, curves, 2)
	require.NoError(t, curves[0].Err)
	assert.Len(t, curves[0].Points, 8, "max k truncated to household count")
	assert.Error(t, curves[1].Err)

	one, err := runner.InertiaCurve("shape", 3)
	require.NoError(t, err)
	assert.Len(t, one.Points, 3)

	_, err = runner.InertiaCurve("shape", 0)
	assert.True(t, errors.Is(err, cluster.ErrInvalidK))
}
