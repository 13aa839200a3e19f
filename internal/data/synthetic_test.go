package data

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthetic_Reproducible(t *testing.T) {
	opts := DefaultSyntheticOptions()
	opts.Days = 14
	opts.Households = 8
	opts.MissingRate = 0.01

	a, err := Synthetic(opts)
	require.NoError(t, err)
	b, err := Synthetic(opts)
	require.NoError(t, err)

	assert.Equal(t, 14*48, a.Matrix.Len())
	assert.Equal(t, a.Matrix.Households(), b.Matrix.Households())
	for i := 0; i < a.Matrix.Len(); i += 37 {
		for j := 0; j < a.Matrix.HouseholdCount(); j++ {
			va, oka := a.Matrix.Value(i, j)
			vb, okb := b.Matrix.Value(i, j)
			require.Equal(t, oka, okb)
			require.Equal(t, va, vb)
		}
	}
	if diff := cmp.Diff(a.Households, b.Households); diff != "" {
		t.Errorf("household registry differs:\n%s", diff)
	}
}

func TestSynthetic_ArchetypesCycle(t *testing.T) {
	opts := DefaultSyntheticOptions()
	opts.Days = 2
	opts.Households = 6
	opts.Archetypes = 3

	d, err := Synthetic(opts)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Archetype["MAC000001"])
	assert.Equal(t, 2, d.Archetype["MAC000003"])
	assert.Equal(t, 0, d.Archetype["MAC000004"])
	assert.Len(t, d.Households, 6)
}

func TestSynthetic_RejectsBadOptions(t *testing.T) {
	opts := DefaultSyntheticOptions()
	opts.Archetypes = 9
	_, err := Synthetic(opts)
	assert.Error(t, err)

	opts = DefaultSyntheticOptions()
	opts.Days = 0
	_, err = Synthetic(opts)
	assert.Error(t, err)
}

func TestSummary_SaveLoad(t *testing.T) {
	opts := DefaultSyntheticOptions()
	opts.Days = 3
	opts.Households = 4
	d, err := Synthetic(opts)
	require.NoError(t, err)

	s := Summarize("synthetic", d.Matrix, d.Households)
	assert.Equal(t, 4, s.Households)
	assert.Equal(t, 4, s.Registered)
	assert.InDelta(t, 1.0, s.Coverage, 1e-12)
	assert.Equal(t, opts.Start.Add(3*24*time.Hour-30*time.Minute), s.End)

	p := filepath.Join(t.TempDir(), "nested", "summary.json")
	require.NoError(t, SaveSummary(s, p))
	loaded, err := LoadSummary(p)
	require.NoError(t, err)
	assert.Equal(t, s.Readings, loaded.Readings)
	assert.True(t, s.Start.Equal(loaded.Start))
}
