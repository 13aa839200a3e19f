package cluster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInertiaCurve_NonIncreasing(t *testing.T) {
	ft := makeTable(11, 3, 12, []float64{0, 0, 0}, []float64{4, 1, 0}, []float64{0, 5, 2}, []float64{3, 3, 3})

	curve, err := New(DefaultParams()).InertiaCurve(ft, 8)
	require.NoError(t, err)
	require.Len(t, curve, 8)

	for i, p := range curve {
		assert.Equal(t, i+1, p.K)
		if i > 0 {
			assert.LessOrEqual(t, p.Inertia, curve[i-1].Inertia*1.01, "k=%d", p.K)
		}
	}
}

func TestInertiaCurve_TruncatesToHouseholdCount(t *testing.T) {
	ft := makeTable(2, 1, 2, []float64{0}, []float64{5})

	curve, err := New(DefaultParams()).InertiaCurve(ft, 10)
	require.NoError(t, err)
	assert.Len(t, curve, 4)
	assert.InDelta(t, 0, curve[3].Inertia, 1e-12)
}

func TestInertiaCurve_InvalidMaxK(t *testing.T) {
	ft := makeTable(2, 1, 2, []float64{0})
	_, err := New(DefaultParams()).InertiaCurve(ft, 0)
	assert.True(t, errors.Is(err, ErrInvalidK))
}
