package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureTable_Validate(t *testing.T) {
	ft := &FeatureTable{
		Axis:       []string{"00:00", "00:30"},
		Households: []string{"A", "B"},
		Rows:       [][]float64{{1, 2}, {3, 4}},
	}
	require.NoError(t, ft.Validate())
	assert.Equal(t, 2, ft.Len())
	assert.Equal(t, 2, ft.Width())

	row, ok := ft.Row("B")
	require.True(t, ok)
	assert.Equal(t, []float64{3, 4}, row)

	ft.Rows[1] = []float64{3}
	assert.Error(t, ft.Validate())

	ft.Rows[1] = []float64{3, math.NaN()}
	assert.Error(t, ft.Validate())

	ft.Rows[1] = []float64{3, 4}
	ft.Households[1] = "A"
	assert.Error(t, ft.Validate())
}

func TestFeatureTable_ExcludedCount(t *testing.T) {
	ft := &FeatureTable{Excluded: []Exclusion{
		{Household: "A", Reason: ReasonMissingSlot},
		{Household: "B", Reason: ReasonZeroDenominator},
		{Household: "C", Reason: ReasonMissingSlot},
	}}
	assert.Equal(t, 2, ft.ExcludedCount(ReasonMissingSlot))
	assert.Equal(t, 1, ft.ExcludedCount(ReasonZeroDenominator))
	assert.Equal(t, 0, ft.ExcludedCount(ReasonZeroTotal))
}
