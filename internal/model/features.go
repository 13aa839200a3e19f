package model

import (
	"fmt"
	"math"
)

// ExclusionReason says why a household was left out of a feature table.
type ExclusionReason string

const (
	ReasonMissingSlot     ExclusionReason = "missing_slot"
	ReasonZeroTotal       ExclusionReason = "zero_total"
	ReasonZeroDenominator ExclusionReason = "zero_denominator"
)

// Exclusion records a household dropped during aggregation.
type Exclusion struct {
	Household string
	Reason    ExclusionReason
}

// FeatureTable is a household-indexed table of fixed-width feature vectors.
// Households and Rows are parallel; every row has len(Axis) finite values.
type FeatureTable struct {
	Axis       []string
	Households []string
	Rows       [][]float64

	// Excluded lists households present in the source matrix but absent here.
	Excluded []Exclusion
}

// Len returns the number of households.
func (t *FeatureTable) Len() int { return len(t.Households) }

// Width returns the length of each feature vector.
func (t *FeatureTable) Width() int { return len(t.Axis) }

// Row returns the feature vector for a household.
func (t *FeatureTable) Row(household string) ([]float64, bool) {
	for i, h := range t.Households {
		if h == household {
			return t.Rows[i], true
		}
	}
	return nil, false
}

// ExcludedCount returns how many households were dropped for the given reason.
func (t *FeatureTable) ExcludedCount(reason ExclusionReason) int {
	n := 0
	for _, e := range t.Excluded {
		if e.Reason == reason {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants of the table.
func (t *FeatureTable) Validate() error {
	if t == nil {
		return fmt.Errorf("feature table is nil")
	}
	if len(t.Rows) != len(t.Households) {
		return fmt.Errorf("%d rows for %d households", len(t.Rows), len(t.Households))
	}
	seen := make(map[string]bool, len(t.Households))
	for i, h := range t.Households {
		if seen[h] {
			return fmt.Errorf("duplicate household %q", h)
		}
		seen[h] = true
		if len(t.Rows[i]) != len(t.Axis) {
			return fmt.Errorf("household %q has %d features, want %d", h, len(t.Rows[i]), len(t.Axis))
		}
		for k, v := range t.Rows[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("household %q feature %s is not finite", h, t.Axis[k])
			}
		}
	}
	return nil
}
