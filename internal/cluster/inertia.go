package cluster

import (
	"fmt"

	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
)

// InertiaPoint is the best inertia found for one cluster count.
type InertiaPoint struct {
	K       int
	Inertia float64
}

// InertiaCurve runs k-means for k = 1..maxK and returns the inertia of each,
// for elbow inspection. A maxK above the number of households is truncated.
func (e *Engine) InertiaCurve(table *model.FeatureTable, maxK int) ([]InertiaPoint, error) {
	if table == nil {
		return nil, fmt.Errorf("feature table is nil")
	}
	if maxK < 1 {
		return nil, fmt.Errorf("%w: max k=%d", ErrInvalidK, maxK)
	}
	n := table.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: no households to cluster", ErrInvalidK)
	}
	if maxK > n {
		monitoring.Logf("[cluster] inertia curve: max k %d truncated to %d households", maxK, n)
		maxK = n
	}

	curve := make([]InertiaPoint, 0, maxK)
	for k := 1; k <= maxK; k++ {
		res, err := e.Run(table, k)
		if err != nil {
			return nil, err
		}
		curve = append(curve, InertiaPoint{K: k, Inertia: res.Inertia})
	}
	return curve, nil
}
