// Package pipeline runs declared variants end to end: aggregate the usage
// matrix, then cluster the resulting feature table.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smart-meter-exploration/internal/cluster"
	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
	"smart-meter-exploration/internal/variant"
)

// ErrNoHouseholds is returned when aggregation leaves nothing to cluster.
var ErrNoHouseholds = errors.New("no households left after aggregation")

// Outcome is the result of clustering one variant.
type Outcome struct {
	RunID    string
	Variant  variant.Descriptor
	Table    *model.FeatureTable
	Result   *cluster.Result
	Duration time.Duration
	// Err is set instead of Table/Result when the variant failed in a batch.
	Err error
}

// Curve is the inertia curve of one variant.
type Curve struct {
	RunID   string
	Variant string
	Points  []cluster.InertiaPoint
	Err     error
}

// Runner executes variants against one shared, read-only usage matrix.
type Runner struct {
	matrix   *model.UsageMatrix
	registry *variant.Registry
	engine   *cluster.Engine
	cache    *Cache
}

func New(m *model.UsageMatrix, registry *variant.Registry, engine *cluster.Engine) *Runner {
	return &Runner{matrix: m, registry: registry, engine: engine}
}

// WithCache makes the runner reuse results for repeated requests. Results
// depend only on the matrix, the variant and the engine parameters, so a
// cache must not be shared between runners.
func (r *Runner) WithCache(c *Cache) *Runner {
	r.cache = c
	return r
}

func (r *Runner) Registry() *variant.Registry { return r.registry }

func (r *Runner) Matrix() *model.UsageMatrix { return r.matrix }

// Run clusters a single variant and returns the first error encountered.
func (r *Runner) Run(name string) (*Outcome, error) {
	d, err := r.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	if o, ok := r.cache.outcome(name); ok {
		return o, nil
	}
	o, err := r.run(uuid.NewString(), d)
	if err != nil {
		return nil, err
	}
	r.cache.putOutcome(name, o)
	return o, nil
}

// RunAll clusters every variant in declaration order. A failing variant is
// logged and reported in its Outcome; the others still run.
func (r *Runner) RunAll() []Outcome {
	runID := uuid.NewString()
	all := r.registry.All()
	out := make([]Outcome, 0, len(all))
	for _, d := range all {
		o, err := r.safeRun(runID, d)
		if err != nil {
			monitoring.Logf("[pipeline] run %s: variant %s failed: %v", runID, d.Name, err)
			out = append(out, Outcome{RunID: runID, Variant: d, Err: err})
			continue
		}
		out = append(out, *o)
	}
	return out
}

// InertiaCurve computes k = 1..maxK inertia for one variant.
func (r *Runner) InertiaCurve(name string, maxK int) (*Curve, error) {
	d, err := r.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	if c, ok := r.cache.curve(name, maxK); ok {
		return c, nil
	}
	c, err := r.inertia(uuid.NewString(), d, maxK)
	if err != nil {
		return nil, err
	}
	r.cache.putCurve(name, maxK, c)
	return c, nil
}

// InertiaCurves computes the inertia curve of every variant, fail-soft.
func (r *Runner) InertiaCurves(maxK int) []Curve {
	runID := uuid.NewString()
	all := r.registry.All()
	out := make([]Curve, 0, len(all))
	for _, d := range all {
		c, err := r.safeInertia(runID, d, maxK)
		if err != nil {
			monitoring.Logf("[pipeline] run %s: inertia for %s failed: %v", runID, d.Name, err)
			out = append(out, Curve{RunID: runID, Variant: d.Name, Err: err})
			continue
		}
		out = append(out, *c)
	}
	return out
}

func (r *Runner) produce(d variant.Descriptor) (*model.FeatureTable, error) {
	table, err := d.Producer.Produce(r.matrix)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", d.Name, err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", d.Name, err)
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("%s: %w (%d excluded)", d.Name, ErrNoHouseholds, len(table.Excluded))
	}
	return table, nil
}

func (r *Runner) run(runID string, d variant.Descriptor) (*Outcome, error) {
	start := time.Now()
	table, err := r.produce(d)
	if err != nil {
		return nil, err
	}
	res, err := r.engine.Run(table, d.K)
	if err != nil {
		return nil, fmt.Errorf("cluster %s: %w", d.Name, err)
	}
	o := &Outcome{
		RunID:    runID,
		Variant:  d,
		Table:    table,
		Result:   res,
		Duration: time.Since(start),
	}
	monitoring.Logf("[pipeline] run %s: %s k=%d households=%d inertia=%.4f in %s",
		runID, d.Name, d.K, table.Len(), res.Inertia, o.Duration.Round(time.Millisecond))
	return o, nil
}

func (r *Runner) inertia(runID string, d variant.Descriptor, maxK int) (*Curve, error) {
	table, err := r.produce(d)
	if err != nil {
		return nil, err
	}
	points, err := r.engine.InertiaCurve(table, maxK)
	if err != nil {
		return nil, fmt.Errorf("inertia %s: %w", d.Name, err)
	}
	return &Curve{RunID: runID, Variant: d.Name, Points: points}, nil
}

// safeRun turns a panic inside one variant into an error.
func (r *Runner) safeRun(runID string, d variant.Descriptor) (o *Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.run(runID, d)
}

func (r *Runner) safeInertia(runID string, d variant.Descriptor, maxK int) (c *Curve, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.inertia(runID, d, maxK)
}
