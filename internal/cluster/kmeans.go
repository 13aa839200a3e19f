// Package cluster groups households by their feature vectors with k-means.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
)

// ErrInvalidK is returned when k is outside [1, number of households].
var ErrInvalidK = errors.New("invalid cluster count")

// Params controls the k-means search.
type Params struct {
	// Restarts is the number of independently seeded runs; the one with the
	// lowest inertia wins.
	Restarts int
	// MaxIter caps the Lloyd iterations of each run.
	MaxIter int
	// Seed makes runs reproducible.
	Seed uint64
}

// DefaultParams returns 10 restarts, 300 iterations and seed 42.
func DefaultParams() Params {
	return Params{Restarts: 10, MaxIter: 300, Seed: 42}
}

// Engine runs k-means over feature tables. It holds no state between calls
// and is safe for concurrent use.
type Engine struct {
	params Params
}

// New creates an engine. Zero Restarts or MaxIter take the defaults.
func New(p Params) *Engine {
	d := DefaultParams()
	if p.Restarts <= 0 {
		p.Restarts = d.Restarts
	}
	if p.MaxIter <= 0 {
		p.MaxIter = d.MaxIter
	}
	return &Engine{params: p}
}

// Params returns the engine's effective parameters.
func (e *Engine) Params() Params { return e.params }

// Result is the best clustering found for one k.
type Result struct {
	K int
	// Households and Assignments are parallel and follow the table order.
	Households  []string
	Assignments []int
	Labels      map[string]int
	Centroids   [][]float64
	Inertia     float64
	Iterations  int
	Converged   bool
}

// Run clusters the table's rows into k groups.
//
// Cluster numbers are canonical: cluster 0 holds the first household in
// table order, cluster 1 the first household not in cluster 0, and so on.
func (e *Engine) Run(table *model.FeatureTable, k int) (*Result, error) {
	if table == nil {
		return nil, fmt.Errorf("feature table is nil")
	}
	n := table.Len()
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d with %d households", ErrInvalidK, k, n)
	}

	rng := rand.New(rand.NewPCG(e.params.Seed, uint64(k)))
	var best *lloyd
	for r := 0; r < e.params.Restarts; r++ {
		run := newLloyd(table.Rows, k)
		run.seed(rng)
		run.iterate(e.params.MaxIter)
		if best == nil || run.inertia < best.inertia {
			best = run
		}
	}
	if !best.converged {
		monitoring.Logf("[cluster] k=%d: no convergence within %d iterations, inertia %.4f",
			k, e.params.MaxIter, best.inertia)
	}
	best.relabel()

	res := &Result{
		K:           k,
		Households:  append([]string(nil), table.Households...),
		Assignments: best.assign,
		Labels:      make(map[string]int, n),
		Centroids:   best.centroids,
		Inertia:     best.inertia,
		Iterations:  best.iterations,
		Converged:   best.converged,
	}
	for i, h := range res.Households {
		res.Labels[h] = res.Assignments[i]
	}
	return res, nil
}

// Sizes returns the number of households in each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, r.K)
	for _, c := range r.Assignments {
		sizes[c]++
	}
	return sizes
}

// Members returns the households of cluster c in table order.
func (r *Result) Members(c int) []string {
	var out []string
	for i, a := range r.Assignments {
		if a == c {
			out = append(out, r.Households[i])
		}
	}
	return out
}

// ClusterMeans averages the rows of table per cluster. Households of table
// without a label are ignored; a cluster with no rows in table gets a nil mean.
func (r *Result) ClusterMeans(table *model.FeatureTable) [][]float64 {
	means := make([][]float64, r.K)
	counts := make([]int, r.K)
	for i, h := range table.Households {
		c, ok := r.Labels[h]
		if !ok {
			continue
		}
		if means[c] == nil {
			means[c] = make([]float64, table.Width())
		}
		floats.Add(means[c], table.Rows[i])
		counts[c]++
	}
	for c := range means {
		if counts[c] > 0 {
			floats.Scale(1/float64(counts[c]), means[c])
		}
	}
	return means
}

// lloyd is a single k-means run.
type lloyd struct {
	points     [][]float64
	k          int
	centroids  [][]float64
	assign     []int
	inertia    float64
	iterations int
	converged  bool
}

func newLloyd(points [][]float64, k int) *lloyd {
	assign := make([]int, len(points))
	for i := range assign {
		assign[i] = -1
	}
	return &lloyd{points: points, k: k, assign: assign}
}

// seed picks initial centroids with k-means++: the first uniformly, each
// next one with probability proportional to its squared distance from the
// nearest centroid chosen so far.
func (l *lloyd) seed(rng *rand.Rand) {
	n := len(l.points)
	l.centroids = make([][]float64, 0, l.k)
	l.centroids = append(l.centroids, clone(l.points[rng.IntN(n)]))

	d2 := make([]float64, n)
	for i, p := range l.points {
		d2[i] = sqDist(p, l.centroids[0])
	}
	for len(l.centroids) < l.k {
		next := rng.IntN(n)
		if total := floats.Sum(d2); total > 0 {
			target := rng.Float64() * total
			for i, w := range d2 {
				target -= w
				if target < 0 {
					next = i
					break
				}
			}
		}
		c := clone(l.points[next])
		l.centroids = append(l.centroids, c)
		for i, p := range l.points {
			d2[i] = math.Min(d2[i], sqDist(p, c))
		}
	}
}

func (l *lloyd) iterate(maxIter int) {
	for l.iterations = 1; l.iterations <= maxIter; l.iterations++ {
		if !l.assignAll() {
			l.converged = true
			break
		}
		l.update()
	}
	if !l.converged {
		l.iterations = maxIter
		l.assignAll()
	}
	l.inertia = 0
	for i, p := range l.points {
		l.inertia += sqDist(p, l.centroids[l.assign[i]])
	}
}

// assignAll moves every point to its nearest centroid. A point stays in its
// current cluster on ties, otherwise the lowest index wins. It reports
// whether any assignment changed.
func (l *lloyd) assignAll() bool {
	changed := false
	for i, p := range l.points {
		best, bestD := 0, math.Inf(1)
		if cur := l.assign[i]; cur >= 0 {
			best, bestD = cur, sqDist(p, l.centroids[cur])
		}
		for c, centroid := range l.centroids {
			if d := sqDist(p, centroid); d < bestD {
				best, bestD = c, d
			}
		}
		if l.assign[i] != best {
			l.assign[i] = best
			changed = true
		}
	}
	return changed
}

// update recomputes centroids as member means. An empty cluster takes the
// point farthest from its own centroid among clusters with more than one
// member.
func (l *lloyd) update() {
	sizes := make([]int, l.k)
	for _, c := range l.assign {
		sizes[c]++
	}
	for c := 0; c < l.k; c++ {
		if sizes[c] > 0 {
			continue
		}
		far, farD := -1, -1.0
		for i, p := range l.points {
			if sizes[l.assign[i]] < 2 {
				continue
			}
			if d := sqDist(p, l.centroids[l.assign[i]]); d > farD {
				far, farD = i, d
			}
		}
		if far < 0 {
			continue
		}
		sizes[l.assign[far]]--
		l.assign[far] = c
		sizes[c]++
	}

	dim := len(l.points[0])
	for c := range l.centroids {
		l.centroids[c] = make([]float64, dim)
	}
	for i, p := range l.points {
		floats.Add(l.centroids[l.assign[i]], p)
	}
	for c := range l.centroids {
		if sizes[c] > 0 {
			floats.Scale(1/float64(sizes[c]), l.centroids[c])
		}
	}
}

// relabel renumbers clusters in order of first appearance.
func (l *lloyd) relabel() {
	mapping := make([]int, l.k)
	for c := range mapping {
		mapping[c] = -1
	}
	next := 0
	for _, c := range l.assign {
		if mapping[c] < 0 {
			mapping[c] = next
			next++
		}
	}
	for c := range mapping {
		if mapping[c] < 0 {
			mapping[c] = next
			next++
		}
	}
	centroids := make([][]float64, l.k)
	for c, to := range mapping {
		centroids[to] = l.centroids[c]
	}
	l.centroids = centroids
	for i, c := range l.assign {
		l.assign[i] = mapping[c]
	}
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(p []float64) []float64 { return append([]float64(nil), p...) }
