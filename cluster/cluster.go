/*
Package cluster implements the constrained agglomerative clustering engine
that turns a distance-difference matrix into a Motion Tree: component D of
the pipeline, and the one this module spends most of its line budget on.

An Engine owns its cluster table and working matrix outright (see the
package doc of motiontree itself for the single-threaded run model); no
other goroutine may observe or mutate them while Run is in flight.
*/
package cluster

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/motiontree/motiontree/diffmatrix"
	"github.com/motiontree/motiontree/motionerr"
)

// Params bundles the clustering engine's five tunable thresholds.
type Params struct {
	// SpatialProximity (sigma) is the maximum intra-chain CA distance
	// allowed for two clusters to be considered spatially adjacent.
	SpatialProximity float64
	// SmallNode (s_min) is the minimum residue count each side of a merge
	// must have to be considered effective.
	SmallNode int
	// ClustSize (C_min) is the minimum combined residue count of a merge
	// to be considered effective.
	ClustSize int
	// Magnitude (mu) is the minimum merge distance for a merge to be
	// considered effective.
	Magnitude int
	// DissimilarityK (k) is how many of the largest inter-residue
	// differences are averaged for inter-cluster linkage.
	DissimilarityK int
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		SpatialProximity: 7.0,
		SmallNode:        5,
		ClustSize:        30,
		Magnitude:        5,
		DissimilarityK:   20,
	}
}

// Validate reports every out-of-bounds field at once as a single
// PARAM_OUT_OF_RANGE error, rather than stopping at the first violation.
func (p Params) Validate() error {
	var violations []string
	if p.SpatialProximity < 4 || p.SpatialProximity > 8 {
		violations = append(violations, fmt.Sprintf("spatial_proximity %.2f out of bounds [4, 8]", p.SpatialProximity))
	}
	if p.SmallNode < 0 || p.SmallNode > 10 {
		violations = append(violations, fmt.Sprintf("small_node %d out of bounds [0, 10]", p.SmallNode))
	}
	if p.ClustSize < 10 || p.ClustSize > 50 {
		violations = append(violations, fmt.Sprintf("clust_size %d out of bounds [10, 50]", p.ClustSize))
	}
	if p.Magnitude < 1 || p.Magnitude > 30 {
		violations = append(violations, fmt.Sprintf("magnitude %d out of bounds [1, 30]", p.Magnitude))
	}
	if p.DissimilarityK < 1 {
		violations = append(violations, fmt.Sprintf("dissimilarity_k %d must be positive", p.DissimilarityK))
	}
	if len(violations) == 0 {
		return nil
	}
	msg := violations[0]
	for _, v := range violations[1:] {
		msg += "; " + v
	}
	return motionerr.New(motionerr.ParamOutOfRange, msg)
}

// LinkageRow is one row of the linkage matrix L: the merge of clusters A
// and B at Distance, producing a cluster of size Size.
type LinkageRow struct {
	A, B     int
	Distance float64
	Size     int
}

// EffectiveNode is a merge that passed the effective-node predicate: a
// reportable hinge between a larger and a smaller rigid domain.
type EffectiveNode struct {
	Magnitude   float64
	LargeDomain []int
	SmallDomain []int
}

// Result is everything the engine produces: the linkage matrix (possibly
// partial, if the run ended in NO_CANDIDATE_PAIR) and the effective nodes
// emitted before that point.
type Result struct {
	Linkage        []LinkageRow
	EffectiveNodes []EffectiveNode
}

// Engine holds the cluster table C, working matrix M, and the two
// conformations' intra-distance matrices the spatial filter consults. It
// is single-owner and single-use: construct one per run with New.
type Engine struct {
	n        int
	params   Params
	d0       *mat.Dense
	d1, d2   *mat.SymDense
	clusters [][]int
	active   []bool
}

// New constructs an Engine ready to cluster the given difference matrix.
// It validates params and requires at least two residues.
func New(dm *diffmatrix.Matrix, params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return newUnchecked(dm, params)
}

// newUnchecked builds an Engine without validating params against their
// documented bounds. Used internally by New, and by white-box tests that
// exercise the merge algorithm in isolation with toy parameter values
// outside the production bounds table.
func newUnchecked(dm *diffmatrix.Matrix, params Params) (*Engine, error) {
	n := dm.N()
	if n < 2 {
		return nil, motionerr.New(motionerr.InvariantViolation,
			"clustering requires at least two residues")
	}

	capacity := 2*n - 1
	clusters := make([][]int, capacity)
	active := make([]bool, capacity)
	for i := 0; i < n; i++ {
		clusters[i] = []int{i}
		active[i] = true
	}

	return &Engine{
		n:        n,
		params:   params,
		d0:       dm.Working,
		d1:       dm.D1,
		d2:       dm.D2,
		clusters: clusters,
		active:   active,
	}, nil
}

// Run executes the N-1 merge iterations described by the clustering
// contract. Cancellation via ctx is cooperative and checked only between
// merge iterations, never mid-iteration, since a cancelled merge would
// leave the cluster table and working matrix inconsistent.
//
// On NO_CANDIDATE_PAIR the returned Result still carries every linkage
// row and effective node emitted before the run aborted.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	var result Result
	capacity := 2*e.n - 1
	m := e.seedWorkingMatrix(capacity)
	nextID := e.n

	for iter := 0; iter < e.n-1; iter++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		a, b, dist, err := e.findAdmissiblePair(m, nextID)
		if err != nil {
			return result, err
		}

		ra, rb := e.clusters[a], e.clusters[b]
		if node, ok := e.effectiveNode(a, b, ra, rb, dist); ok {
			result.EffectiveNodes = append(result.EffectiveNodes, node)
		}

		newID := nextID
		nextID++
		merged := make([]int, 0, len(ra)+len(rb))
		merged = append(merged, ra...)
		merged = append(merged, rb...)
		e.clusters[newID] = merged
		e.active[a] = false
		e.active[b] = false
		e.active[newID] = true

		result.Linkage = append(result.Linkage, LinkageRow{A: a, B: b, Distance: dist, Size: len(merged)})

		e.retireAndLink(m, a, b, newID, merged, nextID)
	}

	return result, nil
}

func (e *Engine) seedWorkingMatrix(capacity int) *mat.Dense {
	m := mat.NewDense(capacity, capacity, nil)
	for i := 0; i < capacity; i++ {
		for j := 0; j < capacity; j++ {
			m.Set(i, j, math.Inf(1))
		}
	}
	for i := 0; i < e.n; i++ {
		for j := 0; j < e.n; j++ {
			if i == j {
				continue
			}
			m.Set(i, j, e.d0.At(i, j))
		}
	}
	return m
}

// findAdmissiblePair runs candidate search and the spatial-proximity
// filter together: repeatedly take the row-major argmin over active pairs
// not yet rejected this iteration, until one passes admissibility or none
// remain.
func (e *Engine) findAdmissiblePair(m *mat.Dense, upTo int) (a, b int, dist float64, err error) {
	visited := make(map[[2]int]bool)
	for {
		a, b, dist, ok := e.argmin(m, upTo, visited)
		if !ok {
			return 0, 0, 0, motionerr.New(motionerr.NoCandidatePair,
				"no admissible pair remains this iteration")
		}
		if e.admissible(e.clusters[a], e.clusters[b]) {
			return a, b, dist, nil
		}
		visited[pairKey(a, b)] = true
	}
}

// argmin finds the row-major-smallest M[i][j] among active, non-visited
// pairs i<j. Row-major traversal order makes ties deterministic: the
// first-encountered minimum wins, since later candidates only replace it
// on a strictly smaller distance.
func (e *Engine) argmin(m *mat.Dense, upTo int, visited map[[2]int]bool) (a, b int, dist float64, ok bool) {
	best := math.Inf(1)
	bestA, bestB := -1, -1
	for i := 0; i < upTo; i++ {
		if !e.active[i] {
			continue
		}
		for j := i + 1; j < upTo; j++ {
			if !e.active[j] || visited[pairKey(i, j)] {
				continue
			}
			d := m.At(i, j)
			if d < best {
				best = d
				bestA, bestB = i, j
			}
		}
	}
	if bestA < 0 {
		return 0, 0, 0, false
	}
	return bestA, bestB, best, true
}

// admissible implements the spatial-proximity filter: witnesses must
// exist in both conformations, though not at the same residue pair. Each
// conformation's search exits as soon as one witness is found.
func (e *Engine) admissible(ra, rb []int) bool {
	return hasWitness(e.d1, ra, rb, e.params.SpatialProximity) &&
		hasWitness(e.d2, ra, rb, e.params.SpatialProximity)
}

func hasWitness(d *mat.SymDense, ra, rb []int, sigma float64) bool {
	for _, i := range ra {
		for _, j := range rb {
			if d.At(i, j) < sigma {
				return true
			}
		}
	}
	return false
}

// effectiveNode applies the four-gate predicate and, if it passes, builds
// the node with large_domain/small_domain assigned by size (ties broken
// toward the smaller cluster id) and both lists sorted ascending.
func (e *Engine) effectiveNode(a, b int, ra, rb []int, dist float64) (EffectiveNode, bool) {
	p := e.params
	if dist < float64(p.Magnitude) || len(ra) < p.SmallNode || len(rb) < p.SmallNode || len(ra)+len(rb) < p.ClustSize {
		return EffectiveNode{}, false
	}

	large, small := ra, rb
	if len(rb) > len(ra) || (len(rb) == len(ra) && b < a) {
		large, small = rb, ra
	}

	return EffectiveNode{
		Magnitude:   dist,
		LargeDomain: sortedCopy(large),
		SmallDomain: sortedCopy(small),
	}, true
}

// retireAndLink sets the merged clusters' rows/columns to +Inf and
// computes the new cluster's linkage distance to every remaining active
// cluster via the average-of-top-k-largest-differences rule.
func (e *Engine) retireAndLink(m *mat.Dense, a, b, newID int, merged []int, upTo int) {
	for i := 0; i < upTo; i++ {
		m.Set(a, i, math.Inf(1))
		m.Set(i, a, math.Inf(1))
		m.Set(b, i, math.Inf(1))
		m.Set(i, b, math.Inf(1))
	}

	k := e.params.DissimilarityK
	for c := 0; c < newID; c++ {
		if !e.active[c] {
			continue
		}
		rc := e.clusters[c]
		delta := make([]float64, 0, len(merged)*len(rc))
		for _, i := range merged {
			for _, j := range rc {
				delta = append(delta, e.d0.At(i, j))
			}
		}
		sort.SliceStable(delta, func(x, y int) bool { return delta[x] > delta[y] })

		n := len(delta)
		if n > k {
			n = k
		}
		sum := 0.0
		for _, v := range delta[:n] {
			sum += v
		}
		avg := sum / float64(n)
		m.Set(newID, c, avg)
		m.Set(c, newID, avg)
	}
}

func sortedCopy(ris []int) []int {
	out := make([]int, len(ris))
	copy(out, ris)
	sort.Ints(out)
	return out
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
