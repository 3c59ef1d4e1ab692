package cluster_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"

	"github.com/motiontree/motiontree/cluster"
	"github.com/motiontree/motiontree/diffmatrix"
)

func symFromCoords(coords [][3]float64) *mat.SymDense {
	n := len(coords)
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := coords[i][0] - coords[j][0]
			dy := coords[i][1] - coords[j][1]
			dz := coords[i][2] - coords[j][2]
			d.SetSym(i, j, math.Sqrt(dx*dx+dy*dy+dz*dz))
		}
	}
	return d
}

// TestSingletonIdentityLinkageShape mirrors the "singleton identity" seed
// scenario: three collinear, identical residues. Every merge distance is
// zero; a magnitude gate of 1 keeps both merges non-effective.
func TestSingletonIdentityLinkageShape(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	d1 := symFromCoords(coords)
	d2 := symFromCoords(coords)

	dm, err := diffmatrix.Build(d1, d2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	params := cluster.Params{SpatialProximity: 4, SmallNode: 0, ClustSize: 10, Magnitude: 1, DissimilarityK: 20}
	e, err := cluster.New(dm, params)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Linkage) != 2 {
		t.Fatalf("len(Linkage) = %d, want 2", len(result.Linkage))
	}
	first := result.Linkage[0]
	if !(first.A == 0 && first.B == 1) {
		t.Errorf("first merge = %+v, want (0,1)", first)
	}
	if first.Distance != 0 || first.Size != 2 {
		t.Errorf("first merge = %+v, want distance 0 size 2", first)
	}
	second := result.Linkage[1]
	ids := map[int]bool{second.A: true, second.B: true}
	if !ids[2] || !ids[3] {
		t.Errorf("second merge = %+v, want ids {2,3}", second)
	}
	if second.Distance != 0 || second.Size != 3 {
		t.Errorf("second merge = %+v, want distance 0 size 3", second)
	}
	if len(result.EffectiveNodes) != 0 {
		t.Errorf("len(EffectiveNodes) = %d, want 0", len(result.EffectiveNodes))
	}
}

// TestPureTranslationIdempotence: conformation 2 is conformation 1 plus a
// constant offset, so D1 == D2 exactly and D0 is uniformly zero.
func TestPureTranslationIdempotence(t *testing.T) {
	coords1 := [][3]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	offset := [3]float64{10, 5, -3}
	coords2 := make([][3]float64, len(coords1))
	for i, c := range coords1 {
		coords2[i] = [3]float64{c[0] + offset[0], c[1] + offset[1], c[2] + offset[2]}
	}

	dm, err := diffmatrix.Build(symFromCoords(coords1), symFromCoords(coords2))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	params := cluster.Params{SpatialProximity: 4, SmallNode: 0, ClustSize: 10, Magnitude: 1, DissimilarityK: 20}
	e, err := cluster.New(dm, params)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Linkage) != 3 {
		t.Fatalf("len(Linkage) = %d, want 3", len(result.Linkage))
	}
	for _, row := range result.Linkage {
		if row.Distance != 0 {
			t.Errorf("merge distance = %v, want 0", row.Distance)
		}
	}
	if len(result.EffectiveNodes) != 0 {
		t.Errorf("len(EffectiveNodes) = %d, want 0", len(result.EffectiveNodes))
	}
}

// TestFilterForcesSecondSmallest constructs a 3-residue D0 where the
// globally smallest entry is spatially inadmissible in conformation 1,
// forcing the engine onto the second-smallest, admissible pair.
func TestFilterForcesSecondSmallest(t *testing.T) {
	d1 := mat.NewSymDense(3, nil)
	d1.SetSym(0, 1, 10) // inadmissible: >= sigma
	d1.SetSym(0, 2, 3)  // admissible
	d1.SetSym(1, 2, 3)
	d2 := mat.NewSymDense(3, nil)
	d2.SetSym(0, 1, 3)
	d2.SetSym(0, 2, 3)
	d2.SetSym(1, 2, 3)

	dm, err := diffmatrix.Build(d1, d2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Overwrite D0 directly: (0,1) is the global minimum but blocked by d1;
	// (0,2) is second-smallest and admissible in both conformations.
	dm.Persisted.Set(0, 1, 1)
	dm.Persisted.Set(1, 0, 1)
	dm.Persisted.Set(0, 2, 2)
	dm.Persisted.Set(2, 0, 2)
	dm.Persisted.Set(1, 2, 10)
	dm.Persisted.Set(2, 1, 10)
	dm.Working.Set(0, 1, 1)
	dm.Working.Set(1, 0, 1)
	dm.Working.Set(0, 2, 2)
	dm.Working.Set(2, 0, 2)
	dm.Working.Set(1, 2, 10)
	dm.Working.Set(2, 1, 10)

	params := cluster.Params{SpatialProximity: 5, SmallNode: 0, ClustSize: 10, Magnitude: 1, DissimilarityK: 20}
	e, err := cluster.New(dm, params)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Linkage) == 0 {
		t.Fatal("expected at least one merge")
	}
	first := result.Linkage[0]
	ids := map[int]bool{first.A: true, first.B: true}
	if !ids[0] || !ids[2] {
		t.Errorf("first merge = %+v, want the (0,2) pair forced by the spatial filter", first)
	}
	if first.Distance != 2 {
		t.Errorf("first merge distance = %v, want 2", first.Distance)
	}
}

// TestDeterministicTieBreak runs the same tied-minimum input twice and
// requires byte-identical results both times.
func TestDeterministicTieBreak(t *testing.T) {
	build := func() *diffmatrix.Matrix {
		d1 := mat.NewSymDense(4, nil)
		d2 := mat.NewSymDense(4, nil)
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				d1.SetSym(i, j, 3)
				d2.SetSym(i, j, 3)
			}
		}
		dm, err := diffmatrix.Build(d1, d2)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		// All off-diagonal entries tied at the same value.
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				if i == j {
					continue
				}
				dm.Working.Set(i, j, 5)
				dm.Persisted.Set(i, j, 5)
			}
		}
		return dm
	}

	params := cluster.Params{SpatialProximity: 7, SmallNode: 0, ClustSize: 10, Magnitude: 1, DissimilarityK: 20}

	run := func() cluster.Result {
		e, err := cluster.New(build(), params)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		result, err := e.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return result
	}

	first := run()
	second := run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("non-deterministic run (-first +second):\n%s", diff)
	}
}

func TestParamsValidateReportsAllViolations(t *testing.T) {
	p := cluster.Params{SpatialProximity: 100, SmallNode: -1, ClustSize: 0, Magnitude: 0, DissimilarityK: 20}
	err := p.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, field := range []string{"spatial_proximity", "small_node", "clust_size", "magnitude"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not report %s", err.Error(), field)
		}
	}
}

func TestParamsValidateDefaultsOK(t *testing.T) {
	if err := cluster.DefaultParams().Validate(); err != nil {
		t.Errorf("DefaultParams() should validate, got %v", err)
	}
}

func TestNoCandidatePairPartialResult(t *testing.T) {
	// Two residues far enough apart in both conformations that no
	// admissible pair ever exists.
	d1 := mat.NewSymDense(2, nil)
	d1.SetSym(0, 1, 100)
	d2 := mat.NewSymDense(2, nil)
	d2.SetSym(0, 1, 100)

	dm, err := diffmatrix.Build(d1, d2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	params := cluster.Params{SpatialProximity: 4, SmallNode: 0, ClustSize: 10, Magnitude: 1, DissimilarityK: 20}
	e, err := cluster.New(dm, params)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := e.Run(context.Background())
	if err == nil {
		t.Fatal("expected NO_CANDIDATE_PAIR error, got nil")
	}
	if len(result.Linkage) != 0 {
		t.Errorf("expected no linkage rows, got %d", len(result.Linkage))
	}
}
