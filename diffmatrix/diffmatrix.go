/*
Package diffmatrix builds the distance-difference matrix D0 a motion tree
run hands to the clustering engine (component C): the entrywise absolute
difference of the two conformations' intra-chain distance matrices.

A pre-mask copy is kept alongside the working copy: the output formatter
renders the raw differences, including the diagonal, while the clustering
engine works against a copy whose diagonal has been driven to +Inf so that
no residue is ever proposed as its own nearest neighbour.
*/
package diffmatrix

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/motiontree/motiontree/motionerr"
)

// Matrix holds both the persisted (unmasked) and working (diagonal-masked)
// copies of D0, plus the two conformations' intra-distance matrices the
// clustering engine's spatial-proximity filter consults directly.
type Matrix struct {
	// Persisted is D0 as computed, diagonal included. Owned by the output
	// formatter; the clustering engine never mutates it.
	Persisted *mat.Dense
	// Working is Persisted's entries with the diagonal set to +Inf, the
	// copy the clustering engine's working matrix M is seeded from.
	Working *mat.Dense
	// D1, D2 are the two conformations' intra-distance matrices, consulted
	// by the spatial-proximity admissibility filter.
	D1, D2 *mat.SymDense
}

// Build computes D0[i,j] = |D1[i,j] - D2[i,j]| from two equal-sized
// intra-distance matrices. It fails with motionerr.InvariantViolation if
// the two matrices' dimensions disagree, since component B guarantees
// both are built over the same aligned residue count N.
func Build(d1, d2 *mat.SymDense) (*Matrix, error) {
	n1, _ := d1.Dims()
	n2, _ := d2.Dims()
	if n1 != n2 {
		return nil, motionerr.New(motionerr.InvariantViolation,
			"intra-distance matrices have mismatched dimensions")
	}
	n := n1

	persisted := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			persisted.Set(i, j, math.Abs(d1.At(i, j)-d2.At(i, j)))
		}
	}

	working := mat.DenseCopyOf(persisted)
	for i := 0; i < n; i++ {
		working.Set(i, i, math.Inf(1))
	}

	return &Matrix{
		Persisted: persisted,
		Working:   working,
		D1:        d1,
		D2:        d2,
	}, nil
}

// N returns the dimension of D0.
func (m *Matrix) N() int {
	n, _ := m.Persisted.Dims()
	return n
}
