/*
Package geom builds the intra-chain Euclidean distance matrix a motion tree
run compares between two conformations (spec's Coordinate & Distance
Builder, component B).

It operates on plain alpha-carbon coordinates, not on any particular
structural file format: structfile and other residue sources feed it a
slice of ResidueCoord, keeping the distance-matrix math independent of how
those coordinates were obtained.
*/
package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/motiontree/motiontree/motionerr"
)

// Coord is a point in 3-space, the alpha-carbon position of one residue.
type Coord struct {
	X, Y, Z float64
}

// Sub returns c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{c.X - o.X, c.Y - o.Y, c.Z - o.Z}
}

// Norm returns the Euclidean length of c.
func (c Coord) Norm() float64 {
	return math.Sqrt(c.X*c.X + c.Y*c.Y + c.Z*c.Z)
}

// Distance returns the Euclidean distance between two coordinates.
func Distance(a, b Coord) float64 {
	return a.Sub(b).Norm()
}

// ResidueCoord is one residue's alpha-carbon coordinate as selected from a
// structure: HasCA is false when the canonical backbone atom ("CA") was not
// present on that residue.
type ResidueCoord struct {
	ChainPosition int
	CA            Coord
	HasCA         bool
}

// BuildCoordinates selects the alpha-carbon coordinate of every residue in
// order, failing with motionerr.MissingBackbone if any residue lacks one.
func BuildCoordinates(residues []ResidueCoord) ([]Coord, error) {
	coords := make([]Coord, len(residues))
	for i, r := range residues {
		if !r.HasCA {
			return nil, motionerr.New(motionerr.MissingBackbone,
				"residue at chain position has no CA atom")
		}
		coords[i] = r.CA
	}
	return coords, nil
}

// IntraDistanceMatrix computes the symmetric N×N Euclidean distance matrix
// between every pair of coordinates. Using mat.SymDense (which stores only
// the upper triangle and mirrors reads) guarantees D[i][j] == D[j][i]
// exactly, by construction rather than by convention.
func IntraDistanceMatrix(coords []Coord) *mat.SymDense {
	n := len(coords)
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist := Distance(coords[i], coords[j])
			d.SetSym(i, j, dist)
		}
	}
	return d
}
