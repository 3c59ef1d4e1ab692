/*
Package matrix provides a struct for substitution matrices.
*/

package matrix

import (
	"fmt"

	"github.com/motiontree/motiontree/alphabet"
)

// SubstitutionMatrix is a struct that holds a substitution matrix and the two alphabets that the matrix is defined over.
type SubstitutionMatrix struct {
	FirstAlphabet  *alphabet.Alphabet
	SecondAlphabet *alphabet.Alphabet
	scores         [][]int
}

// NewSubstitutionMatrix creates a new substitution matrix from two alphabets and a 2D array of scores.
func NewSubstitutionMatrix(firstAlphabet, secondAlphabet *alphabet.Alphabet, scores [][]int) (*SubstitutionMatrix, error) {
	if len(firstAlphabet.Symbols()) != len(scores) || len(secondAlphabet.Symbols()) != len(scores[0]) {
		return nil, fmt.Errorf("invalid dimensions of substitution matrix")
	}
	return &SubstitutionMatrix{firstAlphabet, secondAlphabet, scores}, nil
}

// Score returns the score of two symbols in the substitution matrix.
func (matrix *SubstitutionMatrix) Score(a, b string) (int, error) {
	firstSymbolIndex, err := matrix.FirstAlphabet.Encode(a)
	if err != nil {
		return 0, err
	}
	secondSymbolIndex, err := matrix.SecondAlphabet.Encode(b)
	if err != nil {
		return 0, err
	}
	return matrix.scores[firstSymbolIndex][secondSymbolIndex], nil
}

// AminoAcids is the alphabet of the 20 standard one-letter amino acid codes
// plus "X" for an unresolved residue and "-" for a gap.
var AminoAcids = alphabet.NewAlphabet([]string{
	"-", "A", "R", "N", "D", "C", "Q", "E", "G", "H", "I",
	"L", "K", "M", "F", "P", "S", "T", "W", "Y", "V", "X",
})

// UniformAminoAcid builds a SubstitutionMatrix over AminoAcids that scores
// every identical pair as match and every other pair as mismatch. Residue
// identity, not biochemical similarity, is what the motion tree's alignment
// step needs: the aligner exists to produce an index mapping between two
// conformations of the same protein, not to score evolutionary
// substitutions.
func UniformAminoAcid(match, mismatch int) *SubstitutionMatrix {
	n := len(AminoAcids.Symbols())
	scores := make([][]int, n)
	for i := range scores {
		row := make([]int, n)
		for j := range row {
			if i == j {
				row[j] = match
			} else {
				row[j] = mismatch
			}
		}
		scores[i] = row
	}
	m, _ := NewSubstitutionMatrix(AminoAcids, AminoAcids, scores)
	return m
}
