/*
Package align performs global pairwise sequence alignment between the
one-letter residue codes of two conformations of the same protein chain.

The rest of the motion tree pipeline needs an index mapping between
residues of conformation 1 and conformation 2, not a general-purpose
alignment toolkit, so this package is intentionally narrow: Needleman-Wunsch
global alignment, a numeric sequence-identity check, and the residue-index
walk described in the motion tree's residue-aligner contract.
*/
package align

import (
	"github.com/motiontree/motiontree/align/matrix"
)

// Scoring holds the scoring matrix and gap penalty used by NeedlemanWunsch.
type Scoring struct {
	SubstitutionMatrix *matrix.SubstitutionMatrix
	GapPenalty         int
}

// NewScoring returns a Scoring over the standard amino acid alphabet with
// the given gap penalty and a uniform +1/-1 match/mismatch score.
func NewScoring(gapPenalty int) Scoring {
	return Scoring{
		SubstitutionMatrix: matrix.UniformAminoAcid(1, -1),
		GapPenalty:         gapPenalty,
	}
}

func (s Scoring) score(a, b byte) (int, error) {
	return s.SubstitutionMatrix.Score(string(a), string(b))
}

// NeedlemanWunsch performs global alignment between two strings using the
// Needleman-Wunsch algorithm. It returns the final score and the optimal
// alignments of the two strings in O(nm) time and O(nm) space.
// https://en.wikipedia.org/wiki/Needleman-Wunsch_algorithm
func NeedlemanWunsch(stringA string, stringB string, scoring Scoring) (int, string, string, error) {
	// Get the M and N dimensions of the matrix. The M x N matrix is standard linear algebra notation.
	// But columns/rows are spelled out in the variable names to make the dimensions unambiguous.
	columnLengthM, rowLengthN := len(stringA), len(stringB)

	matrix := make([][]int, columnLengthM+1)
	for columnM := range matrix {
		matrix[columnM] = make([]int, rowLengthN+1)
	}

	// Fill in the first column and row with gap penalties.
	for columnM := 1; columnM <= columnLengthM; columnM++ {
		matrix[columnM][0] = matrix[columnM-1][0] + scoring.GapPenalty
	}
	for rowN := 1; rowN <= rowLengthN; rowN++ {
		matrix[0][rowN] = matrix[0][rowN-1] + scoring.GapPenalty
	}

	for columnM := 1; columnM <= columnLengthM; columnM++ {
		for rowN := 1; rowN <= rowLengthN; rowN++ {
			matchScore, err := scoring.score(stringA[columnM-1], stringB[rowN-1])
			if err != nil {
				return 0, "", "", err
			}
			matrix[columnM][rowN] = max(
				matrix[columnM-1][rowN-1]+matchScore,
				max(matrix[columnM-1][rowN]+scoring.GapPenalty, matrix[columnM][rowN-1]+scoring.GapPenalty),
			)
		}
	}

	// Traceback to find the optimal alignment.
	var alignA, alignB []rune
	columnM, rowN := columnLengthM, rowLengthN
	for columnM > 0 && rowN > 0 {
		matchScore, err := scoring.score(stringA[columnM-1], stringB[rowN-1])
		if err != nil {
			return 0, "", "", err
		}
		switch {
		case matrix[columnM][rowN] == matrix[columnM-1][rowN-1]+matchScore:
			alignA = append(alignA, rune(stringA[columnM-1]))
			alignB = append(alignB, rune(stringB[rowN-1]))
			columnM--
			rowN--
		case matrix[columnM][rowN] == matrix[columnM-1][rowN]+scoring.GapPenalty:
			alignA = append(alignA, rune(stringA[columnM-1]))
			alignB = append(alignB, '-')
			columnM--
		default:
			alignA = append(alignA, '-')
			alignB = append(alignB, rune(stringB[rowN-1]))
			rowN--
		}
	}
	for columnM > 0 {
		alignA = append(alignA, rune(stringA[columnM-1]))
		alignB = append(alignB, '-')
		columnM--
	}
	for rowN > 0 {
		alignA = append(alignA, '-')
		alignB = append(alignB, rune(stringB[rowN-1]))
		rowN--
	}

	alignA = reverseRuneArray(alignA)
	alignB = reverseRuneArray(alignB)
	return matrix[columnLengthM][rowLengthN], string(alignA), string(alignB), nil
}

func reverseRuneArray(runes []rune) []rune {
	length := len(runes)
	for index := 0; index < length/2; index++ {
		reverseIndex := length - index - 1
		runes[index], runes[reverseIndex] = runes[reverseIndex], runes[index]
	}
	return runes
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
