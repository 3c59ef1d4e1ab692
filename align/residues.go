package align

import (
	"fmt"
	"strings"

	"github.com/motiontree/motiontree/motionerr"
)

// SequenceResidue is one residue of a chain as the aligner sees it: a chain
// position (the author-assigned residue number from the structure file) and
// its one-letter amino acid code.
type SequenceResidue struct {
	ChainPosition int
	OneLetter     byte
}

// AlignMode selects the sequence-identity threshold AlignResidues enforces.
type AlignMode int

const (
	// Standard requires 90% identity between the aligned sequences.
	Standard AlignMode = iota
	// Permissive requires only 40% identity, for conformations known to
	// differ by engineered mutations or large insertions.
	Permissive
)

func (m AlignMode) threshold() float64 {
	if m == Permissive {
		return 0.40
	}
	return 0.90
}

// offsetHeuristicLimit is the "small constant" of the motion tree's offset
// rule: an offset this large or smaller between the two chains' starting
// positions is treated as a genuine gap, not renumbering.
const offsetHeuristicLimit = 10

// Result holds the aligned residue-index mapping produced by AlignResidues.
type Result struct {
	// RI1 and RI2 map a residue index (position in the aligned sequence)
	// to the chain position it came from in conformation 1 and 2
	// respectively. Both have the same length. These are always the real,
	// unmodified chain positions from the input structures.
	RI1, RI2 []int
	// AlignedA and AlignedB are the gapped alignment strings, kept for
	// reference/debugging.
	AlignedA, AlignedB string
	// Identity is the fraction of matched positions over the shorter
	// input sequence.
	Identity float64
	// Renumbered reports whether conformation 2's chain numbering began
	// far enough ahead of conformation 1's to be treated as renumbering
	// rather than a genuine structural gap. Diagnostic only: it does not
	// change RI1 or RI2, which always carry real chain positions.
	Renumbered bool
}

// AlignResidues computes a global alignment between two residue sequences
// and derives the equal-length, index-aligned residue-index (RI) mapping
// the rest of the pipeline operates on.
//
// If conformation 2's first chain position is more than offsetHeuristicLimit
// greater than conformation 1's, the pair is flagged Renumbered: a large
// numeric jump between otherwise-contiguous chains is far more often
// renumbering than a genuine structural gap. The flag is informational only
// -- RI1 and RI2 always hold the real chain positions callers need to look
// residues up in the source structures.
//
// Fails with a motionerr.Kind of SeqIdentityLow if the fraction of matched
// positions (over the shorter sequence) falls below mode's threshold.
func AlignResidues(seq1, seq2 []SequenceResidue, mode AlignMode) (Result, error) {
	if len(seq1) == 0 || len(seq2) == 0 {
		return Result{}, motionerr.New(motionerr.SeqIdentityLow, "empty residue sequence")
	}

	renumbered := seq2[0].ChainPosition-seq1[0].ChainPosition > offsetHeuristicLimit

	strA := oneLetterString(seq1)
	strB := oneLetterString(seq2)

	scoring := NewScoring(-1)
	_, alignedA, alignedB, err := NeedlemanWunsch(strA, strB, scoring)
	if err != nil {
		return Result{}, fmt.Errorf("aligning residues: %w", err)
	}

	matched := 0
	compared := 0
	var ri1, ri2 []int
	i, j := 0, 0 // cursor into seq1, seq2 (skipping gaps as we walk)
	for pos := 0; pos < len(alignedA); pos++ {
		aChar, bChar := alignedA[pos], alignedB[pos]
		aGap := aChar == '-'
		bGap := bChar == '-'

		if !aGap && !bGap {
			compared++
			if aChar == bChar {
				matched++
			}
			ri1 = append(ri1, seq1[i].ChainPosition)
			ri2 = append(ri2, seq2[j].ChainPosition)
		}
		if !aGap {
			i++
		}
		if !bGap {
			j++
		}
	}

	shorter := len(seq1)
	if len(seq2) < shorter {
		shorter = len(seq2)
	}
	identity := float64(matched) / float64(shorter)

	if identity < mode.threshold() {
		return Result{}, motionerr.New(motionerr.SeqIdentityLow,
			fmt.Sprintf("sequence identity %.3f below threshold %.2f", identity, mode.threshold()))
	}

	return Result{
		RI1:        ri1,
		RI2:        ri2,
		AlignedA:   alignedA,
		AlignedB:   alignedB,
		Identity:   identity,
		Renumbered: renumbered,
	}, nil
}

func oneLetterString(seq []SequenceResidue) string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, r := range seq {
		b.WriteByte(r.OneLetter)
	}
	return b.String()
}
