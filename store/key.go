package store

import (
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

// PairKey identifies a protein pair independent of any clustering
// parameters: the two structure identifiers and the chain selected from
// each.
type PairKey struct {
	P1, C1 string
	P2, C2 string
}

// RunKey identifies one clustering run over a PairKey: the pair plus the
// four parameters that produced its Motion Tree.
type RunKey struct {
	PairKey
	Sigma     float64
	SmallNode int
	ClustSize int
	Magnitude int
}

// Digest derives a stable cache key for a run the way the teacher's
// Blake3SequenceHash derives one for a sequence: hash the canonical
// string form and hex-encode it. The digest covers all eight fields
// (the four pair fields and the four parameters).
func (k RunKey) Digest() string {
	canonical := fmt.Sprintf("%s|%s|%s|%s|%.6f|%d|%d|%d",
		k.P1, k.C1, k.P2, k.C2, k.Sigma, k.SmallNode, k.ClustSize, k.Magnitude)
	sum := blake3.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
