/*
Package motionerr defines the motion tree's error taxonomy: a small set of
tagged kinds every package-boundary error carries, the way
io/pdbx/cif.CIFSyntaxError tags a parse error with a line number instead of
returning a bare string.

Engine-internal errors abort the run that raised them and surface as one of
these kinds; only STORE_FAILURE is recovered (by falling back to
recomputation) rather than surfaced to the caller.
*/
package motionerr

import "fmt"

// Kind identifies which of spec's error-taxonomy entries an Error reports.
type Kind string

const (
	// InputMissing: a required structural file is absent and remote fetch failed.
	InputMissing Kind = "INPUT_MISSING"
	// ChainNotFound: the requested chain identifier does not exist in the structure.
	ChainNotFound Kind = "CHAIN_NOT_FOUND"
	// MissingBackbone: a selected residue lacks its alpha-carbon.
	MissingBackbone Kind = "MISSING_BACKBONE"
	// SeqIdentityLow: alignment identity fell under the configured threshold.
	SeqIdentityLow Kind = "SEQ_IDENTITY_LOW"
	// NoCandidatePair: clustering cannot proceed; partial results are retained.
	NoCandidatePair Kind = "NO_CANDIDATE_PAIR"
	// ParamOutOfRange: a clustering parameter is outside its documented bounds.
	ParamOutOfRange Kind = "PARAM_OUT_OF_RANGE"
	// IOFailure: an output artifact could not be written.
	IOFailure Kind = "IO_FAILURE"
	// StoreFailure: the persistent store is unreachable or returned an
	// inconsistent row. Recovered locally by recomputation.
	StoreFailure Kind = "STORE_FAILURE"
	// InvariantViolation: an internal invariant the engine assumed always
	// holds did not. Should be impossible; indicates a bug.
	InvariantViolation Kind = "INVARIANT_VIOLATION"
)

// Error is a tagged error value. It never crosses a package boundary
// unwrapped: callers should use errors.As to recover the Kind.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap creates an Error of the given kind that wraps an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the wrapped error, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, motionerr.New(motionerr.SeqIdentityLow, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
