package merge

import "github.com/pkg/errors"

// Kind classifies the fatal error conditions the merge core can raise.
type Kind int

const (
	// InputReadError means an input graph or index could not be opened.
	InputReadError Kind = iota
	// PathLengthMismatch means a shared path name has different summed
	// effective from-lengths in the two inputs.
	PathLengthMismatch
	// PathMisalignment means two path iterators did not end simultaneously.
	PathMisalignment
	// NonPerfectMapping means a mapping being merged is not a perfect match.
	NonPerfectMapping
	// MissingEmbedding means a mapping refers to a node id with no
	// embedding entry.
	MissingEmbedding
	// UsageError means the caller's options are invalid, e.g. KmersOnly
	// without KmerSize set.
	UsageError
)

func (k Kind) String() string {
	switch k {
	case InputReadError:
		return "InputReadError"
	case PathLengthMismatch:
		return "PathLengthMismatch"
	case PathMisalignment:
		return "PathMisalignment"
	case NonPerfectMapping:
		return "NonPerfectMapping"
	case MissingEmbedding:
		return "MissingEmbedding"
	case UsageError:
		return "UsageError"
	default:
		return "UnknownKind"
	}
}

// Error is the error type merge returns for every fatal condition it
// detects. Structural errors found during merging are returned as *Error
// rather than aborting the process, so callers (tests or cmd/corg) can
// inspect Kind before deciding to exit.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

// Unwrap lets errors.Is/As from the standard library see through to Cause.
func (e *Error) Unwrap() error { return e.Cause }

// newError builds an *Error with a formatted message.
func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: errors.Errorf(format, args...).Error()}
}

// wrapError builds an *Error that wraps an underlying cause.
func wrapError(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: errors.Wrapf(cause, format, args...).Error(), Cause: cause}
}
