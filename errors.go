package linemax

import "errors"

// Error classes. Every error returned by this package wraps exactly one of
// them so callers can branch with errors.Is.
var (
	// ErrConfig: invalid input path, worker count or option value.
	ErrConfig = errors.New("invalid configuration")
	// ErrIO: the file cannot be opened, sized, mapped or read.
	ErrIO = errors.New("i/o failure")
	// ErrResource: a worker could not grow its result sequence.
	ErrResource = errors.New("resource exhausted")
	// ErrInvariant: partition or merge bookkeeping is inconsistent.
	ErrInvariant = errors.New("invariant violation")
)

// Exit codes used by cmd/linemax.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitConfig   = 2
	ExitIO       = 3
	ExitResource = 4
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrConfig):
		return ExitConfig
	case errors.Is(err, ErrIO):
		return ExitIO
	case errors.Is(err, ErrResource):
		return ExitResource
	default:
		return ExitFailure
	}
}
