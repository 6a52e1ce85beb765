package diag

import (
	"context"
	"errors"
	"os"

	linemax "github.com/luhtfiimanal/go-linemax"
)

// Code is the coarse error class written to the "code" field of error events.
type Code string

const (
	CodeUnknown   Code = "unknown"
	CodeConfig    Code = "config"
	CodeIO        Code = "io"
	CodeResource  Code = "resource"
	CodeInvariant Code = "invariant"
	CodeCancel    Code = "cancel"
)

// Classify maps err to a Code using sentinel errors only.
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCancel
	case errors.Is(err, linemax.ErrConfig):
		return CodeConfig
	case errors.Is(err, linemax.ErrResource):
		return CodeResource
	case errors.Is(err, linemax.ErrInvariant):
		return CodeInvariant
	case errors.Is(err, linemax.ErrIO):
		return CodeIO
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}
