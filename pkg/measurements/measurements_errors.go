package measurements

import (
	"github.com/pkg/errors"
)

// IoError is returned when the output directory or file cannot be
// created or written to.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IoError) Cause() error  { return e.Err }
func (e *IoError) Unwrap() error { return e.Err }

// IsIoError reports whether err is or wraps an *IoError.
func IsIoError(err error) bool {
	var ioe *IoError
	return errors.As(err, &ioe)
}
