package extsort

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Error wraps a failure with the pipeline stage that produced it, mirroring
// the sortengine package's own Error type.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extsort: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// ErrDiskFull is returned when flushing a run to its temporary file fails;
// spec 4.6 treats this as fatal rather than recoverable.
var ErrDiskFull = errors.New("extsort: write error flushing run (disk full?)")

// warnings accumulates non-fatal problems encountered along the way — most
// notably a temp file that could not be unlinked during cleanup — using
// hashicorp/go-multierror so callers that want the detail can inspect every
// one, while a caller that just wants "did anything go wrong" can still
// treat the aggregate as a single error.
type warnings struct {
	err *multierror.Error
}

func (w *warnings) add(op string, err error) {
	if err == nil {
		return
	}
	w.err = multierror.Append(w.err, wrapErr(op, err))
}

func (w *warnings) errorOrNil() error {
	if w.err == nil {
		return nil
	}
	return w.err.ErrorOrNil()
}
