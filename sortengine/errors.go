package sortengine

import (
	"errors"
	"fmt"
)

// Error wraps a failure occurring inside the sort engine with the operation
// that produced it, following the same Op+Err wrapping shape the rest of
// this module's ambient code uses.
type Error struct {
	Op  string // operation that failed, e.g. "heapsort", "sort"
	N   int    // segment length involved, 0 if not segment-specific
	Err error
}

func (e *Error) Error() string {
	if e.N > 0 {
		return fmt.Sprintf("sortengine: %s (n=%d): %v", e.Op, e.N, e.Err)
	}
	return fmt.Sprintf("sortengine: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapErr(op string, n int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, N: n, Err: err}
}

// ErrScratchAlloc indicates heapsort could not obtain its displaced-element
// scratch slot. On the reference C implementation this models malloc()
// failure for es>8; in Go, T's scratch is a plain stack value so this can
// only occur via an injected test hook (see heapsortFailInjected), but the
// error type and the degrade-to-quicksort behavior it drives are kept so
// the worst-case guarantee (spec property 5) is exercised even when
// heapsort itself cannot fail in practice.
var ErrScratchAlloc = errors.New("heapsort: could not obtain scratch element")
