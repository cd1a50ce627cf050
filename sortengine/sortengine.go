// Package sortengine implements an in-memory introspective sort (spec
// section 4): a Bentley-McIlroy 3-way quicksort with escalating pivot
// selection, a guaranteed O(n log n) heapsort fallback, and optional
// goroutine-pool parallelism for large inputs.
package sortengine

// Sort sorts data in place according to cmp, applying opts over the
// suggested defaults from spec.md section 4. Sort dispatches by size (spec
// 4.1/4.4):
//
//   - n <= SmallThreshold: a direct binary-insertion sort, no quicksort
//     machinery involved at all.
//   - otherwise: the introspective quicksort driver, escalating to
//     heapsort per segment once that segment's iteration budget is spent.
//
// When MaxThreads > 1 and n is at least ParallelMinSize, Sort builds a
// fresh *ThreadPool scoped to this call only (never a shared package-level
// pool) and the driver may spawn the smaller of each 3-way partition's two
// non-equal bands onto it.
func Sort[T any](data []T, cmp CompareFunc[T], opts ...Option) error {
	c := buildConfig(opts)

	if len(data) <= c.smallThreshold {
		binaryInsertionSort(data, cmp)
		return nil
	}

	var pool *ThreadPool
	if c.maxThreads > 1 && len(data) >= c.parMinN {
		pool = NewThreadPool(c.maxThreads)
	}

	if err := quicksort(data, cmp, c, pool); err != nil {
		return err
	}
	if pool != nil {
		if err := pool.Wait(); err != nil {
			return wrapErr("Sort", len(data), err)
		}
	}
	return nil
}

// OrderedCompare is a CompareFunc for any cmp.Ordered type, provided as a
// convenience for the common case where no custom ordering is needed.
func OrderedCompare[T interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
