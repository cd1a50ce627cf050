package sortengine

import "math"

// quicksortState carries the per-segment-call bookkeeping that the
// reference implementation keeps as locals in each recursive call frame
// (spec 4.3/4.4): itn and pivotFraction reset to their initial values on
// every new call — whether that call is the top-level entry, a recursive
// call, or a call spawned onto a worker goroutine — but persist across the
// tail-iteration loop that handles the larger of the two partitions
// in-place rather than recursing on it. maxItn is derived once, from the
// segment size the call started with, and is never recomputed as that
// segment shrinks during tail iteration.
type quicksortState struct {
	itn           int
	pivotFraction float64
	maxItn        int
}

func newQuicksortState(n int, mult float64) *quicksortState {
	maxItn := int(mult * math.Log2(float64(n)+1))
	if maxItn < 1 {
		maxItn = 1
	}
	return &quicksortState{pivotFraction: 0.5, maxItn: maxItn}
}

// quicksort sorts data in place (spec 4.4), dispatching to heapsort once a
// call's iteration count exceeds its budget (the introspective fallback)
// and to a ThreadPool for the smaller of two partitions once it is large
// enough to be worth spawning.
func quicksort[T any](data []T, cmp CompareFunc[T], c *config, pool *ThreadPool) error {
	if len(data) <= c.smallThreshold {
		binaryInsertionSort(data, cmp)
		return nil
	}
	return quicksortSegment(data, cmp, c, pool, newQuicksortState(len(data), c.introsortMult))
}

// quicksortSegment implements one call frame of the driver: the while(n>1)
// tail-iteration loop from spec 4.4, operating on successively smaller
// slices of the same underlying segment.
func quicksortSegment[T any](data []T, cmp CompareFunc[T], c *config, pool *ThreadPool, st *quicksortState) error {
	for len(data) > 1 {
		n := len(data)
		if n <= c.smallThreshold {
			binaryInsertionSort(data, cmp)
			return nil
		}

		if _, ok := boundedInsertionAttempt(data, cmp, c.maxInsMoves); ok {
			return nil
		}

		st.itn++
		if st.itn > st.maxItn {
			if err := heapSort(data, cmp); err != nil {
				// Degraded guarantee: heapsort's scratch allocation
				// failed, so we fall through and keep making quicksort
				// progress instead of returning unsorted data.
				st.itn = 0
			} else {
				return nil
			}
		}

		selectPivot(data, cmp, c, st)
		lt, gt := partition(data, cmp)

		st.pivotFraction = pivotFractionOf(lt, gt-lt, n-gt, n)

		left := data[:lt]
		right := data[gt:]

		small, big := left, right
		if len(right) < len(left) {
			small, big = right, left
		}

		if len(small) > 1 {
			if pool != nil && len(small) >= c.parMinN && st.pivotFraction <= c.maxPivotFraction {
				childState := newQuicksortState(len(small), c.introsortMult)
				pool.Spawn(func() error {
					return quicksortSegment(small, cmp, c, pool, childState)
				})
			} else {
				childState := newQuicksortState(len(small), c.introsortMult)
				if err := quicksortSegment(small, cmp, c, pool, childState); err != nil {
					return err
				}
			}
		}

		// Tail-iterate on the larger partition within this same call
		// frame: itn and pivotFraction carry forward, maxItn does not
		// change even though big is smaller than the original n.
		data = big
	}
	return nil
}

// boundedInsertionAttempt is the bounded-insertion fast path from spec 4.4
// step 2: it counts out-of-order adjacent pairs while making at most
// maxMoves corrective moves, aborting back to quicksort the instant that
// budget is exceeded. On abort the slice is left partially, deliberately
// reshuffled — this is intentional: it is enough to break the patterns
// (already-sorted, reverse-sorted, organ-pipe) that defeat a naive
// median-of-3 quicksort, without paying for a full insertion sort first.
func boundedInsertionAttempt[T any](data []T, cmp CompareFunc[T], maxMoves int) (int, bool) {
	moves := 0
	for i := 1; i < len(data); i++ {
		if cmp(data[i-1], data[i]) <= 0 {
			continue
		}
		moves++
		if moves > maxMoves {
			return moves, false
		}
		key := data[i]
		j := i - 1
		for j >= 0 && cmp(data[j], key) > 0 {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
	}
	return moves, true
}

// selectPivot places a pivot at data[0] ahead of partitioning, choosing
// between the fast sampled-median path and the robust median-of-medians
// path per spec 4.3: the robust path is used whenever the previous
// partition in this call's tail-iteration chain was too lopsided.
func selectPivot[T any](data []T, cmp CompareFunc[T], c *config, st *quicksortState) {
	if st.pivotFraction > c.maxPivotFraction {
		medianOfMedians(data, cmp)
		return
	}
	if len(data) >= c.largeMedianThreshold {
		medianOf25(data, cmp)
	} else {
		medianOf9(data, cmp)
	}
}

// partition performs Bentley-McIlroy 3-way "fat pivot" partitioning around
// data[0] (spec 4.4 step 1), grouping data into [< pivot | = pivot | >
// pivot] bands in a single pass using four index "fingers":
//
//	pa  walks up from the left, pb trails it, collecting pivot-equal runs
//	pc  walks down from the right, pd trails it, collecting pivot-equal runs
//
// Elements equal to the pivot are swapped out to the two ends as they are
// found, then swapped back into the middle once the two fingers cross.
// partition returns [lt, gt): lt is the count of elements that sorted
// strictly before the pivot, gt is the index where the ">" band begins
// (so data[lt:gt] are pivot-equal, data[:lt] are "<", data[gt:] are ">").
func partition[T any](data []T, cmp CompareFunc[T]) (lt, gt int) {
	n := len(data)
	pivot := data[0]

	pa, pb := 1, 1
	pc, pd := n-1, n-1

	for {
		for pb <= pc && cmp(data[pb], pivot) <= 0 {
			if cmp(data[pb], pivot) == 0 {
				data[pa], data[pb] = data[pb], data[pa]
				pa++
			}
			pb++
		}
		for pb <= pc && cmp(data[pc], pivot) >= 0 {
			if cmp(data[pc], pivot) == 0 {
				data[pc], data[pd] = data[pd], data[pc]
				pd--
			}
			pc--
		}
		if pb > pc {
			break
		}
		data[pb], data[pc] = data[pc], data[pb]
		pb++
		pc--
	}

	// Move the "=" runs collected at the two ends into the middle, flanking
	// the final "<"/">" boundary at pb.
	left := min(pa, pb-pa)
	swapRange(data, 0, pb-left, left)
	right := min(pd-pc, n-1-pd)
	swapRange(data, pb, n-right, right)

	lt = pb - pa
	gt = n - (pd - pc)
	return lt, gt
}

func swapRange[T any](data []T, i, j, count int) {
	for k := 0; k < count; k++ {
		data[i+k], data[j+k] = data[j+k], data[i+k]
	}
}
