package sortengine

// pivot.go implements PivotSelector (spec 4.3): placing a good pivot at
// index 0 of a segment before partitioning. Three strategies are used,
// chosen by the caller (quicksort.go) based on the previous partition's
// pivot_fraction and the segment size:
//
//   - medianOf9:  fast path for smaller segments.
//   - medianOf25: fast path for segments >= LARGE_MEDIAN_THRESHOLD.
//   - medianOfMedians: robust path, invoked after a bad partition.
//
// The 9- and 25-element median networks are the fixed sorting-network-style
// algorithms from N. Devillard's "Fast median search" (the reference C
// implementation credits the same source); they leave the median at a
// known slot without fully sorting their input.

func swapIfGreater[T any](data []T, cmp CompareFunc[T], i, j int) {
	if cmp(data[i], data[j]) > 0 {
		data[i], data[j] = data[j], data[i]
	}
}

// med9Network arranges p[0..8] so the median ends up at p[4], per spec
// 4.3's 9-element sorting-network-style algorithm.
func med9Network[T any](p []T, cmp CompareFunc[T]) {
	sw := func(a, b int) { swapIfGreater(p, cmp, a, b) }
	sw(1, 2)
	sw(4, 5)
	sw(7, 8)
	sw(0, 1)
	sw(3, 4)
	sw(6, 7)
	sw(1, 2)
	sw(4, 5)
	sw(7, 8)
	sw(0, 3)
	sw(5, 8)
	sw(4, 7)
	sw(3, 6)
	sw(1, 4)
	sw(2, 5)
	sw(4, 7)
	sw(2, 4)
	sw(4, 6)
	sw(2, 4)
}

// med25Network arranges p[0..24] so the median ends up at p[12], per spec
// 4.3's 25-element sorting-network-style algorithm (Graphics Gems).
func med25Network[T any](p []T, cmp CompareFunc[T]) {
	sw := func(a, b int) { swapIfGreater(p, cmp, a, b) }
	sw(0, 1)
	sw(3, 4)
	sw(2, 4)
	sw(2, 3)
	sw(6, 7)
	sw(5, 7)
	sw(5, 6)
	sw(9, 10)
	sw(8, 10)
	sw(8, 9)
	sw(12, 13)
	sw(11, 13)
	sw(11, 12)
	sw(15, 16)
	sw(14, 16)
	sw(14, 15)
	sw(18, 19)
	sw(17, 19)
	sw(17, 18)
	sw(21, 22)
	sw(20, 22)
	sw(20, 21)
	sw(23, 24)
	sw(2, 5)
	sw(3, 6)
	sw(0, 6)
	sw(0, 3)
	sw(4, 7)
	sw(1, 7)
	sw(1, 4)
	sw(11, 14)
	sw(8, 14)
	sw(8, 11)
	sw(12, 15)
	sw(9, 15)
	sw(9, 12)
	sw(13, 16)
	sw(10, 16)
	sw(10, 13)
	sw(20, 23)
	sw(17, 23)
	sw(17, 20)
	sw(21, 24)
	sw(18, 24)
	sw(18, 21)
	sw(19, 22)
	sw(8, 17)
	sw(9, 18)
	sw(0, 18)
	sw(0, 9)
	sw(10, 19)
	sw(1, 19)
	sw(1, 10)
	sw(11, 20)
	sw(2, 20)
	sw(2, 11)
	sw(12, 21)
	sw(3, 21)
	sw(3, 12)
	sw(13, 22)
	sw(4, 22)
	sw(4, 13)
	sw(14, 23)
	sw(5, 23)
	sw(5, 14)
	sw(15, 24)
	sw(6, 24)
	sw(6, 15)
	sw(7, 16)
	sw(7, 19)
	sw(13, 21)
	sw(15, 23)
	sw(7, 13)
	sw(7, 15)
	sw(1, 9)
	sw(3, 11)
	sw(5, 17)
	sw(11, 17)
	sw(9, 17)
	sw(4, 10)
	sw(6, 12)
	sw(7, 14)
	sw(4, 6)
	sw(4, 7)
	sw(12, 14)
	sw(10, 14)
	sw(6, 7)
	sw(10, 12)
	sw(6, 10)
	sw(6, 17)
	sw(12, 17)
	sw(7, 17)
	sw(7, 10)
	sw(12, 18)
	sw(7, 12)
	sw(10, 18)
	sw(12, 20)
	sw(10, 20)
	sw(10, 12)
}

// medianOf9 picks 9 equally spaced elements of data, computes their median,
// and places it at data[0].
func medianOf9[T any](data []T, cmp CompareFunc[T]) {
	n := len(data)
	mid := n / 2
	last := n - 1
	d := n / 8

	sample := make([]T, 9)
	idx := [9]int{0, d, 2 * d, mid - d, mid, mid + d, last - 2*d, last - d, last}
	for i, ix := range idx {
		sample[i] = data[ix]
	}
	med9Network(sample, cmp)
	for _, ix := range idx {
		if cmp(data[ix], sample[4]) == 0 {
			data[0], data[ix] = data[ix], data[0]
			return
		}
	}
}

// medianOf25 picks 25 equally spaced elements of data, computes their
// median, and places it at data[0].
func medianOf25[T any](data []T, cmp CompareFunc[T]) {
	n := len(data)
	step := (n - 1) / 24

	sample := make([]T, 25)
	for i := 0; i < 25; i++ {
		sample[i] = data[i*step]
	}
	med25Network(sample, cmp)
	for i := 0; i < 25; i++ {
		if cmp(data[i*step], sample[12]) == 0 {
			data[0], data[i*step] = data[i*step], data[0]
			return
		}
	}
}

// condenseToMedians performs one pass of medianOfMedians: it walks
// data[:count] in groups, replaces each group with its median written
// consecutively at the front of data, and returns the number of medians
// produced. Groups of 25 use the fixed network; the leftover tail (0 to 24
// elements) is handled as follows: an empty tail adds nothing, a tail of 1
// or 2 elements is folded in as-is, and a longer tail is split into two
// halves, each insertion-sorted and contributing its own median. When the
// 25-groups produced an even number of medians and the tail has at least
// 11 elements, one extra median of 9 is taken from the tail first, so the
// count at this level comes out odd. In every other case the count is left
// as it falls and may be even.
func condenseToMedians[T any](data []T, cmp CompareFunc[T], count int) int {
	written := 0
	i := 0
	for count-i >= 25 {
		med25Network(data[i:i+25], cmp)
		data[written], data[i+12] = data[i+12], data[written]
		written++
		i += 25
	}
	remaining := count - i
	if remaining == 0 {
		return written
	}
	if remaining < 3 {
		// Too few stragglers to take a median of; fold them in as-is.
		for ; i < count; i++ {
			data[written], data[i] = data[i], data[written]
			written++
		}
		return written
	}
	if written%2 == 0 && remaining >= 11 {
		med9Network(data[i:i+9], cmp)
		data[written], data[i+4] = data[i+4], data[written]
		written++
		i += 9
		remaining -= 9
	}
	half := remaining / 2
	insertionSort(data[i:i+half], cmp)
	data[written], data[i+(half-1)/2] = data[i+(half-1)/2], data[written]
	written++
	insertionSort(data[i+half:i+remaining], cmp)
	data[written], data[i+half+(remaining-half-1)/2] = data[i+half+(remaining-half-1)/2], data[written]
	written++
	return written
}

// medianOfMedians implements the robust pivot path (spec 4.3): recursive
// median-of-medians of groups of 25, escalated to when the previous
// partition's pivot_fraction exceeded MAX_PIVOT_FRACTION. As a deliberate
// side effect it permutes data (medians accumulate at the front on each
// pass), which in practice breaks adversarial input patterns.
func medianOfMedians[T any](data []T, cmp CompareFunc[T]) {
	count := len(data)
	for count > 50 {
		count = condenseToMedians(data, cmp, count)
	}
	if count <= 1 {
		return
	}
	insertionSort(data[:count], cmp)
	if count > 2 {
		mid := (count - 1) / 2
		data[0], data[mid] = data[mid], data[0]
	}
}

// pivotFraction computes the normalised asymmetry of a 3-way partition
// that produced left/equal/right sizes l, e, r (l+e+r=n), per spec 4.3:
// -1 is an ideal all-equal split, +1 is a worst-case one-sided split.
func pivotFractionOf(l, e, r, n int) float64 {
	if n == 0 {
		return -1
	}
	hi, lo := l, r
	if lo > hi {
		hi, lo = lo, hi
	}
	return float64(hi-lo-e) / float64(n)
}
