package sortengine

// heapsortFailInjected, when non-nil, is consulted by heapSort before it
// does any work so tests can exercise the degraded-guarantee path (spec
// 4.4 step 3: "Memory-allocation failure in Heapsort's scratch returns an
// error code; the Quicksort driver then continues with quicksort"). It has
// no effect outside tests.
var heapsortFailInjected func(n int) bool

// heapSort sorts data in place using classical binary-heap heapsort with
// Floyd's sift-down optimisation (spec 4.2): during the selection phase the
// larger child is always copied up to its parent first, and only then is
// the displaced element walked back up from the leaf to its correct
// slot. This trades a short second pass for roughly 15-20% fewer
// comparisons than the textbook sift-down-while-comparing-the-displaced-
// element approach.
//
// Indices are 1-based against the heap-order invariant (parent j has
// children 2j and 2j+1) but addressed through 0-based Go slice indexing
// (index i-1), rather than forming an out-of-bounds base-1 pointer the way
// the reference C implementation does — see SPEC_FULL.md's REDESIGN FLAGS.
//
// heapSort never allocates: the "scratch" slot for the displaced element is
// a plain local of type T. It returns ErrScratchAlloc only when a test has
// installed heapsortFailInjected, modeling the C allocation-failure path
// for records that don't fit in a machine word.
func heapSort[T any](data []T, cmp CompareFunc[T]) error {
	n := len(data)
	if n <= 1 {
		return nil
	}
	if heapsortFailInjected != nil && heapsortFailInjected(n) {
		return wrapErr("heapsort", n, ErrScratchAlloc)
	}

	// at returns the 0-based slice index for 1-based heap index i.
	at := func(i int) int { return i - 1 }

	siftDownBuild := func(root, heapLen int) {
		parent := root
		for {
			child := parent * 2
			if child > heapLen {
				break
			}
			if child < heapLen && cmp(data[at(child)], data[at(child+1)]) < 0 {
				child++
			}
			if cmp(data[at(child)], data[at(parent)]) <= 0 {
				break
			}
			data[at(parent)], data[at(child)] = data[at(child)], data[at(parent)]
			parent = child
		}
	}

	for root := n/2 + 1; root > 1; {
		root--
		siftDownBuild(root, n)
	}

	for heapLen := n; heapLen > 1; {
		k := data[at(heapLen)]
		data[at(heapLen)] = data[at(1)]
		heapLen--

		// Floyd's optimisation: sift down always promoting the larger
		// child, without yet comparing against k.
		parent := 1
		for {
			child := parent * 2
			if child > heapLen {
				break
			}
			if child < heapLen && cmp(data[at(child)], data[at(child+1)]) < 0 {
				child++
			}
			data[at(parent)] = data[at(child)]
			parent = child
		}
		// Ascending pass: walk k up from the leaf to its correct slot.
		for {
			child := parent
			parent = child / 2
			if child == 1 || cmp(k, data[at(parent)]) < 0 {
				data[at(child)] = k
				break
			}
			data[at(child)] = data[at(parent)]
		}
	}
	return nil
}
