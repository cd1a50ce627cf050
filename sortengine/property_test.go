package sortengine

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// countingComparator wraps a CompareFunc and counts invocations, letting
// the worst-case-comparisons property test hold quicksort to its O(n log n)
// bound across an adversarial pattern battery rather than just checking
// that the output is sorted.
func countingComparator(count *int64) CompareFunc[int] {
	return func(a, b int) int {
		*count++
		return OrderedCompare(a, b)
	}
}

func adversarialPatterns(n int) map[string][]int {
	out := make(map[string][]int)

	sorted := make([]int, n)
	reversed := make([]int, n)
	organPipe := make([]int, n)
	allEqual := make([]int, n)
	sawtooth := make([]int, n)
	for i := 0; i < n; i++ {
		sorted[i] = i
		reversed[i] = n - i
		if i < n/2 {
			organPipe[i] = i
		} else {
			organPipe[i] = n - i
		}
		allEqual[i] = 1
		sawtooth[i] = i % 17
	}
	out["sorted"] = sorted
	out["reversed"] = reversed
	out["organ-pipe"] = organPipe
	out["all-equal"] = allEqual
	out["sawtooth"] = sawtooth
	return out
}

func TestPropertyOrdering(t *testing.T) {
	r := rand.New(rand.NewSource(100))
	for trial := 0; trial < 30; trial++ {
		n := r.Intn(5000)
		data := make([]int, n)
		for i := range data {
			data[i] = r.Intn(100000)
		}
		require.NoError(t, Sort(data, OrderedCompare[int]))
		require.True(t, sort.IntsAreSorted(data))
	}
}

func TestPropertyPermutation(t *testing.T) {
	r := rand.New(rand.NewSource(101))
	for trial := 0; trial < 30; trial++ {
		n := r.Intn(3000)
		data := make([]int, n)
		for i := range data {
			data[i] = r.Intn(500) // small range forces heavy duplication
		}
		orig := append([]int(nil), data...)

		require.NoError(t, Sort(data, OrderedCompare[int]))
		require.True(t, isPermutation(data, orig))
	}
}

func TestPropertyIdempotence(t *testing.T) {
	r := rand.New(rand.NewSource(102))
	data := make([]int, 2000)
	for i := range data {
		data[i] = r.Intn(10000)
	}
	require.NoError(t, Sort(data, OrderedCompare[int]))
	once := append([]int(nil), data...)

	require.NoError(t, Sort(data, OrderedCompare[int]))
	require.Equal(t, once, data)
}

func TestPropertyComparatorReversal(t *testing.T) {
	r := rand.New(rand.NewSource(103))
	data := make([]int, 1000)
	for i := range data {
		data[i] = r.Intn(10000)
	}
	asc := append([]int(nil), data...)
	desc := append([]int(nil), data...)

	require.NoError(t, Sort(asc, OrderedCompare[int]))
	require.NoError(t, Sort(desc, func(a, b int) int { return OrderedCompare(b, a) }))

	for i := range asc {
		require.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

// TestPropertyWorstCaseComparisonBound exercises spec 4.4's introspective
// guarantee: regardless of the adversarial pattern that feeds it, a
// comparator is never called more than a small constant multiple of
// n*log2(n) times, because the iteration budget forces escalation to
// heapsort long before quicksort could degrade to quadratic behavior.
func TestPropertyWorstCaseComparisonBound(t *testing.T) {
	n := 4000
	bound := 40.0 * float64(n) * math.Log2(float64(n)+1)

	for name, data := range adversarialPatterns(n) {
		var comparisons int64
		cmp := countingComparator(&comparisons)
		require.NoError(t, Sort(data, cmp), name)
		require.True(t, sort.IntsAreSorted(data), name)
		require.LessOrEqual(t, float64(comparisons), bound, "pattern %s used %d comparisons, bound %v", name, comparisons, bound)
	}
}

func TestPropertyParallelEquivalence(t *testing.T) {
	r := rand.New(rand.NewSource(104))
	n := 20000
	base := make([]int, n)
	for i := range base {
		base[i] = r.Intn(1 << 20)
	}

	var reference []int
	for _, threads := range []int{1, 2, 8, 32} {
		data := append([]int(nil), base...)
		require.NoError(t, Sort(data, OrderedCompare[int],
			WithMaxThreads(threads), WithParallelMinSize(500)))
		if reference == nil {
			reference = data
		} else {
			require.Equal(t, reference, data, "threads=%d diverged from single-threaded result", threads)
		}
	}
}
