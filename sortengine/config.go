package sortengine

// config collects the tunables the reference implementation exposes as
// compile-time #define constants. Go has no equivalent of recompiling with
// a different macro value, so they become functional options on Sort.
type config struct {
	smallThreshold       int     // SmallSort threshold, spec 4.1 (suggested 32, minimum 9)
	maxInsMoves          int     // MAX_INS_MOVES, spec 4.4 step 2 (suggested 2)
	introsortMult        float64 // INTROSORT_MULT, spec 4.4 (suggested 15)
	maxPivotFraction     float64 // MAX_PIVOT_FRACTION, spec 4.3 (suggested 0.999)
	largeMedianThreshold int     // LARGE_MEDIAN_THRESHOLD, spec 4.3 (suggested 100000)
	parMinN              int     // PAR_MIN_N, spec 4.5 (suggested 10000)
	maxThreads           int     // MAX_THREADS, spec 4.5 (suggested 32); 1 disables the pool
}

func defaultConfig() *config {
	return &config{
		smallThreshold:       32,
		maxInsMoves:          2,
		introsortMult:        15.0,
		maxPivotFraction:     0.999,
		largeMedianThreshold: 100_000,
		parMinN:              10_000,
		maxThreads:           32,
	}
}

// Option configures a Sort call. The zero value of Option set produces the
// suggested defaults from spec.md section 4.
type Option func(*config)

// WithSmallThreshold overrides SMALL_THRESHOLD. Values below 9 are clamped
// up to 9, since the median-of-9 pivot network assumes at least that many
// elements are available once a segment is no longer "small".
func WithSmallThreshold(n int) Option {
	return func(c *config) {
		if n < 9 {
			n = 9
		}
		c.smallThreshold = n
	}
}

// WithMaxInsertionMoves overrides MAX_INS_MOVES.
func WithMaxInsertionMoves(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = 0
		}
		c.maxInsMoves = n
	}
}

// WithIntrosortMultiplier overrides INTROSORT_MULT, the factor controlling
// how many quicksort iterations are tolerated (relative to log2 n) before
// escalating to the guaranteed-bound heapsort fallback.
func WithIntrosortMultiplier(mult float64) Option {
	return func(c *config) {
		if mult < 0 {
			mult = 0
		}
		c.introsortMult = mult
	}
}

// WithMaxPivotFraction overrides MAX_PIVOT_FRACTION, the partition-asymmetry
// threshold above which pivot selection escalates to the robust recursive
// median-of-medians path.
func WithMaxPivotFraction(f float64) Option {
	return func(c *config) {
		c.maxPivotFraction = f
	}
}

// WithLargeMedianThreshold overrides LARGE_MEDIAN_THRESHOLD, the segment
// size at and above which the fast pivot path samples 25 elements instead
// of 9.
func WithLargeMedianThreshold(n int) Option {
	return func(c *config) {
		if n < 25 {
			n = 25
		}
		c.largeMedianThreshold = n
	}
}

// WithMaxThreads overrides MAX_THREADS, the number of worker goroutines the
// ThreadPool may run concurrently. 1 (or less) disables parallelism
// entirely: Sort then runs single-threaded with no pool bookkeeping at all.
func WithMaxThreads(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.maxThreads = n
	}
}

// WithParallelMinSize overrides PAR_MIN_N, the minimum segment size
// eligible to be spawned onto a worker goroutine rather than run inline.
func WithParallelMinSize(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.parMinN = n
	}
}

func buildConfig(opts []Option) *config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}
