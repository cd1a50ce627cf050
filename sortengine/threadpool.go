package sortengine

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ThreadPool bounds how many quicksort segments run concurrently (spec
// 4.5). It is created fresh for each top-level Sort call — never a package
// singleton — so that two unrelated Sort calls in the same process never
// contend over each other's worker budget, mirroring how the teacher
// package's NewAsyncReader builds its own *ParallelProcessor per reader
// rather than sharing one process-wide.
//
// Slot accounting is mutex-protected (liveWorkers is read-modify-written
// under mu); completion bookkeeping for each spawned segment is handled by
// an errgroup.Group, whose Wait collects the first non-nil error from any
// worker, the same "first error wins, everyone still finishes" semantics
// the reference implementation's wait_all applies to its pthreads.
type ThreadPool struct {
	mu          sync.Mutex
	maxWorkers  int
	liveWorkers int
	group       *errgroup.Group

	spawned int32 // atomic; diagnostic/test-observable count of Spawn calls that ran async
	inline  int32 // atomic; diagnostic/test-observable count of Spawn calls that ran inline
}

// NewThreadPool creates a pool that runs at most maxWorkers segments
// concurrently. maxWorkers<=1 is rejected by the caller (Sort never builds
// a pool in that case); NewThreadPool itself just clamps defensively.
func NewThreadPool(maxWorkers int) *ThreadPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &ThreadPool{
		maxWorkers: maxWorkers,
		group:      &errgroup.Group{},
	}
}

// Spawn runs fn on a worker goroutine if a slot is free, or inline,
// synchronously, if the pool is already at capacity — the "spawn_or_run"
// behavior from spec 4.5: callers must never assume fn ran concurrently,
// only that it will have run by the time Wait returns.
func (p *ThreadPool) Spawn(fn func() error) {
	p.mu.Lock()
	if p.liveWorkers >= p.maxWorkers {
		p.mu.Unlock()
		atomic.AddInt32(&p.inline, 1)
		if err := fn(); err != nil {
			p.recordErr(err)
		}
		return
	}
	p.liveWorkers++
	p.mu.Unlock()
	atomic.AddInt32(&p.spawned, 1)

	p.group.Go(func() error {
		defer p.release()
		return fn()
	})
}

func (p *ThreadPool) release() {
	p.mu.Lock()
	p.liveWorkers--
	p.mu.Unlock()
}

// recordErr folds an inline failure into the same error the errgroup would
// have surfaced from an async worker, by running a no-op Go that returns
// it. errgroup.Group keeps only the first error, which matches how an
// inline Spawn and an async Spawn are meant to be indistinguishable to the
// caller.
func (p *ThreadPool) recordErr(err error) {
	p.group.Go(func() error { return err })
}

// Wait blocks until every segment spawned or run inline through this pool
// has finished, and returns the first error any of them reported, if any.
func (p *ThreadPool) Wait() error {
	return p.group.Wait()
}
