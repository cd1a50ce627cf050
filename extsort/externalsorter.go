package extsort

import (
	"bufio"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nsortgo/nsort/sortengine"
)

// Config collects ExternalSorter's tunables (spec 4.6). The zero value is
// not usable directly; build one with NewConfig.
type Config struct {
	MaxLinesPerRun int
	MaxRuns        int
	Mode           ComparatorMode
	Unique         bool
	TempDir        string // "" uses os.TempDir via os.CreateTemp's default
	Logger         *zap.Logger
}

// NewConfig returns the suggested defaults from spec 4.6, overridable field
// by field.
func NewConfig() Config {
	return Config{
		MaxLinesPerRun: 10_000_000,
		MaxRuns:        16,
		Mode:           ModeString,
		Logger:         zap.NewNop(),
	}
}

// Stats reports what the last Sort call actually did, for instrumentation
// (spec's S5/S6 test scenarios check "exactly 2 temp runs created" and "at
// least one sub-merge event observed").
type Stats struct {
	FastPath      bool
	RunsCreated   int
	SubMerges     int
	Elapsed       time.Duration
}

// ExternalSorter streams lines from an input, spilling sorted batches to
// temporary runs once the in-memory batch limit is hit, and k-way-merges
// every run back to a single sorted output (spec 4.6).
type ExternalSorter struct {
	cfg       Config
	cmp       Comparator
	LastStats Stats
}

func New(cfg Config) *ExternalSorter {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxLinesPerRun <= 0 {
		cfg.MaxLinesPerRun = 1
	}
	if cfg.MaxRuns <= 0 {
		cfg.MaxRuns = 1
	}
	return &ExternalSorter{cfg: cfg, cmp: cfg.Mode.comparator()}
}

// cleanupRegistry tracks runs that must be unlinked if the process is
// interrupted mid-sort (spec 5: "a signal handler unlinks temporary files
// and terminates the process"). It is scoped to a single Sort call, not a
// package-level singleton, so two concurrent ExternalSorters never share
// cleanup state.
type cleanupRegistry struct {
	mu   sync.Mutex
	runs []*Run
}

func (c *cleanupRegistry) track(r *Run) {
	c.mu.Lock()
	c.runs = append(c.runs, r)
	c.mu.Unlock()
}

func (c *cleanupRegistry) untrack(r *Run) {
	c.mu.Lock()
	for i, rr := range c.runs {
		if rr == r {
			c.runs = append(c.runs[:i], c.runs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
}

func (c *cleanupRegistry) cleanupAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.runs {
		r.close()
	}
	c.runs = nil
}

// Sort reads newline-terminated lines from in, sorts them under the
// configured comparator, and writes the sorted (optionally deduplicated)
// result to out. It implements the full pipeline from spec 4.6: the
// read/accumulate/spill loop, sub-merging when the run cap is hit, and the
// final k-way merge — with a fast path that skips all temp-file machinery
// when the whole input fits in one batch.
func (es *ExternalSorter) Sort(in io.Reader, out io.Writer) error {
	registry := &cleanupRegistry{}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigCh:
			registry.cleanupAll()
			os.Exit(1)
		case <-done:
		}
		signal.Stop(sigCh)
	}()

	start := time.Now()
	reader := bufio.NewReaderSize(in, defaultIOBufSize)
	set := newMergeSet(es.cfg.MaxRuns, es.cmp, es.cfg.TempDir)
	set.setTracker(registry.track, registry.untrack)

	var batch []string
	lb := getLineBuffer()
	defer putLineBuffer(lb)

	spilled := false
	runsCreated := 0

	flush := func() error {
		sortStart := time.Now()
		if err := sortengine.Sort(batch, es.cmp); err != nil {
			return wrapErr("batch sort", err)
		}
		es.cfg.Logger.Debug("sorted batch", zap.Int("lines", len(batch)), zap.Duration("elapsed", time.Since(sortStart)))

		run, err := newRun(es.cfg.TempDir)
		if err != nil {
			return wrapErr("spill open", err)
		}
		registry.track(run)
		for _, line := range batch {
			if err := run.writeLine(line); err != nil {
				registry.untrack(run)
				run.close()
				return wrapErr("spill write", ErrDiskFull)
			}
		}
		if err := run.finishWriting(); err != nil {
			registry.untrack(run)
			run.close()
			return err
		}
		if err := set.add(run); err != nil {
			registry.untrack(run)
			run.close()
			return err
		}
		runsCreated++
		batch = batch[:0]
		return nil
	}

	for {
		line, ok, err := lb.readLine(reader)
		if err != nil {
			return wrapErr("read", err)
		}
		if !ok {
			break
		}
		batch = append(batch, line)
		if len(batch) >= es.cfg.MaxLinesPerRun {
			spilled = true
			if err := flush(); err != nil {
				set.closeAll(&warnings{})
				return err
			}
		}
	}

	if !spilled {
		// Fast path (spec 4.6): nothing ever spilled, so sort the batch in
		// place and stream straight to output, no temp files involved.
		if err := sortengine.Sort(batch, es.cmp); err != nil {
			return wrapErr("batch sort", err)
		}
		w := bufio.NewWriterSize(out, defaultIOBufSize)
		var uf *uniqueFilter
		if es.cfg.Unique {
			uf = &uniqueFilter{}
		}
		for _, line := range batch {
			if uf != nil && uf.isDuplicate(line) {
				continue
			}
			if _, err := w.WriteString(line); err != nil {
				return wrapErr("write", err)
			}
			if err := w.WriteByte('\n'); err != nil {
				return wrapErr("write", err)
			}
		}
		if err := w.Flush(); err != nil {
			return wrapErr("write", ErrDiskFull)
		}
		es.LastStats = Stats{FastPath: true, Elapsed: time.Since(start)}
		es.cfg.Logger.Info("sort complete", zap.Bool("fast_path", true), zap.Int("lines", len(batch)), zap.Duration("elapsed", es.LastStats.Elapsed))
		return nil
	}

	if len(batch) > 0 {
		if err := flush(); err != nil {
			set.closeAll(&warnings{})
			return err
		}
	}

	w := bufio.NewWriterSize(out, defaultIOBufSize)
	var uf *uniqueFilter
	if es.cfg.Unique {
		uf = &uniqueFilter{}
	}
	mergeErr := kWayMerge(set.runs, es.cmp, func(line string) error {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		return w.WriteByte('\n')
	}, uf)

	wg := &warnings{}
	set.closeAll(wg)
	if mergeErr != nil {
		return wrapErr("merge", mergeErr)
	}
	if err := w.Flush(); err != nil {
		return wrapErr("write", ErrDiskFull)
	}

	es.LastStats = Stats{FastPath: false, RunsCreated: runsCreated, SubMerges: set.subMerges, Elapsed: time.Since(start)}
	es.cfg.Logger.Info("sort complete",
		zap.Bool("fast_path", false),
		zap.Int("runs_created", runsCreated),
		zap.Int("sub_merges", set.subMerges),
		zap.Duration("elapsed", es.LastStats.Elapsed),
	)
	if err := wg.errorOrNil(); err != nil {
		es.cfg.Logger.Warn("cleanup warnings", zap.Error(err))
	}
	return nil
}
