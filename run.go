package linemax

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run computes the per-line maxima of src with opts.Workers concurrent
// workers.
//
// The plan is built before any worker starts and all workers share it. Each
// worker scans only its own window into its own buffer. The first worker
// error cancels the others and is returned; no partial result is published.
// Results are merged by rank only after every worker has finished.
func Run(ctx context.Context, src Source, opts Options) (GlobalResult, Stats, error) {
	if err := opts.Validate(); err != nil {
		return GlobalResult{}, Stats{}, err
	}
	t0 := time.Now()
	pool := newBlockPool(opts.ReadBufferSize)

	var (
		plan *Plan
		err  error
	)
	switch opts.Strategy {
	case StrategyIndexed:
		plan, err = newIndexedPlan(ctx, src, opts.Workers, pool)
	default:
		plan, err = newWindowPlan(ctx, src, opts.Workers, pool)
	}
	if err != nil {
		return GlobalResult{}, Stats{}, fmt.Errorf("plan: %w", err)
	}

	var counters runCounters
	out := make(chan WorkerResult, len(plan.Windows))
	g, gctx := errgroup.WithContext(ctx)
	for _, win := range plan.Windows {
		g.Go(func() error {
			vals, err := scanWindow(gctx, src, win, pool, opts.MaxLinesPerWorker)
			if err != nil {
				return fmt.Errorf("worker %d: %w", win.Worker, err)
			}
			counters.add(int(win.Range.Len()), len(vals))
			out <- WorkerResult{Worker: win.Worker, Values: vals}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return GlobalResult{}, Stats{}, err
	}
	close(out)

	results := make([]WorkerResult, 0, len(plan.Windows))
	for r := range out {
		results = append(results, r)
	}
	res, err := Collect(opts.Workers, results)
	if err != nil {
		return GlobalResult{}, Stats{}, fmt.Errorf("collect: %w", err)
	}

	st := Stats{
		Workers:   opts.Workers,
		Strategy:  plan.Strategy,
		PerWorker: make([]int, opts.Workers),
		Duration:  time.Since(t0),
	}
	st.Bytes, st.Lines = counters.snapshot()
	for _, r := range results {
		st.PerWorker[r.Worker] = r.Len()
	}
	return res, st, nil
}

// ProcessFile opens path, runs the computation and reports the result to w.
// The source is closed before returning; a close failure is reported only if
// nothing else failed.
func ProcessFile(ctx context.Context, path string, opts Options, w io.Writer) (st Stats, err error) {
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}
	src, err := OpenWithOptions(path, opts)
	if err != nil {
		return Stats{}, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	res, st, err := Run(ctx, src, opts)
	if err != nil {
		return st, err
	}
	if err := Report(w, res); err != nil {
		return st, err
	}
	return st, nil
}
