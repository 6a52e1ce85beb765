package linemax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// Plan is the windowing decision shared by all workers of a run. It is built
// once, before any worker starts, from the source size and worker count.
type Plan struct {
	Size     int64
	Strategy Strategy
	// Chunks are the nominal byte chunks (StrategyWindow only).
	Chunks []Chunk
	// LineChunks are the line-index ranges each worker owns (StrategyIndexed only).
	LineChunks []Chunk
	Windows    []OwnershipWindow
}

// NewPlan partitions src among workers and aligns the chunks to line starts.
func NewPlan(ctx context.Context, src Source, workers int) (*Plan, error) {
	return newWindowPlan(ctx, src, workers, newBlockPool(DefaultOptions().ReadBufferSize))
}

func newWindowPlan(ctx context.Context, src Source, workers int, pool *blockPool) (*Plan, error) {
	chunks, err := Partition(src.Size(), workers)
	if err != nil {
		return nil, err
	}
	windows, err := align(ctx, src, chunks, pool)
	if err != nil {
		return nil, err
	}
	return &Plan{Size: src.Size(), Strategy: StrategyWindow, Chunks: chunks, Windows: windows}, nil
}

// NewIndexedPlan indexes every line start of src first and then splits the
// lines, not the bytes, evenly among workers: worker w owns lines
// [w*k, min((w+1)*k, n)) with k = ceil(n/workers). Each window still runs
// from a line start to the next owner's first line start.
func NewIndexedPlan(ctx context.Context, src Source, workers int) (*Plan, error) {
	return newIndexedPlan(ctx, src, workers, newBlockPool(DefaultOptions().ReadBufferSize))
}

func newIndexedPlan(ctx context.Context, src Source, workers int, pool *blockPool) (*Plan, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: worker count must be a positive integer, got %d", ErrConfig, workers)
	}
	starts, err := lineStarts(ctx, src, pool)
	if err != nil {
		return nil, err
	}
	lineChunks, err := Partition(int64(len(starts)), workers)
	if err != nil {
		return nil, err
	}

	size := src.Size()
	offsetOf := func(line int64) int64 {
		if line >= int64(len(starts)) {
			return size
		}
		return starts[line]
	}
	windows := make([]OwnershipWindow, workers)
	for w, c := range lineChunks {
		windows[w] = OwnershipWindow{
			Worker: c.Worker,
			Range:  ByteRange{Start: offsetOf(c.Range.Start), End: offsetOf(c.Range.End)},
		}
	}
	return &Plan{Size: size, Strategy: StrategyIndexed, LineChunks: lineChunks, Windows: windows}, nil
}

// lineStarts returns the offset of the first byte of every line in src.
func lineStarts(ctx context.Context, src Source, pool *blockPool) ([]int64, error) {
	size := src.Size()
	if size == 0 {
		return nil, nil
	}
	starts := []int64{0}
	record := func(base int64, p []byte) {
		for {
			i := bytes.IndexByte(p, '\n')
			if i < 0 {
				return
			}
			if next := base + int64(i) + 1; next < size {
				starts = append(starts, next)
			}
			base += int64(i) + 1
			p = p[i+1:]
		}
	}

	if data, ok := viewOf(src); ok {
		record(0, data)
		return starts, nil
	}

	bp := pool.get()
	defer pool.put(bp)
	buf := *bp
	for off := int64(0); off < size; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := src.ReadAt(buf[:min(int64(len(buf)), size-off)], off)
		record(off, buf[:n])
		off += int64(n)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: read at %d: %w", ErrIO, off, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: short read at %d of %d bytes", ErrIO, off, size)
		}
	}
	return starts, nil
}
