package linemax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// OwnershipWindow is the byte range in which a worker is the only one that
// emits lines. Windows of consecutive workers are chained: each ends where
// the next one starts, so together they cover [0, size) exactly once.
type OwnershipWindow struct {
	Worker WorkerID
	Range  ByteRange
}

// Align turns nominal chunks into ownership windows aligned to line starts.
//
// Worker 0 always starts at byte 0. Any other worker starts right after the
// first newline at or after its chunk's begin; the search is not bounded by
// the chunk's end and runs to EOF if it has to. A worker that finds no such
// newline starts at size and owns no lines.
func Align(ctx context.Context, src Source, chunks []Chunk) ([]OwnershipWindow, error) {
	return align(ctx, src, chunks, newBlockPool(DefaultOptions().ReadBufferSize))
}

func align(ctx context.Context, src Source, chunks []Chunk, pool *blockPool) ([]OwnershipWindow, error) {
	size := src.Size()
	starts := make([]int64, len(chunks))
	for w := 1; w < len(chunks); w++ {
		begin := chunks[w].Range.Start
		if begin < 0 || begin > size {
			return nil, fmt.Errorf("%w: chunk %d begins at %d outside [0,%d]", ErrInvariant, w, begin, size)
		}
		// The previous search already found the first newline at or after
		// begin when begin lies before that worker's start.
		if w > 1 && begin < starts[w-1] {
			starts[w] = starts[w-1]
			continue
		}
		next, err := nextLineStart(ctx, src, begin, pool)
		if err != nil {
			return nil, fmt.Errorf("align worker %d: %w", w, err)
		}
		if next < starts[w-1] {
			return nil, fmt.Errorf("%w: worker %d starts at %d before worker %d at %d", ErrInvariant, w, next, w-1, starts[w-1])
		}
		starts[w] = next
	}

	windows := make([]OwnershipWindow, len(chunks))
	for w := range chunks {
		end := size
		if w+1 < len(chunks) {
			end = starts[w+1]
		}
		windows[w] = OwnershipWindow{Worker: chunks[w].Worker, Range: ByteRange{Start: starts[w], End: end}}
	}
	return windows, nil
}

// nextLineStart returns the offset right after the first '\n' at or after
// from, or src.Size() when there is none.
func nextLineStart(ctx context.Context, src Source, from int64, pool *blockPool) (int64, error) {
	size := src.Size()
	if from >= size {
		return size, nil
	}
	if data, ok := viewOf(src); ok {
		if i := bytes.IndexByte(data[from:], '\n'); i >= 0 {
			return from + int64(i) + 1, nil
		}
		return size, nil
	}

	bp := pool.get()
	defer pool.put(bp)
	buf := *bp
	for off := from; off < size; {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := src.ReadAt(buf[:min(int64(len(buf)), size-off)], off)
		if i := bytes.IndexByte(buf[:n], '\n'); i >= 0 {
			return off + int64(i) + 1, nil
		}
		off += int64(n)
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: read at %d: %w", ErrIO, off, err)
		}
		if n == 0 {
			return 0, fmt.Errorf("%w: short read at %d of %d bytes", ErrIO, off, size)
		}
	}
	return size, nil
}
