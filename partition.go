package linemax

import "fmt"

// WorkerID is the rank of a worker, 0..W-1. It is assigned when the plan is
// built and passed to the worker explicitly.
type WorkerID int

// ByteRange is the half-open byte interval [Start, End).
type ByteRange struct {
	Start int64
	End   int64
}

// Len returns the number of bytes in the range.
func (r ByteRange) Len() int64 { return r.End - r.Start }

// Empty reports whether the range holds no bytes.
func (r ByteRange) Empty() bool { return r.End <= r.Start }

// Contains reports whether off lies in [Start, End).
func (r ByteRange) Contains(off int64) bool { return off >= r.Start && off < r.End }

func (r ByteRange) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// Chunk is the nominal byte range of one worker, computed from the file size
// and worker count alone. It ignores line boundaries and may be empty.
type Chunk struct {
	Worker WorkerID
	Range  ByteRange
}

// Partition splits [0, size) into workers contiguous chunks of
// ceil(size/workers) bytes. The last non-empty chunk may be shorter; when
// workers exceeds size the trailing chunks are empty and sit at size.
func Partition(size int64, workers int) ([]Chunk, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: worker count must be a positive integer, got %d", ErrConfig, workers)
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative file size %d", ErrConfig, size)
	}

	w := int64(workers)
	chunkSize := size / w
	if size%w != 0 {
		chunkSize++ // round-up
	}

	chunks := make([]Chunk, workers)
	for i := range chunks {
		begin := min(int64(i)*chunkSize, size)
		end := min(begin+chunkSize, size)
		chunks[i] = Chunk{Worker: WorkerID(i), Range: ByteRange{Start: begin, End: end}}
	}
	return chunks, nil
}
