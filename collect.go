package linemax

import (
	"fmt"
	"iter"
	"slices"
)

// Line is the result for one line of the input.
type Line struct {
	Index int64 // zero-based, global
	Max   byte  // highest printable ASCII byte, 0 if none
}

// WorkerResult holds the maxima one worker produced, in local line order.
// It is written once, by its worker, and read once by Collect.
type WorkerResult struct {
	Worker WorkerID
	Values []byte
}

// Len returns the worker's local line count.
func (r WorkerResult) Len() int { return len(r.Values) }

// GlobalResult is the rank-ordered concatenation of all worker results.
type GlobalResult struct {
	values []byte
}

// Len returns the total number of lines.
func (g GlobalResult) Len() int { return len(g.values) }

// At returns line i.
func (g GlobalResult) At(i int) Line { return Line{Index: int64(i), Max: g.values[i]} }

// Values returns a copy of the per-line maxima in global order.
func (g GlobalResult) Values() []byte { return slices.Clone(g.values) }

// All yields every line in increasing index order.
func (g GlobalResult) All() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for i, v := range g.values {
			if !yield(Line{Index: int64(i), Max: v}) {
				return
			}
		}
	}
}

// Offsets returns the exclusive prefix sum of counts: element w is the
// global index of worker w's first line and the extra last element is the
// total line count.
func Offsets(counts []int) []int64 {
	offsets := make([]int64, len(counts)+1)
	for w, c := range counts {
		offsets[w+1] = offsets[w] + int64(c)
	}
	return offsets
}

// Collect merges worker results into one globally ordered sequence.
//
// results may be in any order (typically completion order); they are placed
// by worker rank, never by position. Every rank in [0, workers) must occur
// exactly once. Local line i of worker w becomes global line offset_w + i.
func Collect(workers int, results []WorkerResult) (GlobalResult, error) {
	if workers < 1 {
		return GlobalResult{}, fmt.Errorf("%w: worker count must be a positive integer, got %d", ErrConfig, workers)
	}
	if len(results) != workers {
		return GlobalResult{}, fmt.Errorf("%w: got %d worker results, want %d", ErrInvariant, len(results), workers)
	}

	byRank := make([]*WorkerResult, workers)
	for i := range results {
		r := &results[i]
		if r.Worker < 0 || int(r.Worker) >= workers {
			return GlobalResult{}, fmt.Errorf("%w: worker rank %d out of range [0,%d)", ErrInvariant, r.Worker, workers)
		}
		if byRank[r.Worker] != nil {
			return GlobalResult{}, fmt.Errorf("%w: duplicate result for worker %d", ErrInvariant, r.Worker)
		}
		byRank[r.Worker] = r
	}

	counts := make([]int, workers)
	for w, r := range byRank {
		counts[w] = r.Len()
	}
	offsets := Offsets(counts)

	values := make([]byte, offsets[workers])
	for w, r := range byRank {
		copy(values[offsets[w]:offsets[w+1]], r.Values)
	}
	return GlobalResult{values: values}, nil
}
