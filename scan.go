package linemax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// Printable ASCII bounds, inclusive.
const (
	minPrintable = 32
	maxPrintable = 126
)

// lineScanner keeps the running maximum of the current line and appends one
// value per finished line to its own sequence.
type lineScanner struct {
	seq     *maxSeq
	cur     byte
	pending bool // bytes consumed since the last newline
	limit   int  // 0 = unlimited
}

func newLineScanner(limit int) *lineScanner {
	return &lineScanner{seq: newMaxSeq(initialSeqCap), limit: limit}
}

// feed consumes the next bytes of the window.
func (s *lineScanner) feed(p []byte) error {
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		line := p
		if i >= 0 {
			line = p[:i]
		}
		cur := s.cur
		for _, c := range line {
			if c >= minPrintable && c <= maxPrintable && c > cur {
				cur = c
			}
		}
		s.cur = cur
		if i < 0 {
			if len(line) > 0 {
				s.pending = true
			}
			return nil
		}
		if err := s.emit(); err != nil {
			return err
		}
		p = p[i+1:]
	}
	return nil
}

// finish emits the unterminated trailing line, if any.
func (s *lineScanner) finish() error {
	if s.pending {
		return s.emit()
	}
	return nil
}

func (s *lineScanner) emit() error {
	if s.limit > 0 && s.seq.Len() >= s.limit {
		return fmt.Errorf("%w: more than %d lines in one window", ErrResource, s.limit)
	}
	s.seq.append(s.cur)
	s.cur = 0
	s.pending = false
	return nil
}

// ScanBytes returns the per-line maxima of data as if it were one ownership
// window: one value per newline plus one for an unterminated tail.
func ScanBytes(data []byte) []byte {
	s := newLineScanner(0)
	_ = s.feed(data)
	_ = s.finish()
	return s.seq.values()
}

// scanWindow runs the line scanner over one ownership window of src.
// Sources exposing Bytes() are scanned in place; others are read through an
// io.SectionReader in pooled blocks. ctx is checked between blocks.
func scanWindow(ctx context.Context, src Source, win OwnershipWindow, pool *blockPool, limit int) (vals []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			vals, err = nil, fmt.Errorf("%w: worker %d: %v", ErrResource, win.Worker, r)
		}
	}()

	s := newLineScanner(limit)
	if win.Range.Empty() {
		return s.seq.values(), nil
	}

	step := pool.size
	if data, ok := viewOf(src); ok {
		window := data[win.Range.Start:win.Range.End]
		for len(window) > 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			n := min(step, len(window))
			if err := s.feed(window[:n]); err != nil {
				return nil, err
			}
			window = window[n:]
		}
	} else {
		bp := pool.get()
		defer pool.put(bp)
		buf := *bp
		sr := io.NewSectionReader(src, win.Range.Start, win.Range.Len())
		var read int64
		for {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			n, rerr := sr.Read(buf)
			read += int64(n)
			if n > 0 {
				if err := s.feed(buf[:n]); err != nil {
					return nil, err
				}
			}
			if errors.Is(rerr, io.EOF) {
				if read < win.Range.Len() {
					return nil, fmt.Errorf("%w: short read in window %s: %d bytes", ErrIO, win.Range, read)
				}
				break
			}
			if rerr != nil {
				return nil, fmt.Errorf("%w: read window %s: %w", ErrIO, win.Range, rerr)
			}
		}
	}

	if err := s.finish(); err != nil {
		return nil, err
	}
	return s.seq.values(), nil
}
