package linemax

import (
	"fmt"
	"runtime"
)

// Strategy memilih cara pembagian kerja antar worker.
type Strategy string

const (
	// StrategyWindow membagi file per byte lalu menyelaraskan batas ke awal baris.
	StrategyWindow Strategy = "window"
	// StrategyIndexed mengindeks semua awal baris dulu, lalu membagi per jumlah baris.
	StrategyIndexed Strategy = "indexed"
)

// Options menyediakan opsi konfigurasi untuk Run dan ProcessFile.
//
//   - Workers:           jumlah worker paralel (wajib >= 1)
//   - Source:            backend FileSource (auto, mmap, mmap-reader, pread)
//   - Strategy:          window (default) atau indexed
//   - Prefetch:          beri hint read-ahead ke kernel (hanya mmap)
//   - ReadBufferSize:    ukuran blok baca untuk sumber tanpa Bytes()
//   - MaxLinesPerWorker: batas baris per worker (0 = tidak terbatas)
//
// Lihat DefaultOptions() untuk nilai bawaan.
type Options struct {
	Workers           int        `json:"workers"`
	Source            SourceKind `json:"source"`
	Strategy          Strategy   `json:"strategy"`
	Prefetch          bool       `json:"prefetch"`
	ReadBufferSize    int        `json:"read_buffer_size"`
	MaxLinesPerWorker int        `json:"max_lines_per_worker"`
}

// DefaultOptions mengembalikan konfigurasi default: satu worker per CPU,
// sumber mmap, strategi window.
func DefaultOptions() Options {
	return Options{
		Workers:        runtime.NumCPU(),
		Source:         SourceAuto,
		Strategy:       StrategyWindow,
		Prefetch:       true,
		ReadBufferSize: 64 * 1024,
	}
}

// Validate memeriksa opsi dan mengembalikan ErrConfig bila ada nilai tidak sah.
func (o Options) Validate() error {
	if o.Workers < 1 {
		return fmt.Errorf("%w: worker count must be a positive integer, got %d", ErrConfig, o.Workers)
	}
	switch o.Source {
	case SourceAuto, SourceMmap, SourceMmapReader, SourcePread:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrConfig, o.Source)
	}
	switch o.Strategy {
	case StrategyWindow, StrategyIndexed:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrConfig, o.Strategy)
	}
	if o.ReadBufferSize <= 0 {
		return fmt.Errorf("%w: read buffer size must be positive, got %d", ErrConfig, o.ReadBufferSize)
	}
	if o.MaxLinesPerWorker < 0 {
		return fmt.Errorf("%w: max lines per worker must not be negative, got %d", ErrConfig, o.MaxLinesPerWorker)
	}
	return nil
}
