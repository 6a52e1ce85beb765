package linemax

import (
	"sync/atomic"
	"time"
)

// Stats menyimpan statistik satu kali Run.
// PerWorker berisi jumlah baris per worker menurut rank.
type Stats struct {
	Workers   int
	Strategy  Strategy
	Bytes     uint64
	Lines     uint64
	PerWorker []int
	Duration  time.Duration
}

// LinesPerSecond menghitung throughput baris; 0 bila durasi belum tercatat.
func (s Stats) LinesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Lines) / s.Duration.Seconds()
}

// runCounters dipakai bersama oleh semua worker tanpa lock berat.
type runCounters struct {
	bytes uint64
	lines uint64
}

func (c *runCounters) add(bytes, lines int) {
	atomic.AddUint64(&c.bytes, uint64(bytes))
	atomic.AddUint64(&c.lines, uint64(lines))
}

// snapshot mengambil nilai penghitung saat ini.
func (c *runCounters) snapshot() (bytes, lines uint64) {
	return atomic.LoadUint64(&c.bytes), atomic.LoadUint64(&c.lines)
}
