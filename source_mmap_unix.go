//go:build unix

package linemax

import (
	"fmt"
	"math"

	"golang.org/x/sys/unix"
)

// mmapSource memetakan seluruh file read-only. Region mmap berisi hasil dari
// unix.Mmap sehingga scanner cukup mengakses slice tanpa syscall I/O.
type mmapSource struct {
	data []byte // nil untuk file kosong (panjang 0 tidak bisa di-mmap)
	size int64
}

func openMmap(path string, prefetch bool) (Source, error) {
	f, size, err := statRegular(path)
	if err != nil {
		return nil, err
	}
	// descriptor boleh ditutup setelah mmap; pemetaan tetap berlaku
	defer f.Close()

	if size == 0 {
		return &mmapSource{}, nil
	}
	if size > math.MaxInt {
		return nil, fmt.Errorf("%w: %s is too large to map (%d bytes)", ErrIO, path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %s: %w", ErrIO, path, err)
	}
	if prefetch {
		// hanya hint untuk read-ahead; kegagalan tidak memengaruhi hasil
		_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	}
	return &mmapSource{data: data, size: size}, nil
}

func (s *mmapSource) ReadAt(p []byte, off int64) (int, error) {
	return (&bytesSource{data: s.data}).ReadAt(p, off)
}

func (s *mmapSource) Size() int64   { return s.size }
func (s *mmapSource) Bytes() []byte { return s.data }

// Close melepas region mmap. Aman dipanggil lebih dari sekali.
func (s *mmapSource) Close() error {
	if s.data == nil {
		return nil
	}
	data := s.data
	s.data = nil
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("%w: munmap: %w", ErrIO, err)
	}
	return nil
}
