package linemax

import (
	"fmt"

	"golang.org/x/exp/mmap"
)

// mmapReaderSource memakai mmap.ReaderAt dari x/exp. Isi dibaca lewat ReadAt
// sehingga scanner memakai jalur blok (tanpa Bytes()).
type mmapReaderSource struct {
	r *mmap.ReaderAt
}

func openMmapReader(path string) (Source, error) {
	// stat dulu supaya direktori dan file hilang dilaporkan seragam
	f, _, err := statRegular(path)
	if err != nil {
		return nil, err
	}
	f.Close()

	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %s: %w", ErrIO, path, err)
	}
	return &mmapReaderSource{r: r}, nil
}

func (s *mmapReaderSource) ReadAt(p []byte, off int64) (int, error) { return s.r.ReadAt(p, off) }
func (s *mmapReaderSource) Size() int64                             { return int64(s.r.Len()) }

func (s *mmapReaderSource) Close() error {
	if err := s.r.Close(); err != nil {
		return fmt.Errorf("%w: munmap: %w", ErrIO, err)
	}
	return nil
}
