package linemax

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// SourceKind memilih backend penyimpanan untuk FileSource.
type SourceKind string

const (
	// SourceAuto memakai backend tercepat yang tersedia (mmap).
	SourceAuto SourceKind = "auto"
	// SourceMmap memetakan file dengan unix.Mmap (read-only, MAP_SHARED).
	SourceMmap SourceKind = "mmap"
	// SourceMmapReader memakai golang.org/x/exp/mmap.ReaderAt (portabel).
	SourceMmapReader SourceKind = "mmap-reader"
	// SourcePread membaca langsung dari *os.File dengan ReadAt.
	SourcePread SourceKind = "pread"
)

// Source adalah urutan byte yang immutable dengan panjang tetap dan akses acak.
//
// Ukuran dibaca sekali saat dibuka sehingga semua worker melihat nilai yang
// sama. ReadAt harus aman dipanggil dari banyak goroutine sekaligus.
type Source interface {
	io.ReaderAt
	Size() int64
	Close() error
}

// byteViewer diimplementasikan oleh sumber yang seluruh isinya tersedia
// sebagai satu slice (mmap, memori). Scanner memakai jalur langsung bila ada.
type byteViewer interface {
	Bytes() []byte
}

// viewOf mengembalikan slice penuh bila src mendukungnya.
func viewOf(src Source) ([]byte, bool) {
	if v, ok := src.(byteViewer); ok {
		return v.Bytes(), true
	}
	return nil, false
}

// Open membuka path dengan opsi default (lihat DefaultOptions).
func Open(path string) (Source, error) {
	return OpenWithOptions(path, DefaultOptions())
}

// OpenWithOptions membuka path dengan backend opts.Source.
// Kegagalan open/stat/mmap dibungkus dengan ErrIO; file kosong bukan error.
func OpenWithOptions(path string, opts Options) (Source, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: missing input path", ErrConfig)
	}
	switch opts.Source {
	case SourceAuto, SourceMmap:
		return openMmap(path, opts.Prefetch)
	case SourceMmapReader:
		return openMmapReader(path)
	case SourcePread:
		return openPread(path)
	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrConfig, opts.Source)
	}
}

// statRegular membuka path dan memastikan isinya file biasa.
func statRegular(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, 0, fmt.Errorf("%w: %s is a directory", ErrIO, path)
	}
	return f, fi.Size(), nil
}

// preadSource membaca via pread(2); aman untuk goroutine karena tidak
// memakai offset file bersama.
type preadSource struct {
	file *os.File
	size int64
}

func openPread(path string) (Source, error) {
	f, size, err := statRegular(path)
	if err != nil {
		return nil, err
	}
	return &preadSource{file: f, size: size}, nil
}

func (s *preadSource) ReadAt(p []byte, off int64) (int, error) { return s.file.ReadAt(p, off) }
func (s *preadSource) Size() int64                             { return s.size }

func (s *preadSource) Close() error {
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrIO, err)
	}
	return nil
}

// bytesSource adalah Source di memori.
type bytesSource struct {
	data []byte
}

// NewBytesSource membungkus data sebagai Source. Data tidak boleh diubah
// selama Source dipakai.
func NewBytesSource(data []byte) Source {
	return &bytesSource{data: data}
}

func (s *bytesSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("linemax: negative offset")
	}
	if off >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *bytesSource) Size() int64   { return int64(len(s.data)) }
func (s *bytesSource) Bytes() []byte { return s.data }
func (s *bytesSource) Close() error  { return nil }

// readerAtSource menyesuaikan io.ReaderAt apa pun dengan ukuran yang diketahui.
type readerAtSource struct {
	r    io.ReaderAt
	size int64
}

// NewReaderAtSource membungkus r (misalnya io.SectionReader) sebagai Source
// berukuran size. Close tidak menutup r.
func NewReaderAtSource(r io.ReaderAt, size int64) Source {
	return &readerAtSource{r: r, size: size}
}

func (s *readerAtSource) ReadAt(p []byte, off int64) (int, error) { return s.r.ReadAt(p, off) }
func (s *readerAtSource) Size() int64                             { return s.size }
func (s *readerAtSource) Close() error                            { return nil }
