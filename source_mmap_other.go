//go:build !unix

package linemax

// Tanpa unix.Mmap, SourceMmap jatuh ke ReaderAt portabel dari x/exp/mmap.
func openMmap(path string, _ bool) (Source, error) {
	return openMmapReader(path)
}
