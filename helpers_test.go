package linemax

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// scenario is the four-line example used throughout the tests:
// "Ab" -> 98, "cd$" -> 100, "" -> 0, "Z" -> 90.
const scenario = "Ab\ncd$\n\nZ"

var scenarioWant = []byte{98, 100, 0, 90}

// writeTemp writes data to a file in a fresh temporary directory.
func writeTemp(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

// refScan is the single-pass reference: one value per newline plus one for a
// non-empty unterminated tail.
func refScan(data []byte) []byte {
	out := []byte{}
	var cur byte
	start := 0
	for i, c := range data {
		if c == '\n' {
			out = append(out, cur)
			cur = 0
			start = i + 1
			continue
		}
		if c >= 32 && c <= 126 && c > cur {
			cur = c
		}
	}
	if start < len(data) {
		out = append(out, cur)
	}
	return out
}

// refLineCount counts newlines, plus one if the file is non-empty and does
// not end in a newline.
func refLineCount(data []byte) int {
	n := 0
	for _, c := range data {
		if c == '\n' {
			n++
		}
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

// randomInput produces size bytes biased towards newlines, control bytes and
// high bytes so every branch of the scanner is hit.
func randomInput(r *rand.Rand, size int) []byte {
	alphabet := []byte{'\n', '\n', '\n', 0, 9, 31, 32, 65, 97, 126, 127, 200, 255}
	data := make([]byte, size)
	for i := range data {
		if r.Intn(3) == 0 {
			data[i] = alphabet[r.Intn(len(alphabet))]
		} else {
			data[i] = byte(r.Intn(256))
		}
	}
	return data
}

// streamed hides Bytes() so the block-reading path is used.
func streamed(data []byte) Source {
	return NewReaderAtSource(NewBytesSource(data), int64(len(data)))
}

func testOptions(workers int) Options {
	opts := DefaultOptions()
	opts.Workers = workers
	opts.ReadBufferSize = 3
	return opts
}
