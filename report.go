package linemax

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Report writes one "<index>: <max_value>" line per result, in increasing
// index order, and nothing else.
func Report(w io.Writer, res GlobalResult) error {
	bw := bufio.NewWriterSize(w, 64*1024)
	buf := make([]byte, 0, 32)
	for i, v := range res.values {
		buf = strconv.AppendInt(buf[:0], int64(i), 10)
		buf = append(buf, ':', ' ')
		buf = strconv.AppendUint(buf, uint64(v), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("%w: write report: %w", ErrIO, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush report: %w", ErrIO, err)
	}
	return nil
}
