package linemax

// initialSeqCap is the starting capacity of a worker's result sequence.
const initialSeqCap = 1024

// maxSeq is the append-only sequence of per-line maxima owned by a single
// worker. Growth is amortized O(1); callers never see the backing array until
// the worker hands it over with values.
type maxSeq struct {
	vals []byte
}

func newMaxSeq(hint int) *maxSeq {
	if hint < initialSeqCap {
		hint = initialSeqCap
	}
	return &maxSeq{vals: make([]byte, 0, hint)}
}

func (s *maxSeq) append(v byte) { s.vals = append(s.vals, v) }

func (s *maxSeq) Len() int { return len(s.vals) }

// values returns the sequence trimmed to its length. The sequence must not
// be appended to afterwards.
func (s *maxSeq) values() []byte { return s.vals[:len(s.vals):len(s.vals)] }
