package linemax

import "fmt"

// Owner returns the worker whose ownership window contains offset.
//
// Offsets outside [0, Size) have no owner. Empty windows never match.
func (p *Plan) Owner(offset int64) (WorkerID, error) {
	if offset < 0 || offset >= p.Size {
		return 0, fmt.Errorf("offset out of range: %d (size: %d)", offset, p.Size)
	}

	// Cari jendela yang intervalnya mencakup offset.
	for _, w := range p.Windows {
		if w.Range.Contains(offset) {
			return w.Worker, nil
		}
	}
	// Seharusnya tidak terjadi.
	return 0, fmt.Errorf("%w: offset %d not covered by any window", ErrInvariant, offset)
}
