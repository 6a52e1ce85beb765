package linemax

import "sync"

// blockPool menyimpan blok baca berukuran tetap untuk sumber tanpa Bytes(),
// sehingga tiap worker tidak mengalokasikan blok baru per jendela.
type blockPool struct {
	size int
	pool sync.Pool
}

func newBlockPool(size int) *blockPool {
	p := &blockPool{size: size}
	p.pool.New = func() any {
		b := make([]byte, size)
		return &b
	}
	return p
}

// get mengambil blok dari pool atau membuat baru jika tidak tersedia.
func (p *blockPool) get() *[]byte {
	return p.pool.Get().(*[]byte)
}

// put mengembalikan blok ke pool. Hanya blok dengan ukuran tepat yang
// dimasukkan kembali untuk menghindari fragmentasi.
func (p *blockPool) put(b *[]byte) {
	if b != nil && len(*b) == p.size {
		p.pool.Put(b)
	}
}
