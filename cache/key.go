package cache

import (
	"fmt"
	"hash/fnv"
)

// Key identifies one cached page under one configuration. Two keys are equal
// exactly when source, page number, and page size all match, so Key is usable
// directly as a map key.
type Key struct {
	Source   string
	Page     int
	PageSize int
}

// NewKey builds a cache key from a data source identifier, a 1-based page
// number, and the page size in effect.
func NewKey(source string, page, pageSize int) Key {
	return Key{Source: source, Page: page, PageSize: pageSize}
}

// String renders a stable, human-readable form of the key, used in log
// fields and flight-group keys.
func (k Key) String() string {
	return fmt.Sprintf("%s:p%d:s%d", k.Source, k.Page, k.PageSize)
}

// Hash computes a stable FNV-1a 64-bit hash combining all three fields.
// FNV-1a is fast and distributes well for hash tables and sampling.
func (k Key) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(k.Source))
	h.Write([]byte{0})
	var buf [8]byte
	putUint64(buf[:], uint64(k.Page))
	h.Write(buf[:])
	putUint64(buf[:], uint64(k.PageSize))
	h.Write(buf[:])
	return h.Sum64()
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
