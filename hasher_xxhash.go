package bloomset

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// XXHasher hashes the 12-byte little-endian encoding element||seed with
// xxHash64.
type XXHasher struct{}

func (XXHasher) Hash(element uint64, seed uint32) uint64 {
	var buf [12]byte
	binary.LittleEndian.PutUint64(buf[:8], element)
	binary.LittleEndian.PutUint32(buf[8:], seed)
	return xxhash.Sum64(buf[:])
}

// HashMulti encodes the element once and only rewrites the seed bytes per round.
func (XXHasher) HashMulti(dst []uint64, element uint64, seeds []uint32) []uint64 {
	var buf [12]byte
	binary.LittleEndian.PutUint64(buf[:8], element)
	for _, seed := range seeds {
		binary.LittleEndian.PutUint32(buf[8:], seed)
		dst = append(dst, xxhash.Sum64(buf[:]))
	}
	return dst
}
