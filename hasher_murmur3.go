package bloomset

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// Murmur3Hasher uses the seeded 64-bit murmur3 over the little-endian element.
type Murmur3Hasher struct{}

func (Murmur3Hasher) Hash(element uint64, seed uint32) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], element)
	return murmur3.Sum64WithSeed(buf[:], seed)
}

func (Murmur3Hasher) HashMulti(dst []uint64, element uint64, seeds []uint32) []uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], element)
	for _, seed := range seeds {
		dst = append(dst, murmur3.Sum64WithSeed(buf[:], seed))
	}
	return dst
}
