package bloomset

// ElementHasher maps an (element, seed) pair to a digest. Each seed is one
// hash round; a filter with k rounds uses seeds 0..k-1.
//
// HashMulti appends one digest per seed to dst and must return exactly what
// calling Hash once per seed would. It exists so that implementations can
// share seed-independent work (encoding, key derivation) across rounds.
//
// A filter is only meaningful under the hasher that built it.
type ElementHasher interface {
	Hash(element uint64, seed uint32) uint64
	HashMulti(dst []uint64, element uint64, seeds []uint32) []uint64
}

// Seeds returns the round seeds 0..n-1.
func Seeds(n uint32) []uint32 {
	seeds := make([]uint32, n)
	for i := range seeds {
		seeds[i] = uint32(i)
	}
	return seeds
}

func murmur64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// returns random number, modifies the seed
func splitmix64(seed *uint64) uint64 {
	*seed = *seed + 0x9E3779B97F4A7C15
	z := *seed
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// roundKey spreads small consecutive seeds across the whole 64-bit space.
// Adding the raw seed to the element would make (e, s+1) collide with (e+1, s).
func roundKey(seed uint32) uint64 {
	s := uint64(seed)
	return splitmix64(&s)
}

// MixHasher is the fastest strategy: a single murmur64 finalizer over the
// element offset by a mixed seed. It needs no byte encoding.
type MixHasher struct{}

func (MixHasher) Hash(element uint64, seed uint32) uint64 {
	return murmur64(element + roundKey(seed))
}

func (h MixHasher) HashMulti(dst []uint64, element uint64, seeds []uint32) []uint64 {
	for _, seed := range seeds {
		dst = append(dst, h.Hash(element, seed))
	}
	return dst
}
