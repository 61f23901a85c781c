package sets

import "github.com/FastFilter/bloomset"

// BuildSetBloom builds a Bloom filter holding the elements of s.
func BuildSetBloom[H bloomset.ElementHasher](s Set, binCount uint64, hashCount uint32, hasher H) (*bloomset.Bloom[H], error) {
	return bloomset.PopulateBloom(s.Elements(), binCount, hashCount, hasher)
}

// SizedSetBloom sizes a filter for s with bloomset.NewParams and builds it.
func SizedSetBloom[H bloomset.ElementHasher](s Set, maxErrorRate float64, hasher H) (*bloomset.Bloom[H], error) {
	p, err := bloomset.NewParams(maxErrorRate, uint64(s.Len()))
	if err != nil {
		return nil, err
	}
	return BuildSetBloom(s, p.BinCount, p.HashCount, hasher)
}

// BuildMultisetBloom builds a multiset filter holding m. Counts of
// maxMultiplicity or more all read back as maxMultiplicity.
func BuildMultisetBloom[H bloomset.ElementHasher](m Multiset, binCount uint64, hashCount uint32, hasher H, maxMultiplicity uint64) (*bloomset.MultisetBloom[H], error) {
	return bloomset.PopulateMultisetBloom(m.All(), binCount, hashCount, hasher, maxMultiplicity)
}
