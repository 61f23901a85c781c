package sets

import (
	"fmt"
	"iter"
	"maps"
	"math/rand/v2"

	"github.com/bits-and-blooms/bitset"
)

// Multiset maps elements to positive multiplicities.
type Multiset struct {
	counts map[uint64]uint64
}

// NewMultiset pairs elements[i] with counts[i]. A repeated element keeps its
// last count.
func NewMultiset(elements, counts []uint64) (Multiset, error) {
	if len(elements) != len(counts) {
		return Multiset{}, fmt.Errorf("%w: %d elements, %d counts", ErrLengthMismatch, len(elements), len(counts))
	}
	m := Multiset{counts: make(map[uint64]uint64, len(elements))}
	for i, e := range elements {
		if counts[i] == 0 {
			return Multiset{}, fmt.Errorf("%w: element %d", ErrZeroCount, e)
		}
		m.counts[e] = counts[i]
	}
	return m, nil
}

// MultisetFromPairs collects (element, count) pairs, skipping zero counts.
func MultisetFromPairs(pairs iter.Seq2[uint64, uint64]) Multiset {
	m := Multiset{counts: make(map[uint64]uint64)}
	for e, c := range pairs {
		if c > 0 {
			m.counts[e] = c
		}
	}
	return m
}

// RandomMultiset samples n distinct elements from [0, universe), each with a
// count drawn uniformly from 1..maxMultiplicity inclusive.
func RandomMultiset(rng *rand.Rand, n, universe, maxMultiplicity uint64) (Multiset, error) {
	if maxMultiplicity == 0 {
		return Multiset{}, ErrZeroCount
	}
	if n > universe {
		return Multiset{}, fmt.Errorf("%w: %d of %d", ErrUniverseTooSmall, n, universe)
	}
	rng = orDefault(rng)
	m := Multiset{counts: make(map[uint64]uint64, n)}
	for e := range sample(rng, n, universe) {
		m.counts[e] = rng.Uint64N(maxMultiplicity) + 1
	}
	return m, nil
}

func (m Multiset) Len() int { return len(m.counts) }

func (m Multiset) IsEmpty() bool { return len(m.counts) == 0 }

// Count is the multiplicity of element, 0 if absent.
func (m Multiset) Count(element uint64) uint64 { return m.counts[element] }

// All yields (element, count) pairs in no particular order.
func (m Multiset) All() iter.Seq2[uint64, uint64] {
	return maps.All(m.counts)
}

func (m Multiset) Equal(other Multiset) bool {
	return maps.Equal(m.counts, other.counts)
}

// Support returns the set of elements with a positive count.
func (m Multiset) Support() Set {
	s := Set{elements: make(map[uint64]struct{}, len(m.counts))}
	for e := range m.counts {
		s.elements[e] = struct{}{}
	}
	return s
}

// Bitset returns the unary encoding of m over universe*maxMultiplicity bits:
// element e with count c sets bits e*maxMultiplicity .. e*maxMultiplicity+c-1.
// Counts are clamped to maxMultiplicity and elements outside the universe
// are dropped.
func (m Multiset) Bitset(universe, maxMultiplicity uint) *bitset.BitSet {
	b := bitset.New(universe * maxMultiplicity)
	for e, c := range m.counts {
		if e >= uint64(universe) {
			continue
		}
		base := uint(e) * maxMultiplicity
		for i := uint(0); i < min(uint(c), maxMultiplicity); i++ {
			b.Set(base + i)
		}
	}
	return b
}
