// Package sets holds the plain containers fed to bloomset filters: sets and
// multisets over a bounded integer universe, random sampling, and generators
// for test data with a fixed intersection or union size.
package sets

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"iter"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

var (
	ErrNoSets           = errors.New("sets: at least one set is required")
	ErrUniverseTooSmall = errors.New("sets: universe smaller than requested element count")
	ErrLengthMismatch   = errors.New("sets: elements and counts differ in length")
	ErrZeroCount        = errors.New("sets: multiplicity must be positive")
	ErrBadGeneratorArgs = errors.New("sets: generator arguments are not satisfiable")
)

// Set is a collection of unique elements from [0, universe).
type Set struct {
	elements map[uint64]struct{}
}

// NewSet returns the set of the given elements; duplicates collapse.
func NewSet(elements ...uint64) Set {
	s := Set{elements: make(map[uint64]struct{}, len(elements))}
	for _, e := range elements {
		s.elements[e] = struct{}{}
	}
	return s
}

// RandomSet samples n distinct elements uniformly from [0, universe).
// A nil rng uses a generator seeded from crypto/rand.
func RandomSet(rng *rand.Rand, n, universe uint64) (Set, error) {
	if n > universe {
		return Set{}, fmt.Errorf("%w: %d of %d", ErrUniverseTooSmall, n, universe)
	}
	return Set{elements: sample(orDefault(rng), n, universe)}, nil
}

// sample is Floyd's algorithm: n draws, no rejection loop.
func sample(rng *rand.Rand, n, universe uint64) map[uint64]struct{} {
	out := make(map[uint64]struct{}, n)
	for j := universe - n; j < universe; j++ {
		t := rng.Uint64N(j + 1)
		if _, ok := out[t]; ok {
			t = j
		}
		out[t] = struct{}{}
	}
	return out
}

func orDefault(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic(err)
	}
	return rand.New(rand.NewChaCha8(seed))
}

func (s Set) Len() int { return len(s.elements) }

func (s Set) IsEmpty() bool { return len(s.elements) == 0 }

func (s Set) Contains(element uint64) bool {
	_, ok := s.elements[element]
	return ok
}

// Insert adds element. The zero Set is ready to use.
func (s *Set) Insert(element uint64) {
	if s.elements == nil {
		s.elements = make(map[uint64]struct{})
	}
	s.elements[element] = struct{}{}
}

// All yields the elements in no particular order.
func (s Set) All() iter.Seq[uint64] {
	return maps.Keys(s.elements)
}

// Elements returns the elements in ascending order.
func (s Set) Elements() []uint64 {
	return slices.Sorted(maps.Keys(s.elements))
}

func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for e := range s.elements {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

func (s Set) clone() Set {
	return Set{elements: maps.Clone(s.elements)}
}

// Intersect returns the elements present in both sets.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if small.Len() > large.Len() {
		small, large = large, small
	}
	out := NewSet()
	for e := range small.elements {
		if large.Contains(e) {
			out.elements[e] = struct{}{}
		}
	}
	return out
}

// Unify returns the elements present in either set.
func (s Set) Unify(other Set) Set {
	out := s.clone()
	if out.elements == nil {
		out.elements = make(map[uint64]struct{}, other.Len())
	}
	maps.Copy(out.elements, other.elements)
	return out
}

// Intersection folds Intersect over sets.
func Intersection(sets ...Set) (Set, error) {
	if len(sets) == 0 {
		return Set{}, ErrNoSets
	}
	out := sets[0].clone()
	for _, s := range sets[1:] {
		out = out.Intersect(s)
	}
	if out.elements == nil {
		out = NewSet()
	}
	return out, nil
}

// Union folds Unify over sets.
func Union(sets ...Set) (Set, error) {
	if len(sets) == 0 {
		return Set{}, ErrNoSets
	}
	out := NewSet()
	for _, s := range sets {
		maps.Copy(out.elements, s.elements)
	}
	return out, nil
}

// Bitset returns the characteristic vector of s over [0, universe).
// Elements outside the universe are dropped.
func (s Set) Bitset(universe uint) *bitset.BitSet {
	b := bitset.New(universe)
	for e := range s.elements {
		if e < uint64(universe) {
			b.Set(uint(e))
		}
	}
	return b
}

// FromBitset returns the set of indices set in b.
func FromBitset(b *bitset.BitSet) Set {
	s := Set{elements: make(map[uint64]struct{}, b.Count())}
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		s.elements[uint64(i)] = struct{}{}
	}
	return s
}
