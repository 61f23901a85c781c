package bloomset

import (
	"fmt"
	"iter"
	"math/bits"
)

// SyntheticElement maps the pair (element, slot) with slot < maxMultiplicity
// to the single key element*maxMultiplicity + slot.
//
// This is a bijection between [0, U) x [0, m) and [0, U*m). Slot ranges of
// distinct elements never overlap as long as every slot is below
// maxMultiplicity, which is why a count must stay below the multiplicity
// bound it was encoded with.
func SyntheticElement(element, slot, maxMultiplicity uint64) uint64 {
	return element*maxMultiplicity + slot
}

// SplitSynthetic is the inverse of SyntheticElement.
func SplitSynthetic(synthetic, maxMultiplicity uint64) (element, slot uint64) {
	return synthetic / maxMultiplicity, synthetic % maxMultiplicity
}

// MultisetBloom stores bounded multiplicities in a Bloom filter: an element
// with count c occupies its first c synthetic slots, and Count probes the
// slots in order.
//
// Counts are one-sided like membership: Count never reports less than what
// was inserted, but a false positive on a slot past the true count makes it
// report more. Overcounting by j needs j consecutive false positives, so it
// happens with roughly the per-query false-positive rate to the j-th power.
//
// Every true count must be below MaxMultiplicity. Larger counts saturate at
// MaxMultiplicity and no error is reported.
type MultisetBloom[H ElementHasher] struct {
	Bloom           *Bloom[H]
	MaxMultiplicity uint64
}

// NewMultisetBloom returns an empty multiset filter.
func NewMultisetBloom[H ElementHasher](binCount uint64, hashCount uint32, hasher H, maxMultiplicity uint64) (*MultisetBloom[H], error) {
	if maxMultiplicity == 0 {
		return nil, ErrBadMultiplicity
	}
	filter, err := NewBloom(binCount, hashCount, hasher)
	if err != nil {
		return nil, err
	}
	return &MultisetBloom[H]{Bloom: filter, MaxMultiplicity: maxMultiplicity}, nil
}

// PopulateMultisetBloom builds a filter from (element, count) pairs. Elements
// are expected to be unique. The function returns an error if there are no
// pairs or an element's slot range does not fit in uint64.
func PopulateMultisetBloom[H ElementHasher](counts iter.Seq2[uint64, uint64], binCount uint64, hashCount uint32, hasher H, maxMultiplicity uint64) (*MultisetBloom[H], error) {
	filter, err := NewMultisetBloom(binCount, hashCount, hasher, maxMultiplicity)
	if err != nil {
		return nil, err
	}
	empty := true
	for element, count := range counts {
		if err := filter.Insert(element, count); err != nil {
			return nil, err
		}
		empty = false
	}
	if empty {
		return nil, ErrEmptySet
	}
	return filter, nil
}

// Insert adds element with multiplicity count. Counts above MaxMultiplicity
// are clamped to it.
func (filter *MultisetBloom[H]) Insert(element, count uint64) error {
	if !filter.fits(element) {
		return fmt.Errorf("%w: element %d", ErrMultiplicityOverflow, element)
	}
	count = min(count, filter.MaxMultiplicity)
	for slot := uint64(0); slot < count; slot++ {
		filter.Bloom.Insert(SyntheticElement(element, slot, filter.MaxMultiplicity))
	}
	return nil
}

// Count returns the index of the first slot of element that is not in the
// filter, or MaxMultiplicity if every slot is. Elements whose slot range does
// not fit in uint64 cannot be inserted and count 0.
func (filter *MultisetBloom[H]) Count(element uint64) uint64 {
	if !filter.fits(element) {
		return 0
	}
	for slot := uint64(0); slot < filter.MaxMultiplicity; slot++ {
		if !filter.Bloom.Contains(SyntheticElement(element, slot, filter.MaxMultiplicity)) {
			return slot
		}
	}
	return filter.MaxMultiplicity
}

// fits reports whether every synthetic slot of element fits in uint64.
func (filter *MultisetBloom[H]) fits(element uint64) bool {
	hi, lo := bits.Mul64(element, filter.MaxMultiplicity)
	return hi == 0 && lo <= ^uint64(0)-(filter.MaxMultiplicity-1)
}
