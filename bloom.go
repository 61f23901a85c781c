package bloomset

import (
	"iter"
	"math"
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

// Bloom is a Bloom filter over uint64 elements. It answers "definitely not
// present" or "maybe present": inserted elements are always reported, and
// other elements are reported with a probability bounded by the sizing in
// Optimize when the filter was sized with it. That false-positive rate is the
// designed behavior of the structure, not an error.
//
// A Bloom carries the hasher and round count it was built with, so every
// query uses the same strategy as the build. The exported fields are
// read-only after construction; rounds always follow the seeds fixed by
// NewBloom.
type Bloom[H ElementHasher] struct {
	Hasher    H
	HashCount uint32
	BinCount  uint64
	Bins      *bitset.BitSet

	seeds  []uint32
	digest []uint64
}

// NewBloom returns an empty filter with binCount bins and hashCount rounds.
func NewBloom[H ElementHasher](binCount uint64, hashCount uint32, hasher H) (*Bloom[H], error) {
	if binCount == 0 {
		return nil, ErrBadBinCount
	}
	if hashCount == 0 {
		return nil, ErrBadHashCount
	}
	return &Bloom[H]{
		Hasher:    hasher,
		HashCount: hashCount,
		BinCount:  binCount,
		Bins:      bitset.New(uint(binCount)),
		seeds:     Seeds(hashCount),
		digest:    make([]uint64, 0, hashCount),
	}, nil
}

// PopulateBloom builds a filter holding keys. Duplicated keys are harmless.
// The function returns an error if the set is empty.
func PopulateBloom[H ElementHasher](keys []uint64, binCount uint64, hashCount uint32, hasher H) (*Bloom[H], error) {
	if len(keys) == 0 {
		return nil, ErrEmptySet
	}
	filter, err := NewBloom(binCount, hashCount, hasher)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		filter.Insert(key)
	}
	return filter, nil
}

// PopulateBloomParallel is PopulateBloom with keys split across workers
// goroutines. The result is identical to PopulateBloom. workers < 1 means one
// worker per 4096 keys, capped at 16.
//
// The hasher is shared by all workers and must be safe for concurrent use;
// every hasher in this package is.
func PopulateBloomParallel[H ElementHasher](keys []uint64, binCount uint64, hashCount uint32, hasher H, workers int) (*Bloom[H], error) {
	if len(keys) == 0 {
		return nil, ErrEmptySet
	}
	filter, err := NewBloom(binCount, hashCount, hasher)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = min(16, len(keys)/4096+1)
	}
	workers = min(workers, len(keys))

	words := filter.Bins.Words()
	chunk := (len(keys) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(keys); start += chunk {
		part := keys[start:min(start+chunk, len(keys))]
		wg.Add(1)
		go func() {
			defer wg.Done()
			digest := make([]uint64, 0, hashCount)
			for _, key := range part {
				digest = hasher.HashMulti(digest[:0], key, filter.seeds)
				for _, d := range digest {
					setBitAtomic(words, d%binCount)
				}
			}
		}()
	}
	wg.Wait()
	return filter, nil
}

// setBitAtomic ORs bit i into words without losing concurrent writes to the
// same word.
func setBitAtomic(words []uint64, i uint64) {
	w := &words[i>>6]
	mask := uint64(1) << (i & 63)
	for {
		old := atomic.LoadUint64(w)
		if old&mask != 0 || atomic.CompareAndSwapUint64(w, old, old|mask) {
			return
		}
	}
}

// Insert adds key to the filter. Insert is not safe for concurrent use.
func (filter *Bloom[H]) Insert(key uint64) {
	filter.digest = filter.Hasher.HashMulti(filter.digest[:0], key, filter.seeds)
	for _, d := range filter.digest {
		filter.Bins.Set(uint(d % filter.BinCount))
	}
}

// InsertAll adds every key of seq.
func (filter *Bloom[H]) InsertAll(seq iter.Seq[uint64]) {
	for key := range seq {
		filter.Insert(key)
	}
}

// Contains tells you whether the key is likely part of the set. It is safe
// for concurrent use once no more keys are inserted.
func (filter *Bloom[H]) Contains(key uint64) bool {
	for _, i := range filter.Indices(key) {
		if !filter.Bins.Test(uint(i)) {
			return false
		}
	}
	return true
}

// Indices returns the bin of every round for key, in seed order.
func (filter *Bloom[H]) Indices(key uint64) []uint64 {
	indices := filter.Hasher.HashMulti(make([]uint64, 0, len(filter.seeds)), key, filter.seeds)
	for i, d := range indices {
		indices[i] = d % filter.BinCount
	}
	return indices
}

// FillRatio is the fraction of bins set.
func (filter *Bloom[H]) FillRatio() float64 {
	return float64(filter.Bins.Count()) / float64(filter.BinCount)
}

// EstimateCount approximates the number of distinct keys inserted from the
// fill ratio: -m/k * ln(1 - X/m).
// reference: https://en.wikipedia.org/wiki/Bloom_filter#Approximating_the_number_of_items_in_a_Bloom_filter
func (filter *Bloom[H]) EstimateCount() float64 {
	m := float64(filter.BinCount)
	x := float64(filter.Bins.Count())
	// sentinel to avoid ln(0) on a saturated filter
	if x >= m {
		x = m - 1
	}
	return -m / float64(len(filter.seeds)) * math.Log1p(-x/m)
}

// Equal reports whether both filters have the same sizing and bins.
func (filter *Bloom[H]) Equal(other *Bloom[H]) bool {
	return filter.BinCount == other.BinCount &&
		filter.HashCount == other.HashCount &&
		filter.Bins.Equal(other.Bins)
}
