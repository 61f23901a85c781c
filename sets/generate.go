package sets

import (
	"fmt"
	"math/rand/v2"
)

// SetsWithIntersection returns setCount sets of elementCount elements each
// from [0, universe) whose common intersection has exactly intersectionSize
// elements.
func SetsWithIntersection(rng *rand.Rand, setCount, elementCount, universe, intersectionSize uint64) ([]Set, error) {
	if setCount < 2 || intersectionSize > elementCount || elementCount > universe {
		return nil, fmt.Errorf("%w: %d sets of %d from %d with intersection %d",
			ErrBadGeneratorArgs, setCount, elementCount, universe, intersectionSize)
	}
	// An element outside the core may join a set only while some other set
	// lacks it, so each set may be locked out of up to extra elements.
	if extra := elementCount - intersectionSize; universe-intersectionSize < 2*extra {
		return nil, fmt.Errorf("%w: universe %d too small for %d extra elements per set",
			ErrBadGeneratorArgs, universe, extra)
	}
	rng = orDefault(rng)

	core, err := RandomSet(rng, intersectionSize, universe)
	if err != nil {
		return nil, err
	}
	sets := make([]Set, setCount)
	for i := range sets {
		sets[i] = core.clone()
	}

	for i := range sets {
		for uint64(sets[i].Len()) < elementCount {
			element := rng.Uint64N(universe)
			if sets[i].Contains(element) {
				continue
			}
			// Inserting is fine as long as some other set lacks the element.
			for j := range sets {
				if j != i && !sets[j].Contains(element) {
					sets[i].Insert(element)
					break
				}
			}
		}
	}
	return sets, nil
}

// SetsWithUnion returns setCount sets of elementCount elements each whose
// union has exactly unionSize elements.
func SetsWithUnion(rng *rand.Rand, setCount, elementCount, universe, unionSize uint64) ([]Set, error) {
	if setCount == 0 || unionSize > universe || elementCount > unionSize || unionSize > setCount*elementCount {
		return nil, fmt.Errorf("%w: %d sets of %d from %d with union %d",
			ErrBadGeneratorArgs, setCount, elementCount, universe, unionSize)
	}
	rng = orDefault(rng)

	union, err := RandomSet(rng, unionSize, universe)
	if err != nil {
		return nil, err
	}
	sets := make([]Set, setCount)
	for i := range sets {
		sets[i] = NewSet()
	}

	// Every union element lands in some set that still has room.
	for _, element := range union.Elements() {
		for {
			i := rng.Uint64N(setCount)
			if uint64(sets[i].Len()) < elementCount {
				sets[i].Insert(element)
				break
			}
		}
	}

	// Top up from the union only, so the union does not grow.
	pool := union.Elements()
	for i := range sets {
		rng.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })
		for _, element := range pool {
			if uint64(sets[i].Len()) >= elementCount {
				break
			}
			sets[i].Insert(element)
		}
	}
	return sets, nil
}
