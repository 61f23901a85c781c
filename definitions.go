package bloomset

import "errors"

var (
	ErrEmptySet     = errors.New("bloomset: provide a non-empty set")
	ErrBadBinCount  = errors.New("bloomset: bin count must be positive")
	ErrBadHashCount = errors.New("bloomset: hash count must be positive")
	ErrBadErrorRate = errors.New("bloomset: error rate must be in (0, 1)")
	ErrBadSetSize   = errors.New("bloomset: set size must be positive")

	ErrBadMultiplicity      = errors.New("bloomset: max multiplicity must be positive")
	ErrMultiplicityOverflow = errors.New("bloomset: element * max multiplicity overflows uint64")
)

// Params is a filter sizing: the number of bins and the number of hash
// rounds per element.
type Params struct {
	BinCount  uint64
	HashCount uint32
}
