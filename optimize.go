package bloomset

import "math"

// Optimize returns the smallest bin count for which some number of hash
// rounds keeps the false-positive probability at or below maxErrorRate once
// maxSetSize elements are inserted, together with that number of rounds.
//
// For each round count h the minimal bin count is
//
//	ceil(-h * (maxSetSize + 0.5) / ln(1 - maxErrorRate^(1/h))) + 1
//
// and the search stops as soon as the curve turns upward.
//
// There are no range checks: maxErrorRate must be in (0, 1) and maxSetSize
// positive, or the loop may never terminate. Use NewParams to validate.
func Optimize(maxErrorRate float64, maxSetSize uint64) (binCount uint64, hashCount uint32) {
	return optimize(maxSetSize, func(h float64) float64 {
		return math.Pow(maxErrorRate, 1/h)
	})
}

// OptimizeLog2 is Optimize with the error rate given as log2(rate). Rates
// such as 2^-160 are not representable as probabilities near 1 - rate but
// are exact here. For the same effective rate both functions agree.
func OptimizeLog2(log2MaxErrorRate float64, maxSetSize uint64) (binCount uint64, hashCount uint32) {
	return optimize(maxSetSize, func(h float64) float64 {
		return math.Exp2(log2MaxErrorRate / h)
	})
}

// optimize walks h = 1, 2, ... where root(h) is the per-round bin-hit
// probability rate^(1/h).
func optimize(maxSetSize uint64, root func(h float64) float64) (uint64, uint32) {
	n := float64(maxSetSize) + 0.5
	var best uint64
	var bestRounds uint32
	for h := uint32(1); ; h++ {
		bins, ok := minBins(n, float64(h), root(float64(h)))
		if best != 0 && best < bins {
			return best, bestRounds
		}
		// A zero bin count (1 - root rounds to 1, or root underflows) is not a
		// minimum, it is float64 running out of precision.
		if ok {
			best, bestRounds = bins, h
		}
	}
}

func minBins(n, h, root float64) (uint64, bool) {
	raw := math.Ceil(-h * n / math.Log(1-root))
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw <= 0 {
		return 1, false
	}
	return uint64(raw) + 1, true
}

// NewParams validates its arguments and runs Optimize.
func NewParams(maxErrorRate float64, maxSetSize uint64) (Params, error) {
	if !(maxErrorRate > 0 && maxErrorRate < 1) {
		return Params{}, ErrBadErrorRate
	}
	if maxSetSize == 0 {
		return Params{}, ErrBadSetSize
	}
	m, k := Optimize(maxErrorRate, maxSetSize)
	return Params{BinCount: m, HashCount: k}, nil
}

// NewParamsLog2 validates its arguments and runs OptimizeLog2.
func NewParamsLog2(log2MaxErrorRate float64, maxSetSize uint64) (Params, error) {
	if !(log2MaxErrorRate < 0) || math.IsInf(log2MaxErrorRate, 0) {
		return Params{}, ErrBadErrorRate
	}
	if maxSetSize == 0 {
		return Params{}, ErrBadSetSize
	}
	m, k := OptimizeLog2(log2MaxErrorRate, maxSetSize)
	return Params{BinCount: m, HashCount: k}, nil
}

// EstimateFalsePositiveRate returns the false-positive bound the optimizer
// solves for, (1 - e^(-k(n+0.5)/(m-1)))^k, for n inserted elements.
func (p Params) EstimateFalsePositiveRate(n uint64) float64 {
	if p.BinCount <= 1 || p.HashCount == 0 {
		return 1
	}
	k := float64(p.HashCount)
	return math.Pow(-math.Expm1(-k*(float64(n)+0.5)/float64(p.BinCount-1)), k)
}
