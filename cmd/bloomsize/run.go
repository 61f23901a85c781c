package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/FastFilter/bloomset"
	"github.com/FastFilter/bloomset/sets"
	"go.uber.org/zap"
)

var errUnknownHasher = errors.New("unknown hasher")

type config struct {
	Rate            float64
	Log2Rate        float64
	N               uint64
	Universe        uint64
	Hasher          string
	Salt            string
	MaxMultiplicity uint64
	Probes          int
	Workers         int
	Seed            uint64
}

func (c config) validate() error {
	if _, err := c.params(); err != nil {
		return err
	}
	switch c.Hasher {
	case "mix", "xxhash", "murmur3", "argon2":
	default:
		return fmt.Errorf("%w %q", errUnknownHasher, c.Hasher)
	}
	if c.MaxMultiplicity == 1 {
		return errors.New("max-multiplicity must be 0 or at least 2")
	}
	if c.MaxMultiplicity == 0 && c.Probes > 0 && c.N >= c.Universe {
		return fmt.Errorf("universe %d leaves no absent elements to probe", c.Universe)
	}
	if c.elements() > c.Universe {
		return fmt.Errorf("universe %d cannot hold %d elements", c.Universe, c.elements())
	}
	return nil
}

// elements is the number of distinct elements to draw. In multiset mode n
// counts slots and every element has at most MaxMultiplicity-1 of them.
func (c config) elements() uint64 {
	if c.MaxMultiplicity == 0 {
		return c.N
	}
	return max(1, c.N/(c.MaxMultiplicity-1))
}

func (c config) params() (bloomset.Params, error) {
	if c.Log2Rate < 0 {
		return bloomset.NewParamsLog2(c.Log2Rate, c.N)
	}
	return bloomset.NewParams(c.Rate, c.N)
}

func (c config) rng() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9E3779B97F4A7C15))
}

type report struct {
	Params    bloomset.Params
	Estimated float64
	Measured  float64
	FillRatio float64
}

func run(log *zap.Logger, cfg config) (report, error) {
	switch cfg.Hasher {
	case "mix":
		return measure(log, cfg, bloomset.MixHasher{})
	case "xxhash":
		return measure(log, cfg, bloomset.XXHasher{})
	case "murmur3":
		return measure(log, cfg, bloomset.Murmur3Hasher{})
	case "argon2":
		return measure(log, cfg, bloomset.NewArgon2Hasher([]byte(cfg.Salt)))
	}
	return report{}, fmt.Errorf("%w %q", errUnknownHasher, cfg.Hasher)
}

func measure[H bloomset.ElementHasher](log *zap.Logger, cfg config, hasher H) (report, error) {
	p, err := cfg.params()
	if err != nil {
		return report{}, err
	}
	r := report{Params: p, Estimated: p.EstimateFalsePositiveRate(cfg.N)}
	log.Info("sized filter",
		zap.Uint64("bins", p.BinCount),
		zap.Uint32("rounds", p.HashCount),
		zap.Float64("bitsPerElement", float64(p.BinCount)/float64(cfg.N)),
		zap.Float64("estimatedFalsePositiveRate", r.Estimated),
	)

	rng := cfg.rng()
	start := time.Now()
	var contains func(uint64) bool
	var present func(uint64) bool
	var fill func() float64
	if cfg.MaxMultiplicity == 0 {
		s, err := sets.RandomSet(rng, cfg.N, cfg.Universe)
		if err != nil {
			return report{}, err
		}
		filter, err := bloomset.PopulateBloomParallel(s.Elements(), p.BinCount, p.HashCount, hasher, cfg.Workers)
		if err != nil {
			return report{}, err
		}
		contains, present, fill = filter.Contains, s.Contains, filter.FillRatio
	} else {
		m, err := sets.RandomMultiset(rng, cfg.elements(), cfg.Universe, cfg.MaxMultiplicity-1)
		if err != nil {
			return report{}, err
		}
		filter, err := sets.BuildMultisetBloom(m, p.BinCount, p.HashCount, hasher, cfg.MaxMultiplicity)
		if err != nil {
			return report{}, err
		}
		// A probe is positive when an element reads back a count above its own.
		contains = func(e uint64) bool { return filter.Count(e) > m.Count(e) }
		present = func(uint64) bool { return false }
		fill = filter.Bloom.FillRatio
	}
	r.FillRatio = fill()
	log.Debug("built filter", zap.Duration("elapsed", time.Since(start)), zap.Float64("fillRatio", r.FillRatio))

	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	probed, positives := 0, 0
	for probed < cfg.Probes {
		e := rng.Uint64N(cfg.Universe)
		if present(e) {
			continue
		}
		probed++
		if contains(e) {
			positives++
		}
	}
	if probed > 0 {
		r.Measured = float64(positives) / float64(probed)
	}
	log.Info("measured false positives",
		zap.String("hasher", cfg.Hasher),
		zap.Int("probes", probed),
		zap.Int("positives", positives),
		zap.Float64("measuredFalsePositiveRate", r.Measured),
		zap.Float64("fillRatio", r.FillRatio),
		zap.Duration("elapsed", time.Since(start)),
	)
	return r, nil
}
