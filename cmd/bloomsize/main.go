// Command bloomsize sizes a Bloom filter for a target false-positive rate,
// builds it over random data and reports the rate it actually measures.
//
//	bloomsize -rate 0.001 -n 100000 -hasher murmur3
//	bloomsize -log2rate -40 -n 4096 -max-multiplicity 8
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	cfg := config{}
	flag.Float64Var(&cfg.Rate, "rate", 0.01, "maximum false-positive rate, in (0, 1)")
	flag.Float64Var(&cfg.Log2Rate, "log2rate", 0, "maximum false-positive rate as log2(rate); overrides -rate when negative")
	flag.Uint64Var(&cfg.N, "n", 10000, "number of elements (or multiset slots) to insert")
	flag.Uint64Var(&cfg.Universe, "universe", 1<<32, "elements are drawn from [0, universe)")
	flag.StringVar(&cfg.Hasher, "hasher", "xxhash", "element hasher: mix, xxhash, murmur3 or argon2")
	flag.StringVar(&cfg.Salt, "salt", "bloomsize", "argon2 salt")
	flag.Uint64Var(&cfg.MaxMultiplicity, "max-multiplicity", 0, "build a multiset filter with counts in 1..max-multiplicity-1; 0 builds a set filter")
	flag.IntVar(&cfg.Probes, "probes", 1000000, "number of absent elements to query")
	flag.IntVar(&cfg.Workers, "workers", 0, "build goroutines for set filters; 0 picks one from the set size")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "random seed; 0 draws one from crypto/rand")
	verbose := flag.Bool("v", false, "human readable debug logging")
	flag.Parse()

	var log *zap.Logger
	var err error
	if *verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	os.Exit(execute(log, cfg))
}

// execute validates cfg, runs it and returns the process exit code. The
// logger is flushed before returning.
func execute(log *zap.Logger, cfg config) int {
	defer log.Sync()

	if err := cfg.validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return 2
	}
	if _, err := run(log, cfg); err != nil {
		log.Error("bloomsize failed", zap.Error(err))
		return 1
	}
	return 0
}
