package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig() config {
	return config{
		Rate:     0.01,
		N:        2000,
		Universe: 1 << 32,
		Hasher:   "xxhash",
		Salt:     "test",
		Probes:   200000,
		Seed:     7,
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, testConfig().validate())

	for name, mutate := range map[string]func(*config){
		"rate":         func(c *config) { c.Rate = 1 },
		"n":            func(c *config) { c.N = 0 },
		"hasher":       func(c *config) { c.Hasher = "sha1" },
		"multiplicity": func(c *config) { c.MaxMultiplicity = 1 },
		"universe":     func(c *config) { c.Universe = 100 },
		"probe room":   func(c *config) { c.Universe = 2000 },
	} {
		c := testConfig()
		mutate(&c)
		assert.Error(t, c.validate(), name)
	}

	c := testConfig()
	c.Rate = 5
	c.Log2Rate = -20
	assert.NoError(t, c.validate())
}

func TestRunSetFilter(t *testing.T) {
	for _, hasher := range []string{"mix", "xxhash", "murmur3"} {
		cfg := testConfig()
		cfg.Hasher = hasher
		r, err := run(zaptest.NewLogger(t), cfg)
		require.NoError(t, err)
		assert.Equal(t, uint32(7), r.Params.HashCount)
		assert.Less(t, r.Measured, 0.015, hasher)
		assert.InDelta(t, 0.5, r.FillRatio, 0.05)
	}
}

func TestRunMultisetFilter(t *testing.T) {
	cfg := testConfig()
	cfg.MaxMultiplicity = 5
	cfg.Log2Rate = -10
	r, err := run(zaptest.NewLogger(t), cfg)
	require.NoError(t, err)
	assert.Less(t, r.Measured, 0.005)
}

func TestRunArgon2(t *testing.T) {
	cfg := testConfig()
	cfg.Hasher = "argon2"
	cfg.N = 20
	cfg.Probes = 20
	r, err := run(zaptest.NewLogger(t), cfg)
	require.NoError(t, err)
	assert.NotZero(t, r.Params.BinCount)
}

func TestRunUnknownHasher(t *testing.T) {
	cfg := testConfig()
	cfg.Hasher = "md5"
	_, err := run(zaptest.NewLogger(t), cfg)
	assert.ErrorIs(t, err, errUnknownHasher)
}

func TestExecuteExitCodes(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	cfg := testConfig()
	cfg.N = 200
	cfg.Probes = 1000
	assert.Equal(t, 0, execute(log, cfg))

	bad := testConfig()
	bad.Rate = 1
	assert.Equal(t, 2, execute(log, bad))
	assert.Equal(t, 1, logs.FilterMessage("invalid configuration").Len())
}
