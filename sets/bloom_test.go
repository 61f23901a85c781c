package sets

import (
	"testing"

	"github.com/FastFilter/bloomset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSetBloom(t *testing.T) {
	filter, err := BuildSetBloom(NewSet(1, 3, 4), 20, 2, bloomset.MixHasher{})
	require.NoError(t, err)

	assert.True(t, filter.Contains(1))
	assert.False(t, filter.Contains(2))
	assert.True(t, filter.Contains(3))
	assert.True(t, filter.Contains(4))
	assert.False(t, filter.Contains(5))
}

func TestSizedSetBloom(t *testing.T) {
	s, err := RandomSet(testRand(), 3000, 1<<40)
	require.NoError(t, err)
	filter, err := SizedSetBloom(s, 0.001, bloomset.Murmur3Hasher{})
	require.NoError(t, err)
	m, k := bloomset.Optimize(0.001, 3000)
	assert.Equal(t, m, filter.BinCount)
	assert.Equal(t, k, filter.HashCount)
	for e := range s.All() {
		assert.True(t, filter.Contains(e))
	}

	_, err = SizedSetBloom(s, 1.5, bloomset.Murmur3Hasher{})
	assert.ErrorIs(t, err, bloomset.ErrBadErrorRate)
	_, err = SizedSetBloom(NewSet(), 0.01, bloomset.Murmur3Hasher{})
	assert.ErrorIs(t, err, bloomset.ErrBadSetSize)
}

func TestBuildMultisetBloom(t *testing.T) {
	m, err := NewMultiset([]uint64{1, 3, 4}, []uint64{1, 2, 1})
	require.NoError(t, err)
	filter, err := BuildMultisetBloom(m, 50, 2, bloomset.XXHasher{}, 2)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), filter.Count(0))
	assert.Equal(t, uint64(1), filter.Count(1))
	assert.Equal(t, uint64(0), filter.Count(2))
	assert.Equal(t, uint64(2), filter.Count(3))
	assert.Equal(t, uint64(1), filter.Count(4))
}

func TestBuildMultisetBloomRandom(t *testing.T) {
	m, err := RandomMultiset(testRand(), 500, 100000, 7)
	require.NoError(t, err)
	p, err := bloomset.NewParams(1e-6, 500*7)
	require.NoError(t, err)
	filter, err := BuildMultisetBloom(m, p.BinCount, p.HashCount, bloomset.MixHasher{}, 8)
	require.NoError(t, err)
	for e, c := range m.All() {
		assert.Equal(t, c, filter.Count(e))
	}
}
