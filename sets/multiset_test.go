package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomMultiset(t *testing.T) {
	multiset1, err := RandomMultiset(nil, 5, 100, 10)
	require.NoError(t, err)
	multiset2, err := RandomMultiset(nil, 5, 100, 10)
	require.NoError(t, err)

	assert.Equal(t, 5, multiset1.Len())
	assert.Equal(t, 5, multiset2.Len())

	for _, m := range []Multiset{multiset1, multiset2} {
		for element, count := range m.All() {
			assert.Less(t, element, uint64(100))
			assert.Greater(t, count, uint64(0))
			assert.LessOrEqual(t, count, uint64(10))
		}
	}

	_, err = RandomMultiset(nil, 5, 100, 0)
	assert.ErrorIs(t, err, ErrZeroCount)
	_, err = RandomMultiset(nil, 500, 100, 3)
	assert.ErrorIs(t, err, ErrUniverseTooSmall)
}

func TestRandomMultisetCoversRange(t *testing.T) {
	m, err := RandomMultiset(testRand(), 1000, 5000, 3)
	require.NoError(t, err)
	seen := map[uint64]bool{}
	for _, count := range m.All() {
		seen[count] = true
	}
	assert.Equal(t, map[uint64]bool{1: true, 2: true, 3: true}, seen)
}

func TestMultisetFromPairs(t *testing.T) {
	elements := []uint64{1, 3, 4}
	counts := []uint64{2, 2, 5}

	a, err := NewMultiset(elements, counts)
	require.NoError(t, err)
	b := MultisetFromPairs(a.All())
	assert.True(t, a.Equal(b))
	assert.Equal(t, uint64(5), b.Count(4))
	assert.Equal(t, uint64(0), b.Count(2))
	assert.Equal(t, []uint64{1, 3, 4}, b.Support().Elements())
}

func TestNewMultisetRejectsBadInputs(t *testing.T) {
	_, err := NewMultiset([]uint64{1, 2}, []uint64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = NewMultiset([]uint64{1, 2}, []uint64{1, 0})
	assert.ErrorIs(t, err, ErrZeroCount)
}

func TestMultisetBitset(t *testing.T) {
	m, err := NewMultiset([]uint64{1, 3, 4}, []uint64{1, 2, 1})
	require.NoError(t, err)
	b := m.Bitset(5, 2)
	var got []bool
	for i := uint(0); i < 10; i++ {
		got = append(got, b.Test(i))
	}
	assert.Equal(t, []bool{false, false, true, false, false, false, true, true, true, false}, got)
}
