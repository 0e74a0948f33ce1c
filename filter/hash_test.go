package filter_test

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rag-nar1/Bloom-Filter/filter"
)

func collect(it *filter.HashIter) []uint64 {
	var out []uint64
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		out = append(out, g)
	}
	return out
}

func TestDoubleHash(t *testing.T) {
	it := filter.DoubleHash(filter.HashPair{H1: 10, H2: 3}, 5)
	require.Equal(t, uint32(5), it.Len())
	require.Equal(t, []uint64{10, 13, 16, 19, 22}, collect(&it))

	// exhausted iterators stay exhausted
	_, ok := it.Next()
	require.False(t, ok)
}

func TestDoubleHashWraps(t *testing.T) {
	it := filter.DoubleHash(filter.HashPair{H1: math.MaxUint64, H2: math.MaxUint64}, 4)
	// h1 + i*h2 mod 2^64 with h2 == -1
	want := []uint64{math.MaxUint64, math.MaxUint64 - 1, math.MaxUint64 - 2, math.MaxUint64 - 3}
	require.Equal(t, want, collect(&it))
}

func TestHashIterRestartable(t *testing.T) {
	it := filter.DoubleHash(filter.HashPair{H1: 0xdeadbeef, H2: 0x1234567}, 7)
	first := collect(&it)
	require.Len(t, first, 7)

	it.Reset()
	require.Equal(t, first, collect(&it))

	// All works from the start regardless of the iterator's position
	require.Equal(t, first, slices.Collect(it.All()))

	var partial []uint64
	for g := range it.All() {
		partial = append(partial, g)
		if len(partial) == 3 {
			break
		}
	}
	require.Equal(t, first[:3], partial)
}

func TestDoubleHashZeroCount(t *testing.T) {
	it := filter.DoubleHash(filter.HashPair{H1: 1, H2: 1}, 0)
	require.Empty(t, collect(&it))
}

func TestHashers(t *testing.T) {
	seeds := filter.Seeds{One: 42, Two: 4242}
	data := []byte("RAGNAR")

	for _, alg := range filter.Algorithms {
		t.Run(string(alg), func(t *testing.T) {
			h, err := filter.NewHasher(alg, seeds)
			require.NoError(t, err)
			require.Equal(t, alg, h.Algorithm())

			p := h.Pair(data)
			require.Equal(t, p, h.Pair(data), "pair must be deterministic for fixed seeds")
			require.NotEqual(t, p.H1, p.H2)
			require.NotZero(t, p.H2)

			other, err := filter.NewHasher(alg, filter.Seeds{One: 7, Two: 77})
			require.NoError(t, err)
			require.NotEqual(t, p, other.Pair(data))

			require.NotEqual(t, p, h.Pair([]byte("RAGNAR!")))
		})
	}

	_, err := filter.NewHasher("crc32", seeds)
	require.ErrorIs(t, err, filter.ErrUnknownAlgorithm)
}

func TestHasherEqualSeeds(t *testing.T) {
	// identical seeds must not make h2 a copy of h1
	for _, alg := range filter.Algorithms {
		h, err := filter.NewHasher(alg, filter.Seeds{One: 9, Two: 9})
		require.NoError(t, err)
		p := h.Pair([]byte("same seeds"))
		require.NotEqual(t, p.H1, p.H2, string(alg))
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range filter.Algorithms {
		got, err := filter.ParseAlgorithm(string(alg))
		require.NoError(t, err)
		require.Equal(t, alg, got)
	}

	_, err := filter.ParseAlgorithm("md5")
	require.ErrorIs(t, err, filter.ErrUnknownAlgorithm)
}

func TestRandomSeeds(t *testing.T) {
	a, b := filter.RandomSeeds(), filter.RandomSeeds()
	require.NotEqual(t, a, b)
	require.NotEqual(t, a.One, a.Two)
}

func TestOptions(t *testing.T) {
	o := filter.NewOptions()
	require.Equal(t, filter.AlgorithmMetro, o.Algorithm)
	require.Nil(t, o.Seeds)
	require.NotNil(t, o.Logger)

	seeds := filter.Seeds{One: 1, Two: 2}
	o = filter.NewOptions(filter.WithSeeds(seeds), filter.WithAlgorithm(filter.AlgorithmCity))
	h, got, err := o.Hasher()
	require.NoError(t, err)
	require.Equal(t, seeds, got)
	require.Equal(t, filter.AlgorithmCity, h.Algorithm())
}
