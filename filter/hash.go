package filter

import (
	"fmt"
	"iter"
	"math/bits"
	"math/rand/v2"

	"github.com/dgryski/go-metro"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
	"github.com/zhenjl/cityhash"
)

type Algorithm string

const (
	AlgorithmMetro  Algorithm = "metro"
	AlgorithmXXH3   Algorithm = "xxh3"
	AlgorithmCity   Algorithm = "city"
	AlgorithmMurmur Algorithm = "murmur"
)

// Algorithms lists every supported base hash, default first.
var Algorithms = []Algorithm{AlgorithmMetro, AlgorithmXXH3, AlgorithmCity, AlgorithmMurmur}

func ParseAlgorithm(s string) (Algorithm, error) {
	for _, alg := range Algorithms {
		if string(alg) == s {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Seeds keys the two base hashes of a filter instance.
type Seeds struct {
	One uint64
	Two uint64
}

// RandomSeeds draws a fresh, distinct pair of seeds.
func RandomSeeds() Seeds {
	return Seeds{One: rand.Uint64(), Two: rand.Uint64()}.distinct()
}

// distinct makes sure both hashes are never keyed identically, which would
// make h2 a copy of h1.
func (s Seeds) distinct() Seeds {
	if s.One == s.Two {
		s.Two = bits.RotateLeft64(s.One, 32) ^ 0x9e3779b97f4a7c15
	}
	return s
}

// HashPair holds the two base hashes of one value.
type HashPair struct {
	H1 uint64
	H2 uint64
}

// Hasher turns a value into the two independent base hashes used for double
// hashing.
type Hasher interface {
	Pair(data []byte) HashPair
	Algorithm() Algorithm
}

// NewHasher builds the Hasher for alg keyed with seeds.
func NewHasher(alg Algorithm, seeds Seeds) (Hasher, error) {
	seeds = seeds.distinct()
	switch alg {
	case AlgorithmMetro, "":
		return MetroHasher{Seeds: seeds}, nil
	case AlgorithmXXH3:
		return XXH3Hasher{Seeds: seeds}, nil
	case AlgorithmCity:
		return CityHasher{Seeds: seeds}, nil
	case AlgorithmMurmur:
		return MurmurHasher{Seeds: seeds}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
}

// MetroHasher keys metro hash with two seeds.
type MetroHasher struct{ Seeds Seeds }

func (h MetroHasher) Pair(data []byte) HashPair {
	return newPair(metro.Hash64(data, h.Seeds.One), metro.Hash64(data, h.Seeds.Two))
}

func (MetroHasher) Algorithm() Algorithm { return AlgorithmMetro }

// XXH3Hasher keys xxh3 with two seeds.
type XXH3Hasher struct{ Seeds Seeds }

func (h XXH3Hasher) Pair(data []byte) HashPair {
	return newPair(xxh3.HashSeed(data, h.Seeds.One), xxh3.HashSeed(data, h.Seeds.Two))
}

func (XXH3Hasher) Algorithm() Algorithm { return AlgorithmXXH3 }

// CityHasher keys CityHash64 with two seeds.
type CityHasher struct{ Seeds Seeds }

func (h CityHasher) Pair(data []byte) HashPair {
	n := uint32(len(data))
	return newPair(cityhash.CityHash64WithSeed(data, n, h.Seeds.One), cityhash.CityHash64WithSeed(data, n, h.Seeds.Two))
}

func (CityHasher) Algorithm() Algorithm { return AlgorithmCity }

// MurmurHasher takes h1 from murmur3 and h2 from xxh3, so the two base
// hashes come from different algorithms. murmur3 only takes a 32-bit seed;
// the high half of Seeds.One is folded into it.
type MurmurHasher struct{ Seeds Seeds }

func (h MurmurHasher) Pair(data []byte) HashPair {
	seed := uint32(h.Seeds.One) ^ uint32(h.Seeds.One>>32)
	return newPair(murmur3.Sum64WithSeed(data, seed), xxh3.HashSeed(data, h.Seeds.Two))
}

func (MurmurHasher) Algorithm() Algorithm { return AlgorithmMurmur }

func newPair(h1, h2 uint64) HashPair {
	// h2 == 0 would map every i onto the same position
	if h2 == 0 {
		h2 = 1
	}
	return HashPair{H1: h1, H2: h2}
}

// HashIter yields k positions g_i = h1 + i*h2 (mod 2^64) for i in [0, k).
// The caller reduces each value modulo the bit-array length.
type HashIter struct {
	h1, h2 uint64
	i, k   uint32
}

// DoubleHash starts a fresh sequence of k values for pair.
func DoubleHash(pair HashPair, k uint32) HashIter {
	return HashIter{h1: pair.H1, h2: pair.H2, k: k}
}

// Next returns the next value, or false once k values have been produced.
func (it *HashIter) Next() (uint64, bool) {
	if it.i >= it.k {
		return 0, false
	}
	// uint64 arithmetic wraps
	g := it.h1 + uint64(it.i)*it.h2
	it.i++
	return g, true
}

// Reset rewinds the sequence to its first value.
func (it *HashIter) Reset() { it.i = 0 }

// Len is the total number of values the sequence produces.
func (it *HashIter) Len() uint32 { return it.k }

// All ranges over the whole sequence without consuming it.
func (it HashIter) All() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		it.Reset()
		for g, ok := it.Next(); ok; g, ok = it.Next() {
			if !yield(g) {
				return
			}
		}
	}
}
