package bloom

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/bits-and-blooms/bitset"
	"github.com/rag-nar1/Bloom-Filter/filter"
)

type BloomFilter struct {
	bits   *bitset.BitSet // the filter actual storage, m bits
	m      uint64         // size of bit-array
	k      uint32         // number of hash-functions
	params filter.Params
	seeds  filter.Seeds
	hasher filter.Hasher

	inserted uint64 // Insert calls since construction or the last Clear
}

// New sizes a filter for n expected items at false positive rate fpRate.
// fpRate must be in (0, 1) and n positive.
func New(fpRate float32, n uint32, opts ...filter.Option) (*BloomFilter, error) {
	params, err := filter.NewParams(fpRate, n)
	if err != nil {
		return nil, err
	}
	o := filter.NewOptions(opts...)
	hasher, seeds, err := o.Hasher()
	if err != nil {
		return nil, err
	}

	o.Logger.Debug("bloom filter initialized",
		slog.Float64("false_positive_rate", float64(fpRate)),
		slog.Uint64("expected_items", uint64(n)),
		slog.Uint64("bits", params.Bits),
		slog.Uint64("hash_functions", uint64(params.HashFunctions)),
		slog.String("algorithm", string(hasher.Algorithm())),
		slog.Bool("fixed_seeds", o.Seeds != nil))

	return &BloomFilter{
		bits:   bitset.New(uint(params.Bits)),
		m:      params.Bits,
		k:      params.HashFunctions,
		params: params,
		seeds:  seeds,
		hasher: hasher,
	}, nil
}

func (bf *BloomFilter) Insert(data []byte) {
	it := filter.DoubleHash(bf.hasher.Pair(data), bf.k)
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		bf.bits.Set(bf.position(g))
	}
	bf.inserted++
}

// Contains reports whether data may have been inserted. A false result is
// definite.
func (bf *BloomFilter) Contains(data []byte) bool {
	it := filter.DoubleHash(bf.hasher.Pair(data), bf.k)
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		if !bf.bits.Test(bf.position(g)) {
			return false
		}
	}
	return true
}

func (bf *BloomFilter) InsertString(s string) { bf.Insert([]byte(s)) }

func (bf *BloomFilter) ContainsString(s string) bool { return bf.Contains([]byte(s)) }

// InsertUint64 inserts v by its little-endian encoding.
func (bf *BloomFilter) InsertUint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	bf.Insert(buf[:])
}

func (bf *BloomFilter) ContainsUint64(v uint64) bool {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return bf.Contains(buf[:])
}

// Clear unsets every bit. Size, hash count and seeds are kept.
func (bf *BloomFilter) Clear() {
	bf.bits.ClearAll()
	bf.inserted = 0
}

func (bf *BloomFilter) position(g uint64) uint {
	idx := g % bf.m
	if idx >= uint64(bf.bits.Len()) {
		panic(fmt.Errorf("%w: %d >= %d", filter.ErrPositionOutOfRange, idx, bf.bits.Len()))
	}
	return uint(idx)
}

func (bf *BloomFilter) Bits() uint64 { return bf.m }

func (bf *BloomFilter) HashFunctions() uint32 { return bf.k }

func (bf *BloomFilter) Params() filter.Params { return bf.params }

func (bf *BloomFilter) Seeds() filter.Seeds { return bf.seeds }

func (bf *BloomFilter) Algorithm() filter.Algorithm { return bf.hasher.Algorithm() }

func (bf *BloomFilter) Count() uint64 { return uint64(bf.bits.Count()) }

func (bf *BloomFilter) Empty() bool { return bf.bits.None() }

// Inserted counts Insert calls, duplicates included.
func (bf *BloomFilter) Inserted() uint64 { return bf.inserted }

// EstimatedFalsePositiveRate is the expected false positive rate after
// Inserted items, assuming they were distinct.
func (bf *BloomFilter) EstimatedFalsePositiveRate() float64 {
	return bf.params.ExpectedFalsePositiveRate(bf.inserted)
}
