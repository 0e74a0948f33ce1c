// Package blockedbloom is a cache-blocked Bloom filter: every value touches a
// single 256-bit block, so a lookup costs one cache line. It trades a slightly
// higher false positive rate for fewer memory accesses.
package blockedbloom

import (
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
	"github.com/rag-nar1/Bloom-Filter/filter"
	"github.com/zeebo/xxh3"
)

const (
	BlockSize = 256 // in bits
	BlockMask = BlockSize - 1
)

type BlockedBloomFilter struct {
	bits       *bitset.BitSet // blockCount * BlockSize bits
	blockCount uint64
	k          uint32
	blockSeed  uint64
	params     filter.Params
	seeds      filter.Seeds
	hasher     filter.Hasher
}

func New(fpRate float32, n uint32, opts ...filter.Option) (*BlockedBloomFilter, error) {
	params, err := filter.NewParams(fpRate, n)
	if err != nil {
		return nil, err
	}
	o := filter.NewOptions(opts...)
	hasher, seeds, err := o.Hasher()
	if err != nil {
		return nil, err
	}

	blockCount := (params.Bits + BlockMask) / BlockSize
	bf := &BlockedBloomFilter{
		bits:       bitset.New(uint(blockCount * BlockSize)),
		blockCount: blockCount,
		k:          params.HashFunctions,
		blockSeed:  bits.RotateLeft64(seeds.One, 17) ^ seeds.Two,
		params:     params,
		seeds:      seeds,
		hasher:     hasher,
	}

	o.Logger.Debug("blocked bloom filter initialized",
		slog.Float64("false_positive_rate", float64(fpRate)),
		slog.Uint64("expected_items", uint64(n)),
		slog.Uint64("blocks", blockCount),
		slog.Uint64("hash_functions", uint64(bf.k)),
		slog.String("algorithm", string(hasher.Algorithm())))

	return bf, nil
}

func (bf *BlockedBloomFilter) Insert(data []byte) {
	offset := bf.blockOffset(data)
	it := filter.DoubleHash(bf.pair(data), bf.k)
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		bf.bits.Set(bf.position(offset, g))
	}
}

func (bf *BlockedBloomFilter) Contains(data []byte) bool {
	offset := bf.blockOffset(data)
	it := filter.DoubleHash(bf.pair(data), bf.k)
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		if !bf.bits.Test(bf.position(offset, g)) {
			return false
		}
	}
	return true
}

func (bf *BlockedBloomFilter) Clear() {
	bf.bits.ClearAll()
}

// pair forces h2 odd so the k in-block positions are distinct mod BlockSize.
func (bf *BlockedBloomFilter) pair(data []byte) filter.HashPair {
	p := bf.hasher.Pair(data)
	p.H2 |= 1
	return p
}

// blockOffset picks the block with a hash independent of the in-block pair.
func (bf *BlockedBloomFilter) blockOffset(data []byte) uint64 {
	return (xxh3.HashSeed(data, bf.blockSeed) % bf.blockCount) * BlockSize
}

func (bf *BlockedBloomFilter) position(offset, g uint64) uint {
	idx := offset + g&BlockMask
	if idx >= uint64(bf.bits.Len()) {
		panic(fmt.Errorf("%w: %d >= %d", filter.ErrPositionOutOfRange, idx, bf.bits.Len()))
	}
	return uint(idx)
}

func (bf *BlockedBloomFilter) Bits() uint64 { return bf.blockCount * BlockSize }

func (bf *BlockedBloomFilter) Blocks() uint64 { return bf.blockCount }

func (bf *BlockedBloomFilter) HashFunctions() uint32 { return bf.k }

func (bf *BlockedBloomFilter) Params() filter.Params { return bf.params }

func (bf *BlockedBloomFilter) Seeds() filter.Seeds { return bf.seeds }

func (bf *BlockedBloomFilter) Count() uint64 { return uint64(bf.bits.Count()) }
