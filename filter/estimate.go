package filter

import (
	"fmt"
	"math"
)

const (
	MinHashFunctions uint32 = 2
	MaxHashFunctions uint32 = 200

	maxBits = 1 << 63
)

// Params is the sizing of a filter derived from its target false positive
// rate and expected cardinality.
type Params struct {
	FalsePositiveRate float32
	ExpectedItems     uint32
	Bits              uint64 // m
	HashFunctions     uint32 // k
}

// NewParams validates the inputs and estimates m and k for them.
func NewParams(fpRate float32, n uint32) (Params, error) {
	if err := ValidateParams(fpRate, n); err != nil {
		return Params{}, err
	}
	m := EstimateBits(fpRate, n)
	return Params{
		FalsePositiveRate: fpRate,
		ExpectedItems:     n,
		Bits:              m,
		HashFunctions:     EstimateHash(m, n),
	}, nil
}

// ValidateParams rejects a false positive rate outside (0, 1) and a zero
// item count.
func ValidateParams(fpRate float32, n uint32) error {
	// written so that NaN fails too
	if !(fpRate > 0 && fpRate < 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidFalsePositiveRate, fpRate)
	}
	if n == 0 {
		return ErrZeroExpectedItems
	}
	return nil
}

// EstimateBits returns the bit-array length m for n items at false positive
// rate p:
//
//	m = round(n * ln(1/p) / (ln 2)^2)
//
// Inputs are not validated. The result is never below 1 so a filter built
// from it always has something to reduce positions against.
func EstimateBits(fpRate float32, n uint32) uint64 {
	m := math.Round(float64(n) * math.Log(1/float64(fpRate)) / (math.Ln2 * math.Ln2))
	switch {
	case !(m >= 1):
		return 1
	case m >= maxBits:
		return maxBits
	}
	return uint64(m)
}

// EstimateHash returns k = round(m/n * ln 2), clamped to
// [MinHashFunctions, MaxHashFunctions].
func EstimateHash(m uint64, n uint32) uint32 {
	k := math.Round(float64(m) / float64(n) * math.Ln2)
	switch {
	case !(k >= float64(MinHashFunctions)):
		return MinHashFunctions
	case k > float64(MaxHashFunctions):
		return MaxHashFunctions
	}
	return uint32(k)
}

// ExpectedFalsePositiveRate is (1 - e^(-k*inserted/m))^k, the false positive
// probability once inserted distinct items have been added.
func (p Params) ExpectedFalsePositiveRate(inserted uint64) float64 {
	if p.Bits == 0 {
		return 1
	}
	k := float64(p.HashFunctions)
	return math.Pow(1-math.Exp(-k*float64(inserted)/float64(p.Bits)), k)
}
