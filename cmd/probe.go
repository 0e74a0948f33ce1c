package cmd

import (
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/rag-nar1/Bloom-Filter/filter"
)

var ErrFalseNegative = errors.New("filter reported an inserted key as absent")

type Report struct {
	Bits           uint64
	HashFunctions  uint32
	Items          uint32
	Probes         uint32
	FillRatio      float64
	FalseNegatives uint64
	FalsePositives uint64
	TargetFPR      float64
	ObservedFPR    float64
	InsertNsOp     float64
	LookupNsOp     float64
}

func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("bits", r.Bits),
		slog.Uint64("hash_functions", uint64(r.HashFunctions)),
		slog.Uint64("items", uint64(r.Items)),
		slog.Uint64("probes", uint64(r.Probes)),
		slog.Float64("fill_ratio", r.FillRatio),
		slog.Uint64("false_negatives", r.FalseNegatives),
		slog.Uint64("false_positives", r.FalsePositives),
		slog.Float64("target_fpr", r.TargetFPR),
		slog.Float64("observed_fpr", r.ObservedFPR),
		slog.Float64("insert_ns_op", r.InsertNsOp),
		slog.Float64("lookup_ns_op", r.LookupNsOp),
	)
}

// key writes a 9-byte key: a tag byte then i little-endian. Inserted and
// probe keys use different tags so they never collide.
func key(buf *[9]byte, tag byte, i uint32) []byte {
	buf[0] = tag
	binary.LittleEndian.PutUint64(buf[1:], uint64(i))
	return buf[:]
}

const (
	insertedTag byte = 'i'
	probeTag    byte = 'p'
)

// Probe inserts items keys into f, checks every one of them, then checks
// probes keys that were never inserted.
func Probe(f filter.Sized, items, probes uint32, target float64) Report {
	var buf [9]byte
	r := Report{
		Bits:          f.Bits(),
		HashFunctions: f.HashFunctions(),
		Items:         items,
		Probes:        probes,
		TargetFPR:     target,
	}

	start := time.Now()
	for i := range items {
		f.Insert(key(&buf, insertedTag, i))
	}
	if items > 0 {
		r.InsertNsOp = float64(time.Since(start).Nanoseconds()) / float64(items)
	}

	start = time.Now()
	for i := range items {
		if !f.Contains(key(&buf, insertedTag, i)) {
			r.FalseNegatives++
		}
	}
	for i := range probes {
		if f.Contains(key(&buf, probeTag, i)) {
			r.FalsePositives++
		}
	}
	if lookups := uint64(items) + uint64(probes); lookups > 0 {
		r.LookupNsOp = float64(time.Since(start).Nanoseconds()) / float64(lookups)
	}

	if probes > 0 {
		r.ObservedFPR = float64(r.FalsePositives) / float64(probes)
	}
	if r.Bits > 0 {
		r.FillRatio = float64(f.Count()) / float64(r.Bits)
	}
	return r
}
