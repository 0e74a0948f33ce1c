package filter_test

import (
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	N           = 500000
	BloomFPRate = 0.01
)

func generateData(prefix string, n int) [][]byte {
	data := make([][]byte, n)
	for i := 0; i < n; i++ {
		data[i] = []byte(fmt.Sprintf("%s%d", prefix, i))
	}
	return data
}

type comparison struct {
	memMB        float64
	insertNs     int64
	lookupNs     int64
	fpr          float64
	throughputKs float64
}

func measure(t *testing.T, newFilter constructor, inserted, nonInserted [][]byte) comparison {
	t.Helper()

	var memStats runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&memStats)
	initialMem := memStats.Alloc
	f, err := newFilter(BloomFPRate, N)
	require.NoError(t, err)
	runtime.ReadMemStats(&memStats)
	memUsage := memStats.Alloc - initialMem

	startTime := time.Now()
	for _, item := range inserted {
		f.Insert(item)
	}
	insertTime := time.Since(startTime)

	startTime = time.Now()
	for _, item := range inserted {
		require.True(t, f.Contains(item))
	}
	lookupExisting := time.Since(startTime)

	fpCount := 0
	startTime = time.Now()
	for _, item := range nonInserted {
		if f.Contains(item) {
			fpCount++
		}
	}
	lookupNonExisting := time.Since(startTime)

	return comparison{
		memMB:        float64(memUsage) / (1024 * 1024),
		insertNs:     (insertTime / N).Nanoseconds(),
		lookupNs:     ((lookupExisting + lookupNonExisting) / (2 * N)).Nanoseconds(),
		fpr:          float64(fpCount) / float64(len(nonInserted)),
		throughputKs: float64(N) / insertTime.Seconds() / 1000,
	}
}

func TestBloomVsBlockedComparison(t *testing.T) {
	if testing.Short() {
		t.Skip("comparison inserts half a million items")
	}

	insertedData := generateData("testdata", N)
	nonInsertedData := generateData("missing", N)

	bloomStats := measure(t, variants["bloom"], insertedData, nonInsertedData)
	blockedStats := measure(t, variants["blocked"], insertedData, nonInsertedData)

	require.LessOrEqual(t, bloomStats.fpr, 2*BloomFPRate)
	require.LessOrEqual(t, blockedStats.fpr, 3*BloomFPRate)

	t.Log("--- Filter Comparison Results ---")
	t.Logf("Number of items (N): %d", N)
	t.Log("| Metric                | Bloom Filter      | Blocked Bloom     |")
	t.Log("|-----------------------|-------------------|-------------------|")
	t.Logf("| Memory Usage (MB)     | %-17.2f | %-17.2f |", bloomStats.memMB, blockedStats.memMB)
	t.Logf("| Avg. Insert Time (ns) | %-17d | %-17d |", bloomStats.insertNs, blockedStats.insertNs)
	t.Logf("| Avg. Lookup Time (ns) | %-17d | %-17d |", bloomStats.lookupNs, blockedStats.lookupNs)
	t.Logf("| FPR (%%)               | %-17.4f | %-17.4f |", bloomStats.fpr*100, blockedStats.fpr*100)
	t.Logf("| Throughput (kops)     | %-17.2f | %-17.2f |", bloomStats.throughputKs, blockedStats.throughputKs)
}
