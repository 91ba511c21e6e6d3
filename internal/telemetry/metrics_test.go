package telemetry

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "metrics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func event(term string, mode QueryMode, results int, latency time.Duration) QueryEvent {
	return QueryEvent{
		Term:        term,
		Mode:        mode,
		ResultCount: results,
		Latency:     latency,
		Timestamp:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestLatencyToBucket(t *testing.T) {
	assert.Equal(t, BucketUnder10ms, LatencyToBucket(3*time.Millisecond))
	assert.Equal(t, BucketUnder50ms, LatencyToBucket(10*time.Millisecond))
	assert.Equal(t, BucketUnder100ms, LatencyToBucket(99*time.Millisecond))
	assert.Equal(t, BucketUnder500ms, LatencyToBucket(200*time.Millisecond))
	assert.Equal(t, BucketSlow, LatencyToBucket(2*time.Second))
}

func TestRecordAndSummarize(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Record(event("estacionar", QueryModeText, 3, 5*time.Millisecond)))
	require.NoError(t, s.Record(event("estacionar", QueryModeText, 3, 8*time.Millisecond)))
	require.NoError(t, s.Record(event("51691", QueryModeCode, 1, 60*time.Millisecond)))
	require.NoError(t, s.Record(event("zzzz", QueryModeText, 0, 5*time.Millisecond)))

	sum, err := s.Summarize(5)
	require.NoError(t, err)

	assert.Equal(t, int64(4), sum.TotalQueries)
	assert.Equal(t, int64(3), sum.ByMode[QueryModeText])
	assert.Equal(t, int64(1), sum.ByMode[QueryModeCode])

	require.NotEmpty(t, sum.TopTerms)
	assert.Equal(t, "estacionar", sum.TopTerms[0].Term)
	assert.Equal(t, int64(2), sum.TopTerms[0].Count)

	assert.Equal(t, []string{"zzzz"}, sum.ZeroResults)

	assert.Equal(t, BucketUnder10ms, sum.Latency[0].Bucket)
	assert.Equal(t, int64(3), sum.Latency[0].Count)
	assert.Equal(t, int64(1), sum.Latency[2].Count)
}

func TestZeroResultBufferTrimmed(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < zeroResultKeep+20; i++ {
		require.NoError(t, s.Record(event(fmt.Sprintf("termo%d", i), QueryModeText, 0, time.Millisecond)))
	}

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM sem_resultado`).Scan(&n))
	assert.Equal(t, zeroResultKeep, n)

	// The newest entries survive.
	sum, err := s.Summarize(5)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("termo%d", zeroResultKeep+19), sum.ZeroResults[0])
}

func TestSummarize_EmptyStore(t *testing.T) {
	s := newTestStore(t)

	sum, err := s.Summarize(5)
	require.NoError(t, err)

	assert.Zero(t, sum.TotalQueries)
	assert.Empty(t, sum.TopTerms)
	assert.Empty(t, sum.ZeroResults)
	require.Len(t, sum.Latency, 5)
	for _, b := range sum.Latency {
		assert.Zero(t, b.Count)
	}
}

func TestOpenStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "metrics.db")

	s, err := OpenStore(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Record(event("alcool", QueryModeText, 1, time.Millisecond)))
}
