// Package telemetry records local query metrics for tuning the lookup
// pipeline. Nothing leaves the machine; the store is a small SQLite
// database next to the logs.
package telemetry

import (
	"os"
	"path/filepath"
	"time"
)

// QueryMode classifies how the pipeline resolved a query.
type QueryMode string

const (
	// QueryModeCode means the query was treated as an infraction code.
	QueryModeCode QueryMode = "codigo"
	// QueryModeText means the query was matched against the textual columns.
	QueryModeText QueryMode = "texto"
)

// LatencyBucket is a histogram bucket for end-to-end query latency.
type LatencyBucket string

const (
	BucketUnder10ms  LatencyBucket = "<10ms"
	BucketUnder50ms  LatencyBucket = "<50ms"
	BucketUnder100ms LatencyBucket = "<100ms"
	BucketUnder500ms LatencyBucket = "<500ms"
	BucketSlow       LatencyBucket = ">=500ms"
)

// LatencyToBucket converts a duration to its histogram bucket.
func LatencyToBucket(d time.Duration) LatencyBucket {
	ms := d.Milliseconds()
	switch {
	case ms < 10:
		return BucketUnder10ms
	case ms < 50:
		return BucketUnder50ms
	case ms < 100:
		return BucketUnder100ms
	case ms < 500:
		return BucketUnder500ms
	default:
		return BucketSlow
	}
}

// QueryEvent is one completed search, as seen at the CLI surface.
type QueryEvent struct {
	// Term is the folded query term. Raw input never reaches the store.
	Term        string
	Mode        QueryMode
	ResultCount int
	Latency     time.Duration
	Timestamp   time.Time
}

// IsZeroResult reports whether the query found nothing.
func (e QueryEvent) IsZeroResult() bool {
	return e.ResultCount == 0
}

// day formats the event's date key.
func (e QueryEvent) day() string {
	return e.Timestamp.Format("2006-01-02")
}

// DefaultPath returns the default metrics database path
// (~/.multaguia/metrics.db). Falls back to the temp directory when the
// home directory is unavailable.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".multaguia", "metrics.db")
	}
	return filepath.Join(home, ".multaguia", "metrics.db")
}
