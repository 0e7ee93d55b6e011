// Package metrics tracks index build instrumentation: how many catalog
// entries were split successfully versus failed, and how long the
// per-entry split work took on average.
//
// Grounded on the teacher's internal/utils/metrics/metrics.go, rescoped
// from generic "job" counters to the build pipeline's two outcomes
// (entries split, entries failed) and logged under a build-specific
// message instead of the teacher's bare "Metrics".
package metrics

import (
	"log/slog"
	"sync"
	"time"
)

// Build accumulates counters for one CreateIndex run. The zero value is
// ready to use.
type Build struct {
	mu sync.Mutex

	totalEntries   int
	splitEntries   int
	failedEntries  int
	totalSplitTime time.Duration
	splitTimeCount int
}

// RecordSplit records one entry's split outcome and how long it took.
func (b *Build) RecordSplit(duration time.Duration, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.totalEntries++
	b.totalSplitTime += duration
	b.splitTimeCount++
	if err != nil {
		b.failedEntries++
		return
	}
	b.splitEntries++
}

// TotalEntries reports how many entries RecordSplit has seen so far.
func (b *Build) TotalEntries() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalEntries
}

// Log emits the accumulated counters as a single structured log line.
func (b *Build) Log(log *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()

	avg := time.Duration(0)
	if b.splitTimeCount > 0 {
		avg = b.totalSplitTime / time.Duration(b.splitTimeCount)
	}

	log.Info("index build",
		"total_entries", b.totalEntries,
		"split_entries", b.splitEntries,
		"failed_entries", b.failedEntries,
		"avg_split_time", avg,
	)
}
