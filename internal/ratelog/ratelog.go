// Package ratelog periodically logs query throughput: how many searches
// ran and at what average rate, without logging on every single query.
//
// Grounded on the teacher's internal/utils/frequency/frequency.go, renamed
// from "Event Rate" to a query-specific message since this tracker is
// wired to the command-line tool's one-shot search rather than a generic
// event stream.
package ratelog

import (
	"log/slog"
	"time"
)

// Tracker accumulates query counts between log checkpoints spaced at
// least Interval apart.
type Tracker struct {
	Interval time.Duration
	LastTime time.Time

	count int
	total int
}

// NewTracker returns a Tracker whose first Check will fire no earlier
// than interval after now.
func NewTracker(interval time.Duration) *Tracker {
	return &Tracker{Interval: interval, LastTime: time.Now()}
}

// Add records n additional queries since the last Check.
func (t *Tracker) Add(n int) {
	t.count += n
	t.total += n
}

// Check logs the accumulated query rate and resets the counter once
// Interval has elapsed since the last log, otherwise it is a no-op.
func (t *Tracker) Check(log *slog.Logger) {
	now := time.Now()
	elapsed := now.Sub(t.LastTime)
	if elapsed < t.Interval {
		return
	}
	rate := float64(t.total) / elapsed.Seconds()
	log.Info("query rate", "count", t.count, "per_second", rate)
	t.count = 0
	t.LastTime = now
}
