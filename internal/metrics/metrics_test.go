package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecordSplitCountsSuccessAndFailureSeparately(t *testing.T) {
	var b Build
	b.RecordSplit(10*time.Millisecond, nil)
	b.RecordSplit(20*time.Millisecond, nil)
	b.RecordSplit(5*time.Millisecond, errors.New("boom"))

	if b.totalEntries != 3 || b.splitEntries != 2 || b.failedEntries != 1 {
		t.Fatalf("totals = %d/%d/%d, want 3/2/1", b.totalEntries, b.splitEntries, b.failedEntries)
	}
}

func TestBuildIsSafeForConcurrentRecordSplit(t *testing.T) {
	var b Build
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			b.RecordSplit(time.Millisecond, nil)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if b.totalEntries != 10 {
		t.Fatalf("totalEntries = %d, want 10", b.totalEntries)
	}
}
