package ratelog

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestCheckIsNoopBeforeIntervalElapses(t *testing.T) {
	tr := NewTracker(time.Hour)
	tr.Add(5)
	before := tr.LastTime
	tr.Check(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if tr.count != 5 || tr.LastTime != before {
		t.Fatalf("Check fired early: count=%d lastTime changed=%v", tr.count, tr.LastTime != before)
	}
}

func TestCheckResetsCountAfterIntervalElapses(t *testing.T) {
	tr := NewTracker(0)
	tr.Add(3)
	tr.Check(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if tr.count != 0 {
		t.Fatalf("count = %d after Check, want reset to 0", tr.count)
	}
}
