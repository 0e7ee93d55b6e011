package workers

import (
	"context"
	"errors"
	"testing"
)

func TestRunPreservesOrder(t *testing.T) {
	args := []int{1, 2, 3, 4, 5}
	results := Run(context.Background(), args, 2, nil, func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})
	for i, r := range results {
		want := args[i] * args[i]
		if r.Value != want || r.Err != nil {
			t.Fatalf("results[%d] = (%v,%v), want (%v,nil)", i, r.Value, r.Err, want)
		}
	}
}

func TestRunReportsPerItemErrors(t *testing.T) {
	boom := errors.New("boom")
	results := Run(context.Background(), []int{1, 2, 3}, 3, nil, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	if results[1].Err != boom {
		t.Fatalf("results[1].Err = %v, want boom", results[1].Err)
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("unexpected errors on non-failing items: %v %v", results[0].Err, results[2].Err)
	}
}

func TestRunEmptyInput(t *testing.T) {
	results := Run(context.Background(), []int{}, 4, nil, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	if len(results) != 0 {
		t.Fatalf("len(results) = %d, want 0", len(results))
	}
}
