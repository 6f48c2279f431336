package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestForEachProcessesAllItems(t *testing.T) {
	t.Parallel()

	var sum int64
	err := ForEach(context.Background(), 4, []int64{1, 2, 3, 4, 5}, func(_ context.Context, v int64) error {
		atomic.AddInt64(&sum, v)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	if sum != 15 {
		t.Fatalf("expected sum 15, got %d", sum)
	}
}

func TestForEachReturnsFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var processed int64
	err := ForEach(context.Background(), 2, []int{1, 2, 3, 4, 5, 6, 7, 8}, func(_ context.Context, v int) error {
		if v == 3 {
			return boom
		}
		atomic.AddInt64(&processed, 1)
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if processed == 8 {
		t.Fatalf("expected the pool to stop early")
	}
}

func TestForEachCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var processed int64
	err := ForEach(ctx, 2, []int{1, 2, 3}, func(_ context.Context, _ int) error {
		atomic.AddInt64(&processed, 1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestForEachZeroWorkers(t *testing.T) {
	t.Parallel()

	var processed int64
	err := ForEach(context.Background(), 0, []int{1, 2}, func(_ context.Context, _ int) error {
		atomic.AddInt64(&processed, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	if processed != 2 {
		t.Fatalf("expected 2 items processed, got %d", processed)
	}
}
