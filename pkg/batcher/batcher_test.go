package batcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]int
}

func (r *recorder) flush(_ context.Context, items []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]int, len(items))
	copy(cp, items)
	r.batches = append(r.batches, cp)
	return nil
}

func (r *recorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.batches {
		n += len(b)
	}
	return n
}

func TestBatcher_FlushOnSize(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, Config{FlushSize: 3, FlushInterval: time.Minute, FlushRPS: 1000})

	b.Start(ctx)
	defer b.Stop()

	for i := 0; i < 3; i++ {
		if err := b.Add(ctx, i); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for rec.total() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("size flush did not happen, flushed %d", rec.total())
		}
		time.Sleep(10 * time.Millisecond)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.batches) != 1 || len(rec.batches[0]) != 3 {
		t.Fatalf("unexpected batches: %+v", rec.batches)
	}
}

func TestBatcher_FlushOnInterval(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, Config{FlushSize: 100, FlushInterval: 20 * time.Millisecond, FlushRPS: 1000})

	b.Start(ctx)
	defer b.Stop()

	if err := b.Add(ctx, 7); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for rec.total() < 1 {
		if time.Now().After(deadline) {
			t.Fatal("interval flush did not happen")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBatcher_StopFlushesBuffered(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	rec := &recorder{}
	b := New(zap.NewNop(), rec.flush, Config{FlushSize: 100, FlushInterval: time.Minute, FlushRPS: 1000})

	b.Start(ctx)
	for i := 0; i < 5; i++ {
		if err := b.Add(ctx, i); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}
	b.Stop()

	if rec.total() != 5 {
		t.Fatalf("expected 5 items flushed on stop, got %d", rec.total())
	}

	if err := b.Add(ctx, 6); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled error after stop, got %v", err)
	}
}

func TestBatcher_FlushErrorDoesNotStopLoop(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	calls := 0
	b := New(zap.NewNop(), func(_ context.Context, _ []int) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("sink down")
	}, Config{FlushSize: 1, FlushInterval: time.Minute, FlushRPS: 1000})

	b.Start(ctx)
	defer b.Stop()

	for i := 0; i < 2; i++ {
		if err := b.Add(ctx, i); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		done := calls >= 2
		mu.Unlock()
		if done {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("loop stopped after flush error")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
