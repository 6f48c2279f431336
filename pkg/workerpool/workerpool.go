// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// ForEach fans items out to workerCount goroutines and invokes fn for each.
// The first fn error cancels the remaining work and is returned; a canceled
// parent context surfaces as ctx.Err().
func ForEach[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) error,
) error {
	if workerCount <= 0 {
		workerCount = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	tasks := make(chan T)
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if ctx.Err() != nil {
					return
				}
				if err := fn(ctx, item); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break feed
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
