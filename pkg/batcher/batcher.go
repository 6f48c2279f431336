// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Config controls flush behavior. Zero fields fall back to defaults.
type Config struct {
	// FlushSize is the buffer size that forces a flush.
	FlushSize int
	// FlushInterval is the maximum time a buffered item waits before a flush.
	FlushInterval time.Duration
	// FlushRPS caps the flush rate.
	FlushRPS int
}

func (c Config) withDefaults() Config {
	if c.FlushSize <= 0 {
		c.FlushSize = 100
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = time.Second
	}
	if c.FlushRPS <= 0 {
		c.FlushRPS = 100
	}
	return c
}

// Batcher buffers items and flushes them either by size or interval.
// A failed flush is logged and the batch dropped; producers are never blocked
// by sink errors.
type Batcher[T any] struct {
	flush   func(context.Context, []T) error
	itemsCh chan T
	cfg     Config
	rl      ratelimit.Limiter
	logger  *zap.Logger

	wg   sync.WaitGroup
	stop chan struct{}
}

// New constructs a Batcher that delivers buffered items to flush.
func New[T any](logger *zap.Logger, flush func(context.Context, []T) error, cfg Config) *Batcher[T] {
	cfg = cfg.withDefaults()
	return &Batcher[T]{
		logger:  logger,
		flush:   flush,
		itemsCh: make(chan T, cfg.FlushSize*2),
		cfg:     cfg,
		rl:      ratelimit.New(cfg.FlushRPS),
		stop:    make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes any buffered items and stops the background loop.
func (b *Batcher[T]) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.FlushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.FlushSize)

	doFlush := func() {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		if err := b.flush(ctx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	drain := func() {
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
				if len(buf) >= b.cfg.FlushSize {
					doFlush()
				}
			default:
				doFlush()
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return

		case <-b.stop:
			drain()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.cfg.FlushSize {
				doFlush()
			}

		case <-ticker.C:
			doFlush()
		}
	}
}
