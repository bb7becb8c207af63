package progress

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Options tunes Hub buffering and batching. Zero values select defaults.
type Options struct {
	// Buffer is the internal channel capacity (default 4096).
	Buffer int
	// BatchSize flushes once this many events queue (default 256).
	BatchSize int
	// FlushEvery flushes a partial batch after this long (default 500ms).
	FlushEvery time.Duration
	// SinkTimeout is the per-sink deadline while flushing (default 10s).
	SinkTimeout time.Duration
	// Logger is used for drop and sink warnings.
	Logger *zap.Logger
}

const (
	defaultBuffer      = 4096
	defaultBatchSize   = 256
	defaultFlushEvery  = 500 * time.Millisecond
	defaultSinkTimeout = 10 * time.Second
	dropWarnInterval   = 5 * time.Second
)

// Hub fans batches of events out to registered sinks. Emit never blocks the
// crawl: when the buffer is full events are dropped and the drop count is
// reported at a bounded rate.
type Hub struct {
	opts   Options
	sinks  []Sink
	events chan Event
	quit   chan struct{}
	done   chan struct{}
	logger *zap.Logger

	dropped  atomic.Int64
	lastWarn atomic.Int64
	closed   atomic.Bool

	closeOnce sync.Once
	closeCtx  context.Context
}

// NewHub starts the background flusher over the supplied sinks. The returned
// Hub accepts events immediately.
func NewHub(opts Options, sinks ...Sink) *Hub {
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.FlushEvery <= 0 {
		opts.FlushEvery = defaultFlushEvery
	}
	if opts.SinkTimeout <= 0 {
		opts.SinkTimeout = defaultSinkTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	h := &Hub{
		opts:   opts,
		sinks:  append([]Sink(nil), sinks...),
		events: make(chan Event, opts.Buffer),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: opts.Logger,
	}
	go h.run()
	return h
}

// Emit enqueues an event for batching. It never blocks.
func (h *Hub) Emit(evt Event) {
	if h == nil || h.closed.Load() {
		return
	}
	if err := evt.Validate(); err != nil {
		h.logger.Debug("discarding invalid progress event", zap.Error(err))
		return
	}
	select {
	case h.events <- evt:
	default:
		h.dropped.Add(1)
		h.warnDrops()
	}
}

// Close drains buffered events, flushes and closes every sink, and waits for
// the background goroutine. Safe to call more than once.
func (h *Hub) Close(ctx context.Context) error {
	if h == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	h.closeOnce.Do(func() {
		h.closed.Store(true)
		h.closeCtx = ctx
		close(h.quit)
	})
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("progress hub close wait: %w", ctx.Err())
	}
}

func (h *Hub) run() {
	defer close(h.done)

	batch := make([]Event, 0, h.opts.BatchSize)
	tick := time.NewTicker(h.opts.FlushEvery)
	defer tick.Stop()

	for {
		select {
		case evt := <-h.events:
			batch = append(batch, evt)
			if len(batch) >= h.opts.BatchSize {
				h.flush(batch)
				batch = batch[:0]
			}
		case <-tick.C:
			if len(batch) > 0 {
				h.flush(batch)
				batch = batch[:0]
			}
		case <-h.quit:
			h.drain(batch)
			h.closeSinks()
			return
		}
	}
}

// drain empties the event channel into a final flush.
func (h *Hub) drain(batch []Event) {
	for {
		select {
		case evt := <-h.events:
			batch = append(batch, evt)
			if len(batch) >= h.opts.BatchSize {
				h.flush(batch)
				batch = batch[:0]
			}
		default:
			h.flush(batch)
			return
		}
	}
}

func (h *Hub) flush(batch []Event) {
	if len(batch) == 0 {
		return
	}
	out := append([]Event(nil), batch...)
	for _, sink := range h.sinks {
		if sink == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), h.opts.SinkTimeout)
		if err := sink.Consume(ctx, out); err != nil {
			h.logger.Warn("progress sink consume failed", zap.Error(err))
		}
		cancel()
	}
}

func (h *Hub) closeSinks() {
	ctx := h.closeCtx
	if ctx == nil {
		ctx = context.Background()
	}
	for _, sink := range h.sinks {
		if sink == nil {
			continue
		}
		if err := sink.Close(ctx); err != nil {
			h.logger.Warn("progress sink close failed", zap.Error(err))
		}
	}
}

func (h *Hub) warnDrops() {
	now := time.Now().UnixNano()
	last := h.lastWarn.Load()
	if now-last < dropWarnInterval.Nanoseconds() {
		return
	}
	if !h.lastWarn.CompareAndSwap(last, now) {
		return
	}
	h.logger.Warn("progress events dropped due to backpressure",
		zap.Int64("dropped", h.dropped.Swap(0)))
}
