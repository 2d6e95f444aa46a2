package mutation

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls further behind starts dropping batches rather than blocking the
// publisher.
const subscriberBuffer = 16

// Hub is an in-process publish/subscribe broadcaster for mutation batches.
// Publishers never block: a slow subscriber's batches are dropped and
// counted. Safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan *Batch]struct{}
	logger *slog.Logger

	seq     atomic.Uint64
	dropped atomic.Int64
}

// NewHub creates a Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[chan *Batch]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscriber and returns its receive channel. The
// subscription is removed and the channel closed when ctx is cancelled.
func (h *Hub) Subscribe(ctx context.Context) <-chan *Batch {
	ch := make(chan *Batch, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Broadcast builds a batch from records with the next sequence number and
// publishes it. The built batch is returned so callers can log or persist it.
func (h *Hub) Broadcast(records ...Record) *Batch {
	b := NewBatch(h.seq.Add(1), records...)
	h.Publish(b)
	return b
}

// Publish fans the batch out to every subscriber without blocking.
func (h *Hub) Publish(b *Batch) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- b:
		default:
			h.dropped.Add(1)
			h.logger.Warn("mutation: dropping batch for slow subscriber", "batch_id", b.ID, "seq", b.Seq)
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns the number of batches dropped for slow subscribers.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}
