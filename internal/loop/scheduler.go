package loop

import (
	"context"
	"sync"
	"time"
)

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// FrameFunc runs once per display frame.
type FrameFunc func(now time.Time)

// Scheduler registers one-shot callbacks for the next display frame.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// FrameQueue is a Scheduler driven by its host: whoever owns the display
// calls Flush once per frame.
type FrameQueue struct {
	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]FrameFunc
	order   []FrameID
	batch   map[FrameID]FrameFunc
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameID]FrameFunc)}
}

func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

// CancelFrame drops a callback that has not run yet, including one queued in
// the batch currently being flushed. Unknown IDs are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, id)
	delete(q.batch, id)
}

// Pending returns the number of callbacks waiting for the next Flush.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs every callback requested before the call, in request order.
// Callbacks requested while flushing wait for the next Flush. Returns the
// number of callbacks run.
func (q *FrameQueue) Flush(now time.Time) int {
	q.mu.Lock()
	order := q.order
	q.batch = q.pending
	q.pending = make(map[FrameID]FrameFunc)
	q.order = nil
	q.mu.Unlock()

	ran := 0
	for _, id := range order {
		q.mu.Lock()
		fn, ok := q.batch[id]
		delete(q.batch, id)
		q.mu.Unlock()
		if !ok {
			continue
		}
		fn(now)
		ran++
	}

	q.mu.Lock()
	q.batch = nil
	q.mu.Unlock()
	return ran
}

// RunTicker calls tick every interval until ctx is cancelled.
func RunTicker(ctx context.Context, interval time.Duration, tick func(now time.Time)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			tick(now)
		}
	}
}
