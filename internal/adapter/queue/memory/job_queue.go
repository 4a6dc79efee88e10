package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"
)

// InMemoryJobQueue is a channel-backed insight job queue for local runs.
// A post id can be scheduled once until it is dequeued again.
type InMemoryJobQueue struct {
	ch        chan post.ID
	closedCh  chan struct{}
	closeOnce sync.Once

	mu        sync.Mutex
	scheduled map[post.ID]struct{}
}

/**
 * Creates a queue holding up to buffer ids, at least one.
 */
func NewInMemoryJobQueue(buffer int) *InMemoryJobQueue {
	if buffer <= 0 {
		buffer = 1
	}
	return &InMemoryJobQueue{
		ch:        make(chan post.ID, buffer),
		closedCh:  make(chan struct{}),
		scheduled: make(map[post.ID]struct{}),
	}
}

/**
 * Pushes id without waiting. A full buffer returns queue.ErrQueueFull,
 * since the consumer may be the caller itself (a requeue).
 */
func (q *InMemoryJobQueue) EnqueueInsight(ctx context.Context, id post.ID) error {
	if q.isClosed() {
		return queue.ErrQueueClosed
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", queue.ErrContextClosed, err)
	}
	if !q.reserve(id) {
		return queue.ErrJobAlreadyScheduled
	}

	select {
	case q.ch <- id:
		return nil
	default:
		q.release(id)
		return queue.ErrQueueFull
	}
}

/**
 * Waits for the next id until ctx ends or the queue is closed.
 */
func (q *InMemoryJobQueue) DequeueInsight(ctx context.Context) (post.ID, error) {
	if q.isClosed() {
		return "", queue.ErrQueueClosed
	}
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", queue.ErrContextClosed, ctx.Err())
	case <-q.closedCh:
		return "", queue.ErrQueueClosed
	case id := <-q.ch:
		q.release(id)
		return id, nil
	}
}

// Close stops the queue. Calling it again is a no-op.
func (q *InMemoryJobQueue) Close() error {
	q.closeOnce.Do(func() {
		close(q.closedCh)
	})
	return nil
}

func (q *InMemoryJobQueue) isClosed() bool {
	select {
	case <-q.closedCh:
		return true
	default:
		return false
	}
}

func (q *InMemoryJobQueue) reserve(id post.ID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.scheduled[id]; ok {
		return false
	}
	q.scheduled[id] = struct{}{}
	return true
}

func (q *InMemoryJobQueue) release(id post.ID) {
	q.mu.Lock()
	delete(q.scheduled, id)
	q.mu.Unlock()
}

var _ queue.JobQueue = (*InMemoryJobQueue)(nil)
