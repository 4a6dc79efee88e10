package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/queue/memory"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"
)

type recordingExecutor struct {
	mu   sync.Mutex
	ids  []post.ID
	err  error
	done chan struct{}
	want int
}

func (r *recordingExecutor) Execute(ctx context.Context, id post.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	if len(r.ids) == r.want {
		close(r.done)
	}
	return r.err
}

func TestRun_ProcessesJobsUntilQueueClosed(t *testing.T) {
	jobs := memory.NewInMemoryJobQueue(4)
	for _, id := range []post.ID{"a", "b", "c"} {
		if err := jobs.EnqueueInsight(context.Background(), id); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	exec := &recordingExecutor{err: errors.New("llm down"), done: make(chan struct{}), want: 3}

	stopped := make(chan struct{})
	go func() {
		Run(context.Background(), jobs, exec)
		close(stopped)
	}()

	select {
	case <-exec.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("jobs were not processed")
	}
	_ = jobs.Close()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after the queue closed")
	}
	if len(exec.ids) != 3 || exec.ids[0] != "a" {
		t.Fatalf("unexpected processing order: %v", exec.ids)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		Run(ctx, memory.NewInMemoryJobQueue(1), &recordingExecutor{done: make(chan struct{})})
		close(stopped)
	}()
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

// flakyQueue fails the first dequeue with an unexpected error.
type flakyQueue struct {
	calls int
}

func (q *flakyQueue) EnqueueInsight(ctx context.Context, id post.ID) error { return nil }

func (q *flakyQueue) DequeueInsight(ctx context.Context) (post.ID, error) {
	q.calls++
	if q.calls == 1 {
		return "", errors.New("transient")
	}
	return "", queue.ErrQueueClosed
}

func (q *flakyQueue) Close() error { return nil }

func TestRun_RetriesAfterDequeueError(t *testing.T) {
	orig := dequeueBackoff
	dequeueBackoff = time.Millisecond
	defer func() { dequeueBackoff = orig }()

	q := &flakyQueue{}
	Run(context.Background(), q, &recordingExecutor{done: make(chan struct{})})
	if q.calls != 2 {
		t.Fatalf("expected a retry after the transient error, got %d calls", q.calls)
	}
}
