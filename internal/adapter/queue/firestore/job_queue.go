package firestore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
)

// defaultPollInterval is how long an idle dequeue waits between reads.
const defaultPollInterval = 200 * time.Millisecond

var (
	errMissingClient = errors.New("firestorejobqueue: firestore client is missing")
	errEmptyPostID   = errors.New("firestorejobqueue: post id is empty")
)

// FirestoreJobQueue shares pending insight jobs between processes through
// a Firestore collection. Dequeue polls since Firestore has no blocking pop.
type FirestoreJobQueue struct {
	store jobStore
	poll  time.Duration

	closeOnce sync.Once
	closed    chan struct{}
}

func NewFirestoreJobQueue(client *firestore.Client) (*FirestoreJobQueue, error) {
	if client == nil {
		return nil, errMissingClient
	}
	return newJobQueue(&firestoreJobStore{client: client}, defaultPollInterval), nil
}

func newJobQueue(store jobStore, poll time.Duration) *FirestoreJobQueue {
	return &FirestoreJobQueue{store: store, poll: poll, closed: make(chan struct{})}
}

// EnqueueInsight schedules id once; a second call before the job is taken
// returns queue.ErrJobAlreadyScheduled.
func (q *FirestoreJobQueue) EnqueueInsight(ctx context.Context, id post.ID) error {
	if err := q.usable(ctx); err != nil {
		return err
	}
	if id == "" {
		return errEmptyPostID
	}
	return contextError(q.store.Add(ctx, string(id)))
}

func (q *FirestoreJobQueue) DequeueInsight(ctx context.Context) (post.ID, error) {
	var wait *time.Timer
	defer func() {
		if wait != nil {
			wait.Stop()
		}
	}()

	for {
		if err := q.usable(ctx); err != nil {
			return "", err
		}
		id, err := q.store.TakeOldest(ctx)
		if err == nil {
			return post.ID(id), nil
		}
		if !errors.Is(err, errJobsEmpty) {
			return "", contextError(err)
		}

		if wait == nil {
			wait = time.NewTimer(q.poll)
		} else {
			wait.Reset(q.poll)
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", queue.ErrContextClosed, ctx.Err())
		case <-q.closed:
			return "", queue.ErrQueueClosed
		case <-wait.C:
		}
	}
}

// Close wakes pending dequeues. Jobs already stored stay in Firestore for
// the next worker.
func (q *FirestoreJobQueue) Close() error {
	if q == nil {
		return nil
	}
	q.closeOnce.Do(func() {
		close(q.closed)
		log.Debug().Msg("firestore job queue closed")
	})
	return nil
}

func (q *FirestoreJobQueue) usable(ctx context.Context) error {
	if q == nil {
		return queue.ErrQueueClosed
	}
	select {
	case <-q.closed:
		return queue.ErrQueueClosed
	default:
	}
	if ctx == nil {
		return fmt.Errorf("%w: context is nil", queue.ErrContextClosed)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", queue.ErrContextClosed, err)
	}
	return nil
}

// contextError reports context cancellation as queue.ErrContextClosed.
func contextError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", queue.ErrContextClosed, err)
	}
	return err
}

var _ queue.JobQueue = (*FirestoreJobQueue)(nil)
