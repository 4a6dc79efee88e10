package app

import (
	"errors"
	"fmt"

	queueFirestore "github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/queue/firestore"
	queueMemory "github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/queue/memory"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"

	"cloud.google.com/go/firestore"
)

// memoryQueueBuffer bounds the in-process insight queue.
const memoryQueueBuffer = 64

var (
	jobQueueFactory          = newJobQueue
	firestoreJobQueueFactory = func(client *firestore.Client) (queue.JobQueue, error) {
		return queueFirestore.NewFirestoreJobQueue(client)
	}
)

var errFirestoreQueueRequiresClient = errors.New("job queue: firestore client is not initialized")

/**
 * Builds the insight job queue for backend. The memory queue lives in
 * this process only.
 */
func newJobQueue(infra *Infra, backend string) (queue.JobQueue, error) {
	switch backend {
	case config.BackendFirestore:
		if infra.Firestore() == nil {
			return nil, errFirestoreQueueRequiresClient
		}
		jobQueue, err := firestoreJobQueueFactory(infra.Firestore())
		if err != nil {
			return nil, fmt.Errorf("new firestore job queue: %w", err)
		}
		return jobQueue, nil
	case config.BackendMemory, "":
		return queueMemory.NewInMemoryJobQueue(memoryQueueBuffer), nil
	default:
		return nil, fmt.Errorf("job queue: unsupported backend %q", backend)
	}
}
