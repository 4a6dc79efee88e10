package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// insightJobsCollection holds one document per scheduled post.
const insightJobsCollection = "insightJobs"

// takeAttempts bounds transaction retries when workers race for a job.
const takeAttempts = 5

// errJobsEmpty is what a store reports when nothing is scheduled.
var errJobsEmpty = errors.New("firestorejobqueue: no job scheduled")

type jobDocument struct {
	PostID     string    `firestore:"postId"`
	EnqueuedAt time.Time `firestore:"enqueuedAt"`
}

// jobStore is the part of Firestore the queue talks to.
// Add fails with ErrJobAlreadyScheduled for a duplicate id and TakeOldest
// fails with errJobsEmpty when there is nothing to hand out.
type jobStore interface {
	Add(ctx context.Context, postID string) error
	TakeOldest(ctx context.Context) (string, error)
}

type firestoreJobStore struct {
	client *firestore.Client
}

func (s *firestoreJobStore) jobs() *firestore.CollectionRef {
	return s.client.Collection(insightJobsCollection)
}

func (s *firestoreJobStore) Add(ctx context.Context, postID string) error {
	_, err := s.jobs().Doc(postID).Create(ctx, map[string]any{
		"postId":     postID,
		"enqueuedAt": firestore.ServerTimestamp,
	})
	switch {
	case err == nil:
		return nil
	case status.Code(err) == codes.AlreadyExists:
		return queue.ErrJobAlreadyScheduled
	default:
		return fmt.Errorf("add job %s: %w", postID, err)
	}
}

/**
 * Reads and deletes the oldest job inside one transaction, so a job is
 * handed to exactly one worker even when several poll the collection.
 */
func (s *firestoreJobStore) TakeOldest(ctx context.Context) (string, error) {
	oldest := s.jobs().OrderBy("enqueuedAt", firestore.Asc).Limit(1)

	var taken string
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.Documents(oldest).GetAll()
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			return errJobsEmpty
		}
		var job jobDocument
		if err := snaps[0].DataTo(&job); err != nil {
			return fmt.Errorf("decode job %s: %w", snaps[0].Ref.ID, err)
		}
		if job.PostID == "" {
			// Fall back to the document id for jobs written by hand.
			job.PostID = snaps[0].Ref.ID
		}
		if err := tx.Delete(snaps[0].Ref); err != nil {
			return err
		}
		taken = job.PostID
		return nil
	}, firestore.MaxAttempts(takeAttempts))
	if err != nil {
		if errors.Is(err, errJobsEmpty) {
			return "", errJobsEmpty
		}
		return "", fmt.Errorf("take job: %w", err)
	}
	return taken, nil
}
