package post

import (
	"context"
	"errors"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNilInput is returned when a usecase receives a nil input.
	ErrNilInput = errors.New("post_usecase: input is nil")
)

// CreatePostInput is a new failure story from an authenticated author.
type CreatePostInput struct {
	AuthorID engagement.ActorID
	Content  string
}

// CreatePostOutput is the stored post.
type CreatePostOutput struct {
	Post post.Snapshot
}

/**
 * Creates a post.
 * postRepo: post repository
 * jobQueue: insight job queue, may be nil when no worker runs
 * window: edit window, zero means post.DefaultEditWindow
 */
type CreatePostUsecase struct {
	postRepo repository.PostRepository
	jobQueue queue.JobQueue
	window   time.Duration
	now      func() time.Time
	newID    func() string
}

func NewCreatePostUsecase(postRepo repository.PostRepository, jobQueue queue.JobQueue, window time.Duration) *CreatePostUsecase {
	return &CreatePostUsecase{
		postRepo: postRepo,
		jobQueue: jobQueue,
		window:   window,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

/**
 * Sanitises the content, stores the post and schedules its insight job.
 * The post is already saved when enqueueing fails, so that failure is
 * logged and the post is still returned.
 */
func (u *CreatePostUsecase) Execute(ctx context.Context, in *CreatePostInput) (*CreatePostOutput, error) {
	if in == nil {
		return nil, ErrNilInput
	}

	p, err := post.New(post.ID(u.newID()), in.AuthorID, sanitizeText(in.Content), u.now().UTC(), u.window)
	if err != nil {
		return nil, err
	}

	if err := u.postRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	if u.jobQueue != nil {
		if err := u.jobQueue.EnqueueInsight(ctx, p.ID()); err != nil {
			log.Warn().Err(err).Str("postID", string(p.ID())).Msg("Failed to enqueue insight job")
		}
	}

	return &CreatePostOutput{Post: p.Snapshot()}, nil
}
