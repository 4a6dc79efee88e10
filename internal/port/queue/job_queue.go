package queue

import (
	"context"
	"errors"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
)

var (
	ErrJobAlreadyScheduled = errors.New("queue: a job for this post is already scheduled")
	ErrQueueClosed         = errors.New("queue: job queue is closed")
	ErrContextClosed       = errors.New("queue: context is done")
	ErrQueueFull           = errors.New("queue: job queue is full")
)

/**
 * Insight job queue contract: post ids waiting for an LLM insight.
 */
type JobQueue interface {
	EnqueueInsight(ctx context.Context, postID post.ID) error
	DequeueInsight(ctx context.Context) (post.ID, error)
	Close() error
}
