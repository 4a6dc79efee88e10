package repository

import (
	"context"
	"errors"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
)

var (
	ErrPostNotFound      = errors.New("repository: post not found")
	ErrPostAlreadyExists = errors.New("repository: post already exists")
	// ErrStorageUnavailable wraps transport or backend failures. Callers
	// decide whether to retry; repositories never retry on their own.
	ErrStorageUnavailable = errors.New("repository: storage unavailable")
)

/**
 * Reaction store accessor contract
 * Get: loads the full post, ErrPostNotFound when missing
 * CommitEngagement: overwrites likes, dislikes and reactions with state.
 *   Last writer wins; there is no version check, so two concurrent
 *   load/commit cycles on the same post can lose one update.
 *   ErrPostNotFound when the post disappeared since it was loaded.
 */
type EngagementAccessor interface {
	Get(ctx context.Context, id post.ID) (*post.Post, error)
	CommitEngagement(ctx context.Context, id post.ID, state engagement.State) error
}

/**
 * Post repository contract
 * Create: new post, ErrPostAlreadyExists on duplicate id
 * ListRecent: newest first, at most limit posts
 * UpdateContent / AppendComment / IncrementShares / UpdateInsight:
 *   field-level writes, ErrPostNotFound when the post is missing
 */
type PostRepository interface {
	EngagementAccessor
	Create(ctx context.Context, p *post.Post) error
	ListRecent(ctx context.Context, limit int) ([]*post.Post, error)
	UpdateContent(ctx context.Context, id post.ID, content string) error
	AppendComment(ctx context.Context, id post.ID, c post.Comment) error
	IncrementShares(ctx context.Context, id post.ID) error
	UpdateInsight(ctx context.Context, id post.ID, insight post.Insight) error
}
