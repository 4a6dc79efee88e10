package post

import (
	"context"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

// GetPostUsecase loads a single post.
type GetPostUsecase struct {
	postRepo repository.PostRepository
}

func NewGetPostUsecase(postRepo repository.PostRepository) *GetPostUsecase {
	return &GetPostUsecase{postRepo: postRepo}
}

func (u *GetPostUsecase) Execute(ctx context.Context, id post.ID) (*post.Snapshot, error) {
	p, err := u.postRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s := p.Snapshot()
	return &s, nil
}

// ListFeedUsecase returns the newest posts.
type ListFeedUsecase struct {
	postRepo repository.PostRepository
}

func NewListFeedUsecase(postRepo repository.PostRepository) *ListFeedUsecase {
	return &ListFeedUsecase{postRepo: postRepo}
}

/**
 * limit <= 0 means DefaultFeedLimit; larger values are capped at MaxFeedLimit.
 */
func (u *ListFeedUsecase) Execute(ctx context.Context, limit int) ([]post.Snapshot, error) {
	switch {
	case limit <= 0:
		limit = DefaultFeedLimit
	case limit > MaxFeedLimit:
		limit = MaxFeedLimit
	}

	posts, err := u.postRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]post.Snapshot, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Snapshot())
	}
	return out, nil
}
