package post

import (
	"context"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
)

// SharePostUsecase increments the share counter.
type SharePostUsecase struct {
	postRepo repository.PostRepository
}

func NewSharePostUsecase(postRepo repository.PostRepository) *SharePostUsecase {
	return &SharePostUsecase{postRepo: postRepo}
}

// Execute returns the share count after the increment.
func (u *SharePostUsecase) Execute(ctx context.Context, id post.ID) (int, error) {
	if err := u.postRepo.IncrementShares(ctx, id); err != nil {
		return 0, err
	}
	p, err := u.postRepo.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.Shares(), nil
}
