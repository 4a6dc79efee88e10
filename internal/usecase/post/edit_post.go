package post

import (
	"context"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
)

type EditPostInput struct {
	PostID  post.ID
	ActorID engagement.ActorID
	Content string
}

/**
 * Replaces a post's content.
 * Only the author may edit, and only strictly before editableUntil.
 * Engagement fields are not written.
 */
type EditPostUsecase struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

func NewEditPostUsecase(postRepo repository.PostRepository) *EditPostUsecase {
	return &EditPostUsecase{postRepo: postRepo, now: time.Now}
}

func (u *EditPostUsecase) Execute(ctx context.Context, in *EditPostInput) (*post.Snapshot, error) {
	if in == nil {
		return nil, ErrNilInput
	}

	p, err := u.postRepo.Get(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := p.Edit(in.ActorID, sanitizeText(in.Content), u.now()); err != nil {
		return nil, err
	}
	if err := u.postRepo.UpdateContent(ctx, p.ID(), p.Content()); err != nil {
		return nil, err
	}

	s := p.Snapshot()
	return &s, nil
}
