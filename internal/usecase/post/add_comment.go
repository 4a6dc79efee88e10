package post

import (
	"context"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
)

type AddCommentInput struct {
	PostID  post.ID
	ActorID engagement.ActorID
	Text    string
}

// AddCommentUsecase appends a comment. Comments are independent of
// likes, dislikes and reactions.
type AddCommentUsecase struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

func NewAddCommentUsecase(postRepo repository.PostRepository) *AddCommentUsecase {
	return &AddCommentUsecase{postRepo: postRepo, now: time.Now}
}

// Execute returns the full comment list including the new comment.
func (u *AddCommentUsecase) Execute(ctx context.Context, in *AddCommentInput) ([]post.Comment, error) {
	if in == nil {
		return nil, ErrNilInput
	}

	p, err := u.postRepo.Get(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	c, err := p.AddComment(in.ActorID, sanitizeText(in.Text), u.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := u.postRepo.AppendComment(ctx, p.ID(), c); err != nil {
		return nil, err
	}
	return p.Comments(), nil
}
