package engagement

import (
	"context"
	"errors"
	"fmt"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
)

var (
	// ErrNilInput is returned when the usecase receives a nil input.
	ErrNilInput = errors.New("react: input is nil")
	// ErrMissingStore is returned when no store accessor is configured.
	ErrMissingStore = errors.New("react: store accessor is nil")
)

// ReactInput is one engagement mutation by an authenticated actor.
type ReactInput struct {
	PostID  post.ID
	ActorID engagement.ActorID
	Action  engagement.Action
}

// ReactOutput carries the authoritative state after the commit.
type ReactOutput struct {
	PostID post.ID
	State  engagement.State
}

/**
 * Applies like / dislike / react to a post.
 * store: reaction store accessor
 *
 * Steps run strictly in order: load, resolve, commit. The next state is
 * always computed from the freshly loaded document, never from a client
 * guess. There is no version check on commit: concurrent calls for the
 * same post can overwrite each other, last writer wins.
 */
type ReactUsecase struct {
	store repository.EngagementAccessor
}

func NewReactUsecase(store repository.EngagementAccessor) (*ReactUsecase, error) {
	if store == nil {
		return nil, ErrMissingStore
	}
	return &ReactUsecase{store: store}, nil
}

func (u *ReactUsecase) Execute(ctx context.Context, in *ReactInput) (*ReactOutput, error) {
	if in == nil {
		return nil, ErrNilInput
	}
	if in.ActorID == "" {
		return nil, engagement.ErrEmptyActor
	}
	// invalid kinds never reach storage
	if err := in.Action.Validate(); err != nil {
		return nil, err
	}

	p, err := u.store.Get(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	next, err := engagement.Resolve(p.Engagement(), in.ActorID, in.Action)
	if err != nil {
		return nil, err
	}

	if err := u.store.CommitEngagement(ctx, in.PostID, next); err != nil {
		return nil, fmt.Errorf("commit engagement for %s: %w", in.PostID, err)
	}

	return &ReactOutput{PostID: in.PostID, State: next}, nil
}
