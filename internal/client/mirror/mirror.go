// Package mirror keeps a client-side copy of a post's engagement and
// applies actions optimistically before the server answers.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
)

var (
	ErrMissingTransport = errors.New("mirror: transport is nil")
	ErrMissingPost      = errors.New("mirror: post id is empty")
	// ErrAlreadySettled is returned when a pending action is settled twice.
	ErrAlreadySettled = errors.New("mirror: action already settled")
)

// Transport sends one action to the server and returns the state it stored.
type Transport interface {
	Like(ctx context.Context, postID post.ID) (engagement.State, error)
	Dislike(ctx context.Context, postID post.ID) (engagement.State, error)
	React(ctx context.Context, postID post.ID, kind engagement.ReactionKind) (engagement.State, error)
}

// Phase is the lifecycle of one optimistic action.
type Phase int

const (
	PhasePending Phase = iota
	PhaseConfirmed
	PhaseRolledBack
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseRolledBack:
		return "rolled_back"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Pending records one action between its optimistic render and the
// server's answer.
type Pending struct {
	ID       uint64
	Action   engagement.Action
	Snapshot engagement.State
	Guess    engagement.State
	Phase    Phase
	Err      error
}

/**
 * Mirror holds the visible engagement of one post for one actor.
 * The server's state always wins: a confirmed answer replaces the guess,
 * a failed one restores what was visible before the action.
 */
type Mirror struct {
	postID    post.ID
	actor     engagement.ActorID
	transport Transport

	mu        sync.Mutex
	visible   engagement.State
	nextID    uint64
	observers []func(engagement.State)
}

func New(postID post.ID, actor engagement.ActorID, initial engagement.State, transport Transport) (*Mirror, error) {
	if postID == "" {
		return nil, ErrMissingPost
	}
	if actor == "" {
		return nil, engagement.ErrEmptyActor
	}
	if transport == nil {
		return nil, ErrMissingTransport
	}
	initial = initial.Normalize()
	return &Mirror{
		postID:    postID,
		actor:     actor,
		transport: transport,
		visible:   initial,
	}, nil
}

// State returns the currently rendered engagement.
func (m *Mirror) State() engagement.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible.Normalize()
}

// OnChange registers fn to run after every visible change.
func (m *Mirror) OnChange(fn func(engagement.State)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

/**
 * Begin renders the predicted state for action and returns the pending
 * record. Invalid actions fail here and nothing is rendered.
 */
func (m *Mirror) Begin(action engagement.Action) (*Pending, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	guess, err := engagement.Resolve(m.visible, m.actor, action)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.nextID++
	p := &Pending{
		ID:       m.nextID,
		Action:   action,
		Snapshot: m.visible.Normalize(),
		Guess:    guess,
		Phase:    PhasePending,
	}
	m.visible = guess
	observers, state := m.observers, guess.Normalize()
	m.mu.Unlock()

	notify(observers, state)
	return p, nil
}

/**
 * Settle closes p with the server's answer. On success the server state
 * is rendered. On failure the view goes back to p's snapshot, the state
 * held right before p was begun, even if other actions settled since.
 */
func (m *Mirror) Settle(p *Pending, server engagement.State, err error) error {
	if p == nil {
		return fmt.Errorf("mirror: settle nil action: %w", engagement.ErrInvalidAction)
	}

	m.mu.Lock()
	if p.Phase != PhasePending {
		m.mu.Unlock()
		return ErrAlreadySettled
	}
	if err == nil {
		m.visible = server.Normalize()
		p.Phase = PhaseConfirmed
	} else {
		m.visible = p.Snapshot
		p.Phase = PhaseRolledBack
		p.Err = err
	}
	observers, state := m.observers, m.visible.Normalize()
	m.mu.Unlock()

	notify(observers, state)
	return nil
}

/**
 * Apply runs both phases: render the guess, send the action, then
 * settle with the answer. The transport error, if any, is returned
 * after the rollback has been rendered. Nothing is retried.
 */
func (m *Mirror) Apply(ctx context.Context, action engagement.Action) (*Pending, error) {
	p, err := m.Begin(action)
	if err != nil {
		return nil, err
	}

	server, sendErr := m.send(ctx, action)
	if err := m.Settle(p, server, sendErr); err != nil {
		return p, err
	}
	return p, sendErr
}

func (m *Mirror) send(ctx context.Context, action engagement.Action) (engagement.State, error) {
	switch action.Type {
	case engagement.ActionLike:
		return m.transport.Like(ctx, m.postID)
	case engagement.ActionDislike:
		return m.transport.Dislike(ctx, m.postID)
	case engagement.ActionReact:
		return m.transport.React(ctx, m.postID, action.Kind)
	default:
		return engagement.State{}, engagement.ErrInvalidAction
	}
}

func notify(observers []func(engagement.State), state engagement.State) {
	for _, fn := range observers {
		fn(state)
	}
}
