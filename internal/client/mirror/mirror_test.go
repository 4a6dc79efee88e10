package mirror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
)

// stubTransport answers every action with the same state or error.
type stubTransport struct {
	state engagement.State
	err   error
	calls []string
}

func (s *stubTransport) Like(ctx context.Context, postID post.ID) (engagement.State, error) {
	s.calls = append(s.calls, "like")
	return s.state, s.err
}

func (s *stubTransport) Dislike(ctx context.Context, postID post.ID) (engagement.State, error) {
	s.calls = append(s.calls, "dislike")
	return s.state, s.err
}

func (s *stubTransport) React(ctx context.Context, postID post.ID, kind engagement.ReactionKind) (engagement.State, error) {
	s.calls = append(s.calls, "react:"+string(kind))
	return s.state, s.err
}

func resolve(t *testing.T, s engagement.State, actor engagement.ActorID, a engagement.Action) engagement.State {
	t.Helper()
	next, err := engagement.Resolve(s, actor, a)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return next
}

func TestMirror_ApplyConfirmsServerState(t *testing.T) {
	initial := engagement.NewState()
	guess := resolve(t, initial, "bob", engagement.Like())
	transport := &stubTransport{state: guess}

	m, err := New("post-1", "bob", initial, transport)
	if err != nil {
		t.Fatalf("new mirror: %v", err)
	}
	var rendered []engagement.State
	m.OnChange(func(s engagement.State) { rendered = append(rendered, s) })

	p, err := m.Apply(context.Background(), engagement.Like())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p.Phase != PhaseConfirmed || p.Err != nil {
		t.Fatalf("unexpected pending record: %+v", p)
	}
	if !m.State().Equal(guess) {
		t.Fatalf("mirror should show the confirmed state: %+v", m.State())
	}
	if len(rendered) != 2 || !rendered[0].Equal(guess) {
		t.Fatalf("expected guess then confirmation renders, got %d", len(rendered))
	}
}

func TestMirror_ConvergesToDifferentServerState(t *testing.T) {
	initial := engagement.NewState()
	// carol's dislike landed on the server first
	server := resolve(t, initial, "carol", engagement.Dislike())
	server = resolve(t, server, "bob", engagement.Like())
	transport := &stubTransport{state: server}

	m, _ := New("post-1", "bob", initial, transport)
	p, err := m.Apply(context.Background(), engagement.Like())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p.Guess.Dislikes != 0 {
		t.Fatalf("guess should not know about carol: %+v", p.Guess)
	}
	got := m.State()
	if !got.Equal(server) || got.Dislikes != 1 {
		t.Fatalf("mirror must converge to the server state, got %+v", got)
	}
}

func TestMirror_RollbackOnStorageUnavailable(t *testing.T) {
	initial := resolve(t, engagement.NewState(), "bob", engagement.React(engagement.ReactionHitHard))
	transport := &stubTransport{err: fmt.Errorf("commit: %w", repository.ErrStorageUnavailable)}

	m, _ := New("post-1", "bob", initial, transport)
	var rendered []engagement.State
	m.OnChange(func(s engagement.State) { rendered = append(rendered, s) })

	p, err := m.Apply(context.Background(), engagement.Dislike())
	if !errors.Is(err, repository.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if p.Phase != PhaseRolledBack || !errors.Is(p.Err, repository.ErrStorageUnavailable) {
		t.Fatalf("unexpected pending record: %+v", p)
	}
	if !m.State().Equal(initial) {
		t.Fatalf("final state must equal the pre-action snapshot, got %+v", m.State())
	}
	if m.State().Equal(p.Guess) {
		t.Fatalf("final state must not be the optimistic guess")
	}
	if len(rendered) != 2 || rendered[0].Dislikes != 1 || !rendered[1].Equal(initial) {
		t.Fatalf("expected guess then rollback renders, got %+v", rendered)
	}
	if len(transport.calls) != 1 {
		t.Fatalf("mirror must not retry, got %v", transport.calls)
	}
}

func TestMirror_RejectsInvalidKindLocally(t *testing.T) {
	transport := &stubTransport{}
	m, _ := New("post-1", "bob", engagement.NewState(), transport)
	var renders int
	m.OnChange(func(engagement.State) { renders++ })

	p, err := m.Apply(context.Background(), engagement.React("party"))
	if !errors.Is(err, engagement.ErrInvalidReactionKind) {
		t.Fatalf("expected ErrInvalidReactionKind, got %v", err)
	}
	if p != nil || len(transport.calls) != 0 || renders != 0 {
		t.Fatalf("invalid kind must not reach transport or render: p=%v calls=%v renders=%d", p, transport.calls, renders)
	}
}

func TestMirror_BeginSettle(t *testing.T) {
	initial := engagement.NewState()
	m, _ := New("post-1", "bob", initial, &stubTransport{})

	first, err := m.Begin(engagement.Like())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if first.Phase != PhasePending || !m.State().Equal(first.Guess) {
		t.Fatalf("begin should render the guess")
	}

	second, _ := m.Begin(engagement.React(engagement.ReactionThankYou))
	if second.ID == first.ID {
		t.Fatalf("pending ids must be unique")
	}

	// second settles first with a server view that already includes
	// another user's dislike
	afterSecond := resolve(t, initial, "bob", engagement.React(engagement.ReactionThankYou))
	server := resolve(t, afterSecond, "carol", engagement.Dislike())
	if err := m.Settle(second, server, nil); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if !m.State().Equal(server) || second.Phase != PhaseConfirmed {
		t.Fatalf("second should be confirmed with the server state")
	}

	// first then fails: the view returns to the state held right before
	// first was begun, not to the newer confirmed state
	if err := m.Settle(first, engagement.State{}, repository.ErrStorageUnavailable); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if !m.State().Equal(first.Snapshot) || !first.Snapshot.Equal(initial) {
		t.Fatalf("expected the pre-action snapshot, got %+v", m.State())
	}
	if first.Phase != PhaseRolledBack || !errors.Is(first.Err, repository.ErrStorageUnavailable) {
		t.Fatalf("first should be rolled back with its error: %+v", first)
	}

	if err := m.Settle(second, server, nil); !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled, got %v", err)
	}
	if err := m.Settle(nil, server, nil); !errors.Is(err, engagement.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction for nil pending, got %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name      string
		postID    post.ID
		actor     engagement.ActorID
		transport Transport
		want      error
	}{
		{name: "missing post", actor: "bob", transport: &stubTransport{}, want: ErrMissingPost},
		{name: "missing actor", postID: "p", transport: &stubTransport{}, want: engagement.ErrEmptyActor},
		{name: "missing transport", postID: "p", actor: "bob", want: ErrMissingTransport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.postID, tc.actor, engagement.NewState(), tc.transport); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPhase_String(t *testing.T) {
	if PhaseRolledBack.String() != "rolled_back" || Phase(9).String() != "phase(9)" {
		t.Fatalf("unexpected phase names")
	}
}
