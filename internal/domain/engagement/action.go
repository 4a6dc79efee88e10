package engagement

import (
	"errors"
	"fmt"
)

// ActorID identifies the authenticated user performing an action.
type ActorID string

// ActionType is the broad category of an engagement action.
type ActionType string

const (
	ActionLike    ActionType = "like"
	ActionDislike ActionType = "dislike"
	ActionReact   ActionType = "react"
)

var (
	// ErrInvalidAction is returned when the action type is unknown.
	ErrInvalidAction = errors.New("engagement: invalid action")
	// ErrEmptyActor is returned when no actor is supplied.
	ErrEmptyActor = errors.New("engagement: actor is empty")
)

// Action is a request to like, dislike, or react with a given kind.
// Kind is only meaningful when Type is ActionReact.
//
// An Action also describes a membership: the single set an actor
// currently belongs to.
type Action struct {
	Type ActionType
	Kind ReactionKind
}

// Like returns the like action.
func Like() Action {
	return Action{Type: ActionLike}
}

// Dislike returns the dislike action.
func Dislike() Action {
	return Action{Type: ActionDislike}
}

// React returns the reaction action for kind. The kind is not checked
// here; Validate or Resolve reject unknown kinds.
func React(kind ReactionKind) Action {
	return Action{Type: ActionReact, Kind: kind}
}

// Validate checks the action without touching any state.
func (a Action) Validate() error {
	switch a.Type {
	case ActionLike, ActionDislike:
		return nil
	case ActionReact:
		if !a.Kind.Valid() {
			return ErrInvalidReactionKind
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAction, a.Type)
	}
}

func (a Action) String() string {
	if a.Type == ActionReact {
		return fmt.Sprintf("react(%s)", a.Kind)
	}
	return string(a.Type)
}

// normalized drops a stray Kind on like/dislike so equality compares
// memberships, not incidental fields.
func (a Action) normalized() Action {
	if a.Type != ActionReact {
		a.Kind = ""
	}
	return a
}
