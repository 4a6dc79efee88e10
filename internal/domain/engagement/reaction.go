package engagement

import (
	"errors"
	"strings"
)

// ReactionKind is one of the five emoji reactions a post accepts.
// Values outside the constants below are rejected by ParseReactionKind.
type ReactionKind string

const (
	ReactionHitHard     ReactionKind = "hit_hard"
	ReactionSendingLove ReactionKind = "sending_love"
	ReactionDeepInsight ReactionKind = "deep_insight"
	ReactionThankYou    ReactionKind = "thank_you"
	ReactionBeenThere   ReactionKind = "been_there"
)

// ErrInvalidReactionKind is returned for any kind outside the fixed set.
var ErrInvalidReactionKind = errors.New("engagement: invalid reaction kind")

// reactionKinds fixes the canonical order used for iteration and output.
var reactionKinds = [...]ReactionKind{
	ReactionHitHard,
	ReactionSendingLove,
	ReactionDeepInsight,
	ReactionThankYou,
	ReactionBeenThere,
}

// ReactionKinds returns every accepted kind in canonical order.
func ReactionKinds() []ReactionKind {
	kinds := make([]ReactionKind, len(reactionKinds))
	copy(kinds, reactionKinds[:])
	return kinds
}

// ParseReactionKind converts raw input into a ReactionKind.
// Surrounding whitespace is ignored; matching is case-sensitive.
func ParseReactionKind(raw string) (ReactionKind, error) {
	kind := ReactionKind(strings.TrimSpace(raw))
	if !kind.Valid() {
		return "", ErrInvalidReactionKind
	}
	return kind, nil
}

// Valid reports whether k is one of the five accepted kinds.
func (k ReactionKind) Valid() bool {
	for _, known := range reactionKinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k ReactionKind) String() string {
	return string(k)
}
