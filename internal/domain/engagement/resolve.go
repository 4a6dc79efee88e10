package engagement

/**
 * Resolve computes the next engagement state when actor performs action.
 *
 * Likes, dislikes and reactions are mutually exclusive per actor:
 *  - repeating the membership the actor already holds removes it (toggle off)
 *  - any other action evicts the actor from its current set and adds it to
 *    the requested one
 * Counts are recomputed from member lists afterwards.
 *
 * Resolve is pure: current is never modified and equal inputs always give
 * equal outputs, so the client mirror and the server agree on the result.
 * An invalid action returns current unchanged together with the error.
 */
func Resolve(current State, actor ActorID, action Action) (State, error) {
	if actor == "" {
		return current, ErrEmptyActor
	}
	if err := action.Validate(); err != nil {
		return current, err
	}
	action = action.normalized()

	next := current.Normalize()
	toggleOff := next.Has(actor, action)

	// Corrupted data can list the actor in several sets; evicting from all
	// of them restores exclusivity.
	next = next.without(actor)
	if !toggleOff {
		next = next.with(actor, action)
	}
	return next.recount(), nil
}
