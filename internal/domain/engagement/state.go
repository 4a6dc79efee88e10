package engagement

// Bucket is one reaction kind's tally.
type Bucket struct {
	Count int
	Users []ActorID
}

// State is the engagement sub-state of a post: likes, dislikes and the
// five reaction buckets. Each actor belongs to at most one of them and
// every count equals the size of its member list once normalised.
type State struct {
	Likes      int
	LikedBy    []ActorID
	Dislikes   int
	DislikedBy []ActorID
	Reactions  map[ReactionKind]Bucket
}

// NewState returns the engagement of a freshly created post.
func NewState() State {
	s := State{
		LikedBy:    []ActorID{},
		DislikedBy: []ActorID{},
		Reactions:  make(map[ReactionKind]Bucket, len(reactionKinds)),
	}
	for _, kind := range reactionKinds {
		s.Reactions[kind] = Bucket{Users: []ActorID{}}
	}
	return s
}

// Normalize returns a deep copy of s with duplicate and blank members
// removed, every known reaction kind present, unknown kinds dropped and
// all counts recomputed from their member lists. Stored counters are
// never trusted, so a corrupted or negative count cannot survive.
func (s State) Normalize() State {
	out := State{
		LikedBy:    uniqueActors(s.LikedBy),
		DislikedBy: uniqueActors(s.DislikedBy),
		Reactions:  make(map[ReactionKind]Bucket, len(reactionKinds)),
	}
	for _, kind := range reactionKinds {
		out.Reactions[kind] = Bucket{Users: uniqueActors(s.Reactions[kind].Users)}
	}
	return out.recount()
}

// Reaction returns the bucket for kind, or an empty bucket.
func (s State) Reaction(kind ReactionKind) Bucket {
	b, ok := s.Reactions[kind]
	if !ok {
		return Bucket{Users: []ActorID{}}
	}
	return b
}

// MembershipOf returns the set actor currently belongs to, checking likes,
// dislikes and then reactions in canonical order.
func (s State) MembershipOf(actor ActorID) (Action, bool) {
	held := s.membershipsOf(actor)
	if len(held) == 0 {
		return Action{}, false
	}
	return held[0], true
}

// Has reports whether actor currently holds membership a.
func (s State) Has(actor ActorID, a Action) bool {
	for _, held := range s.membershipsOf(actor) {
		if held == a.normalized() {
			return true
		}
	}
	return false
}

// Equal compares two states by counts and member sets, ignoring order.
func (s State) Equal(other State) bool {
	if s.Likes != other.Likes || s.Dislikes != other.Dislikes {
		return false
	}
	if !sameActors(s.LikedBy, other.LikedBy) || !sameActors(s.DislikedBy, other.DislikedBy) {
		return false
	}
	for _, kind := range reactionKinds {
		a, b := s.Reaction(kind), other.Reaction(kind)
		if a.Count != b.Count || !sameActors(a.Users, b.Users) {
			return false
		}
	}
	return true
}

// membershipsOf lists every set holding actor. A well-formed state yields
// at most one entry; stored data may violate that.
func (s State) membershipsOf(actor ActorID) []Action {
	var held []Action
	if containsActor(s.LikedBy, actor) {
		held = append(held, Like())
	}
	if containsActor(s.DislikedBy, actor) {
		held = append(held, Dislike())
	}
	for _, kind := range reactionKinds {
		if containsActor(s.Reactions[kind].Users, actor) {
			held = append(held, React(kind))
		}
	}
	return held
}

// without removes actor from every set. s must own its slices.
func (s State) without(actor ActorID) State {
	s.LikedBy = removeActor(s.LikedBy, actor)
	s.DislikedBy = removeActor(s.DislikedBy, actor)
	for kind, b := range s.Reactions {
		b.Users = removeActor(b.Users, actor)
		s.Reactions[kind] = b
	}
	return s
}

// with adds actor to the set named by a. s must own its slices.
func (s State) with(actor ActorID, a Action) State {
	switch a.Type {
	case ActionLike:
		s.LikedBy = append(s.LikedBy, actor)
	case ActionDislike:
		s.DislikedBy = append(s.DislikedBy, actor)
	case ActionReact:
		b := s.Reactions[a.Kind]
		b.Users = append(b.Users, actor)
		s.Reactions[a.Kind] = b
	}
	return s
}

func (s State) recount() State {
	s.Likes = len(s.LikedBy)
	s.Dislikes = len(s.DislikedBy)
	for kind, b := range s.Reactions {
		b.Count = len(b.Users)
		s.Reactions[kind] = b
	}
	return s
}

func uniqueActors(in []ActorID) []ActorID {
	out := make([]ActorID, 0, len(in))
	seen := make(map[ActorID]struct{}, len(in))
	for _, id := range in {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func containsActor(list []ActorID, actor ActorID) bool {
	for _, id := range list {
		if id == actor {
			return true
		}
	}
	return false
}

func removeActor(list []ActorID, actor ActorID) []ActorID {
	out := list[:0]
	for _, id := range list {
		if id != actor {
			out = append(out, id)
		}
	}
	return out
}

func sameActors(a, b []ActorID) bool {
	ua, ub := uniqueActors(a), uniqueActors(b)
	if len(ua) != len(ub) {
		return false
	}
	for _, id := range ua {
		if !containsActor(ub, id) {
			return false
		}
	}
	return true
}
