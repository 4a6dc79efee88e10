// Package api holds the JSON shapes shared by the HTTP handlers and the
// HTTP client.
package api

import (
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
)

// Envelope wraps every response body.
type Envelope[T any] struct {
	Success bool    `json:"success"`
	Data    *T      `json:"data"`
	Error   *string `json:"error"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: &data}
}

// MessageInvalidReactionKind is the error text of a 400 caused by an
// unknown reaction kind. Clients match on it to tell it from other 400s.
const MessageInvalidReactionKind = "invalid reaction kind"

// Fail builds an error envelope.
func Fail(message string) Envelope[struct{}] {
	return Envelope[struct{}]{Success: false, Error: &message}
}

type Reaction struct {
	Count int      `json:"count"`
	Users []string `json:"users"`
}

// EngagementState is the wire form of engagement.State.
type EngagementState struct {
	Likes      int                 `json:"likes"`
	LikedBy    []string            `json:"likedBy"`
	Dislikes   int                 `json:"dislikes"`
	DislikedBy []string            `json:"dislikedBy"`
	Reactions  map[string]Reaction `json:"reactions"`
}

// NewEngagementState converts s, listing every reaction kind.
func NewEngagementState(s engagement.State) EngagementState {
	s = s.Normalize()
	out := EngagementState{
		Likes:      s.Likes,
		LikedBy:    actorStrings(s.LikedBy),
		Dislikes:   s.Dislikes,
		DislikedBy: actorStrings(s.DislikedBy),
		Reactions:  make(map[string]Reaction, len(s.Reactions)),
	}
	for _, kind := range engagement.ReactionKinds() {
		b := s.Reaction(kind)
		out.Reactions[string(kind)] = Reaction{Count: b.Count, Users: actorStrings(b.Users)}
	}
	return out
}

// Domain converts the wire form back. Unknown reaction kinds are dropped.
func (e EngagementState) Domain() engagement.State {
	s := engagement.State{
		Likes:      e.Likes,
		LikedBy:    actorIDs(e.LikedBy),
		Dislikes:   e.Dislikes,
		DislikedBy: actorIDs(e.DislikedBy),
		Reactions:  make(map[engagement.ReactionKind]engagement.Bucket, len(e.Reactions)),
	}
	for raw, r := range e.Reactions {
		kind, err := engagement.ParseReactionKind(raw)
		if err != nil {
			continue
		}
		s.Reactions[kind] = engagement.Bucket{Count: r.Count, Users: actorIDs(r.Users)}
	}
	return s.Normalize()
}

// ReactRequest is the body of POST /posts/:id/react.
type ReactRequest struct {
	ReactionKind string `json:"reactionKind"`
}

// ContentRequest is the body of POST /posts and PATCH /posts/:id.
type ContentRequest struct {
	Content string `json:"content"`
}

// CommentRequest is the body of POST /posts/:id/comments.
type CommentRequest struct {
	Text string `json:"text"`
}

type Comment struct {
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type Insight struct {
	Text   string `json:"text,omitempty"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Post is the wire form of a post.
type Post struct {
	ID            string          `json:"id"`
	Content       string          `json:"content"`
	UserID        string          `json:"userId"`
	Timestamp     time.Time       `json:"timestamp"`
	EditableUntil time.Time       `json:"editableUntil"`
	Engagement    EngagementState `json:"engagement"`
	Comments      []Comment       `json:"comments"`
	Shares        int             `json:"shares"`
	Insight       Insight         `json:"insight"`
}

func NewPost(s post.Snapshot) Post {
	return Post{
		ID:            string(s.ID),
		Content:       s.Content,
		UserID:        string(s.AuthorID),
		Timestamp:     s.CreatedAt,
		EditableUntil: s.EditableUntil,
		Engagement:    NewEngagementState(s.Engagement),
		Comments:      NewComments(s.Comments),
		Shares:        s.Shares,
		Insight: Insight{
			Text:   s.Insight.Text,
			Status: string(s.Insight.Status),
			Reason: s.Insight.Reason,
		},
	}
}

func NewComments(comments []post.Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, Comment{UserID: string(c.UserID), Text: c.Text, Timestamp: c.CreatedAt})
	}
	return out
}

// ShareResult is returned by POST /posts/:id/share.
type ShareResult struct {
	Shares int `json:"shares"`
}

func actorStrings(ids []engagement.ActorID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

func actorIDs(raw []string) []engagement.ActorID {
	out := make([]engagement.ActorID, 0, len(raw))
	for _, id := range raw {
		out = append(out, engagement.ActorID(id))
	}
	return out
}
