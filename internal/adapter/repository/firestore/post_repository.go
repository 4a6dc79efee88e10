package firestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	postdomain "github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"

	"cloud.google.com/go/firestore"
)

var (
	// errNilPost rejects saving a nil post.
	errNilPost = errors.New("firestorerepository: post is nil")
	// errMissingClient is returned when no Firestore client is configured.
	errMissingClient = errors.New("firestorerepository: firestore client is missing")
)

// PostRepository stores posts in Firestore.
// It is also the reaction store accessor: CommitEngagement overwrites
// the engagement fields without any precondition, last writer wins.
type PostRepository struct {
	store documentStore
}

// NewPostRepository builds a PostRepository on client.
func NewPostRepository(client *firestore.Client) (*PostRepository, error) {
	if client == nil {
		return nil, errMissingClient
	}
	return &PostRepository{store: &firestoreStore{client: client}}, nil
}

// Create stores a new post; an existing id yields ErrPostAlreadyExists.
func (r *PostRepository) Create(ctx context.Context, p *postdomain.Post) error {
	if p == nil {
		return errNilPost
	}
	return r.store.Create(ctx, toDocument(p))
}

// Get loads the post with id.
func (r *PostRepository) Get(ctx context.Context, id postdomain.ID) (*postdomain.Post, error) {
	if id == "" {
		return nil, repository.ErrPostNotFound
	}
	doc, err := r.store.Get(ctx, string(id))
	if err != nil {
		return nil, err
	}
	return restorePost(doc)
}

// ListRecent returns at most limit posts, newest first.
func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]*postdomain.Post, error) {
	docs, err := r.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	posts := make([]*postdomain.Post, 0, len(docs))
	for _, doc := range docs {
		p, err := restorePost(doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// CommitEngagement replaces likes, dislikes and reactions in one update.
func (r *PostRepository) CommitEngagement(ctx context.Context, id postdomain.ID, state engagement.State) error {
	if id == "" {
		return repository.ErrPostNotFound
	}
	return r.store.ReplaceFields(ctx, string(id), engagementFields(state))
}

func (r *PostRepository) UpdateContent(ctx context.Context, id postdomain.ID, content string) error {
	if id == "" {
		return repository.ErrPostNotFound
	}
	return r.store.ReplaceFields(ctx, string(id), map[string]any{"content": content})
}

func (r *PostRepository) AppendComment(ctx context.Context, id postdomain.ID, c postdomain.Comment) error {
	if id == "" {
		return repository.ErrPostNotFound
	}
	return r.store.AppendComment(ctx, string(id), commentDocument{
		UserID:    string(c.UserID),
		Text:      c.Text,
		Timestamp: c.CreatedAt,
	})
}

func (r *PostRepository) IncrementShares(ctx context.Context, id postdomain.ID) error {
	if id == "" {
		return repository.ErrPostNotFound
	}
	return r.store.IncrementShares(ctx, string(id))
}

func (r *PostRepository) UpdateInsight(ctx context.Context, id postdomain.ID, insight postdomain.Insight) error {
	if id == "" {
		return repository.ErrPostNotFound
	}
	return r.store.ReplaceFields(ctx, string(id), map[string]any{
		"insight":       insight.Text,
		"insightStatus": string(insight.Status),
		"insightReason": insight.Reason,
	})
}

// engagementFields builds the complete set of engagement fields to persist.
func engagementFields(state engagement.State) map[string]any {
	state = state.Normalize()
	reactions := make(map[string]reactionDocument, len(state.Reactions))
	for _, kind := range engagement.ReactionKinds() {
		b := state.Reaction(kind)
		reactions[string(kind)] = reactionDocument{
			Count: int64(b.Count),
			Users: actorStrings(b.Users),
		}
	}
	return map[string]any{
		"likes":      int64(state.Likes),
		"likedBy":    actorStrings(state.LikedBy),
		"dislikes":   int64(state.Dislikes),
		"dislikedBy": actorStrings(state.DislikedBy),
		"reactions":  reactions,
	}
}

func toDocument(p *postdomain.Post) postDocument {
	s := p.Snapshot()
	fields := engagementFields(s.Engagement)

	comments := make([]commentDocument, 0, len(s.Comments))
	for _, c := range s.Comments {
		comments = append(comments, commentDocument{UserID: string(c.UserID), Text: c.Text, Timestamp: c.CreatedAt})
	}

	return postDocument{
		ID:            string(s.ID),
		Content:       s.Content,
		UserID:        string(s.AuthorID),
		Timestamp:     s.CreatedAt,
		EditableUntil: s.EditableUntil,
		Likes:         fields["likes"].(int64),
		LikedBy:       fields["likedBy"].([]string),
		Dislikes:      fields["dislikes"].(int64),
		DislikedBy:    fields["dislikedBy"].([]string),
		Reactions:     fields["reactions"].(map[string]reactionDocument),
		Comments:      comments,
		Shares:        int64(s.Shares),
		Insight:       s.Insight.Text,
		InsightStatus: string(s.Insight.Status),
		InsightReason: s.Insight.Reason,
	}
}

// restorePost rebuilds the domain post from a stored document.
func restorePost(doc postDocument) (*postdomain.Post, error) {
	state := engagement.State{
		Likes:      int(doc.Likes),
		LikedBy:    actorIDs(doc.LikedBy),
		Dislikes:   int(doc.Dislikes),
		DislikedBy: actorIDs(doc.DislikedBy),
		Reactions:  make(map[engagement.ReactionKind]engagement.Bucket, len(doc.Reactions)),
	}
	for kind, r := range doc.Reactions {
		state.Reactions[engagement.ReactionKind(kind)] = engagement.Bucket{
			Count: int(r.Count),
			Users: actorIDs(r.Users),
		}
	}

	comments := make([]postdomain.Comment, 0, len(doc.Comments))
	for _, c := range doc.Comments {
		comments = append(comments, postdomain.Comment{
			UserID:    engagement.ActorID(c.UserID),
			Text:      c.Text,
			CreatedAt: c.Timestamp,
		})
	}

	p, err := postdomain.Restore(postdomain.Snapshot{
		ID:            postdomain.ID(doc.ID),
		Content:       doc.Content,
		AuthorID:      engagement.ActorID(doc.UserID),
		CreatedAt:     doc.Timestamp,
		EditableUntil: doc.EditableUntil,
		Engagement:    state,
		Comments:      comments,
		Shares:        int(doc.Shares),
		Insight: postdomain.Insight{
			Text:   doc.Insight,
			Status: postdomain.InsightStatus(doc.InsightStatus),
			Reason: doc.InsightReason,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("restore post: %w", err)
	}
	return p, nil
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

var _ repository.PostRepository = (*PostRepository)(nil)
