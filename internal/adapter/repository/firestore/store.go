package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// postsCollection holds one document per post.
const postsCollection = "posts"

// reactionDocument is one entry of the reactions map.
type reactionDocument struct {
	Count int64    `firestore:"count"`
	Users []string `firestore:"users"`
}

// commentDocument is one element of the comments array.
type commentDocument struct {
	UserID    string    `firestore:"userId"`
	Text      string    `firestore:"text"`
	Timestamp time.Time `firestore:"timestamp"`
}

// postDocument mirrors a document of the posts collection.
type postDocument struct {
	ID            string                      `firestore:"id"`
	Content       string                      `firestore:"content"`
	UserID        string                      `firestore:"userId"`
	Timestamp     time.Time                   `firestore:"timestamp"`
	EditableUntil time.Time                   `firestore:"editableUntil"`
	Likes         int64                       `firestore:"likes"`
	LikedBy       []string                    `firestore:"likedBy"`
	Dislikes      int64                       `firestore:"dislikes"`
	DislikedBy    []string                    `firestore:"dislikedBy"`
	Reactions     map[string]reactionDocument `firestore:"reactions"`
	Comments      []commentDocument           `firestore:"comments"`
	Shares        int64                       `firestore:"shares"`
	Insight       string                      `firestore:"insight"`
	InsightStatus string                      `firestore:"insightStatus"`
	InsightReason string                      `firestore:"insightReason"`
}

// documentStore is the slice of the document database the repository
// needs. ReplaceFields overwrites the named top-level fields and fails
// with ErrPostNotFound when the document is missing.
type documentStore interface {
	Create(ctx context.Context, doc postDocument) error
	Get(ctx context.Context, id string) (postDocument, error)
	ReplaceFields(ctx context.Context, id string, fields map[string]any) error
	AppendComment(ctx context.Context, id string, c commentDocument) error
	IncrementShares(ctx context.Context, id string) error
	ListRecent(ctx context.Context, limit int) ([]postDocument, error)
}

// firestoreStore implements documentStore on a Firestore client.
type firestoreStore struct {
	client *firestore.Client
}

func (s *firestoreStore) doc(id string) *firestore.DocumentRef {
	return s.client.Collection(postsCollection).Doc(id)
}

func (s *firestoreStore) Create(ctx context.Context, doc postDocument) error {
	_, err := s.doc(doc.ID).Create(ctx, doc)
	return translateError("create post document", err)
}

func (s *firestoreStore) Get(ctx context.Context, id string) (postDocument, error) {
	snap, err := s.doc(id).Get(ctx)
	if err != nil {
		return postDocument{}, translateError("get post document", err)
	}
	return decodeDocument(snap)
}

func (s *firestoreStore) ReplaceFields(ctx context.Context, id string, fields map[string]any) error {
	paths := make([]string, 0, len(fields))
	for path := range fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	updates := make([]firestore.Update, 0, len(paths)+1)
	for _, path := range paths {
		updates = append(updates, firestore.Update{Path: path, Value: fields[path]})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	// Update fails with NotFound instead of creating a partial document.
	_, err := s.doc(id).Update(ctx, updates)
	return translateError("replace post fields", err)
}

func (s *firestoreStore) AppendComment(ctx context.Context, id string, c commentDocument) error {
	_, err := s.doc(id).Update(ctx, []firestore.Update{
		{Path: "comments", Value: firestore.ArrayUnion(c)},
	})
	return translateError("append comment", err)
}

func (s *firestoreStore) IncrementShares(ctx context.Context, id string) error {
	_, err := s.doc(id).Update(ctx, []firestore.Update{
		{Path: "shares", Value: firestore.Increment(1)},
	})
	return translateError("increment shares", err)
}

func (s *firestoreStore) ListRecent(ctx context.Context, limit int) ([]postDocument, error) {
	query := s.client.Collection(postsCollection).OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []postDocument
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, translateError("iterate recent posts", err)
		}
		doc, err := decodeDocument(snap)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeDocument(snap *firestore.DocumentSnapshot) (postDocument, error) {
	var doc postDocument
	if err := snap.DataTo(&doc); err != nil {
		return postDocument{}, fmt.Errorf("decode post document: %w", err)
	}
	if doc.ID == "" && snap.Ref != nil {
		doc.ID = snap.Ref.ID
	}
	return doc, nil
}

// translateError maps gRPC status codes onto repository errors. Transient
// backend failures become ErrStorageUnavailable; nothing is retried here.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return repository.ErrPostNotFound
	case codes.AlreadyExists:
		return repository.ErrPostAlreadyExists
	// Unknown also covers errors that never reached the server, such as a
	// dropped connection, since status.Code reports them as Unknown.
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted, codes.Internal,
		codes.Unknown, codes.Canceled:
		return fmt.Errorf("%w: %s: %w", repository.ErrStorageUnavailable, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
