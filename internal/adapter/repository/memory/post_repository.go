package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
)

// InMemoryPostRepository keeps posts in process memory. It stores
// snapshots, so callers never share state with the store. Like the
// Firestore repository it applies engagement commits last-writer-wins.
type InMemoryPostRepository struct {
	mu    sync.RWMutex
	store map[post.ID]post.Snapshot
}

/**
 * Returns a repository with an initialised map.
 */
func NewInMemoryPostRepository() *InMemoryPostRepository {
	return &InMemoryPostRepository{
		store: make(map[post.ID]post.Snapshot),
	}
}

/**
 * Stores p when its id is unused, otherwise reports a duplicate.
 */
func (r *InMemoryPostRepository) Create(ctx context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[p.ID()]; ok {
		return repository.ErrPostAlreadyExists
	}
	r.store[p.ID()] = p.Snapshot()
	return nil
}

/**
 * Looks up by id and rebuilds a fresh Post, NotFound when missing.
 */
func (r *InMemoryPostRepository) Get(ctx context.Context, id post.ID) (*post.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.store[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return post.Restore(s)
}

func (r *InMemoryPostRepository) ListRecent(ctx context.Context, limit int) ([]*post.Post, error) {
	r.mu.RLock()
	snapshots := make([]post.Snapshot, 0, len(r.store))
	for _, s := range r.store {
		snapshots = append(snapshots, s)
	}
	r.mu.RUnlock()

	// newest first, ties by id
	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].ID < snapshots[j].ID
		}
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}

	posts := make([]*post.Post, 0, len(snapshots))
	for _, s := range snapshots {
		p, err := post.Restore(s)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

/**
 * Replaces the engagement fields wholesale. No merge, no version check.
 */
func (r *InMemoryPostRepository) CommitEngagement(ctx context.Context, id post.ID, state engagement.State) error {
	return r.mutate(id, func(s *post.Snapshot) {
		s.Engagement = state.Normalize()
	})
}

func (r *InMemoryPostRepository) UpdateContent(ctx context.Context, id post.ID, content string) error {
	return r.mutate(id, func(s *post.Snapshot) {
		s.Content = content
	})
}

func (r *InMemoryPostRepository) AppendComment(ctx context.Context, id post.ID, c post.Comment) error {
	return r.mutate(id, func(s *post.Snapshot) {
		s.Comments = append(append([]post.Comment{}, s.Comments...), c)
	})
}

func (r *InMemoryPostRepository) IncrementShares(ctx context.Context, id post.ID) error {
	return r.mutate(id, func(s *post.Snapshot) {
		s.Shares++
	})
}

func (r *InMemoryPostRepository) UpdateInsight(ctx context.Context, id post.ID, insight post.Insight) error {
	return r.mutate(id, func(s *post.Snapshot) {
		s.Insight = insight
	})
}

/**
 * Applies fn to an existing entry only, NotFound when missing.
 */
func (r *InMemoryPostRepository) mutate(id post.ID, fn func(*post.Snapshot)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.store[id]
	if !ok {
		return repository.ErrPostNotFound
	}
	fn(&s)
	r.store[id] = s
	return nil
}

var _ repository.PostRepository = (*InMemoryPostRepository)(nil)
