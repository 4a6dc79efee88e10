package testutil

import (
	"context"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/llm"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
)

// StubPostRepository serves posts from a map and records insight writes.
type StubPostRepository struct {
	Store            map[post.ID]*post.Post
	GetErr           error
	UpdateErr        error
	UpdatedInsight   *post.Insight
	EngagementWrites int
}

/**
 * Returns a stub holding p when it is not nil.
 */
func NewStubPostRepository(p *post.Post) *StubPostRepository {
	store := make(map[post.ID]*post.Post)
	if p != nil {
		store[p.ID()] = p
	}
	return &StubPostRepository{Store: store}
}

func (r *StubPostRepository) Create(ctx context.Context, p *post.Post) error {
	r.Store[p.ID()] = p
	return nil
}

func (r *StubPostRepository) Get(ctx context.Context, id post.ID) (*post.Post, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	p, ok := r.Store[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	restored, err := post.Restore(p.Snapshot())
	if err != nil {
		return nil, err
	}
	return restored, nil
}

func (r *StubPostRepository) ListRecent(ctx context.Context, limit int) ([]*post.Post, error) {
	return nil, nil
}

func (r *StubPostRepository) CommitEngagement(ctx context.Context, id post.ID, state engagement.State) error {
	r.EngagementWrites++
	return nil
}

func (r *StubPostRepository) UpdateContent(ctx context.Context, id post.ID, content string) error {
	return nil
}

func (r *StubPostRepository) AppendComment(ctx context.Context, id post.ID, c post.Comment) error {
	return nil
}

func (r *StubPostRepository) IncrementShares(ctx context.Context, id post.ID) error {
	return nil
}

/**
 * Remembers the insight and applies it to the stored post.
 */
func (r *StubPostRepository) UpdateInsight(ctx context.Context, id post.ID, insight post.Insight) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.UpdatedInsight = &insight
	if p, ok := r.Store[id]; ok {
		s := p.Snapshot()
		s.Insight = insight
		if restored, err := post.Restore(s); err == nil {
			r.Store[id] = restored
		}
	}
	return nil
}

var _ repository.PostRepository = (*StubPostRepository)(nil)

// StubFormatter returns canned format and validate results.
type StubFormatter struct {
	FormatResult   *llm.FormatResult
	FormatErr      error
	ValidateResult *llm.FormatResult
	ValidateErr    error
	FormatCalls    int
}

func (f *StubFormatter) Format(ctx context.Context, req *llm.FormatRequest) (*llm.FormatResult, error) {
	f.FormatCalls++
	if f.FormatErr != nil {
		return nil, f.FormatErr
	}
	return f.FormatResult, nil
}

func (f *StubFormatter) Validate(ctx context.Context, result *llm.FormatResult) (*llm.FormatResult, error) {
	return f.ValidateResult, f.ValidateErr
}

var _ llm.Formatter = (*StubFormatter)(nil)

// StubJobQueue records enqueued ids.
type StubJobQueue struct {
	Enqueued   []post.ID
	EnqueueErr error
}

func (q *StubJobQueue) EnqueueInsight(ctx context.Context, id post.ID) error {
	if q.EnqueueErr != nil {
		return q.EnqueueErr
	}
	q.Enqueued = append(q.Enqueued, id)
	return nil
}

func (q *StubJobQueue) DequeueInsight(ctx context.Context) (post.ID, error) {
	return "", queue.ErrQueueClosed
}

func (q *StubJobQueue) Close() error {
	return nil
}

var _ queue.JobQueue = (*StubJobQueue)(nil)
