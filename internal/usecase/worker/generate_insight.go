package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/llm"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"

	"github.com/rs/zerolog/log"
)

// maxRequeues is how often a job is put back after the LLM was unavailable.
const maxRequeues = 1

var (
	// ErrRequeued reports that the LLM was unavailable and the job was put back.
	ErrRequeued = errors.New("generate_insight: llm unavailable, job requeued")
	// ErrRequeueFailed reports that the job could not be put back.
	ErrRequeueFailed = errors.New("generate_insight: failed to requeue job")
)

/**
 * Generates the "lesson learned" insight for one post.
 * postRepo: post repository (only insight fields are written)
 * llm: formatter that generates and validates the insight
 * jobQueue: queue used to put a job back once when the LLM is down
 */
type GenerateInsightUsecase struct {
	postRepo repository.PostRepository
	llm      llm.Formatter
	jobQueue queue.JobQueue

	mu       sync.Mutex
	requeues map[post.ID]int
}

func NewGenerateInsightUsecase(
	postRepo repository.PostRepository,
	llmFormatter llm.Formatter,
	jobQueue queue.JobQueue,
) *GenerateInsightUsecase {
	return &GenerateInsightUsecase{
		postRepo: postRepo,
		llm:      llmFormatter,
		jobQueue: jobQueue,
		requeues: make(map[post.ID]int),
	}
}

/**
 * Loads the post, skips it unless the insight is pending, then stores a
 * verified insight or a rejection reason.
 */
func (u *GenerateInsightUsecase) Execute(ctx context.Context, postID post.ID) error {
	p, err := u.postRepo.Get(ctx, postID)
	if err != nil {
		return fmt.Errorf("load post %s: %w", postID, err)
	}
	if !p.IsPending() {
		log.Debug().Str("postID", string(postID)).Msg("Insight already settled, skipping")
		u.forget(postID)
		return nil
	}

	result, err := u.llm.Format(ctx, &llm.FormatRequest{PostID: p.ID(), Content: p.Content()})
	switch {
	case errors.Is(err, llm.ErrFormatterUnavailable):
		return u.requeue(ctx, postID, err)
	case errors.Is(err, llm.ErrInvalidFormat):
		return u.reject(ctx, p, "model returned no usable text")
	case err != nil:
		return fmt.Errorf("format insight: %w", err)
	}

	validated, err := u.llm.Validate(ctx, result)
	if validated != nil && validated.Status == post.InsightRejected {
		return u.reject(ctx, p, validated.ValidationReason)
	}
	if err != nil {
		return fmt.Errorf("validate insight: %w", err)
	}
	if validated == nil {
		return fmt.Errorf("validate insight: %w", llm.ErrInvalidFormat)
	}

	if err := p.MarkInsightVerified(validated.Insight); err != nil {
		return err
	}
	if err := u.postRepo.UpdateInsight(ctx, p.ID(), p.Insight()); err != nil {
		return fmt.Errorf("store insight: %w", err)
	}
	u.forget(postID)
	return nil
}

func (u *GenerateInsightUsecase) reject(ctx context.Context, p *post.Post, reason string) error {
	if err := p.MarkInsightRejected(reason); err != nil {
		return err
	}
	if err := u.postRepo.UpdateInsight(ctx, p.ID(), p.Insight()); err != nil {
		return fmt.Errorf("store rejected insight: %w", err)
	}
	u.forget(p.ID())
	log.Info().Str("postID", string(p.ID())).Str("reason", reason).Msg("Insight rejected")
	return nil
}

// requeue puts the job back once. After that the post stays pending and
// the formatter error is returned.
func (u *GenerateInsightUsecase) requeue(ctx context.Context, postID post.ID, cause error) error {
	u.mu.Lock()
	attempts := u.requeues[postID]
	if attempts >= maxRequeues {
		delete(u.requeues, postID)
		u.mu.Unlock()
		return cause
	}
	u.requeues[postID] = attempts + 1
	u.mu.Unlock()

	if u.jobQueue == nil {
		return fmt.Errorf("%w: no job queue: %v", ErrRequeueFailed, cause)
	}
	if err := u.jobQueue.EnqueueInsight(ctx, postID); err != nil {
		return fmt.Errorf("%w: %w (cause: %v)", ErrRequeueFailed, err, cause)
	}
	return fmt.Errorf("%w: %v", ErrRequeued, cause)
}

func (u *GenerateInsightUsecase) forget(postID post.ID) {
	u.mu.Lock()
	delete(u.requeues, postID)
	u.mu.Unlock()
}
