package worker

import (
	"context"
	"errors"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// dequeueBackoff is the pause after an unexpected dequeue error.
var dequeueBackoff = 500 * time.Millisecond

// InsightExecutor processes one insight job.
type InsightExecutor interface {
	Execute(ctx context.Context, postID post.ID) error
}

/**
 * Run takes jobs off the queue one at a time until ctx is cancelled or
 * the queue is closed. Job failures are logged and never stop the loop.
 */
func Run(ctx context.Context, jobs queue.JobQueue, executor InsightExecutor) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Err(ctx.Err()).Msg("Insight worker shutting down")
			return
		default:
		}

		postID, err := jobs.DequeueInsight(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded) ||
				errors.Is(err, queue.ErrQueueClosed) ||
				errors.Is(err, queue.ErrContextClosed) {
				log.Info().Err(err).Msg("Insight worker stopped")
				return
			}
			log.Warn().Err(err).Msg("Dequeue failed, retrying")
			select {
			case <-ctx.Done():
			case <-time.After(dequeueBackoff):
			}
			continue
		}

		if err := executor.Execute(ctx, postID); err != nil {
			// a requeued job will be retried, anything else is final
			level := zerolog.ErrorLevel
			if errors.Is(err, ErrRequeued) {
				level = zerolog.WarnLevel
			}
			log.WithLevel(level).Err(err).Str("postID", string(postID)).Msg("Insight job failed")
			continue
		}
		log.Info().Str("postID", string(postID)).Msg("Insight job done")
	}
}
