package app

import (
	"context"
	"fmt"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/llm"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/worker"

	"github.com/rs/zerolog/log"
)

// WorkerContainer holds what cmd/worker needs.
type WorkerContainer struct {
	Infra          *Infra
	PostRepo       repository.PostRepository
	JobQueue       queue.JobQueue
	Formatter      llm.Formatter
	Insight        *worker.GenerateInsightUsecase
	closeFormatter func() error
	closeInfra     func() error
}

var seedPostsFunc = seedPosts
var samplePostFactory = func() (*post.Post, error) {
	return post.New("post-local", "local-author",
		"Pitched my startup to ten investors and every single one said no.", time.Now(), 0)
}

/**
 * Prepares infra, repository, queue and LLM for the worker. With the
 * memory repository a sample post is seeded and queued so a local run
 * has something to process.
 */
func NewWorkerContainer(ctx context.Context) (*WorkerContainer, error) {
	infra, err := infraFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("init infra: %w", err)
	}
	container := &WorkerContainer{Infra: infra}
	if infra != nil {
		container.closeInfra = infra.Close
	}

	if err := container.wire(ctx); err != nil {
		if cerr := container.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Cleanup after failed wiring")
		}
		return nil, err
	}
	return container, nil
}

func (c *WorkerContainer) wire(ctx context.Context) error {
	repoBackend, err := config.LoadPostRepositoryBackend()
	if err != nil {
		return err
	}
	c.PostRepo, err = postRepositoryFactory(c.Infra, repoBackend)
	if err != nil {
		return err
	}

	queueBackend, err := config.LoadJobQueueBackend()
	if err != nil {
		return err
	}
	c.JobQueue, err = jobQueueFactory(c.Infra, queueBackend)
	if err != nil {
		return err
	}

	c.Formatter, c.closeFormatter, err = formatterFactory(ctx)
	if err != nil {
		return fmt.Errorf("init formatter: %w", err)
	}

	if repoBackend == config.BackendMemory {
		id, err := seedPostsFunc(ctx, c.PostRepo)
		if err != nil {
			return fmt.Errorf("seed posts: %w", err)
		}
		if err := c.JobQueue.EnqueueInsight(ctx, id); err != nil {
			log.Warn().Err(err).Str("postID", string(id)).Msg("Seed enqueue failed")
		}
	}

	c.Insight = worker.NewGenerateInsightUsecase(c.PostRepo, c.Formatter, c.JobQueue)
	return nil
}

// Close releases resources in reverse order of creation.
func (c *WorkerContainer) Close() error {
	if c == nil {
		return nil
	}
	var retErr error
	retErr = mergeCloseError(retErr, "formatter", c.closeFormatter)
	if c.JobQueue != nil {
		retErr = mergeCloseError(retErr, "job queue", c.JobQueue.Close)
	}
	return mergeCloseError(retErr, "infra", c.closeInfra)
}

// seedPosts stores the sample post and returns its id.
func seedPosts(ctx context.Context, repo repository.PostRepository) (post.ID, error) {
	sample, err := samplePostFactory()
	if err != nil {
		return "", err
	}
	if err := repo.Create(ctx, sample); err != nil {
		return "", err
	}
	return sample.ID(), nil
}

func mergeCloseError(current error, label string, fn func() error) error {
	if fn == nil {
		return current
	}
	if err := fn(); err != nil {
		log.Warn().Err(err).Str("resource", label).Msg("Close failed")
		if current == nil {
			return err
		}
	}
	return current
}
