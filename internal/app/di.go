package app

import (
	"context"
	"fmt"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/http/handler"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/queue"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
	authusecase "github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/auth"
	engagementusecase "github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/engagement"
	postusecase "github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/worker"

	"github.com/rs/zerolog/log"
)

var infraFactory = NewInfra

// Container holds the API's dependencies. cmd/api owns its lifecycle.
type Container struct {
	Infra             *Infra
	PostRepo          repository.PostRepository
	JobQueue          queue.JobQueue
	Gate              *authusecase.Gate
	EngagementHandler *handler.EngagementHandler
	PostHandler       *handler.PostHandler
	// Insight is set when jobs stay in this process and must be run here.
	Insight        *worker.GenerateInsightUsecase
	closeFormatter func() error
}

/**
 * Wires storage, identity provider, job queue and usecases from the
 * environment. cfg.EditWindow is how long authors may edit new posts.
 */
func NewContainer(ctx context.Context, cfg *config.ServerConfig) (*Container, error) {
	if cfg == nil {
		cfg = &config.ServerConfig{}
	}
	infra, err := infraFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("init infra: %w", err)
	}
	c := &Container{Infra: infra}

	if err := c.wire(ctx, cfg); err != nil {
		if cerr := c.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Cleanup after failed wiring")
		}
		return nil, err
	}
	return c, nil
}

func (c *Container) wire(ctx context.Context, cfg *config.ServerConfig) error {
	repoBackend, err := config.LoadPostRepositoryBackend()
	if err != nil {
		return err
	}
	c.PostRepo, err = postRepositoryFactory(c.Infra, repoBackend)
	if err != nil {
		return err
	}

	authCfg, err := config.LoadAuthConfigFromEnv()
	if err != nil {
		return err
	}
	verifier, err := verifierFactory(ctx, c.Infra, authCfg)
	if err != nil {
		return err
	}
	c.Gate, err = authusecase.NewGate(verifier)
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
	if queueBackend == config.BackendMemory {
		c.wireInlineWorker(ctx)
	}

	react, err := engagementusecase.NewReactUsecase(c.PostRepo)
	if err != nil {
		return err
	}
	c.EngagementHandler = handler.NewEngagementHandler(react)
	c.PostHandler = handler.NewPostHandler(handler.PostUsecases{
		Create:  postusecase.NewCreatePostUsecase(c.PostRepo, c.JobQueue, cfg.EditWindow),
		Get:     postusecase.NewGetPostUsecase(c.PostRepo),
		List:    postusecase.NewListFeedUsecase(c.PostRepo),
		Edit:    postusecase.NewEditPostUsecase(c.PostRepo),
		Comment: postusecase.NewAddCommentUsecase(c.PostRepo),
		Share:   postusecase.NewSharePostUsecase(c.PostRepo),
	})
	return nil
}

// wireInlineWorker prepares the insight worker for the memory queue. Without
// an LLM the queue is dropped and posts keep a pending insight.
func (c *Container) wireInlineWorker(ctx context.Context) {
	formatter, closeFormatter, err := formatterFactory(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Insight generation disabled")
		if cerr := c.JobQueue.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Close unused job queue")
		}
		c.JobQueue = nil
		return
	}
	c.closeFormatter = closeFormatter
	c.Insight = worker.NewGenerateInsightUsecase(c.PostRepo, formatter, c.JobQueue)
}

// Close releases everything NewContainer opened. The first error wins.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var retErr error
	retErr = mergeCloseError(retErr, "formatter", c.closeFormatter)
	if c.JobQueue != nil {
		retErr = mergeCloseError(retErr, "job queue", c.JobQueue.Close)
	}
	if c.Infra != nil {
		retErr = mergeCloseError(retErr, "infra", c.Infra.Close)
	}
	return retErr
}
