package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/app"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/logging"
	usecaseworker "github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/worker"

	"github.com/rs/zerolog/log"
)

var (
	newWorkerContainer = app.NewWorkerContainer
	runLoop            = usecaseworker.Run
)

/**
 * Wires the worker and processes insight jobs until a stop signal arrives.
 */
func main() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Worker failed")
	}
}

func run(ctx context.Context) error {
	logCfg, err := config.LoadLogConfigFromEnv()
	if err != nil {
		return err
	}
	if err := logging.Setup(logCfg); err != nil {
		return err
	}

	container, err := newWorkerContainer(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := container.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Worker shutdown error")
		}
	}()

	log.Info().Msg("Insight worker started")
	runLoop(ctx, container.JobQueue, container.Insight)
	return nil
}
