package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/http/handler"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/logging"
	usecaseworker "github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/worker"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runFunc(ctx); err != nil {
		fatalf("api server stopped: %v", err)
	}
}

/**
 * Loads configuration, wires the container and serves HTTP until ctx is
 * cancelled. Every service object is created and closed here.
 */
func run(ctx context.Context) error {
	logCfg, err := config.LoadLogConfigFromEnv()
	if err != nil {
		return err
	}
	if err := logging.Setup(logCfg); err != nil {
		return err
	}

	serverCfg, err := config.LoadServerConfigFromEnv()
	if err != nil {
		return err
	}
	if serverCfg.GinMode != "" {
		gin.SetMode(serverCfg.GinMode)
	}

	container, err := newContainer(ctx, serverCfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeContainer(container); cerr != nil {
			log.Warn().Err(cerr).Msg("Container shutdown error")
		}
	}()

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	if container.Insight != nil && container.JobQueue != nil {
		go usecaseworker.Run(workerCtx, container.JobQueue, container.Insight)
	}

	router := newRouter(handler.RouterConfig{CORSOrigins: serverCfg.CORSOrigins}, container)
	log.Info().Str("addr", serverCfg.Addr()).Msg("API server listening")
	return serve(ctx, serverCfg.Addr(), router)
}
