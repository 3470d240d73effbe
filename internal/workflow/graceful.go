package workflow

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rubsen49-sketch/MovieMatch/internal/log"
)

type GracefulShutdownAction func(ctx context.Context)

// Steps runs actions in order, skipping the rest once ctx expires.
func Steps(logger *log.Logger, actions ...GracefulShutdownAction) GracefulShutdownAction {
	return func(ctx context.Context) {
		for i, action := range actions {
			if ctx.Err() != nil {
				logger.Warn("skipping shutdown steps", log.Int("remaining", len(actions)-i))
				return
			}
			action(ctx)
		}
	}
}

func WaitGracefulShutdown(
	ctx context.Context,
	logger *log.Logger,
	action GracefulShutdownAction,
	timeout time.Duration,
) {
	logger.Info("Graceful shutdown handler registered")

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	runWithTimeout(logger, action, timeout)
}

func runWithTimeout(logger *log.Logger, action GracefulShutdownAction, timeout time.Duration) bool {
	ctxClean, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic during graceful shutdown", log.Any("error", r))
			}
			close(done)
		}()
		logger.Info("Starting graceful shutdown")
		action(ctxClean)
	}()

	select {
	case <-ctxClean.Done():
		logger.Warn("Shutdown timeout exceeded, forcing exit")
		return false
	case <-done:
		logger.Info("Graceful shutdown completed")
		return true
	}
}
