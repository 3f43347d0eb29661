// Package worker runs the background maintenance loop.
package worker

import (
	"context"
	"log/slog"
	"time"

	"atelier/internal/delivery"
	"atelier/internal/usecase"

	"go.uber.org/fx"
)

// cleanupInterval is how often expired sessions are swept.
const cleanupInterval = time.Hour

type cleanupWorker struct {
	authUsecase usecase.AuthUsecase
	logger      *slog.Logger
	stop        chan struct{}
	done        chan struct{}
}

// ServerParams holds dependencies for the cleanup worker, injected by Fx.
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	AuthUsecase usecase.AuthUsecase
	Logger      *slog.Logger
}

// NewServer creates the session cleanup worker.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	worker := &cleanupWorker{
		authUsecase: params.AuthUsecase,
		logger:      params.Logger,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: worker.shutdown,
	})

	return worker, nil
}

// Serve sweeps expired sessions on a fixed interval until stopped.
func (w *cleanupWorker) Serve(ctx context.Context) error {
	defer close(w.done)

	w.logger.Info("Starting session cleanup worker", slog.Duration("interval", cleanupInterval))

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.authUsecase.CleanupExpiredSessions(ctx); err != nil {
				w.logger.Error("Session cleanup failed", slog.Any("error", err))
			}
		case <-w.stop:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *cleanupWorker) shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down session cleanup worker")
	close(w.stop)

	select {
	case <-w.done:
	case <-ctx.Done():
	}

	return nil
}
