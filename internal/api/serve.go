package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dgallion1/minitut/internal/config"
	"github.com/dgallion1/minitut/internal/nav"
	"github.com/dgallion1/minitut/internal/tutorial"
)

// ListenAndServe runs the navigation controller and the HTTP presenter for
// tut until ctx is cancelled, then shuts both down gracefully.
func ListenAndServe(ctx context.Context, tut *tutorial.Tutorial, cfg *config.Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl := nav.NewController(tut.Nav, log.Named("nav"))
	ctrlDone := make(chan struct{})
	go func() {
		defer close(ctrlDone)
		ctrl.Run(ctx)
	}()

	srv := NewServer(tut, ctrl, cfg, log)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting minitut", zap.String("port", cfg.Port), zap.String("document", cfg.Document))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down...")
	case err, ok := <-errCh:
		if ok {
			serveErr = fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	srv.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		serveErr = fmt.Errorf("shutdown: %w", err)
	}
	cancel()
	<-ctrlDone
	return serveErr
}
