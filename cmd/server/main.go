package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dgallion1/minitut/internal/api"
	"github.com/dgallion1/minitut/internal/config"
	"github.com/dgallion1/minitut/internal/nav"
	"github.com/dgallion1/minitut/internal/tutorial"
)

func main() {
	path := os.Getenv("MINITUT_CONFIG")
	if path == "" {
		path = config.DefaultFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tut, err := tutorial.Open(ctx, cfg, nav.NewMemoryLocation(""), log, api.RemoteScript())
	if err != nil {
		log.Error("failed to start tutorial", zap.Error(err))
		os.Exit(1)
	}

	if err := api.ListenAndServe(ctx, tut, cfg, log); err != nil {
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
