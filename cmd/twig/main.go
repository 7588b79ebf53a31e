package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/twig/pkg/config"
	appErrors "github.com/noah-isme/twig/pkg/errors"
	"github.com/noah-isme/twig/pkg/logger"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		e := appErrors.FromError(err)
		if e.Code != codeWarnings {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(e.Exit)
	}
}

// newApp resolves configuration, applies CLI flag overrides and builds the
// run-scoped logger shared by all subcommands.
func newApp(overrides flagOverrides) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	overrides.apply(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logr, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	return &app{opts: *cfg, logger: logger.WithRun(logr)}, nil
}

type app struct {
	opts   config.Options
	logger *zap.Logger
}

func (a *app) close() {
	_ = a.logger.Sync()
}
