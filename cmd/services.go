package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xvierd/pomo/internal/adapters/celebrate"
	"github.com/xvierd/pomo/internal/adapters/git"
	"github.com/xvierd/pomo/internal/adapters/history"
	"github.com/xvierd/pomo/internal/adapters/notification"
	"github.com/xvierd/pomo/internal/adapters/statestore"
	"github.com/xvierd/pomo/internal/adapters/tui"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/engine"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/tips"
)

// appDeps groups the dependencies initialized at startup.
type appDeps struct {
	config    *config.Config
	store     *statestore.Store
	history   ports.History
	notifier  *notification.Notifier
	git       ports.GitDetector
	flash     *celebrate.Flash
	engine    *engine.Engine
	catalogue tips.Catalogue
}

// app holds all initialized dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required adapters and the engine.
func initializeServices() error {
	// Load configuration
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}

	if dataDir == "" {
		dataDir = app.config.Storage.DataDir
	}

	app.store, err = statestore.New(dataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize state store: %w", err)
	}

	app.history, err = history.New(config.GetDBPath(app.config))
	if err != nil {
		return fmt.Errorf("failed to initialize session archive: %w", err)
	}

	app.notifier = notification.New(&app.config.Notifications)
	app.flash = celebrate.NewFlash()
	app.git = git.NewDetector()

	app.catalogue, err = tips.ByName(app.config.Tips.Catalogue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, falling back to classic\n", err)
		app.catalogue = tips.Classic()
	}

	workingDir, _ := os.Getwd()
	app.engine, err = engine.New(engine.Options{
		Store:               app.store,
		History:             app.history,
		Notifier:            app.notifier,
		Celebrator:          app.flash,
		Git:                 app.git,
		WorkingDir:          workingDir,
		RestoreSettingsOnly: app.config.Storage.RestoreSettingsOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	return nil
}

// cleanupServices persists the final snapshot and closes all resources.
func cleanupServices() error {
	var firstErr error
	if app.engine != nil {
		if err := app.engine.Close(); err != nil {
			firstErr = err
		}
	}
	if app.history != nil {
		if err := app.history.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runTimer launches the interactive timer view, with the boundary-reset
// driver running alongside it for the lifetime of the view.
func runTimer(autoStart bool) error {
	ctx := setupSignalHandler()

	go app.engine.RunBoundaryCheck(ctx, time.Hour)

	if autoStart {
		if _, err := app.engine.Dispatch(domain.StartSession{}); err != nil {
			return err
		}
	}

	return tui.Run(ctx, app.engine, app.catalogue, app.flash, app.config.Theme)
}
