package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/StudyGarden_Go/internal/bootstrap"
	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/config"
	"github.com/osse101/StudyGarden_Go/internal/handler"
	"github.com/osse101/StudyGarden_Go/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}

	bootstrap.SetupLogger(cfg)
	for _, w := range warnings {
		slog.Warn(w)
	}
	slog.Info(bootstrap.LogMsgStartingStudyGarden,
		"version", cfg.Version,
		"environment", cfg.Environment,
		"storage", cfg.StorageBackend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}

	if _, err := bootstrap.SyncCatalog(ctx, cfg.CatalogPath, st.Items); err != nil {
		st.Close()
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		st.Close()
		return err
	}

	handler.InitValidator()
	svcs := bootstrap.BuildServices(cfg, st, clock.NewRealClock(), publisher)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: svcs.EventLog,
	}); err != nil {
		st.Close()
		return err
	}

	jobs := bootstrap.StartBackgroundJobs(svcs.EventLog, cfg.EventRetentionDays)
	srv := server.NewServer(bootstrap.ServerConfig(cfg), svcs, st.Pinger, clock.NewRealClock())

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		BackgroundJobs:     jobs,
		ResilientPublisher: publisher,
		Storage:            st,
	})

	return err
}
