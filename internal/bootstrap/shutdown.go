package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server             *server.Server
	ResilientPublisher *event.ResilientPublisher
	BackgroundJobs     *BackgroundJobs
	Storage            *Storage
}

// GracefulShutdown stops the HTTP server first, then background jobs, then
// flushes pending event retries, and closes storage last. Errors are logged and do not stop the
// sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.BackgroundJobs != nil {
		slog.Info(LogMsgStoppingBackgroundJobs)
		components.BackgroundJobs.Stop()
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Storage != nil {
		slog.Info(LogMsgClosingStorage)
		components.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
