package bootstrap

import (
	"log/slog"

	"github.com/osse101/StudyGarden_Go/internal/config"
	"github.com/osse101/StudyGarden_Go/internal/logger"
)

// SetupLogger installs the process-wide slog logger from cfg. Source
// locations are only attached in development.
func SetupLogger(cfg *config.Config) *slog.Logger {
	l := logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		cfg.IsDevelopment(),
	))
	l.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	return l
}
