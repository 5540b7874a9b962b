package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/eventlog"
	"github.com/osse101/StudyGarden_Go/internal/metrics"
)

// EventHandlerDependencies holds what event subscribers need
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
}

// RegisterEventHandlers attaches the metrics collector and the event logger
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	return nil
}
