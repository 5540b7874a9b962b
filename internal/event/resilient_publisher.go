package event

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/StudyGarden_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// DeadLetterEntry is one line of the dead letter file
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// ResilientPublisher wraps a Bus so that handler failures (for example the
// event log being unable to reach the database) are retried in the
// background and finally written to a dead letter file.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	mu     sync.Mutex
	wg     sync.WaitGroup
	sleep  func(time.Duration)
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultRetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	return &ResilientPublisher{
		inner:  inner,
		config: config,
		sleep:  time.Sleep,
	}
}

// Publish delivers the event once synchronously. On failure it returns nil
// and keeps retrying in the background so the caller's operation is never
// failed by a downstream subscriber.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event, err)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown waits for in-flight retries or until ctx is done
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("resilient publisher shutdown: %w", ctx.Err())
	}
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		p.sleep(CalculateRetryDelay(p.config.RetryDelay, attempt))

		if err := p.inner.Publish(ctx, event); err != nil {
			lastErr = err
			log.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", attempt, "error", err)
			continue
		}
		log.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", attempt)
		return
	}

	if err := p.writeDeadLetter(event, p.config.MaxRetries+1, lastErr); err != nil {
		log.Error(LogMsgDeadLetterFailed, "event_type", event.Type, "error", err)
		return
	}
	log.Warn(LogMsgEventDeadLettered, "event_type", event.Type, "path", p.config.DeadLetterPath)
}

func (p *ResilientPublisher) writeDeadLetter(event Event, attempts int, lastErr error) error {
	if p.config.DeadLetterPath == "" {
		return fmt.Errorf("no dead letter path configured")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open dead letter file: %w", err)
	}
	defer f.Close()

	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	return json.NewEncoder(f).Encode(entry)
}
