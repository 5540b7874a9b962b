package memory

import (
	"context"
	"time"

	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// EventLogRepository implements repository.EventLog
type EventLogRepository struct {
	store *Store
}

// EventLog returns the event log repository
func (s *Store) EventLog() *EventLogRepository {
	return &EventLogRepository{store: s}
}

// LogEvent appends an event
func (r *EventLogRepository) LogEvent(_ context.Context, eventType string, userID *string, payload, metadata map[string]interface{}) error {
	r.store.eventsMu.Lock()
	defer r.store.eventsMu.Unlock()

	r.store.eventSeq++
	r.store.events = append(r.store.events, repository.EventLogEntry{
		ID:        r.store.eventSeq,
		EventType: eventType,
		UserID:    userID,
		Payload:   payload,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// GetEvents returns matching events, newest first
func (r *EventLogRepository) GetEvents(_ context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	r.store.eventsMu.Lock()
	defer r.store.eventsMu.Unlock()

	var out []repository.EventLogEntry
	for i := len(r.store.events) - 1; i >= 0; i-- {
		e := r.store.events[i]
		if filter.UserID != nil && (e.UserID == nil || *e.UserID != *filter.UserID) {
			continue
		}
		if filter.EventType != nil && e.EventType != *filter.EventType {
			continue
		}
		if filter.Since != nil && e.CreatedAt.Before(*filter.Since) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// CleanupOldEvents drops events older than retentionDays
func (r *EventLogRepository) CleanupOldEvents(_ context.Context, retentionDays int) (int64, error) {
	r.store.eventsMu.Lock()
	defer r.store.eventsMu.Unlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	kept := r.store.events[:0]
	var removed int64
	for _, e := range r.store.events {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.store.events = kept
	return removed, nil
}

var _ repository.EventLog = (*EventLogRepository)(nil)
