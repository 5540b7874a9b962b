package handler

import (
	"net/http"

	"github.com/osse101/StudyGarden_Go/internal/eventlog"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// HandleRecentEvents returns the caller's logged events, newest first,
// optionally filtered by ?type
func HandleRecentEvents(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := ParseLimitParam(w, r)
		if !ok {
			return
		}

		userID := UserIDFromContext(r.Context())
		filter := repository.EventLogFilter{UserID: &userID, Limit: limit}
		if eventType := GetOptionalQueryParam(r, QueryParamType, ""); eventType != "" {
			filter.EventType = &eventType
		}

		events, err := svc.Recent(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, OpRecentEvents, err)
			return
		}
		if events == nil {
			events = []repository.EventLogEntry{}
		}

		respondJSON(w, http.StatusOK, events)
	}
}
