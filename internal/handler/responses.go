package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// AlreadyRunningResponse tells the client which session to resume
type AlreadyRunningResponse struct {
	Error     string `json:"error"`
	SessionID string `json:"session_id,omitempty"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Headers stay unsent until encoding succeeds
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and maps it to a status and
// user-facing message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logger.FromContext(r.Context())
	status, msg := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "op", op, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "op", op, "error", err, "status", status)
	}

	var running domain.AlreadyRunningError
	if errors.As(err, &running) {
		respondJSON(w, status, AlreadyRunningResponse{Error: msg, SessionID: running.SessionID})
		return
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act upon. Anything unrecognised is a generic 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusPaymentRequired, ErrMsgInsufficientBalanceError

	case errors.Is(err, domain.ErrSeedNotUnlocked):
		return http.StatusForbidden, ErrMsgSeedNotUnlockedError
	case errors.Is(err, domain.ErrSubjectNotOwned):
		return http.StatusForbidden, ErrMsgSubjectNotOwnedError

	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrPlotNotFound):
		return http.StatusNotFound, ErrMsgPlotNotFoundError
	case errors.Is(err, domain.ErrPlantNotFound):
		return http.StatusNotFound, ErrMsgPlantNotFoundError

	case errors.Is(err, domain.ErrAlreadyRunning):
		return http.StatusConflict, ErrMsgAlreadyRunningError
	case errors.Is(err, domain.ErrPlotOccupied):
		return http.StatusConflict, ErrMsgPlotOccupiedError

	case errors.Is(err, domain.ErrNotRunning):
		return http.StatusBadRequest, ErrMsgNotRunningError
	case errors.Is(err, domain.ErrSubjectRequired):
		return http.StatusBadRequest, ErrMsgSubjectRequiredError
	case errors.Is(err, domain.ErrInvalidTimerMode):
		return http.StatusBadRequest, ErrMsgInvalidTimerModeError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgInsufficientQuantityErr
	case errors.Is(err, domain.ErrPackNotOwned):
		return http.StatusBadRequest, ErrMsgPackNotOwnedError
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusBadRequest, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrNotASeed):
		return http.StatusBadRequest, ErrMsgNotASeedError
	case errors.Is(err, domain.ErrNotAPack):
		return http.StatusBadRequest, ErrMsgNotAPackError
	case errors.Is(err, domain.ErrNoValidPrice):
		return http.StatusBadRequest, ErrMsgNoValidPriceError
	case errors.Is(err, domain.ErrPlotOutOfBounds):
		return http.StatusBadRequest, ErrMsgPlotOutOfBoundsError
	case errors.Is(err, domain.ErrPlotEmpty):
		return http.StatusBadRequest, ErrMsgPlotEmptyError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	// Includes ErrInvalidPackConfiguration
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
