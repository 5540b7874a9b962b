package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/StudyGarden_Go/internal/accrual"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/timer"
)

// DurationBounds limits the planned length of a session, in seconds
type DurationBounds struct {
	MinSec int
	MaxSec int
}

// StartTimerRequest is the body of POST /timer/start
type StartTimerRequest struct {
	Mode        string  `json:"mode" validate:"required,timermode"`
	DurationSec int     `json:"duration_sec" validate:"required"`
	SubjectID   *string `json:"subject_id,omitempty" validate:"omitempty,max=64"`
}

// StopTimerRequest is the body of POST /timer/stop
type StopTimerRequest struct {
	SessionID string `json:"session_id" validate:"required,max=64"`
}

// StopTimerResponse combines the stopped session with its credit outcome.
// CreditPending means the stop was recorded but the credit must be retried
// through POST /timer/sessions/{id}/credit.
type StopTimerResponse struct {
	*timer.StopResult
	Credit        *accrual.CreditResult `json:"credit,omitempty"`
	CreditPending bool                  `json:"credit_pending,omitempty"`
}

// HandleStartTimer starts a session for the caller
func HandleStartTimer(svc timer.Service, bounds DurationBounds) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartTimerRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpStartTimer); err != nil {
			return
		}
		if err := GetValidator().ValidateVar(req.DurationSec, durationTag(bounds.MinSec, bounds.MaxSec)); err != nil {
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  ErrMsgInvalidRequestSummary,
				Fields: map[string]string{"duration_sec": durationRangeMessage(bounds)},
			})
			return
		}

		res, err := svc.StartSession(r.Context(), UserIDFromContext(r.Context()), timer.StartRequest{
			Mode:        domain.TimerMode(req.Mode),
			DurationSec: req.DurationSec,
			SubjectID:   req.SubjectID,
		})
		if err != nil {
			respondServiceError(w, r, OpStartTimer, err)
			return
		}

		respondJSON(w, http.StatusCreated, res)
	}
}

// HandleStopTimer stops the caller's session and credits study time.
// A failed credit still returns the stopped session.
func HandleStopTimer(svc timer.Service, accrualSvc accrual.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StopTimerRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpStopTimer); err != nil {
			return
		}

		res, err := svc.StopSession(r.Context(), UserIDFromContext(r.Context()), req.SessionID)
		if err != nil {
			respondServiceError(w, r, OpStopTimer, err)
			return
		}

		resp := StopTimerResponse{StopResult: res}
		credit, err := accrualSvc.CreditForSession(r.Context(), res.Session.ID)
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgCreditFailed, "session_id", res.Session.ID, "error", err)
			resp.CreditPending = true
		} else {
			resp.Credit = credit
		}

		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleCreditSession retries the credit for one of the caller's sessions.
// Repeated calls never credit twice.
func HandleCreditSession(svc timer.Service, accrualSvc accrual.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, URLParamSessionID)
		if sessionID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingSessionID)
			return
		}

		session, err := svc.GetSession(r.Context(), UserIDFromContext(r.Context()), sessionID)
		if err != nil {
			respondServiceError(w, r, OpCreditSession, err)
			return
		}

		credit, err := accrualSvc.CreditForSession(r.Context(), session.ID)
		if err != nil {
			respondServiceError(w, r, OpCreditSession, err)
			return
		}

		respondJSON(w, http.StatusOK, credit)
	}
}

// HandleListSessions returns the caller's sessions, newest first
func HandleListSessions(svc timer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := ParseLimitParam(w, r)
		if !ok {
			return
		}

		sessions, err := svc.ListSessions(r.Context(), UserIDFromContext(r.Context()), limit)
		if err != nil {
			respondServiceError(w, r, OpListSessions, err)
			return
		}
		if sessions == nil {
			sessions = []domain.TimerSession{}
		}

		respondJSON(w, http.StatusOK, sessions)
	}
}

// HandleStudyTotals returns the caller's completed study time
func HandleStudyTotals(svc timer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, err := svc.Totals(r.Context(), UserIDFromContext(r.Context()))
		if err != nil {
			respondServiceError(w, r, OpStudyTotals, err)
			return
		}

		respondJSON(w, http.StatusOK, totals)
	}
}

func durationRangeMessage(b DurationBounds) string {
	return fmt.Sprintf("Must be between %d and %d seconds", b.MinSec, b.MaxSec)
}
