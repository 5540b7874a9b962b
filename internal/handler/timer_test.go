package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StudyGarden_Go/internal/accrual"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/timer"
)

var testBounds = DurationBounds{MinSec: 60, MaxSec: 3600}

func TestHandleStartTimer(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	subject := "math"

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockTimerService)
		expectedStatus int
		verifyBody     func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "starts study session",
			body: StartTimerRequest{Mode: "STUDY", DurationSec: 1500, SubjectID: &subject},
			setupMock: func(m *MockTimerService) {
				m.On("StartSession", mock.Anything, testUser, timer.StartRequest{
					Mode: domain.ModeStudy, DurationSec: 1500, SubjectID: &subject,
				}).Return(&timer.StartResult{
					Session:      &domain.TimerSession{ID: "s1", Status: domain.SessionRunning},
					ServerNow:    now,
					PlannedEndAt: now.Add(1500 * time.Second),
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			verifyBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var res timer.StartResult
				decodeBody(t, rec, &res)
				assert.Equal(t, "s1", res.Session.ID)
				assert.True(t, res.PlannedEndAt.Equal(now.Add(1500*time.Second)))
			},
		},
		{
			name:           "duration below minimum",
			body:           StartTimerRequest{Mode: "BREAK_SHORT", DurationSec: 30},
			setupMock:      func(m *MockTimerService) {},
			expectedStatus: http.StatusBadRequest,
			verifyBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var res ValidationErrorResponse
				decodeBody(t, rec, &res)
				assert.Contains(t, res.Fields["duration_sec"], "between 60 and 3600")
			},
		},
		{
			name:           "duration above maximum",
			body:           StartTimerRequest{Mode: "BREAK_LONG", DurationSec: 7200},
			setupMock:      func(m *MockTimerService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown mode",
			body:           StartTimerRequest{Mode: "NAP", DurationSec: 600},
			setupMock:      func(m *MockTimerService) {},
			expectedStatus: http.StatusBadRequest,
			verifyBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var res ValidationErrorResponse
				decodeBody(t, rec, &res)
				assert.Contains(t, res.Fields, "mode")
			},
		},
		{
			name:           "malformed json",
			body:           `{"mode":`,
			setupMock:      func(m *MockTimerService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "already running returns session id",
			body: StartTimerRequest{Mode: "BREAK_SHORT", DurationSec: 300},
			setupMock: func(m *MockTimerService) {
				m.On("StartSession", mock.Anything, testUser, mock.Anything).
					Return(nil, domain.AlreadyRunningError{SessionID: "s0"})
			},
			expectedStatus: http.StatusConflict,
			verifyBody: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var res AlreadyRunningResponse
				decodeBody(t, rec, &res)
				assert.Equal(t, "s0", res.SessionID)
			},
		},
		{
			name: "foreign subject",
			body: StartTimerRequest{Mode: "STUDY", DurationSec: 600, SubjectID: &subject},
			setupMock: func(m *MockTimerService) {
				m.On("StartSession", mock.Anything, testUser, mock.Anything).Return(nil, domain.ErrSubjectNotOwned)
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTimerService{}
			tt.setupMock(svc)

			rec := serve(HandleStartTimer(svc, testBounds), http.MethodPost, "/api/v1/timer/start", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.verifyBody != nil {
				tt.verifyBody(t, rec)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleStopTimer_CreditsSession(t *testing.T) {
	timerSvc := &MockTimerService{}
	accrualSvc := &MockAccrualService{}

	timerSvc.On("StopSession", mock.Anything, testUser, "s1").Return(&timer.StopResult{
		Session:       &domain.TimerSession{ID: "s1", Status: domain.SessionCompleted},
		ActualSeconds: 150,
	}, nil)
	accrualSvc.On("CreditForSession", mock.Anything, "s1").Return(&accrual.CreditResult{Minutes: 2, Coins: 2, Balance: 2}, nil)

	rec := serve(HandleStopTimer(timerSvc, accrualSvc), http.MethodPost, "/api/v1/timer/stop", StopTimerRequest{SessionID: "s1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var res StopTimerResponse
	decodeBody(t, rec, &res)
	assert.Equal(t, int64(150), res.ActualSeconds)
	require.NotNil(t, res.Credit)
	assert.Equal(t, int64(2), res.Credit.Coins)
	assert.False(t, res.CreditPending)
}

func TestHandleStopTimer_CreditFailureStillReturnsStop(t *testing.T) {
	timerSvc := &MockTimerService{}
	accrualSvc := &MockAccrualService{}

	timerSvc.On("StopSession", mock.Anything, testUser, "s1").Return(&timer.StopResult{
		Session: &domain.TimerSession{ID: "s1", Status: domain.SessionCompleted},
	}, nil)
	accrualSvc.On("CreditForSession", mock.Anything, "s1").Return(nil, assert.AnError)

	rec := serve(HandleStopTimer(timerSvc, accrualSvc), http.MethodPost, "/api/v1/timer/stop", StopTimerRequest{SessionID: "s1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var res StopTimerResponse
	decodeBody(t, rec, &res)
	assert.True(t, res.CreditPending)
	assert.Nil(t, res.Credit)
}

func TestHandleStopTimer_NotRunning(t *testing.T) {
	timerSvc := &MockTimerService{}
	accrualSvc := &MockAccrualService{}
	timerSvc.On("StopSession", mock.Anything, testUser, "s1").Return(nil, domain.ErrNotRunning)

	rec := serve(HandleStopTimer(timerSvc, accrualSvc), http.MethodPost, "/api/v1/timer/stop", StopTimerRequest{SessionID: "s1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	accrualSvc.AssertNotCalled(t, "CreditForSession", mock.Anything, mock.Anything)
}

func TestHandleCreditSession(t *testing.T) {
	newRouter := func(timerSvc *MockTimerService, accrualSvc *MockAccrualService) http.Handler {
		r := chi.NewRouter()
		r.Post("/timer/sessions/{sessionID}/credit", HandleCreditSession(timerSvc, accrualSvc))
		return r
	}

	t.Run("retries credit for own session", func(t *testing.T) {
		timerSvc := &MockTimerService{}
		accrualSvc := &MockAccrualService{}
		timerSvc.On("GetSession", mock.Anything, testUser, "s1").Return(&domain.TimerSession{ID: "s1", UserID: testUser}, nil)
		accrualSvc.On("CreditForSession", mock.Anything, "s1").Return(&accrual.CreditResult{AlreadyCredited: true, Coins: 2}, nil)

		rec := serve(newRouter(timerSvc, accrualSvc), http.MethodPost, "/timer/sessions/s1/credit", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var res accrual.CreditResult
		decodeBody(t, rec, &res)
		assert.True(t, res.AlreadyCredited)
	})

	t.Run("foreign session is not found", func(t *testing.T) {
		timerSvc := &MockTimerService{}
		accrualSvc := &MockAccrualService{}
		timerSvc.On("GetSession", mock.Anything, testUser, "s9").Return(nil, domain.ErrSessionNotFound)

		rec := serve(newRouter(timerSvc, accrualSvc), http.MethodPost, "/timer/sessions/s9/credit", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		accrualSvc.AssertNotCalled(t, "CreditForSession", mock.Anything, mock.Anything)
	})
}

func TestHandleListSessions(t *testing.T) {
	t.Run("passes limit through", func(t *testing.T) {
		svc := &MockTimerService{}
		svc.On("ListSessions", mock.Anything, testUser, 5).Return([]domain.TimerSession{{ID: "s1"}}, nil)

		rec := serve(HandleListSessions(svc), http.MethodGet, "/api/v1/timer/sessions?limit=5", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var sessions []domain.TimerSession
		decodeBody(t, rec, &sessions)
		assert.Len(t, sessions, 1)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		svc := &MockTimerService{}
		svc.On("ListSessions", mock.Anything, testUser, 0).Return(nil, nil)

		rec := serve(HandleListSessions(svc), http.MethodGet, "/api/v1/timer/sessions", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("invalid limit", func(t *testing.T) {
		svc := &MockTimerService{}

		rec := serve(HandleListSessions(svc), http.MethodGet, "/api/v1/timer/sessions?limit=abc", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ListSessions", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleStudyTotals(t *testing.T) {
	svc := &MockTimerService{}
	svc.On("Totals", mock.Anything, testUser).Return(&domain.StudyTotals{UserID: testUser, TotalSeconds: 130, TotalMinutes: 2, SessionsCount: 1}, nil)

	rec := serve(HandleStudyTotals(svc), http.MethodGet, "/api/v1/timer/totals", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var totals domain.StudyTotals
	decodeBody(t, rec, &totals)
	assert.Equal(t, int64(2), totals.TotalMinutes)
}
