package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/StudyGarden_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusPaymentRequired, ErrMsgInsufficientBalanceError},
		{"seed not unlocked", domain.ErrSeedNotUnlocked, http.StatusForbidden, ErrMsgSeedNotUnlockedError},
		{"subject not owned", domain.ErrSubjectNotOwned, http.StatusForbidden, ErrMsgSubjectNotOwnedError},
		{"item not found", domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
		{"session not found", domain.ErrSessionNotFound, http.StatusNotFound, ErrMsgSessionNotFoundError},
		{"plot not found", domain.ErrPlotNotFound, http.StatusNotFound, ErrMsgPlotNotFoundError},
		{"plant not found", domain.ErrPlantNotFound, http.StatusNotFound, ErrMsgPlantNotFoundError},
		{"already running", domain.AlreadyRunningError{SessionID: "s1"}, http.StatusConflict, ErrMsgAlreadyRunningError},
		{"plot occupied", domain.ErrPlotOccupied, http.StatusConflict, ErrMsgPlotOccupiedError},
		{"not running", domain.ErrNotRunning, http.StatusBadRequest, ErrMsgNotRunningError},
		{"wrapped insufficient quantity", fmt.Errorf("open: %w", domain.ErrInsufficientQuantity), http.StatusBadRequest, ErrMsgInsufficientQuantityErr},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
		{"bad pack configuration", domain.ErrInvalidPackConfiguration, http.StatusInternalServerError, ErrMsgGenericServerError},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestRespondServiceError_AlreadyRunningCarriesSessionID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/timer/start", nil)
	rec := httptest.NewRecorder()

	respondServiceError(rec, req, OpStartTimer, fmt.Errorf("start: %w", domain.AlreadyRunningError{SessionID: "s-42"}))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body AlreadyRunningResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "s-42", body.SessionID)
	assert.Equal(t, ErrMsgAlreadyRunningError, body.Error)
}

func TestRespondServiceError_HidesInternalDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
	rec := httptest.NewRecorder()

	respondServiceError(rec, req, OpGetWallet, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}
