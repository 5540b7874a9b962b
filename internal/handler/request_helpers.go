package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/osse101/StudyGarden_Go/internal/logger"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body into req and validates
// its struct tags. On failure the response has already been written and the
// handler should return.
//
//	var req PurchaseRequest
//	if err := DecodeAndValidateRequest(r, w, &req, OpPurchase); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "op", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "op", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondValidationError(w, r, actionName, err)
		return err
	}

	return nil
}

func respondValidationError(w http.ResponseWriter, r *http.Request, actionName string, err error) {
	logger.FromContext(r.Context()).Warn(LogMsgValidationFailed, "op", actionName, "error", err)
	respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:  ErrMsgInvalidRequestSummary,
		Fields: FormatValidationError(err),
	})
}

// GetOptionalQueryParam returns the query parameter or defaultValue when it is
// missing or empty
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// ParseLimitParam reads ?limit. A missing value returns 0 so the service
// applies its own default. Non-numeric or negative values write a 400 and
// return ok=false.
func ParseLimitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get(QueryParamLimit)
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		logger.FromContext(r.Context()).Warn(LogMsgInvalidQueryParam, "param", QueryParamLimit, "value", raw)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	return limit, true
}

// durationTag builds the validator tag for a timer duration range
func durationTag(minSec, maxSec int) string {
	return fmt.Sprintf("gte=%d,lte=%d", minSec, maxSec)
}
