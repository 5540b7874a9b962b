package handler

import (
	"net/http"

	"github.com/osse101/StudyGarden_Go/internal/lootbox"
)

// OpenPackRequest is the body of POST /packs/open
type OpenPackRequest struct {
	Pack string `json:"pack" validate:"required,slug,max=64"`
}

// HandleOpenPack opens one owned seed pack
func HandleOpenPack(svc lootbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OpenPackRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpOpenPack); err != nil {
			return
		}

		res, err := svc.OpenOne(r.Context(), UserIDFromContext(r.Context()), req.Pack)
		if err != nil {
			respondServiceError(w, r, OpOpenPack, err)
			return
		}

		respondJSON(w, http.StatusOK, res)
	}
}
