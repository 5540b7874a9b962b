package handler

import (
	"net/http"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/inventory"
)

// InventoryResponse is the body of GET /inventory
type InventoryResponse struct {
	Holdings []domain.HoldingView `json:"holdings"`
	Unlocks  []domain.SeedUnlock  `json:"unlocks"`
}

// HandleGetInventory returns the caller's holdings and seed unlocks
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserIDFromContext(r.Context())

		holdings, err := svc.List(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpGetInventory, err)
			return
		}
		unlocks, err := svc.Unlocks(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpGetInventory, err)
			return
		}

		resp := InventoryResponse{Holdings: holdings, Unlocks: unlocks}
		if resp.Holdings == nil {
			resp.Holdings = []domain.HoldingView{}
		}
		if resp.Unlocks == nil {
			resp.Unlocks = []domain.SeedUnlock{}
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
