package handler

import (
	"net/http"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/wallet"
)

// WalletResponse is the body of GET /wallet
type WalletResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// HandleGetWallet returns the caller's balance, zero for a new user
func HandleGetWallet(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserIDFromContext(r.Context())

		balance, err := svc.GetBalance(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpGetWallet, err)
			return
		}

		respondJSON(w, http.StatusOK, WalletResponse{UserID: userID, Balance: balance})
	}
}

// HandleGetLedger returns the caller's ledger entries, newest first
func HandleGetLedger(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := ParseLimitParam(w, r)
		if !ok {
			return
		}

		entries, err := svc.History(r.Context(), UserIDFromContext(r.Context()), limit)
		if err != nil {
			respondServiceError(w, r, OpGetLedger, err)
			return
		}
		if entries == nil {
			entries = []domain.LedgerEntry{}
		}

		respondJSON(w, http.StatusOK, entries)
	}
}
