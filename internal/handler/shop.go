package handler

import (
	"net/http"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/economy"
	"github.com/osse101/StudyGarden_Go/internal/logger"
)

// PurchaseRequest is the body of POST /shop/purchase. The item is addressed
// by id or slug.
type PurchaseRequest struct {
	ItemID   int    `json:"item_id" validate:"required_without=Slug,gte=0"`
	Slug     string `json:"slug" validate:"omitempty,slug,max=64"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=1000"`
}

// HandleGetPrices returns every purchasable item with its unit price
func HandleGetPrices(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prices, err := svc.GetBuyablePrices(r.Context())
		if err != nil {
			respondServiceError(w, r, OpGetPrices, err)
			return
		}
		if prices == nil {
			prices = []economy.PriceEntry{}
		}

		respondJSON(w, http.StatusOK, prices)
	}
}

// HandlePurchase buys an item with coins
func HandlePurchase(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpPurchase); err != nil {
			return
		}

		logger.FromContext(r.Context()).Debug(LogMsgRequestDecoded, "op", OpPurchase,
			"item_id", req.ItemID, "slug", req.Slug, "quantity", req.Quantity)

		res, err := svc.Purchase(r.Context(), UserIDFromContext(r.Context()),
			domain.ItemRef{ID: req.ItemID, Slug: req.Slug}, req.Quantity, domain.LedgerPurchase)
		if err != nil {
			respondServiceError(w, r, OpPurchase, err)
			return
		}

		respondJSON(w, http.StatusOK, res)
	}
}
