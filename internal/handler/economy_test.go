package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/economy"
	"github.com/osse101/StudyGarden_Go/internal/lootbox"
)

func TestHandleGetWallet(t *testing.T) {
	svc := &MockWalletService{}
	svc.On("GetBalance", mock.Anything, testUser).Return(int64(42), nil)

	rec := serve(HandleGetWallet(svc), http.MethodGet, "/api/v1/wallet", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var res WalletResponse
	decodeBody(t, rec, &res)
	assert.Equal(t, WalletResponse{UserID: testUser, Balance: 42}, res)
}

func TestHandleGetLedger(t *testing.T) {
	svc := &MockWalletService{}
	svc.On("History", mock.Anything, testUser, 10).Return([]domain.LedgerEntry{
		{ID: "e2", UserID: testUser, Amount: -10, Type: domain.LedgerPurchase},
		{ID: "e1", UserID: testUser, Amount: 25, Type: domain.LedgerSessionCredit, RefID: "s1"},
	}, nil)

	rec := serve(HandleGetLedger(svc), http.MethodGet, "/api/v1/wallet/ledger?limit=10", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []domain.LedgerEntry
	decodeBody(t, rec, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, "e2", entries[0].ID)
}

func TestHandleGetInventory(t *testing.T) {
	svc := &MockInventoryService{}
	svc.On("List", mock.Anything, testUser).Return([]domain.HoldingView{
		{Holding: domain.Holding{UserID: testUser, ItemID: 3, Quantity: 2}, Slug: "common-pack", Type: domain.ItemTypeSeedPack},
	}, nil)
	svc.On("Unlocks", mock.Anything, testUser).Return(nil, nil)

	rec := serve(HandleGetInventory(svc), http.MethodGet, "/api/v1/inventory", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var res InventoryResponse
	decodeBody(t, rec, &res)
	require.Len(t, res.Holdings, 1)
	assert.Equal(t, 2, res.Holdings[0].Quantity)
	assert.NotNil(t, res.Unlocks)
	assert.Contains(t, rec.Body.String(), `"unlocks":[]`)
}

func TestHandlePurchase(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockEconomyService)
		expectedStatus int
	}{
		{
			name: "by slug",
			body: PurchaseRequest{Slug: "common-pack", Quantity: 2},
			setupMock: func(m *MockEconomyService) {
				m.On("Purchase", mock.Anything, testUser, domain.ItemRef{Slug: "common-pack"}, 2, domain.LedgerPurchase).
					Return(&economy.PurchaseResult{Slug: "common-pack", Quantity: 2, TotalPrice: 100, Balance: 5}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "by id",
			body: PurchaseRequest{ItemID: 7, Quantity: 1},
			setupMock: func(m *MockEconomyService) {
				m.On("Purchase", mock.Anything, testUser, domain.ItemRef{ID: 7}, 1, domain.LedgerPurchase).
					Return(&economy.PurchaseResult{ItemID: 7, Quantity: 1}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no item reference",
			body:           PurchaseRequest{Quantity: 1},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero quantity",
			body:           PurchaseRequest{Slug: "tomato"},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown field",
			body:           `{"slug":"tomato","quantity":1,"price":0}`,
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "insufficient balance",
			body: PurchaseRequest{Slug: "common-pack", Quantity: 1},
			setupMock: func(m *MockEconomyService) {
				m.On("Purchase", mock.Anything, testUser, mock.Anything, 1, domain.LedgerPurchase).
					Return(nil, domain.ErrInsufficientBalance)
			},
			expectedStatus: http.StatusPaymentRequired,
		},
		{
			name: "seed not unlocked",
			body: PurchaseRequest{Slug: "tomato", Quantity: 1},
			setupMock: func(m *MockEconomyService) {
				m.On("Purchase", mock.Anything, testUser, mock.Anything, 1, domain.LedgerPurchase).
					Return(nil, domain.ErrSeedNotUnlocked)
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockEconomyService{}
			tt.setupMock(svc)

			rec := serve(HandlePurchase(svc), http.MethodPost, "/api/v1/shop/purchase", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGetPrices(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockEconomyService{}
		svc.On("GetBuyablePrices", mock.Anything).Return([]economy.PriceEntry{
			{Slug: "common-pack", UnitPrice: 50},
		}, nil)

		rec := serve(HandleGetPrices(svc), http.MethodGet, "/api/v1/shop/prices", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var prices []economy.PriceEntry
		decodeBody(t, rec, &prices)
		assert.Equal(t, int64(50), prices[0].UnitPrice)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &MockEconomyService{}
		svc.On("GetBuyablePrices", mock.Anything).Return(nil, assert.AnError)

		rec := serve(HandleGetPrices(svc), http.MethodGet, "/api/v1/shop/prices", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandleOpenPack(t *testing.T) {
	t.Run("opens pack", func(t *testing.T) {
		svc := &MockLootboxService{}
		svc.On("OpenOne", mock.Anything, testUser, "common-pack").
			Return(&lootbox.OpenResult{Pack: "common-pack", Seed: "tomato", NewlyUnlocked: true}, nil)

		rec := serve(HandleOpenPack(svc), http.MethodPost, "/api/v1/packs/open", OpenPackRequest{Pack: "common-pack"})

		require.Equal(t, http.StatusOK, rec.Code)
		var res lootbox.OpenResult
		decodeBody(t, rec, &res)
		assert.Equal(t, "tomato", res.Seed)
		assert.True(t, res.NewlyUnlocked)
	})

	t.Run("pack not owned", func(t *testing.T) {
		svc := &MockLootboxService{}
		svc.On("OpenOne", mock.Anything, testUser, "common-pack").Return(nil, domain.ErrPackNotOwned)

		rec := serve(HandleOpenPack(svc), http.MethodPost, "/api/v1/packs/open", OpenPackRequest{Pack: "common-pack"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("broken pack configuration is a server error", func(t *testing.T) {
		svc := &MockLootboxService{}
		svc.On("OpenOne", mock.Anything, testUser, "empty-pack").Return(nil, domain.ErrInvalidPackConfiguration)

		rec := serve(HandleOpenPack(svc), http.MethodPost, "/api/v1/packs/open", OpenPackRequest{Pack: "empty-pack"})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgGenericServerError)
	})
}
