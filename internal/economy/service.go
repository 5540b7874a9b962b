package economy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/StudyGarden_Go/internal/catalog"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/inventory"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/repository"
	"github.com/osse101/StudyGarden_Go/internal/wallet"
)

// PurchaseResult contains the outcome of a purchase
type PurchaseResult struct {
	PurchaseID        string `json:"purchase_id"`
	ItemID            int    `json:"item_id"`
	Slug              string `json:"slug"`
	Quantity          int    `json:"quantity"`
	UnitPrice         int64  `json:"unit_price"`
	TotalPrice        int64  `json:"total_price"`
	Balance           int64  `json:"balance"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

// PriceEntry is one row of the shop price list
type PriceEntry struct {
	ItemID         int             `json:"item_id"`
	Slug           string          `json:"slug"`
	Name           string          `json:"name"`
	Type           domain.ItemType `json:"type"`
	UnitPrice      int64           `json:"unit_price"`
	RequiresUnlock bool            `json:"requires_unlock"`
}

// Service defines the interface for economy operations
type Service interface {
	Purchase(ctx context.Context, userID string, ref domain.ItemRef, quantity int, ledgerType domain.LedgerType) (*PurchaseResult, error)
	GetBuyablePrices(ctx context.Context) ([]PriceEntry, error)
}

type service struct {
	unlocks   repository.Inventory
	inventory inventory.Service
	wallet    wallet.Service
	catalog   catalog.Service
	bus       event.Bus
}

// NewService creates a new economy service
func NewService(unlocks repository.Inventory, inventorySvc inventory.Service, walletSvc wallet.Service, catalogSvc catalog.Service, bus event.Bus) Service {
	return &service{
		unlocks:   unlocks,
		inventory: inventorySvc,
		wallet:    walletSvc,
		catalog:   catalogSvc,
		bus:       bus,
	}
}

// Purchase credits the items first and then debits the wallet. When the
// debit fails the credited items are taken back before the debit error is
// returned.
func (s *service) Purchase(ctx context.Context, userID string, ref domain.ItemRef, quantity int, ledgerType domain.LedgerType) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPurchaseCalled, "user_id", userID, "item_id", ref.ID, "slug", ref.Slug, "quantity", quantity)

	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if ledgerType == "" {
		ledgerType = domain.LedgerPurchase
	}

	item, err := s.catalog.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	unitPrice := UnitPrice(item)
	if unitPrice <= 0 {
		return nil, fmt.Errorf(ErrMsgNoValidPriceFmt, item.Slug, domain.ErrNoValidPrice)
	}
	total, err := totalPrice(unitPrice, quantity)
	if err != nil {
		return nil, err
	}

	if item.Type == domain.ItemTypeSeed {
		unlocked, err := s.unlocks.HasSeedUnlock(ctx, userID, item.ID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgCheckUnlockFailed, err)
		}
		if !unlocked {
			return nil, fmt.Errorf(ErrMsgSeedNotUnlockedFmt, item.Slug, domain.ErrSeedNotUnlocked)
		}
	}

	holding, err := s.inventory.AdjustQuantity(ctx, userID, item.ID, quantity, nil)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreditItemsFailed, err)
	}

	purchaseID := uuid.NewString()
	debit, err := s.wallet.Debit(ctx, userID, total, ledgerType, purchaseID)
	if err != nil {
		log.Warn(LogMsgDebitFailedCompensating, "user_id", userID, "item", item.Slug, "quantity", quantity, "error", err)
		s.reverseItems(ctx, userID, item, quantity, purchaseID, err)
		return nil, err
	}

	event.Emit(ctx, s.bus, event.New(domain.EventTypeItemPurchased, event.Payload{
		domain.MetadataKeyUserID:   userID,
		domain.MetadataKeyItemID:   item.ID,
		domain.MetadataKeyItemSlug: item.Slug,
		domain.MetadataKeyQuantity: quantity,
		domain.MetadataKeyAmount:   total,
		"purchase_id":              purchaseID,
	}))

	log.Info(LogMsgItemPurchased, "user_id", userID, "item", item.Slug, "quantity", quantity, "total", total, "balance", debit.Balance)

	return &PurchaseResult{
		PurchaseID:        purchaseID,
		ItemID:            item.ID,
		Slug:              item.Slug,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		TotalPrice:        total,
		Balance:           debit.Balance,
		InventoryQuantity: holding.Quantity,
	}, nil
}

func (s *service) reverseItems(ctx context.Context, userID string, item *domain.Item, quantity int, purchaseID string, cause error) {
	if _, err := s.inventory.AdjustQuantity(ctx, userID, item.ID, -quantity, nil); err != nil {
		logger.FromContext(ctx).Error(LogMsgCompensationFailed,
			"user_id", userID, "item", item.Slug, "quantity", quantity, "cause", cause, "error", err)

		event.Emit(ctx, s.bus, event.New(domain.EventTypeReconciliationRequired, domain.ReconciliationPayload{
			UserID:    userID,
			Operation: OperationReversePurchase,
			ItemID:    item.ID,
			Quantity:  quantity,
			RefID:     purchaseID,
			Cause:     cause.Error(),
			Error:     err.Error(),
		}.Fields()))
	}
}

// GetBuyablePrices lists every item with a positive unit price
func (s *service) GetBuyablePrices(ctx context.Context) ([]PriceEntry, error) {
	logger.FromContext(ctx).Info(LogMsgGetBuyablePricesCalled)

	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListItemsFailed, err)
	}

	prices := make([]PriceEntry, 0, len(items))
	for i := range items {
		item := &items[i]
		price := UnitPrice(item)
		if price <= 0 {
			continue
		}
		prices = append(prices, PriceEntry{
			ItemID:         item.ID,
			Slug:           item.Slug,
			Name:           item.Name,
			Type:           item.Type,
			UnitPrice:      price,
			RequiresUnlock: item.Type == domain.ItemTypeSeed,
		})
	}
	return prices, nil
}
