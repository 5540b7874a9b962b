package lootbox

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/StudyGarden_Go/internal/catalog"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/inventory"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/repository"
	"github.com/osse101/StudyGarden_Go/internal/utils"
)

// OpenResult is the outcome of opening one pack
type OpenResult struct {
	Pack          string `json:"pack"`
	Seed          string `json:"seed"`
	NewlyUnlocked bool   `json:"newly_unlocked"`
}

// Service opens seed packs
type Service interface {
	OpenOne(ctx context.Context, userID, packSlug string) (*OpenResult, error)
}

type service struct {
	repo      repository.Inventory
	inventory inventory.Service
	catalog   catalog.Service
	rnd       utils.RandomSource
	bus       event.Bus
}

// NewService creates a new pack-opening service. A nil rnd uses utils.DefaultRandom.
func NewService(repo repository.Inventory, inventorySvc inventory.Service, catalogSvc catalog.Service, rnd utils.RandomSource, bus event.Bus) Service {
	if rnd == nil {
		rnd = utils.DefaultRandom
	}
	return &service{
		repo:      repo,
		inventory: inventorySvc,
		catalog:   catalogSvc,
		rnd:       rnd,
		bus:       bus,
	}
}

// OpenOne consumes one pack, rolls a seed from its drop table, then grants
// the seed unlock and one seed unit together. If the grant fails the pack is
// returned to the user.
func (s *service) OpenOne(ctx context.Context, userID, packSlug string) (*OpenResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOpenPackCalled, "user_id", userID, "pack", packSlug)

	pack, drops, seeds, err := s.loadPack(ctx, packSlug)
	if err != nil {
		return nil, err
	}

	if _, err := s.inventory.AdjustQuantity(ctx, userID, pack.ID, -1, nil); err != nil {
		if errors.Is(err, domain.ErrNotOwned) || errors.Is(err, domain.ErrInsufficientQuantity) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPackNotOwned, pack.Slug)
		}
		return nil, fmt.Errorf(ErrMsgConsumePackFailed, err)
	}

	rolled := RollWeighted(drops, s.rnd)
	seed := seeds[rolled.SeedSlug]

	newlyUnlocked, err := s.grantSeed(ctx, userID, seed)
	if err != nil {
		log.Warn(LogMsgGrantFailed, "user_id", userID, "pack", pack.Slug, "seed", seed.Slug, "error", err)
		s.returnPack(ctx, userID, pack, err)
		return nil, err
	}

	result := &OpenResult{Pack: pack.Slug, Seed: seed.Slug, NewlyUnlocked: newlyUnlocked}

	event.Emit(ctx, s.bus, event.New(domain.EventTypePackOpened, event.Payload{
		domain.MetadataKeyUserID:   userID,
		domain.MetadataKeyItemSlug: pack.Slug,
		"seed_slug":                seed.Slug,
		"newly_unlocked":           newlyUnlocked,
	}))

	log.Info(LogMsgPackOpened, "user_id", userID, "pack", pack.Slug, "seed", seed.Slug, "newly_unlocked", newlyUnlocked)
	return result, nil
}

// loadPack resolves the pack, its sanitized drops and every seed they name
func (s *service) loadPack(ctx context.Context, packSlug string) (*domain.Item, []domain.WeightedDrop, map[string]*domain.Item, error) {
	pack, err := s.catalog.GetBySlug(ctx, packSlug)
	if err != nil {
		return nil, nil, nil, err
	}
	if pack.Type != domain.ItemTypeSeedPack || pack.Pack == nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", domain.ErrNotAPack, packSlug)
	}

	drops := catalog.SanitizeDrops(pack.Pack.Drops)
	if len(drops) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: pack %s has no valid drops", domain.ErrInvalidPackConfiguration, packSlug)
	}

	slugs := make([]string, len(drops))
	for i, d := range drops {
		slugs[i] = d.SeedSlug
	}

	seeds, err := s.catalog.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf(ErrMsgResolveSeedsFailed, err)
	}

	var missing []string
	for _, slug := range slugs {
		if item, ok := seeds[slug]; !ok || item.Type != domain.ItemTypeSeed {
			missing = append(missing, slug)
		}
	}
	if len(missing) > 0 {
		logger.FromContext(ctx).Error(LogMsgInvalidPackReference, "pack", packSlug, "slugs", missing)
		return nil, nil, nil, fmt.Errorf("%w: pack %s references unknown seeds: %s",
			domain.ErrInvalidPackConfiguration, packSlug, strings.Join(missing, ", "))
	}

	return pack, drops, seeds, nil
}

// grantSeed records the unlock and adds one seed unit in one unit of work
func (s *service) grantSeed(ctx context.Context, userID string, seed *domain.Item) (bool, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	created, err := tx.GrantSeedUnlock(ctx, userID, seed.ID)
	if err != nil {
		return false, fmt.Errorf(ErrMsgGrantUnlockFailed, err)
	}

	if _, err := s.inventory.AdjustQuantityTx(ctx, tx, userID, seed.ID, 1, nil); err != nil {
		return false, fmt.Errorf(ErrMsgGrantSeedFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return created, nil
}

// returnPack compensates a consumed pack. Failure here is reported for
// reconciliation and never replaces the original error.
func (s *service) returnPack(ctx context.Context, userID string, pack *domain.Item, cause error) {
	if _, err := s.inventory.AdjustQuantity(ctx, userID, pack.ID, 1, nil); err != nil {
		logger.FromContext(ctx).Error(LogMsgCompensationFailed,
			"user_id", userID, "pack", pack.Slug, "cause", cause, "error", err)

		event.Emit(ctx, s.bus, event.New(domain.EventTypeReconciliationRequired, domain.ReconciliationPayload{
			UserID:    userID,
			Operation: OperationReturnPack,
			ItemID:    pack.ID,
			Quantity:  1,
			Cause:     cause.Error(),
			Error:     err.Error(),
		}.Fields()))
	}
}
