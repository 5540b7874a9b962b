package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/StudyGarden_Go/internal/catalog"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// SyncCatalog loads, validates, and syncs the item catalog at path into repo.
// Items whose definition is unchanged are skipped.
func SyncCatalog(ctx context.Context, path string, repo repository.Item) (*catalog.SyncResult, error) {
	slog.Info(LogMsgSyncingCatalog, "path", path)
	loader := catalog.NewLoader()

	cfg, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	if err := loader.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	result, err := loader.SyncToDatabase(ctx, cfg, repo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	if result.ItemsInserted > 0 || result.ItemsUpdated > 0 {
		slog.Info(LogMsgCatalogSynced,
			"inserted", result.ItemsInserted,
			"updated", result.ItemsUpdated,
			"skipped", result.ItemsSkipped)
	} else {
		slog.Info(LogMsgCatalogUnchanged, "skipped", result.ItemsSkipped)
	}

	return result, nil
}
