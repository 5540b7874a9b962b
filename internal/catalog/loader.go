package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/osse101/StudyGarden_Go/internal/config"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/repository"
	"github.com/osse101/StudyGarden_Go/internal/validation"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateSlug = errors.New("duplicate slug")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON catalog configuration
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items []Def `json:"items"`
}

// Def represents a single item definition in the JSON
type Def struct {
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        domain.ItemType `json:"type"`
	Price       int64           `json:"price"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

// Loader handles loading, validating and syncing the catalog configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Item) (*SyncResult, error)
}

// SyncResult contains the result of syncing items to the database
type SyncResult struct {
	ItemsInserted int
	ItemsUpdated  int
	ItemsSkipped  int
}

type itemLoader struct {
	schemaValidator validation.SchemaValidator
	schemaPath      string
}

// NewLoader creates a new Loader validating against the catalog schema file
func NewLoader() Loader {
	return &itemLoader{
		schemaValidator: validation.NewSchemaValidator(),
		schemaPath:      config.ConfigPathItemSchema,
	}
}

// Load reads and parses a catalog JSON file
func (l *itemLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, l.schemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &cfg, nil
}

// Validate checks semantic rules the schema cannot express: unique slugs
// and packs whose drops all resolve to seeds defined in the same file
func (l *itemLoader) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(cfg.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	seeds := make(map[string]bool)
	slugs := make(map[string]bool, len(cfg.Items))

	for i := range cfg.Items {
		def := &cfg.Items[i]
		if err := validateDef(i, def, slugs); err != nil {
			return err
		}
		if def.Type == domain.ItemTypeSeed {
			seeds[def.Slug] = true
		}
	}

	for i := range cfg.Items {
		def := &cfg.Items[i]
		if def.Type != domain.ItemTypeSeedPack {
			continue
		}
		drops := SanitizeDrops(ParsePackMetadata(def.Metadata).Drops)
		if len(drops) == 0 {
			return fmt.Errorf(ErrFmtPackNoDrops, ErrInvalidConfig, def.Slug)
		}
		for _, d := range drops {
			if !seeds[d.SeedSlug] {
				return fmt.Errorf(ErrFmtPackUnknownSeed, ErrInvalidConfig, def.Slug, d.SeedSlug)
			}
		}
	}

	return nil
}

func validateDef(index int, def *Def, slugs map[string]bool) error {
	if def.Slug == "" {
		return fmt.Errorf(ErrFmtItemAtIndexEmptySlug, ErrInvalidConfig, index)
	}
	if slugs[def.Slug] {
		return fmt.Errorf("%w: '%s'", ErrDuplicateSlug, def.Slug)
	}
	slugs[def.Slug] = true

	if def.Name == "" {
		return fmt.Errorf(ErrFmtItemEmptyName, ErrInvalidConfig, def.Slug)
	}
	switch def.Type {
	case domain.ItemTypeSeed, domain.ItemTypeSeedPack, domain.ItemTypeOther:
	default:
		return fmt.Errorf(ErrFmtItemUnknownType, ErrInvalidConfig, def.Slug, def.Type)
	}
	if def.Price < 0 {
		return fmt.Errorf(ErrFmtItemNegativePrice, ErrInvalidConfig, def.Slug)
	}
	return nil
}

// SyncToDatabase upserts every definition by slug. Items that already match
// their definition are skipped.
func (l *itemLoader) SyncToDatabase(ctx context.Context, cfg *Config, repo repository.Item) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	existing, err := repo.GetAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetExistingItemsFailed, err)
	}
	bySlug := make(map[string]*domain.Item, len(existing))
	for i := range existing {
		bySlug[existing[i].Slug] = &existing[i]
	}

	result := &SyncResult{}
	for _, def := range cfg.Items {
		if current, ok := bySlug[def.Slug]; ok && matches(current, def) {
			result.ItemsSkipped++
			continue
		}

		item := &domain.Item{
			Slug:        def.Slug,
			Name:        def.Name,
			Description: def.Description,
			Type:        def.Type,
			Price:       def.Price,
			Metadata:    compactJSON(def.Metadata),
		}
		inserted, err := repo.UpsertItem(ctx, item)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertItemFailed, def.Slug, err)
		}
		if inserted {
			result.ItemsInserted++
			log.Info(LogMsgInsertedItem, "slug", def.Slug, "id", item.ID)
		} else {
			result.ItemsUpdated++
			log.Info(LogMsgUpdatedItem, "slug", def.Slug)
		}
	}

	log.Info(LogMsgSyncCompleted,
		"inserted", result.ItemsInserted,
		"updated", result.ItemsUpdated,
		"skipped", result.ItemsSkipped)

	return result, nil
}

func matches(item *domain.Item, def Def) bool {
	return item.Name == def.Name &&
		item.Description == def.Description &&
		item.Type == def.Type &&
		item.Price == def.Price &&
		sameJSON(item.Metadata, def.Metadata)
}

// sameJSON compares decoded values so key order and whitespace do not matter
func sameJSON(a, b json.RawMessage) bool {
	var va, vb interface{}
	if err := json.Unmarshal(compactJSON(a), &va); err != nil {
		return false
	}
	if err := json.Unmarshal(compactJSON(b), &vb); err != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}

// compactJSON normalizes whitespace so stored and configured metadata compare equal
func compactJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("{}")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
