package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/utils"
)

// Decorate parses the raw metadata bag of item into its typed form. The bag
// is treated as untrusted: unknown shapes yield empty metadata rather than
// an error. It reports whether the bag could be decoded at all.
func Decorate(item *domain.Item) bool {
	item.Seed = nil
	item.Pack = nil

	bag, ok := decodeBag(item.Metadata)

	switch item.Type {
	case domain.ItemTypeSeed:
		item.Seed = parseSeedMetadata(bag)
	case domain.ItemTypeSeedPack:
		item.Pack = parsePackMetadata(bag)
	}
	return ok
}

// ParseSeedMetadata parses a raw seed metadata bag
func ParseSeedMetadata(raw json.RawMessage) *domain.SeedMetadata {
	bag, _ := decodeBag(raw)
	return parseSeedMetadata(bag)
}

// ParsePackMetadata parses a raw pack metadata bag. Drops are returned as
// found, coerced but not sanitized; see SanitizeDrops.
func ParsePackMetadata(raw json.RawMessage) *domain.PackMetadata {
	bag, _ := decodeBag(raw)
	return parsePackMetadata(bag)
}

// SanitizeDrops removes entries with a blank slug or a weight that is not a
// positive finite number, and merges duplicate slugs by summing their
// weights. Order of first appearance is preserved.
func SanitizeDrops(drops []domain.WeightedDrop) []domain.WeightedDrop {
	index := make(map[string]int, len(drops))
	out := make([]domain.WeightedDrop, 0, len(drops))

	for _, d := range drops {
		slug := strings.TrimSpace(d.SeedSlug)
		if slug == "" || !utils.IsPositiveFinite(d.Weight) {
			continue
		}
		if i, ok := index[slug]; ok {
			out[i].Weight += d.Weight
			continue
		}
		index[slug] = len(out)
		out = append(out, domain.WeightedDrop{SeedSlug: slug, Weight: d.Weight})
	}
	return out
}

func decodeBag(raw json.RawMessage) (map[string]interface{}, bool) {
	if len(raw) == 0 {
		return map[string]interface{}{}, true
	}
	var bag map[string]interface{}
	if err := json.Unmarshal(raw, &bag); err != nil || bag == nil {
		return map[string]interface{}{}, false
	}
	return bag, true
}

func parseSeedMetadata(bag map[string]interface{}) *domain.SeedMetadata {
	meta := &domain.SeedMetadata{StageCount: domain.DefaultStageCount}

	if s, ok := bag[metaKeyPackName].(string); ok {
		meta.PackName = s
	}
	if f, ok := toFloat(bag[metaKeyGrowthDays]); ok {
		meta.GrowthDays = f
	}
	if f, ok := toFloat(bag[metaKeyStageCount]); ok {
		meta.StageCount = int(math.Floor(f))
	}
	if n, ok := toCoins(bag[metaKeyCoinYield]); ok {
		meta.CoinYield = &n
	}
	if n, ok := toCoins(bag[metaKeyRepurchasePrice]); ok {
		meta.RepurchasePrice = &n
	}
	return meta
}

func parsePackMetadata(bag map[string]interface{}) *domain.PackMetadata {
	meta := &domain.PackMetadata{}

	entries, ok := bag[metaKeyDrops].([]interface{})
	if !ok {
		return meta
	}

	for _, e := range entries {
		obj, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		slug, _ := obj[metaKeySeedSlug].(string)
		weight, ok := toFloat(obj[metaKeyWeight])
		if !ok {
			weight = math.NaN()
		}
		meta.Drops = append(meta.Drops, domain.WeightedDrop{SeedSlug: slug, Weight: weight})
	}
	return meta
}

// toFloat accepts JSON numbers and numeric strings
func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toCoins coerces v to a whole, non-negative coin amount
func toCoins(v interface{}) (int64, bool) {
	f, ok := toFloat(v)
	if !ok || f < 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(math.Floor(f)), true
}
