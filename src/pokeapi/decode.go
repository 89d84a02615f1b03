package pokeapi

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sort"
)

const (
	keyName      = "name"
	keyId        = "id"
	keyAbilities = "abilities"
	keyTypes     = "types"
	keySprites   = "sprites"
	keyAbility   = "ability"
	keyType      = "type"
)

// Decode builds a Pokemon from a parsed pokemon resource. It returns false when
// name, id, abilities or types are missing or of the wrong type. Malformed
// entries inside abilities and types are skipped, as are sprites that are not
// absolute URLs.
func Decode(obj map[string]any) (*Pokemon, bool) {
	pokemon, _, ok := decode(obj)
	return pokemon, ok
}

// decode also reports the skipped array entries so callers can log them.
func decode(obj map[string]any) (*Pokemon, []string, bool) {
	name, ok := obj[keyName].(string)
	if !ok {
		return nil, nil, false
	}
	id, ok := asInt(obj[keyId])
	if !ok {
		return nil, nil, false
	}
	abilityEntries, ok := obj[keyAbilities].([]any)
	if !ok {
		return nil, nil, false
	}
	typeEntries, ok := obj[keyTypes].([]any)
	if !ok {
		return nil, nil, false
	}
	var skipped []string
	abilities, skippedAbilities := nestedNames(abilityEntries, keyAbilities, keyAbility)
	skipped = append(skipped, skippedAbilities...)
	types, skippedTypes := nestedNames(typeEntries, keyTypes, keyType)
	skipped = append(skipped, skippedTypes...)
	return &Pokemon{
		Name:      name,
		Id:        id,
		Types:     types,
		Abilities: abilities,
		Sprites:   sprites(obj[keySprites]),
	}, skipped, true
}

func nestedNames(entries []any, arrayKey, objectKey string) ([]string, []string) {
	names := make([]string, 0, len(entries))
	var skipped []string
	for i, entry := range entries {
		name, ok := nestedName(entry, objectKey)
		if !ok {
			skipped = append(skipped, fmt.Sprintf("%s[%d]", arrayKey, i))
			continue
		}
		names = append(names, name)
	}
	return names, skipped
}

func nestedName(entry any, objectKey string) (string, bool) {
	outer, ok := entry.(map[string]any)
	if !ok {
		return "", false
	}
	inner, ok := outer[objectKey].(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := inner[keyName].(string)
	return name, ok
}

func sprites(value any) []Sprite {
	entries, ok := value.(map[string]any)
	if !ok {
		return []Sprite{}
	}
	labels := make([]string, 0, len(entries))
	for label := range entries {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	result := make([]Sprite, 0, len(labels))
	for _, label := range labels {
		raw, ok := entries[label].(string)
		if !ok {
			continue
		}
		spriteUrl, err := url.Parse(raw)
		if err != nil || !spriteUrl.IsAbs() || spriteUrl.Host == "" {
			continue
		}
		result = append(result, Sprite{Label: label, Url: spriteUrl})
	}
	return result
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case json.Number:
		i, err := v.Int64()
		if err != nil || i < math.MinInt || i > math.MaxInt {
			return 0, false
		}
		return int(i), true
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
