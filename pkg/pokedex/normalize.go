package pokedex

import (
	"encoding/json"
	"strings"
)

// Defaults for partially-absent custom records: a placeholder body of
// roughly one meter and one kilogram.
const (
	defaultHeight = 10
	defaultWeight = 10
)

// customPayload is the custom store's record shape as received on the wire.
// Fields are kept loose so partially-malformed stored records normalize
// instead of failing to decode.
type customPayload struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Sprite     string          `json:"sprite"`
	Types      json.RawMessage `json:"types"`
	Height     *int            `json:"height"`
	Weight     *int            `json:"weight"`
	FlavorText string          `json:"flavorText"`
	Evolutions json.RawMessage `json:"evolutions"`
}

// normalizeOfficial maps a catalog payload into the unified record shape.
// Height and weight pass through unchanged (decimeters and hectograms);
// unit conversion is a presentation concern.
func normalizeOfficial(raw *officialPokemon, flavorText string) *Record {
	types := make([]string, 0, len(raw.Types))
	for _, t := range raw.Types {
		types = append(types, t.Type.Name)
	}

	return &Record{
		ID:         raw.ID,
		Name:       raw.Name,
		Sprite:     pickSprite(raw),
		Types:      types,
		Height:     raw.Height,
		Weight:     raw.Weight,
		FlavorText: flavorText,
		IsCustom:   false,
	}
}

// pickSprite prefers the high-quality artwork, then the default sprite,
// then nothing.
func pickSprite(raw *officialPokemon) string {
	if s := raw.Sprites.Other.OfficialArtwork.FrontDefault; s != "" {
		return s
	}
	return raw.Sprites.FrontDefault
}

// normalizeCustom maps a custom-store payload into the unified record
// shape, applying defaults for absent or malformed fields. Pure; never
// fails on bad input.
func normalizeCustom(raw *customPayload) *Record {
	rec := &Record{
		ID:         raw.ID,
		Name:       raw.Name,
		Sprite:     raw.Sprite,
		Types:      decodeLooseList(raw.Types),
		Height:     defaultHeight,
		Weight:     defaultWeight,
		FlavorText: raw.FlavorText,
		IsCustom:   true,
		Evolutions: decodeLooseList(raw.Evolutions),
	}
	if raw.Height != nil && *raw.Height > 0 {
		rec.Height = *raw.Height
	}
	if raw.Weight != nil && *raw.Weight > 0 {
		rec.Weight = *raw.Weight
	}
	return rec
}

// decodeLooseList accepts either a JSON string list or the store's raw
// comma-delimited string form; anything else yields an empty list.
func decodeLooseList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		cleaned := []string{}
		for _, item := range list {
			item = strings.TrimSpace(item)
			if item != "" {
				cleaned = append(cleaned, item)
			}
		}
		return cleaned
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		items := []string{}
		for _, part := range strings.Split(joined, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				items = append(items, part)
			}
		}
		return items
	}

	return []string{}
}

// englishFlavorText picks the first English entry and collapses the
// catalog's embedded line and page breaks.
func englishFlavorText(species *officialSpecies) string {
	for _, entry := range species.FlavorTextEntries {
		if entry.Language.Name != "en" {
			continue
		}
		text := strings.ReplaceAll(entry.FlavorText, "\n", " ")
		text = strings.ReplaceAll(text, "\f", " ")
		return strings.Join(strings.Fields(text), " ")
	}
	return ""
}
