// Package pokedex is the lookup core consumed by the UI layer. It merges
// two upstream sources, the public official catalog and the local custom
// store, into one record shape, builds evolution chains, and manages
// per-session caching and request cancellation.
package pokedex

// Record is the unified in-memory shape for a Pokemon, whichever source
// answered. Official ids lie in 1..1025; custom ids start at 1026.
type Record struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Sprite     string   `json:"sprite,omitempty"`
	Types      []string `json:"types"`
	Height     int      `json:"height"`
	Weight     int      `json:"weight"`
	FlavorText string   `json:"flavorText"`
	IsCustom   bool     `json:"isCustom"`

	// Evolutions is the flat target list carried by custom records only;
	// the chain builder turns it into one level of children. Official
	// records leave it empty and use the catalog's chain resource instead.
	Evolutions []string `json:"evolutions,omitempty"`
}

// Stage is one node of an evolution chain. The root's Trigger is always nil.
type Stage struct {
	Name     string           `json:"name"`
	Sprite   string           `json:"sprite,omitempty"`
	Trigger  *EvolutionDetail `json:"triggerFromPrevious,omitempty"`
	Children []*Stage         `json:"children"`
}

// EvolutionDetail describes how a stage evolves from its predecessor.
// Every field is optional; absent values stay zero.
type EvolutionDetail struct {
	Trigger      string `json:"trigger,omitempty"`
	MinLevel     *int   `json:"minLevel,omitempty"`
	Item         string `json:"item,omitempty"`
	TimeOfDay    string `json:"timeOfDay,omitempty"`
	HeldItem     string `json:"heldItem,omitempty"`
	MinHappiness *int   `json:"minHappiness,omitempty"`
	Conditions   string `json:"conditions,omitempty"`
}
