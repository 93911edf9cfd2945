// Package stats models aggregate usage statistics: how often a species is
// used at all, how often it leads, and the weighted distributions of the
// spreads, abilities, items, moves, and teammates observed with it.
//
// The package defines the Source contract the team predictor consumes and
// an in-memory Snapshot implementation loaded from a JSON dump. A
// SQLite-backed implementation lives in the sqlite subpackage.
package stats

import "errors"

// ErrUnknownSpecies reports a moveset lookup for a species absent from the
// statistics snapshot.
var ErrUnknownSpecies = errors.New("species not in statistics")

// Usage is one usage figure: the raw count alongside the rating-weighted
// value. Selection always works off the weighted value.
type Usage struct {
	Raw      float64 `json:"raw"`
	Weighted float64 `json:"weighted"`
}

// UsageWeights is the per-species summary used to build species pools.
type UsageWeights struct {
	Usage Usage `json:"usage"`
	Lead  Usage `json:"lead"`
}

// SpeciesStatistics is the full distribution set observed for one species.
// Map keys are display names except Spreads, which is keyed by spread
// descriptor ("Modest:0/0/0/252/4/252").
type SpeciesStatistics struct {
	UsageWeights
	Spreads   map[string]float64 `json:"spreads"`
	Abilities map[string]float64 `json:"abilities"`
	Items     map[string]float64 `json:"items"`
	Moves     map[string]float64 `json:"moves"`
	Teammates map[string]float64 `json:"teammates"`
}

// Source supplies usage statistics to the predictor. Implementations are
// read-only once constructed.
type Source interface {
	// Usage returns the usage and lead weights for every species in the
	// snapshot, keyed by species identifier.
	Usage() (map[string]UsageWeights, error)

	// Moveset returns the full distributions for one species. Unknown
	// species report ErrUnknownSpecies.
	Moveset(species string) (*SpeciesStatistics, error)
}
