// Package sets defines the battle-ready representation of a single Pokémon
// and of a team, plus the textual codecs shared with usage statistics and
// the Showdown import/export format.
package sets

import (
	"github.com/gamephreak/EPOke/internal/id"
)

const (
	// MaxTeamSize is the largest legal team.
	MaxTeamSize = 6
	// MaxMoves is the largest legal move list.
	MaxMoves = 4
	// MaxHappiness is the default happiness for a finished set.
	MaxHappiness = 255
	// DefaultLevel is assumed when a set does not pin a level.
	DefaultLevel = 100
)

// StatsTable holds one value per stat, in game order.
type StatsTable struct {
	HP  int `json:"hp"`
	Atk int `json:"atk"`
	Def int `json:"def"`
	SpA int `json:"spa"`
	SpD int `json:"spd"`
	Spe int `json:"spe"`
}

// PerfectIVs is the IV table assumed when statistics do not specify one.
func PerfectIVs() StatsTable {
	return StatsTable{HP: 31, Atk: 31, Def: 31, SpA: 31, SpD: 31, Spe: 31}
}

// PokemonSet is one fully specified team member. Every field is populated
// by the builder; Ability and Item are empty strings when the species'
// statistics offered no candidate, which is valid rather than an error.
type PokemonSet struct {
	Name      string     `json:"name,omitempty"`
	Species   string     `json:"species"`
	Level     int        `json:"level,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	Shiny     bool       `json:"shiny,omitempty"`
	Ability   string     `json:"ability,omitempty"`
	Item      string     `json:"item,omitempty"`
	Nature    string     `json:"nature,omitempty"`
	Moves     []string   `json:"moves,omitempty"`
	IVs       StatsTable `json:"ivs,omitempty"`
	EVs       StatsTable `json:"evs,omitempty"`
	Happiness int        `json:"happiness,omitempty"`
}

// HasMove reports whether the set already carries the named move.
func (s *PokemonSet) HasMove(move string) bool {
	for _, m := range s.Moves {
		if id.Equal(m, move) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. The builder clones caller-supplied partial
// sets so caller-owned structures are never mutated.
func (s *PokemonSet) Clone() *PokemonSet {
	if s == nil {
		return &PokemonSet{}
	}
	copied := *s
	copied.Moves = append([]string(nil), s.Moves...)
	return &copied
}

// Team is an ordered sequence of at most MaxTeamSize members. Order is
// significant: the first member is the lead.
type Team []*PokemonSet

// Species lists the species of every member in team order.
func (t Team) Species() []string {
	names := make([]string, len(t))
	for i, set := range t {
		names[i] = set.Species
	}
	return names
}

// HasSpecies reports whether any member already uses the named species.
func (t Team) HasSpecies(species string) bool {
	for _, set := range t {
		if id.Equal(set.Species, species) {
			return true
		}
	}
	return false
}
