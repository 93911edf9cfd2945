// Package heuristics defines the pluggable scoring strategies that bias
// team construction toward realistic compositions.
//
// A Heuristics value produces one scorer per facet of set construction.
// Scorers are preferences only: the structural exclusions (species already
// on the team, moves already on the set) are owned by the builder and
// combined veto-first, so no strategy can reintroduce a duplicate.
package heuristics

import (
	"github.com/gamephreak/EPOke/internal/pool"
	"github.com/gamephreak/EPOke/internal/sets"
)

// Heuristics is the capability set consulted during building. Any method
// may return a nil scorer to express no preference for that facet.
type Heuristics interface {
	// Species scores species candidates for the next open slot. bias
	// carries the teammates the choice should synergize with: the member
	// committed on the previous iteration, or a freshly seen batch of
	// caller-fixed members. An empty bias means no team context applies.
	Species(team sets.Team, bias []*sets.PokemonSet) pool.Scorer

	// Spread scores stat-spread descriptors for the set under construction.
	Spread(set *sets.PokemonSet) pool.Scorer

	// Ability scores ability candidates.
	Ability(set *sets.PokemonSet) pool.Scorer

	// Item scores held-item candidates.
	Item(set *sets.PokemonSet) pool.Scorer

	// MovePool scores the aggregate move pool before the first move draw.
	MovePool(set *sets.PokemonSet) pool.Scorer

	// Move scores individual move candidates; last names the most recently
	// added move, or "" on the first draw.
	Move(set *sets.PokemonSet, last string) pool.Scorer

	// Update runs once a team member is finalized, letting the strategy
	// adjust internal state before later slots consult it.
	Update(set *sets.PokemonSet)
}

// Ambivalent is the default strategy: no preference on any facet and no
// internal state.
type Ambivalent struct{}

func (Ambivalent) Species(sets.Team, []*sets.PokemonSet) pool.Scorer { return nil }
func (Ambivalent) Spread(*sets.PokemonSet) pool.Scorer              { return nil }
func (Ambivalent) Ability(*sets.PokemonSet) pool.Scorer             { return nil }
func (Ambivalent) Item(*sets.PokemonSet) pool.Scorer                { return nil }
func (Ambivalent) MovePool(*sets.PokemonSet) pool.Scorer            { return nil }
func (Ambivalent) Move(*sets.PokemonSet, string) pool.Scorer        { return nil }
func (Ambivalent) Update(*sets.PokemonSet)                          {}
