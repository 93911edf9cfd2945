package heuristics

import (
	"github.com/gamephreak/EPOke/internal/id"
	"github.com/gamephreak/EPOke/internal/pool"
	"github.com/gamephreak/EPOke/internal/sets"
	"github.com/gamephreak/EPOke/internal/stats"
)

// Usage biases species selection with the teammate co-occurrence data in a
// statistics source: species frequently seen alongside the committed
// members are amplified, everything else keeps its base weight.
type Usage struct {
	source   stats.Source
	affinity map[string]float64
}

// NewUsage builds a usage-backed strategy over a statistics source.
func NewUsage(source stats.Source) *Usage {
	return &Usage{
		source:   source,
		affinity: make(map[string]float64),
	}
}

// Species implements Heuristics. When a bias set is supplied its teammate
// distributions alone drive the preference; otherwise the affinity
// accumulated from every committed member applies.
func (u *Usage) Species(_ sets.Team, bias []*sets.PokemonSet) pool.Scorer {
	weights := u.affinity
	if len(bias) > 0 {
		weights = make(map[string]float64)
		for _, member := range bias {
			u.accumulate(weights, member.Species)
		}
	}
	if len(weights) == 0 {
		return nil
	}
	return func(name string, weight float64) float64 {
		if boost, ok := weights[id.Make(name)]; ok && boost > 0 {
			return weight * (1 + boost/100)
		}
		return weight
	}
}

func (u *Usage) Spread(*sets.PokemonSet) pool.Scorer       { return nil }
func (u *Usage) Ability(*sets.PokemonSet) pool.Scorer      { return nil }
func (u *Usage) Item(*sets.PokemonSet) pool.Scorer         { return nil }
func (u *Usage) MovePool(*sets.PokemonSet) pool.Scorer     { return nil }
func (u *Usage) Move(*sets.PokemonSet, string) pool.Scorer { return nil }

// Update implements Heuristics, folding the finalized member's teammate
// distribution into the accumulated affinity.
func (u *Usage) Update(set *sets.PokemonSet) {
	u.accumulate(u.affinity, set.Species)
}

func (u *Usage) accumulate(into map[string]float64, species string) {
	moveset, err := u.source.Moveset(species)
	if err != nil {
		return
	}
	for mate, weight := range moveset.Teammates {
		into[id.Make(mate)] += weight
	}
}
