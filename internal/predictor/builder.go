package predictor

import (
	"github.com/gamephreak/EPOke/internal/heuristics"
	"github.com/gamephreak/EPOke/internal/pool"
	"github.com/gamephreak/EPOke/internal/random"
	"github.com/gamephreak/EPOke/internal/sets"
	"github.com/gamephreak/EPOke/internal/stats"
)

// Moves whose power depends on happiness. A set carrying the inverse move
// without its complement drops to zero happiness.
const (
	happinessInverseMove    = "Frustration"
	happinessComplementMove = "Return"
)

// PredictSet fills in one complete set from a species' statistical
// distributions. partial seeds the fixed attributes (species, level,
// gender, any locked ability, item, or moves); everything still open is
// chosen by repeated weighted selection, biased by the supplied strategy.
// A nil strategy is ambivalent and a nil rng draws a fresh random seed.
//
// The caller's partial set is never mutated. Every field of the returned
// set is populated: ability and item fall back to the empty string when
// the distributions offer no candidate, and the move list may legitimately
// hold fewer than four moves when the species' pool runs dry.
func PredictSet(moveset *stats.SpeciesStatistics, partial *sets.PokemonSet, strategy heuristics.Heuristics, rng pool.Rand) *sets.PokemonSet {
	if moveset == nil {
		moveset = &stats.SpeciesStatistics{}
	}
	if strategy == nil {
		strategy = heuristics.Ambivalent{}
	}
	if rng == nil {
		rng = random.NewRand()
	}

	set := partial.Clone()
	if set.Name == "" {
		set.Name = set.Species
	}
	if set.Level == 0 {
		set.Level = sets.DefaultLevel
	}

	if set.Nature == "" {
		if descriptor, ok, _ := weighted(moveset.Spreads).Select(strategy.Spread(set), rng); ok {
			if spread, err := sets.ParseSpread(descriptor); err == nil {
				spread.Apply(set)
			}
		}
	}
	if set.Ability == "" {
		set.Ability, _, _ = weighted(moveset.Abilities).Select(strategy.Ability(set), rng)
	}
	if set.Item == "" {
		set.Item, _, _ = weighted(moveset.Items).Select(strategy.Item(set), rng)
	}

	fillMoves(set, weighted(moveset.Moves), strategy, rng)

	if set.HasMove(happinessInverseMove) && !set.HasMove(happinessComplementMove) {
		set.Happiness = 0
	} else {
		set.Happiness = sets.MaxHappiness
	}
	return set
}

// fillMoves draws moves until the list is full or the pool is exhausted.
// The first draw folds in the aggregate move-pool preference; later draws
// key on the most recently added move. Moves already on the set, locked or
// drawn, are always vetoed.
func fillMoves(set *sets.PokemonSet, moves pool.Pool, strategy heuristics.Heuristics, rng pool.Rand) {
	exclude := func(name string, weight float64) float64 {
		if set.HasMove(name) {
			return -1
		}
		return weight
	}

	first := true
	last := ""
	for len(set.Moves) < sets.MaxMoves {
		scorer := pool.Combine(pool.Scorer(exclude), strategy.Move(set, last))
		if first {
			scorer = pool.Combine(scorer, strategy.MovePool(set))
		}

		move, ok, next := moves.Select(scorer, rng)
		if !ok {
			return
		}
		moves = next
		set.Moves = append(set.Moves, move)
		last = move
		first = false
	}
}

// weighted builds a pool straight from a weighted-frequency map.
func weighted(source map[string]float64) pool.Pool {
	return pool.New(source, func(name string, weight float64) (string, float64) {
		return name, weight
	})
}
