package predictor

import (
	"math/rand"
	"testing"

	"github.com/gamephreak/EPOke/internal/sets"
	"github.com/gamephreak/EPOke/internal/stats"
)

// fixedRand always returns the same fraction so draws are deterministic.
type fixedRand struct {
	value float64
}

func (f fixedRand) Float64() float64 {
	return f.value
}

func pidgeyMoveset() *stats.SpeciesStatistics {
	return &stats.SpeciesStatistics{
		Spreads:   map[string]float64{"Adamant:0/252/0/0/4/252": 90, "Impish:252/0/252/0/4/0": 10},
		Abilities: map[string]float64{"Keen Eye": 80, "Tangled Feet": 20},
		Items:     map[string]float64{"Choice Band": 55, "Leftovers": 45},
		Moves: map[string]float64{
			"Return": 90, "Brave Bird": 80, "U-turn": 60, "Roost": 50, "Quick Attack": 30,
		},
	}
}

func TestPredictSetPopulatesEverything(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	set := PredictSet(pidgeyMoveset(), &sets.PokemonSet{Species: "Pidgey"}, nil, rng)

	if set.Name != "Pidgey" || set.Level != sets.DefaultLevel {
		t.Errorf("seeded attributes = %q level %d, want Pidgey level %d", set.Name, set.Level, sets.DefaultLevel)
	}
	if set.Nature == "" {
		t.Error("nature not adopted from spread")
	}
	if set.IVs != sets.PerfectIVs() {
		t.Errorf("IVs = %+v, want perfect", set.IVs)
	}
	if set.Ability == "" || set.Item == "" {
		t.Errorf("ability %q item %q, want both chosen", set.Ability, set.Item)
	}
	if len(set.Moves) != sets.MaxMoves {
		t.Errorf("moves = %v, want %d entries", set.Moves, sets.MaxMoves)
	}
	assertDistinctMoves(t, set)
	if set.Happiness != sets.MaxHappiness {
		t.Errorf("happiness = %d, want %d", set.Happiness, sets.MaxHappiness)
	}
}

func TestPredictSetRespectsLockedAttributes(t *testing.T) {
	partial := &sets.PokemonSet{
		Species: "Pidgey",
		Level:   5,
		Ability: "Big Pecks",
		Item:    "Oran Berry",
		Nature:  "Jolly",
		Moves:   []string{"Gust"},
	}
	set := PredictSet(pidgeyMoveset(), partial, nil, rand.New(rand.NewSource(2)))

	if set.Level != 5 || set.Ability != "Big Pecks" || set.Item != "Oran Berry" || set.Nature != "Jolly" {
		t.Errorf("locked attributes overwritten: %+v", set)
	}
	if set.Moves[0] != "Gust" {
		t.Errorf("locked move displaced: %v", set.Moves)
	}
	if len(partial.Moves) != 1 {
		t.Errorf("caller-owned partial mutated: %v", partial.Moves)
	}
	assertDistinctMoves(t, set)
}

func TestPredictSetLockedMoveNeverDuplicated(t *testing.T) {
	moveset := &stats.SpeciesStatistics{
		Moves: map[string]float64{"Return": 100, "Tackle": 1},
	}
	partial := &sets.PokemonSet{Species: "Eevee", Moves: []string{"Return"}}
	set := PredictSet(moveset, partial, nil, fixedRand{0.99})

	if len(set.Moves) != 2 {
		t.Fatalf("moves = %v, want locked Return plus Tackle", set.Moves)
	}
	assertDistinctMoves(t, set)
}

func TestPredictSetSmallMovePoolTruncates(t *testing.T) {
	moveset := &stats.SpeciesStatistics{
		Moves: map[string]float64{"Splash": 100},
	}
	set := PredictSet(moveset, &sets.PokemonSet{Species: "Magikarp"}, nil, rand.New(rand.NewSource(3)))

	if len(set.Moves) != 1 || set.Moves[0] != "Splash" {
		t.Errorf("moves = %v, want just Splash", set.Moves)
	}
}

func TestPredictSetEmptyDistributions(t *testing.T) {
	set := PredictSet(nil, &sets.PokemonSet{Species: "Missingno"}, nil, rand.New(rand.NewSource(4)))

	if set.Ability != "" || set.Item != "" {
		t.Errorf("ability %q item %q, want empty strings", set.Ability, set.Item)
	}
	if len(set.Moves) != 0 {
		t.Errorf("moves = %v, want none", set.Moves)
	}
	if set.Happiness != sets.MaxHappiness {
		t.Errorf("happiness = %d, want %d", set.Happiness, sets.MaxHappiness)
	}
}

func TestPredictSetHappiness(t *testing.T) {
	tests := []struct {
		name   string
		locked []string
		moves  map[string]float64
		want   int
	}{
		{
			name:  "frustration without return",
			moves: map[string]float64{"Frustration": 100},
			want:  0,
		},
		{
			name:   "frustration alongside locked return",
			locked: []string{"Return"},
			moves:  map[string]float64{"Frustration": 100},
			want:   sets.MaxHappiness,
		},
		{
			name:  "no happiness moves",
			moves: map[string]float64{"Tackle": 100},
			want:  sets.MaxHappiness,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			partial := &sets.PokemonSet{Species: "Eevee", Moves: tt.locked}
			set := PredictSet(&stats.SpeciesStatistics{Moves: tt.moves}, partial, nil, fixedRand{0.5})
			if set.Happiness != tt.want {
				t.Errorf("happiness = %d, want %d (moves %v)", set.Happiness, tt.want, set.Moves)
			}
		})
	}
}

func TestPredictSetDeterminism(t *testing.T) {
	first := PredictSet(pidgeyMoveset(), &sets.PokemonSet{Species: "Pidgey"}, nil, rand.New(rand.NewSource(99)))
	second := PredictSet(pidgeyMoveset(), &sets.PokemonSet{Species: "Pidgey"}, nil, rand.New(rand.NewSource(99)))

	if sets.ExportSet(first) != sets.ExportSet(second) {
		t.Errorf("identical seeds diverged:\n%s\nvs\n%s", sets.ExportSet(first), sets.ExportSet(second))
	}
}

func assertDistinctMoves(t *testing.T, set *sets.PokemonSet) {
	t.Helper()
	if len(set.Moves) > sets.MaxMoves {
		t.Fatalf("move list %v longer than %d", set.Moves, sets.MaxMoves)
	}
	seen := make(map[string]bool, len(set.Moves))
	for _, move := range set.Moves {
		if seen[move] {
			t.Fatalf("duplicate move %q in %v", move, set.Moves)
		}
		seen[move] = true
	}
}
