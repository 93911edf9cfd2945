package dex

import (
	"strings"
	"testing"

	"github.com/gamephreak/EPOke/internal/sets"
)

func testDex() *Dex {
	return NewDex([]SpeciesData{
		{
			Name:      "Pidgey",
			Types:     []string{"Normal", "Flying"},
			Tier:      "LC",
			Abilities: []string{"Keen Eye", "Tangled Feet"},
			Learnset:  []string{"Tackle", "Gust", "Quick Attack", "Return", "Frustration", "Roost"},
		},
		{
			Name:     "Rattata",
			Types:    []string{"Normal"},
			Tier:     "LC",
			Learnset: []string{"Tackle", "Quick Attack", "Hyper Fang"},
		},
		{
			Name:      "Wishmur",
			Types:     []string{"Normal"},
			Tier:      "LC",
			ShinyOnly: true,
			Learnset:  []string{"Pound"},
		},
		{
			Name:  "Mewtwo",
			Types: []string{"Psychic"},
			Tier:  "Illegal",
		},
		{
			Name:   "Nidoran-F",
			Types:  []string{"Poison"},
			Tier:   "LC",
			Gender: "F",
		},
	})
}

func testFormat() *Format {
	return NewFormat(testDex(), FormatConfig{
		Generation:  4,
		MinTeamSize: 6,
		Banlist:     []string{"Rattata"},
	})
}

func TestCheckSpecies(t *testing.T) {
	format := testFormat()

	tests := []struct {
		name        string
		species     string
		wantInvalid bool
	}{
		{"legal species", "Pidgey", false},
		{"normalized lookup", "pidgey", false},
		{"unknown species", "Missingno", true},
		{"banlisted species", "Rattata", true},
		{"illegal tier", "Mewtwo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts, invalid := format.CheckSpecies(tt.species)
			if invalid != tt.wantInvalid {
				t.Fatalf("CheckSpecies(%q) invalid = %v, want %v", tt.species, invalid, tt.wantInvalid)
			}
			if !invalid && facts == nil {
				t.Fatalf("CheckSpecies(%q) returned no facts for a legal species", tt.species)
			}
		})
	}
}

func TestFactsLearns(t *testing.T) {
	format := testFormat()
	facts, invalid := format.CheckSpecies("Pidgey")
	if invalid {
		t.Fatal("CheckSpecies(Pidgey) reported invalid")
	}

	if !facts.Learns("Quick Attack") {
		t.Error("Learns(Quick Attack) = false, want true")
	}
	if facts.Learns("Surf") {
		t.Error("Learns(Surf) = true, want false")
	}

	// Species with no learnset data rule nothing out.
	empty := &Facts{Species: "unknown"}
	if !empty.Learns("Surf") {
		t.Error("empty learnset should not rule out moves")
	}
}

func TestValidateSet(t *testing.T) {
	format := testFormat()

	tests := []struct {
		name string
		set  *sets.PokemonSet
		want string
	}{
		{
			name: "legal set",
			set:  &sets.PokemonSet{Species: "Pidgey", Moves: []string{"Return", "Roost"}},
			want: "",
		},
		{
			name: "illegal move",
			set:  &sets.PokemonSet{Species: "Pidgey", Moves: []string{"Surf"}},
			want: "can't learn Surf",
		},
		{
			name: "duplicate move",
			set:  &sets.PokemonSet{Species: "Pidgey", Moves: []string{"Roost", "Roost"}},
			want: "two copies of Roost",
		},
		{
			name: "too many moves",
			set:  &sets.PokemonSet{Species: "Pidgey", Moves: []string{"Tackle", "Gust", "Quick Attack", "Return", "Roost"}},
			want: "more than 4 moves",
		},
		{
			name: "shiny required",
			set:  &sets.PokemonSet{Species: "Wishmur", Moves: []string{"Pound"}},
			want: "only available as a shiny",
		},
		{
			name: "shiny satisfied",
			set:  &sets.PokemonSet{Species: "Wishmur", Shiny: true, Moves: []string{"Pound"}},
			want: "",
		},
		{
			name: "wrong gender",
			set:  &sets.PokemonSet{Species: "Nidoran-F", Gender: "M"},
			want: "must be F gender",
		},
		{
			name: "banned species",
			set:  &sets.PokemonSet{Species: "Mewtwo"},
			want: "not usable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complaints := format.ValidateSet(tt.set)
			if tt.want == "" {
				if len(complaints) != 0 {
					t.Fatalf("ValidateSet() = %v, want legal", complaints)
				}
				return
			}
			if len(complaints) == 0 {
				t.Fatalf("ValidateSet() legal, want complaint containing %q", tt.want)
			}
			joined := strings.Join(complaints, "; ")
			if !strings.Contains(joined, tt.want) {
				t.Errorf("ValidateSet() = %q, want complaint containing %q", joined, tt.want)
			}
		})
	}
}

func TestValidateTeamClauses(t *testing.T) {
	format := testFormat()

	team := sets.Team{
		{Species: "Pidgey", Moves: []string{"Return"}},
		{Species: "pidgey", Moves: []string{"Roost"}},
	}
	complaints := format.ValidateTeam(team, nil)
	joined := strings.Join(complaints, "; ")

	if !strings.Contains(joined, "Species Clause") {
		t.Errorf("ValidateTeam() = %q, want species clause complaint", joined)
	}
	if !strings.Contains(joined, "at least 6") {
		t.Errorf("ValidateTeam() = %q, want minimum size complaint", joined)
	}
}

func TestValidateTeamUsesHints(t *testing.T) {
	format := testFormat()

	// A hint asserting Surf is known-legal must suppress the learnset
	// complaint the catalog would raise.
	hint := &Facts{Species: "pidgey", Name: "Pidgey", Moves: map[string]bool{"surf": true}}
	team := sets.Team{{Species: "Pidgey", Moves: []string{"Surf"}}}

	complaints := format.ValidateTeam(team, []*Facts{hint})
	for _, c := range complaints {
		if strings.Contains(c, "learn") {
			t.Errorf("hinted ValidateTeam() still checked learnset: %q", c)
		}
	}
}

func TestComplaintClassifiers(t *testing.T) {
	if !IsTeamSizeComplaint("You must bring at least 6 Pokémon.") {
		t.Error("IsTeamSizeComplaint missed a size complaint")
	}
	if IsTeamSizeComplaint("Pidgey can't learn Surf.") {
		t.Error("IsTeamSizeComplaint matched a learnset complaint")
	}
	if !IsShinyComplaint("Wishmur is only available as a shiny.") {
		t.Error("IsShinyComplaint missed a shiny complaint")
	}
	if IsShinyComplaint("Species Clause: you are limited to one of each Pokémon (Pidgey).") {
		t.Error("IsShinyComplaint matched a species clause complaint")
	}
}
