package dex

import (
	"fmt"

	"github.com/gamephreak/EPOke/internal/id"
	"github.com/gamephreak/EPOke/internal/sets"
)

// FormatConfig selects the rules a Format enforces.
type FormatConfig struct {
	// Generation of the game the format belongs to.
	Generation int
	// MinTeamSize is the smallest team the format accepts. Partial teams
	// below it draw a complaint that incremental builders ignore.
	MinTeamSize int
	// ItemClause limits the team to one of each held item when set.
	ItemClause bool
	// Banlist names species that are never usable in the format.
	Banlist []string
}

// Format is the Oracle implementation backed by a Dex catalog plus the
// standard team-building clauses.
type Format struct {
	dex    *Dex
	config FormatConfig
	banned map[string]bool
}

// NewFormat builds a format over a catalog.
func NewFormat(d *Dex, config FormatConfig) *Format {
	banned := make(map[string]bool, len(config.Banlist))
	for _, name := range config.Banlist {
		banned[id.Make(name)] = true
	}
	return &Format{dex: d, config: config, banned: banned}
}

// Generation reports the format's game generation.
func (f *Format) Generation() int {
	return f.config.Generation
}

// CheckSpecies implements Oracle.
func (f *Format) CheckSpecies(species string) (*Facts, bool) {
	data, ok := f.dex.Species(species)
	if !ok {
		return nil, true
	}
	key := id.Make(species)
	if f.banned[key] || data.Tier == "Illegal" {
		return nil, true
	}

	moves := make(map[string]bool, len(data.Learnset))
	for _, move := range data.Learnset {
		moves[id.Make(move)] = true
	}
	return &Facts{
		Species:   key,
		Name:      data.Name,
		Gender:    data.Gender,
		Moves:     moves,
		ShinyOnly: data.ShinyOnly,
	}, false
}

// ValidateTeam implements Oracle.
func (f *Format) ValidateTeam(team sets.Team, hints []*Facts) []string {
	var complaints []string

	if len(team) > sets.MaxTeamSize {
		complaints = append(complaints, fmt.Sprintf("You may only bring up to %d Pokémon.", sets.MaxTeamSize))
	}
	if f.config.MinTeamSize > 0 && len(team) < f.config.MinTeamSize {
		complaints = append(complaints, fmt.Sprintf("You must bring at least %d Pokémon.", f.config.MinTeamSize))
	}

	seenSpecies := make(map[string]string, len(team))
	seenItems := make(map[string]string, len(team))
	for i, set := range team {
		species := id.Make(set.Species)
		if prior, dup := seenSpecies[species]; dup {
			complaints = append(complaints, fmt.Sprintf("Species Clause: you are limited to one of each Pokémon (%s).", prior))
		} else {
			seenSpecies[species] = set.Species
		}
		if f.config.ItemClause && set.Item != "" {
			item := id.Make(set.Item)
			if _, dup := seenItems[item]; dup {
				complaints = append(complaints, fmt.Sprintf("Item Clause: you are limited to one of each item (%s).", set.Item))
			} else {
				seenItems[item] = set.Item
			}
		}

		var facts *Facts
		if i < len(hints) {
			facts = hints[i]
		}
		if facts == nil {
			checked, invalid := f.CheckSpecies(set.Species)
			if invalid {
				complaints = append(complaints, fmt.Sprintf("%s is not usable in this format.", set.Species))
				continue
			}
			facts = checked
		}
		complaints = append(complaints, f.validateWithFacts(set, facts)...)
	}
	return complaints
}

// ValidateSet implements Oracle.
func (f *Format) ValidateSet(set *sets.PokemonSet) []string {
	facts, invalid := f.CheckSpecies(set.Species)
	if invalid {
		return []string{fmt.Sprintf("%s is not usable in this format.", set.Species)}
	}
	return f.validateWithFacts(set, facts)
}

func (f *Format) validateWithFacts(set *sets.PokemonSet, facts *Facts) []string {
	var complaints []string

	if len(set.Moves) > sets.MaxMoves {
		complaints = append(complaints, fmt.Sprintf("%s has more than %d moves.", set.Species, sets.MaxMoves))
	}
	seen := make(map[string]bool, len(set.Moves))
	for _, move := range set.Moves {
		key := id.Make(move)
		if seen[key] {
			complaints = append(complaints, fmt.Sprintf("%s has two copies of %s.", set.Species, move))
			continue
		}
		seen[key] = true
		if !facts.Learns(move) {
			complaints = append(complaints, fmt.Sprintf("%s can't learn %s.", set.Species, move))
		}
	}

	if facts.Gender != "" && set.Gender != "" && set.Gender != facts.Gender {
		complaints = append(complaints, fmt.Sprintf("%s must be %s gender.", set.Species, facts.Gender))
	}
	if facts.ShinyOnly && !set.Shiny {
		complaints = append(complaints, fmt.Sprintf("%s is only available as a shiny.", set.Species))
	}
	return complaints
}
