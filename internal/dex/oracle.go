package dex

import (
	"strings"

	"github.com/gamephreak/EPOke/internal/id"
	"github.com/gamephreak/EPOke/internal/sets"
)

// Facts is what the oracle already knows about a species: the material a
// validator would otherwise re-derive on every check. The predictor caches
// one Facts value per species at construction and hands them back as hints.
type Facts struct {
	Species   string
	Name      string
	Gender    string
	Moves     map[string]bool
	ShinyOnly bool
}

// Learns reports whether the move is in the species' known learnset. An
// empty learnset means move data is unavailable and nothing is ruled out.
func (f *Facts) Learns(move string) bool {
	if f == nil || len(f.Moves) == 0 {
		return true
	}
	return f.Moves[id.Make(move)]
}

// Oracle is the legality collaborator the predictor consults. A nil
// complaint list means legal.
type Oracle interface {
	// CheckSpecies reports whether a species is outright unusable in the
	// format and returns the facts a later validation can reuse.
	CheckSpecies(species string) (facts *Facts, invalid bool)

	// ValidateTeam checks a whole team. hints carries one Facts value per
	// member (nil entries allowed) so species checks are not re-derived.
	ValidateTeam(team sets.Team, hints []*Facts) []string

	// ValidateSet checks a single set in isolation.
	ValidateSet(set *sets.PokemonSet) []string
}

// IsTeamSizeComplaint reports whether a complaint is only about the team
// not yet having enough members, an expected condition while a team is
// built incrementally.
func IsTeamSizeComplaint(complaint string) bool {
	return strings.Contains(complaint, "at least")
}

// IsShinyComplaint reports whether a complaint can be fixed by forcing the
// set shiny.
func IsShinyComplaint(complaint string) bool {
	return strings.Contains(strings.ToLower(complaint), "shiny")
}
