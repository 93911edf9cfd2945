// Package predictor assembles a plausible competitive team from aggregate
// usage statistics and whatever partial knowledge of the opponent exists.
//
// Construction is probabilistic by design: species and set details are
// drawn by weighted selection without replacement, biased by a pluggable
// heuristics strategy, and checked against an external legality oracle
// under a caller-supplied retry budget. Every failure mode degrades to a
// smaller, still-valid team rather than an error.
package predictor

import (
	"errors"
	"fmt"

	"github.com/gamephreak/EPOke/internal/dex"
	"github.com/gamephreak/EPOke/internal/heuristics"
	"github.com/gamephreak/EPOke/internal/id"
	"github.com/gamephreak/EPOke/internal/pool"
	"github.com/gamephreak/EPOke/internal/random"
	"github.com/gamephreak/EPOke/internal/sets"
	"github.com/gamephreak/EPOke/internal/stats"
)

// Lead usage statistics are only trustworthy before team preview made the
// opening pick strategic rather than structural.
const defaultLeadGenerationLimit = 5

// Options tunes a Predictor.
type Options struct {
	// Generation of the game being predicted for.
	Generation int
	// LeadGenerationLimit is the first generation that no longer uses
	// lead-specific statistics for slot 0. Zero means the default.
	LeadGenerationLimit int
	// Heuristics constructs a fresh strategy for each prediction, since a
	// strategy accumulates state as members are committed. Nil means
	// ambivalent.
	Heuristics func() heuristics.Heuristics
}

// Predictor builds teams for one format from one statistics snapshot.
//
// The species legality cache is populated once at construction and
// read-only afterwards: every species in the snapshot is checked against
// the oracle, and species the format has since banned survive in the
// pools only as pre-excluded entries.
type Predictor struct {
	oracle  dex.Oracle
	source  stats.Source
	options Options
	usage   map[string]stats.UsageWeights
	facts   map[string]*dex.Facts
}

// New builds a Predictor, snapshotting usage weights and the per-species
// legality facts the validator would otherwise re-derive on every check.
func New(oracle dex.Oracle, source stats.Source, options Options) (*Predictor, error) {
	if oracle == nil {
		return nil, errors.New("legality oracle is required")
	}
	if source == nil {
		return nil, errors.New("statistics source is required")
	}
	if options.LeadGenerationLimit == 0 {
		options.LeadGenerationLimit = defaultLeadGenerationLimit
	}

	usage, err := source.Usage()
	if err != nil {
		return nil, fmt.Errorf("snapshot usage statistics: %w", err)
	}

	facts := make(map[string]*dex.Facts, len(usage))
	for species := range usage {
		if known, invalid := oracle.CheckSpecies(species); !invalid {
			facts[species] = known
		}
	}

	return &Predictor{
		oracle:  oracle,
		source:  source,
		options: options,
		usage:   usage,
		facts:   facts,
	}, nil
}

// PredictTeam predicts a full team of up to six members.
//
// partial supplies known constraints for the leading slots, in order with
// no gaps; it is treated as read-only. rng is the sole entropy input (nil
// draws a fresh seed). budget bounds how many legality rejections trigger
// a retry; once it runs out remaining slots are built best-effort without
// validation.
//
// The result may legitimately hold fewer than six members when no further
// selectable species exists.
func (p *Predictor) PredictTeam(partial sets.Team, rng pool.Rand, budget int) (sets.Team, error) {
	if rng == nil {
		rng = random.NewRand()
	}
	strategy := p.newStrategy()

	general := p.speciesPool(false)
	lead := p.speciesPool(true)

	team := make(sets.Team, 0, sets.MaxTeamSize)
	// bias carries the members the next species draw should synergize
	// with; fixedBatch accumulates caller-fixed members until the first
	// sampled slot reacts to the whole batch at once.
	var bias []*sets.PokemonSet
	var fixedBatch []*sets.PokemonSet

	for len(team) < sets.MaxTeamSize {
		slot := len(team)
		var set *sets.PokemonSet
		fixed := slot < len(partial) && partial[slot] != nil

		if fixed {
			built, err := p.buildSlot(partial[slot], strategy, rng)
			if err != nil {
				return team, err
			}
			set = built
		} else {
			if len(fixedBatch) > 0 {
				bias = fixedBatch
				fixedBatch = nil
			}

			var species string
			var ok bool
			if slot == 0 && p.options.Generation < p.options.LeadGenerationLimit {
				// No team context exists yet to score against; the lead
				// pool's own weighting is the whole story.
				species, ok, lead = lead.Select(nil, rng)
			} else {
				scorer := pool.Combine(p.excludeTeam(team), strategy.Species(team, bias))
				species, ok, general = general.Select(scorer, rng)
			}
			if !ok {
				return team, nil
			}

			built, err := p.buildSlot(p.seedSet(species), strategy, rng)
			if err != nil {
				return team, err
			}
			set = built
		}

		if budget > 0 {
			accepted, spent := p.validate(team, set)
			budget -= spent
			if !accepted {
				// A rejected draw contributes no synergy context.
				bias = nil
				continue
			}
		}

		team = append(team, set)
		if len(team) < sets.MaxTeamSize {
			strategy.Update(set)
		}
		if fixed {
			fixedBatch = append(fixedBatch, set)
		} else {
			bias = []*sets.PokemonSet{set}
		}
	}
	return team, nil
}

// PredictSet predicts one set for a species without team context.
func (p *Predictor) PredictSet(species string, rng pool.Rand) (*sets.PokemonSet, error) {
	if rng == nil {
		rng = random.NewRand()
	}
	return p.buildSlot(p.seedSet(id.Make(species)), p.newStrategy(), rng)
}

func (p *Predictor) newStrategy() heuristics.Heuristics {
	if p.options.Heuristics == nil {
		return heuristics.Ambivalent{}
	}
	if strategy := p.options.Heuristics(); strategy != nil {
		return strategy
	}
	return heuristics.Ambivalent{}
}

// seedSet starts a set for a sampled species, pulling the display name and
// fixed gender from the cached legality facts.
func (p *Predictor) seedSet(species string) *sets.PokemonSet {
	set := &sets.PokemonSet{Species: species}
	if facts := p.facts[id.Make(species)]; facts != nil {
		set.Species = facts.Name
		set.Gender = facts.Gender
	}
	return set
}

// buildSlot fills in one member from the species' distributions. A species
// missing from the statistics snapshot builds from empty distributions,
// which still yields a usable (if sparse) set.
func (p *Predictor) buildSlot(partial *sets.PokemonSet, strategy heuristics.Heuristics, rng pool.Rand) (*sets.PokemonSet, error) {
	moveset, err := p.source.Moveset(partial.Species)
	if err != nil && !errors.Is(err, stats.ErrUnknownSpecies) {
		return nil, fmt.Errorf("moveset statistics for %s: %w", partial.Species, err)
	}
	return PredictSet(moveset, partial, strategy, rng), nil
}

// speciesPool builds the general or lead-weighted species pool. Species
// absent from the legality cache were rejected by the oracle at
// construction time and enter the pool pre-excluded.
func (p *Predictor) speciesPool(leads bool) pool.Pool {
	return pool.New(p.usage, func(species string, weights stats.UsageWeights) (string, float64) {
		key := id.Make(species)
		if p.facts[key] == nil {
			return key, -1
		}
		if leads {
			return key, weights.Lead.Weighted
		}
		return key, weights.Usage.Weighted
	})
}

// excludeTeam vetoes every species already on the team.
func (p *Predictor) excludeTeam(team sets.Team) pool.Scorer {
	if len(team) == 0 {
		return nil
	}
	return func(species string, weight float64) float64 {
		if team.HasSpecies(species) {
			return -1
		}
		return weight
	}
}

// validate runs the legality gate for the newest set. It reports whether
// the set was accepted and how much of the validation budget was spent:
// clean teams cost nothing, while any substantive rejection costs one
// retry, including a rejection repaired by forcing the set shiny.
func (p *Predictor) validate(team sets.Team, set *sets.PokemonSet) (accepted bool, spent int) {
	candidate := append(append(sets.Team{}, team...), set)
	if p.substantive(p.oracle.ValidateTeam(candidate, p.hints(candidate))) == 0 {
		return true, 0
	}

	// The team as a whole is illegal; see whether the newest set alone is
	// the problem and whether it is the one defect known to be repairable.
	complaints := p.oracle.ValidateSet(set)
	if len(complaints) == 1 && dex.IsShinyComplaint(complaints[0]) {
		set.Shiny = true
		if len(p.oracle.ValidateSet(set)) == 0 {
			return true, 1
		}
	}
	return false, 1
}

// substantive counts complaints other than the team simply not being full
// yet, which is expected during an incremental build.
func (p *Predictor) substantive(complaints []string) int {
	count := 0
	for _, complaint := range complaints {
		if !dex.IsTeamSizeComplaint(complaint) {
			count++
		}
	}
	return count
}

// hints pairs each member with its cached legality facts.
func (p *Predictor) hints(team sets.Team) []*dex.Facts {
	hints := make([]*dex.Facts, len(team))
	for i, member := range team {
		hints[i] = p.facts[id.Make(member.Species)]
	}
	return hints
}
