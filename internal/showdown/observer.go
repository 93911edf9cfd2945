// Package showdown observes battles on a Pokémon Showdown server and
// accumulates the partial team information a prediction starts from.
//
// The Observer is a pure protocol-line consumer so it can be driven from a
// replay log as easily as from the live websocket client.
package showdown

import (
	"strconv"
	"strings"

	"github.com/gamephreak/EPOke/internal/id"
	"github.com/gamephreak/EPOke/internal/sets"
)

// Observer extracts one side's revealed team from battle protocol lines.
type Observer struct {
	side      string
	order     []string
	activeKey string
	known     map[string]*sets.PokemonSet
}

// NewObserver watches one player's side, "p1" or "p2".
func NewObserver(side string) *Observer {
	return &Observer{
		side:  side,
		known: make(map[string]*sets.PokemonSet),
	}
}

// Team returns the partial information gathered so far, in reveal order.
// The returned sets are copies; observing further lines never mutates a
// team already handed out.
func (o *Observer) Team() sets.Team {
	team := make(sets.Team, 0, len(o.order))
	for _, key := range o.order {
		team = append(team, o.known[key].Clone())
	}
	return team
}

// Observe consumes one protocol line. Lines for the other side, chat
// traffic, and messages the observer does not care about are ignored.
func (o *Observer) Observe(line string) {
	if !strings.HasPrefix(line, "|") {
		return
	}
	fields := strings.Split(line[1:], "|")
	if len(fields) < 2 {
		return
	}

	switch fields[0] {
	case "poke":
		// |poke|p2|Pidgey, L50, M|item
		if len(fields) >= 3 && fields[1] == o.side {
			o.reveal(fields[2])
		}
	case "switch", "drag":
		// |switch|p2a: Birdy|Pidgey, L50, M|100/100
		if len(fields) >= 3 && o.ownPosition(fields[1]) {
			set := o.reveal(fields[2])
			if set == nil {
				return
			}
			if name := nickname(fields[1]); name != "" {
				set.Name = name
			}
			o.activeKey = id.Make(set.Species)
		}
	case "move":
		// |move|p2a: Birdy|Quick Attack|p1a: Foo
		if len(fields) >= 3 && o.ownPosition(fields[1]) {
			o.observeMove(fields[1], fields[2])
		}
	case "-item":
		// |-item|p2a: Birdy|Choice Band
		if len(fields) >= 3 && o.ownPosition(fields[1]) {
			if set := o.active(fields[1]); set != nil && set.Item == "" {
				set.Item = fields[2]
			}
		}
	case "-ability":
		// |-ability|p2a: Birdy|Keen Eye
		if len(fields) >= 3 && o.ownPosition(fields[1]) {
			if set := o.active(fields[1]); set != nil && set.Ability == "" {
				set.Ability = fields[2]
			}
		}
	}
}

// reveal records a species sighting, parsing "Pidgey, L50, M" details.
func (o *Observer) reveal(details string) *sets.PokemonSet {
	parts := strings.Split(details, ",")
	species := strings.TrimSpace(parts[0])
	key := id.Make(species)
	if key == "" {
		return nil
	}
	if set, ok := o.known[key]; ok {
		return set
	}

	set := &sets.PokemonSet{Species: species}
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		switch {
		case part == "M" || part == "F":
			set.Gender = part
		case part == "shiny":
			set.Shiny = true
		case strings.HasPrefix(part, "L"):
			if level, err := strconv.Atoi(part[1:]); err == nil {
				set.Level = level
			}
		}
	}
	o.known[key] = set
	o.order = append(o.order, key)
	return set
}

func (o *Observer) observeMove(position, move string) {
	set := o.active(position)
	if set == nil || len(set.Moves) >= sets.MaxMoves || set.HasMove(move) {
		return
	}
	set.Moves = append(set.Moves, move)
}

// active resolves a position like "p2a: Birdy" to the set revealed under
// that nickname, falling back to whichever member last switched in.
func (o *Observer) active(position string) *sets.PokemonSet {
	if name := nickname(position); name != "" {
		for _, set := range o.known {
			if set.Name == name {
				return set
			}
		}
	}
	return o.known[o.activeKey]
}

func (o *Observer) ownPosition(position string) bool {
	return strings.HasPrefix(position, o.side)
}

func nickname(position string) string {
	if _, name, ok := strings.Cut(position, ": "); ok {
		return name
	}
	return ""
}
