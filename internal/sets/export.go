package sets

import (
	"fmt"
	"strings"
)

var statLabels = []string{"HP", "Atk", "Def", "SpA", "SpD", "Spe"}

func statValues(table StatsTable) []int {
	return []int{table.HP, table.Atk, table.Def, table.SpA, table.SpD, table.Spe}
}

// Export renders the team in Showdown's importable text format, one blank
// line between members.
func Export(team Team) string {
	parts := make([]string, len(team))
	for i, set := range team {
		parts[i] = ExportSet(set)
	}
	return strings.Join(parts, "\n")
}

// ExportSet renders a single member in Showdown's importable text format.
func ExportSet(set *PokemonSet) string {
	var b strings.Builder

	header := set.Species
	if set.Name != "" && set.Name != set.Species {
		header = fmt.Sprintf("%s (%s)", set.Name, set.Species)
	}
	if set.Gender == "M" || set.Gender == "F" {
		header += fmt.Sprintf(" (%s)", set.Gender)
	}
	if set.Item != "" {
		header += " @ " + set.Item
	}
	b.WriteString(header + "\n")

	if set.Ability != "" {
		fmt.Fprintf(&b, "Ability: %s\n", set.Ability)
	}
	if set.Level > 0 && set.Level != DefaultLevel {
		fmt.Fprintf(&b, "Level: %d\n", set.Level)
	}
	if set.Shiny {
		b.WriteString("Shiny: Yes\n")
	}
	if set.Happiness != MaxHappiness {
		fmt.Fprintf(&b, "Happiness: %d\n", set.Happiness)
	}
	if line := statLine(set.EVs, 0); line != "" {
		fmt.Fprintf(&b, "EVs: %s\n", line)
	}
	if set.Nature != "" {
		fmt.Fprintf(&b, "%s Nature\n", set.Nature)
	}
	if line := statLine(set.IVs, 31); line != "" {
		fmt.Fprintf(&b, "IVs: %s\n", line)
	}
	for _, move := range set.Moves {
		fmt.Fprintf(&b, "- %s\n", move)
	}
	return b.String()
}

// statLine renders the stats that differ from the elided default.
func statLine(table StatsTable, elide int) string {
	var parts []string
	for i, value := range statValues(table) {
		if value == elide {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s", value, statLabels[i]))
	}
	return strings.Join(parts, " / ")
}
