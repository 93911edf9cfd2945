package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gamephreak/EPOke/internal/id"
)

// Snapshot is an in-memory statistics source decoded from a JSON dump.
type Snapshot struct {
	Metagame string
	pokemon  map[string]*SpeciesStatistics
	names    map[string]string
}

type dumpFile struct {
	Info struct {
		Metagame string `json:"metagame"`
	} `json:"info"`
	Pokemon map[string]*SpeciesStatistics `json:"pokemon"`
}

// ReadFile loads a statistics dump from disk.
func ReadFile(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statistics dump: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read decodes a statistics dump. Species keys are normalized to
// identifiers; the original display names are retained for output.
func Read(r io.Reader) (*Snapshot, error) {
	var dump dumpFile
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decode statistics dump: %w", err)
	}

	snapshot := &Snapshot{
		Metagame: dump.Info.Metagame,
		pokemon:  make(map[string]*SpeciesStatistics, len(dump.Pokemon)),
		names:    make(map[string]string, len(dump.Pokemon)),
	}
	for name, species := range dump.Pokemon {
		if species == nil {
			continue
		}
		key := id.Make(name)
		if key == "" {
			continue
		}
		snapshot.pokemon[key] = species
		snapshot.names[key] = name
	}
	return snapshot, nil
}

// Usage implements Source.
func (s *Snapshot) Usage() (map[string]UsageWeights, error) {
	usage := make(map[string]UsageWeights, len(s.pokemon))
	for key, species := range s.pokemon {
		usage[key] = species.UsageWeights
	}
	return usage, nil
}

// Moveset implements Source.
func (s *Snapshot) Moveset(species string) (*SpeciesStatistics, error) {
	found, ok := s.pokemon[id.Make(species)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, species)
	}
	return found, nil
}

// Name returns the display name recorded for a species identifier, or the
// identifier itself when the snapshot never saw the species.
func (s *Snapshot) Name(species string) string {
	if name, ok := s.names[id.Make(species)]; ok {
		return name
	}
	return species
}

// Len reports the number of species in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.pokemon)
}
