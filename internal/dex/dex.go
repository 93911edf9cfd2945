// Package dex holds the game-data catalog and the team legality oracle
// built on top of it. The predictor only consumes the Oracle contract;
// Format is the concrete rules implementation shipped with the CLI.
package dex

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gamephreak/EPOke/internal/id"
)

// SpeciesData is the catalog record for one species.
type SpeciesData struct {
	Name      string   `json:"name"`
	Types     []string `json:"types"`
	Tier      string   `json:"tier"`
	Gender    string   `json:"gender"`
	Abilities []string `json:"abilities"`
	// Learnset lists the legal moves when known. An empty learnset means
	// the catalog has no move data for the species and move legality is
	// not checked.
	Learnset []string `json:"learnset"`
	// ShinyOnly marks event-only releases that must be shiny to be legal.
	ShinyOnly bool `json:"shinyOnly"`
}

// Dex is a read-only species catalog keyed by identifier.
type Dex struct {
	species map[string]SpeciesData
}

// NewDex builds a catalog from species records. Keys are normalized.
func NewDex(species []SpeciesData) *Dex {
	d := &Dex{species: make(map[string]SpeciesData, len(species))}
	for _, s := range species {
		key := id.Make(s.Name)
		if key == "" {
			continue
		}
		d.species[key] = s
	}
	return d
}

// ReadFile loads a catalog from a JSON file of species records.
func ReadFile(path string) (*Dex, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dex catalog: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read decodes a catalog from JSON.
func Read(r io.Reader) (*Dex, error) {
	var species []SpeciesData
	if err := json.NewDecoder(r).Decode(&species); err != nil {
		return nil, fmt.Errorf("decode dex catalog: %w", err)
	}
	return NewDex(species), nil
}

// Species looks up one species record.
func (d *Dex) Species(name string) (SpeciesData, bool) {
	s, ok := d.species[id.Make(name)]
	return s, ok
}

// Len reports the number of species in the catalog.
func (d *Dex) Len() int {
	return len(d.species)
}
