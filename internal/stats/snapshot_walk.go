package stats

import "sort"

// Walk visits every species in the snapshot in identifier order, passing
// the identifier, the display name, and the full distributions. It stops
// at the first error.
func (s *Snapshot) Walk(fn func(id, name string, species *SpeciesStatistics) error) error {
	keys := make([]string, 0, len(s.pokemon))
	for key := range s.pokemon {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := fn(key, s.names[key], s.pokemon[key]); err != nil {
			return err
		}
	}
	return nil
}
