// Package pool provides an immutable weighted candidate pool supporting
// random selection without replacement.
//
// A Pool is a value type: selecting a candidate never mutates the pool it
// was called on, it returns a successor pool with the chosen candidate
// excluded. Holding on to an earlier pool value and re-selecting from it is
// the supported way to backtrack; no undo bookkeeping exists or is needed.
package pool

import "sort"

// Rand is the entropy source for weighted draws. *math/rand.Rand satisfies
// it; tests substitute fixed sources for deterministic replay.
type Rand interface {
	Float64() float64
}

// Scorer adjusts a candidate's weight immediately before a draw. Returning
// a value <= 0 excludes the candidate from that draw. A nil Scorer leaves
// weights untouched.
type Scorer func(name string, weight float64) float64

// Combine composes two scorers with veto semantics: if a excludes a
// candidate (result <= 0) that result is returned unchanged and b is never
// consulted. Exclusions therefore always win over preferences, regardless
// of how strongly b would have favored the candidate.
func Combine(a, b Scorer) Scorer {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(name string, weight float64) float64 {
		scored := a(name, weight)
		if scored <= 0 {
			return scored
		}
		return b(name, scored)
	}
}

// Entry is one weighted candidate. A weight <= 0 marks the entry as
// non-selectable while keeping it present for bookkeeping.
type Entry struct {
	Name   string
	Weight float64
}

// Pool is an ordered weighted candidate set. The zero value is an empty
// pool with no selectable candidates.
type Pool struct {
	entries []Entry
	total   float64
}

// New builds a pool from a keyed source. The transform maps each source
// entry to a candidate name and weight; entries transformed to a weight
// <= 0 are retained but pre-excluded, which is how candidates already
// known to be unusable are encoded at construction time. Source keys are
// visited in sorted order so pool layout does not depend on map iteration.
func New[V any](source map[string]V, transform func(name string, value V) (string, float64)) Pool {
	names := make([]string, 0, len(source))
	for name := range source {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		key, weight := transform(name, source[name])
		if key == "" {
			continue
		}
		entries = append(entries, Entry{Name: key, Weight: weight})
	}
	return FromEntries(entries)
}

// FromEntries builds a pool from candidates already in their final order.
// The slice is copied; the caller keeps ownership of its own entries.
func FromEntries(entries []Entry) Pool {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	total := 0.0
	for _, e := range copied {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return Pool{entries: copied, total: total}
}

// Len reports the number of entries, selectable or not.
func (p Pool) Len() int {
	return len(p.entries)
}

// Total reports the summed weight of the selectable entries.
func (p Pool) Total() float64 {
	return p.total
}

// Weight reports the raw weight of the named entry.
func (p Pool) Weight(name string) (float64, bool) {
	for _, e := range p.entries {
		if e.Name == name {
			return e.Weight, true
		}
	}
	return 0, false
}

// Select performs one weighted draw.
//
// # Scoring
//
// The scorer is applied to every selectable entry to obtain its effective
// weight for this draw only; raw weights are never altered by scoring. A
// candidate whose effective weight is <= 0 cannot be drawn this round but
// remains selectable in later draws from the same pool value.
//
// # Draw
//
// Each candidate is drawn with probability proportional to its effective
// weight, using rng as the sole entropy input. When no candidate has a
// positive effective weight, Select reports ok == false and returns the
// receiver unchanged; an empty draw is an expected outcome, not an error.
//
// # Successor pool
//
// On a successful draw the returned pool is identical to the receiver
// except that the chosen entry's weight is zeroed, excluding it from every
// draw in that lineage. The receiver itself is never modified.
func (p Pool) Select(score Scorer, rng Rand) (name string, ok bool, next Pool) {
	effective := make([]float64, len(p.entries))
	total := 0.0
	for i, e := range p.entries {
		if e.Weight <= 0 {
			continue
		}
		w := e.Weight
		if score != nil {
			w = score(e.Name, w)
		}
		if w <= 0 {
			continue
		}
		effective[i] = w
		total += w
	}
	if total <= 0 {
		return "", false, p
	}

	target := rng.Float64() * total
	chosen := -1
	for i, w := range effective {
		if w <= 0 {
			continue
		}
		// Remember the last selectable index so rounding at the top of the
		// range still resolves to a valid candidate.
		chosen = i
		target -= w
		if target < 0 {
			break
		}
	}

	entries := make([]Entry, len(p.entries))
	copy(entries, p.entries)
	remaining := p.total - entries[chosen].Weight
	entries[chosen].Weight = 0
	return p.entries[chosen].Name, true, Pool{entries: entries, total: remaining}
}
