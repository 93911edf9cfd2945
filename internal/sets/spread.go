package sets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSpread reports a spread descriptor that does not parse.
var ErrInvalidSpread = errors.New("invalid spread descriptor")

// Spread is a nature plus an effort-value allocation, the unit in which
// usage statistics report stat configurations. IVs are not part of the
// descriptor; a parsed spread assumes perfect IVs.
type Spread struct {
	Nature string
	EVs    StatsTable
}

// ParseSpread parses a spread descriptor of the form
// "Modest:0/0/0/252/4/252": a nature followed by six effort values in
// HP/Atk/Def/SpA/SpD/Spe order.
func ParseSpread(descriptor string) (Spread, error) {
	nature, evPart, ok := strings.Cut(descriptor, ":")
	if !ok {
		return Spread{}, fmt.Errorf("%w: %q missing nature separator", ErrInvalidSpread, descriptor)
	}
	nature = strings.TrimSpace(nature)
	if nature == "" {
		return Spread{}, fmt.Errorf("%w: %q missing nature", ErrInvalidSpread, descriptor)
	}

	fields := strings.Split(evPart, "/")
	if len(fields) != 6 {
		return Spread{}, fmt.Errorf("%w: %q has %d effort values, want 6", ErrInvalidSpread, descriptor, len(fields))
	}
	values := make([]int, 6)
	for i, field := range fields {
		value, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return Spread{}, fmt.Errorf("%w: %q effort value %d: %v", ErrInvalidSpread, descriptor, i, err)
		}
		if value < 0 || value > 255 {
			return Spread{}, fmt.Errorf("%w: %q effort value %d out of range", ErrInvalidSpread, descriptor, i)
		}
		values[i] = value
	}

	return Spread{
		Nature: nature,
		EVs: StatsTable{
			HP:  values[0],
			Atk: values[1],
			Def: values[2],
			SpA: values[3],
			SpD: values[4],
			Spe: values[5],
		},
	}, nil
}

// String renders the spread back into descriptor form.
func (s Spread) String() string {
	return fmt.Sprintf("%s:%d/%d/%d/%d/%d/%d",
		s.Nature, s.EVs.HP, s.EVs.Atk, s.EVs.Def, s.EVs.SpA, s.EVs.SpD, s.EVs.Spe)
}

// Apply copies the spread onto a set: nature and EVs from the descriptor,
// perfect IVs.
func (s Spread) Apply(set *PokemonSet) {
	set.Nature = s.Nature
	set.EVs = s.EVs
	set.IVs = PerfectIVs()
}
