package minefield

import (
	"fmt"
	"strings"
)

type Preset uint8

const (
	Beginner Preset = iota + 1
	Intermediate
	Expert
	// Single has a lone mine on an expert-sized field. Used for testing.
	Single
)

var presets = map[Preset]struct {
	name   string
	params Params
}{
	Beginner:     {"beginner", Params{Width: 8, Height: 8, MineCount: 10}},
	Intermediate: {"intermediate", Params{Width: 16, Height: 16, MineCount: 40}},
	Expert:       {"expert", Params{Width: 30, Height: 16, MineCount: 99}},
	Single:       {"single", Params{Width: 30, Height: 16, MineCount: 1}},
}

func Presets() []Preset {
	return []Preset{Beginner, Intermediate, Expert, Single}
}

func (p Preset) Params() (Params, bool) {
	preset, ok := presets[p]
	return preset.params, ok
}

func (p Preset) String() string {
	if preset, ok := presets[p]; ok {
		return preset.name
	}
	return fmt.Sprintf("Preset(%d)", uint8(p))
}

func ParsePreset(s string) (Preset, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Presets() {
		if presets[p].name == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, s)
}

// [Preset] implements [encoding.TextMarshaler]
func (p Preset) MarshalText() ([]byte, error) {
	if _, ok := presets[p]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPreset, uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *Preset) UnmarshalText(text []byte) error {
	preset, err := ParsePreset(string(text))
	if err != nil {
		return err
	}
	*p = preset
	return nil
}
