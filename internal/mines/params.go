package mines

import (
	"fmt"
	"strings"
)

type GameParams struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func (p GameParams) Cells() int {
	return p.Width * p.Height
}

// Validate rejects grids without a free cell. Values are never clamped.
func (p GameParams) Validate() error {
	switch {
	case p.Width < 1 || p.Height < 1:
		return ParamsError{p, "dimensions must be positive"}
	case p.MineCount < 0:
		return ParamsError{p, "mine count must not be negative"}
	case p.MineCount >= p.Cells():
		return ParamsError{p, "mine count must be less than the number of cells"}
	}
	return nil
}

type Difficulty int8

const (
	Easy Difficulty = iota
	Medium
	Hard
	Custom
)

var presets = map[Difficulty]GameParams{
	Easy:   {Width: 10, Height: 10, MineCount: 25},
	Medium: {Width: 15, Height: 15, MineCount: 65},
	Hard:   {Width: 20, Height: 20, MineCount: 100},
}

// Params returns the fixed grid of a preset difficulty. Custom reports
// false; any unknown value plays as Medium.
func (d Difficulty) Params() (GameParams, bool) {
	if d == Custom {
		return GameParams{}, false
	}
	p, ok := presets[d]
	if !ok {
		return presets[Medium], true
	}
	return p, true
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("Difficulty(%d)", int8(d))
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium", "":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "custom":
		return Custom, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// [Difficulty] implements [encoding.TextMarshaler]
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
