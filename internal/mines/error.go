package mines

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid game parameters")

type ParamsError struct {
	Params GameParams
	reason string
}

// [ParamsError] implements [error]
func (e ParamsError) Error() string {
	return fmt.Sprintf("%s: %s (%dx%d, %d mines)",
		ErrInvalidParams, e.reason, e.Params.Width, e.Params.Height, e.Params.MineCount)
}

func (e ParamsError) Unwrap() error {
	return ErrInvalidParams
}
