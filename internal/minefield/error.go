package minefield

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParams = errors.New("invalid field params")
	ErrUnknownPreset = errors.New("unknown preset")
)

type ParamsError struct {
	Params Params
	Reason string
}

// [ParamsError] implements [error]
func (e *ParamsError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidParams, e.Params, e.Reason)
}

func (e *ParamsError) Unwrap() error {
	return ErrInvalidParams
}

// OutOfBoundsError is the panic value of [Minefield.OnClick] and
// [Minefield.IsMine] for coordinates outside the field.
type OutOfBoundsError struct {
	Point  Point
	Params Params
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell %s is outside of %s field", e.Point, e.Params)
}
