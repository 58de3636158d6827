package minefield

import (
	"fmt"
	"iter"
)

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Params describes the dimensions and mine count of a field.
type Params struct {
	Width, Height, MineCount int
}

func (p Params) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

func (p Params) Cells() int {
	return p.Width * p.Height
}

// Validate reports whether a field with these params can be set up. At least
// one cell must stay free of mines for the first click.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return &ParamsError{Params: p, Reason: "dimensions must be positive"}
	case p.MineCount < 0:
		return &ParamsError{Params: p, Reason: "mine count must not be negative"}
	case p.MineCount >= p.Cells():
		return &ParamsError{Params: p, Reason: "mine count must be less than the number of cells"}
	}
	return nil
}

func (p Params) Contains(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

// Neighbours yields the in-bounds cells of the 8-neighbourhood of (x, y).
func (p Params) Neighbours(x, y int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if !p.Contains(x+dx, y+dy) {
					continue
				}
				if !yield(Point{x + dx, y + dy}) {
					return
				}
			}
		}
	}
}
