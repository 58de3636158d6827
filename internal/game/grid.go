package game

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what the player sees in a cell.
type CellState int8

const (
	Unknown       CellState = -2
	Flagged       CellState = -1
	CorrectFlag   CellState = 64 // post-game-over
	ExplodedMine  CellState = 65
	WrongFlag     CellState = 66
	UnflaggedMine CellState = 67
	// 0-8 for an opened cell with the given number of mined neighbours
)

func (s CellState) Revealed() bool {
	return 0 <= s && s <= 8
}

func (s CellState) String() string {
	switch s {
	case Unknown:
		return "."
	case Flagged, CorrectFlag:
		return "F"
	case WrongFlag:
		return "X"
	case ExplodedMine:
		return "#"
	case UnflaggedMine:
		return "*"
	case 0:
		return " "
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

// ToString draws the grid with column and row numbers.
func (g Grid) ToString(width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprint(&b, "   ")
	for x := range width {
		fmt.Fprintf(&b, "%2d", x%100)
	}
	fmt.Fprint(&b, "\n")
	for y := range len(g) / width {
		fmt.Fprintf(&b, "%2d ", y%100)
		for x := range width {
			fmt.Fprint(&b, " "+g[y*width+x].String())
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
