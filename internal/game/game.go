// Package game tracks what a player has uncovered on a [minefield.Minefield]
// and decides when the game is won or lost.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/minefield"
)

var Log = logrus.New()

var (
	ErrGameOver    = errors.New("game is over")
	ErrOutOfBounds = errors.New("cell is out of bounds")
)

type Option func(*Game)

// WithClock replaces [time.Now] for the game timer.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// Game is not safe for concurrent use.
type Game struct {
	field    *minefield.Minefield
	grid     Grid
	status   Status
	revealed int
	flags    int

	startedAt time.Time
	endedAt   time.Time
	now       func() time.Time
}

func New(preset minefield.Preset, r minefield.Rand, opts ...Option) (*Game, error) {
	field, err := minefield.NewFromPreset(preset, r)
	if err != nil {
		return nil, fmt.Errorf("unable to create minefield: %w", err)
	}
	return NewWithField(field, opts...), nil
}

func NewWithField(field *minefield.Minefield, opts ...Option) *Game {
	grid := make(Grid, field.Params().Cells())
	for i := range grid {
		grid[i] = Unknown
	}
	g := &Game{
		field: field,
		grid:  grid,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) Params() minefield.Params { return g.field.Params() }
func (g *Game) Status() Status           { return g.status }
func (g *Game) Revealed() int            { return g.revealed }
func (g *Game) Flags() int               { return g.flags }

// MinesLeft is the mine count minus placed flags. It goes negative when the
// player over-flags.
func (g *Game) MinesLeft() int {
	return g.field.MineCount() - g.flags
}

// Grid returns a copy of the player's view.
func (g *Game) Grid() Grid {
	return append(Grid(nil), g.grid...)
}

func (g *Game) Cell(x, y int) (CellState, error) {
	if !g.field.Contains(x, y) {
		return Unknown, ErrOutOfBounds
	}
	return g.grid[g.index(x, y)], nil
}

// StartedAt is zero until the first cell is opened.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// EndedAt is zero while the game is running.
func (g *Game) EndedAt() time.Time { return g.endedAt }

func (g *Game) Elapsed() time.Duration {
	switch {
	case g.startedAt.IsZero():
		return 0
	case !g.endedAt.IsZero():
		return g.endedAt.Sub(g.startedAt)
	default:
		return g.now().Sub(g.startedAt)
	}
}

// FormatElapsed renders d as m:ss.
func FormatElapsed(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func (g *Game) index(x, y int) int {
	return y*g.field.Width() + x
}

func (g *Game) check(x, y int) error {
	if g.status.Over() {
		return ErrGameOver
	}
	if !g.field.Contains(x, y) {
		return fmt.Errorf("%w: %d:%d", ErrOutOfBounds, x, y)
	}
	return nil
}

// Open reveals the cell at (x, y). A flag on the cell is removed first.
// Opening a cell with no mines around it also opens the whole connected
// region of such cells and their numbered border.
func (g *Game) Open(x, y int) (Result, error) {
	if err := g.check(x, y); err != nil {
		return NoChange, err
	}
	i := g.index(x, y)
	switch g.grid[i] {
	case Flagged:
		g.grid[i] = Unknown
		g.flags--
	case Unknown:
	default:
		return NoChange, nil
	}

	if g.startedAt.IsZero() {
		g.startedAt = g.now()
	}

	if g.field.OnClick(x, y).IsMine() {
		g.grid[i] = ExplodedMine
		g.finish(Lost)
		return MineBlown, nil
	}

	g.flood(x, y)

	if g.revealed >= g.field.Params().Cells()-g.field.MineCount() {
		g.finish(Won)
		return GameWon, nil
	}
	return CellRevealed, nil
}

// flood opens the safe cell at (x, y) and spreads through zero cells. A flag
// in the way is taken back and the cell under it opened.
func (g *Game) flood(x, y int) {
	params := g.field.Params()
	visited := make([]bool, len(g.grid))
	queue := []minefield.Point{{X: x, Y: y}}
	visited[g.index(x, y)] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		n, ok := g.field.OnClick(p.X, p.Y).Count()
		if !ok {
			// only neighbours of zero cells are queued, and those are never mines
			panic(fmt.Sprintf("flood reached a mine at %s", p))
		}
		g.grid[g.index(p.X, p.Y)] = CellState(n)
		g.revealed++

		if n != 0 {
			continue
		}
		for q := range params.Neighbours(p.X, p.Y) {
			j := g.index(q.X, q.Y)
			if visited[j] {
				continue
			}
			switch g.grid[j] {
			case Flagged:
				g.grid[j] = Unknown
				g.flags--
			case Unknown:
			default:
				continue
			}
			visited[j] = true
			queue = append(queue, q)
		}
	}
}

// ToggleFlag flags or unflags a covered cell.
func (g *Game) ToggleFlag(x, y int) (Result, error) {
	if err := g.check(x, y); err != nil {
		return NoChange, err
	}
	i := g.index(x, y)
	switch g.grid[i] {
	case Unknown:
		g.grid[i] = Flagged
		g.flags++
		return FlagPlaced, nil
	case Flagged:
		g.grid[i] = Unknown
		g.flags--
		return FlagRemoved, nil
	default:
		return NoChange, nil
	}
}

// Chord opens every covered, unflagged neighbour of a revealed number once
// the number of flags around it matches.
func (g *Game) Chord(x, y int) (Result, error) {
	if err := g.check(x, y); err != nil {
		return NoChange, err
	}
	c := g.grid[g.index(x, y)]
	if !c.Revealed() {
		return NoChange, nil
	}

	var (
		flags   int
		covered []minefield.Point
	)
	for p := range g.field.Params().Neighbours(x, y) {
		switch g.grid[g.index(p.X, p.Y)] {
		case Flagged:
			flags++
		case Unknown:
			covered = append(covered, p)
		}
	}
	if flags != int(c) || len(covered) == 0 {
		return NoChange, nil
	}

	result := NoChange
	for _, p := range covered {
		// an earlier cell of the chord may have flooded this one
		if g.grid[g.index(p.X, p.Y)] != Unknown {
			continue
		}
		r, err := g.Open(p.X, p.Y)
		if err != nil {
			return result, err
		}
		result = r
		if g.status.Over() {
			break
		}
	}
	return result, nil
}

// Forfeit ends a running game as lost.
func (g *Game) Forfeit() {
	if g.status.Over() {
		return
	}
	g.finish(Lost)
}

func (g *Game) finish(status Status) {
	g.status = status
	g.endedAt = g.now()
	if g.startedAt.IsZero() {
		g.startedAt = g.endedAt
	}
	g.exposeMines()

	Log.WithFields(logrus.Fields{
		"params":   g.field.Params().String(),
		"status":   status.String(),
		"revealed": g.revealed,
		"elapsed":  FormatElapsed(g.Elapsed()),
	}).Debug("game over")
}

// exposeMines shows every mine and judges every flag. On a win the mines left
// covered count as flagged.
func (g *Game) exposeMines() {
	w := g.field.Width()
	for i, s := range g.grid {
		mine := g.field.IsMine(i%w, i/w)
		switch {
		case s == Flagged && mine:
			g.grid[i] = CorrectFlag
		case s == Flagged:
			g.grid[i] = WrongFlag
		case s == Unknown && mine && g.status == Won:
			g.grid[i] = CorrectFlag
			g.flags++
		case s == Unknown && mine:
			g.grid[i] = UnflaggedMine
		}
	}
}
