// Package minefield holds the hidden layout of a single minesweeper game.
//
// Mines are not placed until the first click, so the first opened cell is
// never a mine. After that the layout is fixed and every query is answered
// from it without side effects.
package minefield

import (
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// layout exists only once mines have been placed.
type layout struct {
	values []Value
	start  Point
}

type Minefield struct {
	params Params
	rnd    Rand
	layout *layout
}

// New returns an empty field. Mines are placed by the first [Minefield.OnClick]
// using r.
func New(params Params, r Rand) (*Minefield, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand(0)
	}
	return &Minefield{params: params, rnd: r}, nil
}

func NewFromPreset(preset Preset, r Rand) (*Minefield, error) {
	params, ok := preset.Params()
	if !ok {
		return nil, ErrUnknownPreset
	}
	return New(params, r)
}

func (m *Minefield) Params() Params { return m.params }
func (m *Minefield) Width() int     { return m.params.Width }
func (m *Minefield) Height() int    { return m.params.Height }
func (m *Minefield) MineCount() int { return m.params.MineCount }

// Ready reports whether mines have been placed.
func (m *Minefield) Ready() bool {
	return m.layout != nil
}

func (m *Minefield) Contains(x, y int) bool {
	return m.params.Contains(x, y)
}

// OnClick returns the value of the cell at (x, y). The first call places the
// mines around it.
//
// panics [*OutOfBoundsError]
func (m *Minefield) OnClick(x, y int) Value {
	m.mustContain(x, y)
	if m.layout == nil {
		m.layout = m.setUp(x, y)
	}
	return m.layout.values[y*m.params.Width+x]
}

// IsMine is always false before the first click.
//
// panics [*OutOfBoundsError]
func (m *Minefield) IsMine(x, y int) bool {
	m.mustContain(x, y)
	if m.layout == nil {
		return false
	}
	return m.layout.values[y*m.params.Width+x].IsMine()
}

// Mines lists mine positions in row-major order, or nil before setup.
func (m *Minefield) Mines() []Point {
	if m.layout == nil {
		return nil
	}
	mines := make([]Point, 0, m.params.MineCount)
	for i, v := range m.layout.values {
		if v.IsMine() {
			mines = append(mines, Point{i % m.params.Width, i / m.params.Width})
		}
	}
	return mines
}

// Start returns the cell that triggered setup.
func (m *Minefield) Start() (Point, bool) {
	if m.layout == nil {
		return Point{}, false
	}
	return m.layout.start, true
}

func (m *Minefield) mustContain(x, y int) {
	if !m.params.Contains(x, y) {
		panic(&OutOfBoundsError{Point: Point{x, y}, Params: m.params})
	}
}

func (m *Minefield) setUp(startX, startY int) *layout {
	width, height, mineCount := m.params.Unpack()
	values := make([]Value, width*height)

	/*
	 * Draw until mineCount distinct cells hold a mine. Draws that hit the
	 * starting cell or an existing mine are thrown away, which terminates
	 * because at least one cell besides the start is always free.
	 */
	draws := 0
	for placed := 0; placed < mineCount; {
		x := m.rnd.IntN(width)
		y := m.rnd.IntN(height)
		draws++

		i := y*width + x
		if (x == startX && y == startY) || values[i].IsMine() {
			continue
		}
		values[i] = Mine
		placed++
	}

	for y := range height {
		for x := range width {
			i := y*width + x
			if values[i].IsMine() {
				continue
			}
			var n Value
			for p := range m.params.Neighbours(x, y) {
				if values[p.Y*width+p.X].IsMine() {
					n++
				}
			}
			values[i] = n
		}
	}

	Log.WithFields(logrus.Fields{
		"params": m.params.String(),
		"start":  Point{startX, startY}.String(),
		"draws":  draws,
	}).Debug("minefield set up")

	return &layout{values: values, start: Point{startX, startY}}
}
