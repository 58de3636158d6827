package game

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/minefield"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

// seqRand replays seq forever, reducing each value modulo n.
type seqRand struct {
	seq []int
	i   int
}

func (r *seqRand) IntN(n int) int {
	v := r.seq[r.i%len(r.seq)] % n
	r.i++
	return v
}

func newGame(t *testing.T, params minefield.Params, seq ...int) *Game {
	t.Helper()
	field, err := minefield.New(params, &seqRand{seq: seq})
	require.NoError(t, err)
	return NewWithField(field)
}

func cell(t *testing.T, g *Game, x, y int) CellState {
	t.Helper()
	s, err := g.Cell(x, y)
	require.NoError(t, err)
	return s
}

func TestOpenFloodsToWin(t *testing.T) {
	g := newGame(t, minefield.Params{Width: 3, Height: 3, MineCount: 1}, 2, 2)

	r, err := g.Open(0, 0)
	require.NoError(t, err)
	assert.Equal(t, GameWon, r)
	assert.Equal(t, Won, g.Status())
	assert.Equal(t, 8, g.Revealed())

	assert.Equal(t, Grid{
		0, 0, 0,
		0, 1, 1,
		0, 1, CorrectFlag,
	}, g.Grid())
	assert.Equal(t, 0, g.MinesLeft())
}

func TestOpenMineLoses(t *testing.T) {
	g := newGame(t, minefield.Params{Width: 3, Height: 3, MineCount: 1}, 2, 2)

	r, err := g.Open(1, 1)
	require.NoError(t, err)
	assert.Equal(t, CellRevealed, r)
	assert.Equal(t, 1, g.Revealed())
	assert.Equal(t, CellState(1), cell(t, g, 1, 1))

	r, err = g.Open(1, 1)
	require.NoError(t, err)
	assert.Equal(t, NoChange, r)

	r, err = g.Open(2, 2)
	require.NoError(t, err)
	assert.Equal(t, MineBlown, r)
	assert.Equal(t, Lost, g.Status())
	assert.Equal(t, ExplodedMine, cell(t, g, 2, 2))
	assert.Equal(t, Unknown, cell(t, g, 0, 0))

	_, err = g.Open(0, 0)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = g.ToggleFlag(0, 0)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestFloodTakesBackFlags(t *testing.T) {
	g := newGame(t, minefield.Params{Width: 5, Height: 1, MineCount: 1}, 4, 0)

	r, err := g.ToggleFlag(1, 0)
	require.NoError(t, err)
	assert.Equal(t, FlagPlaced, r)
	assert.Equal(t, 0, g.MinesLeft())

	r, err = g.Open(0, 0)
	require.NoError(t, err)
	assert.Equal(t, GameWon, r)
	assert.Equal(t, Won, g.Status())
	assert.Equal(t, 4, g.Revealed())
	assert.Equal(t, Grid{0, 0, 0, 1, CorrectFlag}, g.Grid())
	assert.Equal(t, 1, g.Flags())
	assert.Equal(t, 0, g.MinesLeft())
}

func TestFloodTakesBackFlagsInsideRegion(t *testing.T) {
	// mine at (2,2); the flags at (0,1) and (1,0) sit in the zero region
	g := newGame(t, minefield.Params{Width: 3, Height: 3, MineCount: 1}, 2, 2)

	for _, p := range []minefield.Point{{X: 0, Y: 1}, {X: 1, Y: 0}} {
		_, err := g.ToggleFlag(p.X, p.Y)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, g.Flags())

	r, err := g.Open(0, 0)
	require.NoError(t, err)
	assert.Equal(t, GameWon, r)
	assert.Equal(t, 8, g.Revealed())
	assert.Equal(t, Grid{
		0, 0, 0,
		0, 1, 1,
		0, 1, CorrectFlag,
	}, g.Grid())
	assert.Equal(t, 0, g.MinesLeft())
}

func TestFloodLeavesFlagsOutsideRegion(t *testing.T) {
	// mine at (4,0); (4,1) touches no zero cell so the flood never gets there
	g := newGame(t, minefield.Params{Width: 5, Height: 2, MineCount: 1}, 4, 0)

	for _, p := range []minefield.Point{{X: 3, Y: 1}, {X: 4, Y: 1}} {
		_, err := g.ToggleFlag(p.X, p.Y)
		require.NoError(t, err)
	}

	r, err := g.Open(0, 0)
	require.NoError(t, err)
	assert.Equal(t, CellRevealed, r)
	assert.Equal(t, 8, g.Revealed())
	assert.Equal(t, Grid{
		0, 0, 0, 1, Unknown,
		0, 0, 0, 1, Flagged,
	}, g.Grid())
	assert.Equal(t, 1, g.Flags())
}

func TestOpenFlaggedCellClearsFlag(t *testing.T) {
	g := newGame(t, minefield.Params{Width: 5, Height: 1, MineCount: 1}, 4, 0)

	_, err := g.ToggleFlag(3, 0)
	require.NoError(t, err)
	r, err := g.Open(3, 0)
	require.NoError(t, err)
	assert.Equal(t, CellRevealed, r)
	assert.Equal(t, 0, g.Flags())
	assert.Equal(t, CellState(1), cell(t, g, 3, 0))

	r, err = g.ToggleFlag(3, 0)
	require.NoError(t, err)
	assert.Equal(t, NoChange, r)
}

func TestLossJudgesFlags(t *testing.T) {
	g := newGame(t, minefield.Params{Width: 5, Height: 1, MineCount: 1}, 4, 0)

	_, err := g.ToggleFlag(1, 0)
	require.NoError(t, err)
	_, err = g.Open(3, 0)
	require.NoError(t, err)
	assert.Equal(t, Grid{Unknown, Flagged, Unknown, 1, Unknown}, g.Grid())

	r, err := g.Open(4, 0)
	require.NoError(t, err)
	assert.Equal(t, MineBlown, r)
	assert.Equal(t, Grid{Unknown, WrongFlag, Unknown, 1, ExplodedMine}, g.Grid())
	assert.Equal(t, 0, g.MinesLeft())
}

func TestChord(t *testing.T) {
	// mines at (0,0) and (2,2)
	params := minefield.Params{Width: 3, Height: 3, MineCount: 2}

	t.Run("opens neighbours", func(t *testing.T) {
		g := newGame(t, params, 0, 0, 2, 2)
		_, err := g.Open(1, 0)
		require.NoError(t, err)

		r, err := g.Chord(1, 0)
		require.NoError(t, err)
		assert.Equal(t, NoChange, r, "no flags placed yet")

		_, err = g.ToggleFlag(0, 0)
		require.NoError(t, err)
		r, err = g.Chord(1, 0)
		require.NoError(t, err)
		assert.Equal(t, CellRevealed, r)
		assert.Equal(t, 5, g.Revealed())
		assert.Equal(t, Grid{
			Flagged, 1, 0,
			1, 2, 1,
			Unknown, Unknown, Unknown,
		}, g.Grid())

		r, err = g.Open(0, 2)
		require.NoError(t, err)
		assert.Equal(t, GameWon, r)
		assert.Equal(t, CorrectFlag, cell(t, g, 0, 0))
		assert.Equal(t, CorrectFlag, cell(t, g, 2, 2))
	})

	t.Run("wrong flag blows up", func(t *testing.T) {
		g := newGame(t, params, 0, 0, 2, 2)
		_, err := g.Open(1, 0)
		require.NoError(t, err)
		_, err = g.ToggleFlag(2, 1)
		require.NoError(t, err)

		r, err := g.Chord(1, 0)
		require.NoError(t, err)
		assert.Equal(t, MineBlown, r)
		assert.Equal(t, Lost, g.Status())
		assert.Equal(t, ExplodedMine, cell(t, g, 0, 0))
		assert.Equal(t, WrongFlag, cell(t, g, 2, 1))
		assert.Equal(t, UnflaggedMine, cell(t, g, 2, 2))
	})

	t.Run("covered cell", func(t *testing.T) {
		g := newGame(t, params, 0, 0, 2, 2)
		r, err := g.Chord(1, 1)
		require.NoError(t, err)
		assert.Equal(t, NoChange, r)
	})
}

func TestOutOfBounds(t *testing.T) {
	g := newGame(t, minefield.Params{Width: 3, Height: 3, MineCount: 1}, 2, 2)
	_, err := g.Open(3, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.ToggleFlag(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.Chord(9, 9)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.Cell(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, Playing, g.Status())
}

func TestZeroMineGameWinsOnFirstClick(t *testing.T) {
	g := newGame(t, minefield.Params{Width: 1, Height: 1, MineCount: 0}, 0)
	r, err := g.Open(0, 0)
	require.NoError(t, err)
	assert.Equal(t, GameWon, r)
	assert.Equal(t, Grid{0}, g.Grid())
}

func TestForfeit(t *testing.T) {
	g := newGame(t, minefield.Params{Width: 3, Height: 3, MineCount: 1}, 2, 2)
	_, err := g.Open(1, 1)
	require.NoError(t, err)

	g.Forfeit()
	assert.Equal(t, Lost, g.Status())
	assert.Equal(t, UnflaggedMine, cell(t, g, 2, 2))
	assert.False(t, g.EndedAt().IsZero())

	g.Forfeit()
	assert.Equal(t, Lost, g.Status())
}

func TestElapsed(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	field, err := minefield.New(minefield.Params{Width: 3, Height: 3, MineCount: 1}, &seqRand{seq: []int{2, 2}})
	require.NoError(t, err)
	g := NewWithField(field, WithClock(clock))
	assert.Zero(t, g.Elapsed())
	assert.True(t, g.StartedAt().IsZero())

	_, err = g.Open(1, 1)
	require.NoError(t, err)
	assert.Equal(t, now, g.StartedAt())

	now = now.Add(65 * time.Second)
	assert.Equal(t, 65*time.Second, g.Elapsed())
	assert.Equal(t, "1:05", FormatElapsed(g.Elapsed()))

	_, err = g.Open(2, 2)
	require.NoError(t, err)
	now = now.Add(time.Hour)
	assert.Equal(t, 65*time.Second, g.Elapsed())
}

func TestFloodRevealsRegionExactlyOnce(t *testing.T) {
	for _, preset := range minefield.Presets() {
		t.Run(preset.String(), func(t *testing.T) {
			g, err := New(preset, minefield.NewRand(11))
			require.NoError(t, err)
			params := g.Params()

			_, err = g.Open(params.Width/2, params.Height/2)
			require.NoError(t, err)

			grid := g.Grid()
			revealed := 0
			for i, s := range grid {
				if !s.Revealed() {
					continue
				}
				revealed++
				x, y := i%params.Width, i/params.Width
				if s != 0 {
					continue
				}
				for p := range params.Neighbours(x, y) {
					n := grid[p.Y*params.Width+p.X]
					assert.True(t, n.Revealed() || n == CorrectFlag,
						"neighbour %s of zero cell %d:%d left covered", p, x, y)
				}
			}
			assert.Equal(t, revealed, g.Revealed())
		})
	}
}

func TestLargeOpenBoard(t *testing.T) {
	field, err := minefield.New(minefield.Params{Width: 400, Height: 400, MineCount: 0}, minefield.NewRand(1))
	require.NoError(t, err)
	g := NewWithField(field)

	r, err := g.Open(0, 0)
	require.NoError(t, err)
	assert.Equal(t, GameWon, r)
	assert.Equal(t, 400*400, g.Revealed())
}

func TestGridToString(t *testing.T) {
	grid := Grid{0, 1, Unknown, Flagged, ExplodedMine, UnflaggedMine}
	assert.Equal(t, "    0 1 2\n 0    1 .\n 1  F # *\n", grid.ToString(3))
	assert.Equal(t, "", grid.ToString(0))
}
