package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/minefield"
	"github.com/vancomm/minefield/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type CreateNewGameDTO struct {
	Preset string `schema:"preset"`
}

// ParseCreateNewGameDTO falls back to def when no preset is given.
func ParseCreateNewGameDTO(src map[string][]string, def minefield.Preset) (minefield.Preset, error) {
	var dto CreateNewGameDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return 0, err
	}
	if dto.Preset == "" {
		return def, nil
	}
	return minefield.ParsePreset(dto.Preset)
}

type GameMove uint8

const (
	Open GameMove = iota + 1
	Flag
	Chord
)

var ErrBadMove = errors.New("move must be one of 'open', 'flag', 'chord'")

func ParseGameMove(s string) (GameMove, error) {
	switch strings.ToLower(s) {
	case "open":
		return Open, nil
	case "flag":
		return Flag, nil
	case "chord":
		return Chord, nil
	default:
		return 0, ErrBadMove
	}
}

func (m GameMove) Apply(g *game.Game, x, y int) (game.Result, error) {
	switch m {
	case Open:
		return g.Open(x, y)
	case Flag:
		return g.ToggleFlag(x, y)
	case Chord:
		return g.Chord(x, y)
	default:
		return game.NoChange, ErrBadMove
	}
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	X    int    `schema:"x,required"`
	Y    int    `schema:"y,required"`
}

func ParseMoveDTO(src map[string][]string) (GameMove, MoveDTO, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return 0, dto, fmt.Errorf("invalid move: %w", err)
	}
	move, err := ParseGameMove(dto.Move)
	return move, dto, err
}

type GameSessionDTO struct {
	GameSessionId string           `json:"game_session_id"`
	Preset        minefield.Preset `json:"preset"`
	Grid          game.Grid        `json:"grid"`
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	MineCount     int              `json:"mine_count"`
	MinesLeft     int              `json:"mines_left"`
	Status        game.Status      `json:"status"`
	Result        string           `json:"result,omitempty"`
	Dead          bool             `json:"dead"`
	Won           bool             `json:"won"`
	StartedAt     *int64           `json:"started_at,omitempty"`
	EndedAt       *int64           `json:"ended_at,omitempty"`
	Elapsed       string           `json:"elapsed"`
	Error         string           `json:"error,omitempty"`
}

func millis(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	v := t.UnixMilli()
	return &v
}

// NewGameSessionDTO must be called while holding the session.
func NewGameSessionDTO(s *session.Session, g *game.Game) *GameSessionDTO {
	params := g.Params()
	return &GameSessionDTO{
		GameSessionId: s.ID.String(),
		Preset:        s.Preset,
		Grid:          g.Grid(),
		Width:         params.Width,
		Height:        params.Height,
		MineCount:     params.MineCount,
		MinesLeft:     g.MinesLeft(),
		Status:        g.Status(),
		Dead:          g.Status() == game.Lost,
		Won:           g.Status() == game.Won,
		StartedAt:     millis(g.StartedAt()),
		EndedAt:       millis(g.EndedAt()),
		Elapsed:       game.FormatElapsed(g.Elapsed()),
	}
}

type PresetDTO struct {
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MineCount int    `json:"mine_count"`
}

func NewPresetDTOs() []PresetDTO {
	var dtos []PresetDTO
	for _, p := range minefield.Presets() {
		params, _ := p.Params()
		dtos = append(dtos, PresetDTO{
			Name:      p.String(),
			Width:     params.Width,
			Height:    params.Height,
			MineCount: params.MineCount,
		})
	}
	return dtos
}
