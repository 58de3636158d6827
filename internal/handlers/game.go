package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/minefield"
	"github.com/vancomm/minefield/internal/session"
)

type GameHandler struct {
	logger        logrus.FieldLogger
	store         *session.Store
	ws            *config.WebSocket
	defaultPreset minefield.Preset
}

func NewGameHandler(
	logger logrus.FieldLogger,
	store *session.Store,
	ws *config.WebSocket,
	defaultPreset minefield.Preset,
) *GameHandler {
	return &GameHandler{
		logger:        logger,
		store:         store,
		ws:            ws,
		defaultPreset: defaultPreset,
	}
}

func (g GameHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return nil, false
	}
	s, err := g.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendError(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		internalError(w, g.logger, "unable to fetch session", err)
		return nil, false
	}
	return s, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	preset, err := ParseCreateNewGameDTO(r.URL.Query(), g.defaultPreset)
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s, err := g.store.Create(preset)
	if err != nil {
		internalError(w, g.logger, "unable to create game session", err)
		return
	}

	g.logger.WithFields(logrus.Fields{
		"session": s.ID.String(),
		"preset":  preset.String(),
	}).Info("new game")

	var dto *GameSessionDTO
	_ = s.Do(func(gm *game.Game) error {
		dto = NewGameSessionDTO(s, gm)
		return nil
	})
	sendJSONOrLog(w, g.logger, http.StatusCreated, dto)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	var dto *GameSessionDTO
	_ = s.Do(func(gm *game.Game) error {
		dto = NewGameSessionDTO(s, gm)
		return nil
	})
	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	move, pos, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s, ok := g.session(w, r)
	if !ok {
		return
	}

	var dto *GameSessionDTO
	err = s.Do(func(gm *game.Game) error {
		result, err := move.Apply(gm, pos.X, pos.Y)
		if err != nil {
			return err
		}
		dto = NewGameSessionDTO(s, gm)
		dto.Result = result.String()
		return nil
	})
	switch {
	case errors.Is(err, game.ErrOutOfBounds):
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	case errors.Is(err, game.ErrGameOver):
		sendError(w, g.logger, http.StatusConflict, err)
		return
	case err != nil:
		internalError(w, g.logger, "unable to apply move", err)
		return
	}

	if dto.Status.Over() {
		g.logger.WithFields(logrus.Fields{
			"session": s.ID.String(),
			"status":  dto.Status.String(),
			"elapsed": dto.Elapsed,
		}).Info("game finished")
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	var dto *GameSessionDTO
	_ = s.Do(func(gm *game.Game) error {
		gm.Forfeit()
		dto = NewGameSessionDTO(s, gm)
		return nil
	})
	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

func (g GameHandler) Presets(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.logger, http.StatusOK, NewPresetDTOs())
}
