package app

import (
	"github.com/vancomm/minefield/internal/handlers"
)

func (a *App) loadRoutes() {
	// Validate has already accepted the preset
	preset, _ := a.cfg.Game.ParsePreset()

	game := handlers.NewGameHandler(a.logger, a.store, a.ws, preset)

	a.router.HandleFunc("GET /v1/presets", game.Presets)
	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /v1/game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST /v1/game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("/v1/game/{id}/connect", game.ConnectWS)
}
