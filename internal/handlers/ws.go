package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minefield/internal/game"
)

// ConnectWS upgrades to a websocket that accepts the text command protocol
// (see [game.Execute]). Each text message may carry several newline-separated
// commands; the reply is the session after the whole message. When a command
// is rejected the reply carries the error next to the state left by the
// commands before it.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WithError(err).Warn("unable to upgrade connection")
		return
	}
	defer conn.Close()

	logger := g.logger.WithField("session", s.ID.String())
	logger.Debug("websocket connected")

	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WithError(err).Warn("read")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		var reply *GameSessionDTO
		err = s.Do(func(gm *game.Game) error {
			result, err := game.ExecuteBatch(gm, string(buf))
			reply = NewGameSessionDTO(s, gm)
			reply.Result = result.String()
			return err
		})
		if err != nil {
			logger.WithError(err).Debug("command rejected")
			reply.Error = err.Error()
		}

		if err := conn.WriteJSON(reply); err != nil {
			logger.WithError(err).Warn("write")
			return
		}
	}
}
