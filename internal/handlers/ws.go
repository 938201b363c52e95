package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

// ConnectWS upgrades to a websocket that accepts newline separated commands
// and answers every frame with the session state.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, session, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithField("error", err).Warn("upgrade failed")
		return
	}
	defer c.Close()
	c.SetReadLimit(g.ws.ReadLimit)

	log := g.log.WithField("sessionId", id)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithField("error", err).Warn("read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)

		var (
			reply    any
			opened   []mines.Point
			disclose bool
		)
		for _, cmd := range byPiece(text, "\n") {
			res, err := executeCommand(session, cmd)
			if err != nil {
				reply = wrapError(err)
				break
			}
			opened = append(opened, res.opened...)
			disclose = disclose || res.disclose
			if session.Status().Terminal() {
				break
			}
		}
		if reply == nil {
			dto := NewGameSessionDTO(id, session.View())
			dto.Opened = opened
			if disclose {
				dto.Grid = session.Disclose().Grid
			}
			reply = dto
		}

		c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
		if err := c.WriteJSON(reply); err != nil {
			log.WithFields(logrus.Fields{"error": err}).Warn("write failed")
			return
		}
	}
}
