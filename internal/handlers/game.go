package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/game"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrMissingToken   = errors.New("missing or invalid session token")
	ErrForeignSession = errors.New("token does not belong to this session")
)

type SessionStore interface {
	Create(s *game.Session) int64
	Get(id int64) (*game.Session, error)
	Delete(id int64)
}

type GameHandler struct {
	log    logrus.FieldLogger
	store  SessionStore
	jwt    *config.JWT
	ws     *config.WebSocket
	boards *config.Boards

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewGameHandler(
	log logrus.FieldLogger,
	store SessionStore,
	jwt *config.JWT,
	ws *config.WebSocket,
	boards *config.Boards,
	rnd *rand.Rand,
) *GameHandler {
	handler := &GameHandler{
		log:    log,
		store:  store,
		jwt:    jwt,
		ws:     ws,
		boards: boards,
		rnd:    rnd,
	}
	return handler
}

// *rand.Rand is not safe for concurrent use.
func (g *GameHandler) newSession(p game.Params) (*game.Session, error) {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	return game.New(p, g.rnd)
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	if dto.Size > g.boards.MaxSize {
		err := fmt.Errorf("%w: size cannot exceed %d", mines.ErrInvalidConfiguration, g.boards.MaxSize)
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	session, err := g.newSession(game.Params(dto))
	if errors.Is(err, mines.ErrInvalidConfiguration) {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithField("error", err).Error("unable to generate a new game")
		return
	}

	id := g.store.Create(session)
	token, err := g.jwt.Sign(id)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithField("error", err).Error("unable to sign session token")
		return
	}

	g.log.WithFields(logrus.Fields{
		"sessionId": id,
		"size":      dto.Size,
		"mineCount": dto.MineCount,
	}).Debug("created session")

	res := NewGameSessionDTO(id, session.View())
	res.Token = token
	if _, err := sendJSONStatus(w, http.StatusCreated, res); err != nil {
		g.log.WithField("error", err).Error("unable to send new session")
	}
}

// loadSession resolves the {id} path value to a session the caller holds a
// token for. It writes the error response itself.
func (g *GameHandler) loadSession(w http.ResponseWriter, r *http.Request) (int64, *game.Session, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, fmt.Errorf("invalid session id"))
		return 0, nil, false
	}

	claims, ok := middleware.SessionClaims(r)
	if !ok {
		sendError(w, g.log, http.StatusUnauthorized, ErrMissingToken)
		return 0, nil, false
	}
	if claims.SessionId != sessionId {
		sendError(w, g.log, http.StatusUnauthorized, ErrForeignSession)
		return 0, nil, false
	}

	session, err := g.store.Get(sessionId)
	if err != nil {
		sendError(w, g.log, http.StatusNotFound, err)
		return 0, nil, false
	}
	return sessionId, session, true
}

func moveStatus(err error) int {
	switch {
	case errors.Is(err, mines.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, session, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	SendJSONOrLog(w, g.log, NewGameSessionDTO(id, session.View()))
}

func (g *GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	id, session, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	var opened []mines.Point
	switch move {
	case Reveal:
		var res mines.RevealResult
		res, err = session.Reveal(pos.Row, pos.Col)
		opened = res.Opened
	case Flag:
		err = session.ToggleFlag(pos.Row, pos.Col)
	}
	if err != nil {
		sendError(w, g.log, moveStatus(err), err)
		return
	}

	view := session.View()
	if view.Status.Terminal() {
		g.log.WithFields(logrus.Fields{
			"sessionId": id,
			"status":    view.Status.String(),
			"elapsed":   view.Elapsed.String(),
		}).Info("game over")
	}

	res := NewGameSessionDTO(id, view)
	res.Opened = opened
	SendJSONOrLog(w, g.log, res)
}

func (g *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	id, session, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	session.Forfeit()
	SendJSONOrLog(w, g.log, NewGameSessionDTO(id, session.View()))
}

// Discard drops the session; its token is useless afterwards.
func (g *GameHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id, _, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	g.store.Delete(id)
	g.log.WithField("sessionId", id).Debug("discarded session")
	w.WriteHeader(http.StatusNoContent)
}
