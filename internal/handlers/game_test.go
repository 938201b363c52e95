package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/game"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/store"
)

type testServer struct {
	*httptest.Server
	store *store.Store
	jwt   *config.JWT
}

type sessionResponse struct {
	GameSessionId string        `json:"game_session_id"`
	Token         string        `json:"token"`
	Grid          []int         `json:"grid"`
	Size          int           `json:"size"`
	MineCount     int           `json:"mine_count"`
	Status        string        `json:"status"`
	Flags         int           `json:"flags"`
	Revealed      int           `json:"revealed"`
	Opened        []mines.Point `json:"opened"`
	EndedAt       *int64        `json:"ended_at"`
	Error         string        `json:"error"`
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	st := store.New(time.Hour, log)
	j := config.NewJWTWithSecret([]byte("test secret"), time.Hour)
	ws := &config.WebSocket{ReadLimit: 4096, WriteTimeout: time.Second}
	boards := &config.Boards{MaxSize: 20}
	h := NewGameHandler(log, st, j, ws, boards, rand.New(rand.NewPCG(1, 2)))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /game", h.NewGame)
	mux.HandleFunc("GET /game/{id}", h.Fetch)
	mux.HandleFunc("POST /game/{id}/move", h.MakeAMove)
	mux.HandleFunc("POST /game/{id}/forfeit", h.Forfeit)
	mux.HandleFunc("DELETE /game/{id}", h.Discard)
	mux.HandleFunc("GET /game/{id}/connect", h.ConnectWS)

	srv := httptest.NewServer(middleware.Auth(log, j)(mux))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, store: st, jwt: j}
}

func (s *testServer) do(t *testing.T, method, path, token string) (int, sessionResponse) {
	t.Helper()

	req, err := http.NewRequest(method, s.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body sessionResponse
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(b) > 0 {
		require.NoError(t, json.Unmarshal(b, &body), string(b))
	}
	return resp.StatusCode, body
}

func (s *testServer) newGame(t *testing.T, size, mineCount int) sessionResponse {
	t.Helper()
	code, body := s.do(t, http.MethodPost, fmt.Sprintf("/game?size=%d&mine_count=%d", size, mineCount), "")
	require.Equal(t, http.StatusCreated, code, body.Error)
	return body
}

func (s *testServer) session(t *testing.T, id string) *game.Session {
	t.Helper()
	var n int64
	_, err := fmt.Sscanf(id, "%d", &n)
	require.NoError(t, err)
	session, err := s.store.Get(n)
	require.NoError(t, err)
	return session
}

func findCell(t *testing.T, b *mines.Board, match func(mines.Cell) bool) mines.Point {
	t.Helper()
	for row := range b.Size() {
		for col := range b.Size() {
			c, _ := b.Cell(row, col)
			if match(c) {
				return mines.Point{Row: row, Col: col}
			}
		}
	}
	t.Fatal("no matching cell")
	return mines.Point{}
}

func isMine(c mines.Cell) bool { return c.HasMine }

// a numbered cell opens alone, so revealing it never wins the game
func isNumbered(c mines.Cell) bool { return !c.HasMine && c.NeighborMines > 0 }

func movePath(id, move string, p mines.Point) string {
	return fmt.Sprintf("/game/%s/move?move=%s&row=%d&col=%d", id, move, p.Row, p.Col)
}

func TestNewGameBadParams(t *testing.T) {
	s := setupTestServer(t)

	tests := []struct {
		name  string
		query string
	}{
		{"missing mine count", "size=9"},
		{"not a number", "size=nine&mine_count=10"},
		{"too many mines", "size=3&mine_count=10"},
		{"zero size", "size=0&mine_count=0"},
		{"above server limit", "size=21&mine_count=0"},
		{"huge board", "size=100000&mine_count=0"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/game?"+test.query, "")
			require.Equal(t, http.StatusBadRequest, code)
			require.NotEmpty(t, body.Error)
		})
	}
	require.Zero(t, s.store.Count())
}

func TestNewGame(t *testing.T) {
	s := setupTestServer(t)

	body := s.newGame(t, 9, 10)
	require.NotEmpty(t, body.Token)
	require.Equal(t, "in_progress", body.Status)
	require.Equal(t, 9, body.Size)
	require.Equal(t, 10, body.MineCount)
	require.Len(t, body.Grid, 81)
	for _, v := range body.Grid {
		require.Equal(t, int(mines.Unknown), v)
	}
	require.Nil(t, body.EndedAt)
}

func TestNewGameAtServerLimit(t *testing.T) {
	s := setupTestServer(t)

	body := s.newGame(t, 20, 0)
	require.Len(t, body.Grid, 400)
}

// A restarted server shares the signing secret with its predecessor, so old
// tokens still verify; they must not open the new process's sessions.
func TestTokenFromEarlierProcess(t *testing.T) {
	before := setupTestServer(t)
	after := setupTestServer(t)

	old := before.newGame(t, 9, 10)
	fresh := after.newGame(t, 9, 10)
	require.NotEqual(t, old.GameSessionId, fresh.GameSessionId)

	code, _ := after.do(t, http.MethodGet, "/game/"+fresh.GameSessionId, old.Token)
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = after.do(t, http.MethodGet, "/game/"+old.GameSessionId, old.Token)
	require.Equal(t, http.StatusNotFound, code)

	code, _ = after.do(t, http.MethodGet, "/game/"+fresh.GameSessionId, fresh.Token)
	require.Equal(t, http.StatusOK, code)
}

func TestFetchRequiresToken(t *testing.T) {
	s := setupTestServer(t)

	a := s.newGame(t, 5, 3)
	b := s.newGame(t, 5, 3)

	code, _ := s.do(t, http.MethodGet, "/game/"+a.GameSessionId, "")
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodGet, "/game/"+a.GameSessionId, "garbage")
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodGet, "/game/"+a.GameSessionId, b.Token)
	require.Equal(t, http.StatusUnauthorized, code)

	code, body := s.do(t, http.MethodGet, "/game/"+a.GameSessionId, a.Token)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, a.GameSessionId, body.GameSessionId)
	require.Empty(t, body.Token)

	token, err := s.jwt.Sign(999)
	require.NoError(t, err)
	code, _ = s.do(t, http.MethodGet, "/game/999", token)
	require.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodGet, "/game/abc", a.Token)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestMoves(t *testing.T) {
	s := setupTestServer(t)

	g := s.newGame(t, 9, 10)
	board := s.session(t, g.GameSessionId).Board()
	safe := findCell(t, board, isNumbered)
	mine := findCell(t, board, isMine)

	code, body := s.do(t, http.MethodPost, movePath(g.GameSessionId, "flag", mine), g.Token)
	require.Equal(t, http.StatusOK, code, body.Error)
	require.Equal(t, 1, body.Flags)
	require.Equal(t, int(mines.Flagged), body.Grid[mine.Row*9+mine.Col])

	code, body = s.do(t, http.MethodPost, movePath(g.GameSessionId, "reveal", safe), g.Token)
	require.Equal(t, http.StatusOK, code, body.Error)
	require.Equal(t, "in_progress", body.Status)
	require.Equal(t, []mines.Point{safe}, body.Opened)
	require.Equal(t, 1, body.Revealed)

	code, body = s.do(t, http.MethodPost, movePath(g.GameSessionId, "reveal", mines.Point{Row: 9, Col: 0}), g.Token)
	require.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, body.Error)

	code, _ = s.do(t, http.MethodPost, movePath(g.GameSessionId, "chord", safe), g.Token)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/game/"+g.GameSessionId+"/move?move=reveal&row=1", g.Token)
	require.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(t, http.MethodPost, movePath(g.GameSessionId, "reveal", mine), g.Token)
	require.Equal(t, http.StatusOK, code, body.Error)
	require.Equal(t, "lost", body.Status)
	require.NotNil(t, body.EndedAt)
	require.Equal(t, int(mines.ExplodedMine), body.Grid[mine.Row*9+mine.Col])
	require.NotContains(t, body.Grid, int(mines.Unknown))

	code, body = s.do(t, http.MethodPost, movePath(g.GameSessionId, "reveal", safe), g.Token)
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, game.ErrGameOver.Error(), body.Error)
}

func TestWinOverHTTP(t *testing.T) {
	s := setupTestServer(t)

	g := s.newGame(t, 4, 0)
	code, body := s.do(t, http.MethodPost, movePath(g.GameSessionId, "reveal", mines.Point{}), g.Token)
	require.Equal(t, http.StatusOK, code, body.Error)
	require.Equal(t, "won", body.Status)
	require.Equal(t, 16, body.Revealed)
}

func TestForfeit(t *testing.T) {
	s := setupTestServer(t)

	g := s.newGame(t, 5, 5)
	code, body := s.do(t, http.MethodPost, "/game/"+g.GameSessionId+"/forfeit", g.Token)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "lost", body.Status)
	require.Contains(t, body.Grid, int(mines.UnflaggedMine))
}

func TestDiscard(t *testing.T) {
	s := setupTestServer(t)

	g := s.newGame(t, 5, 5)
	code, _ := s.do(t, http.MethodDelete, "/game/"+g.GameSessionId, "")
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodDelete, "/game/"+g.GameSessionId, g.Token)
	require.Equal(t, http.StatusNoContent, code)
	require.Zero(t, s.store.Count())

	code, _ = s.do(t, http.MethodGet, "/game/"+g.GameSessionId, g.Token)
	require.Equal(t, http.StatusNotFound, code)
}

func TestWebSocket(t *testing.T) {
	s := setupTestServer(t)

	g := s.newGame(t, 6, 4)
	board := s.session(t, g.GameSessionId).Board()
	mine := findCell(t, board, isMine)

	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/game/" + g.GameSessionId + "/connect?token=" + g.Token
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()

	send := func(text string) sessionResponse {
		t.Helper()
		require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(text)))
		var res sessionResponse
		require.NoError(t, c.ReadJSON(&res))
		return res
	}

	res := send("g")
	require.Equal(t, g.GameSessionId, res.GameSessionId)
	require.Equal(t, "in_progress", res.Status)

	res = send(fmt.Sprintf("f %d %d\nf 0 0\nf 0 0", mine.Row, mine.Col))
	require.Equal(t, 1, res.Flags)

	res = send("x 1 2")
	require.Equal(t, ErrUnknownCommand.Error(), res.Error)

	res = send("r 100 100")
	require.NotEmpty(t, res.Error)

	res = send("d")
	require.Equal(t, "in_progress", res.Status)
	require.NotContains(t, res.Grid, int(mines.Unknown))

	res = send(fmt.Sprintf("r %d %d\ng", mine.Row, mine.Col))
	require.Equal(t, "lost", res.Status)
}

func TestWebSocketRequiresToken(t *testing.T) {
	s := setupTestServer(t)

	g := s.newGame(t, 4, 2)
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/game/" + g.GameSessionId + "/connect"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
