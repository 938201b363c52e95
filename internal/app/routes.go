package app

import (
	"net/http"

	"github.com/vancomm/minesweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.store, a.jwt, a.ws, a.boards, a.rnd)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("DELETE /game/{id}", game.Discard)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
}
