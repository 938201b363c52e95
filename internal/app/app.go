package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/store"
)

type App struct {
	log      *logrus.Logger
	router   *http.ServeMux
	store    *store.Store
	sessions *config.Sessions
	jwt      *config.JWT
	ws       *config.WebSocket
	boards   *config.Boards
	rnd      *rand.Rand
	addr     string
}

func New(log *logrus.Logger) (*App, error) {
	sessions, err := config.NewSessions()
	if err != nil {
		return nil, err
	}

	j, err := config.NewJWT()
	if err != nil {
		return nil, err
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		return nil, err
	}

	boards, err := config.NewBoards()
	if err != nil {
		return nil, err
	}

	rnd, err := config.NewRand()
	if err != nil {
		return nil, err
	}

	app := &App{
		log:      log,
		router:   http.NewServeMux(),
		store:    store.New(sessions.IdleTTL, log),
		sessions: sessions,
		jwt:      j,
		ws:       ws,
		boards:   boards,
		rnd:      rnd,
		addr:     config.Port(),
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if basePath := config.BasePath(); basePath != "" {
		h = http.StripPrefix(basePath, h)
	}
	return middleware.Wrap(
		h,
		middleware.Logging(a.log),
		middleware.Cors(nil),
		middleware.Auth(a.log, a.jwt),
	)
}

// Start serves until ctx is done, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.store.Run(gCtx, a.sessions.SweepInterval)
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	a.log.WithFields(logrus.Fields{
		"addr":      a.addr,
		"base path": config.BasePath(),
	}).Info("server listening")

	return g.Wait()
}
