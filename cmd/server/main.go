package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/mines"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.NewLogging()
	if err != nil {
		logrus.Fatal("failed to read logging config: ", err)
	}
	log, err := logging.New(cfg)
	if err != nil {
		logrus.Fatal("failed to set up logging: ", err)
	}
	if cfg.Development {
		mines.Log = log
	}

	a, err := app.New(log)
	if err != nil {
		log.WithField("error", err).Fatal("failed to configure server")
	}

	if err := a.Start(ctx); err != nil {
		log.WithField("error", err).Error("server stopped")
		os.Exit(1)
	}
	log.Info("server stopped")
}
