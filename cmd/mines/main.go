package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/console"
	"github.com/vancomm/minesweeper/internal/game"
	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	log = logrus.New()

	seed  string
	board string
	debug bool
)

func init() {
	flag.StringVar(&seed, "seed", "", `fixed PCG seed "a:b" for a reproducible board`)
	flag.StringVar(&board, "board", "", `board "size:mines", skips the prompts`)
	flag.BoolVar(&debug, "debug", false, "log engine traces to stderr")
}

func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
		mines.Log = log
	}
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()
	setupLogging()

	var (
		rnd *rand.Rand
		err error
	)
	if seed != "" {
		rnd, err = config.ParseRandSeed(seed)
	} else {
		rnd, err = config.NewRand()
	}
	if err != nil {
		log.Fatal("unable to seed generator: ", err)
	}

	opts := []console.Option{console.WithLogger(log)}
	if board != "" {
		p, err := game.ParseSeed(board)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, console.WithParams(*p))
	}

	outcome, err := console.NewGame(os.Stdin, os.Stdout, rnd, opts...).Run(ctx)
	if err != nil {
		log.WithField("error", err).Error("game aborted")
		os.Exit(1)
	}
	log.WithField("outcome", outcome.String()).Debug("game finished")
}
