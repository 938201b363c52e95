package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/game"
)

const (
	MinSize = 4
	MaxSize = 9
)

const banner = `Welcome to Minesweeper!

Rules:
1. Choose a cell to reveal by entering its row and column.
2. Flag cells you suspect contain mines.
3. Reveal all safe cells to win.
4. Hitting a mine results in game over.

`

const actionPrompt = "Enter 'r' to reveal, 'f' to flag/unflag, or 'd' for debug mode: "

type Outcome int

const (
	Aborted Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "aborted"
	}
}

// Game is one interactive round played over a line-oriented terminal.
type Game struct {
	prompt *Prompter
	out    io.Writer
	rnd    *rand.Rand
	now    func() time.Time
	log    logrus.FieldLogger
	params *game.Params
}

type Option func(*Game)

func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// WithParams skips the size and mine count prompts.
func WithParams(p game.Params) Option {
	return func(g *Game) {
		g.params = &p
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(g *Game) {
		g.log = log
	}
}

func NewGame(in io.Reader, out io.Writer, rnd *rand.Rand, opts ...Option) *Game {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	g := &Game{
		prompt: NewPrompter(in, out),
		out:    out,
		rnd:    rnd,
		now:    time.Now,
		log:    discard,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run plays until the board is won or lost. Running out of input or a
// cancelled ctx yields Aborted; only the latter is reported as an error.
func (g *Game) Run(ctx context.Context) (Outcome, error) {
	outcome, err := g.run(ctx)
	if errors.Is(err, io.EOF) {
		return Aborted, nil
	}
	return outcome, err
}

func (g *Game) run(ctx context.Context) (Outcome, error) {
	fmt.Fprint(g.out, banner)

	p, err := g.askParams()
	if err != nil {
		return Aborted, err
	}
	size := p.Size

	session, err := game.New(p, g.rnd, game.WithClock(g.now))
	if err != nil {
		return Aborted, err
	}
	board := session.Board()
	g.log.WithField("params", p.Seed()).Debug("new board")

	for {
		if err := ctx.Err(); err != nil {
			return Aborted, err
		}
		if session.Status() == game.Won {
			Render(g.out, board, true)
			fmt.Fprintf(g.out, "\nCongratulations! You cleared the board in %s seconds.\n",
				formatSeconds(session.Elapsed()))
			return Won, nil
		}

		Render(g.out, board, false)
		action, err := g.prompt.Action(actionPrompt)
		if err != nil {
			return Aborted, err
		}

		switch action {
		case "r", "f":
		case "d":
			fmt.Fprintln(g.out, "\nDebug Mode: Revealing entire board.")
			Render(g.out, board, true)
			continue
		default:
			fmt.Fprintln(g.out, "Invalid action. Please enter 'r', 'f', or 'd'.")
			continue
		}

		row, err := g.prompt.Int("Enter row: ", 1, size)
		if err != nil {
			return Aborted, err
		}
		col, err := g.prompt.Int("Enter column: ", 1, size)
		if err != nil {
			return Aborted, err
		}
		row, col = row-1, col-1

		log := g.log.WithFields(logrus.Fields{"action": action, "row": row, "col": col})
		if action == "f" {
			if err := session.ToggleFlag(row, col); err != nil {
				return Aborted, err
			}
			log.Debug("toggled flag")
			continue
		}

		res, err := session.Reveal(row, col)
		if err != nil {
			return Aborted, err
		}
		log.WithField("opened", len(res.Opened)).Debug("revealed")
		if !res.Safe {
			Render(g.out, board, true)
			fmt.Fprintln(g.out, "\nYou hit a mine. Game over!")
			return Lost, nil
		}
	}
}

func (g *Game) askParams() (game.Params, error) {
	if g.params != nil {
		return *g.params, nil
	}
	size, err := g.prompt.Int(fmt.Sprintf("Enter board size (%d-%d): ", MinSize, MaxSize), MinSize, MaxSize)
	if err != nil {
		return game.Params{}, err
	}
	mineCount, err := g.prompt.Int(fmt.Sprintf("Enter number of mines (1-%d): ", size*size), 1, size*size)
	if err != nil {
		return game.Params{}, err
	}
	return game.Params{Size: size, MineCount: mineCount}, nil
}

// formatSeconds rounds to two decimals and always keeps a fractional part,
// so 12 s prints as "12.0".
func formatSeconds(d time.Duration) string {
	secs := math.Round(d.Seconds()*100) / 100
	s := strconv.FormatFloat(secs, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
