package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrGameOver = errors.New("game is over")

type Status int

const (
	InProgress Status = iota
	Lost
	Won
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s Status) Terminal() bool {
	return s == Lost || s == Won
}

// Session is one single-player game. All methods except Board are safe for
// concurrent use; sessions share nothing with each other.
type Session struct {
	mu        sync.Mutex
	board     *mines.Board
	status    Status
	exploded  *mines.Point
	startedAt time.Time
	endedAt   time.Time
	touchedAt time.Time
	now       func() time.Time
}

type Option func(*Session)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func New(p Params, r *rand.Rand, opts ...Option) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b, err := mines.NewBoard(p.Size, p.MineCount, r)
	if err != nil {
		return nil, err
	}
	return FromBoard(b, opts...), nil
}

func FromBoard(b *mines.Board, opts ...Option) *Session {
	s := &Session{board: b, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now().UTC()
	s.touchedAt = s.startedAt
	if b.IsVictory() {
		s.finish(Won)
	}
	return s
}

func (s *Session) finish(status Status) {
	s.status = status
	s.endedAt = s.now().UTC()
}

func (s *Session) Reveal(row, col int) (mines.RevealResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return mines.RevealResult{}, ErrGameOver
	}
	res, err := s.board.Reveal(row, col)
	if err != nil {
		return res, err
	}
	s.touchedAt = s.now().UTC()

	if !res.Safe {
		s.exploded = &mines.Point{Row: row, Col: col}
		s.finish(Lost)
	} else if s.board.IsVictory() {
		s.finish(Won)
	}
	return res, nil
}

func (s *Session) ToggleFlag(row, col int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return ErrGameOver
	}
	if err := s.board.ToggleFlag(row, col); err != nil {
		return err
	}
	s.touchedAt = s.now().UTC()

	if s.board.IsVictory() {
		s.finish(Won)
	}
	return nil
}

// Forfeit aborts a game in progress.
func (s *Session) Forfeit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.status.Terminal() {
		s.finish(Lost)
	}
	s.touchedAt = s.now().UTC()
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Exploded() (mines.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exploded == nil {
		return mines.Point{}, false
	}
	return *s.exploded, true
}

func (s *Session) elapsed() time.Duration {
	if s.status.Terminal() {
		return s.endedAt.Sub(s.startedAt)
	}
	return s.now().UTC().Sub(s.startedAt)
}

func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed()
}

func (s *Session) TouchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// Disclose returns the uncovered board regardless of the game status.
func (s *Session) Disclose() mines.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Disclose(s.exploded)
}

type View struct {
	mines.View
	Status    Status
	Flags     int
	Revealed  int
	StartedAt time.Time
	EndedAt   *time.Time
	Elapsed   time.Duration
}

// View returns the player's view of the game, fully disclosed once the game
// has ended.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Status:    s.status,
		Flags:     s.board.FlagCount(),
		Revealed:  s.board.RevealedCount(),
		StartedAt: s.startedAt,
		Elapsed:   s.elapsed(),
	}
	if s.status.Terminal() {
		endedAt := s.endedAt
		v.EndedAt = &endedAt
		v.View = s.board.Disclose(s.exploded)
	} else {
		v.View = s.board.Snapshot()
	}
	return v
}

// Board exposes the underlying board without taking the session lock. It is
// meant for a single-goroutine owner such as the console, which renders
// between its own moves; concurrent callers must use View or Disclose.
// Callers must not mutate the board.
func (s *Session) Board() *mines.Board {
	return s.board
}
