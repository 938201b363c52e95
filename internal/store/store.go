package store

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper/internal/game"
)

var ErrNotFound = fmt.Errorf("session not found")

// Store keeps live game sessions in memory. Sessions idle for longer than ttl
// are dropped by Sweep.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*game.Session
	ttl      time.Duration
	log      logrus.FieldLogger
}

func New(ttl time.Duration, log logrus.FieldLogger) *Store {
	return &Store{
		sessions: make(map[int64]*game.Session),
		ttl:      ttl,
		log:      log,
	}
}

// Create stores session under a fresh random positive id. Ids are not
// sequential, so a token issued by an earlier process cannot name a session
// created by this one.
func (s *Store) Create(session *game.Session) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		id := rand.Int64N(math.MaxInt64) + 1
		if _, taken := s.sessions[id]; taken {
			continue
		}
		s.sessions[id] = session
		return id
	}
}

// Retrieve a session. If id is not present, [ErrNotFound] is returned.
func (s *Store) Get(id int64) (*game.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Deletes id from store without checking if it existed.
func (s *Store) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Sweep removes sessions untouched since now - ttl and reports how many
// were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.TouchedAt()) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := s.Sweep(now.UTC()); n > 0 {
				s.log.WithFields(logrus.Fields{
					"removed": n,
					"live":    s.Count(),
				}).Info("swept idle sessions")
			}
		}
	}
}
