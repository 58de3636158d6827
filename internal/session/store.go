// Package session keeps running games in memory for the server.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/minefield"
)

var Log = logrus.New()

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID     uuid.UUID
	Preset minefield.Preset

	mu      sync.Mutex
	game    *game.Game
	touched time.Time
}

// Do runs fn with exclusive access to the session's game.
func (s *Session) Do(fn func(g *game.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()
	return fn(s.game)
}

func (s *Session) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	seed     uint64
	created  atomic.Uint64
	ttl      time.Duration
}

// NewStore keeps sessions until they sit idle for ttl. A non-zero seed
// makes the n-th game's mine layout reproducible.
func NewStore(ttl time.Duration, seed uint64) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		seed:     seed,
		ttl:      ttl,
	}
}

func (s *Store) newRand() minefield.Rand {
	n := s.created.Add(1)
	if s.seed == 0 {
		return minefield.NewRand(0)
	}
	return minefield.NewRand(s.seed + n)
}

func (s *Store) Create(preset minefield.Preset) (*Session, error) {
	g, err := game.New(preset, s.newRand())
	if err != nil {
		return nil, err
	}
	session := &Session{
		ID:      uuid.New(),
		Preset:  preset,
		game:    g,
		touched: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	Log.WithFields(logrus.Fields{
		"session": session.ID.String(),
		"preset":  preset.String(),
	}).Debug("session created")

	return session, nil
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle since before now-ttl and returns how many went.
func (s *Store) Sweep(now time.Time) int {
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, session := range s.sessions {
		if session.lastTouched().Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
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
			if n := s.Sweep(now); n > 0 {
				Log.WithField("count", n).Info("swept idle sessions")
			}
		}
	}
}
