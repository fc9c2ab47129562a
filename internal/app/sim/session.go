package sim

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"
)

// Session is the host-facing owner of a Game. Every access goes through its
// mutex, so the tick loop and request handlers can share one run.
type Session struct {
	mu   sync.Mutex
	id   string
	cfg  Config
	rng  world.Random
	game *Game
	now  func() time.Time
}

func NewSession(cfg Config, rng world.Random, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = world.NewRandom(cfg.Seed)
	}
	return &Session{
		id:   uuid.NewString(),
		cfg:  cfg,
		rng:  rng,
		game: New(cfg, rng),
		now:  now,
	}
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Advance ticks the game once and stamps the returned events with wall time.
func (s *Session) Advance(dt time.Duration) []survival.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.game.Tick(dt)
	at := s.now().UTC()
	for i := range events {
		events[i].OccurredAt = at
	}
	return events
}

// Do runs fn with exclusive access to the game.
func (s *Session) Do(fn func(g *Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Frame()
}

func (s *Session) Export() survival.SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Export()
}

func (s *Session) Restore(state survival.SaveState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Restore(state)
}

// Reset discards the current run and starts a new one under a new id.
func (s *Session) Reset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = New(s.cfg, s.rng)
	s.id = uuid.NewString()
	return s.id
}

func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Over()
}
