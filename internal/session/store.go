package session

import (
	"context"
	"errors"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/metrics"
	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrNotFound = errors.New("session not found")

const recordTimeout = 5 * time.Second

// Result is what gets recorded when a game ends.
type Result struct {
	SessionID  uuid.UUID
	PlayerID   *int64
	Difficulty mines.Difficulty
	Params     mines.GameParams
	Won        bool
	Score      int
	Opened     int
	StartedAt  time.Time
	EndedAt    time.Time
}

type ScoreRecorder interface {
	RecordScore(ctx context.Context, r Result) error
}

type RecorderFunc func(ctx context.Context, r Result) error

// [RecorderFunc] implements [ScoreRecorder]
func (f RecorderFunc) RecordScore(ctx context.Context, r Result) error {
	return f(ctx, r)
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

type Store struct {
	logger   *slog.Logger
	recorder ScoreRecorder
	ttl      time.Duration

	// NewRand supplies the mine source of each new game.
	NewRand func() *rand.Rand
	Now     func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewStore keeps sessions in memory for ttl after their last move.
// recorder may be nil.
func NewStore(logger *slog.Logger, recorder ScoreRecorder, ttl time.Duration) *Store {
	return &Store{
		logger:   logger,
		recorder: recorder,
		ttl:      ttl,
		NewRand:  createRand,
		Now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (s *Store) Create(
	difficulty mines.Difficulty, custom mines.GameParams, playerID *int64,
) (*Session, error) {
	game, err := mines.NewGame(difficulty, custom, s.NewRand())
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	sess := &Session{
		ID:        uuid.New(),
		PlayerID:  playerID,
		StartedAt: now,
		game:      game,
		now:       s.Now,
	}
	sess.touch(now)
	if s.recorder != nil {
		sess.record = s.record
	}
	game.OnEnd(func(ev mines.EndEvent) { s.finish(sess, ev) })

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	metrics.GamesStarted.WithLabelValues(game.Difficulty().String()).Inc()
	metrics.SessionsActive.Inc()
	s.logger.Debug("created session",
		slog.String("id", sess.ID.String()),
		slog.String("difficulty", game.Difficulty().String()),
		slog.Any("params", game.Parameters()),
	)

	return sess, nil
}

// finish runs inside the engine call that ended the game, so the session
// lock is already held. It only queues the result; Play records it.
func (s *Store) finish(sess *Session, ev mines.EndEvent) {
	endedAt := s.Now().UTC()
	sess.endedAt = &endedAt

	g := sess.game
	outcome := mines.Lost.String()
	if ev.Won {
		outcome = mines.Won.String()
	}
	metrics.GamesFinished.WithLabelValues(g.Difficulty().String(), outcome).Inc()

	s.logger.Info("game finished",
		slog.String("id", sess.ID.String()),
		slog.String("outcome", outcome),
		slog.Int("score", ev.Score),
	)

	sess.pending = &Result{
		SessionID:  sess.ID,
		PlayerID:   sess.PlayerID,
		Difficulty: g.Difficulty(),
		Params:     g.Parameters(),
		Won:        ev.Won,
		Score:      ev.Score,
		Opened:     g.OpenedCount(),
		StartedAt:  sess.StartedAt,
		EndedAt:    endedAt,
	}
}

func (s *Store) record(r Result) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := s.recorder.RecordScore(ctx, r); err != nil {
		s.logger.Error("unable to record score",
			slog.String("id", r.SessionID.String()), slog.Any("error", err))
	}
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		metrics.SessionsActive.Dec()
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were dropped. The store is write-locked only for the deletions.
func (s *Store) Sweep(now time.Time) int {
	s.mu.RLock()
	var idle []uuid.UUID
	for id, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.ttl {
			idle = append(idle, id)
		}
	}
	s.mu.RUnlock()
	if len(idle) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for _, id := range idle {
		sess, ok := s.sessions[id]
		// a move may have refreshed it in between
		if !ok || now.Sub(sess.idleSince()) <= s.ttl {
			continue
		}
		delete(s.sessions, id)
		evicted++
	}
	metrics.SessionsActive.Sub(float64(evicted))
	return evicted
}

// Run sweeps on a fixed interval until ctx is done.
func (s *Store) Run(ctx context.Context) error {
	interval := max(s.ttl/4, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(s.Now()); n > 0 {
				s.logger.Debug("evicted idle sessions", slog.Int("count", n))
			}
		}
	}
}
