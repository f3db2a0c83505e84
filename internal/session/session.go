package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Session is one live game. The engine is not safe for concurrent use, so
// every call goes through Play.
type Session struct {
	ID        uuid.UUID
	PlayerID  *int64
	StartedAt time.Time

	mu      sync.Mutex
	game    *mines.Game
	endedAt *time.Time
	// pending is set by the end observer and recorded once the lock is
	// released.
	pending *Result
	record  func(Result)

	lastSeen atomic.Int64 // unix nanoseconds
	now      func() time.Time
}

type Snapshot struct {
	ID         uuid.UUID
	PlayerID   *int64
	Difficulty mines.Difficulty
	Params     mines.GameParams
	Status     mines.Status
	Tiles      mines.Tiles
	Flags      int
	Score      int
	StartedAt  time.Time
	EndedAt    *time.Time
	End        *mines.EndEvent
}

// Play runs fn against the game under the session lock and returns the
// state it left behind. fn may be nil. A result produced by a game that
// ended inside fn is recorded after the lock is released.
func (s *Session) Play(fn func(g *mines.Game)) Snapshot {
	s.mu.Lock()
	s.touch(s.now())
	if fn != nil {
		fn(s.game)
	}
	snap := s.snapshot()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if pending != nil && s.record != nil {
		s.record(*pending)
	}
	return snap
}

func (s *Session) snapshot() Snapshot {
	g := s.game
	snap := Snapshot{
		ID:         s.ID,
		PlayerID:   s.PlayerID,
		Difficulty: g.Difficulty(),
		Params:     g.Parameters(),
		Status:     g.Status(),
		Tiles:      g.Tiles(),
		Flags:      g.FlagCount(),
		Score:      g.Score(g.Terminal()),
		StartedAt:  s.StartedAt,
		EndedAt:    s.endedAt,
	}
	if end, ok := g.Ended(); ok {
		snap.End = &end
	}
	return snap
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

// idleSince never takes the session lock, so it is safe to call while a
// move is in progress.
func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}
