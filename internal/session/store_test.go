package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setupTestStore(recorder ScoreRecorder) (*Store, *clock) {
	c := &clock{t: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)), recorder, time.Minute)
	s.Now = c.now
	s.NewRand = func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }
	return s, c
}

func TestStoreCreateAndGet(t *testing.T) {
	s, c := setupTestStore(nil)
	player := int64(7)

	sess, err := s.Create(mines.Easy, mines.GameParams{}, &player)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, c.t, sess.StartedAt)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	snap := got.Play(nil)
	assert.Equal(t, mines.Easy, snap.Difficulty)
	assert.Equal(t, mines.GameParams{Width: 10, Height: 10, MineCount: 25}, snap.Params)
	assert.Equal(t, mines.Playing, snap.Status)
	assert.Len(t, snap.Tiles, 100)
	assert.Equal(t, &player, snap.PlayerID)
	assert.Nil(t, snap.EndedAt)
	assert.Nil(t, snap.End)

	_, err = s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	s.Delete(sess.ID)
	assert.Zero(t, s.Len())
}

func TestStoreCreateInvalid(t *testing.T) {
	s, _ := setupTestStore(nil)
	_, err := s.Create(mines.Custom, mines.GameParams{Width: 2, Height: 2, MineCount: 4}, nil)
	assert.ErrorIs(t, err, mines.ErrInvalidParams)
	assert.Zero(t, s.Len())
}

func TestStoreRecordsFinishedGames(t *testing.T) {
	var results []Result
	recorder := RecorderFunc(func(ctx context.Context, r Result) error {
		results = append(results, r)
		return nil
	})
	s, c := setupTestStore(recorder)

	sess, err := s.Create(mines.Custom, mines.GameParams{Width: 2, Height: 1}, nil)
	require.NoError(t, err)

	c.t = c.t.Add(time.Second * 5)
	snap := sess.Play(func(g *mines.Game) {
		g.Open(mines.Point{Row: 0, Col: 0})
	})
	assert.Equal(t, mines.Won, snap.Status)
	require.NotNil(t, snap.End)
	require.NotNil(t, snap.EndedAt)
	assert.Equal(t, c.t, *snap.EndedAt)
	assert.Equal(t, 70, snap.Score)

	require.Len(t, results, 1)
	assert.Equal(t, Result{
		SessionID:  sess.ID,
		Difficulty: mines.Custom,
		Params:     mines.GameParams{Width: 2, Height: 1},
		Won:        true,
		Score:      70,
		Opened:     2,
		StartedAt:  sess.StartedAt,
		EndedAt:    c.t,
	}, results[0])

	sess.Play(func(g *mines.Game) { g.ForceEnd() })
	assert.Len(t, results, 1)
}

func TestStoreRecorderErrorIsNotFatal(t *testing.T) {
	recorder := RecorderFunc(func(ctx context.Context, r Result) error {
		return errors.New("db down")
	})
	s, _ := setupTestStore(recorder)

	sess, err := s.Create(mines.Medium, mines.GameParams{}, nil)
	require.NoError(t, err)

	snap := sess.Play(func(g *mines.Game) { g.ForceEnd() })
	assert.Equal(t, mines.Lost, snap.Status)
	require.NotNil(t, snap.End)
	assert.Equal(t, mines.LossMessage, snap.End.Message)
}

func TestStoreSweep(t *testing.T) {
	s, c := setupTestStore(nil)

	stale, err := s.Create(mines.Easy, mines.GameParams{}, nil)
	require.NoError(t, err)

	c.t = c.t.Add(time.Second * 50)
	fresh, err := s.Create(mines.Easy, mines.GameParams{}, nil)
	require.NoError(t, err)

	c.t = c.t.Add(time.Second * 20)
	assert.Equal(t, 1, s.Sweep(c.t))

	_, err = s.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(fresh.ID)
	assert.NoError(t, err)

	// a move refreshes the session
	c.t = c.t.Add(time.Second * 50)
	fresh.Play(nil)
	c.t = c.t.Add(time.Second * 30)
	assert.Zero(t, s.Sweep(c.t))
}

func TestStoreRunStopsWithContext(t *testing.T) {
	s, _ := setupTestStore(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.Run(ctx))
}

func TestStoreSlowRecorderDoesNotBlockOtherSessions(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	recorder := RecorderFunc(func(ctx context.Context, r Result) error {
		close(entered)
		<-release
		return nil
	})
	s, c := setupTestStore(recorder)

	slow, err := s.Create(mines.Easy, mines.GameParams{}, nil)
	require.NoError(t, err)
	other, err := s.Create(mines.Easy, mines.GameParams{}, nil)
	require.NoError(t, err)

	played := make(chan Snapshot)
	go func() {
		played <- slow.Play(func(g *mines.Game) { g.ForceEnd() })
	}()
	<-entered

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Sweep(c.t.Add(time.Hour))
		_, err := s.Get(other.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.Create(mines.Easy, mines.GameParams{}, nil)
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("store blocked while a score was being recorded")
	}

	// the finished game is no longer locked while its score is written
	assert.Equal(t, mines.Lost, slow.Play(nil).Status)

	close(release)
	snap := <-played
	assert.Equal(t, mines.Lost, snap.Status)
}
