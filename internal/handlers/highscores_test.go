package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/repository"
)

type sourceFunc func(ctx context.Context, filter repository.HighscoreFilter) ([]repository.Highscore, error)

func (f sourceFunc) Highscores(ctx context.Context, filter repository.HighscoreFilter) ([]repository.Highscore, error) {
	return f(ctx, filter)
}

func TestParseHighscoreQueryDTO(t *testing.T) {
	filter, err := ParseHighscoreQueryDTO(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, repository.HighscoreFilter{}, filter)

	filter, err = ParseHighscoreQueryDTO(url.Values{
		"username":   {"alice"},
		"difficulty": {"HARD"},
		"won_only":   {"true"},
		"limit":      {"5"},
	})
	require.NoError(t, err)
	require.NotNil(t, filter.Username)
	require.NotNil(t, filter.Difficulty)
	assert.Equal(t, "alice", *filter.Username)
	assert.Equal(t, "hard", *filter.Difficulty)
	assert.True(t, filter.WonOnly)
	assert.Equal(t, 5, filter.Limit)

	_, err = ParseHighscoreQueryDTO(url.Values{"difficulty": {"nightmare"}})
	assert.Error(t, err)
	_, err = ParseHighscoreQueryDTO(url.Values{"limit": {"many"}})
	assert.Error(t, err)
}

func TestHighscoresList(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var got repository.HighscoreFilter
	h := NewHighscores(logger, sourceFunc(func(_ context.Context, f repository.HighscoreFilter) ([]repository.Highscore, error) {
		got = f
		return nil, nil
	}))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/highscores?difficulty=easy", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	require.NotNil(t, got.Difficulty)
	assert.Equal(t, "easy", *got.Difficulty)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/highscores?difficulty=weird", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	failing := NewHighscores(logger, sourceFunc(func(context.Context, repository.HighscoreFilter) ([]repository.Highscore, error) {
		return nil, errors.New("db down")
	}))
	rec = httptest.NewRecorder()
	failing.List(rec, httptest.NewRequest(http.MethodGet, "/highscores", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
