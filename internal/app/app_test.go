package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/session"
)

func setupTestApp() *App {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(logger, nil)
	a.cookies = &config.Cookies{}
	a.ws = &config.WebSocket{ReadTimeout: time.Second, WriteTimeout: time.Second}
	a.store = session.NewStore(logger, nil, time.Minute)
	a.loadRoutes()
	return a
}

func TestRoutes(t *testing.T) {
	h := setupTestApp().handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/game?difficulty=medium", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"difficulty":"medium"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "minesweeper_games_started_total")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/game", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMountBasePath(t *testing.T) {
	a := setupTestApp()
	h := a.mount("/api")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/game?difficulty=easy", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/game?difficulty=easy", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Same(t, a.router, a.mount(""))
}
