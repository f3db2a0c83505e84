package middleware

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper/internal/config"
)

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("a"), mark("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

type parserFunc func(r *http.Request) (*config.PlayerClaims, error)

func (f parserFunc) ParsePlayerClaims(r *http.Request) (*config.PlayerClaims, error) {
	return f(r)
}

func TestAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var (
		got *config.PlayerClaims
		ok  bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = PlayerClaims(r.Context())
	})

	claims := &config.PlayerClaims{PlayerId: 3, Username: "carol"}
	Auth(logger, parserFunc(func(*http.Request) (*config.PlayerClaims, error) {
		return claims, nil
	}))(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, ok)
	assert.Same(t, claims, got)

	Auth(logger, parserFunc(func(*http.Request) (*config.PlayerClaims, error) {
		return nil, errors.New("bad signature")
	}))(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/game", nil))

	assert.Contains(t, buf.String(), `"statusCode":418`)
	assert.Contains(t, buf.String(), `"uri":"/game"`)
}
