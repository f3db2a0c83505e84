package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper/internal/config"
)

type ctxKey int

const ctxPlayerClaims ctxKey = iota

type ClaimsParser interface {
	ParsePlayerClaims(r *http.Request) (*config.PlayerClaims, error)
}

// Auth attaches the player's claims to the request context when the auth
// cookies are valid. Anonymous requests pass through untouched.
func Auth(logger *slog.Logger, parser ClaimsParser) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := parser.ParsePlayerClaims(r)
			if err != nil {
				if !errors.Is(err, http.ErrNoCookie) {
					logger.Debug("rejected player claims", slog.Any("error", err))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPlayerClaims(r.Context(), claims)))
		})
	}
}

func WithPlayerClaims(ctx context.Context, claims *config.PlayerClaims) context.Context {
	return context.WithValue(ctx, ctxPlayerClaims, claims)
}

func PlayerClaims(ctx context.Context) (*config.PlayerClaims, bool) {
	claims, ok := ctx.Value(ctxPlayerClaims).(*config.PlayerClaims)
	return claims, ok
}
