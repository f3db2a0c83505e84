package app

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/repository"
)

func (a *App) loadRoutes() {
	queries := repository.New(a.db)

	game := handlers.NewGameHandler(a.logger, a.store, a.ws)
	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)

	auth := handlers.NewAuth(a.logger, queries, a.cookies)
	a.router.HandleFunc("POST /auth/register", auth.Register)
	a.router.HandleFunc("POST /auth/login", auth.Login)
	a.router.HandleFunc("POST /auth/logout", auth.Logout)
	a.router.HandleFunc("GET /auth/status", auth.Status)

	highscores := handlers.NewHighscores(a.logger, queries)
	a.router.HandleFunc("GET /highscores", highscores.List)

	a.router.Handle("GET /metrics", promhttp.Handler())
}
