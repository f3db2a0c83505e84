package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

var (
	ErrBadAuthBody        = errors.New("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = errors.New("password too long")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type PlayerRepository interface {
	CreatePlayer(ctx context.Context, params repository.CreatePlayerParams) (*repository.Player, error)
	FetchPlayer(ctx context.Context, username string) (*repository.Player, error)
}

type CookieIssuer interface {
	Issue(w http.ResponseWriter, playerId int64, username string) error
	Clear(w http.ResponseWriter)
}

type Auth struct {
	logger   *slog.Logger
	players  PlayerRepository
	cookies  CookieIssuer
	hashCost int
}

func NewAuth(logger *slog.Logger, players PlayerRepository, cookies CookieIssuer) *Auth {
	return &Auth{
		logger:   logger,
		players:  players,
		cookies:  cookies,
		hashCost: bcrypt.DefaultCost,
	}
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func (a Auth) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		a.logger.Debug("could not parse cookies - clear cookies")
		a.cookies.Clear(w)
		sendJSONOrLog(w, a.logger, http.StatusOK, Status{LoggedIn: false})
		return
	}

	a.logger.Debug("refresh cookies")
	if err := a.cookies.Issue(w, claims.PlayerId, claims.Username); err != nil {
		internalError(w, a.logger, "unable to refresh cookies", err)
		return
	}
	sendJSONOrLog(w, a.logger, http.StatusOK, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerId, claims.Username},
	})
}

type credentials struct {
	Username string `schema:"username,required"`
	Password string `schema:"password,required"`
}

func parseCredentials(r *http.Request) (credentials, error) {
	var creds credentials
	if err := r.ParseForm(); err != nil {
		return creds, ErrBadAuthBody
	}
	if err := decoder.Decode(&creds, r.PostForm); err != nil {
		return creds, ErrBadAuthBody
	}
	if creds.Username == "" || creds.Password == "" {
		return creds, ErrBadAuthBody
	}
	if len(creds.Password) > maxPasswordBytes {
		return creds, ErrBadPasswordTooLong
	}
	return creds, nil
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	creds, err := parseCredentials(r)
	if err != nil {
		sendError(w, a.logger, http.StatusBadRequest, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), a.hashCost)
	if err != nil {
		internalError(w, a.logger, "unable to hash password", err)
		return
	}

	player, err := a.players.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     creds.Username,
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrUsernameTaken) {
		sendError(w, a.logger, http.StatusConflict, err)
		return
	}
	if err != nil {
		internalError(w, a.logger, "unable to insert player", err)
		return
	}

	a.login(w, player)
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	creds, err := parseCredentials(r)
	if err != nil {
		sendError(w, a.logger, http.StatusBadRequest, err)
		return
	}

	player, err := a.players.FetchPlayer(r.Context(), creds.Username)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		sendError(w, a.logger, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if err != nil {
		internalError(w, a.logger, "unable to fetch player", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(creds.Password)); err != nil {
		sendError(w, a.logger, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	a.login(w, player)
}

func (a Auth) login(w http.ResponseWriter, player *repository.Player) {
	if err := a.cookies.Issue(w, player.PlayerId, player.Username); err != nil {
		internalError(w, a.logger, "unable to issue cookies", err)
		return
	}
	sendJSONOrLog(w, a.logger, http.StatusOK, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{player.PlayerId, player.Username},
	})
}

func (a Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
