package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

var (
	ErrBadSessionId = errors.New("invalid game session id")
	ErrNotOwner     = errors.New("game session belongs to another player")
)

type GameHandler struct {
	logger *slog.Logger
	store  *session.Store
	ws     *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		store:  store,
		ws:     ws,
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	var playerId *int64
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		playerId = &claims.PlayerId
	}

	sess, err := g.store.Create(dto.Difficulty, dto.Custom(), playerId)
	if errors.Is(err, mines.ErrInvalidParams) {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		internalError(w, g.logger, "unable to create game session", err)
		return
	}

	snap := sess.Play(nil)
	sendJSONOrLog(w, g.logger, http.StatusCreated, NewGameSessionDTO(snap, nil))
}

// session resolves the {id} path value. It writes the error response
// itself and reports whether the caller may continue.
func (g GameHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, ErrBadSessionId)
		return nil, false
	}
	sess, err := g.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendError(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		internalError(w, g.logger, "unable to fetch game session", err)
		return nil, false
	}
	return sess, true
}

// owned additionally requires that a game started by a logged-in player is
// only played by that player.
func (g GameHandler) owned(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := g.session(w, r)
	if !ok || sess.PlayerID == nil {
		return sess, ok
	}
	claims, loggedIn := middleware.PlayerClaims(r.Context())
	if !loggedIn || claims.PlayerId != *sess.PlayerID {
		sendError(w, g.logger, http.StatusForbidden, ErrNotOwner)
		return nil, false
	}
	return sess, true
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sess, ok := g.session(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(sess.Play(nil), nil))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	sess, ok := g.owned(w, r)
	if !ok {
		return
	}

	var last MoveResultDTO
	snap := sess.Play(func(game *mines.Game) {
		last = applyMove(game, dto.Move, dto.Point())
	})
	g.logger.Debug("applied move",
		slog.String("id", snap.ID.String()),
		slog.String("move", string(dto.Move)),
		slog.String("point", dto.Point().String()),
		slog.Bool("changed", last.Changed),
	)

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(snap, &last))
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	sess, ok := g.owned(w, r)
	if !ok {
		return
	}

	var reveal *mines.RevealSummary
	snap := sess.Play(func(game *mines.Game) {
		if summary, ok := game.ForceEnd(); ok {
			reveal = &summary
		}
	})
	dto := NewGameSessionDTO(snap, nil)
	dto.Reveal = reveal
	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}
