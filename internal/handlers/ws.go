package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := g.owned(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer conn.Close()

	logger := g.logger.With(slog.String("id", sess.ID.String()))
	logger.Debug("websocket connected")
	defer g.dropFinished(sess, logger)

	if err := g.writeWS(conn, NewGameSessionDTO(sess.Play(nil), nil)); err != nil {
		logger.Warn("unable to write to websocket", slog.Any("error", err))
		return
	}

	for {
		if err := conn.SetReadDeadline(time.Now().Add(g.ws.ReadTimeout)); err != nil {
			logger.Warn("unable to set read deadline", slog.Any("error", err))
			return
		}
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		var reply any
		snap, res, err := runCommands(sess, string(message))
		if err != nil {
			reply = wrapError(err)
		} else {
			dto := NewGameSessionDTO(snap, res.move)
			dto.Reveal = res.reveal
			reply = dto
		}
		if err := g.writeWS(conn, reply); err != nil {
			logger.Warn("unable to write to websocket", slog.Any("error", err))
			return
		}
	}
}

// dropFinished forgets a game that is over once its live connection goes
// away; nothing can change it any more.
func (g GameHandler) dropFinished(sess *session.Session, logger *slog.Logger) {
	if sess.Play(nil).Status == mines.Playing {
		return
	}
	g.store.Delete(sess.ID)
	logger.Debug("dropped finished session")
}

// runCommands executes newline separated commands in order and stops at the
// first malformed one or once the game is over.
func runCommands(sess *session.Session, text string) (session.Snapshot, commandResult, error) {
	var (
		last   commandResult
		cmdErr error
	)
	snap := sess.Play(func(game *mines.Game) {
		for c := range byPiece(text, "\n") {
			res, err := executeCommand(game, c)
			if err != nil {
				cmdErr = err
				return
			}
			if res.move != nil {
				last.move = res.move
			}
			if res.reveal != nil {
				last.reveal = res.reveal
			}
			if game.Terminal() {
				return
			}
		}
	})
	return snap, last, cmdErr
}

func (g GameHandler) writeWS(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
