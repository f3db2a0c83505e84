package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper/internal/session"
)

const (
	DefaultHighscoreLimit = 10
	MaxHighscoreLimit     = 100
)

// RecordScore stores a finished game. It satisfies [session.ScoreRecorder].
func (q *Queries) RecordScore(ctx context.Context, r session.Result) error {
	_, err := q.db.Exec(
		ctx,
		`INSERT INTO score (
			session_id, player_id, difficulty, width, height, mine_count,
			won, score, opened, started_at, ended_at
		)
		VALUES (
			@session_id, @player_id, @difficulty, @width, @height, @mine_count,
			@won, @score, @opened, @started_at, @ended_at
		)
		ON CONFLICT (session_id) DO NOTHING`,
		pgx.NamedArgs{
			"session_id": r.SessionID,
			"player_id":  r.PlayerID,
			"difficulty": r.Difficulty.String(),
			"width":      r.Params.Width,
			"height":     r.Params.Height,
			"mine_count": r.Params.MineCount,
			"won":        r.Won,
			"score":      r.Score,
			"opened":     r.Opened,
			"started_at": r.StartedAt,
			"ended_at":   r.EndedAt,
		},
	)
	return err
}

type Highscore struct {
	SessionId  uuid.UUID `json:"game_session_id" db:"session_id"`
	Username   *string   `json:"username" db:"username"`
	Difficulty string    `json:"difficulty" db:"difficulty"`
	Width      int       `json:"width" db:"width"`
	Height     int       `json:"height" db:"height"`
	MineCount  int       `json:"mine_count" db:"mine_count"`
	Won        bool      `json:"won" db:"won"`
	Score      int       `json:"score" db:"score"`
	PlaytimeMs float64   `json:"playtime_ms" db:"playtime_ms"`
	EndedAt    time.Time `json:"ended_at" db:"ended_at"`
}

type HighscoreFilter struct {
	Username   *string
	Difficulty *string
	WonOnly    bool
	Limit      int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0, 3)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Difficulty != nil {
		clauses = append(clauses, "difficulty = @difficulty")
		args["difficulty"] = *f.Difficulty
	}
	if f.WonOnly {
		clauses = append(clauses, "won = true")
	}
	return strings.Join(clauses, " AND "), args
}

func (f HighscoreFilter) limit() int {
	switch {
	case f.Limit <= 0:
		return DefaultHighscoreLimit
	case f.Limit > MaxHighscoreLimit:
		return MaxHighscoreLimit
	default:
		return f.Limit
	}
}

func (q *Queries) Highscores(ctx context.Context, filter HighscoreFilter) ([]Highscore, error) {
	query := `
	SELECT
		session_id,
		username,
		difficulty,
		width,
		height,
		mine_count,
		won,
		score,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms,
		ended_at
	FROM score
		LEFT OUTER JOIN player USING (player_id)
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY score DESC, playtime_ms ASC LIMIT @limit"
	args["limit"] = filter.limit()

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
