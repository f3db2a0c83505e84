package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUsernameTaken  = errors.New("username taken")
	ErrPlayerNotFound = errors.New("player not found")
)

type Player struct {
	PlayerId     int64     `db:"player_id"`
	Username     string    `db:"username"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type CreatePlayerParams struct {
	Username     string
	PasswordHash []byte
}

func (q *Queries) CreatePlayer(ctx context.Context, params CreatePlayerParams) (*Player, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO player (username, password_hash)
		VALUES (@username, @password_hash)
		RETURNING player_id, username, password_hash, created_at`,
		pgx.NamedArgs{
			"username":      params.Username,
			"password_hash": params.PasswordHash,
		},
	)
	player, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil, ErrUsernameTaken
	}
	return player, err
}

func (q *Queries) FetchPlayer(ctx context.Context, username string) (*Player, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT player_id, username, password_hash, created_at
		FROM player WHERE username = $1`,
		username,
	)
	player, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	return player, err
}
