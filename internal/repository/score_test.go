package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestHighscoreFilterWhereClause(t *testing.T) {
	username, difficulty := "alice", "hard"

	tests := []struct {
		name   string
		filter HighscoreFilter
		clause string
		args   pgx.NamedArgs
	}{
		{"empty", HighscoreFilter{}, "", pgx.NamedArgs{}},
		{
			"username",
			HighscoreFilter{Username: &username},
			"username = @username",
			pgx.NamedArgs{"username": "alice"},
		},
		{
			"all",
			HighscoreFilter{Username: &username, Difficulty: &difficulty, WonOnly: true},
			"username = @username AND difficulty = @difficulty AND won = true",
			pgx.NamedArgs{"username": "alice", "difficulty": "hard"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clause, args := test.filter.WhereClause()
			assert.Equal(t, test.clause, clause)
			assert.Equal(t, test.args, args)
		})
	}
}

func TestHighscoreFilterLimit(t *testing.T) {
	assert.Equal(t, DefaultHighscoreLimit, HighscoreFilter{}.limit())
	assert.Equal(t, 25, HighscoreFilter{Limit: 25}.limit())
	assert.Equal(t, MaxHighscoreLimit, HighscoreFilter{Limit: 1000}.limit())
}
