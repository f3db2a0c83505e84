package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

type HighscoreSource interface {
	Highscores(ctx context.Context, filter repository.HighscoreFilter) ([]repository.Highscore, error)
}

type HighscoreQueryDTO struct {
	Username   string `schema:"username"`
	Difficulty string `schema:"difficulty"`
	WonOnly    bool   `schema:"won_only"`
	Limit      int    `schema:"limit"`
}

func ParseHighscoreQueryDTO(src map[string][]string) (repository.HighscoreFilter, error) {
	var dto HighscoreQueryDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return repository.HighscoreFilter{}, err
	}
	filter := repository.HighscoreFilter{WonOnly: dto.WonOnly, Limit: dto.Limit}
	if dto.Username != "" {
		filter.Username = &dto.Username
	}
	if dto.Difficulty != "" {
		d, err := mines.ParseDifficulty(dto.Difficulty)
		if err != nil {
			return filter, err
		}
		name := d.String()
		filter.Difficulty = &name
	}
	return filter, nil
}

type Highscores struct {
	logger *slog.Logger
	source HighscoreSource
}

func NewHighscores(logger *slog.Logger, source HighscoreSource) *Highscores {
	return &Highscores{logger: logger, source: source}
}

func (h Highscores) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseHighscoreQueryDTO(r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	scores, err := h.source.Highscores(r.Context(), filter)
	if err != nil {
		internalError(w, h.logger, "unable to fetch highscores", err)
		return
	}
	if scores == nil {
		scores = []repository.Highscore{}
	}
	sendJSONOrLog(w, h.logger, http.StatusOK, scores)
}
