package handlers

import (
	"fmt"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

type NewGameDTO struct {
	Difficulty mines.Difficulty `schema:"difficulty,required"`
	Width      int              `schema:"width"`
	Height     int              `schema:"height"`
	MineCount  int              `schema:"mine_count"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto NewGameDTO) Custom() mines.GameParams {
	return mines.GameParams{Width: dto.Width, Height: dto.Height, MineCount: dto.MineCount}
}

type Move string

const (
	Open  Move = "open"
	Flag  Move = "flag"
	Chord Move = "chord"
)

type MoveDTO struct {
	Move Move `schema:"move,required"`
	Row  int  `schema:"row,required"`
	Col  int  `schema:"col,required"`
}

func (dto MoveDTO) Point() mines.Point {
	return mines.Point{Row: dto.Row, Col: dto.Col}
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, err
	}
	switch dto.Move {
	case Open, Flag, Chord:
		return dto, nil
	}
	return dto, fmt.Errorf("unknown move %q", dto.Move)
}

type MoveResultDTO struct {
	Move    Move            `json:"move"`
	Point   mines.Point     `json:"point"`
	Kind    *mines.OpenKind `json:"kind,omitempty"`
	Opened  int             `json:"opened"`
	Changed bool            `json:"changed"`
	Flags   int             `json:"flags"`
}

// applyMove runs one play action; it must be called under the session lock.
func applyMove(g *mines.Game, move Move, p mines.Point) MoveResultDTO {
	res := MoveResultDTO{Move: move, Point: p}
	switch move {
	case Open, Chord:
		var r mines.OpenResult
		if move == Open {
			r = g.Open(p)
		} else {
			r = g.Chord(p)
		}
		res.Kind, res.Opened = &r.Kind, r.Opened
		res.Changed = r.Kind == mines.Revealed || r.Kind == mines.HitMine
	case Flag:
		r := g.ToggleFlag(p)
		res.Changed = r.Changed
	}
	res.Flags = g.FlagCount()
	return res
}

type GameSessionDTO struct {
	GameSessionId string               `json:"game_session_id"`
	Difficulty    mines.Difficulty     `json:"difficulty"`
	Width         int                  `json:"width"`
	Height        int                  `json:"height"`
	MineCount     int                  `json:"mine_count"`
	Status        mines.Status         `json:"status"`
	Tiles         mines.Tiles          `json:"tiles"`
	Flags         int                  `json:"flags"`
	Score         int                  `json:"score"`
	StartedAt     int64                `json:"started_at"`
	EndedAt       *int64               `json:"ended_at,omitempty"`
	End           *mines.EndEvent      `json:"end,omitempty"`
	LastMove      *MoveResultDTO       `json:"last_move,omitempty"`
	// Reveal is set on the response to a forfeit.
	Reveal        *mines.RevealSummary `json:"reveal,omitempty"`
}

func NewGameSessionDTO(snap session.Snapshot, last *MoveResultDTO) *GameSessionDTO {
	var endedAt *int64
	if snap.EndedAt != nil {
		e := snap.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: snap.ID.String(),
		Difficulty:    snap.Difficulty,
		Width:         snap.Params.Width,
		Height:        snap.Params.Height,
		MineCount:     snap.Params.MineCount,
		Status:        snap.Status,
		Tiles:         snap.Tiles,
		Flags:         snap.Flags,
		Score:         snap.Score,
		StartedAt:     snap.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
		End:           snap.End,
		LastMove:      last,
	}
}
