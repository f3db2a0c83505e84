package handlers

import (
	"errors"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrCommandNargs   = errors.New("invalid number of arguments")
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"r": 0,
}

var commandMoves = map[string]Move{
	"o": Open,
	"f": Flag,
	"c": Chord,
}

func parsePoint(twoStrings []string) (p mines.Point, err error) {
	if p.Row, err = strconv.Atoi(twoStrings[0]); err != nil {
		return p, errors.New("row must be an int")
	}
	if p.Col, err = strconv.Atoi(twoStrings[1]); err != nil {
		return p, errors.New("col must be an int")
	}
	return p, nil
}

type commandResult struct {
	move   *MoveResultDTO
	reveal *mines.RevealSummary
}

// executeCommand runs one websocket command line against the game. It
// must be called under the session lock. move is set for play commands,
// reveal for a forfeit that ended the game.
func executeCommand(g *mines.Game, c string) (commandResult, error) {
	var res commandResult
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return res, ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return res, ErrUnknownCommand
	}
	if nargs != len(parts)-1 {
		return res, ErrCommandNargs
	}
	switch parts[0] {
	case "g":
		return res, nil
	case "r":
		if summary, ok := g.ForceEnd(); ok {
			res.reveal = &summary
		}
		return res, nil
	}
	p, err := parsePoint(parts[1:])
	if err != nil {
		return res, err
	}
	move := applyMove(g, commandMoves[parts[0]], p)
	res.move = &move
	return res, nil
}

// byPiece yields the non-empty pieces of s separated by sep.
func byPiece(s string, sep string) iter.Seq[string] {
	return func(yield func(string) bool) {
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if piece = strings.TrimSpace(piece); piece == "" {
				continue
			}
			if !yield(piece) {
				return
			}
		}
	}
}
