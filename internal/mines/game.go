package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

const (
	WinMessage  = "Game Is End!, You Win!"
	LossMessage = "Game Is End! You Dead!"

	pointsPerCell = 35
	pointsPerFlag = 50
)

type Status int8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EndEvent is produced once per game, when it is won or lost.
type EndEvent struct {
	Message string `json:"message"`
	Score   int    `json:"score"`
	Won     bool   `json:"won"`
}

type Game struct {
	board      *Board
	difficulty Difficulty

	flagsPlaced  int
	flagsOnMines int
	openedCount  int

	status Status
	end    *EndEvent
	onEnd  []func(EndEvent)
}

// NewGame starts a game of the given difficulty. custom is only consulted
// for Custom.
func NewGame(d Difficulty, custom GameParams, r *rand.Rand) (*Game, error) {
	params, ok := d.Params()
	if !ok {
		params = custom
	}
	g, err := New(params, r)
	if err != nil {
		return nil, err
	}
	if _, preset := presets[d]; preset {
		g.difficulty = d
	} else if ok {
		g.difficulty = Medium
	}
	return g, nil
}

// New starts a Custom game with explicit parameters.
func New(params GameParams, r *rand.Rand) (*Game, error) {
	board, err := NewBoard(params.Width, params.Height, params.MineCount, r)
	if err != nil {
		return nil, err
	}
	return FromBoard(board), nil
}

// FromBoard wraps an already generated board in a fresh Custom game.
func FromBoard(b *Board) *Game {
	return &Game{board: b, difficulty: Custom}
}

// OnEnd registers fn to receive the end event. Observers registered after
// the game ended are not called.
func (g *Game) OnEnd(fn func(EndEvent)) {
	g.onEnd = append(g.onEnd, fn)
}

func (g *Game) Difficulty() Difficulty { return g.difficulty }
func (g *Game) Parameters() GameParams { return g.board.Params() }
func (g *Game) Status() Status         { return g.status }
func (g *Game) FlagCount() int         { return g.flagsPlaced }
func (g *Game) OpenedCount() int       { return g.openedCount }
func (g *Game) Terminal() bool         { return g.status != Playing }

func (g *Game) Cell(p Point) (Cell, bool) {
	return g.board.Cell(p)
}

// Ended returns the end event once the game is over.
func (g *Game) Ended() (EndEvent, bool) {
	if g.end == nil {
		return EndEvent{}, false
	}
	return *g.end, true
}

// Score is openedCount*35 while playing. The final score adds 50 for every
// flag resting on a mine.
func (g *Game) Score(final bool) int {
	score := g.openedCount * pointsPerCell
	if final {
		score += g.flagsOnMines * pointsPerFlag
	}
	return score
}

func (g *Game) finish(status Status) *EndEvent {
	g.status = status
	ev := EndEvent{Score: g.Score(true), Won: status == Won}
	if ev.Won {
		ev.Message = WinMessage
	} else {
		ev.Message = LossMessage
	}
	g.end = &ev

	Log.WithFields(logrus.Fields{
		"status": status, "score": ev.Score,
		"opened": g.openedCount, "flags": g.flagsPlaced,
	}).Debug("game over")

	for _, fn := range g.onEnd {
		fn(ev)
	}
	return g.end
}

// ForceEnd reveals the whole board and ends the game as lost. It reports
// false on a game that is already over.
func (g *Game) ForceEnd() (RevealSummary, bool) {
	if g.Terminal() {
		return RevealSummary{}, false
	}
	summary := g.board.revealAll()
	g.finish(Lost)
	return summary, true
}
