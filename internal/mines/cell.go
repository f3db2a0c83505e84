package mines

import "strconv"

type Content int8

const (
	Free Content = iota
	Mine
)

func (c Content) String() string {
	if c == Mine {
		return "mine"
	}
	return "free"
}

type State int8

const (
	Closed State = iota
	Opened
	Flagged
)

func (s State) String() string {
	switch s {
	case Opened:
		return "opened"
	case Flagged:
		return "flagged"
	default:
		return "closed"
	}
}

// Cell is one grid position. Content and Adjacent are fixed once the board
// is generated; State changes during play.
type Cell struct {
	Content  Content
	State    State
	Adjacent int // mines among the up to 8 neighbours, Free cells only

	// Flag is kept when a flagged cell is revealed at game end.
	Flag bool
	// Exploded marks the mine that ended the game.
	Exploded bool
}

func (c Cell) IsMine() bool { return c.Content == Mine }

// Point addresses a cell by 0-based row and column.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return "(" + strconv.Itoa(p.Row) + ", " + strconv.Itoa(p.Col) + ")"
}
