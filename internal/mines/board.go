package mines

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
)

// Board is a row-major grid of cells.
type Board struct {
	width, height int
	mineCount     int
	cells         []Cell
}

// NewBoard places mineCount mines uniformly at random using r and computes
// the hints of every free cell afterwards.
func NewBoard(width, height, mineCount int, r *rand.Rand) (*Board, error) {
	params := GameParams{Width: width, Height: height, MineCount: mineCount}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := newEmptyBoard(width, height)

	draws := 0
	for placed := 0; placed < mineCount; draws++ {
		c := b.at(Point{r.IntN(height), r.IntN(width)})
		if c.Content != Mine {
			c.Content = Mine
			placed++
		}
	}
	b.mineCount = mineCount
	b.computeHints()

	Log.WithFields(logrus.Fields{
		"width": width, "height": height, "mines": mineCount, "draws": draws,
	}).Debug("generated board")

	return b, nil
}

// NewBoardWithMines builds a board with a fixed mine layout.
func NewBoardWithMines(width, height int, mines []Point) (*Board, error) {
	params := GameParams{Width: width, Height: height, MineCount: len(mines)}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := newEmptyBoard(width, height)
	for _, p := range mines {
		if !b.InBounds(p) {
			return nil, ParamsError{params, fmt.Sprintf("mine %s out of bounds", p)}
		}
		c := b.at(p)
		if c.Content == Mine {
			return nil, ParamsError{params, fmt.Sprintf("duplicate mine %s", p)}
		}
		c.Content = Mine
	}
	b.mineCount = len(mines)
	b.computeHints()
	return b, nil
}

func newEmptyBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

func (b *Board) computeHints() {
	for i := range b.cells {
		if b.cells[i].Content == Mine {
			continue
		}
		n := 0
		for q := range b.Neighbors(b.point(i)) {
			if b.at(q).Content == Mine {
				n++
			}
		}
		b.cells[i].Adjacent = n
	}
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) MineCount() int { return b.mineCount }

func (b *Board) Params() GameParams {
	return GameParams{Width: b.width, Height: b.height, MineCount: b.mineCount}
}

func (b *Board) InBounds(p Point) bool {
	return 0 <= p.Row && p.Row < b.height && 0 <= p.Col && p.Col < b.width
}

// Cell returns a copy of the cell at p.
func (b *Board) Cell(p Point) (Cell, bool) {
	if !b.InBounds(p) {
		return Cell{}, false
	}
	return *b.at(p), true
}

func (b *Board) at(p Point) *Cell {
	return &b.cells[p.Row*b.width+p.Col]
}

func (b *Board) point(i int) Point {
	return Point{Row: i / b.width, Col: i % b.width}
}

// Neighbors yields the in-bounds cells around p, p excluded.
func (b *Board) Neighbors(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				q := Point{p.Row + dr, p.Col + dc}
				if b.InBounds(q) && !yield(q) {
					return
				}
			}
		}
	}
}

// Count returns the number of cells in state s.
func (b *Board) Count(s State) int {
	n := 0
	for _, c := range b.cells {
		if c.State == s {
			n++
		}
	}
	return n
}

// RevealSummary classifies the cells uncovered by a full reveal.
type RevealSummary struct {
	Mines        int `json:"mines"`
	Numbers      int `json:"numbers"`
	CorrectFlags int `json:"correct_flags"`
	FalseFlags   int `json:"false_flags"`
}

func (b *Board) revealAll() RevealSummary {
	var s RevealSummary
	for i := range b.cells {
		c := &b.cells[i]
		if c.State == Opened {
			continue
		}
		if c.Content == Mine {
			s.Mines++
		} else {
			s.Numbers++
		}
		if c.State == Flagged {
			c.Flag = true
			if c.Content == Mine {
				s.CorrectFlags++
			} else {
				s.FalseFlags++
			}
		}
		c.State = Opened
	}
	return s
}

// String renders the board for debugging: '*' mine, '.' closed free cell,
// 'F' flag, digits for opened hints.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.height {
		for col := range b.width {
			c := b.at(Point{row, col})
			switch {
			case c.State == Flagged:
				sb.WriteByte('F')
			case c.Content == Mine:
				sb.WriteByte('*')
			case c.State == Closed:
				sb.WriteByte('.')
			default:
				sb.WriteByte(byte('0' + c.Adjacent))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
