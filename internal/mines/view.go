package mines

import (
	"strconv"
	"strings"
)

// Tile is what the player is allowed to see of a cell.
type Tile int8

const (
	TileClosed  Tile = -2
	TileFlagged Tile = -1
	// 0 to 8 are opened free cells with their hint.
	TileMine        Tile = 64 // revealed mine
	TileExploded    Tile = 65 // the mine that was opened
	TileFlaggedMine Tile = 66 // correctly flagged, revealed
	TileWrongFlag   Tile = 67 // flag on a free cell, revealed
)

func (t Tile) String() string {
	switch {
	case t == TileClosed:
		return " "
	case t == TileFlagged:
		return "F"
	case 0 <= t && t <= 8:
		return strconv.Itoa(int(t))
	case t == TileExploded:
		return "X"
	case t == TileWrongFlag:
		return "x"
	default:
		return "*"
	}
}

func tileOf(c Cell, won bool) Tile {
	switch {
	case c.State == Flagged:
		return TileFlagged
	case c.State == Closed && won && c.Content == Mine:
		return TileMine
	case c.State == Closed:
		return TileClosed
	case c.Exploded:
		return TileExploded
	case c.Flag && c.Content == Mine:
		return TileFlaggedMine
	case c.Flag:
		return TileWrongFlag
	case c.Content == Mine:
		return TileMine
	default:
		return Tile(c.Adjacent)
	}
}

// Tiles returns the player's view of the board in row-major order. Mines
// only become visible once the game is over.
func (g *Game) Tiles() Tiles {
	won := g.status == Won
	tiles := make(Tiles, len(g.board.cells))
	for i, c := range g.board.cells {
		tiles[i] = tileOf(c, won)
	}
	return tiles
}

type Tiles []Tile

// ToString renders the tiles as rows of width cells. A non-positive width
// renders nothing.
func (ts Tiles) ToString(width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for row := range len(ts) / width {
		for col := range width {
			b.WriteString(ts[row*width+col].String())
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
