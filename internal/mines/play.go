package mines

import "github.com/sirupsen/logrus"

type OpenKind int8

const (
	// Ignored covers out-of-bounds points, flagged cells and finished games.
	Ignored OpenKind = iota
	AlreadyOpen
	HitMine
	Revealed
)

func (k OpenKind) String() string {
	switch k {
	case AlreadyOpen:
		return "already_open"
	case HitMine:
		return "hit_mine"
	case Revealed:
		return "opened"
	default:
		return "ignored"
	}
}

// [OpenKind] implements [encoding.TextMarshaler]
func (k OpenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type OpenResult struct {
	Kind   OpenKind  `json:"kind"`
	Opened int       `json:"opened"`
	End    *EndEvent `json:"end,omitempty"`
}

type FlagResult struct {
	State   State `json:"-"`
	Changed bool  `json:"changed"`
	Flags   int   `json:"flags"`
}

// Open opens the cell at p. A zero hint opens its whole connected zero
// region and the numbered cells bordering it; mines are never opened by
// that spread.
func (g *Game) Open(p Point) OpenResult {
	if g.Terminal() || !g.board.InBounds(p) {
		return OpenResult{Kind: Ignored}
	}
	c := g.board.at(p)
	switch {
	case c.State == Opened:
		return OpenResult{Kind: AlreadyOpen}
	case c.State == Flagged:
		return OpenResult{Kind: Ignored}
	case c.Content == Mine:
		c.Exploded = true
		g.board.revealAll()
		return OpenResult{Kind: HitMine, End: g.finish(Lost)}
	}

	n := g.flood(p)
	g.openedCount += n
	return OpenResult{Kind: Revealed, Opened: n, End: g.checkWin()}
}

func (g *Game) flood(start Point) int {
	opened := 0
	stack := []Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := g.board.at(p)
		if c.State != Closed || c.Content == Mine {
			continue
		}
		c.State = Opened
		opened++

		if c.Adjacent != 0 {
			continue
		}
		for q := range g.board.Neighbors(p) {
			if g.board.at(q).State == Closed {
				stack = append(stack, q)
			}
		}
	}

	if opened > 1 {
		Log.WithFields(logrus.Fields{"start": start, "opened": opened}).Debug("flood fill")
	}
	return opened
}

func (g *Game) checkWin() *EndEvent {
	if g.openedCount == g.board.width*g.board.height-g.board.mineCount {
		return g.finish(Won)
	}
	return nil
}

// ToggleFlag flips a closed cell to flagged and back. It never ends the game.
func (g *Game) ToggleFlag(p Point) FlagResult {
	if g.Terminal() || !g.board.InBounds(p) {
		return FlagResult{Flags: g.flagsPlaced}
	}
	c := g.board.at(p)
	delta := 0
	switch c.State {
	case Closed:
		c.State = Flagged
		delta = 1
	case Flagged:
		c.State = Closed
		delta = -1
	default:
		return FlagResult{State: c.State, Flags: g.flagsPlaced}
	}
	g.flagsPlaced += delta
	if c.Content == Mine {
		g.flagsOnMines += delta
	}
	return FlagResult{State: c.State, Changed: true, Flags: g.flagsPlaced}
}

// Chord opens every closed neighbour of an opened hint once the hint is
// matched by the flags around it.
func (g *Game) Chord(p Point) OpenResult {
	if g.Terminal() || !g.board.InBounds(p) {
		return OpenResult{Kind: Ignored}
	}
	c := g.board.at(p)
	if c.State != Opened || c.Content == Mine || c.Adjacent == 0 {
		return OpenResult{Kind: Ignored}
	}

	flags := 0
	var closed []Point
	for q := range g.board.Neighbors(p) {
		switch g.board.at(q).State {
		case Flagged:
			flags++
		case Closed:
			closed = append(closed, q)
		}
	}
	if flags != c.Adjacent || len(closed) == 0 {
		return OpenResult{Kind: Ignored}
	}

	res := OpenResult{Kind: Revealed}
	for _, q := range closed {
		r := g.Open(q)
		switch r.Kind {
		case HitMine:
			return OpenResult{Kind: HitMine, Opened: res.Opened, End: r.End}
		case Revealed:
			res.Opened += r.Opened
			res.End = r.End
		}
		if g.Terminal() {
			break
		}
	}
	return res
}
