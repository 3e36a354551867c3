// Package shaft simulates rocks falling into a narrow shaft pushed by a
// repeating wind, and extrapolates the stack height to piece counts far too
// large to simulate directly by detecting when the simulation repeats itself.
package shaft

import (
	"log/slog"
	"strings"

	"github.com/kamstrup/intmap"
)

// Cell is an absolute position in the shaft. Row 0 is directly above the floor.
type Cell struct {
	Col, Row int
}

// Piece is a shape at a position. Col and Row locate the shape's anchor.
type Piece struct {
	Shape Shape
	Col   int
	Row   int
}

// Cells returns the absolute cells occupied by the piece.
func (p Piece) Cells() []Cell {
	offsets := p.Shape.Cells()
	cells := make([]Cell, len(offsets))
	for i, o := range offsets {
		cells[i] = Cell{Col: p.Col + o.Col, Row: p.Row + o.Row}
	}
	return cells
}

// Top returns the highest row the piece occupies.
func (p Piece) Top() int {
	return p.Row + p.Shape.Top()
}

// Shaft owns the settled cells and the skyline of a simulation.
type Shaft struct {
	width          int
	spawnColumn    int
	spawnRowOffset int
	prune          bool
	log            *slog.Logger

	// rows maps a row index to the bitmask of its occupied columns. Rows
	// below floor have been pruned and are treated as solid.
	rows    *intmap.Map[int, uint16]
	full    uint16
	floor   int
	top     int
	skyline []int
	pruned  int
}

// NewShaft returns an empty shaft. The config is assumed to be valid.
func NewShaft(cfg Config) *Shaft {
	s := &Shaft{
		width:          cfg.Width,
		spawnColumn:    cfg.SpawnColumn,
		spawnRowOffset: cfg.SpawnRowOffset,
		prune:          cfg.Prune,
		log:            cfg.logger(),
		rows:           intmap.New[int, uint16](1024),
		full:           uint16(1)<<cfg.Width - 1,
		top:            -1,
		skyline:        make([]int, cfg.Width),
	}
	for c := range s.skyline {
		s.skyline[c] = -1
	}
	return s
}

// Width returns the number of columns.
func (s *Shaft) Width() int {
	return s.width
}

// Top returns the highest occupied row, or -1 when the shaft is empty.
func (s *Shaft) Top() int {
	return s.top
}

// Height returns the number of rows from the floor to the highest occupied
// row inclusive.
func (s *Shaft) Height() int {
	return s.top + 1
}

// Skyline returns a copy of the topmost occupied row of every column, -1 for
// columns that are still empty.
func (s *Shaft) Skyline() []int {
	return append([]int(nil), s.skyline...)
}

// Occupied reports whether the cell is filled. Pruned rows and the floor
// count as filled.
func (s *Shaft) Occupied(c Cell) bool {
	if c.Col < 0 || c.Col >= s.width || c.Row < s.floor {
		return true
	}
	mask, _ := s.rows.Get(c.Row)
	return mask&(1<<c.Col) != 0
}

// LiveRows returns the number of rows currently held in memory.
func (s *Shaft) LiveRows() int {
	return s.rows.Len()
}

// PrunedRows returns the number of rows discarded so far.
func (s *Shaft) PrunedRows() int {
	return s.pruned
}

// Spawn places a new piece of the given shape at the spawn position above
// the current stack.
func (s *Shaft) Spawn(shape Shape) Piece {
	return Piece{
		Shape: shape,
		Col:   s.spawnColumn,
		Row:   s.top + s.spawnRowOffset,
	}
}

// Shift moves the piece one column in the given direction if it can go
// there, and returns it unchanged otherwise.
func (s *Shaft) Shift(p Piece, d Direction) Piece {
	next := p
	next.Col += d.Delta()
	if !s.fits(next) {
		return p
	}
	return next
}

// Fall moves the piece down one row. It reports false when the piece is
// blocked and has come to rest.
func (s *Shaft) Fall(p Piece) (Piece, bool) {
	next := p
	next.Row--
	if !s.fits(next) {
		return p, false
	}
	return next, true
}

// fits reports whether the piece lies inside the walls without overlapping
// any settled cell.
func (s *Shaft) fits(p Piece) bool {
	info := p.Shape.info()
	if p.Col < 0 || p.Col+info.width > s.width {
		return false
	}
	// Nothing is settled above the stack top.
	if p.Row > s.top {
		return true
	}
	if p.Row < s.floor {
		return false
	}
	for i, mask := range info.rows {
		row, _ := s.rows.Get(p.Row + i)
		if row&(mask<<p.Col) != 0 {
			return false
		}
	}
	return true
}

// Settle merges the piece into the shaft and updates the skyline and top.
func (s *Shaft) Settle(p Piece) {
	info := p.Shape.info()
	fullRow := -1
	for i, mask := range info.rows {
		y := p.Row + i
		row, _ := s.rows.Get(y)
		row |= mask << p.Col
		s.rows.Put(y, row)
		if row == s.full {
			fullRow = y
		}
	}
	for _, o := range info.cells {
		c := p.Col + o.Col
		s.skyline[c] = max(s.skyline[c], p.Row+o.Row)
	}
	s.top = max(s.top, p.Top())

	if s.prune && fullRow > s.floor {
		s.pruneBelow(fullRow)
	}
}

// pruneBelow discards every row under a completely filled row. No piece can
// pass through a full row, so those rows never affect a collision again.
func (s *Shaft) pruneBelow(row int) {
	n := 0
	for y := s.floor; y < row; y++ {
		if _, ok := s.rows.Get(y); ok {
			s.rows.Del(y)
			n++
		}
	}
	s.floor = row
	s.pruned += n
	s.log.Debug("pruned rows", "below", row, "count", n, "live", s.rows.Len())
}

// Drop spawns a piece of the given shape and lets it fall, pushed by the
// wind before every step down, until it comes to rest. The settled piece is
// returned.
func (s *Shaft) Drop(shape Shape, wind *Wind) Piece {
	p := s.Spawn(shape)
	for {
		p = s.Shift(p, wind.Next())
		next, ok := s.Fall(p)
		if !ok {
			s.Settle(p)
			return p
		}
		p = next
	}
}

// maxSurfaceDepth bounds how far below the stack top Surface follows open
// cells. Deeper surfaces are not fingerprinted.
const maxSurfaceDepth = 512

// Surface returns the free cells reachable from above the stack, encoded as
// one little-endian column bitmask per row from the top row downward. Every
// cell a future piece can touch is either in this set or filled, so two
// shafts with equal surfaces behave identically from then on. ok is false
// when the surface reaches deeper than maxSurfaceDepth rows.
func (s *Shaft) Surface() (surface string, ok bool) {
	var (
		reach []uint16
		stack []Cell
		deep  bool
	)
	visit := func(c Cell) {
		if c.Col < 0 || c.Col >= s.width || c.Row > s.top || s.Occupied(c) {
			return
		}
		i := s.top - c.Row
		if i >= maxSurfaceDepth {
			deep = true
			return
		}
		for len(reach) <= i {
			reach = append(reach, 0)
		}
		bit := uint16(1) << c.Col
		if reach[i]&bit != 0 {
			return
		}
		reach[i] |= bit
		stack = append(stack, c)
	}

	for c := 0; c < s.width; c++ {
		visit(Cell{Col: c, Row: s.top})
	}
	for len(stack) > 0 && !deep {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(Cell{Col: c.Col - 1, Row: c.Row})
		visit(Cell{Col: c.Col + 1, Row: c.Row})
		visit(Cell{Col: c.Col, Row: c.Row - 1})
		visit(Cell{Col: c.Col, Row: c.Row + 1})
	}
	if deep {
		return "", false
	}

	b := make([]byte, 0, 2*len(reach))
	for _, m := range reach {
		b = append(b, byte(m), byte(m>>8))
	}
	return string(b), true
}

// Render draws the top n rows of the shaft, highest first, using '#' for
// settled cells. The floor is drawn when it is in view, and a row of '~'
// marks the point below which rows have been pruned.
func (s *Shaft) Render(n int) string {
	var b strings.Builder
	bottom := max(s.top-n+1, -1)
	for y := s.top; y >= bottom; y-- {
		switch {
		case y == -1:
			b.WriteString("+" + strings.Repeat("-", s.width) + "+\n")
			continue
		case y < s.floor:
			b.WriteString("+" + strings.Repeat("~", s.width) + "+\n")
			return b.String()
		}
		mask, _ := s.rows.Get(y)
		b.WriteByte('|')
		for c := 0; c < s.width; c++ {
			if mask&(1<<c) != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	return b.String()
}
