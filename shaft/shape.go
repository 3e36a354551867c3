package shaft

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Shape -trimprefix=Shape

// Shape identifies one of the five fixed rock shapes.
type Shape uint8

const (
	ShapeFlat Shape = iota
	ShapeCross
	ShapeEl
	ShapeTall
	ShapeSquare
)

const numShapes = 5

// Offset is a cell position relative to a piece's anchor, the bottom-left
// corner of the shape's bounding box. Rows grow upward.
type Offset struct {
	Col, Row int
}

// shapeInfo is the static description of a shape. rows holds one column
// bitmask per row of the bounding box, bottom row first, with bit 0 at the
// anchor column.
type shapeInfo struct {
	cells []Offset
	rows  []uint16
	width int
	top   int
}

var shapes = [numShapes]shapeInfo{
	ShapeFlat: buildShape(
		"####",
	),
	ShapeCross: buildShape(
		".#.",
		"###",
		".#.",
	),
	ShapeEl: buildShape(
		"..#",
		"..#",
		"###",
	),
	ShapeTall: buildShape(
		"#",
		"#",
		"#",
		"#",
	),
	ShapeSquare: buildShape(
		"##",
		"##",
	),
}

// buildShape converts a picture of a shape, top row first, into its table entry.
func buildShape(picture ...string) shapeInfo {
	var info shapeInfo
	info.rows = make([]uint16, len(picture))
	for i, line := range picture {
		row := len(picture) - 1 - i
		for col, c := range line {
			if c != '#' {
				continue
			}
			info.cells = append(info.cells, Offset{Col: col, Row: row})
			info.rows[row] |= 1 << col
			info.width = max(info.width, col+1)
			info.top = max(info.top, row)
		}
	}
	return info
}

func (s Shape) info() *shapeInfo {
	if s >= numShapes {
		panic(fmt.Sprintf("unknown shape %d", s))
	}
	return &shapes[s]
}

// Cells returns the shape's occupied cells relative to its anchor.
func (s Shape) Cells() []Offset {
	return s.info().cells
}

// Width returns the number of columns the shape spans.
func (s Shape) Width() int {
	return s.info().width
}

// Top returns the highest row offset the shape occupies above its anchor.
func (s Shape) Top() int {
	return s.info().top
}

// Valid reports whether s is one of the known shapes.
func (s Shape) Valid() bool {
	return s < numShapes
}

// Shapes returns every known shape in the standard drop order.
func Shapes() []Shape {
	return []Shape{ShapeFlat, ShapeCross, ShapeEl, ShapeTall, ShapeSquare}
}

// ParseShape returns the shape with the given case-insensitive name.
func ParseShape(name string) (Shape, error) {
	for _, s := range Shapes() {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, name)
}
