package world

import (
	"fmt"
	"strings"
)

// CellKind classifies a single grid cell. The classification is fixed for
// the lifetime of a level.
type CellKind uint8

const (
	Empty CellKind = iota
	Wall
	Trap
	Exit
	PlayerStart
)

var cellNames = [...]string{"empty", "wall", "trap", "exit", "start"}

func (k CellKind) String() string {
	if int(k) < len(cellNames) {
		return cellNames[k]
	}
	return "unknown"
}

// Field is the immutable W×H cell grid of one level.
type Field struct {
	width  int
	height int
	cells  []CellKind // row-major, y*width+x
}

// NewField builds a field from row-major cells. The slice is copied.
func NewField(width, height int, cells []CellKind) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid field dimensions %dx%d", width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("field expects %d cells, got %d", width*height, len(cells))
	}
	f := &Field{width: width, height: height, cells: make([]CellKind, len(cells))}
	copy(f.cells, cells)
	return f, nil
}

// Glyphs used by the textual map format, one rune per cell.
const (
	glyphEmpty = '.'
	glyphWall  = '#'
	glyphTrap  = '^'
	glyphExit  = 'E'
	glyphStart = '@'
)

// ParseField decodes the textual map format used by level files: one
// string per row, all rows the same width.
func ParseField(rows []string) (*Field, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty map")
	}
	width := len(rows[0])
	cells := make([]CellKind, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("map row %d is %d cells wide, expected %d", y, len(row), width)
		}
		for x, r := range row {
			switch r {
			case glyphEmpty:
				cells = append(cells, Empty)
			case glyphWall:
				cells = append(cells, Wall)
			case glyphTrap:
				cells = append(cells, Trap)
			case glyphExit:
				cells = append(cells, Exit)
			case glyphStart:
				cells = append(cells, PlayerStart)
			default:
				return nil, fmt.Errorf("map row %d: unknown glyph %q at column %d", y, string(r), x)
			}
		}
	}
	return NewField(width, len(rows), cells)
}

// Width returns the horizontal cell count.
func (f *Field) Width() int { return f.width }

// Height returns the vertical cell count.
func (f *Field) Height() int { return f.height }

// InBounds reports whether the location lies inside the field.
func (f *Field) InBounds(loc Location) bool {
	return loc.X >= 0 && loc.X < f.width && loc.Y >= 0 && loc.Y < f.height
}

// At returns the cell kind at loc. Passing an out-of-bounds location is a
// contract violation and panics; callers gate on InBounds.
func (f *Field) At(loc Location) CellKind {
	if !f.InBounds(loc) {
		panic(fmt.Sprintf("world: location %v outside %dx%d field", loc, f.width, f.height))
	}
	return f.cells[loc.Y*f.width+loc.X]
}

// CellsOf returns every location holding the given kind, in row-major
// scan order.
func (f *Field) CellsOf(kind CellKind) []Location {
	var out []Location
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if f.cells[y*f.width+x] == kind {
				out = append(out, Location{X: x, Y: y})
			}
		}
	}
	return out
}

// String renders the field back into its textual map format.
func (f *Field) String() string {
	var b strings.Builder
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			switch f.cells[y*f.width+x] {
			case Wall:
				b.WriteRune(glyphWall)
			case Trap:
				b.WriteRune(glyphTrap)
			case Exit:
				b.WriteRune(glyphExit)
			case PlayerStart:
				b.WriteRune(glyphStart)
			default:
				b.WriteRune(glyphEmpty)
			}
		}
		if y < f.height-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
