// Package world models the per-turn view of the dungeon handed to the
// agent: the immutable field, the entities visible this turn, and the
// spatial predicates the decision engine queries against them.
package world

// Location is an integer grid coordinate. Locations are value types and
// compare by value, which makes them usable as map keys.
type Location struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Offset is an integer delta between two locations.
type Offset struct {
	DX int
	DY int
}

// Add returns the location shifted by the given offset.
func (l Location) Add(o Offset) Location {
	return Location{X: l.X + o.DX, Y: l.Y + o.DY}
}

// To returns the offset leading from l to other.
func (l Location) To(other Location) Offset {
	return Offset{DX: other.X - l.X, DY: other.Y - l.Y}
}

// Chebyshev returns the Chebyshev distance to other: the number of king
// moves between the two cells.
func (l Location) Chebyshev(other Location) int {
	dx := abs(other.X - l.X)
	dy := abs(other.Y - l.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Scale multiplies both components of the offset.
func (o Offset) Scale(k int) Offset {
	return Offset{DX: o.DX * k, DY: o.DY * k}
}

// StepOffsets are the four orthogonal unit vectors, in the fixed order
// North, East, South, West. Search code relies on this order being stable.
var StepOffsets = [4]Offset{
	{0, -1},
	{1, 0},
	{0, 1},
	{-1, 0},
}

// AttackOffsets are the eight unit vectors at Chebyshev distance one, in
// clockwise order starting from North.
var AttackOffsets = [8]Offset{
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
	{-1, -1},
}

// Direction is one of the eight compass directions. Move actions are
// restricted to the four cardinal ones; attacks may use all eight.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [8]string{
	"north", "northeast", "east", "southeast",
	"south", "southwest", "west", "northwest",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// Offset returns the unit vector for the direction.
func (d Direction) Offset() Offset {
	return AttackOffsets[d]
}

// Cardinal reports whether the direction is one of the four step
// directions a move action may use.
func (d Direction) Cardinal() bool {
	return d == North || d == East || d == South || d == West
}

// DirectionOf resolves a unit offset to its compass direction. The second
// return value is false when the offset is not a unit vector.
func DirectionOf(o Offset) (Direction, bool) {
	for i, cand := range AttackOffsets {
		if cand == o {
			return Direction(i), true
		}
	}
	return North, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
