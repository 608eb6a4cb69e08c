package engine

import "fmt"

// MapLocation is a square on the map grid. Value type; all arithmetic
// returns new locations.
type MapLocation struct {
	X int
	Y int
}

func (l MapLocation) String() string {
	return fmt.Sprintf("[%d, %d]", l.X, l.Y)
}

// Add returns the location one step in dir.
func (l MapLocation) Add(dir Direction) MapLocation {
	return MapLocation{X: l.X + dir.DX(), Y: l.Y + dir.DY()}
}

// DistanceSquaredTo returns the squared euclidean distance to other.
func (l MapLocation) DistanceSquaredTo(other MapLocation) int {
	dx := l.X - other.X
	dy := l.Y - other.Y
	return dx*dx + dy*dy
}

// IsAdjacentTo reports whether other is one king-move away.
func (l MapLocation) IsAdjacentTo(other MapLocation) bool {
	d := l.DistanceSquaredTo(other)
	return d > 0 && d <= 2
}

// DirectionTo returns the compass direction that best points from l toward
// other, or DirNone when the locations coincide.
func (l MapLocation) DirectionTo(other MapLocation) Direction {
	dx := sign(other.X - l.X)
	dy := sign(other.Y - l.Y)
	for _, dir := range Directions {
		if dir.DX() == dx && dir.DY() == dy {
			return dir
		}
	}
	return DirNone
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Direction is one of the eight compass steps, or DirNone.
type Direction uint8

const (
	DirNorth Direction = iota
	DirNorthEast
	DirEast
	DirSouthEast
	DirSouth
	DirSouthWest
	DirWest
	DirNorthWest
	DirNone
)

// Directions lists the eight compass directions in clockwise order starting
// at north. Iterating this slice keeps direction-dependent logic
// deterministic.
var Directions = [...]Direction{
	DirNorth, DirNorthEast, DirEast, DirSouthEast,
	DirSouth, DirSouthWest, DirWest, DirNorthWest,
}

// North is negative Y, matching screen-style map coordinates.
var (
	directionDX    = [...]int{0, 1, 1, 1, 0, -1, -1, -1, 0}
	directionDY    = [...]int{-1, -1, 0, 1, 1, 1, 0, -1, 0}
	directionNames = [...]string{
		"NORTH", "NORTH_EAST", "EAST", "SOUTH_EAST",
		"SOUTH", "SOUTH_WEST", "WEST", "NORTH_WEST", "NONE",
	}
)

func (d Direction) DX() int { return directionDX[d] }
func (d Direction) DY() int { return directionDY[d] }

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "?"
}

// Opposite returns the reverse direction. DirNone is its own opposite.
func (d Direction) Opposite() Direction {
	if d == DirNone {
		return DirNone
	}
	return (d + 4) % 8
}

// RotateRight returns the direction one compass step clockwise.
func (d Direction) RotateRight() Direction {
	if d == DirNone {
		return DirNone
	}
	return (d + 1) % 8
}

// RotateLeft returns the direction one compass step counterclockwise.
func (d Direction) RotateLeft() Direction {
	if d == DirNone {
		return DirNone
	}
	return (d + 7) % 8
}

// Height is the vertical occupancy tier. At most one robot may occupy a
// given (location, height) pair.
type Height uint8

const (
	HeightGround Height = iota
	HeightAir

	heightCount = 2
)

var heightNames = [...]string{"GROUND", "AIR"}

func (h Height) String() string {
	if int(h) < len(heightNames) {
		return heightNames[h]
	}
	return "?"
}
