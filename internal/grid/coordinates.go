package grid

import "fmt"

// Coordinates identifies a cell by its offset position in the grid.
type Coordinates struct {
	X, Z int
}

// DistanceTo returns the Manhattan distance on offset coordinates.
func (c Coordinates) DistanceTo(other Coordinates) int {
	dx := c.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dz := c.Z - other.Z
	if dz < 0 {
		dz = -dz
	}
	return dx + dz
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Z)
}
