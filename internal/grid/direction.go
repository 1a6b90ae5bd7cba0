package grid

// Direction names one of the four neighbour slots of a cell.
type Direction int

const (
	West Direction = iota
	North
	East
	South
)

// Directions lists every direction in slot order.
var Directions = [4]Direction{West, North, East, South}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Next returns the direction clockwise from d.
func (d Direction) Next() Direction {
	return (d + 1) % 4
}

// Previous returns the direction counter-clockwise from d.
func (d Direction) Previous() Direction {
	return (d + 3) % 4
}

// Vertical reports whether edges in this direction run along the z axis
// (the west and east sides of a cell).
func (d Direction) Vertical() bool {
	return d%2 == 0
}

func (d Direction) String() string {
	switch d {
	case West:
		return "W"
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	default:
		return "?"
	}
}
