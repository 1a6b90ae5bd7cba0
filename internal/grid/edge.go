package grid

// EdgeType classifies the connection between two cells.
type EdgeType int

const (
	Flat EdgeType = iota
	Slope
	Cliff
)

func (e EdgeType) String() string {
	switch e {
	case Flat:
		return "flat"
	case Slope:
		return "slope"
	default:
		return "cliff"
	}
}

// ClassifyEdge returns Flat for equal elevations, Slope for a difference
// of exactly one and Cliff otherwise.
func ClassifyEdge(e1, e2 int) EdgeType {
	if e1 == e2 {
		return Flat
	}
	if d := e2 - e1; d == 1 || d == -1 {
		return Slope
	}
	return Cliff
}
