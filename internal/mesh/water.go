package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/terracegen/internal/geometry"
	"github.com/OCharnyshevich/terracegen/internal/grid"
)

func waterCenter(c *grid.Cell, center mgl32.Vec3) mgl32.Vec3 {
	center[1] = geometry.WaterSurfaceY(c.WaterLevel())
	return center
}

// waterConnection bridges the water surface of c to a flooded neighbour,
// filling the south-west junction when all four cells are flooded.
func (b *builder) waterConnection(d grid.Direction, c *grid.Cell, center mgl32.Vec3) {
	n := c.Neighbor(d)
	if n == nil || !n.IsUnderwater() {
		return
	}
	center = waterCenter(c, center)
	bridge := geometry.Bridge(d)
	v1 := center.Add(geometry.SolidCorner(d))
	v2 := center.Add(geometry.SolidCorner(d.Next()))
	b.water.AddQuad(v1, v2, v1.Add(bridge), v2.Add(bridge))

	if d != grid.West {
		return
	}
	prev := c.Neighbor(grid.South)
	if prev == nil || !prev.IsUnderwater() {
		return
	}
	if corner := n.Neighbor(grid.South); !corner.IsUnderwater() {
		return
	}
	s := v1.Add(geometry.Bridge(grid.South))
	b.water.AddQuad(v1, v1.Add(bridge), s, s.Add(bridge))
}

// Shore shapes at the corner between edge d and the edge before it, seen
// from a flooded cell.
const (
	shoreNone   = iota
	shoreOuter  // both edge neighbours dry, diagonal flooded
	shoreSide   // neighbour across d and diagonal dry
	shoreInner  // all three dry
	shoreIsland // only the diagonal dry
)

func shoreCase(d grid.Direction, n, prev, corner *grid.Cell) int {
	if !corner.IsUnderwater() {
		switch {
		case !n.IsUnderwater() && !prev.IsUnderwater():
			return shoreInner
		case !n.IsUnderwater():
			return shoreSide
		case prev.IsUnderwater():
			return shoreIsland
		}
		return shoreNone
	}
	// Two dry edge neighbours around a flooded diagonal: emit from the
	// west and north edges only so the junction is drawn once.
	if !n.IsUnderwater() && !prev.IsUnderwater() && d < grid.East {
		return shoreOuter
	}
	return shoreNone
}

// waterShore draws the foam strip along edge d of a flooded cell when the
// neighbour is dry, and the corner piece before that edge.
func (b *builder) waterShore(d grid.Direction, c *grid.Cell, center mgl32.Vec3) {
	n := c.Neighbor(d)
	if n == nil {
		return
	}
	center = waterCenter(c, center)
	bridge := geometry.Bridge(d)
	v1 := center.Add(geometry.SolidCorner(d))
	v2 := center.Add(geometry.SolidCorner(d.Next()))
	if !n.IsUnderwater() {
		b.shore.AddQuad(v1, v2, v1.Add(bridge), v2.Add(bridge))
		b.shore.AddQuadUVRect(0, 0, 0, 1)
	}

	pd := d.Previous()
	prev := c.Neighbor(pd)
	if prev == nil {
		return
	}
	corner := n.Neighbor(pd)

	v2 = v1.Add(bridge)
	v3 := v1.Add(geometry.Bridge(pd))
	v4 := v3.Add(bridge)

	zero, one := mgl32.Vec2{0, 0}, mgl32.Vec2{0, 1}
	switch shoreCase(d, n, prev, corner) {
	case shoreSide:
		b.shore.AddQuad(v3, v1, v4, v2)
		b.shore.AddQuadUVRect(0, 0, 0, 1)
	case shoreInner:
		b.shore.AddQuad(v1, v2, v3, v4)
		b.shore.AddQuadUVs(zero, one, one, one)
	case shoreIsland:
		b.shore.AddQuad(v1, v2, v3, v4)
		b.shore.AddQuadUVs(zero, zero, zero, one)
	case shoreOuter:
		b.shore.AddQuad(v1, v2, v3, v4)
		b.shore.AddQuadUVs(zero, one, one, zero)
	}
}
