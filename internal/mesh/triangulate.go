package mesh

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/terracegen/internal/geometry"
	"github.com/OCharnyshevich/terracegen/internal/grid"
)

// Splat colors weight the terrain of up to four cells meeting at a vertex.
var (
	color1 = mgl32.Vec4{1, 0, 0, 0}
	color2 = mgl32.Vec4{0, 1, 0, 0}
	color3 = mgl32.Vec4{0, 0, 1, 0}
	color4 = mgl32.Vec4{0, 0, 0, 1}
)

// Triangulator builds chunk meshes from finished cell state. It only
// reads the grid, so chunks can be triangulated concurrently as long as
// nothing edits cells meanwhile.
type Triangulator struct {
	perturb geometry.Perturber
}

// NewTriangulator returns a Triangulator that perturbs vertices with p.
func NewTriangulator(p geometry.Perturber) *Triangulator {
	return &Triangulator{perturb: p}
}

// Perturber returns the perturbation applied to vertices.
func (t *Triangulator) Perturber() geometry.Perturber { return t.perturb }

// Chunk triangulates every cell of ch.
func (t *Triangulator) Chunk(ch *grid.Chunk) *ChunkMesh {
	b := &builder{
		perturb: t.perturb,
		terrain: NewBuffers(Options{Colors: true, UV0: true, TerrainTypes: true}, t.perturb),
		water:   NewBuffers(Options{}, t.perturb),
		shore:   NewBuffers(Options{UV0: true}, t.perturb),
	}
	for _, c := range ch.Cells() {
		b.cell(c)
	}
	return &ChunkMesh{
		Pos:      ch.Pos(),
		Terrain:  b.terrain,
		Water:    b.water,
		Shore:    b.shore,
		Features: b.features,
	}
}

// TriangulateAll triangulates chunks in parallel and hands the results to
// sink from the calling goroutine, in the order of chunks.
func (t *Triangulator) TriangulateAll(ctx context.Context, chunks []*grid.Chunk, sink Sink) error {
	meshes := make([]*ChunkMesh, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, ch := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			meshes[i] = t.Chunk(ch)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("mesh: triangulate: %w", err)
	}

	for _, m := range meshes {
		if err := sink.Apply(m); err != nil {
			return fmt.Errorf("mesh: apply chunk %v: %w", m.Pos, err)
		}
	}
	return nil
}

type builder struct {
	perturb               geometry.Perturber
	terrain, water, shore *Buffers
	features              []Placement
}

func (b *builder) position(c *grid.Cell) mgl32.Vec3 {
	return b.perturb.CellPosition(c)
}

func terrainOf(c *grid.Cell) float32 { return float32(c.TerrainType()) }

func (b *builder) quad(v1, v2, v3, v4 mgl32.Vec3, p Projection,
	c1, c2, c3, c4 mgl32.Vec4, types mgl32.Vec4) {
	b.terrain.AddQuad(v1, v2, v3, v4)
	b.terrain.AddQuadUV(p, v1, v2, v3, v4)
	b.terrain.AddQuadColors(c1, c2, c3, c4)
	b.terrain.AddQuadTerrainTypes(types)
}

func (b *builder) triangle(v1, v2, v3 mgl32.Vec3, p Projection,
	c1, c2, c3 mgl32.Vec4, types mgl32.Vec4) {
	b.terrain.AddTriangle(v1, v2, v3)
	b.terrain.AddTriangleUV(p, v1, v2, v3)
	b.terrain.AddTriangleColors(c1, c2, c3)
	b.terrain.AddTriangleTerrainTypes(types)
}

// cell emits the solid quad of c, its west and north connections, its
// water surface and shores, and its feature placement.
func (b *builder) cell(c *grid.Cell) {
	center := b.position(c)
	sw := center.Add(geometry.SolidCorner(grid.West))
	se := center.Add(geometry.SolidCorner(grid.South))
	nw := center.Add(geometry.SolidCorner(grid.North))
	ne := center.Add(geometry.SolidCorner(grid.East))
	b.quad(sw, se, nw, ne, ProjectXZ, color1, color1, color1, color1,
		mgl32.Vec4{terrainOf(c), 0, 0, 0})

	underwater := c.IsUnderwater()
	if underwater {
		surface := center
		surface[1] = geometry.WaterSurfaceY(c.WaterLevel())
		b.water.AddQuad(
			surface.Add(geometry.SolidCorner(grid.West)),
			surface.Add(geometry.SolidCorner(grid.South)),
			surface.Add(geometry.SolidCorner(grid.North)),
			surface.Add(geometry.SolidCorner(grid.East)))
	}

	// East and south edges belong to the neighbours on that side.
	for _, d := range []grid.Direction{grid.West, grid.North} {
		b.connection(d, c, center)
		if underwater {
			b.waterConnection(d, c, center)
		}
	}
	if underwater {
		for _, d := range grid.Directions {
			b.waterShore(d, c, center)
		}
	}

	if f := c.FeatureType(); f != grid.FeatureNone {
		b.features = append(b.features, Placement{
			Feature:  f,
			Cell:     c.Coordinates(),
			Position: b.perturb.Perturb(center),
			Yaw:      b.perturb.Yaw(center),
		})
	}
}

func (b *builder) connection(d grid.Direction, c *grid.Cell, center mgl32.Vec3) {
	n := c.Neighbor(d)
	if n == nil {
		return
	}
	bridge := geometry.Bridge(d)
	v1 := center.Add(geometry.SolidCorner(d))
	v2 := center.Add(geometry.SolidCorner(d.Next()))
	v3, v4 := v1.Add(bridge), v2.Add(bridge)
	ny := b.position(n).Y()
	v3[1], v4[1] = ny, ny

	// West and east edges run along z: their vertical faces lie in the
	// zy plane and the sides of a slope in the xy plane.
	face, side := ProjectXY, ProjectZY
	if d.Vertical() {
		face, side = ProjectZY, ProjectXY
	}

	types := mgl32.Vec4{terrainOf(c), terrainOf(n), 0, 0}
	switch c.EdgeType(d) {
	case grid.Flat:
		b.quad(v1, v2, v3, v4, ProjectXZ, color1, color1, color2, color2, types)
	case grid.Slope:
		if c.Elevation() < n.Elevation() {
			b.slope(v1, v2, c, v3, v4, n, side)
		} else {
			b.slope(v4, v3, n, v2, v1, c, side)
		}
	case grid.Cliff:
		delta := n.Elevation() - c.Elevation()
		drop := float32(delta) * geometry.ElevationStep
		if delta > 0 {
			v5, v6 := v3, v4
			v5[1] -= drop
			v6[1] -= drop
			b.quad(v1, v2, v5, v6, ProjectXZ, color1, color1, color2, color2, types)
			b.quad(v5, v6, v3, v4, face, color2, color2, color2, color2,
				mgl32.Vec4{0, terrainOf(n), 0, 0})
		} else {
			v5, v6 := v1, v2
			v5[1] += drop
			v6[1] += drop
			b.quad(v1, v2, v5, v6, face, color1, color1, color1, color1,
				mgl32.Vec4{terrainOf(c), 0, 0, 0})
			b.quad(v5, v6, v3, v4, ProjectXZ, color1, color1, color2, color2, types)
		}
	}

	// Each four-cell junction is closed once, from the cell to its
	// north-east, along the west edge.
	if d != grid.West {
		return
	}
	prev := c.Neighbor(grid.South)
	if prev == nil {
		return
	}
	corner := n.Neighbor(grid.South)

	down := geometry.Bridge(grid.South)
	w := v1.Add(bridge)
	s := v1.Add(down)
	sw := s.Add(bridge)
	w[1] = ny
	s[1] = b.position(prev).Y()
	sw[1] = b.position(corner).Y()

	switch lowest(c, n, prev, corner) {
	case 0:
		b.corner(v1, c, w, n, sw, corner, s, prev, false)
	case 1:
		b.corner(w, n, sw, corner, s, prev, v1, c, true)
	case 2:
		b.corner(s, prev, v1, c, w, n, sw, corner, true)
	default:
		b.corner(sw, corner, s, prev, v1, c, w, n, false)
	}
}

// lowest returns the position of the lowest cell, the first one on ties.
func lowest(cells ...*grid.Cell) int {
	idx := 0
	for i, c := range cells[1:] {
		if c.Elevation() < cells[idx].Elevation() {
			idx = i + 1
		}
	}
	return idx
}

// slope terraces the edge between begin and the cell one step higher.
// Each step adds a tread quad and two side triangles reaching down to the
// level of begin.
func (b *builder) slope(beginLeft, beginRight mgl32.Vec3, begin *grid.Cell,
	endLeft, endRight mgl32.Vec3, end *grid.Cell, side Projection) {
	types := mgl32.Vec4{terrainOf(begin), terrainOf(end), 0, 0}
	drop := float32(end.Elevation()-begin.Elevation()) * geometry.ElevationStep
	leftBelow, rightBelow := endLeft, endRight
	leftBelow[1] -= drop
	rightBelow[1] -= drop

	v1, v2, c1 := beginLeft, beginRight, color1
	for step := 1; step <= geometry.TerraceSteps; step++ {
		v3, v4, c2 := endLeft, endRight, color2
		if step < geometry.TerraceSteps {
			v3 = geometry.TerraceLerp(beginLeft, endLeft, step)
			v4 = geometry.TerraceLerp(beginRight, endRight, step)
			c2 = geometry.TerraceLerpColor(color1, color2, step)
		}
		b.quad(v1, v2, v3, v4, ProjectXZ, c1, c1, c2, c2, types)
		b.triangle(v1, leftBelow, v3, side, c1, color2, c2, types)
		b.triangle(v4, rightBelow, v2, side, c2, color2, c1, types)
		v1, v2, c1 = v3, v4, c2
	}
}

// corner closes the gap where four cells meet. c1 is the lowest cell and
// the others follow around the junction; every other corner is dropped to
// c1's level, with a stitching quad wherever two neighbours on the ring
// differ in height.
func (b *builder) corner(v1 mgl32.Vec3, c1 *grid.Cell, v2 mgl32.Vec3, c2 *grid.Cell,
	v3 mgl32.Vec3, c3 *grid.Cell, v4 mgl32.Vec3, c4 *grid.Cell, ns bool) {
	t1, t2, t3, t4 := terrainOf(c1), terrainOf(c2), terrainOf(c3), terrainOf(c4)
	d21 := c2.Elevation() - c1.Elevation()
	d31 := c3.Elevation() - c1.Elevation()
	d41 := c4.Elevation() - c1.Elevation()

	first, second := ProjectZY, ProjectXY
	if ns {
		first, second = ProjectXY, ProjectZY
	}

	lowered := func(v mgl32.Vec3, delta int) mgl32.Vec3 {
		v[1] -= float32(delta) * geometry.ElevationStep
		return v
	}

	v21, v31, v41 := v2, v3, v4
	if d21 > 0 {
		v21 = lowered(v2, d21)
	}
	if d31 > 0 {
		v31 = lowered(v3, d31)
		types := mgl32.Vec4{t3, t2, 0, 0}
		if d31 < d21 {
			b.quad(v31, v21, v3, lowered(v2, d21-d31), first, color1, color2, color1, color2, types)
		} else if d21 > 0 {
			b.quad(v31, v21, lowered(v3, d31-d21), v2, first, color1, color2, color1, color2, types)
		}
	}
	if d41 > 0 {
		v41 = lowered(v4, d41)
		types := mgl32.Vec4{t4, t3, 0, 0}
		if d41 < d31 {
			b.quad(v41, v31, v4, lowered(v3, d31-d41), second, color1, color2, color1, color2, types)
		} else if d31 > 0 {
			b.quad(v41, v31, lowered(v4, d41-d31), v3, second, color1, color2, color1, color2, types)
		}
	}

	b.quad(v1, v21, v41, v31, ProjectXZ, color1, color2, color3, color4,
		mgl32.Vec4{t1, t2, t4, t3})
}
