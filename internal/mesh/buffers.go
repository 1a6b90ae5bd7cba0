// Package mesh turns a finished grid into triangle geometry, one set of
// buffers per chunk.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/terracegen/internal/geometry"
)

// Projection picks the plane a vertex is projected onto to get its UV.
type Projection int

const (
	ProjectXZ Projection = iota
	ProjectXY
	ProjectZY
)

func (p Projection) uv(v mgl32.Vec3) mgl32.Vec2 {
	switch p {
	case ProjectXY:
		return mgl32.Vec2{v.X(), v.Y()}
	case ProjectZY:
		return mgl32.Vec2{v.Z(), v.Y()}
	default:
		return mgl32.Vec2{v.X(), v.Z()}
	}
}

// Options selects the per-vertex attributes a Buffers records.
type Options struct {
	Colors       bool
	UV0          bool
	TerrainTypes bool
}

// Buffers accumulates one mesh. Every enabled attribute slice has one
// entry per position; indices come in triples, clockwise seen from above.
type Buffers struct {
	opts    Options
	perturb geometry.Perturber

	Positions []mgl32.Vec3
	Colors    []mgl32.Vec4
	UV0       []mgl32.Vec2
	// UV1 carries the terrain indices blended across a face.
	UV1     []mgl32.Vec4
	Indices []uint32
}

// NewBuffers returns empty buffers that perturb every vertex with p.
func NewBuffers(opts Options, p geometry.Perturber) *Buffers {
	return &Buffers{opts: opts, perturb: p}
}

// Options reports which attributes are recorded.
func (b *Buffers) Options() Options { return b.opts }

// Reset empties the buffers, keeping their storage.
func (b *Buffers) Reset() {
	b.Positions = b.Positions[:0]
	b.Colors = b.Colors[:0]
	b.UV0 = b.UV0[:0]
	b.UV1 = b.UV1[:0]
	b.Indices = b.Indices[:0]
}

// VertexCount is the number of positions.
func (b *Buffers) VertexCount() int { return len(b.Positions) }

// TriangleCount is the number of faces.
func (b *Buffers) TriangleCount() int { return len(b.Indices) / 3 }

func (b *Buffers) AddTriangle(v1, v2, v3 mgl32.Vec3) {
	i := uint32(len(b.Positions))
	b.Positions = append(b.Positions,
		b.perturb.Perturb(v1), b.perturb.Perturb(v2), b.perturb.Perturb(v3))
	b.Indices = append(b.Indices, i, i+1, i+2)
}

func (b *Buffers) AddTriangleColors(c1, c2, c3 mgl32.Vec4) {
	if b.opts.Colors {
		b.Colors = append(b.Colors, c1, c2, c3)
	}
}

// AddTriangleUV projects the unperturbed corners onto plane p.
func (b *Buffers) AddTriangleUV(p Projection, v1, v2, v3 mgl32.Vec3) {
	if b.opts.UV0 {
		b.UV0 = append(b.UV0, p.uv(v1), p.uv(v2), p.uv(v3))
	}
}

func (b *Buffers) AddTriangleTerrainTypes(types mgl32.Vec4) {
	if b.opts.TerrainTypes {
		b.UV1 = append(b.UV1, types, types, types)
	}
}

// AddQuad adds v1..v4 as two triangles: (v1, v3, v2) and (v2, v3, v4).
func (b *Buffers) AddQuad(v1, v2, v3, v4 mgl32.Vec3) {
	i := uint32(len(b.Positions))
	b.Positions = append(b.Positions,
		b.perturb.Perturb(v1), b.perturb.Perturb(v2),
		b.perturb.Perturb(v3), b.perturb.Perturb(v4))
	b.Indices = append(b.Indices, i, i+2, i+1, i+1, i+2, i+3)
}

func (b *Buffers) AddQuadColors(c1, c2, c3, c4 mgl32.Vec4) {
	if b.opts.Colors {
		b.Colors = append(b.Colors, c1, c2, c3, c4)
	}
}

// AddQuadUV projects the unperturbed corners onto plane p.
func (b *Buffers) AddQuadUV(p Projection, v1, v2, v3, v4 mgl32.Vec3) {
	if b.opts.UV0 {
		b.UV0 = append(b.UV0, p.uv(v1), p.uv(v2), p.uv(v3), p.uv(v4))
	}
}

// AddQuadUVs records explicit UVs.
func (b *Buffers) AddQuadUVs(uv1, uv2, uv3, uv4 mgl32.Vec2) {
	if b.opts.UV0 {
		b.UV0 = append(b.UV0, uv1, uv2, uv3, uv4)
	}
}

// AddQuadUVRect spans a UV rectangle over the quad's corners.
func (b *Buffers) AddQuadUVRect(uMin, uMax, vMin, vMax float32) {
	b.AddQuadUVs(
		mgl32.Vec2{uMin, vMin}, mgl32.Vec2{uMax, vMin},
		mgl32.Vec2{uMin, vMax}, mgl32.Vec2{uMax, vMax})
}

func (b *Buffers) AddQuadTerrainTypes(types mgl32.Vec4) {
	if b.opts.TerrainTypes {
		b.UV1 = append(b.UV1, types, types, types, types)
	}
}
