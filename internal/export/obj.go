// Package export writes chunk meshes in formats external tools can open.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/OCharnyshevich/terracegen/internal/mesh"
)

// Layer selects which buffers of a chunk are written.
type Layer uint8

const (
	LayerTerrain Layer = 1 << iota
	LayerWater
	LayerShore

	LayerAll = LayerTerrain | LayerWater | LayerShore
)

// OBJ streams chunk meshes as one Wavefront OBJ file. It implements
// mesh.Sink; call Flush once the last chunk has been applied.
type OBJ struct {
	w      *bufio.Writer
	layers Layer
	// OBJ indices are global and 1-based.
	vertices, uvs int
	objects       int
	header        bool
}

// NewOBJ returns an OBJ writer for the given layers.
func NewOBJ(w io.Writer, layers Layer) *OBJ {
	return &OBJ{w: bufio.NewWriter(w), layers: layers}
}

// Objects is the number of objects written so far.
func (o *OBJ) Objects() int { return o.objects }

// Apply writes the selected layers of m as separate objects.
func (o *OBJ) Apply(m *mesh.ChunkMesh) error {
	if !o.header {
		fmt.Fprintln(o.w, "# terracegen chunk meshes")
		o.header = true
	}
	layers := []struct {
		layer Layer
		name  string
		buf   *mesh.Buffers
	}{
		{LayerTerrain, "terrain", m.Terrain},
		{LayerWater, "water", m.Water},
		{LayerShore, "shore", m.Shore},
	}
	for _, l := range layers {
		if o.layers&l.layer == 0 || l.buf == nil || l.buf.VertexCount() == 0 {
			continue
		}
		o.object(fmt.Sprintf("chunk_%d_%d_%s", m.Pos.X, m.Pos.Z, l.name), l.buf)
	}
	for _, f := range m.Features {
		fmt.Fprintf(o.w, "# feature %d cell %d %d at %g %g %g yaw %g\n",
			f.Feature, f.Cell.X, f.Cell.Z, f.Position.X(), f.Position.Y(), f.Position.Z(), f.Yaw)
	}
	// bufio keeps the first write error; report it per chunk.
	if err := o.w.Flush(); err != nil {
		return fmt.Errorf("export: write chunk %v: %w", m.Pos, err)
	}
	return nil
}

func (o *OBJ) object(name string, b *mesh.Buffers) {
	fmt.Fprintf(o.w, "o %s\n", name)
	for _, p := range b.Positions {
		fmt.Fprintf(o.w, "v %g %g %g\n", p.X(), p.Y(), p.Z())
	}
	withUV := len(b.UV0) == len(b.Positions)
	if withUV {
		for _, uv := range b.UV0 {
			fmt.Fprintf(o.w, "vt %g %g\n", uv.X(), uv.Y())
		}
	}

	// Buffers wind clockwise seen from above; OBJ front faces are
	// counter-clockwise.
	for i := 0; i+2 < len(b.Indices); i += 3 {
		a := o.vertices + int(b.Indices[i]) + 1
		c := o.vertices + int(b.Indices[i+1]) + 1
		d := o.vertices + int(b.Indices[i+2]) + 1
		if withUV {
			ua := o.uvs + int(b.Indices[i]) + 1
			uc := o.uvs + int(b.Indices[i+1]) + 1
			ud := o.uvs + int(b.Indices[i+2]) + 1
			fmt.Fprintf(o.w, "f %d/%d %d/%d %d/%d\n", a, ua, d, ud, c, uc)
		} else {
			fmt.Fprintf(o.w, "f %d %d %d\n", a, d, c)
		}
	}

	o.vertices += len(b.Positions)
	if withUV {
		o.uvs += len(b.UV0)
	}
	o.objects++
}

// Flush writes any buffered output.
func (o *OBJ) Flush() error {
	return o.w.Flush()
}
