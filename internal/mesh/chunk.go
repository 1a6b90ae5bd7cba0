package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/terracegen/internal/grid"
)

// Placement positions one decorative feature. Instancing the prop is up to
// the renderer.
type Placement struct {
	Feature  int
	Cell     grid.Coordinates
	Position mgl32.Vec3
	// Yaw is a rotation about the vertical axis in degrees.
	Yaw float32
}

// ChunkMesh is everything produced for one chunk.
type ChunkMesh struct {
	Pos      grid.ChunkPos
	Terrain  *Buffers
	Water    *Buffers
	Shore    *Buffers
	Features []Placement
}

// Sink receives finished chunk meshes, typically a renderer upload or an
// exporter.
type Sink interface {
	Apply(m *ChunkMesh) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(m *ChunkMesh) error

func (f SinkFunc) Apply(m *ChunkMesh) error { return f(m) }
