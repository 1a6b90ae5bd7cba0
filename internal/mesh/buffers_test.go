package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/terracegen/internal/geometry"
	"github.com/OCharnyshevich/terracegen/internal/noise"
)

func TestBuffersSkipDisabledAttributes(t *testing.T) {
	b := NewBuffers(Options{UV0: true}, geometry.Perturber{})
	v := mgl32.Vec3{1, 2, 3}
	b.AddQuad(v, v, v, v)
	b.AddQuadColors(color1, color1, color1, color1)
	b.AddQuadUVRect(0, 1, 0, 1)
	b.AddQuadTerrainTypes(mgl32.Vec4{})
	b.AddTriangle(v, v, v)
	b.AddTriangleUV(ProjectZY, v, v, v)

	require.Equal(t, 7, b.VertexCount())
	require.Equal(t, 3, b.TriangleCount())
	require.Empty(t, b.Colors)
	require.Empty(t, b.UV1)
	require.Equal(t, []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {3, 2}, {3, 2}, {3, 2}}, b.UV0)
	require.Equal(t, []uint32{0, 2, 1, 1, 2, 3, 4, 5, 6}, b.Indices)

	b.Reset()
	require.Zero(t, b.VertexCount())
	require.Empty(t, b.UV0)
	require.Empty(t, b.Indices)
}

func TestProjection(t *testing.T) {
	v := mgl32.Vec3{1, 2, 3}
	require.Equal(t, mgl32.Vec2{1, 3}, ProjectXZ.uv(v))
	require.Equal(t, mgl32.Vec2{1, 2}, ProjectXY.uv(v))
	require.Equal(t, mgl32.Vec2{3, 2}, ProjectZY.uv(v))
}

func TestBuffersPerturbPositionsNotUVs(t *testing.T) {
	p := geometry.Perturber{Source: noise.NewSimplex(4)}
	b := NewBuffers(Options{UV0: true}, p)
	v1, v2, v3 := mgl32.Vec3{100, 0, 40}, mgl32.Vec3{220, 6, 40}, mgl32.Vec3{100, 0, 380}
	b.AddTriangle(v1, v2, v3)
	b.AddTriangleUV(ProjectXZ, v1, v2, v3)

	require.Equal(t, p.Perturb(v2), b.Positions[1])
	require.Equal(t, mgl32.Vec2{220, 40}, b.UV0[1])
}
