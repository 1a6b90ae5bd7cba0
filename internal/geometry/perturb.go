package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/terracegen/internal/grid"
	"github.com/OCharnyshevich/terracegen/internal/noise"
)

// Perturber displaces positions with a noise source. The zero value leaves
// positions untouched.
type Perturber struct {
	Source noise.Source
}

// Sample reads the noise at p's xz position scaled by NoiseScale. Without
// a source every channel is 0.5, the neutral value.
func (p Perturber) Sample(pos mgl32.Vec3) mgl32.Vec4 {
	if p.Source == nil {
		return mgl32.Vec4{0.5, 0.5, 0.5, 0.5}
	}
	return p.Source.Sample(pos.X()*NoiseScale, pos.Z()*NoiseScale)
}

// Perturb shifts pos on the xz plane by up to CellPerturbStrength.
func (p Perturber) Perturb(pos mgl32.Vec3) mgl32.Vec3 {
	if p.Source == nil {
		return pos
	}
	s := p.Sample(pos)
	return mgl32.Vec3{
		pos.X() + (s.X()*2-1)*CellPerturbStrength,
		pos.Y(),
		pos.Z() + (s.Z()*2-1)*CellPerturbStrength,
	}
}

// CellPosition is the centre of c with its height jittered by up to
// ElevationPerturbStrength. Positions are derived, never stored, so a
// loaded grid reproduces them from elevation alone.
func (p Perturber) CellPosition(c *grid.Cell) mgl32.Vec3 {
	pos := CellCenter(c.Coordinates(), c.Elevation())
	if p.Source == nil {
		return pos
	}
	s := p.Sample(pos)
	pos[1] += (s.Y()*2 - 1) * ElevationPerturbStrength
	return pos
}

// Yaw is a noise-driven rotation in degrees for props placed at pos.
func (p Perturber) Yaw(pos mgl32.Vec3) float32 {
	if p.Source == nil {
		return 0
	}
	return 360 * p.Sample(pos).X()
}
