package noise

import (
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// Perlin is a classic gradient noise field backed by go-perlin.
type Perlin struct {
	gen       *perlin.Perlin
	Frequency float64
}

// NewPerlin returns a three octave Perlin field seeded with seed.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{gen: perlin.NewPerlin(2, 2, 3, seed), Frequency: 4}
}

// Sample implements Source.
func (p *Perlin) Sample(x, z float32) mgl32.Vec4 {
	fx, fz := float64(x)*p.Frequency, float64(z)*p.Frequency
	var v mgl32.Vec4
	for c, off := range channelOffsets {
		v[c] = unit(p.gen.Noise2D(fx+off, fz-off))
	}
	return v
}
