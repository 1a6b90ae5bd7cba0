// Package noise provides the smooth random fields used to perturb mesh
// vertices. A Source returns four independent channels per sample, each
// in [0, 1], like a bilinear lookup into an RGBA noise texture.
package noise

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/terracegen/internal/config"
)

// ErrUnknownKind is returned by New for an unsupported source name.
var ErrUnknownKind = errors.New("noise: unknown kind")

// Source samples four noise channels at a point on the xz plane.
type Source interface {
	Sample(x, z float32) mgl32.Vec4
}

// channelOffsets decorrelate the four channels sampled from one field.
var channelOffsets = [4]float64{0, 173.31, -91.7, 311.13}

// New returns the source named by kind seeded with seed.
func New(kind string, seed int64) (Source, error) {
	switch kind {
	case config.NoiseSimplex, "":
		return NewSimplex(seed), nil
	case config.NoisePerlin:
		return NewPerlin(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// unit maps a value in roughly [-1, 1] into [0, 1].
func unit(v float64) float32 {
	u := float32((v + 1) * 0.5)
	switch {
	case u < 0:
		return 0
	case u > 1:
		return 1
	}
	return u
}
