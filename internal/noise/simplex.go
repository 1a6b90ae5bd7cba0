package noise

import "github.com/go-gl/mathgl/mgl32"

// 2D simplex noise after Ken Perlin's construction; raw output is in
// [-1, 1].

var grad2 = [12][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

// Simplex is a seeded simplex noise field.
type Simplex struct {
	perm [512]int

	// Frequency scales sample coordinates before lookup.
	Frequency float64
	// Octaves and Persistence control fractal layering in Sample.
	Octaves     int
	Persistence float64
}

// NewSimplex builds a field whose permutation table is shuffled by an LCG
// seeded with seed.
func NewSimplex(seed int64) *Simplex {
	s := &Simplex{Frequency: 4, Octaves: 3, Persistence: 0.5}

	var p [256]int
	for i := range p {
		p[i] = i
	}
	state := seed
	for i := 255; i > 0; i-- {
		state = state*6364136223846793005 + 1442695040888963407
		j := int((state>>33)&0x7FFFFFFF) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := range s.perm {
		s.perm[i] = p[i&255]
	}
	return s
}

// Noise2D returns raw simplex noise at (x, y).
func (s *Simplex) Noise2D(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	skew := (x + y) * f2
	i := floor(x + skew)
	j := floor(y + skew)

	unskew := float64(i+j) * g2
	x0 := x - (float64(i) - unskew)
	y0 := y - (float64(j) - unskew)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	corners := [3][2]float64{
		{x0, y0},
		{x0 - float64(i1) + g2, y0 - float64(j1) + g2},
		{x0 - 1 + 2*g2, y0 - 1 + 2*g2},
	}
	ii, jj := i&255, j&255
	grads := [3]int{
		s.perm[ii+s.perm[jj]] % 12,
		s.perm[ii+i1+s.perm[jj+j1]] % 12,
		s.perm[ii+1+s.perm[jj+1]] % 12,
	}

	var n float64
	for k, c := range corners {
		t := 0.5 - c[0]*c[0] - c[1]*c[1]
		if t < 0 {
			continue
		}
		t *= t
		g := grad2[grads[k]]
		n += t * t * (g[0]*c[0] + g[1]*c[1])
	}
	return 70 * n
}

// Fractal layers Octaves of Noise2D, doubling frequency each octave.
// The result stays in [-1, 1].
func (s *Simplex) Fractal(x, y float64) float64 {
	octaves := max(s.Octaves, 1)
	var total, norm float64
	amplitude, frequency := 1.0, 1.0
	for range octaves {
		total += s.Noise2D(x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= s.Persistence
		frequency *= 2
	}
	return total / norm
}

// Sample implements Source.
func (s *Simplex) Sample(x, z float32) mgl32.Vec4 {
	fx, fz := float64(x)*s.Frequency, float64(z)*s.Frequency
	var v mgl32.Vec4
	for c, off := range channelOffsets {
		v[c] = unit(s.Fractal(fx+off, fz-off))
	}
	return v
}

func floor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
