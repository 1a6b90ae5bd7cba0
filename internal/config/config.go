package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Noise source kinds accepted by Config.Noise.
const (
	NoiseSimplex = "simplex"
	NoisePerlin  = "perlin"
)

// Config holds map dimensions and sculptor tuning.
type Config struct {
	Width      int `json:"width"`
	Height     int `json:"height"`
	ChunkSizeX int `json:"chunk_size_x"`
	ChunkSizeZ int `json:"chunk_size_z"`

	Seed         int64 `json:"seed"`
	UseFixedSeed bool  `json:"use_fixed_seed"`

	JitterProbability float64 `json:"jitter_probability"`
	PatchSizeMin      int     `json:"patch_size_min"`
	PatchSizeMax      int     `json:"patch_size_max"`
	LandPercentage    int     `json:"land_percentage"`
	WaterLevel        int     `json:"water_level"`

	HighRiseProbability float64 `json:"high_rise_probability"`
	SinkProbability     float64 `json:"sink_probability"`

	ElevationMinimum int `json:"elevation_minimum"`
	ElevationMaximum int `json:"elevation_maximum"`

	// TerrainMap is indexed by elevation - ElevationMinimum.
	TerrainMap []int `json:"terrain_map"`

	ChangeTerrainProbability float64 `json:"change_terrain_probability"`
	GrowFeatureProbability   float64 `json:"grow_feature_probability"`

	SpawnCount int `json:"spawn_count"`
	// PatchLimit caps the number of patches in one run (0 = unlimited).
	PatchLimit int `json:"patch_limit"`

	Noise     string `json:"noise"` // "simplex" or "perlin"
	NoiseSeed int64  `json:"noise_seed"`
	Perturb   bool   `json:"perturb"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Width:                    100,
		Height:                   100,
		ChunkSizeX:               5,
		ChunkSizeZ:               5,
		JitterProbability:        0.25,
		PatchSizeMin:             30,
		PatchSizeMax:             100,
		LandPercentage:           50,
		WaterLevel:               3,
		HighRiseProbability:      0.25,
		SinkProbability:          0.2,
		ElevationMinimum:         -2,
		ElevationMaximum:         16,
		TerrainMap:               DefaultTerrainMap(-2, 16),
		ChangeTerrainProbability: 0.8,
		GrowFeatureProbability:   0.1,
		SpawnCount:               10,
		PatchLimit:               1_000_000,
		Noise:                    NoiseSimplex,
		Perturb:                  true,
	}
}

// DefaultTerrainMap builds a terrain lookup for [lo, hi]: mud below zero,
// sand up to 4, grass up to 10 and rock above.
func DefaultTerrainMap(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	m := make([]int, 0, hi-lo+1)
	for e := lo; e <= hi; e++ {
		switch {
		case e < 1:
			m = append(m, 2) // mud
		case e <= 4:
			m = append(m, 0) // sand
		case e <= 10:
			m = append(m, 1) // grass
		default:
			m = append(m, 4) // rock
		}
	}
	return m
}

// Validate reports the first problem found, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if c.ChunkSizeX <= 0 || c.ChunkSizeZ <= 0 {
		return fmt.Errorf("%w: chunk size %dx%d", ErrInvalid, c.ChunkSizeX, c.ChunkSizeZ)
	}
	if err := c.ValidateSize(c.Width, c.Height); err != nil {
		return err
	}

	probs := []struct {
		name string
		v    float64
	}{
		{"jitter_probability", c.JitterProbability},
		{"high_rise_probability", c.HighRiseProbability},
		{"sink_probability", c.SinkProbability},
		{"change_terrain_probability", c.ChangeTerrainProbability},
		{"grow_feature_probability", c.GrowFeatureProbability},
	}
	for _, p := range probs {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("%w: %s %v not in [0,1]", ErrInvalid, p.name, p.v)
		}
	}

	if c.LandPercentage < 0 || c.LandPercentage > 100 {
		return fmt.Errorf("%w: land_percentage %d not in [0,100]", ErrInvalid, c.LandPercentage)
	}
	if c.PatchSizeMin < 1 || c.PatchSizeMax < c.PatchSizeMin {
		return fmt.Errorf("%w: patch size range [%d,%d]", ErrInvalid, c.PatchSizeMin, c.PatchSizeMax)
	}

	// Elevations are persisted as a byte with a +127 bias.
	if c.ElevationMinimum < -127 || c.ElevationMaximum > 128 ||
		c.ElevationMinimum > 0 || c.ElevationMaximum < 0 {
		return fmt.Errorf("%w: elevation range [%d,%d]", ErrInvalid, c.ElevationMinimum, c.ElevationMaximum)
	}
	// Cells start at elevation 0, so a water level of at least 1 makes
	// the whole map start underwater and the land budget exact.
	if c.WaterLevel < 1 || c.WaterLevel > c.ElevationMaximum {
		return fmt.Errorf("%w: water_level %d outside [1,%d]",
			ErrInvalid, c.WaterLevel, c.ElevationMaximum)
	}
	if want := c.ElevationMaximum - c.ElevationMinimum + 1; len(c.TerrainMap) != want {
		return fmt.Errorf("%w: terrain_map has %d entries, want %d", ErrInvalid, len(c.TerrainMap), want)
	}
	for i, t := range c.TerrainMap {
		if t < 0 || t > 255 {
			return fmt.Errorf("%w: terrain_map[%d] = %d", ErrInvalid, i, t)
		}
	}

	if c.SpawnCount < 0 {
		return fmt.Errorf("%w: spawn_count %d", ErrInvalid, c.SpawnCount)
	}
	if c.PatchLimit < 0 {
		return fmt.Errorf("%w: patch_limit %d", ErrInvalid, c.PatchLimit)
	}
	switch c.Noise {
	case NoiseSimplex, NoisePerlin:
	default:
		return fmt.Errorf("%w: unknown noise %q", ErrInvalid, c.Noise)
	}
	return nil
}

// ValidateSize checks map dimensions against the chunk size. The chamber
// carved at the south edge spans seven columns and five rows.
func (c *Config) ValidateSize(width, height int) error {
	if width <= 0 || height <= 0 ||
		width%c.ChunkSizeX != 0 || height%c.ChunkSizeZ != 0 {
		return fmt.Errorf("%w: map size %dx%d with chunk size %dx%d",
			ErrInvalid, width, height, c.ChunkSizeX, c.ChunkSizeZ)
	}
	if width < 7 || height < 6 {
		return fmt.Errorf("%w: map size %dx%d smaller than 7x6", ErrInvalid, width, height)
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
		cfg.UseFixedSeed = fromFile.UseFixedSeed
	}
	if !explicitFlags["land"] {
		cfg.LandPercentage = fromFile.LandPercentage
	}
	if !explicitFlags["water"] {
		cfg.WaterLevel = fromFile.WaterLevel
	}
	if !explicitFlags["noise"] {
		cfg.Noise = fromFile.Noise
	}
	if !explicitFlags["perturb"] {
		cfg.Perturb = fromFile.Perturb
	}
	if !explicitFlags["spawns"] {
		cfg.SpawnCount = fromFile.SpawnCount
	}

	// Tuning knobs have no flags.
	cfg.ChunkSizeX = fromFile.ChunkSizeX
	cfg.ChunkSizeZ = fromFile.ChunkSizeZ
	cfg.JitterProbability = fromFile.JitterProbability
	cfg.PatchSizeMin = fromFile.PatchSizeMin
	cfg.PatchSizeMax = fromFile.PatchSizeMax
	cfg.HighRiseProbability = fromFile.HighRiseProbability
	cfg.SinkProbability = fromFile.SinkProbability
	cfg.ElevationMinimum = fromFile.ElevationMinimum
	cfg.ElevationMaximum = fromFile.ElevationMaximum
	cfg.TerrainMap = append([]int(nil), fromFile.TerrainMap...)
	cfg.ChangeTerrainProbability = fromFile.ChangeTerrainProbability
	cfg.GrowFeatureProbability = fromFile.GrowFeatureProbability
	cfg.PatchLimit = fromFile.PatchLimit
	cfg.NoiseSeed = fromFile.NoiseSeed
}
