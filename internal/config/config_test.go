package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"width not multiple of chunk", func(c *Config) { c.Width = 12 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"too small", func(c *Config) { c.ChunkSizeX, c.ChunkSizeZ, c.Width, c.Height = 1, 1, 5, 5 }},
		{"zero chunk", func(c *Config) { c.ChunkSizeX = 0 }},
		{"jitter above one", func(c *Config) { c.JitterProbability = 1.5 }},
		{"negative sink", func(c *Config) { c.SinkProbability = -0.1 }},
		{"land above 100", func(c *Config) { c.LandPercentage = 101 }},
		{"patch min zero", func(c *Config) { c.PatchSizeMin = 0 }},
		{"patch max below min", func(c *Config) { c.PatchSizeMax = c.PatchSizeMin - 1 }},
		{"positive minimum", func(c *Config) { c.ElevationMinimum = 1 }},
		{"maximum too high", func(c *Config) { c.ElevationMaximum = 200 }},
		{"water at minimum", func(c *Config) { c.WaterLevel = c.ElevationMinimum }},
		{"water at zero", func(c *Config) { c.WaterLevel = 0 }},
		{"water above maximum", func(c *Config) { c.WaterLevel = c.ElevationMaximum + 1 }},
		{"short terrain map", func(c *Config) { c.TerrainMap = c.TerrainMap[:3] }},
		{"terrain out of byte", func(c *Config) { c.TerrainMap[0] = 256 }},
		{"negative spawns", func(c *Config) { c.SpawnCount = -1 }},
		{"negative patch limit", func(c *Config) { c.PatchLimit = -1 }},
		{"unknown noise", func(c *Config) { c.Noise = "value" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestDefaultTerrainMap(t *testing.T) {
	m := DefaultTerrainMap(-2, 16)
	require.Len(t, m, 19)

	tests := []struct {
		elevation int
		want      int
	}{
		{-2, 2}, {0, 2}, {1, 0}, {4, 0}, {5, 1}, {10, 1}, {11, 4}, {16, 4},
	}
	for _, tt := range tests {
		if got := m[tt.elevation+2]; got != tt.want {
			t.Errorf("terrain at elevation %d = %d, want %d", tt.elevation, got, tt.want)
		}
	}
	require.Nil(t, DefaultTerrainMap(3, 2))
}

func TestMergeKeepsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 20
	cfg.Seed = 7
	cfg.UseFixedSeed = true

	file := DefaultConfig()
	file.Width = 50
	file.Height = 40
	file.Seed = 99
	file.UseFixedSeed = false
	file.PatchSizeMin = 10
	file.Noise = NoisePerlin

	Merge(cfg, file, map[string]bool{"width": true, "seed": true})

	require.Equal(t, 20, cfg.Width)
	require.Equal(t, int64(7), cfg.Seed)
	require.True(t, cfg.UseFixedSeed)
	require.Equal(t, 40, cfg.Height)
	require.Equal(t, 10, cfg.PatchSizeMin)
	require.Equal(t, NoisePerlin, cfg.Noise)

	// The terrain map is copied, not aliased.
	file.TerrainMap[0] = 9
	require.NotEqual(t, 9, cfg.TerrainMap[0])
}
