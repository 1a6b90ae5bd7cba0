package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/terracegen/internal/config"
	"github.com/OCharnyshevich/terracegen/internal/mapfile"
	"github.com/OCharnyshevich/terracegen/internal/rng"
	"github.com/OCharnyshevich/terracegen/internal/sculpt"
)

func TestNewCreatesDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := New(dir, nil)
	require.NoError(t, err)
	require.Equal(t, dir, s.Dir())

	for _, sub := range []string{"maps", "presets"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestConfigRoundTrip(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	// Missing file leaves the config untouched.
	cfg := config.DefaultConfig()
	require.NoError(t, s.LoadConfig(cfg))
	require.Equal(t, config.DefaultConfig(), cfg)

	cfg.LandPercentage = 35
	cfg.Noise = config.NoisePerlin
	require.NoError(t, s.SaveConfig(cfg))

	_, err = os.Stat(filepath.Join(s.Dir(), "config.json.tmp"))
	require.True(t, os.IsNotExist(err), "temp file left behind")

	loaded := config.DefaultConfig()
	require.NoError(t, s.LoadConfig(loaded))
	require.Equal(t, cfg, loaded)
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "config.json"), []byte("{"), 0o644))
	require.Error(t, s.LoadConfig(config.DefaultConfig()))
}

func TestLoadPreset(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	require.Error(t, s.LoadPreset("islands", config.DefaultConfig()))

	body := []byte(`{"land_percentage": 20, "sink_probability": 0.35}`)
	require.NoError(t, os.WriteFile(filepath.Join(s.PresetDir(), "islands.json"), body, 0o644))

	cfg := config.DefaultConfig()
	require.NoError(t, s.LoadPreset("islands", cfg))
	require.Equal(t, 20, cfg.LandPercentage)
	require.Equal(t, 0.35, cfg.SinkProbability)
	require.Equal(t, 3, cfg.WaterLevel)
}

func TestMapRoundTrip(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	seed := int64(7)
	res, err := sculpt.New(config.DefaultConfig(), rng.New(0), nil).Generate(15, 10, &seed)
	require.NoError(t, err)

	path, err := s.SaveMap("test", res.Grid, res.Seed)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(s.Dir(), "maps", "test.map"), path)

	g, h, err := s.LoadMap("test", mapfile.Range{Min: -2, Max: 16})
	require.NoError(t, err)
	require.Equal(t, int64(7), h.Seed)
	require.Equal(t, 15, g.Width())
	require.Equal(t, 10, g.Height())
	for i, c := range res.Grid.Cells() {
		o := g.CellAt(i)
		require.Equal(t, c.Elevation(), o.Elevation(), "cell %d", i)
		require.Equal(t, c.TerrainType(), o.TerrainType(), "cell %d", i)
		require.Equal(t, c.WaterLevel(), o.WaterLevel(), "cell %d", i)
		require.Equal(t, c.FeatureType(), o.FeatureType(), "cell %d", i)
	}

	names, err := s.Maps()
	require.NoError(t, err)
	require.Equal(t, []string{"test"}, names)
}

func TestMapNames(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		ok   bool
	}{
		{"island", true},
		{"", false},
		{"../escape", false},
		{"a/b", false},
		{".hidden", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.mapPath(tt.name)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestLoadMissingMap(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	_, _, err = s.LoadMap("nope", mapfile.FullRange)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteMapKeepsOldFileOnError(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	seed := int64(3)
	res, err := sculpt.New(config.DefaultConfig(), rng.New(0), nil).Generate(10, 10, &seed)
	require.NoError(t, err)
	_, err = s.SaveMap("edited", res.Grid, seed)
	require.NoError(t, err)

	_, err = s.WriteMap("edited", func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("interrupted")
	})
	require.ErrorContains(t, err, "interrupted")

	_, h, err := s.LoadMap("edited", mapfile.FullRange)
	require.NoError(t, err)
	require.Equal(t, int64(3), h.Seed)
}
