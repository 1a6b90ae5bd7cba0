package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/terracegen/internal/config"
	"github.com/OCharnyshevich/terracegen/internal/rng"
	"github.com/OCharnyshevich/terracegen/internal/sculpt"
)

func openTemp(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "maps.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutGet(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	cfg := config.DefaultConfig()
	cfg.LandPercentage = 40
	seed := int64(11)
	res, err := sculpt.New(cfg, rng.New(0), nil).Generate(20, 10, &seed)
	require.NoError(t, err)

	put, err := c.Put(ctx, "coast", res.Seed, res.Grid, cfg)
	require.NoError(t, err)
	_, err = uuid.Parse(put.ID)
	require.NoError(t, err)

	got, err := c.Get(ctx, put.ID)
	require.NoError(t, err)
	require.Equal(t, "coast", got.Name)
	require.Equal(t, int64(11), got.Seed)
	require.Equal(t, 20, got.Width)
	require.Equal(t, 10, got.Height)
	require.WithinDuration(t, put.CreatedAt, got.CreatedAt, time.Second)

	settings, err := got.Settings()
	require.NoError(t, err)
	require.Equal(t, 40, settings.LandPercentage)

	g, err := got.Grid()
	require.NoError(t, err)
	for i, cell := range res.Grid.Cells() {
		o := g.CellAt(i)
		require.Equal(t, cell.Elevation(), o.Elevation(), "cell %d", i)
		require.Equal(t, cell.TerrainType(), o.TerrainType(), "cell %d", i)
		require.Equal(t, cell.WaterLevel(), o.WaterLevel(), "cell %d", i)
		require.Equal(t, cell.FeatureType(), o.FeatureType(), "cell %d", i)
	}
}

func TestGetMissing(t *testing.T) {
	c := openTemp(t)
	_, err := c.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	c.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	cfg := config.DefaultConfig()
	var ids []string
	for i, name := range []string{"first", "second", "third"} {
		seed := int64(i)
		res, err := sculpt.New(cfg, rng.New(0), nil).Generate(10, 10, &seed)
		require.NoError(t, err)
		e, err := c.Put(ctx, name, seed, res.Grid, cfg)
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, e := range list {
		require.Equal(t, ids[i], e.ID)
		require.Empty(t, e.Cells)
		require.Empty(t, e.Config)
	}

	require.NoError(t, c.Delete(ctx, ids[1]))
	require.ErrorIs(t, c.Delete(ctx, ids[1]), ErrNotFound)

	list, err = c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "first", list[0].Name)
	require.Equal(t, "third", list[1].Name)
}
