package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/terracegen/internal/catalog"
	"github.com/OCharnyshevich/terracegen/internal/config"
	"github.com/OCharnyshevich/terracegen/internal/mapfile"
	"github.com/OCharnyshevich/terracegen/internal/storage"
)

func testConfig() (*config.Config, map[string]bool) {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Seed = 20, 15, 5
	return cfg, map[string]bool{"width": true, "height": true, "seed": true}
}

func TestRunGenerateLoadEditCatalog(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	catPath := filepath.Join(dir, "maps.sqlite")
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	cfg, explicit := testConfig()
	require.NoError(t, run(ctx, cfg, explicit, options{dir: dir, name: "island", catalog: catPath}, log))

	st, err := storage.New(dir, nil)
	require.NoError(t, err)
	names, err := st.Maps()
	require.NoError(t, err)
	require.Equal(t, []string{"island"}, names)

	cat, err := catalog.Open(catPath)
	require.NoError(t, err)
	entries, err := cat.List(ctx)
	require.NoError(t, err)
	require.NoError(t, cat.Close())
	require.Len(t, entries, 1)
	id := entries[0].ID
	require.Equal(t, int64(5), entries[0].Seed)

	// Load the saved map, paint a cell, and report it.
	var edits editList
	require.NoError(t, edits.Set("3,4,elevation=7,terrain=2"))
	cfg, explicit = testConfig()
	opts := options{dir: dir, name: "island", load: "island", edits: edits, inspect: "3,4"}
	require.NoError(t, run(ctx, cfg, explicit, opts, log))

	g, h, err := st.LoadMap("island", mapfile.FullRange)
	require.NoError(t, err)
	require.Equal(t, int64(5), h.Seed)
	require.Equal(t, 7, g.Cell(3, 4).Elevation())
	require.Equal(t, 2, g.Cell(3, 4).TerrainType())
	// Spawn sits at (10, 2).
	require.Contains(t, logs.String(), "spawn_distance=9")

	// Rebuild the catalogued copy and export it; the world position of
	// cell (3,4) resolves to the same cell.
	logs.Reset()
	objPath := filepath.Join(dir, "island.obj")
	cfg, explicit = testConfig()
	opts = options{dir: dir, name: "copy", catalog: catPath, fromCatalog: id, obj: objPath, at: "61,0,79"}
	require.NoError(t, run(ctx, cfg, explicit, opts, log))
	require.Contains(t, logs.String(), "spawn_distance=9")
	info, err := os.Stat(objPath)
	require.NoError(t, err)
	require.Positive(t, info.Size())

	cfg, explicit = testConfig()
	require.NoError(t, run(ctx, cfg, explicit, options{dir: dir, catalog: catPath, list: true}, log))

	cfg, explicit = testConfig()
	require.NoError(t, run(ctx, cfg, explicit, options{dir: dir, catalog: catPath, remove: id}, log))
	cfg, explicit = testConfig()
	err = run(ctx, cfg, explicit, options{dir: dir, catalog: catPath, remove: id}, log)
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRunNeedsCatalog(t *testing.T) {
	dir := t.TempDir()
	log := slog.New(slog.DiscardHandler)
	for _, opts := range []options{
		{dir: dir, list: true},
		{dir: dir, remove: "x"},
		{dir: dir, fromCatalog: "x"},
	} {
		cfg, explicit := testConfig()
		require.ErrorIs(t, run(context.Background(), cfg, explicit, opts, log), errNeedCatalog)
	}
}

func TestRunRejectsBadEdit(t *testing.T) {
	dir := t.TempDir()
	log := slog.New(slog.DiscardHandler)

	var edits editList
	require.NoError(t, edits.Set("3,4,elevation=99"))
	cfg, explicit := testConfig()
	require.Error(t, run(context.Background(), cfg, explicit, options{dir: dir, name: "m", edits: edits}, log))
}
