package world

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/OCharnyshevich/terracegen/internal/grid"
	"github.com/OCharnyshevich/terracegen/internal/mapfile"
	"github.com/OCharnyshevich/terracegen/internal/mesh"
)

var (
	// ErrOutside is returned for edits that address no cell.
	ErrOutside = errors.New("world: coordinates outside the map")
	// ErrInvalidEdit is returned for brushes the map file format cannot
	// store.
	ErrInvalidEdit = errors.New("world: invalid edit")
)

// World owns a finished grid and caches one mesh per chunk. Edits
// invalidate only the chunks they touch.
type World struct {
	mu      sync.RWMutex
	grid    *grid.Grid
	tri     *mesh.Triangulator
	limits  mapfile.Range
	meshes  map[grid.ChunkPos]*mesh.ChunkMesh
	version uint64
	log     *slog.Logger
}

// NewWorld wraps g. Elevations and water levels written by Edit must stay
// inside limits.
func NewWorld(g *grid.Grid, tri *mesh.Triangulator, limits mapfile.Range, log *slog.Logger) *World {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	g.TakeDirty()
	return &World{
		grid:   g,
		tri:    tri,
		limits: limits,
		meshes: make(map[grid.ChunkPos]*mesh.ChunkMesh),
		log:    log,
	}
}

// Size returns the map size in cells.
func (w *World) Size() (width, height int) {
	return w.grid.Width(), w.grid.Height()
}

// ChunkPosOf returns the chunk holding the cell at c.
func (w *World) ChunkPosOf(c grid.Coordinates) grid.ChunkPos {
	return w.grid.ChunkPosOf(c)
}

// DistancesFrom sets every cell's Distance to its distance from the cell
// at c.
func (w *World) DistancesFrom(c grid.Coordinates) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	cell := w.grid.CellAtCoordinates(c)
	if cell == nil {
		return fmt.Errorf("%w: %v", ErrOutside, c)
	}
	w.grid.DistancesTo(cell)
	return nil
}

// Inspect calls fn with the cell at c under a read lock. fn must not keep
// the cell or modify it.
func (w *World) Inspect(c grid.Coordinates, fn func(*grid.Cell)) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	cell := w.grid.CellAtCoordinates(c)
	if cell == nil {
		return fmt.Errorf("%w: %v", ErrOutside, c)
	}
	fn(cell)
	return nil
}

// Edit paints b onto the cell at c and drops the cached meshes of every
// chunk the change reaches.
func (w *World) Edit(c grid.Coordinates, b grid.Brush) error {
	if err := w.check(b); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	cell := w.grid.CellAtCoordinates(c)
	if cell == nil {
		return fmt.Errorf("%w: %v", ErrOutside, c)
	}
	b.Apply(cell)

	dirty := w.grid.TakeDirty()
	for _, ch := range dirty {
		delete(w.meshes, ch.Pos())
	}
	if len(dirty) > 0 {
		w.version++
	}
	w.log.Debug("edit cell", "cell", c, "dirty_chunks", len(dirty))
	return nil
}

func (w *World) check(b grid.Brush) error {
	for _, v := range []*int{b.Elevation, b.WaterLevel} {
		if v != nil && (*v < w.limits.Min || *v > w.limits.Max) {
			return fmt.Errorf("%w: %d outside [%d,%d]", ErrInvalidEdit, *v, w.limits.Min, w.limits.Max)
		}
	}
	// Terrain and feature indices are stored as one byte each.
	for _, v := range []*int{b.TerrainType, b.FeatureType} {
		if v != nil && (*v < 0 || *v > 255) {
			return fmt.Errorf("%w: index %d outside [0,255]", ErrInvalidEdit, *v)
		}
	}
	return nil
}

// Mesh returns the mesh of the chunk at pos, triangulating it if the cache
// has no current copy.
func (w *World) Mesh(pos grid.ChunkPos) (*mesh.ChunkMesh, error) {
	w.mu.RLock()
	if m, ok := w.meshes[pos]; ok {
		w.mu.RUnlock()
		return m, nil
	}
	ch := w.grid.ChunkAt(pos)
	if ch == nil {
		w.mu.RUnlock()
		return nil, fmt.Errorf("%w: chunk %v", ErrOutside, pos)
	}
	m := w.tri.Chunk(ch)
	version := w.version
	w.mu.RUnlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	// Double-check after acquiring write lock.
	if existing, ok := w.meshes[pos]; ok {
		return existing, nil
	}
	// An edit in between may have made m stale.
	if w.version != version {
		m = w.tri.Chunk(ch)
	}
	w.meshes[pos] = m
	return m, nil
}

// Rebuild triangulates every chunk in parallel, refreshes the cache and
// hands the meshes to sink in chunk order.
func (w *World) Rebuild(ctx context.Context, sink mesh.Sink) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	store := mesh.SinkFunc(func(m *mesh.ChunkMesh) error {
		w.meshes[m.Pos] = m
		if sink == nil {
			return nil
		}
		return sink.Apply(m)
	})
	if err := w.tri.TriangulateAll(ctx, w.grid.Chunks(), store); err != nil {
		return fmt.Errorf("world: rebuild: %w", err)
	}
	w.log.Info("world meshes rebuilt", "chunks", len(w.grid.Chunks()))
	return nil
}

// Cached reports how many chunk meshes are currently cached.
func (w *World) Cached() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.meshes)
}

// Save writes the map in the map file format.
func (w *World) Save(out io.Writer, seed int64) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return mapfile.Write(out, w.grid, seed)
}
