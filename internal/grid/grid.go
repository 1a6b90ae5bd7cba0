// Package grid holds the cell array of a map, its 4-connected adjacency
// and the partition of cells into mesh chunks.
package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned for sizes that are not positive
// multiples of the chunk size.
var ErrInvalidDimensions = errors.New("grid: invalid dimensions")

// Grid owns cellCountX × cellCountZ cells in row-major order.
type Grid struct {
	cellCountX, cellCountZ   int
	chunkSizeX, chunkSizeZ   int
	chunkCountX, chunkCountZ int

	cells  []*Cell
	chunks []*Chunk
}

// New creates a grid of flat cells at elevation 0. Every chunk starts dirty.
func New(cellCountX, cellCountZ, chunkSizeX, chunkSizeZ int) (*Grid, error) {
	if chunkSizeX <= 0 || chunkSizeZ <= 0 ||
		cellCountX <= 0 || cellCountX%chunkSizeX != 0 ||
		cellCountZ <= 0 || cellCountZ%chunkSizeZ != 0 {
		return nil, fmt.Errorf("%w: %dx%d cells with %dx%d chunks",
			ErrInvalidDimensions, cellCountX, cellCountZ, chunkSizeX, chunkSizeZ)
	}

	g := &Grid{
		cellCountX:  cellCountX,
		cellCountZ:  cellCountZ,
		chunkSizeX:  chunkSizeX,
		chunkSizeZ:  chunkSizeZ,
		chunkCountX: cellCountX / chunkSizeX,
		chunkCountZ: cellCountZ / chunkSizeZ,
	}

	g.chunks = make([]*Chunk, g.chunkCountX*g.chunkCountZ)
	for z, i := 0, 0; z < g.chunkCountZ; z++ {
		for x := 0; x < g.chunkCountX; x++ {
			g.chunks[i] = &Chunk{
				pos:   ChunkPos{X: x, Z: z},
				index: i,
				cells: make([]*Cell, chunkSizeX*chunkSizeZ),
				dirty: true,
			}
			i++
		}
	}

	g.cells = make([]*Cell, cellCountX*cellCountZ)
	for z, i := 0, 0; z < cellCountZ; z++ {
		for x := 0; x < cellCountX; x++ {
			g.createCell(x, z, i)
			i++
		}
	}
	return g, nil
}

func (g *Grid) createCell(x, z, i int) {
	c := &Cell{coordinates: Coordinates{X: x, Z: z}, index: i}
	if x > 0 {
		c.SetNeighbor(West, g.cells[i-1])
	}
	if z > 0 {
		c.SetNeighbor(South, g.cells[i-g.cellCountX])
	}
	g.cells[i] = c

	chunkX, chunkZ := x/g.chunkSizeX, z/g.chunkSizeZ
	ch := g.chunks[chunkX+chunkZ*g.chunkCountX]
	localX, localZ := x-chunkX*g.chunkSizeX, z-chunkZ*g.chunkSizeZ
	ch.cells[localX+localZ*g.chunkSizeX] = c
	c.chunk = ch
}

// Width returns the number of cells along x.
func (g *Grid) Width() int { return g.cellCountX }

// Height returns the number of cells along z.
func (g *Grid) Height() int { return g.cellCountZ }

// ChunkSize returns the chunk dimensions in cells.
func (g *Grid) ChunkSize() (x, z int) { return g.chunkSizeX, g.chunkSizeZ }

// CellCount returns the total number of cells.
func (g *Grid) CellCount() int { return len(g.cells) }

// Cells exposes the backing slice in row-major order.
func (g *Grid) Cells() []*Cell { return g.cells }

// CellAt returns the cell at row-major index i.
func (g *Grid) CellAt(i int) *Cell { return g.cells[i] }

// Cell returns the cell at offset (x, z), or nil outside the grid.
func (g *Grid) Cell(x, z int) *Cell {
	if !g.InBounds(x, z) {
		return nil
	}
	return g.cells[x+z*g.cellCountX]
}

// CellAtCoordinates is Cell for a Coordinates value.
func (g *Grid) CellAtCoordinates(c Coordinates) *Cell {
	return g.Cell(c.X, c.Z)
}

// InBounds reports whether (x, z) lies within the grid.
func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && x < g.cellCountX && z >= 0 && z < g.cellCountZ
}

// Chunks returns every chunk in row-major order.
func (g *Grid) Chunks() []*Chunk { return g.chunks }

// ChunkAt returns the chunk at chunk position pos, or nil.
func (g *Grid) ChunkAt(pos ChunkPos) *Chunk {
	if pos.X < 0 || pos.X >= g.chunkCountX || pos.Z < 0 || pos.Z >= g.chunkCountZ {
		return nil
	}
	return g.chunks[pos.X+pos.Z*g.chunkCountX]
}

// ChunkPosOf maps a cell coordinate to its chunk position.
func (g *Grid) ChunkPosOf(c Coordinates) ChunkPos {
	return ChunkPos{X: c.X / g.chunkSizeX, Z: c.Z / g.chunkSizeZ}
}

// TakeDirty returns the dirty chunks and clears their flags.
func (g *Grid) TakeDirty() []*Chunk {
	var out []*Chunk
	for _, ch := range g.chunks {
		if ch.dirty {
			ch.dirty = false
			out = append(out, ch)
		}
	}
	return out
}

// MarkAllDirty flags every chunk for re-triangulation.
func (g *Grid) MarkAllDirty() {
	for _, ch := range g.chunks {
		ch.dirty = true
	}
}

// DistancesTo sets every cell's Distance to its Manhattan distance from c.
func (g *Grid) DistancesTo(c *Cell) {
	for _, other := range g.cells {
		other.Distance = c.coordinates.DistanceTo(other.coordinates)
	}
}

// ResetSearch clears the search state of every cell.
func (g *Grid) ResetSearch() {
	for _, c := range g.cells {
		c.Distance = 0
		c.SearchHeuristic = 0
		c.SearchPhase = 0
	}
}

// Restore sets a cell's persisted fields without dirtying chunks; callers
// loading a whole map should call MarkAllDirty afterwards.
func (g *Grid) Restore(i, terrain, elevation, water, feature int) {
	g.cells[i].restore(terrain, elevation, water, feature)
}
