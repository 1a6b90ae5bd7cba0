package grid

// ChunkPos identifies a chunk by its X and Z chunk coordinates.
type ChunkPos struct{ X, Z int }

// Chunk is a fixed-size rectangle of cells batched together for meshing.
type Chunk struct {
	pos   ChunkPos
	index int
	cells []*Cell // index = localZ*sizeX + localX
	dirty bool
}

// Pos returns the chunk's position in chunk coordinates.
func (ch *Chunk) Pos() ChunkPos { return ch.pos }

// Index returns the row-major index of the chunk in its grid.
func (ch *Chunk) Index() int { return ch.index }

// Cells returns the member cells in local row-major order.
func (ch *Chunk) Cells() []*Cell { return ch.cells }

// Dirty reports whether the chunk needs re-triangulation.
func (ch *Chunk) Dirty() bool { return ch.dirty }

func (ch *Chunk) markDirty() { ch.dirty = true }
