package grid

// Feature type indices.
const (
	FeatureNone  = 0
	FeatureTree  = 1
	FeatureTank  = 2
	FeatureBoard = 3
	FeatureTable = 4
)

// Terrain type indices.
const (
	TerrainSand     = 0
	TerrainGrass    = 1
	TerrainMud      = 2
	TerrainConcrete = 3
	TerrainRock     = 4
)

// Cell is one square of the map. Elevation, terrain, water level and
// feature changes mark the owning chunk (and neighbouring chunks that
// stitch against this cell) dirty.
type Cell struct {
	coordinates Coordinates
	index       int
	chunk       *Chunk

	elevation   int
	waterLevel  int
	terrainType int
	featureType int

	neighbors [4]*Cell

	// Search state owned by whoever runs the current flood fill.
	Distance        int
	SearchHeuristic int
	SearchPhase     int
}

// Coordinates returns the cell's grid position.
func (c *Cell) Coordinates() Coordinates { return c.coordinates }

// Index returns the row-major index of the cell in its grid.
func (c *Cell) Index() int { return c.index }

// Chunk returns the chunk the cell belongs to.
func (c *Cell) Chunk() *Chunk { return c.chunk }

// SearchPriority is Distance + SearchHeuristic.
func (c *Cell) SearchPriority() int { return c.Distance + c.SearchHeuristic }

func (c *Cell) Elevation() int { return c.elevation }

func (c *Cell) SetElevation(e int) {
	if c.elevation == e {
		return
	}
	c.elevation = e
	c.refresh(false)
}

func (c *Cell) WaterLevel() int { return c.waterLevel }

func (c *Cell) SetWaterLevel(level int) {
	if c.waterLevel == level {
		return
	}
	c.waterLevel = level
	c.refresh(false)
}

// IsUnderwater reports whether the water level is above the cell.
func (c *Cell) IsUnderwater() bool { return c.elevation < c.waterLevel }

func (c *Cell) TerrainType() int { return c.terrainType }

func (c *Cell) SetTerrainType(t int) {
	if c.terrainType == t {
		return
	}
	c.terrainType = t
	c.refresh(false)
}

func (c *Cell) FeatureType() int { return c.featureType }

func (c *Cell) SetFeatureType(f int) {
	if c.featureType == f {
		return
	}
	c.featureType = f
	c.refresh(true)
}

// Neighbor returns the adjacent cell in direction d, or nil at the map edge.
func (c *Cell) Neighbor(d Direction) *Cell {
	return c.neighbors[d]
}

// SetNeighbor links c and other in both directions.
func (c *Cell) SetNeighbor(d Direction, other *Cell) {
	c.neighbors[d] = other
	if other != nil {
		other.neighbors[d.Opposite()] = c
	}
}

// EdgeType classifies the edge between c and its neighbour in direction d.
// It panics if there is no neighbour.
func (c *Cell) EdgeType(d Direction) EdgeType {
	return ClassifyEdge(c.elevation, c.neighbors[d].elevation)
}

// refresh marks the chunks whose geometry depends on this cell. A cell
// is stitched into its neighbours' chunks along edges and corners, so
// unless selfOnly is set those chunks are dirtied too.
func (c *Cell) refresh(selfOnly bool) {
	if c.chunk == nil {
		return
	}
	c.chunk.markDirty()
	if selfOnly {
		return
	}
	prev := South
	for _, d := range Directions {
		n := c.neighbors[d]
		if n != nil && n.chunk != c.chunk {
			n.chunk.markDirty()
			if corner := n.neighbors[prev]; corner != nil && corner.chunk != c.chunk {
				corner.chunk.markDirty()
			}
		}
		prev = d
	}
}

// restore sets every persisted field without dirtying chunks.
func (c *Cell) restore(terrain, elevation, water, feature int) {
	c.terrainType = terrain
	c.elevation = elevation
	c.waterLevel = water
	c.featureType = feature
}
