package grid

// Brush is a set of values painted onto a cell. Nil fields are left alone.
type Brush struct {
	Elevation   *int
	TerrainType *int
	WaterLevel  *int
	FeatureType *int
}

// Apply paints the brush onto c.
func (b Brush) Apply(c *Cell) {
	if b.Elevation != nil {
		c.SetElevation(*b.Elevation)
	}
	if b.TerrainType != nil {
		c.SetTerrainType(*b.TerrainType)
	}
	if b.WaterLevel != nil {
		c.SetWaterLevel(*b.WaterLevel)
	}
	if b.FeatureType != nil {
		c.SetFeatureType(*b.FeatureType)
	}
}
