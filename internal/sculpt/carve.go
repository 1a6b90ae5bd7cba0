package sculpt

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/OCharnyshevich/terracegen/internal/grid"
)

// Chamber layout relative to the map's x midpoint.
const (
	chamberHalfWidth = 3
	chamberTopRow    = 4
	spawnRow         = 2
)

// carve walls the map perimeter, then digs the starting chamber at the
// south edge and a corridor running north out of it.
func (r *run) carve(res *Result) {
	w, h := r.grid.Width(), r.grid.Height()
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			if x == 0 || x == w-1 || z == 0 || z == h-1 {
				r.setWall(x, z)
			}
		}
	}

	mid := w / 2
	left, right := mid-chamberHalfWidth, mid+chamberHalfWidth
	for z := 1; z <= chamberTopRow; z++ {
		r.setWall(left, z)
		r.setWall(right, z)
	}
	for dx := 1; dx < chamberHalfWidth; dx++ {
		r.setWall(left+dx, chamberTopRow)
		r.setWall(right-dx, chamberTopRow)
	}

	floor := r.cfg.ElevationMinimum
	for z := 1; z < chamberTopRow; z++ {
		for dx := 1; dx < chamberHalfWidth; dx++ {
			r.setFloor(left+dx, z, floor)
			r.setFloor(right-dx, z, floor)
		}
		r.setFloor(mid, z, floor)
	}
	r.setFloor(mid, chamberTopRow, floor)

	// The corridor climbs one step per row while the next row is flooded
	// or no lower than the corridor.
	z := chamberTopRow
	for {
		next := r.grid.Cell(mid, z+1)
		if next == nil || !(next.IsUnderwater() || floor <= next.Elevation()) {
			break
		}
		floor = min(floor+1, r.cfg.ElevationMaximum)
		z++
		r.setWall(mid-1, z)
		r.setWall(mid+1, z)
		r.setFloor(mid, z, floor)
	}
	res.CorridorEnd = z
}

func (r *run) setWall(x, z int) {
	r.setFloor(x, z, r.cfg.ElevationMaximum)
}

// setFloor forces a structural cell: concrete, no feature and a water
// level at the minimum so it is never flooded.
func (r *run) setFloor(x, z, elevation int) {
	c := r.grid.Cell(x, z)
	c.SetElevation(elevation)
	c.SetTerrainType(grid.TerrainConcrete)
	c.SetFeatureType(grid.FeatureNone)
	c.SetWaterLevel(r.cfg.ElevationMinimum)
}

// SpawnCoordinates is the player start inside the chamber of a map of the
// given width.
func SpawnCoordinates(width int) grid.Coordinates {
	return grid.Coordinates{X: width / 2, Z: spawnRow}
}

// pickSpawns records the chamber spawn and draws distinct auxiliary cells.
func (r *run) pickSpawns(res *Result) {
	res.Spawn = r.grid.CellAtCoordinates(SpawnCoordinates(r.grid.Width()))

	count := min(r.cfg.SpawnCount, r.grid.CellCount())
	seen := mapset.New[*grid.Cell]()
	res.Auxiliary = make([]*grid.Cell, 0, count)
	for seen.Size() < count {
		c := r.randomCell()
		if seen.Has(c) {
			continue
		}
		seen.Put(c)
		res.Auxiliary = append(res.Auxiliary, c)
	}
}
