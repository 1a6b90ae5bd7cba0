// Package mapfile encodes grids for storage: a flat 4 bytes per cell
// record stream, and a container that prefixes it with a header and
// compresses it.
package mapfile

import (
	"errors"
	"fmt"

	"github.com/OCharnyshevich/terracegen/internal/grid"
)

var (
	// ErrMalformed is returned for data that cannot be decoded.
	ErrMalformed = errors.New("mapfile: malformed data")
	// ErrOutOfRange is returned when a cell cannot be represented.
	ErrOutOfRange = errors.New("mapfile: value out of range")
)

// RecordSize is the number of bytes stored per cell: terrain, biased
// elevation, biased water level, feature.
const RecordSize = 4

const bias = 127

// Range bounds the elevations and water levels accepted on decode.
type Range struct{ Min, Max int }

// FullRange is everything a record can hold.
var FullRange = Range{Min: -bias, Max: 255 - bias}

func (r Range) contains(v int) bool { return v >= r.Min && v <= r.Max }

// Encode serialises every cell of g in row-major order.
func Encode(g *grid.Grid) ([]byte, error) {
	out := make([]byte, 0, g.CellCount()*RecordSize)
	for _, c := range g.Cells() {
		t, e, w, f := c.TerrainType(), c.Elevation(), c.WaterLevel(), c.FeatureType()
		switch {
		case t < 0 || t > 255:
			return nil, fmt.Errorf("%w: cell %v terrain %d", ErrOutOfRange, c.Coordinates(), t)
		case f < 0 || f > 255:
			return nil, fmt.Errorf("%w: cell %v feature %d", ErrOutOfRange, c.Coordinates(), f)
		case !FullRange.contains(e):
			return nil, fmt.Errorf("%w: cell %v elevation %d", ErrOutOfRange, c.Coordinates(), e)
		case !FullRange.contains(w):
			return nil, fmt.Errorf("%w: cell %v water level %d", ErrOutOfRange, c.Coordinates(), w)
		}
		out = append(out, byte(t), byte(e+bias), byte(w+bias), byte(f))
	}
	return out, nil
}

// Decode restores every cell of g from data. Terrain and feature are taken
// verbatim; elevation and water level must fall inside r. g is left
// untouched on error, and every chunk is marked dirty on success.
func Decode(g *grid.Grid, data []byte, r Range) error {
	n := g.CellCount()
	if len(data) < n*RecordSize {
		return fmt.Errorf("%w: %d bytes for %d cells", ErrMalformed, len(data), n)
	}
	for i := 0; i < n; i++ {
		rec := data[i*RecordSize:]
		if e := int(rec[1]) - bias; !r.contains(e) {
			return fmt.Errorf("%w: cell %d elevation %d outside [%d,%d]", ErrMalformed, i, e, r.Min, r.Max)
		}
		if w := int(rec[2]) - bias; !r.contains(w) {
			return fmt.Errorf("%w: cell %d water level %d outside [%d,%d]", ErrMalformed, i, w, r.Min, r.Max)
		}
	}
	for i := 0; i < n; i++ {
		rec := data[i*RecordSize:]
		g.Restore(i, int(rec[0]), int(rec[1])-bias, int(rec[2])-bias, int(rec[3]))
	}
	g.MarkAllDirty()
	return nil
}
