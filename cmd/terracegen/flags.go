package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/terracegen/internal/grid"
)

// cellEdit is one -edit value: a cell and the fields to paint onto it.
type cellEdit struct {
	cell  grid.Coordinates
	brush grid.Brush
}

// editList collects repeated -edit flags of the form
// x,z,elevation=N,terrain=N,water=N,feature=N (fields optional).
type editList []cellEdit

func (l *editList) String() string {
	parts := make([]string, len(*l))
	for i, e := range *l {
		parts[i] = e.cell.String()
	}
	return strings.Join(parts, " ")
}

func (l *editList) Set(v string) error {
	fields := strings.Split(v, ",")
	if len(fields) < 3 {
		return fmt.Errorf("edit %q: want x,z,field=value", v)
	}
	c, err := parseCell(strings.Join(fields[:2], ","))
	if err != nil {
		return err
	}
	e := cellEdit{cell: c}
	for _, f := range fields[2:] {
		key, raw, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("edit %q: field %q is not key=value", v, f)
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("edit %q: %s: %w", v, key, err)
		}
		switch strings.TrimSpace(key) {
		case "elevation":
			e.brush.Elevation = &n
		case "terrain":
			e.brush.TerrainType = &n
		case "water":
			e.brush.WaterLevel = &n
		case "feature":
			e.brush.FeatureType = &n
		default:
			return fmt.Errorf("edit %q: unknown field %q", v, key)
		}
	}
	*l = append(*l, e)
	return nil
}

// parseCell reads "x,z".
func parseCell(v string) (grid.Coordinates, error) {
	xs, zs, ok := strings.Cut(v, ",")
	if !ok {
		return grid.Coordinates{}, fmt.Errorf("cell %q: want x,z", v)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Coordinates{}, fmt.Errorf("cell %q: %w", v, err)
	}
	z, err := strconv.Atoi(strings.TrimSpace(zs))
	if err != nil {
		return grid.Coordinates{}, fmt.Errorf("cell %q: %w", v, err)
	}
	return grid.Coordinates{X: x, Z: z}, nil
}

// parsePosition reads a world-space "x,y,z".
func parsePosition(v string) (mgl32.Vec3, error) {
	fields := strings.Split(v, ",")
	if len(fields) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("position %q: want x,y,z", v)
	}
	var p mgl32.Vec3
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("position %q: %w", v, err)
		}
		p[i] = float32(n)
	}
	return p, nil
}
