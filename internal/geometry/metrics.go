// Package geometry holds the cell metrics shared by the triangulator and
// anything that maps between grid coordinates and world positions.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/terracegen/internal/grid"
)

const (
	// Radius is half the distance between neighbouring cell centres.
	Radius = 10
	// SolidFactor is the share of a cell's footprint covered by its own
	// flat quad; the rest is bridged to neighbours.
	SolidFactor = 0.75
	BlendFactor = 1 - SolidFactor

	ElevationStep        = Radius * 0.6
	WaterElevationOffset = -Radius * 0.2

	TerracesPerSlope = 2
	TerraceSteps     = TerracesPerSlope*2 + 1

	NoiseScale               = 0.003
	CellPerturbStrength      = Radius * 0.5
	ElevationPerturbStrength = Radius * 0.15
)

// Corners of a cell footprint relative to its centre, indexed so that
// Corners[d] and Corners[d.Next()] bound the edge facing direction d:
// south-west, north-west, north-east, south-east.
var Corners = [4]mgl32.Vec3{
	{-Radius, 0, -Radius},
	{-Radius, 0, Radius},
	{Radius, 0, Radius},
	{Radius, 0, -Radius},
}

// SolidCorner is the first corner of the solid quad edge facing d.
func SolidCorner(d grid.Direction) mgl32.Vec3 {
	return Corners[d].Mul(SolidFactor)
}

// Bridge is the offset from a solid edge facing d to the matching edge of
// the neighbour in that direction.
func Bridge(d grid.Direction) mgl32.Vec3 {
	return Corners[d].Add(Corners[d.Next()]).Mul(BlendFactor)
}

// ElevationY is the unperturbed height of elevation e.
func ElevationY(e int) float32 {
	return float32(e) * ElevationStep
}

// WaterSurfaceY is the height of the water surface for a water level.
func WaterSurfaceY(level int) float32 {
	return float32(level)*ElevationStep + WaterElevationOffset
}

// TerraceLerp interpolates step of TerraceSteps between a and b. The
// horizontal part is linear; the vertical part only advances on odd
// steps, which produces flat treads joined by risers.
func TerraceLerp(a, b mgl32.Vec3, step int) mgl32.Vec3 {
	h := float32(step) / TerraceSteps
	v := float32((step+1)/2) / (TerracesPerSlope + 1)
	return mgl32.Vec3{
		a.X() + (b.X()-a.X())*h,
		a.Y() + (b.Y()-a.Y())*v,
		a.Z() + (b.Z()-a.Z())*h,
	}
}

// TerraceLerpColor blends a toward b by step of TerraceSteps.
func TerraceLerpColor(a, b mgl32.Vec4, step int) mgl32.Vec4 {
	h := float32(step) / TerraceSteps
	return a.Add(b.Sub(a).Mul(h))
}

// CellCenter is the unperturbed centre of the cell at c with elevation e.
func CellCenter(c grid.Coordinates, e int) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X) * 2 * Radius, ElevationY(e), float32(c.Z) * 2 * Radius}
}

// CoordinatesFromPosition returns the cell whose centre is nearest to p on
// the xz plane.
func CoordinatesFromPosition(p mgl32.Vec3) grid.Coordinates {
	return grid.Coordinates{
		X: int(math.Round(float64(p.X() / (2 * Radius)))),
		Z: int(math.Round(float64(p.Z() / (2 * Radius)))),
	}
}
