package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/terracegen/internal/grid"
)

func TestEditListSet(t *testing.T) {
	var l editList
	require.NoError(t, l.Set("3,4,elevation=7,terrain=2"))
	require.NoError(t, l.Set(" 1, 2 ,water=-1,feature=3"))
	require.Len(t, l, 2)

	first := l[0]
	require.Equal(t, grid.Coordinates{X: 3, Z: 4}, first.cell)
	require.Equal(t, 7, *first.brush.Elevation)
	require.Equal(t, 2, *first.brush.TerrainType)
	require.Nil(t, first.brush.WaterLevel)
	require.Nil(t, first.brush.FeatureType)

	second := l[1]
	require.Equal(t, grid.Coordinates{X: 1, Z: 2}, second.cell)
	require.Equal(t, -1, *second.brush.WaterLevel)
	require.Equal(t, 3, *second.brush.FeatureType)
	require.Nil(t, second.brush.Elevation)

	require.Equal(t, "(3, 4) (1, 2)", l.String())
}

func TestEditListRejects(t *testing.T) {
	tests := []string{
		"3,4",
		"3",
		"a,4,elevation=1",
		"3,4,elevation",
		"3,4,elevation=high",
		"3,4,colour=1",
	}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			var l editList
			require.Error(t, l.Set(v))
			require.Empty(t, l)
		})
	}
}

func TestParsePosition(t *testing.T) {
	p, err := parsePosition("61.5, 0, -20")
	require.NoError(t, err)
	require.Equal(t, mgl32.Vec3{61.5, 0, -20}, p)

	for _, v := range []string{"1,2", "1,2,3,4", "x,0,0"} {
		_, err := parsePosition(v)
		require.Error(t, err, v)
	}
}

func TestParseCell(t *testing.T) {
	c, err := parseCell("12,7")
	require.NoError(t, err)
	require.Equal(t, grid.Coordinates{X: 12, Z: 7}, c)

	for _, v := range []string{"12", "12,z", ",7"} {
		_, err := parseCell(v)
		require.Error(t, err, v)
	}
}
