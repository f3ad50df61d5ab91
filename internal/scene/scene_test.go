package scene

import (
	"testing"

	"github.com/agiangrant/scrollview/internal/config"
	"github.com/agiangrant/scrollview/retained"
	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grid = config.Content{Rows: 10, Columns: 4, TileWidth: 8, TileHeight: 3, Gap: 1}

func TestBuild(t *testing.T) {
	sv, err := Build(retained.Sz(20, 12), grid, retained.DefaultScrollConfig())
	require.NoError(t, err)

	// 4*8 + 3 gaps = 35 wide, 10*3 + 9 gaps = 39 tall.
	assert.Equal(t, retained.Sz(35, 39), sv.InnerContainerSize())
	assert.Equal(t, 40, sv.ChildrenCount())
	assert.Equal(t, -27.0, sv.InnerContainerPosition().Y, "top-aligned")

	first := sv.ChildByName("tile-0-0")
	require.NotNil(t, first)
	assert.Equal(t, 36.0, first.Bottom())
	assert.Equal(t, 39.0, first.Top())

	last := sv.ChildByTag(39)
	require.NotNil(t, last)
	assert.Equal(t, "tile-9-3", last.Name())
	assert.Equal(t, 0.0, last.Bottom())
	assert.Equal(t, 27.0, last.Left())
}

func TestBuildSmallContentFillsViewport(t *testing.T) {
	sv, err := Build(retained.Sz(100, 100), config.Content{Rows: 1, Columns: 1, TileWidth: 5, TileHeight: 5}, retained.DefaultScrollConfig())
	require.NoError(t, err)
	assert.Equal(t, retained.Sz(100, 100), sv.InnerContainerSize())

	tile := sv.ChildByTag(0)
	assert.Equal(t, 95.0, tile.Bottom(), "first row sits at the top")
}

func TestBuildRejectsBadConfig(t *testing.T) {
	sc := retained.DefaultScrollConfig()
	sc.MaxFlingSpeed = 0
	_, err := Build(retained.Sz(10, 10), grid, sc)
	assert.Error(t, err)
}

func TestTilesClipsToViewport(t *testing.T) {
	sv, err := Build(retained.Sz(20, 12), grid, retained.DefaultScrollConfig())
	require.NoError(t, err)

	tiles := Tiles(sv, grid.Columns)
	rows := map[int]bool{}
	for _, tile := range tiles {
		rows[tile.Row] = true
		assert.True(t, tile.Visible(20, 12))
		assert.Less(t, tile.Col, 3, "column 3 starts at x=27")
	}
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true}, rows)

	sv.JumpToBottom()
	tiles = Tiles(sv, grid.Columns)
	require.NotEmpty(t, tiles)
	for _, tile := range tiles {
		assert.GreaterOrEqual(t, tile.Row, 7)
	}
	assert.Nil(t, Tiles(sv, 0))
}

func TestScrollPercent(t *testing.T) {
	sv, err := Build(retained.Sz(20, 12), grid, retained.DefaultScrollConfig())
	require.NoError(t, err)

	x, y := ScrollPercent(sv)
	assert.Zero(t, x)
	assert.Zero(t, y)

	sv.SetDirection(retained.DirectionBoth)
	sv.JumpToPercentBothDirection(gg.Pt(50, 50))
	x, y = ScrollPercent(sv)
	assert.InDelta(t, 50, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)

	sv.JumpToBottomRight()
	x, y = ScrollPercent(sv)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 100, y, 1e-9)
}

func TestTileHelpers(t *testing.T) {
	tile := Tile{Row: 2, Col: 5}
	assert.Equal(t, "2.5", tile.Label())
	assert.Equal(t, 1, tile.Hue(6))
	assert.Zero(t, tile.Hue(0))
	assert.False(t, Tile{X: 20, W: 5, H: 1}.Visible(20, 10))
}
