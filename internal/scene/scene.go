// Package scene builds the demo content: a grid of tiles inside a
// ScrollView, shared by the terminal UI and the snapshot renderer.
package scene

import (
	"fmt"
	"math"

	"github.com/agiangrant/scrollview/internal/config"
	"github.com/agiangrant/scrollview/retained"
	"github.com/gogpu/gg"
)

// Tile is a grid cell in viewport coordinates (y-up, origin bottom-left).
type Tile struct {
	Row, Col int
	X, Y     float64 // bottom-left corner
	W, H     float64
}

// Visible reports whether any part of the tile lies inside a viewport of
// the given size.
func (t Tile) Visible(vw, vh float64) bool {
	return t.X < vw && t.X+t.W > 0 && t.Y < vh && t.Y+t.H > 0
}

// Label is the short text drawn on a tile.
func (t Tile) Label() string {
	return fmt.Sprintf("%d.%d", t.Row, t.Col)
}

// Hue returns a color index cycling across rows and columns.
func (t Tile) Hue(n int) int {
	if n <= 0 {
		return 0
	}
	return (t.Row + t.Col) % n
}

// Build creates a ScrollView of the given viewport size holding a grid of
// tiles described by c. Row 0 is at the top of the content.
func Build(viewport retained.Size, c config.Content, sc retained.ScrollConfig) (*retained.ScrollView, error) {
	sv := retained.NewScrollView(viewport)
	if err := sv.ApplyConfig(sc); err != nil {
		return nil, err
	}

	w := float64(c.Columns)*c.TileWidth + float64(c.Columns-1)*c.Gap
	h := float64(c.Rows)*c.TileHeight + float64(c.Rows-1)*c.Gap
	sv.SetInnerContainerSize(retained.Sz(math.Max(w, viewport.Width), math.Max(h, viewport.Height)))
	inner := sv.InnerContainerSize()

	for row := 0; row < c.Rows; row++ {
		top := inner.Height - float64(row)*(c.TileHeight+c.Gap)
		for col := 0; col < c.Columns; col++ {
			tile := retained.NewNode().
				SetTag(row*c.Columns + col).
				SetName(fmt.Sprintf("tile-%d-%d", row, col)).
				SetSize(retained.Sz(c.TileWidth, c.TileHeight)).
				SetPosition(gg.Pt(float64(col)*(c.TileWidth+c.Gap), top-c.TileHeight))
			sv.AddChild(tile)
		}
	}

	retained.Logger().Debug("scene: built grid",
		"rows", c.Rows, "columns", c.Columns, "inner", inner)
	return sv, nil
}

// Tiles returns the tiles of sv that intersect its viewport, in viewport
// coordinates.
func Tiles(sv *retained.ScrollView, columns int) []Tile {
	if columns <= 0 {
		return nil
	}
	origin := sv.InnerContainerPosition()
	vp := sv.Viewport()

	var tiles []Tile
	for _, n := range sv.Children() {
		t := Tile{
			Row: n.Tag() / columns,
			Col: n.Tag() % columns,
			X:   origin.X + n.Left(),
			Y:   origin.Y + n.Bottom(),
			W:   n.Size().Width,
			H:   n.Size().Height,
		}
		if t.Visible(vp.Width, vp.Height) {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// ScrollPercent returns how far the content is scrolled on each axis, 0 at
// the top-left and 100 at the bottom-right. An axis with no scroll range
// reports 0.
func ScrollPercent(sv *retained.ScrollView) (x, y float64) {
	vp := sv.Viewport()
	in := sv.InnerContainerSize()
	pos := sv.InnerContainerPosition()

	if rangeX := in.Width - vp.Width; rangeX > 0 {
		x = -pos.X / rangeX * 100
	}
	if rangeY := in.Height - vp.Height; rangeY > 0 {
		y = (pos.Y - (vp.Height - in.Height)) / rangeY * 100
	}
	return x, y
}
