// Package snapshot renders a ScrollView headlessly to PNG, optionally after
// replaying a scripted fling on a scheduler.
package snapshot

import (
	"fmt"
	"io"

	"github.com/agiangrant/scrollview/internal/scene"
	"github.com/agiangrant/scrollview/retained"
	"github.com/gogpu/gg"
	"github.com/spf13/afero"
)

// Frame is the fixed step used when replaying gestures.
const Frame = 1.0 / 60

var (
	background = gg.Hex("#1e1e2e")
	palette    = []gg.RGBA{
		gg.Hex("#008080"),
		gg.Hex("#000080"),
		gg.Hex("#808000"),
		gg.Hex("#800000"),
		gg.Hex("#800080"),
		gg.Hex("#008000"),
	}
)

// Render draws the visible tiles of sv at scale pixels per unit. The
// returned context is owned by the caller.
func Render(sv *retained.ScrollView, columns int, scale float64) (*gg.Context, error) {
	vp := sv.Viewport()
	w, h := int(vp.Width*scale), int(vp.Height*scale)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty viewport %vx%v at scale %v", vp.Width, vp.Height, scale)
	}

	dc := gg.NewContext(w, h)
	dc.ClearWithColor(background)
	for _, t := range scene.Tiles(sv, columns) {
		c := palette[t.Hue(len(palette))]
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		// Images are y-down.
		dc.DrawRectangle(t.X*scale, (vp.Height-t.Y-t.H)*scale, t.W*scale, t.H*scale)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("failed to fill tile %s: %w", t.Label(), err)
		}
	}
	return dc, nil
}

// Encode renders sv and writes it to w as PNG.
func Encode(w io.Writer, sv *retained.ScrollView, columns int, scale float64) error {
	dc, err := Render(sv, columns, scale)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// Save renders sv to a PNG file on fs.
func Save(fs afero.Fs, name string, sv *retained.ScrollView, columns int, scale float64) error {
	f, err := fs.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := Encode(f, sv, columns, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Fling replays a drag of distance units along the view's main axis from
// the viewport center over press seconds, releases it, then steps sched for
// frames more frames. sv must already be scheduled on sched.
func Fling(sv *retained.ScrollView, sched *retained.Scheduler, distance, press float64, frames int) {
	vp := sv.Viewport()
	from := gg.Pt(vp.Width/2, vp.Height/2)
	to := from.Add(gg.Pt(0, distance))
	if sv.Direction() == retained.DirectionHorizontal {
		to = from.Add(gg.Pt(-distance, 0))
	}

	sv.HandlePress(from)
	steps := max(int(press/Frame), 1)
	for i := 1; i <= steps; i++ {
		sched.Step(press / float64(steps))
		sv.HandleMove(from.Lerp(to, float64(i)/float64(steps)))
	}
	sv.HandleRelease(to)

	for i := 0; i < frames; i++ {
		sched.Step(Frame)
	}
	retained.Logger().Debug("snapshot: fling replayed",
		"distance", distance, "frames", frames, "position", sv.InnerContainerPosition())
}
