package commands

import (
	"fmt"
	"os"

	"github.com/agiangrant/scrollview/internal/scene"
	"github.com/agiangrant/scrollview/internal/snapshot"
	"github.com/agiangrant/scrollview/loader"
	"github.com/agiangrant/scrollview/retained"
)

const defaultSnapshot = "snapshot.png"

// Snapshot implements the 'scrolldemo snapshot' command: it preloads the
// manifest, flings a third of the viewport and saves the frame.
func Snapshot(args []string) error {
	e, err := setup("snapshot", args, os.Stderr)
	if err != nil {
		return err
	}
	defer e.close()

	vp := e.headlessViewport()
	sv, err := scene.Build(vp, e.cfg.Content, e.cfg.Scroll)
	if err != nil {
		return err
	}
	sched := retained.NewScheduler()
	sched.Schedule(sv)

	entries, err := e.manifest()
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		ld := loader.New(e.assets, sched)
		if err := ld.Preload(entries, loader.Completion{Func: e.reportCompletion}); err != nil {
			return err
		}
		for ld.IsLoading() {
			sched.Step(snapshot.Frame)
		}
	}

	distance := vp.Height / 3
	if sv.Direction() == retained.DirectionHorizontal {
		distance = vp.Width / 3
	}
	snapshot.Fling(sv, sched, distance, 0.1, e.cfg.Snapshot.Frames)

	out := e.cfg.Snapshot.Output
	if out == "" {
		out = defaultSnapshot
	}
	if err := snapshot.Save(e.osFs, out, sv, e.cfg.Content.Columns, e.cfg.Snapshot.Scale); err != nil {
		return err
	}

	x, y := scene.ScrollPercent(sv)
	fmt.Printf("✓ Wrote %s (scrolled %.0f%% x, %.0f%% y)\n", out, x, y)
	return nil
}
