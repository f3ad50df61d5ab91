package commands

import (
	"fmt"

	"github.com/agiangrant/scrollview/internal/scene"
	"github.com/agiangrant/scrollview/internal/termview"
	"github.com/agiangrant/scrollview/loader"
	"github.com/agiangrant/scrollview/retained"
)

// Run implements the 'scrolldemo run' command.
func Run(args []string) error {
	// The terminal belongs to the UI, so only a log file gets output.
	e, err := setup("run", args, nil)
	if err != nil {
		return err
	}
	defer e.close()

	entries, err := e.manifest()
	if err != nil {
		return err
	}

	screen, err := termview.Open()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	w, h := screen.Size()
	sv, err := scene.Build(retained.Sz(float64(w), float64(h-1)), e.cfg.Content, e.cfg.Scroll)
	if err != nil {
		return err
	}
	sched := retained.NewScheduler()

	var ld *loader.Loader
	if len(entries) > 0 {
		ld = loader.New(e.assets, sched)
		if err := ld.PreloadAsync(entries, loader.Completion{Func: e.reportCompletion}); err != nil {
			return err
		}
	}

	termview.New(screen, sv, sched, e.cfg.Content.Columns, ld).Run()
	return nil
}
