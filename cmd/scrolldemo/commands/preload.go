package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/agiangrant/scrollview/internal/snapshot"
	"github.com/agiangrant/scrollview/loader"
	"github.com/agiangrant/scrollview/retained"
)

// Preload implements the 'scrolldemo preload' command.
func Preload(args []string) error {
	e, err := setup("preload", args, os.Stderr)
	if err != nil {
		return err
	}
	defer e.close()

	entries, err := e.manifest()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("no resources: pass --manifest")
	}

	sched := retained.NewScheduler()
	ld := loader.New(e.assets, sched)
	return preloadAll(os.Stdout, ld, sched, entries)
}

// preloadAll steps ld to completion, printing progress and a line per
// resource to w. It returns the joined load errors.
func preloadAll(w io.Writer, ld *loader.Loader, sched *retained.Scheduler, entries []loader.Entry) error {
	if err := ld.Preload(entries, loader.Completion{}); err != nil {
		return err
	}
	last := -1
	for ld.IsLoading() {
		sched.Step(snapshot.Frame)
		if p := ld.Percentage(); p != last {
			fmt.Fprintf(w, "\r%3d%%", p)
			last = p
		}
	}
	fmt.Fprintln(w)

	for _, entry := range loader.Flatten(entries) {
		v, ok := ld.Cache().Get(entry.Src)
		if !ok {
			fmt.Fprintf(w, "✗ %-32s %s\n", entry.Src, entry.Kind())
			continue
		}
		fmt.Fprintf(w, "✓ %-32s %s\n", entry.Src, describe(v))
	}
	return ld.Errors()
}

func describe(v any) string {
	switch v := v.(type) {
	case loader.ImageInfo:
		return fmt.Sprintf("image %s %dx%d", v.Format, v.Width, v.Height)
	case loader.SoundInfo:
		if v.Samples == 0 {
			return fmt.Sprintf("sound, %d bytes", len(v.Data))
		}
		return fmt.Sprintf("sound %d Hz, %d ch, %.2fs", v.Format.SampleRate, v.Format.NumChannels, v.Duration())
	case loader.XMLDocument:
		return fmt.Sprintf("xml <%s>", v.Root)
	case loader.Font:
		return fmt.Sprintf("font %q (%s), %d glyphs", v.Name, v.Family, v.Face.NumGlyphs())
	case []byte:
		return fmt.Sprintf("binary, %d bytes", len(v))
	case string:
		return fmt.Sprintf("text, %d bytes", len(v))
	default:
		return fmt.Sprintf("%T", v)
	}
}
