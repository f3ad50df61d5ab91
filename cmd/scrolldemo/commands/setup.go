package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agiangrant/scrollview/internal/config"
	"github.com/agiangrant/scrollview/loader"
	"github.com/agiangrant/scrollview/retained"
	"github.com/gogpu/gg"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

// Fallback viewport for headless commands when none is configured.
const (
	headlessWidth  = 40
	headlessHeight = 20
)

// env is what every command starts from.
type env struct {
	cfg    *config.Config
	osFs   afero.Fs
	assets afero.Fs
	log    *slog.Logger
	close  func()
}

// setup parses args, loads the configuration and installs the logger.
// Logs go to the configured file, or to fallback when none is set (nil
// keeps logging off).
func setup(name string, args []string, fallback io.Writer) (*env, error) {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	config.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	osFs := afero.NewOsFs()
	cfg, err := config.Load(osFs, flags)
	if err != nil {
		return nil, err
	}

	// BasePathFs needs an absolute base; "." prefixes nothing.
	assetDir, err := filepath.Abs(cfg.Assets.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve asset dir: %w", err)
	}
	e := &env{
		cfg:    cfg,
		osFs:   osFs,
		assets: afero.NewBasePathFs(osFs, assetDir),
		close:  func() {},
	}

	out := fallback
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		e.close = func() { f.Close() }
	}
	if out != nil {
		e.log = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Log.Level}))
		retained.SetLogger(e.log)
		gg.SetLogger(e.log)
	} else {
		e.log = retained.Logger()
	}
	return e, nil
}

// manifest returns the flattened entries of the configured manifest, or nil
// when there is none.
func (e *env) manifest() ([]loader.Entry, error) {
	if e.cfg.Assets.Manifest == "" {
		return nil, nil
	}
	m, err := loader.LoadManifest(e.assets, e.cfg.Assets.Manifest)
	if err != nil {
		return nil, err
	}
	return m.Entries(), nil
}

// headlessViewport is the configured viewport with zero axes replaced by
// the headless fallback.
func (e *env) headlessViewport() retained.Size {
	vp := retained.Sz(e.cfg.Viewport.Width, e.cfg.Viewport.Height)
	if vp.Width == 0 {
		vp.Width = headlessWidth
	}
	if vp.Height == 0 {
		vp.Height = headlessHeight
	}
	return vp
}

// reportCompletion logs the outcome of a preload.
func (e *env) reportCompletion(l *loader.Loader) {
	loaded, total := l.Progress()
	if err := l.Errors(); err != nil {
		e.log.Warn("preload finished with errors", "loaded", loaded, "total", total, "error", err)
		return
	}
	e.log.Info("preload finished", "loaded", loaded, "total", total)
}
