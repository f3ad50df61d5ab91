// Package config loads the scrolldemo configuration from a TOML file,
// SCROLLDEMO_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agiangrant/scrollview/retained"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, with dots in keys
// replaced by underscores: SCROLLDEMO_SCROLL_DIRECTION.
const EnvPrefix = "SCROLLDEMO"

// Viewport is the visible area in cells.
type Viewport struct {
	Width  float64 `mapstructure:"width" toml:"width"`
	Height float64 `mapstructure:"height" toml:"height"`
}

// Content is the tile grid placed in the scroll view.
type Content struct {
	Rows       int     `mapstructure:"rows" toml:"rows"`
	Columns    int     `mapstructure:"columns" toml:"columns"`
	TileWidth  float64 `mapstructure:"tile_width" toml:"tile_width"`
	TileHeight float64 `mapstructure:"tile_height" toml:"tile_height"`
	Gap        float64 `mapstructure:"gap" toml:"gap"`
}

// Assets locates the preload manifest.
type Assets struct {
	Dir      string `mapstructure:"dir" toml:"dir"`
	Manifest string `mapstructure:"manifest" toml:"manifest"`
}

// Log configures the log file. The terminal is owned by the UI, so nothing
// is written to stderr while it runs.
type Log struct {
	Level slog.Level `mapstructure:"level" toml:"level"`
	File  string     `mapstructure:"file" toml:"file"`
}

// Snapshot configures headless PNG rendering.
type Snapshot struct {
	Output string  `mapstructure:"output" toml:"output"`
	Frames int     `mapstructure:"frames" toml:"frames"`
	Scale  float64 `mapstructure:"scale" toml:"scale"`
}

// Config is the full scrolldemo configuration.
type Config struct {
	Scroll   retained.ScrollConfig `mapstructure:"scroll" toml:"scroll"`
	Viewport Viewport              `mapstructure:"viewport" toml:"viewport"`
	Content  Content               `mapstructure:"content" toml:"content"`
	Assets   Assets                `mapstructure:"assets" toml:"assets"`
	Log      Log                   `mapstructure:"log" toml:"log"`
	Snapshot Snapshot              `mapstructure:"snapshot" toml:"snapshot"`
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"direction":  "scroll.direction",
	"inertia":    "scroll.inertia_enabled",
	"assets":     "assets.dir",
	"manifest":   "assets.manifest",
	"log-file":   "log.file",
	"log-level":  "log.level",
	"snapshot":   "snapshot.output",
	"frames":     "snapshot.frames",
	"rows":       "content.rows",
	"columns":    "content.columns",
	"viewport-w": "viewport.width",
	"viewport-h": "viewport.height",
}

// RegisterFlags defines the flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to a TOML config file")
	fs.StringP("direction", "d", "vertical", "scroll direction: none, vertical, horizontal or both")
	fs.Bool("inertia", true, "fling on release")
	fs.String("assets", ".", "asset root directory")
	fs.String("manifest", "", "resource manifest, relative to --assets")
	fs.String("log-file", "", "write logs to this file")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("snapshot", "", "output PNG of the snapshot command (default snapshot.png)")
	fs.Int("frames", 30, "frames to simulate before a snapshot")
	fs.Int("rows", 40, "tile rows")
	fs.Int("columns", 12, "tile columns")
	fs.Float64("viewport-w", 0, "headless viewport width in cells (0 = 40); run uses the terminal")
	fs.Float64("viewport-h", 0, "headless viewport height in cells (0 = 20); run uses the terminal")
}

func setDefaults(v *viper.Viper) {
	sc := retained.DefaultScrollConfig()
	v.SetDefault("scroll.direction", sc.Direction.String())
	v.SetDefault("scroll.inertia_enabled", sc.InertiaEnabled)
	v.SetDefault("scroll.child_focus_cancel_offset", sc.ChildFocusCancelOffset)
	v.SetDefault("scroll.max_fling_speed", sc.MaxFlingSpeed)
	v.SetDefault("scroll.fling_deceleration", sc.FlingDeceleration)
	v.SetDefault("scroll.min_slide_time", sc.MinSlideTime)

	v.SetDefault("viewport.width", 0)
	v.SetDefault("viewport.height", 0)

	v.SetDefault("content.rows", 40)
	v.SetDefault("content.columns", 12)
	v.SetDefault("content.tile_width", 8)
	v.SetDefault("content.tile_height", 3)
	v.SetDefault("content.gap", 1)

	v.SetDefault("assets.dir", ".")
	v.SetDefault("assets.manifest", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("snapshot.output", "")
	v.SetDefault("snapshot.frames", 30)
	v.SetDefault("snapshot.scale", 8)
}

// Load builds the configuration. The config file named by the "config"
// flag is read from fsys; flags may be nil.
func Load(fsys afero.Fs, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetFs(fsys)
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
		if path, err := flags.GetString("config"); err == nil && path != "" {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error loading config: %w", err)
			}
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the demo cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Scroll.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		errs = append(errs, fmt.Errorf("viewport must not be negative, got %vx%v", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Content.Rows <= 0 || c.Content.Columns <= 0 {
		errs = append(errs, fmt.Errorf("content needs at least one row and column, got %dx%d", c.Content.Rows, c.Content.Columns))
	}
	if c.Content.TileWidth <= 0 || c.Content.TileHeight <= 0 {
		errs = append(errs, fmt.Errorf("tile size must be positive, got %vx%v", c.Content.TileWidth, c.Content.TileHeight))
	}
	if c.Content.Gap < 0 {
		errs = append(errs, fmt.Errorf("gap must not be negative, got %v", c.Content.Gap))
	}
	if c.Snapshot.Frames < 0 {
		errs = append(errs, fmt.Errorf("snapshot frames must not be negative, got %d", c.Snapshot.Frames))
	}
	if c.Snapshot.Scale <= 0 {
		errs = append(errs, fmt.Errorf("snapshot scale must be positive, got %v", c.Snapshot.Scale))
	}
	return errors.Join(errs...)
}
