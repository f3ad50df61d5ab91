package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/agiangrant/scrollview/internal/config"
	"github.com/pelletier/go-toml/v2"
)

// Config implements the 'scrolldemo config' command: it prints the
// configuration that file, environment and flags resolve to.
func Config(args []string) error {
	e, err := setup("config", args, os.Stderr)
	if err != nil {
		return err
	}
	defer e.close()
	return writeConfig(os.Stdout, e.cfg)
}

func writeConfig(w io.Writer, cfg *config.Config) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
