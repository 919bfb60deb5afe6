package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/shapepad/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r.subcommand("config"), fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Run() error {
	switch sub := c.fs.Arg(0); sub {
	case "print":
		_, err := fmt.Fprint(c.stdout, c.config.String())
		return err
	case "save":
		return c.save(config.NewLoader(version, configPathOverride).GetConfigPath())
	default:
		return fmt.Errorf("unknown config command: %s", sub)
	}
}

// save writes the effective configuration to path, or to the user config
// directory when no config file exists yet.
func (c *configCmd) save(path string) error {
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return fmt.Errorf("no configuration directory available")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(c.config.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
	return nil
}
