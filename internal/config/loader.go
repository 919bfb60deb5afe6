package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/example/shapepad/internal/theme"
)

// EnvPrefix is prepended to every environment override, e.g.
// SHAPEPAD_CANVAS_CAPACITY.
const EnvPrefix = "SHAPEPAD"

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the discovered config file, if any, with environment
// overrides applied on top.
func (l *Loader) Load() (*Config, error) {
	v := newViper()
	if path := l.GetConfigPath(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return decode(v)
}

// Parse reads TOML configuration from r.
func Parse(r io.Reader) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return decode(v)
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".shapepad.toml")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	if p := DefaultPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath is where `config save` writes when no file exists yet.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "shapepad", "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := New()
	v.SetDefault("theme", d.Theme)
	v.SetDefault("save_dir", d.SaveDir)
	v.SetDefault("canvas.width", d.Canvas.Width)
	v.SetDefault("canvas.height", d.Canvas.Height)
	v.SetDefault("canvas.capacity", d.Canvas.Capacity)
	v.SetDefault("canvas.background", d.Canvas.Background)
	v.SetDefault("canvas.renderer", d.Canvas.Renderer)
	v.SetDefault("notify.save", d.Notify.Save)
	v.SetDefault("notify.copy", d.Notify.Copy)
	v.SetDefault("log.level", d.Log.Level)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	for name, raw := range v.GetStringMap("themes") {
		fields, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("themes.%s: expected a table", name)
		}
		t := theme.Default()
		t.Name = name
		for key, val := range fields {
			if err := t.Set(key, fmt.Sprint(val)); err != nil {
				return nil, fmt.Errorf("error in section [themes.%s]: %w", name, err)
			}
		}
		cfg.Themes[name] = t
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
