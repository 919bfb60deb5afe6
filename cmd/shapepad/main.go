package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/shapepad/internal/config"
	"github.com/example/shapepad/internal/engine"
	"github.com/example/shapepad/internal/notify"
	"github.com/example/shapepad/internal/shape"
	"github.com/example/shapepad/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	config      *config.Config
	notifier    *notify.Notifier
	log         zerolog.Logger
	saveAlerts  bool
	copyAlerts  bool
	themeName   string
	logLevel    string
	activeTheme *theme.Theme

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	if r == nil {
		return &root{program: name, config: config.New(), log: zerolog.Nop(), stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	}
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:     program,
		config:      r.config,
		notifier:    r.notifier,
		log:         r.log,
		saveAlerts:  r.saveAlerts,
		copyAlerts:  r.copyAlerts,
		themeName:   r.themeName,
		logLevel:    r.logLevel,
		activeTheme: r.activeTheme,
		stdin:       r.stdin,
		stdout:      r.stdout,
		stderr:      r.stderr,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:      flag.NewFlagSet("shapepad", flag.ExitOnError),
		program: "shapepad",
		config:  cfg,
		log:     zerolog.Nop(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	// Empty means fall back to SHAPEPAD_THEME, then the config file.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, "+strings.Join(theme.Builtin(), ", ")+")")
	r.fs.StringVar(&r.logLevel, "log-level", cfg.Log.Level, "log level (trace, debug, info, warn, error)")
	r.fs.Usage = usageFunc(r)
	return r
}

// newLogger writes human readable records to w.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}

	logger, err := newLogger(r.stderr, r.logLevel)
	if err != nil {
		return err
	}
	r.log = logger

	prefs := notify.LoadPreferences()
	r.notifier = notify.New(prefs, notify.WithLogger(r.log))
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)

	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch cmdName {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "shapes":
		cmd, err = parseShapesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd, err = parseVersionCmd(subArgs, r)
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolveTheme picks the theme named by -theme, SHAPEPAD_THEME or the
// config file, preferring inline config themes over theme files.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv(config.EnvPrefix + "_THEME")
	}
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[name]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		r.log.Warn().Err(err).Str("theme", name).Msg("using default theme")
		return theme.Default()
	}
	return t
}

func (r *root) newSurface(opts ...engine.Option) *engine.Surface {
	base := []engine.Option{
		engine.WithCapacity(r.config.Canvas.Capacity),
		engine.WithLogger(r.log),
	}
	return engine.New(append(base, opts...)...)
}

// background is the configured canvas colour, or the theme's.
func (r *root) background() (shape.Color, error) {
	def := shape.White
	if r.activeTheme != nil {
		def = shape.FromColor(r.activeTheme.Canvas)
	}
	return r.config.BackgroundOr(def)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail, img)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
