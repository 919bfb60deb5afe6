// Package notify tells the user, through the desktop's notification
// centre, that a drawing was saved or copied.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/shapepad/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires after the canvas is written to disk.
	EventSave Event = "save"
	// EventCopy fires after the canvas is placed on the clipboard.
	EventCopy Event = "copy"
)

// Preferences holds the message title and the per-event body templates.
// Each template receives the event detail through a single %s verb.
type Preferences struct {
	Title     string
	Templates map[Event]string
	Timeout   time.Duration
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "shapepad",
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to clipboard",
		},
		Timeout: 5 * time.Second,
	}
}

// LoadPreferences applies SHAPEPAD_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("SHAPEPAD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range map[Event]string{
		EventSave: "SHAPEPAD_NOTIFY_SAVE_TEXT",
		EventCopy: "SHAPEPAD_NOTIFY_COPY_TEXT",
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// SendFunc delivers one notification. It matches platform.Notify.
type SendFunc func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications for the enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    SendFunc
	log     zerolog.Logger
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger routes delivery failures to l.
func WithLogger(l zerolog.Logger) Option { return func(n *Notifier) { n.log = l } }

// WithSender replaces platform.Notify, mostly for tests.
func WithSender(fn SendFunc) Option { return func(n *Notifier) { n.send = fn } }

// New creates a Notifier with every event disabled.
func New(prefs Preferences, opts ...Option) *Notifier {
	cloned := prefs
	cloned.Templates = make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	n := &Notifier{
		prefs:   cloned,
		enabled: make(map[Event]bool),
		send:    platform.Notify,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports a written file. The file itself is used as the icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := n.options()
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy reports a clipboard copy, showing img as the icon when given.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	opts := n.options()
	if img != nil {
		path, cleanup, err := writePreview(img)
		if err != nil {
			n.log.Warn().Err(err).Msg("notification preview")
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) options() platform.Options {
	return platform.Options{Timeout: n.prefs.Timeout}
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		n.log.Warn().Err(err).Str("event", string(event)).Msg("notification failed")
	}
}

func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "shapepad-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}
