// Package window hosts an engine.Surface in a desktop window using shiny.
package window

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/shapepad/internal/canvas"
	"github.com/example/shapepad/internal/clipboard"
	"github.com/example/shapepad/internal/engine"
	"github.com/example/shapepad/internal/notify"
	"github.com/example/shapepad/internal/palette"
	"github.com/example/shapepad/internal/shape"
	"github.com/example/shapepad/internal/theme"
)

const messageDuration = 2 * time.Second

// Window is a desktop drawing surface.
type Window struct {
	surface    *engine.Surface
	theme      *theme.Theme
	canvasSize image.Point
	output     string
	saveDir    string
	renderer   canvas.Renderer
	background shape.Color
	hasBg      bool
	notifier   *notify.Notifier
	log        zerolog.Logger
	copyImage  func(image.Image) error
	now        func() time.Time
	// schedule runs fn after d on another goroutine.
	schedule func(d time.Duration, fn func())
	// wake posts an event to the running loop; nil before Main starts.
	wake func(e any)

	onClose   func()
	closeOnce sync.Once

	// Event loop state.
	tb           *toolbar
	input        *pointerInput
	dirty        bool
	quit         bool
	message      string
	messageUntil time.Time
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(w *Window) { w.canvasSize = image.Pt(width, height) }
}

// WithSurface sets the engine the window drives.
func WithSurface(s *engine.Surface) Option { return func(w *Window) { w.surface = s } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(w *Window) { w.theme = t } }

// WithOutput sets the file written by save. When empty a timestamped name
// in the save directory is used.
func WithOutput(path string) Option { return func(w *Window) { w.output = path } }

// WithSaveDir sets where timestamped saves go.
func WithSaveDir(dir string) Option { return func(w *Window) { w.saveDir = dir } }

// WithRenderer selects the canvas rasteriser.
func WithRenderer(r canvas.Renderer) Option { return func(w *Window) { w.renderer = r } }

// WithBackground overrides the theme's canvas colour.
func WithBackground(c shape.Color) Option {
	return func(w *Window) { w.background, w.hasBg = c, true }
}

// WithNotifier reports saves and copies through n.
func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.notifier = n } }

// WithLogger sets the window's logger.
func WithLogger(l zerolog.Logger) Option { return func(w *Window) { w.log = l } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(w *Window) { w.onClose = fn } }

// New creates a Window with the provided options.
func New(opts ...Option) *Window {
	w := &Window{
		canvasSize: image.Pt(800, 600),
		renderer:   canvas.RendererGG,
		log:        zerolog.Nop(),
		copyImage:  clipboard.WriteImage,
		now:        time.Now,
		schedule:   func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
	for _, o := range opts {
		o(w)
	}
	if w.surface == nil {
		w.surface = engine.New(engine.WithLogger(w.log))
	}
	if w.theme == nil {
		w.theme = theme.Default()
	}
	if !w.hasBg {
		w.background = shape.FromColor(w.theme.Canvas)
	}
	w.surface.SetInvalidate(func() { w.dirty = true })
	w.tb = newToolbar(w.theme, w.apply)
	w.input = newPointerInput(w.surface.HandleEvent)
	w.input.canvas = image.Rectangle{Min: image.Pt(w.tb.width, 0), Max: image.Pt(w.tb.width, 0).Add(w.canvasSize)}
	return w
}

// Surface returns the engine behind the window.
func (w *Window) Surface() *engine.Surface { return w.surface }

// Run executes the UI loop using shiny's driver.
func (w *Window) Run() { driver.Main(w.Main) }

func (w *Window) notifyClose() {
	w.closeOnce.Do(func() {
		if w.onClose != nil {
			w.onClose()
		}
	})
}

// windowSize is the initial window size: the canvas, the toolbar to its
// left and the status line below.
func (w *Window) windowSize() image.Point {
	h := max(w.canvasSize.Y, w.tb.height())
	return image.Pt(w.tb.width+w.canvasSize.X, h+statusHeight)
}

// Main runs the event loop on s until the window closes.
func (w *Window) Main(s screen.Screen) {
	sz := w.windowSize()
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: "shapepad"})
	if err != nil {
		w.log.Error().Err(err).Msg("new window")
		return
	}
	defer win.Release()
	defer w.notifyClose()
	w.wake = func(e any) { win.Send(e) }

	paintPending := false
	requestPaint := func() {
		if !paintPending {
			paintPending = true
			win.Send(paint.Event{})
		}
	}

	for !w.quit {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				w.input.cancel()
			}
		case size.Event:
			sz = e.Size()
			w.dirty = true
		case paint.Event:
			paintPending = false
			w.paint(s, win, sz)
		case mouse.Event:
			w.handleMouse(e)
		case touch.Event:
			w.input.touch(e)
		case key.Event:
			w.apply(keyAction(e))
		case messageExpired:
			w.expire(e)
		case error:
			w.log.Error().Err(e).Msg("window event")
		}
		if w.dirty {
			w.dirty = false
			requestPaint()
		}
	}
}

func (w *Window) handleMouse(e mouse.Event) {
	if w.message != "" && e.Direction == mouse.DirPress {
		w.message = ""
		w.dirty = true
	}
	if w.input.mouse(e) {
		return
	}
	p := image.Pt(int(e.X), int(e.Y))
	hit := w.tb.hit(p)
	if hit != w.tb.hover {
		w.tb.hover = hit
		w.dirty = true
	}
	if hit != nil && e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
		hit.Activate()
	}
}

// apply performs a keyboard or toolbar action on the event loop.
func (w *Window) apply(a action) {
	switch a.kind {
	case actShape:
		w.surface.SetActiveShapeKind(a.shape)
	case actColor:
		w.surface.SetActiveColor(palette.At(a.color).Color)
	case actUndo:
		w.surface.RequestUndo()
	case actRedo:
		w.surface.RequestRedo()
	case actClear:
		w.surface.RequestClear()
	case actSave:
		path, err := w.save()
		if err != nil {
			w.log.Error().Err(err).Msg("save")
			w.flash("save failed: " + err.Error())
			return
		}
		w.log.Info().Str("path", path).Msg("saved")
		w.flash("saved " + filepath.Base(path))
		w.notifier.Save(path)
		return
	case actCopy:
		img, err := w.export()
		if err == nil {
			err = w.copyImage(img)
		}
		if err != nil {
			w.log.Error().Err(err).Msg("copy")
			w.flash("copy failed: " + err.Error())
			return
		}
		w.flash("copied to clipboard")
		w.notifier.Copy("", img)
		return
	case actQuit:
		w.quit = true
		return
	default:
		return
	}
	// Picking a shape or colour changes the toolbar even when the engine
	// has nothing to redraw.
	w.dirty = true
}

// messageExpired asks the loop to drop the toast shown until until.
type messageExpired struct{ until time.Time }

func (w *Window) flash(msg string) {
	until := w.now().Add(messageDuration)
	w.message = msg
	w.messageUntil = until
	w.dirty = true
	w.schedule(messageDuration, func() {
		if w.wake != nil {
			w.wake(messageExpired{until: until})
		}
	})
}

// expire hides the toast unless a newer one replaced it.
func (w *Window) expire(e messageExpired) {
	if w.message == "" || !e.until.Equal(w.messageUntil) {
		return
	}
	w.message = ""
	w.dirty = true
}

// export renders the committed shapes without any preview.
func (w *Window) export() (*image.RGBA, error) {
	return canvas.Rasterize(canvas.Shapes(w.surface.Snapshot()), w.renderer, w.canvasSize.X, w.canvasSize.Y, w.background)
}

func (w *Window) savePath() string {
	if w.output != "" {
		return w.output
	}
	name := fmt.Sprintf("shapepad-%s.png", w.now().Format("20060102-150405"))
	return filepath.Join(w.saveDir, name)
}

func (w *Window) save() (string, error) {
	img, err := w.export()
	if err != nil {
		return "", err
	}
	path := w.savePath()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := canvas.SavePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

func (w *Window) snapshot(sz image.Point) paintState {
	st := paintState{
		size:     sz,
		canvas:   w.input.canvas,
		kind:     w.surface.ActiveShapeKind(),
		color:    w.surface.ActiveColor(),
		count:    w.surface.Len(),
		capacity: w.surface.Cap(),
	}
	st.scene.shapes = w.surface.Snapshot()
	if p, ok := w.surface.Preview(); ok {
		st.scene.preview = p
	}
	if w.message != "" && w.now().Before(w.messageUntil) {
		st.message = w.message
	}
	return st
}

func (w *Window) paint(s screen.Screen, win screen.Window, sz image.Point) {
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(sz)
	if err != nil {
		w.log.Error().Err(err).Msg("new buffer")
		return
	}
	defer b.Release()
	if err := composeFrame(b.RGBA(), w.snapshot(sz), w.tb, w.theme, w.renderer, w.background); err != nil {
		w.log.Error().Err(err).Msg("render frame")
		return
	}
	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}
