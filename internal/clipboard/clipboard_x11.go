//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = ErrNoDisplay
			return
		}
		owner, initErr = newSelectionOwner()
	})
	return initErr
}

// WriteImage encodes img as PNG and takes ownership of the CLIPBOARD
// selection. The data is served to other clients until someone else claims
// the selection.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := encode(img)
	if err != nil {
		return err
	}
	return owner.offer(data)
}

// selectionOwner is a hidden X11 window that answers selection requests
// for a single image/png payload without cgo.
type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window

	clipboard, targets, png xproto.Atom

	mu   sync.Mutex
	data []byte
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, win, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create selection window: %w", err)
	}
	o := &selectionOwner{conn: conn, window: win}
	for name, dst := range map[string]*xproto.Atom{
		"CLIPBOARD": &o.clipboard,
		"TARGETS":   &o.targets,
		"image/png": &o.png,
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			xproto.DestroyWindow(conn, win)
			conn.Close()
			return nil, fmt.Errorf("intern %s: %w", name, err)
		}
		*dst = reply.Atom
	}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) offer(data []byte) error {
	o.mu.Lock()
	o.data = data
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.data = nil
			o.mu.Unlock()
		}
	}
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	o.mu.Lock()
	data := o.data
	o.mu.Unlock()

	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}
	switch {
	case len(data) == 0:
		prop = xproto.AtomNone
	case e.Target == o.targets:
		buf := make([]byte, 8)
		xgb.Put32(buf, uint32(o.targets))
		xgb.Put32(buf[4:], uint32(o.png))
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, prop, xproto.AtomAtom, 32, 2, buf)
	case e.Target == o.png:
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, prop, o.png, 8, uint32(len(data)), data)
	default:
		prop = xproto.AtomNone
	}

	reply := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  prop,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(reply.Bytes()))
}
