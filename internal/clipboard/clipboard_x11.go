//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// owner serves image/png to other X clients while we hold the CLIPBOARD
// selection.
var owner *x11Owner

func setupX11() error {
	o := &x11Owner{}
	if err := o.open(); err != nil {
		return err
	}
	owner = o
	return nil
}

// WriteImage encodes img as PNG and takes ownership of the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(setupX11); err != nil {
		return err
	}
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return owner.publish(data)
}

// ReadImage asks the current clipboard owner for image/png and decodes it.
func ReadImage() (image.Image, error) {
	if err := ensureInit(setupX11); err != nil {
		return nil, err
	}
	if data, ok := owner.own(); ok {
		return decodePNG(data)
	}
	data, err := requestPNG(owner.atoms)
	if err != nil {
		return nil, err
	}
	return decodePNG(data)
}

type x11Atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

type x11Owner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  x11Atoms

	mu  sync.RWMutex
	png []byte
}

func (o *x11Owner) open() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("x11 connect: %w", err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return err
	}
	mask := []uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, mask).Check(); err != nil {
		conn.Close()
		return err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return err
	}
	o.conn, o.window, o.atoms = conn, window, atoms
	go o.serve()
	return nil
}

func internAtoms(conn *xgb.Conn) (x11Atoms, error) {
	var a x11Atoms
	for _, v := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"CLIPBOARD", &a.clipboard},
		{"TARGETS", &a.targets},
		{"image/png", &a.png},
		{"KIDSPAINT_CLIPBOARD", &a.property},
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(v.name)), v.name).Reply()
		if err != nil {
			return x11Atoms{}, fmt.Errorf("intern %s: %w", v.name, err)
		}
		*v.dst = reply.Atom
	}
	return a, nil
}

func (o *x11Owner) publish(data []byte) error {
	o.mu.Lock()
	o.png = data
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *x11Owner) own() ([]byte, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.png, o.png != nil
}

func (o *x11Owner) serve() {
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
			o.png = nil
			o.mu.Unlock()
		}
	}
}

// answer replies to another client's conversion request. Only TARGETS and
// image/png are offered.
func (o *x11Owner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	data, _ := o.own()

	switch {
	case e.Target == o.atoms.targets:
		targets := []xproto.Atom{o.atoms.targets}
		if len(data) > 0 {
			targets = append(targets, o.atoms.png)
		}
		buf := make([]byte, 4*len(targets))
		for i, t := range targets {
			xgb.Put32(buf[i*4:], uint32(t))
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(targets)), buf)
	case e.Target == o.atoms.png && len(data) > 0:
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, o.atoms.png, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// requestPNG converts the CLIPBOARD selection on a throwaway connection so
// the serving goroutine never sees the reply.
func requestPNG(atoms x11Atoms) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, atoms.clipboard, atoms.png, atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, ErrNoImage
		}
		reply, perr := xproto.GetProperty(conn, true, window, e.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
