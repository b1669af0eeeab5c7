// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

package app

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/atotto/clipboard"

	"picoview.org/app/internal/keymap"
	"picoview.org/f32"
	"picoview.org/gl"
	"picoview.org/io/event"
	"picoview.org/io/key"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

// x11Host is the part of the connection used by the event handling of
// a window.
type x11Host interface {
	// markMoved reports that a window was moved or resized.
	markMoved()
	// detach stops frames to xid and forgets it.
	detach(xid xproto.Window)
	// dispose frees the server resources of a window and releases
	// the connection. native is false when the server has already
	// destroyed the window.
	dispose(xid xproto.Window, cmap xproto.Colormap, native bool)
}

type x11Window struct {
	w        *Window
	conn     *x11Conn
	host     x11Host
	atoms    x11Atoms
	xid      xproto.Window
	colormap xproto.Colormap
	gl       *glxContext
	ctx      gl.Context
	embedded bool

	resizable bool
	minSize   system.Size
	maxSize   system.Size

	// Reader state.
	scale   float32
	visible bool
	dead    bool

	framePending atomic.Bool
	done         chan struct{}
}

const x11EventMask = xproto.EventMaskExposure |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskFocusChange

// Buttons held during a LeaveNotify.
const x11ButtonMask = xproto.KeyButMaskButton1 |
	xproto.KeyButMaskButton2 |
	xproto.KeyButMaskButton3 |
	xproto.KeyButMaskButton4 |
	xproto.KeyButMaskButton5

func openBlocking(f Factory, cnf config) error {
	w, err := openWindow(f, cnf, 0)
	if err != nil {
		return err
	}
	<-w.done
	return nil
}

func openEmbedded(f Factory, cnf config, parent RawHandle) error {
	h, err := parentHandle[X11Handle](parent)
	if err != nil {
		return err
	}
	if h.Window == 0 {
		return ErrInvalidParent
	}
	_, err = openWindow(f, cnf, xproto.Window(h.Window))
	return err
}

func openWindow(f Factory, cnf config, parent xproto.Window) (_ *x11Window, err error) {
	conn, err := x11Shared.Acquire()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			x11Shared.Release()
		}
	}()
	xc := conn.xu.Conn()
	log := cnf.Logger.With("backend", "x11")
	w := &x11Window{
		conn:      conn,
		host:      conn,
		atoms:     conn.atoms,
		embedded:  parent != 0,
		resizable: cnf.resizable(),
		minSize:   cnf.Size,
		maxSize:   cnf.Size,
		scale:     conn.readScale(),
		visible:   cnf.Visible,
		done:      make(chan struct{}),
	}
	if w.resizable {
		w.minSize, w.maxSize = *cnf.MinSize, *cnf.MaxSize
	}
	if parent == 0 {
		parent = conn.xu.RootWin()
	}
	if cnf.Transparent || cnf.Blur {
		log.Debug("transparency is not supported")
	}

	// The GL framebuffer configuration decides the window visual.
	var (
		glx    *glxDisplay
		fbc    glxConfig
		glFail error
	)
	if cnf.GL != nil {
		glx, glFail = conn.display()
		if glFail == nil {
			fbc, glFail = glx.chooseConfig(*cnf.GL)
		}
		if glFail != nil {
			if !cnf.GL.Optional {
				return nil, glFail
			}
			log.Info("OpenGL unavailable", "err", glFail)
		}
	}

	xid, err := xproto.NewWindowId(xc)
	if err != nil {
		return nil, platformErr("CreateWindow", err)
	}
	mask := uint32(xproto.CwEventMask)
	values := []uint32{x11EventMask}
	var (
		depth  byte = xproto.WindowClassCopyFromParent
		visual      = xproto.Visualid(xproto.WindowClassCopyFromParent)
	)
	if cnf.GL != nil && glFail == nil {
		cmap, err := xproto.NewColormapId(xc)
		if err != nil {
			return nil, platformErr("CreateColormap", err)
		}
		if err := xproto.CreateColormapChecked(xc, xproto.ColormapAllocNone, cmap, parent, fbc.visual).Check(); err != nil {
			return nil, platformErr("CreateColormap", err)
		}
		w.colormap = cmap
		depth, visual = fbc.depth, fbc.visual
		// A visual other than the parent's requires a border pixel and
		// colormap.
		mask = xproto.CwBorderPixel | xproto.CwEventMask | xproto.CwColormap
		values = []uint32{0, x11EventMask, uint32(cmap)}
	}
	defer func() {
		if err != nil && w.colormap != 0 {
			xproto.FreeColormap(xc, w.colormap)
		}
	}()
	width, height := x11Extent(cnf.Size)
	err = xproto.CreateWindowChecked(xc, depth, xid, parent, 0, 0, width, height, 0,
		xproto.WindowClassInputOutput, visual, mask, values).Check()
	if err != nil {
		return nil, platformErr("CreateWindow", err)
	}
	w.xid = xid
	defer func() {
		if err != nil {
			xproto.DestroyWindow(xc, xid)
		}
	}()

	if err := w.setProperties(cnf); err != nil {
		return nil, err
	}

	if cnf.GL != nil && glFail == nil {
		ctx, err := newGLXContext(glx, fbc, xid, *cnf.GL, log)
		switch {
		case err == nil:
			w.gl = ctx
			w.ctx = ctx
		case cnf.GL.Optional:
			log.Info("OpenGL unavailable", "err", err)
		default:
			return nil, err
		}
	}

	w.w = newWindow(w, log)
	w.w.start(f)
	w.w.event(system.ScaleEvent{Scale: w.scale})
	conn.register(w)
	conn.pacer.Register(xid)

	if cnf.Visible {
		xproto.MapWindow(xc, xid)
	}
	if cnf.Position != nil && !w.embedded {
		x, y := cnf.Position.Round()
		xproto.ConfigureWindow(xc, xid, xproto.ConfigWindowX|xproto.ConfigWindowY,
			[]uint32{uint32(x), uint32(y)})
	}
	return w, nil
}

// setProperties announces the window to the window manager.
func (w *x11Window) setProperties(cnf config) error {
	xu := w.conn.xu
	if err := icccm.WmProtocolsSet(xu, w.xid, []string{"WM_DELETE_WINDOW"}); err != nil {
		return platformErr("WM_PROTOCOLS", err)
	}
	if err := icccm.WmNormalHintsSet(xu, w.xid, w.normalHints(cnf.Size)); err != nil {
		return platformErr("WM_NORMAL_HINTS", err)
	}
	if err := w.setName(cnf.Title); err != nil {
		return platformErr("WM_NAME", err)
	}
	typ := "_NET_WM_WINDOW_TYPE_NORMAL"
	if !cnf.Decorated {
		typ = "_NET_WM_WINDOW_TYPE_DOCK"
	}
	if err := ewmh.WmWindowTypeSet(xu, w.xid, []string{typ}); err != nil {
		return platformErr("_NET_WM_WINDOW_TYPE", err)
	}
	decor := uint(motif.DecorationNone)
	if cnf.Decorated {
		decor = motif.DecorationAll
	}
	hints := &motif.Hints{Flags: motif.HintDecorations, Decoration: decor}
	if err := motif.WmHintsSet(xu, w.xid, hints); err != nil {
		return platformErr("_MOTIF_WM_HINTS", err)
	}
	return nil
}

func (w *x11Window) setName(title string) error {
	if err := icccm.WmNameSet(w.conn.xu, w.xid, title); err != nil {
		return err
	}
	return ewmh.WmNameSet(w.conn.xu, w.xid, title)
}

// normalHints pins the size range of a fixed size window to sz.
func (w *x11Window) normalHints(sz system.Size) *icccm.NormalHints {
	minSize, maxSize := w.minSize, w.maxSize
	if !w.resizable {
		minSize, maxSize = sz, sz
	}
	return &icccm.NormalHints{
		Flags:     icccm.SizeHintPSize | icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		Width:     uint(sz.Width),
		Height:    uint(sz.Height),
		MinWidth:  uint(minSize.Width),
		MinHeight: uint(minSize.Height),
		MaxWidth:  uint(maxSize.Width),
		MaxHeight: uint(maxSize.Height),
	}
}

// x11Extent clamps a size to the range of the protocol.
func x11Extent(sz system.Size) (uint16, uint16) {
	clamp := func(v uint32) uint16 {
		return uint16(min(max(v, 1), 0xFFFF))
	}
	return clamp(sz.Width), clamp(sz.Height)
}

// handleEvent runs on the connection's reader.
func (w *x11Window) handleEvent(ev xgb.Event) {
	if w.dead {
		return
	}
	switch ev := ev.(type) {
	case xproto.ClientMessageEvent:
		w.clientMessage(ev)
	case xproto.ConfigureNotifyEvent:
		origin := f32.Pt(float32(ev.X), float32(ev.Y))
		if w.w.state.Move(origin) {
			w.w.event(system.MoveEvent{Origin: origin})
		}
		sz := system.Size{Width: uint32(ev.Width), Height: uint32(ev.Height)}
		if w.w.state.Resize(sz) {
			w.w.event(system.ResizeEvent{Size: sz})
		}
		w.host.markMoved()
	case xproto.ExposeEvent:
		w.w.event(system.InvalidateEvent{
			Top:    uint32(ev.Y),
			Left:   uint32(ev.X),
			Bottom: uint32(ev.Y) + uint32(ev.Height),
			Right:  uint32(ev.X) + uint32(ev.Width),
		})
	case xproto.ButtonPressEvent:
		w.modifiers(keymap.X11Modifiers(ev.State))
		var e event.Event
		switch ev.Detail {
		case 4:
			e = pointer.ScrollEvent{Y: 1}
		case 5:
			e = pointer.ScrollEvent{Y: -1}
		case 6:
			e = pointer.ScrollEvent{X: 1}
		case 7:
			e = pointer.ScrollEvent{X: -1}
		default:
			btn, ok := x11Button(ev.Detail)
			if !ok {
				return
			}
			w.w.state.Press()
			e = pointer.PressEvent{Button: btn}
		}
		w.move(ev.EventX, ev.EventY)
		w.w.event(e)
	case xproto.ButtonReleaseEvent:
		w.modifiers(keymap.X11Modifiers(ev.State))
		btn, ok := x11Button(ev.Detail)
		if !ok {
			return
		}
		w.w.state.Release()
		w.move(ev.EventX, ev.EventY)
		w.w.event(pointer.ReleaseEvent{Button: btn})
	case xproto.MotionNotifyEvent:
		w.modifiers(keymap.X11Modifiers(ev.State))
		w.move(ev.EventX, ev.EventY)
	case xproto.LeaveNotifyEvent:
		if ev.State&x11ButtonMask != 0 {
			return
		}
		w.w.event(pointer.LeaveEvent{})
		w.w.event(pointer.MoveEvent{})
	case xproto.KeyPressEvent:
		w.key(byte(ev.Detail), ev.State, true)
	case xproto.KeyReleaseEvent:
		w.key(byte(ev.Detail), ev.State, false)
	case xproto.FocusInEvent:
		if w.w.state.Focus(true) {
			w.w.event(system.FocusEvent{Focus: true})
		}
	case xproto.FocusOutEvent:
		if w.w.state.Focus(false) {
			w.w.event(system.FocusEvent{Focus: false})
		}
	case xproto.DestroyNotifyEvent:
		w.destroy(false)
	}
}

func (w *x11Window) clientMessage(ev xproto.ClientMessageEvent) {
	atoms := w.atoms
	switch ev.Type {
	case atoms.frame:
		w.framePending.Store(false)
		w.w.event(system.FrameEvent{GL: w.ctx})
	case atoms.wakeup:
		w.w.event(system.WakeupEvent{})
	case atoms.close:
		w.destroy(true)
	case atoms.protocols:
		if ev.Format == 32 && xproto.Atom(ev.Data.Data32[0]) == atoms.deleteWindow {
			w.w.event(system.CloseEvent{})
			w.destroy(true)
		}
	}
}

func x11Button(detail xproto.Button) (pointer.Button, bool) {
	switch detail {
	case 1:
		return pointer.ButtonLeft, true
	case 2:
		return pointer.ButtonMiddle, true
	case 3:
		return pointer.ButtonRight, true
	case 8:
		return pointer.ButtonBack, true
	case 9:
		return pointer.ButtonForward, true
	}
	return 0, false
}

func (w *x11Window) move(x, y int16) {
	w.w.event(pointer.MoveEvent{Position: &f32.Point{X: float32(x), Y: float32(y)}})
}

func (w *x11Window) modifiers(m key.Modifiers) {
	if w.w.state.SetModifiers(m) {
		w.w.event(key.ModifiersEvent{Modifiers: m})
	}
}

func (w *x11Window) key(detail byte, state uint16, press bool) {
	w.modifiers(keymap.X11KeyModifiers(state, detail, press))
	code := keymap.X11(detail)
	if code == key.CodeUnknown {
		return
	}
	// There is no default action to suppress.
	var capture bool
	if press {
		w.w.event(key.PressEvent{Code: code, Capture: &capture})
	} else {
		w.w.event(key.ReleaseEvent{Code: code, Capture: &capture})
	}
}

// destroy tears the window down on the reader. native is false when the
// server has already destroyed the window.
func (w *x11Window) destroy(native bool) {
	if w.dead {
		return
	}
	w.dead = true
	w.host.detach(w.xid)
	w.w.drop()
	if w.gl != nil {
		w.gl.release()
		w.gl, w.ctx = nil, nil
	}
	w.host.dispose(w.xid, w.colormap, native)
	close(w.done)
}

func (w *x11Window) debug(op string, err error) {
	if err != nil {
		w.w.log.Debug(op, "err", err)
	}
}

func (w *x11Window) requestClose() {
	xc := w.conn.xu.Conn()
	w.debug("close", xproto.SendEventChecked(xc, false, w.xid, xproto.EventMaskNoEvent,
		clientMessage(w.xid, w.conn.atoms.close)).Check())
}

func (w *x11Window) handle() RawHandle {
	return X11Handle{Window: uint32(w.xid)}
}

func (w *x11Window) setTitle(title string) {
	w.debug("set title", w.setName(title))
}

func (w *x11Window) setCursor(c pointer.Cursor) {
	cur, err := w.conn.cursors.get(c)
	if err != nil {
		w.w.log.Debug("load cursor", "cursor", c, "err", err)
		return
	}
	xproto.ChangeWindowAttributes(w.conn.xu.Conn(), w.xid, xproto.CwCursor, []uint32{uint32(cur)})
}

func (w *x11Window) setCursorPosition(p f32.Point) {
	x, y := p.Round()
	xproto.WarpPointer(w.conn.xu.Conn(), 0, w.xid, 0, 0, 0, 0, int16(x), int16(y))
}

func (w *x11Window) setSize(sz system.Size) {
	w.debug("size hints", icccm.WmNormalHintsSet(w.conn.xu, w.xid, w.normalHints(sz)))
	width, height := x11Extent(sz)
	xproto.ConfigureWindow(w.conn.xu.Conn(), w.xid, xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(width), uint32(height)})
}

func (w *x11Window) setPosition(p f32.Point) {
	x, y := p.Round()
	xproto.ConfigureWindow(w.conn.xu.Conn(), w.xid, xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(x), uint32(y)})
	w.w.state.Move(p)
}

func (w *x11Window) setVisible(visible bool) {
	if w.visible == visible {
		return
	}
	w.visible = visible
	xc := w.conn.xu.Conn()
	if !visible {
		xproto.UnmapWindow(xc, w.xid)
		return
	}
	xproto.MapWindow(xc, w.xid)
	// Window managers may forget the geometry of unmapped windows.
	var (
		mask   uint16
		values []uint32
	)
	if p, ok := w.w.state.Position(); ok {
		x, y := p.Round()
		mask |= xproto.ConfigWindowX | xproto.ConfigWindowY
		values = append(values, uint32(x), uint32(y))
	}
	if sz := w.w.state.Size(); sz != (system.Size{}) {
		width, height := x11Extent(sz)
		mask |= xproto.ConfigWindowWidth | xproto.ConfigWindowHeight
		values = append(values, uint32(width), uint32(height))
	}
	if mask != 0 {
		xproto.ConfigureWindow(xc, w.xid, mask, values)
	}
}

func (w *x11Window) setKeyboardInput(focus bool) {
	xc := w.conn.xu.Conn()
	if !focus {
		xproto.UngrabKeyboard(xc, xproto.TimeCurrentTime)
		return
	}
	_, err := xproto.GrabKeyboard(xc, false, w.xid, xproto.TimeCurrentTime,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
	w.debug("grab keyboard", err)
}

// urlOpeners are tried in order.
var urlOpeners = [][]string{
	{"xdg-open"},
	{"gio", "open"},
	{"gnome-open"},
	{"kde-open"},
}

func (w *x11Window) openURL(url string) bool {
	for _, o := range urlOpeners {
		err := spawnDetached(o[0], append(o[1:], url)...)
		if err == nil {
			return true
		}
		w.w.log.Debug("open url", "cmd", o[0], "err", err)
	}
	return false
}

func (w *x11Window) readClipboard() (string, bool) {
	s, err := clipboard.ReadAll()
	if err != nil {
		w.debug("read clipboard", err)
		return "", false
	}
	return s, true
}

func (w *x11Window) writeClipboard(s string) bool {
	if err := clipboard.WriteAll(s); err != nil {
		w.debug("write clipboard", err)
		return false
	}
	return true
}

func (w *x11Window) wakeup() error {
	xc := w.conn.xu.Conn()
	err := xproto.SendEventChecked(xc, false, w.xid, xproto.EventMaskNoEvent,
		clientMessage(w.xid, w.conn.atoms.wakeup)).Check()
	if err != nil {
		return errors.Join(ErrDisconnected, fmt.Errorf("wakeup: %w", err))
	}
	return nil
}
