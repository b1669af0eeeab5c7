// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

package app

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xprop"

	"picoview.org/app/internal/pacer"
	"picoview.org/app/internal/shared"
	"picoview.org/app/internal/xresource"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

// fallbackInterval paces frames when RandR reports no refresh rate.
const fallbackInterval = 15 * time.Millisecond

// x11Conn is the per-process X11 state shared by all windows. Its reader
// goroutine delivers the events of every window.
type x11Conn struct {
	xu      *xgbutil.XUtil
	log     *slog.Logger
	atoms   x11Atoms
	cursors *cursorCache[xproto.Cursor]
	pacer   *pacer.Pacer[xproto.Window]
	present *presentVSync

	mu      sync.Mutex
	windows map[xproto.Window]*x11Window
	glx     *glxDisplay
	glxErr  error
}

type x11Atoms struct {
	frame           xproto.Atom
	wakeup          xproto.Atom
	close           xproto.Atom
	protocols       xproto.Atom
	deleteWindow    xproto.Atom
	resourceManager xproto.Atom
}

// x11Shared is wired in init: teardown on the reader releases it.
var x11Shared shared.Value[x11Conn]

func init() {
	x11Shared.New = newX11Conn
	x11Shared.Destroy = (*x11Conn).destroy
}

func newX11Conn() (*x11Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, platformErr("XOpenDisplay", err)
	}
	c := &x11Conn{
		xu:      xu,
		log:     defaultLogger().With("backend", "x11"),
		windows: make(map[xproto.Window]*x11Window),
	}
	if err := c.internAtoms(); err != nil {
		xu.Conn().Close()
		return nil, platformErr("InternAtom", err)
	}
	c.cursors = newCursorCache(c.loadCursor)
	// Watch RESOURCE_MANAGER for Xft.dpi changes.
	xproto.ChangeWindowAttributes(xu.Conn(), xu.RootWin(), xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange})
	rate := &randrVSync{conn: xu.Conn(), root: xu.RootWin(), log: c.log}
	var src pacer.Source[xproto.Window] = rate
	if hasExtension(xu.Conn(), "Present") {
		p, err := newPresentVSync(rate, c.log)
		if err != nil {
			c.log.Debug("present pacing unavailable", "err", err)
		} else {
			c.present, src = p, p
		}
	}
	c.log.Debug("connected", "present", c.present != nil)
	c.pacer = pacer.New(src, c.tick)
	go c.run()
	return c, nil
}

func (c *x11Conn) internAtoms() error {
	var err error
	atom := func(name string) xproto.Atom {
		a, aerr := xprop.Atm(c.xu, name)
		if aerr != nil && err == nil {
			err = aerr
		}
		return a
	}
	c.atoms = x11Atoms{
		frame:           atom("_PICOVIEW_FRAME"),
		wakeup:          atom("PICOVIEW_WAKEUP"),
		close:           atom("PICOVIEW_CLOSE"),
		protocols:       atom("WM_PROTOCOLS"),
		deleteWindow:    atom("WM_DELETE_WINDOW"),
		resourceManager: atom("RESOURCE_MANAGER"),
	}
	return err
}

// destroy runs when the last window is gone, possibly on the reader. It
// must not wait for the reader to exit.
func (c *x11Conn) destroy() {
	c.pacer.Close()
	if c.present != nil {
		c.present.close()
	}
	c.cursors.drain(func(cur xproto.Cursor) {
		xproto.FreeCursor(c.xu.Conn(), cur)
	})
	c.mu.Lock()
	if c.glx != nil {
		c.glx.close()
		c.glx = nil
	}
	c.mu.Unlock()
	// Closing the connection makes WaitForEvent return nil, nil.
	c.xu.Conn().Close()
}

// display returns the Xlib display for GLX, opening it on first use.
func (c *x11Conn) display() (*glxDisplay, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.glx == nil && c.glxErr == nil {
		c.glx, c.glxErr = openGLXDisplay()
	}
	return c.glx, c.glxErr
}

func (c *x11Conn) register(w *x11Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windows[w.xid] = w
}

func (c *x11Conn) unregister(xid xproto.Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.windows, xid)
}

func (c *x11Conn) markMoved() {
	c.pacer.MarkMoved()
}

func (c *x11Conn) detach(xid xproto.Window) {
	c.pacer.Unregister(xid)
	c.unregister(xid)
}

func (c *x11Conn) dispose(xid xproto.Window, cmap xproto.Colormap, native bool) {
	xc := c.xu.Conn()
	if native {
		xproto.DestroyWindow(xc, xid)
	}
	if cmap != 0 {
		xproto.FreeColormap(xc, cmap)
	}
	x11Shared.Release()
}

func (c *x11Conn) lookup(xid xproto.Window) *x11Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.windows[xid]
}

func (c *x11Conn) snapshot() []*x11Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	ws := make([]*x11Window, 0, len(c.windows))
	for _, w := range c.windows {
		ws = append(ws, w)
	}
	return ws
}

// run reads events until the connection is closed.
func (c *x11Conn) run() {
	// GL contexts are made current on this goroutine.
	runtime.LockOSThread()
	xc := c.xu.Conn()
	for {
		ev, xerr := xc.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			c.log.Debug("x11", "err", xerr)
			continue
		}
		c.dispatch(ev)
	}
}

func (c *x11Conn) dispatch(ev xgb.Event) {
	if p, ok := ev.(xproto.PropertyNotifyEvent); ok {
		if p.Window == c.xu.RootWin() && p.Atom == c.atoms.resourceManager {
			c.rescale()
		}
		return
	}
	xid, ok := eventWindow(ev)
	if !ok {
		return
	}
	if w := c.lookup(xid); w != nil {
		w.handleEvent(ev)
	}
}

// eventWindow returns the window an event is reported to.
func eventWindow(ev xgb.Event) (xproto.Window, bool) {
	switch ev := ev.(type) {
	case xproto.KeyPressEvent:
		return ev.Event, true
	case xproto.KeyReleaseEvent:
		return ev.Event, true
	case xproto.ButtonPressEvent:
		return ev.Event, true
	case xproto.ButtonReleaseEvent:
		return ev.Event, true
	case xproto.MotionNotifyEvent:
		return ev.Event, true
	case xproto.LeaveNotifyEvent:
		return ev.Event, true
	case xproto.FocusInEvent:
		return ev.Event, true
	case xproto.FocusOutEvent:
		return ev.Event, true
	case xproto.ExposeEvent:
		return ev.Window, true
	case xproto.ConfigureNotifyEvent:
		return ev.Window, true
	case xproto.DestroyNotifyEvent:
		return ev.Window, true
	case xproto.ClientMessageEvent:
		return ev.Window, true
	}
	return 0, false
}

// tick runs on the pacer worker.
func (c *x11Conn) tick(xid xproto.Window) {
	w := c.lookup(xid)
	if w == nil || !w.framePending.CompareAndSwap(false, true) {
		return
	}
	xproto.SendEvent(c.xu.Conn(), false, xid, xproto.EventMaskNoEvent, clientMessage(xid, c.atoms.frame))
}

// clientMessage encodes a ClientMessage for one of our windows. Sent with
// an empty event mask, the server delivers it to the creating client,
// this one.
func clientMessage(xid xproto.Window, typ xproto.Atom) string {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xid,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(make([]uint32, 5)),
	}
	return string(ev.Bytes())
}

func (c *x11Conn) readScale() float32 {
	reply, err := xprop.GetProperty(c.xu, c.xu.RootWin(), "RESOURCE_MANAGER")
	if err != nil {
		return 1
	}
	return xresource.Parse(string(reply.Value)).Scale()
}

func (c *x11Conn) rescale() {
	s := c.readScale()
	for _, w := range c.snapshot() {
		if w.scale != s {
			w.scale = s
			w.w.event(system.ScaleEvent{Scale: s})
		}
	}
}

func hasExtension(xc *xgb.Conn, name string) bool {
	reply, err := xproto.QueryExtension(xc, uint16(len(name)), name).Reply()
	return err == nil && reply.Present
}

// Glyphs of the X core cursor font.
const (
	glyphBottomLeftCorner  = 12
	glyphBottomRightCorner = 14
	glyphBottomSide        = 16
	glyphCrosshair         = 34
	glyphExchange          = 50
	glyphFleur             = 52
	glyphHand2             = 60
	glyphLeftPtr           = 68
	glyphLeftSide          = 70
	glyphPirate            = 88
	glyphPlus              = 90
	glyphQuestionArrow     = 92
	glyphRightSide         = 96
	glyphSbHDoubleArrow    = 108
	glyphSbVDoubleArrow    = 116
	glyphSizing            = 120
	glyphTarget            = 128
	glyphTopLeftCorner     = 134
	glyphTopRightCorner    = 136
	glyphTopSide           = 138
	glyphWatch             = 150
	glyphXterm             = 152
)

func cursorGlyph(c pointer.Cursor) uint16 {
	switch c {
	case pointer.CursorHand:
		return glyphHand2
	case pointer.CursorHandGrabbing, pointer.CursorMove, pointer.CursorAllScroll:
		return glyphFleur
	case pointer.CursorHelp:
		return glyphQuestionArrow
	case pointer.CursorText, pointer.CursorVerticalText:
		return glyphXterm
	case pointer.CursorWorking, pointer.CursorPtrWorking:
		return glyphWatch
	case pointer.CursorNotAllowed, pointer.CursorPtrNotAllowed:
		return glyphPirate
	case pointer.CursorZoomIn, pointer.CursorZoomOut:
		return glyphTarget
	case pointer.CursorAlias:
		return glyphExchange
	case pointer.CursorCopy, pointer.CursorCell:
		return glyphPlus
	case pointer.CursorCrosshair:
		return glyphCrosshair
	case pointer.CursorEResize:
		return glyphRightSide
	case pointer.CursorNResize:
		return glyphTopSide
	case pointer.CursorNeResize:
		return glyphTopRightCorner
	case pointer.CursorNwResize:
		return glyphTopLeftCorner
	case pointer.CursorSResize:
		return glyphBottomSide
	case pointer.CursorSeResize:
		return glyphBottomRightCorner
	case pointer.CursorSwResize:
		return glyphBottomLeftCorner
	case pointer.CursorWResize:
		return glyphLeftSide
	case pointer.CursorEwResize, pointer.CursorColResize:
		return glyphSbHDoubleArrow
	case pointer.CursorNsResize, pointer.CursorRowResize:
		return glyphSbVDoubleArrow
	case pointer.CursorNwseResize, pointer.CursorNeswResize:
		return glyphSizing
	default:
		return glyphLeftPtr
	}
}

func (c *x11Conn) loadCursor(p pointer.Cursor) (xproto.Cursor, error) {
	if p == pointer.CursorHidden {
		return c.emptyCursor()
	}
	return xcursor.CreateCursor(c.xu, cursorGlyph(p))
}

// emptyCursor creates a cursor from a blank 1x1 bitmap.
func (c *x11Conn) emptyCursor() (xproto.Cursor, error) {
	xc := c.xu.Conn()
	pix, err := xproto.NewPixmapId(xc)
	if err != nil {
		return 0, err
	}
	cur, err := xproto.NewCursorId(xc)
	if err != nil {
		return 0, err
	}
	if err := xproto.CreatePixmapChecked(xc, 1, pix, xproto.Drawable(c.xu.RootWin()), 1, 1).Check(); err != nil {
		return 0, err
	}
	defer xproto.FreePixmap(xc, pix)
	err = xproto.CreateCursorChecked(xc, cur, pix, pix, 0, 0, 0, 0, 0, 0, 0, 0).Check()
	return cur, err
}

// randrVSync paces frames by the refresh rate RandR reports. It is the
// pacer source without the Present extension, and reports the interval
// for presentVSync.
type randrVSync struct {
	conn *xgb.Conn
	root xproto.Window
	log  *slog.Logger

	once    sync.Once
	initErr error
}

func (s *randrVSync) Select(ids []xproto.Window) time.Duration {
	d, err := s.frameTime()
	if err != nil {
		s.log.Debug("refresh rate", "err", err)
		return fallbackInterval
	}
	return d
}

func (s *randrVSync) Wait() bool {
	return false
}

// frameTime returns the frame time of the fastest active CRTC.
func (s *randrVSync) frameTime() (time.Duration, error) {
	s.once.Do(func() {
		s.initErr = randr.Init(s.conn)
	})
	if s.initErr != nil {
		return 0, s.initErr
	}
	res, err := randr.GetScreenResourcesCurrent(s.conn, s.root).Reply()
	if err != nil {
		return 0, err
	}
	modes := make(map[randr.Mode]randr.ModeInfo, len(res.Modes))
	for _, m := range res.Modes {
		modes[randr.Mode(m.Id)] = m
	}
	var best float64
	for _, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(s.conn, crtc, res.ConfigTimestamp).Reply()
		if err != nil || info.Mode == 0 {
			continue
		}
		if m, ok := modes[info.Mode]; ok {
			best = max(best, modeRate(m.DotClock, m.Htotal, m.Vtotal))
		}
	}
	if best <= 0 {
		return 0, errors.New("no active CRTC")
	}
	return time.Duration(float64(time.Second) / best), nil
}

// modeRate returns the refresh rate in Hz of a video mode.
func modeRate(dotClock uint32, hTotal, vTotal uint16) float64 {
	if hTotal == 0 || vTotal == 0 {
		return 0
	}
	return float64(dotClock) / (float64(hTotal) * float64(vTotal))
}
