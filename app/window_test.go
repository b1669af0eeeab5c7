// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picoview.org/f32"
	"picoview.org/gl"
	"picoview.org/io/event"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

// fakeDriver records the native calls made by the facade.
type fakeDriver struct {
	calls []string
	w     *Window
	// deferClose leaves the teardown to the test, like a backend
	// that destroys the window on a later message.
	deferClose bool
}

func (d *fakeDriver) record(c string)               { d.calls = append(d.calls, c) }
func (d *fakeDriver) handle() RawHandle             { d.record("handle"); return X11Handle{Window: 42} }
func (d *fakeDriver) setTitle(string)               { d.record("title") }
func (d *fakeDriver) setCursor(pointer.Cursor)      { d.record("cursor") }
func (d *fakeDriver) setCursorPosition(f32.Point)   { d.record("warp") }
func (d *fakeDriver) setSize(system.Size)           { d.record("size") }
func (d *fakeDriver) setPosition(f32.Point)         { d.record("position") }
func (d *fakeDriver) setVisible(bool)               { d.record("visible") }
func (d *fakeDriver) setKeyboardInput(bool)         { d.record("keyboard") }
func (d *fakeDriver) openURL(string) bool           { d.record("url"); return true }
func (d *fakeDriver) readClipboard() (string, bool) { d.record("read"); return "x", true }
func (d *fakeDriver) writeClipboard(string) bool    { d.record("write"); return true }
func (d *fakeDriver) requestClose() {
	d.record("close")
	if !d.deferClose {
		d.w.drop()
	}
}

func (d *fakeDriver) wakeup() error {
	d.record("wakeup")
	d.w.event(system.WakeupEvent{})
	return nil
}

func newFakeWindow(t *testing.T, h Handler) (*Window, *fakeDriver) {
	t.Helper()
	d := new(fakeDriver)
	w := newWindow(d, slog.Default())
	d.w = w
	w.start(func(*Window) Handler { return h })
	return w, d
}

func exercise(w *Window) {
	w.Handle()
	w.SetTitle("t")
	w.SetCursor(pointer.CursorHand)
	w.SetCursorPosition(f32.Pt(1, 2))
	w.SetSize(system.Size{Width: 1, Height: 1})
	w.SetPosition(f32.Pt(3, 4))
	w.SetVisible(false)
	w.SetKeyboardInput(true)
	w.OpenURL("https://example.com")
	w.ReadClipboard()
	w.WriteClipboard("y")
}

func TestBuilderDefaults(t *testing.T) {
	b := NewBuilder(func(*Window) Handler { return func(event.Event) {} })
	assert.Equal(t, system.Size{Width: 200, Height: 200}, b.cnf.Size)
	assert.True(t, b.cnf.Visible)
	assert.True(t, b.cnf.Decorated)
	assert.False(t, b.cnf.Transparent)
	assert.False(t, b.cnf.Blur)
	assert.Nil(t, b.cnf.Position)
	assert.False(t, b.cnf.resizable())
	assert.Nil(t, b.cnf.GL)
	assert.NotNil(t, b.cnf.Logger)
}

func TestBuilderOptions(t *testing.T) {
	min, max := system.Size{Width: 100, Height: 50}, system.Size{Width: 800, Height: 600}
	b := NewBuilder(nil,
		Title("picoview test - startup"),
		Size(512, 256),
		Position(100, 200),
		Resizable(min, max),
		Visible(false),
		Decorated(false),
		Transparent(true),
		Blur(true),
		OpenGL(gl.DefaultConfig()),
		Size(640, 480),
	)
	c := b.cnf
	assert.Equal(t, "picoview test - startup", c.Title)
	assert.Equal(t, system.Size{Width: 640, Height: 480}, c.Size, "later options win")
	require.NotNil(t, c.Position)
	assert.Equal(t, f32.Pt(100, 200), *c.Position)
	assert.True(t, c.resizable())
	assert.Equal(t, min, *c.MinSize)
	assert.Equal(t, max, *c.MaxSize)
	assert.False(t, c.Visible)
	assert.False(t, c.Decorated)
	assert.True(t, c.Transparent)
	assert.True(t, c.Blur)
	require.NotNil(t, c.GL)
	assert.Equal(t, gl.DefaultConfig(), *c.GL)
}

func TestBuilderConsumed(t *testing.T) {
	b := NewBuilder(func(*Window) Handler { return func(event.Event) {} })
	_, err := b.take()
	require.NoError(t, err)
	_, err = b.take()
	assert.ErrorIs(t, err, ErrConsumed)
	assert.ErrorIs(t, b.OpenBlocking(), ErrConsumed)
}

func TestOpenEmbeddedNilParent(t *testing.T) {
	b := NewBuilder(func(*Window) Handler { return func(event.Event) {} })
	assert.ErrorIs(t, b.OpenEmbedded(nil), ErrInvalidParent)
}

func TestParentHandle(t *testing.T) {
	h, err := parentHandle[X11Handle](X11Handle{Window: 7})
	require.NoError(t, err)
	assert.Equal(t, uint32(7), h.Window)

	_, err = parentHandle[X11Handle](Win32Handle{HWND: 1})
	assert.ErrorIs(t, err, ErrInvalidParent)
	_, err = parentHandle[Win32Handle](AppKitHandle{View: 1})
	assert.ErrorIs(t, err, ErrInvalidParent)
	_, err = parentHandle[AppKitHandle](nil)
	assert.ErrorIs(t, err, ErrInvalidParent)
}

func TestOpenIsFirstEvent(t *testing.T) {
	var events []event.Event
	_, _ = newFakeWindow(t, func(e event.Event) { events = append(events, e) })
	require.NotEmpty(t, events)
	assert.Equal(t, system.OpenEvent{}, events[0])
	assert.Len(t, events, 1)
}

func TestCloseIsIdempotent(t *testing.T) {
	var events []event.Event
	w, d := newFakeWindow(t, func(e event.Event) { events = append(events, e) })
	exercise(w)
	open := len(d.calls)
	assert.Equal(t, 11, open)

	w.Close()
	assert.Equal(t, "close", d.calls[len(d.calls)-1])
	closed := len(d.calls)
	for i := 0; i < 3; i++ {
		w.Close()
		exercise(w)
		assert.Nil(t, w.Handle())
		w.event(system.FrameEvent{})
	}
	assert.Len(t, d.calls, closed, "native call after close")
	assert.Equal(t, []event.Event{system.OpenEvent{}, system.DestroyEvent{}}, events)
	assert.ErrorIs(t, w.Waker().Wakeup(), ErrDisconnected)
}

func TestOnlyDestroyAfterClose(t *testing.T) {
	var events []event.Event
	w, d := newFakeWindow(t, func(e event.Event) { events = append(events, e) })
	d.deferClose = true
	w.Close()
	// Native events arriving before the teardown are discarded.
	w.event(system.FrameEvent{})
	w.event(system.CloseEvent{})
	w.event(pointer.LeaveEvent{})
	assert.Equal(t, []event.Event{system.OpenEvent{}}, events)
	w.drop()
	w.drop()
	w.event(system.FrameEvent{})
	assert.Equal(t, []event.Event{system.OpenEvent{}, system.DestroyEvent{}}, events)
}

func TestCloseFromHandler(t *testing.T) {
	var events []event.Event
	var w *Window
	w, _ = newFakeWindow(t, func(e event.Event) {
		events = append(events, e)
		if _, ok := e.(system.FrameEvent); ok {
			w.Close()
			// Still inside the handler: nothing may be delivered.
			assert.Len(t, events, 2)
		}
	})
	w.event(system.FrameEvent{})
	w.event(system.FrameEvent{})
	assert.Equal(t, []event.Event{
		system.OpenEvent{},
		system.FrameEvent{},
		system.DestroyEvent{},
	}, events)
}

func TestCursorCached(t *testing.T) {
	w, d := newFakeWindow(t, func(event.Event) {})
	w.SetCursor(pointer.CursorDefault)
	w.SetCursor(pointer.CursorText)
	w.SetCursor(pointer.CursorText)
	assert.Equal(t, []string{"cursor"}, d.calls)
}

func TestWaker(t *testing.T) {
	var events []event.Event
	w, _ := newFakeWindow(t, func(e event.Event) { events = append(events, e) })
	require.NoError(t, w.Waker().Wakeup())
	assert.Equal(t, []event.Event{system.OpenEvent{}, system.WakeupEvent{}}, events)
}

func TestErrors(t *testing.T) {
	cause := errors.New("BadMatch")
	var err error = platformErr("CreateWindow", cause)
	var pe *PlatformError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "CreateWindow", pe.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "app: CreateWindow: BadMatch", err.Error())

	err = glErr("no matching config", nil)
	var ge *OpenGLError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "app: opengl: no matching config", err.Error())
}
