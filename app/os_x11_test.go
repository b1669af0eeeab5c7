// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

package app

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picoview.org/f32"
	"picoview.org/io/event"
	"picoview.org/io/key"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

// fakeHost records connection calls in the same log as the events.
type fakeHost struct {
	log   *[]string
	moved int
}

func (h *fakeHost) markMoved() { h.moved++ }

func (h *fakeHost) detach(xid xproto.Window) {
	*h.log = append(*h.log, fmt.Sprintf("detach %d", xid))
}

func (h *fakeHost) dispose(xid xproto.Window, cmap xproto.Colormap, native bool) {
	*h.log = append(*h.log, fmt.Sprintf("dispose %d %d %v", xid, cmap, native))
}

var testAtoms = x11Atoms{
	frame:        101,
	wakeup:       102,
	close:        103,
	protocols:    104,
	deleteWindow: 105,
}

// newTestX11Window returns a window fed by handleEvent directly, and
// the log of its events and host calls.
func newTestX11Window(t *testing.T) (*x11Window, *fakeHost, *[]string) {
	t.Helper()
	log := new([]string)
	h := &fakeHost{log: log}
	w := &x11Window{
		host:     h,
		atoms:    testAtoms,
		xid:      5,
		colormap: 9,
		done:     make(chan struct{}),
	}
	w.w = newWindow(w, slog.Default())
	w.w.start(func(*Window) Handler {
		return func(e event.Event) {
			*log = append(*log, describe(e))
		}
	})
	*log = nil
	return w, h, log
}

func describe(e event.Event) string {
	switch e := e.(type) {
	case pointer.MoveEvent:
		if e.Position == nil {
			return "move"
		}
		return "move " + e.Position.String()
	case key.PressEvent:
		return fmt.Sprintf("press %v", e.Code)
	case key.ReleaseEvent:
		return fmt.Sprintf("release %v", e.Code)
	}
	return fmt.Sprintf("%T%+v", e, e)
}

func deleteWindowMessage(atoms x11Atoms) xproto.ClientMessageEvent {
	return xproto.ClientMessageEvent{
		Format: 32,
		Window: 5,
		Type:   atoms.protocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(atoms.deleteWindow), 0, 0, 0, 0}),
	}
}

func TestX11ScrollNotches(t *testing.T) {
	tests := []struct {
		detail xproto.Button
		want   pointer.ScrollEvent
	}{
		{4, pointer.ScrollEvent{Y: 1}},
		{5, pointer.ScrollEvent{Y: -1}},
		{6, pointer.ScrollEvent{X: 1}},
		{7, pointer.ScrollEvent{X: -1}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.detail), func(t *testing.T) {
			w, _, log := newTestX11Window(t)
			w.handleEvent(xproto.ButtonPressEvent{Detail: tt.detail, EventX: 3, EventY: 4})
			assert.Equal(t, []string{"move " + f32.Pt(3, 4).String(), describe(tt.want)}, *log)
			assert.False(t, w.w.state.Captured())
			// Wheel buttons have no release.
			w.handleEvent(xproto.ButtonReleaseEvent{Detail: tt.detail, EventX: 3, EventY: 4})
			assert.Len(t, *log, 2)
		})
	}
}

func TestX11CaptureDepth(t *testing.T) {
	w, _, log := newTestX11Window(t)
	w.handleEvent(xproto.ButtonPressEvent{Detail: 1})
	w.handleEvent(xproto.ButtonPressEvent{Detail: 3})
	assert.True(t, w.w.state.Captured())
	w.handleEvent(xproto.ButtonReleaseEvent{Detail: 1})
	assert.True(t, w.w.state.Captured())
	w.handleEvent(xproto.ButtonReleaseEvent{Detail: 3})
	assert.False(t, w.w.state.Captured())
	assert.Contains(t, *log, describe(pointer.PressEvent{Button: pointer.ButtonRight}))
	assert.Contains(t, *log, describe(pointer.ReleaseEvent{Button: pointer.ButtonLeft}))

	// Unknown buttons are ignored.
	*log = nil
	w.handleEvent(xproto.ButtonPressEvent{Detail: 12})
	assert.Empty(t, *log)
	assert.False(t, w.w.state.Captured())
}

func TestX11LeaveSequence(t *testing.T) {
	w, _, log := newTestX11Window(t)
	w.handleEvent(xproto.LeaveNotifyEvent{State: xproto.KeyButMaskButton1})
	assert.Empty(t, *log)

	w.handleEvent(xproto.LeaveNotifyEvent{})
	assert.Equal(t, []string{describe(pointer.LeaveEvent{}), "move"}, *log)
}

func TestX11ConfigureGating(t *testing.T) {
	w, h, log := newTestX11Window(t)
	ev := xproto.ConfigureNotifyEvent{Window: 5, X: 10, Y: 20, Width: 300, Height: 200}
	w.handleEvent(ev)
	w.handleEvent(ev)
	assert.Equal(t, []string{
		describe(system.MoveEvent{Origin: f32.Pt(10, 20)}),
		describe(system.ResizeEvent{Size: system.Size{Width: 300, Height: 200}}),
	}, *log)
	assert.Equal(t, 2, h.moved)

	*log = nil
	ev.Width = 320
	w.handleEvent(ev)
	assert.Equal(t, []string{describe(system.ResizeEvent{Size: system.Size{Width: 320, Height: 200}})}, *log)
}

func TestX11FocusGate(t *testing.T) {
	w, _, log := newTestX11Window(t)
	w.handleEvent(xproto.FocusInEvent{})
	w.handleEvent(xproto.FocusInEvent{})
	w.handleEvent(xproto.FocusOutEvent{})
	w.handleEvent(xproto.FocusOutEvent{})
	assert.Equal(t, []string{
		describe(system.FocusEvent{Focus: true}),
		describe(system.FocusEvent{Focus: false}),
	}, *log)
}

func TestX11Keys(t *testing.T) {
	w, _, log := newTestX11Window(t)
	w.handleEvent(xproto.KeyPressEvent{Detail: 0x09})
	w.handleEvent(xproto.KeyReleaseEvent{Detail: 0x09})
	assert.Equal(t, []string{
		fmt.Sprintf("press %v", key.CodeEscape),
		fmt.Sprintf("release %v", key.CodeEscape),
	}, *log)
}

func TestX11FrameMessage(t *testing.T) {
	w, _, log := newTestX11Window(t)
	w.framePending.Store(true)
	w.handleEvent(xproto.ClientMessageEvent{Format: 32, Window: 5, Type: testAtoms.frame})
	assert.False(t, w.framePending.Load())
	assert.Equal(t, []string{describe(system.FrameEvent{})}, *log)
}

func TestX11DeleteWindowOrder(t *testing.T) {
	w, _, log := newTestX11Window(t)
	w.handleEvent(deleteWindowMessage(testAtoms))
	assert.Equal(t, []string{
		describe(system.CloseEvent{}),
		"detach 5",
		describe(system.DestroyEvent{}),
		"dispose 5 9 true",
	}, *log)
	select {
	case <-w.done:
	default:
		t.Fatal("done not closed")
	}

	// The window is dead: nothing more is delivered or torn down.
	w.handleEvent(xproto.FocusInEvent{})
	w.handleEvent(deleteWindowMessage(testAtoms))
	w.handleEvent(xproto.DestroyNotifyEvent{Window: 5})
	assert.Len(t, *log, 4)
}

func TestX11ServerDestroy(t *testing.T) {
	w, _, log := newTestX11Window(t)
	w.handleEvent(xproto.DestroyNotifyEvent{Window: 5})
	assert.Equal(t, []string{
		"detach 5",
		describe(system.DestroyEvent{}),
		"dispose 5 9 false",
	}, *log)
}

func TestX11CloseMessage(t *testing.T) {
	w, _, log := newTestX11Window(t)
	w.handleEvent(xproto.ClientMessageEvent{Format: 32, Window: 5, Type: testAtoms.close})
	require.Len(t, *log, 3)
	assert.Equal(t, "dispose 5 9 true", (*log)[2])
	assert.NotContains(t, *log, describe(system.CloseEvent{}))
}
