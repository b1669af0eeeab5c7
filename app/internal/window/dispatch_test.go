// SPDX-License-Identifier: Unlicense OR MIT

package window

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picoview.org/io/event"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) add(e event.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) get() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}

type fakeGL struct {
	current bool
	calls   []bool
	// seen records whether the context was current inside the handler.
	seen []bool
}

func (g *fakeGL) SwapBuffers()                    {}
func (g *fakeGL) ProcAddress(name string) uintptr { return 0 }
func (g *fakeGL) MakeCurrent(current bool) bool {
	g.current = current
	g.calls = append(g.calls, current)
	return true
}

func TestDispatcherOrder(t *testing.T) {
	var d Dispatcher
	var r recorder
	d.Send(system.OpenEvent{})
	assert.Empty(t, r.get(), "event delivered before the handler was installed")
	d.SetHandler(r.add)
	d.Send(system.FocusEvent{Focus: true})
	assert.Equal(t, []event.Event{
		system.OpenEvent{},
		system.FocusEvent{Focus: true},
	}, r.get())
}

func TestDispatcherReentrancy(t *testing.T) {
	var d Dispatcher
	var got []event.Event
	inside := false
	d.SetHandler(func(e event.Event) {
		require.False(t, inside, "handler re-entered")
		inside = true
		defer func() { inside = false }()
		got = append(got, e)
		if _, ok := e.(pointer.PressEvent); ok {
			// A native call made from the handler synchronously
			// generates more events.
			d.Send(system.ResizeEvent{Size: system.Size{Width: 10, Height: 20}})
			d.Send(system.MoveEvent{})
			assert.Len(t, got, 1, "nested event delivered during the handler")
		}
	})
	d.Send(pointer.PressEvent{Button: pointer.ButtonLeft})
	assert.Equal(t, []event.Event{
		pointer.PressEvent{Button: pointer.ButtonLeft},
		system.ResizeEvent{Size: system.Size{Width: 10, Height: 20}},
		system.MoveEvent{},
	}, got)
}

func TestDispatcherGLPairing(t *testing.T) {
	var d Dispatcher
	ctx := new(fakeGL)
	frames := 0
	d.SetHandler(func(e event.Event) {
		if fe, ok := e.(system.FrameEvent); ok {
			frames++
			ctx.seen = append(ctx.seen, ctx.current)
			// The handler may release the context itself.
			fe.GL.MakeCurrent(false)
			if frames == 1 {
				d.Send(system.FrameEvent{GL: ctx})
			}
		}
	})
	d.Send(system.FrameEvent{GL: ctx})
	// The nested frame is delivered once the first one returns, with
	// its own make-current pair.
	assert.Equal(t, []bool{true, true}, ctx.seen)
	assert.False(t, ctx.current)
	assert.Equal(t, []bool{true, false, false, true, false, false}, ctx.calls)
}

func TestDispatcherFrameWithoutGL(t *testing.T) {
	var d Dispatcher
	var r recorder
	d.SetHandler(r.add)
	d.Send(system.FrameEvent{})
	assert.Equal(t, []event.Event{system.FrameEvent{}}, r.get())
}

func TestDispatcherDrop(t *testing.T) {
	var d Dispatcher
	var r recorder
	d.SetHandler(r.add)
	d.Send(system.OpenEvent{})
	d.Drop()
	d.Drop()
	d.Send(system.FrameEvent{})
	assert.True(t, d.Dropped())
	assert.Equal(t, []event.Event{system.OpenEvent{}, system.DestroyEvent{}}, r.get())
}

func TestDispatcherDropInsideHandler(t *testing.T) {
	var d Dispatcher
	var got []event.Event
	d.SetHandler(func(e event.Event) {
		got = append(got, e)
		if _, ok := e.(system.CloseEvent); ok {
			d.Send(system.FocusEvent{})
			d.Drop()
			d.Send(system.FrameEvent{})
		}
	})
	d.Send(system.CloseEvent{})
	assert.Equal(t, []event.Event{system.CloseEvent{}, system.DestroyEvent{}}, got)
}

func TestDispatcherConcurrentSend(t *testing.T) {
	var d Dispatcher
	var r recorder
	d.SetHandler(r.add)
	var wg sync.WaitGroup
	const n = 100
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Send(system.WakeupEvent{})
		}()
	}
	wg.Wait()
	assert.Len(t, r.get(), n)
}
