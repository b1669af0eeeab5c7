// SPDX-License-Identifier: Unlicense OR MIT

package window

import (
	"sync"

	"picoview.org/io/event"
	"picoview.org/io/system"
)

// Handler receives the events of a window.
type Handler func(e event.Event)

// Dispatcher delivers events to a Handler without ever re-entering it.
//
// An event sent while the handler runs is queued and delivered after the
// running call returns, by the goroutine that is draining the queue.
// FrameEvents carrying a GL context are delivered with the context made
// current, and the context is released afterwards.
type Dispatcher struct {
	// mu is held while the handler runs.
	mu sync.Mutex

	qmu     sync.Mutex
	queue   []event.Event
	handler Handler
	dropped bool
}

// SetHandler installs the handler and delivers any event sent before it.
func (d *Dispatcher) SetHandler(h Handler) {
	d.qmu.Lock()
	if d.dropped {
		d.qmu.Unlock()
		return
	}
	d.handler = h
	d.qmu.Unlock()
	d.drain()
}

// Send delivers e, or queues it if the handler is running.
func (d *Dispatcher) Send(e event.Event) {
	d.qmu.Lock()
	if d.dropped {
		d.qmu.Unlock()
		return
	}
	d.queue = append(d.queue, e)
	d.qmu.Unlock()
	d.drain()
}

// Drop discards queued events, delivers a final system.DestroyEvent and
// releases the handler. If the handler is running, the drop completes
// when it returns. Drop is idempotent.
func (d *Dispatcher) Drop() {
	d.qmu.Lock()
	if d.dropped {
		d.qmu.Unlock()
		return
	}
	d.dropped = true
	clear(d.queue)
	d.queue = d.queue[:0]
	if d.handler != nil {
		d.queue = append(d.queue, system.DestroyEvent{})
	}
	d.qmu.Unlock()
	d.drain()
}

// Dropped reports whether Drop has been called.
func (d *Dispatcher) Dropped() bool {
	d.qmu.Lock()
	defer d.qmu.Unlock()
	return d.dropped
}

func (d *Dispatcher) drain() {
	for d.mu.TryLock() {
		for {
			h, e, ok := d.pop()
			if !ok {
				break
			}
			deliver(h, e)
		}
		d.mu.Unlock()
		// An event may have been queued between the last pop and
		// Unlock by a sender whose TryLock failed.
		if !d.pending() {
			return
		}
	}
}

func (d *Dispatcher) pop() (Handler, event.Event, bool) {
	d.qmu.Lock()
	defer d.qmu.Unlock()
	if d.handler == nil || len(d.queue) == 0 {
		return nil, nil, false
	}
	e := d.queue[0]
	d.queue[0] = nil
	d.queue = d.queue[1:]
	h := d.handler
	if _, ok := e.(system.DestroyEvent); ok {
		d.handler = nil
	}
	return h, e, true
}

func (d *Dispatcher) pending() bool {
	d.qmu.Lock()
	defer d.qmu.Unlock()
	return d.handler != nil && len(d.queue) > 0
}

func deliver(h Handler, e event.Event) {
	if fe, ok := e.(system.FrameEvent); ok && fe.GL != nil {
		fe.GL.MakeCurrent(true)
		defer fe.GL.MakeCurrent(false)
	}
	h(e)
}
