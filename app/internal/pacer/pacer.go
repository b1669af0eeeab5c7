// SPDX-License-Identifier: Unlicense OR MIT

// Package pacer drives window repaints at the display refresh rate.
//
// A Pacer owns a set of window identifiers. While the set is non-empty
// a worker goroutine waits for vertical blank, or sleeps for one
// refresh interval when no vblank primitive is available, and then
// ticks every registered window. The worker never touches window state;
// ticks are expected to post a native message to the window.
package pacer

import (
	"sync"
	"time"

	"golang.org/x/exp/slices"
)

// Source is a platform vsync primitive.
type Source[T comparable] interface {
	// Select chooses the display to synchronize with for the registered
	// windows and returns its refresh interval. It is called when the
	// worker starts, whenever the set changes and after MarkMoved.
	Select(ids []T) time.Duration
	// Wait blocks until the next vertical blank of the selected display.
	// It returns false without blocking when no vblank primitive is
	// available, in which case the Pacer sleeps for one interval.
	Wait() bool
}

// Pacer ticks registered windows once per display refresh.
type Pacer[T comparable] struct {
	src  Source[T]
	tick func(id T)

	cmds chan command[T]

	mu      sync.Mutex
	running bool
	closed  bool
	quit    chan struct{}
	done    chan struct{}
}

type commandKind uint8

const (
	register commandKind = iota
	unregister
	moved
)

type command[T comparable] struct {
	kind commandKind
	id   T
}

// DefaultInterval is the fallback used when a Source reports no refresh
// rate.
const DefaultInterval = time.Second / 60

// New returns a Pacer calling tick for every registered window on every
// refresh of the display selected by src.
func New[T comparable](src Source[T], tick func(id T)) *Pacer[T] {
	return &Pacer[T]{
		src:  src,
		tick: tick,
		cmds: make(chan command[T], 64),
		quit: make(chan struct{}),
	}
}

// Register adds id to the set. Registering an id twice has no effect.
func (p *Pacer[T]) Register(id T) {
	p.send(command[T]{kind: register, id: id})
}

// Unregister removes id from the set. The worker exits once the set is
// empty.
func (p *Pacer[T]) Unregister(id T) {
	p.send(command[T]{kind: unregister, id: id})
}

// MarkMoved reports that a window may have moved to another display.
func (p *Pacer[T]) MarkMoved() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	select {
	case p.cmds <- command[T]{kind: moved}:
	default:
		// A full queue already forces a new selection.
	}
}

// Close stops the worker and waits for it to exit. Further calls to
// Register are ignored.
func (p *Pacer[T]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.quit)
	done := p.done
	running := p.running
	p.mu.Unlock()
	if running {
		<-done
	}
}

// Running reports whether the worker goroutine is alive.
func (p *Pacer[T]) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Pacer[T]) send(c command[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if !p.running && c.kind != register {
		return
	}
	p.cmds <- c
	if !p.running {
		p.running = true
		p.done = make(chan struct{})
		go p.loop(p.done)
	}
}

// stop reports whether the worker may exit, and marks it stopped if so.
func (p *Pacer[T]) stop() bool {
	// A sender holds mu while blocked on a full queue.
	if !p.mu.TryLock() {
		return false
	}
	defer p.mu.Unlock()
	if len(p.cmds) > 0 {
		return false
	}
	p.running = false
	return true
}

func (p *Pacer[T]) loop(done chan struct{}) {
	defer close(done)
	var (
		ids      []T
		interval time.Duration
		next     time.Time
		reselect = true
	)
	for {
	drain:
		for {
			select {
			case c := <-p.cmds:
				switch c.kind {
				case register:
					if !slices.Contains(ids, c.id) {
						ids = append(ids, c.id)
					}
				case unregister:
					if i := slices.Index(ids, c.id); i >= 0 {
						ids = slices.Delete(ids, i, i+1)
					}
				}
				reselect = true
			default:
				break drain
			}
		}
		select {
		case <-p.quit:
			p.mu.Lock()
			p.running = false
			p.mu.Unlock()
			return
		default:
		}
		if len(ids) == 0 {
			if p.stop() {
				return
			}
			continue
		}
		if reselect {
			reselect = false
			interval = p.src.Select(slices.Clone(ids))
			if interval <= 0 {
				interval = DefaultInterval
			}
			next = time.Now()
		}
		if !p.src.Wait() {
			var wait time.Duration
			wait, next = Schedule(next, interval, time.Now())
			if wait > 0 {
				t := time.NewTimer(wait)
				select {
				case <-t.C:
				case <-p.quit:
					t.Stop()
				}
			}
		}
		for _, id := range ids {
			p.tick(id)
		}
	}
}

// Schedule computes the timed fallback. Given the deadline next of the
// current frame, it returns how long to wait from now and the deadline
// of the following frame. A late frame is not made up for: the
// following deadline never lies before now.
func Schedule(next time.Time, interval time.Duration, now time.Time) (time.Duration, time.Time) {
	wait := next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	following := next.Add(interval)
	if following.Before(now) {
		following = now
	}
	return wait, following
}
