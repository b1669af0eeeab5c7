// SPDX-License-Identifier: Unlicense OR MIT

package pacer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepSource blocks Wait until the test releases a vblank.
type stepSource struct {
	vblank  chan struct{}
	mu      sync.Mutex
	selects [][]int
}

func newStepSource() *stepSource {
	return &stepSource{vblank: make(chan struct{})}
}

func (s *stepSource) Select(ids []int) time.Duration {
	s.mu.Lock()
	s.selects = append(s.selects, ids)
	s.mu.Unlock()
	return time.Millisecond
}

func (s *stepSource) Wait() bool {
	<-s.vblank
	return true
}

func (s *stepSource) selections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selects)
}

// timedSource has no vblank primitive.
type timedSource struct {
	interval time.Duration
}

func (s timedSource) Select(ids []int) time.Duration { return s.interval }
func (s timedSource) Wait() bool                     { return false }

func TestSchedule(t *testing.T) {
	base := time.Unix(1000, 0)
	const interval = 10 * time.Millisecond

	// First frame is immediate.
	wait, next := Schedule(base, interval, base)
	assert.Zero(t, wait)
	assert.Equal(t, base.Add(interval), next)

	// On time: wait for the remainder.
	wait, next = Schedule(next, interval, base.Add(4*time.Millisecond))
	assert.Equal(t, 6*time.Millisecond, wait)
	assert.Equal(t, base.Add(2*interval), next)

	// Late by several frames: no wait and no catch-up burst.
	now := base.Add(100 * time.Millisecond)
	wait, next = Schedule(next, interval, now)
	assert.Zero(t, wait)
	assert.Equal(t, now, next)
}

func TestTicksEveryRegisteredWindow(t *testing.T) {
	src := newStepSource()
	ticks := make(chan int, 16)
	p := New[int](src, func(id int) { ticks <- id })
	defer func() {
		close(src.vblank)
		p.Close()
	}()

	p.Register(1)
	p.Register(2)
	p.Register(1)

	frame := func() []int {
		src.vblank <- struct{}{}
		var ids []int
		for {
			select {
			case id := <-ticks:
				ids = append(ids, id)
			case <-time.After(20 * time.Millisecond):
				return ids
			}
		}
	}
	// The worker may have started waiting before all registrations
	// were queued; they are applied after the first vblank.
	frame()
	assert.ElementsMatch(t, []int{1, 2}, frame())
	assert.ElementsMatch(t, []int{1, 2}, frame())
}

func TestStopsWhenEmpty(t *testing.T) {
	var n atomic.Int32
	p := New[int](timedSource{interval: time.Millisecond}, func(int) { n.Add(1) })
	defer p.Close()

	p.Register(7)
	require.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)
	assert.True(t, p.Running())

	p.Unregister(7)
	require.Eventually(t, func() bool { return !p.Running() }, time.Second, time.Millisecond)
	stopped := n.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, n.Load(), "tick after the last window unregistered")

	// The worker restarts on demand.
	p.Register(8)
	require.Eventually(t, func() bool { return n.Load() > stopped }, time.Second, time.Millisecond)
}

func TestFallbackRate(t *testing.T) {
	var n atomic.Int32
	const interval = 5 * time.Millisecond
	p := New[int](timedSource{interval: interval}, func(int) { n.Add(1) })
	p.Register(1)
	time.Sleep(100 * time.Millisecond)
	p.Close()
	// At least half the nominal rate.
	assert.GreaterOrEqual(t, n.Load(), int32(10))
	assert.LessOrEqual(t, n.Load(), int32(25))
}

func TestMarkMovedReselects(t *testing.T) {
	src := newStepSource()
	p := New[int](src, func(int) {})
	defer func() {
		close(src.vblank)
		p.Close()
	}()
	p.Register(1)
	require.Eventually(t, func() bool { return src.selections() == 1 }, time.Second, time.Millisecond)
	p.MarkMoved()
	src.vblank <- struct{}{}
	require.Eventually(t, func() bool { return src.selections() == 2 }, time.Second, time.Millisecond)
}

func TestCloseIgnoresRegister(t *testing.T) {
	p := New[int](timedSource{interval: time.Millisecond}, func(int) {})
	p.Close()
	p.Register(1)
	assert.False(t, p.Running())
	p.Close()
}

func TestUnregisterWithoutWorker(t *testing.T) {
	p := New[int](timedSource{interval: time.Millisecond}, func(int) {})
	p.Unregister(3)
	p.MarkMoved()
	assert.False(t, p.Running())
}
