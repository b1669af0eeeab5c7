// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

package app

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picoview.org/io/event"
	"picoview.org/io/system"
)

func requireDisplay(t *testing.T) {
	t.Helper()
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X11 display")
	}
}

func skipPlatformError(t *testing.T, err error) {
	t.Helper()
	var perr *PlatformError
	if errors.As(err, &perr) {
		t.Skipf("X11 unavailable: %v", err)
	}
}

func TestX11OpenBlocking(t *testing.T) {
	requireDisplay(t)
	var events []event.Event
	b := NewBuilder(func(w *Window) Handler {
		return func(e event.Event) {
			events = append(events, e)
			if _, ok := e.(system.FrameEvent); ok {
				w.Close()
			}
		}
	}, Title("picoview test"), Visible(false))
	err := b.OpenBlocking()
	skipPlatformError(t, err)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, system.OpenEvent{}, events[0])
	assert.IsType(t, system.ScaleEvent{}, events[1])
	assert.Equal(t, system.DestroyEvent{}, events[len(events)-1])
	assert.ErrorIs(t, b.OpenBlocking(), ErrConsumed)
}

func TestX11OpenEmbedded(t *testing.T) {
	requireDisplay(t)
	var child *Window
	var childEvents []event.Event
	parent := NewBuilder(func(w *Window) Handler {
		return func(e event.Event) {
			if _, ok := e.(system.FrameEvent); !ok || child != nil {
				return
			}
			err := NewBuilder(func(c *Window) Handler {
				child = c
				return func(e event.Event) {
					childEvents = append(childEvents, e)
					if _, ok := e.(system.DestroyEvent); ok {
						w.Close()
					}
				}
			}, Position(10, 10), Size(50, 50)).OpenEmbedded(w)
			if !assert.NoError(t, err) {
				w.Close()
				return
			}
			assert.IsType(t, X11Handle{}, child.Handle())
			child.Close()
		}
	}, Visible(false))

	errc := make(chan error, 1)
	go func() { errc <- parent.OpenBlocking() }()
	select {
	case err := <-errc:
		skipPlatformError(t, err)
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the windows to close")
	}
	require.NotNil(t, child)
	assert.Nil(t, child.Handle())
	require.NotEmpty(t, childEvents)
	assert.Equal(t, system.OpenEvent{}, childEvents[0])
	assert.Equal(t, system.DestroyEvent{}, childEvents[len(childEvents)-1])
}

func TestX11InvalidParent(t *testing.T) {
	b := NewBuilder(func(*Window) Handler { return func(event.Event) {} })
	assert.ErrorIs(t, b.OpenEmbedded(Win32Handle{HWND: 1}), ErrInvalidParent)
	b = NewBuilder(func(*Window) Handler { return func(event.Event) {} })
	assert.ErrorIs(t, b.OpenEmbedded(X11Handle{}), ErrInvalidParent)
}
