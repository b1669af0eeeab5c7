// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains the lifecycle, geometry and paint events of a
// window.
package system

import (
	"fmt"

	"picoview.org/f32"
	"picoview.org/gl"
)

// Size is the size of a window client area in logical units.
type Size struct {
	Width, Height uint32
}

// OpenEvent is the first event of every window. It is delivered once,
// right after the native surface has been created.
type OpenEvent struct{}

// CloseEvent is sent when the user or the window manager asks for the
// window to close. The window stays open until the handler calls Close.
type CloseEvent struct{}

// DestroyEvent is the last event sent to a handler. The native surface
// is still valid while it is delivered.
type DestroyEvent struct{}

// A FocusEvent is generated when the window gains or loses keyboard
// focus.
type FocusEvent struct {
	Focus bool
}

// ScaleEvent reports the ratio between physical and logical pixels.
type ScaleEvent struct {
	Scale float32
}

// MoveEvent reports the new window origin.
type MoveEvent struct {
	Origin f32.Point
}

// ResizeEvent reports the new size of the client area.
type ResizeEvent struct {
	Size Size
}

// InvalidateEvent reports a damaged region of the client area.
type InvalidateEvent struct {
	Top, Left, Bottom, Right uint32
}

// A FrameEvent asks for a new frame. It is paced to the display
// refresh rate.
type FrameEvent struct {
	// GL is the window's OpenGL context, current for the duration of
	// the event. It is nil for windows opened without OpenGL, or when
	// an optional context could not be created.
	GL gl.Context
}

// WakeupEvent is delivered on the window thread after a call to
// Waker.Wakeup.
type WakeupEvent struct{}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Point returns s as a point.
func (s Size) Point() f32.Point {
	return f32.Point{X: float32(s.Width), Y: float32(s.Height)}
}

func (OpenEvent) ImplementsEvent()       {}
func (CloseEvent) ImplementsEvent()      {}
func (DestroyEvent) ImplementsEvent()    {}
func (FocusEvent) ImplementsEvent()      {}
func (ScaleEvent) ImplementsEvent()      {}
func (MoveEvent) ImplementsEvent()       {}
func (ResizeEvent) ImplementsEvent()     {}
func (InvalidateEvent) ImplementsEvent() {}
func (FrameEvent) ImplementsEvent()      {}
func (WakeupEvent) ImplementsEvent()     {}
