// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer implements mouse and gesture events and the cursor
// shapes a window can display.
package pointer

import (
	"picoview.org/f32"
)

// MoveEvent is generated when the mouse moves over the window.
type MoveEvent struct {
	// Position is the mouse position in window coordinates, or nil
	// when the mouse has left the window.
	Position *f32.Point
}

// LeaveEvent is generated when the mouse leaves the window while no
// button is held.
type LeaveEvent struct{}

// PressEvent is generated when a mouse button is pressed.
type PressEvent struct {
	Button Button
}

// ReleaseEvent is generated when a mouse button is released.
type ReleaseEvent struct {
	Button Button
}

// ScrollEvent reports wheel movement in notches. One notch is 1.0.
type ScrollEvent struct {
	X, Y float32
}

// RotateEvent reports a trackpad rotation gesture.
type RotateEvent struct {
	Rotate float32
}

// ZoomEvent reports a trackpad magnification gesture.
type ZoomEvent struct {
	Zoom float32
}

// Button is a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonForward
	ButtonBack
)

// Cursor denotes a pre-defined cursor shape.
type Cursor uint8

const (
	// CursorDefault is the default cursor.
	CursorDefault Cursor = iota
	// CursorHand shows a pointing hand, used for links.
	CursorHand
	// CursorHandGrabbing shows a closed hand, used while dragging.
	CursorHandGrabbing
	// CursorHelp shows a question mark.
	CursorHelp
	// CursorHidden hides the cursor.
	CursorHidden
	// CursorText is for selecting and inserting text.
	CursorText
	// CursorVerticalText is for selecting and inserting vertical text.
	CursorVerticalText
	// CursorWorking signals that the application is busy.
	CursorWorking
	// CursorPtrWorking signals that the application is busy but still
	// accepts clicks.
	CursorPtrWorking
	// CursorNotAllowed shows that the action cannot be performed.
	CursorNotAllowed
	CursorPtrNotAllowed
	CursorZoomIn
	CursorZoomOut
	CursorAlias
	CursorCopy
	CursorMove
	CursorAllScroll
	CursorCell
	CursorCrosshair
	// Resize cursors for the eight edges and corners.
	CursorEResize
	CursorNResize
	CursorNeResize
	CursorNwResize
	CursorSResize
	CursorSeResize
	CursorSwResize
	CursorWResize
	// Bidirectional resize cursors.
	CursorEwResize
	CursorNsResize
	CursorNwseResize
	CursorNeswResize
	CursorColResize
	CursorRowResize

	cursorCount
)

// NumCursors is the number of pre-defined cursor shapes.
const NumCursors = int(cursorCount)

var cursorNames = [cursorCount]string{
	"Default", "Hand", "HandGrabbing", "Help", "Hidden", "Text",
	"VerticalText", "Working", "PtrWorking", "NotAllowed",
	"PtrNotAllowed", "ZoomIn", "ZoomOut", "Alias", "Copy", "Move",
	"AllScroll", "Cell", "Crosshair", "EResize", "NResize", "NeResize",
	"NwResize", "SResize", "SeResize", "SwResize", "WResize", "EwResize",
	"NsResize", "NwseResize", "NeswResize", "ColResize", "RowResize",
}

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	case ButtonForward:
		return "Forward"
	case ButtonBack:
		return "Back"
	default:
		panic("unknown Button")
	}
}

func (c Cursor) String() string {
	if c >= cursorCount {
		panic("unknown Cursor")
	}
	return cursorNames[c]
}

func (MoveEvent) ImplementsEvent()    {}
func (LeaveEvent) ImplementsEvent()   {}
func (PressEvent) ImplementsEvent()   {}
func (ReleaseEvent) ImplementsEvent() {}
func (ScrollEvent) ImplementsEvent()  {}
func (RotateEvent) ImplementsEvent()  {}
func (ZoomEvent) ImplementsEvent()    {}
