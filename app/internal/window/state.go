// SPDX-License-Identifier: Unlicense OR MIT

package window

import (
	"sync/atomic"

	"picoview.org/f32"
	"picoview.org/io/key"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

// State is the platform independent state of a native window. Except for
// the close latch it is only accessed from the window's thread.
type State struct {
	focused   bool
	modifiers key.Modifiers
	captures  uint32
	cursor    pointer.Cursor
	size      system.Size
	position  *f32.Point
	closed    atomic.Bool
}

// Focus records the focus state and reports whether it changed.
func (s *State) Focus(focus bool) bool {
	if s.focused == focus {
		return false
	}
	s.focused = focus
	return true
}

// Focused reports whether the window has keyboard focus.
func (s *State) Focused() bool {
	return s.focused
}

// SetModifiers records the modifier set and reports whether it differs
// from the last recorded set.
func (s *State) SetModifiers(m key.Modifiers) bool {
	if s.modifiers == m {
		return false
	}
	s.modifiers = m
	return true
}

// Modifiers returns the last recorded modifier set.
func (s *State) Modifiers() key.Modifiers {
	return s.modifiers
}

// Press increments the capture depth and reports whether the native
// capture should be taken.
func (s *State) Press() bool {
	s.captures++
	return s.captures == 1
}

// Release decrements the capture depth and reports whether the native
// capture should be released. The depth never drops below zero.
func (s *State) Release() bool {
	if s.captures == 0 {
		return false
	}
	s.captures--
	return s.captures == 0
}

// Captured reports whether any mouse button is held.
func (s *State) Captured() bool {
	return s.captures > 0
}

// SetCursor records the cursor and reports whether it changed.
func (s *State) SetCursor(c pointer.Cursor) bool {
	if s.cursor == c {
		return false
	}
	s.cursor = c
	return true
}

// Cursor returns the current cursor.
func (s *State) Cursor() pointer.Cursor {
	return s.cursor
}

// Resize records the client size and reports whether it changed.
func (s *State) Resize(sz system.Size) bool {
	if s.size == sz {
		return false
	}
	s.size = sz
	return true
}

// Size returns the last known client size.
func (s *State) Size() system.Size {
	return s.size
}

// Move records the window origin and reports whether it changed.
func (s *State) Move(p f32.Point) bool {
	if s.position != nil && *s.position == p {
		return false
	}
	s.position = &p
	return true
}

// Position returns the last known origin, if any.
func (s *State) Position() (f32.Point, bool) {
	if s.position == nil {
		return f32.Point{}, false
	}
	return *s.position, true
}

// Close latches the window closed and reports whether this call did it.
func (s *State) Close() bool {
	return s.closed.CompareAndSwap(false, true)
}

// Closed reports whether the window is closed. It is safe to call from
// any goroutine.
func (s *State) Closed() bool {
	return s.closed.Load()
}
