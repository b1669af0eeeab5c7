// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the marker type shared by all window events.
//
// Handlers receive events as values of the Event interface and switch on
// the concrete type:
//
//	switch e := e.(type) {
//	case system.FrameEvent:
//	case key.PressEvent:
//	}
package event

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}
