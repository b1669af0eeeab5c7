// SPDX-License-Identifier: Unlicense OR MIT

// Package transfer contains the events of file drag and drop onto a
// window.
//
// A drag produces any number of HoverEvents followed by either an
// AcceptEvent, when the files are dropped, or a CancelEvent, when the
// drag leaves the window or is aborted.
package transfer

// HoverEvent is generated while files are dragged over the window.
// Files may be empty while the drag source has not resolved them.
type HoverEvent struct {
	Files []string
}

// AcceptEvent is generated when files are dropped on the window.
type AcceptEvent struct {
	Files []string
}

// CancelEvent is generated when a drag leaves the window or is aborted.
type CancelEvent struct{}

func (HoverEvent) ImplementsEvent()  {}
func (AcceptEvent) ImplementsEvent() {}
func (CancelEvent) ImplementsEvent() {}
