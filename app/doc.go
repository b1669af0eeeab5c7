// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app opens native windows and delivers their events.

A window is described by a Builder and opened either in blocking mode,
where the calling goroutine runs the native event loop until the window
closes, or embedded into a window owned by a host application, where the
host's event loop drives it:

	b := app.NewBuilder(func(w *app.Window) app.Handler {
		return func(e event.Event) {
			switch e := e.(type) {
			case system.FrameEvent:
				// Draw.
			case system.CloseEvent:
				w.Close()
			}
		}
	}, app.Title("hello"), app.Size(512, 256))
	if err := b.OpenBlocking(); err != nil {
		log.Fatal(err)
	}

# Events

The handler is called on the window's native thread and is never
re-entered: events produced while it runs, for example by a Window method
that synchronously triggers a native notification, are delivered after it
returns. The first event is always system.OpenEvent and the last is
system.DestroyEvent. FrameEvents arrive once per display refresh.

# Main Thread

On macOS, OpenBlocking must be called from the main goroutine. The
package locks the main goroutine to the main thread during
initialization.
*/
package app
