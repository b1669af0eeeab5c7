// SPDX-License-Identifier: Unlicense OR MIT

package main

// Opens a window with a child window embedded into it. The child closes
// itself on its first frame and the parent closes on its eleventh.

import (
	"log"
	"log/slog"

	"picoview.org/app"
	"picoview.org/io/event"
	"picoview.org/io/system"
)

func main() {
	outer := app.NewBuilder(func(w *app.Window) app.Handler {
		frames := 0
		return func(e event.Event) {
			switch e.(type) {
			case system.FrameEvent:
				frames++
				switch frames {
				case 1:
					if err := openInner(w); err != nil {
						slog.Error("open inner window", "err", err)
					}
				case 11:
					w.Close()
				}
			case system.CloseEvent:
				w.Close()
			case system.DestroyEvent:
				slog.Info("outer destroyed", "frames", frames)
			}
		}
	}, app.Title("picoview test - embed"), app.Size(512, 256))
	if err := outer.OpenBlocking(); err != nil {
		log.Fatal(err)
	}
}

func openInner(parent *app.Window) error {
	inner := app.NewBuilder(func(w *app.Window) app.Handler {
		return func(e event.Event) {
			switch e.(type) {
			case system.FrameEvent:
				w.Close()
			case system.DestroyEvent:
				slog.Info("inner destroyed")
			}
		}
	}, app.Size(256, 256))
	return inner.OpenEmbedded(parent)
}
