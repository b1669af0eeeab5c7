// SPDX-License-Identifier: Unlicense OR MIT

package main

// Opens a window and closes it on the first frame.

import (
	"log"
	"log/slog"

	"picoview.org/app"
	"picoview.org/io/event"
	"picoview.org/io/system"
)

func main() {
	b := app.NewBuilder(func(w *app.Window) app.Handler {
		return func(e event.Event) {
			slog.Info("event", "type", e)
			switch e.(type) {
			case system.FrameEvent:
				w.Close()
			case system.CloseEvent:
				w.Close()
			}
		}
	},
		app.Title("picoview test - startup"),
		app.Size(512, 256),
		app.Position(100, 200),
		app.Visible(true),
	)
	if err := b.OpenBlocking(); err != nil {
		log.Fatal(err)
	}
}
