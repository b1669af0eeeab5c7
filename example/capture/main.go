// SPDX-License-Identifier: Unlicense OR MIT

package main

// Captures the escape key so that it never reaches the platform.

import (
	"log"
	"log/slog"

	"picoview.org/app"
	"picoview.org/io/event"
	"picoview.org/io/key"
	"picoview.org/io/system"
)

func main() {
	b := app.NewBuilder(func(w *app.Window) app.Handler {
		return func(e event.Event) {
			switch e := e.(type) {
			case key.PressEvent:
				if e.Code == key.CodeEscape {
					e.Consume()
				}
				slog.Info("key down", "code", e.Code)
			case key.ReleaseEvent:
				slog.Info("key up", "code", e.Code)
			case system.OpenEvent:
				w.SetKeyboardInput(true)
			case system.CloseEvent:
				w.Close()
			}
		}
	}, app.Title("picoview test - capture"))
	if err := b.OpenBlocking(); err != nil {
		log.Fatal(err)
	}
}
