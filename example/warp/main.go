// SPDX-License-Identifier: Unlicense OR MIT

package main

// Warps the mouse back into the window when it leaves on the left.

import (
	"log"
	"log/slog"

	"picoview.org/app"
	"picoview.org/f32"
	"picoview.org/gl"
	"picoview.org/io/event"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

func main() {
	b := app.NewBuilder(func(w *app.Window) app.Handler {
		return func(e event.Event) {
			switch e := e.(type) {
			case pointer.MoveEvent:
				if e.Position == nil {
					return
				}
				slog.Info("mouse", "x", e.Position.X, "y", e.Position.Y)
				if e.Position.X < -10 {
					w.SetCursorPosition(f32.Pt(100, 100))
				}
			case pointer.PressEvent, pointer.ReleaseEvent:
				slog.Info("button", "event", e)
			case system.CloseEvent:
				w.Close()
			}
		}
	},
		app.Title("picoview test - warp"),
		app.Size(200, 200),
		app.OpenGL(gl.DefaultConfig()),
	)
	if err := b.OpenBlocking(); err != nil {
		log.Fatal(err)
	}
}
