// SPDX-License-Identifier: Unlicense OR MIT

package main

// Clears an OpenGL window with an animated color.

import (
	"log"
	"math"

	"github.com/ebitengine/purego"

	"picoview.org/app"
	"picoview.org/gl"
	"picoview.org/io/event"
	"picoview.org/io/system"
)

const _GL_COLOR_BUFFER_BIT = 0x4000

type funcs struct {
	clearColor func(r, g, b, a float32)
	clear      func(mask uint32)
}

func load(ctx gl.Context) (*funcs, bool) {
	cc, c := ctx.ProcAddress("glClearColor"), ctx.ProcAddress("glClear")
	if cc == 0 || c == 0 {
		return nil, false
	}
	f := new(funcs)
	purego.RegisterFunc(&f.clearColor, cc)
	purego.RegisterFunc(&f.clear, c)
	return f, true
}

func main() {
	b := app.NewBuilder(func(w *app.Window) app.Handler {
		var f *funcs
		var t float64
		return func(e event.Event) {
			switch e := e.(type) {
			case system.FrameEvent:
				if e.GL == nil {
					return
				}
				if f == nil {
					var ok bool
					if f, ok = load(e.GL); !ok {
						log.Print("glClear unavailable")
						w.Close()
						return
					}
				}
				t += 1.0 / 60
				v := float32(0.5 + 0.5*math.Sin(t))
				f.clearColor(v, 0.2, 1-v, 1)
				f.clear(_GL_COLOR_BUFFER_BIT)
				e.GL.SwapBuffers()
			case system.CloseEvent:
				w.Close()
			}
		}
	},
		app.Title("picoview test - gl"),
		app.Size(400, 200),
		app.OpenGL(gl.DefaultConfig()),
	)
	if err := b.OpenBlocking(); err != nil {
		log.Fatal(err)
	}
}
