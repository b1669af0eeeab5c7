// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"picoview.org/app/internal/window"
	"picoview.org/f32"
	"picoview.org/gl"
	"picoview.org/io/system"
)

// Handler receives the events of a window.
type Handler = window.Handler

// Factory creates the Handler of a new window. It is called once, on the
// window's thread, before the first event is delivered.
type Factory func(w *Window) Handler

// Builder describes a window to open.
type Builder struct {
	factory  Factory
	cnf      config
	consumed atomic.Bool
}

// Option configures a window.
type Option func(cnf *config)

type config struct {
	Title       string
	Size        system.Size
	Position    *f32.Point
	MinSize     *system.Size
	MaxSize     *system.Size
	Visible     bool
	Decorated   bool
	Transparent bool
	Blur        bool
	GL          *gl.Config
	Logger      *slog.Logger
}

// NewBuilder returns a Builder for a visible, decorated, fixed size
// 200x200 window.
func NewBuilder(factory Factory, options ...Option) *Builder {
	b := &Builder{
		factory: factory,
		cnf: config{
			Size:      system.Size{Width: 200, Height: 200},
			Visible:   true,
			Decorated: true,
		},
	}
	for _, o := range options {
		o(&b.cnf)
	}
	if b.cnf.Logger == nil {
		b.cnf.Logger = defaultLogger()
	}
	return b
}

// Title sets the title of the window.
func Title(t string) Option {
	return func(cnf *config) {
		cnf.Title = t
	}
}

// Size sets the size of the client area.
func Size(w, h uint32) Option {
	return func(cnf *config) {
		cnf.Size = system.Size{Width: w, Height: h}
	}
}

// Position sets the initial position of the window. Without it, top
// level windows are centered by the platform.
func Position(x, y float32) Option {
	return func(cnf *config) {
		cnf.Position = &f32.Point{X: x, Y: y}
	}
}

// Resizable lets the user resize the window within the given limits.
func Resizable(min, max system.Size) Option {
	return func(cnf *config) {
		cnf.MinSize = &min
		cnf.MaxSize = &max
	}
}

// Visible sets whether the window is shown when opened.
func Visible(visible bool) Option {
	return func(cnf *config) {
		cnf.Visible = visible
	}
}

// Decorated sets whether the window manager draws a title bar and
// borders. Decorations cannot be changed after opening.
func Decorated(enabled bool) Option {
	return func(cnf *config) {
		cnf.Decorated = enabled
	}
}

// Transparent requests a framebuffer with an alpha channel composited
// with the desktop, where supported.
func Transparent(enabled bool) Option {
	return func(cnf *config) {
		cnf.Transparent = enabled
	}
}

// Blur requests that the desktop behind a transparent window be
// blurred, where supported.
func Blur(enabled bool) Option {
	return func(cnf *config) {
		cnf.Blur = enabled
	}
}

// OpenGL attaches an OpenGL context to the window.
func OpenGL(c gl.Config) Option {
	return func(cnf *config) {
		cnf.GL = &c
	}
}

// Logger sets the logger for runtime diagnostics. The default is
// slog.Default().
func Logger(l *slog.Logger) Option {
	return func(cnf *config) {
		cnf.Logger = l
	}
}

// OpenBlocking opens a top level window and runs its event loop until
// the window is closed.
func (b *Builder) OpenBlocking() error {
	cnf, err := b.take()
	if err != nil {
		return err
	}
	return openBlocking(b.factory, cnf)
}

// OpenEmbedded opens a child window inside parent and returns once it is
// created. The host's event loop delivers its events.
func (b *Builder) OpenEmbedded(parent RawHandle) error {
	cnf, err := b.take()
	if err != nil {
		return err
	}
	if parent == nil {
		return ErrInvalidParent
	}
	return openEmbedded(b.factory, cnf, parent.rawHandle())
}

func (b *Builder) take() (config, error) {
	if !b.consumed.CompareAndSwap(false, true) {
		return config{}, ErrConsumed
	}
	if b.factory == nil {
		return config{}, fmt.Errorf("app: nil Factory")
	}
	return b.cnf, nil
}

// resizable reports whether the window has a size range.
func (c *config) resizable() bool {
	return c.MinSize != nil && c.MaxSize != nil
}
