// SPDX-License-Identifier: Unlicense OR MIT

// Package gl describes the OpenGL context a window can be opened with.
//
// The package does not bind the OpenGL API itself. Use
// Context.ProcAddress with a loader of your choice.
package gl

import "fmt"

// Profile is an OpenGL context profile.
type Profile uint8

const (
	// ProfileCompat requests a compatibility profile context.
	ProfileCompat Profile = iota
	// ProfileCore requests a core profile context.
	ProfileCore
	// ProfileES requests an OpenGL ES context.
	ProfileES
)

// Version is a requested OpenGL version.
type Version struct {
	Profile      Profile
	Major, Minor int
}

// Format is a default framebuffer layout.
type Format uint8

const (
	RGB8 Format = iota
	RGBA8
	RGB8_D24
	RGBA8_D24
	RGB8_D24_S8
	RGBA8_D24_S8
)

// Config is the OpenGL configuration of a window.
type Config struct {
	Version Version
	Format  Format
	// DoubleBuffer requests a double buffered framebuffer.
	DoubleBuffer bool
	// Debug requests a debug context where supported.
	Debug bool
	// SRGB requests an sRGB capable framebuffer where supported.
	SRGB bool
	// Optional opens the window without a context when OpenGL is
	// unavailable, instead of failing.
	Optional bool
	// MSAA is the number of samples per pixel. Zero disables
	// multisampling.
	MSAA int
}

// Context is an OpenGL context attached to a window.
//
// A Context is only valid during the event that carried it, and only
// on the goroutine that delivered the event.
type Context interface {
	// SwapBuffers presents the back buffer.
	SwapBuffers()
	// ProcAddress returns the address of the named function, or 0 if the
	// function is unknown.
	ProcAddress(name string) uintptr
	// MakeCurrent binds or unbinds the context on the calling thread and
	// reports whether it succeeded.
	MakeCurrent(current bool) bool
}

// Bits holds the per-channel bit depths of a Format.
type Bits struct {
	Red, Green, Blue, Alpha, Depth, Stencil int
}

// DefaultConfig returns a compatibility 1.1 configuration with a double
// buffered RGBA8_D24_S8 framebuffer.
func DefaultConfig() Config {
	return Config{
		Version:      Compat(1, 1),
		Format:       RGBA8_D24_S8,
		DoubleBuffer: true,
	}
}

// Core returns a core profile version.
func Core(major, minor int) Version {
	return Version{Profile: ProfileCore, Major: major, Minor: minor}
}

// Compat returns a compatibility profile version.
func Compat(major, minor int) Version {
	return Version{Profile: ProfileCompat, Major: major, Minor: minor}
}

// ES returns an OpenGL ES version.
func ES(major, minor int) Version {
	return Version{Profile: ProfileES, Major: major, Minor: minor}
}

// Bits returns the bit depths of f.
func (f Format) Bits() Bits {
	switch f {
	case RGB8:
		return Bits{8, 8, 8, 0, 0, 0}
	case RGBA8:
		return Bits{8, 8, 8, 8, 0, 0}
	case RGB8_D24:
		return Bits{8, 8, 8, 0, 24, 0}
	case RGBA8_D24:
		return Bits{8, 8, 8, 8, 24, 0}
	case RGB8_D24_S8:
		return Bits{8, 8, 8, 0, 24, 8}
	case RGBA8_D24_S8:
		return Bits{8, 8, 8, 8, 24, 8}
	default:
		panic("unknown Format")
	}
}

// AtLeast reports whether v is major.minor or later.
func (v Version) AtLeast(major, minor int) bool {
	return v.Major > major || v.Major == major && v.Minor >= minor
}

func (p Profile) String() string {
	switch p {
	case ProfileCompat:
		return "Compat"
	case ProfileCore:
		return "Core"
	case ProfileES:
		return "ES"
	default:
		panic("unknown Profile")
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%s %d.%d", v.Profile, v.Major, v.Minor)
}
