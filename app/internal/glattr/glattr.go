// SPDX-License-Identifier: Unlicense OR MIT

// Package glattr builds the zero terminated attribute lists passed to
// GLX, WGL and NSOpenGL when choosing a framebuffer configuration and
// creating a context.
package glattr

import (
	"errors"
	"fmt"
	"strings"

	"picoview.org/gl"
)

// Extensions is a set of extension names, as parsed from a space
// separated extension string.
type Extensions map[string]bool

// ParseExtensions splits an extension string.
func ParseExtensions(s string) Extensions {
	ext := make(Extensions)
	for _, e := range strings.Fields(s) {
		ext[e] = true
	}
	return ext
}

// Has reports whether any of names is present.
func (e Extensions) Has(names ...string) bool {
	for _, n := range names {
		if e[n] {
			return true
		}
	}
	return false
}

// ErrNoES is returned when an OpenGL ES context is requested without
// the extension that enables it.
var ErrNoES = errors.New("OpenGL ES contexts are not supported")

// Context attributes shared by GLX_ARB_create_context and
// WGL_ARB_create_context.
const (
	contextMajorVersion  = 0x2091
	contextMinorVersion  = 0x2092
	contextFlags         = 0x2094
	contextProfileMask   = 0x9126
	contextDebugBit      = 0x0001
	contextCoreBit       = 0x0001
	contextCompatBit     = 0x0002
	contextES2ProfileBit = 0x0004
)

func profileBit(v gl.Version, ext Extensions, esNames ...string) (int32, error) {
	switch v.Profile {
	case gl.ProfileCore:
		return contextCoreBit, nil
	case gl.ProfileCompat:
		return contextCompatBit, nil
	case gl.ProfileES:
		if !ext.Has(esNames...) {
			return 0, ErrNoES
		}
		return contextES2ProfileBit, nil
	default:
		return 0, fmt.Errorf("unknown profile %d", v.Profile)
	}
}

func boolAttr(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
