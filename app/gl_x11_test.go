// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGLXQueryExtensionsUsesScreen(t *testing.T) {
	var gotDpy uintptr
	var gotScreen int32
	d := &glxDisplay{
		f: &glxFuncs{
			glXQueryExtensionsString: func(dpy uintptr, screen int32) string {
				gotDpy, gotScreen = dpy, screen
				return "GLX_ARB_create_context GLX_ARB_framebuffer_sRGB "
			},
		},
		dpy:    7,
		screen: 2,
	}
	d.queryExtensions()
	assert.Equal(t, uintptr(7), gotDpy)
	assert.Equal(t, int32(2), gotScreen)
	assert.True(t, d.ext.Has("GLX_ARB_create_context"))
	assert.True(t, d.ext.Has("GLX_ARB_framebuffer_sRGB"))
	assert.False(t, d.ext.Has("GLX_EXT_swap_control"))
}
