// SPDX-License-Identifier: Unlicense OR MIT

package glattr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picoview.org/gl"
)

// pairs converts a zero terminated attribute list to a map.
func pairs[T int32 | uint32](t *testing.T, attrs []T) map[T]T {
	t.Helper()
	require.NotEmpty(t, attrs)
	require.Zero(t, attrs[len(attrs)-1], "list must be zero terminated")
	m := make(map[T]T)
	for i := 0; i+1 < len(attrs); i += 2 {
		m[attrs[i]] = attrs[i+1]
	}
	return m
}

func TestParseExtensions(t *testing.T) {
	ext := ParseExtensions("GLX_ARB_multisample  GLX_EXT_swap_control\n")
	assert.True(t, ext.Has("GLX_EXT_swap_control"))
	assert.True(t, ext.Has("nope", "GLX_ARB_multisample"))
	assert.False(t, ext.Has("GLX_ARB_create_context"))
	assert.Len(t, ext, 2)
}

func TestGLXFBConfig(t *testing.T) {
	c := gl.DefaultConfig()
	c.SRGB = true
	c.MSAA = 4

	m := pairs(t, GLXFBConfig(c, 1, 3, nil))
	assert.EqualValues(t, 8, m[glxRedSize])
	assert.EqualValues(t, 8, m[glxAlphaSize])
	assert.EqualValues(t, 24, m[glxDepthSize])
	assert.EqualValues(t, 8, m[glxStencilSize])
	assert.EqualValues(t, 1, m[glxDoubleBuffer])
	assert.NotContains(t, m, int32(glxFramebufferSRGBCapable), "sRGB requires the extension")
	assert.NotContains(t, m, int32(glxSamples), "MSAA requires GLX 1.4 or the extension")

	m = pairs(t, GLXFBConfig(c, 1, 4, ParseExtensions("GLX_EXT_framebuffer_sRGB")))
	assert.EqualValues(t, 1, m[glxFramebufferSRGBCapable])
	assert.EqualValues(t, 1, m[glxSampleBuffers])
	assert.EqualValues(t, 4, m[glxSamples])

	m = pairs(t, GLXFBConfig(c, 1, 3, ParseExtensions("GLX_ARB_multisample")))
	assert.EqualValues(t, 4, m[glxSamples])
}

func TestGLXContext(t *testing.T) {
	c := gl.DefaultConfig()
	c.Version = gl.Core(3, 3)
	c.Debug = true
	m := pairs(t, mustAttrs(GLXContext(c, nil)))
	assert.EqualValues(t, 3, m[contextMajorVersion])
	assert.EqualValues(t, 3, m[contextMinorVersion])
	assert.EqualValues(t, contextCoreBit, m[contextProfileMask])
	assert.EqualValues(t, contextDebugBit, m[contextFlags])

	c.Version = gl.ES(2, 0)
	_, err := GLXContext(c, nil)
	assert.ErrorIs(t, err, ErrNoES)
	m = pairs(t, mustAttrs(GLXContext(c, ParseExtensions("GLX_EXT_create_context_es2_profile"))))
	assert.EqualValues(t, contextES2ProfileBit, m[contextProfileMask])
}

func TestWGLPixelFormat(t *testing.T) {
	c := gl.Config{Format: gl.RGB8_D24, DoubleBuffer: false}
	m := pairs(t, WGLPixelFormat(c, nil))
	assert.EqualValues(t, 0, m[wglDoubleBuffer])
	assert.EqualValues(t, wglFullAcceleration, m[wglAcceleration])
	assert.EqualValues(t, 0, m[wglAlphaBits])
	assert.EqualValues(t, 24, m[wglDepthBits])
	assert.NotContains(t, m, int32(wglSamples))

	c.MSAA = 8
	c.SRGB = true
	m = pairs(t, WGLPixelFormat(c, ParseExtensions("WGL_ARB_multisample WGL_ARB_framebuffer_sRGB")))
	assert.EqualValues(t, 1, m[wglSampleBuffers])
	assert.EqualValues(t, 8, m[wglSamples])
	assert.EqualValues(t, 1, m[wglFramebufferSRGBCapable])
}

func TestWGLContext(t *testing.T) {
	c := gl.DefaultConfig()
	attrs := mustAttrs(WGLContext(c, nil))
	m := pairs(t, attrs)
	assert.EqualValues(t, contextCompatBit, m[contextProfileMask])
	assert.NotContains(t, m, int32(contextFlags))

	c.Debug = true
	attrs = mustAttrs(WGLContext(c, nil))
	assert.Equal(t, []int32{contextFlags, contextDebugBit}, attrs[:2])

	c.Version = gl.ES(3, 0)
	_, err := WGLContext(c, ParseExtensions("WGL_ARB_create_context"))
	assert.ErrorIs(t, err, ErrNoES)
}

func TestWGLFallback(t *testing.T) {
	pfd := WGLFallback(gl.DefaultConfig())
	assert.Equal(t, PixelFormatDescriptor{
		DoubleBuffer: true,
		ColorBits:    32,
		AlphaBits:    8,
		DepthBits:    24,
		StencilBits:  8,
	}, pfd)
}

func TestNSOpenGLProfile(t *testing.T) {
	for _, tc := range []struct {
		v    gl.Version
		want uint32
		err  bool
	}{
		{gl.Compat(2, 1), NSGLProfileLegacy, false},
		{gl.Core(3, 0), NSGLProfile32Core, false},
		{gl.Core(3, 2), NSGLProfile32Core, false},
		{gl.Core(3, 3), NSGLProfile41Core, false},
		{gl.Core(4, 1), NSGLProfile41Core, false},
		{gl.Core(4, 2), 0, true},
		{gl.ES(2, 0), 0, true},
	} {
		got, err := NSOpenGLProfile(tc.v)
		if tc.err {
			assert.Error(t, err, "%v", tc.v)
			continue
		}
		assert.NoError(t, err, "%v", tc.v)
		assert.Equal(t, tc.want, got, "%v", tc.v)
	}
}

func TestNSOpenGL(t *testing.T) {
	c := gl.DefaultConfig()
	c.MSAA = 4
	attrs, err := NSOpenGL(c)
	require.NoError(t, err)
	assert.Equal(t, []uint32{
		nsglOpenGLProfile, NSGLProfileLegacy,
		nsglColorSize, 24,
		nsglAlphaSize, 8,
		nsglDepthSize, 24,
		nsglStencilSize, 8,
		nsglAccelerated,
		nsglDoubleBuffer,
		nsglMultisample, nsglSampleBuffers, 1, nsglSamples, 4,
		0,
	}, attrs)

	c.Optional = true
	c.DoubleBuffer = false
	c.MSAA = 0
	attrs, err = NSOpenGL(c)
	require.NoError(t, err)
	assert.NotContains(t, attrs, uint32(nsglAccelerated))
	assert.NotContains(t, attrs, uint32(nsglDoubleBuffer))
}

func mustAttrs(attrs []int32, err error) []int32 {
	if err != nil {
		panic(err)
	}
	return attrs
}
