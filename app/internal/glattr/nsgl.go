// SPDX-License-Identifier: Unlicense OR MIT

package glattr

import (
	"errors"

	"picoview.org/gl"
)

// NSOpenGLPixelFormatAttribute values.
const (
	nsglDoubleBuffer  = 5
	nsglColorSize     = 8
	nsglAlphaSize     = 11
	nsglDepthSize     = 12
	nsglStencilSize   = 13
	nsglSampleBuffers = 55
	nsglSamples       = 56
	nsglMultisample   = 59
	nsglAccelerated   = 73
	nsglOpenGLProfile = 99
)

// NSOpenGLProfileVersion values.
const (
	NSGLProfileLegacy = 0x1000
	NSGLProfile32Core = 0x3200
	NSGLProfile41Core = 0x4100
)

// NSOpenGLProfile maps a requested version to the closest profile macOS
// offers.
func NSOpenGLProfile(v gl.Version) (uint32, error) {
	switch v.Profile {
	case gl.ProfileCompat:
		return NSGLProfileLegacy, nil
	case gl.ProfileCore:
		switch {
		case v.AtLeast(4, 2):
			return 0, errors.New("macOS supports OpenGL up to version 4.1")
		case v.AtLeast(3, 3):
			return NSGLProfile41Core, nil
		default:
			return NSGLProfile32Core, nil
		}
	default:
		return 0, errors.New("macOS does not support OpenGL ES")
	}
}

// NSOpenGL returns the NSOpenGLPixelFormat attributes for c.
func NSOpenGL(c gl.Config) ([]uint32, error) {
	profile, err := NSOpenGLProfile(c.Version)
	if err != nil {
		return nil, err
	}
	b := c.Format.Bits()
	attrs := []uint32{
		nsglOpenGLProfile, profile,
		nsglColorSize, uint32(b.Red + b.Green + b.Blue),
		nsglAlphaSize, uint32(b.Alpha),
		nsglDepthSize, uint32(b.Depth),
		nsglStencilSize, uint32(b.Stencil),
	}
	if !c.Optional {
		attrs = append(attrs, nsglAccelerated)
	}
	if c.DoubleBuffer {
		attrs = append(attrs, nsglDoubleBuffer)
	}
	if c.MSAA > 0 {
		attrs = append(attrs, nsglMultisample, nsglSampleBuffers, 1, nsglSamples, uint32(c.MSAA))
	}
	return append(attrs, 0), nil
}
