// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

package app

import (
	"encoding/binary"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"

	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

func TestModeRate(t *testing.T) {
	// 1920x1080@60 CEA timing.
	assert.InDelta(t, 60.0, modeRate(148500000, 2200, 1125), 0.001)
	assert.Zero(t, modeRate(148500000, 0, 1125))
	assert.Zero(t, modeRate(148500000, 2200, 0))
}

func TestCursorGlyph(t *testing.T) {
	assert.Equal(t, uint16(glyphLeftPtr), cursorGlyph(pointer.CursorDefault))
	assert.Equal(t, uint16(glyphHand2), cursorGlyph(pointer.CursorHand))
	assert.Equal(t, uint16(glyphXterm), cursorGlyph(pointer.CursorText))
	assert.Equal(t, uint16(glyphSbHDoubleArrow), cursorGlyph(pointer.CursorEwResize))
	assert.Equal(t, uint16(glyphSbVDoubleArrow), cursorGlyph(pointer.CursorRowResize))

	sides := map[uint16]bool{}
	for _, c := range []pointer.Cursor{
		pointer.CursorEResize, pointer.CursorNResize, pointer.CursorNeResize, pointer.CursorNwResize,
		pointer.CursorSResize, pointer.CursorSeResize, pointer.CursorSwResize, pointer.CursorWResize,
	} {
		sides[cursorGlyph(c)] = true
	}
	assert.Len(t, sides, 8, "every edge and corner has its own glyph")

	for c := pointer.Cursor(0); int(c) < pointer.NumCursors; c++ {
		g := cursorGlyph(c)
		assert.Zero(t, g%2, "%v maps to a mask glyph", c)
		assert.LessOrEqual(t, g, uint16(glyphXterm))
	}
}

func TestX11Button(t *testing.T) {
	tests := []struct {
		detail xproto.Button
		btn    pointer.Button
	}{
		{1, pointer.ButtonLeft},
		{2, pointer.ButtonMiddle},
		{3, pointer.ButtonRight},
		{8, pointer.ButtonBack},
		{9, pointer.ButtonForward},
	}
	for _, tt := range tests {
		btn, ok := x11Button(tt.detail)
		assert.True(t, ok)
		assert.Equal(t, tt.btn, btn)
	}
	for _, scroll := range []xproto.Button{4, 5, 6, 7, 10} {
		_, ok := x11Button(scroll)
		assert.False(t, ok, "button %d", scroll)
	}
}

func TestX11Extent(t *testing.T) {
	w, h := x11Extent(system.Size{Width: 512, Height: 256})
	assert.Equal(t, uint16(512), w)
	assert.Equal(t, uint16(256), h)

	w, h = x11Extent(system.Size{Width: 0, Height: 1 << 20})
	assert.Equal(t, uint16(1), w)
	assert.Equal(t, uint16(0xFFFF), h)
}

func TestClientMessage(t *testing.T) {
	msg := clientMessage(0x1200005, 77)
	assert.Len(t, msg, 32)
	assert.Equal(t, byte(xproto.ClientMessage), msg[0])
	assert.Equal(t, byte(32), msg[1])
	assert.Equal(t, uint32(0x1200005), binary.LittleEndian.Uint32([]byte(msg[4:8])))
	assert.Equal(t, uint32(77), binary.LittleEndian.Uint32([]byte(msg[8:12])))
}

func TestEventWindow(t *testing.T) {
	xid, ok := eventWindow(xproto.KeyPressEvent{Event: 5})
	assert.True(t, ok)
	assert.Equal(t, xproto.Window(5), xid)

	xid, ok = eventWindow(xproto.ConfigureNotifyEvent{Event: 1, Window: 6})
	assert.True(t, ok)
	assert.Equal(t, xproto.Window(6), xid)

	_, ok = eventWindow(xproto.MapNotifyEvent{Window: 7})
	assert.False(t, ok)
}

func TestX11SharedWired(t *testing.T) {
	assert.NotNil(t, x11Shared.New)
	assert.NotNil(t, x11Shared.Destroy)
}
