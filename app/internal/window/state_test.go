// SPDX-License-Identifier: Unlicense OR MIT

package window

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"picoview.org/f32"
	"picoview.org/io/key"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

func TestCaptureBalance(t *testing.T) {
	for _, tc := range []struct {
		name         string
		downs, ups   int
		set, unset   int
		stillHolding bool
	}{
		{"single click", 1, 1, 1, 1, false},
		{"chord", 3, 3, 1, 1, false},
		{"partial release", 3, 2, 1, 0, true},
		{"no release", 2, 0, 1, 0, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var s State
			set, unset := 0, 0
			for i := 0; i < tc.downs; i++ {
				if s.Press() {
					set++
				}
			}
			for i := 0; i < tc.ups; i++ {
				if s.Release() {
					unset++
				}
			}
			assert.Equal(t, tc.set, set)
			assert.Equal(t, tc.unset, unset)
			assert.Equal(t, tc.stillHolding, s.Captured())
		})
	}
}

func TestReleaseSaturates(t *testing.T) {
	var s State
	// Press outside the window, release inside.
	assert.False(t, s.Release())
	assert.False(t, s.Captured())
	assert.True(t, s.Press())
	assert.True(t, s.Release())
}

func TestModifierMinimality(t *testing.T) {
	var s State
	snapshots := []key.Modifiers{
		0, key.ModShift, key.ModShift, key.ModShift | key.ModCtrl,
		key.ModShift | key.ModCtrl, 0, 0,
	}
	var emitted []key.Modifiers
	for _, m := range snapshots {
		if s.SetModifiers(m) {
			emitted = append(emitted, m)
		}
	}
	assert.Equal(t, []key.Modifiers{key.ModShift, key.ModShift | key.ModCtrl, 0}, emitted)
	assert.Equal(t, key.Modifiers(0), s.Modifiers())
}

func TestFocusGate(t *testing.T) {
	var s State
	assert.False(t, s.Focused())
	assert.False(t, s.Focus(false), "initial focus-out must be suppressed")
	assert.True(t, s.Focus(true))
	assert.False(t, s.Focus(true))
	assert.True(t, s.Focus(false))
}

func TestCloseLatch(t *testing.T) {
	var s State
	assert.False(t, s.Closed())
	assert.True(t, s.Close())
	for i := 0; i < 3; i++ {
		assert.False(t, s.Close())
	}
	assert.True(t, s.Closed())
}

func TestGeometry(t *testing.T) {
	var s State
	_, ok := s.Position()
	assert.False(t, ok)
	assert.True(t, s.Move(f32.Pt(0, 0)), "first origin is a change")
	assert.False(t, s.Move(f32.Pt(0, 0)))
	assert.True(t, s.Move(f32.Pt(100, 200)))
	p, ok := s.Position()
	assert.True(t, ok)
	assert.Equal(t, f32.Pt(100, 200), p)

	sz := system.Size{Width: 512, Height: 256}
	assert.True(t, s.Resize(sz))
	assert.False(t, s.Resize(sz))
	assert.Equal(t, sz, s.Size())

	assert.False(t, s.SetCursor(pointer.CursorDefault))
	assert.True(t, s.SetCursor(pointer.CursorHand))
	assert.Equal(t, pointer.CursorHand, s.Cursor())
}
