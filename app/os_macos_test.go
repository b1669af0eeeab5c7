// SPDX-License-Identifier: Unlicense OR MIT

//go:build darwin && !ios

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"picoview.org/io/pointer"
)

func TestMacButton(t *testing.T) {
	want := []pointer.Button{
		pointer.ButtonLeft, pointer.ButtonRight, pointer.ButtonMiddle,
		pointer.ButtonBack, pointer.ButtonForward,
	}
	for n, btn := range want {
		got, ok := macButton(n)
		assert.True(t, ok)
		assert.Equal(t, btn, got)
	}
	_, ok := macButton(5)
	assert.False(t, ok)
}

func TestCursorSelector(t *testing.T) {
	assert.Equal(t, "arrowCursor", cursorSelector(pointer.CursorDefault))
	assert.Equal(t, "IBeamCursor", cursorSelector(pointer.CursorText))
	assert.Equal(t, "closedHandCursor", cursorSelector(pointer.CursorHandGrabbing))
	for c := pointer.Cursor(0); int(c) < pointer.NumCursors; c++ {
		assert.NotEmpty(t, cursorSelector(c), "%v", c)
	}
}

func TestAppKitSharedWired(t *testing.T) {
	assert.NotNil(t, appkitShared.New)
	assert.NotNil(t, appkitShared.Destroy)
}
