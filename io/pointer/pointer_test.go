// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"testing"
)

func TestCursorSet(t *testing.T) {
	if NumCursors != 33 {
		t.Fatalf("NumCursors = %d", NumCursors)
	}
	seen := make(map[string]bool)
	for c := Cursor(0); c < cursorCount; c++ {
		name := c.String()
		if name == "" || seen[name] {
			t.Errorf("cursor %d has empty or duplicate name %q", c, name)
		}
		seen[name] = true
	}
}

func TestButtonString(t *testing.T) {
	for _, tc := range []struct {
		b   Button
		res string
	}{
		{ButtonLeft, "Left"},
		{ButtonRight, "Right"},
		{ButtonMiddle, "Middle"},
		{ButtonForward, "Forward"},
		{ButtonBack, "Back"},
	} {
		t.Run(tc.res, func(t *testing.T) {
			if want, got := tc.res, tc.b.String(); want != got {
				t.Errorf("got %q; want %q", got, want)
			}
		})
	}
}
