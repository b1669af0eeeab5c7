// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "testing"

func TestPointRound(t *testing.T) {
	for _, tc := range []struct {
		p    Point
		x, y int32
	}{
		{Pt(0, 0), 0, 0},
		{Pt(99.5, 199.4), 100, 199},
		{Pt(-10.6, -0.2), -11, 0},
	} {
		x, y := tc.p.Round()
		if x != tc.x || y != tc.y {
			t.Errorf("%v.Round() = (%d, %d); want (%d, %d)", tc.p, x, y, tc.x, tc.y)
		}
	}
}

func TestPointString(t *testing.T) {
	if got, want := Pt(1.5, -2).String(), "(1.5,-2)"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
}
