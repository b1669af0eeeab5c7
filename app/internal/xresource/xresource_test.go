// SPDX-License-Identifier: Unlicense OR MIT

package xresource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want float32
	}{
		{"empty", "", 1},
		{"default", "Xft.dpi:\t96\n", 1},
		{"hidpi", "Xcursor.size:\t48\nXft.dpi:\t192\nXft.antialias:\t1\n", 2},
		{"fractional", "Xft.dpi: 144", 1.5},
		{"comment", "! Xft.dpi: 192\n", 1},
		{"malformed", "Xft.dpi:\tlarge\n", 1},
		{"negative", "Xft.dpi: -96\n", 1},
		{"override", "Xft.dpi: 96\nXft.dpi: 120\n", 1.25},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Parse(tc.in).Scale(), 1e-6)
		})
	}
}

func TestParse(t *testing.T) {
	db := Parse("Xft.hintstyle:\thintslight\n*background:  #202020\nbogus line\n")
	assert.Equal(t, Database{
		"Xft.hintstyle": "hintslight",
		"*background":   "#202020",
	}, db)
}
