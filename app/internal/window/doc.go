// SPDX-License-Identifier: Unlicense OR MIT

// Package window implements the platform independent core shared by the
// native windows: event dispatch and per-window state.
package window
