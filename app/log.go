// SPDX-License-Identifier: Unlicense OR MIT

//go:build !windows

package app

import "log/slog"

func defaultLogger() *slog.Logger {
	return slog.Default()
}
