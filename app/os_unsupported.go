// SPDX-License-Identifier: Unlicense OR MIT

//go:build !windows && !(darwin && !ios) && !(linux && !android) && !freebsd

package app

import (
	"errors"
	"runtime"
)

var errUnsupported = errors.New(runtime.GOOS + " is not supported")

func openBlocking(f Factory, cnf config) error {
	return platformErr("OpenBlocking", errUnsupported)
}

func openEmbedded(f Factory, cnf config, parent RawHandle) error {
	return platformErr("OpenEmbedded", errUnsupported)
}
