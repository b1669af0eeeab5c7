// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParent is returned by OpenEmbedded when the parent
	// handle does not belong to the running platform.
	ErrInvalidParent = errors.New("app: invalid parent handle")
	// ErrDisconnected is returned by Waker.Wakeup after the window has
	// closed.
	ErrDisconnected = errors.New("app: window closed")
	// ErrConsumed is returned when a Builder is opened twice.
	ErrConsumed = errors.New("app: builder already used")
)

// PlatformError is returned when a native call needed to open a window
// fails.
type PlatformError struct {
	// Op names the failed operation.
	Op  string
	Err error
}

// OpenGLError is returned when the OpenGL context of a window cannot be
// created and the configuration is not optional.
type OpenGLError struct {
	Msg string
	Err error
}

func (e *PlatformError) Error() string {
	if e.Err == nil {
		return "app: " + e.Op
	}
	return fmt.Sprintf("app: %s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

func (e *OpenGLError) Error() string {
	if e.Err == nil {
		return "app: opengl: " + e.Msg
	}
	return fmt.Sprintf("app: opengl: %s: %v", e.Msg, e.Err)
}

func (e *OpenGLError) Unwrap() error {
	return e.Err
}

func platformErr(op string, err error) error {
	return &PlatformError{Op: op, Err: err}
}

func glErr(msg string, err error) error {
	return &OpenGLError{Msg: msg, Err: err}
}
