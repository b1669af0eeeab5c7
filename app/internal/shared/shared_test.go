// SPDX-License-Identifier: Unlicense OR MIT

package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type conn struct {
	id int
}

func TestLifecycle(t *testing.T) {
	created, destroyed := 0, 0
	v := &Value[conn]{
		New: func() (*conn, error) {
			created++
			return &conn{id: created}, nil
		},
		Destroy: func(*conn) { destroyed++ },
	}

	a, err := v.Acquire()
	require.NoError(t, err)
	b, err := v.Acquire()
	require.NoError(t, err)
	assert.Same(t, a, b, "second holder must share the connection")
	assert.Equal(t, 2, v.Refs())

	v.Release()
	assert.Equal(t, 0, destroyed, "destroyed while still held")
	v.Release()
	assert.Equal(t, 1, destroyed)
	assert.Equal(t, 0, v.Refs())

	c, err := v.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 2, c.id, "expected a fresh connection after the last release")
	v.Release()
}

func TestAcquireError(t *testing.T) {
	errNoDisplay := errors.New("no display")
	v := &Value[conn]{
		New: func() (*conn, error) { return nil, errNoDisplay },
	}
	_, err := v.Acquire()
	assert.ErrorIs(t, err, errNoDisplay)
	assert.Equal(t, 0, v.Refs())
}

func TestReleaseWithoutAcquire(t *testing.T) {
	v := &Value[conn]{New: func() (*conn, error) { return new(conn), nil }}
	assert.Panics(t, v.Release)
}
