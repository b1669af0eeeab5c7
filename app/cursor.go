// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"picoview.org/io/pointer"
)

// cursorCache loads native cursors on first use. It is shared by all
// windows of a connection.
type cursorCache[T any] struct {
	load func(c pointer.Cursor) (T, error)

	mu      sync.Mutex
	cursors map[pointer.Cursor]T
}

func newCursorCache[T any](load func(c pointer.Cursor) (T, error)) *cursorCache[T] {
	return &cursorCache[T]{
		load:    load,
		cursors: make(map[pointer.Cursor]T),
	}
}

// get returns the native cursor for c. Failed loads are not cached.
func (cc *cursorCache[T]) get(c pointer.Cursor) (T, error) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if n, ok := cc.cursors[c]; ok {
		return n, nil
	}
	n, err := cc.load(c)
	if err != nil {
		var zero T
		return zero, err
	}
	cc.cursors[c] = n
	return n, nil
}

// drain empties the cache, passing every loaded cursor to free in
// cursor order.
func (cc *cursorCache[T]) drain(free func(n T)) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	keys := maps.Keys(cc.cursors)
	slices.Sort(keys)
	for _, k := range keys {
		free(cc.cursors[k])
	}
	maps.Clear(cc.cursors)
}
