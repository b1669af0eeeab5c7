// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

package app

import (
	"encoding/binary"
	"errors"
	"log/slog"
	"sync"
	"time"
	"unsafe"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/ebitengine/purego"
	"golang.org/x/exp/slices"
	syscall "golang.org/x/sys/unix"
)

const (
	_XCB_GE_GENERIC                         = 35
	_XCB_PRESENT_COMPLETE_NOTIFY            = 1
	_XCB_PRESENT_EVENT_MASK_COMPLETE_NOTIFY = 2
)

// xcbFuncs holds the libxcb and libxcb-present entry points. The
// libraries are loaded once per process.
type xcbFuncs struct {
	connect           func(display *byte, screen *int32) uintptr
	connectionHasErr  func(c uintptr) int32
	disconnect        func(c uintptr)
	generateID        func(c uintptr) uint32
	getExtensionData  func(c uintptr, ext uintptr) unsafe.Pointer
	getFileDescriptor func(c uintptr) int32
	flush             func(c uintptr) int32
	pollForEvent      func(c uintptr) unsafe.Pointer
	free              func(p unsafe.Pointer)

	// Cookies are returned in a register and ignored.
	presentSelectInput func(c uintptr, eid, window, mask uint32) uint32
	presentNotifyMSC   func(c uintptr, window, serial uint32, target, divisor, remainder uint64) uint32

	presentID uintptr
}

var loadXCB = sync.OnceValues(func() (*xcbFuncs, error) {
	xcb, err := purego.Dlopen("libxcb.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	lib, err := purego.Dlopen("libxcb-present.so.0", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	f := new(xcbFuncs)
	if f.presentID, err = purego.Dlsym(lib, "xcb_present_id"); err != nil {
		return nil, err
	}
	purego.RegisterLibFunc(&f.connect, xcb, "xcb_connect")
	purego.RegisterLibFunc(&f.connectionHasErr, xcb, "xcb_connection_has_error")
	purego.RegisterLibFunc(&f.disconnect, xcb, "xcb_disconnect")
	purego.RegisterLibFunc(&f.generateID, xcb, "xcb_generate_id")
	purego.RegisterLibFunc(&f.getExtensionData, xcb, "xcb_get_extension_data")
	purego.RegisterLibFunc(&f.getFileDescriptor, xcb, "xcb_get_file_descriptor")
	purego.RegisterLibFunc(&f.flush, xcb, "xcb_flush")
	purego.RegisterLibFunc(&f.pollForEvent, xcb, "xcb_poll_for_event")
	purego.RegisterLibFunc(&f.free, purego.RTLD_DEFAULT, "free")
	purego.RegisterLibFunc(&f.presentSelectInput, lib, "xcb_present_select_input")
	purego.RegisterLibFunc(&f.presentNotifyMSC, lib, "xcb_present_notify_msc")
	return f, nil
})

// presentVSync is the frame pacer source used when the server has the
// Present extension. Wait asks for a notification at the next vertical
// blank of the first registered window and blocks until it completes.
//
// Present completions are generic events, which the xgb reader cannot
// parse. They are read from a separate libxcb connection instead.
type presentVSync struct {
	f      *xcbFuncs
	conn   uintptr
	fd     int32
	opcode byte
	rate   *randrVSync
	log    *slog.Logger

	// Worker state.
	target   xproto.Window
	selected map[xproto.Window]bool
	serial   uint32
	interval time.Duration
}

func newPresentVSync(rate *randrVSync, log *slog.Logger) (*presentVSync, error) {
	f, err := loadXCB()
	if err != nil {
		return nil, err
	}
	conn := f.connect(nil, nil)
	if conn == 0 || f.connectionHasErr(conn) != 0 {
		if conn != 0 {
			f.disconnect(conn)
		}
		return nil, errors.New("xcb_connect failed")
	}
	ext := f.getExtensionData(conn, f.presentID)
	// xcb_query_extension_reply_t: present at 8, major_opcode at 9.
	if ext == nil || *(*byte)(unsafe.Add(ext, 8)) == 0 {
		f.disconnect(conn)
		return nil, errors.New("no Present extension")
	}
	return &presentVSync{
		f:        f,
		conn:     conn,
		fd:       f.getFileDescriptor(conn),
		opcode:   *(*byte)(unsafe.Add(ext, 9)),
		rate:     rate,
		log:      log,
		selected: make(map[xproto.Window]bool),
	}, nil
}

func (s *presentVSync) Select(ids []xproto.Window) time.Duration {
	s.interval = s.rate.Select(ids)
	for xid := range s.selected {
		if !slices.Contains(ids, xid) {
			delete(s.selected, xid)
		}
	}
	s.target = 0
	if len(ids) == 0 {
		return s.interval
	}
	s.target = ids[0]
	if !s.selected[s.target] {
		eid := s.f.generateID(s.conn)
		s.f.presentSelectInput(s.conn, eid, uint32(s.target), _XCB_PRESENT_EVENT_MASK_COMPLETE_NOTIFY)
		s.selected[s.target] = true
	}
	return s.interval
}

func (s *presentVSync) Wait() bool {
	if s.target == 0 {
		return false
	}
	s.serial++
	s.f.presentNotifyMSC(s.conn, uint32(s.target), s.serial, 0, 1, 0)
	if s.f.flush(s.conn) <= 0 {
		return false
	}
	interval := s.interval
	if interval <= 0 {
		interval = fallbackInterval
	}
	ok := s.await(uint32(s.target), s.serial, time.Now().Add(2*interval))
	if !ok {
		s.log.Debug("present notification timed out", "window", s.target)
	}
	return ok
}

// await reads events until the completion of serial on window arrives
// or the deadline passes.
func (s *presentVSync) await(window, serial uint32, deadline time.Time) bool {
	for {
		for {
			ev := s.f.pollForEvent(s.conn)
			if ev == nil {
				break
			}
			w, n, ok := presentComplete(unsafe.Slice((*byte)(ev), 24), s.opcode)
			s.f.free(ev)
			if ok && w == window && n == serial {
				return true
			}
		}
		if s.f.connectionHasErr(s.conn) != 0 {
			return false
		}
		left := time.Until(deadline)
		if left <= 0 {
			return false
		}
		fds := []syscall.PollFd{{Fd: s.fd, Events: syscall.POLLIN | syscall.POLLERR}}
		if _, err := syscall.Poll(fds, int(left.Milliseconds())+1); err != nil && err != syscall.EINTR {
			return false
		}
	}
}

func (s *presentVSync) close() {
	s.f.disconnect(s.conn)
}

// presentComplete decodes a Present CompleteNotify event. opcode is the
// major opcode of the extension.
func presentComplete(ev []byte, opcode byte) (window, serial uint32, ok bool) {
	if len(ev) < 24 || ev[0]&0x7f != _XCB_GE_GENERIC || ev[1] != opcode {
		return 0, 0, false
	}
	if binary.NativeEndian.Uint16(ev[8:]) != _XCB_PRESENT_COMPLETE_NOTIFY {
		return 0, 0, false
	}
	return binary.NativeEndian.Uint32(ev[16:]), binary.NativeEndian.Uint32(ev[20:]), true
}

