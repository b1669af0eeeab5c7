// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"time"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	syscall "golang.org/x/sys/windows"

	"picoview.org/app/internal/windows"
)

// dxgiVSync is the frame pacer source for Win32. It waits for vertical
// blank on the DXGI output of the first registered window, and falls
// back to DwmFlush and then to the refresh rate of its monitor.
type dxgiVSync struct {
	factory *ole.IUnknown
	output  *ole.IUnknown
}

var _IID_IDXGIFactory = ole.NewGUID("{7b7166ec-21c7-44ae-b21a-c9ae321ae369}")

type dxgiObjectVtbl struct {
	ole.IUnknownVtbl
	SetPrivateData          uintptr
	SetPrivateDataInterface uintptr
	GetPrivateData          uintptr
	GetParent               uintptr
}

type dxgiFactoryVtbl struct {
	dxgiObjectVtbl
	EnumAdapters uintptr
}

type dxgiAdapterVtbl struct {
	dxgiObjectVtbl
	EnumOutputs uintptr
}

type dxgiOutputVtbl struct {
	dxgiObjectVtbl
	GetDesc                 uintptr
	GetDisplayModeList      uintptr
	FindClosestMatchingMode uintptr
	WaitForVBlank           uintptr
}

type dxgiOutputDesc struct {
	DeviceName         [32]uint16
	DesktopCoordinates windows.Rect
	AttachedToDesktop  int32
	Rotation           uint32
	Monitor            syscall.Handle
}

func newDXGIVSync() *dxgiVSync {
	v := new(dxgiVSync)
	// WaitForVBlank is unreliable before Windows 10.
	if syscall.RtlGetVersion().MajorVersion < 10 {
		return v
	}
	f, err := windows.CreateDXGIFactory((*syscall.GUID)(unsafe.Pointer(_IID_IDXGIFactory)))
	if err != nil {
		return v
	}
	v.factory = (*ole.IUnknown)(unsafe.Pointer(f))
	return v
}

func (v *dxgiVSync) Select(hwnds []syscall.Handle) time.Duration {
	if v.output != nil {
		v.output.Release()
		v.output = nil
	}
	if len(hwnds) == 0 {
		return 0
	}
	mon := windows.MonitorFromWindow(hwnds[0])
	if v.factory != nil {
		v.output = v.findOutput(mon)
	}
	return refreshInterval(mon)
}

func (v *dxgiVSync) Wait() bool {
	if v.output != nil {
		vtbl := (*dxgiOutputVtbl)(unsafe.Pointer(v.output.RawVTable))
		hr := windows.Call(vtbl.WaitForVBlank, uintptr(unsafe.Pointer(v.output)))
		if hr == 0 {
			return true
		}
	}
	return windows.DwmIsCompositionEnabled() && windows.DwmFlush() == nil
}

func (v *dxgiVSync) release() {
	if v.output != nil {
		v.output.Release()
		v.output = nil
	}
	if v.factory != nil {
		v.factory.Release()
		v.factory = nil
	}
}

// findOutput returns the DXGI output that drives mon.
func (v *dxgiVSync) findOutput(mon syscall.Handle) *ole.IUnknown {
	fvtbl := (*dxgiFactoryVtbl)(unsafe.Pointer(v.factory.RawVTable))
	for i := 0; ; i++ {
		var adapter *ole.IUnknown
		hr := windows.Call(fvtbl.EnumAdapters, uintptr(unsafe.Pointer(v.factory)), uintptr(i), uintptr(unsafe.Pointer(&adapter)))
		if hr != 0 {
			return nil
		}
		out := adapterOutput(adapter, mon)
		adapter.Release()
		if out != nil {
			return out
		}
	}
}

func adapterOutput(adapter *ole.IUnknown, mon syscall.Handle) *ole.IUnknown {
	avtbl := (*dxgiAdapterVtbl)(unsafe.Pointer(adapter.RawVTable))
	for j := 0; ; j++ {
		var out *ole.IUnknown
		hr := windows.Call(avtbl.EnumOutputs, uintptr(unsafe.Pointer(adapter)), uintptr(j), uintptr(unsafe.Pointer(&out)))
		if hr != 0 {
			// DXGI_ERROR_NOT_FOUND past the last output.
			return nil
		}
		var desc dxgiOutputDesc
		ovtbl := (*dxgiOutputVtbl)(unsafe.Pointer(out.RawVTable))
		hr = windows.Call(ovtbl.GetDesc, uintptr(unsafe.Pointer(out)), uintptr(unsafe.Pointer(&desc)))
		if hr == 0 && desc.Monitor == mon {
			return out
		}
		out.Release()
	}
}

// refreshInterval returns the frame interval of mon, assuming 60 Hz when
// the display mode is unknown.
func refreshInterval(mon syscall.Handle) time.Duration {
	hz := uint32(60)
	if mi, ok := windows.GetMonitorInfo(mon); ok {
		if dm, ok := windows.EnumDisplaySettings(&mi.SzDevice[0]); ok && dm.DmDisplayFrequency > 1 {
			hz = dm.DmDisplayFrequency
		}
	}
	return time.Second / time.Duration(hz)
}
