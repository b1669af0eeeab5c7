// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows
// +build windows

// Package windows wraps the Win32 functions used by the window, OpenGL
// and vsync implementations.
package windows

import (
	"fmt"
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

type Rect struct {
	Left, Top, Right, Bottom int32
}

type Point struct {
	X, Y int32
}

type WndClassEx struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CnClsExtra    int32
	CbWndExtra    int32
	HInstance     syscall.Handle
	HIcon         syscall.Handle
	HCursor       syscall.Handle
	HbrBackground syscall.Handle
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       syscall.Handle
}

type Msg struct {
	Hwnd     syscall.Handle
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       Point
	LPrivate uint32
}

type MinMaxInfo struct {
	PtReserved     Point
	PtMaxSize      Point
	PtMaxPosition  Point
	PtMinTrackSize Point
	PtMaxTrackSize Point
}

// MouseTrack is the TRACKMOUSEEVENT structure.
type MouseTrack struct {
	CbSize      uint32
	DwFlags     uint32
	HwndTrack   syscall.Handle
	DwHoverTime uint32
}

type MonitorInfoEx struct {
	CbSize    uint32
	RcMonitor Rect
	RcWork    Rect
	DwFlags   uint32
	SzDevice  [32]uint16
}

// DevMode is the display subset of DEVMODEW.
type DevMode struct {
	DmDeviceName       [32]uint16
	DmSpecVersion      uint16
	DmDriverVersion    uint16
	DmSize             uint16
	DmDriverExtra      uint16
	DmFields           uint32
	dmPosition         [16]byte
	dmPrinter          [5]int16
	DmFormName         [32]uint16
	DmLogPixels        uint16
	DmBitsPerPel       uint32
	DmPelsWidth        uint32
	DmPelsHeight       uint32
	DmDisplayFlags     uint32
	DmDisplayFrequency uint32
	dmReserved         [8]uint32
}

type PixelFormatDescriptor struct {
	NSize           uint16
	NVersion        uint16
	DwFlags         uint32
	IPixelType      uint8
	CColorBits      uint8
	CRedBits        uint8
	CRedShift       uint8
	CGreenBits      uint8
	CGreenShift     uint8
	CBlueBits       uint8
	CBlueShift      uint8
	CAlphaBits      uint8
	CAlphaShift     uint8
	CAccumBits      uint8
	CAccumRedBits   uint8
	CAccumGreenBits uint8
	CAccumBlueBits  uint8
	CAccumAlphaBits uint8
	CDepthBits      uint8
	CStencilBits    uint8
	CAuxBuffers     uint8
	ILayerType      uint8
	BReserved       uint8
	DwLayerMask     uint32
	DwVisibleMask   uint32
	DwDamageMask    uint32
}

// BlurBehind is the DWM_BLURBEHIND structure.
type BlurBehind struct {
	DwFlags                uint32
	FEnable                int32
	HRgnBlur               syscall.Handle
	FTransitionOnMaximized int32
}

const (
	CS_OWNDC = 0x0020

	CW_USEDEFAULT = -2147483648

	CF_UNICODETEXT = 13

	DWM_BB_ENABLE = 0x1

	ENUM_CURRENT_SETTINGS = 0xFFFFFFFF

	GMEM_MOVEABLE = 0x0002

	GWL_STYLE = -16

	HC_ACTION = 0
	HTCLIENT  = 1

	IDC_ARROW    = 32512
	IDC_IBEAM    = 32513
	IDC_WAIT     = 32514
	IDC_CROSS    = 32515
	IDC_SIZENWSE = 32642
	IDC_SIZENESW = 32643
	IDC_SIZEWE   = 32644
	IDC_SIZENS   = 32645
	IDC_SIZEALL  = 32646
	IDC_NO       = 32648
	IDC_HAND     = 32649
	IDC_HELP     = 32651

	LWA_ALPHA = 0x2

	MONITOR_DEFAULTTOPRIMARY = 1

	PFD_DOUBLEBUFFER   = 0x00000001
	PFD_DRAW_TO_WINDOW = 0x00000004
	PFD_SUPPORT_OPENGL = 0x00000020
	PFD_TYPE_RGBA      = 0
	PFD_MAIN_PLANE     = 0

	PM_REMOVE = 0x0001

	SW_SHOWDEFAULT = 10

	SWP_NOSIZE     = 0x0001
	SWP_NOMOVE     = 0x0002
	SWP_NOZORDER   = 0x0004
	SWP_NOACTIVATE = 0x0010
	SWP_SHOWWINDOW = 0x0040
	SWP_HIDEWINDOW = 0x0080

	TME_LEAVE = 0x002

	USER_DEFAULT_SCREEN_DPI = 96

	VK_SHIFT   = 0x10
	VK_CONTROL = 0x11
	VK_MENU    = 0x12
	VK_CAPITAL = 0x14
	VK_LWIN    = 0x5B
	VK_RWIN    = 0x5C
	VK_NUMLOCK = 0x90
	VK_SCROLL  = 0x91

	WH_GETMESSAGE = 3

	WHEEL_DELTA = 120

	WS_CHILD            = 0x40000000
	WS_CLIPCHILDREN     = 0x02000000
	WS_CLIPSIBLINGS     = 0x04000000
	WS_MAXIMIZEBOX      = 0x00010000
	WS_OVERLAPPEDWINDOW = 0x00CF0000
	WS_POPUP            = 0x80000000
	WS_SIZEBOX          = 0x00040000
	WS_VISIBLE          = 0x10000000

	WS_EX_LAYERED = 0x00080000

	WM_DESTROY       = 0x0002
	WM_MOVE          = 0x0003
	WM_SIZE          = 0x0005
	WM_SETFOCUS      = 0x0007
	WM_KILLFOCUS     = 0x0008
	WM_PAINT         = 0x000F
	WM_CLOSE         = 0x0010
	WM_QUIT          = 0x0012
	WM_SHOWWINDOW    = 0x0018
	WM_SETCURSOR     = 0x0020
	WM_GETMINMAXINFO = 0x0024
	WM_DISPLAYCHANGE = 0x007E
	WM_KEYDOWN       = 0x0100
	WM_KEYUP         = 0x0101
	WM_SYSKEYDOWN    = 0x0104
	WM_SYSKEYUP      = 0x0105
	WM_MOUSEMOVE     = 0x0200
	WM_LBUTTONDOWN   = 0x0201
	WM_LBUTTONUP     = 0x0202
	WM_RBUTTONDOWN   = 0x0204
	WM_RBUTTONUP     = 0x0205
	WM_MBUTTONDOWN   = 0x0207
	WM_MBUTTONUP     = 0x0208
	WM_MOUSEWHEEL    = 0x020A
	WM_XBUTTONDOWN   = 0x020B
	WM_XBUTTONUP     = 0x020C
	WM_MOUSEHWHEEL   = 0x020E
	WM_MOUSELEAVE    = 0x02A3
	WM_DPICHANGED    = 0x02E0
	WM_USER          = 0x0400

	XBUTTON1 = 0x0001
	XBUTTON2 = 0x0002
)

var (
	kernel32          = syscall.NewLazySystemDLL("kernel32.dll")
	_GetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
	_GlobalAlloc      = kernel32.NewProc("GlobalAlloc")
	_GlobalFree       = kernel32.NewProc("GlobalFree")
	_GlobalLock       = kernel32.NewProc("GlobalLock")
	_GlobalUnlock     = kernel32.NewProc("GlobalUnlock")

	user32                        = syscall.NewLazySystemDLL("user32.dll")
	_AdjustWindowRectEx           = user32.NewProc("AdjustWindowRectEx")
	_CallNextHookEx               = user32.NewProc("CallNextHookEx")
	_ClientToScreen               = user32.NewProc("ClientToScreen")
	_CloseClipboard               = user32.NewProc("CloseClipboard")
	_CreateWindowEx               = user32.NewProc("CreateWindowExW")
	_DefWindowProc                = user32.NewProc("DefWindowProcW")
	_DestroyWindow                = user32.NewProc("DestroyWindow")
	_DispatchMessage              = user32.NewProc("DispatchMessageW")
	_EmptyClipboard               = user32.NewProc("EmptyClipboard")
	_EnumDisplaySettings          = user32.NewProc("EnumDisplaySettingsW")
	_GetAsyncKeyState             = user32.NewProc("GetAsyncKeyState")
	_GetClientRect                = user32.NewProc("GetClientRect")
	_GetClipboardData             = user32.NewProc("GetClipboardData")
	_GetDC                        = user32.NewProc("GetDC")
	_GetDesktopWindow             = user32.NewProc("GetDesktopWindow")
	_GetDpiForWindow              = user32.NewProc("GetDpiForWindow")
	_GetKeyState                  = user32.NewProc("GetKeyState")
	_GetMessage                   = user32.NewProc("GetMessageW")
	_GetMonitorInfo               = user32.NewProc("GetMonitorInfoW")
	_GetUpdateRect                = user32.NewProc("GetUpdateRect")
	_GetWindowLong                = user32.NewProc("GetWindowLongW")
	_IsWindow                     = user32.NewProc("IsWindow")
	_KillTimer                    = user32.NewProc("KillTimer")
	_LoadCursor                   = user32.NewProc("LoadCursorW")
	_MonitorFromWindow            = user32.NewProc("MonitorFromWindow")
	_OpenClipboard                = user32.NewProc("OpenClipboard")
	_PeekMessage                  = user32.NewProc("PeekMessageW")
	_PostMessage                  = user32.NewProc("PostMessageW")
	_PostQuitMessage              = user32.NewProc("PostQuitMessage")
	_RegisterClassExW             = user32.NewProc("RegisterClassExW")
	_ReleaseCapture               = user32.NewProc("ReleaseCapture")
	_ReleaseDC                    = user32.NewProc("ReleaseDC")
	_SendMessage                  = user32.NewProc("SendMessageW")
	_SetCapture                   = user32.NewProc("SetCapture")
	_SetClipboardData             = user32.NewProc("SetClipboardData")
	_SetCursor                    = user32.NewProc("SetCursor")
	_SetCursorPos                 = user32.NewProc("SetCursorPos")
	_SetFocus                     = user32.NewProc("SetFocus")
	_SetLayeredWindowAttributes   = user32.NewProc("SetLayeredWindowAttributes")
	_SetThreadDpiAwarenessContext = user32.NewProc("SetThreadDpiAwarenessContext")
	_SetTimer                     = user32.NewProc("SetTimer")
	_SetWindowPos                 = user32.NewProc("SetWindowPos")
	_SetWindowText                = user32.NewProc("SetWindowTextW")
	_SetWindowsHookEx             = user32.NewProc("SetWindowsHookExW")
	_TrackMouseEvent              = user32.NewProc("TrackMouseEvent")
	_TranslateMessage             = user32.NewProc("TranslateMessage")
	_UnhookWindowsHookEx          = user32.NewProc("UnhookWindowsHookEx")
	_UnregisterClass              = user32.NewProc("UnregisterClassW")
	_ValidateRgn                  = user32.NewProc("ValidateRgn")

	gdi32                = syscall.NewLazySystemDLL("gdi32.dll")
	_ChoosePixelFormat   = gdi32.NewProc("ChoosePixelFormat")
	_DescribePixelFormat = gdi32.NewProc("DescribePixelFormat")
	_SetPixelFormat      = gdi32.NewProc("SetPixelFormat")
	_SwapBuffers         = gdi32.NewProc("SwapBuffers")

	dwmapi                     = syscall.NewLazySystemDLL("dwmapi.dll")
	_DwmEnableBlurBehindWindow = dwmapi.NewProc("DwmEnableBlurBehindWindow")
	_DwmFlush                  = dwmapi.NewProc("DwmFlush")
	_DwmIsCompositionEnabled   = dwmapi.NewProc("DwmIsCompositionEnabled")

	dxgi               = syscall.NewLazySystemDLL("dxgi.dll")
	_CreateDXGIFactory = dxgi.NewProc("CreateDXGIFactory")
)

func AdjustWindowRectEx(r *Rect, dwStyle uint32, bMenu int, dwExStyle uint32) {
	_AdjustWindowRectEx.Call(uintptr(unsafe.Pointer(r)), uintptr(dwStyle), uintptr(bMenu), uintptr(dwExStyle))
}

func CallNextHookEx(hHook syscall.Handle, nCode int32, wParam, lParam uintptr) uintptr {
	r, _, _ := _CallNextHookEx.Call(uintptr(hHook), uintptr(nCode), wParam, lParam)
	return r
}

func ClientToScreen(hwnd syscall.Handle, p *Point) bool {
	r, _, _ := _ClientToScreen.Call(uintptr(hwnd), uintptr(unsafe.Pointer(p)))
	return r != 0
}

func CloseClipboard() error {
	r, _, err := _CloseClipboard.Call()
	if r == 0 {
		return fmt.Errorf("CloseClipboard: %v", err)
	}
	return nil
}

func CreateWindowEx(dwExStyle uint32, lpClassName uint16, lpWindowName string, dwStyle uint32, x, y, w, h int32, hWndParent, hMenu, hInstance syscall.Handle, lpParam uintptr) (syscall.Handle, error) {
	wname := syscall.StringToUTF16Ptr(lpWindowName)
	hwnd, _, err := _CreateWindowEx.Call(
		uintptr(dwExStyle),
		uintptr(lpClassName),
		uintptr(unsafe.Pointer(wname)),
		uintptr(dwStyle),
		uintptr(x), uintptr(y),
		uintptr(w), uintptr(h),
		uintptr(hWndParent),
		uintptr(hMenu),
		uintptr(hInstance),
		uintptr(lpParam))
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowEx failed: %v", err)
	}
	return syscall.Handle(hwnd), nil
}

func DefWindowProc(hwnd syscall.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	r, _, _ := _DefWindowProc.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	return r
}

func DestroyWindow(hwnd syscall.Handle) {
	_DestroyWindow.Call(uintptr(hwnd))
}

func DispatchMessage(m *Msg) {
	_DispatchMessage.Call(uintptr(unsafe.Pointer(m)))
}

// DwmEnableBlurBehindWindow blurs the desktop behind the client area.
func DwmEnableBlurBehindWindow(hwnd syscall.Handle, enable bool) error {
	if err := _DwmEnableBlurBehindWindow.Find(); err != nil {
		return err
	}
	bb := BlurBehind{DwFlags: DWM_BB_ENABLE, FEnable: boolInt(enable)}
	r, _, _ := _DwmEnableBlurBehindWindow.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&bb)))
	if r != 0 {
		return fmt.Errorf("DwmEnableBlurBehindWindow: %#x", r)
	}
	return nil
}

// DwmFlush blocks until the next composition pass.
func DwmFlush() error {
	if err := _DwmFlush.Find(); err != nil {
		return err
	}
	r, _, _ := _DwmFlush.Call()
	if r != 0 {
		return fmt.Errorf("DwmFlush: %#x", r)
	}
	return nil
}

func DwmIsCompositionEnabled() bool {
	if _DwmIsCompositionEnabled.Find() != nil {
		return false
	}
	var enabled int32
	r, _, _ := _DwmIsCompositionEnabled.Call(uintptr(unsafe.Pointer(&enabled)))
	return r == 0 && enabled != 0
}

func EmptyClipboard() error {
	r, _, err := _EmptyClipboard.Call()
	if r == 0 {
		return fmt.Errorf("EmptyClipboard: %v", err)
	}
	return nil
}

// EnumDisplaySettings returns the current mode of the named display
// device.
func EnumDisplaySettings(device *uint16) (DevMode, bool) {
	var dm DevMode
	dm.DmSize = uint16(unsafe.Sizeof(dm))
	r, _, _ := _EnumDisplaySettings.Call(uintptr(unsafe.Pointer(device)), ENUM_CURRENT_SETTINGS, uintptr(unsafe.Pointer(&dm)))
	return dm, r != 0
}

func GetAsyncKeyState(vk int32) int16 {
	r, _, _ := _GetAsyncKeyState.Call(uintptr(vk))
	return int16(r)
}

func GetClientRect(hwnd syscall.Handle) Rect {
	var r Rect
	_GetClientRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	return r
}

func GetClipboardData(format uint32) (syscall.Handle, error) {
	r, _, err := _GetClipboardData.Call(uintptr(format))
	if r == 0 {
		return 0, fmt.Errorf("GetClipboardData: %v", err)
	}
	return syscall.Handle(r), nil
}

func GetDC(hwnd syscall.Handle) (syscall.Handle, error) {
	hdc, _, err := _GetDC.Call(uintptr(hwnd))
	if hdc == 0 {
		return 0, fmt.Errorf("GetDC failed: %v", err)
	}
	return syscall.Handle(hdc), nil
}

func GetDesktopWindow() syscall.Handle {
	r, _, _ := _GetDesktopWindow.Call()
	return syscall.Handle(r)
}

// GetDpiForWindow returns the DPI of the window, or
// USER_DEFAULT_SCREEN_DPI before Windows 10.
func GetDpiForWindow(hwnd syscall.Handle) int {
	if _GetDpiForWindow.Find() != nil {
		return USER_DEFAULT_SCREEN_DPI
	}
	dpi, _, _ := _GetDpiForWindow.Call(uintptr(hwnd))
	if dpi == 0 {
		return USER_DEFAULT_SCREEN_DPI
	}
	return int(dpi)
}

func GetKeyState(vk int32) int16 {
	r, _, _ := _GetKeyState.Call(uintptr(vk))
	return int16(r)
}

func GetMessage(m *Msg, hwnd syscall.Handle, wMsgFilterMin, wMsgFilterMax uint32) int32 {
	r, _, _ := _GetMessage.Call(uintptr(unsafe.Pointer(m)),
		uintptr(hwnd),
		uintptr(wMsgFilterMin),
		uintptr(wMsgFilterMax))
	return int32(r)
}

func GetModuleHandle() (syscall.Handle, error) {
	h, _, err := _GetModuleHandleW.Call(uintptr(0))
	if h == 0 {
		return 0, fmt.Errorf("GetModuleHandleW failed: %v", err)
	}
	return syscall.Handle(h), nil
}

func GetMonitorInfo(mon syscall.Handle) (MonitorInfoEx, bool) {
	var mi MonitorInfoEx
	mi.CbSize = uint32(unsafe.Sizeof(mi))
	r, _, _ := _GetMonitorInfo.Call(uintptr(mon), uintptr(unsafe.Pointer(&mi)))
	return mi, r != 0
}

// GetUpdateRect reports the region to repaint, if any.
func GetUpdateRect(hwnd syscall.Handle) (Rect, bool) {
	var r Rect
	ok, _, _ := _GetUpdateRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)), 0)
	return r, ok != 0
}

func GetWindowLong(hwnd syscall.Handle, index int32) uint32 {
	r, _, _ := _GetWindowLong.Call(uintptr(hwnd), uintptr(index))
	return uint32(r)
}

func GlobalAlloc(size uintptr) (syscall.Handle, error) {
	r, _, err := _GlobalAlloc.Call(GMEM_MOVEABLE, size)
	if r == 0 {
		return 0, fmt.Errorf("GlobalAlloc: %v", err)
	}
	return syscall.Handle(r), nil
}

func GlobalFree(h syscall.Handle) {
	_GlobalFree.Call(uintptr(h))
}

func GlobalLock(h syscall.Handle) (unsafe.Pointer, error) {
	r, _, err := _GlobalLock.Call(uintptr(h))
	if r == 0 {
		return nil, fmt.Errorf("GlobalLock: %v", err)
	}
	return *(*unsafe.Pointer)(unsafe.Pointer(&r)), nil
}

func GlobalUnlock(h syscall.Handle) {
	_GlobalUnlock.Call(uintptr(h))
}

func IsWindow(hwnd syscall.Handle) bool {
	r, _, _ := _IsWindow.Call(uintptr(hwnd))
	return r != 0
}

func KillTimer(hwnd syscall.Handle, id uintptr) {
	_KillTimer.Call(uintptr(hwnd), id)
}

func LoadCursor(curID uint16) (syscall.Handle, error) {
	h, _, err := _LoadCursor.Call(0, uintptr(curID))
	if h == 0 {
		return 0, fmt.Errorf("LoadCursorW failed: %v", err)
	}
	return syscall.Handle(h), nil
}

func MonitorFromWindow(hwnd syscall.Handle) syscall.Handle {
	r, _, _ := _MonitorFromWindow.Call(uintptr(hwnd), MONITOR_DEFAULTTOPRIMARY)
	return syscall.Handle(r)
}

func OpenClipboard(hwnd syscall.Handle) error {
	r, _, err := _OpenClipboard.Call(uintptr(hwnd))
	if r == 0 {
		return fmt.Errorf("OpenClipboard: %v", err)
	}
	return nil
}

func PeekMessage(m *Msg, hwnd syscall.Handle, wMsgFilterMin, wMsgFilterMax, wRemoveMsg uint32) bool {
	r, _, _ := _PeekMessage.Call(uintptr(unsafe.Pointer(m)), uintptr(hwnd), uintptr(wMsgFilterMin), uintptr(wMsgFilterMax), uintptr(wRemoveMsg))
	return r != 0
}

func PostMessage(hwnd syscall.Handle, msg uint32, wParam, lParam uintptr) error {
	r, _, err := _PostMessage.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	if r == 0 {
		return fmt.Errorf("PostMessage failed: %v", err)
	}
	return nil
}

func PostQuitMessage(exitCode uintptr) {
	_PostQuitMessage.Call(exitCode)
}

func RegisterClassEx(cls *WndClassEx) (uint16, error) {
	a, _, err := _RegisterClassExW.Call(uintptr(unsafe.Pointer(cls)))
	if a == 0 {
		return 0, fmt.Errorf("RegisterClassExW failed: %v", err)
	}
	return uint16(a), nil
}

func ReleaseCapture() bool {
	r, _, _ := _ReleaseCapture.Call()
	return r != 0
}

func ReleaseDC(hwnd, hdc syscall.Handle) {
	_ReleaseDC.Call(uintptr(hwnd), uintptr(hdc))
}

func SendMessage(hwnd syscall.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := _SendMessage.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}

func SetCapture(hwnd syscall.Handle) syscall.Handle {
	r, _, _ := _SetCapture.Call(uintptr(hwnd))
	return syscall.Handle(r)
}

func SetClipboardData(format uint32, mem syscall.Handle) error {
	r, _, err := _SetClipboardData.Call(uintptr(format), uintptr(mem))
	if r == 0 {
		return fmt.Errorf("SetClipboardData: %v", err)
	}
	return nil
}

func SetCursor(h syscall.Handle) {
	_SetCursor.Call(uintptr(h))
}

func SetCursorPos(x, y int32) {
	_SetCursorPos.Call(uintptr(x), uintptr(y))
}

func SetFocus(hwnd syscall.Handle) {
	_SetFocus.Call(uintptr(hwnd))
}

func SetLayeredWindowAttributes(hwnd syscall.Handle, alpha uint8) {
	_SetLayeredWindowAttributes.Call(uintptr(hwnd), 0, uintptr(alpha), LWA_ALPHA)
}

// SetThreadDpiAwarenessContext makes the calling thread per monitor DPI
// aware, where supported.
func SetThreadDpiAwarenessContext() bool {
	if _SetThreadDpiAwarenessContext.Find() != nil {
		return false
	}
	// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE is (HANDLE)-3.
	perMonitor := ^uintptr(2)
	r, _, _ := _SetThreadDpiAwarenessContext.Call(perMonitor)
	return r != 0
}

// SetTimer starts a timer. With a zero hwnd the timer belongs to the
// calling thread and the returned id is chosen by the system.
func SetTimer(hwnd syscall.Handle, id uintptr, elapse uint32, proc uintptr) uintptr {
	r, _, _ := _SetTimer.Call(uintptr(hwnd), id, uintptr(elapse), proc)
	return r
}

func SetWindowPos(hwnd syscall.Handle, hwndInsertAfter uint32, x, y, dx, dy int32, style uint32) {
	_SetWindowPos.Call(uintptr(hwnd), uintptr(hwndInsertAfter),
		uintptr(x), uintptr(y),
		uintptr(dx), uintptr(dy),
		uintptr(style),
	)
}

func SetWindowText(hwnd syscall.Handle, title string) {
	wname := syscall.StringToUTF16Ptr(title)
	_SetWindowText.Call(uintptr(hwnd), uintptr(unsafe.Pointer(wname)))
}

func SetWindowsHookEx(idHook int32, fn uintptr, hmod syscall.Handle, threadID uint32) (syscall.Handle, error) {
	h, _, err := _SetWindowsHookEx.Call(uintptr(idHook), fn, uintptr(hmod), uintptr(threadID))
	if h == 0 {
		return 0, fmt.Errorf("SetWindowsHookExW failed: %v", err)
	}
	return syscall.Handle(h), nil
}

func TrackMouseEvent(hwnd syscall.Handle, flags uint32) {
	t := MouseTrack{HwndTrack: hwnd, DwFlags: flags}
	t.CbSize = uint32(unsafe.Sizeof(t))
	_TrackMouseEvent.Call(uintptr(unsafe.Pointer(&t)))
}

func TranslateMessage(m *Msg) {
	_TranslateMessage.Call(uintptr(unsafe.Pointer(m)))
}

func UnhookWindowsHookEx(h syscall.Handle) {
	_UnhookWindowsHookEx.Call(uintptr(h))
}

func UnregisterClass(cls uint16, hInst syscall.Handle) bool {
	r, _, _ := _UnregisterClass.Call(uintptr(cls), uintptr(hInst))
	return r != 0
}

func ValidateRgn(hwnd syscall.Handle) {
	_ValidateRgn.Call(uintptr(hwnd), 0)
}

func ChoosePixelFormat(hdc syscall.Handle, pfd *PixelFormatDescriptor) int32 {
	r, _, _ := _ChoosePixelFormat.Call(uintptr(hdc), uintptr(unsafe.Pointer(pfd)))
	return int32(r)
}

func DescribePixelFormat(hdc syscall.Handle, format int32, pfd *PixelFormatDescriptor) bool {
	r, _, _ := _DescribePixelFormat.Call(uintptr(hdc), uintptr(format), unsafe.Sizeof(*pfd), uintptr(unsafe.Pointer(pfd)))
	return r != 0
}

func SetPixelFormat(hdc syscall.Handle, format int32, pfd *PixelFormatDescriptor) error {
	r, _, err := _SetPixelFormat.Call(uintptr(hdc), uintptr(format), uintptr(unsafe.Pointer(pfd)))
	if r == 0 {
		return fmt.Errorf("SetPixelFormat: %v", err)
	}
	return nil
}

func SwapBuffers(hdc syscall.Handle) {
	_SwapBuffers.Call(uintptr(hdc))
}

// CreateDXGIFactory returns an IDXGIFactory for riid.
func CreateDXGIFactory(riid *syscall.GUID) (uintptr, error) {
	if err := _CreateDXGIFactory.Find(); err != nil {
		return 0, err
	}
	var factory uintptr
	r, _, _ := _CreateDXGIFactory.Call(uintptr(unsafe.Pointer(riid)), uintptr(unsafe.Pointer(&factory)))
	if r != 0 {
		return 0, fmt.Errorf("CreateDXGIFactory: %#x", uint32(r))
	}
	return factory, nil
}

// LoWord returns the low order word of a message parameter.
func LoWord(v uintptr) uint16 {
	return uint16(v & 0xffff)
}

// HiWord returns the high order word of a message parameter.
func HiWord(v uintptr) uint16 {
	return uint16((v >> 16) & 0xffff)
}

// SignedPoint decodes a client coordinate pair packed into lParam.
func SignedPoint(lParam uintptr) Point {
	return Point{
		X: int32(int16(LoWord(lParam))),
		Y: int32(int16(HiWord(lParam))),
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
