package input

// Window messages handled by the manager.
const (
	WM_KEYDOWN       uint32 = 0x0100
	WM_KEYUP         uint32 = 0x0101
	WM_CHAR          uint32 = 0x0102
	WM_SYSKEYDOWN    uint32 = 0x0104
	WM_SYSKEYUP      uint32 = 0x0105
	WM_MOUSEMOVE     uint32 = 0x0200
	WM_LBUTTONDOWN   uint32 = 0x0201
	WM_LBUTTONUP     uint32 = 0x0202
	WM_LBUTTONDBLCLK uint32 = 0x0203
	WM_RBUTTONDOWN   uint32 = 0x0204
	WM_RBUTTONUP     uint32 = 0x0205
	WM_RBUTTONDBLCLK uint32 = 0x0206
	WM_MBUTTONDOWN   uint32 = 0x0207
	WM_MBUTTONUP     uint32 = 0x0208
	WM_MBUTTONDBLCLK uint32 = 0x0209
	WM_MOUSEWHEEL    uint32 = 0x020A
	WM_XBUTTONDOWN   uint32 = 0x020B
	WM_XBUTTONUP     uint32 = 0x020C
	WM_XBUTTONDBLCLK uint32 = 0x020D
	WM_MOUSEHWHEEL   uint32 = 0x020E
)

// wParam flags of mouse messages.
const (
	MK_LBUTTON  uintptr = 0x0001
	MK_RBUTTON  uintptr = 0x0002
	MK_SHIFT    uintptr = 0x0004
	MK_CONTROL  uintptr = 0x0008
	MK_MBUTTON  uintptr = 0x0010
	MK_XBUTTON1 uintptr = 0x0020
	MK_XBUTTON2 uintptr = 0x0040
)

const (
	XBUTTON1 = 0x0001
	XBUTTON2 = 0x0002

	WHEEL_DELTA = 120

	// lParam bit of key messages set when the key was already down.
	previousKeyState uintptr = 1 << 30
)

func loword(v uintptr) uint16 {
	return uint16(v & 0xFFFF)
}

func hiword(v uintptr) uint16 {
	return uint16((v >> 16) & 0xFFFF)
}

// pointFromLParam extracts signed client coordinates, which go negative
// while the mouse is captured outside the window.
func pointFromLParam(lParam uintptr) (float32, float32) {
	return float32(int16(loword(lParam))), float32(int16(hiword(lParam)))
}
