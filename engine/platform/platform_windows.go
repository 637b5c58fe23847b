//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/spaghettifunk/d3d9ui/engine/core"
	"github.com/spaghettifunk/d3d9ui/engine/ui"
)

const (
	themeRegKey  = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize` // in HKCU
	themeRegName = `AppsUseLightTheme`
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetClientRect    = user32.NewProc("GetClientRect")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
	procIsWindow         = user32.NewProc("IsWindow")
)

func newPlatform(hwnd uintptr) (*Platform, error) {
	if hwnd == 0 {
		return nil, fmt.Errorf("%w: null handle", core.ErrInvalidWindow)
	}
	if ret, _, _ := procIsWindow.Call(hwnd); ret == 0 {
		return nil, fmt.Errorf("%w: %#x", core.ErrInvalidWindow, hwnd)
	}
	return &Platform{
		Window:    win32Window{hwnd: windows.HWND(hwnd)},
		Clipboard: SystemClipboard{},
		Keys:      asyncKeyState{},
		Theme:     registryTheme{},
	}, nil
}

type win32Window struct {
	hwnd windows.HWND
}

func (w win32Window) ClientRect() (ui.Rect, error) {
	var r windows.Rect
	ret, _, err := procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return ui.Rect{}, fmt.Errorf("GetClientRect: %w", err)
	}
	return ui.Rect{
		Min: ui.Pos2{X: 0, Y: 0},
		Max: ui.Pos2{X: float32(r.Right - r.Left), Y: float32(r.Bottom - r.Top)},
	}, nil
}

type asyncKeyState struct{}

func (asyncKeyState) IsKeyDown(vk uint16) bool {
	ret, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return ret&0x8000 != 0
}

type registryTheme struct{}

func (registryTheme) SystemTheme() ui.Theme {
	k, err := registry.OpenKey(registry.CURRENT_USER, themeRegKey, registry.QUERY_VALUE)
	if err != nil {
		return ui.ThemeUnknown
	}
	defer k.Close()
	val, _, err := k.GetIntegerValue(themeRegName)
	if err != nil {
		return ui.ThemeUnknown
	}
	// dark mode is 0
	if val == 0 {
		return ui.ThemeDark
	}
	return ui.ThemeLight
}
