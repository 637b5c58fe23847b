// Package platform wraps the parts of the host window system the overlay
// reads: the client area, the clipboard, async key state and the theme.
package platform

import (
	"github.com/spaghettifunk/d3d9ui/engine/ui"
)

// Virtual-key codes read through KeyState.
const (
	VK_SHIFT   uint16 = 0x10
	VK_CONTROL uint16 = 0x11
	VK_MENU    uint16 = 0x12
)

type Window interface {
	// ClientRect returns the client area in pixels, origin at the top left.
	ClientRect() (ui.Rect, error)
}

type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

type KeyState interface {
	// IsKeyDown reports whether the virtual key is held right now.
	IsKeyDown(vk uint16) bool
}

type ThemeSource interface {
	SystemTheme() ui.Theme
}

// Platform bundles the host services used by the input manager and engine.
type Platform struct {
	Window    Window
	Clipboard Clipboard
	Keys      KeyState
	Theme     ThemeSource
}

// New binds the platform to the host window hwnd. It fails with
// core.ErrInvalidWindow for a null or destroyed window.
func New(hwnd uintptr) (*Platform, error) {
	return newPlatform(hwnd)
}

// Fixed is a static Window, handy for hosts that already know their size.
type Fixed ui.Rect

func (f Fixed) ClientRect() (ui.Rect, error) {
	return ui.Rect(f), nil
}

// NoTheme always reports ui.ThemeUnknown.
type NoTheme struct{}

func (NoTheme) SystemTheme() ui.Theme {
	return ui.ThemeUnknown
}
