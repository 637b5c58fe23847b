// Package input turns window messages of the host window into toolkit events
// and hands them out once per frame as a ui.RawInput batch.
package input

import (
	"unicode"
	"unicode/utf16"

	"github.com/spaghettifunk/d3d9ui/engine/containers"
	"github.com/spaghettifunk/d3d9ui/engine/core"
	"github.com/spaghettifunk/d3d9ui/engine/platform"
	"github.com/spaghettifunk/d3d9ui/engine/ui"
)

// Result tells the caller which kind of message Process recognised.
type Result uint8

const (
	ResultUnknown Result = iota
	ResultMouseMove
	ResultMouseLeft
	ResultMouseRight
	ResultMouseMiddle
	ResultMouseExtra
	ResultCharacter
	ResultScroll
	ResultZoom
	ResultKey
)

func (r Result) IsValid() bool {
	return r != ResultUnknown
}

// PredictedDt is the frame delta reported to the toolkit.
const PredictedDt float32 = 1.0 / 60.0

const (
	zoomIn  float32 = 1.5
	zoomOut float32 = 0.5
)

type noKeys struct{}

func (noKeys) IsKeyDown(uint16) bool { return false }

// Manager queues events between frames. Process and CollectInput are not
// synchronised; the host must not call them concurrently.
type Manager struct {
	window    platform.Window
	clipboard platform.Clipboard
	keys      platform.KeyState
	theme     platform.ThemeSource

	clock     *core.Clock
	events    *containers.RingQueue[ui.Event]
	modifiers ui.Modifiers
	screen    ui.Rect
	// pending high surrogate of a WM_CHAR pair
	surrogate uint16
}

func NewManager(p *platform.Platform) *Manager {
	m := &Manager{
		window:    p.Window,
		clipboard: p.Clipboard,
		keys:      p.Keys,
		theme:     p.Theme,
		clock:     core.NewClock(),
		events:    containers.NewRingQueue[ui.Event](64),
	}
	if m.keys == nil {
		m.keys = noKeys{}
	}
	if m.theme == nil {
		m.theme = platform.NoTheme{}
	}
	m.clock.Start()
	return m
}

// Process translates one window message.
func (m *Manager) Process(msg uint32, wParam, lParam uintptr) Result {
	switch msg {
	case WM_MOUSEMOVE:
		m.modifiers = mouseModifiers(wParam)
		x, y := pointFromLParam(lParam)
		m.events.Enqueue(ui.PointerMoved{Pos: ui.Pos2{X: x, Y: y}})
		return ResultMouseMove

	case WM_LBUTTONDOWN, WM_LBUTTONDBLCLK:
		m.button(ui.PointerPrimary, true, wParam, lParam)
		return ResultMouseLeft
	case WM_LBUTTONUP:
		m.button(ui.PointerPrimary, false, wParam, lParam)
		return ResultMouseLeft
	case WM_RBUTTONDOWN, WM_RBUTTONDBLCLK:
		m.button(ui.PointerSecondary, true, wParam, lParam)
		return ResultMouseRight
	case WM_RBUTTONUP:
		m.button(ui.PointerSecondary, false, wParam, lParam)
		return ResultMouseRight
	case WM_MBUTTONDOWN, WM_MBUTTONDBLCLK:
		m.button(ui.PointerMiddle, true, wParam, lParam)
		return ResultMouseMiddle
	case WM_MBUTTONUP:
		m.button(ui.PointerMiddle, false, wParam, lParam)
		return ResultMouseMiddle

	case WM_XBUTTONDOWN, WM_XBUTTONDBLCLK, WM_XBUTTONUP:
		var button ui.PointerButton
		switch {
		case hiword(wParam)&XBUTTON1 != 0:
			button = ui.PointerExtra1
		case hiword(wParam)&XBUTTON2 != 0:
			button = ui.PointerExtra2
		default:
			core.LogDebug("x button message without button bits: %#x", wParam)
			return ResultUnknown
		}
		m.button(button, msg != WM_XBUTTONUP, wParam, lParam)
		return ResultMouseExtra

	case WM_MOUSEWHEEL, WM_MOUSEHWHEEL:
		m.modifiers = mouseModifiers(wParam)
		delta := float32(int16(hiword(wParam))) * 10 / WHEEL_DELTA
		if wParam&MK_CONTROL != 0 {
			factor := zoomOut
			if delta > 0 {
				factor = zoomIn
			}
			m.events.Enqueue(ui.Zoom{Factor: factor})
			return ResultZoom
		}
		wheel := ui.MouseWheel{Unit: ui.WheelPoint, Modifiers: m.modifiers}
		if msg == WM_MOUSEWHEEL {
			wheel.Delta = ui.Vec2{Y: delta}
		} else {
			wheel.Delta = ui.Vec2{X: delta}
		}
		m.events.Enqueue(wheel)
		return ResultScroll

	case WM_CHAR:
		m.character(uint16(wParam))
		return ResultCharacter

	case WM_KEYDOWN, WM_SYSKEYDOWN:
		m.modifiers = m.keyModifiers(msg)
		key, ok := TranslateKey(KeyCode(wParam))
		if !ok {
			return ResultKey
		}
		if m.modifiers.Ctrl {
			m.shortcut(key)
		}
		m.events.Enqueue(ui.KeyEvent{
			Key:       key,
			Pressed:   true,
			Repeat:    lParam&previousKeyState != 0,
			Modifiers: m.modifiers,
		})
		return ResultKey

	case WM_KEYUP, WM_SYSKEYUP:
		m.modifiers = m.keyModifiers(msg)
		if key, ok := TranslateKey(KeyCode(wParam)); ok {
			m.events.Enqueue(ui.KeyEvent{Key: key, Modifiers: m.modifiers})
		}
		return ResultKey
	}
	return ResultUnknown
}

func (m *Manager) button(button ui.PointerButton, pressed bool, wParam, lParam uintptr) {
	m.modifiers = mouseModifiers(wParam)
	x, y := pointFromLParam(lParam)
	m.events.Enqueue(ui.PointerButtonEvent{
		Pos:       ui.Pos2{X: x, Y: y},
		Button:    button,
		Pressed:   pressed,
		Modifiers: m.modifiers,
	})
}

func (m *Manager) character(unit uint16) {
	var r rune
	switch {
	case utf16.IsSurrogate(rune(unit)) && unit < 0xDC00:
		m.surrogate = unit
		return
	case utf16.IsSurrogate(rune(unit)):
		if m.surrogate == 0 {
			return
		}
		r = utf16.DecodeRune(rune(m.surrogate), rune(unit))
		m.surrogate = 0
	default:
		m.surrogate = 0
		r = rune(unit)
	}
	if r == unicode.ReplacementChar || unicode.IsControl(r) {
		return
	}
	m.events.Enqueue(ui.Text{Text: string(r)})
}

// shortcut emits the clipboard intents that precede the key event itself.
func (m *Manager) shortcut(key ui.Key) {
	switch key {
	case ui.KeyV:
		if m.clipboard == nil {
			return
		}
		text, err := m.clipboard.ReadText()
		if err != nil {
			core.LogWarn("unable to read clipboard: %s", err)
			return
		}
		if text != "" {
			m.events.Enqueue(ui.Text{Text: text})
		}
	case ui.KeyC:
		m.events.Enqueue(ui.Copy{})
	case ui.KeyX:
		m.events.Enqueue(ui.Cut{})
	}
}

func mouseModifiers(wParam uintptr) ui.Modifiers {
	ctrl := wParam&MK_CONTROL != 0
	return ui.Modifiers{
		Ctrl:    ctrl,
		Shift:   wParam&MK_SHIFT != 0,
		Command: ctrl,
	}
}

func (m *Manager) keyModifiers(msg uint32) ui.Modifiers {
	ctrl := m.keys.IsKeyDown(platform.VK_CONTROL)
	return ui.Modifiers{
		Alt:     msg == WM_SYSKEYDOWN || m.keys.IsKeyDown(platform.VK_MENU),
		Ctrl:    ctrl,
		Shift:   m.keys.IsKeyDown(platform.VK_SHIFT),
		Command: ctrl,
	}
}

// Modifiers returns the current modifier snapshot.
func (m *Manager) Modifiers() ui.Modifiers {
	return m.modifiers
}

// Pending returns how many events wait for the next CollectInput.
func (m *Manager) Pending() int {
	return m.events.Len()
}

// CollectInput drains every queued event into a new batch. Events are handed
// out exactly once.
func (m *Manager) CollectInput() ui.RawInput {
	m.clock.Update()

	if m.window != nil {
		screen, err := m.window.ClientRect()
		if err != nil {
			core.LogWarn("unable to read client rect, keeping %v: %s", m.screen, err)
		} else {
			m.screen = screen
		}
	}

	return ui.RawInput{
		Events:      m.events.Drain(),
		Modifiers:   m.modifiers,
		ScreenRect:  m.screen,
		Time:        m.clock.Seconds(),
		PredictedDt: PredictedDt,
		Focused:     true,
		SystemTheme: m.theme.SystemTheme(),
	}
}

// ScreenRect returns the client rect seen by the last CollectInput.
func (m *Manager) ScreenRect() ui.Rect {
	return m.screen
}
