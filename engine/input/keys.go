package input

import "github.com/spaghettifunk/d3d9ui/engine/ui"

// KeyCode is a Windows virtual-key code.
type KeyCode uint16

const (
	KEY_BACKSPACE     KeyCode = 0x08
	KEY_TAB           KeyCode = 0x09
	KEY_ENTER         KeyCode = 0x0D
	KEY_SHIFT         KeyCode = 0x10
	KEY_CONTROL       KeyCode = 0x11
	KEY_MENU          KeyCode = 0x12
	KEY_ESCAPE        KeyCode = 0x1B
	KEY_SPACE         KeyCode = 0x20
	KEY_PRIOR         KeyCode = 0x21
	KEY_NEXT          KeyCode = 0x22
	KEY_END           KeyCode = 0x23
	KEY_HOME          KeyCode = 0x24
	KEY_LEFT          KeyCode = 0x25
	KEY_UP            KeyCode = 0x26
	KEY_RIGHT         KeyCode = 0x27
	KEY_DOWN          KeyCode = 0x28
	KEY_INSERT        KeyCode = 0x2D
	KEY_DELETE        KeyCode = 0x2E
	KEY_0             KeyCode = 0x30
	KEY_9             KeyCode = 0x39
	KEY_A             KeyCode = 0x41
	KEY_C             KeyCode = 0x43
	KEY_V             KeyCode = 0x56
	KEY_X             KeyCode = 0x58
	KEY_Z             KeyCode = 0x5A
	KEY_F1            KeyCode = 0x70
	KEY_F24           KeyCode = 0x87
	KEY_SEMICOLON     KeyCode = 0xBA
	KEY_PLUS          KeyCode = 0xBB
	KEY_COMMA         KeyCode = 0xBC
	KEY_MINUS         KeyCode = 0xBD
	KEY_PERIOD        KeyCode = 0xBE
	KEY_SLASH         KeyCode = 0xBF
	KEY_GRAVE         KeyCode = 0xC0
	KEY_OPEN_BRACKET  KeyCode = 0xDB
	KEY_BACKSLASH     KeyCode = 0xDC
	KEY_CLOSE_BRACKET KeyCode = 0xDD
	KEY_QUOTE         KeyCode = 0xDE
	KEYS_MAX_KEYS     KeyCode = 0x100
)

var namedKeys = map[KeyCode]ui.Key{
	KEY_BACKSPACE:     ui.KeyBackspace,
	KEY_TAB:           ui.KeyTab,
	KEY_ENTER:         ui.KeyEnter,
	KEY_ESCAPE:        ui.KeyEscape,
	KEY_SPACE:         ui.KeySpace,
	KEY_PRIOR:         ui.KeyPageUp,
	KEY_NEXT:          ui.KeyPageDown,
	KEY_END:           ui.KeyEnd,
	KEY_HOME:          ui.KeyHome,
	KEY_LEFT:          ui.KeyArrowLeft,
	KEY_UP:            ui.KeyArrowUp,
	KEY_RIGHT:         ui.KeyArrowRight,
	KEY_DOWN:          ui.KeyArrowDown,
	KEY_INSERT:        ui.KeyInsert,
	KEY_DELETE:        ui.KeyDelete,
	KEY_SEMICOLON:     ui.KeySemicolon,
	KEY_PLUS:          ui.KeyEquals,
	KEY_COMMA:         ui.KeyComma,
	KEY_MINUS:         ui.KeyMinus,
	KEY_PERIOD:        ui.KeyPeriod,
	KEY_SLASH:         ui.KeySlash,
	KEY_GRAVE:         ui.KeyBacktick,
	KEY_OPEN_BRACKET:  ui.KeyOpenBracket,
	KEY_BACKSLASH:     ui.KeyBackslash,
	KEY_CLOSE_BRACKET: ui.KeyCloseBracket,
	KEY_QUOTE:         ui.KeyQuote,
}

// TranslateKey maps a virtual-key code to a toolkit key. Keys the toolkit
// has no name for report false.
func TranslateKey(vk KeyCode) (ui.Key, bool) {
	switch {
	case vk >= KEY_0 && vk <= KEY_9:
		return ui.KeyNum0 + ui.Key(vk-KEY_0), true
	case vk >= KEY_A && vk <= KEY_Z:
		return ui.KeyA + ui.Key(vk-KEY_A), true
	case vk >= KEY_F1 && vk <= KEY_F24:
		return ui.KeyF1 + ui.Key(vk-KEY_F1), true
	}
	key, ok := namedKeys[vk]
	return key, ok
}
