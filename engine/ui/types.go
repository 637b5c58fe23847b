package ui

import "fmt"

type Pos2 struct {
	X float32
	Y float32
}

type Vec2 struct {
	X float32
	Y float32
}

// Rect is an axis-aligned rectangle in points.
type Rect struct {
	Min Pos2
	Max Pos2
}

func NewRect(x, y, w, h float32) Rect {
	return Rect{Min: Pos2{X: x, Y: y}, Max: Pos2{X: x + w, Y: y + h}}
}

func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

// Color32 is a premultiplied sRGBA colour, one byte per channel, in RGBA order.
type Color32 [4]uint8

func RGBA(r, g, b, a uint8) Color32 {
	return Color32{r, g, b, a}
}

func (c Color32) R() uint8 { return c[0] }
func (c Color32) G() uint8 { return c[1] }
func (c Color32) B() uint8 { return c[2] }
func (c Color32) A() uint8 { return c[3] }

type TextureKind uint8

const (
	// TextureManaged textures are allocated and freed by the toolkit (fonts, images).
	TextureManaged TextureKind = iota
	// TextureUser textures are registered by user code.
	TextureUser
)

// TextureID is assigned by the toolkit. The backend only uses it as a key.
type TextureID struct {
	Kind  TextureKind
	Value uint64
}

func ManagedTexture(v uint64) TextureID {
	return TextureID{Kind: TextureManaged, Value: v}
}

func UserTexture(v uint64) TextureID {
	return TextureID{Kind: TextureUser, Value: v}
}

func (id TextureID) String() string {
	if id.Kind == TextureUser {
		return fmt.Sprintf("user#%d", id.Value)
	}
	return fmt.Sprintf("managed#%d", id.Value)
}

// Less orders ids so that iteration over textures is deterministic.
func (id TextureID) Less(other TextureID) bool {
	if id.Kind != other.Kind {
		return id.Kind < other.Kind
	}
	return id.Value < other.Value
}

type Modifiers struct {
	Alt   bool
	Ctrl  bool
	Shift bool
	// MacCmd is never set on Windows.
	MacCmd bool
	// Command mirrors Ctrl on Windows.
	Command bool
}

type PointerButton uint8

const (
	PointerPrimary PointerButton = iota
	PointerSecondary
	PointerMiddle
	PointerExtra1
	PointerExtra2
)

type Theme uint8

const (
	ThemeUnknown Theme = iota
	ThemeDark
	ThemeLight
)
