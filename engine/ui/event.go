package ui

// Event is one input event fed to the toolkit.
type Event interface {
	isEvent()
}

type PointerMoved struct {
	Pos Pos2
}

type PointerButtonEvent struct {
	Pos       Pos2
	Button    PointerButton
	Pressed   bool
	Modifiers Modifiers
}

// Text is typed or pasted text.
type Text struct {
	Text string
}

type Copy struct{}

type Cut struct{}

// Zoom is a multiplicative zoom gesture; >1 zooms in.
type Zoom struct {
	Factor float32
}

type WheelUnit uint8

const (
	WheelPoint WheelUnit = iota
	WheelLine
	WheelPage
)

type MouseWheel struct {
	Unit      WheelUnit
	Delta     Vec2
	Modifiers Modifiers
}

type KeyEvent struct {
	Key       Key
	Pressed   bool
	Repeat    bool
	Modifiers Modifiers
}

func (PointerMoved) isEvent()       {}
func (PointerButtonEvent) isEvent() {}
func (Text) isEvent()               {}
func (Copy) isEvent()               {}
func (Cut) isEvent()                {}
func (Zoom) isEvent()               {}
func (MouseWheel) isEvent()         {}
func (KeyEvent) isEvent()           {}
