package ui

// RawInput is everything the toolkit needs to know about one frame. A batch is
// built once per frame and never reused.
type RawInput struct {
	Events      []Event
	Modifiers   Modifiers
	ScreenRect  Rect
	Time        float64
	PredictedDt float32
	Focused     bool
	SystemTheme Theme
}
