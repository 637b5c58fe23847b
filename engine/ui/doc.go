// Package ui describes the contract between the backend and the immediate-mode
// toolkit it renders. The toolkit runs the user's UI code against a RawInput
// batch and hands back shapes, texture deltas and platform requests; the
// backend never looks inside a shape until the toolkit has tessellated it.
package ui
