package ui

import "time"

// Context is the toolkit instance driven by the backend.
type Context interface {
	// Run executes one UI pass over input.
	Run(input RawInput, run func(ctx Context)) FullOutput
	// Tessellate turns shapes into meshes, preserving order.
	Tessellate(shapes []ClippedShape, pixelsPerPoint float32) []ClippedPrimitive
}

type PlatformOutput struct {
	// CopiedText is placed on the system clipboard when non-empty.
	CopiedText string
}

type FullOutput struct {
	PlatformOutput PlatformOutput
	TexturesDelta  TexturesDelta
	Shapes         []ClippedShape
	PixelsPerPoint float32
	// RepaintAfter is zero when the toolkit wants the next frame repainted now.
	RepaintAfter time.Duration
}

// NeedsRepaint reports whether geometry must be rebuilt this frame.
func (o FullOutput) NeedsRepaint() bool {
	return o.RepaintAfter == 0
}
