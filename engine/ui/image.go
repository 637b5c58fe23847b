package ui

import "math"

// DefaultFontGamma is applied to font coverage when converting it to colour.
const DefaultFontGamma float32 = 0.55

// ImageData is one of ColorImage or FontImage.
type ImageData interface {
	Width() int
	Height() int
	// SRGBAPixels returns the image as premultiplied colours, row-major.
	SRGBAPixels() []Color32
}

// ColorImage holds premultiplied RGBA pixels.
type ColorImage struct {
	Size   [2]int
	Pixels []Color32
}

func (c *ColorImage) Width() int  { return c.Size[0] }
func (c *ColorImage) Height() int { return c.Size[1] }

func (c *ColorImage) SRGBAPixels() []Color32 {
	return c.Pixels
}

// FontImage holds glyph coverage in [0, 1].
type FontImage struct {
	Size   [2]int
	Pixels []float32
}

func (f *FontImage) Width() int  { return f.Size[0] }
func (f *FontImage) Height() int { return f.Size[1] }

// SRGBAPixels turns coverage into premultiplied white using DefaultFontGamma.
func (f *FontImage) SRGBAPixels() []Color32 {
	return f.SRGBAPixelsGamma(DefaultFontGamma)
}

func (f *FontImage) SRGBAPixelsGamma(gamma float32) []Color32 {
	out := make([]Color32, len(f.Pixels))
	for i, coverage := range f.Pixels {
		alpha := math.Pow(float64(coverage), float64(gamma))
		a := uint8(math.Round(math.Min(math.Max(alpha, 0), 1) * 255))
		out[i] = Color32{a, a, a, a}
	}
	return out
}

// ImageDelta replaces a whole texture (Pos == nil) or patches the region
// starting at *Pos.
type ImageDelta struct {
	Image ImageData
	Pos   *[2]int
}

func (d ImageDelta) IsWhole() bool {
	return d.Pos == nil
}

type TextureSet struct {
	ID    TextureID
	Delta ImageDelta
}

// TexturesDelta lists textures to create or patch before drawing and the ones
// to free afterwards.
type TexturesDelta struct {
	Set  []TextureSet
	Free []TextureID
}

func (t TexturesDelta) IsEmpty() bool {
	return len(t.Set) == 0 && len(t.Free) == 0
}
