package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFontImageCoverage(t *testing.T) {
	f := &FontImage{Size: [2]int{3, 1}, Pixels: []float32{0, 1, 0.25}}
	px := f.SRGBAPixels()
	assert.Equal(t, Color32{0, 0, 0, 0}, px[0])
	assert.Equal(t, Color32{255, 255, 255, 255}, px[1])

	// 0.25^0.55 = 0.4665 -> 119
	assert.Equal(t, Color32{119, 119, 119, 119}, px[2])

	linear := f.SRGBAPixelsGamma(1)
	assert.Equal(t, uint8(64), linear[2].A())
}

func TestImageDeltaWhole(t *testing.T) {
	img := &ColorImage{Size: [2]int{1, 1}, Pixels: []Color32{RGBA(1, 2, 3, 4)}}
	assert.True(t, ImageDelta{Image: img}.IsWhole())
	assert.False(t, ImageDelta{Image: img, Pos: &[2]int{0, 0}}.IsWhole())
	assert.Equal(t, 1, img.Width())
	assert.Equal(t, uint8(3), img.SRGBAPixels()[0].B())
}

func TestTextureIDOrdering(t *testing.T) {
	assert.True(t, ManagedTexture(9).Less(UserTexture(0)))
	assert.True(t, ManagedTexture(1).Less(ManagedTexture(2)))
	assert.False(t, UserTexture(2).Less(UserTexture(2)))
	assert.Equal(t, "managed#3", ManagedTexture(3).String())
	assert.Equal(t, "user#4", UserTexture(4).String())
}
