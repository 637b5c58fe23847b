package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityMul(t *testing.T) {
	p := NewMat4ScreenOrthographic(800, 600)
	assert.Equal(t, p, NewMat4Identity().Mul(p))
	assert.Equal(t, p, p.Mul(NewMat4Identity()))
}

func TestScreenOrthographicCorners(t *testing.T) {
	p := NewMat4ScreenOrthographic(800, 600)

	tl := Vec4{X: 0.5, Y: 0.5, W: 1}.TransformRow(p)
	assert.InDelta(t, -1, tl.X, 1e-5)
	assert.InDelta(t, 1, tl.Y, 1e-5)
	assert.InDelta(t, 0.5, tl.Z, 1e-5)

	br := Vec4{X: 800.5, Y: 600.5, W: 1}.TransformRow(p)
	assert.InDelta(t, 1, br.X, 1e-5)
	assert.InDelta(t, -1, br.Y, 1e-5)
	assert.InDelta(t, 1, br.W, 1e-5)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-4, 0, 10))
	assert.Equal(t, 10, Clamp(12, 0, 10))
	assert.Equal(t, float32(2.5), Clamp(float32(2.5), 0, 10))
}

func TestFloorCeil(t *testing.T) {
	assert.Equal(t, float32(1), Floor(1.9))
	assert.Equal(t, float32(2), Ceil(1.1))
	assert.Equal(t, float32(-2), Floor(-1.1))
}
