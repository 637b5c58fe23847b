package d3d9

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestMappedUsesLockedSize(t *testing.T) {
	backing := make([]byte, 64)
	mem := mapped(uintptr(unsafe.Pointer(&backing[0])), 24)

	assert.Len(t, mem, 24)
	mem[23] = 0xAB
	assert.Equal(t, byte(0xAB), backing[23])

	assert.Nil(t, mapped(0, 24))
	assert.Nil(t, mapped(uintptr(unsafe.Pointer(&backing[0])), 0))
}

func TestBaseTextureSharesObject(t *testing.T) {
	assert.Nil(t, baseTexture(nil))
}
