package metadata

import "unsafe"

// VertexFVF is D3DFVF_XYZ | D3DFVF_DIFFUSE | D3DFVF_TEX1.
const VertexFVF uint32 = 0x002 | 0x040 | 0x100

/**
 * @brief A UI vertex in the layout described by VertexFVF. Z is always 0;
 * the position stays untransformed so the projection set by the state guard
 * applies.
 */
type Vertex struct {
	X     float32
	Y     float32
	Z     float32
	Color uint32
	U     float32
	V     float32
}

// VertexSize is the stride of Vertex in bytes.
const VertexSize = uint32(unsafe.Sizeof(Vertex{}))

// IndexSize is the size of one 32-bit index in bytes.
const IndexSize = uint32(4)

// PackColor packs RGBA channels into a D3DCOLOR (0xAARRGGBB), which is BGRA in
// memory.
func PackColor(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
