package renderer

import "github.com/spaghettifunk/d3d9ui/engine/math"

// Viewport mirrors D3DVIEWPORT9.
type Viewport struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
	MinZ   float32
	MaxZ   float32
}

// Rect mirrors RECT; Right and Bottom are exclusive.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type Point struct {
	X int32
	Y int32
}

type Resource interface {
	Release()
}

// Lockable is the common part of vertex and index buffers. Lock returns the
// mapped range as bytes; it stays valid until Unlock.
type Lockable interface {
	Lock(offset, size uint32, flags LockFlags) ([]byte, error)
	Unlock() error
}

type VertexBuffer interface {
	Resource
	Lockable
}

type IndexBuffer interface {
	Resource
	Lockable
}

// LockedRect is a mapped texture level. Rows are Pitch bytes apart.
type LockedRect struct {
	Pitch int
	Bits  []byte
}

type Texture interface {
	Resource
	LockRect(level uint32, flags LockFlags) (LockedRect, error)
	UnlockRect(level uint32) error
	AddDirtyRect(r *Rect) error
}

type Surface interface {
	Resource
}

// StateBlock is an opaque capture of device state. The backend only captures
// and applies it, never inspects it.
type StateBlock interface {
	Resource
	Capture() error
	Apply() error
}

// Device is the subset of IDirect3DDevice9 the overlay uses. Implementations
// must be driven from the thread that owns the device.
type Device interface {
	CreateVertexBuffer(length uint32, usage Usage, fvf uint32, pool Pool) (VertexBuffer, error)
	CreateIndexBuffer(length uint32, usage Usage, format Format, pool Pool) (IndexBuffer, error)
	CreateTexture(width, height, levels uint32, usage Usage, format Format, pool Pool) (Texture, error)
	// UpdateTexture copies the dirty regions of a system-memory texture into a
	// default-pool texture of the same size.
	UpdateTexture(src, dst Texture) error
	// UpdateSurface copies srcRect of level 0 of src to dstPoint in level 0 of dst.
	UpdateSurface(src Texture, srcRect *Rect, dst Texture, dstPoint *Point) error
	CreateStateBlock(typ StateBlockType) (StateBlock, error)

	GetTransform(state TransformState) (math.Mat4, error)
	SetTransform(state TransformState, m math.Mat4) error

	GetRenderTarget(index uint32) (Surface, error)
	GetBackBuffer() (Surface, error)
	SetRenderTarget(index uint32, target Surface) error
	SetViewport(vp Viewport) error

	// DisableShaders unbinds the vertex and pixel shaders.
	DisableShaders() error
	SetFVF(fvf uint32) error
	SetRenderState(state RenderState, value uint32) error
	SetTextureStageState(stage uint32, typ TextureStageState, value uint32) error
	SetSamplerState(sampler uint32, typ SamplerState, value uint32) error

	SetScissorRect(r Rect) error
	SetTexture(sampler uint32, texture Texture) error
	SetStreamSource(stream uint32, vb VertexBuffer, offset, stride uint32) error
	SetIndices(ib IndexBuffer) error
	DrawIndexedPrimitive(typ PrimitiveType, baseVertexIndex int32, minIndex, numVertices, startIndex, primitiveCount uint32) error
}
