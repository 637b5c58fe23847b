//go:build windows

package d3d9

import (
	"fmt"
	"unsafe"

	"github.com/gonutz/d3d9"

	"github.com/spaghettifunk/d3d9ui/engine/math"
	"github.com/spaghettifunk/d3d9ui/engine/renderer"
)

// Device forwards renderer.Device calls to the host's device. It does not own
// the device and never releases it.
type Device struct {
	dev *d3d9.Device
}

// Wrap adapts an already obtained device.
func Wrap(dev *d3d9.Device) *Device {
	return &Device{dev: dev}
}

// FromPointer adapts the raw IDirect3DDevice9 pointer a hook receives.
func FromPointer(ptr uintptr) (*Device, error) {
	if ptr == 0 {
		return nil, fmt.Errorf("nil device pointer")
	}
	return Wrap((*d3d9.Device)(unsafe.Pointer(ptr))), nil
}

// IsDeviceLost reports whether err is D3DERR_DEVICELOST.
func IsDeviceLost(err error) bool {
	if e, ok := err.(d3d9.Error); ok {
		return e.Code() == d3d9.ERR_DEVICELOST
	}
	return false
}

func check(err d3d9.Error) error {
	if err != nil {
		return err
	}
	return nil
}

func (d *Device) CreateVertexBuffer(length uint32, usage renderer.Usage, fvf uint32, pool renderer.Pool) (renderer.VertexBuffer, error) {
	vb, err := d.dev.CreateVertexBuffer(uint(length), uint32(usage), fvf, d3d9.POOL(pool), 0)
	if err != nil {
		return nil, err
	}
	return &vertexBuffer{vb: vb}, nil
}

func (d *Device) CreateIndexBuffer(length uint32, usage renderer.Usage, format renderer.Format, pool renderer.Pool) (renderer.IndexBuffer, error) {
	ib, err := d.dev.CreateIndexBuffer(uint(length), uint32(usage), d3d9.FORMAT(format), d3d9.POOL(pool), 0)
	if err != nil {
		return nil, err
	}
	return &indexBuffer{ib: ib}, nil
}

func (d *Device) CreateTexture(width, height, levels uint32, usage renderer.Usage, format renderer.Format, pool renderer.Pool) (renderer.Texture, error) {
	tex, err := d.dev.CreateTexture(uint(width), uint(height), uint(levels), uint32(usage), d3d9.FORMAT(format), d3d9.POOL(pool), 0)
	if err != nil {
		return nil, err
	}
	return &texture{tex: tex}, nil
}

func (d *Device) UpdateTexture(src, dst renderer.Texture) error {
	return check(d.dev.UpdateTexture(baseTexture(src.(*texture).tex), baseTexture(dst.(*texture).tex)))
}

func (d *Device) UpdateSurface(src renderer.Texture, srcRect *renderer.Rect, dst renderer.Texture, dstPoint *renderer.Point) error {
	srcSurface, err := src.(*texture).tex.GetSurfaceLevel(0)
	if err != nil {
		return err
	}
	defer srcSurface.Release()
	dstSurface, err := dst.(*texture).tex.GetSurfaceLevel(0)
	if err != nil {
		return err
	}
	defer dstSurface.Release()

	var rect *d3d9.RECT
	if srcRect != nil {
		rect = &d3d9.RECT{Left: srcRect.Left, Top: srcRect.Top, Right: srcRect.Right, Bottom: srcRect.Bottom}
	}
	var point *d3d9.POINT
	if dstPoint != nil {
		point = &d3d9.POINT{X: dstPoint.X, Y: dstPoint.Y}
	}
	return check(d.dev.UpdateSurface(srcSurface, rect, dstSurface, point))
}

func (d *Device) CreateStateBlock(typ renderer.StateBlockType) (renderer.StateBlock, error) {
	sb, err := d.dev.CreateStateBlock(d3d9.STATEBLOCKTYPE(typ))
	if err != nil {
		return nil, err
	}
	return &stateBlock{sb: sb}, nil
}

func (d *Device) GetTransform(state renderer.TransformState) (math.Mat4, error) {
	m, err := d.dev.GetTransform(d3d9.TRANSFORMSTATETYPE(state))
	if err != nil {
		return math.Mat4{}, err
	}
	return math.Mat4{Data: m}, nil
}

func (d *Device) SetTransform(state renderer.TransformState, m math.Mat4) error {
	return check(d.dev.SetTransform(d3d9.TRANSFORMSTATETYPE(state), d3d9.MATRIX(m.Data)))
}

func (d *Device) GetRenderTarget(index uint32) (renderer.Surface, error) {
	s, err := d.dev.GetRenderTarget(index)
	if err != nil {
		return nil, err
	}
	return &surface{s: s}, nil
}

func (d *Device) GetBackBuffer() (renderer.Surface, error) {
	s, err := d.dev.GetBackBuffer(0, 0, d3d9.BACKBUFFER_TYPE_MONO)
	if err != nil {
		return nil, err
	}
	return &surface{s: s}, nil
}

func (d *Device) SetRenderTarget(index uint32, target renderer.Surface) error {
	return check(d.dev.SetRenderTarget(index, target.(*surface).s))
}

func (d *Device) SetViewport(vp renderer.Viewport) error {
	return check(d.dev.SetViewport(d3d9.VIEWPORT{
		X:      vp.X,
		Y:      vp.Y,
		Width:  vp.Width,
		Height: vp.Height,
		MinZ:   vp.MinZ,
		MaxZ:   vp.MaxZ,
	}))
}

func (d *Device) DisableShaders() error {
	if err := d.dev.SetPixelShader(nil); err != nil {
		return err
	}
	return check(d.dev.SetVertexShader(nil))
}

func (d *Device) SetFVF(fvf uint32) error {
	return check(d.dev.SetFVF(fvf))
}

func (d *Device) SetRenderState(state renderer.RenderState, value uint32) error {
	return check(d.dev.SetRenderState(d3d9.RENDERSTATETYPE(state), value))
}

func (d *Device) SetTextureStageState(stage uint32, typ renderer.TextureStageState, value uint32) error {
	return check(d.dev.SetTextureStageState(stage, d3d9.TEXTURESTAGESTATETYPE(typ), value))
}

func (d *Device) SetSamplerState(sampler uint32, typ renderer.SamplerState, value uint32) error {
	return check(d.dev.SetSamplerState(sampler, d3d9.SAMPLERSTATETYPE(typ), value))
}

func (d *Device) SetScissorRect(r renderer.Rect) error {
	return check(d.dev.SetScissorRect(d3d9.RECT{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}))
}

func (d *Device) SetTexture(sampler uint32, t renderer.Texture) error {
	if t == nil {
		return check(d.dev.SetTexture(sampler, nil))
	}
	return check(d.dev.SetTexture(sampler, t.(*texture).tex))
}

func (d *Device) SetStreamSource(stream uint32, vb renderer.VertexBuffer, offset, stride uint32) error {
	return check(d.dev.SetStreamSource(uint(stream), vb.(*vertexBuffer).vb, uint(offset), uint(stride)))
}

func (d *Device) SetIndices(ib renderer.IndexBuffer) error {
	return check(d.dev.SetIndices(ib.(*indexBuffer).ib))
}

func (d *Device) DrawIndexedPrimitive(typ renderer.PrimitiveType, baseVertexIndex int32, minIndex, numVertices, startIndex, primitiveCount uint32) error {
	return check(d.dev.DrawIndexedPrimitive(
		d3d9.PRIMITIVETYPE(typ),
		int(baseVertexIndex),
		uint(minIndex),
		uint(numVertices),
		uint(startIndex),
		uint(primitiveCount),
	))
}

type vertexBuffer struct {
	vb *d3d9.VertexBuffer
}

func (b *vertexBuffer) Lock(offset, size uint32, flags renderer.LockFlags) ([]byte, error) {
	mem, err := b.vb.Lock(uint(offset), uint(size), uint32(flags))
	if err != nil {
		return nil, err
	}
	return mapped(mem.Memory, int(size)), nil
}

func (b *vertexBuffer) Unlock() error { return check(b.vb.Unlock()) }
func (b *vertexBuffer) Release()      { b.vb.Release() }

type indexBuffer struct {
	ib *d3d9.IndexBuffer
}

func (b *indexBuffer) Lock(offset, size uint32, flags renderer.LockFlags) ([]byte, error) {
	mem, err := b.ib.Lock(uint(offset), uint(size), uint32(flags))
	if err != nil {
		return nil, err
	}
	return mapped(mem.Memory, int(size)), nil
}

func (b *indexBuffer) Unlock() error { return check(b.ib.Unlock()) }
func (b *indexBuffer) Release()      { b.ib.Release() }

// baseTexture views a texture as its IDirect3DBaseTexture9 interface; both
// share the COM object layout.
func baseTexture(t *d3d9.Texture) *d3d9.BaseTexture {
	return (*d3d9.BaseTexture)(unsafe.Pointer(t))
}

type texture struct {
	tex *d3d9.Texture
}

func (t *texture) LockRect(level uint32, flags renderer.LockFlags) (renderer.LockedRect, error) {
	desc, err := t.tex.GetLevelDesc(uint(level))
	if err != nil {
		return renderer.LockedRect{}, err
	}
	r, err := t.tex.LockRect(uint(level), nil, uint32(flags))
	if err != nil {
		return renderer.LockedRect{}, err
	}
	return renderer.LockedRect{
		Pitch: int(r.Pitch),
		Bits:  mapped(r.PBits, int(r.Pitch)*int(desc.Height)),
	}, nil
}

func (t *texture) UnlockRect(level uint32) error {
	return check(t.tex.UnlockRect(uint(level)))
}

func (t *texture) AddDirtyRect(r *renderer.Rect) error {
	if r == nil {
		return check(t.tex.AddDirtyRect(nil))
	}
	return check(t.tex.AddDirtyRect(&d3d9.RECT{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}))
}

func (t *texture) Release() { t.tex.Release() }

type surface struct {
	s *d3d9.Surface
}

func (s *surface) Release() { s.s.Release() }

type stateBlock struct {
	sb *d3d9.StateBlock
}

func (s *stateBlock) Capture() error { return check(s.sb.Capture()) }
func (s *stateBlock) Apply() error   { return check(s.sb.Apply()) }
func (s *stateBlock) Release()       { s.sb.Release() }

// mapped views driver memory returned by a Lock call as a byte slice.
func mapped(ptr uintptr, size int) []byte {
	if ptr == 0 || size <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size)
}
