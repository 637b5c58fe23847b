// Package fake provides an in-memory renderer.Device that records what the
// overlay does to it. Buffers and textures keep real bytes so uploads can be
// read back.
package fake

import (
	"fmt"
	"maps"

	"github.com/spaghettifunk/d3d9ui/engine/math"
	"github.com/spaghettifunk/d3d9ui/engine/renderer"
)

type stageKey struct {
	Stage uint32
	Type  renderer.TextureStageState
}

type samplerKey struct {
	Sampler uint32
	Type    renderer.SamplerState
}

// State is everything the fake device tracks that a host could care about.
type State struct {
	RenderStates  map[renderer.RenderState]uint32
	StageStates   map[stageKey]uint32
	SamplerStates map[samplerKey]uint32
	Transforms    map[renderer.TransformState]math.Mat4
	Viewport      renderer.Viewport
	Scissor       renderer.Rect
	FVF           uint32
	ShadersBound  bool
	RenderTarget  renderer.Surface
	Textures      map[uint32]renderer.Texture
	Stream        renderer.VertexBuffer
	StreamStride  uint32
	Indices       renderer.IndexBuffer
}

func (s State) clone() State {
	out := s
	out.RenderStates = maps.Clone(s.RenderStates)
	out.StageStates = maps.Clone(s.StageStates)
	out.SamplerStates = maps.Clone(s.SamplerStates)
	out.Transforms = maps.Clone(s.Transforms)
	out.Textures = maps.Clone(s.Textures)
	return out
}

// DrawCall is one recorded DrawIndexedPrimitive with the bindings it used.
type DrawCall struct {
	BaseVertex     int32
	MinIndex       uint32
	NumVertices    uint32
	StartIndex     uint32
	PrimitiveCount uint32
	Scissor        renderer.Rect
	Texture        renderer.Texture
}

type Device struct {
	state State

	BackBuffer *Surface
	Calls      []string
	Draws      []DrawCall

	// Fail makes the named method return the error.
	Fail map[string]error

	Textures      []*Texture
	VertexBuffers []*Buffer
	IndexBuffers  []*Buffer
	StateBlocks   int
}

// NewDevice returns a device with a host-like, non-default state so that any
// leak of UI state is visible.
func NewDevice() *Device {
	d := &Device{
		BackBuffer: &Surface{Name: "backbuffer"},
		Fail:       map[string]error{},
	}
	d.state = State{
		RenderStates:  map[renderer.RenderState]uint32{},
		StageStates:   map[stageKey]uint32{},
		SamplerStates: map[samplerKey]uint32{},
		Transforms:    map[renderer.TransformState]math.Mat4{},
		Textures:      map[uint32]renderer.Texture{},
		Viewport:      renderer.Viewport{Width: 1920, Height: 1080, MaxZ: 1},
		FVF:           0x112,
		ShadersBound:  true,
		RenderTarget:  &Surface{Name: "host-target"},
	}
	view := math.NewMat4Identity()
	view.Data[12], view.Data[13], view.Data[14] = 3, -2, 10
	projection := math.NewMat4Identity()
	projection.Data[0], projection.Data[5] = 1.5, 0.75
	d.state.Transforms[renderer.TS_WORLD] = math.NewMat4Identity()
	d.state.Transforms[renderer.TS_VIEW] = view
	d.state.Transforms[renderer.TS_PROJECTION] = projection
	d.state.RenderStates[renderer.RS_ZENABLE] = 1
	d.state.RenderStates[renderer.RS_CULLMODE] = 3
	d.state.RenderStates[renderer.RS_LIGHTING] = 1
	d.state.SamplerStates[samplerKey{0, renderer.SAMP_MAGFILTER}] = 1
	return d
}

// SetHostState seeds the device with state the host would have left behind.
func (d *Device) SetHostState(rs map[renderer.RenderState]uint32, transforms map[renderer.TransformState]math.Mat4) {
	maps.Copy(d.state.RenderStates, rs)
	maps.Copy(d.state.Transforms, transforms)
}

// Snapshot returns a copy of the current state.
func (d *Device) Snapshot() State {
	return d.state.clone()
}

func (d *Device) RenderState(rs renderer.RenderState) uint32 {
	return d.state.RenderStates[rs]
}

func (d *Device) Transform(ts renderer.TransformState) math.Mat4 {
	return d.state.Transforms[ts]
}

func (d *Device) StageState(stage uint32, typ renderer.TextureStageState) uint32 {
	return d.state.StageStates[stageKey{stage, typ}]
}

func (d *Device) SamplerState(sampler uint32, typ renderer.SamplerState) uint32 {
	return d.state.SamplerStates[samplerKey{sampler, typ}]
}

// Count returns how often the named method was called.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// LiveTextures returns textures that have not been released.
func (d *Device) LiveTextures() []*Texture {
	var out []*Texture
	for _, t := range d.Textures {
		if !t.Released {
			out = append(out, t)
		}
	}
	return out
}

func (d *Device) record(name string) error {
	d.Calls = append(d.Calls, name)
	return d.Fail[name]
}

func (d *Device) CreateVertexBuffer(length uint32, usage renderer.Usage, fvf uint32, pool renderer.Pool) (renderer.VertexBuffer, error) {
	if err := d.record("CreateVertexBuffer"); err != nil {
		return nil, err
	}
	b := &Buffer{Data: make([]byte, length), device: d, kind: "Vertex"}
	d.VertexBuffers = append(d.VertexBuffers, b)
	return b, nil
}

func (d *Device) CreateIndexBuffer(length uint32, usage renderer.Usage, format renderer.Format, pool renderer.Pool) (renderer.IndexBuffer, error) {
	if err := d.record("CreateIndexBuffer"); err != nil {
		return nil, err
	}
	b := &Buffer{Data: make([]byte, length), device: d, kind: "Index"}
	d.IndexBuffers = append(d.IndexBuffers, b)
	return b, nil
}

func (d *Device) CreateTexture(width, height, levels uint32, usage renderer.Usage, format renderer.Format, pool renderer.Pool) (renderer.Texture, error) {
	if err := d.record("CreateTexture"); err != nil {
		return nil, err
	}
	t := &Texture{
		Width:  width,
		Height: height,
		Pool:   pool,
		Pixels: make([]byte, width*height*4),
		device: d,
	}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) UpdateTexture(src, dst renderer.Texture) error {
	if err := d.record("UpdateTexture"); err != nil {
		return err
	}
	s, dt := src.(*Texture), dst.(*Texture)
	if s.Pool != renderer.POOL_SYSTEMMEM || dt.Pool != renderer.POOL_DEFAULT {
		return fmt.Errorf("UpdateTexture: invalid pools %d -> %d", s.Pool, dt.Pool)
	}
	if s.Width != dt.Width || s.Height != dt.Height {
		return fmt.Errorf("UpdateTexture: size mismatch %dx%d -> %dx%d", s.Width, s.Height, dt.Width, dt.Height)
	}
	if s.Released || dt.Released {
		return fmt.Errorf("UpdateTexture: released texture")
	}
	copy(dt.Pixels, s.Pixels)
	return nil
}

func (d *Device) UpdateSurface(src renderer.Texture, srcRect *renderer.Rect, dst renderer.Texture, dstPoint *renderer.Point) error {
	if err := d.record("UpdateSurface"); err != nil {
		return err
	}
	s, dt := src.(*Texture), dst.(*Texture)
	if s.Pool != renderer.POOL_SYSTEMMEM || dt.Pool != renderer.POOL_DEFAULT {
		return fmt.Errorf("UpdateSurface: invalid pools %d -> %d", s.Pool, dt.Pool)
	}
	r := renderer.Rect{Right: int32(s.Width), Bottom: int32(s.Height)}
	if srcRect != nil {
		r = *srcRect
	}
	p := renderer.Point{}
	if dstPoint != nil {
		p = *dstPoint
	}
	w, h := r.Right-r.Left, r.Bottom-r.Top
	if p.X < 0 || p.Y < 0 || p.X+w > int32(dt.Width) || p.Y+h > int32(dt.Height) {
		return fmt.Errorf("UpdateSurface: destination out of bounds")
	}
	for y := int32(0); y < h; y++ {
		so := ((r.Top+y)*int32(s.Width) + r.Left) * 4
		do := ((p.Y+y)*int32(dt.Width) + p.X) * 4
		copy(dt.Pixels[do:do+w*4], s.Pixels[so:so+w*4])
	}
	return nil
}

func (d *Device) CreateStateBlock(typ renderer.StateBlockType) (renderer.StateBlock, error) {
	if err := d.record("CreateStateBlock"); err != nil {
		return nil, err
	}
	d.StateBlocks++
	return &StateBlock{device: d}, nil
}

func (d *Device) GetTransform(state renderer.TransformState) (math.Mat4, error) {
	if err := d.record("GetTransform"); err != nil {
		return math.Mat4{}, err
	}
	return d.state.Transforms[state], nil
}

func (d *Device) SetTransform(state renderer.TransformState, m math.Mat4) error {
	if err := d.record("SetTransform"); err != nil {
		return err
	}
	d.state.Transforms[state] = m
	return nil
}

func (d *Device) GetRenderTarget(index uint32) (renderer.Surface, error) {
	if err := d.record("GetRenderTarget"); err != nil {
		return nil, err
	}
	return d.state.RenderTarget, nil
}

func (d *Device) GetBackBuffer() (renderer.Surface, error) {
	if err := d.record("GetBackBuffer"); err != nil {
		return nil, err
	}
	return d.BackBuffer, nil
}

func (d *Device) SetRenderTarget(index uint32, target renderer.Surface) error {
	if err := d.record("SetRenderTarget"); err != nil {
		return err
	}
	d.state.RenderTarget = target
	return nil
}

func (d *Device) SetViewport(vp renderer.Viewport) error {
	if err := d.record("SetViewport"); err != nil {
		return err
	}
	d.state.Viewport = vp
	return nil
}

func (d *Device) DisableShaders() error {
	if err := d.record("DisableShaders"); err != nil {
		return err
	}
	d.state.ShadersBound = false
	return nil
}

func (d *Device) SetFVF(fvf uint32) error {
	if err := d.record("SetFVF"); err != nil {
		return err
	}
	d.state.FVF = fvf
	return nil
}

func (d *Device) SetRenderState(state renderer.RenderState, value uint32) error {
	if err := d.record("SetRenderState"); err != nil {
		return err
	}
	d.state.RenderStates[state] = value
	return nil
}

func (d *Device) SetTextureStageState(stage uint32, typ renderer.TextureStageState, value uint32) error {
	if err := d.record("SetTextureStageState"); err != nil {
		return err
	}
	d.state.StageStates[stageKey{stage, typ}] = value
	return nil
}

func (d *Device) SetSamplerState(sampler uint32, typ renderer.SamplerState, value uint32) error {
	if err := d.record("SetSamplerState"); err != nil {
		return err
	}
	d.state.SamplerStates[samplerKey{sampler, typ}] = value
	return nil
}

func (d *Device) SetScissorRect(r renderer.Rect) error {
	if err := d.record("SetScissorRect"); err != nil {
		return err
	}
	d.state.Scissor = r
	return nil
}

func (d *Device) SetTexture(sampler uint32, texture renderer.Texture) error {
	if err := d.record("SetTexture"); err != nil {
		return err
	}
	if texture == nil {
		delete(d.state.Textures, sampler)
		return nil
	}
	d.state.Textures[sampler] = texture
	return nil
}

func (d *Device) SetStreamSource(stream uint32, vb renderer.VertexBuffer, offset, stride uint32) error {
	if err := d.record("SetStreamSource"); err != nil {
		return err
	}
	d.state.Stream = vb
	d.state.StreamStride = stride
	return nil
}

func (d *Device) SetIndices(ib renderer.IndexBuffer) error {
	if err := d.record("SetIndices"); err != nil {
		return err
	}
	d.state.Indices = ib
	return nil
}

func (d *Device) DrawIndexedPrimitive(typ renderer.PrimitiveType, baseVertexIndex int32, minIndex, numVertices, startIndex, primitiveCount uint32) error {
	if err := d.record("DrawIndexedPrimitive"); err != nil {
		return err
	}
	if typ != renderer.PT_TRIANGLELIST {
		return fmt.Errorf("unexpected primitive type %d", typ)
	}
	d.Draws = append(d.Draws, DrawCall{
		BaseVertex:     baseVertexIndex,
		MinIndex:       minIndex,
		NumVertices:    numVertices,
		StartIndex:     startIndex,
		PrimitiveCount: primitiveCount,
		Scissor:        d.state.Scissor,
		Texture:        d.state.Textures[0],
	})
	return nil
}

// Buffer is a fake vertex or index buffer.
type Buffer struct {
	Data     []byte
	Locks    int
	Locked   bool
	Released bool
	LastLock renderer.LockFlags

	device *Device
	kind   string
}

func (b *Buffer) Lock(offset, size uint32, flags renderer.LockFlags) ([]byte, error) {
	if err := b.device.record("Lock" + b.kind); err != nil {
		return nil, err
	}
	if b.Locked {
		return nil, fmt.Errorf("buffer already locked")
	}
	if size == 0 {
		size = uint32(len(b.Data)) - offset
	}
	if int(offset+size) > len(b.Data) {
		return nil, fmt.Errorf("lock range %d+%d exceeds buffer of %d bytes", offset, size, len(b.Data))
	}
	b.Locks++
	b.Locked = true
	b.LastLock = flags
	return b.Data[offset : offset+size], nil
}

func (b *Buffer) Unlock() error {
	if err := b.device.record("Unlock" + b.kind); err != nil {
		b.Locked = false
		return err
	}
	b.Locked = false
	return nil
}

func (b *Buffer) Release() {
	b.Released = true
}

// Texture is a fake texture with a single BGRA level, pitch = Width*4.
type Texture struct {
	Width    uint32
	Height   uint32
	Pool     renderer.Pool
	Pixels   []byte
	Dirty    []renderer.Rect
	Locked   bool
	Released bool

	device *Device
}

func (t *Texture) LockRect(level uint32, flags renderer.LockFlags) (renderer.LockedRect, error) {
	if err := t.device.record("LockRect"); err != nil {
		return renderer.LockedRect{}, err
	}
	t.Locked = true
	return renderer.LockedRect{Pitch: int(t.Width * 4), Bits: t.Pixels}, nil
}

func (t *Texture) UnlockRect(level uint32) error {
	t.Locked = false
	return t.device.record("UnlockRect")
}

func (t *Texture) AddDirtyRect(r *renderer.Rect) error {
	if err := t.device.record("AddDirtyRect"); err != nil {
		return err
	}
	if r != nil {
		t.Dirty = append(t.Dirty, *r)
	}
	return nil
}

func (t *Texture) Release() {
	t.Released = true
}

// Pixel returns the BGRA bytes at (x, y).
func (t *Texture) Pixel(x, y int) [4]byte {
	o := (y*int(t.Width) + x) * 4
	return [4]byte{t.Pixels[o], t.Pixels[o+1], t.Pixels[o+2], t.Pixels[o+3]}
}

type Surface struct {
	Name     string
	Released int
}

func (s *Surface) Release() {
	s.Released++
}

// StateBlock snapshots everything but transforms and the render target, like
// a D3DSBT_ALL block whose transforms the overlay saves on its own.
type StateBlock struct {
	device   *Device
	captured *State
	Applied  int
	Released bool
}

func (s *StateBlock) Capture() error {
	if err := s.device.record("Capture"); err != nil {
		return err
	}
	st := s.device.state.clone()
	s.captured = &st
	return nil
}

func (s *StateBlock) Apply() error {
	if err := s.device.record("Apply"); err != nil {
		return err
	}
	if s.captured == nil {
		return fmt.Errorf("apply before capture")
	}
	s.Applied++
	transforms := s.device.state.Transforms
	target := s.device.state.RenderTarget
	s.device.state = s.captured.clone()
	s.device.state.Transforms = transforms
	s.device.state.RenderTarget = target
	return nil
}

func (s *StateBlock) Release() {
	s.Released = true
}
