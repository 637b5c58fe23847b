package systems

import (
	"fmt"

	"github.com/spaghettifunk/d3d9ui/engine/core"
	"github.com/spaghettifunk/d3d9ui/engine/math"
	"github.com/spaghettifunk/d3d9ui/engine/renderer"
	"github.com/spaghettifunk/d3d9ui/engine/renderer/metadata"
	"github.com/spaghettifunk/d3d9ui/engine/ui"
)

type GeometrySystemConfig struct {
	/** @brief Initial capacity of the vertex buffer, in vertices. */
	VertexCapacity uint32
	/** @brief Initial capacity of the index buffer, in indices. */
	IndexCapacity uint32
	/** @brief Extra elements allocated whenever a buffer has to grow. */
	BufferSlack uint32
	/** @brief Extra elements reserved in the per-frame scratch slices. */
	ScratchSlack uint32
}

type deviceBuffer interface {
	renderer.Resource
	renderer.Lockable
}

// growableBuffer is a device buffer that is reallocated, never shrunk, when a
// frame needs more elements than it holds.
type growableBuffer struct {
	name     string
	capacity uint32
	buffer   deviceBuffer
	create   func(dev renderer.Device, elements uint32) (deviceBuffer, error)
}

// ensure makes room for required elements and reports whether a new buffer
// had to be created.
func (b *growableBuffer) ensure(dev renderer.Device, required, slack uint32) (bool, error) {
	if b.buffer != nil && required <= b.capacity {
		return false, nil
	}
	capacity := b.capacity
	if required > capacity {
		capacity = required + slack
	}
	buffer, err := b.create(dev, capacity)
	if err != nil {
		return false, fmt.Errorf("unable to create %s buffer of %d elements: %w", b.name, capacity, err)
	}
	b.release()
	b.buffer = buffer
	b.capacity = capacity
	return true, nil
}

func (b *growableBuffer) release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

func newVertexBuffer(dev renderer.Device, elements uint32) (deviceBuffer, error) {
	return dev.CreateVertexBuffer(elements*metadata.VertexSize, renderer.USAGE_DYNAMIC|renderer.USAGE_WRITEONLY, metadata.VertexFVF, renderer.POOL_DEFAULT)
}

func newIndexBuffer(dev renderer.Device, elements uint32) (deviceBuffer, error) {
	return dev.CreateIndexBuffer(elements*metadata.IndexSize, renderer.USAGE_DYNAMIC|renderer.USAGE_WRITEONLY, renderer.FMT_INDEX32, renderer.POOL_DEFAULT)
}

// GeometrySystem packs the meshes of a frame into one shared vertex buffer
// and one shared index buffer.
type GeometrySystem struct {
	Config *GeometrySystemConfig

	device   renderer.Device
	vertices growableBuffer
	indices  growableBuffer

	vertexScratch []metadata.Vertex
	indexScratch  []uint32
	lastVertices  int
	lastIndices   int

	// reallocations counts buffer growths, for metrics and tests.
	reallocations int
}

func NewGeometrySystem(config *GeometrySystemConfig, dev renderer.Device) (*GeometrySystem, error) {
	if config.VertexCapacity == 0 || config.IndexCapacity == 0 {
		err := fmt.Errorf("func NewGeometrySystem - buffer capacities must be > 0")
		core.LogError("%s", err)
		return nil, err
	}
	gs := &GeometrySystem{
		Config:   config,
		vertices: growableBuffer{name: "vertex", capacity: config.VertexCapacity, create: newVertexBuffer},
		indices:  growableBuffer{name: "index", capacity: config.IndexCapacity, create: newIndexBuffer},
	}
	if err := gs.RecreateGPUResources(dev); err != nil {
		return nil, err
	}
	return gs, nil
}

// RecreateGPUResources allocates both buffers at their current capacity.
func (gs *GeometrySystem) RecreateGPUResources(dev renderer.Device) error {
	gs.device = dev
	if _, err := gs.vertices.ensure(dev, gs.vertices.capacity, 0); err != nil {
		core.LogError("%s", err)
		return err
	}
	if _, err := gs.indices.ensure(dev, gs.indices.capacity, 0); err != nil {
		core.LogError("%s", err)
		return err
	}
	return nil
}

// ReleaseGPUResources frees both buffers. Capacities are kept so the next
// RecreateGPUResources allocates the same sizes.
func (gs *GeometrySystem) ReleaseGPUResources() {
	gs.vertices.release()
	gs.indices.release()
}

func (gs *GeometrySystem) Shutdown() {
	gs.ReleaseGPUResources()
	gs.vertexScratch = nil
	gs.indexScratch = nil
}

// Capacity returns the element capacities of the vertex and index buffers.
func (gs *GeometrySystem) Capacity() (vertices, indices uint32) {
	return gs.vertices.capacity, gs.indices.capacity
}

func (gs *GeometrySystem) Reallocations() int {
	return gs.reallocations
}

// Build turns tessellated primitives into a draw plan and fills the scratch
// slices, without touching the device. Meshes without indices or whose index
// count is not a multiple of three are dropped. Paint callbacks are rejected.
func (gs *GeometrySystem) Build(prims []ui.ClippedPrimitive, screen ui.Rect) (*metadata.DrawPlan, error) {
	slack := int(gs.Config.ScratchSlack)
	if cap(gs.vertexScratch) < gs.lastVertices+slack {
		gs.vertexScratch = make([]metadata.Vertex, 0, gs.lastVertices+slack)
	}
	if cap(gs.indexScratch) < gs.lastIndices+slack {
		gs.indexScratch = make([]uint32, 0, gs.lastIndices+slack)
	}
	vertices := gs.vertexScratch[:0]
	indices := gs.indexScratch[:0]

	plan := &metadata.DrawPlan{Commands: make([]metadata.DrawCommand, 0, len(prims))}
	for i, prim := range prims {
		switch p := prim.Primitive.(type) {
		case *ui.PaintCallback:
			err := fmt.Errorf("primitive %d: %w", i, core.ErrPaintCallback)
			core.LogError("%s", err)
			return nil, err
		case *ui.Mesh:
			if !validMesh(p) {
				core.LogDebug("dropping mesh %d: %d vertices, %d indices", i, len(p.Vertices), len(p.Indices))
				plan.DroppedMeshes++
				continue
			}
			plan.Commands = append(plan.Commands, metadata.DrawCommand{
				Clip:         scissor(prim.ClipRect, screen),
				TextureID:    p.TextureID,
				VertexOffset: uint32(len(vertices)),
				VertexCount:  uint32(len(p.Vertices)),
				IndexOffset:  uint32(len(indices)),
				IndexCount:   uint32(len(p.Indices)),
			})
			for _, v := range p.Vertices {
				vertices = append(vertices, metadata.Vertex{
					X:     v.Pos.X,
					Y:     v.Pos.Y,
					Color: metadata.PackColor(v.Color.R(), v.Color.G(), v.Color.B(), v.Color.A()),
					U:     v.UV.X,
					V:     v.UV.Y,
				})
			}
			indices = append(indices, p.Indices...)
		default:
			core.LogWarn("ignoring primitive %d of unknown type %T", i, prim.Primitive)
		}
	}

	gs.vertexScratch = vertices
	gs.indexScratch = indices
	gs.lastVertices = len(vertices)
	gs.lastIndices = len(indices)
	plan.VertexCount = uint32(len(vertices))
	plan.IndexCount = uint32(len(indices))
	return plan, nil
}

// Upload builds the draw plan for prims and writes its geometry into the
// device buffers, growing them first when needed.
func (gs *GeometrySystem) Upload(prims []ui.ClippedPrimitive, screen ui.Rect) (*metadata.DrawPlan, error) {
	plan, err := gs.Build(prims, screen)
	if err != nil {
		return nil, err
	}
	if plan.IsEmpty() {
		return plan, nil
	}

	grew, err := gs.vertices.ensure(gs.device, plan.VertexCount, gs.Config.BufferSlack)
	if err != nil {
		return nil, err
	}
	if grew {
		gs.reallocations++
		core.LogDebug("vertex buffer grown to %d vertices", gs.vertices.capacity)
	}
	grew, err = gs.indices.ensure(gs.device, plan.IndexCount, gs.Config.BufferSlack)
	if err != nil {
		return nil, err
	}
	if grew {
		gs.reallocations++
		core.LogDebug("index buffer grown to %d indices", gs.indices.capacity)
	}

	if err := renderer.WriteDiscard(gs.vertices.buffer, gs.vertexScratch); err != nil {
		return nil, fmt.Errorf("unable to upload vertices: %w", err)
	}
	if err := renderer.WriteDiscard(gs.indices.buffer, gs.indexScratch); err != nil {
		return nil, fmt.Errorf("unable to upload indices: %w", err)
	}
	return plan, nil
}

// Bind sets the shared buffers as stream 0 and the index source.
func (gs *GeometrySystem) Bind(dev renderer.Device) error {
	if gs.vertices.buffer == nil || gs.indices.buffer == nil {
		return fmt.Errorf("%w: geometry buffers", core.ErrNotInitialized)
	}
	if err := dev.SetStreamSource(0, gs.vertices.buffer, 0, metadata.VertexSize); err != nil {
		return fmt.Errorf("unable to set vertex stream source: %w", err)
	}
	if err := dev.SetIndices(gs.indices.buffer); err != nil {
		return fmt.Errorf("unable to set index buffer: %w", err)
	}
	return nil
}

func validMesh(m *ui.Mesh) bool {
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return false
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return false
		}
	}
	return true
}

// scissor converts a clip rect to whole pixels covering it, limited to screen.
func scissor(clip, screen ui.Rect) metadata.ScissorRect {
	minX := math.Clamp(math.Floor(clip.Min.X), screen.Min.X, screen.Max.X)
	minY := math.Clamp(math.Floor(clip.Min.Y), screen.Min.Y, screen.Max.Y)
	maxX := math.Clamp(math.Ceil(clip.Max.X), minX, screen.Max.X)
	maxY := math.Clamp(math.Ceil(clip.Max.Y), minY, screen.Max.Y)
	return metadata.ScissorRect{
		Left:   int32(minX),
		Top:    int32(minY),
		Right:  int32(maxX),
		Bottom: int32(maxY),
	}
}
