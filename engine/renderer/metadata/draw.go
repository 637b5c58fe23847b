package metadata

import "github.com/spaghettifunk/d3d9ui/engine/ui"

// ScissorRect is an integer clip rectangle; Right and Bottom are exclusive.
type ScissorRect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

/**
 * @brief One draw call: a run of VertexCount vertices starting at VertexOffset
 * and IndexCount indices starting at IndexOffset in the shared buffers.
 */
type DrawCommand struct {
	Clip         ScissorRect
	TextureID    ui.TextureID
	VertexOffset uint32
	VertexCount  uint32
	IndexOffset  uint32
	IndexCount   uint32
}

// DrawPlan lists the draw calls of one frame in tessellation order.
type DrawPlan struct {
	Commands      []DrawCommand
	VertexCount   uint32
	IndexCount    uint32
	DroppedMeshes int
}

func (p *DrawPlan) IsEmpty() bool {
	return p == nil || len(p.Commands) == 0
}
