package renderer

import (
	"fmt"

	"github.com/spaghettifunk/d3d9ui/engine/core"
	"github.com/spaghettifunk/d3d9ui/engine/math"
	"github.com/spaghettifunk/d3d9ui/engine/renderer/metadata"
)

// StateGuard holds the host's device state for the duration of one UI frame.
// EnterState captures it and installs the UI pipeline; Release puts the host
// state back. Release must run exactly once, so callers defer it.
type StateGuard struct {
	device       Device
	policy       core.ErrorPolicy
	block        StateBlock
	world        math.Mat4
	view         math.Mat4
	projection   math.Mat4
	renderTarget Surface
	released     bool
}

// EnterState backs up the device state and configures the fixed-function
// pipeline for flat, alpha-blended, screen-space triangles.
func EnterState(dev Device, viewport Viewport, policy core.ErrorPolicy) (*StateGuard, error) {
	g := &StateGuard{
		device: dev,
		policy: policy,
	}

	block, err := dev.CreateStateBlock(SBT_ALL)
	if err := policy.Handle(wrap(err, "unable to back up host state")); err != nil {
		return nil, err
	}
	if block != nil {
		if err := policy.Handle(wrap(block.Capture(), "unable to capture host state")); err != nil {
			block.Release()
			return nil, err
		}
		g.block = block
	}

	if err := g.backupTransforms(); err != nil {
		g.abandon()
		return nil, err
	}

	rt, err := dev.GetRenderTarget(0)
	if err := policy.Handle(wrap(err, "unable to back up render target")); err != nil {
		g.abandon()
		return nil, err
	}
	g.renderTarget = rt

	if err := setupState(dev, viewport, policy); err != nil {
		// put back whatever was already changed
		_ = g.Release()
		return nil, err
	}
	return g, nil
}

func (g *StateGuard) backupTransforms() error {
	var err error
	g.world, err = g.device.GetTransform(TS_WORLD)
	if err := g.policy.Handle(wrap(err, "unable to back up world matrix")); err != nil {
		return err
	}
	g.view, err = g.device.GetTransform(TS_VIEW)
	if err := g.policy.Handle(wrap(err, "unable to back up view matrix")); err != nil {
		return err
	}
	g.projection, err = g.device.GetTransform(TS_PROJECTION)
	if err := g.policy.Handle(wrap(err, "unable to back up projection matrix")); err != nil {
		return err
	}
	return nil
}

// Release restores the render target, the three transforms and finally the
// captured state block. Calling it again is a no-op.
func (g *StateGuard) Release() error {
	if g == nil || g.released {
		return nil
	}
	g.released = true
	defer g.abandon()

	if g.renderTarget != nil {
		if err := g.policy.Handle(wrap(g.device.SetRenderTarget(0, g.renderTarget), "unable to restore render target")); err != nil {
			return err
		}
	}
	if err := g.policy.Handle(wrap(g.device.SetTransform(TS_WORLD, g.world), "unable to reset world matrix")); err != nil {
		return err
	}
	if err := g.policy.Handle(wrap(g.device.SetTransform(TS_VIEW, g.view), "unable to reset view matrix")); err != nil {
		return err
	}
	if err := g.policy.Handle(wrap(g.device.SetTransform(TS_PROJECTION, g.projection), "unable to reset projection matrix")); err != nil {
		return err
	}
	if g.block != nil {
		if err := g.policy.Handle(wrap(g.block.Apply(), "unable to re-apply captured state")); err != nil {
			return err
		}
	}
	return nil
}

// abandon frees the captured objects without applying them.
func (g *StateGuard) abandon() {
	if g.renderTarget != nil {
		g.renderTarget.Release()
		g.renderTarget = nil
	}
	if g.block != nil {
		g.block.Release()
		g.block = nil
	}
}

type renderStateValue struct {
	state RenderState
	value uint32
}

var uiRenderStates = []renderStateValue{
	{RS_FILLMODE, FILL_SOLID},
	{RS_SHADEMODE, SHADE_GOURAUD},
	{RS_ZENABLE, 0},
	{RS_ZWRITEENABLE, 0},
	{RS_ALPHATESTENABLE, 0},
	{RS_CULLMODE, CULL_NONE},
	{RS_ALPHABLENDENABLE, 1},
	{RS_BLENDOP, BLENDOP_ADD},
	{RS_SRCBLEND, BLEND_SRCALPHA},
	{RS_DESTBLEND, BLEND_INVSRCALPHA},
	{RS_SEPARATEALPHABLENDENABLE, 1},
	{RS_BLENDOPALPHA, BLENDOP_ADD},
	{RS_SRCBLENDALPHA, BLEND_ONE},
	{RS_DESTBLENDALPHA, BLEND_INVSRCALPHA},
	{RS_SCISSORTESTENABLE, 1},
	{RS_FOGENABLE, 0},
	{RS_RANGEFOGENABLE, 0},
	{RS_SPECULARENABLE, 0},
	{RS_STENCILENABLE, 0},
	{RS_CLIPPING, 1},
	{RS_LIGHTING, 0},
	{RS_TEXTUREFACTOR, COLOR_ALL_WHITE},
	{RS_COLORWRITEENABLE, COLOR_ALL_WHITE},
	{RS_SRGBWRITEENABLE, 0},
	{RS_LASTPIXEL, 1},
}

type stageStateValue struct {
	stage uint32
	typ   TextureStageState
	value uint32
}

var uiStageStates = []stageStateValue{
	{0, TSS_COLOROP, TOP_MODULATE},
	{0, TSS_COLORARG0, TA_CURRENT},
	{0, TSS_COLORARG1, TA_TEXTURE},
	{0, TSS_COLORARG2, TA_DIFFUSE},
	{0, TSS_ALPHAOP, TOP_MODULATE},
	{0, TSS_ALPHAARG0, TA_CURRENT},
	{0, TSS_ALPHAARG1, TA_TEXTURE},
	{0, TSS_ALPHAARG2, TA_DIFFUSE},
	{1, TSS_COLOROP, TOP_DISABLE},
	{1, TSS_ALPHAOP, TOP_DISABLE},
	{2, TSS_COLOROP, TOP_DISABLE},
	{2, TSS_ALPHAOP, TOP_DISABLE},
}

type samplerStateValue struct {
	typ   SamplerState
	value uint32
}

var uiSamplerStates = []samplerStateValue{
	{SAMP_MINFILTER, TEXF_LINEAR},
	{SAMP_MIPFILTER, TEXF_LINEAR},
	{SAMP_MAGFILTER, TEXF_LINEAR},
	{SAMP_BORDERCOLOR, COLOR_ALL_WHITE},
	{SAMP_ADDRESSU, TADDRESS_CLAMP},
	{SAMP_ADDRESSV, TADDRESS_CLAMP},
	{SAMP_ADDRESSW, TADDRESS_CLAMP},
}

func setupState(dev Device, viewport Viewport, policy core.ErrorPolicy) error {
	backbuffer, err := dev.GetBackBuffer()
	if err := policy.Handle(wrap(err, "unable to get back buffer")); err != nil {
		return err
	}
	if backbuffer != nil {
		err := dev.SetRenderTarget(0, backbuffer)
		backbuffer.Release()
		if err := policy.Handle(wrap(err, "unable to set render target")); err != nil {
			return err
		}
	}
	if err := policy.Handle(wrap(dev.SetViewport(viewport), "unable to set viewport")); err != nil {
		return err
	}

	if err := policy.Handle(wrap(dev.DisableShaders(), "unable to unbind shaders")); err != nil {
		return err
	}
	if err := policy.Handle(wrap(dev.SetFVF(metadata.VertexFVF), "unable to set vertex format")); err != nil {
		return err
	}

	identity := math.NewMat4Identity()
	projection := math.NewMat4ScreenOrthographic(float32(viewport.Width), float32(viewport.Height))
	if err := policy.Handle(wrap(dev.SetTransform(TS_WORLD, identity), "unable to set world matrix")); err != nil {
		return err
	}
	if err := policy.Handle(wrap(dev.SetTransform(TS_VIEW, identity), "unable to set view matrix")); err != nil {
		return err
	}
	if err := policy.Handle(wrap(dev.SetTransform(TS_PROJECTION, projection), "unable to set projection matrix")); err != nil {
		return err
	}

	for _, rs := range uiRenderStates {
		if err := policy.Handle(wrap(dev.SetRenderState(rs.state, rs.value), fmt.Sprintf("unable to set render state %d", rs.state))); err != nil {
			return err
		}
	}
	for _, ts := range uiStageStates {
		if err := policy.Handle(wrap(dev.SetTextureStageState(ts.stage, ts.typ, ts.value), fmt.Sprintf("unable to set stage %d state %d", ts.stage, ts.typ))); err != nil {
			return err
		}
	}
	for _, ss := range uiSamplerStates {
		if err := policy.Handle(wrap(dev.SetSamplerState(0, ss.typ, ss.value), fmt.Sprintf("unable to set sampler state %d", ss.typ))); err != nil {
			return err
		}
	}
	return nil
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
