package renderer

// Values below are the Direct3D 9 enumerations; the d3d9 adapter passes them
// through unchanged.

type RenderState uint32

const (
	RS_ZENABLE                  RenderState = 7
	RS_FILLMODE                 RenderState = 8
	RS_SHADEMODE                RenderState = 9
	RS_ZWRITEENABLE             RenderState = 14
	RS_ALPHATESTENABLE          RenderState = 15
	RS_LASTPIXEL                RenderState = 16
	RS_SRCBLEND                 RenderState = 19
	RS_DESTBLEND                RenderState = 20
	RS_CULLMODE                 RenderState = 22
	RS_ALPHABLENDENABLE         RenderState = 27
	RS_FOGENABLE                RenderState = 28
	RS_SPECULARENABLE           RenderState = 29
	RS_RANGEFOGENABLE           RenderState = 48
	RS_STENCILENABLE            RenderState = 52
	RS_TEXTUREFACTOR            RenderState = 60
	RS_CLIPPING                 RenderState = 136
	RS_LIGHTING                 RenderState = 137
	RS_COLORWRITEENABLE         RenderState = 168
	RS_BLENDOP                  RenderState = 171
	RS_SCISSORTESTENABLE        RenderState = 174
	RS_SRGBWRITEENABLE          RenderState = 194
	RS_SEPARATEALPHABLENDENABLE RenderState = 206
	RS_SRCBLENDALPHA            RenderState = 207
	RS_DESTBLENDALPHA           RenderState = 208
	RS_BLENDOPALPHA             RenderState = 209
)

const (
	FILL_SOLID        uint32 = 3
	SHADE_GOURAUD     uint32 = 2
	CULL_NONE         uint32 = 1
	BLENDOP_ADD       uint32 = 1
	BLEND_ONE         uint32 = 2
	BLEND_SRCALPHA    uint32 = 5
	BLEND_INVSRCALPHA uint32 = 6
)

type TextureStageState uint32

const (
	TSS_COLOROP   TextureStageState = 1
	TSS_COLORARG1 TextureStageState = 2
	TSS_COLORARG2 TextureStageState = 3
	TSS_ALPHAOP   TextureStageState = 4
	TSS_ALPHAARG1 TextureStageState = 5
	TSS_ALPHAARG2 TextureStageState = 6
	TSS_COLORARG0 TextureStageState = 26
	TSS_ALPHAARG0 TextureStageState = 27
)

const (
	TOP_DISABLE  uint32 = 1
	TOP_MODULATE uint32 = 4

	TA_DIFFUSE uint32 = 0
	TA_CURRENT uint32 = 1
	TA_TEXTURE uint32 = 2
)

type SamplerState uint32

const (
	SAMP_ADDRESSU    SamplerState = 1
	SAMP_ADDRESSV    SamplerState = 2
	SAMP_ADDRESSW    SamplerState = 3
	SAMP_BORDERCOLOR SamplerState = 4
	SAMP_MAGFILTER   SamplerState = 5
	SAMP_MINFILTER   SamplerState = 6
	SAMP_MIPFILTER   SamplerState = 7
)

const (
	TEXF_LINEAR     uint32 = 2
	TADDRESS_CLAMP  uint32 = 3
	COLOR_ALL_WHITE uint32 = 0xFFFFFFFF
)

type TransformState uint32

const (
	TS_VIEW       TransformState = 2
	TS_PROJECTION TransformState = 3
	TS_WORLD      TransformState = 256
)

type PrimitiveType uint32

const (
	PT_TRIANGLELIST PrimitiveType = 4
)

type Format uint32

const (
	FMT_A8R8G8B8 Format = 21
	FMT_INDEX32  Format = 102
)

type Pool uint32

const (
	POOL_DEFAULT   Pool = 0
	POOL_SYSTEMMEM Pool = 2
)

type Usage uint32

const (
	USAGE_WRITEONLY Usage = 0x8
	USAGE_DYNAMIC   Usage = 0x200
)

type LockFlags uint32

const (
	LOCK_NONE    LockFlags = 0
	LOCK_DISCARD LockFlags = 0x2000
)

type StateBlockType uint32

const (
	SBT_ALL StateBlockType = 1
)

const (
	FVF_XYZ     uint32 = 0x002
	FVF_DIFFUSE uint32 = 0x040
	FVF_TEX1    uint32 = 0x100
)
