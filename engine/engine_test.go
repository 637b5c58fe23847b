package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/d3d9ui/engine/core"
	"github.com/spaghettifunk/d3d9ui/engine/input"
	"github.com/spaghettifunk/d3d9ui/engine/platform"
	"github.com/spaghettifunk/d3d9ui/engine/renderer"
	"github.com/spaghettifunk/d3d9ui/engine/renderer/fake"
	"github.com/spaghettifunk/d3d9ui/engine/ui"
)

var (
	screen = ui.NewRect(0, 0, 640, 480)
	font   = ui.ManagedTexture(0)
	image  = ui.UserTexture(7)
)

// toolkit replays canned frames. Each Run returns the next output; the last
// one repeats.
type toolkit struct {
	outputs []ui.FullOutput
	prims   []ui.ClippedPrimitive

	inputs        []ui.RawInput
	runs          int
	tessellations int
}

func (tk *toolkit) Run(in ui.RawInput, run func(ctx ui.Context)) ui.FullOutput {
	tk.inputs = append(tk.inputs, in)
	run(tk)
	i := tk.runs
	if i >= len(tk.outputs) {
		i = len(tk.outputs) - 1
	}
	tk.runs++
	return tk.outputs[i]
}

func (tk *toolkit) Tessellate(shapes []ui.ClippedShape, pixelsPerPoint float32) []ui.ClippedPrimitive {
	tk.tessellations++
	return tk.prims
}

type appState struct {
	frames int
}

func countFrames(ctx ui.Context, s *appState) {
	s.frames++
}

func solid(w, h int) *ui.ColorImage {
	img := &ui.ColorImage{Size: [2]int{w, h}, Pixels: make([]ui.Color32, w*h)}
	for i := range img.Pixels {
		img.Pixels[i] = ui.RGBA(255, 255, 255, 255)
	}
	return img
}

func quad(x, y float32, tex ui.TextureID) *ui.Mesh {
	c := ui.RGBA(200, 100, 50, 255)
	return &ui.Mesh{
		Vertices: []ui.Vertex{
			{Pos: ui.Pos2{X: x, Y: y}, Color: c},
			{Pos: ui.Pos2{X: x + 10, Y: y}, Color: c},
			{Pos: ui.Pos2{X: x + 10, Y: y + 10}, Color: c},
			{Pos: ui.Pos2{X: x, Y: y + 10}, Color: c},
		},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
		TextureID: tex,
	}
}

// frame has shapes and, when textures is set, uploads the font and the image.
func frame(repaintAfter time.Duration, textures bool) ui.FullOutput {
	out := ui.FullOutput{
		Shapes:         []ui.ClippedShape{{ClipRect: screen}},
		PixelsPerPoint: 1,
		RepaintAfter:   repaintAfter,
	}
	if textures {
		out.TexturesDelta.Set = []ui.TextureSet{
			{ID: font, Delta: ui.ImageDelta{Image: solid(8, 8)}},
			{ID: image, Delta: ui.ImageDelta{Image: solid(2, 2)}},
		}
	}
	return out
}

func newToolkit(outputs ...ui.FullOutput) *toolkit {
	return &toolkit{
		outputs: outputs,
		prims: []ui.ClippedPrimitive{
			{ClipRect: ui.NewRect(0, 0, 100, 50), Primitive: quad(0, 0, font)},
			{ClipRect: ui.NewRect(10.5, 20.2, 30, 30), Primitive: quad(20, 20, image)},
		},
	}
}

func testPlatform(clip platform.Clipboard) *platform.Platform {
	return &platform.Platform{
		Window:    platform.Fixed(screen),
		Clipboard: clip,
	}
}

func newTestEngine(t *testing.T, dev *fake.Device, tk *toolkit, opts ...Option) (*Engine[*appState], *appState) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.VertexCapacity = 16
	cfg.IndexCapacity = 16
	cfg.BufferSlack = 8
	cfg.MetricsInterval = 0

	state := &appState{}
	opts = append([]Option{
		WithConfig(cfg),
		WithPolicy(core.PropagatePolicy{}),
		WithPlatform(testPlatform(&platform.MemoryClipboard{})),
	}, opts...)
	e, err := New(dev, 0, tk, countFrames, state, opts...)
	require.NoError(t, err)
	t.Cleanup(e.Shutdown)
	return e, state
}

func TestNewRequiresToolkit(t *testing.T) {
	_, err := New[*appState](fake.NewDevice(), 0, nil, countFrames, &appState{},
		WithPolicy(core.PropagatePolicy{}), WithPlatform(testPlatform(nil)))
	assert.ErrorIs(t, err, core.ErrNotInitialized)
}

func TestPresentRestoresHostState(t *testing.T) {
	dev := fake.NewDevice()
	e, state := newTestEngine(t, dev, newToolkit(frame(0, true)))

	before := dev.Snapshot()
	require.NoError(t, e.Present(dev))

	assert.Equal(t, before, dev.Snapshot())
	assert.Equal(t, 1, state.frames)
	assert.Equal(t, StageReady, e.Stage())
	assert.Equal(t, 1, dev.StateBlocks)
}

func TestPresentDrawsEveryMesh(t *testing.T) {
	dev := fake.NewDevice()
	e, _ := newTestEngine(t, dev, newToolkit(frame(0, true)))

	require.NoError(t, e.Present(dev))

	require.Len(t, dev.Draws, 2)
	first, second := dev.Draws[0], dev.Draws[1]

	assert.Equal(t, int32(0), first.BaseVertex)
	assert.Equal(t, uint32(4), first.NumVertices)
	assert.Equal(t, uint32(0), first.StartIndex)
	assert.Equal(t, uint32(2), first.PrimitiveCount)
	assert.Equal(t, renderer.Rect{Left: 0, Top: 0, Right: 100, Bottom: 50}, first.Scissor)

	assert.Equal(t, int32(4), second.BaseVertex)
	assert.Equal(t, uint32(6), second.StartIndex)
	assert.Equal(t, renderer.Rect{Left: 10, Top: 20, Right: 41, Bottom: 51}, second.Scissor)

	fontTex, err := e.systems.Textures().Get(font)
	require.NoError(t, err)
	imageTex, err := e.systems.Textures().Get(image)
	require.NoError(t, err)
	assert.Same(t, fontTex, first.Texture)
	assert.Same(t, imageTex, second.Texture)

	assert.Equal(t, uint64(2), e.Metrics().DrawCalls)
	assert.Equal(t, uint64(8), e.Metrics().UploadedVerts)
}

func TestReactiveFramesReuseGeometry(t *testing.T) {
	dev := fake.NewDevice()
	tk := newToolkit(frame(0, true), frame(time.Second, false))
	e, _ := newTestEngine(t, dev, tk, WithReactive(true))

	require.NoError(t, e.Present(dev))
	require.NoError(t, e.Present(dev))

	assert.Equal(t, 1, tk.tessellations)
	assert.Equal(t, 1, dev.VertexBuffers[0].Locks)
	assert.Equal(t, 1, dev.IndexBuffers[0].Locks)
	assert.Len(t, dev.Draws, 4)
	assert.Equal(t, dev.Draws[0], dev.Draws[2])
	assert.Equal(t, uint64(1), e.Metrics().SkippedUploads)
}

func TestNonReactiveFramesAlwaysUpload(t *testing.T) {
	dev := fake.NewDevice()
	tk := newToolkit(frame(0, true), frame(time.Second, false))
	e, _ := newTestEngine(t, dev, tk)

	require.NoError(t, e.Present(dev))
	require.NoError(t, e.Present(dev))

	assert.Equal(t, 2, tk.tessellations)
	assert.Equal(t, 2, dev.VertexBuffers[0].Locks)
	assert.Zero(t, e.Metrics().SkippedUploads)
}

func TestEmptyFrameStillAppliesTextureDeltas(t *testing.T) {
	dev := fake.NewDevice()
	out := ui.FullOutput{PixelsPerPoint: 1}
	out.TexturesDelta.Set = []ui.TextureSet{{ID: font, Delta: ui.ImageDelta{Image: solid(4, 4)}}}
	out.TexturesDelta.Free = []ui.TextureID{font}
	tk := newToolkit(out)
	e, _ := newTestEngine(t, dev, tk)

	before := dev.Snapshot()
	require.NoError(t, e.Present(dev))

	assert.Zero(t, tk.tessellations)
	assert.Empty(t, dev.Draws)
	assert.Zero(t, dev.Count("LockVertex"))
	assert.Zero(t, e.systems.Textures().Len())
	assert.Empty(t, dev.LiveTextures())
	assert.Equal(t, before, dev.Snapshot())
}

func TestResetRecreatesResources(t *testing.T) {
	dev := fake.NewDevice()
	tk := newToolkit(frame(0, true), frame(time.Second, false))
	e, _ := newTestEngine(t, dev, tk, WithReactive(true))

	require.NoError(t, e.Present(dev))
	e.PreReset()

	assert.Equal(t, StagePendingReset, e.Stage())
	assert.Empty(t, dev.LiveTextures())
	assert.True(t, dev.VertexBuffers[0].Released)
	assert.True(t, dev.IndexBuffers[0].Released)

	// reactive and no repaint requested, but the buffers are new
	require.NoError(t, e.Present(dev))
	assert.Equal(t, StageReady, e.Stage())
	assert.Equal(t, 2, tk.tessellations)
	require.Len(t, dev.VertexBuffers, 2)
	assert.Equal(t, 1, dev.VertexBuffers[1].Locks)

	require.Len(t, dev.Draws, 4)
	fontTex, err := e.systems.Textures().Get(font)
	require.NoError(t, err)
	assert.Same(t, fontTex, dev.Draws[2].Texture)
	assert.Equal(t, [4]byte{255, 255, 255, 255}, fontTex.(*fake.Texture).Pixel(0, 0))
}

func TestCopiedTextReachesClipboard(t *testing.T) {
	dev := fake.NewDevice()
	out := frame(0, true)
	out.PlatformOutput.CopiedText = "copied"
	clip := &platform.MemoryClipboard{}
	e, _ := newTestEngine(t, dev, newToolkit(out), WithPlatform(testPlatform(clip)))

	require.NoError(t, e.Present(dev))

	text, err := clip.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "copied", text)
}

func TestWndProcFeedsNextFrame(t *testing.T) {
	dev := fake.NewDevice()
	tk := newToolkit(frame(0, true))
	e, _ := newTestEngine(t, dev, tk)

	res := e.WndProc(input.WM_MOUSEMOVE, 0, uintptr(12)|uintptr(34)<<16)
	assert.Equal(t, input.ResultMouseMove, res)
	assert.Equal(t, input.ResultUnknown, e.WndProc(0x0010, 0, 0))

	require.NoError(t, e.Present(dev))
	require.Len(t, tk.inputs, 1)
	in := tk.inputs[0]
	assert.Equal(t, screen, in.ScreenRect)
	assert.Equal(t, []ui.Event{ui.PointerMoved{Pos: ui.Pos2{X: 12, Y: 34}}}, in.Events)
}

func TestPaintCallbackIsRejected(t *testing.T) {
	dev := fake.NewDevice()
	tk := newToolkit(frame(0, true))
	tk.prims = append(tk.prims, ui.ClippedPrimitive{ClipRect: screen, Primitive: &ui.PaintCallback{Rect: screen}})
	e, _ := newTestEngine(t, dev, tk)

	before := dev.Snapshot()
	err := e.Present(dev)

	assert.ErrorIs(t, err, core.ErrPaintCallback)
	assert.Empty(t, dev.Draws)
	assert.Equal(t, before, dev.Snapshot())
	assert.Equal(t, StageReady, e.Stage())
}

func TestFreeDeltasApplyWhenSetDeltasFail(t *testing.T) {
	dev := fake.NewDevice()
	broken := ui.FullOutput{Shapes: frame(0, false).Shapes, PixelsPerPoint: 1}
	broken.TexturesDelta.Set = []ui.TextureSet{
		{ID: ui.UserTexture(99), Delta: ui.ImageDelta{Image: solid(1, 1), Pos: &[2]int{0, 0}}},
	}
	broken.TexturesDelta.Free = []ui.TextureID{image}
	e, _ := newTestEngine(t, dev, newToolkit(frame(0, true), broken))

	require.NoError(t, e.Present(dev))
	require.Equal(t, 2, e.systems.Textures().Len())

	before := dev.Snapshot()
	assert.ErrorIs(t, e.Present(dev), core.ErrTextureNotResident)

	assert.Equal(t, 1, e.systems.Textures().Len())
	_, err := e.systems.Textures().Get(image)
	assert.ErrorIs(t, err, core.ErrTextureNotResident)
	assert.Len(t, dev.LiveTextures(), 1)
	assert.Equal(t, before, dev.Snapshot())
}

func TestTolerantDrawSkipsFailedTexture(t *testing.T) {
	dev := fake.NewDevice()
	tk := newToolkit(frame(0, true))
	e, _ := newTestEngine(t, dev, tk, WithPolicy(core.TolerantPolicy{}))

	dev.Fail = map[string]error{"UpdateTexture": assert.AnError}
	require.NoError(t, e.Present(dev))

	assert.Empty(t, dev.Draws)
	assert.Equal(t, 2, e.systems.Textures().Len())
}

func TestShutdown(t *testing.T) {
	dev := fake.NewDevice()
	e, _ := newTestEngine(t, dev, newToolkit(frame(0, true)))
	require.NoError(t, e.Present(dev))

	e.Shutdown()
	e.Shutdown()

	assert.Equal(t, StageUninitialized, e.Stage())
	assert.Empty(t, dev.LiveTextures())
	assert.ErrorIs(t, e.Present(dev), core.ErrNotInitialized)
	assert.Equal(t, input.ResultUnknown, e.WndProc(input.WM_MOUSEMOVE, 0, 0))
}

func TestWatchedConfigAppliesAtFrameStart(t *testing.T) {
	dev := fake.NewDevice()
	path := filepath.Join(t.TempDir(), "overlay.toml")
	require.NoError(t, os.WriteFile(path, []byte("reactive = false\n"), 0o644))
	w, err := WatchConfig(path)
	require.NoError(t, err)

	tk := newToolkit(frame(0, true), frame(time.Second, false))
	e, _ := newTestEngine(t, dev, tk, WithConfigWatcher(w))
	assert.False(t, e.Reactive())

	require.NoError(t, os.WriteFile(path, []byte("reactive = true\n"), 0o644))
	require.Eventually(t, func() bool {
		if err := e.Present(dev); err != nil {
			return false
		}
		return e.Reactive()
	}, 2*time.Second, 10*time.Millisecond)
}
