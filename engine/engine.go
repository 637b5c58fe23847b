// Package engine draws an immediate-mode UI on top of a Direct3D9 host. One
// Engine is created per device by the injection layer, which then forwards
// every Present and every window message to it.
package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/spaghettifunk/d3d9ui/engine/core"
	"github.com/spaghettifunk/d3d9ui/engine/input"
	"github.com/spaghettifunk/d3d9ui/engine/platform"
	"github.com/spaghettifunk/d3d9ui/engine/renderer"
	"github.com/spaghettifunk/d3d9ui/engine/renderer/metadata"
	"github.com/spaghettifunk/d3d9ui/engine/systems"
	"github.com/spaghettifunk/d3d9ui/engine/ui"
)

type Stage uint8

const (
	// Engine has not been created or has been shut down
	StageUninitialized Stage = iota
	// Engine is waiting for the next frame
	StageReady
	// Engine is inside Present
	StageDrawing
	// Device resources were released for a reset and are rebuilt on the next Present
	StagePendingReset
)

func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "uninitialized"
	case StageReady:
		return "ready"
	case StageDrawing:
		return "drawing"
	case StagePendingReset:
		return "pending-reset"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// UIFunc builds the UI of one frame.
type UIFunc[T any] func(ctx ui.Context, state T)

type Engine[T any] struct {
	id    uuid.UUID
	stage Stage

	ctx   ui.Context
	uiFn  UIFunc[T]
	state T

	config   *Config
	policy   core.ErrorPolicy
	platform *platform.Platform
	watcher  *ConfigWatcher
	logFile  *os.File

	input   *input.Manager
	systems *systems.SystemManager
	metrics *core.FrameMetrics

	// plan is the last uploaded frame, reused by reactive frames.
	plan         *metadata.DrawPlan
	forceRepaint bool
}

// New prepares the overlay for dev, drawn over the window hwnd. The toolkit
// ctx calls uiFn with state once per frame.
func New[T any](dev renderer.Device, hwnd uintptr, ctx ui.Context, uiFn UIFunc[T], state T, opts ...Option) (*Engine[T], error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.config == nil {
		o.config = DefaultConfig()
	}
	cfg := *o.config
	if o.reactive != nil {
		cfg.Reactive = *o.reactive
	}
	if o.policy == nil {
		o.policy = core.NewPolicy(cfg.Tolerant)
	}

	e := &Engine[T]{
		id:      uuid.New(),
		ctx:     ctx,
		uiFn:    uiFn,
		state:   state,
		config:  &cfg,
		policy:  o.policy,
		watcher: o.watcher,
		metrics: core.NewFrameMetrics(),
	}
	if err := e.configureLogging(); err != nil {
		core.LogWarn("%s", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, e.fail(err)
	}

	if ctx == nil || uiFn == nil {
		return nil, e.fail(fmt.Errorf("%w: toolkit context and ui callback are required", core.ErrNotInitialized))
	}

	e.platform = o.platform
	if e.platform == nil {
		p, err := platform.New(hwnd)
		if err != nil {
			return nil, e.fail(err)
		}
		e.platform = p
	}

	sm, err := systems.NewSystemManager(&systems.GeometrySystemConfig{
		VertexCapacity: cfg.VertexCapacity,
		IndexCapacity:  cfg.IndexCapacity,
		BufferSlack:    cfg.BufferSlack,
		ScratchSlack:   cfg.ScratchSlack,
	}, dev, e.policy)
	if err != nil {
		return nil, e.fail(err)
	}

	e.systems = sm
	e.input = input.NewManager(e.platform)
	e.stage = StageReady

	core.LogInfo("overlay %s initialized (reactive=%t)", e.id, cfg.Reactive)
	return e, nil
}

// fail routes an error through the policy but always reports a failure.
func (e *Engine[T]) fail(err error) error {
	if herr := e.policy.Handle(err); herr != nil {
		return herr
	}
	return err
}

func (e *Engine[T]) configureLogging() error {
	if err := core.SetLogLevel(e.config.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", e.config.LogLevel, err)
	}
	if e.config.LogFile == "" || e.logFile != nil {
		return nil
	}
	f, err := os.OpenFile(e.config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	core.SetLogOutput(f)
	e.logFile = f
	return nil
}

// applyPendingConfig picks up a reloaded config. Only settings that are safe
// to change between frames are applied.
func (e *Engine[T]) applyPendingConfig() {
	if e.watcher == nil {
		return
	}
	cfg := e.watcher.Take()
	if cfg == nil {
		return
	}
	if cfg.Reactive != e.config.Reactive {
		core.LogInfo("overlay %s: reactive mode %t", e.id, cfg.Reactive)
		e.config.Reactive = cfg.Reactive
		e.forceRepaint = true
	}
	e.config.MetricsInterval = cfg.MetricsInterval
	if cfg.LogLevel != e.config.LogLevel {
		e.config.LogLevel = cfg.LogLevel
		if err := core.SetLogLevel(cfg.LogLevel); err != nil {
			core.LogWarn("log level %q: %s", cfg.LogLevel, err)
		}
	}
}

// Present draws one UI frame. It is called by the host's present hook, on the
// device thread, before the real Present. The device state on return is the
// state on entry.
func (e *Engine[T]) Present(dev renderer.Device) (err error) {
	switch e.stage {
	case StageUninitialized:
		return e.fail(fmt.Errorf("%w: Present", core.ErrNotInitialized))
	case StageDrawing:
		core.LogWarn("overlay %s: nested Present ignored", e.id)
		return nil
	case StagePendingReset:
		if err := e.recreate(dev); err != nil {
			return err
		}
	}
	e.applyPendingConfig()

	start := time.Now()
	e.stage = StageDrawing
	defer func() {
		e.stage = StageReady
		e.metrics.Update(time.Since(start).Seconds())
		e.metrics.Report(e.id.String(), e.config.MetricsInterval)
	}()

	raw := e.input.CollectInput()
	screen := raw.ScreenRect

	guard, err := renderer.EnterState(dev, renderer.Viewport{
		Width:  uint32(screen.Width()),
		Height: uint32(screen.Height()),
		MinZ:   0,
		MaxZ:   1,
	}, e.policy)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := guard.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	output := e.ctx.Run(raw, func(ctx ui.Context) {
		e.uiFn(ctx, e.state)
	})

	if text := output.PlatformOutput.CopiedText; text != "" && e.platform.Clipboard != nil {
		if err := e.platform.Clipboard.WriteText(text); err != nil {
			core.LogWarn("unable to write clipboard: %s", err)
		}
	}

	textures := e.systems.Textures()
	// textures stay resident until the last draw that may use them
	defer textures.ApplyFreeDeltas(output.TexturesDelta.Free)
	if err := textures.ApplySetDeltas(output.TexturesDelta.Set); err != nil {
		return err
	}

	if len(output.Shapes) == 0 {
		return nil
	}

	if e.forceRepaint || !e.config.Reactive || output.NeedsRepaint() || e.plan == nil {
		prims := e.ctx.Tessellate(output.Shapes, output.PixelsPerPoint)
		plan, err := e.systems.Geometry().Upload(prims, screen)
		if err := e.policy.Handle(err); err != nil {
			return err
		}
		if err != nil {
			// tolerated: buffer contents are unknown, skip drawing
			e.plan = nil
			return nil
		}
		e.plan = plan
		e.forceRepaint = false
		e.metrics.RecordUpload(int(plan.VertexCount), int(plan.IndexCount))
		e.metrics.RecordDropped(plan.DroppedMeshes)
	} else {
		e.metrics.RecordSkippedUpload()
	}

	return e.draw(dev, e.plan)
}

func (e *Engine[T]) draw(dev renderer.Device, plan *metadata.DrawPlan) error {
	if plan.IsEmpty() {
		return nil
	}
	if err := e.policy.Handle(e.systems.Geometry().Bind(dev)); err != nil {
		return err
	}

	draws := 0
	for _, cmd := range plan.Commands {
		clip := renderer.Rect{
			Left:   cmd.Clip.Left,
			Top:    cmd.Clip.Top,
			Right:  cmd.Clip.Right,
			Bottom: cmd.Clip.Bottom,
		}
		if err := e.policy.Handle(wrap(dev.SetScissorRect(clip), "unable to set scissor rect")); err != nil {
			return err
		}

		texture, err := e.systems.Textures().Get(cmd.TextureID)
		if err := e.policy.Handle(err); err != nil {
			return err
		}
		if texture == nil {
			continue
		}
		if err := e.policy.Handle(wrap(dev.SetTexture(0, texture), "unable to set texture")); err != nil {
			return err
		}

		err = dev.DrawIndexedPrimitive(renderer.PT_TRIANGLELIST, int32(cmd.VertexOffset), 0, cmd.VertexCount, cmd.IndexOffset, cmd.IndexCount/3)
		if err := e.policy.Handle(wrap(err, "unable to draw indexed primitives")); err != nil {
			return err
		}
		draws++
	}
	e.metrics.RecordDraw(draws)
	return nil
}

// WndProc feeds one window message to the input translator. The caller still
// forwards the message to the host's window procedure.
func (e *Engine[T]) WndProc(msg uint32, wParam, lParam uintptr) input.Result {
	if e.stage == StageUninitialized {
		return input.ResultUnknown
	}
	return e.input.Process(msg, wParam, lParam)
}

// PreReset releases every device resource. The host calls it before
// IDirect3DDevice9::Reset; resources come back on the next Present.
func (e *Engine[T]) PreReset() {
	if e.stage == StageUninitialized || e.stage == StagePendingReset {
		return
	}
	e.systems.ReleaseGPUResources()
	e.plan = nil
	e.stage = StagePendingReset
	core.LogInfo("overlay %s: device resources released for reset", e.id)
}

func (e *Engine[T]) recreate(dev renderer.Device) error {
	if err := e.systems.RecreateGPUResources(dev, e.policy); err != nil {
		return err
	}
	e.forceRepaint = true
	e.stage = StageReady
	core.LogInfo("overlay %s: device resources recreated", e.id)
	return nil
}

// Shutdown releases everything the engine owns. The engine is unusable
// afterwards; calling Shutdown again does nothing.
func (e *Engine[T]) Shutdown() {
	if e.stage == StageUninitialized {
		return
	}
	e.systems.Shutdown()
	e.plan = nil
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogWarn("%s", err)
		}
		e.watcher = nil
	}
	e.stage = StageUninitialized
	core.LogInfo("overlay %s shut down: %d frames", e.id, e.metrics.Frames)
	if e.logFile != nil {
		core.SetLogOutput(os.Stderr)
		e.logFile.Close()
		e.logFile = nil
	}
}

func (e *Engine[T]) ID() uuid.UUID {
	return e.id
}

func (e *Engine[T]) Stage() Stage {
	return e.stage
}

func (e *Engine[T]) Reactive() bool {
	return e.config.Reactive
}

func (e *Engine[T]) Metrics() *core.FrameMetrics {
	return e.metrics
}

func (e *Engine[T]) State() T {
	return e.state
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
