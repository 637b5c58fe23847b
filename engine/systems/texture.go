package systems

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/exp/slices"
	"golang.org/x/image/draw"

	"github.com/spaghettifunk/d3d9ui/engine/core"
	"github.com/spaghettifunk/d3d9ui/engine/renderer"
	"github.com/spaghettifunk/d3d9ui/engine/ui"
)

// ErrTextureLost is returned by Get for a known texture whose device handle
// is gone, either after a device reset or after a tolerated upload failure.
var ErrTextureLost = errors.New("texture has no device handle")

type textureEntry struct {
	// texture is nil while the device is being reset.
	texture renderer.Texture
	// pixels is the last content set by the toolkit, premultiplied RGBA.
	pixels *image.RGBA
}

func (e *textureEntry) width() uint32  { return uint32(e.pixels.Rect.Dx()) }
func (e *textureEntry) height() uint32 { return uint32(e.pixels.Rect.Dy()) }

// TextureSystem keeps one device texture per toolkit texture id, plus a CPU
// copy of its pixels so the texture survives device resets.
type TextureSystem struct {
	device   renderer.Device
	policy   core.ErrorPolicy
	entries  map[ui.TextureID]*textureEntry
	uploaded uint64
}

func NewTextureSystem(dev renderer.Device, policy core.ErrorPolicy) *TextureSystem {
	return &TextureSystem{
		device:  dev,
		policy:  policy,
		entries: make(map[ui.TextureID]*textureEntry),
	}
}

// ApplySetDeltas creates or updates textures. Deltas are applied in order;
// a later delta for the same id sees the result of an earlier one.
func (ts *TextureSystem) ApplySetDeltas(deltas []ui.TextureSet) error {
	for _, set := range deltas {
		if err := ts.applySet(set.ID, set.Delta); err != nil {
			return err
		}
	}
	return nil
}

func (ts *TextureSystem) applySet(id ui.TextureID, delta ui.ImageDelta) error {
	img := toRGBA(delta.Image)
	entry, known := ts.entries[id]

	if !delta.IsWhole() {
		if !known {
			err := fmt.Errorf("%w: partial update of %s", core.ErrTextureNotResident, id)
			core.LogError("%s", err)
			return ts.policy.Handle(err)
		}
		return ts.patch(id, entry, img, delta.Pos[0], delta.Pos[1])
	}

	if !known {
		entry = &textureEntry{pixels: img}
		ts.entries[id] = entry
		return ts.policy.Handle(ts.create(entry))
	}

	sameSize := entry.pixels.Rect.Size() == img.Rect.Size()
	entry.pixels = img
	if !sameSize || entry.texture == nil {
		if entry.texture != nil {
			entry.texture.Release()
			entry.texture = nil
		}
		return ts.policy.Handle(ts.create(entry))
	}

	// same size: refresh the existing handle in place
	staging, err := ts.staging(img)
	if err := ts.policy.Handle(err); err != nil || staging == nil {
		return err
	}
	defer staging.Release()

	full := renderer.Rect{Right: int32(entry.width()), Bottom: int32(entry.height())}
	if err := ts.policy.Handle(wrap(staging.AddDirtyRect(&full), "unable to mark texture %s dirty", id)); err != nil {
		return err
	}
	if err := ts.policy.Handle(wrap(ts.device.UpdateTexture(staging, entry.texture), "unable to update texture %s", id)); err != nil {
		return err
	}
	ts.uploaded++
	return nil
}

// patch copies img into the texture at (x, y), on the device and in the
// retained pixels.
func (ts *TextureSystem) patch(id ui.TextureID, entry *textureEntry, img *image.RGBA, x, y int) error {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if x < 0 || y < 0 || x+w > entry.pixels.Rect.Dx() || y+h > entry.pixels.Rect.Dy() {
		err := fmt.Errorf("%w: patch %dx%d at (%d, %d) exceeds texture %s of %dx%d",
			core.ErrContractViolation, w, h, x, y, id, entry.width(), entry.height())
		core.LogError("%s", err)
		return ts.policy.Handle(err)
	}
	draw.Copy(entry.pixels, image.Pt(x, y), img, img.Rect, draw.Src, nil)

	if entry.texture == nil {
		// picked up by the next recreate
		return nil
	}

	staging, err := ts.staging(img)
	if err := ts.policy.Handle(err); err != nil || staging == nil {
		return err
	}
	defer staging.Release()

	src := renderer.Rect{Right: int32(w), Bottom: int32(h)}
	dst := renderer.Point{X: int32(x), Y: int32(y)}
	if err := ts.policy.Handle(wrap(ts.device.UpdateSurface(staging, &src, entry.texture, &dst), "unable to patch texture %s", id)); err != nil {
		return err
	}
	ts.uploaded++
	return nil
}

// create allocates a default-pool texture for entry and fills it from its
// retained pixels through a system-memory staging texture.
func (ts *TextureSystem) create(entry *textureEntry) error {
	staging, err := ts.staging(entry.pixels)
	if err != nil {
		return err
	}
	defer staging.Release()

	texture, err := ts.device.CreateTexture(entry.width(), entry.height(), 1, 0, renderer.FMT_A8R8G8B8, renderer.POOL_DEFAULT)
	if err != nil {
		return fmt.Errorf("unable to create texture: %w", err)
	}
	if err := ts.device.UpdateTexture(staging, texture); err != nil {
		texture.Release()
		return fmt.Errorf("unable to upload texture: %w", err)
	}
	entry.texture = texture
	ts.uploaded++
	return nil
}

func (ts *TextureSystem) staging(img *image.RGBA) (renderer.Texture, error) {
	w, h := uint32(img.Rect.Dx()), uint32(img.Rect.Dy())
	staging, err := ts.device.CreateTexture(w, h, 1, renderer.USAGE_DYNAMIC, renderer.FMT_A8R8G8B8, renderer.POOL_SYSTEMMEM)
	if err != nil {
		return nil, fmt.Errorf("unable to create staging texture: %w", err)
	}
	if err := writeBGRA(staging, img); err != nil {
		staging.Release()
		return nil, err
	}
	return staging, nil
}

func writeBGRA(t renderer.Texture, img *image.RGBA) (err error) {
	locked, err := t.LockRect(0, renderer.LOCK_NONE)
	if err != nil {
		return fmt.Errorf("unable to lock texture: %w", err)
	}
	defer func() {
		if uerr := t.UnlockRect(0); uerr != nil && err == nil {
			err = fmt.Errorf("unable to unlock texture: %w", uerr)
		}
	}()

	w, h := img.Rect.Dx(), img.Rect.Dy()
	if locked.Pitch < w*4 || len(locked.Bits) < (h-1)*locked.Pitch+w*4 {
		return fmt.Errorf("%w: %dx%d image, pitch %d, %d bytes mapped", core.ErrBufferOverflow, w, h, locked.Pitch, len(locked.Bits))
	}
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		dst := locked.Bits[y*locked.Pitch : y*locked.Pitch+w*4]
		for x := 0; x < w*4; x += 4 {
			dst[x+0] = src[x+2]
			dst[x+1] = src[x+1]
			dst[x+2] = src[x+0]
			dst[x+3] = src[x+3]
		}
	}
	return nil
}

// toRGBA normalises either image kind into premultiplied RGBA.
func toRGBA(data ui.ImageData) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, data.Width(), data.Height()))
	for i, c := range data.SRGBAPixels() {
		copy(img.Pix[i*4:i*4+4], c[:])
	}
	return img
}

// ApplyFreeDeltas destroys the given textures. Unknown ids are ignored.
func (ts *TextureSystem) ApplyFreeDeltas(ids []ui.TextureID) {
	for _, id := range ids {
		entry, ok := ts.entries[id]
		if !ok {
			core.LogDebug("free of unknown texture %s", id)
			continue
		}
		if entry.texture != nil {
			entry.texture.Release()
		}
		delete(ts.entries, id)
	}
}

// Get returns the device texture for id.
func (ts *TextureSystem) Get(id ui.TextureID) (renderer.Texture, error) {
	entry, ok := ts.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrTextureNotResident, id)
	}
	if entry.texture == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrTextureLost)
	}
	return entry.texture, nil
}

// Pixels returns a copy of the retained pixels of id.
func (ts *TextureSystem) Pixels(id ui.TextureID) (*image.RGBA, bool) {
	entry, ok := ts.entries[id]
	if !ok {
		return nil, false
	}
	out := image.NewRGBA(entry.pixels.Rect)
	copy(out.Pix, entry.pixels.Pix)
	return out, true
}

func (ts *TextureSystem) Len() int {
	return len(ts.entries)
}

// Uploads returns how many device uploads have been issued.
func (ts *TextureSystem) Uploads() uint64 {
	return ts.uploaded
}

// ReleaseGPUResources drops every device handle but keeps the pixels.
func (ts *TextureSystem) ReleaseGPUResources() {
	for _, entry := range ts.entries {
		if entry.texture != nil {
			entry.texture.Release()
			entry.texture = nil
		}
	}
}

// RecreateGPUResources uploads every retained texture to dev.
func (ts *TextureSystem) RecreateGPUResources(dev renderer.Device) error {
	ts.device = dev

	ids := make([]ui.TextureID, 0, len(ts.entries))
	for id := range ts.entries {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b ui.TextureID) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})

	for _, id := range ids {
		entry := ts.entries[id]
		if entry.texture != nil {
			continue
		}
		if err := ts.policy.Handle(wrap(ts.create(entry), "unable to recreate texture %s", id)); err != nil {
			return err
		}
	}
	core.LogDebug("recreated %d textures", len(ids))
	return nil
}

// Shutdown releases every texture and forgets all entries.
func (ts *TextureSystem) Shutdown() {
	ts.ReleaseGPUResources()
	clear(ts.entries)
}

func wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
