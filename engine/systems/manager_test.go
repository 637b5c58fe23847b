package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/d3d9ui/engine/core"
	"github.com/spaghettifunk/d3d9ui/engine/renderer/fake"
	"github.com/spaghettifunk/d3d9ui/engine/ui"
)

func TestSystemManagerResetCycle(t *testing.T) {
	dev := fake.NewDevice()
	sm, err := NewSystemManager(testGeometryConfig(), dev, core.PropagatePolicy{})
	require.NoError(t, err)

	id := ui.ManagedTexture(0)
	require.NoError(t, sm.Textures().ApplySetDeltas([]ui.TextureSet{whole(id, solid(2, 2, ui.RGBA(1, 2, 3, 255)))}))

	sm.ReleaseGPUResources()
	assert.Empty(t, dev.LiveTextures())
	assert.ErrorIs(t, sm.Geometry().Bind(dev), core.ErrNotInitialized)

	require.NoError(t, sm.RecreateGPUResources(dev, core.PropagatePolicy{}))
	assert.Len(t, dev.LiveTextures(), 1)
	assert.NoError(t, sm.Geometry().Bind(dev))

	sm.Shutdown()
	assert.Empty(t, dev.LiveTextures())
	assert.Zero(t, sm.Textures().Len())
}

func TestSystemManagerRejectsZeroCapacity(t *testing.T) {
	_, err := NewSystemManager(&GeometrySystemConfig{}, fake.NewDevice(), core.PropagatePolicy{})
	assert.Error(t, err)
}
