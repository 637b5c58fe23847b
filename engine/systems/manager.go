package systems

import (
	"github.com/spaghettifunk/d3d9ui/engine/core"
	"github.com/spaghettifunk/d3d9ui/engine/renderer"
)

// SystemManager owns every system holding device resources, so a device
// reset or shutdown can be handled in one place.
type SystemManager struct {
	geometrySystem *GeometrySystem
	textureSystem  *TextureSystem
}

func NewSystemManager(config *GeometrySystemConfig, dev renderer.Device, policy core.ErrorPolicy) (*SystemManager, error) {
	gs, err := NewGeometrySystem(config, dev)
	if err != nil {
		return nil, err
	}
	ts := NewTextureSystem(dev, policy)
	return &SystemManager{
		geometrySystem: gs,
		textureSystem:  ts,
	}, nil
}

func (sm *SystemManager) Geometry() *GeometrySystem {
	return sm.geometrySystem
}

func (sm *SystemManager) Textures() *TextureSystem {
	return sm.textureSystem
}

// ReleaseGPUResources drops every device object. Retained texture pixels and
// buffer capacities survive.
func (sm *SystemManager) ReleaseGPUResources() {
	sm.textureSystem.ReleaseGPUResources()
	sm.geometrySystem.ReleaseGPUResources()
}

// RecreateGPUResources rebuilds what ReleaseGPUResources dropped on dev.
// Geometry errors go through policy; texture errors already did.
func (sm *SystemManager) RecreateGPUResources(dev renderer.Device, policy core.ErrorPolicy) error {
	if err := policy.Handle(sm.geometrySystem.RecreateGPUResources(dev)); err != nil {
		return err
	}
	return sm.textureSystem.RecreateGPUResources(dev)
}

func (sm *SystemManager) Shutdown() {
	sm.textureSystem.Shutdown()
	sm.geometrySystem.Shutdown()
}
