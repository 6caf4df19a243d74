package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
)

type MaterialSystemConfig struct {
	/** @brief The maximum number of materials that can be registered at once. */
	MaxMaterialCount uint32
}

// MaterialSystem owns every named material. The default surface and
// wireframe materials are always available and never count against the limit.
type MaterialSystem struct {
	Config *MaterialSystemConfig

	mu sync.RWMutex
	// Hashtable for material lookups.
	registeredMaterialTable map[string]*metadata.Material
	nextID                  uint32
}

func NewMaterialSystem(config *MaterialSystemConfig) (*MaterialSystem, error) {
	if config == nil || config.MaxMaterialCount == 0 {
		err := fmt.Errorf("func NewMaterialSystem - config.MaxMaterialCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &MaterialSystem{
		Config:                  config,
		registeredMaterialTable: make(map[string]*metadata.Material),
	}, nil
}

func (ms *MaterialSystem) Shutdown() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.registeredMaterialTable = make(map[string]*metadata.Material)
	return nil
}

// Register creates a material from config. Names are unique.
func (ms *MaterialSystem) Register(config metadata.MaterialConfig) (*metadata.Material, error) {
	if config.Name == metadata.DefaultMaterialName || config.Name == metadata.WireframeMaterialName {
		return nil, fmt.Errorf("material name %q is reserved", config.Name)
	}
	if config.Name == "" {
		return nil, fmt.Errorf("material name cannot be empty")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.registeredMaterialTable[config.Name]; ok {
		return nil, fmt.Errorf("material %q already registered", config.Name)
	}
	if uint32(len(ms.registeredMaterialTable)) >= ms.Config.MaxMaterialCount {
		return nil, fmt.Errorf("material system is full (max=%d)", ms.Config.MaxMaterialCount)
	}

	m := metadata.NewMaterial(config)
	ms.nextID++
	m.ID = ms.nextID
	m.Generation = 0
	ms.registeredMaterialTable[config.Name] = m
	core.LogDebug("material '%s' registered with id %d", m.Name, m.ID)
	return m, nil
}

// Acquire looks a material up by name. The default names resolve to the
// engine materials.
func (ms *MaterialSystem) Acquire(name string) (*metadata.Material, bool) {
	switch name {
	case metadata.DefaultMaterialName:
		return ms.GetDefault(), true
	case metadata.WireframeMaterialName:
		return ms.GetDefaultWireframe(), true
	}
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	m, ok := ms.registeredMaterialTable[name]
	return m, ok
}

// Release drops a registered material.
func (ms *MaterialSystem) Release(name string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.registeredMaterialTable, name)
}

func (ms *MaterialSystem) GetDefault() *metadata.Material {
	return metadata.DefaultSurfaceMaterial()
}

func (ms *MaterialSystem) GetDefaultWireframe() *metadata.Material {
	return metadata.DefaultWireframeMaterial()
}
