package systems

import (
	"github.com/spaghettifunk/meshproxy/engine/config"
	"github.com/spaghettifunk/meshproxy/engine/renderer"
)

type SystemManagerConfig struct {
	Settings         *config.Store
	Backend          renderer.RendererBackend
	Views            []ViewConfig
	MaxMaterialCount uint32
	RenderQueueSize  int
}

type SystemManager struct {
	MaterialSystem *MaterialSystem
	RendererSystem *RendererSystem
}

func NewSystemManager(cfg *SystemManagerConfig) (*SystemManager, error) {
	maxMaterials := cfg.MaxMaterialCount
	if maxMaterials == 0 {
		maxMaterials = 1000
	}
	ms, err := NewMaterialSystem(&MaterialSystemConfig{
		MaxMaterialCount: maxMaterials,
	})
	if err != nil {
		return nil, err
	}
	rs, err := NewRendererSystem(&RendererSystemConfig{
		Settings:  cfg.Settings,
		Backend:   cfg.Backend,
		Views:     cfg.Views,
		QueueSize: cfg.RenderQueueSize,
	})
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		MaterialSystem: ms,
		RendererSystem: rs,
	}, nil
}

func (sm *SystemManager) Initialize() error {
	return sm.RendererSystem.Initialize()
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.RendererSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MaterialSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
