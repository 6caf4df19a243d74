package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/renderer"
	"github.com/spaghettifunk/meshproxy/engine/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGame struct {
	*Game
	component *systems.RuntimeMeshComponent
	updates   int
	packets   []*renderer.RenderPacket
	shutdown  bool
}

func newRecordingGame(cfg *ApplicationConfig) *recordingGame {
	g := &recordingGame{Game: &Game{ApplicationConfig: cfg}}
	g.FnInitialize = func() error {
		mesh := systems.NewRuntimeMesh("cube")
		if _, err := mesh.CreateSection(systems.GenerateCubeSection(1, 1, 1, 1, 1)); err != nil {
			return err
		}
		g.component = systems.NewRuntimeMeshComponent("cube", mesh)
		_, err := g.SystemManager.RendererSystem.AddPrimitive(g.component)
		return err
	}
	g.FnUpdate = func(deltaTime float64) error {
		g.updates++
		return nil
	}
	g.FnRender = func(packet *renderer.RenderPacket, deltaTime float64) error {
		g.packets = append(g.packets, packet)
		return nil
	}
	g.FnShutdown = func() error {
		g.shutdown = true
		return nil
	}
	return g
}

func TestEngineRunsUntilFrameLimit(t *testing.T) {
	backend := renderer.NewRecordingBackend()
	g := newRecordingGame(&ApplicationConfig{Name: "test", FrameLimit: 3, Backend: backend})

	e, err := New(g.Game)
	require.NoError(t, err)
	assert.Equal(t, EngineStageBootComplete, e.Stage())
	assert.Same(t, e.systemManager, g.SystemManager)

	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())

	assert.Equal(t, uint64(3), e.FrameCount())
	assert.Equal(t, 3, g.updates)
	require.Len(t, g.packets, 3)
	assert.Equal(t, uint64(3), backend.FrameCount())
	for _, p := range g.packets {
		static, dynamic := p.BatchCounts()
		assert.Equal(t, 1, static)
		assert.Equal(t, 0, dynamic)
	}

	require.NoError(t, e.Shutdown())
	assert.True(t, g.shutdown)
	assert.Equal(t, EngineStageShuttingDown, e.Stage())
	require.NoError(t, e.Shutdown())
}

func TestEngineStopsOnQuitEvent(t *testing.T) {
	g := newRecordingGame(&ApplicationConfig{Name: "test"})
	g.FnUpdate = func(deltaTime float64) error {
		g.updates++
		if g.updates == 2 {
			core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
		}
		return nil
	}

	e, err := New(g.Game)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())
	t.Cleanup(func() { _ = e.Shutdown() })

	assert.Equal(t, uint64(2), e.FrameCount())
}

func TestEngineStageOrder(t *testing.T) {
	g := newRecordingGame(&ApplicationConfig{Name: "test", FrameLimit: 1})
	e, err := New(g.Game)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Shutdown() })

	assert.Error(t, e.Run())
	require.NoError(t, e.Initialize())
	assert.Error(t, e.Initialize())
}

func TestEngineLoadsSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[renderer]
feature_level = "sm4"

[show]
wireframe = true
`), 0o644))

	g := newRecordingGame(&ApplicationConfig{Name: "test", SettingsPath: path, LogLevel: "warn", FrameLimit: 1})
	e, err := New(g.Game)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Shutdown() })

	s := e.Settings().Get()
	assert.Equal(t, "sm4", s.Renderer.FeatureLevel)
	assert.True(t, s.Show.Wireframe)
	assert.Equal(t, "warn", s.LogLevel)
}

func TestNewEngineErrors(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Game{ApplicationConfig: &ApplicationConfig{SettingsPath: filepath.Join(t.TempDir(), "missing.toml")}})
	assert.Error(t, err)

	_, err = New(&Game{ApplicationConfig: &ApplicationConfig{LogLevel: "loud"}})
	assert.Error(t, err)
}
