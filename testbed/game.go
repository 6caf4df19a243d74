package testbed

import (
	"fmt"
	gomath "math"

	"github.com/spaghettifunk/meshproxy/engine"
	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
	"github.com/spaghettifunk/meshproxy/engine/renderer/procmesh"
	"github.com/spaghettifunk/meshproxy/engine/systems"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	frame   uint64
	elapsed float64

	// Static ground, cached once and redrawn from the static path.
	ground *systems.RuntimeMeshComponent
	// Movable cube, always drawn on the dynamic path.
	cube *systems.RuntimeMeshComponent
	// Water plane rebuilt every frame on the dynamic path.
	water        *systems.RuntimeMeshComponent
	waterSection procmesh.SectionID
	waterBase    []math.Vertex3D
	waterIndices []uint32
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	if config == nil {
		config = &engine.ApplicationConfig{}
	}
	if config.Name == "" {
		config.Name = "MeshProxy Testbed"
	}
	if len(config.Views) == 0 {
		config.Views = []systems.ViewConfig{
			{Name: "world"},
			{Name: "editor", EditorView: true},
		}
	}

	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnBoot = tg.Boot
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Boot() error {
	core.LogInfo("booting %s with %d view(s)...", g.ApplicationConfig.Name, len(g.ApplicationConfig.Views))
	return nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers ")
	}
	state := g.State.(*gameState)
	ms := g.SystemManager.MaterialSystem
	rs := g.SystemManager.RendererSystem

	if _, err := ms.Register(metadata.MaterialConfig{
		Name:          "testbed.water",
		DiffuseColour: math.NewVec4(0.1, 0.3, 0.8, 0.6),
		BlendMode:     metadata.BLEND_MODE_TRANSLUCENT,
		Distortion:    true,
	}); err != nil {
		return err
	}

	// ground
	groundMesh := systems.NewRuntimeMesh("testbed.ground")
	if _, err := groundMesh.CreateSection(systems.GeneratePlaneSection(100, 100, 1, 1, 10, 10)); err != nil {
		return err
	}
	state.ground = systems.NewRuntimeMeshComponent("testbed.ground", groundMesh)
	state.ground.Transform.SetPosition(math.NewVec3(0, -10, 0))
	if _, err := rs.AddPrimitive(state.ground); err != nil {
		return err
	}

	// cube
	cubeMesh := systems.NewRuntimeMesh("testbed.cube")
	if _, err := cubeMesh.CreateSection(systems.GenerateCubeSection(10, 10, 10, 1, 1)); err != nil {
		return err
	}
	state.cube = systems.NewRuntimeMeshComponent("testbed.cube", cubeMesh)
	state.cube.SetBodySetup(systems.NewBoxBodySetup(cubeMesh.Bounds()))
	state.cube.UpdateState(func(s *metadata.PrimitiveState) {
		s.Mobility = metadata.MOBILITY_MOVABLE
	})
	if _, err := rs.AddPrimitive(state.cube); err != nil {
		return err
	}

	// water
	waterMesh := systems.NewRuntimeMesh("testbed.water")
	plane := systems.GeneratePlaneSection(40, 40, 16, 16, 4, 4)
	plane.UpdateFrequency = systems.UPDATE_FREQUENCY_FREQUENT
	plane.CastShadow = false
	id, err := waterMesh.CreateSection(plane)
	if err != nil {
		return err
	}
	state.waterSection = id
	state.waterBase = plane.Vertices
	state.waterIndices = plane.Indices
	state.water = systems.NewRuntimeMeshComponent("testbed.water", waterMesh)
	water, _ := ms.Acquire("testbed.water")
	state.water.SetMaterial(0, water)
	state.water.Transform.SetPosition(math.NewVec3(0, -5, 0))
	if _, err := rs.AddPrimitive(state.water); err != nil {
		return err
	}
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.frame++
	state.elapsed += deltaTime

	// Perform a small rotation on the cube.
	rotation := math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), float32(0.5*deltaTime), false)
	state.cube.Transform.Rotate(rotation)
	if err := state.cube.SendTransform(); err != nil {
		return err
	}

	// Toggle the cube selection every couple of seconds.
	if state.frame%120 == 0 {
		selected := (state.frame/120)%2 == 1
		if err := state.cube.SetSelection(selected, false); err != nil {
			return err
		}
	}

	return state.water.Mesh().UpdateSection(state.waterSection, g.waveVertices(state), state.waterIndices)
}

func (g *TestGame) waveVertices(state *gameState) []math.Vertex3D {
	vertices := make([]math.Vertex3D, len(state.waterBase))
	copy(vertices, state.waterBase)
	for i := range vertices {
		p := vertices[i].Position
		vertices[i].Position.Y = float32(0.5 * gomath.Sin(state.elapsed*2+float64(p.X+p.Z)*0.3))
	}
	return vertices
}

func (g *TestGame) Render(packet *renderer.RenderPacket, deltaTime float64) error {
	if packet == nil || packet.FrameNumber%60 != 0 {
		return nil
	}
	static, dynamic := packet.BatchCounts()
	core.LogDebug("frame %d: %d static batch(es), %d dynamic batch(es), %d debug line(s)",
		packet.FrameNumber, static, dynamic, len(packet.Lines))
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogDebug("TestGame Shutdown fn....")
	state := g.State.(*gameState)
	for _, c := range []*systems.RuntimeMeshComponent{state.ground, state.cube, state.water} {
		if c == nil {
			continue
		}
		if err := g.SystemManager.RendererSystem.RemovePrimitive(c); err != nil {
			return err
		}
	}
	return nil
}
