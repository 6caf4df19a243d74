package systems

import (
	"sync"

	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
	"github.com/spaghettifunk/meshproxy/engine/renderer/procmesh"
)

/**
 * @brief The scene node owning a runtime mesh. Lives on the game goroutine;
 * the renderer only ever sees the proxies it creates.
 */
type RuntimeMeshComponent struct {
	mu sync.RWMutex

	mesh         *RuntimeMesh
	Transform    *math.Transform
	materials    map[int]metadata.MaterialInterface
	state        metadata.PrimitiveState
	bodySetup    *BodySetup
	featureLevel metadata.FeatureLevel

	scene       *RendererSystem
	primitiveID uint32
	registered  bool
}

func NewRuntimeMeshComponent(name string, mesh *RuntimeMesh) *RuntimeMeshComponent {
	c := &RuntimeMeshComponent{
		mesh:         mesh,
		Transform:    math.TransformCreate(),
		materials:    make(map[int]metadata.MaterialInterface),
		state:        metadata.DefaultPrimitiveState(name),
		featureLevel: metadata.FEATURE_LEVEL_SM5,
	}
	mesh.setRenderStateDirtyHook(c.markRenderStateDirty)
	return c
}

func (c *RuntimeMeshComponent) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Name
}

func (c *RuntimeMeshComponent) Mesh() *RuntimeMesh {
	return c.mesh
}

// SetMaterial assigns m to a section index. A nil material clears the slot.
func (c *RuntimeMeshComponent) SetMaterial(sectionIndex int, m metadata.MaterialInterface) {
	c.mu.Lock()
	if m == nil {
		delete(c.materials, sectionIndex)
	} else {
		c.materials[sectionIndex] = m
	}
	c.mu.Unlock()
	c.markRenderStateDirty()
}

func (c *RuntimeMeshComponent) Material(sectionIndex int) metadata.MaterialInterface {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.materials[sectionIndex]
}

func (c *RuntimeMeshComponent) SetBodySetup(b *BodySetup) {
	c.mu.Lock()
	c.bodySetup = b
	c.mu.Unlock()
	c.markRenderStateDirty()
}

func (c *RuntimeMeshComponent) BodySetup() procmesh.CollisionDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	// Avoid handing out a typed nil.
	if c.bodySetup == nil {
		return nil
	}
	return c.bodySetup
}

func (c *RuntimeMeshComponent) FeatureLevel() metadata.FeatureLevel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.featureLevel
}

func (c *RuntimeMeshComponent) setFeatureLevel(level metadata.FeatureLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.featureLevel = level
}

// PrimitiveState snapshots the node flags together with the current world
// transform and mesh bounds.
func (c *RuntimeMeshComponent) PrimitiveState() metadata.PrimitiveState {
	c.mu.RLock()
	state := c.state
	c.mu.RUnlock()
	state.LocalToWorld = c.Transform.GetWorld()
	state.LocalBounds = c.mesh.Bounds()
	return state
}

// UpdateState changes node flags such as mobility or visibility. The proxy
// is rebuilt when the component is registered.
func (c *RuntimeMeshComponent) UpdateState(fn func(state *metadata.PrimitiveState)) {
	c.mu.Lock()
	fn(&c.state)
	c.mu.Unlock()
	c.markRenderStateDirty()
}

// SetSelection forwards the editor selection to the render side proxy.
func (c *RuntimeMeshComponent) SetSelection(selected, hovered bool) error {
	c.mu.Lock()
	c.state.Selected = selected
	c.state.Hovered = hovered
	scene, id, registered := c.scene, c.primitiveID, c.registered
	c.mu.Unlock()

	if !registered {
		return nil
	}
	return scene.UpdateSelection(id, selected, hovered)
}

// SendTransform pushes the current transform to the render side proxy.
func (c *RuntimeMeshComponent) SendTransform() error {
	c.mu.RLock()
	scene, id, registered := c.scene, c.primitiveID, c.registered
	c.mu.RUnlock()

	if !registered {
		return nil
	}
	return scene.UpdateTransform(id, c.Transform.GetWorld(), c.mesh.Bounds())
}

// PrimitiveID returns the id of the current proxy, if registered.
func (c *RuntimeMeshComponent) PrimitiveID() (uint32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.primitiveID, c.registered
}

// CreateSceneProxy builds a proxy from the current component and mesh state.
func (c *RuntimeMeshComponent) CreateSceneProxy(opts ...procmesh.ProxyOption) (*procmesh.SceneProxy, error) {
	return procmesh.NewSceneProxy(c, c.mesh.RenderData(), opts...)
}

func (c *RuntimeMeshComponent) bind(scene *RendererSystem, primitiveID uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene = scene
	c.primitiveID = primitiveID
	c.registered = true
}

func (c *RuntimeMeshComponent) unbind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene = nil
	c.registered = false
}

func (c *RuntimeMeshComponent) markRenderStateDirty() {
	c.mu.RLock()
	scene, registered := c.scene, c.registered
	c.mu.RUnlock()

	if !registered {
		return
	}
	if err := scene.RecreatePrimitive(c); err != nil {
		core.LogError("component %s: recreating proxy failed: %s", c.Name(), err)
	}
}
