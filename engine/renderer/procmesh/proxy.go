package procmesh

import (
	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
)

type proxyOptions struct {
	forceDynamicPath bool
}

// ProxyOption tweaks how a SceneProxy is created.
type ProxyOption func(*proxyOptions)

// WithForceDynamicPath disables the static draw path for the proxy.
func WithForceDynamicPath(force bool) ProxyOption {
	return func(o *proxyOptions) {
		o.forceDynamicPath = force
	}
}

// SceneProxy is the render side representation of a runtime mesh component.
type SceneProxy struct {
	primitiveID  uint32
	state        metadata.PrimitiveState
	featureLevel metadata.FeatureLevel
	bodySetup    CollisionDescriptor
	mesh         MeshSnapshot

	sectionRenderData map[SectionID]*SectionRenderData
	materialRelevance metadata.MaterialRelevance

	hasStaticSections     bool
	hasDynamicSections    bool
	hasShadowableSections bool
	resourcesCreated      bool

	forceDynamicPath bool
	uniform          metadata.PrimitiveUniform
}

// NewSceneProxy builds a proxy from the component state and the mesh
// snapshot. It must run on the game goroutine, before the proxy is handed to
// the renderer.
func NewSceneProxy(c Component, mesh MeshSnapshot, opts ...ProxyOption) (*SceneProxy, error) {
	if c == nil {
		return nil, core.ErrNilComponent
	}
	if mesh == nil {
		return nil, core.ErrNilMeshSnapshot
	}

	o := &proxyOptions{}
	for _, opt := range opts {
		opt(o)
	}

	p := &SceneProxy{
		state:             c.PrimitiveState(),
		featureLevel:      c.FeatureLevel(),
		bodySetup:         c.BodySetup(),
		mesh:              mesh,
		sectionRenderData: make(map[SectionID]*SectionRenderData),
		forceDynamicPath:  o.forceDynamicPath,
	}

	for _, id := range mesh.SectionIDs() {
		mat := resolveSectionMaterial(c, id)
		p.sectionRenderData[id] = &SectionRenderData{Material: mat}
		p.materialRelevance |= mat.Relevance(p.featureLevel)
	}

	p.primitiveID = core.IdentifierAquireNewID(p)
	p.updateUniform()
	return p, nil
}

// Release gives the primitive id back. The proxy must not be used afterwards.
func (p *SceneProxy) Release() error {
	return core.IdentifierReleaseID(p.primitiveID)
}

// CreateRenderThreadResources computes the per-section data that depends on
// the render side mesh. Runs once, before the first draw; running it again
// yields the same result.
func (p *SceneProxy) CreateRenderThreadResources() {
	p.hasStaticSections, p.hasDynamicSections, p.hasShadowableSections = p.mesh.CalculateViewRelevance()

	sections := p.mesh.Sections()
	for id, data := range p.sectionRenderData {
		section, ok := sections[id]
		if !ok || section == nil {
			data.WantsAdjacencyInfo = false
			continue
		}
		data.WantsAdjacencyInfo = data.Material.RequiresAdjacency(section.LayoutKind(), p.featureLevel)
	}
	p.resourcesCreated = true
}

// SetSelection updates the selection state. Render goroutine only.
func (p *SceneProxy) SetSelection(selected, hovered bool) {
	p.state.Selected = selected
	p.state.Hovered = hovered
	p.updateUniform()
}

// SetTransform updates the transform and local bounds. Render goroutine only.
func (p *SceneProxy) SetTransform(localToWorld math.Mat4, localBounds math.Extents3D) {
	p.state.LocalToWorld = localToWorld
	p.state.LocalBounds = localBounds
	p.updateUniform()
}

func (p *SceneProxy) updateUniform() {
	p.uniform = metadata.PrimitiveUniform{
		PrimitiveID:     p.primitiveID,
		LocalToWorld:    p.state.LocalToWorld,
		WorldBounds:     p.Bounds(),
		SelectionColour: SelectionColour(BoundsColour, p.state.Selected, p.state.Hovered),
	}
}

func (p *SceneProxy) PrimitiveID() uint32 {
	return p.primitiveID
}

func (p *SceneProxy) Name() string {
	return p.state.Name
}

// Bounds returns the world space bounds of the primitive.
func (p *SceneProxy) Bounds() math.Extents3D {
	return p.state.LocalBounds.TransformBy(p.state.LocalToWorld)
}

func (p *SceneProxy) IsSelected() bool {
	return p.state.Selected
}

// IsStaticPathAvailable reports whether cached static draws can be used at all.
func (p *SceneProxy) IsStaticPathAvailable() bool {
	return !p.forceDynamicPath && p.state.Mobility != metadata.MOBILITY_MOVABLE
}

func (p *SceneProxy) IsShown(view *metadata.SceneView) bool {
	return p.state.Visible && !view.IsPrimitiveHidden(p.primitiveID)
}

func (p *SceneProxy) IsShadowCast(view *metadata.SceneView) bool {
	if !p.state.CastShadow {
		return false
	}
	return p.state.Visible || p.state.CastHiddenShadow
}

// ResourcesCreated reports whether CreateRenderThreadResources has run.
func (p *SceneProxy) ResourcesCreated() bool {
	return p.resourcesCreated
}

// SectionCount returns the number of sections captured at construction.
func (p *SceneProxy) SectionCount() int {
	return len(p.sectionRenderData)
}

// SectionRenderData returns a copy of the entry for id.
func (p *SceneProxy) SectionRenderData(id SectionID) (SectionRenderData, bool) {
	data, ok := p.sectionRenderData[id]
	if !ok {
		return SectionRenderData{}, false
	}
	return *data, true
}

// ViewRelevanceFlags returns the mesh wide flags computed by CreateRenderThreadResources.
func (p *SceneProxy) ViewRelevanceFlags() (hasStatic, hasDynamic, hasShadowable bool) {
	return p.hasStaticSections, p.hasDynamicSections, p.hasShadowableSections
}

// DrawStaticElements submits every renderable, static-eligible section
// through the cached path. Other sections are skipped.
func (p *SceneProxy) DrawStaticElements(sink StaticDrawSink) {
	sections := p.mesh.Sections()
	for _, id := range p.mesh.SectionIDs() {
		section := sections[id]
		if section == nil || !section.ShouldRender() || !section.WantsToRenderInStaticPath() {
			continue
		}
		data, ok := p.sectionRenderData[id]
		if !ok {
			core.LogDebug("proxy %s: section %d was added after the proxy was created, skipping", p.state.Name, id)
			continue
		}
		batch, ok := p.createMeshBatch(id, section, data, data.Material.RenderProxy(false), nil)
		if !ok {
			continue
		}
		sink.DrawMesh(batch, metadata.UnboundedDrawDistance)
	}
}

// GetDynamicMeshElements collects the per-frame batches of every section
// that takes the dynamic path in a view whose bit is set in visibilityMap.
func (p *SceneProxy) GetDynamicMeshElements(views []*metadata.SceneView, family *metadata.ViewFamily, visibilityMap uint32, collector MeshElementCollector) {
	var wireframeMaterial *metadata.MaterialRenderProxy
	if family != nil && family.AllowDebugViewModes && family.ShowFlags.Wireframe {
		wireframeMaterial = metadata.NewColouredMaterialRenderProxy(
			metadata.DefaultWireframeMaterial().RenderProxy(p.state.Selected),
			WireframeColour,
		)
		collector.RegisterOneFrameMaterialProxy(wireframeMaterial)
	}

	sections := p.mesh.Sections()
	for _, id := range p.mesh.SectionIDs() {
		section := sections[id]
		if section == nil || !section.ShouldRender() {
			continue
		}
		data, ok := p.sectionRenderData[id]
		if !ok {
			continue
		}

		for viewIndex, view := range views {
			if !isViewVisible(visibilityMap, viewIndex) {
				continue
			}
			conditions := p.drawPathConditions(viewFamily(view, family))
			if SelectDrawPath(conditions, section.WantsToRenderInStaticPath()) != DRAW_PATH_DYNAMIC {
				continue
			}
			material := data.Material.RenderProxy(p.state.Selected)
			batch, ok := p.createMeshBatch(id, section, data, material, wireframeMaterial)
			if !ok {
				continue
			}
			collector.AddMesh(viewIndex, batch)
		}
	}

	p.drawDebugOverlays(views, family, visibilityMap, collector)
}

func isViewVisible(visibilityMap uint32, viewIndex int) bool {
	return viewIndex < 32 && visibilityMap&(1<<uint(viewIndex)) != 0
}

// viewFamily prefers the family attached to the view.
func viewFamily(view *metadata.SceneView, fallback *metadata.ViewFamily) *metadata.ViewFamily {
	if view != nil && view.Family != nil {
		return view.Family
	}
	return fallback
}
