package procmesh

import (
	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
)

// SectionID identifies one independently toggleable mesh section. It doubles
// as the material slot index of the owning component.
type SectionID int

// SectionProxy is the render side handle of one mesh section.
type SectionProxy interface {
	ShouldRender() bool
	WantsToRenderInStaticPath() bool
	LayoutKind() metadata.VertexLayoutKind
	// BuildGeometryReference returns the section geometry, expanded with
	// adjacency indices when wantsAdjacency is set. An invalid reference
	// means the section cannot be drawn right now.
	BuildGeometryReference(wantsAdjacency bool) metadata.GeometryReference
}

// MeshSnapshot is the render side view of the runtime mesh, shared by every
// proxy created from it.
type MeshSnapshot interface {
	// SectionIDs returns the current section ids in ascending order.
	SectionIDs() []SectionID
	Sections() map[SectionID]SectionProxy
	CalculateViewRelevance() (hasStatic, hasDynamic, hasShadowable bool)
}

// CollisionDescriptor exposes the simple collision of a component for debug drawing.
type CollisionDescriptor interface {
	TraceFlag() metadata.CollisionTraceFlag
	DebugPrimitives(transform math.Mat4, colour math.Colour, viewIndex int, pdi metadata.PrimitiveDrawer)
}

// Component is the game side scene node a proxy is created from. It is only
// read while the proxy is being constructed.
type Component interface {
	// Material returns the material assigned to the section index, or nil.
	Material(sectionIndex int) metadata.MaterialInterface
	PrimitiveState() metadata.PrimitiveState
	// BodySetup returns the collision descriptor, or nil when there is none.
	BodySetup() CollisionDescriptor
	FeatureLevel() metadata.FeatureLevel
}

// StaticDrawSink receives batches from DrawStaticElements.
type StaticDrawSink interface {
	DrawMesh(batch metadata.MeshBatch, screenSizeMax float32)
}

// MeshElementCollector receives the per-frame output of GetDynamicMeshElements.
type MeshElementCollector interface {
	AddMesh(viewIndex int, batch metadata.MeshBatch)
	// RegisterOneFrameMaterialProxy keeps a transient proxy alive until the frame ends.
	RegisterOneFrameMaterialProxy(proxy *metadata.MaterialRenderProxy)
	PDI(viewIndex int) metadata.PrimitiveDrawer
}
