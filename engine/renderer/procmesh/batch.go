package procmesh

import (
	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
)

// createMeshBatch describes one draw of section. A non-nil wireframe
// material replaces material and turns adjacency off. Returns false when the
// section has no valid geometry; nothing must be submitted then.
func (p *SceneProxy) createMeshBatch(id SectionID, section SectionProxy, data *SectionRenderData, material, wireframe *metadata.MaterialRenderProxy) (metadata.MeshBatch, bool) {
	renderWireframe := wireframe != nil
	wantsAdjacency := !renderWireframe && data.WantsAdjacencyInfo

	geometry := section.BuildGeometryReference(wantsAdjacency)
	if !geometry.IsValid() {
		core.LogDebug("proxy %s: section %d has no valid geometry, skipping", p.state.Name, id)
		return metadata.MeshBatch{}, false
	}

	batch := metadata.MeshBatch{
		SectionID:                 int(id),
		Geometry:                  geometry,
		Material:                  material,
		Wireframe:                 renderWireframe,
		ReverseCulling:            p.state.LocalToWorld.IsDeterminantNegative(),
		CanApplyViewModeOverrides: true,
		PrimitiveUniform:          &p.uniform,
	}
	if renderWireframe {
		batch.Material = wireframe
	}
	return batch, true
}
