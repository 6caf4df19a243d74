package procmesh

import "github.com/spaghettifunk/meshproxy/engine/renderer/metadata"

// SectionRenderData is what the proxy keeps per section. Material is never nil.
type SectionRenderData struct {
	Material metadata.MaterialInterface
	// WantsAdjacencyInfo is false until CreateRenderThreadResources runs.
	WantsAdjacencyInfo bool
}

// resolveSectionMaterial falls back to the default surface material.
func resolveSectionMaterial(c Component, id SectionID) metadata.MaterialInterface {
	if mat := c.Material(int(id)); mat != nil {
		return mat
	}
	return metadata.DefaultSurfaceMaterial()
}
