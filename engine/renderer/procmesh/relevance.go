package procmesh

import "github.com/spaghettifunk/meshproxy/engine/renderer/metadata"

// MaterialRelevance returns the relevance folded over every section material.
func (p *SceneProxy) MaterialRelevance() metadata.MaterialRelevance {
	return p.materialRelevance
}

// ViewRelevance describes how the primitive participates in view. It only
// reads proxy state.
func (p *SceneProxy) ViewRelevance(view *metadata.SceneView) metadata.ViewRelevance {
	var family *metadata.ViewFamily
	if view != nil {
		family = view.Family
	}
	forceDynamic := p.drawPathConditions(family).ForceDynamic()

	result := metadata.ViewRelevance{
		DrawRelevance:    p.IsShown(view),
		ShadowRelevance:  p.IsShadowCast(view),
		StaticRelevance:  !forceDynamic && p.hasStaticSections,
		DynamicRelevance: forceDynamic || p.hasDynamicSections,

		RenderInMainPass:     p.state.RenderInMainPass,
		UsesLightingChannels: p.state.LightingChannels != metadata.DefaultLightingChannels,
		RenderCustomDepth:    p.state.RenderCustomDepth,
	}
	p.materialRelevance.SetPrimitiveViewRelevance(&result)
	return result
}
