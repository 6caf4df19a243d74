//go:build !shipping

package procmesh

import "github.com/spaghettifunk/meshproxy/engine/renderer/metadata"

// DebugOverlaysCompiled reports whether debug overlays are part of the build.
const DebugOverlaysCompiled = true

func (p *SceneProxy) drawDebugOverlays(views []*metadata.SceneView, family *metadata.ViewFamily, visibilityMap uint32, collector MeshElementCollector) {
	if family == nil {
		return
	}
	for viewIndex := range views {
		if !isViewVisible(visibilityMap, viewIndex) {
			continue
		}
		pdi := collector.PDI(viewIndex)
		if pdi == nil {
			continue
		}

		if p.drawsCollision(family.ShowFlags) {
			colour := SelectionColour(CollisionColour, p.state.Selected, p.state.Hovered)
			p.bodySetup.DebugPrimitives(p.state.LocalToWorld, colour, viewIndex, pdi)
		}

		p.renderBounds(pdi, family.ShowFlags)
	}
}

// Simple collision only; complex-as-simple collision is the render mesh itself.
func (p *SceneProxy) drawsCollision(flags metadata.EngineShowFlags) bool {
	return flags.Collision && p.state.CollisionEnabled && p.bodySetup != nil &&
		p.bodySetup.TraceFlag() != metadata.COLLISION_TRACE_COMPLEX_AS_SIMPLE
}

// WantsDebugOverlays reports whether the proxy draws collision or bounds
// lines in view. Overlays are collected with the dynamic elements, so a
// primitive without dynamic relevance still needs its visibility bit set.
func (p *SceneProxy) WantsDebugOverlays(view *metadata.SceneView) bool {
	if view == nil || view.Family == nil {
		return false
	}
	flags := view.Family.ShowFlags
	return flags.Bounds || p.drawsCollision(flags)
}

func (p *SceneProxy) renderBounds(pdi metadata.PrimitiveDrawer, flags metadata.EngineShowFlags) {
	if !flags.Bounds {
		return
	}
	colour := SelectionColour(BoundsColour, p.state.Selected, false)
	metadata.DrawWireBox(pdi, p.Bounds(), colour, metadata.SDPG_FOREGROUND)
}
