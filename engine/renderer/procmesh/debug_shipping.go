//go:build shipping

package procmesh

import "github.com/spaghettifunk/meshproxy/engine/renderer/metadata"

const DebugOverlaysCompiled = false

func (p *SceneProxy) drawDebugOverlays(views []*metadata.SceneView, family *metadata.ViewFamily, visibilityMap uint32, collector MeshElementCollector) {
}

func (p *SceneProxy) WantsDebugOverlays(view *metadata.SceneView) bool {
	return false
}
