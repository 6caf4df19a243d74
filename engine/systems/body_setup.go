package systems

import (
	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
)

/**
 * @brief Simple collision of a component: a set of boxes in local space.
 */
type BodySetup struct {
	Boxes              []math.Extents3D
	CollisionTraceFlag metadata.CollisionTraceFlag
}

// NewBoxBodySetup wraps a single box.
func NewBoxBodySetup(box math.Extents3D) *BodySetup {
	return &BodySetup{Boxes: []math.Extents3D{box}}
}

func (b *BodySetup) TraceFlag() metadata.CollisionTraceFlag {
	return b.CollisionTraceFlag
}

// DebugPrimitives draws every box as a wireframe.
func (b *BodySetup) DebugPrimitives(transform math.Mat4, colour math.Colour, viewIndex int, pdi metadata.PrimitiveDrawer) {
	for _, box := range b.Boxes {
		metadata.DrawTransformedWireBox(pdi, box, transform, colour, metadata.SDPG_WORLD)
	}
}
