package metadata

import "github.com/spaghettifunk/meshproxy/engine/math"

/**
 * @brief Immediate mode debug line drawing for a single view.
 */
type PrimitiveDrawer interface {
	DrawLine(start, end math.Vec3, colour math.Colour, depthPriority uint8)
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// DrawWireBox draws the twelve edges of box.
func DrawWireBox(pdi PrimitiveDrawer, box math.Extents3D, colour math.Colour, depthPriority uint8) {
	corners := box.Corners()
	for _, e := range boxEdges {
		pdi.DrawLine(corners[e[0]], corners[e[1]], colour, depthPriority)
	}
}

// DrawTransformedWireBox draws box after transforming its corners by transform.
func DrawTransformedWireBox(pdi PrimitiveDrawer, box math.Extents3D, transform math.Mat4, colour math.Colour, depthPriority uint8) {
	corners := box.Corners()
	for _, e := range boxEdges {
		pdi.DrawLine(corners[e[0]].Transform(transform), corners[e[1]].Transform(transform), colour, depthPriority)
	}
}

/** @brief How a body answers collision traces. */
type CollisionTraceFlag uint8

const (
	/** @brief Project default: simple shapes for simple queries, complex for complex queries. */
	COLLISION_TRACE_DEFAULT CollisionTraceFlag = iota
	COLLISION_TRACE_SIMPLE_AND_COMPLEX
	COLLISION_TRACE_SIMPLE_AS_COMPLEX
	/** @brief The render mesh is the collision; there are no simple shapes to draw. */
	COLLISION_TRACE_COMPLEX_AS_SIMPLE
)
