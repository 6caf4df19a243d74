package metadata

import "github.com/spaghettifunk/meshproxy/engine/math"

/** @brief Draw distance used by static draws that never fade out. */
const UnboundedDrawDistance float32 = 3.402823466e+38

/**
 * @brief Per-primitive shader data shared by every batch of a primitive.
 */
type PrimitiveUniform struct {
	PrimitiveID  uint32
	LocalToWorld math.Mat4
	WorldBounds  math.Extents3D
	/** @brief Colour used by selection outlines. */
	SelectionColour math.Colour
}

/**
 * @brief A self-contained description of one draw submission.
 */
type MeshBatch struct {
	SectionID int
	Geometry  GeometryReference
	Material  *MaterialRenderProxy
	Wireframe bool
	/** @brief Set when the primitive transform mirrors geometry. */
	ReverseCulling bool
	/** @brief Lets debug view modes swap the material. */
	CanApplyViewModeOverrides bool
	PrimitiveUniform          *PrimitiveUniform
}

// CullMode resolves the face culling used to draw the batch.
func (b MeshBatch) CullMode() FaceCullMode {
	if b.Wireframe || b.Material.IsTwoSided() {
		return FaceCullModeNone
	}
	if b.ReverseCulling {
		return FaceCullModeBack.Reversed()
	}
	return FaceCullModeBack
}

/** @brief A static batch together with the distance it stays visible to. */
type StaticMeshBatch struct {
	PrimitiveID   uint32
	Batch         MeshBatch
	ScreenSizeMax float32
}
