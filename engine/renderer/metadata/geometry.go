package metadata

/** @brief Describes how a section's vertex data is laid out for the GPU. */
type VertexLayoutKind uint8

const (
	/** @brief Position, normal, tangent, uv and colour interleaved. */
	VERTEX_LAYOUT_LOCAL VertexLayoutKind = iota
	/** @brief Positions in their own stream, attributes in a second one. */
	VERTEX_LAYOUT_DUAL_BUFFER
	/** @brief Positions only, no shading attributes. */
	VERTEX_LAYOUT_POSITION_ONLY
)

// SupportsTessellation reports whether the layout carries what a tessellating shader reads.
func (k VertexLayoutKind) SupportsTessellation() bool {
	return k == VERTEX_LAYOUT_LOCAL || k == VERTEX_LAYOUT_DUAL_BUFFER
}

/** @brief How indices are interpreted when drawing. */
type PrimitiveTopology uint8

const (
	PRIMITIVE_TOPOLOGY_TRIANGLE_LIST PrimitiveTopology = iota
	/** @brief Six indices per triangle: each corner followed by the vertex opposite the next edge. */
	PRIMITIVE_TOPOLOGY_TRIANGLE_LIST_ADJACENCY
)

/**
 * @brief A reference to section geometry ready to be drawn. Slices are
 * shared with the mesh data store and must be treated as read-only.
 */
type GeometryReference struct {
	/** @brief The section the geometry belongs to. */
	SectionID int
	Layout    VertexLayoutKind
	Topology  PrimitiveTopology
	/** @brief The section data generation the reference was built from. */
	Generation  uint32
	VertexCount uint32
	IndexCount  uint32
	Indices     []uint32
}

// IsValid reports whether the reference describes drawable geometry.
func (g GeometryReference) IsValid() bool {
	if g.VertexCount == 0 || g.IndexCount == 0 || uint32(len(g.Indices)) < g.IndexCount {
		return false
	}
	switch g.Topology {
	case PRIMITIVE_TOPOLOGY_TRIANGLE_LIST:
		return g.IndexCount%3 == 0
	case PRIMITIVE_TOPOLOGY_TRIANGLE_LIST_ADJACENCY:
		return g.IndexCount%6 == 0
	}
	return false
}

// UsesAdjacency reports whether the reference carries adjacency indices.
func (g GeometryReference) UsesAdjacency() bool {
	return g.Topology == PRIMITIVE_TOPOLOGY_TRIANGLE_LIST_ADJACENCY
}
