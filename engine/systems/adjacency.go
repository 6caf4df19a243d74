package systems

import "github.com/spaghettifunk/meshproxy/engine/math"

type edgeKey struct {
	from, to math.Vec3
}

/**
 * @brief Expands a triangle list into a triangle list with adjacency.
 * Every triangle (a, b, c) becomes a, n(a,b), b, n(b,c), c, n(c,a) where
 * n(x,y) is the vertex opposite the edge x-y in the neighbouring triangle.
 * Edges are matched by position, so vertices split for normals or uvs still
 * connect. Border edges repeat the triangle's own opposite vertex.
 * @param vertices The vertex data the indices point into.
 * @param indices A triangle list. Trailing indices that do not form a triangle are ignored.
 * @return Six indices per triangle.
 */
func BuildAdjacencyIndices(vertices []math.Vertex3D, indices []uint32) []uint32 {
	triangleCount := len(indices) / 3
	opposite := make(map[edgeKey]uint32, triangleCount*3)

	for t := 0; t < triangleCount; t++ {
		tri := indices[t*3 : t*3+3]
		for e := 0; e < 3; e++ {
			key := edgeKey{vertices[tri[e]].Position, vertices[tri[(e+1)%3]].Position}
			// First triangle wins on non-manifold edges.
			if _, ok := opposite[key]; !ok {
				opposite[key] = tri[(e+2)%3]
			}
		}
	}

	out := make([]uint32, 0, triangleCount*6)
	for t := 0; t < triangleCount; t++ {
		tri := indices[t*3 : t*3+3]
		for e := 0; e < 3; e++ {
			from, to, own := tri[e], tri[(e+1)%3], tri[(e+2)%3]
			out = append(out, from)
			// The neighbour walks the shared edge the other way round.
			if n, ok := opposite[edgeKey{vertices[to].Position, vertices[from].Position}]; ok {
				out = append(out, n)
			} else {
				out = append(out, own)
			}
		}
	}
	return out
}
