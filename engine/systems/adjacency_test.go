package systems

import (
	"testing"

	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/stretchr/testify/assert"
)

func quadVertices() []math.Vertex3D {
	return []math.Vertex3D{
		{Position: math.NewVec3(0, 0, 0)},
		{Position: math.NewVec3(1, 0, 0)},
		{Position: math.NewVec3(1, 1, 0)},
		{Position: math.NewVec3(0, 1, 0)},
	}
}

func quadIndices() []uint32 {
	return []uint32{0, 1, 2, 0, 2, 3}
}

func TestBuildAdjacencyIndices(t *testing.T) {
	out := BuildAdjacencyIndices(quadVertices(), quadIndices())
	assert.Equal(t, []uint32{
		0, 2, 1, 0, 2, 3,
		0, 1, 2, 0, 3, 2,
	}, out)
}

func TestBuildAdjacencyMatchesSplitVertices(t *testing.T) {
	// The second triangle uses its own copies of the shared corners.
	vertices := append(quadVertices(),
		math.Vertex3D{Position: math.NewVec3(0, 0, 0)},
		math.Vertex3D{Position: math.NewVec3(1, 1, 0)},
	)
	indices := []uint32{0, 1, 2, 4, 5, 3}

	out := BuildAdjacencyIndices(vertices, indices)
	assert.Len(t, out, 12)
	assert.Equal(t, uint32(3), out[5], "edge 2-0 sees the second triangle")
	assert.Equal(t, uint32(1), out[7], "edge 4-5 sees the first triangle")
}

func TestBuildAdjacencyIgnoresTrailingIndices(t *testing.T) {
	out := BuildAdjacencyIndices(quadVertices(), []uint32{0, 1, 2, 3})
	assert.Equal(t, []uint32{0, 2, 1, 0, 2, 1}, out)
}
