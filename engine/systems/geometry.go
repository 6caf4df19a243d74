package systems

import (
	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/math"
)

func nonZero(name string, v float32) float32 {
	if v == 0 {
		core.LogWarn("%s must be nonzero. Defaulting to one.", name)
		return 1.0
	}
	return v
}

/**
 * @brief Generates a flat plane section on the xy plane, centred on the origin.
 * @param width The overall width of the plane. Must be non-zero.
 * @param height The overall height of the plane. Must be non-zero.
 * @param xSegmentCount The number of segments along the x-axis. Must be non-zero.
 * @param ySegmentCount The number of segments along the y-axis. Must be non-zero.
 * @param tileX How often the texture tiles across the x-axis. Must be non-zero.
 * @param tileY How often the texture tiles across the y-axis. Must be non-zero.
 * @return A section config ready for RuntimeMesh.CreateSection.
 */
func GeneratePlaneSection(width, height float32, xSegmentCount, ySegmentCount uint32, tileX, tileY float32) SectionConfig {
	width = nonZero("width", width)
	height = nonZero("height", height)
	tileX = nonZero("tileX", tileX)
	tileY = nonZero("tileY", tileY)
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}

	// 4 verts and 6 indices per segment. Shared corners are not deduplicated.
	vertices := make([]math.Vertex3D, 0, xSegmentCount*ySegmentCount*4)
	indices := make([]uint32, 0, xSegmentCount*ySegmentCount*6)

	segWidth := width / float32(xSegmentCount)
	segHeight := height / float32(ySegmentCount)
	normal := math.NewVec3(0, 0, 1)
	for y := uint32(0); y < ySegmentCount; y++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			minX := float32(x)*segWidth - width*0.5
			minY := float32(y)*segHeight - height*0.5
			maxX, maxY := minX+segWidth, minY+segHeight
			minU := float32(x) / float32(xSegmentCount) * tileX
			minV := float32(y) / float32(ySegmentCount) * tileY
			maxU := float32(x+1) / float32(xSegmentCount) * tileX
			maxV := float32(y+1) / float32(ySegmentCount) * tileY

			offset := uint32(len(vertices))
			vertices = append(vertices,
				math.Vertex3D{Position: math.NewVec3(minX, minY, 0), Normal: normal, Texcoord: [2]float32{minU, minV}},
				math.Vertex3D{Position: math.NewVec3(maxX, maxY, 0), Normal: normal, Texcoord: [2]float32{maxU, maxV}},
				math.Vertex3D{Position: math.NewVec3(minX, maxY, 0), Normal: normal, Texcoord: [2]float32{minU, maxV}},
				math.Vertex3D{Position: math.NewVec3(maxX, minY, 0), Normal: normal, Texcoord: [2]float32{maxU, minV}},
			)
			indices = append(indices, offset, offset+1, offset+2, offset, offset+3, offset+1)
		}
	}
	return NewSectionConfig(vertices, indices)
}

// cubeFaces lists, per face, the outward normal and the four corners as
// signs of the half extents, in the same winding as the plane quads.
var cubeFaces = [6]struct {
	normal  math.Vec3
	corners [4]math.Vec3
}{
	// front
	{math.NewVec3(0, 0, 1), [4]math.Vec3{{X: -1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}}},
	// back
	{math.NewVec3(0, 0, -1), [4]math.Vec3{{X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1}}},
	// left
	{math.NewVec3(-1, 0, 0), [4]math.Vec3{{X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}}},
	// right
	{math.NewVec3(1, 0, 0), [4]math.Vec3{{X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}}},
	// bottom
	{math.NewVec3(0, -1, 0), [4]math.Vec3{{X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}}},
	// top
	{math.NewVec3(0, 1, 0), [4]math.Vec3{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}}},
}

/**
 * @brief Generates a box section centred on the origin, 4 vertices per face.
 * @return A section config ready for RuntimeMesh.CreateSection.
 */
func GenerateCubeSection(width, height, depth, tileX, tileY float32) SectionConfig {
	half := math.NewVec3(nonZero("width", width)*0.5, nonZero("height", height)*0.5, nonZero("depth", depth)*0.5)
	tileX = nonZero("tileX", tileX)
	tileY = nonZero("tileY", tileY)
	uvs := [4][2]float32{{0, 0}, {tileX, tileY}, {0, tileY}, {tileX, 0}}

	vertices := make([]math.Vertex3D, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, face := range cubeFaces {
		offset := uint32(len(vertices))
		for i, corner := range face.corners {
			vertices = append(vertices, math.Vertex3D{
				Position: corner.Mul(half),
				Normal:   face.normal,
				Texcoord: uvs[i],
			})
		}
		indices = append(indices, offset, offset+1, offset+2, offset, offset+3, offset+1)
	}
	return NewSectionConfig(vertices, indices)
}
