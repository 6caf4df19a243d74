package systems

import (
	"testing"

	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
	"github.com/spaghettifunk/meshproxy/engine/renderer/procmesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadSection(frequency UpdateFrequency) SectionConfig {
	c := NewSectionConfig(quadVertices(), quadIndices())
	c.UpdateFrequency = frequency
	return c
}

func TestCreateSectionValidatesData(t *testing.T) {
	mesh := NewRuntimeMesh("test")

	_, err := mesh.CreateSection(NewSectionConfig(quadVertices(), []uint32{0, 1}))
	assert.Error(t, err)
	_, err = mesh.CreateSection(NewSectionConfig(quadVertices(), []uint32{0, 1, 9}))
	assert.Error(t, err)

	id, err := mesh.CreateSection(quadSection(UPDATE_FREQUENCY_INFREQUENT))
	require.NoError(t, err)
	assert.Equal(t, procmesh.SectionID(0), id)

	empty, err := mesh.CreateSection(NewSectionConfig(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, procmesh.SectionID(1), empty)
	assert.False(t, mesh.RenderData().Sections()[empty].ShouldRender())
}

func TestSectionIDsAreSortedAndNeverReused(t *testing.T) {
	mesh := NewRuntimeMesh("test")
	for i := 0; i < 12; i++ {
		_, err := mesh.CreateSection(quadSection(UPDATE_FREQUENCY_INFREQUENT))
		require.NoError(t, err)
	}
	require.NoError(t, mesh.RemoveSection(3))
	id, err := mesh.CreateSection(quadSection(UPDATE_FREQUENCY_INFREQUENT))
	require.NoError(t, err)
	assert.Equal(t, procmesh.SectionID(12), id)

	ids := mesh.RenderData().SectionIDs()
	require.Len(t, ids, 12)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
	assert.NotContains(t, ids, procmesh.SectionID(3))
	assert.ErrorIs(t, mesh.RemoveSection(3), ErrSectionNotFound)
	assert.ErrorIs(t, mesh.SetSectionVisible(42, false), ErrSectionNotFound)
}

func TestRenderDataViewRelevance(t *testing.T) {
	mesh := NewRuntimeMesh("test")
	static, err := mesh.CreateSection(quadSection(UPDATE_FREQUENCY_INFREQUENT))
	require.NoError(t, err)

	hasStatic, hasDynamic, hasShadow := mesh.RenderData().CalculateViewRelevance()
	assert.Equal(t, []bool{true, false, true}, []bool{hasStatic, hasDynamic, hasShadow})

	dynamic, err := mesh.CreateSection(quadSection(UPDATE_FREQUENCY_FREQUENT))
	require.NoError(t, err)
	require.NoError(t, mesh.SetSectionVisible(static, false))
	require.NoError(t, mesh.SetSectionCastShadow(dynamic, false))

	hasStatic, hasDynamic, hasShadow = mesh.RenderData().CalculateViewRelevance()
	assert.Equal(t, []bool{false, true, false}, []bool{hasStatic, hasDynamic, hasShadow})

	sections := mesh.RenderData().Sections()
	assert.True(t, sections[static].WantsToRenderInStaticPath())
	assert.False(t, sections[dynamic].WantsToRenderInStaticPath())

	require.NoError(t, mesh.SetSectionUpdateFrequency(dynamic, UPDATE_FREQUENCY_AVERAGE))
	assert.False(t, mesh.RenderData().Sections()[dynamic].WantsToRenderInStaticPath())
}

func TestGeometryReference(t *testing.T) {
	mesh := NewRuntimeMesh("test")
	id, err := mesh.CreateSection(quadSection(UPDATE_FREQUENCY_INFREQUENT))
	require.NoError(t, err)
	section := mesh.RenderData().Sections()[id]

	list := section.BuildGeometryReference(false)
	assert.True(t, list.IsValid())
	assert.Equal(t, uint32(6), list.IndexCount)
	assert.Equal(t, uint32(4), list.VertexCount)
	assert.Equal(t, uint32(1), list.Generation)

	adjacency := section.BuildGeometryReference(true)
	assert.True(t, adjacency.IsValid())
	assert.True(t, adjacency.UsesAdjacency())
	assert.Equal(t, uint32(12), adjacency.IndexCount)

	cfg := quadSection(UPDATE_FREQUENCY_INFREQUENT)
	cfg.Layout = metadata.VERTEX_LAYOUT_POSITION_ONLY
	positions, err := mesh.CreateSection(cfg)
	require.NoError(t, err)
	assert.False(t, mesh.RenderData().Sections()[positions].BuildGeometryReference(true).UsesAdjacency())
}

func TestUpdateSectionBumpsGenerations(t *testing.T) {
	mesh := NewRuntimeMesh("test")
	id, err := mesh.CreateSection(quadSection(UPDATE_FREQUENCY_INFREQUENT))
	require.NoError(t, err)
	before := mesh.RenderData().Generation()

	vertices := quadVertices()
	vertices[2].Position = math.NewVec3(2, 2, 0)
	require.NoError(t, mesh.UpdateSection(id, vertices, quadIndices()))

	assert.Greater(t, mesh.RenderData().Generation(), before)
	ref := mesh.RenderData().Sections()[id].BuildGeometryReference(false)
	assert.Equal(t, uint32(2), ref.Generation)
	assert.Equal(t, math.NewVec3(2, 2, 0), mesh.Bounds().Max)

	assert.Error(t, mesh.UpdateSection(id, vertices, []uint32{0, 1, 7}))
}

func TestUpdatesGoThroughTheRenderQueue(t *testing.T) {
	q, err := NewRenderCommandQueue(4)
	require.NoError(t, err)
	defer q.Shutdown()

	mesh := NewRuntimeMesh("queued")
	mesh.BindRenderQueue(q)
	_, err = mesh.CreateSection(quadSection(UPDATE_FREQUENCY_INFREQUENT))
	require.NoError(t, err)
	require.NoError(t, q.Flush())
	assert.Len(t, mesh.RenderData().SectionIDs(), 1)

	require.NoError(t, q.Shutdown())
	_, err = mesh.CreateSection(quadSection(UPDATE_FREQUENCY_INFREQUENT))
	assert.Error(t, err)
}

func TestGeneratedSections(t *testing.T) {
	plane := GeneratePlaneSection(2, 2, 2, 3, 1, 1)
	assert.Len(t, plane.Vertices, 2*3*4)
	assert.Len(t, plane.Indices, 2*3*6)
	assert.NoError(t, validateSectionData(plane.Vertices, plane.Indices))

	cube := GenerateCubeSection(2, 4, 6, 1, 1)
	assert.Len(t, cube.Vertices, 24)
	assert.Len(t, cube.Indices, 36)
	assert.NoError(t, validateSectionData(cube.Vertices, cube.Indices))

	mesh := NewRuntimeMesh("cube")
	_, err := mesh.CreateSection(cube)
	require.NoError(t, err)
	bounds := mesh.Bounds()
	assert.Equal(t, math.NewVec3(-1, -2, -3), bounds.Min)
	assert.Equal(t, math.NewVec3(1, 2, 3), bounds.Max)
}
