package renderer

import (
	"testing"

	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBatch(section int) metadata.MeshBatch {
	return metadata.MeshBatch{
		SectionID: section,
		Material:  metadata.DefaultSurfaceMaterial().RenderProxy(false),
		Geometry: metadata.GeometryReference{
			Topology:    metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_LIST,
			VertexCount: 3,
			IndexCount:  3,
			Indices:     []uint32{0, 1, 2},
		},
	}
}

func TestMeshElementCollector(t *testing.T) {
	c := NewMeshElementCollector(2)
	c.AddMesh(0, validBatch(0))
	c.AddMesh(1, validBatch(1))
	c.AddMesh(5, validBatch(2))
	assert.Equal(t, 2, c.BatchCount())
	assert.Len(t, c.MeshBatches(1), 1)
	assert.Nil(t, c.MeshBatches(-1))
	assert.Nil(t, c.PDI(2))

	c.PDI(1).DrawLine(math.NewVec3Zero(), math.NewVec3One(), math.Colour{A: 1}, metadata.SDPG_WORLD)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 1, c.Lines()[0].ViewIndex)

	c.RegisterOneFrameMaterialProxy(nil)
	c.RegisterOneFrameMaterialProxy(metadata.NewColouredMaterialRenderProxy(nil, math.Colour{}))
	assert.Len(t, c.OneFrameMaterials(), 1)

	c.Finish()
	assert.True(t, c.Finished())
	assert.Empty(t, c.OneFrameMaterials())
}

func TestStaticPrimitiveCollector(t *testing.T) {
	c := NewStaticPrimitiveCollector(7)
	c.DrawMesh(validBatch(0), metadata.UnboundedDrawDistance)
	require.Len(t, c.Batches, 1)
	assert.Equal(t, uint32(7), c.Batches[0].PrimitiveID)
	assert.Equal(t, metadata.UnboundedDrawDistance, c.Batches[0].ScreenSizeMax)
}

func TestDrawFrame(t *testing.T) {
	backend := NewRecordingBackend()
	r := New(backend)

	packet := &RenderPacket{
		FrameNumber: 3,
		Views: []*RenderViewPacket{
			{StaticBatches: []metadata.MeshBatch{validBatch(0)}, DynamicBatches: []metadata.MeshBatch{validBatch(1)}},
			{DynamicBatches: []metadata.MeshBatch{validBatch(2)}},
		},
		Lines: []DebugLine{{ViewIndex: 1}},
	}
	require.NoError(t, r.DrawFrame(packet))

	static, dynamic := packet.BatchCounts()
	assert.Equal(t, 1, static)
	assert.Equal(t, 2, dynamic)

	frame := backend.LastFrame()
	assert.Equal(t, uint64(3), frame.FrameNumber)
	require.Len(t, frame.Draws[0], 2)
	assert.Equal(t, 0, frame.Draws[0][0].SectionID, "static batches are drawn first")
	assert.Len(t, frame.Draws[1], 1)
	assert.Len(t, frame.Lines, 1)
	assert.Equal(t, uint64(1), backend.FrameCount())
}

func TestRecordingBackendRejectsInvalidDraws(t *testing.T) {
	backend := NewRecordingBackend()
	assert.Error(t, backend.DrawMeshBatch(0, validBatch(0)))
	assert.Error(t, backend.EndFrame(1))

	require.NoError(t, backend.BeginFrame(1))
	assert.Error(t, backend.BeginFrame(2))
	assert.Error(t, backend.DrawMeshBatch(0, metadata.MeshBatch{}))
	require.NoError(t, backend.EndFrame(1))
}

func TestDrawFrameAbortsFailedFrame(t *testing.T) {
	backend := NewRecordingBackend()
	r := New(backend)

	bad := &RenderPacket{
		FrameNumber: 1,
		Views:       []*RenderViewPacket{{DynamicBatches: []metadata.MeshBatch{validBatch(0), {SectionID: 1}}}},
	}
	assert.Error(t, r.DrawFrame(bad))
	assert.Equal(t, uint64(0), backend.FrameCount())

	good := &RenderPacket{
		FrameNumber: 2,
		Views:       []*RenderViewPacket{{StaticBatches: []metadata.MeshBatch{validBatch(0)}}},
	}
	require.NoError(t, r.DrawFrame(good))
	assert.Equal(t, uint64(1), backend.FrameCount())
	assert.Equal(t, uint64(2), backend.LastFrame().FrameNumber)
}

func TestAbortFrameIgnoresOtherFrames(t *testing.T) {
	backend := NewRecordingBackend()
	require.NoError(t, backend.BeginFrame(1))
	backend.AbortFrame(2)
	assert.Error(t, backend.BeginFrame(3))
	backend.AbortFrame(1)
	require.NoError(t, backend.BeginFrame(3))
	require.NoError(t, backend.EndFrame(3))
}
