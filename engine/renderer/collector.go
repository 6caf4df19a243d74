package renderer

import (
	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
)

// StaticPrimitiveCollector receives the cached static batches of one primitive.
type StaticPrimitiveCollector struct {
	PrimitiveID uint32
	Batches     []metadata.StaticMeshBatch
}

func NewStaticPrimitiveCollector(primitiveID uint32) *StaticPrimitiveCollector {
	return &StaticPrimitiveCollector{PrimitiveID: primitiveID}
}

func (c *StaticPrimitiveCollector) DrawMesh(batch metadata.MeshBatch, screenSizeMax float32) {
	c.Batches = append(c.Batches, metadata.StaticMeshBatch{
		PrimitiveID:   c.PrimitiveID,
		Batch:         batch,
		ScreenSizeMax: screenSizeMax,
	})
}

/** @brief One debug line recorded for a view. */
type DebugLine struct {
	ViewIndex     int
	Start         math.Vec3
	End           math.Vec3
	Colour        math.Colour
	DepthPriority uint8
}

type viewDrawer struct {
	collector *MeshElementCollector
	viewIndex int
}

func (d *viewDrawer) DrawLine(start, end math.Vec3, colour math.Colour, depthPriority uint8) {
	d.collector.lines = append(d.collector.lines, DebugLine{
		ViewIndex:     d.viewIndex,
		Start:         start,
		End:           end,
		Colour:        colour,
		DepthPriority: depthPriority,
	})
}

// MeshElementCollector gathers the dynamic output of every proxy for one frame.
// One-frame material proxies are dropped by Finish.
type MeshElementCollector struct {
	meshes   [][]metadata.MeshBatch
	drawers  []*viewDrawer
	lines    []DebugLine
	oneFrame []*metadata.MaterialRenderProxy
	finished bool
}

func NewMeshElementCollector(viewCount int) *MeshElementCollector {
	c := &MeshElementCollector{
		meshes:  make([][]metadata.MeshBatch, viewCount),
		drawers: make([]*viewDrawer, viewCount),
	}
	for i := range c.drawers {
		c.drawers[i] = &viewDrawer{collector: c, viewIndex: i}
	}
	return c
}

func (c *MeshElementCollector) AddMesh(viewIndex int, batch metadata.MeshBatch) {
	if viewIndex < 0 || viewIndex >= len(c.meshes) {
		return
	}
	c.meshes[viewIndex] = append(c.meshes[viewIndex], batch)
}

func (c *MeshElementCollector) RegisterOneFrameMaterialProxy(proxy *metadata.MaterialRenderProxy) {
	if proxy == nil {
		return
	}
	c.oneFrame = append(c.oneFrame, proxy)
}

func (c *MeshElementCollector) PDI(viewIndex int) metadata.PrimitiveDrawer {
	if viewIndex < 0 || viewIndex >= len(c.drawers) {
		return nil
	}
	return c.drawers[viewIndex]
}

// MeshBatches returns the batches collected for a view.
func (c *MeshElementCollector) MeshBatches(viewIndex int) []metadata.MeshBatch {
	if viewIndex < 0 || viewIndex >= len(c.meshes) {
		return nil
	}
	return c.meshes[viewIndex]
}

// BatchCount returns the number of batches collected over every view.
func (c *MeshElementCollector) BatchCount() int {
	n := 0
	for _, m := range c.meshes {
		n += len(m)
	}
	return n
}

func (c *MeshElementCollector) Lines() []DebugLine {
	return c.lines
}

func (c *MeshElementCollector) OneFrameMaterials() []*metadata.MaterialRenderProxy {
	return c.oneFrame
}

// Finish releases the one-frame resources. The collector must not be reused.
func (c *MeshElementCollector) Finish() {
	c.oneFrame = nil
	c.finished = true
}

func (c *MeshElementCollector) Finished() bool {
	return c.finished
}
