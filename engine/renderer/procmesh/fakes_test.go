package procmesh_test

import (
	"sort"

	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
	"github.com/spaghettifunk/meshproxy/engine/renderer/procmesh"
)

type fakeSection struct {
	render      bool
	static      bool
	layout      metadata.VertexLayoutKind
	broken      bool
	adjacencies []bool
}

func newSection(static bool) *fakeSection {
	return &fakeSection{render: true, static: static, layout: metadata.VERTEX_LAYOUT_LOCAL}
}

func (s *fakeSection) ShouldRender() bool                    { return s.render }
func (s *fakeSection) WantsToRenderInStaticPath() bool       { return s.static }
func (s *fakeSection) LayoutKind() metadata.VertexLayoutKind { return s.layout }

func (s *fakeSection) BuildGeometryReference(wantsAdjacency bool) metadata.GeometryReference {
	s.adjacencies = append(s.adjacencies, wantsAdjacency)
	if s.broken {
		return metadata.GeometryReference{}
	}
	if wantsAdjacency {
		return metadata.GeometryReference{
			Layout:      s.layout,
			Topology:    metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_LIST_ADJACENCY,
			VertexCount: 3,
			IndexCount:  6,
			Indices:     []uint32{0, 0, 1, 1, 2, 2},
		}
	}
	return metadata.GeometryReference{
		Layout:      s.layout,
		Topology:    metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_LIST,
		VertexCount: 3,
		IndexCount:  3,
		Indices:     []uint32{0, 1, 2},
	}
}

type fakeMesh struct {
	sections map[procmesh.SectionID]procmesh.SectionProxy
}

func newMesh(sections ...*fakeSection) *fakeMesh {
	m := &fakeMesh{sections: make(map[procmesh.SectionID]procmesh.SectionProxy)}
	for i, s := range sections {
		m.sections[procmesh.SectionID(i)] = s
	}
	return m
}

func (m *fakeMesh) SectionIDs() []procmesh.SectionID {
	ids := make([]procmesh.SectionID, 0, len(m.sections))
	for id := range m.sections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *fakeMesh) Sections() map[procmesh.SectionID]procmesh.SectionProxy {
	return m.sections
}

func (m *fakeMesh) CalculateViewRelevance() (hasStatic, hasDynamic, hasShadowable bool) {
	for _, s := range m.sections {
		if !s.ShouldRender() {
			continue
		}
		if s.WantsToRenderInStaticPath() {
			hasStatic = true
		} else {
			hasDynamic = true
		}
		hasShadowable = true
	}
	return hasStatic, hasDynamic, hasShadowable
}

type fakeCollision struct {
	flag    metadata.CollisionTraceFlag
	colours []math.Colour
	views   []int
}

func (c *fakeCollision) TraceFlag() metadata.CollisionTraceFlag { return c.flag }

func (c *fakeCollision) DebugPrimitives(transform math.Mat4, colour math.Colour, viewIndex int, pdi metadata.PrimitiveDrawer) {
	c.colours = append(c.colours, colour)
	c.views = append(c.views, viewIndex)
	pdi.DrawLine(math.NewVec3Zero().Transform(transform), math.NewVec3One().Transform(transform), colour, metadata.SDPG_WORLD)
}

type fakeComponent struct {
	materials map[int]metadata.MaterialInterface
	state     metadata.PrimitiveState
	body      procmesh.CollisionDescriptor
	level     metadata.FeatureLevel
}

func newComponent() *fakeComponent {
	state := metadata.DefaultPrimitiveState("test")
	state.LocalBounds = math.Extents3D{Min: math.NewVec3(-1, -1, -1), Max: math.NewVec3(1, 1, 1)}
	return &fakeComponent{
		materials: make(map[int]metadata.MaterialInterface),
		state:     state,
		level:     metadata.FEATURE_LEVEL_SM5,
	}
}

func (c *fakeComponent) Material(sectionIndex int) metadata.MaterialInterface {
	return c.materials[sectionIndex]
}

func (c *fakeComponent) PrimitiveState() metadata.PrimitiveState { return c.state }
func (c *fakeComponent) BodySetup() procmesh.CollisionDescriptor { return c.body }
func (c *fakeComponent) FeatureLevel() metadata.FeatureLevel     { return c.level }

func defaultFamily() *metadata.ViewFamily {
	return &metadata.ViewFamily{FeatureLevel: metadata.FEATURE_LEVEL_SM5, AllowDebugViewModes: true}
}

func viewsFor(family *metadata.ViewFamily, n int) []*metadata.SceneView {
	views := make([]*metadata.SceneView, n)
	for i := range views {
		views[i] = &metadata.SceneView{Index: i, Family: family}
	}
	return views
}

func rendererCollector(views int) *renderer.MeshElementCollector {
	return renderer.NewMeshElementCollector(views)
}
