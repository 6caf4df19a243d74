package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
	"github.com/spaghettifunk/meshproxy/engine/renderer/procmesh"
	"golang.org/x/exp/slices"
)

var ErrSectionNotFound = errors.New("runtime mesh section not found")

/** @brief How often a section's data is expected to change. */
type UpdateFrequency uint8

const (
	/** @brief Rarely or never updated. Drawn through the cached static path. */
	UPDATE_FREQUENCY_INFREQUENT UpdateFrequency = iota
	UPDATE_FREQUENCY_AVERAGE
	/** @brief Updated most frames. */
	UPDATE_FREQUENCY_FREQUENT
)

/**
 * @brief Everything needed to create a runtime mesh section.
 */
type SectionConfig struct {
	Vertices        []math.Vertex3D
	Indices         []uint32
	Layout          metadata.VertexLayoutKind
	UpdateFrequency UpdateFrequency
	Visible         bool
	CastShadow      bool
}

// NewSectionConfig returns a visible, shadow casting, infrequently updated section.
func NewSectionConfig(vertices []math.Vertex3D, indices []uint32) SectionConfig {
	return SectionConfig{
		Vertices:        vertices,
		Indices:         indices,
		Layout:          metadata.VERTEX_LAYOUT_LOCAL,
		UpdateFrequency: UPDATE_FREQUENCY_INFREQUENT,
		Visible:         true,
		CastShadow:      true,
	}
}

func validateSectionData(vertices []math.Vertex3D, indices []uint32) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return fmt.Errorf("index %d points at vertex %d, only %d vertices", i, idx, len(vertices))
		}
	}
	return nil
}

/**
 * @brief The render side copy of one section. Immutable once published,
 * apart from the adjacency buffer which is built on first use.
 */
type RenderSection struct {
	id         procmesh.SectionID
	config     SectionConfig
	generation uint32

	adjacencyOnce sync.Once
	adjacency     []uint32
}

func (s *RenderSection) ShouldRender() bool {
	return s.config.Visible && len(s.config.Indices) > 0
}

func (s *RenderSection) WantsToRenderInStaticPath() bool {
	return s.config.UpdateFrequency == UPDATE_FREQUENCY_INFREQUENT
}

func (s *RenderSection) LayoutKind() metadata.VertexLayoutKind {
	return s.config.Layout
}

func (s *RenderSection) CastsShadow() bool {
	return s.config.CastShadow
}

func (s *RenderSection) BuildGeometryReference(wantsAdjacency bool) metadata.GeometryReference {
	ref := metadata.GeometryReference{
		SectionID:   int(s.id),
		Layout:      s.config.Layout,
		Topology:    metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_LIST,
		Generation:  s.generation,
		VertexCount: uint32(len(s.config.Vertices)),
		IndexCount:  uint32(len(s.config.Indices)),
		Indices:     s.config.Indices,
	}
	if wantsAdjacency && s.config.Layout.SupportsTessellation() {
		s.adjacencyOnce.Do(func() {
			s.adjacency = BuildAdjacencyIndices(s.config.Vertices, s.config.Indices)
		})
		ref.Topology = metadata.PRIMITIVE_TOPOLOGY_TRIANGLE_LIST_ADJACENCY
		ref.Indices = s.adjacency
		ref.IndexCount = uint32(len(s.adjacency))
	}
	return ref
}

/**
 * @brief Render side data of a runtime mesh. Proxies read it; only render
 * commands write it.
 */
type RenderMeshData struct {
	mu         sync.RWMutex
	sections   map[procmesh.SectionID]*RenderSection
	generation uint64
}

func newRenderMeshData() *RenderMeshData {
	return &RenderMeshData{sections: make(map[procmesh.SectionID]*RenderSection)}
}

func (d *RenderMeshData) SectionIDs() []procmesh.SectionID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]procmesh.SectionID, 0, len(d.sections))
	for id := range d.sections {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (d *RenderMeshData) Sections() map[procmesh.SectionID]procmesh.SectionProxy {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[procmesh.SectionID]procmesh.SectionProxy, len(d.sections))
	for id, s := range d.sections {
		out[id] = s
	}
	return out
}

func (d *RenderMeshData) CalculateViewRelevance() (hasStatic, hasDynamic, hasShadowable bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, s := range d.sections {
		if !s.ShouldRender() {
			continue
		}
		if s.WantsToRenderInStaticPath() {
			hasStatic = true
		} else {
			hasDynamic = true
		}
		if s.CastsShadow() {
			hasShadowable = true
		}
	}
	return hasStatic, hasDynamic, hasShadowable
}

// Generation is bumped by every applied update. Cached draws built from an
// older generation are stale.
func (d *RenderMeshData) Generation() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.generation
}

func (d *RenderMeshData) apply(id procmesh.SectionID, section *RenderSection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if section == nil {
		delete(d.sections, id)
	} else {
		d.sections[id] = section
	}
	d.generation++
}

/**
 * @brief A mesh built from code, section by section. Edits happen on the game
 * goroutine and reach the render side through render commands.
 */
type RuntimeMesh struct {
	Name string

	mu            sync.Mutex
	sections      map[procmesh.SectionID]*SectionConfig
	generations   map[procmesh.SectionID]uint32
	nextSectionID procmesh.SectionID
	render        *RenderMeshData
	queue         *RenderCommandQueue
	// Called after edits that change which sections exist or how they draw.
	onRenderStateDirty func()
}

func NewRuntimeMesh(name string) *RuntimeMesh {
	return &RuntimeMesh{
		Name:        name,
		sections:    make(map[procmesh.SectionID]*SectionConfig),
		generations: make(map[procmesh.SectionID]uint32),
		render:      newRenderMeshData(),
	}
}

// BindRenderQueue routes render side updates through q. Until bound,
// updates are applied immediately.
func (m *RuntimeMesh) BindRenderQueue(q *RenderCommandQueue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = q
}

func (m *RuntimeMesh) setRenderStateDirtyHook(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRenderStateDirty = fn
}

func (m *RuntimeMesh) markRenderStateDirty() {
	m.mu.Lock()
	fn := m.onRenderStateDirty
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// RenderData returns the render side snapshot proxies are built from.
func (m *RuntimeMesh) RenderData() *RenderMeshData {
	return m.render
}

// CreateSection adds a section and returns its id. Ids are never reused.
func (m *RuntimeMesh) CreateSection(config SectionConfig) (procmesh.SectionID, error) {
	if err := validateSectionData(config.Vertices, config.Indices); err != nil {
		return 0, fmt.Errorf("runtime mesh %s: %w", m.Name, err)
	}

	m.mu.Lock()
	id := m.nextSectionID
	m.nextSectionID++
	c := config
	c.Vertices = append([]math.Vertex3D(nil), config.Vertices...)
	c.Indices = append([]uint32(nil), config.Indices...)
	m.sections[id] = &c
	err := m.publish(id)
	m.mu.Unlock()

	if err != nil {
		return id, err
	}
	m.markRenderStateDirty()
	return id, nil
}

// UpdateSection replaces the geometry of a section.
func (m *RuntimeMesh) UpdateSection(id procmesh.SectionID, vertices []math.Vertex3D, indices []uint32) error {
	if err := validateSectionData(vertices, indices); err != nil {
		return fmt.Errorf("runtime mesh %s section %d: %w", m.Name, id, err)
	}
	return m.edit(id, false, func(c *SectionConfig) {
		c.Vertices = append([]math.Vertex3D(nil), vertices...)
		c.Indices = append([]uint32(nil), indices...)
	})
}

func (m *RuntimeMesh) SetSectionVisible(id procmesh.SectionID, visible bool) error {
	return m.edit(id, true, func(c *SectionConfig) { c.Visible = visible })
}

func (m *RuntimeMesh) SetSectionCastShadow(id procmesh.SectionID, castShadow bool) error {
	return m.edit(id, true, func(c *SectionConfig) { c.CastShadow = castShadow })
}

func (m *RuntimeMesh) SetSectionUpdateFrequency(id procmesh.SectionID, frequency UpdateFrequency) error {
	return m.edit(id, true, func(c *SectionConfig) { c.UpdateFrequency = frequency })
}

// RemoveSection deletes a section. Proxies created before keep an entry for
// it but no longer draw it.
func (m *RuntimeMesh) RemoveSection(id procmesh.SectionID) error {
	m.mu.Lock()
	if _, ok := m.sections[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("runtime mesh %s section %d: %w", m.Name, id, ErrSectionNotFound)
	}
	delete(m.sections, id)
	err := m.publish(id)
	m.mu.Unlock()

	if err != nil {
		return err
	}
	m.markRenderStateDirty()
	return nil
}

func (m *RuntimeMesh) SectionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sections)
}

// Bounds returns the local bounds of every section's vertices.
func (m *RuntimeMesh) Bounds() math.Extents3D {
	m.mu.Lock()
	defer m.mu.Unlock()
	var points []math.Vec3
	for _, s := range m.sections {
		for _, v := range s.Vertices {
			points = append(points, v.Position)
		}
	}
	return math.ExtentsFromPoints(points)
}

// edit applies fn to a copy of the section and publishes it. Structural
// edits change how proxies see the mesh, so they mark the render state dirty.
func (m *RuntimeMesh) edit(id procmesh.SectionID, structural bool, fn func(c *SectionConfig)) error {
	m.mu.Lock()
	c, ok := m.sections[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("runtime mesh %s section %d: %w", m.Name, id, ErrSectionNotFound)
	}
	next := *c
	fn(&next)
	m.sections[id] = &next
	err := m.publish(id)
	m.mu.Unlock()

	if err != nil {
		return err
	}
	if structural {
		m.markRenderStateDirty()
	}
	return nil
}

// publish pushes the current state of section id to the render side. Must
// hold m.mu.
func (m *RuntimeMesh) publish(id procmesh.SectionID) error {
	var section *RenderSection
	if c, ok := m.sections[id]; ok {
		m.generations[id]++
		section = &RenderSection{id: id, config: *c, generation: m.generations[id]}
	}
	render := m.render
	cmd := func() error {
		render.apply(id, section)
		return nil
	}
	if m.queue == nil {
		return cmd()
	}
	if err := m.queue.Enqueue(cmd); err != nil {
		core.LogError("runtime mesh %s: section %d update dropped: %s", m.Name, id, err)
		return err
	}
	return nil
}
