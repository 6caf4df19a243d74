package systems

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/spaghettifunk/meshproxy/engine/config"
	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/math"
	"github.com/spaghettifunk/meshproxy/engine/renderer"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
	"github.com/spaghettifunk/meshproxy/engine/renderer/procmesh"
	"golang.org/x/exp/slices"
)

/** @brief The largest number of views a frame can render, one visibility bit each. */
const MaxViewCount = 32

/**
 * @brief Configuration of one rendered view.
 */
type ViewConfig struct {
	Name string
	/** @brief Editor views always take the dynamic path. */
	EditorView bool
}

type RendererSystemConfig struct {
	Settings *config.Store
	/** @brief Defaults to a headless recording backend. */
	Backend renderer.RendererBackend
	/** @brief Defaults to a single view named "main". */
	Views []ViewConfig
	/** @brief Capacity of the render command queue. */
	QueueSize int
}

// scenePrimitive is the render side record of a registered proxy.
type scenePrimitive struct {
	proxy            *procmesh.SceneProxy
	mesh             *RenderMeshData
	staticBatches    []metadata.StaticMeshBatch
	cachedGeneration uint64
	staticDirty      bool
}

type sceneView struct {
	config ViewConfig
	hidden map[uint32]struct{}
}

/**
 * @brief Owns the scene proxies and drives frames on the render goroutine.
 */
type RendererSystem struct {
	SceneID string
	Metrics *core.FrameMetrics

	settings *config.Store
	renderer *renderer.Renderer
	backend  renderer.RendererBackend
	queue    *RenderCommandQueue

	// game goroutine
	mu            sync.Mutex
	components    map[uint32]*RuntimeMeshComponent
	settingsDirty atomic.Bool

	// render goroutine only
	views         []*sceneView
	primitives    map[uint32]*scenePrimitive
	order         []uint32
	frameNumber   uint64
	debugViewMode metadata.RendererDebugViewMode
}

func NewRendererSystem(cfg *RendererSystemConfig) (*RendererSystem, error) {
	if cfg == nil || cfg.Settings == nil {
		return nil, fmt.Errorf("renderer system needs a settings store")
	}
	viewConfigs := cfg.Views
	if len(viewConfigs) == 0 {
		viewConfigs = []ViewConfig{{Name: "main"}}
	}
	if len(viewConfigs) > MaxViewCount {
		return nil, fmt.Errorf("renderer system supports at most %d views, got %d", MaxViewCount, len(viewConfigs))
	}
	backend := cfg.Backend
	if backend == nil {
		backend = renderer.NewRecordingBackend()
	}
	queue, err := NewRenderCommandQueue(cfg.QueueSize)
	if err != nil {
		return nil, err
	}

	rs := &RendererSystem{
		SceneID:    uuid.NewString(),
		Metrics:    core.NewFrameMetrics(int(cfg.Settings.Get().Renderer.FrameHistory)),
		settings:   cfg.Settings,
		renderer:   renderer.New(backend),
		backend:    backend,
		queue:      queue,
		components: make(map[uint32]*RuntimeMeshComponent),
		primitives: make(map[uint32]*scenePrimitive),
	}
	for _, v := range viewConfigs {
		rs.views = append(rs.views, &sceneView{config: v, hidden: make(map[uint32]struct{})})
	}
	return rs, nil
}

func (rs *RendererSystem) Initialize() error {
	core.EventRegister(core.EVENT_CODE_RENDER_SETTINGS_CHANGED, rs, rs.onSettingsChanged)
	core.EventRegister(core.EVENT_CODE_SET_RENDER_MODE, rs, rs.onSetRenderMode)
	core.LogInfo("renderer system %s initialized with %d view(s)", rs.SceneID, len(rs.views))
	return nil
}

func (rs *RendererSystem) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_RENDER_SETTINGS_CHANGED, rs, rs.onSettingsChanged)
	core.EventUnregister(core.EVENT_CODE_SET_RENDER_MODE, rs, rs.onSetRenderMode)

	rs.mu.Lock()
	for id, c := range rs.components {
		c.unbind()
		delete(rs.components, id)
	}
	rs.mu.Unlock()

	if err := rs.queue.Enqueue(func() error {
		for id := range rs.primitives {
			rs.removePrimitiveRenderThread(id)
		}
		return nil
	}); err != nil {
		return err
	}
	return rs.queue.Shutdown()
}

// Backend returns the backend frames are dispatched to.
func (rs *RendererSystem) Backend() renderer.RendererBackend {
	return rs.backend
}

// Queue returns the render command queue.
func (rs *RendererSystem) Queue() *RenderCommandQueue {
	return rs.queue
}

/**
 * @brief Creates the proxy of c on the calling goroutine and hands it to
 * the render goroutine.
 * @return The primitive id of the new proxy.
 */
func (rs *RendererSystem) AddPrimitive(c *RuntimeMeshComponent) (uint32, error) {
	if _, registered := c.PrimitiveID(); registered {
		return 0, fmt.Errorf("component %s is already registered", c.Name())
	}
	c.Mesh().BindRenderQueue(rs.queue)
	proxy, err := rs.createProxy(c)
	if err != nil {
		return 0, err
	}
	id := proxy.PrimitiveID()
	mesh := c.Mesh().RenderData()

	if err := rs.queue.Enqueue(func() error {
		rs.addPrimitiveRenderThread(proxy, mesh)
		return nil
	}); err != nil {
		_ = proxy.Release()
		return 0, err
	}

	rs.mu.Lock()
	rs.components[id] = c
	rs.mu.Unlock()
	c.bind(rs, id)
	core.LogDebug("primitive %d (%s) added", id, c.Name())
	return id, nil
}

// RemovePrimitive unregisters c. Its proxy is released on the render goroutine.
func (rs *RendererSystem) RemovePrimitive(c *RuntimeMeshComponent) error {
	id, registered := c.PrimitiveID()
	if !registered {
		return fmt.Errorf("component %s: %w", c.Name(), core.ErrPrimitiveNotFound)
	}
	rs.mu.Lock()
	delete(rs.components, id)
	rs.mu.Unlock()
	c.unbind()

	return rs.queue.Enqueue(func() error {
		rs.removePrimitiveRenderThread(id)
		return nil
	})
}

/**
 * @brief Replaces the proxy of c with a fresh one. Pending mesh updates are
 * flushed first so the new proxy sees them.
 */
func (rs *RendererSystem) RecreatePrimitive(c *RuntimeMeshComponent) error {
	oldID, registered := c.PrimitiveID()
	if !registered {
		return fmt.Errorf("component %s: %w", c.Name(), core.ErrPrimitiveNotFound)
	}
	if err := rs.queue.Flush(); err != nil {
		return err
	}
	proxy, err := rs.createProxy(c)
	if err != nil {
		return err
	}
	newID := proxy.PrimitiveID()
	mesh := c.Mesh().RenderData()

	if err := rs.queue.Enqueue(func() error {
		rs.addPrimitiveRenderThread(proxy, mesh)
		rs.moveHiddenRenderThread(oldID, newID)
		rs.removePrimitiveRenderThread(oldID)
		return nil
	}); err != nil {
		_ = proxy.Release()
		return err
	}

	rs.mu.Lock()
	delete(rs.components, oldID)
	rs.components[newID] = c
	rs.mu.Unlock()
	c.bind(rs, newID)
	core.LogDebug("primitive %d (%s) recreated as %d", oldID, c.Name(), newID)
	return nil
}

func (rs *RendererSystem) createProxy(c *RuntimeMeshComponent) (*procmesh.SceneProxy, error) {
	s := rs.settings.Get()
	c.setFeatureLevel(s.FeatureLevel())
	return c.CreateSceneProxy(procmesh.WithForceDynamicPath(s.Renderer.ForceDynamicPath))
}

// UpdateSelection changes the selection state of a proxy on the render goroutine.
func (rs *RendererSystem) UpdateSelection(id uint32, selected, hovered bool) error {
	return rs.queue.Enqueue(func() error {
		sp, ok := rs.primitives[id]
		if !ok {
			return fmt.Errorf("update selection of %d: %w", id, core.ErrPrimitiveNotFound)
		}
		sp.proxy.SetSelection(selected, hovered)
		return nil
	})
}

// UpdateTransform moves a proxy on the render goroutine.
func (rs *RendererSystem) UpdateTransform(id uint32, localToWorld math.Mat4, localBounds math.Extents3D) error {
	return rs.queue.Enqueue(func() error {
		sp, ok := rs.primitives[id]
		if !ok {
			return fmt.Errorf("update transform of %d: %w", id, core.ErrPrimitiveNotFound)
		}
		sp.proxy.SetTransform(localToWorld, localBounds)
		sp.staticDirty = true
		return nil
	})
}

// SetPrimitiveHidden hides or shows a primitive in one view.
func (rs *RendererSystem) SetPrimitiveHidden(viewIndex int, id uint32, hidden bool) error {
	if viewIndex < 0 || viewIndex >= len(rs.views) {
		return fmt.Errorf("view %d out of range", viewIndex)
	}
	return rs.queue.Enqueue(func() error {
		if hidden {
			rs.views[viewIndex].hidden[id] = struct{}{}
		} else {
			delete(rs.views[viewIndex].hidden, id)
		}
		return nil
	})
}

// Update runs on the game goroutine once per frame, before RenderFrame.
func (rs *RendererSystem) Update() error {
	if !rs.settingsDirty.CompareAndSwap(true, false) {
		return nil
	}
	rs.Metrics.Resize(int(rs.settings.Get().Renderer.FrameHistory))

	rs.mu.Lock()
	components := make([]*RuntimeMeshComponent, 0, len(rs.components))
	for _, c := range rs.components {
		components = append(components, c)
	}
	rs.mu.Unlock()

	for _, c := range components {
		if err := rs.RecreatePrimitive(c); err != nil {
			return err
		}
	}
	return nil
}

// RenderFrame draws one frame on the render goroutine and waits for it.
func (rs *RendererSystem) RenderFrame(deltaTime float64) (*renderer.RenderPacket, error) {
	var packet *renderer.RenderPacket
	err := rs.queue.Call(func() error {
		var err error
		packet, err = rs.renderFrameRenderThread(deltaTime)
		return err
	})
	return packet, err
}

func (rs *RendererSystem) addPrimitiveRenderThread(proxy *procmesh.SceneProxy, mesh *RenderMeshData) {
	proxy.CreateRenderThreadResources()
	sp := &scenePrimitive{proxy: proxy, mesh: mesh}
	rs.cacheStaticBatches(sp)

	id := proxy.PrimitiveID()
	rs.primitives[id] = sp
	rs.order = append(rs.order, id)
	slices.Sort(rs.order)
}

// moveHiddenRenderThread keeps per view hidden state across a proxy swap.
func (rs *RendererSystem) moveHiddenRenderThread(oldID, newID uint32) {
	for _, v := range rs.views {
		if _, hidden := v.hidden[oldID]; hidden {
			v.hidden[newID] = struct{}{}
		}
	}
}

func (rs *RendererSystem) removePrimitiveRenderThread(id uint32) {
	sp, ok := rs.primitives[id]
	if !ok {
		return
	}
	delete(rs.primitives, id)
	if i := slices.Index(rs.order, id); i >= 0 {
		rs.order = slices.Delete(rs.order, i, i+1)
	}
	for _, v := range rs.views {
		delete(v.hidden, id)
	}
	if err := sp.proxy.Release(); err != nil {
		core.LogWarn("primitive %d: %s", id, err)
	}
}

func (rs *RendererSystem) cacheStaticBatches(sp *scenePrimitive) {
	sp.staticBatches = nil
	sp.cachedGeneration = sp.mesh.Generation()
	sp.staticDirty = false
	if !sp.proxy.IsStaticPathAvailable() {
		return
	}
	sink := renderer.NewStaticPrimitiveCollector(sp.proxy.PrimitiveID())
	sp.proxy.DrawStaticElements(sink)
	sp.staticBatches = sink.Batches
}

func (rs *RendererSystem) viewFamily(s *config.Settings) *metadata.ViewFamily {
	return &metadata.ViewFamily{
		FrameNumber:         rs.frameNumber,
		FeatureLevel:        s.FeatureLevel(),
		ShowFlags:           s.ShowFlags(),
		EditorView:          s.Show.RichView,
		DebugViewMode:       rs.debugViewMode,
		AllowDebugViewModes: s.Renderer.AllowDebugViewModes,
	}
}

func (rs *RendererSystem) renderFrameRenderThread(deltaTime float64) (*renderer.RenderPacket, error) {
	rs.frameNumber++
	family := rs.viewFamily(rs.settings.Get())

	views := make([]*metadata.SceneView, len(rs.views))
	packet := &renderer.RenderPacket{
		FrameNumber: rs.frameNumber,
		DeltaTime:   deltaTime,
		Views:       make([]*renderer.RenderViewPacket, len(rs.views)),
	}
	for i, v := range rs.views {
		viewFamily := family
		if v.config.EditorView && !family.EditorView {
			editor := *family
			editor.EditorView = true
			viewFamily = &editor
		}
		views[i] = &metadata.SceneView{Index: i, Family: viewFamily, HiddenPrimitives: v.hidden}
		packet.Views[i] = &renderer.RenderViewPacket{View: views[i]}
	}

	collector := renderer.NewMeshElementCollector(len(views))
	defer collector.Finish()

	for _, id := range rs.order {
		sp := rs.primitives[id]
		if sp.staticDirty || sp.cachedGeneration != sp.mesh.Generation() {
			rs.cacheStaticBatches(sp)
		}

		var visibilityMap uint32
		for i, view := range views {
			relevance := sp.proxy.ViewRelevance(view)
			if !relevance.DrawRelevance {
				continue
			}
			if relevance.StaticRelevance {
				for _, sb := range sp.staticBatches {
					packet.Views[i].StaticBatches = append(packet.Views[i].StaticBatches, sb.Batch)
				}
			}
			if relevance.DynamicRelevance || sp.proxy.WantsDebugOverlays(view) {
				visibilityMap |= 1 << uint(i)
			}
		}
		if visibilityMap != 0 {
			sp.proxy.GetDynamicMeshElements(views, family, visibilityMap, collector)
		}
	}

	for i := range views {
		packet.Views[i].DynamicBatches = collector.MeshBatches(i)
	}
	packet.Lines = collector.Lines()

	if err := rs.renderer.DrawFrame(packet); err != nil {
		return packet, err
	}

	static, dynamic := packet.BatchCounts()
	rs.Metrics.Update(core.FrameSample{
		FrameMS:        deltaTime * 1000,
		StaticBatches:  static,
		DynamicBatches: dynamic,
		DebugLines:     len(packet.Lines),
	})
	return packet, nil
}

func (rs *RendererSystem) onSettingsChanged(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	rs.settingsDirty.Store(true)
	return false
}

func (rs *RendererSystem) onSetRenderMode(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	mode, ok := data.Data.(metadata.RendererDebugViewMode)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", code)
		return false
	}
	if err := rs.queue.Enqueue(func() error {
		rs.debugViewMode = mode
		return nil
	}); err != nil {
		core.LogError("set render mode: %s", err)
	}
	core.LogDebug("debug view mode set to %d", mode)
	return true
}
