package metadata

import (
	"sync"

	"github.com/google/uuid"
	"github.com/spaghettifunk/meshproxy/engine/math"
)

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/** @brief The name of the engine wireframe material. */
const WireframeMaterialName string = "wireframe"

/** @brief How a material's output is combined with the scene. */
type BlendMode uint8

const (
	BLEND_MODE_OPAQUE BlendMode = iota
	BLEND_MODE_MASKED
	BLEND_MODE_TRANSLUCENT
	BLEND_MODE_ADDITIVE
	BLEND_MODE_MODULATE
)

func (b BlendMode) IsTranslucent() bool {
	return b >= BLEND_MODE_TRANSLUCENT
}

/** @brief Tessellation technique requested by the material. */
type TessellationMode uint8

const (
	TESSELLATION_MODE_NONE TessellationMode = iota
	TESSELLATION_MODE_FLAT
	/** @brief PN triangles need the neighbours of every edge, i.e. adjacency information. */
	TESSELLATION_MODE_PN_TRIANGLES
)

/**
 * @brief Bitmask describing which render passes a material participates in.
 * Folded together across every section of a primitive.
 */
type MaterialRelevance uint32

const (
	MATERIAL_RELEVANCE_OPAQUE MaterialRelevance = 1 << iota
	MATERIAL_RELEVANCE_MASKED
	MATERIAL_RELEVANCE_TRANSLUCENCY
	MATERIAL_RELEVANCE_DISTORTION
	MATERIAL_RELEVANCE_SEPARATE_TRANSLUCENCY
	MATERIAL_RELEVANCE_NORMAL_TRANSLUCENCY
	MATERIAL_RELEVANCE_TESSELLATION
)

func (r MaterialRelevance) Has(bits MaterialRelevance) bool {
	return r&bits == bits
}

// SetPrimitiveViewRelevance merges the material facets into vr.
func (r MaterialRelevance) SetPrimitiveViewRelevance(vr *ViewRelevance) {
	vr.OpaqueRelevance = r.Has(MATERIAL_RELEVANCE_OPAQUE)
	vr.MaskedRelevance = r.Has(MATERIAL_RELEVANCE_MASKED)
	vr.TranslucencyRelevance = r.Has(MATERIAL_RELEVANCE_TRANSLUCENCY)
	vr.DistortionRelevance = r.Has(MATERIAL_RELEVANCE_DISTORTION)
	vr.SeparateTranslucencyRelevance = r.Has(MATERIAL_RELEVANCE_SEPARATE_TRANSLUCENCY)
	vr.NormalTranslucencyRelevance = r.Has(MATERIAL_RELEVANCE_NORMAL_TRANSLUCENCY)
	vr.TessellationRelevance = r.Has(MATERIAL_RELEVANCE_TESSELLATION)
}

/**
 * @brief Anything that can be assigned to a mesh section. The render side
 * only talks to materials through this interface.
 */
type MaterialInterface interface {
	GetName() string
	/** @brief Relevance bits of the material at the given feature level. */
	Relevance(level FeatureLevel) MaterialRelevance
	/** @brief The render-side proxy, selection tinted when selected is true. */
	RenderProxy(selected bool) *MaterialRenderProxy
	/** @brief Whether the material's shading needs adjacency for the layout at the feature level. */
	RequiresAdjacency(layout VertexLayoutKind, level FeatureLevel) bool
}

/**
 * @brief Material configuration typically loaded from
 * a file or created in code to load a material from.
 */
type MaterialConfig struct {
	/** @brief The name of the material. */
	Name string
	/** @brief The diffuse colour of the material. */
	DiffuseColour math.Vec4
	BlendMode     BlendMode
	Tessellation  TessellationMode
	/** @brief Translucent materials only: refracts the scene behind it. */
	Distortion bool
	/** @brief Translucent materials only: rendered after depth of field. */
	SeparateTranslucency bool
	TwoSided             bool
}

/**
 * @brief A material, which represents various properties
 * of a surface in the world such as colour, blending and tessellation.
 */
type Material struct {
	/** @brief The material id. Assigned by the material system. */
	ID uint32
	/** @brief The material generation. Incremented every time the material is changed. */
	Generation uint32
	/** @brief The material name. */
	Name string
	/** @brief The diffuse colour. */
	DiffuseColour        math.Vec4
	BlendMode            BlendMode
	Tessellation         TessellationMode
	Distortion           bool
	SeparateTranslucency bool
	TwoSided             bool

	proxies [2]*MaterialRenderProxy
}

func NewMaterial(config MaterialConfig) *Material {
	m := &Material{
		Name:                 config.Name,
		DiffuseColour:        config.DiffuseColour,
		BlendMode:            config.BlendMode,
		Tessellation:         config.Tessellation,
		Distortion:           config.Distortion,
		SeparateTranslucency: config.SeparateTranslucency,
		TwoSided:             config.TwoSided,
	}
	m.proxies[0] = &MaterialRenderProxy{Name: m.Name, Material: m}
	m.proxies[1] = &MaterialRenderProxy{Name: m.Name, Material: m, Selected: true}
	return m
}

func (m *Material) GetName() string {
	return m.Name
}

func (m *Material) Relevance(level FeatureLevel) MaterialRelevance {
	var r MaterialRelevance
	switch {
	case m.BlendMode == BLEND_MODE_OPAQUE:
		r |= MATERIAL_RELEVANCE_OPAQUE
	case m.BlendMode == BLEND_MODE_MASKED:
		r |= MATERIAL_RELEVANCE_MASKED
	default:
		r |= MATERIAL_RELEVANCE_TRANSLUCENCY
		if m.SeparateTranslucency {
			r |= MATERIAL_RELEVANCE_SEPARATE_TRANSLUCENCY
		} else {
			r |= MATERIAL_RELEVANCE_NORMAL_TRANSLUCENCY
		}
		if m.Distortion && level >= FEATURE_LEVEL_SM4 {
			r |= MATERIAL_RELEVANCE_DISTORTION
		}
	}
	if m.Tessellation != TESSELLATION_MODE_NONE && level >= FEATURE_LEVEL_SM5 {
		r |= MATERIAL_RELEVANCE_TESSELLATION
	}
	return r
}

func (m *Material) RenderProxy(selected bool) *MaterialRenderProxy {
	if selected {
		return m.proxies[1]
	}
	return m.proxies[0]
}

func (m *Material) RequiresAdjacency(layout VertexLayoutKind, level FeatureLevel) bool {
	return level >= FEATURE_LEVEL_SM5 &&
		m.Tessellation == TESSELLATION_MODE_PN_TRIANGLES &&
		layout.SupportsTessellation()
}

/**
 * @brief What the renderer binds for a draw. Either backed directly by a
 * material, or a colour override layered on top of a parent proxy.
 */
type MaterialRenderProxy struct {
	Name     string
	Material MaterialInterface
	/** @brief Parent proxy of a colour override. Can be nil. */
	Parent   *MaterialRenderProxy
	Selected bool
	/** @brief Override colour, only meaningful when HasColour is set. */
	Colour    math.Colour
	HasColour bool
	/** @brief One-frame proxies must never outlive the frame that created them. */
	Transient bool
}

// NewColouredMaterialRenderProxy creates a one-frame colour override of parent.
func NewColouredMaterialRenderProxy(parent *MaterialRenderProxy, colour math.Colour) *MaterialRenderProxy {
	p := &MaterialRenderProxy{
		Name:      "coloured-" + uuid.NewString(),
		Parent:    parent,
		Colour:    colour,
		HasColour: true,
		Transient: true,
	}
	if parent != nil {
		p.Material = parent.Material
		p.Selected = parent.Selected
	}
	return p
}

// IsTwoSided reports whether the underlying material disables back face culling.
func (p *MaterialRenderProxy) IsTwoSided() bool {
	if p == nil {
		return false
	}
	if m, ok := p.Material.(*Material); ok {
		return m.TwoSided
	}
	return p.Parent.IsTwoSided()
}

var (
	defaultMaterialsOnce sync.Once
	defaultSurface       *Material
	defaultWireframe     *Material
)

func initDefaultMaterials() {
	defaultMaterialsOnce.Do(func() {
		defaultSurface = NewMaterial(MaterialConfig{
			Name:          DefaultMaterialName,
			DiffuseColour: math.NewVec4(1, 1, 1, 1),
		})
		defaultWireframe = NewMaterial(MaterialConfig{
			Name:          WireframeMaterialName,
			DiffuseColour: math.NewVec4(1, 1, 1, 1),
			TwoSided:      true,
		})
	})
}

// DefaultSurfaceMaterial is the process-wide opaque material used when a section has none.
func DefaultSurfaceMaterial() *Material {
	initDefaultMaterials()
	return defaultSurface
}

// DefaultWireframeMaterial is the engine material wireframe overrides are layered on.
func DefaultWireframeMaterial() *Material {
	initDefaultMaterials()
	return defaultWireframe
}
