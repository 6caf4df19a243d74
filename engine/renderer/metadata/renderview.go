package metadata

/** @brief Engine show flags toggled per view family. */
type EngineShowFlags struct {
	Wireframe bool
	Collision bool
	Bounds    bool
}

/**
 * @brief State shared by every view rendered in one frame.
 */
type ViewFamily struct {
	FrameNumber  uint64
	FeatureLevel FeatureLevel
	ShowFlags    EngineShowFlags
	/** @brief Set by editor style views that layer debug information on the scene. */
	EditorView    bool
	DebugViewMode RendererDebugViewMode
	/** @brief Engine wide switch for wireframe and other debug view modes. */
	AllowDebugViewModes bool
}

// IsRichView reports whether the family needs per-frame draw data for debug
// or editor modifiers, which rules out cached static draws.
func (f *ViewFamily) IsRichView() bool {
	if f == nil {
		return false
	}
	return f.EditorView || f.DebugViewMode != RENDERER_VIEW_MODE_DEFAULT
}

/**
 * @brief One viewpoint rendered in the frame.
 */
type SceneView struct {
	/** @brief Position of the view in the frame's view list. */
	Index  int
	Family *ViewFamily
	/** @brief Primitive ids that must not be drawn in this view. */
	HiddenPrimitives map[uint32]struct{}
}

// IsPrimitiveHidden reports whether the view explicitly hides the primitive.
func (v *SceneView) IsPrimitiveHidden(primitiveID uint32) bool {
	if v == nil || v.HiddenPrimitives == nil {
		return false
	}
	_, ok := v.HiddenPrimitives[primitiveID]
	return ok
}

/**
 * @brief How a primitive participates in one view.
 */
type ViewRelevance struct {
	DrawRelevance    bool
	ShadowRelevance  bool
	StaticRelevance  bool
	DynamicRelevance bool

	RenderInMainPass     bool
	UsesLightingChannels bool
	RenderCustomDepth    bool

	OpaqueRelevance               bool
	MaskedRelevance               bool
	TranslucencyRelevance         bool
	DistortionRelevance           bool
	SeparateTranslucencyRelevance bool
	NormalTranslucencyRelevance   bool
	TessellationRelevance         bool
}
