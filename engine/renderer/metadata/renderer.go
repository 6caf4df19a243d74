package metadata

import (
	"fmt"
	"strings"
)

/** @brief The rendering quality tier the scene is drawn at. */
type FeatureLevel uint8

const (
	/** @brief Mobile class hardware, no tessellation or distortion. */
	FEATURE_LEVEL_ES31 FeatureLevel = iota
	/** @brief Desktop class hardware without tessellation. */
	FEATURE_LEVEL_SM4
	/** @brief Full desktop feature set. */
	FEATURE_LEVEL_SM5
)

func (f FeatureLevel) String() string {
	switch f {
	case FEATURE_LEVEL_ES31:
		return "es31"
	case FEATURE_LEVEL_SM4:
		return "sm4"
	case FEATURE_LEVEL_SM5:
		return "sm5"
	}
	return fmt.Sprintf("FeatureLevel(%d)", uint8(f))
}

// ParseFeatureLevel maps a settings value onto a FeatureLevel.
func ParseFeatureLevel(s string) (FeatureLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "es31":
		return FEATURE_LEVEL_ES31, nil
	case "sm4":
		return FEATURE_LEVEL_SM4, nil
	case "sm5", "":
		return FEATURE_LEVEL_SM5, nil
	}
	return FEATURE_LEVEL_SM5, fmt.Errorf("unknown feature level %q", s)
}

type RendererDebugViewMode uint32

const (
	RENDERER_VIEW_MODE_DEFAULT  RendererDebugViewMode = 0
	RENDERER_VIEW_MODE_LIGHTING RendererDebugViewMode = 1
	RENDERER_VIEW_MODE_NORMALS  RendererDebugViewMode = 2
)

/** @brief Depth priority groups used by debug drawing. */
const (
	SDPG_WORLD      uint8 = 0
	SDPG_FOREGROUND uint8 = 1
)
