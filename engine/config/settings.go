package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
)

/** @brief Renderer wide switches. */
type RendererSettings struct {
	FeatureLevel        string `toml:"feature_level"`
	AllowDebugViewModes bool   `toml:"allow_debug_view_modes"`
	/** @brief Disables the cached static path for every primitive. */
	ForceDynamicPath bool `toml:"force_dynamic_path"`
	/** @brief Number of frames averaged by the frame metrics. */
	FrameHistory uint32 `toml:"frame_history"`
}

/** @brief Engine show flags applied to every view family. */
type ShowSettings struct {
	Wireframe bool `toml:"wireframe"`
	Collision bool `toml:"collision"`
	Bounds    bool `toml:"bounds"`
	RichView  bool `toml:"rich_view"`
}

/**
 * @brief The render settings document.
 */
type Settings struct {
	LogLevel string           `toml:"log_level"`
	Renderer RendererSettings `toml:"renderer"`
	Show     ShowSettings     `toml:"show"`
}

// Default returns the settings used when no file is given.
func Default() *Settings {
	return &Settings{
		LogLevel: "info",
		Renderer: RendererSettings{
			FeatureLevel:        metadata.FEATURE_LEVEL_SM5.String(),
			AllowDebugViewModes: true,
			FrameHistory:        30,
		},
	}
}

// Decode reads a TOML document on top of the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Settings, error) {
	s := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(s); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidSettings, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Validate checks values the decoder cannot.
func (s *Settings) Validate() error {
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: %s", core.ErrInvalidSettings, err)
	}
	if _, err := metadata.ParseFeatureLevel(s.Renderer.FeatureLevel); err != nil {
		return fmt.Errorf("%w: %s", core.ErrInvalidSettings, err)
	}
	if s.Renderer.FrameHistory == 0 {
		return fmt.Errorf("%w: frame_history must be positive", core.ErrInvalidSettings)
	}
	return nil
}

// FeatureLevel returns the parsed feature level. Settings are validated on
// decode, so an unknown value falls back to sm5.
func (s *Settings) FeatureLevel() metadata.FeatureLevel {
	level, _ := metadata.ParseFeatureLevel(s.Renderer.FeatureLevel)
	return level
}

// ShowFlags converts the show section into engine show flags.
func (s *Settings) ShowFlags() metadata.EngineShowFlags {
	return metadata.EngineShowFlags{
		Wireframe: s.Show.Wireframe,
		Collision: s.Show.Collision,
		Bounds:    s.Show.Bounds,
	}
}

// Encode writes the settings as TOML.
func (s *Settings) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}
