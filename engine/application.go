package engine

import (
	"github.com/spaghettifunk/meshproxy/engine/renderer"
	"github.com/spaghettifunk/meshproxy/engine/systems"
)

type ApplicationConfig struct {
	// The application name used in logging.
	Name string
	// Render settings file. Empty uses the built in defaults.
	SettingsPath string
	// Reload the settings file whenever it changes on disk.
	WatchSettings bool
	// Overrides the log level of the settings file, if set.
	LogLevel string
	// Stop after this many frames. Zero runs until quit.
	FrameLimit uint64
	// Target frame time in seconds. Zero renders as fast as possible.
	TargetFrameSeconds float64
	// Views rendered every frame, if empty a single "main" view is used.
	Views []systems.ViewConfig
	// Defaults to a headless recording backend.
	Backend          renderer.RendererBackend
	MaxMaterialCount uint32
	RenderQueueSize  int
}
