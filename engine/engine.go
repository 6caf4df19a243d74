package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/meshproxy/engine/config"
	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     atomic.Bool
	settings      *config.Store
	watcher       *config.Watcher
	systemManager *systems.SystemManager
	clock         *core.Clock
	lastTime      float64
	frameCount    uint64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("engine needs a game with an application config")
	}
	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		clock:        core.NewClock(),
	}

	settings, err := loadSettings(g.ApplicationConfig)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.settings = config.NewStore(settings)
	if err := core.SetLogLevel(settings.LogLevel); err != nil {
		return nil, err
	}

	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		Settings:         e.settings,
		Backend:          g.ApplicationConfig.Backend,
		Views:            g.ApplicationConfig.Views,
		MaxMaterialCount: g.ApplicationConfig.MaxMaterialCount,
		RenderQueueSize:  g.ApplicationConfig.RenderQueueSize,
	})
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.systemManager = sm
	g.SystemManager = sm

	if g.FnBoot != nil {
		if err := g.FnBoot(); err != nil {
			return nil, err
		}
	}
	e.currentStage = EngineStageBootComplete
	return e, nil
}

func loadSettings(cfg *ApplicationConfig) (*config.Settings, error) {
	settings := config.Default()
	if cfg.SettingsPath != "" {
		s, err := config.Load(cfg.SettingsPath)
		if err != nil {
			return nil, err
		}
		settings = s
	}
	if cfg.LogLevel != "" {
		settings.LogLevel = cfg.LogLevel
		if err := settings.Validate(); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("engine can not be initialized from stage %d", e.currentStage)
	}
	e.currentStage = EngineStageInitializing

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)

	if err := e.systemManager.Initialize(); err != nil {
		return err
	}

	cfg := e.gameInstance.ApplicationConfig
	if cfg.WatchSettings && cfg.SettingsPath != "" {
		w, err := config.NewWatcher(cfg.SettingsPath, e.settings)
		if err != nil {
			return err
		}
		e.watcher = w
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageInitialized
	return nil
}

/**
 * @brief Runs the frame loop until Stop is called, the application quit event
 * fires or the configured frame limit is reached.
 */
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine can not run from stage %d", e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	cfg := e.gameInstance.ApplicationConfig
	rs := e.systemManager.RendererSystem

	for e.isRunning.Load() {
		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStart := time.Now()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err)
				e.isRunning.Store(false)
				return err
			}
		}

		// Settings reloads recreate proxies here, on the game goroutine.
		if err := rs.Update(); err != nil {
			e.isRunning.Store(false)
			return err
		}

		packet, err := rs.RenderFrame(delta)
		if err != nil {
			core.LogError("render frame failed, shutting down: %s", err)
			e.isRunning.Store(false)
			return err
		}

		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(packet, delta); err != nil {
				core.LogError("game render failed, shutting down: %s", err)
				e.isRunning.Store(false)
				return err
			}
		}

		e.frameCount++
		if cfg.FrameLimit > 0 && e.frameCount >= cfg.FrameLimit {
			e.isRunning.Store(false)
		}

		// If there is time left, give it back to the OS.
		if cfg.TargetFrameSeconds > 0 {
			remaining := time.Duration(cfg.TargetFrameSeconds*float64(time.Second)) - time.Since(frameStart)
			if remaining > 0 {
				time.Sleep(remaining)
			}
		}

		e.lastTime = currentTime
	}

	static, dynamic := rs.Metrics.AverageBatches()
	core.LogInfo("rendered %d frames, %.0f fps, avg %.3fms, avg batches static %.1f dynamic %.1f",
		e.frameCount, rs.Metrics.FPS(), rs.Metrics.AverageFrameMS(), static, dynamic)
	return nil
}

// Stop asks the frame loop to exit after the current frame. Safe from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)
	e.clock.Stop()

	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogWarn("settings watcher close failed: %s", err)
		}
	}
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	return e.systemManager.Shutdown()
}

// Settings returns the live render settings.
func (e *Engine) Settings() *config.Store {
	return e.settings
}

func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}
