package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lumine-engine/lumine/engine/core"
	"github.com/lumine-engine/lumine/engine/platform"
	"github.com/lumine-engine/lumine/engine/renderer"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	StageUninitialized Stage = iota
	// Window created, event pump available
	StageWindowReady
	// Vulkan instance created
	StageInstanceReady
	// A suitable physical device has been selected
	StageDeviceSelected
	// Logical device and graphics queue are ready to accept commands
	StageDeviceReady
	// Main loop is pumping window events
	StageRunning
	// Everything released, in reverse creation order
	StageTerminated
)

// windowSystem is the part of the platform the lifecycle depends on.
type windowSystem interface {
	Startup(applicationName string, x, y, width, height uint32) error
	PumpMessages() bool
	Shutdown() error
}

// Engine drives the bootstrap through its stages: window, instance, device
// selection, logical device, then the event loop. Each creation step runs
// exactly once and only after its predecessor succeeded. Teardown is the
// exact reverse of creation, on every path, including mid-setup failure.
type Engine struct {
	currentStage Stage
	config       ApplicationConfig
	platform     windowSystem
	backend      renderer.Backend
	clock        *core.Clock
	watcher      *configWatcher

	// stopRequested is latched by Stop and never reset, so a stop arriving
	// between Initialize and Run is not lost.
	stopRequested atomic.Bool
}

func New(cfg ApplicationConfig) *Engine {
	p := platform.New()
	return newEngine(cfg, p, renderer.NewBackend(p))
}

func newEngine(cfg ApplicationConfig, win windowSystem, backend renderer.Backend) *Engine {
	return &Engine{
		currentStage: StageUninitialized,
		config:       cfg,
		platform:     win,
		backend:      backend,
		clock:        core.NewClock(),
	}
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Initialize runs the creation sequence. On any failure the resources
// created so far are released before the error is returned; the engine ends
// up terminated and must not be reused.
func (e *Engine) Initialize() error {
	if e.currentStage != StageUninitialized {
		return fmt.Errorf("engine already initialized")
	}

	core.LogSetLevel(e.config.LogLevel)
	core.EventInitialize()
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)

	if err := e.platform.Startup(e.config.Name,
		e.config.StartPosX,
		e.config.StartPosY,
		e.config.StartWidth,
		e.config.StartHeight); err != nil {
		e.teardown()
		return err
	}
	e.currentStage = StageWindowReady

	core.LogInfo("Renderer backend %s starting...", e.backend.ID())

	if err := e.backend.CreateInstance(e.config.Name, e.config.StartWidth, e.config.StartHeight); err != nil {
		e.teardown()
		return err
	}
	e.currentStage = StageInstanceReady

	if err := e.backend.PickPhysicalDevice(); err != nil {
		e.teardown()
		return err
	}
	e.currentStage = StageDeviceSelected

	if err := e.backend.CreateLogicalDevice(); err != nil {
		e.teardown()
		return err
	}
	e.currentStage = StageDeviceReady

	if e.config.Path != "" {
		watcher, err := newConfigWatcher(e.config.Path)
		if err != nil {
			core.LogWarn("config watcher unavailable: %s", err)
		} else {
			e.watcher = watcher
		}
	}

	return nil
}

// Run pumps window events until the window asks to close or a quit event
// fires. No work is submitted to the graphics queue. Teardown runs before
// Run returns.
func (e *Engine) Run() error {
	if e.currentStage != StageDeviceReady {
		return fmt.Errorf("engine is not ready to run")
	}
	e.currentStage = StageRunning

	e.clock.Start()
	e.clock.Update()
	lastTime := e.clock.Elapsed()

	const targetFrameSeconds = 1.0 / 60.0
	var frameCount uint64

	for !e.stopRequested.Load() {
		if !e.platform.PumpMessages() {
			break
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - lastTime
		lastTime = currentTime

		core.MetricsUpdate(delta)
		frameCount++
		if frameCount%240 == 0 {
			fps, frameTime := core.MetricsFrame()
			core.LogDebug("fps: %.0f frame: %.3fms", fps, frameTime)
		}

		if delta < targetFrameSeconds {
			time.Sleep(time.Duration((targetFrameSeconds - delta) * float64(time.Second)))
		}
	}

	e.teardown()
	return nil
}

// Stop requests the main loop to exit. Safe to call from any goroutine, and
// effective even before Run has started.
func (e *Engine) Stop() {
	e.stopRequested.Store(true)
}

// Shutdown releases every resource still held. Needed when Initialize
// succeeded but Run was never reached; Run performs it on exit itself.
func (e *Engine) Shutdown() error {
	if e.currentStage == StageRunning {
		e.Stop()
		return nil
	}
	e.teardown()
	return nil
}

// teardown releases in exact reverse creation order: logical device, then
// instance, then window. Idempotent.
func (e *Engine) teardown() {
	if e.currentStage == StageTerminated {
		return
	}

	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}

	if err := e.backend.Shutdown(); err != nil {
		core.LogError("renderer shutdown: %s", err)
	}
	if err := e.platform.Shutdown(); err != nil {
		core.LogError("platform shutdown: %s", err)
	}

	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, e)
	core.EventShutdown()

	e.currentStage = StageTerminated
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if code == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("quit event received, shutting down.")
		e.Stop()
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if code != core.EVENT_CODE_KEY_PRESSED {
		return false
	}
	key := core.KeyCode(data.Data.U16[0])
	if key == core.KEY_ESCAPE {
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, e, core.EventContext{})
		return true
	}
	return false
}
