package engine

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"github.com/spaghettifunk/quadrant/engine/assets"
	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/draw"
	"github.com/spaghettifunk/quadrant/engine/geometry"
	"github.com/spaghettifunk/quadrant/engine/math"
	"github.com/spaghettifunk/quadrant/engine/platform"
	"github.com/spaghettifunk/quadrant/engine/scene"
	"github.com/spaghettifunk/quadrant/engine/snapshot"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released everything it owned
	EngineStageShutdown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	events       *core.EventSystem
	input        *core.InputState
	clock        *core.Clock
	metrics      *core.Metrics
	lastTime     time.Duration
	width        int
	height       int

	data    *scene.DataManager
	assets  *assets.AssetManager
	drawing *draw.DrawingSystem
	watcher *scene.Watcher

	host *host
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, errors.New("engine: game and application config are required")
	}
	if g.ApplicationConfig.LogLevel != "" {
		if err := core.SetLogLevel(g.ApplicationConfig.LogLevel); err != nil {
			return nil, err
		}
	}

	events := core.NewEventSystem()
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		platform:     platform.New(),
		events:       events,
		input:        core.NewInputState(events),
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}, nil
}

// Initialize loads the scene and its media and prepares the drawing
// system. No window is opened, so a headless Snapshot can follow directly.
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine: Initialize called in stage %d", e.currentStage)
	}
	e.currentStage = EngineStageInitializing

	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	e.events.Register(core.EVENT_CODE_KEY_RELEASED, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e.onResized)
	e.events.Register(core.EVENT_CODE_SCENE_CHANGED, e.onSceneChanged)

	cfg := e.gameInstance.ApplicationConfig
	data, am, err := loadScene(cfg.DataDir)
	if err != nil {
		return err
	}
	e.data = data
	e.assets = am
	e.drawing = draw.NewDrawingSystem(data, am, math.NewVec2(float32(e.width), float32(e.height)))

	if cfg.WatchScene {
		w, err := scene.NewWatcher(cfg.DataDir)
		if err != nil {
			return err
		}
		e.watcher = w
		go e.forwardReloads(w)
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e.data); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func loadScene(dir string) (*scene.DataManager, *assets.AssetManager, error) {
	data, err := scene.LoadDataManager(dir)
	if err != nil {
		return nil, nil, err
	}
	am := assets.NewAssetManager()
	if err := am.Initialize(dir, data.Resources); err != nil {
		return nil, nil, err
	}
	return data, am, nil
}

// forwardReloads turns watcher notifications into queued events so the
// scene is only touched from the frame loop.
func (e *Engine) forwardReloads(w *scene.Watcher) {
	for path := range w.Reloads() {
		e.events.Post(core.EventContext{
			Type: core.EVENT_CODE_SCENE_CHANGED,
			Data: &core.FileEvent{Path: path},
		})
	}
}

// Run opens the window and blocks until the game quits.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine: Run called in stage %d", e.currentStage)
	}
	cfg := e.gameInstance.ApplicationConfig
	if err := e.platform.Startup(cfg.Name, e.width, e.height, cfg.Resizable, cfg.TPS); err != nil {
		return err
	}

	e.currentStage = EngineStageRunning
	e.isRunning = true
	e.clock.Start()
	e.lastTime = 0

	e.host = newHost(e)
	runErr := runGame(e.host)

	if err := e.shutdown(); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// update advances one tick. It returns false once the engine should stop.
func (e *Engine) update() (bool, error) {
	if !e.platform.PumpMessages(e.input) {
		e.isRunning = false
	}
	e.events.Dispatch()
	if !e.isRunning {
		return false, nil
	}
	if e.isSuspended {
		return true, nil
	}

	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(e.data, e.input, delta.Seconds()); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			e.isRunning = false
			return false, err
		}
	}

	e.metrics.Update(delta)
	e.input.Update()
	e.lastTime = currentTime
	return true, nil
}

// Frame builds the vertex data of the current scene at time now.
func (e *Engine) Frame(now time.Time) (*draw.Frame, error) {
	if e.drawing == nil {
		return nil, errors.New("engine: not initialized")
	}
	return e.drawing.Frame(now)
}

// Snapshot renders the current scene on the CPU and writes it as WebP.
// An empty path uses the configured snapshot output.
func (e *Engine) Snapshot(path string) error {
	cfg := e.gameInstance.ApplicationConfig
	if path == "" {
		path = cfg.SnapshotOutput
	}
	frame, err := e.Frame(time.Now())
	if err != nil {
		return err
	}
	img, err := snapshot.Render(frame, e.assets, snapshot.Options{
		Width:       e.width,
		Height:      e.height,
		Supersample: cfg.SnapshotSupersample,
		Background:  color.NRGBA{A: 255},
	})
	if err != nil {
		return err
	}
	if err := snapshot.WriteFile(path, img); err != nil {
		return err
	}
	core.LogInfo("snapshot of %d quads written to %s", frame.QuadCount(), path)
	return nil
}

// Shutdown stops a running engine on its next tick, or releases resources
// right away when the game loop is not running.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageRunning {
		e.events.Post(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return nil
	}
	return e.shutdown()
}

func (e *Engine) shutdown() error {
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	var errs []error
	if e.watcher != nil {
		errs = append(errs, e.watcher.Close())
		e.watcher = nil
	}
	if e.data != nil && e.gameInstance.ApplicationConfig.SaveOnExit {
		errs = append(errs, e.data.SaveComponents(), e.data.SaveEntities())
	}
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	errs = append(errs, e.platform.Shutdown())

	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}

func (e *Engine) GetFramebufferSize() (int, int) {
	return e.width, e.height
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Data() *scene.DataManager {
	return e.data
}

func (e *Engine) Events() *core.EventSystem {
	return e.events
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if context.Type != core.EVENT_CODE_KEY_PRESSED {
		return false
	}

	switch ke.KeyCode {
	case core.KEY_ESCAPE:
		e.events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return true
	case core.KEY_RIGHT:
		e.data.Components.KeyboardResponse(geometry.DirectionForward)
		return true
	case core.KEY_LEFT:
		e.data.Components.KeyboardResponse(geometry.DirectionBackward)
		return true
	case core.KEY_F12:
		path := filepath.Join(filepath.Dir(e.gameInstance.ApplicationConfig.SnapshotOutput),
			fmt.Sprintf("snapshot-%d.webp", time.Now().Unix()))
		if err := e.Snapshot(path); err != nil {
			core.LogError("snapshot failed: %s", err)
		}
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if re.Width == e.width && re.Height == e.height {
		return true
	}
	e.width = re.Width
	e.height = re.Height
	core.LogDebug("Window resize: %d, %d", re.Width, re.Height)

	if re.Width == 0 || re.Height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	e.drawing.Resize(math.NewVec2(float32(re.Width), float32(re.Height)))
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(re.Width, re.Height); err != nil {
			core.LogError(err.Error())
		}
	}
	return true
}

// onSceneChanged reloads the scene after one of its YAML files changed, or
// a single texture after an image changed. A scene that fails to load is
// reported and the previous one stays active.
func (e *Engine) onSceneChanged(context core.EventContext) bool {
	fe, ok := context.Data.(*core.FileEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if !scene.IsSceneFile(fe.Path) {
		if err := e.assets.Reload(fe.Path); err != nil {
			core.LogError("reloading %s: %s", fe.Path, err)
			return true
		}
		if e.host != nil {
			e.host.invalidateTextures()
		}
		return true
	}

	data, am, err := loadScene(e.gameInstance.ApplicationConfig.DataDir)
	if err != nil {
		core.LogError("scene reload failed, keeping the current scene: %s", err)
		return true
	}
	e.data = data
	e.assets = am
	e.drawing = draw.NewDrawingSystem(data, am, math.NewVec2(float32(e.width), float32(e.height)))
	if e.host != nil {
		e.host.invalidateTextures()
	}
	core.LogInfo("scene reloaded after %s changed", filepath.Base(fe.Path))
	return true
}
