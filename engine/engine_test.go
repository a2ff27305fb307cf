package engine

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/scene"
)

var sceneFiles = map[string]string{
	scene.GameDataFile:  "program:\n  name: engine-test\n",
	scene.ResourcesFile: "textures:\n  - index: 0\n    file: solid.png\n",
	scene.ComponentsFile: `
components:
  - id: 0
    component_type: quad
    component_data:
      texture_index: 0
      transform_data: {translation: [0, 0], scaling: [64, 48], rotation: 0}
      layer: background
  - id: 1
    component_type: animation2d
    component_data:
      texture_index: 0
      spritesheet_index: 0
      current_animation: 0
      animations:
        - {frames: [0, 1], animation_type: loop, frame_length: 100}
      transform_data: {translation: [0, 0], scaling: [8, 8], rotation: 0}
      movement:
        delta_translate: {x: 4, y: 0}
        delta_rotation: 0
        delta_scale: {x: 0, y: 0}
      layer: sprite
`,
	scene.EntitiesFile: `
entities:
  - {id: 0, entity_type: background, components: [0]}
  - {id: 1, entity_type: sprite, components: [1]}
`,
	scene.BackgroundsFile:  "[]",
	scene.MapsFile:         "[]",
	scene.SpritesheetsFile: "- {index: 0, pitch: 2, size: {x: 16, y: 8}, frame_size: {x: 8, y: 8}}\n",
}

func writeScene(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range sceneFiles {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	f, err := os.Create(filepath.Join(dir, "solid.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newTestEngine(t *testing.T, dir string, saveOnExit bool) *Engine {
	t.Helper()
	g := &Game{ApplicationConfig: &ApplicationConfig{
		Name:                "test",
		StartWidth:          64,
		StartHeight:         48,
		TPS:                 60,
		LogLevel:            "error",
		DataDir:             dir,
		SaveOnExit:          saveOnExit,
		SnapshotOutput:      filepath.Join(t.TempDir(), "shot.webp"),
		SnapshotSupersample: 1,
	}}
	e, err := New(g)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return e
}

func spriteX(t *testing.T, e *Engine) float32 {
	t.Helper()
	c, err := e.Data().Components.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	return c.Data.TransformData().Translation.X
}

func TestEngineSnapshot(t *testing.T) {
	e := newTestEngine(t, writeScene(t), false)
	if e.Stage() != EngineStageInitialized {
		t.Fatalf("stage = %d", e.Stage())
	}

	out := filepath.Join(t.TempDir(), "snap", "scene.webp")
	if err := e.Snapshot(out); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("snapshot not written: %v", err)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if e.Stage() != EngineStageShutdown {
		t.Errorf("stage after Shutdown = %d", e.Stage())
	}
}

func TestEngineKeyboard(t *testing.T) {
	e := newTestEngine(t, writeScene(t), false)

	e.input.ProcessKey(core.KEY_RIGHT, true)
	if x := spriteX(t, e); x != 4 {
		t.Errorf("x after right = %v, want 4", x)
	}
	e.input.ProcessKey(core.KEY_RIGHT, false)
	e.input.ProcessKey(core.KEY_LEFT, true)
	e.input.ProcessKey(core.KEY_LEFT, false)
	e.input.ProcessKey(core.KEY_LEFT, true)
	if x := spriteX(t, e); x != -4 {
		t.Errorf("x after right, left, left = %v, want -4", x)
	}

	e.isRunning = true
	e.input.ProcessKey(core.KEY_ESCAPE, true)
	if e.isRunning {
		t.Error("escape should stop the engine")
	}
}

func TestEngineResize(t *testing.T) {
	e := newTestEngine(t, writeScene(t), false)
	before := e.drawing.Projection()

	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.ResizeEvent{Width: 128, Height: 96}})
	if w, h := e.GetFramebufferSize(); w != 128 || h != 96 {
		t.Errorf("size = %dx%d", w, h)
	}
	if e.drawing.Projection().Compare(before, 0) {
		t.Error("projection not recomputed on resize")
	}

	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.ResizeEvent{}})
	if !e.isSuspended {
		t.Error("zero size should suspend")
	}
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.ResizeEvent{Width: 64, Height: 48}})
	if e.isSuspended {
		t.Error("restoring the window should resume")
	}
}

func TestEngineSceneReload(t *testing.T) {
	dir := writeScene(t)
	e := newTestEngine(t, dir, false)
	e.input.ProcessKey(core.KEY_RIGHT, true)

	// A broken edit keeps the running scene.
	components := filepath.Join(dir, scene.ComponentsFile)
	if err := os.WriteFile(components, []byte("components: [{id: 0, component_type: nope}]"), 0o644); err != nil {
		t.Fatal(err)
	}
	e.events.Post(core.EventContext{Type: core.EVENT_CODE_SCENE_CHANGED, Data: &core.FileEvent{Path: components}})
	e.events.Dispatch()
	if x := spriteX(t, e); x != 4 {
		t.Errorf("x after failed reload = %v, want the running value 4", x)
	}

	// A valid edit replaces it.
	if err := os.WriteFile(components, []byte(sceneFiles[scene.ComponentsFile]), 0o644); err != nil {
		t.Fatal(err)
	}
	e.events.Post(core.EventContext{Type: core.EVENT_CODE_SCENE_CHANGED, Data: &core.FileEvent{Path: components}})
	e.events.Dispatch()
	if x := spriteX(t, e); x != 0 {
		t.Errorf("x after reload = %v, want 0 from disk", x)
	}

	// Texture edits only reload the image.
	texture := filepath.Join(dir, "solid.png")
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, A: 255})
	f, _ := os.Create(texture)
	png.Encode(f, img)
	f.Close()
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_SCENE_CHANGED, Data: &core.FileEvent{Path: texture}})
	if size, err := e.assets.TextureSize(0); err != nil || size.X != 4 {
		t.Errorf("texture size after reload = %v, %v", size, err)
	}
}

func TestEngineSaveOnExit(t *testing.T) {
	dir := writeScene(t)
	e := newTestEngine(t, dir, true)
	e.input.ProcessKey(core.KEY_RIGHT, true)
	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}

	data, err := scene.LoadDataManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := data.Components.Get(1)
	if x := c.Data.TransformData().Translation.X; x != 4 {
		t.Errorf("saved x = %v, want 4", x)
	}
}

func TestEngineLifecycleErrors(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should fail")
	}

	e := newTestEngine(t, writeScene(t), false)
	if err := e.Initialize(); err == nil {
		t.Error("second Initialize should fail")
	}

	g := &Game{ApplicationConfig: &ApplicationConfig{StartWidth: 8, StartHeight: 8, DataDir: t.TempDir()}}
	e, err := New(g)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Initialize on empty dir = %v, want os.ErrNotExist", err)
	}
	if err := e.Run(); err == nil {
		t.Error("Run after failed Initialize should fail")
	}
}
