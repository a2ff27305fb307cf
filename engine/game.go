package engine

import (
	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/scene"
)

// Game is the application side of the engine. Every callback is optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func(data *scene.DataManager) error
type Update func(data *scene.DataManager, input *core.InputState, deltaTime float64) error
type OnResize func(width int, height int) error
type Shutdown func() error
