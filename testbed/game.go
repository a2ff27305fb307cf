package testbed

import (
	"time"

	"github.com/spaghettifunk/quadrant/engine"
	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/scene"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  int
	height int

	// Animated components, cycled with the space bar.
	animated []scene.Index
	elapsed  float64
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize(data *scene.DataManager) error {
	core.LogDebug("TestGame Initialize fn....")

	state := g.State.(*gameState)
	state.animated = data.Components.ComponentsOfType(scene.ComponentTypeAnimation2D)

	program := data.GameData.Program
	core.LogInfo("running %s %s with %d entities", program.Name, program.Version, len(data.Entities.Entities))
	for _, a := range data.GameData.Authors {
		core.LogDebug("author: %s <%s>", a.Name, a.Email)
	}
	return nil
}

func (g *TestGame) Update(data *scene.DataManager, input *core.InputState, deltaTime float64) error {
	state := g.State.(*gameState)
	state.elapsed += deltaTime

	// Space switches every animated sprite to its next animation.
	if input.IsKeyDown(core.KEY_SPACE) && input.WasKeyUp(core.KEY_SPACE) {
		// A reload may have changed the component list.
		state.animated = data.Components.ComponentsOfType(scene.ComponentTypeAnimation2D)
		now := time.Now()
		for _, index := range state.animated {
			c, err := data.Components.Get(index)
			if err != nil {
				return err
			}
			anim := c.Data.(*scene.Animation2DData)
			if len(anim.Animations) == 0 {
				continue
			}
			next := (anim.CurrentAnimation + 1) % scene.Index(len(anim.Animations))
			if err := anim.SetAnimation(next, now); err != nil {
				return err
			}
			core.LogDebug("component %d now plays animation %d", index, next)
		}
	}
	return nil
}

func (g *TestGame) OnResize(width int, height int) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	core.LogDebug("testbed resized to %dx%d", width, height)
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	core.LogInfo("testbed ran for %.1fs", state.elapsed)
	return nil
}
