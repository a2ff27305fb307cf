// Package platform owns the desktop window and keyboard through ebiten.
package platform

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spaghettifunk/quadrant/engine/core"
)

var startTime = time.Now()

// Keys polled every frame and the engine key codes they map to.
var keyMap = map[ebiten.Key]core.KeyCode{
	ebiten.KeyBackspace:  core.KEY_BACKSPACE,
	ebiten.KeyTab:        core.KEY_TAB,
	ebiten.KeyEnter:      core.KEY_ENTER,
	ebiten.KeyEscape:     core.KEY_ESCAPE,
	ebiten.KeySpace:      core.KEY_SPACE,
	ebiten.KeyArrowLeft:  core.KEY_LEFT,
	ebiten.KeyArrowUp:    core.KEY_UP,
	ebiten.KeyArrowRight: core.KEY_RIGHT,
	ebiten.KeyArrowDown:  core.KEY_DOWN,
	ebiten.KeyA:          core.KEY_A,
	ebiten.KeyD:          core.KEY_D,
	ebiten.KeyF12:        core.KEY_F12,
}

type Platform struct {
	title  string
	width  int
	height int
}

func New() *Platform {
	return &Platform{}
}

// Startup configures the window. It must be called before ebiten.RunGame;
// the window itself opens when the game loop starts.
func (p *Platform) Startup(applicationName string, width, height int, resizable bool, tps int) error {
	p.title = applicationName
	p.width = width
	p.height = height

	ebiten.SetWindowTitle(applicationName)
	ebiten.SetWindowSize(width, height)
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetTPS(tps)
	// Quit is handled as a regular event so the scene can be saved first.
	ebiten.SetWindowClosingHandled(true)

	core.LogInfo("window configured: %s %dx%d @ %d TPS", applicationName, width, height, tps)
	return nil
}

func (p *Platform) Shutdown() error {
	return nil
}

// PumpMessages feeds the current keyboard state into input. It returns
// false once the user asked to close the window.
func (p *Platform) PumpMessages(input *core.InputState) bool {
	for key, code := range keyMap {
		input.ProcessKey(code, ebiten.IsKeyPressed(key))
	}
	return !ebiten.IsWindowBeingClosed()
}

// GetAbsoluteTime returns the time since the process started.
func GetAbsoluteTime() time.Duration {
	return time.Since(startTime)
}
