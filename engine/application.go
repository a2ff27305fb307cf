package engine

import (
	"github.com/spaghettifunk/quadrant/engine/config"
)

type ApplicationConfig struct {
	// Window starting width, if applicable.
	StartWidth int
	// Window starting height, if applicable.
	StartHeight int
	// The application name used in windowing, if applicable.
	Name      string
	Resizable bool
	TPS       int
	LogLevel  string

	// Directory holding the scene files.
	DataDir    string
	WatchScene bool
	SaveOnExit bool

	SnapshotOutput      string
	SnapshotSupersample int
}

// NewApplicationConfig maps loaded settings onto the application.
func NewApplicationConfig(cfg config.Config) *ApplicationConfig {
	return &ApplicationConfig{
		StartWidth:          cfg.Window.Width,
		StartHeight:         cfg.Window.Height,
		Name:                cfg.Window.Title,
		Resizable:           cfg.Window.Resizable,
		TPS:                 cfg.Window.TPS,
		LogLevel:            cfg.Log.Level,
		DataDir:             cfg.Scene.DataDir,
		WatchScene:          cfg.Scene.Watch,
		SaveOnExit:          cfg.Scene.SaveOnExit,
		SnapshotOutput:      cfg.Snapshot.Output,
		SnapshotSupersample: cfg.Snapshot.Supersample,
	}
}
