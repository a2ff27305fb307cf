// Package config loads engine settings from a TOML file, with environment
// overrides, and writes the default file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spf13/viper"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "quadrant.toml"

// Environment variables named QUADRANT_<SECTION>_<KEY> override the file.
const envPrefix = "QUADRANT"

type WindowConfig struct {
	Title     string `mapstructure:"title" toml:"title"`
	Width     int    `mapstructure:"width" toml:"width"`
	Height    int    `mapstructure:"height" toml:"height"`
	Resizable bool   `mapstructure:"resizable" toml:"resizable"`
	// Ticks per second of the update loop.
	TPS int `mapstructure:"tps" toml:"tps"`
}

type SceneConfig struct {
	// Directory holding the scene YAML files and the media they reference.
	DataDir string `mapstructure:"data_dir" toml:"data_dir"`
	// Reload the scene when its files change.
	Watch bool `mapstructure:"watch" toml:"watch"`
	// Write component state back on shutdown.
	SaveOnExit bool `mapstructure:"save_on_exit" toml:"save_on_exit"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
}

type SnapshotConfig struct {
	Output      string `mapstructure:"output" toml:"output"`
	Supersample int    `mapstructure:"supersample" toml:"supersample"`
}

type Config struct {
	Window   WindowConfig   `mapstructure:"window" toml:"window"`
	Scene    SceneConfig    `mapstructure:"scene" toml:"scene"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
	Snapshot SnapshotConfig `mapstructure:"snapshot" toml:"snapshot"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "Quadrant",
			Width:     1024,
			Height:    768,
			Resizable: true,
			TPS:       60,
		},
		Scene: SceneConfig{
			DataDir: "data",
			Watch:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Snapshot: SnapshotConfig{
			Output:      "snapshot.webp",
			Supersample: 2,
		},
	}
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("window.title", cfg.Window.Title)
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("window.resizable", cfg.Window.Resizable)
	v.SetDefault("window.tps", cfg.Window.TPS)
	v.SetDefault("scene.data_dir", cfg.Scene.DataDir)
	v.SetDefault("scene.watch", cfg.Scene.Watch)
	v.SetDefault("scene.save_on_exit", cfg.Scene.SaveOnExit)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("snapshot.output", cfg.Snapshot.Output)
	v.SetDefault("snapshot.supersample", cfg.Snapshot.Supersample)
}

// Load reads path (DefaultFile when empty). A missing file is not an error:
// defaults and environment overrides still apply.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		core.LogDebug("no config file at %s, using defaults", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot start with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("config: window.tps must be positive, got %d", c.Window.TPS)
	}
	if c.Scene.DataDir == "" {
		return errors.New("config: scene.data_dir is empty")
	}
	if c.Snapshot.Supersample < 0 {
		return fmt.Errorf("config: snapshot.supersample must not be negative, got %d", c.Snapshot.Supersample)
	}
	return nil
}

// Write stores cfg as TOML at path.
func Write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
