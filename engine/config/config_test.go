package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("default window = %dx%d, want 1024x768", cfg.Window.Width, cfg.Window.Height)
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", DefaultFile)
	want := Default()
	want.Window.Width = 320
	want.Window.Title = "tiny"
	want.Scene.SaveOnExit = true
	want.Log.Level = "debug"

	if err := Write(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte("[window]\nheight = 600\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Height != 600 || cfg.Window.Width != 1024 || cfg.Scene.DataDir != "data" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("QUADRANT_WINDOW_WIDTH", "640")
	t.Setenv("QUADRANT_SCENE_DATA_DIR", "/srv/scene")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 640 {
		t.Errorf("width = %d, want 640", cfg.Window.Width)
	}
	if cfg.Scene.DataDir != "/srv/scene" {
		t.Errorf("data dir = %q", cfg.Scene.DataDir)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not toml", "[window\nwidth = "},
		{"zero width", "[window]\nwidth = 0\n"},
		{"negative supersample", "[snapshot]\nsupersample = -1\n"},
		{"empty data dir", "[scene]\ndata_dir = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFile)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
