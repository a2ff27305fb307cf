// Package assets loads the textures and fonts listed in a scene's
// resources and keeps them by index.
package assets

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/jobs"
	"github.com/spaghettifunk/quadrant/engine/math"
	"github.com/spaghettifunk/quadrant/engine/scene"
	"github.com/spaghettifunk/quadrant/engine/text"
)

type AssetType int

const (
	AssetTypeNone AssetType = iota
	AssetTypeTexture
	AssetTypeFont
)

// AssetManager holds decoded textures and fonts. It is safe for concurrent
// use; the host reloads assets from the watcher goroutine.
type AssetManager struct {
	dir       string
	textures  map[scene.Index]*image.NRGBA
	fonts     map[scene.Index]*text.Font
	paths     map[string]scene.Index
	fontPaths map[string]scene.Index

	mutex sync.RWMutex
}

func NewAssetManager() *AssetManager {
	return &AssetManager{
		textures:  make(map[scene.Index]*image.NRGBA),
		fonts:     make(map[scene.Index]*text.Font),
		paths:     make(map[string]scene.Index),
		fontPaths: make(map[string]scene.Index),
	}
}

// Initialize loads every resource, decoding files in parallel. Paths are
// relative to dir.
func (am *AssetManager) Initialize(dir string, resources scene.Resources) error {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	am.dir = dir

	js, err := jobs.NewJobSystem(runtime.NumCPU(), len(resources.Textures)+len(resources.Fonts))
	if err != nil {
		return err
	}

	// Workers only write their own slot.
	textures := make([]*image.NRGBA, len(resources.Textures))
	fonts := make([]*text.Font, len(resources.Fonts))

	var submitErr error
	for i, entry := range resources.Textures {
		path := filepath.Join(dir, entry.File)
		if determineAssetType(path) != AssetTypeTexture {
			submitErr = fmt.Errorf("texture %d: unsupported file %s", entry.Index, entry.File)
			break
		}
		submitErr = js.Submit(jobs.JobTask{
			Name: path,
			Run: func() error {
				img, err := LoadTexture(path)
				textures[i] = img
				return err
			},
			OnComplete: func() {
				core.LogDebug("loaded texture %d (%dx%d) from %s", entry.Index, textures[i].Bounds().Dx(), textures[i].Bounds().Dy(), path)
			},
		})
		if submitErr != nil {
			break
		}
	}
	for i, entry := range resources.Fonts {
		if submitErr != nil {
			break
		}
		path := filepath.Join(dir, entry.File)
		if determineAssetType(path) != AssetTypeFont {
			submitErr = fmt.Errorf("font %d: unsupported file %s", entry.Index, entry.File)
			break
		}
		submitErr = js.Submit(jobs.JobTask{
			Name: path,
			Run: func() error {
				font, err := LoadFont(path)
				fonts[i] = font
				return err
			},
			OnComplete: func() {
				core.LogDebug("loaded font %d (%s) from %s", entry.Index, fonts[i].Face, path)
			},
		})
	}

	// Always drain the pool so no worker outlives Initialize.
	if err := errors.Join(submitErr, js.Shutdown()); err != nil {
		return err
	}

	for i, entry := range resources.Textures {
		am.textures[entry.Index] = textures[i]
		am.paths[filepath.Join(dir, entry.File)] = entry.Index
	}
	for i, entry := range resources.Fonts {
		am.fonts[entry.Index] = fonts[i]
		am.fontPaths[filepath.Join(dir, entry.File)] = entry.Index
	}
	return nil
}

// Reload decodes a texture or font again after its file changed. Paths
// that are not a loaded asset are ignored.
func (am *AssetManager) Reload(path string) error {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if index, ok := am.paths[path]; ok {
		img, err := LoadTexture(path)
		if err != nil {
			return err
		}
		am.textures[index] = img
		core.LogInfo("reloaded texture %d from %s", index, path)
		return nil
	}
	if index, ok := am.fontPaths[path]; ok {
		font, err := LoadFont(path)
		if err != nil {
			return err
		}
		am.fonts[index] = font
		core.LogInfo("reloaded font %d from %s", index, path)
	}
	return nil
}

// Texture returns the decoded image at index.
func (am *AssetManager) Texture(index scene.Index) (*image.NRGBA, error) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	img, ok := am.textures[index]
	if !ok {
		return nil, fmt.Errorf("%w: texture %d", core.ErrMissingTexture, index)
	}
	return img, nil
}

// TextureSize returns the texture's size in texels.
func (am *AssetManager) TextureSize(index scene.Index) (math.Vec2, error) {
	img, err := am.Texture(index)
	if err != nil {
		return math.Vec2{}, err
	}
	b := img.Bounds()
	return math.NewVec2(float32(b.Dx()), float32(b.Dy())), nil
}

func (am *AssetManager) Font(index scene.Index) (*text.Font, error) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	font, ok := am.fonts[index]
	if !ok {
		return nil, fmt.Errorf("%w: font %d", core.ErrMissingFont, index)
	}
	return font, nil
}

// AddTexture registers an already decoded image, replacing any texture at
// index.
func (am *AssetManager) AddTexture(index scene.Index, img *image.NRGBA) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.textures[index] = img
}

// AddFont registers an already built font.
func (am *AssetManager) AddFont(index scene.Index, font *text.Font) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.fonts[index] = font
}

func determineAssetType(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".tga":
		return AssetTypeTexture
	case ".fnt":
		return AssetTypeFont
	default:
		return AssetTypeNone
	}
}
