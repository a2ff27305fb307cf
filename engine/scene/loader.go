package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/quadrant/engine/core"
	"gopkg.in/yaml.v3"
)

// Files making up a scene data directory.
const (
	GameDataFile     = "game_data.yaml"
	ResourcesFile    = "resources.yaml"
	ComponentsFile   = "components.yaml"
	EntitiesFile     = "entities.yaml"
	BackgroundsFile  = "backgrounds.yaml"
	MapsFile         = "maps.yaml"
	SpritesheetsFile = "spritesheets.yaml"
)

// DataManager owns all game data loaded from a data directory. Media such
// as textures and fonts are only referenced here by path; the assets
// package loads them.
type DataManager struct {
	Dir          string
	GameData     GameData
	Resources    Resources
	Components   *ComponentManager
	Entities     *EntityManager
	Backgrounds  []Background
	Maps         []GameMap
	Spritesheets []Spritesheet
}

// LoadDataManager reads every scene file from dir. Missing or unreadable
// files are returned as I/O errors; YAML that does not match the expected
// records wraps core.ErrMalformedSceneData.
func LoadDataManager(dir string) (*DataManager, error) {
	core.LogDebug("loading scene data from %s", dir)

	dm := &DataManager{
		Dir:        dir,
		Components: NewComponentManager(),
		Entities:   NewEntityManager(),
	}

	files := []struct {
		name string
		out  interface{}
	}{
		{GameDataFile, &dm.GameData},
		{ResourcesFile, &dm.Resources},
		{ComponentsFile, dm.Components},
		{EntitiesFile, dm.Entities},
		{BackgroundsFile, &dm.Backgrounds},
		{MapsFile, &dm.Maps},
		{SpritesheetsFile, &dm.Spritesheets},
	}
	for _, f := range files {
		if err := readYAML(filepath.Join(dir, f.name), f.out); err != nil {
			return nil, err
		}
	}

	if err := dm.validate(); err != nil {
		return nil, err
	}

	core.LogInfo("loaded %d components, %d entities, %d spritesheets from %s",
		len(dm.Components.Components), len(dm.Entities.Entities), len(dm.Spritesheets), dir)
	return dm, nil
}

// Spritesheet returns the sheet at index.
func (dm *DataManager) Spritesheet(index Index) (Spritesheet, error) {
	if index < 0 || int(index) >= len(dm.Spritesheets) {
		return Spritesheet{}, fmt.Errorf("%w: spritesheet %d", core.ErrIndex, index)
	}
	return dm.Spritesheets[index], nil
}

// SaveComponents writes the current component state back to the data
// directory, so transforms changed at runtime survive a reload.
func (dm *DataManager) SaveComponents() error {
	return writeYAML(filepath.Join(dm.Dir, ComponentsFile), dm.Components)
}

// SaveEntities writes the entity list, including any minted GUIDs.
func (dm *DataManager) SaveEntities() error {
	return writeYAML(filepath.Join(dm.Dir, EntitiesFile), dm.Entities)
}

func (dm *DataManager) validate() error {
	if err := dm.Components.normalize(); err != nil {
		return err
	}
	if err := dm.Entities.normalize(); err != nil {
		return err
	}
	for i, s := range dm.Spritesheets {
		if s.Index != Index(i) {
			return fmt.Errorf("%w: spritesheet at position %d has index %d", core.ErrMalformedSceneData, i, s.Index)
		}
		if s.Pitch == 0 {
			return fmt.Errorf("%w: spritesheet %d has zero pitch", core.ErrMalformedSceneData, i)
		}
	}
	for _, e := range dm.Entities.Entities {
		for _, c := range e.Components {
			if _, err := dm.Components.Get(c); err != nil {
				return fmt.Errorf("%w: entity %d references component %d", core.ErrMalformedSceneData, e.ID, c)
			}
		}
	}
	textures := make(map[Index]bool, len(dm.Resources.Textures))
	for _, t := range dm.Resources.Textures {
		textures[t.Index] = true
	}
	fonts := make(map[Index]bool, len(dm.Resources.Fonts))
	for _, f := range dm.Resources.Fonts {
		fonts[f.Index] = true
	}
	for _, c := range dm.Components.Components {
		if c.Data == nil {
			return fmt.Errorf("%w: component %d has no data", core.ErrMalformedSceneData, c.ID)
		}
		if !textures[c.Data.Texture()] {
			return fmt.Errorf("%w: component %d references texture %d", core.ErrMalformedSceneData, c.ID, c.Data.Texture())
		}
		if txt, ok := c.Data.(*TextData); ok && !fonts[txt.FontIndex] {
			return fmt.Errorf("%w: component %d references font %d", core.ErrMalformedSceneData, c.ID, txt.FontIndex)
		}
		anim, ok := c.Data.(*Animation2DData)
		if !ok {
			continue
		}
		if _, err := dm.Spritesheet(anim.SpritesheetIndex); err != nil {
			return fmt.Errorf("%w: component %d references spritesheet %d", core.ErrMalformedSceneData, c.ID, anim.SpritesheetIndex)
		}
		if _, err := anim.Current(); err != nil {
			return fmt.Errorf("%w: component %d: %v", core.ErrMalformedSceneData, c.ID, err)
		}
	}
	return nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scene: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("scene: parse %s: %w", path, wrapMalformed(err))
	}
	return nil
}

func writeYAML(path string, in interface{}) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("scene: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scene: write %s: %w", path, err)
	}
	return nil
}

func wrapMalformed(err error) error {
	if errors.Is(err, core.ErrMalformedSceneData) {
		return err
	}
	return fmt.Errorf("%w: %v", core.ErrMalformedSceneData, err)
}
