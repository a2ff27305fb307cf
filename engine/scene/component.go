package scene

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/geometry"
	"github.com/spaghettifunk/quadrant/engine/math"
	"gopkg.in/yaml.v3"
)

// ComponentType identifies which data variant a Component carries.
type ComponentType uint8

const (
	// A simple textured quad.
	ComponentTypeQuad ComponentType = iota
	// An animated quad backed by a spritesheet.
	ComponentTypeAnimation2D
	// A line of bitmap font text, one quad per glyph.
	ComponentTypeText
)

var componentTypeNames = []string{"quad", "animation2d", "text"}

func (c ComponentType) String() string {
	if int(c) < len(componentTypeNames) {
		return componentTypeNames[c]
	}
	return fmt.Sprintf("ComponentType(%d)", uint8(c))
}

func (c ComponentType) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *ComponentType) UnmarshalYAML(value *yaml.Node) error {
	for i, name := range componentTypeNames {
		if value.Value == name {
			*c = ComponentType(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %w %q (line %d)", core.ErrMalformedSceneData, core.ErrUnknownComponent, value.Value, value.Line)
}

// ComponentData is the drawable payload of a Component. Every variant
// derives its matrices from its own TransformData.
type ComponentData interface {
	geometry.Transform2D
	Texture() Index
	Depth() geometry.LayerDepth
	TransformData() *geometry.TransformData
}

// QuadData is a plain textured quad.
type QuadData struct {
	TextureIndex Index                  `yaml:"texture_index"`
	Transform    geometry.TransformData `yaml:"transform_data"`
	// Texel of the texture attached to the quad's top-left corner.
	UVOffset Position2D          `yaml:"uv_offset"`
	Layer    geometry.LayerDepth `yaml:"layer"`
}

func (q *QuadData) Texture() Index                         { return q.TextureIndex }
func (q *QuadData) Depth() geometry.LayerDepth             { return q.Layer }
func (q *QuadData) TransformData() *geometry.TransformData { return &q.Transform }
func (q *QuadData) TranslationMatrix() math.Mat3           { return geometry.TranslationOf(q.Transform) }
func (q *QuadData) RotationMatrix() math.Mat3              { return geometry.RotationOf(q.Transform) }
func (q *QuadData) ScalingMatrix() math.Mat3               { return geometry.ScalingOf(q.Transform) }

// Animation2DData is an animated quad.
type Animation2DData struct {
	TextureIndex     Index                  `yaml:"texture_index"`
	SpritesheetIndex Index                  `yaml:"spritesheet_index"`
	Layer            geometry.LayerDepth    `yaml:"layer"`
	Animations       []Animation            `yaml:"animations"`
	CurrentAnimation Index                  `yaml:"current_animation"`
	Transform        geometry.TransformData `yaml:"transform_data"`
	Movement         geometry.Movement2D    `yaml:"movement"`
	// When the current animation began.
	StartTime time.Time `yaml:"-"`
}

func (a *Animation2DData) Texture() Index                         { return a.TextureIndex }
func (a *Animation2DData) Depth() geometry.LayerDepth             { return a.Layer }
func (a *Animation2DData) TransformData() *geometry.TransformData { return &a.Transform }
func (a *Animation2DData) TranslationMatrix() math.Mat3           { return geometry.TranslationOf(a.Transform) }
func (a *Animation2DData) RotationMatrix() math.Mat3              { return geometry.RotationOf(a.Transform) }
func (a *Animation2DData) ScalingMatrix() math.Mat3               { return geometry.ScalingOf(a.Transform) }

// Current returns the active animation.
func (a *Animation2DData) Current() (Animation, error) {
	if a.CurrentAnimation < 0 || int(a.CurrentAnimation) >= len(a.Animations) {
		return Animation{}, fmt.Errorf("%w: animation %d of %d", core.ErrIndex, a.CurrentAnimation, len(a.Animations))
	}
	return a.Animations[a.CurrentAnimation], nil
}

// SetAnimation switches to another animation and restarts its clock.
func (a *Animation2DData) SetAnimation(index Index, now time.Time) error {
	if index < 0 || int(index) >= len(a.Animations) {
		return fmt.Errorf("%w: animation %d of %d", core.ErrIndex, index, len(a.Animations))
	}
	a.CurrentAnimation = index
	a.StartTime = now
	return nil
}

// TextData is a run of text drawn with a bitmap font. The transform places
// the text block; glyphs are laid out inside it one pixel per unit.
type TextData struct {
	FontIndex    Index                  `yaml:"font_index"`
	TextureIndex Index                  `yaml:"texture_index"`
	Text         string                 `yaml:"text"`
	Color        geometry.Color         `yaml:"color"`
	Transform    geometry.TransformData `yaml:"transform_data"`
	Layer        geometry.LayerDepth    `yaml:"layer"`
}

func (t *TextData) Texture() Index                         { return t.TextureIndex }
func (t *TextData) Depth() geometry.LayerDepth             { return t.Layer }
func (t *TextData) TransformData() *geometry.TransformData { return &t.Transform }
func (t *TextData) TranslationMatrix() math.Mat3           { return geometry.TranslationOf(t.Transform) }
func (t *TextData) RotationMatrix() math.Mat3              { return geometry.RotationOf(t.Transform) }
func (t *TextData) ScalingMatrix() math.Mat3               { return geometry.ScalingOf(t.Transform) }

// Component is a single piece of drawable data with no behavior of its own.
type Component struct {
	ID   Index
	Type ComponentType
	Data ComponentData
}

type componentRecord struct {
	ID   Index         `yaml:"id"`
	Type ComponentType `yaml:"component_type"`
	Data yaml.Node     `yaml:"component_data"`
}

func (c Component) MarshalYAML() (interface{}, error) {
	return struct {
		ID   Index         `yaml:"id"`
		Type ComponentType `yaml:"component_type"`
		Data ComponentData `yaml:"component_data"`
	}{c.ID, c.Type, c.Data}, nil
}

func (c *Component) UnmarshalYAML(value *yaml.Node) error {
	var rec componentRecord
	if err := value.Decode(&rec); err != nil {
		return wrapMalformed(err)
	}

	var data ComponentData
	switch rec.Type {
	case ComponentTypeQuad:
		data = &QuadData{}
	case ComponentTypeAnimation2D:
		data = &Animation2DData{StartTime: time.Now()}
	case ComponentTypeText:
		data = &TextData{Color: geometry.ColorWhite}
	default:
		return fmt.Errorf("%w: %w %d", core.ErrMalformedSceneData, core.ErrUnknownComponent, rec.Type)
	}
	if rec.Data.Kind == 0 {
		return fmt.Errorf("%w: component %d has no component_data (line %d)", core.ErrMalformedSceneData, rec.ID, value.Line)
	}
	if err := rec.Data.Decode(data); err != nil {
		return wrapMalformed(err)
	}

	c.ID = rec.ID
	c.Type = rec.Type
	c.Data = data
	return nil
}
