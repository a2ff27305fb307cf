package geometry

import (
	"fmt"

	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/math"
	"gopkg.in/yaml.v3"
)

// TransformData is an object's position, orientation and size. It belongs
// to exactly one drawable and must have a single writer at a time.
type TransformData struct {
	Translation math.Vec2
	Scaling     math.Vec2
	// Rotation in radians.
	Rotation float32
}

// NewTransformData returns the transform placing an object at translation,
// sized by scaling and turned by rotation radians.
func NewTransformData(translation, scaling math.Vec2, rotation float32) TransformData {
	return TransformData{
		Translation: translation,
		Scaling:     scaling,
		Rotation:    rotation,
	}
}

// transformRecord is the serialized form of TransformData: vectors become
// plain two element sequences.
type transformRecord struct {
	Translation []float32 `yaml:"translation,flow"`
	Scaling     []float32 `yaml:"scaling,flow"`
	Rotation    float32   `yaml:"rotation"`
}

// MarshalYAML writes translation and scaling as two element sequences.
func (td TransformData) MarshalYAML() (interface{}, error) {
	return transformRecord{
		Translation: []float32{td.Translation.X, td.Translation.Y},
		Scaling:     []float32{td.Scaling.X, td.Scaling.Y},
		Rotation:    td.Rotation,
	}, nil
}

// UnmarshalYAML rejects translation or scaling sequences that do not hold
// exactly two numbers.
func (td *TransformData) UnmarshalYAML(value *yaml.Node) error {
	var rec transformRecord
	if err := value.Decode(&rec); err != nil {
		return fmt.Errorf("%w: transform data (line %d): %v", core.ErrMalformedSceneData, value.Line, err)
	}
	translation, err := pairFrom("translation", rec.Translation)
	if err != nil {
		return err
	}
	scaling, err := pairFrom("scaling", rec.Scaling)
	if err != nil {
		return err
	}
	*td = NewTransformData(translation, scaling, rec.Rotation)
	return nil
}

func pairFrom(field string, values []float32) (math.Vec2, error) {
	if len(values) != 2 {
		return math.Vec2{}, fmt.Errorf("%w: %s needs exactly 2 values, got %d", core.ErrMalformedSceneData, field, len(values))
	}
	return math.NewVec2(values[0], values[1]), nil
}
