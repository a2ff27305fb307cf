package geometry

import "github.com/spaghettifunk/quadrant/engine/math"

// Direction selects whether a movement step is added or undone.
type Direction int8

const (
	DirectionForward  Direction = 1
	DirectionBackward Direction = -1
)

// Movement2D is how much one input step changes a transform.
type Movement2D struct {
	DeltaTranslate math.Vec2 `yaml:"delta_translate"`
	DeltaRotation  float32   `yaml:"delta_rotation"`
	DeltaScale     math.Vec2 `yaml:"delta_scale"`
}

// Apply moves td one step in the given direction.
func (m Movement2D) Apply(td *TransformData, dir Direction) {
	sign := float32(dir)
	td.Translation = td.Translation.Add(m.DeltaTranslate.MulScalar(sign))
	td.Rotation += m.DeltaRotation * sign
	td.Scaling = td.Scaling.Add(m.DeltaScale.MulScalar(sign))
}
