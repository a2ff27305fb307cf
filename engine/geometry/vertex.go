package geometry

import "github.com/spaghettifunk/quadrant/engine/math"

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

var ColorWhite = Color{R: 1, G: 1, B: 1, A: 1}

// ToVec4 returns the colour as RGBA components.
func (c Color) ToVec4() math.Vec4 {
	return math.NewVec4(c.R, c.G, c.B, c.A)
}

// VertexData contains everything a vertex needs. The field order and
// 4-byte scalar types are the vertex input layout the pipeline reads.
type VertexData struct {
	Position     math.Vec3
	UV           math.Vec2
	Color        Color
	TextureIndex uint32
}
