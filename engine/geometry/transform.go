package geometry

import "github.com/spaghettifunk/quadrant/engine/math"

// Transform2D is implemented by everything that can be drawn and provides
// its own transformation data. Embed Identity2D to get identity matrices
// for the parts a type does not override.
type Transform2D interface {
	TranslationMatrix() math.Mat3
	RotationMatrix() math.Mat3
	ScalingMatrix() math.Mat3
}

// Identity2D provides identity sub-matrices. An object built only from it
// renders unscaled, unrotated and at the origin.
type Identity2D struct{}

func (Identity2D) TranslationMatrix() math.Mat3 {
	return math.NewMat3Identity()
}

func (Identity2D) RotationMatrix() math.Mat3 {
	return math.NewMat3Identity()
}

func (Identity2D) ScalingMatrix() math.Mat3 {
	return math.NewMat3Identity()
}

// TransformationMatrix composes the model matrix of t as
// translation * rotation * scaling: local points are scaled first, then
// rotated about the origin, then moved to their world position.
func TransformationMatrix(t Transform2D) math.Mat3 {
	return t.TranslationMatrix().Mul(t.RotationMatrix()).Mul(t.ScalingMatrix())
}

// TranslationOf builds the translation matrix for td.
func TranslationOf(td TransformData) math.Mat3 {
	return math.NewMat3Translation2D(td.Translation)
}

// RotationOf builds the rotation matrix for td.
func RotationOf(td TransformData) math.Mat3 {
	return math.NewMat3Rotation2D(td.Rotation)
}

// ScalingOf builds the scaling matrix for td.
func ScalingOf(td TransformData) math.Mat3 {
	return math.NewMat3Scaling2D(td.Scaling)
}
