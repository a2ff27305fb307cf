package geometry

import "github.com/spaghettifunk/quadrant/engine/math"

// ProjectionMatrix returns the orthographic projection for a viewport of
// physicalSize pixels. The view is centred on the origin and spans
// [-w/2, w/2] x [-h/2, h/2] with depth [0, 1], which gives one world unit
// per physical pixel at default scale.
//
// Both components of physicalSize must be positive.
func ProjectionMatrix(physicalSize math.Vec2) math.Mat4 {
	return math.NewMat4OrthographicLHZO(
		-physicalSize.X/2.0,
		physicalSize.X/2.0,
		-physicalSize.Y/2.0,
		physicalSize.Y/2.0,
		0.0,
		1.0,
	)
}
