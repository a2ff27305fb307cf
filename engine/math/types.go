package math

// Vec2 is a 2D vector: a position, a size or a texture coordinate.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 2D point in homogeneous coordinates, or a clip space
// position with depth.
type Vec3 struct {
	X, Y, Z float32
}

type Vec4 struct {
	X, Y, Z, W float32
}

// Mat3 is a 2D affine transform in homogeneous coordinates, stored
// column-major: Data[col*3+row].
type Mat3 struct {
	Data [9]float32
}

// Mat4 is a projection, stored column-major: Data[col*4+row].
type Mat4 struct {
	Data [16]float32
}
