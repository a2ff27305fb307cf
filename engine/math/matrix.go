package math

// ------------------------------------------
// Matrix 3
// ------------------------------------------

/**
 * @brief Creates and returns a 3x3 identity matrix.
 */
func NewMat3Identity() Mat3 {
	out_matrix := Mat3{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[4] = 1.0
	out_matrix.Data[8] = 1.0
	return out_matrix
}

// At returns the element at the given row and column.
func (mt Mat3) At(row, col int) float32 {
	return mt.Data[col*3+row]
}

/**
 * @brief Returns mt * other. With column vectors the result applies other
 * first and mt second.
 */
func (mt Mat3) Mul(other Mat3) Mat3 {
	out_matrix := Mat3{}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			sum := float32(0)
			for i := 0; i < 3; i++ {
				sum += mt.Data[i*3+row] * other.Data[col*3+i]
			}
			out_matrix.Data[col*3+row] = sum
		}
	}
	return out_matrix
}

/**
 * @brief Multiplies the matrix by the column vector v.
 */
func (mt Mat3) MulVec3(v Vec3) Vec3 {
	d := mt.Data
	return Vec3{
		X: d[0]*v.X + d[3]*v.Y + d[6]*v.Z,
		Y: d[1]*v.X + d[4]*v.Y + d[7]*v.Z,
		Z: d[2]*v.X + d[5]*v.Y + d[8]*v.Z,
	}
}

// TransformPoint applies the matrix to the 2D point p, treated as (x, y, 1).
func (mt Mat3) TransformPoint(p Vec2) Vec2 {
	return mt.MulVec3(Vec3{p.X, p.Y, 1}).XY()
}

/**
 * @brief Creates a 2D translation matrix from the given offset.
 */
func NewMat3Translation2D(offset Vec2) Mat3 {
	out_matrix := NewMat3Identity()
	out_matrix.Data[6] = offset.X
	out_matrix.Data[7] = offset.Y
	return out_matrix
}

/**
 * @brief Creates a 2D counter-clockwise rotation matrix about the origin.
 *
 * @param angle_radians The angle in radians.
 */
func NewMat3Rotation2D(angle_radians float32) Mat3 {
	out_matrix := NewMat3Identity()
	c := kcos(angle_radians)
	s := ksin(angle_radians)

	out_matrix.Data[0] = c
	out_matrix.Data[1] = s
	out_matrix.Data[3] = -s
	out_matrix.Data[4] = c
	return out_matrix
}

/**
 * @brief Creates a 2D scaling matrix.
 */
func NewMat3Scaling2D(scale Vec2) Mat3 {
	out_matrix := NewMat3Identity()
	out_matrix.Data[0] = scale.X
	out_matrix.Data[4] = scale.Y
	return out_matrix
}

// Compare reports whether every element of mt is within tolerance of other.
func (mt Mat3) Compare(other Mat3, tolerance float32) bool {
	for i := range mt.Data {
		if kabs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

// Rows returns the matrix as row-major nested arrays.
func (mt Mat3) Rows() [3][3]float32 {
	var out [3][3]float32
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row][col] = mt.At(row, col)
		}
	}
	return out
}

// ------------------------------------------
// Matrix 4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

// At returns the element at the given row and column.
func (mt Mat4) At(row, col int) float32 {
	return mt.Data[col*4+row]
}

/**
 * @brief Returns the result of multiplying mt and other.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[i*4+row] * other.Data[col*4+i]
			}
			out_matrix.Data[col*4+row] = sum
		}
	}
	return out_matrix
}

/**
 * @brief Multiplies the matrix by the column vector v.
 */
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	d := mt.Data
	return Vec4{
		X: d[0]*v.X + d[4]*v.Y + d[8]*v.Z + d[12]*v.W,
		Y: d[1]*v.X + d[5]*v.Y + d[9]*v.Z + d[13]*v.W,
		Z: d[2]*v.X + d[6]*v.Y + d[10]*v.Z + d[14]*v.W,
		W: d[3]*v.X + d[7]*v.Y + d[11]*v.Z + d[15]*v.W,
	}
}

/**
 * @brief Creates and returns a left-handed orthographic projection matrix
 * with a zero-to-one depth range, as Vulkan and Direct3D expect. Typically
 * used to render flat or 2D scenes.
 *
 * @param left The left side of the view frustum.
 * @param right The right side of the view frustum.
 * @param bottom The bottom side of the view frustum.
 * @param top The top side of the view frustum.
 * @param near_clip The near clipping plane distance.
 * @param far_clip The far clipping plane distance.
 * @return A new orthographic projection matrix.
 */
func NewMat4OrthographicLHZO(left, right, bottom, top, near_clip, far_clip float32) Mat4 {
	out_matrix := NewMat4Identity()

	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far_clip - near_clip)

	out_matrix.Data[0] = 2.0 * rl
	out_matrix.Data[5] = 2.0 * tb
	out_matrix.Data[10] = fn

	out_matrix.Data[12] = -(right + left) * rl
	out_matrix.Data[13] = -(top + bottom) * tb
	out_matrix.Data[14] = -near_clip * fn
	return out_matrix
}

// Compare reports whether every element of mt is within tolerance of other.
func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := range mt.Data {
		if kabs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

// Rows returns the matrix as row-major nested arrays.
func (mt Mat4) Rows() [4][4]float32 {
	var out [4][4]float32
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row][col] = mt.At(row, col)
		}
	}
	return out
}
