// Package geometry holds the fixed quad tables, per-vertex layout, layer
// depths and the 2D transform composition used by every drawable quad.
package geometry

// Shared by every quad; only ever handed out by value.
var quadVertices = [4][2]float32{
	{-0.5, 0.5},  // top-left
	{-0.5, -0.5}, // bottom-left
	{0.5, -0.5},  // bottom-right
	{0.5, 0.5},   // top-right
}

var quadUVs = [4][3]float32{
	{0.0, 0.0, 1.0}, // top-left
	{0.0, 1.0, 1.0}, // bottom-left
	{1.0, 1.0, 1.0}, // bottom-right
	{1.0, 0.0, 1.0}, // top-right
}

// A quad is two triangles with three vertices each, but two of the vertices are the same.
var quadIndices = [6]uint16{0, 1, 2, 2, 3, 0}

const (
	// QuadVertexCount is the number of vertices making up one quad.
	QuadVertexCount = 4
	// QuadIndexCount is the number of indices making up one quad.
	QuadIndexCount = 6
)

// QuadVertices returns the vertices of a unit square centered on the
// origin, which keeps rotation about the quad's own middle.
func QuadVertices() [4][2]float32 {
	return quadVertices
}

// QuadUVs returns the UV coordinates that make a texture fit a quad
// precisely. The third component is carried through unchanged and acts as
// the homogeneous coordinate when a UV is multiplied by a 3x3 matrix.
func QuadUVs() [4][3]float32 {
	return quadUVs
}

// QuadIndices returns the base vertex indices that form a quad.
func QuadIndices() [6]uint16 {
	return quadIndices
}

// QuadTriangles splits the quad indices into its two triangles.
func QuadTriangles() [2][3]uint16 {
	return [2][3]uint16{
		{quadIndices[0], quadIndices[1], quadIndices[2]},
		{quadIndices[3], quadIndices[4], quadIndices[5]},
	}
}

// QuadIndicesAt returns the quad indices offset for the quad at position n in a
// shared vertex buffer.
func QuadIndicesAt(n int) [6]uint16 {
	base := uint16(n * QuadVertexCount)
	var out [6]uint16
	for i, idx := range quadIndices {
		out[i] = base + idx
	}
	return out
}
