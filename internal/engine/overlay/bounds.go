package overlay

// BoundsWireframeVertexCount is the number of vertices for a bounds
// wireframe (12 edges, 2 endpoints each).
const BoundsWireframeVertexCount = 24

// GenerateBoundsWireframe creates line vertices for a wireframe box around
// the given bounds, expanded by padding on all sides so the lines do not
// z-fight the surface they enclose. Returns [x, y, z] per vertex.
func GenerateBoundsWireframe(minX, minY, minZ, maxX, maxY, maxZ, padding float32) []float32 {
	minX -= padding
	minY -= padding
	minZ -= padding
	maxX += padding
	maxY += padding
	maxZ += padding

	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}
