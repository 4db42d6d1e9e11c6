// Package overlay provides vertex generators for the grid and bounds
// underlays drawn beneath the mesh.
package overlay

// GenerateGridLines builds line vertices for a square floor grid on the XZ
// plane, centered at the origin at the given height. halfExtent is the
// distance from center to edge, spacing the distance between neighboring
// lines. Returns [x, y, z] per vertex, two vertices per line.
func GenerateGridLines(halfExtent, spacing, y float32) []float32 {
	if halfExtent <= 0 || spacing <= 0 {
		return nil
	}

	n := int(halfExtent / spacing)
	vertices := make([]float32, 0, (2*n+1)*12)

	for i := -n; i <= n; i++ {
		d := float32(i) * spacing

		// Line parallel to the X axis
		vertices = append(vertices,
			-halfExtent, y, d,
			halfExtent, y, d,
		)
		// Line parallel to the Z axis
		vertices = append(vertices,
			d, y, -halfExtent,
			d, y, halfExtent,
		)
	}

	return vertices
}

// GridLineVertexCount returns the number of vertices GenerateGridLines
// produces for the given extent and spacing.
func GridLineVertexCount(halfExtent, spacing float32) int {
	if halfExtent <= 0 || spacing <= 0 {
		return 0
	}
	n := int(halfExtent / spacing)
	return (2*n + 1) * 4
}
