package mesh

import "github.com/strata3d/meshstage/pkg/math"

// FaceNormal returns the unit normal of the triangle (p0, p1, p2), or the
// zero vector for a degenerate triangle.
func FaceNormal(p0, p1, p2 math.Vec3) math.Vec3 {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Length() < 1e-5 {
		return math.Vec3{}
	}
	return n.Normalize()
}

// SmoothNormals computes per-vertex normals by accumulating area-weighted
// face normals at each shared vertex. Vertices touched by no valid face
// get an up-facing normal so shading stays defined.
func SmoothNormals(positions []math.Vec3, indices []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := positions[a], positions[b], positions[c]

		// Unnormalized cross product weights by triangle area.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		if n.Length() < 1e-10 {
			continue
		}

		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}

	for i := range normals {
		if normals[i].Length() < 1e-10 {
			normals[i] = math.Vec3{Y: 1}
			continue
		}
		normals[i] = normals[i].Normalize()
	}

	return normals
}
