package mesh

import (
	"testing"

	"github.com/strata3d/meshstage/pkg/formats"
	"github.com/strata3d/meshstage/pkg/math"
)

func TestTriMesh_Bounds(t *testing.T) {
	m := &TriMesh{
		Positions: []math.Vec3{
			{X: -2, Y: 1, Z: 0},
			{X: 3, Y: -1, Z: 5},
			{X: 0, Y: 4, Z: -3},
		},
	}

	b := m.Bounds()
	if b.Min != (math.Vec3{X: -2, Y: -1, Z: -3}) {
		t.Errorf("Min = %v", b.Min)
	}
	if b.Max != (math.Vec3{X: 3, Y: 4, Z: 5}) {
		t.Errorf("Max = %v", b.Max)
	}
	if b.MaxExtent() != 8 {
		t.Errorf("MaxExtent = %v, want 8", b.MaxExtent())
	}

	c := b.Center()
	if c != (math.Vec3{X: 0.5, Y: 1.5, Z: 1}) {
		t.Errorf("Center = %v", c)
	}
}

func TestTriMesh_BoundsEmpty(t *testing.T) {
	m := &TriMesh{}
	if b := m.Bounds(); b != (Bounds{}) {
		t.Errorf("empty mesh bounds = %v, want zero", b)
	}
}

func TestFromMeshData(t *testing.T) {
	d := &formats.MeshData{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}

	m := FromMeshData("tri", d)
	if m.Name != "tri" {
		t.Errorf("Name = %q", m.Name)
	}
	if len(m.Positions) != 3 {
		t.Fatalf("positions = %d, want 3", len(m.Positions))
	}
	if m.Positions[1] != (math.Vec3{X: 1}) {
		t.Errorf("position 1 = %v", m.Positions[1])
	}
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", m.TriangleCount())
	}
}

func TestTriMesh_MeshDataSynthesizesIndices(t *testing.T) {
	m := &TriMesh{
		Positions: []math.Vec3{{}, {X: 1}, {Y: 1}},
	}

	d := m.MeshData()
	want := []uint32{0, 1, 2}
	if len(d.Indices) != len(want) {
		t.Fatalf("indices = %v, want %v", d.Indices, want)
	}
	for i, w := range want {
		if d.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, d.Indices[i], w)
		}
	}
}

func TestFaceNormal(t *testing.T) {
	n := FaceNormal(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1})
	if n != (math.Vec3{Z: 1}) {
		t.Errorf("FaceNormal = %v, want +Z", n)
	}

	// Degenerate triangle collapses to the zero vector.
	d := FaceNormal(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 2})
	if d != (math.Vec3{}) {
		t.Errorf("degenerate FaceNormal = %v, want zero", d)
	}
}

func TestSmoothNormals_CubePointOutward(t *testing.T) {
	positions, indices := cubeInput()

	normals := SmoothNormals(positions, indices)
	if len(normals) != len(positions) {
		t.Fatalf("normal count = %d, want %d", len(normals), len(positions))
	}

	for i, n := range normals {
		l := n.Length()
		if l < 0.999 || l > 1.001 {
			t.Errorf("normal %d not unit length: %v", i, l)
		}
		// A cube corner normal must point away from the center.
		if n.Dot(positions[i]) <= 0 {
			t.Errorf("normal %d = %v does not point outward from %v", i, n, positions[i])
		}
	}
}

func TestSmoothNormals_UntouchedVertexFallback(t *testing.T) {
	positions := []math.Vec3{{}, {X: 1}, {Y: 1}, {X: 5, Y: 5, Z: 5}}
	indices := []uint32{0, 1, 2}

	normals := SmoothNormals(positions, indices)
	if normals[3] != (math.Vec3{Y: 1}) {
		t.Errorf("unreferenced vertex normal = %v, want up", normals[3])
	}
}
