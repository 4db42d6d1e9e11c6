package formats

import (
	"errors"
	"testing"
)

func TestParseOBJ_Triangles(t *testing.T) {
	data := []byte(`# comment
o triangle
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if obj.Name != "triangle" {
		t.Errorf("expected name 'triangle', got %q", obj.Name)
	}
	if len(obj.Positions) != 3 {
		t.Errorf("expected 3 positions, got %d", len(obj.Positions))
	}
	if len(obj.Faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(obj.Faces))
	}

	want := [3]OBJCorner{
		{Position: 0, TexCoord: -1, Normal: -1},
		{Position: 1, TexCoord: -1, Normal: -1},
		{Position: 2, TexCoord: -1, Normal: -1},
	}
	if obj.Faces[0] != want {
		t.Errorf("face = %v, want %v", obj.Faces[0], want)
	}
}

func TestParseOBJ_QuadTriangulation(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	// A quad fan-triangulates into (0,1,2) and (0,2,3).
	if len(obj.Faces) != 2 {
		t.Fatalf("expected 2 faces, got %d", len(obj.Faces))
	}
	got := [][3]int{
		{obj.Faces[0][0].Position, obj.Faces[0][1].Position, obj.Faces[0][2].Position},
		{obj.Faces[1][0].Position, obj.Faces[1][1].Position, obj.Faces[1][2].Position},
	}
	want := [][3]int{{0, 1, 2}, {0, 2, 3}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("face %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseOBJ_CornerForms(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1//1 2//1 3//1
f 1/1 2/2 3/3
`)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Faces) != 3 {
		t.Fatalf("expected 3 faces, got %d", len(obj.Faces))
	}

	// v/vt/vn
	if c := obj.Faces[0][1]; c.Position != 1 || c.TexCoord != 1 || c.Normal != 0 {
		t.Errorf("v/vt/vn corner = %+v", c)
	}
	// v//vn
	if c := obj.Faces[1][0]; c.Position != 0 || c.TexCoord != -1 || c.Normal != 0 {
		t.Errorf("v//vn corner = %+v", c)
	}
	// v/vt
	if c := obj.Faces[2][2]; c.Position != 2 || c.TexCoord != 2 || c.Normal != -1 {
		t.Errorf("v/vt corner = %+v", c)
	}
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	got := [3]int{obj.Faces[0][0].Position, obj.Faces[0][1].Position, obj.Faces[0][2].Position}
	want := [3]int{0, 1, 2}
	if got != want {
		t.Errorf("negative indices resolved to %v, want %v", got, want)
	}
}

func TestParseOBJ_IndexOutOfRange(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 4
`)

	_, err := ParseOBJ(data)
	if !errors.Is(err, ErrOBJIndexOutOfRange) {
		t.Errorf("expected ErrOBJIndexOutOfRange, got %v", err)
	}
}

func TestParseOBJ_MalformedFace(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
f 1 2
`)

	_, err := ParseOBJ(data)
	if !errors.Is(err, ErrMalformedOBJFace) {
		t.Errorf("expected ErrMalformedOBJFace, got %v", err)
	}
}

func TestParseOBJ_Empty(t *testing.T) {
	obj, err := ParseOBJ([]byte("# nothing here\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Positions) != 0 || len(obj.Faces) != 0 {
		t.Errorf("expected empty OBJ, got %d positions, %d faces", len(obj.Positions), len(obj.Faces))
	}
}

func TestOBJ_MeshData(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	m := obj.MeshData()
	if m.VertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", m.TriangleCount())
	}
	wantIdx := []uint32{0, 1, 2, 0, 2, 3}
	for i, w := range wantIdx {
		if m.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, m.Indices[i], w)
		}
	}
}

func TestWriteOBJ_RoundTrip(t *testing.T) {
	src := &MeshData{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}

	obj, err := ParseOBJ(WriteOBJ("shape", src))
	if err != nil {
		t.Fatalf("parsing written OBJ: %v", err)
	}

	m := obj.MeshData()
	if m.VertexCount() != src.VertexCount() {
		t.Errorf("vertex count = %d, want %d", m.VertexCount(), src.VertexCount())
	}
	if m.TriangleCount() != src.TriangleCount() {
		t.Errorf("triangle count = %d, want %d", m.TriangleCount(), src.TriangleCount())
	}
	for i := range src.Indices {
		if m.Indices[i] != src.Indices[i] {
			t.Fatalf("index %d = %d, want %d", i, m.Indices[i], src.Indices[i])
		}
	}
}
