package overlay

import "testing"

func TestGenerateGridLines_Count(t *testing.T) {
	verts := GenerateGridLines(5, 1, 0)

	wantVerts := GridLineVertexCount(5, 1)
	if got := len(verts) / 3; got != wantVerts {
		t.Errorf("vertex count = %d, want %d", got, wantVerts)
	}

	// 11 lines each direction for extent 5, spacing 1
	if wantVerts != 44 {
		t.Errorf("GridLineVertexCount(5, 1) = %d, want 44", wantVerts)
	}
}

func TestGenerateGridLines_AllAtHeight(t *testing.T) {
	verts := GenerateGridLines(2, 1, -0.5)
	for i := 1; i < len(verts); i += 3 {
		if verts[i] != -0.5 {
			t.Fatalf("vertex %d has y = %v, want -0.5", i/3, verts[i])
		}
	}
}

func TestGenerateGridLines_BadArgs(t *testing.T) {
	if verts := GenerateGridLines(0, 1, 0); verts != nil {
		t.Errorf("zero extent should produce no vertices, got %d", len(verts))
	}
	if verts := GenerateGridLines(5, 0, 0); verts != nil {
		t.Errorf("zero spacing should produce no vertices, got %d", len(verts))
	}
}

func TestGenerateBoundsWireframe(t *testing.T) {
	verts := GenerateBoundsWireframe(-1, -1, -1, 1, 1, 1, 0.1)

	if got := len(verts) / 3; got != BoundsWireframeVertexCount {
		t.Fatalf("vertex count = %d, want %d", got, BoundsWireframeVertexCount)
	}

	// Every coordinate must sit on the padded box surface.
	for i := 0; i < len(verts); i++ {
		v := verts[i]
		if v != -1.1 && v != 1.1 {
			t.Fatalf("coordinate %d = %v, want -1.1 or 1.1", i, v)
		}
	}
}
