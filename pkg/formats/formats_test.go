package formats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_OBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	content := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if m.VertexCount() != 3 {
		t.Errorf("expected 3 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", m.TriangleCount())
	}
}

func TestLoadFile_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.xyz")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	_, err := LoadFile(path)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.obj"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
