// Package formats provides parsers for triangle-mesh file formats.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned when a file extension maps to no known parser.
var ErrUnknownFormat = errors.New("unknown mesh format")

// MeshData is the parser-independent form every format reduces to: a flat
// position list plus triangle indices into it. Three consecutive indices
// form one triangle.
type MeshData struct {
	Positions [][3]float32
	Indices   []uint32
}

// VertexCount returns the number of positions.
func (m *MeshData) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of index triples.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// LoadFile parses a mesh file, dispatching on the file extension.
// Supported: .obj (Wavefront) and .stl (binary or ASCII).
func LoadFile(path string) (*MeshData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		obj, err := ParseOBJFile(path)
		if err != nil {
			return nil, err
		}
		return obj.MeshData(), nil
	case ".stl":
		stl, err := ParseSTLFile(path)
		if err != nil {
			return nil, err
		}
		return stl.MeshData(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}
