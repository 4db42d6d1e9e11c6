// Package mesh holds the triangle-mesh model plus the topology extraction
// and stagger scheduling that drive the staged reveal.
package mesh

import (
	"github.com/strata3d/meshstage/pkg/formats"
	"github.com/strata3d/meshstage/pkg/math"
)

// TriMesh is a triangulated mesh: a flat position list plus optional
// triangle indices. A nil Indices slice means the positions themselves form
// a flat triangle list (three consecutive positions per triangle).
type TriMesh struct {
	Name      string
	Positions []math.Vec3
	Indices   []uint32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// MaxExtent returns the largest axis extent.
func (b Bounds) MaxExtent() float32 {
	s := b.Size()
	m := s.X
	if s.Y > m {
		m = s.Y
	}
	if s.Z > m {
		m = s.Z
	}
	return m
}

// Bounds computes the mesh bounding box. An empty mesh yields a zero box.
func (m *TriMesh) Bounds() Bounds {
	if len(m.Positions) == 0 {
		return Bounds{}
	}

	b := Bounds{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// TriangleCount returns the number of triangles the mesh describes.
func (m *TriMesh) TriangleCount() int {
	if m.Indices != nil {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 3
}

// FromMeshData converts parsed file data into a TriMesh.
func FromMeshData(name string, d *formats.MeshData) *TriMesh {
	tm := &TriMesh{
		Name:      name,
		Positions: make([]math.Vec3, len(d.Positions)),
	}
	for i, p := range d.Positions {
		tm.Positions[i] = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	if d.Indices != nil {
		tm.Indices = make([]uint32, len(d.Indices))
		copy(tm.Indices, d.Indices)
	}
	return tm
}

// MeshData converts the mesh back into the interchange form used by the
// file writers.
func (m *TriMesh) MeshData() *formats.MeshData {
	d := &formats.MeshData{
		Positions: make([][3]float32, len(m.Positions)),
	}
	for i, p := range m.Positions {
		d.Positions[i] = [3]float32{p.X, p.Y, p.Z}
	}
	if m.Indices != nil {
		d.Indices = make([]uint32, len(m.Indices))
		copy(d.Indices, m.Indices)
	} else {
		d.Indices = make([]uint32, len(m.Positions))
		for i := range d.Indices {
			d.Indices[i] = uint32(i)
		}
	}
	return d
}
