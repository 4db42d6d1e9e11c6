// Package shapes generates the built-in parametric meshes. All shapes are
// centered at the origin, share corner vertices (no per-face splitting) and
// wind counter-clockwise seen from outside.
package shapes

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/strata3d/meshstage/internal/mesh"
	"github.com/strata3d/meshstage/pkg/math"
)

// Names lists the built-in shapes in presentation order.
var Names = []string{"box", "cylinder", "cone", "sphere"}

// ByName builds a built-in shape with its default proportions.
func ByName(name string) (*mesh.TriMesh, error) {
	switch strings.ToLower(name) {
	case "box":
		return Box(2, 2, 2), nil
	case "cylinder":
		return Cylinder(1, 2, 32), nil
	case "cone":
		return Cone(1, 2, 32), nil
	case "sphere":
		return Sphere(1.25, 32, 16), nil
	default:
		return nil, fmt.Errorf("unknown shape %q", name)
	}
}

// Box returns a box with the given extents: 8 corner vertices and 12
// triangles (6 quads split in two).
func Box(width, height, depth float32) *mesh.TriMesh {
	x := width / 2
	y := height / 2
	z := depth / 2

	return &mesh.TriMesh{
		Name: "box",
		Positions: []math.Vec3{
			{X: -x, Y: -y, Z: -z},
			{X: x, Y: -y, Z: -z},
			{X: x, Y: y, Z: -z},
			{X: -x, Y: y, Z: -z},
			{X: -x, Y: -y, Z: z},
			{X: x, Y: -y, Z: z},
			{X: x, Y: y, Z: z},
			{X: -x, Y: y, Z: z},
		},
		Indices: []uint32{
			4, 5, 6, 4, 6, 7, // front (+Z)
			1, 0, 3, 1, 3, 2, // back (-Z)
			0, 4, 7, 0, 7, 3, // left (-X)
			5, 1, 2, 5, 2, 6, // right (+X)
			0, 1, 5, 0, 5, 4, // bottom (-Y)
			3, 7, 6, 3, 6, 2, // top (+Y)
		},
	}
}

// Sphere returns a UV sphere: rings-1 latitude rows of segments vertices
// between two pole vertices.
func Sphere(radius float32, segments, rings int) *mesh.TriMesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	m := &mesh.TriMesh{Name: "sphere"}

	// Top pole, then latitude rows top to bottom, then bottom pole.
	m.Positions = append(m.Positions, math.Vec3{Y: radius})
	for i := 1; i < rings; i++ {
		phi := gomath.Pi * float64(i) / float64(rings)
		y := radius * float32(gomath.Cos(phi))
		r := radius * float32(gomath.Sin(phi))
		for s := 0; s < segments; s++ {
			theta := 2 * gomath.Pi * float64(s) / float64(segments)
			m.Positions = append(m.Positions, math.Vec3{
				X: r * float32(gomath.Cos(theta)),
				Y: y,
				Z: r * float32(gomath.Sin(theta)),
			})
		}
	}
	bottom := uint32(len(m.Positions))
	m.Positions = append(m.Positions, math.Vec3{Y: -radius})

	row := func(i, s int) uint32 {
		return uint32(1 + (i-1)*segments + s%segments)
	}

	for s := 0; s < segments; s++ {
		m.Indices = append(m.Indices, 0, row(1, s+1), row(1, s))
	}
	for i := 1; i < rings-1; i++ {
		for s := 0; s < segments; s++ {
			a := row(i, s)
			b := row(i, s+1)
			c := row(i+1, s+1)
			d := row(i+1, s)
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}
	for s := 0; s < segments; s++ {
		m.Indices = append(m.Indices, bottom, row(rings-1, s), row(rings-1, s+1))
	}

	return m
}

// Cylinder returns a capped cylinder: two vertex rings plus one center
// vertex per cap.
func Cylinder(radius, height float32, segments int) *mesh.TriMesh {
	if segments < 3 {
		segments = 3
	}

	m := &mesh.TriMesh{Name: "cylinder"}
	h := height / 2

	for s := 0; s < segments; s++ {
		theta := 2 * gomath.Pi * float64(s) / float64(segments)
		x := radius * float32(gomath.Cos(theta))
		z := radius * float32(gomath.Sin(theta))
		m.Positions = append(m.Positions, math.Vec3{X: x, Y: h, Z: z})
	}
	for s := 0; s < segments; s++ {
		theta := 2 * gomath.Pi * float64(s) / float64(segments)
		x := radius * float32(gomath.Cos(theta))
		z := radius * float32(gomath.Sin(theta))
		m.Positions = append(m.Positions, math.Vec3{X: x, Y: -h, Z: z})
	}
	topCenter := uint32(len(m.Positions))
	m.Positions = append(m.Positions, math.Vec3{Y: h})
	bottomCenter := uint32(len(m.Positions))
	m.Positions = append(m.Positions, math.Vec3{Y: -h})

	top := func(s int) uint32 { return uint32(s % segments) }
	bot := func(s int) uint32 { return uint32(segments + s%segments) }

	for s := 0; s < segments; s++ {
		a := top(s)
		b := top(s + 1)
		c := bot(s + 1)
		d := bot(s)
		m.Indices = append(m.Indices, a, b, c, a, c, d)
	}
	for s := 0; s < segments; s++ {
		m.Indices = append(m.Indices, topCenter, top(s+1), top(s))
	}
	for s := 0; s < segments; s++ {
		m.Indices = append(m.Indices, bottomCenter, bot(s), bot(s+1))
	}

	return m
}

// Cone returns a capped cone: a base vertex ring, an apex and a base
// center vertex.
func Cone(radius, height float32, segments int) *mesh.TriMesh {
	if segments < 3 {
		segments = 3
	}

	m := &mesh.TriMesh{Name: "cone"}
	h := height / 2

	for s := 0; s < segments; s++ {
		theta := 2 * gomath.Pi * float64(s) / float64(segments)
		x := radius * float32(gomath.Cos(theta))
		z := radius * float32(gomath.Sin(theta))
		m.Positions = append(m.Positions, math.Vec3{X: x, Y: -h, Z: z})
	}
	apex := uint32(len(m.Positions))
	m.Positions = append(m.Positions, math.Vec3{Y: h})
	baseCenter := uint32(len(m.Positions))
	m.Positions = append(m.Positions, math.Vec3{Y: -h})

	ring := func(s int) uint32 { return uint32(s % segments) }

	for s := 0; s < segments; s++ {
		m.Indices = append(m.Indices, apex, ring(s+1), ring(s))
	}
	for s := 0; s < segments; s++ {
		m.Indices = append(m.Indices, baseCenter, ring(s), ring(s+1))
	}

	return m
}
