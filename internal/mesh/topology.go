package mesh

import (
	"errors"
	"fmt"

	"github.com/strata3d/meshstage/pkg/math"
)

// Topology extraction errors. Geometry whose structure cannot form a
// triangle list is rejected; geometry CONTENT (degenerate or non-manifold
// triangles) is deliberately not validated.
var (
	ErrUntriangulated  = errors.New("non-indexed position count is not a multiple of 3")
	ErrIndexCount      = errors.New("index count is not a multiple of 3")
	ErrIndexOutOfRange = errors.New("triangle index out of range")
)

// Face is an ordered triple of vertex indices forming one triangle.
type Face [3]uint32

// Edge is an unordered pair of vertex indices canonicalized as (min,max).
type Edge [2]uint32

// Topology is the primitive decomposition of a triangulated mesh: the
// vertex positions as given, the triangle list, and the unique edge set in
// first-appearance order.
type Topology struct {
	Vertices []math.Vec3
	Faces    []Face
	Edges    []Edge
}

// edgeKey packs a canonical vertex-index pair into one comparable value.
type edgeKey uint64

func newEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey(uint64(a) | uint64(b)<<32)
}

// ExtractTopology derives the vertex, face and edge lists from raw
// geometry.
//
// With indices, faces are consecutive index triples. Without, the position
// list itself is treated as a flat triangle list. Every face contributes
// its three sides (a,b), (b,c), (c,a) to the edge set, canonicalized to
// (min,max) and deduplicated while preserving first-appearance order.
//
// Empty positions yield an empty topology and no error.
func ExtractTopology(positions []math.Vec3, indices []uint32) (*Topology, error) {
	topo := &Topology{Vertices: positions}
	if len(positions) == 0 {
		return topo, nil
	}

	if indices == nil {
		if len(positions)%3 != 0 {
			return nil, fmt.Errorf("%w: %d positions", ErrUntriangulated, len(positions))
		}
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	} else {
		if len(indices)%3 != 0 {
			return nil, fmt.Errorf("%w: %d indices", ErrIndexCount, len(indices))
		}
		for i, idx := range indices {
			if int(idx) >= len(positions) {
				return nil, fmt.Errorf("%w: index %d at position %d (have %d vertices)",
					ErrIndexOutOfRange, idx, i, len(positions))
			}
		}
	}

	faceCount := len(indices) / 3
	topo.Faces = make([]Face, faceCount)
	seen := make(map[edgeKey]struct{}, faceCount*3/2)

	for f := 0; f < faceCount; f++ {
		a, b, c := indices[f*3], indices[f*3+1], indices[f*3+2]
		topo.Faces[f] = Face{a, b, c}

		for _, pair := range [3][2]uint32{{a, b}, {b, c}, {c, a}} {
			key := newEdgeKey(pair[0], pair[1])
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			lo, hi := pair[0], pair[1]
			if lo > hi {
				lo, hi = hi, lo
			}
			topo.Edges = append(topo.Edges, Edge{lo, hi})
		}
	}

	return topo, nil
}

// VertexCount returns the number of vertices.
func (t *Topology) VertexCount() int { return len(t.Vertices) }

// FaceCount returns the number of faces.
func (t *Topology) FaceCount() int { return len(t.Faces) }

// EdgeCount returns the number of unique edges.
func (t *Topology) EdgeCount() int { return len(t.Edges) }
