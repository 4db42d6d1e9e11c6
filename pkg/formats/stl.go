package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrMalformedSTLData = errors.New("malformed STL data")
)

// STLTriangle is one facet: a normal and three corner positions.
type STLTriangle struct {
	Normal   [3]float32
	Vertices [3][3]float32
}

// STL represents a parsed STL file (binary or ASCII).
type STL struct {
	Name      string
	Triangles []STLTriangle
}

// ParseSTL parses an STL file from raw bytes, detecting binary vs ASCII.
// A binary STL has an 80-byte header followed by a little-endian triangle
// count and 50-byte records; an ASCII STL starts with "solid" and contains
// facet/vertex keywords.
func ParseSTL(data []byte) (*STL, error) {
	if isASCIISTL(data) {
		return parseASCIISTL(data)
	}
	return parseBinarySTL(data)
}

// ParseSTLFile parses an STL file from disk.
func ParseSTLFile(path string) (*STL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	return ParseSTL(data)
}

// isASCIISTL reports whether the data looks like an ASCII STL. "solid" in
// the header alone is not conclusive (some binary exporters write it), so
// the whole prefix is also checked for a facet keyword.
func isASCIISTL(data []byte) bool {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return false
	}
	probe := data
	if len(probe) > 512 {
		probe = probe[:512]
	}
	return bytes.Contains(probe, []byte("facet")) || bytes.Contains(probe, []byte("endsolid"))
}

func parseBinarySTL(data []byte) (*STL, error) {
	if len(data) < 84 {
		return nil, fmt.Errorf("%w: %d bytes, need at least 84", ErrTruncatedSTLData, len(data))
	}

	count := binary.LittleEndian.Uint32(data[80:84])
	if count > 50_000_000 {
		return nil, fmt.Errorf("%w: implausible triangle count %d", ErrMalformedSTLData, count)
	}
	expected := 84 + int(count)*50
	if len(data) < expected {
		return nil, fmt.Errorf("%w: %d bytes for %d triangles, need %d", ErrTruncatedSTLData, len(data), count, expected)
	}

	stl := &STL{
		Name:      strings.TrimRight(string(bytes.TrimRight(data[:80], "\x00")), " "),
		Triangles: make([]STLTriangle, count),
	}

	r := bytes.NewReader(data[84:])
	for i := uint32(0); i < count; i++ {
		var rec struct {
			Normal   [3]float32
			Vertices [3][3]float32
			Attr     uint16
		}
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("%w: reading triangle %d", ErrTruncatedSTLData, i)
		}
		stl.Triangles[i] = STLTriangle{Normal: rec.Normal, Vertices: rec.Vertices}
	}

	return stl, nil
}

func parseASCIISTL(data []byte) (*STL, error) {
	stl := &STL{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var tri STLTriangle
	corner := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				stl.Name = fields[1]
			}
		case "facet":
			// "facet normal nx ny nz"
			tri = STLTriangle{}
			corner = 0
			if len(fields) >= 5 && fields[1] == "normal" {
				n, err := parseSTLFloats(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				tri.Normal = n
			}
		case "vertex":
			if corner >= 3 {
				return nil, fmt.Errorf("line %d: %w: more than 3 vertices in facet", lineNo, ErrMalformedSTLData)
			}
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w: vertex needs 3 components", lineNo, ErrMalformedSTLData)
			}
			v, err := parseSTLFloats(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			tri.Vertices[corner] = v
			corner++
		case "endfacet":
			if corner != 3 {
				return nil, fmt.Errorf("line %d: %w: facet has %d vertices", lineNo, ErrMalformedSTLData, corner)
			}
			stl.Triangles = append(stl.Triangles, tri)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning STL: %w", err)
	}

	return stl, nil
}

func parseSTLFloats(fields []string) ([3]float32, error) {
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, fmt.Errorf("%w: invalid number %q", ErrMalformedSTLData, fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

// MeshData reduces the STL to positions and triangle indices, welding
// identical corner positions so shared edges are represented once.
func (s *STL) MeshData() *MeshData {
	m := &MeshData{
		Indices: make([]uint32, 0, len(s.Triangles)*3),
	}

	seen := make(map[[3]float32]uint32, len(s.Triangles)*3/2)
	for _, tri := range s.Triangles {
		for _, v := range tri.Vertices {
			idx, ok := seen[v]
			if !ok {
				idx = uint32(len(m.Positions))
				m.Positions = append(m.Positions, v)
				seen[v] = idx
			}
			m.Indices = append(m.Indices, idx)
		}
	}

	return m
}
