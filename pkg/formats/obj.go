package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedOBJFace   = errors.New("malformed OBJ face")
	ErrOBJIndexOutOfRange = errors.New("OBJ index out of range")
)

// OBJCorner is one corner of a triangle: indices into the OBJ's position,
// texture-coordinate and normal lists. All indices are 0-based after
// parsing; TexCoord and Normal are -1 when the face omits them.
type OBJCorner struct {
	Position int
	TexCoord int
	Normal   int
}

// OBJ represents a parsed Wavefront OBJ file. Faces with more than three
// corners are fan-triangulated during parsing, so Faces always holds
// triangles.
type OBJ struct {
	Name      string
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     [][3]OBJCorner
}

// ParseOBJ parses an OBJ file from raw bytes.
// Unrecognized directives are skipped; a file without geometry parses to an
// empty OBJ.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			obj.Positions = append(obj.Positions, p)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texcoord needs 2 components", lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: texcoord: invalid number", lineNo)
			}
			obj.TexCoords = append(obj.TexCoords, [2]float32{float32(u), float32(v)})
		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			obj.Normals = append(obj.Normals, n)
		case "f":
			if err := obj.parseFace(fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "o", "g":
			if obj.Name == "" && len(fields) > 1 {
				obj.Name = fields[1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning OBJ: %w", err)
	}

	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, errors.New("needs 3 components")
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, fmt.Errorf("invalid number %q", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFace parses one "f" directive and fan-triangulates it.
func (o *OBJ) parseFace(tokens []string) error {
	if len(tokens) < 3 {
		return fmt.Errorf("%w: %d corners", ErrMalformedOBJFace, len(tokens))
	}

	corners := make([]OBJCorner, len(tokens))
	for i, tok := range tokens {
		c, err := o.parseCorner(tok)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	for i := 1; i < len(corners)-1; i++ {
		o.Faces = append(o.Faces, [3]OBJCorner{corners[0], corners[i], corners[i+1]})
	}
	return nil
}

// parseCorner parses a "v", "v/vt", "v//vn" or "v/vt/vn" token.
// OBJ indices are 1-based; negative indices count back from the end of the
// respective list.
func (o *OBJ) parseCorner(tok string) (OBJCorner, error) {
	corner := OBJCorner{TexCoord: -1, Normal: -1}

	parts := strings.Split(tok, "/")
	pos, err := resolveOBJIndex(parts[0], len(o.Positions))
	if err != nil {
		return corner, fmt.Errorf("%w: position %q", err, tok)
	}
	corner.Position = pos

	if len(parts) > 1 && parts[1] != "" {
		tc, err := resolveOBJIndex(parts[1], len(o.TexCoords))
		if err != nil {
			return corner, fmt.Errorf("%w: texcoord %q", err, tok)
		}
		corner.TexCoord = tc
	}
	if len(parts) > 2 && parts[2] != "" {
		n, err := resolveOBJIndex(parts[2], len(o.Normals))
		if err != nil {
			return corner, fmt.Errorf("%w: normal %q", err, tok)
		}
		corner.Normal = n
	}

	return corner, nil
}

func resolveOBJIndex(s string, listLen int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrMalformedOBJFace
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx = listLen + idx
	default:
		return 0, ErrOBJIndexOutOfRange
	}
	if idx < 0 || idx >= listLen {
		return 0, ErrOBJIndexOutOfRange
	}
	return idx, nil
}

// MeshData reduces the OBJ to positions and triangle indices.
func (o *OBJ) MeshData() *MeshData {
	m := &MeshData{
		Positions: o.Positions,
		Indices:   make([]uint32, 0, len(o.Faces)*3),
	}
	for _, f := range o.Faces {
		m.Indices = append(m.Indices, uint32(f[0].Position), uint32(f[1].Position), uint32(f[2].Position))
	}
	return m
}

// WriteOBJ encodes mesh data as an OBJ file.
func WriteOBJ(name string, m *MeshData) []byte {
	var buf bytes.Buffer
	if name != "" {
		fmt.Fprintf(&buf, "o %s\n", name)
	}
	for _, p := range m.Positions {
		fmt.Fprintf(&buf, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		fmt.Fprintf(&buf, "f %d %d %d\n", m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1)
	}
	return buf.Bytes()
}

// WriteOBJFile writes mesh data to an OBJ file on disk.
func WriteOBJFile(path, name string, m *MeshData) error {
	if err := os.WriteFile(path, WriteOBJ(name, m), 0644); err != nil {
		return fmt.Errorf("writing OBJ file: %w", err)
	}
	return nil
}
