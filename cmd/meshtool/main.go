// meshtool is a CLI utility for inspecting and converting triangle meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strata3d/meshstage/internal/mesh"
	"github.com/strata3d/meshstage/internal/mesh/shapes"
	"github.com/strata3d/meshstage/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "edges":
		cmdEdges(args)
	case "gen", "generate":
		cmdGen(args)
	case "convert":
		cmdConvert(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - triangle mesh inspection utility

Usage:
  meshtool <command> [options]

Commands:
  info <file>                Show mesh and topology statistics
  edges [-n N] <file>        List unique edges as vertex index pairs
  gen <shape> [output.obj]   Generate a built-in shape (box, sphere, cylinder, cone)
  convert <input> <output>   Convert a mesh to OBJ

Examples:
  meshtool info bunny.obj
  meshtool edges -n 20 part.stl
  meshtool gen sphere sphere.obj
  meshtool convert part.stl part.obj`)
}

// loadMesh parses a mesh file or exits with an error message.
func loadMesh(path string) *mesh.TriMesh {
	data, err := formats.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return mesh.FromMeshData(name, data)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info <file>")
		os.Exit(1)
	}

	m := loadMesh(args[0])
	topo, err := mesh.ExtractTopology(m.Positions, m.Indices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := m.Bounds()
	size := b.Size()

	fmt.Printf("Mesh:      %s\n", args[0])
	fmt.Printf("Positions: %d\n", len(m.Positions))
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Println()
	fmt.Println("Topology:")
	fmt.Printf("  %-10s %d\n", "vertices", topo.VertexCount())
	fmt.Printf("  %-10s %d\n", "edges", topo.EdgeCount())
	fmt.Printf("  %-10s %d\n", "faces", topo.FaceCount())
	fmt.Println()
	fmt.Printf("Bounds:    min  (%.3f, %.3f, %.3f)\n", b.Min.X, b.Min.Y, b.Min.Z)
	fmt.Printf("           max  (%.3f, %.3f, %.3f)\n", b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Printf("           size (%.3f, %.3f, %.3f)\n", size.X, size.Y, size.Z)
}

func cmdEdges(args []string) {
	fs := flag.NewFlagSet("edges", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N edges (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool edges [-n N] <file>")
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))
	topo, err := mesh.ExtractTopology(m.Positions, m.Indices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	count := 0
	for _, e := range topo.Edges {
		fmt.Printf("%d - %d\n", e[0], e[1])
		count++
		if *limit > 0 && count >= *limit {
			fmt.Fprintf(os.Stderr, "\n(showing first %d of %d edges)\n", count, topo.EdgeCount())
			return
		}
	}

	fmt.Fprintf(os.Stderr, "\n(%d edges)\n", count)
}

func cmdGen(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool gen <shape> [output.obj]")
		os.Exit(1)
	}

	name := args[0]
	m, err := shapes.ByName(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output := name + ".obj"
	if len(args) > 1 {
		output = args[1]
	}

	if err := formats.WriteOBJFile(output, m.Name, m.MeshData()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %d vertices, %d triangles\n", output, len(m.Positions), m.TriangleCount())
}

func cmdConvert(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool convert <input> <output.obj>")
		os.Exit(1)
	}

	input, output := args[0], args[1]
	if strings.ToLower(filepath.Ext(output)) != ".obj" {
		fmt.Fprintln(os.Stderr, "Only .obj output is supported")
		os.Exit(1)
	}

	data, err := formats.LoadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if err := formats.WriteOBJFile(output, name, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Converted %s -> %s (%d vertices, %d triangles)\n",
		input, output, data.VertexCount(), data.TriangleCount())
}
