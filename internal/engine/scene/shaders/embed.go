// Package shaders provides embedded GLSL shader sources for the scene
// overlays.
package shaders

import _ "embed"

// LineVertexShader is the vertex shader for grid and bounds lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for grid and bounds lines.
//
//go:embed line.frag
var LineFragmentShader string
