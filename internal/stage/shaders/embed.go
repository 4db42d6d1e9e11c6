// Package shaders provides embedded GLSL shader sources for the stage
// batches.
package shaders

import _ "embed"

// MarkerVertexShader is the vertex shader for vertex-marker rendering.
//
//go:embed marker.vert
var MarkerVertexShader string

// MarkerFragmentShader is the fragment shader for vertex-marker rendering.
//
//go:embed marker.frag
var MarkerFragmentShader string

// WireVertexShader is the vertex shader for edge rendering.
//
//go:embed wire.vert
var WireVertexShader string

// WireFragmentShader is the fragment shader for edge rendering.
//
//go:embed wire.frag
var WireFragmentShader string

// FillVertexShader is the vertex shader for face rendering.
//
//go:embed fill.vert
var FillVertexShader string

// FillFragmentShader is the fragment shader for face rendering.
//
//go:embed fill.frag
var FillFragmentShader string

// DissolveVertexShader is the vertex shader for the assembled solid.
//
//go:embed dissolve.vert
var DissolveVertexShader string

// DissolveFragmentShader is the fragment shader for the assembled solid.
//
//go:embed dissolve.frag
var DissolveFragmentShader string
