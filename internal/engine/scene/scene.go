// Package scene hosts the offscreen render target for the mesh viewer plus
// its static overlays: a ground grid and the mesh bounding box. The stage
// batches draw between Begin and End; the scene owns the projection so
// every pass sees the same one.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/strata3d/meshstage/internal/engine/framebuffer"
	"github.com/strata3d/meshstage/internal/engine/lighting"
	"github.com/strata3d/meshstage/internal/engine/overlay"
	"github.com/strata3d/meshstage/internal/engine/scene/shaders"
	"github.com/strata3d/meshstage/internal/engine/shader"
	"github.com/strata3d/meshstage/pkg/math"
)

const (
	fovY     = 0.785398 // 45 degrees
	nearClip = 0.05
	farClip  = 500.0

	gridAlpha   = 0.55
	boundsAlpha = 0.9
)

// Config contains scene configuration options.
type Config struct {
	Width       int32
	Height      int32
	MSAASamples int32
	Background  [3]float32
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:       1280,
		Height:      720,
		MSAASamples: 4,
		Background:  [3]float32{0.13, 0.14, 0.16},
	}
}

// lineSet is one uploaded batch of line segments.
type lineSet struct {
	vao     uint32
	vbo     uint32
	count   int32
	visible bool
}

// Scene manages the offscreen framebuffer, the shared projection and the
// overlay line work.
type Scene struct {
	config      Config
	framebuffer *framebuffer.Framebuffer

	lineProgram uint32
	locView     int32
	locProj     int32
	locColor    int32
	locAlpha    int32

	grid   lineSet
	bounds lineSet

	// Lighting and overlay colors, tweakable from the UI.
	Light       lighting.Rig
	GridColor   [3]float32
	BoundsColor [3]float32

	view    math.Mat4
	proj    math.Mat4
	restore func()
}

// New creates a scene with the given configuration.
func New(cfg Config) (*Scene, error) {
	s := &Scene{
		config:      cfg,
		Light:       lighting.DefaultRig(),
		GridColor:   [3]float32{0.30, 0.31, 0.34},
		BoundsColor: [3]float32{0.82, 0.64, 0.38},
	}

	var err error
	s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height, cfg.MSAASamples)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	program, err := shader.CompileProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("line shader: %w", err)
	}
	s.lineProgram = program
	s.locView = shader.GetUniform(program, "uView")
	s.locProj = shader.GetUniform(program, "uProj")
	s.locColor = shader.GetUniform(program, "uColor")
	s.locAlpha = shader.GetUniform(program, "uAlpha")

	return s, nil
}

// SetGrid rebuilds the ground grid: square lines every spacing units out to
// halfExtent, at height y.
func (s *Scene) SetGrid(halfExtent, spacing, y float32) {
	s.uploadLines(&s.grid, overlay.GenerateGridLines(halfExtent, spacing, y))
}

// SetBounds rebuilds the bounding-box wireframe around min..max, expanded
// by padding on every side.
func (s *Scene) SetBounds(min, max math.Vec3, padding float32) {
	s.uploadLines(&s.bounds, overlay.GenerateBoundsWireframe(
		min.X, min.Y, min.Z, max.X, max.Y, max.Z, padding))
}

// SetGridVisible flips the ground grid.
func (s *Scene) SetGridVisible(visible bool) {
	s.grid.visible = visible
}

// GridVisible reports whether the ground grid is drawn.
func (s *Scene) GridVisible() bool {
	return s.grid.visible
}

// SetBoundsVisible flips the bounding-box wireframe.
func (s *Scene) SetBoundsVisible(visible bool) {
	s.bounds.visible = visible
}

// BoundsVisible reports whether the bounding-box wireframe is drawn.
func (s *Scene) BoundsVisible() bool {
	return s.bounds.visible
}

func (s *Scene) uploadLines(ls *lineSet, verts []float32) {
	if ls.vao == 0 {
		gl.GenVertexArrays(1, &ls.vao)
		gl.GenBuffers(1, &ls.vbo)
		gl.BindVertexArray(ls.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, ls.vbo)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
		gl.EnableVertexAttribArray(0)
		gl.BindVertexArray(0)
	}

	ls.count = int32(len(verts) / 3)
	if ls.count == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, ls.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Begin binds the offscreen framebuffer, clears it and draws the overlay
// lines. The caller draws its batches afterwards and finishes with End.
func (s *Scene) Begin(view math.Mat4) {
	s.view = view
	aspect := float32(s.config.Width) / float32(s.config.Height)
	s.proj = math.Perspective(fovY, aspect, nearClip, farClip)

	s.restore = s.framebuffer.BindWithViewport()
	bg := s.config.Background
	s.framebuffer.Clear(bg[0], bg[1], bg[2], 1.0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	s.drawLines(s.grid, s.GridColor, gridAlpha)
	s.drawLines(s.bounds, s.BoundsColor, boundsAlpha)
}

// End resolves the framebuffer, restores the previous render target and
// returns the finished color texture.
func (s *Scene) End() uint32 {
	s.framebuffer.Resolve()
	if s.restore != nil {
		s.restore()
		s.restore = nil
	}
	return s.framebuffer.ColorTexture()
}

func (s *Scene) drawLines(ls lineSet, color [3]float32, alpha float32) {
	if !ls.visible || ls.count == 0 {
		return
	}

	gl.UseProgram(s.lineProgram)
	gl.UniformMatrix4fv(s.locView, 1, false, &s.view[0])
	gl.UniformMatrix4fv(s.locProj, 1, false, &s.proj[0])
	gl.Uniform3fv(s.locColor, 1, &color[0])
	gl.Uniform1f(s.locAlpha, alpha)

	gl.BindVertexArray(ls.vao)
	gl.DrawArrays(gl.LINES, 0, ls.count)
	gl.BindVertexArray(0)
}

// View returns the view matrix of the current (or last) frame.
func (s *Scene) View() math.Mat4 {
	return s.view
}

// Projection returns the projection matrix of the current (or last) frame.
func (s *Scene) Projection() math.Mat4 {
	return s.proj
}

// Size returns the render target dimensions.
func (s *Scene) Size() (width, height int32) {
	return s.config.Width, s.config.Height
}

// Resize updates the render target dimensions.
func (s *Scene) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
	s.framebuffer.Resize(width, height)
}

// ColorTexture returns the rendered color texture.
func (s *Scene) ColorTexture() uint32 {
	return s.framebuffer.ColorTexture()
}

// Present blits the last finished frame onto the window's default
// framebuffer, scaled to width x height.
func (s *Scene) Present(width, height int32) {
	s.framebuffer.BlitTo(0, width, height)
}

// ReadPixels returns the raw RGBA pixels of the last finished frame in
// OpenGL's bottom-up row order, plus the dimensions.
func (s *Scene) ReadPixels() ([]byte, int32, int32) {
	width, height := s.framebuffer.Size()
	return s.framebuffer.ReadPixels(), width, height
}

// Destroy releases all GPU resources.
func (s *Scene) Destroy() {
	if s.lineProgram != 0 {
		gl.DeleteProgram(s.lineProgram)
		s.lineProgram = 0
	}
	for _, ls := range []*lineSet{&s.grid, &s.bounds} {
		if ls.vao != 0 {
			gl.DeleteVertexArrays(1, &ls.vao)
			ls.vao = 0
		}
		if ls.vbo != 0 {
			gl.DeleteBuffers(1, &ls.vbo)
			ls.vbo = 0
		}
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}
