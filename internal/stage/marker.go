package stage

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/strata3d/meshstage/internal/engine/shader"
	"github.com/strata3d/meshstage/internal/stage/shaders"
	"github.com/strata3d/meshstage/pkg/math"
)

// MarkerBatch draws every mesh vertex as a round point sprite, all in one
// draw call. Each vertex carries one animation scalar that scales its
// on-screen size from nothing to the full marker radius.
type MarkerBatch struct {
	program       uint32
	locView       int32
	locProj       int32
	locColor      int32
	locPointScale int32

	vao       uint32
	posVBO    uint32
	scalarVBO uint32

	positions []math.Vec3
	scalars   []float32
	built     bool
	visible   bool
	dirty     bool
}

// NewMarkerBatch compiles the marker shader. Geometry is supplied later
// via SetMesh and uploaded by Build.
func NewMarkerBatch() (*MarkerBatch, error) {
	program, err := shader.CompileProgram(shaders.MarkerVertexShader, shaders.MarkerFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("marker shader: %w", err)
	}

	b := &MarkerBatch{program: program}
	b.locView = shader.GetUniform(program, "uView")
	b.locProj = shader.GetUniform(program, "uProj")
	b.locColor = shader.GetUniform(program, "uColor")
	b.locPointScale = shader.GetUniform(program, "uPointScale")
	return b, nil
}

// SetMesh stages the vertex positions for the next Build. Existing GPU
// geometry is released.
func (b *MarkerBatch) SetMesh(positions []math.Vec3) {
	b.Destroy()
	b.positions = positions
}

// Build uploads the position buffer and a zeroed scalar buffer.
func (b *MarkerBatch) Build() error {
	if b.built {
		return nil
	}

	n := len(b.positions)
	b.scalars = make([]float32, n)
	b.visible = false
	b.dirty = false
	b.built = true
	if n == 0 {
		return nil
	}

	flat := make([]float32, 0, n*3)
	for _, p := range b.positions {
		flat = append(flat, p.X, p.Y, p.Z)
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(flat)*4, unsafe.Pointer(&flat[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &b.scalarVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.scalarVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.scalars)*4, unsafe.Pointer(&b.scalars[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, 4, 0)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return nil
}

// Count returns the number of vertex markers.
func (b *MarkerBatch) Count() int {
	return len(b.positions)
}

// Scalar returns the animation scalar for one marker.
func (b *MarkerBatch) Scalar(index int) float32 {
	if index < 0 || index >= len(b.scalars) {
		return 0
	}
	return b.scalars[index]
}

// SetScalar updates the animation scalar for one marker. The GPU buffer is
// refreshed on the next Draw.
func (b *MarkerBatch) SetScalar(index int, value float32) {
	if index < 0 || index >= len(b.scalars) {
		return
	}
	b.scalars[index] = value
	b.dirty = true
}

// SetVisible flips whether the batch is drawn.
func (b *MarkerBatch) SetVisible(visible bool) {
	b.visible = visible
}

// Visible reports whether the batch is drawn.
func (b *MarkerBatch) Visible() bool {
	return b.visible
}

// Draw renders all markers in a single call. viewportHeight is needed to
// convert the world-space radius into a perspective point size.
func (b *MarkerBatch) Draw(view, proj math.Mat4, mat MarkerMaterial, viewportHeight int32) {
	if !b.built || !b.visible || len(b.positions) == 0 {
		return
	}

	b.flushScalars()

	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.locView, 1, false, &view[0])
	gl.UniformMatrix4fv(b.locProj, 1, false, &proj[0])
	gl.Uniform3fv(b.locColor, 1, &mat.Color[0])

	// proj[5] is the focal term of the projection; folding it in with the
	// viewport height turns the world radius into pixels after the
	// shader's divide by clip w.
	pointScale := mat.Radius * float32(viewportHeight) * proj[5]
	gl.Uniform1f(b.locPointScale, pointScale)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.POINTS, 0, int32(len(b.positions)))
	gl.BindVertexArray(0)
}

func (b *MarkerBatch) flushScalars() {
	if !b.dirty {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.scalarVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.scalars)*4, unsafe.Pointer(&b.scalars[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	b.dirty = false
}

// Destroy releases the GPU buffers. The staged mesh data is kept, so Build
// can re-upload later.
func (b *MarkerBatch) Destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.posVBO != 0 {
		gl.DeleteBuffers(1, &b.posVBO)
		b.posVBO = 0
	}
	if b.scalarVBO != 0 {
		gl.DeleteBuffers(1, &b.scalarVBO)
		b.scalarVBO = 0
	}
	b.built = false
	b.visible = false
}
