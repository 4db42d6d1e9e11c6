package stage

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/strata3d/meshstage/internal/engine/shader"
	"github.com/strata3d/meshstage/internal/mesh"
	"github.com/strata3d/meshstage/internal/stage/shaders"
	"github.com/strata3d/meshstage/pkg/math"
)

// WireBatch draws the unique mesh edges as one line batch. Each edge owns
// one animation scalar replicated across its two endpoints, read by the
// shader as the line's opacity.
type WireBatch struct {
	program  uint32
	locView  int32
	locProj  int32
	locColor int32

	vao       uint32
	posVBO    uint32
	scalarVBO uint32

	positions []math.Vec3
	edges     []mesh.Edge
	scalars   []float32
	built     bool
	visible   bool
	dirty     bool
}

// NewWireBatch compiles the wire shader. Geometry is supplied later via
// SetMesh and uploaded by Build.
func NewWireBatch() (*WireBatch, error) {
	program, err := shader.CompileProgram(shaders.WireVertexShader, shaders.WireFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("wire shader: %w", err)
	}

	b := &WireBatch{program: program}
	b.locView = shader.GetUniform(program, "uView")
	b.locProj = shader.GetUniform(program, "uProj")
	b.locColor = shader.GetUniform(program, "uColor")
	return b, nil
}

// SetMesh stages positions and the canonical edge list for the next Build.
// Existing GPU geometry is released.
func (b *WireBatch) SetMesh(positions []math.Vec3, edges []mesh.Edge) {
	b.Destroy()
	b.positions = positions
	b.edges = edges
}

// Build uploads two endpoints per edge plus a zeroed scalar buffer with the
// per-edge scalar replicated across both endpoints.
func (b *WireBatch) Build() error {
	if b.built {
		return nil
	}

	n := len(b.edges)
	b.scalars = make([]float32, n*2)
	b.visible = false
	b.dirty = false
	b.built = true
	if n == 0 {
		return nil
	}

	flat := make([]float32, 0, n*6)
	for _, e := range b.edges {
		pa, pb := b.positions[e[0]], b.positions[e[1]]
		flat = append(flat, pa.X, pa.Y, pa.Z, pb.X, pb.Y, pb.Z)
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

// Count returns the number of edges.
func (b *WireBatch) Count() int {
	return len(b.edges)
}

// Scalar returns the animation scalar for one edge.
func (b *WireBatch) Scalar(index int) float32 {
	if index < 0 || index*2 >= len(b.scalars) {
		return 0
	}
	return b.scalars[index*2]
}

// SetScalar updates one edge's scalar on both endpoints. The GPU buffer is
// refreshed on the next Draw.
func (b *WireBatch) SetScalar(index int, value float32) {
	if index < 0 || index*2+1 >= len(b.scalars) {
		return
	}
	b.scalars[index*2] = value
	b.scalars[index*2+1] = value
	b.dirty = true
}

// SetVisible flips whether the batch is drawn.
func (b *WireBatch) SetVisible(visible bool) {
	b.visible = visible
}

// Visible reports whether the batch is drawn.
func (b *WireBatch) Visible() bool {
	return b.visible
}

// Draw renders all edges in a single call.
func (b *WireBatch) Draw(view, proj math.Mat4, mat WireMaterial) {
	if !b.built || !b.visible || len(b.edges) == 0 {
		return
	}

	b.flushScalars()

	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.locView, 1, false, &view[0])
	gl.UniformMatrix4fv(b.locProj, 1, false, &proj[0])
	gl.Uniform3fv(b.locColor, 1, &mat.Color[0])

	if mat.Width > 0 {
		gl.LineWidth(mat.Width)
	}

	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(b.edges)*2))
	gl.BindVertexArray(0)

	gl.LineWidth(1)
}

func (b *WireBatch) flushScalars() {
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
func (b *WireBatch) Destroy() {
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
