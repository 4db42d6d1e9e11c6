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

// FillBatch draws the mesh faces as one translucent triangle batch. Faces
// are de-indexed so each triangle carries its own flat normal, and each
// face owns one animation scalar replicated across its three corners.
type FillBatch struct {
	program     uint32
	locView     int32
	locProj     int32
	locColor    int32
	locOpacity  int32
	locLightDir int32
	locAmbient  int32
	locDiffuse  int32

	vao       uint32
	posVBO    uint32
	scalarVBO uint32

	positions []math.Vec3
	faces     []mesh.Face
	scalars   []float32
	built     bool
	visible   bool
	dirty     bool
}

// NewFillBatch compiles the fill shader. Geometry is supplied later via
// SetMesh and uploaded by Build.
func NewFillBatch() (*FillBatch, error) {
	program, err := shader.CompileProgram(shaders.FillVertexShader, shaders.FillFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("fill shader: %w", err)
	}

	b := &FillBatch{program: program}
	b.locView = shader.GetUniform(program, "uView")
	b.locProj = shader.GetUniform(program, "uProj")
	b.locColor = shader.GetUniform(program, "uColor")
	b.locOpacity = shader.GetUniform(program, "uOpacity")
	b.locLightDir = shader.GetUniform(program, "uLightDir")
	b.locAmbient = shader.GetUniform(program, "uAmbient")
	b.locDiffuse = shader.GetUniform(program, "uDiffuse")
	return b, nil
}

// SetMesh stages positions and the face list for the next Build. Existing
// GPU geometry is released.
func (b *FillBatch) SetMesh(positions []math.Vec3, faces []mesh.Face) {
	b.Destroy()
	b.positions = positions
	b.faces = faces
}

// Build uploads three corners per face, each with the face's flat normal,
// plus a zeroed scalar buffer with the per-face scalar replicated across
// all three corners.
func (b *FillBatch) Build() error {
	if b.built {
		return nil
	}

	n := len(b.faces)
	b.scalars = make([]float32, n*3)
	b.visible = false
	b.dirty = false
	b.built = true
	if n == 0 {
		return nil
	}

	// Interleaved position + normal, 6 floats per corner
	flat := make([]float32, 0, n*18)
	for _, f := range b.faces {
		p0, p1, p2 := b.positions[f[0]], b.positions[f[1]], b.positions[f[2]]
		nrm := mesh.FaceNormal(p0, p1, p2)
		for _, p := range [3]math.Vec3{p0, p1, p2} {
			flat = append(flat, p.X, p.Y, p.Z, nrm.X, nrm.Y, nrm.Z)
		}
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(flat)*4, unsafe.Pointer(&flat[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &b.scalarVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.scalarVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.scalars)*4, unsafe.Pointer(&b.scalars[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, 4, 0)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return nil
}

// Count returns the number of faces.
func (b *FillBatch) Count() int {
	return len(b.faces)
}

// Scalar returns the animation scalar for one face.
func (b *FillBatch) Scalar(index int) float32 {
	if index < 0 || index*3 >= len(b.scalars) {
		return 0
	}
	return b.scalars[index*3]
}

// SetScalar updates one face's scalar on all three corners. The GPU buffer
// is refreshed on the next Draw.
func (b *FillBatch) SetScalar(index int, value float32) {
	if index < 0 || index*3+2 >= len(b.scalars) {
		return
	}
	b.scalars[index*3] = value
	b.scalars[index*3+1] = value
	b.scalars[index*3+2] = value
	b.dirty = true
}

// SetVisible flips whether the batch is drawn.
func (b *FillBatch) SetVisible(visible bool) {
	b.visible = visible
}

// Visible reports whether the batch is drawn.
func (b *FillBatch) Visible() bool {
	return b.visible
}

// Draw renders all faces in a single call. The faces are pushed slightly
// back in depth so edge lines and markers drawn afterwards win at shared
// surface positions, while still sitting in front of the assembled solid.
func (b *FillBatch) Draw(view, proj math.Mat4, mat FillMaterial, lightDir, ambient, diffuse [3]float32) {
	if !b.built || !b.visible || len(b.faces) == 0 {
		return
	}

	b.flushScalars()

	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.locView, 1, false, &view[0])
	gl.UniformMatrix4fv(b.locProj, 1, false, &proj[0])
	gl.Uniform3fv(b.locColor, 1, &mat.Color[0])
	gl.Uniform1f(b.locOpacity, mat.Opacity)
	gl.Uniform3fv(b.locLightDir, 1, &lightDir[0])
	gl.Uniform3fv(b.locAmbient, 1, &ambient[0])
	gl.Uniform3fv(b.locDiffuse, 1, &diffuse[0])

	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(1, 1)

	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(b.faces)*3))
	gl.BindVertexArray(0)

	gl.Disable(gl.POLYGON_OFFSET_FILL)
}

func (b *FillBatch) flushScalars() {
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
func (b *FillBatch) Destroy() {
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
