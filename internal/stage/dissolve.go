package stage

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/strata3d/meshstage/internal/engine/shader"
	"github.com/strata3d/meshstage/internal/engine/tween"
	"github.com/strata3d/meshstage/internal/mesh"
	"github.com/strata3d/meshstage/internal/stage/shaders"
	"github.com/strata3d/meshstage/pkg/math"
)

// Solid is the shaded mesh driven by the DissolveAssembler. A single
// dissolve value in [0,1] controls how much of the surface survives the
// per-fragment noise cut: 0 discards everything, 1 keeps everything.
type Solid interface {
	Build() error
	Destroy()
	SetDissolve(value float32)
	Dissolve() float32
	SetVisible(visible bool)
	Visible() bool
}

// DissolveState tracks the assembled solid.
type DissolveState int

const (
	DissolveAbsent DissolveState = iota // no solid on screen
	DissolveSolid
	DissolveVanishing
)

func (s DissolveState) String() string {
	switch s {
	case DissolveAbsent:
		return "absent"
	case DissolveSolid:
		return "solid"
	case DissolveVanishing:
		return "vanishing"
	default:
		return "unknown"
	}
}

// DissolveAssembler fades the shaded solid in and out by animating its
// dissolve value. Like the stage controller it is optimistic on the way
// in and completion-driven on the way out.
type DissolveAssembler struct {
	runner *tween.Runner
	solid  Solid
	state  DissolveState
	handle *tween.Handle
	budget float64
	ease   tween.EaseFunc
}

// NewDissolveAssembler returns an assembler scheduling on runner. budget
// is the full dissolve duration in seconds; zero or negative switches to
// instantaneous mode.
func NewDissolveAssembler(runner *tween.Runner, budget float64, ease tween.EaseFunc) *DissolveAssembler {
	return &DissolveAssembler{
		runner: runner,
		state:  DissolveAbsent,
		budget: budget,
		ease:   ease,
	}
}

// Attach points the assembler at a solid. Any running fade is cancelled
// and the state returns to absent; the solid itself is left alone.
func (a *DissolveAssembler) Attach(solid Solid) {
	a.cancel()
	a.solid = solid
	a.state = DissolveAbsent
}

// State returns the current assembler state.
func (a *DissolveAssembler) State() DissolveState {
	return a.state
}

// Animating reports whether a fade is in flight.
func (a *DissolveAssembler) Animating() bool {
	return a.handle != nil && !a.handle.Done()
}

// SetBudget changes the fade duration for subsequent toggles.
func (a *DissolveAssembler) SetBudget(seconds float64) {
	a.budget = seconds
}

// SetEase swaps the easing curve for subsequent toggles.
func (a *DissolveAssembler) SetEase(ease tween.EaseFunc) {
	a.ease = ease
}

// Toggle flips the solid between assembled and absent. The first toggle
// builds the GPU geometry. Without an attached solid it does nothing.
func (a *DissolveAssembler) Toggle() error {
	if a.solid == nil {
		return nil
	}

	switch a.state {
	case DissolveAbsent:
		if err := a.solid.Build(); err != nil {
			return fmt.Errorf("build solid: %w", err)
		}
		a.form()
	case DissolveVanishing:
		a.form()
	case DissolveSolid:
		a.vanish()
	}
	return nil
}

// Reset cancels any fade and tears the solid back down to absent.
func (a *DissolveAssembler) Reset() {
	a.cancel()
	if a.solid != nil {
		a.solid.Destroy()
	}
	a.state = DissolveAbsent
}

// form fades the solid in. The state flips to solid immediately; the
// tween only catches the dissolve value up.
func (a *DissolveAssembler) form() {
	a.cancel()
	a.solid.SetVisible(true)
	a.state = DissolveSolid

	if a.budget <= 0 {
		a.solid.SetDissolve(1)
		return
	}

	a.handle = a.runner.Start(&tween.Tween{
		From:     a.solid.Dissolve(),
		To:       1,
		Duration: a.budget,
		Ease:     a.ease,
		OnUpdate: func(v float32) { a.solid.SetDissolve(v) },
	})
}

// vanish fades the solid out and hides it once the dissolve value reaches
// zero.
func (a *DissolveAssembler) vanish() {
	a.cancel()

	if a.budget <= 0 {
		a.solid.SetDissolve(0)
		a.solid.SetVisible(false)
		a.state = DissolveAbsent
		return
	}

	a.state = DissolveVanishing
	a.handle = a.runner.Start(&tween.Tween{
		From:     a.solid.Dissolve(),
		To:       0,
		Duration: a.budget,
		Ease:     a.ease,
		OnUpdate: func(v float32) { a.solid.SetDissolve(v) },
		OnComplete: func() {
			a.solid.SetVisible(false)
			a.state = DissolveAbsent
		},
	})
}

func (a *DissolveAssembler) cancel() {
	if a.handle != nil {
		a.handle.Cancel()
		a.handle = nil
	}
}

// SolidBatch draws the mesh as one shaded indexed batch with smooth
// per-vertex normals. The dissolve shader discards fragments whose
// position hash exceeds the dissolve value.
type SolidBatch struct {
	program     uint32
	locView     int32
	locProj     int32
	locColor    int32
	locDissolve int32
	locLightDir int32
	locAmbient  int32
	locDiffuse  int32

	vao uint32
	vbo uint32
	ebo uint32

	positions  []math.Vec3
	indices    []uint32
	dissolve   float32
	built      bool
	visible    bool
	indexCount int32
}

// NewSolidBatch compiles the dissolve shader. Geometry is supplied later
// via SetMesh and uploaded by Build.
func NewSolidBatch() (*SolidBatch, error) {
	program, err := shader.CompileProgram(shaders.DissolveVertexShader, shaders.DissolveFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("dissolve shader: %w", err)
	}

	b := &SolidBatch{program: program}
	b.locView = shader.GetUniform(program, "uView")
	b.locProj = shader.GetUniform(program, "uProj")
	b.locColor = shader.GetUniform(program, "uColor")
	b.locDissolve = shader.GetUniform(program, "uDissolve")
	b.locLightDir = shader.GetUniform(program, "uLightDir")
	b.locAmbient = shader.GetUniform(program, "uAmbient")
	b.locDiffuse = shader.GetUniform(program, "uDiffuse")
	return b, nil
}

// SetMesh stages positions and the triangle index list for the next
// Build. Existing GPU geometry is released.
func (b *SolidBatch) SetMesh(positions []math.Vec3, indices []uint32) {
	b.Destroy()
	b.positions = positions
	b.indices = indices
}

// Build uploads interleaved positions and smooth normals plus the index
// buffer, and resets the dissolve value to zero.
func (b *SolidBatch) Build() error {
	if b.built {
		return nil
	}

	b.dissolve = 0
	b.visible = false
	b.built = true

	// Non-indexed meshes are flat triangle lists; index them trivially so
	// one indexed draw path serves both.
	if b.indices == nil && len(b.positions) > 0 {
		b.indices = make([]uint32, len(b.positions))
		for i := range b.indices {
			b.indices[i] = uint32(i)
		}
	}

	b.indexCount = int32(len(b.indices))
	if len(b.positions) == 0 || len(b.indices) == 0 {
		return nil
	}

	normals := mesh.SmoothNormals(b.positions, b.indices)
	flat := make([]float32, 0, len(b.positions)*6)
	for i, p := range b.positions {
		n := normals[i]
		flat = append(flat, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(flat)*4, unsafe.Pointer(&flat[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(b.indices)*4, unsafe.Pointer(&b.indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return nil
}

// SetDissolve sets the surviving fraction of the surface in [0,1].
func (b *SolidBatch) SetDissolve(value float32) {
	b.dissolve = value
}

// Dissolve returns the current dissolve value.
func (b *SolidBatch) Dissolve() float32 {
	return b.dissolve
}

// SetVisible flips whether the batch is drawn.
func (b *SolidBatch) SetVisible(visible bool) {
	b.visible = visible
}

// Visible reports whether the batch is drawn.
func (b *SolidBatch) Visible() bool {
	return b.visible
}

// Draw renders the solid in a single indexed call. It sits furthest back
// in the depth offset order, behind the face fill and the line work.
func (b *SolidBatch) Draw(view, proj math.Mat4, mat DissolveMaterial, lightDir, ambient, diffuse [3]float32) {
	if !b.built || !b.visible || b.indexCount == 0 {
		return
	}

	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.locView, 1, false, &view[0])
	gl.UniformMatrix4fv(b.locProj, 1, false, &proj[0])
	gl.Uniform3fv(b.locColor, 1, &mat.Color[0])
	gl.Uniform1f(b.locDissolve, b.dissolve)
	gl.Uniform3fv(b.locLightDir, 1, &lightDir[0])
	gl.Uniform3fv(b.locAmbient, 1, &ambient[0])
	gl.Uniform3fv(b.locDiffuse, 1, &diffuse[0])

	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(2, 2)

	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.Disable(gl.POLYGON_OFFSET_FILL)
}

// Destroy releases the GPU buffers. The staged mesh data is kept, so
// Build can re-upload later.
func (b *SolidBatch) Destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
	b.built = false
	b.visible = false
	b.dissolve = 0
}
