// Package viewer ties a loaded mesh, its extracted topology, the reveal
// stages and the orbit camera into one frame-driven unit shared by the GUI
// and the scripted demo.
package viewer

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/strata3d/meshstage/internal/config"
	"github.com/strata3d/meshstage/internal/engine/camera"
	"github.com/strata3d/meshstage/internal/engine/scene"
	"github.com/strata3d/meshstage/internal/engine/tween"
	"github.com/strata3d/meshstage/internal/logger"
	"github.com/strata3d/meshstage/internal/mesh"
	"github.com/strata3d/meshstage/internal/mesh/shapes"
	"github.com/strata3d/meshstage/internal/stage"
	"github.com/strata3d/meshstage/pkg/formats"
)

// Config contains the viewer's startup parameters.
type Config struct {
	Scene scene.Config

	// ItemSeconds is the tween length of one primitive; RevealSeconds the
	// budget for a whole staggered stage reveal.
	ItemSeconds   float64
	RevealSeconds float64
	Easing        string

	MarkerColor  [3]float32
	MarkerRadius float32
	EdgeColor    [3]float32
	EdgeWidth    float32
	FaceColor    [3]float32
	FaceOpacity  float32
	SolidColor   [3]float32
}

// DefaultConfig returns the viewer defaults.
func DefaultConfig() Config {
	return Config{
		Scene:         scene.DefaultConfig(),
		ItemSeconds:   0.35,
		RevealSeconds: 1.6,
		Easing:        "cubic",
		MarkerColor:   [3]float32{0.31, 0.62, 0.86},
		MarkerRadius:  0.025,
		EdgeColor:     [3]float32{0.88, 0.88, 0.92},
		EdgeWidth:     1,
		FaceColor:     [3]float32{0.45, 0.52, 0.68},
		FaceOpacity:   0.55,
		SolidColor:    [3]float32{0.75, 0.66, 0.48},
	}
}

// FromConfig maps the application configuration onto viewer settings.
// Colors that fail to parse keep the defaults.
func FromConfig(cfg *config.Config) Config {
	vcfg := DefaultConfig()

	vcfg.Scene.Width = int32(cfg.Graphics.Width)
	vcfg.Scene.Height = int32(cfg.Graphics.Height)
	vcfg.Scene.MSAASamples = int32(cfg.Graphics.MSAA)
	vcfg.Scene.Background = parseColor(cfg.Colors.Background, vcfg.Scene.Background)

	vcfg.ItemSeconds = cfg.Viewer.ItemSeconds
	vcfg.RevealSeconds = cfg.Viewer.RevealSeconds
	vcfg.Easing = cfg.Viewer.Easing
	vcfg.MarkerRadius = cfg.Viewer.MarkerRadius
	vcfg.MarkerColor = parseColor(cfg.Colors.Marker, vcfg.MarkerColor)
	vcfg.EdgeColor = parseColor(cfg.Colors.Edge, vcfg.EdgeColor)
	vcfg.FaceColor = parseColor(cfg.Colors.Face, vcfg.FaceColor)
	vcfg.SolidColor = parseColor(cfg.Colors.Solid, vcfg.SolidColor)

	return vcfg
}

func parseColor(s string, fallback [3]float32) [3]float32 {
	c, err := stage.ParseHexColor(s)
	if err != nil {
		logger.Warn("bad color in config", zap.String("value", s), zap.Error(err))
		return fallback
	}
	return c
}

// Stats is a snapshot of the loaded mesh and stage states for display.
type Stats struct {
	Name     string
	Vertices int
	Edges    int
	Faces    int

	VertexState stage.State
	EdgeState   stage.State
	FaceState   stage.State
	SolidState  stage.DissolveState
	Animating   bool
}

// Viewer owns the scene, the camera, the tween runner and the four stages.
// All methods must run on the GL thread.
type Viewer struct {
	scene  *scene.Scene
	camera *camera.OrbitCamera
	runner *tween.Runner

	mesh     *mesh.TriMesh
	topology *mesh.Topology

	markers *stage.MarkerBatch
	wires   *stage.WireBatch
	fills   *stage.FillBatch
	solid   *stage.SolidBatch

	vertexStage *stage.Controller
	edgeStage   *stage.Controller
	faceStage   *stage.Controller
	assembler   *stage.DissolveAssembler

	// Materials, tweakable from the UI.
	MarkerMat stage.MarkerMaterial
	WireMat   stage.WireMaterial
	FillMat   stage.FillMaterial
	SolidMat  stage.DissolveMaterial
}

// New creates a viewer with compiled stage batches but no mesh. Stage
// toggles stay no-ops until a mesh is loaded.
func New(cfg Config) (*Viewer, error) {
	sc, err := scene.New(cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	v := &Viewer{
		scene:     sc,
		camera:    camera.NewOrbitCamera(),
		runner:    tween.NewRunner(),
		MarkerMat: stage.MarkerMaterial{Color: cfg.MarkerColor, Radius: cfg.MarkerRadius},
		WireMat:   stage.WireMaterial{Color: cfg.EdgeColor, Width: cfg.EdgeWidth},
		FillMat:   stage.FillMaterial{Color: cfg.FaceColor, Opacity: cfg.FaceOpacity},
		SolidMat:  stage.DissolveMaterial{Color: cfg.SolidColor},
	}

	v.markers, err = stage.NewMarkerBatch()
	if err != nil {
		v.Destroy()
		return nil, fmt.Errorf("creating marker batch: %w", err)
	}
	v.wires, err = stage.NewWireBatch()
	if err != nil {
		v.Destroy()
		return nil, fmt.Errorf("creating wire batch: %w", err)
	}
	v.fills, err = stage.NewFillBatch()
	if err != nil {
		v.Destroy()
		return nil, fmt.Errorf("creating fill batch: %w", err)
	}
	v.solid, err = stage.NewSolidBatch()
	if err != nil {
		v.Destroy()
		return nil, fmt.Errorf("creating solid batch: %w", err)
	}

	ease := tween.ByName(cfg.Easing)
	stageCfg := stage.Config{
		ItemDuration: cfg.ItemSeconds,
		TotalBudget:  cfg.RevealSeconds,
		Ease:         ease,
	}
	v.vertexStage = stage.NewController(v.runner, stageCfg)
	v.edgeStage = stage.NewController(v.runner, stageCfg)
	v.faceStage = stage.NewController(v.runner, stageCfg)
	v.assembler = stage.NewDissolveAssembler(v.runner, cfg.RevealSeconds, ease)

	return v, nil
}

// LoadShape loads one of the built-in procedural shapes by name.
func (v *Viewer) LoadShape(name string) error {
	m, err := shapes.ByName(name)
	if err != nil {
		return err
	}
	return v.LoadMesh(m)
}

// LoadFile loads a mesh from an OBJ or STL file.
func (v *Viewer) LoadFile(path string) error {
	data, err := formats.LoadFile(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return v.LoadMesh(mesh.FromMeshData(filepath.Base(path), data))
}

// LoadMesh extracts the mesh's topology and rewinds every stage to its
// initial state. On an extraction error the previously loaded mesh stays
// active.
func (v *Viewer) LoadMesh(m *mesh.TriMesh) error {
	topo, err := mesh.ExtractTopology(m.Positions, m.Indices)
	if err != nil {
		return fmt.Errorf("extracting topology from %s: %w", m.Name, err)
	}

	v.mesh = m
	v.topology = topo

	v.markers.SetMesh(topo.Vertices)
	v.wires.SetMesh(topo.Vertices, topo.Edges)
	v.fills.SetMesh(topo.Vertices, topo.Faces)
	v.solid.SetMesh(m.Positions, m.Indices)

	v.vertexStage.Attach(v.markers)
	v.edgeStage.Attach(v.wires)
	v.faceStage.Attach(v.fills)
	v.assembler.Attach(v.solid)

	b := m.Bounds()
	ext := b.MaxExtent()
	if ext <= 0 {
		ext = 1
	}
	v.camera.FitToBounds(b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	v.scene.SetBounds(b.Min, b.Max, ext*0.02)

	spacing := ext / 4
	v.scene.SetGrid(spacing*6, spacing, b.Min.Y)

	logger.Info("mesh loaded",
		zap.String("name", m.Name),
		zap.Int("vertices", topo.VertexCount()),
		zap.Int("edges", topo.EdgeCount()),
		zap.Int("faces", topo.FaceCount()))
	return nil
}

// HasMesh reports whether a mesh is loaded.
func (v *Viewer) HasMesh() bool {
	return v.mesh != nil
}

// ToggleVertices flips the vertex-marker stage.
func (v *Viewer) ToggleVertices() error {
	return v.vertexStage.Toggle()
}

// ToggleEdges flips the edge stage.
func (v *Viewer) ToggleEdges() error {
	return v.edgeStage.Toggle()
}

// ToggleFaces flips the face stage.
func (v *Viewer) ToggleFaces() error {
	return v.faceStage.Toggle()
}

// ToggleSolid flips the assembled solid.
func (v *Viewer) ToggleSolid() error {
	return v.assembler.Toggle()
}

// ResetStages cancels all animations and tears every stage back down to
// its initial state. The loaded mesh stays; toggling rebuilds lazily.
func (v *Viewer) ResetStages() {
	v.vertexStage.Reset()
	v.edgeStage.Reset()
	v.faceStage.Reset()
	v.assembler.Reset()
}

// SetMarkerRadius updates the vertex-marker radius in world units.
func (v *Viewer) SetMarkerRadius(radius float32) {
	v.MarkerMat.Radius = radius
}

// SetRevealSeconds updates the shared animation budget of all stages.
// Running animations keep their old timing; the next toggle uses the new
// one.
func (v *Viewer) SetRevealSeconds(seconds float64) {
	v.vertexStage.SetBudget(seconds)
	v.edgeStage.SetBudget(seconds)
	v.faceStage.SetBudget(seconds)
	v.assembler.SetBudget(seconds)
}

// SetEasing switches the easing curve by name for subsequent toggles.
// Unknown names fall back to cubic-in-out.
func (v *Viewer) SetEasing(name string) {
	ease := tween.ByName(name)
	v.vertexStage.SetEase(ease)
	v.edgeStage.SetEase(ease)
	v.faceStage.SetEase(ease)
	v.assembler.SetEase(ease)
}

// Update advances all animations by dt seconds.
func (v *Viewer) Update(dt float64) {
	v.runner.Update(dt)
}

// Render draws the frame offscreen and returns the color texture. Draw
// order is back to front: solid, faces, then the line and point work that
// must win the depth test at shared surface positions.
func (v *Viewer) Render() uint32 {
	v.scene.Begin(v.camera.ViewMatrix())

	view := v.scene.View()
	proj := v.scene.Projection()
	light := v.scene.Light
	lightDir := light.Direction()

	v.solid.Draw(view, proj, v.SolidMat, lightDir, light.Ambient, light.Diffuse)
	v.fills.Draw(view, proj, v.FillMat, lightDir, light.Ambient, light.Diffuse)
	v.wires.Draw(view, proj, v.WireMat)
	_, height := v.scene.Size()
	v.markers.Draw(view, proj, v.MarkerMat, height)

	return v.scene.End()
}

// Stats returns a snapshot for the UI.
func (v *Viewer) Stats() Stats {
	s := Stats{
		VertexState: v.vertexStage.State(),
		EdgeState:   v.edgeStage.State(),
		FaceState:   v.faceStage.State(),
		SolidState:  v.assembler.State(),
	}
	if v.topology != nil {
		s.Name = v.mesh.Name
		s.Vertices = v.topology.VertexCount()
		s.Edges = v.topology.EdgeCount()
		s.Faces = v.topology.FaceCount()
	}
	s.Animating = v.vertexStage.Animating() || v.edgeStage.Animating() ||
		v.faceStage.Animating() || v.assembler.Animating()
	return s
}

// Camera returns the orbit camera for input handling.
func (v *Viewer) Camera() *camera.OrbitCamera {
	return v.camera
}

// Scene returns the scene for overlay and lighting tweaks.
func (v *Viewer) Scene() *scene.Scene {
	return v.scene
}

// Resize updates the render target dimensions.
func (v *Viewer) Resize(width, height int32) {
	v.scene.Resize(width, height)
}

// Present blits the last rendered frame onto the window's default
// framebuffer, scaled to width x height.
func (v *Viewer) Present(width, height int32) {
	v.scene.Present(width, height)
}

// CapturePixels returns the last rendered frame as raw RGBA pixels in
// OpenGL's bottom-up row order.
func (v *Viewer) CapturePixels() ([]byte, int32, int32) {
	return v.scene.ReadPixels()
}

// Destroy releases all GPU resources.
func (v *Viewer) Destroy() {
	if v.markers != nil {
		v.markers.Destroy()
	}
	if v.wires != nil {
		v.wires.Destroy()
	}
	if v.fills != nil {
		v.fills.Destroy()
	}
	if v.solid != nil {
		v.solid.Destroy()
	}
	if v.scene != nil {
		v.scene.Destroy()
	}
}
