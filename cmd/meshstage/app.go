package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/strata3d/meshstage/internal/config"
	"github.com/strata3d/meshstage/internal/engine/capture"
	"github.com/strata3d/meshstage/internal/engine/ui"
	"github.com/strata3d/meshstage/internal/logger"
	"github.com/strata3d/meshstage/internal/viewer"
)

// lastMousePos tracks previous mouse position for drag delta calculation.
var lastMousePos imgui.Vec2

// shapeMenu lists the built-in shapes in menu order.
var shapeMenu = []struct {
	label string
	name  string
}{
	{"Box", "box"},
	{"Sphere", "sphere"},
	{"Cylinder", "cylinder"},
	{"Cone", "cone"},
}

// easingNames lists the selectable easing curves.
var easingNames = []string{"linear", "quad", "cubic-out", "cubic", "back"}

// App represents the MeshStage application state.
type App struct {
	ui     *ui.Backend
	cfg    *config.Config
	viewer *viewer.Viewer
	shots  *capture.Capture

	background [3]float32

	// UI state, mirrored into the viewer when a widget changes.
	revealSeconds float32
	markerRadius  float32
	easing        string
	showGrid      bool
	showBounds    bool

	fps float64

	// Notification state
	notifyMsg  string
	showNotify bool
	notifyTime time.Time

	// Deferred capture flag (capture next frame)
	screenshotRequested bool

	// File dialog state (must open on main thread)
	pendingMeshPath string

	lastFrame time.Time
}

// NewApp creates the application: UI backend, offscreen viewer and the
// initial mesh from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:           cfg,
		shots:         capture.New(cfg.Viewer.ScreenshotDir, "meshstage"),
		revealSeconds: float32(cfg.Viewer.RevealSeconds),
		markerRadius:  cfg.Viewer.MarkerRadius,
		easing:        cfg.Viewer.Easing,
		showGrid:      cfg.Viewer.ShowGrid,
		showBounds:    cfg.Viewer.ShowBounds,
	}

	vcfg := viewer.FromConfig(cfg)
	app.background = vcfg.Scene.Background

	var err error
	app.ui, err = ui.NewBackend("MeshStage", int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		return nil, fmt.Errorf("create UI backend: %w", err)
	}

	app.viewer, err = viewer.New(vcfg)
	if err != nil {
		return nil, fmt.Errorf("create viewer: %w", err)
	}

	app.viewer.Scene().SetGridVisible(app.showGrid)
	app.viewer.Scene().SetBoundsVisible(app.showBounds)

	// Initial mesh: a file path wins over the built-in shape name.
	if cfg.Viewer.MeshFile != "" {
		app.loadMeshFile(cfg.Viewer.MeshFile)
	} else if cfg.Viewer.Shape != "" {
		app.loadShape(cfg.Viewer.Shape)
	}

	return app, nil
}

// Close saves the tweakable settings and cleans up resources.
func (app *App) Close() {
	app.saveSettings()
	if app.viewer != nil {
		app.viewer.Destroy()
		app.viewer = nil
	}
}

// saveSettings writes the viewer settings back to the user's config file so
// they survive restarts.
func (app *App) saveSettings() {
	app.cfg.Viewer.MarkerRadius = app.markerRadius
	app.cfg.Viewer.RevealSeconds = float64(app.revealSeconds)
	app.cfg.Viewer.Easing = app.easing
	app.cfg.Viewer.ShowGrid = app.showGrid
	app.cfg.Viewer.ShowBounds = app.showBounds

	if err := app.cfg.Save(); err != nil {
		logger.Warn("failed to save settings", zap.Error(err))
	}
}

// Run starts the main application loop.
func (app *App) Run() {
	app.lastFrame = time.Now()
	app.ui.Run(app.render)
}

// openFileDialog shows a native file dialog to select a mesh file.
func (app *App) openFileDialog() {
	// Run in goroutine to not block the UI
	// NOTE: SDL/Cocoa window operations must happen on main thread,
	// so we just set pendingMeshPath here and process it in render()
	go func() {
		filename, err := dialog.File().
			Filter("Mesh Files", "obj", "stl").
			Filter("All Files", "*").
			Title("Open Mesh").
			Load()

		if err != nil {
			// User canceled or error occurred
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			}
			return
		}

		// Queue the file to be opened on main thread
		app.pendingMeshPath = filename
	}()
}

// loadMeshFile loads a mesh from an OBJ or STL file.
func (app *App) loadMeshFile(path string) {
	if err := app.viewer.LoadFile(path); err != nil {
		logger.Error("failed to load mesh file", zap.String("path", path), zap.Error(err))
		app.showNotification("Load failed: " + err.Error())
		return
	}
	app.cfg.Viewer.MeshFile = path
	app.ui.SetWindowTitle("MeshStage - " + filepath.Base(path))
	app.showNotification("Loaded " + filepath.Base(path))
}

// loadShape loads one of the built-in shapes.
func (app *App) loadShape(name string) {
	if err := app.viewer.LoadShape(name); err != nil {
		logger.Error("failed to load shape", zap.String("shape", name), zap.Error(err))
		app.showNotification("Load failed: " + err.Error())
		return
	}
	app.cfg.Viewer.Shape = name
	app.cfg.Viewer.MeshFile = ""
	app.ui.SetWindowTitle("MeshStage - " + name)
}

// toggle runs a stage toggle and reports failures without aborting the UI.
func (app *App) toggle(name string, fn func() error) {
	if err := fn(); err != nil {
		logger.Error("stage toggle failed", zap.String("stage", name), zap.Error(err))
		app.showNotification("Toggle failed: " + err.Error())
	}
}

// captureScreenshot saves the offscreen scene texture as a PNG.
func (app *App) captureScreenshot() {
	pixels, width, height := app.viewer.CapturePixels()
	if width <= 0 || height <= 0 {
		app.showNotification("Screenshot failed: empty viewport")
		return
	}

	filename, err := app.shots.SavePixels(pixels, int(width), int(height))
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		app.showNotification("Screenshot failed: " + err.Error())
		return
	}

	logger.Info("screenshot saved", zap.String("file", filename))
	app.showNotification("Screenshot saved: " + filename)
}

func (app *App) showNotification(msg string) {
	app.notifyMsg = msg
	app.showNotify = true
	app.notifyTime = time.Now()
}

// render is called each frame to draw the UI.
func (app *App) render() {
	now := time.Now()
	dt := now.Sub(app.lastFrame).Seconds()
	app.lastFrame = now
	if dt > 0.25 {
		dt = 0.25 // Clamp after stalls (window drag, debugger)
	}
	if dt > 0 {
		app.fps = app.fps*0.9 + (1.0/dt)*0.1
	}

	// Deferred screenshot capture: the scene texture still holds the
	// previous frame's image at this point.
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}

	// Process pending file dialog result (must be on main thread for SDL/Cocoa)
	if app.pendingMeshPath != "" {
		path := app.pendingMeshPath
		app.pendingMeshPath = ""
		app.loadMeshFile(path)
	}

	app.handleShortcuts()
	app.renderMenuBar()

	// Get viewport work area (excludes menu bar)
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	leftPanelWidth := float32(300)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight

	// Window flags for fixed panels
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	// Left panel - stage controls
	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Controls", nil, flags) {
		app.renderControlsPanel()
	}
	imgui.End()

	// Center panel - 3D viewport
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-leftPanelWidth, contentHeight))
	if imgui.BeginV("Viewport", nil, flags) {
		app.renderViewportPanel(dt)
	}
	imgui.End()

	// Status bar at bottom
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()

	// Notification overlay, shown for 2 seconds
	if app.showNotify && time.Since(app.notifyTime) < 2*time.Second {
		notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
			imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
			imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
		imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+10, workPos.Y+10))
		imgui.SetNextWindowBgAlpha(0.85)
		if imgui.BeginV("##Notify", nil, notifyFlags) {
			imgui.Text(app.notifyMsg)
		}
		imgui.End()
	} else if app.showNotify {
		app.showNotify = false
	}
}

// handleShortcuts processes global keyboard shortcuts.
func (app *App) handleShortcuts() {
	// Stage toggles only when no widget has keyboard focus
	if !imgui.IsAnyItemActive() {
		if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyV)) {
			app.toggle("vertices", app.viewer.ToggleVertices)
		}
		if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyE)) {
			app.toggle("edges", app.viewer.ToggleEdges)
		}
		if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF)) {
			app.toggle("faces", app.viewer.ToggleFaces)
		}
		if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyM)) {
			app.toggle("solid", app.viewer.ToggleSolid)
		}
		if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyR)) {
			app.viewer.ResetStages()
		}
		if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyS)) {
			app.screenshotRequested = true
		}
	}

	// F12 = request screenshot (captured next frame to get rendered content)
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF12)) {
		app.screenshotRequested = true
	}

	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyEscape)) {
		os.Exit(0)
	}
}

// renderMenuBar renders the main menu bar.
func (app *App) renderMenuBar() {
	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open Mesh...") {
				app.openFileDialog()
			}
			if imgui.MenuItemBool("Save Screenshot") {
				app.screenshotRequested = true
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		if imgui.BeginMenu("Shapes") {
			for _, s := range shapeMenu {
				if imgui.MenuItemBool(s.label) {
					app.loadShape(s.name)
				}
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}
}

// renderControlsPanel renders the left panel with stage and animation
// controls.
func (app *App) renderControlsPanel() {
	stats := app.viewer.Stats()

	imgui.Text("Mesh")
	imgui.Separator()
	if app.viewer.HasMesh() {
		imgui.TextWrapped(stats.Name)
		imgui.Text(fmt.Sprintf("%d vertices | %d edges | %d faces",
			stats.Vertices, stats.Edges, stats.Faces))
	} else {
		imgui.TextDisabled("No mesh loaded")
	}
	if imgui.Button("Open Mesh File...") {
		app.openFileDialog()
	}

	imgui.Spacing()
	imgui.Text("Stages")
	imgui.Separator()
	app.stageRow("Vertices", "V", stats.VertexState.String(), app.viewer.ToggleVertices)
	app.stageRow("Edges", "E", stats.EdgeState.String(), app.viewer.ToggleEdges)
	app.stageRow("Faces", "F", stats.FaceState.String(), app.viewer.ToggleFaces)
	app.stageRow("Solid", "M", stats.SolidState.String(), app.viewer.ToggleSolid)
	if imgui.Button("Reset Stages") {
		app.viewer.ResetStages()
	}
	imgui.SameLine()
	imgui.TextDisabled("R")

	imgui.Spacing()
	imgui.Text("Animation")
	imgui.Separator()
	imgui.SetNextItemWidth(-80)
	if imgui.SliderFloatV("Reveal", &app.revealSeconds, 0.0, 5.0, "%.1fs", imgui.SliderFlagsNone) {
		app.viewer.SetRevealSeconds(float64(app.revealSeconds))
	}
	imgui.TextDisabled("(0 = instant)")
	imgui.SetNextItemWidth(-80)
	if imgui.SliderFloatV("Markers", &app.markerRadius, 0.005, 0.2, "%.3f", imgui.SliderFlagsNone) {
		app.viewer.SetMarkerRadius(app.markerRadius)
	}
	imgui.Text("Easing:")
	for _, name := range easingNames {
		if imgui.SelectableBoolV(name, name == app.easing, 0, imgui.NewVec2(0, 0)) {
			app.easing = name
			app.viewer.SetEasing(name)
		}
	}

	imgui.Spacing()
	imgui.Text("Display")
	imgui.Separator()
	if imgui.Checkbox("Grid", &app.showGrid) {
		app.viewer.Scene().SetGridVisible(app.showGrid)
	}
	imgui.SameLine()
	if imgui.Checkbox("Bounds", &app.showBounds) {
		app.viewer.Scene().SetBoundsVisible(app.showBounds)
	}

	imgui.Spacing()
	imgui.TextDisabled("(Drag to rotate, scroll to zoom)")
}

// stageRow renders one toggle button with its shortcut key and current state.
func (app *App) stageRow(label, key, state string, fn func() error) {
	if imgui.ButtonV(label, imgui.NewVec2(110, 0)) {
		app.toggle(label, fn)
	}
	imgui.SameLine()
	imgui.TextDisabled(key)
	imgui.SameLine()
	imgui.Text(state)
}

// renderViewportPanel renders the 3D scene into a texture and displays it,
// forwarding mouse input to the orbit camera while hovered.
func (app *App) renderViewportPanel(dt float64) {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}

	app.viewer.Resize(int32(avail.X), int32(avail.Y))
	app.viewer.Update(dt)
	textureID := app.viewer.Render()

	// Display rendered texture (flip V for OpenGL)
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(avail.X, avail.Y),
		imgui.NewVec2(0, 1), // UV flipped
		imgui.NewVec2(1, 0),
		imgui.NewVec4(app.background[0], app.background[1], app.background[2], 1.0),
		imgui.NewVec4(1, 1, 1, 1), // White tint (no tint)
	)

	// Handle mouse input when hovering the image
	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			deltaX := mousePos.X - lastMousePos.X
			deltaY := mousePos.Y - lastMousePos.Y
			app.viewer.Camera().HandleDrag(deltaX, deltaY)
		}
		lastMousePos = mousePos

		wheel := imgui.CurrentIO().MouseWheel()
		if wheel != 0 {
			app.viewer.Camera().HandleZoom(wheel)
		}
	}
}

// renderStatusBar renders the status bar at the bottom.
func (app *App) renderStatusBar() {
	if !app.viewer.HasMesh() {
		imgui.Text(fmt.Sprintf("No mesh loaded | %.0f fps", app.fps))
		return
	}

	stats := app.viewer.Stats()
	anim := ""
	if stats.Animating {
		anim = " | animating"
	}
	imgui.Text(fmt.Sprintf("%s | %d vertices | %d edges | %d faces | V:%s E:%s F:%s D:%s%s | %.0f fps",
		stats.Name, stats.Vertices, stats.Edges, stats.Faces,
		stats.VertexState, stats.EdgeState, stats.FaceState, stats.SolidState, anim, app.fps))
}
