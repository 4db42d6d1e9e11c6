package main

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/strata3d/meshstage/internal/config"
	"github.com/strata3d/meshstage/internal/demo"
	"github.com/strata3d/meshstage/internal/engine/capture"
	"github.com/strata3d/meshstage/internal/engine/input"
	"github.com/strata3d/meshstage/internal/engine/renderer"
	"github.com/strata3d/meshstage/internal/engine/window"
	"github.com/strata3d/meshstage/internal/logger"
	"github.com/strata3d/meshstage/internal/viewer"
)

// Demo drives the scripted tour: window, input, offscreen viewer and the
// step sequencer.
type Demo struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	viewer   *viewer.Viewer
	seq      *demo.Sequencer
	shots    *capture.Capture

	running   bool
	paused    bool
	lastLabel string

	mouseDown  bool
	lastMouseX int
	lastMouseY int
}

// NewDemo creates the window, the viewer and the scripted tour. Unlike the
// GUI, the demo needs a mesh up front and fails without one.
func NewDemo(cfg *config.Config) (*Demo, error) {
	d := &Demo{
		cfg:   cfg,
		shots: capture.New(cfg.Viewer.ScreenshotDir, "meshdemo"),
	}

	vcfg := viewer.FromConfig(cfg)

	var err error
	d.window, err = window.New(window.Config{
		Title:       "MeshStage Demo",
		Width:       cfg.Graphics.Width,
		Height:      cfg.Graphics.Height,
		Fullscreen:  cfg.Graphics.Fullscreen,
		VSync:       cfg.Graphics.VSync,
		MSAASamples: cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	d.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		ClearColor: vcfg.Scene.Background,
	})
	if err != nil {
		d.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	d.input = input.New()

	d.viewer, err = viewer.New(vcfg)
	if err != nil {
		d.window.Close()
		return nil, fmt.Errorf("failed to create viewer: %w", err)
	}

	d.viewer.Scene().SetGridVisible(cfg.Viewer.ShowGrid)
	d.viewer.Scene().SetBoundsVisible(cfg.Viewer.ShowBounds)

	if cfg.Viewer.MeshFile != "" {
		err = d.viewer.LoadFile(cfg.Viewer.MeshFile)
	} else {
		shape := cfg.Viewer.Shape
		if shape == "" {
			shape = "box"
		}
		err = d.viewer.LoadShape(shape)
	}
	if err != nil {
		d.viewer.Destroy()
		d.window.Close()
		return nil, fmt.Errorf("failed to load demo mesh: %w", err)
	}

	// Match the offscreen target to the real drawable size (HiDPI)
	dw, dh := d.window.GetDrawableSize()
	d.viewer.Resize(int32(dw), int32(dh))

	d.restartTour()

	return d, nil
}

// restartTour rewinds all stages and starts the scripted tour from zero.
func (d *Demo) restartTour() {
	d.viewer.ResetStages()
	steps, length := demo.Tour(d.viewer)
	d.seq = demo.NewSequencer(steps, length, true)
}

// Run starts the demo loop.
func (d *Demo) Run() error {
	d.running = true

	var frameBudget time.Duration
	if d.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(d.cfg.Graphics.FPSLimit)
	}

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting demo loop")

	for d.running {
		// Calculate delta time
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart
		if dt > 0.25 {
			dt = 0.25 // Clamp after stalls (window drag, debugger)
		}

		// 1. Process input
		if d.input.Update() {
			// Quit event received
			d.running = false
			break
		}
		d.handleEvents()

		// 2. Advance the tour and the tweens
		if !d.paused {
			if err := d.seq.Update(dt); err != nil {
				return fmt.Errorf("tour error: %w", err)
			}
		}
		d.viewer.Update(dt)

		// Slow orbit unless the user is dragging the camera themselves
		if !d.mouseDown {
			d.viewer.Camera().RotationY += float32(dt) * 0.15
		}

		if label := d.seq.Current(); label != d.lastLabel {
			d.lastLabel = label
			if label != "" {
				d.window.SetTitle("MeshStage Demo - " + label)
			}
		}

		// 3. Render offscreen, then present
		d.renderer.Begin()
		d.viewer.Render()
		dw, dh := d.window.GetDrawableSize()
		d.viewer.Present(int32(dw), int32(dh))
		d.renderer.End()

		// 4. Present (swap buffers)
		d.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if elapsed := time.Since(frameStart); elapsed < frameBudget {
				time.Sleep(frameBudget - elapsed)
			}
		}
	}

	return nil
}

// handleEvents reacts to the events collected by the last input poll.
func (d *Demo) handleEvents() {
	for _, event := range d.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			d.renderer.Resize(event.Width, event.Height)
			dw, dh := d.window.GetDrawableSize()
			d.viewer.Resize(int32(dw), int32(dh))

		case input.EventKeyDown:
			d.handleKey(event.Key)

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				d.mouseDown = true
				d.lastMouseX = event.MouseX
				d.lastMouseY = event.MouseY
			}

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT {
				d.mouseDown = false
			}

		case input.EventMouseMove:
			if d.mouseDown {
				dx := float32(event.MouseX - d.lastMouseX)
				dy := float32(event.MouseY - d.lastMouseY)
				d.viewer.Camera().HandleDrag(dx, dy)
			}
			d.lastMouseX = event.MouseX
			d.lastMouseY = event.MouseY

		case input.EventMouseWheel:
			d.viewer.Camera().HandleZoom(event.WheelY)
		}
	}
}

func (d *Demo) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		d.running = false
	case sdl.SCANCODE_SPACE:
		d.paused = !d.paused
		logger.Info("tour paused", zap.Bool("paused", d.paused))
	case sdl.SCANCODE_R:
		d.restartTour()
		logger.Info("tour restarted")
	case sdl.SCANCODE_S:
		d.captureScreenshot()
	case sdl.SCANCODE_V:
		d.toggle("vertices", d.viewer.ToggleVertices)
	case sdl.SCANCODE_E:
		d.toggle("edges", d.viewer.ToggleEdges)
	case sdl.SCANCODE_F:
		d.toggle("faces", d.viewer.ToggleFaces)
	case sdl.SCANCODE_M:
		d.toggle("solid", d.viewer.ToggleSolid)
	}
}

func (d *Demo) toggle(name string, fn func() error) {
	if err := fn(); err != nil {
		logger.Error("stage toggle failed", zap.String("stage", name), zap.Error(err))
	}
}

func (d *Demo) captureScreenshot() {
	pixels, width, height := d.viewer.CapturePixels()
	if width <= 0 || height <= 0 {
		return
	}

	filename, err := d.shots.SavePixels(pixels, int(width), int(height))
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", filename))
}

// Close cleans up demo resources.
func (d *Demo) Close() {
	logger.Info("closing demo")

	if d.viewer != nil {
		d.viewer.Destroy()
		d.viewer = nil
	}
	if d.renderer != nil {
		d.renderer.Close()
	}
	if d.window != nil {
		d.window.Close()
	}
}
