// Package stage drives the staged reveal of mesh primitives. Each stage
// (vertex markers, edges, faces) owns one batched GPU drawable, an array of
// per-primitive animation scalars and a toggle state machine; the dissolve
// assembler owns the full shaded mesh behind a single global scalar. All
// stages share a tween runner ticked once per frame by the host.
package stage

import (
	"github.com/strata3d/meshstage/internal/engine/tween"
	"github.com/strata3d/meshstage/internal/mesh"
)

// State is the externally observable state of a stage controller.
//
// A reveal flips the batch visible up front and reports Shown while the
// stagger is still running; a hide keeps the batch visible until its
// slowest tween finishes, so Hiding is a real resting state between the
// toggle and that completion.
type State int

const (
	StateUninitialized State = iota // no GPU geometry built yet
	StateHidden
	StateShown
	StateHiding
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHidden:
		return "hidden"
	case StateShown:
		return "shown"
	case StateHiding:
		return "hiding"
	default:
		return "unknown"
	}
}

// Batch is the GPU-side face of one stage: batched geometry drawn in a
// single call, with one animation scalar per primitive. Implementations
// replicate a primitive's scalar across its draw-vertices internally.
type Batch interface {
	// Build uploads the batched geometry for the current mesh with every
	// scalar at zero. Destroy releases the GPU resources again; Build may
	// be called afterwards to re-upload.
	Build() error
	Destroy()

	// Count reports the number of primitives in the batch.
	Count() int

	// Scalar and SetScalar access a primitive's animation scalar in 0..1.
	Scalar(index int) float32
	SetScalar(index int, value float32)

	// SetVisible flips whether the whole batch is drawn at all.
	SetVisible(visible bool)
	Visible() bool
}

// Config holds the timing parameters for a stage controller.
type Config struct {
	// ItemDuration is the tween length for one primitive, seconds.
	ItemDuration float64
	// TotalBudget is the time the whole staggered reveal (or hide) may
	// take, seconds. A budget <= 0 selects instantaneous mode.
	TotalBudget float64
	// Ease shapes each primitive's tween. Nil means linear.
	Ease tween.EaseFunc
}

// Controller runs the toggle state machine for one primitive stage. It owns
// every tween handle it schedules and cancels all of them before starting a
// new direction, so two animations can never fight over the same scalars.
type Controller struct {
	runner  *tween.Runner
	batch   Batch
	state   State
	handles []*tween.Handle

	itemDuration float64
	totalBudget  float64
	ease         tween.EaseFunc
}

// NewController creates a controller with no batch attached.
func NewController(runner *tween.Runner, cfg Config) *Controller {
	return &Controller{
		runner:       runner,
		state:        StateUninitialized,
		itemDuration: cfg.ItemDuration,
		totalBudget:  cfg.TotalBudget,
		ease:         cfg.Ease,
	}
}

// Attach adopts the batch for the currently loaded mesh and rewinds the
// state machine. Any in-flight animation for a previous mesh is canceled.
// The batch's GPU geometry is built lazily on the first toggle.
func (c *Controller) Attach(batch Batch) {
	c.cancelTweens()
	c.batch = batch
	c.state = StateUninitialized
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Animating reports whether any scheduled tween is still in flight.
func (c *Controller) Animating() bool {
	for _, h := range c.handles {
		if !h.Done() {
			return true
		}
	}
	return false
}

// SetBudget updates the total animation time budget, seconds. Takes effect
// on the next toggle.
func (c *Controller) SetBudget(seconds float64) {
	c.totalBudget = seconds
}

// SetEase swaps the easing curve. Takes effect on the next toggle.
func (c *Controller) SetEase(ease tween.EaseFunc) {
	c.ease = ease
}

// Toggle flips the stage between hidden and shown. Before a mesh has been
// attached this is a silent no-op. The first toggle after Attach builds the
// GPU geometry.
func (c *Controller) Toggle() error {
	if c.batch == nil {
		return nil
	}

	if c.state == StateUninitialized {
		if err := c.batch.Build(); err != nil {
			return err
		}
		c.batch.SetVisible(false)
		c.state = StateHidden
	}

	switch c.state {
	case StateHidden, StateHiding:
		c.show()
	case StateShown:
		c.hide()
	}
	return nil
}

// Reset tears down the stage's GPU geometry and returns the controller to
// its initial state. The attached batch keeps its mesh source, so the next
// toggle rebuilds.
func (c *Controller) Reset() {
	c.cancelTweens()
	if c.batch != nil {
		c.batch.Destroy()
	}
	c.state = StateUninitialized
}

// show cancels any in-flight hide and staggers every scalar to 1. The batch
// turns visible immediately; the state is Shown from the start rather than
// waiting for the last tween, so mid-animation states are observable.
func (c *Controller) show() {
	c.cancelTweens()
	c.batch.SetVisible(true)
	c.state = StateShown

	n := c.batch.Count()
	if n == 0 {
		return
	}

	if c.totalBudget <= 0 {
		// Instantaneous mode: write final values synchronously instead of
		// scheduling zero-length tweens.
		for i := 0; i < n; i++ {
			c.batch.SetScalar(i, 1)
		}
		return
	}

	delays := mesh.StaggerDelays(n, c.itemDuration, c.totalBudget, mesh.Forward)
	for i := 0; i < n; i++ {
		idx := i
		h := c.runner.Start(&tween.Tween{
			From:     c.batch.Scalar(idx),
			To:       1,
			Delay:    delays[idx],
			Duration: c.itemDuration,
			Ease:     c.ease,
			OnUpdate: func(v float32) { c.batch.SetScalar(idx, v) },
		})
		c.handles = append(c.handles, h)
	}
}

// hide cancels any in-flight reveal and staggers every scalar back to 0 in
// inverted order. The batch stays visible until the slowest tween (index 0,
// which carries the longest reverse delay) completes.
func (c *Controller) hide() {
	c.cancelTweens()

	n := c.batch.Count()
	if n == 0 || c.totalBudget <= 0 {
		for i := 0; i < n; i++ {
			c.batch.SetScalar(i, 0)
		}
		c.batch.SetVisible(false)
		c.state = StateHidden
		return
	}

	c.state = StateHiding

	delays := mesh.StaggerDelays(n, c.itemDuration, c.totalBudget, mesh.Reverse)
	for i := 0; i < n; i++ {
		idx := i
		t := &tween.Tween{
			From:     c.batch.Scalar(idx),
			To:       0,
			Delay:    delays[idx],
			Duration: c.itemDuration,
			Ease:     c.ease,
			OnUpdate: func(v float32) { c.batch.SetScalar(idx, v) },
		}
		if idx == 0 {
			t.OnComplete = func() {
				c.batch.SetVisible(false)
				c.state = StateHidden
			}
		}
		c.handles = append(c.handles, c.runner.Start(t))
	}
}

func (c *Controller) cancelTweens() {
	for _, h := range c.handles {
		h.Cancel()
	}
	c.handles = c.handles[:0]
}
