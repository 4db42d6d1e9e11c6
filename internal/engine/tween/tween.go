// Package tween provides frame-ticked interpolation of scalar values: a
// single-threaded task queue that a render loop polls once per frame. Every
// scheduled tween owns its delay and duration and pushes values through its
// update callback; nothing here runs concurrently.
package tween

// Tween describes one scalar interpolation. From/To are the value range,
// Delay postpones the start, Duration is the active interpolation time in
// seconds. OnUpdate receives the eased value each tick once the delay has
// elapsed; OnComplete fires exactly once when the tween finishes.
type Tween struct {
	From       float32
	To         float32
	Delay      float64
	Duration   float64
	Ease       EaseFunc
	OnUpdate   func(value float32)
	OnComplete func()
}

// Handle identifies a scheduled tween and allows canceling it. Handles are
// owned by whoever started the tween; canceling after completion is a
// no-op.
type Handle struct {
	tween    *Tween
	elapsed  float64
	canceled bool
	finished bool
}

// Cancel stops the tween. No further callbacks fire.
func (h *Handle) Cancel() {
	h.canceled = true
}

// Done reports whether the tween has finished or been canceled.
func (h *Handle) Done() bool {
	return h.finished || h.canceled
}

// advance moves the tween forward and fires callbacks. Returns true when
// the tween is finished.
func (h *Handle) advance(dt float64) bool {
	h.elapsed += dt
	if h.elapsed < h.tween.Delay {
		return false
	}

	t := 1.0
	if h.tween.Duration > 0 {
		t = (h.elapsed - h.tween.Delay) / h.tween.Duration
		if t > 1 {
			t = 1
		}
	}

	ease := h.tween.Ease
	if ease == nil {
		ease = Linear
	}

	if h.tween.OnUpdate != nil {
		v := h.tween.From + (h.tween.To-h.tween.From)*float32(ease(t))
		h.tween.OnUpdate(v)
	}

	if t >= 1 {
		h.finished = true
		if h.tween.OnComplete != nil {
			h.tween.OnComplete()
		}
		return true
	}
	return false
}

// Runner owns the scheduled tweens and ticks them in start order.
type Runner struct {
	active  []*Handle
	scratch []*Handle
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Start schedules a tween and returns its handle.
func (r *Runner) Start(t *Tween) *Handle {
	h := &Handle{tween: t}
	r.active = append(r.active, h)
	return h
}

// Update advances all live tweens by dt seconds, in the order they were
// started. Canceled tweens are dropped without firing callbacks. Callbacks
// may start new tweens; those first tick on the next Update.
func (r *Runner) Update(dt float64) {
	if len(r.active) == 0 {
		return
	}

	running := r.active
	r.active, r.scratch = r.scratch[:0], running

	for _, h := range running {
		if h.canceled {
			continue
		}
		if h.advance(dt) {
			continue
		}
		r.active = append(r.active, h)
	}
}

// Len returns the number of tweens still queued (including canceled ones
// not yet swept by Update).
func (r *Runner) Len() int {
	return len(r.active)
}
