package stage

import (
	"errors"
	"testing"

	"github.com/strata3d/meshstage/internal/engine/tween"
)

// fakeSolid records solid calls without touching the GPU.
type fakeSolid struct {
	dissolve float32
	visible  bool
	builds   int
	destroys int
	buildErr error
}

func (s *fakeSolid) Build() error {
	if s.buildErr != nil {
		return s.buildErr
	}
	s.builds++
	s.dissolve = 0
	return nil
}

func (s *fakeSolid) Destroy() { s.destroys++ }

func (s *fakeSolid) SetDissolve(value float32) { s.dissolve = value }

func (s *fakeSolid) Dissolve() float32 { return s.dissolve }

func (s *fakeSolid) SetVisible(visible bool) { s.visible = visible }

func (s *fakeSolid) Visible() bool { return s.visible }

func TestAssembler_ToggleBeforeAttach(t *testing.T) {
	a := NewDissolveAssembler(tween.NewRunner(), 1, nil)

	if err := a.Toggle(); err != nil {
		t.Fatalf("toggle without solid: %v", err)
	}
	if a.State() != DissolveAbsent {
		t.Errorf("expected absent state, got %v", a.State())
	}
}

func TestAssembler_FirstToggleBuildsAndForms(t *testing.T) {
	r := tween.NewRunner()
	s := &fakeSolid{}
	a := NewDissolveAssembler(r, 1.0, nil)
	a.Attach(s)

	if err := a.Toggle(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.builds != 1 {
		t.Errorf("expected one build, got %d", s.builds)
	}
	if !s.visible {
		t.Error("expected solid visible while forming")
	}
	if a.State() != DissolveSolid {
		t.Errorf("expected solid state from the start, got %v", a.State())
	}
	if !a.Animating() {
		t.Error("expected dissolve tween in flight")
	}

	r.Update(1.5)
	if s.dissolve != 1 {
		t.Errorf("expected dissolve 1 after forming, got %f", s.dissolve)
	}
	if a.Animating() {
		t.Error("expected animation finished")
	}
}

func TestAssembler_BuildErrorKeepsAbsent(t *testing.T) {
	s := &fakeSolid{buildErr: errors.New("buffer allocation failed")}
	a := NewDissolveAssembler(tween.NewRunner(), 1, nil)
	a.Attach(s)

	if err := a.Toggle(); err == nil {
		t.Fatal("expected build error to surface")
	}
	if a.State() != DissolveAbsent {
		t.Errorf("expected absent state after failed build, got %v", a.State())
	}
	if s.visible {
		t.Error("expected solid to stay invisible")
	}
}

func TestAssembler_InstantaneousToggle(t *testing.T) {
	r := tween.NewRunner()
	s := &fakeSolid{}
	a := NewDissolveAssembler(r, 0, nil)
	a.Attach(s)

	if err := a.Toggle(); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if s.dissolve != 1 {
		t.Errorf("expected dissolve 1 right after toggle, got %f", s.dissolve)
	}
	if r.Len() != 0 {
		t.Errorf("expected empty runner in instantaneous mode, got %d tweens", r.Len())
	}
	if a.State() != DissolveSolid || !s.visible {
		t.Errorf("expected solid and visible, got %v visible=%v", a.State(), s.visible)
	}

	if err := a.Toggle(); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if s.dissolve != 0 {
		t.Errorf("expected dissolve 0 after toggle off, got %f", s.dissolve)
	}
	if a.State() != DissolveAbsent || s.visible {
		t.Errorf("expected absent and invisible, got %v visible=%v", a.State(), s.visible)
	}
	if s.builds != 1 {
		t.Errorf("expected a single build across the cycle, got %d", s.builds)
	}
}

func TestAssembler_VanishHidesOnCompletion(t *testing.T) {
	r := tween.NewRunner()
	s := &fakeSolid{}
	a := NewDissolveAssembler(r, 1.0, nil)
	a.Attach(s)

	a.Toggle()
	r.Update(2) // fully formed

	if err := a.Toggle(); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if a.State() != DissolveVanishing {
		t.Fatalf("expected vanishing state, got %v", a.State())
	}
	if !s.visible {
		t.Fatal("expected solid to stay visible while vanishing")
	}

	r.Update(0.5)
	if a.State() != DissolveVanishing {
		t.Errorf("expected still vanishing at 0.5s, got %v", a.State())
	}
	if !s.visible {
		t.Error("expected solid still visible at 0.5s")
	}

	r.Update(0.6)
	if a.State() != DissolveAbsent {
		t.Errorf("expected absent after the fade, got %v", a.State())
	}
	if s.visible {
		t.Error("expected solid invisible after the fade")
	}
	if s.dissolve != 0 {
		t.Errorf("expected dissolve 0, got %f", s.dissolve)
	}
}

func TestAssembler_FlipMidVanishResumes(t *testing.T) {
	r := tween.NewRunner()
	s := &fakeSolid{}
	a := NewDissolveAssembler(r, 1.0, nil)
	a.Attach(s)

	a.Toggle()
	r.Update(2) // fully formed
	a.Toggle()
	r.Update(0.5) // half vanished

	if err := a.Toggle(); err != nil {
		t.Fatalf("toggle on mid-vanish: %v", err)
	}
	if a.State() != DissolveSolid {
		t.Errorf("expected solid state immediately, got %v", a.State())
	}

	// The new fade resumes upward from the current value.
	mid := s.dissolve
	r.Update(0.01)
	if s.dissolve < mid {
		t.Errorf("dissolve dropped from %f to %f during resumed forming", mid, s.dissolve)
	}

	r.Update(2)
	if s.dissolve != 1 {
		t.Errorf("expected dissolve 1 after resumed forming, got %f", s.dissolve)
	}
	if !s.visible {
		t.Error("expected solid visible")
	}
}

func TestAssembler_ResetRewindsToAbsent(t *testing.T) {
	r := tween.NewRunner()
	s := &fakeSolid{}
	a := NewDissolveAssembler(r, 1.0, nil)
	a.Attach(s)

	a.Toggle()
	r.Update(0.3)
	a.Reset()

	if s.destroys != 1 {
		t.Errorf("expected one destroy, got %d", s.destroys)
	}
	if a.State() != DissolveAbsent {
		t.Errorf("expected absent, got %v", a.State())
	}

	// The canceled fade must not fire after the reset.
	before := s.dissolve
	r.Update(0.1)
	if s.dissolve != before {
		t.Errorf("dissolve changed after reset: %f -> %f", before, s.dissolve)
	}

	// The next toggle rebuilds.
	if err := a.Toggle(); err != nil {
		t.Fatalf("toggle after reset: %v", err)
	}
	if s.builds != 2 {
		t.Errorf("expected rebuild on toggle after reset, got %d builds", s.builds)
	}
}

func TestAssembler_SetBudgetAppliesOnNextToggle(t *testing.T) {
	r := tween.NewRunner()
	s := &fakeSolid{}
	a := NewDissolveAssembler(r, 1.0, nil)
	a.Attach(s)

	a.SetBudget(0)
	if err := a.Toggle(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("expected instantaneous forming after budget change, got %d tweens", r.Len())
	}
	if s.dissolve != 1 {
		t.Errorf("expected dissolve 1, got %f", s.dissolve)
	}
}
