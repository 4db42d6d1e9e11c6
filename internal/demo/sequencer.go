// Package demo scripts a hands-free tour through the reveal stages for
// the scripted demo binary.
package demo

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/strata3d/meshstage/internal/logger"
	"github.com/strata3d/meshstage/internal/viewer"
)

// Step is one scripted action and the time it fires at, in seconds from
// sequence start.
type Step struct {
	At     float64
	Label  string
	Action func() error
}

// Sequencer fires a fixed list of steps as time advances. Steps must be
// ordered by At; a single Update that jumps past several steps fires them
// all, in order.
type Sequencer struct {
	steps   []Step
	length  float64
	loop    bool
	elapsed float64
	next    int
	last    string
}

// NewSequencer creates a sequencer over steps. length is the full cycle
// time; when loop is set the sequence restarts after it.
func NewSequencer(steps []Step, length float64, loop bool) *Sequencer {
	if n := len(steps); n > 0 && steps[n-1].At > length {
		length = steps[n-1].At
	}
	return &Sequencer{steps: steps, length: length, loop: loop}
}

// Update advances the sequence by dt seconds and fires every step whose
// time has come.
func (s *Sequencer) Update(dt float64) error {
	s.elapsed += dt

	for s.next < len(s.steps) && s.steps[s.next].At <= s.elapsed {
		step := s.steps[s.next]
		s.next++
		s.last = step.Label

		logger.Info("demo step",
			zap.String("label", step.Label),
			zap.Float64("at", step.At))

		if step.Action != nil {
			if err := step.Action(); err != nil {
				return fmt.Errorf("step %q: %w", step.Label, err)
			}
		}
	}

	if s.loop && s.next >= len(s.steps) && s.elapsed >= s.length {
		s.elapsed -= s.length
		s.next = 0
	}
	return nil
}

// Done reports whether a non-looping sequence has fired all steps and run
// out its full length.
func (s *Sequencer) Done() bool {
	return !s.loop && s.next >= len(s.steps) && s.elapsed >= s.length
}

// Elapsed returns the time into the current cycle.
func (s *Sequencer) Elapsed() float64 {
	return s.elapsed
}

// Current returns the label of the last fired step, for display.
func (s *Sequencer) Current() string {
	return s.last
}

// Tour returns the standard demo script against v: each stage reveals in
// turn, the scaffold hides, the solid assembles, then everything fades
// out again. The returned length leaves room for the final fade.
func Tour(v *viewer.Viewer) ([]Step, float64) {
	steps := []Step{
		{At: 1.0, Label: "vertices in", Action: v.ToggleVertices},
		{At: 3.5, Label: "edges in", Action: v.ToggleEdges},
		{At: 6.0, Label: "faces in", Action: v.ToggleFaces},
		{At: 9.0, Label: "vertices out", Action: v.ToggleVertices},
		{At: 9.5, Label: "edges out", Action: v.ToggleEdges},
		{At: 11.5, Label: "solid in", Action: v.ToggleSolid},
		{At: 12.5, Label: "faces out", Action: v.ToggleFaces},
		{At: 17.0, Label: "solid out", Action: v.ToggleSolid},
	}
	return steps, 20.0
}
