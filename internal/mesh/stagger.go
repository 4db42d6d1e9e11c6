package mesh

// Direction selects whether stagger delays play first-to-last or inverted.
type Direction int

const (
	// Forward staggers item 0 first (reveal order).
	Forward Direction = iota
	// Reverse staggers the last item first, undoing a forward reveal
	// symmetrically.
	Reverse
)

// StaggerDelays computes the per-item start delay for a staggered
// animation. Item animations each last itemDuration; delays are spread so
// the whole sequence fills totalBudget: the first forward item starts at 0
// and the last finishes at totalBudget (when totalBudget >= itemDuration).
//
// The function is pure and schedules nothing. A totalBudget <= 0 signals
// instantaneous mode: callers must apply final values synchronously instead
// of tweening (the returned delays are all zero in that case).
func StaggerDelays(itemCount int, itemDuration, totalBudget float64, dir Direction) []float64 {
	if itemCount <= 0 {
		return nil
	}

	gap := 0.0
	if itemCount > 1 {
		spread := totalBudget - itemDuration
		if spread > 0 {
			gap = spread / float64(itemCount-1)
		}
	}

	delays := make([]float64, itemCount)
	for i := range delays {
		if dir == Reverse {
			delays[i] = float64(itemCount-1-i) * gap
		} else {
			delays[i] = float64(i) * gap
		}
	}
	return delays
}
