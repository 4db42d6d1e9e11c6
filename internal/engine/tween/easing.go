package tween

// EaseFunc maps normalized time t in [0,1] to an eased progress value.
// Every easing here satisfies f(0)=0 and f(1)=1.
type EaseFunc func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// QuadInOut accelerates then decelerates quadratically.
func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// CubicOut decelerates cubically toward the end.
func CubicOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// CubicInOut accelerates then decelerates cubically.
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// BackOut overshoots slightly past the target before settling.
func BackOut(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// ByName resolves an easing by its config name. Unknown names fall back to
// cubic-in-out.
func ByName(name string) EaseFunc {
	switch name {
	case "linear":
		return Linear
	case "quad":
		return QuadInOut
	case "cubic-out":
		return CubicOut
	case "cubic":
		return CubicInOut
	case "back":
		return BackOut
	default:
		return CubicInOut
	}
}
