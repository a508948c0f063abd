package vmath

import "math"

// Easing curves used by camera transitions
// All take t in [0, 1] and return a progress value; ElasticOut may
// overshoot 1 before settling

// EaseLinear is identity
func EaseLinear(t float64) float64 {
	return t
}

// EaseInOutCubic accelerates then decelerates
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseOutCubic decelerates toward the target
func EaseOutCubic(t float64) float64 {
	u := 1 - Clamp01(t)
	return 1 - u*u*u
}

// EaseOutExpo decelerates sharply, near-asymptotic finish
func EaseOutExpo(t float64) float64 {
	t = Clamp01(t)
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseOutElastic overshoots the target and oscillates to rest
// Used for edge-clamped targets so boundary contact reads as a bounce
func EaseOutElastic(t float64) float64 {
	t = Clamp01(t)
	if t == 0 || t == 1 {
		return t
	}
	const period = 3.0
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*(2*math.Pi/period)) + 1
}

// SmoothStep is the classic 3t²-2t³ hermite blend
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}
