package parameter

// Adaptive quality
const (
	// QualityWindowFrames is the sliding fps window length
	QualityWindowFrames = 30

	// QualityLowWater triggers a downgrade when the window average
	// stays below it
	QualityLowWater = 45.0

	// QualityHighWater triggers an upgrade when the window average
	// stays above it; the gap to QualityLowWater is the hysteresis band
	QualityHighWater = 55.0
)

// Per-tier effect budgets
const (
	// MaxBlurHigh is the blur ceiling at the High tier
	MaxBlurHigh = 12.0

	// MaxBlurBalanced is the blur ceiling at the Balanced tier
	MaxBlurBalanced = 6.0

	// MaxConcurrentAnimationsHigh/Balanced bound simultaneous
	// scheduler-driven animations per tier; Accessible allows one
	MaxConcurrentAnimationsHigh     = 4
	MaxConcurrentAnimationsBalanced = 2

	// TransitionScaleBalanced shortens transitions at the Balanced tier
	TransitionScaleBalanced = 0.75

	// TransitionScaleAccessible shortens transitions at the Accessible tier
	TransitionScaleAccessible = 0.5
)
