package parameter

// Depth of field
const (
	// BlurFalloff controls how fast blur grows with canvas distance
	// from the focused section; blur = min(maxBlur, distance/BlurFalloff)
	BlurFalloff = 40.0

	// UnfocusedOpacity is the opacity substitute used when blur is
	// unavailable (reduced motion or missing backdrop-filter)
	UnfocusedOpacity = 0.55

	// FocusedOpacity is full presentation opacity
	FocusedOpacity = 1.0
)
