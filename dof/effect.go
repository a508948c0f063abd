package dof

import (
	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/quality"
	"github.com/kinodeck/lenscam/vmath"
)

// Output is the composited presentation for one section
type Output struct {
	Blur    float64 // [0, tier max]
	Opacity float64 // [UnfocusedOpacity, 1]
}

// Blur computes raw blur intensity from canvas distance to the focus
// target, capped by maxBlur. Pure and deterministic
func Blur(distance, maxBlur float64) float64 {
	if maxBlur <= 0 || distance <= 0 {
		return 0
	}
	b := distance / parameter.BlurFalloff
	if b > maxBlur {
		return maxBlur
	}
	return b
}

// Effect composites blur and opacity for renderers
//
// Honors reduced motion by disabling blur entirely and substituting an
// opacity ramp. The Escape accessibility override forces blur to zero
// within one frame and latches until explicitly re-enabled. A missing
// backdrop-filter capability takes the same opacity fallback path
type Effect struct {
	reducedMotion  bool
	backdropFilter bool
	override       bool
	tier           quality.Tier
}

// NewEffect creates an effect with the host capability flags
func NewEffect(reducedMotion, backdropFilter bool) *Effect {
	return &Effect{
		reducedMotion:  reducedMotion,
		backdropFilter: backdropFilter,
		tier:           quality.TierHigh,
	}
}

// SetTier applies a quality-tier change
func (e *Effect) SetTier(t quality.Tier) {
	e.tier = t
}

// SetOverride latches (or releases) the accessibility blur override
func (e *Effect) SetOverride(on bool) {
	e.override = on
}

// Overridden reports whether the accessibility override is latched
func (e *Effect) Overridden() bool {
	return e.override
}

// blurDisabled reports whether any path forces the opacity fallback
func (e *Effect) blurDisabled() bool {
	return e.override || e.reducedMotion || !e.backdropFilter
}

// Compute returns the presentation for a section at target given the
// current focus point, both in canvas coordinates
func (e *Effect) Compute(target, focus vmath.Vec2) Output {
	dist := target.Distance(focus)
	maxBlur := quality.BudgetFor(e.tier).MaxBlur

	if e.blurDisabled() || maxBlur <= 0 {
		// Opacity substitutes for blur: fade with the same falloff
		fade := vmath.Clamp01(dist / (parameter.BlurFalloff * parameter.MaxBlurHigh))
		return Output{
			Blur:    0,
			Opacity: vmath.Lerp(parameter.FocusedOpacity, parameter.UnfocusedOpacity, fade),
		}
	}

	return Output{
		Blur:    Blur(dist, maxBlur),
		Opacity: parameter.FocusedOpacity,
	}
}
