package parameter

import "time"

// Camera transitions
const (
	// TransitionDuration is the default camera transition length before
	// quality scaling
	TransitionDuration = 600 * time.Millisecond

	// MatchCutFadeDuration is the cross-fade length of a match-cut; the
	// position itself swaps on the first frame
	MatchCutFadeDuration = 220 * time.Millisecond

	// ElasticSettleDuration extends clamped transitions so the edge
	// bounce has time to settle
	ElasticSettleDuration = 180 * time.Millisecond
)

// Canvas scale range
const (
	MinScale = 0.5
	MaxScale = 2.0
)
