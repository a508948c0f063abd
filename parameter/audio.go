package parameter

import "time"

// Navigation audio cues
const (
	// AudioSampleRate for the beep speaker
	AudioSampleRate = 44100

	// AudioBufferLength sizes the speaker buffer; short keeps cue
	// latency under a frame or two
	AudioBufferLength = 50 * time.Millisecond

	// CueActivateFreq is the lens activation tick frequency
	CueActivateFreq = 660.0

	// CueSelectFreq is the section selection chime frequency
	CueSelectFreq = 880.0

	// CueDuration is the length of a synthesized cue
	CueDuration = 60 * time.Millisecond
)
