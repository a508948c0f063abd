package audio

import (
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/kinodeck/lenscam/parameter"
)

// CuePlayer synthesizes short navigation cues through the speaker
//
// Cues are fire-and-forget: if the speaker is saturated or was never
// initialized, the cue is dropped rather than blocking the frame loop.
// Reduced motion mutes cues entirely
type CuePlayer struct {
	sampleRate beep.SampleRate
	ready      atomic.Bool
	muted      atomic.Bool
}

// NewCuePlayer initializes the speaker; a failed init yields a silent
// player, never an unusable one
func NewCuePlayer(reducedMotion bool) *CuePlayer {
	p := &CuePlayer{
		sampleRate: beep.SampleRate(parameter.AudioSampleRate),
	}
	p.muted.Store(reducedMotion)

	if err := speaker.Init(p.sampleRate, p.sampleRate.N(parameter.AudioBufferLength)); err == nil {
		p.ready.Store(true)
	}
	return p
}

// SetMuted toggles cue playback
func (p *CuePlayer) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// PlayActivate sounds the lens activation tick
func (p *CuePlayer) PlayActivate() {
	p.tone(parameter.CueActivateFreq, parameter.CueDuration)
}

// PlaySelect sounds the section selection chime
func (p *CuePlayer) PlaySelect() {
	p.tone(parameter.CueSelectFreq, parameter.CueDuration)
}

func (p *CuePlayer) tone(freq float64, dur time.Duration) {
	if !p.ready.Load() || p.muted.Load() {
		return
	}
	sine, err := generators.SineTone(p.sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(p.sampleRate.N(dur), sine))
}

// Close releases the speaker
func (p *CuePlayer) Close() {
	if p.ready.CompareAndSwap(true, false) {
		speaker.Close()
	}
}
