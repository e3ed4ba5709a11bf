package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// note is one tone of a phrase. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

// bgmPhrase is the looping background phrase.
var bgmPhrase = []note{
	{261.63, 600 * time.Millisecond}, // C4
	{329.63, 600 * time.Millisecond}, // E4
	{392.00, 600 * time.Millisecond}, // G4
	{329.63, 600 * time.Millisecond},
	{293.66, 600 * time.Millisecond}, // D4
	{349.23, 600 * time.Millisecond}, // F4
	{440.00, 600 * time.Millisecond}, // A4
	{0, 600 * time.Millisecond},
}

// chimePhrase plays when a level is won.
var chimePhrase = []note{
	{523.25, 120 * time.Millisecond}, // C5
	{659.25, 120 * time.Millisecond}, // E5
	{783.99, 120 * time.Millisecond}, // G5
	{1046.5, 360 * time.Millisecond}, // C6
}

// volumeStreamer wraps s at linear volume vol.
func volumeStreamer(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setLinearVolume(v, vol)
	return v
}

// setLinearVolume maps vol in [0, 1] onto the logarithmic volume effect.
func setLinearVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}

// tone returns d worth of a sine at freq, or silence when freq is zero.
func tone(sr beep.SampleRate, n note, gain float64) beep.Streamer {
	if n.freq <= 0 {
		return beep.Silence(sr.N(n.dur))
	}
	s, err := generators.SineTone(sr, n.freq)
	if err != nil {
		return beep.Silence(sr.N(n.dur))
	}
	return volumeStreamer(beep.Take(sr.N(n.dur), s), gain)
}

// phrase plays notes once.
func phrase(sr beep.SampleRate, notes []note, gain float64) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = tone(sr, n, gain)
	}
	return beep.Seq(parts...)
}

// loop repeats notes forever.
func loop(sr beep.SampleRate, notes []note, gain float64) beep.Streamer {
	return beep.Iterate(func() beep.Streamer {
		return phrase(sr, notes, gain)
	})
}
