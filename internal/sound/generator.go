package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// Sweep is a single oscillator gliding from one frequency to another while
// its gain ramps linearly to silence.
type Sweep struct {
	sr          beep.SampleRate
	wave        Wave
	from, to    float64
	exponential bool
	gain        float64
	total       int
	pos         int
	phase       float64

	// optional vibrato
	lfoFreq  float64
	lfoDepth float64
}

// NewSweep creates a linear frequency sweep lasting d.
func NewSweep(sr beep.SampleRate, wave Wave, from, to float64, d time.Duration, gain float64) *Sweep {
	return &Sweep{sr: sr, wave: wave, from: from, to: to, gain: gain, total: sr.N(d)}
}

// Exponential makes the glide exponential instead of linear.
func (s *Sweep) Exponential() *Sweep {
	s.exponential = true
	return s
}

// Wobble adds vibrato of depth Hz at freq Hz.
func (s *Sweep) Wobble(freq, depth float64) *Sweep {
	s.lfoFreq = freq
	s.lfoDepth = depth
	return s
}

func (s *Sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		if s.exponential && s.from > 0 && s.to > 0 {
			freq = s.from * math.Pow(s.to/s.from, progress)
		}
		if s.lfoDepth != 0 {
			t := float64(s.pos) / float64(s.sr)
			freq += s.lfoDepth * math.Sin(2*math.Pi*s.lfoFreq*t)
		}

		var val float64
		switch s.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(s.phase-0.5) - 1
		}

		val *= s.gain * (1 - progress)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.sr)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *Sweep) Err() error { return nil }

// AmbientGenerator is a soft, endlessly looping two-note pad.
type AmbientGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewAmbientGenerator creates the ambient bed.
func NewAmbientGenerator(sr beep.SampleRate) *AmbientGenerator {
	return &AmbientGenerator{sr: sr}
}

func (g *AmbientGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// 8 second swell between A3 and E4
		swell := 0.5 + 0.5*math.Sin(2*math.Pi*t/8)
		sample := 0.04*math.Sin(2*math.Pi*220*t) + 0.03*swell*math.Sin(2*math.Pi*329.63*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *AmbientGenerator) Err() error { return nil }
