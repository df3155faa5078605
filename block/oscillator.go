package block

import (
	"fmt"
	"math"

	"github.com/harmonicon/harmonicon"
)

// Waveform selects the shape an Oscillator maps its phase through.
type Waveform int

const (
	Sine Waveform = iota
	Sawtooth
	Square
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Sawtooth:
		return "sawtooth"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	}
	return fmt.Sprintf("Waveform(%d)", int(w))
}

// ParseWaveform parses a waveform name or its abbreviation.
func ParseWaveform(s string) (Waveform, error) {
	switch s {
	case "sine", "sin", "sinus":
		return Sine, nil
	case "sawtooth", "saw":
		return Sawtooth, nil
	case "square", "sqr":
		return Square, nil
	case "triangle", "tri":
		return Triangle, nil
	}
	return 0, fmt.Errorf("unknown waveform %q", s)
}

// Oscillator is a periodic signal with its frequency read from a source. Its
// phase is kept in [0,1) and is carried over on hot reload.
type Oscillator struct {
	freq  Source
	phase float64
	wave  Waveform
}

// NewOscillator returns a 440 Hz sine oscillator.
func NewOscillator() *Oscillator {
	return &Oscillator{freq: Owned(NewConstant(440)), wave: Sine}
}

func (o *Oscillator) SetFrequency(freq Source) { o.freq = freq }

func (o *Oscillator) SetWaveform(w Waveform) { o.wave = w }

func (o *Oscillator) Waveform() Waveform { return o.wave }

func (o *Oscillator) Kind() Kind { return KindOscillator }

func (o *Oscillator) Step() {
	o.freq.Step()
	o.phase = wrap(o.phase+float64(o.freq.Mono())/harmonicon.SampleRate, 1)
}

// wrap brings v into [0, n). Excursions of less than one period are folded
// back by repeated subtraction or addition; larger ones, which a loop could
// not finish once v outgrows the float precision, go through math.Mod. A
// non-finite v restarts at 0.
func wrap(v, n float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v >= 2*n || v < -n {
		v = math.Mod(v, n)
	}
	for v >= n {
		v -= n
	}
	for v < 0 {
		v += n
	}
	if v >= n { // a tiny negative v rounds up to n
		v = 0
	}
	return v
}

func (o *Oscillator) Mono() float32 {
	_, fract := math.Modf(o.phase)
	fract = math.Abs(fract)
	switch o.wave {
	case Sawtooth:
		return float32(1 - fract)
	case Square:
		if fract < 0.5 {
			return 1
		}
		return 0
	case Triangle:
		if fract < 0.5 {
			return float32(2 * fract)
		}
		return float32(2 * (1 - fract))
	default:
		return float32(math.Sin(2 * math.Pi * o.phase))
	}
}

func (o *Oscillator) Children() []Source { return []Source{o.freq} }

func (o *Oscillator) SyncValue() float64 { return o.phase }

func (o *Oscillator) SetSyncValue(v float64) { o.phase = v }
