package harmonicon

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/viterin/vek/vek32"
)

// Stream adapts a Signal to an io.Reader of little-endian float32 samples,
// which is what audio backends pull from. A master gain is applied to every
// sample, and the peak level since the last call to Peak is tracked.
type Stream struct {
	signal Signal
	gain   float32
	tmp    []float32
	abs    []float32
	peak   atomic.Uint32 // float32 bits
}

const bytesPerSample = 4

func NewStream(signal Signal, gain float32) *Stream {
	return &Stream{signal: signal, gain: gain}
}

// Read fills p with whole samples and never returns an error: the signal is
// endless.
func (s *Stream) Read(p []byte) (int, error) {
	count := len(p) / bytesPerSample
	if count == 0 {
		return 0, nil
	}
	if cap(s.tmp) < count {
		s.tmp = make([]float32, count)
		s.abs = make([]float32, count)
	}
	tmp, abs := s.tmp[:count], s.abs[:count]
	for i := range tmp {
		tmp[i] = s.signal.Next()
	}
	if s.gain != 1 {
		vek32.MulNumber_Inplace(tmp, s.gain)
	}
	copy(abs, tmp)
	vek32.Abs_Inplace(abs)
	s.updatePeak(vek32.Max(abs))
	for i, v := range tmp {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	return count * bytesPerSample, nil
}

func (s *Stream) updatePeak(v float32) {
	for {
		old := s.peak.Load()
		if v <= math.Float32frombits(old) {
			return
		}
		if s.peak.CompareAndSwap(old, math.Float32bits(v)) {
			return
		}
	}
}

// Peak returns the largest absolute sample value read since the previous
// call, and resets it. Safe to call from any goroutine.
func (s *Stream) Peak() float32 {
	return math.Float32frombits(s.peak.Swap(0))
}

// Peak returns the largest absolute sample value in the buffer.
func (buffer AudioBuffer) Peak() float32 {
	if len(buffer) == 0 {
		return 0
	}
	samples := buffer.Interleaved()
	vek32.Abs_Inplace(samples)
	return vek32.Max(samples)
}
