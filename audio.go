package harmonicon

import "io"

const (
	// SampleRate is the process-wide sample rate, in Hz, of every signal.
	SampleRate = 44100
	// Channels is the number of interleaved output channels.
	Channels = 2
)

type (
	// Signal is an endless, pull-based stereo sample producer. Every call to
	// Next returns exactly one channel sample; the channels alternate,
	// starting with the left channel.
	Signal interface {
		Next() float32
	}

	// AudioBuffer is a buffer of stereo frames; index 0 is the left channel
	// and index 1 the right channel.
	AudioBuffer [][2]float32

	// AudioContext plays signals on an audio device until the returned
	// closer is closed.
	AudioContext interface {
		Play(signal Signal) (io.Closer, error)
		Close() error
	}
)

// Record pulls the given number of frames from the signal into a new buffer.
func Record(signal Signal, frames int) AudioBuffer {
	buffer := make(AudioBuffer, frames)
	for i := range buffer {
		buffer[i][0] = signal.Next()
		buffer[i][1] = signal.Next()
	}
	return buffer
}

// Frames returns the number of frames needed to cover the given number of
// seconds.
func Frames(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds * SampleRate)
}

// Interleaved returns the buffer as one slice of alternating left and right
// samples.
func (buffer AudioBuffer) Interleaved() []float32 {
	ret := make([]float32, 0, len(buffer)*Channels)
	for _, frame := range buffer {
		ret = append(ret, frame[0], frame[1])
	}
	return ret
}
