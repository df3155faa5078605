package oto

import (
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/harmonicon/harmonicon"
)

// Options configure the audio context.
type Options struct {
	// BufferSize is the latency of the audio device. Zero lets oto pick.
	BufferSize time.Duration
	// Gain is the master gain applied to every sample.
	Gain float32
}

var _ harmonicon.AudioContext = (*OtoContext)(nil)

type OtoContext struct {
	context *oto.Context
	gain    float32
}

type OtoOutput struct {
	player *oto.Player
	stream *harmonicon.Stream
}

// NewContext opens the audio device and blocks until it is ready.
func NewContext(options Options) (*OtoContext, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   harmonicon.SampleRate,
		ChannelCount: harmonicon.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   options.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context, gain: options.Gain}, nil
}

// Play starts pulling samples from signal on the audio goroutine. The
// returned output can be closed to stop playback.
func (c *OtoContext) Play(signal harmonicon.Signal) (io.Closer, error) {
	stream := harmonicon.NewStream(signal, c.gain)
	player := c.context.NewPlayer(stream)
	player.Play()
	if err := player.Err(); err != nil {
		return nil, fmt.Errorf("cannot start oto player: %w", err)
	}
	return &OtoOutput{player: player, stream: stream}, nil
}

func (c *OtoContext) Close() error {
	if err := c.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

// Peak returns the peak level played since the previous call.
func (o *OtoOutput) Peak() float32 {
	return o.stream.Peak()
}

// Close disposes of resources
func (o *OtoOutput) Close() error {
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
