package block

import (
	"math"

	"github.com/harmonicon/harmonicon"
)

// minSpacing is the smallest spacing, in beats, that produces audible gaps.
const minSpacing = 0.05

// Sequencer cycles through a list of notes, one per beat, and outputs the
// frequency of the current note. Its progress, in beats, is carried over on
// hot reload.
type Sequencer struct {
	sequence []harmonicon.Note
	bpm      Source
	spacing  Source
	progress float64
}

// NewSequencer returns an empty sequencer at 120 bpm without spacing. The
// sequence must be set before the sequencer is read.
func NewSequencer() *Sequencer {
	return &Sequencer{bpm: Owned(NewConstant(120)), spacing: Silence()}
}

func (s *Sequencer) SetSequence(seq []harmonicon.Note) { s.sequence = seq }

func (s *Sequencer) SetBPM(bpm Source) { s.bpm = bpm }

func (s *Sequencer) SetSpacing(spacing Source) { s.spacing = spacing }

func (s *Sequencer) Sequence() []harmonicon.Note { return s.sequence }

func (s *Sequencer) Kind() Kind { return KindSequencer }

func (s *Sequencer) Step() {
	s.bpm.Step()
	s.spacing.Step()
	s.progress += float64(s.bpm.Mono()) / (harmonicon.SampleRate * 60)
	if n := float64(len(s.sequence)); n > 0 {
		s.progress = wrap(s.progress, n)
	}
}

func (s *Sequencer) Mono() float32 {
	spacing := float64(s.spacing.Mono())
	if spacing >= minSpacing && math.Abs(math.Round(s.progress)-s.progress) < spacing/2 {
		return 0
	}
	n := len(s.sequence)
	if n == 0 {
		panic("block: sequencer has an empty sequence")
	}
	return s.sequence[int(s.progress)%n].Frequency()
}

func (s *Sequencer) Children() []Source {
	return []Source{s.bpm, s.spacing}
}

func (s *Sequencer) SyncValue() float64 { return s.progress }

func (s *Sequencer) SetSyncValue(v float64) { s.progress = v }
