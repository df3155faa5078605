package block_test

import (
	"math"
	"testing"

	"github.com/harmonicon/harmonicon"
	"github.com/harmonicon/harmonicon/block"
)

func newSequencer(bpm, spacing float32, notes ...harmonicon.Note) *block.Sequencer {
	seq := block.NewSequencer()
	seq.SetSequence(notes)
	seq.SetBPM(block.Owned(block.NewConstant(bpm)))
	seq.SetSpacing(block.Owned(block.NewConstant(spacing)))
	return seq
}

func TestSequencerWrap(t *testing.T) {
	seq := newSequencer(120, 0, harmonicon.A, harmonicon.D, harmonicon.E)
	perTick := 120.0 / (harmonicon.SampleRate * 60)
	ticks := int(math.Ceil(3/perTick)) + 10 // cross 3.0 beats
	for i := 0; i < ticks; i++ {
		seq.Step()
		if p := seq.SyncValue(); p < 0 || p >= 3 {
			t.Fatalf("progress %v outside [0,3) after %d ticks", p, i+1)
		}
	}
	want := math.Mod(float64(ticks)*perTick, 3)
	if d := math.Abs(seq.SyncValue() - want); d > 1e-6 {
		t.Errorf("progress = %v, want %v", seq.SyncValue(), want)
	}
}

func TestSequencerNoteAtProgress(t *testing.T) {
	seq := newSequencer(120, 0, harmonicon.A, harmonicon.D, harmonicon.E)
	seq.SetSyncValue(1.5)
	if got := seq.Mono(); got != harmonicon.D.Frequency() {
		t.Errorf("note at 1.5 = %v, want %v", got, harmonicon.D.Frequency())
	}
	seq.SetSyncValue(2.99)
	if got := seq.Mono(); got != harmonicon.E.Frequency() {
		t.Errorf("note at 2.99 = %v, want %v", got, harmonicon.E.Frequency())
	}
}

func TestSequencerSpacing(t *testing.T) {
	seq := newSequencer(120, 0.2, harmonicon.A, harmonicon.D)
	for _, tc := range []struct {
		progress float64
		want     float32
	}{
		{0.05, 0},
		{0.95, 0},
		{1.09, 0},
		{0.5, harmonicon.A.Frequency()},
		{1.2, harmonicon.D.Frequency()},
	} {
		seq.SetSyncValue(tc.progress)
		if got := seq.Mono(); got != tc.want {
			t.Errorf("at %v = %v, want %v", tc.progress, got, tc.want)
		}
	}
	// spacing below the threshold never silences
	seq = newSequencer(120, 0.04, harmonicon.A)
	seq.SetSyncValue(0.001)
	if seq.Mono() != harmonicon.A.Frequency() {
		t.Errorf("spacing 0.04 silenced the sequencer")
	}
}

func TestSequencerSilentNote(t *testing.T) {
	seq := newSequencer(120, 0, harmonicon.Silent, harmonicon.A)
	if seq.Mono() != 0 {
		t.Errorf("silent note = %v, want 0", seq.Mono())
	}
}

func TestEmptySequencerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("reading an empty sequencer did not panic")
		}
	}()
	block.NewSequencer().Mono()
}

func TestSequencerHugeTempo(t *testing.T) {
	for _, bpm := range []float32{1e25, -1e25, float32(math.Inf(-1)), float32(math.NaN())} {
		seq := newSequencer(bpm, 0, harmonicon.A, harmonicon.D, harmonicon.E)
		for i := 0; i < 100; i++ {
			seq.Step()
			if p := seq.SyncValue(); p < 0 || p >= 3 {
				t.Fatalf("bpm %v: progress %v outside [0,3) after %d ticks", bpm, p, i+1)
			}
			seq.Mono()
		}
	}
}
