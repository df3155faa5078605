package harmonicon

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Note is a pitch, stored as its frequency in Hz. The zero value is Silent.
type Note float32

// The legacy fixed scale: single letters map to the fourth octave, with the
// German H standing for B.
const (
	C      Note = 261.6256
	D      Note = 293.6648
	E      Note = 329.6276
	F      Note = 349.2282
	G      Note = 391.9954
	A      Note = 440.0000
	H      Note = 493.8833
	Silent Note = 0
)

// ReferencePitch is the frequency of A4, which anchors the equal-tempered
// tuning.
const ReferencePitch = 440.0

const referenceMIDI = 69 // A4

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11, 'H': 11}

var legacyScale = map[string]Note{"C": C, "D": D, "E": E, "F": F, "G": G, "A": A, "H": H, "B": H}

// ParseNote parses a pitch spelling. Accepted forms are "-" for silence, a
// single legacy scale letter (C D E F G A H), or a letter with optional
// accidentals and an octave number, e.g. "A4", "C#3", "Bb2" or "F##-1".
func ParseNote(s string) (Note, error) {
	if s == "-" {
		return Silent, nil
	}
	if n, ok := legacyScale[s]; ok {
		return n, nil
	}
	if len(s) < 2 {
		return Silent, fmt.Errorf("invalid note %q", s)
	}
	semitone, ok := semitones[strings.ToUpper(s[:1])[0]]
	if !ok {
		return Silent, fmt.Errorf("invalid note %q: unknown pitch letter", s)
	}
	rest := s[1:]
	for len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		if rest[0] == '#' {
			semitone++
		} else {
			semitone--
		}
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Silent, fmt.Errorf("invalid note %q: octave must be an integer", s)
	}
	return NoteFromMIDI(12*(octave+1) + semitone), nil
}

// NoteFromMIDI returns the equal-tempered frequency of a MIDI note number.
func NoteFromMIDI(midi int) Note {
	if midi == referenceMIDI {
		return Note(ReferencePitch)
	}
	return Note(ReferencePitch * math.Pow(2, float64(midi-referenceMIDI)/12))
}

func (n Note) Frequency() float32 {
	return float32(n)
}

func (n Note) String() string {
	if n == Silent {
		return "-"
	}
	return fmt.Sprintf("%.2fHz", float32(n))
}
