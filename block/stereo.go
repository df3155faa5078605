package block

// Stereo spreads a signal over the two channels. The shift source is in
// [-1, 1]; 0 is centered.
//
// Both channels are derived from the left source; the right source only
// contributes to Mono.
type Stereo struct {
	left, right, shift Source
}

func NewStereo() *Stereo {
	return &Stereo{left: Silence(), right: Silence(), shift: Silence()}
}

func (s *Stereo) SetLeft(left Source) { s.left = left }

func (s *Stereo) SetRight(right Source) { s.right = right }

func (s *Stereo) SetShift(shift Source) { s.shift = shift }

func (s *Stereo) Kind() Kind { return KindStereo }

func (s *Stereo) Step() {
	s.left.Step()
	s.right.Step()
	s.shift.Step()
}

func (s *Stereo) Mono() float32 {
	return s.left.Mono() + s.right.Mono()/2
}

func (s *Stereo) Left() float32 {
	return s.left.Left() * (1 - s.shift01())
}

func (s *Stereo) Right() float32 {
	return s.left.Right() * s.shift01()
}

func (s *Stereo) shift01() float32 {
	return (s.shift.Mono() + 1) / 2
}

func (s *Stereo) Children() []Source {
	return []Source{s.left, s.right, s.shift}
}
