package block

// Amplifier sums its (signal, gain) pairs, each multiplied together, with the
// channels computed independently.
type Amplifier struct {
	pairs []pair
}

type pair struct {
	signal, gain Source
}

func NewAmplifier() *Amplifier {
	return &Amplifier{}
}

// SetSignal sets the signal of pair n. Missing pairs before n are filled with
// silence at unity gain.
func (a *Amplifier) SetSignal(n int, signal Source) {
	a.grow(n)
	a.pairs[n].signal = signal
}

// SetGain sets the gain of pair n, filling missing pairs like SetSignal.
func (a *Amplifier) SetGain(n int, gain Source) {
	a.grow(n)
	a.pairs[n].gain = gain
}

// Len returns the number of pairs.
func (a *Amplifier) Len() int { return len(a.pairs) }

func (a *Amplifier) grow(n int) {
	for len(a.pairs) <= n {
		a.pairs = append(a.pairs, pair{signal: Silence(), gain: Unity()})
	}
}

func (a *Amplifier) Kind() Kind { return KindAmplifier }

func (a *Amplifier) Step() {
	for _, p := range a.pairs {
		p.signal.Step()
		p.gain.Step()
	}
}

func (a *Amplifier) Mono() (sum float32) {
	for _, p := range a.pairs {
		sum += p.signal.Mono() * p.gain.Mono()
	}
	return sum
}

func (a *Amplifier) Left() (sum float32) {
	for _, p := range a.pairs {
		sum += p.signal.Left() * p.gain.Left()
	}
	return sum
}

func (a *Amplifier) Right() (sum float32) {
	for _, p := range a.pairs {
		sum += p.signal.Right() * p.gain.Right()
	}
	return sum
}

// Children lists signal and gain of every pair, in pair order.
func (a *Amplifier) Children() []Source {
	ret := make([]Source, 0, 2*len(a.pairs))
	for _, p := range a.pairs {
		ret = append(ret, p.signal, p.gain)
	}
	return ret
}
