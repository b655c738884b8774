package cadence

// PulseOptions configure a PulseStep. A zero Duration means one second and a
// zero Scale means 2.
type PulseOptions struct {
	StepOptions
	Element Element
	// Progression shapes the pulse envelope. The element decides what an
	// unset progression means.
	Progression Progression
	Scale       float64
	// Frequency is the number of oscillations per second. Zero pulses once
	// over the whole duration.
	Frequency float64
	// KeepPulsing leaves the pulse running on the element after the step
	// ends.
	KeepPulsing bool
}

// PulseStep asks an element to pulse. The element runs the oscillation; the
// step only times it.
type PulseStep struct {
	elementStep
	opts  PulseOptions
	fired bool
}

// NewPulse creates a pulse step.
func NewPulse(o PulseOptions) *PulseStep {
	if o.Duration == 0 {
		o.Duration = 1
	}
	if o.Scale == 0 {
		o.Scale = 2
	}
	s := &PulseStep{opts: o}
	s.initElement(o.StepOptions, o.Element, o.Progression, Progression{}, Opt[float64]{}, s)
	return s
}

func (s *PulseStep) onStart() {
	s.resetDuration()
	s.fired = false
	if _, ok := as[Pulser](s.element); !ok {
		s.duration = 0
	}
}

func (s *PulseStep) setFrame(float64) {
	s.fire()
}

func (s *PulseStep) fire() {
	if s.fired {
		return
	}
	el, ok := as[Pulser](s.element)
	if !ok {
		return
	}
	s.fired = true
	el.Pulse(PulseConfig{
		Duration:    s.duration,
		Scale:       s.opts.Scale,
		Frequency:   s.opts.Frequency,
		Progression: s.progression,
		Stop:        !s.opts.KeepPulsing,
	})
}

func (s *PulseStep) setToEnd() {
	if s.opts.KeepPulsing {
		return
	}
	if el, ok := as[Pulser](s.element); ok {
		el.StopPulsing()
	}
}

func (s *PulseStep) cancelledWithNoComplete() {}
