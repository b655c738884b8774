package cadence

// OpacityOptions configure an OpacityStep. With Dissolve set, Start, Delta
// and Target are ignored: a dissolve runs between transparent and opaque and
// toggles visibility at its ends.
type OpacityOptions struct {
	StepOptions
	Element     Element
	Progression Progression

	Start  Opt[float64]
	Delta  Opt[float64]
	Target Opt[float64]
	// Velocity is the opacity change per second.
	Velocity    Opt[float64]
	MaxDuration Opt[float64]

	Dissolve DissolveMode
	// DissolveFromCurrent starts a dissolve from the element's current
	// opacity when it is already shown, instead of from the far end.
	DissolveFromCurrent bool
}

// OpacityStep animates an element's opacity.
type OpacityStep struct {
	elementStep
	opts OpacityOptions

	start, delta, target float64
	resolved             bool
}

// NewOpacity creates an opacity step.
func NewOpacity(o OpacityOptions) *OpacityStep {
	s := &OpacityStep{opts: o}
	s.initElement(o.StepOptions, o.Element, o.Progression, Linear, o.MaxDuration, s)
	return s
}

// NewDissolveIn creates a step that shows an element and fades it up to
// fully opaque. A zero Duration means one second and the step completes when
// cancelled unless OnCancel says otherwise.
func NewDissolveIn(o OpacityOptions) *OpacityStep {
	o.Dissolve = DissolveIn
	return NewOpacity(withDissolveDefaults(o))
}

// NewDissolveOut creates a step that fades an element out and hides it.
// Defaults match NewDissolveIn.
func NewDissolveOut(o OpacityOptions) *OpacityStep {
	o.Dissolve = DissolveOut
	return NewOpacity(withDissolveDefaults(o))
}

func withDissolveDefaults(o OpacityOptions) OpacityOptions {
	if o.Duration == 0 {
		o.Duration = 1
	}
	if o.OnCancel == ForceNone {
		o.OnCancel = ForceComplete
	}
	return o
}

func (s *OpacityStep) onStart() {
	s.resetDuration()
	s.resolved = false
	el, ok := as[Opaquer](s.element)
	if !ok {
		s.duration = 0
		return
	}
	sh, canShow := as[Shower](s.element)
	shown := canShow && sh.IsShown()
	switch s.opts.Dissolve {
	case DissolveOut:
		s.start = 1
		if s.opts.DissolveFromCurrent && shown {
			s.start = el.Opacity()
		}
		s.target = dissolveAlpha
	case DissolveIn:
		s.start = dissolveAlpha
		if s.opts.DissolveFromCurrent && shown {
			s.start = el.Opacity()
		}
		s.target = 1
		el.SetOpacity(s.start)
		if canShow {
			sh.Show()
		}
	default:
		s.start = s.opts.Start.Or(el.Opacity())
		if d, ok := s.opts.Delta.Get(); ok {
			s.target = clamp01(s.start + d)
		} else if t, ok := s.opts.Target.Get(); ok {
			s.target = clamp01(t)
		} else {
			s.duration = 0
			return
		}
	}
	s.delta = s.target - s.start
	s.resolved = true
	if v, ok := s.opts.Velocity.Get(); ok {
		s.applyVelocity(ScalarDuration(s.start, s.target, v))
	} else {
		s.applyVelocity(0, false)
	}
}

func (s *OpacityStep) setFrame(dt float64) {
	if el, ok := as[Opaquer](s.element); ok && s.resolved {
		el.SetOpacity(clamp01(s.start + s.delta*s.progress(dt)))
	}
}

func (s *OpacityStep) setToEnd() {
	el, ok := as[Opaquer](s.element)
	if !ok || !s.resolved {
		return
	}
	switch s.opts.Dissolve {
	case DissolveOut:
		if sh, ok := as[Shower](s.element); ok {
			sh.Hide()
		}
		// Hidden elements are left opaque so a later Show needs no fade.
		el.SetOpacity(1)
	case DissolveIn:
		el.SetOpacity(1)
	default:
		el.SetOpacity(s.target)
	}
}

// cancelledWithNoComplete repairs an element left transparent by a dissolve
// that was queued but never ran.
func (s *OpacityStep) cancelledWithNoComplete() {
	el, ok := as[Opaquer](s.element)
	if !ok || el.Opacity() != dissolveAlpha {
		return
	}
	if sh, ok := as[Shower](s.element); ok {
		sh.Hide()
	}
	el.SetOpacity(1)
}

// Target returns the opacity resolved by the last start.
func (s *OpacityStep) Target() float64 { return s.target }
