package cadence

// RotationOptions configure a RotationStep.
type RotationOptions struct {
	StepOptions
	Element     Element
	Progression Progression

	Start  Opt[float64]
	Delta  Opt[float64]
	Target Opt[float64]
	// Velocity is in radians per second.
	Velocity    Opt[float64]
	MaxDuration Opt[float64]
	// Direction picks the path from Start to Target. Unset uses the plain
	// numeric difference.
	Direction Opt[RotationDirection]
	// Clip wraps every written angle.
	Clip ClipRange
}

// RotationStep animates an element's rotation.
type RotationStep struct {
	elementStep
	opts RotationOptions

	start, delta, target float64
	resolved             bool
}

// NewRotation creates a rotation step.
func NewRotation(o RotationOptions) *RotationStep {
	s := &RotationStep{opts: o}
	s.initElement(o.StepOptions, o.Element, o.Progression, Linear, o.MaxDuration, s)
	return s
}

func (s *RotationStep) onStart() {
	s.resetDuration()
	s.resolved = false
	el, ok := as[Rotator](s.element)
	if !ok {
		s.duration = 0
		return
	}
	s.start = s.opts.Start.Or(el.Rotation())
	if d, ok := s.opts.Delta.Get(); ok {
		s.delta = d
		s.target = s.start + d
	} else if t, ok := s.opts.Target.Get(); ok {
		s.target = t
		s.delta = rotationDelta(s.start, t, s.opts.Direction)
	} else {
		s.duration = 0
		return
	}
	s.resolved = true
	if v, ok := s.opts.Velocity.Get(); ok {
		s.applyVelocity(ScalarDuration(0, s.delta, v))
	} else {
		s.applyVelocity(0, false)
	}
}

func (s *RotationStep) setFrame(dt float64) {
	if el, ok := as[Rotator](s.element); ok && s.resolved {
		el.SetRotation(ClipAngle(s.start+s.delta*s.progress(dt), s.opts.Clip))
	}
}

func (s *RotationStep) setToEnd() {
	if el, ok := as[Rotator](s.element); ok && s.resolved {
		el.SetRotation(ClipAngle(s.target, s.opts.Clip))
	}
}

func (s *RotationStep) cancelledWithNoComplete() {}
