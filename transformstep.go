package cadence

// TransformOptions configure a TransformStep. Start, Delta and Target must
// have the same component layout as the element's transform.
type TransformOptions struct {
	StepOptions
	Element     Element
	Progression Progression

	Start  Opt[Transform]
	Delta  Opt[Transform]
	Target Opt[Transform]
	// Velocity limits each component separately.
	Velocity Opt[Transform]
	// Speed is a single velocity applied to every component. Velocity wins
	// when both are set.
	Speed        Opt[float64]
	MaxDuration  Opt[float64]
	RotDirection Opt[RotationDirection]
	ClipRotation ClipRange
	// Path shapes translation components.
	Path PathOptions
}

// TransformStep animates all components of an element's transform at once.
type TransformStep struct {
	elementStep
	opts TransformOptions

	start, delta, target Transform
	resolved             bool
}

// NewTransform creates a transform step.
func NewTransform(o TransformOptions) *TransformStep {
	s := &TransformStep{opts: o}
	s.initElement(o.StepOptions, o.Element, o.Progression, Linear, o.MaxDuration, s)
	return s
}

func (s *TransformStep) onStart() {
	s.resetDuration()
	s.resolved = false
	el, ok := as[Transformer](s.element)
	if !ok {
		s.duration = 0
		return
	}
	if st, ok := s.opts.Start.Get(); ok {
		s.start = st.Copy()
	} else {
		s.start = el.Transform().Copy()
	}
	if d, ok := s.opts.Delta.Get(); ok {
		s.delta = d.Copy()
		s.target = s.start.Add(d)
	} else if t, ok := s.opts.Target.Get(); ok {
		s.target = t.Copy()
		s.delta = s.start.deltaTo(t, s.opts.RotDirection)
	} else {
		s.duration = 0
		return
	}
	s.resolved = true
	v, hasV := s.opts.Velocity.Get()
	if !hasV {
		if speed, ok := s.opts.Speed.Get(); ok {
			v, hasV = s.start.Constant(speed), true
		}
	}
	if hasV {
		s.applyVelocity(EstimateDuration(s.start, s.target, v, s.opts.RotDirection))
	} else {
		s.applyVelocity(0, false)
	}
}

func (s *TransformStep) setFrame(dt float64) {
	if el, ok := as[Transformer](s.element); ok && s.resolved {
		next := s.start.toDelta(s.delta, s.progress(dt), s.opts.Path)
		el.SetTransform(next.clipRotation(s.opts.ClipRotation))
	}
}

func (s *TransformStep) setToEnd() {
	if el, ok := as[Transformer](s.element); ok && s.resolved {
		el.SetTransform(s.target.clipRotation(s.opts.ClipRotation))
	}
}

func (s *TransformStep) cancelledWithNoComplete() {}

// StartTransform returns the start transform resolved by the last start.
func (s *TransformStep) StartTransform() Transform { return s.start }

// TargetTransform returns the target transform resolved by the last start.
func (s *TransformStep) TargetTransform() Transform { return s.target }
