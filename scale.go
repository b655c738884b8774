package cadence

// ScaleOptions configure a ScaleStep. They resolve like PositionOptions.
type ScaleOptions struct {
	StepOptions
	Element     Element
	Progression Progression

	Start       Opt[Vec2]
	Delta       Opt[Vec2]
	Target      Opt[Vec2]
	Velocity    Opt[Vec2]
	MaxDuration Opt[float64]
}

// ScaleStep animates an element's scale.
type ScaleStep struct {
	elementStep
	opts ScaleOptions

	start, delta, target Vec2
	resolved             bool
}

// NewScale creates a scale step.
func NewScale(o ScaleOptions) *ScaleStep {
	s := &ScaleStep{opts: o}
	s.initElement(o.StepOptions, o.Element, o.Progression, Linear, o.MaxDuration, s)
	return s
}

func (s *ScaleStep) onStart() {
	s.resetDuration()
	s.resolved = false
	el, ok := as[Scaler](s.element)
	if !ok {
		s.duration = 0
		return
	}
	s.start = s.opts.Start.Or(el.Scale())
	if d, ok := s.opts.Delta.Get(); ok {
		s.delta = d
		s.target = s.start.Add(d)
	} else if t, ok := s.opts.Target.Get(); ok {
		s.target = t
		s.delta = t.Sub(s.start)
	} else {
		s.duration = 0
		return
	}
	s.resolved = true
	if v, ok := s.opts.Velocity.Get(); ok {
		s.applyVelocity(Vec2Duration(s.start, s.target, v))
	} else {
		s.applyVelocity(0, false)
	}
}

func (s *ScaleStep) setFrame(dt float64) {
	if el, ok := as[Scaler](s.element); ok && s.resolved {
		el.SetScale(s.start.toDelta(s.delta, s.progress(dt)))
	}
}

func (s *ScaleStep) setToEnd() {
	if el, ok := as[Scaler](s.element); ok && s.resolved {
		el.SetScale(s.target)
	}
}

func (s *ScaleStep) cancelledWithNoComplete() {}
