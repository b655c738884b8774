package cadence

// PositionOptions configure a PositionStep. Exactly one of Delta or Target
// should be set; when both are, Delta wins. An unset Start captures the
// element's position when the step starts.
type PositionOptions struct {
	StepOptions
	Element     Element
	Progression Progression

	Start  Opt[Vec2]
	Delta  Opt[Vec2]
	Target Opt[Vec2]
	// Velocity is the per-axis speed in units per second. When set it
	// replaces Duration.
	Velocity    Opt[Vec2]
	MaxDuration Opt[float64]
	Path        PathOptions
}

// PositionStep animates an element's position.
type PositionStep struct {
	elementStep
	opts PositionOptions

	start, delta, target Vec2
	resolved             bool
}

// NewPosition creates a position step.
func NewPosition(o PositionOptions) *PositionStep {
	s := &PositionStep{opts: o}
	s.initElement(o.StepOptions, o.Element, o.Progression, Linear, o.MaxDuration, s)
	return s
}

func (s *PositionStep) onStart() {
	s.resetDuration()
	s.resolved = false
	el, ok := as[Positioner](s.element)
	if !ok {
		s.duration = 0
		return
	}
	s.start = s.opts.Start.Or(el.Position())
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

func (s *PositionStep) setFrame(dt float64) {
	el, ok := as[Positioner](s.element)
	if !ok || !s.resolved {
		return
	}
	el.SetPosition(s.opts.Path.at(s.start, s.delta, s.progress(dt)))
}

func (s *PositionStep) setToEnd() {
	if el, ok := as[Positioner](s.element); ok && s.resolved {
		el.SetPosition(s.target)
	}
}

func (s *PositionStep) cancelledWithNoComplete() {}

// Target returns the target resolved by the last start.
func (s *PositionStep) Target() Vec2 { return s.target }
