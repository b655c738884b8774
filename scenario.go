package cadence

import "math"

// ScenarioVelocity sets how fast a scenario step moves each property. Unset
// fields default to 1 unit per second.
type ScenarioVelocity struct {
	Translation Opt[float64]
	Rotation    Opt[float64]
	Scale       Opt[float64]
	// Transform sets per-component velocities and overrides the three
	// fields above.
	Transform Opt[Transform]
	Color     Opt[float64]
	Opacity   Opt[float64]
}

// forTransform lays the velocities out like t.
func (v ScenarioVelocity) forTransform(t Transform) Transform {
	if tv, ok := v.Transform.Get(); ok {
		return tv
	}
	out := t.Copy()
	for i := range out.Components {
		c := &out.Components[i]
		switch c.Kind {
		case KindTranslate:
			c.X = v.Translation.Or(1)
			c.Y = c.X
		case KindRotate:
			c.X, c.Y = v.Rotation.Or(1), 0
		case KindScale:
			c.X = v.Scale.Or(1)
			c.Y = c.X
		}
	}
	return out
}

// ScenarioOptions configure a ScenarioStep.
type ScenarioOptions struct {
	StepOptions
	Element Element
	// Progression defaults to EaseInOut.
	Progression Progression

	// Target names the scenario to animate to.
	Target string
	// Start names the scenario to animate from. Empty starts from the
	// element's current state.
	Start string
	// Velocity, when set, times each property from its distance. Duration
	// then acts as a floor and defaults to 0; without a velocity a zero
	// Duration means one second.
	Velocity    *ScenarioVelocity
	MaxDuration Opt[float64]
	// ZeroDurationThreshold snaps properties that would take less than this
	// many seconds.
	ZeroDurationThreshold float64
	// AllDurationsSame runs every property for the longest duration.
	// Defaults to true.
	AllDurationsSame Opt[bool]
	RotDirection     Opt[RotationDirection]
	ClipRotation     ClipRange
	Path             PathOptions
}

// ScenarioStep animates an element from one named scenario to another. It
// resolves the transform, color and visibility differences when it starts
// and runs one child step per property in parallel.
type ScenarioStep struct {
	Parallel
	opts       ScenarioOptions
	childDelay float64
	built      bool
}

// NewScenario creates a scenario step.
func NewScenario(o ScenarioOptions) *ScenarioStep {
	if o.Progression.isZero() {
		o.Progression = EaseInOut
	}
	if o.Velocity == nil && o.Duration == 0 {
		o.Duration = 1
	}
	s := &ScenarioStep{opts: o, childDelay: max(o.Delay, 0)}
	po := o.StepOptions
	po.Delay = 0
	s.init(po, nil)
	return s
}

// Element returns the bound element.
func (s *ScenarioStep) Element() Element { return s.opts.Element }

// Start resolves the scenario against the element and starts the children.
func (s *ScenarioStep) Start() {
	s.build()
	s.Parallel.start(Opt[float64]{})
}

// StartAt is Start with an explicit start time.
func (s *ScenarioStep) StartAt(t float64) {
	s.build()
	s.Parallel.start(Some(t))
}

// StartWaiting queues the step. Children are resolved when it starts.
func (s *ScenarioStep) StartWaiting() {
	s.state = StateWaitingToStart
	s.steps = nil
	s.built = false
}

// Finish ends the step. A queued step that completes resolves its children
// first so the element lands on the target scenario.
func (s *ScenarioStep) Finish(cancelled bool, force Force) {
	if s.state == StateWaitingToStart && !s.built && s.completes(cancelled, force) {
		s.build()
		for _, st := range s.steps {
			st.StartWaiting()
		}
	}
	s.Parallel.Finish(cancelled, force)
}

// Cancel is Finish(true, force).
func (s *ScenarioStep) Cancel(force Force) { s.Finish(true, force) }

// Duration returns the longest child duration. Before the step has started
// it is estimated from the element's current state.
func (s *ScenarioStep) Duration() float64 {
	if s.built {
		return s.Parallel.Duration()
	}
	p := s.plan()
	if p.empty() {
		return 0
	}
	return s.childDelay + p.longest()
}

// TotalDuration equals Duration: the delay is carried by the children.
func (s *ScenarioStep) TotalDuration() float64 { return s.Duration() }

// RemainingTime returns the time left as of now.
func (s *ScenarioStep) RemainingTime(now float64) float64 {
	return remainingTime(&s.StepBase, s.TotalDuration(), now)
}

type scenarioPlan struct {
	transform, color, opacity Opt[float64]

	startT, targetT Transform
	startC, targetC Color
	dissolve        DissolveMode
	fromCurrent     bool
}

func (p scenarioPlan) empty() bool {
	return !p.transform.IsSet() && !p.color.IsSet() && !p.opacity.IsSet()
}

func (p scenarioPlan) longest() float64 {
	return max(p.transform.Or(0), p.color.Or(0), p.opacity.Or(0))
}

// plan resolves start and target values and a duration for each property
// that changes.
func (s *ScenarioStep) plan() scenarioPlan {
	var p scenarioPlan
	el, ok := as[ScenarioProvider](s.opts.Element)
	if !ok {
		return p
	}
	target, ok := el.ScenarioTarget(s.opts.Target)
	if !ok {
		return p
	}
	from := el.CurrentScenario()
	fromCurrent := s.opts.Start == ""
	if !fromCurrent {
		if named, ok := el.ScenarioTarget(s.opts.Start); ok {
			from = named
		}
	}
	vel := ScenarioVelocity{}
	if s.opts.Velocity != nil {
		vel = *s.opts.Velocity
	}

	if tt, ok := target.Transform.Get(); ok {
		p.startT = from.Transform.Or(el.Transform()).Copy()
		p.targetT = tt.Copy()
		d, _ := EstimateDuration(p.startT, p.targetT, vel.forTransform(p.startT), s.opts.RotDirection)
		p.transform = Some(d)
	}
	if tc, ok := target.Color.Get(); ok {
		p.startC = from.Color.Or(el.Color())
		p.targetC = tc
		d, _ := ScalarDuration(0, p.startC.maxChannelDelta(tc), vel.Color.Or(1))
		p.color = Some(d)
	}
	if shown, ok := target.IsShown.Get(); ok {
		wasShown := from.IsShown.Or(el.IsShown())
		partial := fromCurrent && el.Opacity() != 1
		switch {
		case shown && (partial || !wasShown):
			p.dissolve, p.fromCurrent = DissolveIn, partial
		case !shown && (partial || wasShown):
			p.dissolve, p.fromCurrent = DissolveOut, partial
		}
		if p.dissolve != DissolveNone {
			dist := 1.0
			if partial {
				dist = math.Abs(el.Opacity() - 1)
				if p.dissolve == DissolveOut {
					dist = el.Opacity()
				}
			}
			d, _ := ScalarDuration(0, dist, vel.Opacity.Or(1))
			p.opacity = Some(d)
		}
	}

	floor := s.duration
	fix := func(o *Opt[float64]) {
		d, ok := o.Get()
		if !ok {
			return
		}
		if s.opts.Velocity == nil {
			d = floor
		} else {
			if m, ok := s.opts.MaxDuration.Get(); ok {
				d = min(d, m)
			}
			if d < s.opts.ZeroDurationThreshold {
				d = 0
			}
			d = max(d, floor)
		}
		*o = Some(d)
	}
	fix(&p.transform)
	fix(&p.color)
	fix(&p.opacity)
	if s.opts.AllDurationsSame.Or(true) {
		l := p.longest()
		for _, o := range []*Opt[float64]{&p.transform, &p.color, &p.opacity} {
			if o.IsSet() {
				*o = Some(l)
			}
		}
	}
	return p
}

// build replaces the children with one step per changing property.
func (s *ScenarioStep) build() {
	p := s.plan()
	s.steps = s.steps[:0]
	s.built = true
	child := func(d float64) StepOptions {
		return StepOptions{Duration: d, Delay: s.childDelay, OnCancel: s.onCancel}
	}
	if d, ok := p.transform.Get(); ok {
		s.steps = append(s.steps, NewTransform(TransformOptions{
			StepOptions:  child(d),
			Element:      s.opts.Element,
			Progression:  s.opts.Progression,
			Start:        Some(p.startT),
			Target:       Some(p.targetT),
			RotDirection: s.opts.RotDirection,
			ClipRotation: s.opts.ClipRotation,
			Path:         s.opts.Path,
		}))
	}
	if d, ok := p.color.Get(); ok {
		s.steps = append(s.steps, NewColor(ColorOptions{
			StepOptions: child(d),
			Element:     s.opts.Element,
			Progression: s.opts.Progression,
			Start:       Some(p.startC),
			Target:      Some(p.targetC),
		}))
	}
	if d, ok := p.opacity.Get(); ok {
		s.steps = append(s.steps, NewOpacity(OpacityOptions{
			StepOptions:         child(d),
			Element:             s.opts.Element,
			Progression:         s.opts.Progression,
			Dissolve:            p.dissolve,
			DissolveFromCurrent: p.fromCurrent,
		}))
	}
}
