package cadence

// CustomFunc receives the eased progress of a custom step, in [0, 1].
// Returning true ends the step early.
type CustomFunc func(percent float64) (stop bool)

// CustomOptions configure a CustomStep. A zero Duration means one second.
type CustomOptions struct {
	StepOptions
	Progression Progression
	Callback    CustomFunc
	// StartPercent starts the step part way through, as a progress value.
	StartPercent float64
}

// CustomStep calls a function with the progress of every frame.
type CustomStep struct {
	StepBase
	opts        CustomOptions
	progression Progression
	authored    float64
	stopped     bool
}

// NewCustom creates a custom step.
func NewCustom(o CustomOptions) *CustomStep {
	if o.Duration == 0 {
		o.Duration = 1
	}
	s := &CustomStep{opts: o, progression: o.Progression.or(Linear)}
	s.init(o.StepOptions, s)
	s.authored = s.duration
	return s
}

func (s *CustomStep) onStart() {
	s.duration = s.authored
	s.stopped = false
	if s.opts.Callback == nil {
		s.duration = 0
		return
	}
	if sp := clamp01(s.opts.StartPercent); sp > 0 {
		s.startTimeOffset = s.progression.Inverse(sp) * s.duration
	}
}

func (s *CustomStep) setFrame(dt float64) {
	if s.opts.Callback == nil || s.stopped {
		return
	}
	if s.opts.Callback(s.percent(s.progression, dt)) {
		s.stopped = true
		s.duration = dt
	}
}

// setToEnd reports full progress unless the callback already ended the step.
func (s *CustomStep) setToEnd() {
	if s.opts.Callback != nil && !s.stopped {
		s.opts.Callback(1)
	}
}

func (s *CustomStep) cancelledWithNoComplete() {}
