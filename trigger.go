package cadence

// TriggerOptions configure a TriggerStep. Set Callback or AutoDuration;
// AutoDuration wins when both are set.
type TriggerOptions struct {
	StepOptions
	Callback func()
	// AutoDuration is called instead of Callback and its result becomes the
	// step's duration, so a trigger can wait for work it kicked off.
	AutoDuration func() float64
	// SetToEndCallback replaces the callback when the trigger is completed
	// without having run, e.g. by a forced cancel.
	SetToEndCallback func()
}

// TriggerStep runs a callback once on its first frame.
type TriggerStep struct {
	StepBase
	opts     TriggerOptions
	authored float64
	fired    bool
}

// NewTrigger creates a trigger step.
func NewTrigger(o TriggerOptions) *TriggerStep {
	s := &TriggerStep{opts: o}
	s.init(o.StepOptions, s)
	s.authored = s.duration
	return s
}

func (s *TriggerStep) onStart() {
	s.duration = s.authored
	s.fired = false
}

func (s *TriggerStep) setFrame(float64) {
	if s.fired {
		return
	}
	s.fired = true
	if s.opts.AutoDuration != nil {
		s.duration = max(s.opts.AutoDuration(), 0)
		return
	}
	if s.opts.Callback != nil {
		s.opts.Callback()
	}
}

func (s *TriggerStep) setToEnd() {
	if s.fired {
		return
	}
	s.fired = true
	switch {
	case s.opts.SetToEndCallback != nil:
		s.opts.SetToEndCallback()
	case s.opts.AutoDuration != nil:
		s.opts.AutoDuration()
	case s.opts.Callback != nil:
		s.opts.Callback()
	}
}

func (s *TriggerStep) cancelledWithNoComplete() {}

// Fired reports whether the callback ran during the current run.
func (s *TriggerStep) Fired() bool { return s.fired }
