package cadence

// Serial runs its children one after another. Only the child at Index is
// running; time a child overshoots its end is handed to the next child so no
// time is lost between steps.
type Serial struct {
	StepBase
	steps   []Step
	index   int
	running bool
}

// NewSerial creates a serial step. Nil steps are skipped.
func NewSerial(o StepOptions, steps ...Step) *Serial {
	s := &Serial{}
	s.init(o, nil)
	for _, st := range steps {
		s.Then(st)
	}
	return s
}

// Then appends step. Nil is ignored.
func (s *Serial) Then(step Step) *Serial {
	if step != nil {
		s.steps = append(s.steps, step)
	}
	return s
}

// Steps returns the children. The returned slice MUST NOT be mutated.
func (s *Serial) Steps() []Step { return s.steps }

// Index returns the position of the running child.
func (s *Serial) Index() int { return s.index }

// StartWaiting marks the serial step and all children as queued.
func (s *Serial) StartWaiting() {
	s.state = StateWaitingToStart
	for _, st := range s.steps {
		st.StartWaiting()
	}
}

// Start starts the first child lazily.
func (s *Serial) Start() { s.start(Opt[float64]{}) }

// StartAt starts the first child at t.
func (s *Serial) StartAt(t float64) { s.start(Some(t)) }

func (s *Serial) start(at Opt[float64]) {
	if s.state == StateAnimating {
		return
	}
	s.StartWaiting()
	s.StepBase.start(at)
	s.index = 0
	s.running = false
	if s.delay == 0 {
		s.startStep(at)
	}
}

// startStep starts the child at index, skipping over children that finish
// the moment they start.
func (s *Serial) startStep(at Opt[float64]) {
	s.running = true
	for s.index < len(s.steps) {
		child := s.steps[s.index]
		startStep(child, at)
		child.FinishIfZeroDuration()
		if !child.State().terminal() {
			return
		}
		s.index++
	}
	s.Finish(false, ForceNone)
}

// NextFrame advances the running child and chains any overshoot into the
// following children.
func (s *Serial) NextFrame(now float64) float64 {
	if !s.state.active() {
		return 0
	}
	start := s.anchor(now)
	if !s.running {
		if now-start < s.delay {
			return 0
		}
		s.startStep(Some(start + s.delay))
		if s.state.terminal() {
			return now - start - s.delay
		}
	}
	for s.index < len(s.steps) {
		child := s.steps[s.index]
		remaining := child.NextFrame(now)
		if !child.State().terminal() {
			return 0
		}
		if s.index == len(s.steps)-1 {
			s.Finish(false, ForceNone)
			return remaining
		}
		s.index++
		s.startStep(Some(now - remaining))
		if s.state.terminal() {
			return remaining
		}
	}
	return 0
}

// FinishIfZeroDuration is a no-op: zero-duration children are already
// cascaded through when the serial step starts.
func (s *Serial) FinishIfZeroDuration() {}

// Finish ends every unfinished child with the resolved force, then the
// serial step itself.
func (s *Serial) Finish(cancelled bool, force Force) {
	if s.state.terminal() {
		return
	}
	s.state = StateFinished
	f := s.childForce(force)
	for _, st := range s.steps {
		if !st.State().terminal() {
			st.Finish(cancelled, f)
		}
	}
	if s.onFinish != nil {
		s.onFinish(cancelled)
	}
}

// Cancel is Finish(true, force).
func (s *Serial) Cancel(force Force) { s.Finish(true, force) }

// Duration returns the sum of the children's total durations.
func (s *Serial) Duration() float64 {
	var d float64
	for _, st := range s.steps {
		d += st.TotalDuration()
	}
	return d
}

// TotalDuration returns delay plus Duration.
func (s *Serial) TotalDuration() float64 { return s.delay + s.Duration() }

// RemainingTime returns the time left as of now.
func (s *Serial) RemainingTime(now float64) float64 {
	return remainingTime(&s.StepBase, s.TotalDuration(), now)
}

func startStep(st Step, at Opt[float64]) {
	if t, ok := at.Get(); ok {
		st.StartAt(t)
		return
	}
	st.Start()
}

func remainingTime(b *StepBase, total, now float64) float64 {
	if !b.state.active() {
		return 0
	}
	start, ok := b.startTime.Get()
	if !ok {
		return total
	}
	return total - (now - start)
}
