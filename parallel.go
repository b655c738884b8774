package cadence

import "math"

// Parallel runs all of its children at once and finishes when every child
// has finished.
type Parallel struct {
	StepBase
	steps   []Step
	running bool
}

// NewParallel creates a parallel step. Nil steps are skipped.
func NewParallel(o StepOptions, steps ...Step) *Parallel {
	p := &Parallel{}
	p.init(o, nil)
	for _, st := range steps {
		p.With(st)
	}
	return p
}

// With adds step. Nil is ignored.
func (p *Parallel) With(step Step) *Parallel {
	if step != nil {
		p.steps = append(p.steps, step)
	}
	return p
}

// Steps returns the children. The returned slice MUST NOT be mutated.
func (p *Parallel) Steps() []Step { return p.steps }

// StartWaiting marks the parallel step and all children as queued.
func (p *Parallel) StartWaiting() {
	p.state = StateWaitingToStart
	for _, st := range p.steps {
		st.StartWaiting()
	}
}

// Start starts all children lazily.
func (p *Parallel) Start() { p.start(Opt[float64]{}) }

// StartAt starts all children at t.
func (p *Parallel) StartAt(t float64) { p.start(Some(t)) }

func (p *Parallel) start(at Opt[float64]) {
	p.StartWaiting()
	p.StepBase.start(at)
	p.running = false
	if p.delay == 0 {
		p.startChildren(at)
	}
}

func (p *Parallel) startChildren(at Opt[float64]) {
	p.running = true
	for _, st := range p.steps {
		startStep(st, at)
		st.FinishIfZeroDuration()
	}
	if p.allFinished() {
		p.Finish(false, ForceNone)
	}
}

func (p *Parallel) allFinished() bool {
	for _, st := range p.steps {
		if !st.State().terminal() {
			return false
		}
	}
	return true
}

// NextFrame advances every running child. The step finishes once all
// children are finished and returns the smallest overshoot among the
// children that finished on this frame.
func (p *Parallel) NextFrame(now float64) float64 {
	if !p.state.active() {
		return 0
	}
	start := p.anchor(now)
	if !p.running {
		if now-start < p.delay {
			return 0
		}
		p.startChildren(Some(start + p.delay))
		if p.state.terminal() {
			return now - start - p.delay
		}
	}
	remaining := math.Inf(1)
	for _, st := range p.steps {
		if !st.State().active() {
			continue
		}
		r := st.NextFrame(now)
		if st.State().terminal() && r < remaining {
			remaining = r
		}
	}
	if !p.allFinished() {
		return 0
	}
	if math.IsInf(remaining, 1) {
		remaining = 0
	}
	p.Finish(false, ForceNone)
	return remaining
}

// FinishIfZeroDuration is a no-op: a parallel step whose children all finish
// at start finishes itself.
func (p *Parallel) FinishIfZeroDuration() {}

// Finish ends every unfinished child with the resolved force, then the
// parallel step itself.
func (p *Parallel) Finish(cancelled bool, force Force) {
	if p.state.terminal() {
		return
	}
	p.state = StateFinished
	f := p.childForce(force)
	for _, st := range p.steps {
		if !st.State().terminal() {
			st.Finish(cancelled, f)
		}
	}
	if p.onFinish != nil {
		p.onFinish(cancelled)
	}
}

// Cancel is Finish(true, force).
func (p *Parallel) Cancel(force Force) { p.Finish(true, force) }

// Duration returns the longest child total duration.
func (p *Parallel) Duration() float64 {
	var d float64
	for _, st := range p.steps {
		d = max(d, st.TotalDuration())
	}
	return d
}

// TotalDuration returns delay plus Duration.
func (p *Parallel) TotalDuration() float64 { return p.delay + p.Duration() }

// RemainingTime returns the time left as of now.
func (p *Parallel) RemainingTime(now float64) float64 {
	return remainingTime(&p.StepBase, p.TotalDuration(), now)
}
