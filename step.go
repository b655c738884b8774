package cadence

// Step is a schedulable unit of timed work. Steps are driven by calling
// NextFrame with a caller-supplied clock in seconds; they never read the
// wall clock.
type Step interface {
	// Name returns the step name, used by Manager lookups.
	Name() string
	// State returns the lifecycle state.
	State() StepState
	// Start starts the step lazily: the first NextFrame anchors its start time.
	Start()
	// StartAt starts the step with an explicit start time.
	StartAt(t float64)
	// StartWaiting marks the step as queued inside a composite.
	StartWaiting()
	// NextFrame advances the step to now. A running step returns 0; a step
	// that finishes returns the time it overshot its end.
	NextFrame(now float64) float64
	// Finish ends the step. Finishing a terminal step does nothing.
	Finish(cancelled bool, force Force)
	// Cancel is Finish(true, force).
	Cancel(force Force)
	// FinishIfZeroDuration finishes the step immediately if it has nothing
	// to wait for.
	FinishIfZeroDuration()
	// Duration is the resolved duration of the current run, excluding delay.
	Duration() float64
	// TotalDuration is delay plus duration (summed or maxed for composites).
	TotalDuration() float64
	// RemainingTime is the time left until the step ends, as of now.
	RemainingTime(now float64) float64
	// RemoveOnFinish reports whether a Manager drops the step once finished.
	RemoveOnFinish() bool
}

// StepOptions are the options every step accepts.
type StepOptions struct {
	Name string
	// Duration in seconds. Leaf steps may override it from a velocity.
	Duration float64
	// Delay postpones the step's first frame by this many seconds.
	Delay float64
	// OnCancel is the policy applied when the step is cancelled without an
	// explicit force: ForceComplete snaps to the end value, ForceFreeze and
	// ForceNone leave the last interpolated value.
	OnCancel Force
	// OnFinish is called once every time the step ends.
	OnFinish func(cancelled bool)
	// KeepOnFinish stops a Manager from removing the step once it ends.
	KeepOnFinish bool
}

// stepHooks are the per-step behaviors StepBase dispatches to.
type stepHooks interface {
	// onStart resolves start-time values and the duration for this run.
	onStart()
	// setFrame applies the step at dt seconds into its duration.
	setFrame(dt float64)
	// setToEnd applies the exact end state.
	setToEnd()
	// cancelledWithNoComplete runs when a step that never started is
	// cancelled without completing.
	cancelledWithNoComplete()
}

type noHooks struct{}

func (noHooks) onStart()                 {}
func (noHooks) setFrame(float64)         {}
func (noHooks) setToEnd()                {}
func (noHooks) cancelledWithNoComplete() {}

// StepBase implements the Step state machine. Concrete steps embed it and
// pass themselves as hooks.
type StepBase struct {
	name            string
	state           StepState
	startTime       Opt[float64]
	duration        float64
	delay           float64
	startTimeOffset float64
	seek            float64
	onCancel        Force
	onFinish        func(cancelled bool)
	keepOnFinish    bool
	hooks           stepHooks
}

func (b *StepBase) init(o StepOptions, hooks stepHooks) {
	if hooks == nil {
		hooks = noHooks{}
	}
	b.name = o.Name
	b.duration = max(o.Duration, 0)
	b.delay = max(o.Delay, 0)
	b.onCancel = o.OnCancel
	b.onFinish = o.OnFinish
	b.keepOnFinish = o.KeepOnFinish
	b.hooks = hooks
}

// Name returns the step name.
func (b *StepBase) Name() string { return b.name }

// State returns the lifecycle state.
func (b *StepBase) State() StepState { return b.state }

// Duration returns the resolved duration of the current run.
func (b *StepBase) Duration() float64 { return b.duration }

// Delay returns the start delay.
func (b *StepBase) Delay() float64 { return b.delay }

// TotalDuration returns delay plus duration.
func (b *StepBase) TotalDuration() float64 { return b.duration + b.delay }

// RemoveOnFinish reports whether a Manager drops the step once finished.
func (b *StepBase) RemoveOnFinish() bool { return !b.keepOnFinish }

// SetOnFinish replaces the finish callback.
func (b *StepBase) SetOnFinish(fn func(cancelled bool)) { b.onFinish = fn }

// SetStartTimeOffset makes every later start begin offset seconds into the
// step, as if it had started that much earlier.
func (b *StepBase) SetStartTimeOffset(offset float64) { b.seek = max(offset, 0) }

// SetOnCancel replaces the cancel policy.
func (b *StepBase) SetOnCancel(f Force) { b.onCancel = f }

// RemainingTime returns the time left until the step ends.
func (b *StepBase) RemainingTime(now float64) float64 {
	if !b.state.active() {
		return 0
	}
	start, ok := b.startTime.Get()
	if !ok {
		return b.TotalDuration()
	}
	return b.TotalDuration() - (now - start)
}

// StartWaiting marks the step as queued.
func (b *StepBase) StartWaiting() {
	b.state = StateWaitingToStart
}

// Start starts the step lazily.
func (b *StepBase) Start() {
	b.start(Opt[float64]{})
}

// StartAt starts the step at time t.
func (b *StepBase) StartAt(t float64) {
	b.start(Some(t))
}

func (b *StepBase) start(at Opt[float64]) {
	b.state = StateAnimating
	b.startTime = at
	b.startTimeOffset = b.seek
	b.hooks.onStart()
	// onStart may request a head start into the step.
	if t, ok := at.Get(); ok && b.startTimeOffset != 0 {
		b.startTime = Some(t - b.startTimeOffset)
	}
}

// anchor fixes a lazy start time on the first frame.
func (b *StepBase) anchor(now float64) float64 {
	if t, ok := b.startTime.Get(); ok {
		return t
	}
	t := now - b.startTimeOffset
	b.startTime = Some(t)
	return t
}

// NextFrame advances the step to now.
func (b *StepBase) NextFrame(now float64) float64 {
	if !b.state.active() {
		return 0
	}
	dt := now - b.anchor(now)
	if dt < b.delay {
		return 0
	}
	after := dt - b.delay
	b.hooks.setFrame(min(after, b.duration))
	// setFrame may shorten the duration, so compare afterwards.
	if after >= b.duration {
		b.Finish(false, ForceNone)
		return after - b.duration
	}
	return 0
}

// FinishIfZeroDuration finishes the step if it has no duration and no delay.
func (b *StepBase) FinishIfZeroDuration() {
	if b.state.active() && b.duration == 0 && b.delay == 0 {
		b.Finish(false, ForceNone)
	}
}

// Finish ends the step, applying the end state according to cancelled,
// force and the step's own OnCancel policy.
func (b *StepBase) Finish(cancelled bool, force Force) {
	if b.state.terminal() {
		return
	}
	old := b.state
	b.state = StateFinished
	switch {
	case b.completes(cancelled, force):
		if old == StateWaitingToStart {
			b.hooks.onStart()
		}
		b.hooks.setToEnd()
	case old == StateWaitingToStart:
		b.hooks.cancelledWithNoComplete()
	}
	if b.onFinish != nil {
		b.onFinish(cancelled)
	}
}

// Cancel is Finish(true, force).
func (b *StepBase) Cancel(force Force) {
	b.Finish(true, force)
}

// completes reports whether finishing should snap to the end state.
func (b *StepBase) completes(cancelled bool, force Force) bool {
	if !cancelled {
		return true
	}
	if force != ForceNone {
		return force == ForceComplete
	}
	return b.onCancel == ForceComplete
}

// childForce resolves the force a composite passes to its children: an
// explicit force wins, then the composite's own policy, else none so each
// child applies its own.
func (b *StepBase) childForce(force Force) Force {
	if force != ForceNone {
		return force
	}
	return b.onCancel
}

// percent returns the progression of dt through the step's duration. The
// duration is padded so a zero-length step does not divide by zero.
func (b *StepBase) percent(p Progression, dt float64) float64 {
	return p.At(clamp01(dt / (b.duration + 0.000001)))
}
