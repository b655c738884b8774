package cadence

// Builder is a Serial step with fluent methods that append steps for its
// default element. Managers hand out builders from New and AddTo:
//
//	m.New("intro").
//		DissolveIn(cadence.OpacityOptions{}).
//		Position(cadence.PositionOptions{Target: cadence.Some(cadence.Vec2{X: 100})}).
//		WhenFinished(done).
//		Start()
type Builder struct {
	Serial
	binder
	whenFinished []func()
	ifCancelled  []func()
	finishFns    []func(cancelled bool)
}

// NewBuilder creates a standalone builder whose steps default to el.
func NewBuilder(el Element, name string) *Builder {
	return newBuilder(binder{element: el}, name)
}

func newBuilder(b binder, name string) *Builder {
	bl := &Builder{binder: b}
	bl.init(StepOptions{Name: name}, nil)
	bl.onFinish = bl.finished
	return bl
}

func (b *Builder) finished(cancelled bool) {
	fns := b.whenFinished
	if cancelled {
		fns = b.ifCancelled
	}
	for _, fn := range fns {
		fn()
	}
	for _, fn := range b.finishFns {
		fn(cancelled)
	}
}

// SetOnFinish adds fn to the callbacks run when the sequence ends. Unlike
// StepBase.SetOnFinish it keeps the WhenFinished and IfCancelled callbacks.
func (b *Builder) SetOnFinish(fn func(cancelled bool)) {
	b.finishFns = append(b.finishFns, fn)
}

// Then appends step.
func (b *Builder) Then(step Step) *Builder {
	b.Serial.Then(step)
	return b
}

// InParallel appends a Parallel of steps.
func (b *Builder) InParallel(steps ...Step) *Builder {
	return b.Then(NewParallel(StepOptions{}, steps...))
}

// Position appends a position step.
func (b *Builder) Position(o PositionOptions) *Builder { return b.Then(b.binder.Position(o)) }

// Rotation appends a rotation step.
func (b *Builder) Rotation(o RotationOptions) *Builder { return b.Then(b.binder.Rotation(o)) }

// Scale appends a scale step.
func (b *Builder) Scale(o ScaleOptions) *Builder { return b.Then(b.binder.Scale(o)) }

// Transform appends a transform step.
func (b *Builder) Transform(o TransformOptions) *Builder { return b.Then(b.binder.Transform(o)) }

// Color appends a color step.
func (b *Builder) Color(o ColorOptions) *Builder { return b.Then(b.binder.Color(o)) }

// Opacity appends an opacity step.
func (b *Builder) Opacity(o OpacityOptions) *Builder { return b.Then(b.binder.Opacity(o)) }

// DissolveIn appends a dissolve-in step.
func (b *Builder) DissolveIn(o OpacityOptions) *Builder { return b.Then(b.binder.DissolveIn(o)) }

// DissolveOut appends a dissolve-out step.
func (b *Builder) DissolveOut(o OpacityOptions) *Builder { return b.Then(b.binder.DissolveOut(o)) }

// Dim appends a dim step.
func (b *Builder) Dim(o ColorOptions) *Builder { return b.Then(b.binder.Dim(o)) }

// Undim appends an undim step.
func (b *Builder) Undim(o ColorOptions) *Builder { return b.Then(b.binder.Undim(o)) }

// Pulse appends a pulse step.
func (b *Builder) Pulse(o PulseOptions) *Builder { return b.Then(b.binder.Pulse(o)) }

// Scenario appends a step to the named scenario.
func (b *Builder) Scenario(target string, o ScenarioOptions) *Builder {
	o.Target = target
	return b.Then(b.binder.Scenario(o))
}

// Custom appends a custom step.
func (b *Builder) Custom(o CustomOptions) *Builder { return b.Then(NewCustom(o)) }

// Delay appends a pause of seconds.
func (b *Builder) Delay(seconds float64) *Builder { return b.Then(NewDelay(seconds)) }

// Trigger appends a step that calls fn once.
func (b *Builder) Trigger(fn func()) *Builder {
	return b.Then(NewTrigger(TriggerOptions{Callback: fn}))
}

// WhenFinished registers fn to run when the sequence ends without being
// cancelled.
func (b *Builder) WhenFinished(fn func()) *Builder {
	b.whenFinished = append(b.whenFinished, fn)
	return b
}

// IfCancelled registers fn to run when the sequence is cancelled.
func (b *Builder) IfCancelled(fn func()) *Builder {
	b.ifCancelled = append(b.ifCancelled, fn)
	return b
}

// OnCancel sets the policy applied to the whole sequence when it is
// cancelled without an explicit force.
func (b *Builder) OnCancel(f Force) *Builder {
	b.SetOnCancel(f)
	return b
}

// KeepOnFinish stops the manager from dropping the sequence once it ends.
func (b *Builder) KeepOnFinish() *Builder {
	b.keepOnFinish = true
	return b
}
