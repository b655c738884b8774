package cadence

// Element is anything a leaf step can be bound to. Steps hold elements as
// weak references: they never dispose them, and a nil element turns a step
// into an instant no-op. Each leaf family asserts the narrower capability it
// animates and skips elements that lack it.
type Element any

// Positioner is an element whose 2D position can be animated.
type Positioner interface {
	Position() Vec2
	SetPosition(Vec2)
}

// Rotator is an element whose rotation (radians) can be animated.
type Rotator interface {
	Rotation() float64
	SetRotation(float64)
}

// Scaler is an element whose 2D scale can be animated.
type Scaler interface {
	Scale() Vec2
	SetScale(Vec2)
}

// Transformer is an element whose whole transform can be animated.
type Transformer interface {
	Transform() Transform
	SetTransform(Transform)
}

// Colorer is an element whose color can be animated.
type Colorer interface {
	Color() Color
	SetColor(Color)
}

// Opaquer is an element whose opacity multiplier can be animated.
type Opaquer interface {
	Opacity() float64
	SetOpacity(float64)
}

// Shower is an element that can be shown and hidden.
type Shower interface {
	IsShown() bool
	Show()
	Hide()
}

// Dimmer is an element with a dim color and a default (undimmed) color.
type Dimmer interface {
	Colorer
	DimColor() Color
	DefaultColor() Color
}

// Pulser is an element that runs its own pulse oscillation.
type Pulser interface {
	Pulse(PulseConfig)
	StopPulsing()
}

// ScenarioProvider is an element with named snapshots of its transform,
// color and visibility.
type ScenarioProvider interface {
	Transformer
	Colorer
	Opaquer
	Shower
	ScenarioTarget(name string) (Scenario, bool)
	CurrentScenario() Scenario
}

// Disposable elements report when they have been destroyed. Steps bound to a
// disposed element behave as if they had no element.
type Disposable interface {
	IsDisposed() bool
}

// Scenario is a named snapshot of an element's transform, color and
// visibility. Unset fields are left as they are.
type Scenario struct {
	Transform Opt[Transform]
	Color     Opt[Color]
	IsShown   Opt[bool]
}

// PulseConfig is what an element receives from a pulse step.
type PulseConfig struct {
	Duration  float64
	Scale     float64
	Frequency float64
	// Progression shapes the pulse envelope over its duration.
	Progression Progression
	// Stop is true when the step will stop the pulse itself at its end.
	Stop bool
}

// live returns e unless it is nil or disposed.
func live(e Element) Element {
	if e == nil {
		return nil
	}
	if d, ok := e.(Disposable); ok && d.IsDisposed() {
		return nil
	}
	return e
}

// as returns e as capability T when e is live and implements it.
func as[T any](e Element) (T, bool) {
	var zero T
	e = live(e)
	if e == nil {
		return zero, false
	}
	t, ok := e.(T)
	return t, ok
}
