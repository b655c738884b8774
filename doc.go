// Package cadence is a tick-driven animation step scheduler.
//
// Animations are built from steps. Leaf steps change one property of an
// element over time (position, rotation, scale, whole transform, color,
// opacity, pulse, named scenario) or run code (custom, trigger, delay).
// [Serial] and [Parallel] compose steps into trees, and a [Manager] owns the
// top-level sequences of an element and drives them from a clock you supply.
// Nothing reads the wall clock: every call takes "now" in seconds.
//
// # Quick start
//
//	scene := cadence.NewScene()
//	hero := cadence.NewNode("hero")
//	scene.Root().AddChild(hero)
//
//	hero.Animations().New("intro").
//		DissolveIn(cadence.OpacityOptions{}).
//		Position(cadence.PositionOptions{
//			StepOptions: cadence.StepOptions{Duration: 0.5},
//			Target:      cadence.Some(cadence.Vec2{X: 200, Y: 120}),
//			Progression: cadence.EaseInOut,
//		}).
//		Start()
//
//	// each frame:
//	scene.Tick(now)
//
// # Elements
//
// Steps are bound to an [Element] and use only the capabilities it offers:
// a position step needs a [Positioner], a color step a [Colorer], and so on.
// An element without the capability, a nil element, or a disposed
// [Disposable] turns the step into an instant no-op. [Node] implements every
// capability.
//
// # Durations
//
// A step's duration is resolved when it starts. Velocity options derive it
// from the distance to travel, MaxDuration caps it, and Delay postpones the
// first frame. A step finishes on the first frame at or past its end and
// reports how far it overshot, so [Serial] hands the overshoot to the next
// child and no time is lost between steps.
//
// # Cancellation
//
// Cancelling a step either snaps it to its end value ([ForceComplete]) or
// leaves the last interpolated value ([ForceFreeze]). An explicit force
// passed to Cancel wins; otherwise the step's own OnCancel policy applies,
// and composites pass their policy down to their children.
//
// # Scripts
//
// [LoadScript] reads scenarios and sequences from YAML. Callbacks named in
// scripts are resolved through a [Registry], and progressions by name
// through [ProgressionByName].
package cadence
