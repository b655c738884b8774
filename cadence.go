package cadence

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default element color.
var ColorWhite = Color{1, 1, 1, 1}

// Add returns the channel-wise sum of c and o, clamped to [0, 1].
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}.Clamped()
}

// Sub returns the channel-wise difference c - o. The result is not clamped
// because it is used as an interpolation delta.
func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A}
}

// Clamped returns c with every channel clamped to [0, 1].
func (c Color) Clamped() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// toDelta returns c + delta*p with every channel clamped to [0, 1].
func (c Color) toDelta(delta Color, p float64) Color {
	return Color{
		c.R + delta.R*p,
		c.G + delta.G*p,
		c.B + delta.B*p,
		c.A + delta.A*p,
	}.Clamped()
}

// maxChannelDelta returns the largest absolute channel difference between
// c and o.
func (c Color) maxChannelDelta(o Color) float64 {
	d := c.Sub(o)
	return math.Max(math.Max(math.Abs(d.R), math.Abs(d.G)), math.Max(math.Abs(d.B), math.Abs(d.A)))
}

// Vec2 is a 2D vector used for positions, scales and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// toDelta returns v + delta*p.
func (v Vec2) toDelta(delta Vec2, p float64) Vec2 {
	return Vec2{v.X + delta.X*p, v.Y + delta.Y*p}
}

// Opt is an optional value. The zero value is unset; Some binds a value.
// Options use Opt wherever "unset" carries meaning, for example a step start
// value that should be captured from the element when the step starts.
type Opt[T any] struct {
	v  T
	ok bool
}

// Some returns an Opt bound to v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{v: v, ok: true}
}

// Get returns the bound value and whether it is set.
func (o Opt[T]) Get() (T, bool) {
	return o.v, o.ok
}

// IsSet reports whether a value is bound.
func (o Opt[T]) IsSet() bool {
	return o.ok
}

// Or returns the bound value, or def when unset.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

// StepState is the lifecycle state of a Step.
type StepState uint8

const (
	StateIdle           StepState = iota // never started
	StateWaitingToStart                  // queued inside a composite, not yet running
	StateAnimating                       // running
	StateFinished                        // completed or cancelled
)

// String returns the state name.
func (s StepState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaitingToStart:
		return "waitingToStart"
	case StateAnimating:
		return "animating"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// terminal reports whether s is idle or finished.
func (s StepState) terminal() bool {
	return s == StateIdle || s == StateFinished
}

// active reports whether s is waiting or animating.
func (s StepState) active() bool {
	return s == StateWaitingToStart || s == StateAnimating
}

// Force selects how a cancelled step resolves its end state. As a step's
// OnCancel policy ForceNone means unset, ForceComplete means "complete on
// cancel" and ForceFreeze means "stay where interpolation left off".
type Force uint8

const (
	ForceNone     Force = iota // no explicit force; defer to policy
	ForceComplete              // snap to the end value
	ForceFreeze                // keep the last interpolated value
)

// String returns the force name.
func (f Force) String() string {
	switch f {
	case ForceComplete:
		return "complete"
	case ForceFreeze:
		return "freeze"
	default:
		return "none"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
