package cadence

import "math"

// EstimateDuration returns the time needed to move from start to target when
// no component may exceed its velocity. Each dimension of each component is
// timed separately and the slowest wins, so every component arrives together.
// Rotation deltas follow dir before the division. Components with zero
// velocity are unconstrained; ok is false when no component had a velocity,
// in which case callers keep their authored duration.
func EstimateDuration(start, target, velocity Transform, dir Opt[RotationDirection]) (d float64, ok bool) {
	n := min(len(start.Components), len(target.Components), len(velocity.Components))
	for i := range n {
		s := start.Components[i]
		t := target.Components[i]
		v := velocity.Components[i]
		switch s.Kind {
		case KindRotate:
			if v.X == 0 {
				continue
			}
			d = math.Max(d, math.Abs(rotationDelta(s.X, t.X, dir))/math.Abs(v.X))
			ok = true
		default:
			if v.X != 0 {
				d = math.Max(d, math.Abs(t.X-s.X)/math.Abs(v.X))
				ok = true
			}
			if v.Y != 0 {
				d = math.Max(d, math.Abs(t.Y-s.Y)/math.Abs(v.Y))
				ok = true
			}
		}
	}
	return d, ok
}

// ScalarDuration is EstimateDuration for a single value.
func ScalarDuration(start, target, velocity float64) (float64, bool) {
	if velocity == 0 {
		return 0, false
	}
	return math.Abs(target-start) / math.Abs(velocity), true
}

// Vec2Duration is EstimateDuration for a 2D point with a per-axis velocity.
func Vec2Duration(start, target, velocity Vec2) (float64, bool) {
	s := Transform{}.Translate(start.X, start.Y)
	t := Transform{}.Translate(target.X, target.Y)
	v := Transform{}.Translate(velocity.X, velocity.Y)
	return EstimateDuration(s, t, v, Opt[RotationDirection]{})
}
