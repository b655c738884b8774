package cadence

import "math"

const twoPi = 2 * math.Pi

// RotationDirection selects the path a rotation takes from start to target.
type RotationDirection int8

const (
	RotateShortest    RotationDirection = 0  // shortest angular path
	RotateCCW         RotationDirection = 1  // always counter-clockwise (positive)
	RotateCW          RotationDirection = -1 // always clockwise (negative)
	RotateNoZeroCross RotationDirection = 2  // the path that does not cross angle zero
)

// ClipRange limits the range a written rotation is wrapped into.
type ClipRange uint8

const (
	ClipNone        ClipRange = iota // write the raw value
	Clip0To360                       // [0, 2π)
	ClipNeg180To180                  // [-π, π)
	ClipNeg360To0                    // (-2π, 0]
	ClipNeg360To360                  // (-2π, 2π)
)

// ParseClipRange maps the textual form used in scripts ("0to360",
// "-180to180", "-360to0", "-360to360") to a ClipRange. Unknown text is
// ClipNone.
func ParseClipRange(s string) ClipRange {
	switch s {
	case "0to360":
		return Clip0To360
	case "-180to180":
		return ClipNeg180To180
	case "-360to0":
		return ClipNeg360To0
	case "-360to360":
		return ClipNeg360To360
	default:
		return ClipNone
	}
}

// ClipAngle wraps angle into the given range.
func ClipAngle(angle float64, clip ClipRange) float64 {
	if clip == ClipNone {
		return angle
	}
	a := math.Mod(angle, twoPi)
	switch clip {
	case Clip0To360:
		if a < 0 {
			a += twoPi
		}
		if a >= twoPi {
			a -= twoPi
		}
	case ClipNeg180To180:
		if a < -math.Pi {
			a += twoPi
		}
		if a >= math.Pi {
			a -= twoPi
		}
	case ClipNeg360To0:
		if a > 0 {
			a -= twoPi
		}
		if a <= -twoPi {
			a += twoPi
		}
	}
	return a
}

// NormAngle wraps angle into [0, 2π).
func NormAngle(angle float64) float64 {
	return ClipAngle(angle, Clip0To360)
}

// MinAngleDiff returns the signed smallest difference a - b in (-π, π].
func MinAngleDiff(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Atan2(math.Sin(a-b), math.Cos(a-b))
}

// DeltaAngle returns the rotation that takes start to target following dir.
// Both angles are normalized first, so the result is always within one turn.
func DeltaAngle(start, target float64, dir RotationDirection) float64 {
	s := NormAngle(start)
	t := NormAngle(target)
	if s == t {
		return 0
	}
	if dir == RotateNoZeroCross {
		if s > t {
			dir = RotateCW
		} else {
			dir = RotateCCW
		}
	}
	switch {
	case dir == RotateShortest:
		return MinAngleDiff(t, s)
	case dir == RotateCCW && s > t:
		return twoPi - s + t
	case dir == RotateCW && t > s:
		return -s - (twoPi - t)
	}
	return t - s
}

// rotationDelta is the delta used by rotation steps: a plain difference when
// no direction is set, DeltaAngle otherwise.
func rotationDelta(start, target float64, dir Opt[RotationDirection]) float64 {
	d, ok := dir.Get()
	if !ok {
		return target - start
	}
	return DeltaAngle(start, target, d)
}
