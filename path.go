package cadence

import "math"

// PathStyle selects how a translation travels from start to target.
type PathStyle uint8

const (
	PathLinear PathStyle = iota // straight line
	PathCurved                  // quadratic Bezier arc
)

// CurveSide forces the side of the line the curve's control point falls on.
type CurveSide uint8

const (
	CurveAny   CurveSide = iota // side given by Rot alone
	CurveUp                     // control point above the line
	CurveDown                   // control point below the line
	CurveLeft                   // control point left of the line
	CurveRight                  // control point right of the line
)

// PathOptions configure a translation path. The zero value is a straight
// line. For curved paths unset fields default to Magnitude 0.5, Offset 0.5
// and Rot 1.
type PathOptions struct {
	Style PathStyle

	// Magnitude is the control point distance from the line as a fraction
	// of the line length.
	Magnitude Opt[float64]
	// Offset is where along the line the control point sits (0 to 1).
	Offset Opt[float64]
	// Rot rotates the control point around the line in quarter turns.
	Rot Opt[float64]
	// ControlPoint overrides the computed control point.
	ControlPoint Opt[Vec2]
	Side         CurveSide
}

// at returns the point at progress p along the path from start by delta.
func (o PathOptions) at(start, delta Vec2, p float64) Vec2 {
	if o.Style != PathCurved {
		return start.toDelta(delta, p)
	}
	cp, ok := o.ControlPoint.Get()
	if !ok {
		cp = o.controlPoint(start, delta)
	}
	end := start.Add(delta)
	return Vec2{
		quadraticBezier(start.X, cp.X, end.X, p),
		quadraticBezier(start.Y, cp.Y, end.Y, p),
	}
}

func (o PathOptions) controlPoint(start, delta Vec2) Vec2 {
	offset := o.Offset.Or(0.5)
	angle := math.Atan2(delta.Y, delta.X)
	mid := start.Add(delta.Scale(offset))
	dist := delta.Len() * o.Magnitude.Or(0.5)

	theta := angle + o.Rot.Or(1)*math.Pi/2
	xd, yd := math.Cos(theta), math.Sin(theta)
	switch o.Side {
	case CurveUp:
		if yd < 0 {
			yd = math.Sin(theta + math.Pi)
		}
	case CurveDown:
		if yd > 0 {
			yd = math.Sin(theta + math.Pi)
		}
	case CurveLeft:
		if xd > 0 {
			xd = math.Cos(theta + math.Pi)
		}
	case CurveRight:
		if xd < 0 {
			xd = math.Cos(theta + math.Pi)
		}
	}
	return Vec2{mid.X + dist*xd, mid.Y + dist*yd}
}

func quadraticBezier(p0, p1, p2, t float64) float64 {
	return (1-t)*((1-t)*p0+t*p1) + t*((1-t)*p1+t*p2)
}
