package cadence

import "math"

// ComponentKind identifies one entry of a Transform.
type ComponentKind uint8

const (
	KindScale     ComponentKind = iota // scale by (X, Y)
	KindRotate                         // rotate by X radians
	KindTranslate                      // translate by (X, Y)
)

// Component is one ordered entry of a Transform. Rotations store the angle
// in X.
type Component struct {
	Kind ComponentKind
	X, Y float64
}

// Transform is an ordered composite of scale, rotation and translation
// components applied first to last. Transforms are values: every method that
// changes a transform returns a new one.
type Transform struct {
	Components []Component
}

// DefaultTransform is the identity scale, rotate, translate transform every
// Node starts with.
func DefaultTransform() Transform {
	return Transform{}.Scale(1, 1).Rotate(0).Translate(0, 0)
}

// Scale returns t with a scale component appended.
func (t Transform) Scale(x, y float64) Transform {
	return t.with(Component{Kind: KindScale, X: x, Y: y})
}

// Rotate returns t with a rotation component appended.
func (t Transform) Rotate(r float64) Transform {
	return t.with(Component{Kind: KindRotate, X: r})
}

// Translate returns t with a translation component appended.
func (t Transform) Translate(x, y float64) Transform {
	return t.with(Component{Kind: KindTranslate, X: x, Y: y})
}

func (t Transform) with(c Component) Transform {
	out := make([]Component, len(t.Components), len(t.Components)+1)
	copy(out, t.Components)
	return Transform{Components: append(out, c)}
}

// Copy returns a deep copy of t.
func (t Transform) Copy() Transform {
	if t.Components == nil {
		return Transform{}
	}
	out := make([]Component, len(t.Components))
	copy(out, t.Components)
	return Transform{Components: out}
}

func (t Transform) index(kind ComponentKind) int {
	for i, c := range t.Components {
		if c.Kind == kind {
			return i
		}
	}
	return -1
}

// Translation returns the first translation component, or the zero vector.
func (t Transform) Translation() Vec2 {
	if i := t.index(KindTranslate); i >= 0 {
		return Vec2{t.Components[i].X, t.Components[i].Y}
	}
	return Vec2{}
}

// Rotation returns the first rotation component, or 0.
func (t Transform) Rotation() float64 {
	if i := t.index(KindRotate); i >= 0 {
		return t.Components[i].X
	}
	return 0
}

// Scaling returns the first scale component, or (1, 1).
func (t Transform) Scaling() Vec2 {
	if i := t.index(KindScale); i >= 0 {
		return Vec2{t.Components[i].X, t.Components[i].Y}
	}
	return Vec2{1, 1}
}

// WithTranslation returns t with its first translation component set to v.
// A translation is appended if t has none.
func (t Transform) WithTranslation(v Vec2) Transform {
	return t.set(Component{Kind: KindTranslate, X: v.X, Y: v.Y})
}

// WithRotation returns t with its first rotation component set to r.
func (t Transform) WithRotation(r float64) Transform {
	return t.set(Component{Kind: KindRotate, X: r})
}

// WithScaling returns t with its first scale component set to v.
func (t Transform) WithScaling(v Vec2) Transform {
	return t.set(Component{Kind: KindScale, X: v.X, Y: v.Y})
}

func (t Transform) set(c Component) Transform {
	i := t.index(c.Kind)
	if i < 0 {
		return t.with(c)
	}
	out := t.Copy()
	out.Components[i] = c
	return out
}

// IsSimilar reports whether t and o have the same component kinds in the
// same order.
func (t Transform) IsSimilar(o Transform) bool {
	if len(t.Components) != len(o.Components) {
		return false
	}
	for i := range t.Components {
		if t.Components[i].Kind != o.Components[i].Kind {
			return false
		}
	}
	return true
}

// Add returns the component-wise sum of two similar transforms.
func (t Transform) Add(o Transform) Transform {
	out := t.Copy()
	for i := range out.Components {
		if i >= len(o.Components) {
			break
		}
		out.Components[i].X += o.Components[i].X
		out.Components[i].Y += o.Components[i].Y
	}
	return out
}

// Sub returns the component-wise difference t - o of two similar transforms.
func (t Transform) Sub(o Transform) Transform {
	out := t.Copy()
	for i := range out.Components {
		if i >= len(o.Components) {
			break
		}
		out.Components[i].X -= o.Components[i].X
		out.Components[i].Y -= o.Components[i].Y
	}
	return out
}

// Constant returns a transform shaped like t with every value set to v.
// Used to broadcast a scalar velocity across all components.
func (t Transform) Constant(v float64) Transform {
	out := t.Copy()
	for i := range out.Components {
		out.Components[i].X = v
		out.Components[i].Y = v
	}
	return out
}

// deltaTo returns target - t, with rotation components following dir when
// it is set.
func (t Transform) deltaTo(target Transform, dir Opt[RotationDirection]) Transform {
	out := target.Sub(t)
	for i := range out.Components {
		if out.Components[i].Kind != KindRotate || i >= len(t.Components) {
			continue
		}
		out.Components[i].X = rotationDelta(t.Components[i].X, target.Components[i].X, dir)
	}
	return out
}

// toDelta returns t + delta*p. Translations follow path when it is curved.
func (t Transform) toDelta(delta Transform, p float64, path PathOptions) Transform {
	out := t.Copy()
	for i := range out.Components {
		if i >= len(delta.Components) {
			break
		}
		c := &out.Components[i]
		d := delta.Components[i]
		if c.Kind == KindTranslate {
			v := path.at(Vec2{c.X, c.Y}, Vec2{d.X, d.Y}, p)
			c.X, c.Y = v.X, v.Y
			continue
		}
		c.X += d.X * p
		c.Y += d.Y * p
	}
	return out
}

// clipRotation wraps every rotation component into clip.
func (t Transform) clipRotation(clip ClipRange) Transform {
	if clip == ClipNone {
		return t
	}
	out := t.Copy()
	for i := range out.Components {
		if out.Components[i].Kind == KindRotate {
			out.Components[i].X = ClipAngle(out.Components[i].X, clip)
		}
	}
	return out
}

// Matrix returns the affine matrix [a, b, c, d, tx, ty] that applies the
// components in order.
func (t Transform) Matrix() [6]float64 {
	m := identityTransform
	for _, c := range t.Components {
		var step [6]float64
		switch c.Kind {
		case KindScale:
			step = [6]float64{c.X, 0, 0, c.Y, 0, 0}
		case KindRotate:
			sin, cos := math.Sincos(c.X)
			step = [6]float64{cos, sin, -sin, cos, 0, 0}
		case KindTranslate:
			step = [6]float64{1, 0, 0, 1, c.X, c.Y}
		}
		m = multiplyAffine(step, m)
	}
	return m
}

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// TransformPoint applies an affine matrix to a point.
func TransformPoint(m [6]float64, p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}
