package cadence

import colorful "github.com/lucasb-eyer/go-colorful"

// ColorSpace selects the space RGB channels are interpolated in. Alpha is
// always interpolated linearly.
type ColorSpace uint8

const (
	SpaceRGB ColorSpace = iota // per-channel linear
	SpaceHCL                   // hue, chroma, lightness
	SpaceLab                   // CIE L*a*b*
	SpaceLuv                   // CIE L*u*v*
)

// ParseColorSpace maps "rgb", "hcl", "lab" and "luv" to a ColorSpace.
// Anything else is SpaceRGB.
func ParseColorSpace(s string) ColorSpace {
	switch s {
	case "hcl":
		return SpaceHCL
	case "lab":
		return SpaceLab
	case "luv":
		return SpaceLuv
	default:
		return SpaceRGB
	}
}

// DissolveMode turns a color or opacity step into a fade in or out.
type DissolveMode uint8

const (
	DissolveNone DissolveMode = iota
	DissolveIn                // show, then fade up from transparent
	DissolveOut               // fade down to transparent, then hide
)

// dissolveAlpha stands in for fully transparent. Some renderers skip
// drawing and layout for a literal zero.
const dissolveAlpha = 0.001

// ColorOptions configure a ColorStep.
type ColorOptions struct {
	StepOptions
	Element     Element
	Progression Progression

	Start  Opt[Color]
	Delta  Opt[Color]
	Target Opt[Color]
	// Velocity is the largest channel change per second.
	Velocity    Opt[float64]
	MaxDuration Opt[float64]
	Dissolve    DissolveMode
	Space       ColorSpace

	dim dimMode
}

type dimMode uint8

const (
	dimNone dimMode = iota
	dimToDim
	dimToDefault
)

// ColorStep animates an element's color.
type ColorStep struct {
	elementStep
	opts ColorOptions

	start, delta, target Color
	resolved             bool
}

// NewColor creates a color step.
func NewColor(o ColorOptions) *ColorStep {
	s := &ColorStep{opts: o}
	s.initElement(o.StepOptions, o.Element, o.Progression, Linear, o.MaxDuration, s)
	return s
}

// NewDim creates a step that fades an element to its dim color. A zero
// Duration means one second; the step completes when cancelled unless
// OnCancel says otherwise.
func NewDim(o ColorOptions) *ColorStep {
	o.dim = dimToDim
	return NewColor(withFadeDefaults(o))
}

// NewUndim creates a step that fades an element back to its default color.
func NewUndim(o ColorOptions) *ColorStep {
	o.dim = dimToDefault
	return NewColor(withFadeDefaults(o))
}

func withFadeDefaults(o ColorOptions) ColorOptions {
	if o.Duration == 0 {
		o.Duration = 1
	}
	if o.OnCancel == ForceNone {
		o.OnCancel = ForceComplete
	}
	return o
}

func (s *ColorStep) onStart() {
	s.resetDuration()
	s.resolved = false
	el, ok := as[Colorer](s.element)
	if !ok {
		s.duration = 0
		return
	}
	s.start = s.opts.Start.Or(el.Color())
	switch {
	case s.opts.dim != dimNone:
		d, ok := as[Dimmer](s.element)
		if !ok {
			s.duration = 0
			return
		}
		if s.opts.dim == dimToDim {
			s.target = d.DimColor()
		} else {
			s.target = d.DefaultColor()
		}
	case s.opts.Dissolve == DissolveOut:
		s.target = s.start
		s.target.A = dissolveAlpha
	case s.opts.Dissolve == DissolveIn:
		s.target = s.start
		s.start.A = dissolveAlpha
		if sh, ok := as[Shower](s.element); ok {
			sh.Show()
		}
		el.SetColor(s.start)
	default:
		if d, ok := s.opts.Delta.Get(); ok {
			s.target = s.start.Add(d)
		} else if t, ok := s.opts.Target.Get(); ok {
			s.target = t
		} else {
			s.duration = 0
			return
		}
	}
	s.delta = s.target.Sub(s.start)
	s.resolved = true
	if v, ok := s.opts.Velocity.Get(); ok {
		s.applyVelocity(ScalarDuration(0, s.start.maxChannelDelta(s.target), v))
	} else {
		s.applyVelocity(0, false)
	}
}

func (s *ColorStep) setFrame(dt float64) {
	if el, ok := as[Colorer](s.element); ok && s.resolved {
		el.SetColor(s.at(s.progress(dt)))
	}
}

// at returns the color at progress p in the configured space.
func (s *ColorStep) at(p float64) Color {
	if s.opts.Space == SpaceRGB {
		return s.start.toDelta(s.delta, p)
	}
	a := colorful.Color{R: s.start.R, G: s.start.G, B: s.start.B}
	b := colorful.Color{R: s.target.R, G: s.target.G, B: s.target.B}
	var c colorful.Color
	switch s.opts.Space {
	case SpaceHCL:
		c = a.BlendHcl(b, p)
	case SpaceLab:
		c = a.BlendLab(b, p)
	case SpaceLuv:
		c = a.BlendLuv(b, p)
	}
	c = c.Clamped()
	return Color{c.R, c.G, c.B, clamp01(s.start.A + s.delta.A*p)}
}

func (s *ColorStep) setToEnd() {
	el, ok := as[Colorer](s.element)
	if !ok || !s.resolved {
		return
	}
	if s.opts.Dissolve == DissolveOut {
		if sh, ok := as[Shower](s.element); ok {
			sh.Hide()
		}
		end := s.target
		end.A = s.start.A
		el.SetColor(end)
		return
	}
	el.SetColor(s.target)
}

func (s *ColorStep) cancelledWithNoComplete() {}

// ParseColor parses "#rrggbb" or "#rgb" into an opaque Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	return Color{c.R, c.G, c.B, 1}, nil
}

// Hex formats the RGB channels of c as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}
