package cadence

import (
	"fmt"
	"math"
	"sync"

	fease "github.com/fogleman/ease"
	"github.com/tanema/gween/ease"
)

// Progression maps a normalized time fraction in [0, 1] to a normalized
// progress fraction. The zero value is linear.
type Progression struct {
	Name    string
	fn      func(t float64) float64
	inverse func(p float64) float64
}

// NewProgression wraps fn as a named progression. fn should be monotonic
// over [0, 1] for Inverse to be meaningful.
func NewProgression(name string, fn func(t float64) float64) Progression {
	return Progression{Name: name, fn: fn}
}

// FromTween adapts a gween easing function to a Progression.
func FromTween(name string, fn ease.TweenFunc) Progression {
	return Progression{Name: name, fn: func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}}
}

// At returns the progress at time fraction t.
func (p Progression) At(t float64) float64 {
	if p.fn == nil {
		return t
	}
	return p.fn(t)
}

// Inverse returns the time fraction at which progress reaches v. Built-in
// curves invert analytically; others are inverted by bisection.
func (p Progression) Inverse(v float64) float64 {
	if p.fn == nil {
		return v
	}
	if p.inverse != nil {
		return p.inverse(v)
	}
	lo, hi := 0.0, 1.0
	for range 60 {
		mid := (lo + hi) / 2
		if p.fn(mid) < v {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// Built-in progressions.
var (
	Linear    = Progression{Name: "linear"}
	EaseInOut = Progression{Name: "easeinout", fn: easeInOut, inverse: easeInOutInverse}
	EaseIn    = Progression{Name: "easein", fn: easeIn, inverse: easeInInverse}
	EaseOut   = Progression{Name: "easeout", fn: easeOut, inverse: easeOutInverse}
)

func easeInOut(x float64) float64 {
	x2 := x * x
	return x2 / (x2 + (1-x)*(1-x))
}

func easeInOutInverse(a float64) float64 {
	if a == 0.5 {
		return 0.5
	}
	return (2*a - math.Sqrt(-4*a*a+4*a)) / (4*a - 2)
}

func easeIn(t float64) float64 {
	return 2 * easeInOut(t/2)
}

func easeInInverse(p float64) float64 {
	if p >= 1 {
		return 1
	}
	return 2 * easeInOutInverse(p/2)
}

func easeOut(t float64) float64 {
	return (easeInOut(0.5+t/2) - 0.5) * 2
}

func easeOutInverse(p float64) float64 {
	if p <= 0 {
		return 0
	}
	return (easeInOutInverse(p/2+0.5) - 0.5) * 2
}

// Sinusoid returns bias + magnitude*sin(t*frequency*2π + phase). It is a
// function of elapsed seconds, not of a time fraction, and drives pulses.
func Sinusoid(t, frequency, bias, magnitude, phase float64) float64 {
	return bias + magnitude*math.Sin(t*frequency*twoPi+phase)
}

var (
	progressionMu sync.RWMutex
	progressions  = map[string]Progression{}
)

// RegisterProgression makes p available to ProgressionByName and to
// scripts. Panics if the name is empty or already registered.
func RegisterProgression(p Progression) {
	if p.Name == "" {
		panic("cadence: progression name is empty")
	}
	progressionMu.Lock()
	defer progressionMu.Unlock()
	if _, dup := progressions[p.Name]; dup {
		panic(fmt.Sprintf("cadence: progression %q already registered", p.Name))
	}
	progressions[p.Name] = p
}

// ProgressionByName returns a registered progression.
func ProgressionByName(name string) (Progression, bool) {
	progressionMu.RLock()
	defer progressionMu.RUnlock()
	p, ok := progressions[name]
	return p, ok
}

func init() {
	for _, p := range []Progression{Linear, EaseInOut, EaseIn, EaseOut} {
		RegisterProgression(p)
	}

	// Penner curves.
	penner := map[string]func(float64) float64{
		"inQuad": fease.InQuad, "outQuad": fease.OutQuad, "inOutQuad": fease.InOutQuad,
		"inCubic": fease.InCubic, "outCubic": fease.OutCubic, "inOutCubic": fease.InOutCubic,
		"inQuart": fease.InQuart, "outQuart": fease.OutQuart, "inOutQuart": fease.InOutQuart,
		"inQuint": fease.InQuint, "outQuint": fease.OutQuint, "inOutQuint": fease.InOutQuint,
		"inSine": fease.InSine, "outSine": fease.OutSine, "inOutSine": fease.InOutSine,
		"inExpo": fease.InExpo, "outExpo": fease.OutExpo, "inOutExpo": fease.InOutExpo,
		"inCirc": fease.InCirc, "outCirc": fease.OutCirc, "inOutCirc": fease.InOutCirc,
		"inElastic": fease.InElastic, "outElastic": fease.OutElastic, "inOutElastic": fease.InOutElastic,
		"inBack": fease.InBack, "outBack": fease.OutBack, "inOutBack": fease.InOutBack,
		"inBounce": fease.InBounce, "outBounce": fease.OutBounce, "inOutBounce": fease.InOutBounce,
	}
	for name, fn := range penner {
		RegisterProgression(NewProgression(name, fn))
	}

	// Out-in curves only exist in gween.
	outIn := map[string]ease.TweenFunc{
		"outInQuad": ease.OutInQuad, "outInCubic": ease.OutInCubic,
		"outInQuart": ease.OutInQuart, "outInQuint": ease.OutInQuint,
		"outInSine": ease.OutInSine, "outInExpo": ease.OutInExpo,
		"outInCirc": ease.OutInCirc, "outInElastic": ease.OutInElastic,
		"outInBack": ease.OutInBack, "outInBounce": ease.OutInBounce,
	}
	for name, fn := range outIn {
		RegisterProgression(FromTween(name, fn))
	}
}
