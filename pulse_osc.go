package cadence

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// pulseSettleDuration is how long a stopped pulse takes to ease back to 1.
const pulseSettleDuration = 0.15

// pulseOsc drives a node's pulse: the scale multiplier oscillates between 1
// and the configured scale, and when stopped a gween tween eases it back to
// 1. Nodes advance it by Scene.Tick's frame delta.
type pulseOsc struct {
	cfg     PulseConfig
	elapsed float64
	factor  float64
	running bool
	settle  *gween.Tween
}

func (p *pulseOsc) start(cfg PulseConfig) {
	if cfg.Duration <= 0 {
		cfg.Duration = 1
	}
	p.cfg = cfg
	p.elapsed = 0
	p.factor = 1
	p.running = true
	p.settle = nil
}

// stop begins easing back to rest from the current factor.
func (p *pulseOsc) stop() {
	if !p.running {
		return
	}
	p.running = false
	if math.Abs(p.factor-1) < 1e-9 {
		p.factor = 1
		return
	}
	p.settle = gween.New(float32(p.factor), 1, pulseSettleDuration, ease.OutQuad)
}

func (p *pulseOsc) active() bool {
	return p.running || p.settle != nil
}

func (p *pulseOsc) value() float64 {
	if !p.active() {
		return 1
	}
	return p.factor
}

// update advances the pulse by dt seconds.
func (p *pulseOsc) update(dt float64) {
	if p.settle != nil {
		v, done := p.settle.Update(float32(dt))
		p.factor = float64(v)
		if done {
			p.settle = nil
			p.factor = 1
		}
		return
	}
	if !p.running {
		return
	}
	p.elapsed += dt
	p.factor = 1 + (p.cfg.Scale-1)*p.amplitude()
	// A single pulse that ran its course ends by itself.
	if p.cfg.Frequency == 0 && p.elapsed >= p.cfg.Duration {
		p.running = false
		p.factor = 1
	}
}

// amplitude is the oscillation in [0, 1] at the current time. With no
// frequency it is one half-sine over the whole duration; otherwise it is a
// raised sinusoid starting at 0.
func (p *pulseOsc) amplitude() float64 {
	if p.cfg.Frequency == 0 {
		u := clamp01(p.elapsed / p.cfg.Duration)
		if !p.cfg.Progression.isZero() {
			u = p.cfg.Progression.At(u)
		}
		return math.Sin(math.Pi * u)
	}
	return Sinusoid(p.elapsed, p.cfg.Frequency, 0.5, 0.5, -math.Pi/2)
}
