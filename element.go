package cadence

// elementStep is the common part of leaf steps bound to an element.
type elementStep struct {
	StepBase
	element     Element
	progression Progression
	authored    float64
	maxDuration Opt[float64]
}

func (e *elementStep) initElement(o StepOptions, el Element, p Progression, def Progression, maxDuration Opt[float64], hooks stepHooks) {
	e.init(o, hooks)
	e.element = el
	e.progression = p.or(def)
	e.authored = e.duration
	e.maxDuration = maxDuration
}

// Element returns the bound element.
func (e *elementStep) Element() Element { return e.element }

// resetDuration restores the authored duration before a run resolves its own.
func (e *elementStep) resetDuration() {
	e.duration = e.authored
}

// applyVelocity overrides the duration with a velocity-derived one, then
// clamps it to the maximum duration.
func (e *elementStep) applyVelocity(d float64, ok bool) {
	if ok {
		e.duration = d
	}
	if m, set := e.maxDuration.Get(); set && e.duration > m {
		e.duration = m
	}
}

// alive reports whether the bound element still exists.
func (e *elementStep) alive() bool {
	return live(e.element) != nil
}

// progress returns the eased progress dt seconds into the step.
func (e *elementStep) progress(dt float64) float64 {
	return e.percent(e.progression, dt)
}

func (p Progression) isZero() bool {
	return p.Name == "" && p.fn == nil
}

func (p Progression) or(def Progression) Progression {
	if p.isZero() {
		return def
	}
	return p
}
