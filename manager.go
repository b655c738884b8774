package cadence

import (
	"math"
	"slices"
	"strings"
)

// NoStopPrefix marks sequences that CancelAll leaves running unless forced.
const NoStopPrefix = "_noStop_"

// binder fills in the element of steps created without one.
type binder struct {
	element  Element
	elements []Element
}

// each builds one step for el, or for the default element, or, when several
// default elements are set, one per element grouped in a Parallel. The
// group takes over the name and the callbacks of so.
func (b *binder) each(el Element, so *StepOptions, mk func(Element) Step) Step {
	if el != nil {
		return mk(el)
	}
	if len(b.elements) == 0 {
		return mk(b.element)
	}
	group := NewParallel(StepOptions{
		Name:         so.Name,
		OnCancel:     so.OnCancel,
		OnFinish:     so.OnFinish,
		KeepOnFinish: so.KeepOnFinish,
	})
	so.Name, so.OnFinish = "", nil
	for _, e := range b.elements {
		group.With(mk(e))
	}
	return group
}

// Position creates a position step for the default element(s).
func (b *binder) Position(o PositionOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewPosition(o)
	})
}

// Rotation creates a rotation step for the default element(s).
func (b *binder) Rotation(o RotationOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewRotation(o)
	})
}

// Scale creates a scale step for the default element(s).
func (b *binder) Scale(o ScaleOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewScale(o)
	})
}

// Transform creates a transform step for the default element(s).
func (b *binder) Transform(o TransformOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewTransform(o)
	})
}

// Color creates a color step for the default element(s).
func (b *binder) Color(o ColorOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewColor(o)
	})
}

// Opacity creates an opacity step for the default element(s).
func (b *binder) Opacity(o OpacityOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewOpacity(o)
	})
}

// DissolveIn creates a dissolve-in step for the default element(s).
func (b *binder) DissolveIn(o OpacityOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewDissolveIn(o)
	})
}

// DissolveOut creates a dissolve-out step for the default element(s).
func (b *binder) DissolveOut(o OpacityOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewDissolveOut(o)
	})
}

// Dim creates a dim step for the default element(s).
func (b *binder) Dim(o ColorOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewDim(o)
	})
}

// Undim creates an undim step for the default element(s).
func (b *binder) Undim(o ColorOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewUndim(o)
	})
}

// Pulse creates a pulse step for the default element(s).
func (b *binder) Pulse(o PulseOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewPulse(o)
	})
}

// Scenario creates a scenario step for the default element(s).
func (b *binder) Scenario(o ScenarioOptions) Step {
	return b.each(o.Element, &o.StepOptions, func(el Element) Step {
		o.Element = el
		return NewScenario(o)
	})
}

// Delay creates a delay step.
func (b *binder) Delay(seconds float64) Step { return NewDelay(seconds) }

// Trigger creates a trigger step.
func (b *binder) Trigger(o TriggerOptions) Step { return NewTrigger(o) }

// Custom creates a custom step.
func (b *binder) Custom(o CustomOptions) Step { return NewCustom(o) }

// Manager owns the top-level sequences of one element and drives them from
// a single clock. Time speed and pause are applied by the manager through a
// virtual clock, so steps only ever see virtual seconds.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	binder
	Name string

	seqs []Step
	// scratch is reused by NextFrame to iterate a stable snapshot.
	scratch []Step

	speed      float64
	paused     bool
	anchored   bool
	anchorReal float64
	anchorVirt float64
	lastReal   float64

	animating bool
	subs      []subscription
	nextSubID int
	debug     bool
}

type subscription struct {
	id int
	fn func()
}

// NewManager creates a manager whose step factories default to el.
func NewManager(el Element) *Manager {
	return &Manager{binder: binder{element: el}, speed: 1}
}

// Element returns the default element.
func (m *Manager) Element() Element { return m.element }

// SetElements makes step factories build one step per element, grouped in a
// Parallel. Passing nothing restores the single default element.
func (m *Manager) SetElements(els ...Element) {
	m.elements = els
}

// SetDebug turns on logging of sequence completions.
func (m *Manager) SetDebug(on bool) { m.debug = on }

func (m *Manager) virtualAt(now float64) float64 {
	if !m.anchored {
		m.anchored = true
		m.anchorReal, m.anchorVirt, m.lastReal = now, now, now
	}
	if m.paused {
		return m.anchorVirt
	}
	return m.anchorVirt + (now-m.anchorReal)*m.speed
}

// reanchor pins the virtual clock at the last real time seen.
func (m *Manager) reanchor() {
	if !m.anchored {
		return
	}
	m.anchorVirt = m.virtualAt(m.lastReal)
	m.anchorReal = m.lastReal
}

// SetTimeSpeed scales how fast virtual time runs relative to the clock
// passed to NextFrame. The change applies from the last NextFrame time.
// Negative speeds are treated as 0.
func (m *Manager) SetTimeSpeed(speed float64) {
	m.reanchor()
	m.speed = max(speed, 0)
}

// TimeSpeed returns the current time speed.
func (m *Manager) TimeSpeed() float64 { return m.speed }

// Pause freezes virtual time as of the last NextFrame.
func (m *Manager) Pause() {
	if m.paused {
		return
	}
	m.reanchor()
	m.paused = true
}

// Resume continues virtual time from where Pause froze it.
func (m *Manager) Resume() {
	if !m.paused {
		return
	}
	m.paused = false
	m.anchorReal = m.lastReal
}

// virtualDelta converts a clock interval into virtual seconds.
func (m *Manager) virtualDelta(dt float64) float64 {
	if m.paused {
		return 0
	}
	return dt * m.speed
}

// Paused reports whether the manager is paused.
func (m *Manager) Paused() bool { return m.paused }

// New creates a named sequence and adds it to the manager. Several
// sequences may share a name; Start and Cancel act on all of them.
func (m *Manager) New(name string) *Builder {
	b := newBuilder(m.binder, name)
	m.seqs = append(m.seqs, b)
	return b
}

// NewFromStep adds step as a sequence and returns it.
func (m *Manager) NewFromStep(step Step) Step {
	if step == nil {
		panic("cadence: nil step")
	}
	m.seqs = append(m.seqs, step)
	return step
}

// AddTo returns the first sequence builder named name, creating it if
// needed.
func (m *Manager) AddTo(name string) *Builder {
	if b, ok := m.Get(name).(*Builder); ok {
		return b
	}
	return m.New(name)
}

// Get returns the first sequence named name, or nil.
func (m *Manager) Get(name string) Step {
	for _, s := range m.seqs {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// Sequences returns the sequences. The returned slice MUST NOT be mutated.
func (m *Manager) Sequences() []Step { return m.seqs }

// Remove cancels every sequence named name without forcing and drops them,
// whatever their KeepOnFinish setting.
func (m *Manager) Remove(name string) {
	m.noteAnimating()
	for _, s := range m.matching(name) {
		s.Cancel(ForceNone)
	}
	m.seqs = slices.DeleteFunc(m.seqs, func(s Step) bool { return s.Name() == name })
	m.setAnimating(m.IsAnimating())
}

// matching returns the sequences named name in a slice the caller may hold
// while callbacks change the manager.
func (m *Manager) matching(name string) []Step {
	var out []Step
	for _, s := range m.seqs {
		if s.Name() == name {
			out = append(out, s)
		}
	}
	return out
}

// Start starts every sequence named name that is not already running. It
// reports whether any sequence was found.
func (m *Manager) Start(name string) bool {
	seqs := m.matching(name)
	for _, s := range seqs {
		m.startSeq(s)
	}
	return len(seqs) > 0
}

// StartAll starts every sequence that is not already running.
func (m *Manager) StartAll() {
	for _, s := range m.seqs {
		m.startSeq(s)
	}
}

func (m *Manager) startSeq(s Step) {
	if s.State() == StateAnimating {
		return
	}
	s.Start()
	s.FinishIfZeroDuration()
	if s.State().active() {
		m.animating = true
	}
}

// Cancel cancels every sequence named name, then drops the finished ones.
func (m *Manager) Cancel(name string, force Force) {
	m.noteAnimating()
	for _, s := range m.matching(name) {
		s.Cancel(force)
	}
	m.clean()
}

// CancelAll cancels every sequence. Sequences named with NoStopPrefix are
// skipped unless force is set.
func (m *Manager) CancelAll(force Force) {
	m.noteAnimating()
	for _, s := range m.seqs {
		if force == ForceNone && strings.HasPrefix(s.Name(), NoStopPrefix) {
			continue
		}
		s.Cancel(force)
	}
	m.clean()
}

// Clear cancels every sequence and removes them all.
func (m *Manager) Clear() {
	m.CancelAll(ForceFreeze)
	m.seqs = m.seqs[:0]
	m.setAnimating(false)
}

// IsAnimating reports whether any sequence is waiting or animating.
func (m *Manager) IsAnimating() bool {
	for _, s := range m.seqs {
		if s.State().active() {
			return true
		}
	}
	return false
}

// TotalDuration returns the longest sequence total duration.
func (m *Manager) TotalDuration() float64 {
	var d float64
	for _, s := range m.seqs {
		d = max(d, s.TotalDuration())
	}
	return d
}

// RemainingTime returns the longest remaining time of the named sequences,
// or of all sequences when no names are given. Times are in clock seconds.
func (m *Manager) RemainingTime(now float64, names ...string) float64 {
	v := m.virtualAt(now)
	var r float64
	for _, s := range m.seqs {
		if len(names) > 0 && !slices.Contains(names, s.Name()) {
			continue
		}
		r = max(r, s.RemainingTime(v))
	}
	return m.toReal(r)
}

// NextFinishTime returns the shortest positive remaining time of any running
// sequence, in clock seconds. ok is false when nothing is running.
func (m *Manager) NextFinishTime(now float64) (d float64, ok bool) {
	v := m.virtualAt(now)
	d = math.Inf(1)
	for _, s := range m.seqs {
		if !s.State().active() {
			continue
		}
		if r := s.RemainingTime(v); r > 0 && r < d {
			d, ok = r, true
		}
	}
	if !ok {
		return 0, false
	}
	return m.toReal(d), true
}

func (m *Manager) toReal(d float64) float64 {
	if m.speed == 0 || m.paused {
		return d
	}
	return d / m.speed
}

// NextFrame advances every running sequence to now, removes finished
// sequences and returns the smallest value any sequence returned: 0 while
// something is still running, otherwise the time the earliest finisher
// overshot its end, in clock seconds. ok is false when nothing ran.
func (m *Manager) NextFrame(now float64) (remaining float64, ok bool) {
	v := m.virtualAt(now)
	m.lastReal = now
	if m.paused {
		return 0, false
	}
	m.scratch = append(m.scratch[:0], m.seqs...)
	remaining = math.Inf(1)
	for _, s := range m.scratch {
		if !s.State().active() {
			continue
		}
		ok = true
		remaining = min(remaining, s.NextFrame(v))
		if m.debug && s.State() == StateFinished {
			debugf("manager %q: sequence %q finished", m.Name, s.Name())
		}
	}
	clear(m.scratch)

	m.clean()
	if !ok {
		return 0, false
	}
	return m.toReal(remaining), true
}

// noteAnimating records sequences started directly on their builder, so
// cancelling them still reports the animating-to-idle edge.
func (m *Manager) noteAnimating() {
	if !m.animating {
		m.animating = m.IsAnimating()
	}
}

// clean drops finished sequences that do not keep themselves and fires the
// idle notifications when nothing is left running.
func (m *Manager) clean() {
	kept := m.seqs[:0]
	for _, s := range m.seqs {
		if s.State() == StateFinished && s.RemoveOnFinish() {
			continue
		}
		kept = append(kept, s)
	}
	clear(m.seqs[len(kept):])
	m.seqs = kept
	m.setAnimating(m.IsAnimating())
}

// Subscribe registers fn to run each time the manager goes from animating
// to idle. The returned function unsubscribes.
func (m *Manager) Subscribe(fn func()) (unsubscribe func()) {
	id := m.nextSubID
	m.nextSubID++
	m.subs = append(m.subs, subscription{id, fn})
	return func() {
		m.subs = slices.DeleteFunc(m.subs, func(s subscription) bool { return s.id == id })
	}
}

func (m *Manager) setAnimating(on bool) {
	was := m.animating
	m.animating = on
	if !was || on {
		return
	}
	if m.debug {
		debugf("manager %q: idle", m.Name)
	}
	for _, s := range slices.Clone(m.subs) {
		s.fn()
	}
}
