package cadence

import "testing"

func TestDissolveOut(t *testing.T) {
	e := newTestElem()
	s := NewDissolveOut(OpacityOptions{
		StepOptions: StepOptions{Duration: 2},
		Element:     e,
	})
	s.StartAt(0)
	s.NextFrame(0.5)
	assertApprox(t, "opacity", e.opacity, 0.75, 1e-3)

	s.NextFrame(2)
	if e.shown {
		t.Error("element should be hidden after dissolve out")
	}
	assertNear(t, "opacity", e.opacity, 1)
}

func TestDissolveIn(t *testing.T) {
	e := newTestElem()
	e.shown = false
	s := NewDissolveIn(OpacityOptions{Element: e})
	assertNear(t, "Duration", s.Duration(), 1)

	s.StartAt(0)
	if !e.shown {
		t.Error("element should be shown when dissolve in starts")
	}
	assertNear(t, "opacity", e.opacity, dissolveAlpha)
	s.NextFrame(0.5)
	assertApprox(t, "opacity", e.opacity, 0.5005, 1e-4)
	s.NextFrame(1)
	assertNear(t, "opacity", e.opacity, 1)
}

func TestDissolveFromCurrent(t *testing.T) {
	e := newTestElem()
	e.opacity = 0.4
	s := NewDissolveIn(OpacityOptions{Element: e, DissolveFromCurrent: true})
	s.StartAt(0)
	assertNear(t, "opacity", e.opacity, 0.4)
	s.NextFrame(0.5)
	assertApprox(t, "opacity", e.opacity, 0.7, 1e-5)
}

func TestDissolveCompletesOnCancel(t *testing.T) {
	e := newTestElem()
	s := NewDissolveOut(OpacityOptions{Element: e})
	s.StartAt(0)
	s.NextFrame(0.3)
	s.Cancel(ForceNone)
	if e.shown {
		t.Error("cancelled dissolve out should still hide the element")
	}
}

func TestQueuedDissolveRepairsTransparentElement(t *testing.T) {
	e := newTestElem()
	e.opacity = dissolveAlpha
	s := NewDissolveIn(OpacityOptions{
		StepOptions: StepOptions{OnCancel: ForceFreeze},
		Element:     e,
	})
	s.StartWaiting()
	s.Cancel(ForceNone)
	if e.shown {
		t.Error("element left transparent should be hidden")
	}
	assertNear(t, "opacity", e.opacity, 1)
}

func TestOpacityClampsTarget(t *testing.T) {
	e := newTestElem()
	e.opacity = 0.8
	s := NewOpacity(OpacityOptions{
		StepOptions: StepOptions{Duration: 1},
		Element:     e,
		Delta:       Some(0.5),
	})
	s.StartAt(0)
	assertNear(t, "Target", s.Target(), 1)

	s = NewOpacity(OpacityOptions{
		StepOptions: StepOptions{Duration: 1},
		Element:     e,
		Target:      Some(-2.0),
	})
	s.StartAt(0)
	assertNear(t, "Target", s.Target(), 0)
}

func TestOpacityVelocity(t *testing.T) {
	s := NewOpacity(OpacityOptions{
		StepOptions: StepOptions{Duration: 5},
		Element:     newTestElem(),
		Target:      Some(0.0),
		Velocity:    Some(0.5),
		MaxDuration: Some(1.5),
	})
	s.Start()
	assertNear(t, "Duration", s.Duration(), 1.5)
}
