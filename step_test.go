package cadence

import "testing"

func newLinearPosition(e Element, target Vec2, duration float64) *PositionStep {
	return NewPosition(PositionOptions{
		StepOptions: StepOptions{Duration: duration},
		Element:     e,
		Target:      Some(target),
		Progression: Linear,
	})
}

func TestPositionEndToEnd(t *testing.T) {
	e := newTestElem()
	s := newLinearPosition(e, Vec2{1, 1}, 1)
	s.Start()

	ticks := []struct {
		now  float64
		want float64
	}{
		{0, 0}, {0.1, 0.1}, {0.55, 0.55}, {0.9, 0.9},
	}
	for _, tk := range ticks {
		if r := s.NextFrame(tk.now); r != 0 {
			t.Errorf("NextFrame(%v) = %v, want 0 while running", tk.now, r)
		}
		assertApprox(t, "x", e.pos.X, tk.want, 1e-5)
		assertApprox(t, "y", e.pos.Y, tk.want, 1e-5)
	}

	r := s.NextFrame(1.1)
	assertApprox(t, "remaining", r, 0.1, 1e-9)
	if e.pos != (Vec2{1, 1}) {
		t.Errorf("pos = %v, want (1, 1)", e.pos)
	}
	if s.State() != StateFinished {
		t.Errorf("State = %v, want finished", s.State())
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	e := newTestElem()
	calls := 0
	s := NewPosition(PositionOptions{
		StepOptions: StepOptions{Duration: 1, OnFinish: func(bool) { calls++ }},
		Element:     e,
		Target:      Some(Vec2{10, 0}),
	})
	s.Start()
	s.NextFrame(0)
	s.NextFrame(0.5)
	s.Finish(false, ForceNone)
	if e.pos.X != 10 {
		t.Errorf("pos.X = %f, want 10", e.pos.X)
	}

	e.pos = Vec2{3, 3}
	s.Finish(false, ForceNone)
	s.Cancel(ForceComplete)
	if e.pos != (Vec2{3, 3}) {
		t.Errorf("finishing a finished step changed pos to %v", e.pos)
	}
	if calls != 1 {
		t.Errorf("OnFinish calls = %d, want 1", calls)
	}
}

func TestCancelIdleStepIsNoOp(t *testing.T) {
	calls := 0
	s := NewDelayStep(StepOptions{Duration: 1, OnFinish: func(bool) { calls++ }})
	s.Cancel(ForceComplete)
	if calls != 0 || s.State() != StateIdle {
		t.Errorf("idle cancel: calls = %d, state = %v", calls, s.State())
	}
}

func TestCancelPolicy(t *testing.T) {
	tests := []struct {
		name     string
		onCancel Force
		force    Force
		wantEnd  bool
	}{
		{"default freezes", ForceNone, ForceNone, false},
		{"own policy completes", ForceComplete, ForceNone, true},
		{"force complete wins", ForceFreeze, ForceComplete, true},
		{"force freeze wins", ForceComplete, ForceFreeze, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestElem()
			var cancelled bool
			s := NewPosition(PositionOptions{
				StepOptions: StepOptions{
					Duration: 1,
					OnCancel: tt.onCancel,
					OnFinish: func(c bool) { cancelled = c },
				},
				Element:     e,
				Target:      Some(Vec2{10, 0}),
				Progression: Linear,
			})
			s.Start()
			s.NextFrame(0)
			s.NextFrame(0.5)
			s.Cancel(tt.force)

			want := 5.0
			if tt.wantEnd {
				want = 10
			}
			assertApprox(t, "pos.X", e.pos.X, want, 1e-4)
			if !cancelled {
				t.Error("OnFinish(cancelled) = false, want true")
			}
		})
	}
}

func TestStartDelay(t *testing.T) {
	e := newTestElem()
	s := NewPosition(PositionOptions{
		StepOptions: StepOptions{Duration: 1, Delay: 0.5},
		Element:     e,
		Target:      Some(Vec2{10, 0}),
		Progression: Linear,
	})
	s.Start()
	s.NextFrame(0)
	s.NextFrame(0.4)
	if e.pos.X != 0 {
		t.Errorf("pos.X during delay = %f, want 0", e.pos.X)
	}
	assertNear(t, "TotalDuration", s.TotalDuration(), 1.5)
	assertApprox(t, "RemainingTime", s.RemainingTime(0.4), 1.1, 1e-9)

	s.NextFrame(1)
	assertApprox(t, "pos.X", e.pos.X, 5, 1e-4)
	r := s.NextFrame(1.7)
	assertApprox(t, "remaining", r, 0.2, 1e-9)
}

func TestStartAtExplicitTime(t *testing.T) {
	e := newTestElem()
	s := newLinearPosition(e, Vec2{10, 0}, 1)
	s.StartAt(2)
	s.NextFrame(2.5)
	assertApprox(t, "pos.X", e.pos.X, 5, 1e-4)
}

func TestStartTimeOffset(t *testing.T) {
	e := newTestElem()
	s := newLinearPosition(e, Vec2{10, 0}, 1)
	s.SetStartTimeOffset(0.5)

	s.Start()
	s.NextFrame(3)
	assertApprox(t, "lazy pos.X", e.pos.X, 5, 1e-4)

	e.pos = Vec2{}
	s.StartAt(3)
	s.NextFrame(3.25)
	assertApprox(t, "explicit pos.X", e.pos.X, 7.5, 1e-4)
	if r := s.NextFrame(3.6); s.State() != StateFinished {
		t.Errorf("State = %v, want finished (remaining %v)", s.State(), r)
	}
}

func TestLateBoundStartCapturedAtStart(t *testing.T) {
	e := newTestElem()
	e.pos = Vec2{4, 0}
	s := NewPosition(PositionOptions{
		StepOptions: StepOptions{Duration: 1},
		Element:     e,
		Delta:       Some(Vec2{2, 0}),
	})
	s.Start()
	if s.Target() != (Vec2{6, 0}) {
		t.Errorf("Target = %v, want (6, 0)", s.Target())
	}

	// A restart recomputes from the new current value.
	s.Finish(false, ForceNone)
	s.Start()
	if s.Target() != (Vec2{8, 0}) {
		t.Errorf("Target after restart = %v, want (8, 0)", s.Target())
	}
}

func TestDeltaWinsOverTarget(t *testing.T) {
	e := newTestElem()
	s := NewPosition(PositionOptions{
		StepOptions: StepOptions{Duration: 1},
		Element:     e,
		Delta:       Some(Vec2{1, 0}),
		Target:      Some(Vec2{100, 0}),
	})
	s.Start()
	if s.Target() != (Vec2{1, 0}) {
		t.Errorf("Target = %v, want (1, 0)", s.Target())
	}
}

func TestMissingElementHasZeroDuration(t *testing.T) {
	calls := 0
	s := NewPosition(PositionOptions{
		StepOptions: StepOptions{Duration: 1, OnFinish: func(bool) { calls++ }},
		Target:      Some(Vec2{1, 1}),
	})
	s.Start()
	s.FinishIfZeroDuration()
	if s.State() != StateFinished {
		t.Errorf("State = %v, want finished", s.State())
	}
	if calls != 1 {
		t.Errorf("OnFinish calls = %d, want 1", calls)
	}
}

func TestVelocityOverridesDuration(t *testing.T) {
	e := newTestElem()
	s := NewPosition(PositionOptions{
		StepOptions: StepOptions{Duration: 10},
		Element:     e,
		Target:      Some(Vec2{3, 0}),
		Velocity:    Some(Vec2{0.5, 0.5}),
	})
	s.Start()
	assertNear(t, "Duration", s.Duration(), 6)

	capped := NewPosition(PositionOptions{
		StepOptions: StepOptions{Duration: 10},
		Element:     e,
		Target:      Some(Vec2{3, 0}),
		Velocity:    Some(Vec2{0.5, 0.5}),
		MaxDuration: Some(2.0),
	})
	capped.Start()
	assertNear(t, "capped Duration", capped.Duration(), 2)

	zero := NewPosition(PositionOptions{
		StepOptions: StepOptions{Duration: 10},
		Element:     e,
		Target:      Some(Vec2{3, 0}),
		Velocity:    Some(Vec2{}),
	})
	zero.Start()
	assertNear(t, "zero-velocity Duration", zero.Duration(), 10)
}

func TestStepStateString(t *testing.T) {
	tests := map[StepState]string{
		StateIdle:           "idle",
		StateWaitingToStart: "waitingToStart",
		StateAnimating:      "animating",
		StateFinished:       "finished",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestNextFrameAllocations(t *testing.T) {
	e := newTestElem()
	s := NewDelay(1000)
	p := NewParallel(StepOptions{}, s, newLinearPosition(e, Vec2{1, 1}, 1000))
	p.Start()
	now := 0.0
	allocs := testing.AllocsPerRun(100, func() {
		now += 0.016
		p.NextFrame(now)
	})
	if allocs > 0 {
		t.Errorf("NextFrame allocates %.1f times per call, want 0", allocs)
	}
}
