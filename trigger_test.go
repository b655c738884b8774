package cadence

import "testing"

func TestTriggerFiresOnFirstFrame(t *testing.T) {
	calls := 0
	s := NewTrigger(TriggerOptions{
		StepOptions: StepOptions{Duration: 1},
		Callback:    func() { calls++ },
	})
	s.StartAt(0)
	if calls != 0 {
		t.Fatalf("calls = %d before first frame, want 0", calls)
	}
	s.NextFrame(0)
	s.NextFrame(0.5)
	if calls != 1 || !s.Fired() {
		t.Errorf("calls = %d, fired = %v", calls, s.Fired())
	}
	s.NextFrame(1)
	if calls != 1 || s.State() != StateFinished {
		t.Errorf("calls = %d, state = %v", calls, s.State())
	}
}

func TestTriggerAutoDuration(t *testing.T) {
	called := false
	s := NewTrigger(TriggerOptions{
		Callback:     func() { called = true },
		AutoDuration: func() float64 { return 2 },
	})
	s.StartAt(0)
	s.NextFrame(0)
	if s.State() != StateAnimating {
		t.Fatalf("State = %v, want animating", s.State())
	}
	if called {
		t.Error("Callback should not run when AutoDuration is set")
	}
	assertNear(t, "Duration", s.Duration(), 2)
	r := s.NextFrame(2.5)
	assertNear(t, "remaining", r, 0.5)
}

func TestTriggerSetToEndCallback(t *testing.T) {
	var got []string
	s := NewTrigger(TriggerOptions{
		StepOptions:      StepOptions{Delay: 1},
		Callback:         func() { got = append(got, "callback") },
		SetToEndCallback: func() { got = append(got, "end") },
	})
	s.StartAt(0)
	s.Cancel(ForceComplete)
	if len(got) != 1 || got[0] != "end" {
		t.Errorf("got = %v, want [end]", got)
	}
}

func TestTriggerNotRepeatedOnComplete(t *testing.T) {
	calls := 0
	s := NewTrigger(TriggerOptions{
		StepOptions: StepOptions{Duration: 1},
		Callback:    func() { calls++ },
	})
	s.StartAt(0)
	s.NextFrame(0.1)
	s.Cancel(ForceComplete)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTriggerRestartFiresAgain(t *testing.T) {
	calls := 0
	s := NewTrigger(TriggerOptions{Callback: func() { calls++ }})
	s.Start()
	s.FinishIfZeroDuration()
	s.Start()
	s.FinishIfZeroDuration()
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
