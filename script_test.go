package cadence

import (
	"errors"
	"strings"
	"testing"
)

const introScript = `
scenarios:
  - node: hero
    name: offscreen
    position: [-200, 40]
    shown: false
  - node: hero
    name: tinted
    color: "#ff8000"
sequences:
  - name: intro
    node: hero
    autostart: true
    steps:
      - position: {target: [10, 0], duration: 1, progression: linear}
      - trigger: introDone
  - name: outro
    node: hero
    onCancel: complete
    keep: true
    steps:
      - parallel:
          - dissolveOut: {duration: 2}
          - scale: {target: 2, duration: 1}
      - delay: 0.5
      - scenario: offscreen
`

func heroTree() (*Node, *Node) {
	root := NewNode("root")
	hero := NewNode("hero")
	root.AddChild(hero)
	return root, hero
}

func TestLoadScript(t *testing.T) {
	s, err := LoadScript([]byte(introScript))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(s.Scenarios))
	}
	names := s.SequenceNames()
	if len(names) != 2 || names[0] != "intro" || names[1] != "outro" {
		t.Errorf("SequenceNames = %v", names)
	}
	outro := s.Sequences[1]
	if len(outro.Steps) != 3 || outro.Steps[0].kind != "parallel" || len(outro.Steps[0].children) != 2 {
		t.Errorf("outro steps mismatch: %+v", outro.Steps)
	}
	if outro.Steps[1].delay != 0.5 {
		t.Errorf("delay = %f, want 0.5", outro.Steps[1].delay)
	}
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"invalid yaml", "sequences: [", "parse script"},
		{"unknown step", "sequences:\n  - name: a\n    steps:\n      - teleport: {}\n", "unknown step"},
		{"two keys", "sequences:\n  - name: a\n    steps:\n      - {delay: 1, trigger: x}\n", "exactly one key"},
		{"no name", "sequences:\n  - steps: []\n", "without a name"},
		{"bad cancel", "sequences:\n  - name: a\n    onCancel: maybe\n", "cancel policy"},
		{"short point", "sequences:\n  - name: a\n    steps:\n      - position: {target: [1, 2, 3]}\n", "2 values"},
		{"bad color", "sequences:\n  - name: a\n    steps:\n      - color: {target: [1, 2]}\n", "channels"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestScriptApply(t *testing.T) {
	root, hero := heroTree()
	hero.SetPosition(Vec2{5, 5})
	s, err := LoadScript([]byte(introScript))
	if err != nil {
		t.Fatal(err)
	}
	done := 0
	reg := NewRegistry()
	reg.RegisterTrigger("introDone", func() { done++ })
	if err := s.Apply(root, reg); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	off, ok := hero.ScenarioTarget("offscreen")
	if !ok {
		t.Fatal("offscreen scenario not installed")
	}
	tr, _ := off.Transform.Get()
	if tr.Translation() != (Vec2{-200, 40}) {
		t.Errorf("offscreen translation = %v", tr.Translation())
	}
	if shown, _ := off.IsShown.Get(); shown {
		t.Error("offscreen should be hidden")
	}
	tinted, _ := hero.ScenarioTarget("tinted")
	if tinted.Transform.IsSet() || !tinted.Color.IsSet() {
		t.Errorf("tinted scenario = %+v", tinted)
	}

	m := hero.Animations()
	if m.Get("intro").State() != StateAnimating {
		t.Fatal("intro should autostart")
	}
	if m.Get("outro").State() != StateIdle {
		t.Fatal("outro should wait for Start")
	}
	m.NextFrame(0)
	m.NextFrame(1.5)
	if hero.Position() != (Vec2{10, 0}) {
		t.Errorf("position = %v, want {10 0}", hero.Position())
	}
	if done != 1 {
		t.Errorf("introDone calls = %d, want 1", done)
	}
}

func TestScriptReapplyReplacesSequences(t *testing.T) {
	root, hero := heroTree()
	s, err := LoadScript([]byte(introScript))
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry()
	reg.RegisterTrigger("introDone", func() {})
	for range 2 {
		if err := s.Apply(root, reg); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(hero.Animations().Sequences()); n != 2 {
		t.Errorf("sequences = %d, want 2 (intro, outro)", n)
	}
}

func TestScriptApplyOutro(t *testing.T) {
	root, hero := heroTree()
	s, err := LoadScript([]byte(introScript))
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry()
	reg.RegisterTrigger("introDone", func() {})
	if err := s.Apply(root, reg); err != nil {
		t.Fatal(err)
	}
	m := hero.Animations()
	m.Cancel("intro", ForceFreeze)
	m.Start("outro")
	m.NextFrame(0)
	m.NextFrame(0.5)
	m.Cancel("outro", ForceNone)

	if hero.IsShown() {
		t.Error("outro cancelled with complete should hide the hero")
	}
	assertNear(t, "opacity", hero.Opacity(), 1)
	if hero.Position() != (Vec2{-200, 40}) {
		t.Errorf("position = %v, want {-200 40}", hero.Position())
	}
	m.NextFrame(1)
	if m.Get("outro") == nil {
		t.Error("kept sequence should stay in the manager")
	}
}

func TestScriptApplyUnknownCallback(t *testing.T) {
	root, _ := heroTree()
	s, err := LoadScript([]byte(introScript))
	if err != nil {
		t.Fatal(err)
	}
	err = s.Apply(root, nil)
	if !errors.Is(err, ErrUnknownCallback) {
		t.Fatalf("err = %v, want ErrUnknownCallback", err)
	}
	if !strings.Contains(err.Error(), `sequence "intro"`) {
		t.Errorf("error %q should name the sequence", err)
	}
}

func TestScriptApplyUnknownNode(t *testing.T) {
	root := NewNode("root")
	s, err := LoadScript([]byte("sequences:\n  - name: a\n    node: ghost\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(root, nil); err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Errorf("err = %v, want node not found", err)
	}
}

func TestScriptStepKinds(t *testing.T) {
	src := `
sequences:
  - name: all
    steps:
      - serial:
          - rotation: {target: 3.14, direction: ccw, clip: 0to360, duration: 1}
          - transform: {position: [1, 2], rotation: 0.5, speed: 2}
      - color: {target: [0, 0, 0], space: hcl, duration: 1}
      - dim: {}
      - undim: {duration: 0.5}
      - opacity: {target: 0.5, duration: 1}
      - dissolveIn: {fromCurrent: true}
      - pulse: {scale: 1.5, frequency: 2, keep: true}
      - custom: {callback: wobble, startPercent: 0.5}
      - trigger: {callback: ping, onEnd: pong}
      - position: {delta: {x: 1, y: 1}, path: curved, side: up, magnitude: 0.3, duration: 1}
      - scenario: {target: home, velocity: {translation: 10}, sameDurations: false}
`
	s, err := LoadScript([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	root := NewNode("root")
	root.SaveScenario("home")
	reg := NewRegistry()
	reg.RegisterCustom("wobble", func(float64) bool { return false })
	reg.RegisterTrigger("ping", func() {})
	reg.RegisterTrigger("pong", func() {})
	if err := s.Apply(root, reg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	b, ok := root.Animations().Get("all").(*Builder)
	if !ok {
		t.Fatal("sequence all not built")
	}
	steps := b.Steps()
	if len(steps) != 11 {
		t.Fatalf("steps = %d, want 11", len(steps))
	}
	if _, ok := steps[0].(*Serial); !ok {
		t.Errorf("step 0 = %T, want *Serial", steps[0])
	}
	if _, ok := steps[7].(*CustomStep); !ok {
		t.Errorf("step 7 = %T, want *CustomStep", steps[7])
	}
	if _, ok := steps[10].(*ScenarioStep); !ok {
		t.Errorf("step 10 = %T, want *ScenarioStep", steps[10])
	}
}

func TestScriptStepErrors(t *testing.T) {
	tests := []struct {
		name string
		step string
		want string
	}{
		{"progression", "position: {target: 1, progression: wobbly}", "unknown progression"},
		{"direction", "rotation: {target: 1, direction: sideways}", "rotation direction"},
		{"path", "position: {target: 1, path: zigzag}", "unknown path"},
		{"side", "position: {target: 1, path: curved, side: inward}", "curve side"},
		{"custom", "custom: {callback: nope}", "unknown callback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "sequences:\n  - name: a\n    steps:\n      - " + tt.step + "\n"
			s, err := LoadScript([]byte(src))
			if err != nil {
				t.Fatal(err)
			}
			err = s.Apply(NewNode("root"), nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterTrigger("a", func() {})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate trigger")
		}
	}()
	reg.RegisterTrigger("a", func() {})
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCustom("c", func(float64) bool { return true })
	if _, err := reg.Custom("c"); err != nil {
		t.Errorf("Custom(c): %v", err)
	}
	if _, err := reg.Trigger("missing"); !errors.Is(err, ErrUnknownCallback) {
		t.Errorf("Trigger(missing) err = %v", err)
	}
}
