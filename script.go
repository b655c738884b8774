package cadence

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Script is a parsed YAML animation script: named scenarios for nodes and
// sequences of steps to install in the nodes' managers.
//
//	scenarios:
//	  - node: hero
//	    name: offscreen
//	    position: [-200, 40]
//	    shown: false
//	sequences:
//	  - name: intro
//	    node: hero
//	    autostart: true
//	    steps:
//	      - dissolveIn: {duration: 0.5}
//	      - parallel:
//	          - position: {target: [100, 40], progression: easeinout}
//	          - color: {target: "#ff8800", space: hcl}
//	      - trigger: introDone
//
// Callbacks named by trigger and custom steps are looked up in a Registry
// when the script is applied.
type Script struct {
	Scenarios []scenarioSpec `yaml:"scenarios"`
	Sequences []sequenceSpec `yaml:"sequences"`
}

type scenarioSpec struct {
	Node     string     `yaml:"node"`
	Name     string     `yaml:"name"`
	Position *vec2Spec  `yaml:"position"`
	Rotation *float64   `yaml:"rotation"`
	Scale    *vec2Spec  `yaml:"scale"`
	Color    *colorSpec `yaml:"color"`
	Shown    *bool      `yaml:"shown"`
}

type sequenceSpec struct {
	Name      string     `yaml:"name"`
	Node      string     `yaml:"node"`
	Autostart bool       `yaml:"autostart"`
	OnCancel  string     `yaml:"onCancel"`
	Keep      bool       `yaml:"keep"`
	Steps     []stepSpec `yaml:"steps"`
}

// commonSpec holds the fields every step accepts.
type commonSpec struct {
	Name        string   `yaml:"name"`
	Node        string   `yaml:"node"`
	Duration    float64  `yaml:"duration"`
	Delay       float64  `yaml:"delay"`
	Progression string   `yaml:"progression"`
	OnCancel    string   `yaml:"onCancel"`
	MaxDuration *float64 `yaml:"maxDuration"`
}

type pathSpec struct {
	Path      string   `yaml:"path"`
	Magnitude *float64 `yaml:"magnitude"`
	Offset    *float64 `yaml:"offset"`
	Rot       *float64 `yaml:"rot"`
	Side      string   `yaml:"side"`
}

type motionSpec struct {
	commonSpec `yaml:",inline"`
	pathSpec   `yaml:",inline"`
	Start      *vec2Spec `yaml:"start"`
	Delta      *vec2Spec `yaml:"delta"`
	Target     *vec2Spec `yaml:"target"`
	Velocity   *vec2Spec `yaml:"velocity"`
}

type rotationSpec struct {
	commonSpec `yaml:",inline"`
	Start      *float64 `yaml:"start"`
	Delta      *float64 `yaml:"delta"`
	Target     *float64 `yaml:"target"`
	Velocity   *float64 `yaml:"velocity"`
	Direction  string   `yaml:"direction"`
	Clip       string   `yaml:"clip"`
}

type transformSpec struct {
	commonSpec `yaml:",inline"`
	pathSpec   `yaml:",inline"`
	Position   *vec2Spec `yaml:"position"`
	Rotation   *float64  `yaml:"rotation"`
	Scale      *vec2Spec `yaml:"scale"`
	Speed      *float64  `yaml:"speed"`
	Direction  string    `yaml:"direction"`
	Clip       string    `yaml:"clip"`
}

type colorStepSpec struct {
	commonSpec `yaml:",inline"`
	Start      *colorSpec `yaml:"start"`
	Delta      *colorSpec `yaml:"delta"`
	Target     *colorSpec `yaml:"target"`
	Velocity   *float64   `yaml:"velocity"`
	Space      string     `yaml:"space"`
}

type opacitySpec struct {
	commonSpec  `yaml:",inline"`
	Start       *float64 `yaml:"start"`
	Delta       *float64 `yaml:"delta"`
	Target      *float64 `yaml:"target"`
	Velocity    *float64 `yaml:"velocity"`
	FromCurrent bool     `yaml:"fromCurrent"`
}

type pulseSpec struct {
	commonSpec `yaml:",inline"`
	Scale      float64 `yaml:"scale"`
	Frequency  float64 `yaml:"frequency"`
	Keep       bool    `yaml:"keep"`
}

type scenarioStepSpec struct {
	commonSpec `yaml:",inline"`
	pathSpec   `yaml:",inline"`
	Target     string `yaml:"target"`
	Start      string `yaml:"start"`
	Velocity   *struct {
		Translation *float64 `yaml:"translation"`
		Rotation    *float64 `yaml:"rotation"`
		Scale       *float64 `yaml:"scale"`
		Color       *float64 `yaml:"color"`
		Opacity     *float64 `yaml:"opacity"`
	} `yaml:"velocity"`
	ZeroThreshold float64 `yaml:"zeroThreshold"`
	SameDurations *bool   `yaml:"sameDurations"`
	Direction     string  `yaml:"direction"`
	Clip          string  `yaml:"clip"`
}

type customSpec struct {
	commonSpec   `yaml:",inline"`
	Callback     string  `yaml:"callback"`
	StartPercent float64 `yaml:"startPercent"`
}

type triggerSpec struct {
	commonSpec `yaml:",inline"`
	Callback   string `yaml:"callback"`
	OnEnd      string `yaml:"onEnd"`
}

// stepSpec is one entry of a step list: a mapping with a single key naming
// the step kind.
type stepSpec struct {
	kind     string
	line     int
	spec     any
	children []stepSpec
	delay    float64
}

func (s *stepSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return fmt.Errorf("line %d: a step is a mapping with exactly one key", n.Line)
	}
	s.kind, s.line = n.Content[0].Value, n.Line
	v := n.Content[1]
	switch s.kind {
	case "serial", "parallel":
		return v.Decode(&s.children)
	case "delay":
		return v.Decode(&s.delay)
	case "trigger":
		t := &triggerSpec{}
		s.spec = t
		if v.Kind == yaml.ScalarNode {
			t.Callback = v.Value
			return nil
		}
		return v.Decode(t)
	case "scenario":
		sc := &scenarioStepSpec{}
		s.spec = sc
		if v.Kind == yaml.ScalarNode {
			sc.Target = v.Value
			return nil
		}
		return v.Decode(sc)
	case "position", "scale":
		s.spec = &motionSpec{}
	case "rotation":
		s.spec = &rotationSpec{}
	case "transform":
		s.spec = &transformSpec{}
	case "color", "dim", "undim":
		s.spec = &colorStepSpec{}
	case "opacity", "dissolveIn", "dissolveOut":
		s.spec = &opacitySpec{}
	case "pulse":
		s.spec = &pulseSpec{}
	case "custom":
		s.spec = &customSpec{}
	default:
		return fmt.Errorf("line %d: unknown step %q", n.Line, s.kind)
	}
	return v.Decode(s.spec)
}

// vec2Spec accepts a number (both axes), a two element list or an {x, y}
// mapping.
type vec2Spec struct{ Vec2 }

func (v *vec2Spec) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		v.X, v.Y = f, f
		return nil
	case yaml.SequenceNode:
		var xy []float64
		if err := n.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("line %d: point needs 2 values, got %d", n.Line, len(xy))
		}
		v.X, v.Y = xy[0], xy[1]
		return nil
	default:
		var m struct{ X, Y float64 }
		if err := n.Decode(&m); err != nil {
			return err
		}
		v.X, v.Y = m.X, m.Y
		return nil
	}
}

// colorSpec accepts "#rrggbb" or a list of 3 or 4 channels in [0, 1].
type colorSpec struct{ Color }

func (c *colorSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		col, err := ParseColor(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		c.Color = col
		return nil
	}
	var ch []float64
	if err := n.Decode(&ch); err != nil {
		return err
	}
	switch len(ch) {
	case 3:
		c.Color = Color{ch[0], ch[1], ch[2], 1}
	case 4:
		c.Color = Color{ch[0], ch[1], ch[2], ch[3]}
	default:
		return fmt.Errorf("line %d: color needs 3 or 4 channels, got %d", n.Line, len(ch))
	}
	return nil
}

// LoadScript parses a YAML script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for _, seq := range s.Sequences {
		if seq.Name == "" {
			return nil, fmt.Errorf("parse script: sequence without a name")
		}
		if _, err := parseForce(seq.OnCancel); err != nil {
			return nil, fmt.Errorf("parse script: sequence %q: %w", seq.Name, err)
		}
	}
	return &s, nil
}

// SequenceNames returns the names of the script's sequences in order.
func (s *Script) SequenceNames() []string {
	names := make([]string, len(s.Sequences))
	for i, seq := range s.Sequences {
		names[i] = seq.Name
	}
	return names
}

// Apply installs the script's scenarios on the nodes under root, then builds
// each sequence in its node's manager, replacing sequences of the same
// name. Sequences marked autostart are started. Node names are resolved
// with Find; an empty name is root itself.
func (s *Script) Apply(root *Node, reg *Registry) error {
	if reg == nil {
		reg = NewRegistry()
	}
	env := scriptEnv{root: root, reg: reg}
	for _, sc := range s.Scenarios {
		n, err := env.node(sc.Node, nil)
		if err != nil {
			return fmt.Errorf("apply script: scenario %q: %w", sc.Name, err)
		}
		n.SetScenario(sc.Name, sc.scenario(n.Transform()))
	}
	for _, seq := range s.Sequences {
		n, err := env.node(seq.Node, nil)
		if err != nil {
			return fmt.Errorf("apply script: sequence %q: %w", seq.Name, err)
		}
		n.Animations().Remove(seq.Name)
		b := n.Animations().New(seq.Name)
		f, _ := parseForce(seq.OnCancel)
		b.OnCancel(f)
		if seq.Keep {
			b.KeepOnFinish()
		}
		for _, st := range seq.Steps {
			step, err := env.build(st, n)
			if err != nil {
				return fmt.Errorf("apply script: sequence %q: %w", seq.Name, err)
			}
			b.Then(step)
		}
		if seq.Autostart {
			n.Animations().Start(seq.Name)
		}
	}
	return nil
}

func (sc scenarioSpec) scenario(base Transform) Scenario {
	var out Scenario
	if sc.Position != nil || sc.Rotation != nil || sc.Scale != nil {
		t := base.Copy()
		if sc.Position != nil {
			t = t.WithTranslation(sc.Position.Vec2)
		}
		if sc.Rotation != nil {
			t = t.WithRotation(*sc.Rotation)
		}
		if sc.Scale != nil {
			t = t.WithScaling(sc.Scale.Vec2)
		}
		out.Transform = Some(t)
	}
	if sc.Color != nil {
		out.Color = Some(sc.Color.Color)
	}
	out.IsShown = optOf(sc.Shown)
	return out
}

type scriptEnv struct {
	root *Node
	reg  *Registry
}

func (e scriptEnv) node(name string, def *Node) (*Node, error) {
	if name == "" {
		if def != nil {
			return def, nil
		}
		return e.root, nil
	}
	if n := e.root.Find(name); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("node %q not found", name)
}

func (e scriptEnv) build(st stepSpec, def *Node) (Step, error) {
	step, err := e.buildStep(st, def)
	if err != nil {
		return nil, fmt.Errorf("line %d: %s: %w", st.line, st.kind, err)
	}
	return step, nil
}

func (e scriptEnv) buildStep(st stepSpec, def *Node) (Step, error) {
	switch st.kind {
	case "serial", "parallel":
		steps := make([]Step, 0, len(st.children))
		for _, c := range st.children {
			s, err := e.build(c, def)
			if err != nil {
				return nil, err
			}
			steps = append(steps, s)
		}
		if st.kind == "serial" {
			return NewSerial(StepOptions{}, steps...), nil
		}
		return NewParallel(StepOptions{}, steps...), nil
	case "delay":
		return NewDelay(st.delay), nil
	}

	common := st.spec.(interface{ common() *commonSpec }).common()
	so, prog, err := common.resolve()
	if err != nil {
		return nil, err
	}
	n, err := e.node(common.Node, def)
	if err != nil {
		return nil, err
	}
	maxD := optOf(common.MaxDuration)

	switch sp := st.spec.(type) {
	case *motionSpec:
		path, err := sp.pathSpec.options()
		if err != nil {
			return nil, err
		}
		if st.kind == "scale" {
			return NewScale(ScaleOptions{
				StepOptions: so, Element: n, Progression: prog,
				Start: sp.Start.opt(), Delta: sp.Delta.opt(), Target: sp.Target.opt(),
				Velocity: sp.Velocity.opt(), MaxDuration: maxD,
			}), nil
		}
		return NewPosition(PositionOptions{
			StepOptions: so, Element: n, Progression: prog,
			Start: sp.Start.opt(), Delta: sp.Delta.opt(), Target: sp.Target.opt(),
			Velocity: sp.Velocity.opt(), MaxDuration: maxD, Path: path,
		}), nil
	case *rotationSpec:
		dir, err := parseDirection(sp.Direction)
		if err != nil {
			return nil, err
		}
		return NewRotation(RotationOptions{
			StepOptions: so, Element: n, Progression: prog,
			Start: optOf(sp.Start), Delta: optOf(sp.Delta), Target: optOf(sp.Target),
			Velocity: optOf(sp.Velocity), MaxDuration: maxD,
			Direction: dir, Clip: ParseClipRange(sp.Clip),
		}), nil
	case *transformSpec:
		dir, err := parseDirection(sp.Direction)
		if err != nil {
			return nil, err
		}
		path, err := sp.pathSpec.options()
		if err != nil {
			return nil, err
		}
		target := scenarioSpec{Position: sp.Position, Rotation: sp.Rotation, Scale: sp.Scale}.
			scenario(n.Transform()).Transform
		return NewTransform(TransformOptions{
			StepOptions: so, Element: n, Progression: prog,
			Target: target, Speed: optOf(sp.Speed), MaxDuration: maxD,
			RotDirection: dir, ClipRotation: ParseClipRange(sp.Clip), Path: path,
		}), nil
	case *colorStepSpec:
		o := ColorOptions{
			StepOptions: so, Element: n, Progression: prog,
			Start: sp.Start.opt(), Delta: sp.Delta.opt(), Target: sp.Target.opt(),
			Velocity: optOf(sp.Velocity), MaxDuration: maxD, Space: ParseColorSpace(sp.Space),
		}
		switch st.kind {
		case "dim":
			return NewDim(o), nil
		case "undim":
			return NewUndim(o), nil
		}
		return NewColor(o), nil
	case *opacitySpec:
		o := OpacityOptions{
			StepOptions: so, Element: n, Progression: prog,
			Start: optOf(sp.Start), Delta: optOf(sp.Delta), Target: optOf(sp.Target),
			Velocity: optOf(sp.Velocity), MaxDuration: maxD, DissolveFromCurrent: sp.FromCurrent,
		}
		switch st.kind {
		case "dissolveIn":
			return NewDissolveIn(o), nil
		case "dissolveOut":
			return NewDissolveOut(o), nil
		}
		return NewOpacity(o), nil
	case *pulseSpec:
		return NewPulse(PulseOptions{
			StepOptions: so, Element: n, Progression: prog,
			Scale: sp.Scale, Frequency: sp.Frequency, KeepPulsing: sp.Keep,
		}), nil
	case *scenarioStepSpec:
		dir, err := parseDirection(sp.Direction)
		if err != nil {
			return nil, err
		}
		path, err := sp.pathSpec.options()
		if err != nil {
			return nil, err
		}
		o := ScenarioOptions{
			StepOptions: so, Element: n, Progression: prog,
			Target: sp.Target, Start: sp.Start, MaxDuration: maxD,
			ZeroDurationThreshold: sp.ZeroThreshold, AllDurationsSame: optOf(sp.SameDurations),
			RotDirection: dir, ClipRotation: ParseClipRange(sp.Clip), Path: path,
		}
		if v := sp.Velocity; v != nil {
			o.Velocity = &ScenarioVelocity{
				Translation: optOf(v.Translation), Rotation: optOf(v.Rotation), Scale: optOf(v.Scale),
				Color: optOf(v.Color), Opacity: optOf(v.Opacity),
			}
		}
		return NewScenario(o), nil
	case *customSpec:
		fn, err := e.reg.Custom(sp.Callback)
		if err != nil {
			return nil, err
		}
		return NewCustom(CustomOptions{
			StepOptions: so, Progression: prog, Callback: fn, StartPercent: sp.StartPercent,
		}), nil
	case *triggerSpec:
		fn, err := e.reg.Trigger(sp.Callback)
		if err != nil {
			return nil, err
		}
		o := TriggerOptions{StepOptions: so, Callback: fn}
		if sp.OnEnd != "" {
			if o.SetToEndCallback, err = e.reg.Trigger(sp.OnEnd); err != nil {
				return nil, err
			}
		}
		return NewTrigger(o), nil
	}
	return nil, fmt.Errorf("unhandled step kind %q", st.kind)
}

func (c *commonSpec) common() *commonSpec { return c }

func (c *commonSpec) resolve() (StepOptions, Progression, error) {
	f, err := parseForce(c.OnCancel)
	if err != nil {
		return StepOptions{}, Progression{}, err
	}
	var p Progression
	if c.Progression != "" {
		var ok bool
		if p, ok = ProgressionByName(c.Progression); !ok {
			return StepOptions{}, Progression{}, fmt.Errorf("unknown progression %q", c.Progression)
		}
	}
	return StepOptions{Name: c.Name, Duration: c.Duration, Delay: c.Delay, OnCancel: f}, p, nil
}

func (p pathSpec) options() (PathOptions, error) {
	o := PathOptions{
		Magnitude: optOf(p.Magnitude),
		Offset:    optOf(p.Offset),
		Rot:       optOf(p.Rot),
	}
	switch p.Path {
	case "", "linear":
	case "curved":
		o.Style = PathCurved
	default:
		return o, fmt.Errorf("unknown path %q", p.Path)
	}
	switch p.Side {
	case "":
	case "up":
		o.Side = CurveUp
	case "down":
		o.Side = CurveDown
	case "left":
		o.Side = CurveLeft
	case "right":
		o.Side = CurveRight
	default:
		return o, fmt.Errorf("unknown curve side %q", p.Side)
	}
	return o, nil
}

func parseForce(s string) (Force, error) {
	switch s {
	case "", "none":
		return ForceNone, nil
	case "complete":
		return ForceComplete, nil
	case "freeze":
		return ForceFreeze, nil
	}
	return ForceNone, fmt.Errorf("unknown cancel policy %q", s)
}

func parseDirection(s string) (Opt[RotationDirection], error) {
	switch s {
	case "":
		return Opt[RotationDirection]{}, nil
	case "shortest":
		return Some(RotateShortest), nil
	case "ccw":
		return Some(RotateCCW), nil
	case "cw":
		return Some(RotateCW), nil
	case "noZeroCross":
		return Some(RotateNoZeroCross), nil
	}
	return Opt[RotationDirection]{}, fmt.Errorf("unknown rotation direction %q", s)
}

func optOf[T any](p *T) Opt[T] {
	if p == nil {
		return Opt[T]{}
	}
	return Some(*p)
}

func (v *vec2Spec) opt() Opt[Vec2] {
	if v == nil {
		return Opt[Vec2]{}
	}
	return Some(v.Vec2)
}

func (c *colorSpec) opt() Opt[Color] {
	if c == nil {
		return Opt[Color]{}
	}
	return Some(c.Color)
}
