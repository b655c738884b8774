package cadence

// nodeIDCounter is a plain counter (no atomic: the scene is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a scene tree element that every step can animate. It implements
// all target capabilities: position, rotation, scale and transform, color
// with dim and default colors, opacity, visibility, pulsing and named
// scenarios. Each node owns a Manager for its sequences, created on first
// use by Animations.
type Node struct {
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	transform    Transform
	color        Color
	dimColor     Color
	defaultColor Color
	opacity      float64
	shown        bool

	// Computed by Scene.Tick
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	UserData any

	scenarios map[string]Scenario
	anims     *Manager
	pulse     pulseOsc
	disposed  bool
}

// DefaultDimColor is the dim color new nodes start with.
var DefaultDimColor = Color{0.5, 0.5, 0.5, 1}

// NewNode creates a shown, opaque, white node with the default transform.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		transform:      DefaultTransform(),
		color:          ColorWhite,
		dimColor:       DefaultDimColor,
		defaultColor:   ColorWhite,
		opacity:        1,
		shown:          true,
		worldAlpha:     1,
		transformDirty: true,
	}
}

// --- Animation targets ---

// Position returns the translation of the local transform.
func (n *Node) Position() Vec2 { return n.transform.Translation() }

// SetPosition sets the translation of the local transform.
func (n *Node) SetPosition(v Vec2) {
	n.transform = n.transform.WithTranslation(v)
	n.transformDirty = true
}

// Rotation returns the rotation of the local transform in radians.
func (n *Node) Rotation() float64 { return n.transform.Rotation() }

// SetRotation sets the rotation of the local transform in radians.
func (n *Node) SetRotation(r float64) {
	n.transform = n.transform.WithRotation(r)
	n.transformDirty = true
}

// Scale returns the scale of the local transform. Pulsing is not included.
func (n *Node) Scale() Vec2 { return n.transform.Scaling() }

// SetScale sets the scale of the local transform.
func (n *Node) SetScale(v Vec2) {
	n.transform = n.transform.WithScaling(v)
	n.transformDirty = true
}

// Transform returns a copy of the local transform.
func (n *Node) Transform() Transform { return n.transform.Copy() }

// SetTransform replaces the local transform.
func (n *Node) SetTransform(t Transform) {
	n.transform = t.Copy()
	n.transformDirty = true
}

// Color returns the node color.
func (n *Node) Color() Color { return n.color }

// SetColor sets the node color.
func (n *Node) SetColor(c Color) {
	n.color = c.Clamped()
	n.transformDirty = true
}

// DimColor returns the color Dim steps fade to.
func (n *Node) DimColor() Color { return n.dimColor }

// SetDimColor sets the color Dim steps fade to.
func (n *Node) SetDimColor(c Color) { n.dimColor = c.Clamped() }

// DefaultColor returns the color Undim steps fade back to.
func (n *Node) DefaultColor() Color { return n.defaultColor }

// SetDefaultColor sets the color Undim steps fade back to.
func (n *Node) SetDefaultColor(c Color) { n.defaultColor = c.Clamped() }

// Opacity returns the opacity multiplier.
func (n *Node) Opacity() float64 { return n.opacity }

// SetOpacity sets the opacity multiplier, clamped to [0, 1].
func (n *Node) SetOpacity(o float64) {
	n.opacity = clamp01(o)
	n.transformDirty = true
}

// IsShown reports whether the node is shown.
func (n *Node) IsShown() bool { return n.shown }

// Show shows the node.
func (n *Node) Show() { n.shown = true }

// Hide hides the node. Hidden nodes keep animating.
func (n *Node) Hide() { n.shown = false }

// Pulse starts a pulse of the node's rendered scale, replacing any running
// pulse.
func (n *Node) Pulse(cfg PulseConfig) {
	n.pulse.start(cfg)
	n.transformDirty = true
}

// StopPulsing eases a running pulse back to the rest scale.
func (n *Node) StopPulsing() { n.pulse.stop() }

// PulseFactor returns the current pulse multiplier applied on top of Scale.
func (n *Node) PulseFactor() float64 { return n.pulse.value() }

// IsPulsing reports whether a pulse or its settle is running.
func (n *Node) IsPulsing() bool { return n.pulse.active() }

// --- Scenarios ---

// SetScenario stores sc under name, replacing any previous one.
func (n *Node) SetScenario(name string, sc Scenario) {
	if n.scenarios == nil {
		n.scenarios = make(map[string]Scenario)
	}
	if t, ok := sc.Transform.Get(); ok {
		sc.Transform = Some(t.Copy())
	}
	n.scenarios[name] = sc
}

// SaveScenario stores the node's current transform, color and visibility
// under name.
func (n *Node) SaveScenario(name string) {
	n.SetScenario(name, n.CurrentScenario())
}

// RemoveScenario deletes the scenario stored under name.
func (n *Node) RemoveScenario(name string) {
	delete(n.scenarios, name)
}

// ScenarioTarget returns the scenario stored under name.
func (n *Node) ScenarioTarget(name string) (Scenario, bool) {
	sc, ok := n.scenarios[name]
	return sc, ok
}

// CurrentScenario returns the node's current transform, color and
// visibility as a scenario.
func (n *Node) CurrentScenario() Scenario {
	return Scenario{
		Transform: Some(n.transform.Copy()),
		Color:     Some(n.color),
		IsShown:   Some(n.shown),
	}
}

// Animations returns the node's manager, creating it on first use.
func (n *Node) Animations() *Manager {
	if n.anims == nil {
		n.anims = NewManager(n)
		n.anims.Name = n.Name
		n.anims.SetDebug(globalDebug)
	}
	return n.anims
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("cadence: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("cadence: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("cadence: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// Find returns the first node named name in this subtree, depth first,
// including n itself.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, stops its animations, marks it
// as disposed, and recursively disposes all descendants. Steps still bound
// to a disposed node do nothing.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	if n.anims != nil {
		n.anims.Clear()
		n.anims = nil
	}
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.scenarios = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed. A nil node counts
// as disposed.
func (n *Node) IsDisposed() bool {
	return n == nil || n.disposed
}

// --- World transform ---

// WorldMatrix returns the node's world affine matrix as of the last
// Scene.Tick, including pulsing.
func (n *Node) WorldMatrix() [6]float64 { return n.worldTransform }

// WorldAlpha returns the product of opacity and color alpha down the tree
// as of the last Scene.Tick.
func (n *Node) WorldAlpha() float64 { return n.worldAlpha }

func (n *Node) localMatrix() [6]float64 {
	m := n.transform.Matrix()
	if f := n.pulse.value(); f != 1 {
		m = multiplyAffine(m, [6]float64{f, 0, 0, f, 0, 0})
	}
	return m
}

// updateWorldTransform recomputes world matrices and alphas for dirty
// subtrees.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, n.localMatrix())
		n.worldAlpha = parentAlpha * n.opacity * n.color.A
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
