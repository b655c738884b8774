package cadence

import "math"

// Scene owns a node tree and drives every node's animations and pulses from
// one clock.
type Scene struct {
	root  *Node
	debug bool

	last    float64
	started bool
	walkBuf []*Node
}

// NewScene creates a new scene with a pre-created root node.
func NewScene() *Scene {
	return &Scene{root: NewNode("root")}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Tick advances every node's manager and pulse to now (seconds), then
// refreshes world transforms. It returns the smallest value any manager
// returned and whether any manager ran; see Manager.NextFrame.
func (s *Scene) Tick(now float64) (remaining float64, animating bool) {
	var dt float64
	if s.started {
		dt = max(now-s.last, 0)
	}
	s.last, s.started = now, true

	// Callbacks may add or dispose nodes, so walk a snapshot.
	s.walkBuf = collectNodes(s.root, s.walkBuf[:0])
	remaining = math.Inf(1)
	for _, n := range s.walkBuf {
		if n.disposed {
			continue
		}
		if n.pulse.active() {
			// Pulse durations are in the manager's time.
			pdt := dt
			if n.anims != nil {
				pdt = n.anims.virtualDelta(dt)
			}
			n.pulse.update(pdt)
			n.transformDirty = true
		}
		if n.anims == nil {
			continue
		}
		if r, ok := n.anims.NextFrame(now); ok {
			animating = true
			remaining = min(remaining, r)
		}
	}
	clear(s.walkBuf)

	updateWorldTransform(s.root, identityTransform, 1.0, false)
	if s.debug {
		debugLogTick(now, animating)
	}
	if !animating {
		return 0, false
	}
	return remaining, true
}

// IsAnimating reports whether any node has a running sequence.
func (s *Scene) IsAnimating() bool {
	found := false
	walk(s.root, func(n *Node) bool {
		if n.anims != nil && n.anims.IsAnimating() {
			found = true
		}
		return !found
	})
	return found
}

// NextFinishTime returns the shortest time until any running sequence in
// the tree ends. ok is false when nothing is running.
func (s *Scene) NextFinishTime(now float64) (d float64, ok bool) {
	d = math.Inf(1)
	walk(s.root, func(n *Node) bool {
		if n.anims == nil {
			return true
		}
		if r, found := n.anims.NextFinishTime(now); found && r < d {
			d, ok = r, true
		}
		return true
	})
	if !ok {
		return 0, false
	}
	return d, true
}

// CancelAll cancels the sequences of every node. See Manager.CancelAll.
func (s *Scene) CancelAll(force Force) {
	s.walkBuf = collectNodes(s.root, s.walkBuf[:0])
	for _, n := range s.walkBuf {
		if n.anims != nil && !n.disposed {
			n.anims.CancelAll(force)
		}
	}
	clear(s.walkBuf)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are printed, and per-tick manager
// activity is logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	walk(s.root, func(n *Node) bool {
		if n.anims != nil {
			n.anims.SetDebug(enabled)
		}
		return true
	})
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

func collectNodes(n *Node, buf []*Node) []*Node {
	buf = append(buf, n)
	for _, c := range n.children {
		buf = collectNodes(c, buf)
	}
	return buf
}

// walk visits n and its descendants depth first until fn returns false.
func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
