package cadence

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertApprox(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want ~%v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- Transform values ---

func TestDefaultTransform(t *testing.T) {
	tr := DefaultTransform()
	if len(tr.Components) != 3 {
		t.Fatalf("len(Components) = %d, want 3", len(tr.Components))
	}
	kinds := []ComponentKind{KindScale, KindRotate, KindTranslate}
	for i, k := range kinds {
		if tr.Components[i].Kind != k {
			t.Errorf("Components[%d].Kind = %d, want %d", i, tr.Components[i].Kind, k)
		}
	}
	if tr.Scaling() != (Vec2{1, 1}) {
		t.Errorf("Scaling = %v, want (1, 1)", tr.Scaling())
	}
}

func TestTransformGettersWithoutComponents(t *testing.T) {
	var tr Transform
	if tr.Translation() != (Vec2{}) {
		t.Errorf("Translation = %v, want zero", tr.Translation())
	}
	if tr.Rotation() != 0 {
		t.Errorf("Rotation = %v, want 0", tr.Rotation())
	}
	if tr.Scaling() != (Vec2{1, 1}) {
		t.Errorf("Scaling = %v, want (1, 1)", tr.Scaling())
	}
}

func TestTransformWithDoesNotAlias(t *testing.T) {
	a := DefaultTransform()
	b := a.WithTranslation(Vec2{5, 6})
	if a.Translation() != (Vec2{}) {
		t.Errorf("original Translation = %v, want zero", a.Translation())
	}
	if b.Translation() != (Vec2{5, 6}) {
		t.Errorf("Translation = %v, want (5, 6)", b.Translation())
	}

	c := Transform{}.Rotate(1).WithScaling(Vec2{2, 2})
	if len(c.Components) != 2 || c.Components[1].Kind != KindScale {
		t.Errorf("WithScaling on a transform without scale should append, got %+v", c.Components)
	}
}

func TestTransformAddSub(t *testing.T) {
	a := Transform{}.Scale(1, 2).Rotate(0.5).Translate(10, 20)
	b := Transform{}.Scale(1, 1).Rotate(0.25).Translate(-5, 5)

	sum := a.Add(b)
	assertNear(t, "sum.scale.x", sum.Components[0].X, 2)
	assertNear(t, "sum.rot", sum.Rotation(), 0.75)
	assertNear(t, "sum.tx", sum.Translation().X, 5)

	diff := sum.Sub(b)
	for i := range diff.Components {
		assertNear(t, "diff.X", diff.Components[i].X, a.Components[i].X)
		assertNear(t, "diff.Y", diff.Components[i].Y, a.Components[i].Y)
	}
}

func TestTransformIsSimilar(t *testing.T) {
	if !DefaultTransform().IsSimilar(DefaultTransform().WithRotation(3)) {
		t.Error("same layout should be similar")
	}
	if DefaultTransform().IsSimilar(Transform{}.Translate(0, 0)) {
		t.Error("different layout should not be similar")
	}
}

func TestTransformDeltaToFollowsDirection(t *testing.T) {
	start := Transform{}.Rotate(0.1)
	target := Transform{}.Rotate(2*math.Pi - 0.1)

	plain := start.deltaTo(target, Opt[RotationDirection]{})
	assertNear(t, "plain", plain.Rotation(), 2*math.Pi-0.2)

	shortest := start.deltaTo(target, Some(RotateShortest))
	assertApprox(t, "shortest", shortest.Rotation(), -0.2, 1e-9)
}

func TestTransformToDelta(t *testing.T) {
	start := DefaultTransform()
	delta := Transform{}.Scale(1, 1).Rotate(1).Translate(10, -10)
	half := start.toDelta(delta, 0.5, PathOptions{})
	assertNear(t, "scale", half.Scaling().X, 1.5)
	assertNear(t, "rot", half.Rotation(), 0.5)
	assertNear(t, "tx", half.Translation().X, 5)
	assertNear(t, "ty", half.Translation().Y, -5)
}

func TestTransformClipRotation(t *testing.T) {
	tr := Transform{}.Rotate(3 * math.Pi / 2).clipRotation(ClipNeg180To180)
	assertNear(t, "rot", tr.Rotation(), -math.Pi/2)
}

// --- Matrix ---

func TestMatrixIdentity(t *testing.T) {
	assertMatrix(t, "default", DefaultTransform().Matrix(), identityTransform)
}

func TestMatrixTranslation(t *testing.T) {
	m := DefaultTransform().WithTranslation(Vec2{100, 50}).Matrix()
	assertMatrix(t, "translate", m, [6]float64{1, 0, 0, 1, 100, 50})
}

func TestMatrixScale(t *testing.T) {
	m := DefaultTransform().WithScaling(Vec2{2, 3}).Matrix()
	assertMatrix(t, "scale", m, [6]float64{2, 0, 0, 3, 0, 0})
}

func TestMatrixRotation90(t *testing.T) {
	m := DefaultTransform().WithRotation(math.Pi / 2).Matrix()
	p := TransformPoint(m, Vec2{1, 0})
	assertNear(t, "x", p.X, 0)
	assertNear(t, "y", p.Y, 1)
}

func TestMatrixAppliesComponentsInOrder(t *testing.T) {
	// scale then translate: the translation is not scaled
	m := Transform{}.Scale(2, 2).Translate(10, 0).Matrix()
	p := TransformPoint(m, Vec2{1, 1})
	assertNear(t, "x", p.X, 12)
	assertNear(t, "y", p.Y, 2)

	// translate then scale: the translation is scaled
	m = Transform{}.Translate(10, 0).Scale(2, 2).Matrix()
	p = TransformPoint(m, Vec2{1, 1})
	assertNear(t, "x", p.X, 22)
	assertNear(t, "y", p.Y, 2)
}

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -0.5, 3, 10, 20}
	assertMatrix(t, "I*M", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "M*I", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 20}
	b := [6]float64{1, 0, 0, 1, 5, 7}
	assertMatrix(t, "a*b", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 15, 27})
}

// --- updateWorldTransform ---

func TestWorldTransformParentChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.SetPosition(Vec2{100, 0})
	child.SetPosition(Vec2{10, 0})

	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "parent.tx", parent.worldTransform[4], 100)
	assertNear(t, "child.tx", child.worldTransform[4], 110)
}

func TestAlphaPropagation(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.SetOpacity(0.5)
	child.SetOpacity(0.5)
	child.SetColor(Color{1, 1, 1, 0.5})

	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "parent.worldAlpha", parent.worldAlpha, 0.5)
	assertNear(t, "child.worldAlpha", child.worldAlpha, 0.125)
}

func TestDirtyFlagSkipsClean(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.SetPosition(Vec2{100, 0})
	child.SetPosition(Vec2{10, 0})
	updateWorldTransform(parent, identityTransform, 1.0, false)

	// Change the child without a setter so it stays clean.
	child.transform = child.transform.WithTranslation(Vec2{999, 0})

	updateWorldTransform(parent, identityTransform, 1.0, false)
	assertNear(t, "child.tx (stale)", child.worldTransform[4], 110)
}

func TestParentRecomputedPropagates(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.SetPosition(Vec2{100, 0})
	child.SetPosition(Vec2{10, 0})
	updateWorldTransform(parent, identityTransform, 1.0, false)

	parent.SetPosition(Vec2{200, 0})
	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "child.tx (from parent)", child.worldTransform[4], 210)
}

func BenchmarkMatrix(b *testing.B) {
	tr := DefaultTransform().WithRotation(0.3).WithTranslation(Vec2{10, 20})
	b.ReportAllocs()
	for b.Loop() {
		_ = tr.Matrix()
	}
}

func BenchmarkUpdateWorldTransform10k(b *testing.B) {
	root := NewNode("root")
	for i := range 100 {
		parent := NewNode("p")
		parent.SetPosition(Vec2{float64(i), 0})
		root.AddChild(parent)
		for j := range 100 {
			child := NewNode("c")
			child.SetPosition(Vec2{0, float64(j)})
			parent.AddChild(child)
		}
	}
	b.ResetTimer()
	for b.Loop() {
		root.transformDirty = true
		updateWorldTransform(root, identityTransform, 1.0, false)
	}
}
