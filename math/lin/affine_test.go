package lin

import "testing"

func TestAffineIdentityPointIsUnchanged(t *testing.T) {
	f := NewAffineI()
	p := &V3{X: 1, Y: 2, Z: 3}
	out := f.Point(p)
	if !out.Eq(p) {
		t.Errorf("identity transform changed point: got %v", out)
	}
}

func TestAffineMultAppliesRightOperandFirst(t *testing.T) {
	translate := NewAffineI().SetTranslate(1, 0, 0)
	scale := NewAffineI().SetScale(2, 2, 2)
	f := NewAffineI().Mult(translate, scale)

	out := f.Point(&V3{X: 1, Y: 0, Z: 0})
	// scale first: (1,0,0) -> (2,0,0), then translate: -> (3,0,0)
	want := &V3{X: 3, Y: 0, Z: 0}
	if !out.Eq(want) {
		t.Errorf("Mult(translate, scale).Point = %v, want %v", out, want)
	}
}

func TestAffineInvUndoesTransform(t *testing.T) {
	f := NewAffineI().Mult(
		NewAffineI().SetTranslate(5, -2, 3),
		NewAffineI().SetScale(2, 3, 4),
	)
	inv := f.Inv()
	p := &V3{X: 1, Y: 1, Z: 1}
	round := inv.Point(f.Point(p))
	if !round.Aeq(p) {
		t.Errorf("Inv did not undo transform: got %v, want %v", round, p)
	}
}

func TestAffineDirIgnoresTranslation(t *testing.T) {
	f := NewAffineI().SetTranslate(10, 10, 10)
	d := &V3{X: 1, Y: 0, Z: 0}
	out := f.Dir(d)
	if !out.Eq(d) {
		t.Errorf("Dir should ignore translation, got %v", out)
	}
}

func TestAffineSetRotateQuarterTurn(t *testing.T) {
	q := (&Q{}).SetAa(0, 0, 1, Rad(90))
	f := NewAffineI().SetRotate(q)
	out := f.Point(&V3{X: 1, Y: 0, Z: 0})
	want := &V3{X: 0, Y: 1, Z: 0}
	if !out.Aeq(want) {
		t.Errorf("SetRotate(90deg about Z).Point(1,0,0) = %v, want %v", out, want)
	}
}
