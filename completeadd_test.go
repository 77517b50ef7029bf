package p256k1

import "testing"

func normalizedAffine(j *GroupElementJacobian) GroupElementAffine {
	var a GroupElementAffine
	a.setGEJ(j)
	a.x.normalize()
	a.y.normalize()
	return a
}

func TestCompleteAddMatchesAddVarGeneric(t *testing.T) {
	var gJac, twoG, r GroupElementJacobian
	gJac.setGE(&Generator)
	twoG.double(&gJac)

	completeAdd(&r, &gJac, &twoG)
	var viaVar GroupElementJacobian
	viaVar.addVar(&gJac, &twoG)

	got := normalizedAffine(&r)
	want := normalizedAffine(&viaVar)
	if !got.equal(&want) {
		t.Fatal("completeAdd(G, 2G) != addVar(G, 2G)")
	}
}

func TestCompleteAddCommutative(t *testing.T) {
	var gJac, twoG, r1, r2 GroupElementJacobian
	gJac.setGE(&Generator)
	twoG.double(&gJac)

	completeAdd(&r1, &gJac, &twoG)
	completeAdd(&r2, &twoG, &gJac)

	got1 := normalizedAffine(&r1)
	got2 := normalizedAffine(&r2)
	if !got1.equal(&got2) {
		t.Fatal("completeAdd(P,Q) != completeAdd(Q,P)")
	}
}

func TestCompleteAddWithInfinityIsIdentity(t *testing.T) {
	var gJac, inf, r GroupElementJacobian
	gJac.setGE(&Generator)
	inf.setInfinity()

	completeAdd(&r, &gJac, &inf)
	got := normalizedAffine(&r)
	if !got.equal(&Generator) {
		t.Fatal("completeAdd(P, O) != P")
	}

	var r2 GroupElementJacobian
	completeAdd(&r2, &inf, &gJac)
	got2 := normalizedAffine(&r2)
	if !got2.equal(&Generator) {
		t.Fatal("completeAdd(O, P) != P")
	}
}

func TestCompleteAddWithNegationIsInfinity(t *testing.T) {
	var gJac, negGJac, r GroupElementJacobian
	var negG GroupElementAffine

	gJac.setGE(&Generator)
	negG.negate(&Generator)
	negGJac.setGE(&negG)

	completeAdd(&r, &gJac, &negGJac)
	if !r.isInfinity() {
		t.Fatal("completeAdd(P, -P) != O")
	}
}

func TestCompleteAddSelfMatchesDouble(t *testing.T) {
	var gJac, r, doubled GroupElementJacobian
	gJac.setGE(&Generator)

	completeAdd(&r, &gJac, &gJac)
	doubled.double(&gJac)

	got := normalizedAffine(&r)
	want := normalizedAffine(&doubled)
	if !got.equal(&want) {
		t.Fatal("completeAdd(P,P) != double(P)")
	}
}

func TestCompleteAddBothInfinityIsInfinity(t *testing.T) {
	var inf1, inf2, r GroupElementJacobian
	inf1.setInfinity()
	inf2.setInfinity()

	completeAdd(&r, &inf1, &inf2)
	if !r.isInfinity() {
		t.Fatal("completeAdd(O, O) != O")
	}
}

func TestCompleteAddMixedMatchesCompleteAdd(t *testing.T) {
	var gJac, twoGJac, r1 GroupElementJacobian
	gJac.setGE(&Generator)
	twoGJac.double(&gJac)
	twoGAff := normalizedAffine(&twoGJac)

	completeAdd(&r1, &gJac, &twoGJac)

	var r2 GroupElementJacobian
	completeAddMixed(&r2, &gJac, &twoGAff)

	got1 := normalizedAffine(&r1)
	got2 := normalizedAffine(&r2)
	if !got1.equal(&got2) {
		t.Fatal("completeAddMixed disagrees with completeAdd")
	}
}

func TestFieldEqualMaskDetectsEquality(t *testing.T) {
	var a, b FieldElement
	a.setInt(5)
	b.setInt(5)
	if fieldEqualMask(&a, &b) != 1 {
		t.Fatal("fieldEqualMask(5, 5) != 1")
	}

	var c FieldElement
	c.setInt(6)
	if fieldEqualMask(&a, &c) != 0 {
		t.Fatal("fieldEqualMask(5, 6) != 0")
	}
}
