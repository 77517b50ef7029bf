package p256k1

import "testing"

func TestGeneratorIsOnCurve(t *testing.T) {
	if !Generator.isValid() {
		t.Fatal("generator point does not satisfy y^2 = x^3 + 7")
	}
}

func TestDoubleMatchesAddVarSelf(t *testing.T) {
	var gJac, doubled, added GroupElementJacobian
	gJac.setGE(&Generator)
	doubled.double(&gJac)
	added.addVar(&gJac, &gJac)

	var doubledAff, addedAff GroupElementAffine
	doubledAff.setGEJ(&doubled)
	addedAff.setGEJ(&added)
	doubledAff.x.normalize()
	doubledAff.y.normalize()
	addedAff.x.normalize()
	addedAff.y.normalize()

	if !doubledAff.equal(&addedAff) {
		t.Fatal("double(G) != addVar(G,G)")
	}
}

func TestAddVarCommutative(t *testing.T) {
	var gJac, twoG, threeG1, threeG2 GroupElementJacobian
	gJac.setGE(&Generator)
	twoG.double(&gJac)
	threeG1.addVar(&gJac, &twoG)
	threeG2.addVar(&twoG, &gJac)

	var aff1, aff2 GroupElementAffine
	aff1.setGEJ(&threeG1)
	aff2.setGEJ(&threeG2)
	aff1.x.normalize()
	aff1.y.normalize()
	aff2.x.normalize()
	aff2.y.normalize()

	if !aff1.equal(&aff2) {
		t.Fatal("addVar(P,Q) != addVar(Q,P)")
	}
}

func TestAddVarWithInfinityIsIdentity(t *testing.T) {
	var gJac, inf, result GroupElementJacobian
	gJac.setGE(&Generator)
	inf.setInfinity()
	result.addVar(&gJac, &inf)

	var resultAff GroupElementAffine
	resultAff.setGEJ(&result)
	resultAff.x.normalize()
	resultAff.y.normalize()

	if !resultAff.equal(&Generator) {
		t.Fatal("addVar(P, O) != P")
	}
}

func TestAddVarWithNegationIsInfinity(t *testing.T) {
	var gJac, negGJac, result GroupElementJacobian
	var negG GroupElementAffine

	gJac.setGE(&Generator)
	negG.negate(&Generator)
	negGJac.setGE(&negG)

	result.addVar(&gJac, &negGJac)
	if !result.isInfinity() {
		t.Fatal("addVar(P, -P) != O")
	}
}

func TestSetGEJRoundTrip(t *testing.T) {
	var gJac GroupElementJacobian
	gJac.setGE(&Generator)

	var back GroupElementAffine
	back.setGEJ(&gJac)
	back.x.normalize()
	back.y.normalize()

	if !back.equal(&Generator) {
		t.Fatal("affine -> Jacobian -> affine round trip changed the point")
	}
}

func TestGroupElementByteRoundTrip(t *testing.T) {
	var buf [64]byte
	Generator.toBytes(buf[:])

	var decoded GroupElementAffine
	decoded.fromBytes(buf[:])
	decoded.x.normalize()
	decoded.y.normalize()

	if !decoded.equal(&Generator) {
		t.Fatal("toBytes/fromBytes round trip changed the point")
	}
}

func TestGroupElementStorageRoundTrip(t *testing.T) {
	var s GroupElementStorage
	Generator.toStorage(&s)

	var decoded GroupElementAffine
	decoded.fromStorage(&s)
	decoded.x.normalize()
	decoded.y.normalize()

	if !decoded.equal(&Generator) {
		t.Fatal("toStorage/fromStorage round trip changed the point")
	}
}

func TestSetXOVarRecoversGenerator(t *testing.T) {
	var x FieldElement
	x = Generator.x
	x.normalize()

	var yNorm FieldElement
	yNorm = Generator.y
	yNorm.normalize()

	var recovered GroupElementAffine
	if !recovered.setXOVar(&x, yNorm.isOdd()) {
		t.Fatal("setXOVar failed to recover a point known to be on the curve")
	}
	if !recovered.equal(&Generator) {
		t.Fatal("setXOVar recovered the wrong point")
	}
}
