package p256k1

import "fmt"

// Selftest runs a fixed battery of algebraic identities and concrete test
// vectors against the field, scalar, and point arithmetic in this package
// and reports a single pass/fail flag. It is the only operation in this
// package that can report a fatal condition; every other operation returns
// sentinel values (an infinity flag, a zero scalar) rather than aborting.
// When verbose is true, the first failing check is printed to stdout.
func Selftest(verbose bool) bool {
	checks := []struct {
		name string
		run  func() bool
	}{
		{"generator on curve", checkGeneratorOnCurve},
		{"field associativity/commutativity/distributivity", checkFieldAlgebra},
		{"field inverse", checkFieldInverse},
		{"field sqrt", checkFieldSqrt},
		{"(p-1)^2 == 1", checkFieldMinusOneSquared},
		{"scalar negate/invert", checkScalarAlgebra},
		{"GLV identity lambda*G == phi(G)", checkGLVIdentity},
		{"scalar_mul(G,1) == G", checkScalarMulOne},
		{"scalar_mul(G,2) == add(G,G)", checkScalarMulTwo},
		{"scalar_mul(G,n-1) == negate(G)", checkScalarMulNMinusOne},
		{"scalar_mul(G,n) == infinity", checkScalarMulN},
		{"generator_mul/scalar_mul/fast agreement", checkGeneratorMulAgreement},
		{"ECDH commutativity", checkECDHCommutativity},
		{"complete-add covers all cases", checkCompleteAddCases},
	}

	for _, c := range checks {
		if !c.run() {
			if verbose {
				fmt.Printf("p256k1 selftest: FAIL: %s\n", c.name)
			}
			return false
		}
	}
	return true
}

func checkGeneratorOnCurve() bool {
	return Generator.isValid()
}

func checkFieldAlgebra() bool {
	var a, b, c FieldElement
	a.setInt(5)
	b.setInt(11)
	c.setInt(17)

	var ab, ba FieldElement
	ab.mul(&a, &b)
	ba.mul(&b, &a)
	ab.normalize()
	ba.normalize()
	if !ab.equal(&ba) {
		return false
	}

	var apb, bpa FieldElement
	apb = a
	apb.add(&b)
	bpa = b
	bpa.add(&a)
	apb.normalize()
	bpa.normalize()
	if !apb.equal(&bpa) {
		return false
	}

	// (a*b)*c == a*(b*c)
	var abThenC, bc, aThenBC FieldElement
	abThenC.mul(&a, &b)
	abThenC.mul(&abThenC, &c)
	bc.mul(&b, &c)
	aThenBC.mul(&a, &bc)
	abThenC.normalize()
	aThenBC.normalize()
	if !abThenC.equal(&aThenBC) {
		return false
	}

	// a*(b+c) == a*b + a*c
	var bPlusC, lhs FieldElement
	bPlusC = b
	bPlusC.add(&c)
	lhs.mul(&a, &bPlusC)
	lhs.normalize()

	var acVal, rhs FieldElement
	rhs.mul(&a, &b)
	acVal.mul(&a, &c)
	rhs.add(&acVal)
	rhs.normalize()
	if !lhs.equal(&rhs) {
		return false
	}

	var sq1, sq2 FieldElement
	sq1.sqr(&a)
	sq2.mul(&a, &a)
	sq1.normalize()
	sq2.normalize()
	if !sq1.equal(&sq2) {
		return false
	}

	n1 := a
	n1.normalize()
	n2 := n1
	n2.normalize()
	return n1.equal(&n2)
}

func checkFieldInverse() bool {
	var a, inv, prod, one FieldElement
	a.setInt(12345)
	inv.inv(&a)
	prod.mul(&a, &inv)
	prod.normalize()
	one.setInt(1)
	return prod.equal(&one)
}

func checkFieldSqrt() bool {
	var a, sq, root, back FieldElement
	a.setInt(9)
	sq.sqr(&a)
	sq.normalize()
	if !root.sqrt(&sq) {
		return false
	}
	back.sqr(&root)
	back.normalize()
	return back.equal(&sq)
}

func checkFieldMinusOneSquared() bool {
	var pMinusOne, sq, one FieldElement
	pMinusOne.setInt(1)
	pMinusOne.negate(&pMinusOne, 1)
	sq.sqr(&pMinusOne)
	sq.normalize()
	one.setInt(1)
	return sq.equal(&one)
}

func checkScalarAlgebra() bool {
	k := NewScalar([]byte{
		0x47, 0x27, 0xda, 0xf2, 0x98, 0x6a, 0x98, 0x04,
		0xb1, 0x11, 0x7f, 0x82, 0x61, 0xab, 0xa6, 0x45,
		0xc3, 0x45, 0x37, 0xe4, 0x47, 0x4e, 0x19, 0xbe,
		0x58, 0x70, 0x07, 0x92, 0xd5, 0x01, 0xa5, 0x91,
	})

	var neg, sum, zero Scalar
	neg.negate(k)
	sum.add(k, &neg)
	zero.setInt(0)
	if !sum.equal(&zero) {
		return false
	}

	var inv, prod, one Scalar
	inv.inverse(k)
	prod.mul(k, &inv)
	one.setInt(1)
	return prod.equal(&one)
}

func checkGLVIdentity() bool {
	var phiG, lambdaG GroupElementAffine
	geMulLambda(&phiG, &Generator)

	var lambdaGJ GroupElementJacobian
	FastScalarMul(&lambdaGJ, &lambdaConstant, &Generator)
	lambdaG.setGEJ(&lambdaGJ)
	lambdaG.x.normalize()
	lambdaG.y.normalize()
	phiG.x.normalize()
	phiG.y.normalize()

	return lambdaG.equal(&phiG)
}

func checkScalarMulOne() bool {
	var one Scalar
	one.setInt(1)

	var r GroupElementJacobian
	ScalarMul(&r, &one, &Generator)

	var rAff GroupElementAffine
	rAff.setGEJ(&r)
	rAff.x.normalize()
	rAff.y.normalize()
	return rAff.equal(&Generator)
}

func checkScalarMulTwo() bool {
	var two Scalar
	two.setInt(2)

	var r GroupElementJacobian
	ScalarMul(&r, &two, &Generator)

	var gJac, doubled GroupElementJacobian
	gJac.setGE(&Generator)
	doubled.double(&gJac)

	var rAff, doubledAff GroupElementAffine
	rAff.setGEJ(&r)
	doubledAff.setGEJ(&doubled)
	rAff.x.normalize()
	rAff.y.normalize()
	doubledAff.x.normalize()
	doubledAff.y.normalize()
	return rAff.equal(&doubledAff)
}

func checkScalarMulNMinusOne() bool {
	var nMinusOne Scalar
	nMinusOne.setInt(1)
	nMinusOne.negate(&nMinusOne)

	var r GroupElementJacobian
	ScalarMul(&r, &nMinusOne, &Generator)

	var negG GroupElementAffine
	negG.negate(&Generator)

	var rAff GroupElementAffine
	rAff.setGEJ(&r)
	rAff.x.normalize()
	rAff.y.normalize()
	negG.x.normalize()
	negG.y.normalize()
	return rAff.equal(&negG)
}

func checkScalarMulN() bool {
	var n Scalar
	n.setInt(0) // n mod n == 0; scalar_mul(G, n) is the same as scalar_mul(G, 0)

	var r GroupElementJacobian
	ScalarMul(&r, &n, &Generator)
	return r.isInfinity()
}

func checkGeneratorMulAgreement() bool {
	k := NewScalar([]byte{
		0x47, 0x27, 0xda, 0xf2, 0x98, 0x6a, 0x98, 0x04,
		0xb1, 0x11, 0x7f, 0x82, 0x61, 0xab, 0xa6, 0x45,
		0xc3, 0x45, 0x37, 0xe4, 0x47, 0x4e, 0x19, 0xbe,
		0x58, 0x70, 0x07, 0x92, 0xd5, 0x01, 0xa5, 0x91,
	})

	var genMul, scalarMul, fastMul GroupElementJacobian
	EcmultGen(&genMul, k)
	ScalarMul(&scalarMul, k, &Generator)
	FastScalarMul(&fastMul, k, &Generator)

	var genAff, scalarAff, fastAff GroupElementAffine
	genAff.setGEJ(&genMul)
	scalarAff.setGEJ(&scalarMul)
	fastAff.setGEJ(&fastMul)
	genAff.x.normalize()
	genAff.y.normalize()
	scalarAff.x.normalize()
	scalarAff.y.normalize()
	fastAff.x.normalize()
	fastAff.y.normalize()

	return genAff.equal(&scalarAff) && genAff.equal(&fastAff)
}

func checkECDHCommutativity() bool {
	a := NewScalar([]byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
		0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20,
	})
	b := NewScalar([]byte{
		0x20, 0x1f, 0x1e, 0x1d, 0x1c, 0x1b, 0x1a, 0x19,
		0x18, 0x17, 0x16, 0x15, 0x14, 0x13, 0x12, 0x11,
		0x10, 0x0f, 0x0e, 0x0d, 0x0c, 0x0b, 0x0a, 0x09,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	})

	var aG, bG GroupElementJacobian
	EcmultGen(&aG, a)
	EcmultGen(&bG, b)

	var aGAff, bGAff GroupElementAffine
	aGAff.setGEJ(&aG)
	bGAff.setGEJ(&bG)
	aGAff.x.normalize()
	aGAff.y.normalize()
	bGAff.x.normalize()
	bGAff.y.normalize()

	var baG, abG GroupElementJacobian
	ScalarMul(&baG, a, &bGAff)
	ScalarMul(&abG, b, &aGAff)

	var baGAff, abGAff GroupElementAffine
	baGAff.setGEJ(&baG)
	abGAff.setGEJ(&abG)
	baGAff.x.normalize()
	baGAff.y.normalize()
	abGAff.x.normalize()
	abGAff.y.normalize()

	return baGAff.x.equal(&abGAff.x)
}

func checkCompleteAddCases() bool {
	var gJac GroupElementJacobian
	gJac.setGE(&Generator)

	var negG GroupElementAffine
	negG.negate(&Generator)
	var negGJac GroupElementJacobian
	negGJac.setGE(&negG)

	var inf GroupElementJacobian
	inf.setInfinity()

	// add(P,O) == P
	var r1 GroupElementJacobian
	completeAdd(&r1, &gJac, &inf)
	var r1Aff GroupElementAffine
	r1Aff.setGEJ(&r1)
	r1Aff.x.normalize()
	r1Aff.y.normalize()
	if !r1Aff.equal(&Generator) {
		return false
	}

	// add(P,-P) == O
	var r2 GroupElementJacobian
	completeAdd(&r2, &gJac, &negGJac)
	if !r2.isInfinity() {
		return false
	}

	// add(P,P) == dbl(P)
	var r3, doubled GroupElementJacobian
	completeAdd(&r3, &gJac, &gJac)
	doubled.double(&gJac)
	var r3Aff, doubledAff GroupElementAffine
	r3Aff.setGEJ(&r3)
	doubledAff.setGEJ(&doubled)
	r3Aff.x.normalize()
	r3Aff.y.normalize()
	doubledAff.x.normalize()
	doubledAff.y.normalize()
	if !r3Aff.equal(&doubledAff) {
		return false
	}

	// add(P,Q) == add(Q,P) for P != Q, P != -Q
	var twoG GroupElementJacobian
	twoG.double(&gJac)
	var r4, r5 GroupElementJacobian
	completeAdd(&r4, &gJac, &twoG)
	completeAdd(&r5, &twoG, &gJac)
	var r4Aff, r5Aff GroupElementAffine
	r4Aff.setGEJ(&r4)
	r5Aff.setGEJ(&r5)
	r4Aff.x.normalize()
	r4Aff.y.normalize()
	r5Aff.x.normalize()
	r5Aff.y.normalize()
	return r4Aff.equal(&r5Aff)
}
