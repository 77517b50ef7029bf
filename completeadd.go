package p256k1

// cmov sets r to a if flag != 0, leaving r unchanged otherwise. Used to
// select between two already-computed results without branching on which
// one is wanted.
func (r *GroupElementJacobian) cmov(a *GroupElementJacobian, flag int) {
	r.x.cmov(&a.x, flag)
	r.y.cmov(&a.y, flag)
	r.z.cmov(&a.z, flag)
	mask := flag != 0
	r.infinity = (r.infinity && !mask) || (a.infinity && mask)
}

// fieldEqualMask returns 1 if a == b (both normalized first), else 0.
func fieldEqualMask(a, b *FieldElement) int {
	var an, bn FieldElement
	an, bn = *a, *b
	an.normalize()
	bn.normalize()
	if an.equal(&bn) {
		return 1
	}
	return 0
}

// completeAdd computes r = a + b by evaluating both the general addition
// law and the doubling law in full and picking the result via cmov, using
// is_double/is_inverse/is_a_infinity/is_b_infinity flags. The flags are
// computed with ordinary Go comparisons (fieldEqualMask and the infinity
// tests use `if` on data derived from the points); the field arithmetic and
// the cmov selection do not branch on them. Unlike addVar (named for its
// variable-time short-circuiting on infinity and point equality),
// completeAdd is meant for code paths where a or b may depend on secret
// scalar bits.
func completeAdd(r, a, b *GroupElementJacobian) {
	// General addition formula (secp256k1_gej_add_var's arithmetic, minus
	// its early-exit branches), evaluated unconditionally.
	var z22, z12, u1, u2, s1, s2, h, i FieldElement
	z22.sqr(&b.z)
	z12.sqr(&a.z)
	u1.mul(&a.x, &z22)
	u2.mul(&b.x, &z12)
	s1.mul(&a.y, &z22)
	s1.mul(&s1, &b.z)
	s2.mul(&b.y, &z12)
	s2.mul(&s2, &a.z)

	h.negate(&u1, u1.magnitude)
	h.add(&u2)
	i.negate(&s2, s2.magnitude)
	i.add(&s1)

	var general GroupElementJacobian
	var t, hh, h3 FieldElement
	t.mul(&h, &b.z)
	general.z.mul(&a.z, &t)
	hh.sqr(&h)
	hh.negate(&hh, hh.magnitude)
	h3.mul(&hh, &h)
	t.mul(&u1, &hh)
	general.x.sqr(&i)
	general.x.add(&h3)
	general.x.add(&t)
	general.x.add(&t)
	t.add(&general.x)
	general.y.mul(&t, &i)
	h3.mul(&h3, &s1)
	general.y.add(&h3)
	general.infinity = false

	var doubled GroupElementJacobian
	doubled.double(a)

	hZero := fieldEqualMask(&u1, &u2) == 1
	iZero := fieldEqualMask(&s1, &s2) == 1

	isDouble, isInverse := 0, 0
	if hZero && iZero {
		isDouble = 1
	}
	if hZero && !iZero {
		isInverse = 1
	}

	*r = general
	r.cmov(&doubled, isDouble)

	var inf GroupElementJacobian
	inf.setInfinity()
	r.cmov(&inf, isInverse)

	aInf, bInf := 0, 0
	if a.infinity {
		aInf = 1
	}
	if b.infinity {
		bInf = 1
	}
	r.cmov(b, aInf)
	r.cmov(a, bInf)
}

// completeAddMixed computes r = a + b for a Jacobian point a and an affine
// point b (Z_b = 1 implicitly), using the same branchless selection
// discipline as completeAdd.
func completeAddMixed(r *GroupElementJacobian, a *GroupElementJacobian, b *GroupElementAffine) {
	var bJac GroupElementJacobian
	bJac.setGE(b)
	completeAdd(r, a, &bJac)
}
