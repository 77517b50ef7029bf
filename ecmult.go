package p256k1

// Variable-base scalar multiplication: r = k*P.
//
// ScalarMul is the constant-time entry point, used whenever k is secret
// (private-key operations). It splits k via the GLV endomorphism into two
// half-width scalars and walks both halves together through the signed-digit
// windowed table lookup defined in glv.go (ecmultConstGLV), so the number of
// point operations and the table-access pattern are independent of k. Table
// construction itself runs over the (public) coordinates of P using the
// ordinary variable-time addition chain; only the bits of k ever drive a
// table selection, and those selections always go through the cmov-based
// scan in signedDigitTableGet rather than an indexed load.
func ScalarMul(r *GroupElementJacobian, k *Scalar, p *GroupElementAffine) {
	if p.infinity || k.isZero() {
		r.setInfinity()
		return
	}
	ecmultConstGLV(r, p, k)
}

// FastScalarMul performs scalar multiplication without the constant-time
// discipline ScalarMul provides. Only use this where k is already public
// (e.g. signature verification, not signing).
func FastScalarMul(r *GroupElementJacobian, k *Scalar, p *GroupElementAffine) {
	if k.isZero() || p.infinity {
		r.setInfinity()
		return
	}

	r.setInfinity()
	for i := 255; i >= 0; i-- {
		r.double(r)
		if k.getBits(uint(i), 1) != 0 {
			r.addGE(r, p)
		}
	}
}

// Ecmult computes r = a*G + b*P, combining fixed-base generator
// multiplication with variable-base multiplication. Intended for
// verification-style computations where both scalars are public, so it
// uses the faster variable-time paths throughout.
func Ecmult(r *GroupElementJacobian, a, b *Scalar, p *GroupElementAffine) {
	var aG, bP GroupElementJacobian

	if !a.isZero() {
		FastEcmultGen(&aG, a)
	} else {
		aG.setInfinity()
	}

	if !b.isZero() && !p.infinity {
		FastScalarMul(&bP, b, p)
	} else {
		bP.setInfinity()
	}

	r.addVar(&aG, &bP)
}

// EcmultMulti computes r = sum(scalars[i] * points[i]) for public scalars.
func EcmultMulti(r *GroupElementJacobian, scalars []*Scalar, points []*GroupElementAffine) {
	if len(scalars) != len(points) {
		panic("scalars and points must have same length")
	}

	r.setInfinity()
	for i := range scalars {
		if scalars[i].isZero() || points[i].infinity {
			continue
		}
		var temp GroupElementJacobian
		FastScalarMul(&temp, scalars[i], points[i])
		r.addVar(r, &temp)
	}
}

// EcmultStrauss computes r = sum(scalars[i] * points[i]) in a single
// interleaved bit-by-bit pass rather than computing and summing each term
// separately; faster than EcmultMulti for more than a couple of terms.
// Intended for public scalars.
func EcmultStrauss(r *GroupElementJacobian, scalars []*Scalar, points []*GroupElementAffine) {
	if len(scalars) != len(points) {
		panic("scalars and points must have same length")
	}

	r.setInfinity()
	for bitPos := 255; bitPos >= 0; bitPos-- {
		r.double(r)
		for i := range scalars {
			if scalars[i].getBits(uint(bitPos), 1) != 0 {
				r.addGE(r, points[i])
			}
		}
	}
}

// EcmultEndomorphism computes r = k*P using the GLV split directly against
// P (rather than the fixed precomputed generator table), interleaving the
// two half-width multiplications with EcmultStrauss. Scalars produced by
// scalarSplitLambda may be negative relative to n/2; a half above n/2 is
// negated (negate under isHigh) and that sign folded into the point being
// multiplied so EcmultStrauss only ever sees
// reduced, non-negative-by-convention scalars.
func EcmultEndomorphism(r *GroupElementJacobian, k *Scalar, p *GroupElementAffine) {
	if k.isZero() || p.infinity {
		r.setInfinity()
		return
	}

	var k1, k2 Scalar
	scalarSplitLambda(&k1, &k2, k)

	neg1 := k1.isHigh()
	if neg1 {
		k1.negate(&k1)
	}
	neg2 := k2.isHigh()
	if neg2 {
		k2.negate(&k2)
	}

	var betaP GroupElementAffine
	geMulLambda(&betaP, p)

	if neg1 {
		var negP GroupElementAffine
		negP.negate(p)
		p = &negP
	}
	if neg2 {
		betaP.negate(&betaP)
	}

	points := [2]*GroupElementAffine{p, &betaP}
	scalars := [2]*Scalar{&k1, &k2}
	EcmultStrauss(r, scalars[:], points[:])
}
