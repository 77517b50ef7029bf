package p256k1

// GLV endomorphism constants and the signed-digit constant-time scalar
// multiplication built on top of them.

// lambdaConstant is a primitive cube root of unity mod n: lambda^3 == 1,
// lambda^2 + lambda == -1 (mod n).
var lambdaConstant = Scalar{
	d: [4]uint64{
		(uint64(0xDF02967C) << 32) | uint64(0x1B23BD72),
		(uint64(0x122E22EA) << 32) | uint64(0x20816678),
		(uint64(0xA5261C02) << 32) | uint64(0x8812645A),
		(uint64(0x5363AD4C) << 32) | uint64(0xC05C30E0),
	},
}

// betaConstant is a primitive cube root of unity mod p: beta^3 == 1,
// beta^2 + beta == -1 (mod p). lambda*(x,y) == (beta*x, y).
var betaConstant FieldElement

func init() {
	betaBytes := []byte{
		0x7a, 0xe9, 0x6a, 0x2b, 0x65, 0x7c, 0x07, 0x10,
		0x6e, 0x64, 0x47, 0x9e, 0xac, 0x34, 0x34, 0xe9,
		0x9c, 0xf0, 0x49, 0x75, 0x12, 0xf5, 0x89, 0x95,
		0xc1, 0x39, 0x6c, 0x28, 0x71, 0x95, 0x01, 0xee,
	}
	betaConstant.setB32(betaBytes)
	betaConstant.normalize()
}

// Lattice constants for scalarSplitLambda, fixed per the GLV decomposition
// of secp256k1's curve order. d[0] holds the low 64 bits, d[3] the high.
var (
	minusB1 = Scalar{
		d: [4]uint64{
			(uint64(0x6F547FA9) << 32) | uint64(0x0ABFE4C3),
			(uint64(0xE4437ED6) << 32) | uint64(0x010E8828),
			0,
			0,
		},
	}
	minusB2 = Scalar{
		d: [4]uint64{
			(uint64(0xD765CDA8) << 32) | uint64(0x3DB1562C),
			(uint64(0x8A280AC5) << 32) | uint64(0x0774346D),
			(uint64(0xFFFFFFFF) << 32) | uint64(0xFFFFFFFE),
			(uint64(0xFFFFFFFF) << 32) | uint64(0xFFFFFFFF),
		},
	}
	g1 = Scalar{
		d: [4]uint64{
			(uint64(0xE893209A) << 32) | uint64(0x45DBB031),
			(uint64(0x3DAA8A14) << 32) | uint64(0x71E8CA7F),
			(uint64(0xE86C90E4) << 32) | uint64(0x9284EB15),
			(uint64(0x3086D221) << 32) | uint64(0xA7D46BCD),
		},
	}
	g2 = Scalar{
		d: [4]uint64{
			(uint64(0x1571B4AE) << 32) | uint64(0x8AC47F71),
			(uint64(0x221208AC) << 32) | uint64(0x9DF506C6),
			(uint64(0x6F547FA9) << 32) | uint64(0x0ABFE4C4),
			(uint64(0xE4437ED6) << 32) | uint64(0x010E8828),
		},
	}
)

// mulShiftVar returns round(k*g / 2^shift), computed from the full 512-bit
// product. k may be secret (scalarSplitLambda passes the scalar being
// split); shift is a fixed public constant, so the limb selection depends
// only on it, and the rounding bit is added without branching on its value.
func mulShiftVar(k, g *Scalar, shift uint) Scalar {
	var l [8]uint64
	var temp Scalar
	temp.mul512(l[:], k, g)

	var result Scalar
	shiftlimbs := shift / 64
	shiftlow := shift % 64
	shifthigh := 64 - shiftlow

	if shift < 512 {
		result.d[0] = l[shiftlimbs] >> shiftlow
		if shift < 448 && shiftlow != 0 {
			result.d[0] |= l[shiftlimbs+1] << shifthigh
		}
	}
	if shift < 448 {
		result.d[1] = l[shiftlimbs+1] >> shiftlow
		if shift < 384 && shiftlow != 0 {
			result.d[1] |= l[shiftlimbs+2] << shifthigh
		}
	}
	if shift < 384 {
		result.d[2] = l[shiftlimbs+2] >> shiftlow
		if shift < 320 && shiftlow != 0 {
			result.d[2] |= l[shiftlimbs+3] << shifthigh
		}
	}
	if shift < 320 {
		result.d[3] = l[shiftlimbs+3] >> shiftlow
	}

	// Round to nearest: add the bit just below the shift point.
	if shift > 0 {
		bitPos := (shift - 1) & 0x3f
		limbIdx := (shift - 1) >> 6
		if limbIdx < 8 {
			var one Scalar
			one.setInt(uint((l[limbIdx] >> bitPos) & 1))
			result.add(&result, &one)
		}
	}

	return result
}

// scalarSplitLambda splits k into r1, r2 with r1 + lambda*r2 == k (mod n)
// and both r1, r2 bounded in magnitude by roughly 2^128, halving the
// effective bit length of the scalar multiplication below.
func scalarSplitLambda(r1, r2, k *Scalar) {
	var c1, c2 Scalar
	c1 = mulShiftVar(k, &g1, 384)
	c2 = mulShiftVar(k, &g2, 384)

	c1.mul(&c1, &minusB1)
	c2.mul(&c2, &minusB2)

	r2.add(&c1, &c2)

	r1.mul(r2, &lambdaConstant)
	r1.negate(r1)
	r1.add(r1, k)
}

// geMulLambda multiplies a point by lambda via the endomorphism
// lambda*(x,y) = (beta*x, y): a single field multiply, no scalar work.
func geMulLambda(r *GroupElementAffine, a *GroupElementAffine) {
	*r = *a
	r.x.mul(&r.x, &betaConstant)
	r.x.normalize()
}

// Parameters for the GLV-split, signed-digit constant-time scalar
// multiplication: group size 5 gives a 16-entry odd-multiples table per
// half of the split scalar, and 26 groups cover the ~130-bit range each
// half needs after splitting.
const (
	ecmultConstGroupSize = 5
	ecmultConstTableSize = 1 << (ecmultConstGroupSize - 1) // 16
	ecmultConstBits      = 130                             // smallest multiple of 5 >= 129
	ecmultConstGroups    = (ecmultConstBits + ecmultConstGroupSize - 1) / ecmultConstGroupSize
)

// ecmultConstK = (2^130 - 2^129 - 1)*(1 + lambda) mod n. Added to q before
// halving so the halved scalar's split digits land in the signed-digit
// table's range regardless of q's parity.
var ecmultConstK = Scalar{
	d: [4]uint64{
		(uint64(0xb5c2c1dc) << 32) | uint64(0xde9798d9),
		(uint64(0x589ae848) << 32) | uint64(0x26ba29e4),
		(uint64(0xc2bdd6bf) << 32) | uint64(0x7c118d6b),
		(uint64(0xa4e88a7d) << 32) | uint64(0xcb13034e),
	},
}

// sOffset is 2^128, added to each GLV half so the halves stay non-negative
// while centered on a range the signed-digit recoding can consume.
var sOffset = Scalar{
	d: [4]uint64{0, 0, 1, 0},
}

// signedDigitTableGet recovers the point for an n-bit signed digit from a
// table of odd multiples [1*P, 3*P, ..., 15*P], scanning every entry and
// folding it in via cmov so the table index derived from a secret digit
// never drives a memory address directly.
func signedDigitTableGet(pre []GroupElementAffine, n uint32) GroupElementAffine {
	negative := ((n >> (ecmultConstGroupSize - 1)) ^ 1) != 0

	var negMask uint32
	if negative {
		negMask = 0xFFFFFFFF
	}
	index := (negMask ^ n) & ((1 << (ecmultConstGroupSize - 1)) - 1)

	result := pre[0]
	for i := uint32(1); i < ecmultConstTableSize; i++ {
		flag := 0
		if i == index {
			flag = 1
		}
		result.x.cmov(&pre[i].x, flag)
		result.y.cmov(&pre[i].y, flag)
	}

	result.infinity = false

	var negY FieldElement
	negY.negate(&result.y, 1)
	flag := 0
	if negative {
		flag = 1
	}
	result.y.cmov(&negY, flag)
	result.y.normalize()

	return result
}

// buildOddMultiplesTableWithGlobalZ builds the odd-multiples table
// [1*a, 3*a, ..., (2n-1)*a] using the effective-affine technique: every
// point is carried with an implicit shared Z denominator (globalZ) so the
// per-step additions need no individual field inversion, only one at the
// end to fold globalZ back in. Kept as the inversion-avoiding alternative
// to buildOddMultiplesTableSimple's batch-inverted construction; not
// currently wired into ecmultConstGLV, which uses the simpler one.
func buildOddMultiplesTableWithGlobalZ(n int, aJac *GroupElementJacobian) ([]GroupElementAffine, *FieldElement) {
	if aJac.isInfinity() {
		return nil, nil
	}

	pre := make([]GroupElementAffine, n)
	zr := make([]FieldElement, n)

	var d GroupElementJacobian
	d.double(aJac)

	var dGe GroupElementAffine
	dGe.setXY(&d.x, &d.y)

	var dZ FieldElement
	dZ = d.z
	var zi2, zi3 FieldElement
	zi2.sqr(&d.z)
	zi3.mul(&zi2, &d.z)
	pre[0].x.mul(&aJac.x, &zi2)
	pre[0].y.mul(&aJac.y, &zi3)
	pre[0].infinity = false
	zr[0] = dZ

	var ai GroupElementJacobian
	ai.setGE(&pre[0])
	ai.z = aJac.z

	for i := 1; i < n; i++ {
		ai.addGEWithZR(&ai, &dGe, &zr[i])
		pre[i].x = ai.x
		pre[i].y = ai.y
		pre[i].infinity = false
	}

	if n > 0 {
		i := n - 1
		pre[i].y.normalizeWeak()

		var zs FieldElement
		zs = zr[i]

		for i > 0 {
			if i != n-1 {
				zs.mul(&zs, &zr[i])
			}
			i--

			var zs2, zs3 FieldElement
			zs2.sqr(&zs)
			zs3.mul(&zs2, &zs)
			pre[i].x.mul(&pre[i].x, &zs2)
			pre[i].y.mul(&pre[i].y, &zs3)
		}
	}

	var globalZ FieldElement
	globalZ.mul(&ai.z, &d.z)
	globalZ.normalize()

	return pre, &globalZ
}

// buildOddMultiplesTableSimple builds the odd-multiples table
// [1*a, 3*a, ..., (2n-1)*a] by chaining variable-time additions and
// converting the whole batch to affine with a single Montgomery-batched
// inversion. Used by ecmultConstGLV: simpler than the global-Z variant and
// the inversion cost is amortized the same way either method.
func buildOddMultiplesTableSimple(n int, aJac *GroupElementJacobian) []GroupElementAffine {
	if aJac.isInfinity() {
		return nil
	}

	preJac := make([]GroupElementJacobian, n)
	preAff := make([]GroupElementAffine, n)

	preJac[0] = *aJac

	var d GroupElementJacobian
	d.double(aJac)

	for i := 1; i < n; i++ {
		preJac[i].addVar(&preJac[i-1], &d)
	}

	z := make([]FieldElement, n)
	for i := 0; i < n; i++ {
		z[i] = preJac[i].z
	}
	zInv := make([]FieldElement, n)
	batchInverse(zInv, z)

	for i := 0; i < n; i++ {
		var zi2, zi3 FieldElement
		zi2.sqr(&zInv[i])
		zi3.mul(&zi2, &zInv[i])
		preAff[i].x.mul(&preJac[i].x, &zi2)
		preAff[i].y.mul(&preJac[i].y, &zi3)
		preAff[i].infinity = false
	}

	return preAff
}

// ecmultConstGLV computes r = q*a in constant time with respect to q,
// using the GLV endomorphism to split q into two ~128-bit halves (v1, v2)
// multiplying a and lambda*a respectively, then evaluating both halves
// together through a shared doubling chain with signed-digit table
// lookups. q has ecmultConstK added and is halved before splitting, and
// sOffset is added to each half after splitting, so the recoded digits
// never need a sign exception. Each table entry is folded into the accumulator with
// completeAddMixed rather than addGE, so the point-addition step itself
// never branches on the operands' infinity flag or on whether the two
// points happen to collide.
func ecmultConstGLV(r *GroupElementJacobian, a *GroupElementAffine, q *Scalar) {
	if a.isInfinity() {
		r.setInfinity()
		return
	}

	var s, v1, v2 Scalar
	s.add(q, &ecmultConstK)
	s.half(&s)
	scalarSplitLambda(&v1, &v2, &s)
	v1.add(&v1, &sOffset)
	v2.add(&v2, &sOffset)

	var aJac GroupElementJacobian
	aJac.setGE(a)
	preA := buildOddMultiplesTableSimple(ecmultConstTableSize, &aJac)

	preALam := make([]GroupElementAffine, ecmultConstTableSize)
	for i := 0; i < ecmultConstTableSize; i++ {
		geMulLambda(&preALam[i], &preA[i])
	}

	for group := ecmultConstGroups - 1; group >= 0; group-- {
		bitOffset := uint(group * ecmultConstGroupSize)
		bits1 := uint32(v1.getBits(bitOffset, ecmultConstGroupSize))
		bits2 := uint32(v2.getBits(bitOffset, ecmultConstGroupSize))

		t := signedDigitTableGet(preA, bits1)

		if group == ecmultConstGroups-1 {
			r.setGE(&t)
		} else {
			for j := 0; j < ecmultConstGroupSize; j++ {
				r.double(r)
			}
			completeAddMixed(r, r, &t)
		}

		t = signedDigitTableGet(preALam, bits2)
		completeAddMixed(r, r, &t)
	}
}
