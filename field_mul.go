package p256k1

import "math/bits"

// modulusWords is the field prime p = 2^256 - 2^32 - 977, as four 64-bit
// words, word 0 least significant. Used by field.go's canonical-range
// check (fieldBytesInRange), not by the multiply below.
var modulusWords = [4]uint64{
	0xFFFFFFFEFFFFFC2F,
	0xFFFFFFFFFFFFFFFF,
	0xFFFFFFFFFFFFFFFF,
	0xFFFFFFFFFFFFFFFF,
}

// wide128 is a two-word (lo + hi*2^64) accumulator, used to hold one
// column of the 5x5 schoolbook product below.
type wide128 struct {
	lo, hi uint64
}

// addMul adds a*b into w.
func (w *wide128) addMul(a, b uint64) {
	hi, lo := bits.Mul64(a, b)
	var c uint64
	w.lo, c = bits.Add64(w.lo, lo, 0)
	w.hi += hi + c
}

// wide192 is a three-word (lo + mid*2^64 + hi*2^128) accumulator, wide
// enough to hold a schoolbook column plus its folded-in reduction term.
type wide192 struct {
	lo, mid, hi uint64
}

// add128 adds o into w.
func (w *wide192) add128(o wide128) {
	var c uint64
	w.lo, c = bits.Add64(w.lo, o.lo, 0)
	w.mid, c = bits.Add64(w.mid, o.hi, c)
	w.hi += c
}

// add192 adds o into w.
func (w *wide192) add192(o wide192) {
	var c uint64
	w.lo, c = bits.Add64(w.lo, o.lo, 0)
	w.mid, c = bits.Add64(w.mid, o.mid, c)
	w.hi += o.hi + c
}

// addScaled adds o*scalar into w.
func (w *wide192) addScaled(o wide128, scalar uint64) {
	h1, l1 := bits.Mul64(o.lo, scalar)
	h2, l2 := bits.Mul64(o.hi, scalar)

	var cLo uint64
	w.lo, cLo = bits.Add64(w.lo, l1, 0)

	mid1, cMid1 := bits.Add64(h1, l2, 0)
	var cMid uint64
	w.mid, cMid = bits.Add64(w.mid, mid1, cLo)

	w.hi += h2 + cMid1 + cMid
}

// shiftRight splits w into its low n bits (n < 64) and the remaining value
// shifted right by n.
func (w wide192) shiftRight(n uint) (low uint64, rem wide192) {
	mask := uint64(1)<<n - 1
	low = w.lo & mask
	rem.lo = (w.lo >> n) | (w.mid << (64 - n))
	rem.mid = (w.mid >> n) | (w.hi << (64 - n))
	rem.hi = w.hi >> n
	return low, rem
}

// carryPropagate walks five wide columns (weights 2^0, 2^52, ..., 2^208)
// down into canonical 52/48-bit limbs, returning whatever spills past the
// 2^256 boundary as the coefficient of 2^256 still owed to the result.
func carryPropagate(col [5]wide192) (limb [5]uint64, overflow wide128) {
	var carry wide192
	for k := 0; k < 4; k++ {
		v := col[k]
		v.add192(carry)
		limb[k], carry = v.shiftRight(52)
	}
	v4 := col[4]
	v4.add192(carry)
	var rem wide192
	limb[4], rem = v4.shiftRight(48)
	// rem's own hi word is always zero here: col[4] starts under 2^107 and
	// every carry folded into it is of comparable size, so what spills past
	// the 48-bit limb stays well inside 128 bits.
	overflow = wide128{lo: rem.lo, hi: rem.mid}
	return limb, overflow
}

// foldOverflow folds overflow's contribution (the coefficient of a 2^256
// term, via 2^256 ≡ fieldReductionConstant mod p) back into limb, and
// carry-propagates the result, returning any new (far smaller) overflow.
func foldOverflow(limb [5]uint64, overflow wide128) ([5]uint64, wide128) {
	var col [5]wide192
	col[0].lo, col[1].lo, col[2].lo, col[3].lo, col[4].lo =
		limb[0], limb[1], limb[2], limb[3], limb[4]
	col[0].addScaled(overflow, fieldReductionConstant)
	return carryPropagate(col)
}

// mul multiplies two field elements: r = a * b, via a schoolbook product
// computed directly on the 5x52 limbs (weakly normalized first so each
// limb is bounded to its 52/48-bit mask), column-summed into nine wide128
// accumulators, then reduced using 2^260 ≡ 16*fieldReductionConstant (mod
// p) to fold the four high columns back into the low five before a final
// carry-propagation pass settles the result to magnitude 1.
//
// A single schoolbook pass leaves a reduction term (the coefficient of the
// 2^256 boundary) up to several dozen bits wide, far bigger than the
// single-bit carry normalize() deals with, so folding it back in can itself
// spill a little; foldOverflow is applied a fixed three times. The first
// overflow is below about 2^95; folding it in (times 0x1000003D1, ~2^33)
// adds under 2^128 to a value below 2^256, so the next overflow is at most
// 1, the second fold clears it, and the third is spare.
func (r *FieldElement) mul(a, b *FieldElement) {
	var aNorm, bNorm FieldElement
	aNorm = *a
	bNorm = *b
	aNorm.normalizeWeak()
	bNorm.normalizeWeak()

	var col [9]wide128
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			col[i+j].addMul(aNorm.n[i], bNorm.n[j])
		}
	}

	var out [5]wide192
	for k := 0; k < 5; k++ {
		out[k].add128(col[k])
	}
	for k := 0; k < 4; k++ {
		out[k].addScaled(col[k+5], fieldReductionConstantShifted)
	}

	limb, overflow := carryPropagate(out)
	for pass := 0; pass < 3; pass++ {
		limb, overflow = foldOverflow(limb, overflow)
	}

	r.n = limb
	r.magnitude = 1
	r.normalized = false
}

// sqr squares a field element: r = a^2.
func (r *FieldElement) sqr(a *FieldElement) {
	r.mul(a, a)
}

// inv computes the modular inverse of a field element using Fermat's
// little theorem: a^(-1) = a^(p-2) mod p. The addition chain (15
// multiplications, 255 squarings) is the standard secp256k1 field-inverse
// chain built from x2=a^3, x3=a^7, ..., x223=a^(2^223-1).
func (r *FieldElement) inv(a *FieldElement) {
	var aNorm FieldElement
	aNorm = *a
	if aNorm.magnitude > 1 {
		aNorm.normalize()
	}

	var x2, x3, x6, x9, x11, x22, x44, x88, x176, x220, x223, t1 FieldElement

	x2.sqr(&aNorm)
	x2.mul(&x2, &aNorm)

	x3.sqr(&x2)
	x3.mul(&x3, &aNorm)

	x6 = x3
	for j := 0; j < 3; j++ {
		x6.sqr(&x6)
	}
	x6.mul(&x6, &x3)

	x9 = x6
	for j := 0; j < 3; j++ {
		x9.sqr(&x9)
	}
	x9.mul(&x9, &x3)

	x11 = x9
	for j := 0; j < 2; j++ {
		x11.sqr(&x11)
	}
	x11.mul(&x11, &x2)

	x22 = x11
	for j := 0; j < 11; j++ {
		x22.sqr(&x22)
	}
	x22.mul(&x22, &x11)

	x44 = x22
	for j := 0; j < 22; j++ {
		x44.sqr(&x44)
	}
	x44.mul(&x44, &x22)

	x88 = x44
	for j := 0; j < 44; j++ {
		x88.sqr(&x88)
	}
	x88.mul(&x88, &x44)

	x176 = x88
	for j := 0; j < 88; j++ {
		x176.sqr(&x176)
	}
	x176.mul(&x176, &x88)

	x220 = x176
	for j := 0; j < 44; j++ {
		x220.sqr(&x220)
	}
	x220.mul(&x220, &x44)

	x223 = x220
	for j := 0; j < 3; j++ {
		x223.sqr(&x223)
	}
	x223.mul(&x223, &x3)

	t1 = x223
	for j := 0; j < 23; j++ {
		t1.sqr(&t1)
	}
	t1.mul(&t1, &x22)
	for j := 0; j < 5; j++ {
		t1.sqr(&t1)
	}
	t1.mul(&t1, &aNorm)
	for j := 0; j < 3; j++ {
		t1.sqr(&t1)
	}
	t1.mul(&t1, &x2)
	for j := 0; j < 2; j++ {
		t1.sqr(&t1)
	}
	r.mul(&aNorm, &t1)
	r.normalize()
}

// sqrt computes r = sqrt(a) mod p if a is a quadratic residue, using
// a^((p+1)/4) (valid since p ≡ 3 mod 4). Shares the x2/x3/.../x223
// addition-chain prefix with inv, diverging only in the final squarings.
// Reports whether a square root exists; r is unspecified on false.
func (r *FieldElement) sqrt(a *FieldElement) bool {
	var aNorm FieldElement
	aNorm = *a
	if aNorm.magnitude > 1 {
		aNorm.normalize()
	}

	if aNorm.isZero() {
		r.setInt(0)
		return true
	}

	var x2, x3, x6, x9, x11, x22, x44, x88, x176, x220, x223, t1 FieldElement

	x2.sqr(&aNorm)
	x2.mul(&x2, &aNorm)

	x3.sqr(&x2)
	x3.mul(&x3, &aNorm)

	x6 = x3
	for j := 0; j < 3; j++ {
		x6.sqr(&x6)
	}
	x6.mul(&x6, &x3)

	x9 = x6
	for j := 0; j < 3; j++ {
		x9.sqr(&x9)
	}
	x9.mul(&x9, &x3)

	x11 = x9
	for j := 0; j < 2; j++ {
		x11.sqr(&x11)
	}
	x11.mul(&x11, &x2)

	x22 = x11
	for j := 0; j < 11; j++ {
		x22.sqr(&x22)
	}
	x22.mul(&x22, &x11)

	x44 = x22
	for j := 0; j < 22; j++ {
		x44.sqr(&x44)
	}
	x44.mul(&x44, &x22)

	x88 = x44
	for j := 0; j < 44; j++ {
		x88.sqr(&x88)
	}
	x88.mul(&x88, &x44)

	x176 = x88
	for j := 0; j < 88; j++ {
		x176.sqr(&x176)
	}
	x176.mul(&x176, &x88)

	x220 = x176
	for j := 0; j < 44; j++ {
		x220.sqr(&x220)
	}
	x220.mul(&x220, &x44)

	x223 = x220
	for j := 0; j < 3; j++ {
		x223.sqr(&x223)
	}
	x223.mul(&x223, &x3)

	t1 = x223
	for j := 0; j < 23; j++ {
		t1.sqr(&t1)
	}
	t1.mul(&t1, &x22)
	for j := 0; j < 6; j++ {
		t1.sqr(&t1)
	}
	t1.mul(&t1, &x2)
	t1.sqr(&t1)
	r.sqr(&t1)
	r.normalize()

	var check FieldElement
	check.sqr(r)
	check.normalize()
	return check.equal(&aNorm)
}

// isSquare reports whether a is a quadratic residue mod p, by computing
// sqrt(a) and checking whether its square equals a.
func (a *FieldElement) isSquare() bool {
	var r FieldElement
	ok := r.sqrt(a)
	return ok
}

// half computes r = a/2 mod p.
func (r *FieldElement) half(a *FieldElement) {
	var t FieldElement
	t = *a
	t.normalize()

	if t.n[0]&1 != 0 {
		// a odd: compute (a + p) first so the sum is even, then shift.
		sum0 := t.n[0] + fieldModulusLimb0
		t.n[0] = sum0 & limb0Max
		sum1 := t.n[1] + fieldModulusLimb1 + (sum0 >> 52)
		t.n[1] = sum1 & limb0Max
		sum2 := t.n[2] + fieldModulusLimb2 + (sum1 >> 52)
		t.n[2] = sum2 & limb0Max
		sum3 := t.n[3] + fieldModulusLimb3 + (sum2 >> 52)
		t.n[3] = sum3 & limb0Max
		sum4 := t.n[4] + fieldModulusLimb4 + (sum3 >> 52)
		t.n[4] = sum4
	}

	r.n[0] = (t.n[0] >> 1) | ((t.n[1] & 1) << 51)
	r.n[1] = (t.n[1] >> 1) | ((t.n[2] & 1) << 51)
	r.n[2] = (t.n[2] >> 1) | ((t.n[3] & 1) << 51)
	r.n[3] = (t.n[3] >> 1) | ((t.n[4] & 1) << 51)
	r.n[4] = t.n[4] >> 1

	r.magnitude = 1
	r.normalized = false
}
