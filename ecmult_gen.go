package p256k1

import "sync"

// Fixed-base generator multiplication: r = k*G.
//
// The table holds, for each of 64 nibble-wide windows of k, the 16 points
// (j+1)*16^i*G for j = 0..15. Every digit (j+1) is nonzero, so no table
// entry is ever the point at infinity and the running accumulator never
// needs special-case handling for an all-zero high window. That requires
// compensating for the constant offset sum_i 16^i*G the (j+1) shift
// introduces; genOffset holds its negation and seeds the accumulator
// before the first window is added in, the same technique libsecp256k1
// uses for its ecmult_gen table.
const (
	genWindowSize = 4
	genTableSize  = 1 << genWindowSize // 16
	genWindows    = 256 / genWindowSize
)

var (
	genTable  [genWindows][genTableSize]GroupElementAffine
	genOffset GroupElementAffine
	genOnce   sync.Once
)

func buildGenTable() {
	var current GroupElementJacobian
	current.setGE(&Generator)

	var offsetAccum GroupElementJacobian
	offsetAccum.setInfinity()

	for i := 0; i < genWindows; i++ {
		offsetAccum.addVar(&offsetAccum, &current)

		var currentAff GroupElementAffine
		currentAff.setGEJ(&current)
		genTable[i][0] = currentAff

		var acc GroupElementJacobian
		acc.setGE(&currentAff)
		for j := 1; j < genTableSize; j++ {
			acc.addGE(&acc, &currentAff)
			genTable[i][j].setGEJ(&acc)
		}

		if i < genWindows-1 {
			for k := 0; k < genWindowSize; k++ {
				current.double(&current)
			}
		}
	}

	var negOffset GroupElementJacobian
	negOffset.negate(&offsetAccum)
	genOffset.setGEJ(&negOffset)
}

// genTableSelect performs a constant-time scan over the 16 entries of
// window i, selecting the one at digit via a cmov mask rather than an
// indexed load, so the memory access pattern doesn't depend on digit.
func genTableSelect(window int, digit uint32) GroupElementAffine {
	return selectAffine(genTable[window][:], digit)
}

// EcmultGen performs constant-time fixed-base scalar multiplication: r = k*G.
// Intended for secret k (private-key-to-public-key derivation, nonce*G).
// Every window's selected table entry is folded in via completeAddMixed
// rather than addGE, so the sum stays correct when the running total and
// the selected entry are the same point, which happens for some scalars.
func EcmultGen(r *GroupElementJacobian, k *Scalar) {
	genOnce.Do(buildGenTable)

	if k.isZero() {
		r.setInfinity()
		return
	}

	r.setGE(&genOffset)
	for i := 0; i < genWindows; i++ {
		digit := k.getBits(uint(i*genWindowSize), genWindowSize)
		t := genTableSelect(i, digit)
		completeAddMixed(r, r, &t)
	}
}

// FastEcmultGen performs generator multiplication without the table-scan
// discipline EcmultGen provides. Only use where k is already public.
func FastEcmultGen(r *GroupElementJacobian, k *Scalar) {
	if k.isZero() {
		r.setInfinity()
		return
	}
	FastScalarMul(r, k, &Generator)
}

// GenBlind derives a blinding scalar from seed and folds it into the
// accumulator's starting offset, so repeated EcmultGen calls with the same
// private scalar don't retrace the same sequence of intermediate points.
// Passing a nil seed removes blinding.
func GenBlind(seed []byte) {
	genOnce.Do(buildGenTable)

	if seed == nil {
		var offset GroupElementJacobian
		offset.setInfinity()
		var accum GroupElementJacobian
		accum.setGE(&Generator)
		for i := 0; i < genWindows; i++ {
			offset.addVar(&offset, &accum)
			if i < genWindows-1 {
				for k := 0; k < genWindowSize; k++ {
					accum.double(&accum)
				}
			}
		}
		var neg GroupElementJacobian
		neg.negate(&offset)
		genOffset.setGEJ(&neg)
		return
	}

	h := sha256simdSum(seed)
	var blindScalar Scalar
	blindScalar.SetBytesUnchecked(h[:])

	var blindPoint GroupElementJacobian
	FastEcmultGen(&blindPoint, &blindScalar)

	var base GroupElementJacobian
	base.setGE(&genOffset)
	base.addVar(&base, &blindPoint)
	genOffset.setGEJ(&base)
}
