package p256k1

// Generic constant-time helpers used by the generator-mul table lookup
// (the scalar-mul lookup, signedDigitTableGet in glv.go, does its own
// scan). The lookup scans every entry and folds it in via cmov
// rather than indexing by the secret digit, so the instructions executed
// and memory touched don't depend on which entry was wanted.

// eqMaskU32 returns 1 if a == b, else 0, without a data-dependent branch.
func eqMaskU32(a, b uint32) int {
	diff := a ^ b
	// diff is 0 iff a == b; OR-folding it down to one bit and inverting
	// gives a branch-free equality test.
	diff |= diff >> 16
	diff |= diff >> 8
	diff |= diff >> 4
	diff |= diff >> 2
	diff |= diff >> 1
	return int(^diff) & 1
}

// selectAffine scans table and returns the entry at index, built up via
// cmov so the scan touches every entry regardless of index.
func selectAffine(table []GroupElementAffine, index uint32) GroupElementAffine {
	r := table[0]
	for i := 1; i < len(table); i++ {
		r.x.cmov(&table[i].x, eqMaskU32(uint32(i), index))
		r.y.cmov(&table[i].y, eqMaskU32(uint32(i), index))
	}
	return r
}

// declassify is a documentation hook marking the point where a value that
// was secret (a scalar bit, a table index) is now safe to branch on
// because it has been folded into public data (a serialized point, a
// verification result). It performs no operation; its only purpose is to
// make that transition visible at the call site.
func declassify(v bool) bool {
	return v
}
