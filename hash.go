package p256k1

import sha256simd "github.com/minio/sha256-simd"

// sha256simdSum hashes data with the AVX2/SHA-NI accelerated implementation
// from minio/sha256-simd, used to derive the generator-table blinding
// scalar from caller-supplied entropy in GenBlind.
func sha256simdSum(data []byte) [32]byte {
	return sha256simd.Sum256(data)
}
