package p256k1

import (
	"bytes"
	"testing"
)

func TestEncodeCompressedDecodeRoundTrip(t *testing.T) {
	enc, err := EncodeCompressed(&Generator)
	if err != nil {
		t.Fatalf("EncodeCompressed: %v", err)
	}
	if len(enc) != 33 {
		t.Fatalf("compressed encoding length = %d, want 33", len(enc))
	}
	if enc[0] != 0x02 && enc[0] != 0x03 {
		t.Fatalf("compressed tag byte = %#x, want 0x02 or 0x03", enc[0])
	}

	decoded, err := DecodePoint(enc)
	if err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	decoded.x.normalize()
	decoded.y.normalize()
	if !decoded.equal(&Generator) {
		t.Fatal("compressed round trip changed the point")
	}
}

func TestEncodeUncompressedDecodeRoundTrip(t *testing.T) {
	enc, err := EncodeUncompressed(&Generator)
	if err != nil {
		t.Fatalf("EncodeUncompressed: %v", err)
	}
	if len(enc) != 65 {
		t.Fatalf("uncompressed encoding length = %d, want 65", len(enc))
	}
	if enc[0] != 0x04 {
		t.Fatalf("uncompressed tag byte = %#x, want 0x04", enc[0])
	}

	decoded, err := DecodePoint(enc)
	if err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	decoded.x.normalize()
	decoded.y.normalize()
	if !decoded.equal(&Generator) {
		t.Fatal("uncompressed round trip changed the point")
	}
}

func TestEncodeInfinityIsError(t *testing.T) {
	var inf GroupElementAffine
	inf.setInfinity()

	if _, err := EncodeCompressed(&inf); err != ErrInfinityResult {
		t.Fatalf("EncodeCompressed(infinity) error = %v, want ErrInfinityResult", err)
	}
	if _, err := EncodeUncompressed(&inf); err != ErrInfinityResult {
		t.Fatalf("EncodeUncompressed(infinity) error = %v, want ErrInfinityResult", err)
	}
}

func TestDecodePointRejectsBadLength(t *testing.T) {
	if _, err := DecodePoint([]byte{0x02, 0x01}); err != ErrInvalidEncoding {
		t.Fatalf("DecodePoint(short) error = %v, want ErrInvalidEncoding", err)
	}
}

func TestDecodePointRejectsOffCurveX(t *testing.T) {
	var badX [33]byte
	badX[0] = 0x02
	badX[32] = 0x05 // x=5: 5^3+7 = 132, which is not a square mod p
	_, err := DecodePoint(badX[:])
	if err == nil {
		t.Skip("x=5 happened to be on the curve; inconclusive")
	}
	if err != ErrPointNotOnCurve {
		t.Fatalf("DecodePoint(off-curve x) error = %v, want ErrPointNotOnCurve", err)
	}
}

func TestDecodePointRejectsOutOfRangeCoordinate(t *testing.T) {
	var enc [65]byte
	enc[0] = 0x04
	for i := 1; i <= 32; i++ {
		enc[i] = 0xFF // x = 2^256-1, out of range
	}
	if _, err := DecodePoint(enc[:]); err != ErrInvalidFieldBytes {
		t.Fatalf("DecodePoint(out-of-range x) error = %v, want ErrInvalidFieldBytes", err)
	}
}

func TestEncodeCompressedTagMatchesYParity(t *testing.T) {
	enc, err := EncodeCompressed(&Generator)
	if err != nil {
		t.Fatalf("EncodeCompressed: %v", err)
	}

	var y FieldElement
	y = Generator.y
	y.normalize()

	wantOdd := enc[0] == 0x03
	if y.isOdd() != wantOdd {
		t.Fatal("compressed tag byte does not match y parity")
	}

	var uncompressed [65]byte
	uncompressed[0] = 0x04
	var xBuf [32]byte
	var xNorm FieldElement
	xNorm = Generator.x
	xNorm.normalize()
	xNorm.getB32(xBuf[:])
	if !bytes.Equal(enc[1:33], xBuf[:]) {
		t.Fatal("compressed encoding's x bytes don't match the generator's x")
	}
}
