package p256k1

import "errors"

// Errors returned by the SEC1 point encoding/decoding in this file.
var (
	ErrInfinityResult    = errors.New("p256k1: operation result is the point at infinity")
	ErrInvalidEncoding   = errors.New("p256k1: invalid point encoding length or tag byte")
	ErrPointNotOnCurve   = errors.New("p256k1: encoded point is not on the curve")
	ErrInvalidFieldBytes = errors.New("p256k1: coordinate bytes are out of range for the field")
)

// EncodeCompressed writes the 33-byte SEC1 compressed encoding of p into
// out: a tag byte (0x02 for even y, 0x03 for odd y) followed by the
// big-endian x coordinate. The point at infinity has no compressed
// encoding and returns ErrInfinityResult.
func EncodeCompressed(p *GroupElementAffine) ([]byte, error) {
	if p.infinity {
		return nil, ErrInfinityResult
	}

	var x, y FieldElement
	x, y = p.x, p.y
	x.normalize()
	y.normalize()

	out := make([]byte, 33)
	if y.isOdd() {
		out[0] = 0x03
	} else {
		out[0] = 0x02
	}
	x.getB32(out[1:33])
	return out, nil
}

// EncodeUncompressed writes the 65-byte SEC1 uncompressed encoding of p:
// tag byte 0x04 followed by big-endian x and y. The point at infinity
// returns ErrInfinityResult.
func EncodeUncompressed(p *GroupElementAffine) ([]byte, error) {
	if p.infinity {
		return nil, ErrInfinityResult
	}

	var x, y FieldElement
	x, y = p.x, p.y
	x.normalize()
	y.normalize()

	out := make([]byte, 65)
	out[0] = 0x04
	x.getB32(out[1:33])
	y.getB32(out[33:65])
	return out, nil
}

// DecodePoint parses a SEC1-encoded point: 33 bytes compressed (0x02/0x03)
// or 65 bytes uncompressed (0x04). Coordinates must be canonical (< p);
// for the compressed form, the y root is recovered via setXOVar and the
// point is never implicitly validated as being on the curve for the
// uncompressed form until the curve equation check below runs.
func DecodePoint(b []byte) (*GroupElementAffine, error) {
	switch {
	case len(b) == 33 && (b[0] == 0x02 || b[0] == 0x03):
		var x FieldElement
		if _, ok := x.SetBytes(b[1:33]); !ok {
			return nil, ErrInvalidFieldBytes
		}
		var p GroupElementAffine
		if !p.setXOVar(&x, b[0] == 0x03) {
			return nil, ErrPointNotOnCurve
		}
		return &p, nil

	case len(b) == 65 && b[0] == 0x04:
		var x, y FieldElement
		if _, ok := x.SetBytes(b[1:33]); !ok {
			return nil, ErrInvalidFieldBytes
		}
		if _, ok := y.SetBytes(b[33:65]); !ok {
			return nil, ErrInvalidFieldBytes
		}
		p := &GroupElementAffine{}
		p.setXY(&x, &y)
		if !p.isValid() {
			return nil, ErrPointNotOnCurve
		}
		return p, nil

	default:
		return nil, ErrInvalidEncoding
	}
}
