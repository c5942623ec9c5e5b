// Copyright © 2015 Nik Unger
//
// This file is part of ringsig.
//
// Ringsig is free software: you can redistribute it and/or modify it under the
// terms of the GNU Lesser General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Ringsig is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE. See the GNU Lesser General Public License for more
// details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with ringsig. If not, see <http://www.gnu.org/licenses/>.

package curve

import (
	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes the concatenation of parts with the original Keccak
// padding (not FIPS-202 SHA3).
func Keccak256(parts ...[]byte) [Size]byte {
	k := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		k.Write(p)
	}
	var out [Size]byte
	k.Sum(out[:0])
	return out
}

// HashToScalar returns Keccak256(parts...) reduced mod ℓ.
func HashToScalar(parts ...[]byte) *edwards25519.Scalar {
	sum := Keccak256(parts...)
	return ReduceScalar(sum[:])
}

// HashToPoint maps a key to a point of the prime-order subgroup:
// 8·elligator(Keccak256(key)). The result is deterministic and its discrete
// logarithm with respect to G is unknown.
func HashToPoint(key []byte) *edwards25519.Point {
	sum := Keccak256(key)
	return MulEight(mapToPoint(&sum))
}

var (
	feOne    = new(field.Element).One()
	feA      = new(field.Element).Mult32(feOne, 486662)
	feMinusA = new(field.Element).Negate(feA)
	// -A²
	feMinusA2 = new(field.Element).Negate(new(field.Element).Square(feA))
	feSqrtM1  = mustFieldElement([Size]byte{
		0xb0, 0xa0, 0x0e, 0x4a, 0x27, 0x1b, 0xee, 0xc4,
		0x78, 0xe4, 0x2f, 0xad, 0x06, 0x18, 0x43, 0x2f,
		0xa7, 0xd7, 0xfb, 0x3d, 0x99, 0x00, 0x4d, 0x2b,
		0x0b, 0xdf, 0xc1, 0x4f, 0x80, 0x24, 0x83, 0x2b,
	})

	// A·(A+2)
	feAAp2 = new(field.Element).Multiply(feA, new(field.Element).Add(feA, new(field.Element).Mult32(feOne, 2)))

	fffb1 = mustSqrt(new(field.Element).Negate(new(field.Element).Add(feAAp2, feAAp2))) // sqrt(-2A(A+2))
	fffb2 = mustSqrt(new(field.Element).Add(feAAp2, feAAp2))                            // sqrt(2A(A+2))
	fffb3 = mustSqrt(new(field.Element).Negate(new(field.Element).Multiply(feSqrtM1, feAAp2)))
	fffb4 = mustSqrt(new(field.Element).Multiply(feSqrtM1, feAAp2))
)

func mustFieldElement(b [Size]byte) *field.Element {
	fe, err := new(field.Element).SetBytes(b[:])
	if err != nil {
		panic(err)
	}
	return fe
}

func mustSqrt(x *field.Element) *field.Element {
	r, wasSquare := new(field.Element).SqrtRatio(x, feOne)
	if wasSquare != 1 {
		panic("curve: map constant is not a square")
	}
	return r
}

// loadFieldElement reads all 256 bits of b and reduces them mod p. The
// field package ignores the top bit, so it is folded back in as 2^255 ≡ 19.
func loadFieldElement(b *[Size]byte) *field.Element {
	low := *b
	low[31] &= 0x7f
	u := mustFieldElement(low)
	if b[31]&0x80 != 0 {
		u.Add(u, new(field.Element).Mult32(feOne, 19))
	}
	return u
}

// divPowM1 returns (u/v)^((p+3)/8) as u·v³·(u·v⁷)^((p-5)/8).
func divPowM1(u, v *field.Element) *field.Element {
	v3 := new(field.Element).Square(v)
	v3.Multiply(v3, v)
	uv7 := new(field.Element).Square(v3)
	uv7.Multiply(uv7, v)
	uv7.Multiply(uv7, u)
	r := new(field.Element).Pow22523(uv7)
	r.Multiply(r, v3)
	return r.Multiply(r, u)
}

// mapToPoint is the CryptoNote ge_fromfe_frombytes_vartime map. The output
// is on the curve but not cofactor-cleared.
func mapToPoint(b *[Size]byte) *edwards25519.Point {
	u := loadFieldElement(b)

	v := new(field.Element).Square(u)
	v.Add(v, v) // 2u²
	w := new(field.Element).Add(v, feOne)
	x := new(field.Element).Square(w)
	x.Add(x, new(field.Element).Multiply(feMinusA2, v)) // w² - 2A²u²

	rX := divPowM1(w, x)
	y := new(field.Element).Square(rX)
	y.Multiply(y, x)
	z := new(field.Element).Set(feMinusA)

	var sign int
	switch {
	case new(field.Element).Subtract(w, y).Equal(new(field.Element).Zero()) == 1:
		rX.Multiply(rX, fffb2)
		rX.Multiply(rX, u)
		z.Multiply(z, v)
	case new(field.Element).Add(w, y).Equal(new(field.Element).Zero()) == 1:
		rX.Multiply(rX, fffb1)
		rX.Multiply(rX, u)
		z.Multiply(z, v)
	default:
		x.Multiply(x, feSqrtM1)
		y.Square(rX)
		y.Multiply(y, x)
		if new(field.Element).Subtract(w, y).Equal(new(field.Element).Zero()) == 1 {
			rX.Multiply(rX, fffb4)
		} else {
			rX.Multiply(rX, fffb3)
		}
		sign = 1
	}
	if rX.IsNegative() != sign {
		rX.Negate(rX)
	}

	// Projective (X:Y:Z) = (rX·(z+w) : z-w : z+w), and T = X·Y/Z = rX·(z-w).
	pZ := new(field.Element).Add(z, w)
	pY := new(field.Element).Subtract(z, w)
	pX := new(field.Element).Multiply(rX, pZ)
	pT := new(field.Element).Multiply(rX, pY)
	p, err := new(edwards25519.Point).SetExtendedCoordinates(pX, pY, pZ, pT)
	if err != nil {
		// z+w vanishes only for two field values, which a Keccak output
		// cannot be steered to.
		return edwards25519.NewIdentityPoint()
	}
	return p
}
