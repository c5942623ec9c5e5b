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

// Package curve provides the Ed25519 group operations used by the ring
// signature engines: point and scalar decoding, the G, H and T generators,
// Keccak-based hashing to scalars and points, and commitment helpers.
//
// All encodings are the standard 32-byte little-endian forms used on the
// network. Decoding functions return errors for malformed input and never
// panic, since they run on untrusted data.
package curve

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"

	"filippo.io/edwards25519"
)

// Size is the length of every point and scalar encoding.
const Size = 32

var (
	ErrInvalidPoint  = errors.New("curve: invalid point encoding")
	ErrInvalidScalar = errors.New("curve: non-canonical scalar encoding")
)

var (
	hBytes = [Size]byte{
		0x8b, 0x65, 0x59, 0x70, 0x15, 0x37, 0x99, 0xaf,
		0x2a, 0xea, 0xdc, 0x9f, 0xf1, 0xad, 0xd0, 0xea,
		0x6c, 0x72, 0x51, 0xd5, 0x41, 0x54, 0xcf, 0xa9,
		0x2c, 0x17, 0x3a, 0x0d, 0xd3, 0x9c, 0x1f, 0x94,
	}
	tBytes = [Size]byte{
		0x96, 0x6f, 0xc6, 0x6b, 0x82, 0xcd, 0x56, 0xcf,
		0x85, 0xea, 0xec, 0x80, 0x1c, 0x42, 0x84, 0x5f,
		0x5f, 0x40, 0x88, 0x78, 0xd1, 0x56, 0x1e, 0x00,
		0xd3, 0xd7, 0xde, 0xd2, 0x79, 0x4d, 0x09, 0x4f,
	}

	h        = mustPoint(hBytes[:])
	t        = mustPoint(tBytes[:])
	invEight = mustInvert(8)
)

func mustPoint(b []byte) *edwards25519.Point {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		panic("curve: corrupted generator constant")
	}
	return p
}

func mustInvert(v uint64) *edwards25519.Scalar {
	return new(edwards25519.Scalar).Invert(ScalarFromUint64(v))
}

// G returns the Ed25519 base point.
func G() *edwards25519.Point { return edwards25519.NewGeneratorPoint() }

// H returns the amount generator used in Pedersen commitments.
func H() *edwards25519.Point { return new(edwards25519.Point).Set(h) }

// T returns the secondary generator of twin public keys, independent of G
// and H.
func T() *edwards25519.Point { return new(edwards25519.Point).Set(t) }

// InvEight returns 8^-1 mod ℓ.
func InvEight() *edwards25519.Scalar { return new(edwards25519.Scalar).Set(invEight) }

// DecodePoint decompresses a 32-byte point encoding. Non-canonical y
// coordinates are accepted, matching the reference decoders on the network.
func DecodePoint(b []byte) (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

// DecodeScalar parses a canonical scalar encoding (a value below ℓ).
func DecodeScalar(b []byte) (*edwards25519.Scalar, error) {
	s, err := new(edwards25519.Scalar).SetCanonicalBytes(b)
	if err != nil {
		return nil, ErrInvalidScalar
	}
	return s, nil
}

// ReduceScalar interprets b as a 256-bit little-endian integer and reduces
// it mod ℓ. It panics if b is not 32 bytes long.
func ReduceScalar(b []byte) *edwards25519.Scalar {
	if len(b) != Size {
		panic("curve: scalar input must be 32 bytes")
	}
	var wide [64]byte
	copy(wide[:], b)
	s, _ := new(edwards25519.Scalar).SetUniformBytes(wide[:])
	return s
}

// ScalarFromUint64 returns v as a scalar.
func ScalarFromUint64(v uint64) *edwards25519.Scalar {
	var b [Size]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return ReduceScalar(b[:])
}

// RandomScalar draws 64 bytes from r and reduces them mod ℓ. A nil reader
// selects crypto/rand.
func RandomScalar(r io.Reader) (*edwards25519.Scalar, error) {
	if r == nil {
		r = rand.Reader
	}
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	return new(edwards25519.Scalar).SetUniformBytes(buf[:])
}

// MulEight returns 8·p computed as three doublings.
func MulEight(p *edwards25519.Point) *edwards25519.Point {
	r := new(edwards25519.Point).Add(p, p)
	r.Add(r, r)
	return r.Add(r, r)
}

// PublicKey returns x·G.
func PublicKey(x *edwards25519.Scalar) *edwards25519.Point {
	return new(edwards25519.Point).ScalarBaseMult(x)
}

// TwinPublicKey returns x·G + y·T.
func TwinPublicKey(x, y *edwards25519.Scalar) *edwards25519.Point {
	yT := new(edwards25519.Point).ScalarMult(y, t)
	return yT.Add(PublicKey(x), yT)
}

// Commit returns the Pedersen commitment mask·G + amount·H.
func Commit(amount uint64, mask *edwards25519.Scalar) *edwards25519.Point {
	return new(edwards25519.Point).VarTimeDoubleScalarBaseMult(ScalarFromUint64(amount), h, mask)
}

// KeyImage returns x·Hp(P) for the public key encoding P. Two spends of the
// same output produce the same key image.
func KeyImage(x *edwards25519.Scalar, publicKey []byte) *edwards25519.Point {
	return new(edwards25519.Point).ScalarMult(x, HashToPoint(publicKey))
}
