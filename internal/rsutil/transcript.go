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

// Package rsutil holds the Fiat-Shamir transcript shared by the CLSAG and
// TCLSAG engines.
package rsutil

import (
	"fmt"

	"filippo.io/edwards25519"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/curve"
)

// Transcript domains are ASCII tags zero-padded to 32 bytes.
var (
	DomainAggregateP = padDomain("CLSAG_agg_0")
	DomainAggregateC = padDomain("CLSAG_agg_1")
	DomainRound      = padDomain("CLSAG_round")
)

func padDomain(tag string) []byte {
	b := make([]byte, ringsig.KeySize)
	copy(b, tag)
	return b
}

// AggregationCoefficient hashes domain ‖ P₀…Pₙ₋₁ ‖ C₀…Cₙ₋₁ ‖ I ‖ D ‖ pseudoOut
// to a scalar. D is the commitment image in its published (divided by 8)
// form.
func AggregationCoefficient(domain []byte, ring ringsig.Ring, keyImage, commitmentImage, pseudoOut ringsig.Key) *edwards25519.Scalar {
	parts := make([][]byte, 0, 2*len(ring)+4)
	parts = append(parts, domain)
	for i := range ring {
		parts = append(parts, ring[i].PublicKey[:])
	}
	for i := range ring {
		parts = append(parts, ring[i].Commitment[:])
	}
	parts = append(parts, keyImage[:], commitmentImage[:], pseudoOut[:])
	return curve.HashToScalar(parts...)
}

// AggregationCoefficients returns μ_P and μ_C.
func AggregationCoefficients(ring ringsig.Ring, keyImage, commitmentImage, pseudoOut ringsig.Key) (muP, muC *edwards25519.Scalar) {
	muP = AggregationCoefficient(DomainAggregateP, ring, keyImage, commitmentImage, pseudoOut)
	muC = AggregationCoefficient(DomainAggregateC, ring, keyImage, commitmentImage, pseudoOut)
	return
}

// Walk returns the ring positions visited after the signer's own, in order:
// (index+1+k) mod n for k = 0 … n-2.
func Walk(index, n int) []int {
	if n < 1 {
		return nil
	}
	positions := make([]int, 0, n-1)
	for k := 0; k < n-1; k++ {
		positions = append(positions, (index+1+k)%n)
	}
	return positions
}

// IsAnchor reports whether the challenge entering position i is published as
// c1. Position 0 is the anchor regardless of where the signer sits.
func IsAnchor(i int) bool { return i == 0 }

// Context is the decoded public data of one signing or verification call.
type Context struct {
	ring      ringsig.Ring
	pseudoOut ringsig.Key

	g, t    *edwards25519.Point
	members []*edwards25519.Point // P[i]
	hashed  []*edwards25519.Point // Hp(P[i])
	diffs   []*edwards25519.Point // C[i] - pseudoOut
	prefix  []byte

	keyImage *edwards25519.Point
	dFull    *edwards25519.Point
	muP, muC *edwards25519.Scalar
}

// NewContext decodes the ring and builds the round transcript prefix
// CLSAG_round ‖ P₀…Pₙ₋₁ ‖ C₀…Cₙ₋₁ ‖ pseudoOut ‖ message.
func NewContext(message ringsig.Key, ring ringsig.Ring, pseudoOut ringsig.Key) (*Context, error) {
	n := len(ring)
	if n == 0 {
		return nil, ringsig.ErrRingTooSmall
	}
	pseudo, err := curve.DecodePoint(pseudoOut[:])
	if err != nil {
		return nil, fmt.Errorf("pseudo-output: %w", err)
	}

	c := &Context{
		ring:      ring,
		pseudoOut: pseudoOut,
		g:         curve.G(),
		t:         curve.T(),
		members:   make([]*edwards25519.Point, n),
		hashed:    make([]*edwards25519.Point, n),
		diffs:     make([]*edwards25519.Point, n),
		prefix:    make([]byte, 0, (2*n+3)*ringsig.KeySize),
	}
	for i := range ring {
		if c.members[i], err = curve.DecodePoint(ring[i].PublicKey[:]); err != nil {
			return nil, fmt.Errorf("ring member %d public key: %w", i, err)
		}
		commitment, err := curve.DecodePoint(ring[i].Commitment[:])
		if err != nil {
			return nil, fmt.Errorf("ring member %d commitment: %w", i, err)
		}
		c.diffs[i] = commitment.Subtract(commitment, pseudo)
		c.hashed[i] = curve.HashToPoint(ring[i].PublicKey[:])
	}

	c.prefix = append(c.prefix, DomainRound...)
	for i := range ring {
		c.prefix = append(c.prefix, ring[i].PublicKey[:]...)
	}
	for i := range ring {
		c.prefix = append(c.prefix, ring[i].Commitment[:]...)
	}
	c.prefix = append(c.prefix, pseudoOut[:]...)
	c.prefix = append(c.prefix, message[:]...)
	return c, nil
}

// Size returns the ring size.
func (c *Context) Size() int { return len(c.members) }

// HashedKey returns Hp(P[i]).
func (c *Context) HashedKey(i int) *edwards25519.Point { return c.hashed[i] }

// SetImages binds the key image and the published commitment image into the
// transcript: it decodes both, restores D_full = 8·D and derives μ_P, μ_C.
func (c *Context) SetImages(keyImage, commitmentImage ringsig.Key) error {
	ki, err := curve.DecodePoint(keyImage[:])
	if err != nil {
		return fmt.Errorf("key image: %w", err)
	}
	d, err := curve.DecodePoint(commitmentImage[:])
	if err != nil {
		return fmt.Errorf("commitment image: %w", err)
	}
	c.keyImage = ki
	c.dFull = curve.MulEight(d)
	c.muP, c.muC = AggregationCoefficients(c.ring, keyImage, commitmentImage, c.pseudoOut)
	return nil
}

// Coefficients returns μ_P and μ_C. SetImages must have been called.
func (c *Context) Coefficients() (muP, muC *edwards25519.Scalar) { return c.muP, c.muC }

// Challenge hashes the round transcript with the pair (L, R).
func (c *Context) Challenge(l, r *edwards25519.Point) *edwards25519.Scalar {
	return curve.HashToScalar(c.prefix, l.Bytes(), r.Bytes())
}

// Open returns the first challenge from the signer's nonces:
// L = a·G (+ b·T when b is non-nil), R = a·Hp(P[i]).
func (c *Context) Open(i int, a, b *edwards25519.Scalar) *edwards25519.Scalar {
	l := new(edwards25519.Point).ScalarBaseMult(a)
	if b != nil {
		l.Add(l, new(edwards25519.Point).ScalarMult(b, c.t))
	}
	r := new(edwards25519.Point).ScalarMult(a, c.hashed[i])
	return c.Challenge(l, r)
}

// Accumulate advances the challenge ch across ring position i:
//
//	L = s·G (+ sy·T) + ch·μ_P·P[i] + ch·μ_C·Cdiff[i]
//	R = s·Hp(P[i]) + ch·μ_P·I + ch·μ_C·D_full
//
// and returns the next challenge. sy is nil for single-key rings.
func (c *Context) Accumulate(i int, s, sy, ch *edwards25519.Scalar) *edwards25519.Scalar {
	cP := new(edwards25519.Scalar).Multiply(ch, c.muP)
	cC := new(edwards25519.Scalar).Multiply(ch, c.muC)

	scalars := []*edwards25519.Scalar{s, cP, cC}
	points := []*edwards25519.Point{c.g, c.members[i], c.diffs[i]}
	if sy != nil {
		scalars = append(scalars, sy)
		points = append(points, c.t)
	}
	l := new(edwards25519.Point).VarTimeMultiScalarMult(scalars, points)
	r := new(edwards25519.Point).VarTimeMultiScalarMult(
		[]*edwards25519.Scalar{s, cP, cC},
		[]*edwards25519.Point{c.hashed[i], c.keyImage, c.dFull},
	)
	return c.Challenge(l, r)
}

// Close returns the signer's response nonce - ch·(μ_P·x + μ_C·z).
func (c *Context) Close(nonce, ch, x, z *edwards25519.Scalar) *edwards25519.Scalar {
	k := new(edwards25519.Scalar).Multiply(c.muP, x)
	k.MultiplyAdd(c.muC, z, k)
	k.Multiply(ch, k)
	return k.Subtract(nonce, k)
}

// Verify runs the challenge around the whole ring starting from c1 and
// reports whether it returns to c1. sy is nil for single-key rings.
func (c *Context) Verify(c1 *edwards25519.Scalar, s, sy []*edwards25519.Scalar) bool {
	if len(s) != c.Size() || (sy != nil && len(sy) != c.Size()) {
		return false
	}
	ch := c1
	for i := range s {
		var y *edwards25519.Scalar
		if sy != nil {
			y = sy[i]
		}
		ch = c.Accumulate(i, s[i], y, ch)
	}
	return ch.Equal(c1) == 1
}

// DecodeScalars parses canonical scalar encodings.
func DecodeScalars(keys []ringsig.Key) ([]*edwards25519.Scalar, error) {
	out := make([]*edwards25519.Scalar, len(keys))
	for i := range keys {
		s, err := curve.DecodeScalar(keys[i][:])
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// DecodeSpendKey parses the scalars of key and checks its index against a
// ring of n members.
func DecodeSpendKey(key *ringsig.SpendKey, n int) (x, y, z *edwards25519.Scalar, err error) {
	if key == nil || key.Index < 0 || key.Index >= n {
		return nil, nil, nil, ringsig.ErrSecretIndex
	}
	// Secrets are reduced rather than rejected, matching wallet-side
	// key derivation outputs.
	return curve.ReduceScalar(key.Secret[:]), curve.ReduceScalar(key.Twin[:]), curve.ReduceScalar(key.Mask[:]), nil
}
