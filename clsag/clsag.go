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

/*
	Package clsag implements Concise Linkable Spontaneous Anonymous Group
	signatures over Ed25519, as used to authorize RingCT transaction inputs.

	A signature proves knowledge of the secret key x of one ring member P = xG
	and of the difference z between that member's commitment mask and the
	pseudo-output's mask, without revealing which member. The key image
	I = x·Hp(P) links two signatures made with the same key.
*/
package clsag

import (
	"fmt"
	"io"

	"filippo.io/edwards25519"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/curve"
	"github.com/mxhess/salvium-rs-sub001/internal/rsutil"
)

// Name identifies the scheme.
const Name = "CLSAG"

type scheme struct{}

// New returns the CLSAG scheme.
func New() ringsig.Scheme { return scheme{} }

func (scheme) Name() string { return Name }

func (scheme) Sign(rand io.Reader, message ringsig.Key, ring ringsig.Ring, pseudoOut ringsig.Key, key *ringsig.SpendKey) (ringsig.Signature, error) {
	sig, err := Sign(rand, message, ring, pseudoOut, key)
	if err != nil {
		return nil, err
	}
	return sig, nil
}

func (scheme) Verify(message ringsig.Key, signature ringsig.Signature, ring ringsig.Ring, pseudoOut ringsig.Key) bool {
	sig, ok := signature.(*Signature)
	if !ok {
		return false
	}
	return Verify(message, sig, ring, pseudoOut)
}

func (scheme) LoadSignature(r io.Reader) (ringsig.Signature, error) {
	sig, err := LoadSignature(r)
	if err != nil {
		return nil, err
	}
	return sig, nil
}

// Sign produces a signature over message for the ring member at key.Index.
// The commitment of that member must open to the same amount as pseudoOut
// with mask difference key.Mask. Nonces are read from rand; nil selects
// crypto/rand.
func Sign(rand io.Reader, message ringsig.Key, ring ringsig.Ring, pseudoOut ringsig.Key, key *ringsig.SpendKey) (*Signature, error) {
	n := len(ring)
	if n == 0 {
		return nil, ringsig.ErrRingTooSmall
	}
	if n > ringsig.MaxRingSize {
		return nil, ringsig.ErrRingTooLarge
	}
	x, _, z, err := rsutil.DecodeSpendKey(key, n)
	if err != nil {
		return nil, err
	}
	ctx, err := rsutil.NewContext(message, ring, pseudoOut)
	if err != nil {
		return nil, fmt.Errorf("clsag: %w", err)
	}

	l := key.Index
	hp := ctx.HashedKey(l)
	sig := &Signature{S: make([]ringsig.Key, n)}
	copy(sig.I[:], new(edwards25519.Point).ScalarMult(x, hp).Bytes())
	dFull := new(edwards25519.Point).ScalarMult(z, hp)
	copy(sig.D[:], new(edwards25519.Point).ScalarMult(curve.InvEight(), dFull).Bytes())
	if err := ctx.SetImages(sig.I, sig.D); err != nil {
		return nil, fmt.Errorf("clsag: %w", err)
	}

	alpha, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, fmt.Errorf("clsag: nonce: %w", err)
	}
	c := ctx.Open(l, alpha, nil)

	var c1 *edwards25519.Scalar
	for _, i := range rsutil.Walk(l, n) {
		if rsutil.IsAnchor(i) {
			c1 = c
		}
		s, err := curve.RandomScalar(rand)
		if err != nil {
			return nil, fmt.Errorf("clsag: response %d: %w", i, err)
		}
		copy(sig.S[i][:], s.Bytes())
		c = ctx.Accumulate(i, s, nil, c)
	}

	sl := ctx.Close(alpha, c, x, z)
	copy(sig.S[l][:], sl.Bytes())

	if c1 == nil {
		if n == 1 {
			c1 = ctx.Accumulate(l, sl, nil, c)
		} else {
			c1 = c
		}
	}
	copy(sig.C1[:], c1.Bytes())
	return sig, nil
}

// Verify reports whether sig is a valid signature over message by a member
// of ring. Malformed signatures, rings and encodings are rejected.
func Verify(message ringsig.Key, sig *Signature, ring ringsig.Ring, pseudoOut ringsig.Key) bool {
	return Check(message, sig, ring, pseudoOut) == nil
}

// Check verifies sig like Verify and reports why it was rejected.
func Check(message ringsig.Key, sig *Signature, ring ringsig.Ring, pseudoOut ringsig.Key) error {
	n := len(ring)
	switch {
	case n == 0:
		return ringsig.ErrRingTooSmall
	case sig == nil:
		return ringsig.ErrInvalidSignature
	case len(sig.S) != n:
		return ringsig.ErrRingSizeMismatch
	}
	s, err := rsutil.DecodeScalars(sig.S)
	if err != nil {
		return err
	}
	c1, err := curve.DecodeScalar(sig.C1[:])
	if err != nil {
		return err
	}
	ctx, err := rsutil.NewContext(message, ring, pseudoOut)
	if err != nil {
		return err
	}
	if err := ctx.SetImages(sig.I, sig.D); err != nil {
		return err
	}
	if !ctx.Verify(c1, s, nil) {
		return ringsig.ErrInvalidSignature
	}
	return nil
}
