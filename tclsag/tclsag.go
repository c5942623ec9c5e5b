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
	Package tclsag implements twin-key CLSAG signatures, the extension of CLSAG
	to one-time keys of the form P = xG + yT with a second generator T.

	The signer proves knowledge of both x and y. Each ring member carries two
	responses, one per generator. The key image depends on x alone, so it is
	the same value a CLSAG spend of xG would produce for the same Hp(P). The
	aggregation coefficients and the round transcript are shared with CLSAG.
*/
package tclsag

import (
	"fmt"
	"io"

	"filippo.io/edwards25519"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/curve"
	"github.com/mxhess/salvium-rs-sub001/internal/rsutil"
)

// Name identifies the scheme.
const Name = "TCLSAG"

type scheme struct{}

// New returns the TCLSAG scheme.
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

// Sign produces a signature over message for the ring member at key.Index,
// whose public key must equal key.Secret·G + key.Twin·T. Nonces are read
// from rand; nil selects crypto/rand.
func Sign(rand io.Reader, message ringsig.Key, ring ringsig.Ring, pseudoOut ringsig.Key, key *ringsig.SpendKey) (*Signature, error) {
	n := len(ring)
	if n == 0 {
		return nil, ringsig.ErrRingTooSmall
	}
	if n > ringsig.MaxRingSize {
		return nil, ringsig.ErrRingTooLarge
	}
	x, y, z, err := rsutil.DecodeSpendKey(key, n)
	if err != nil {
		return nil, err
	}
	ctx, err := rsutil.NewContext(message, ring, pseudoOut)
	if err != nil {
		return nil, fmt.Errorf("tclsag: %w", err)
	}

	l := key.Index
	hp := ctx.HashedKey(l)
	sig := &Signature{
		Sx: make([]ringsig.Key, n),
		Sy: make([]ringsig.Key, n),
	}
	copy(sig.I[:], new(edwards25519.Point).ScalarMult(x, hp).Bytes())
	dFull := new(edwards25519.Point).ScalarMult(z, hp)
	copy(sig.D[:], new(edwards25519.Point).ScalarMult(curve.InvEight(), dFull).Bytes())
	if err := ctx.SetImages(sig.I, sig.D); err != nil {
		return nil, fmt.Errorf("tclsag: %w", err)
	}

	a, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, fmt.Errorf("tclsag: nonce: %w", err)
	}
	b, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, fmt.Errorf("tclsag: twin nonce: %w", err)
	}
	c := ctx.Open(l, a, b)

	var c1 *edwards25519.Scalar
	for _, i := range rsutil.Walk(l, n) {
		if rsutil.IsAnchor(i) {
			c1 = c
		}
		sx, err := curve.RandomScalar(rand)
		if err != nil {
			return nil, fmt.Errorf("tclsag: response %d: %w", i, err)
		}
		sy, err := curve.RandomScalar(rand)
		if err != nil {
			return nil, fmt.Errorf("tclsag: twin response %d: %w", i, err)
		}
		copy(sig.Sx[i][:], sx.Bytes())
		copy(sig.Sy[i][:], sy.Bytes())
		c = ctx.Accumulate(i, sx, sy, c)
	}

	sx := ctx.Close(a, c, x, z)
	muP, _ := ctx.Coefficients()
	sy := new(edwards25519.Scalar).Multiply(c, muP)
	sy.Multiply(sy, y)
	sy.Subtract(b, sy)
	copy(sig.Sx[l][:], sx.Bytes())
	copy(sig.Sy[l][:], sy.Bytes())

	if c1 == nil {
		if n == 1 {
			c1 = ctx.Accumulate(l, sx, sy, c)
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
	case len(sig.Sx) != n || len(sig.Sy) != n:
		return ringsig.ErrRingSizeMismatch
	}
	sx, err := rsutil.DecodeScalars(sig.Sx)
	if err != nil {
		return err
	}
	sy, err := rsutil.DecodeScalars(sig.Sy)
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
	if !ctx.Verify(c1, sx, sy) {
		return ringsig.ErrInvalidSignature
	}
	return nil
}
