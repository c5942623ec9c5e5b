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

package ringsig_test

import (
	"fmt"

	"filippo.io/edwards25519"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/clsag"
	"github.com/mxhess/salvium-rs-sub001/curve"
)

func randomScalar() *edwards25519.Scalar {
	s, err := curve.RandomScalar(nil)
	if err != nil {
		panic(err)
	}
	return s
}

func Example() {
	scheme := clsag.New()

	// Every ring member is an output: a one-time public key and a commitment
	// to its amount. Here all four outputs hold 25 units.
	ring := make(ringsig.Ring, 4)
	var secret, mask *edwards25519.Scalar
	for i := range ring {
		x, m := randomScalar(), randomScalar()
		copy(ring[i].PublicKey[:], curve.PublicKey(x).Bytes())
		copy(ring[i].Commitment[:], curve.Commit(25, m).Bytes())
		if i == 2 {
			secret, mask = x, m
		}
	}

	// The spender re-commits to the amount of output 2 under a fresh mask.
	pseudoMask := randomScalar()
	var pseudoOut ringsig.Key
	copy(pseudoOut[:], curve.Commit(25, pseudoMask).Bytes())

	key := &ringsig.SpendKey{Index: 2}
	copy(key.Secret[:], secret.Bytes())
	copy(key.Mask[:], new(edwards25519.Scalar).Subtract(mask, pseudoMask).Bytes())

	// In the real world the message is the hash of the transaction.
	message := ringsig.Key(curve.Keccak256([]byte("transaction")))
	sig, err := scheme.Sign(nil, message, ring, pseudoOut, key)
	if err != nil {
		panic(err)
	}

	// Anyone holding the ring can verify, but cannot tell which output was
	// spent. Spending output 2 again would reveal the same key image.
	fmt.Println(scheme.Verify(message, sig, ring, pseudoOut))
	// Output: true
}
