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

package rsutil

import (
	"io"

	"filippo.io/edwards25519"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/curve"
)

// BaseAmount is the amount committed by the first member of a generated
// ring; member i commits BaseAmount+i.
const BaseAmount = 1000

// GenerateRing builds a ring of n members with random keys and commitments,
// all drawn from rand, together with a pseudo-output balancing the member at
// index and the secrets that spend it. When twin is set the public keys are
// xG + yT.
//
// Scalars are drawn in a fixed order: for each member x, y (twin only) and
// its mask, then the pseudo-output mask.
func GenerateRing(rand io.Reader, n, index int, twin bool) (ringsig.Ring, ringsig.Key, *ringsig.SpendKey, error) {
	var pseudoOut ringsig.Key
	if n <= 0 {
		return nil, pseudoOut, nil, ringsig.ErrRingTooSmall
	}
	if index < 0 || index >= n {
		return nil, pseudoOut, nil, ringsig.ErrSecretIndex
	}

	ring := make(ringsig.Ring, n)
	key := &ringsig.SpendKey{Index: index}
	var mask *edwards25519.Scalar
	for i := range ring {
		x, err := curve.RandomScalar(rand)
		if err != nil {
			return nil, pseudoOut, nil, err
		}
		var y *edwards25519.Scalar
		if twin {
			if y, err = curve.RandomScalar(rand); err != nil {
				return nil, pseudoOut, nil, err
			}
		}
		m, err := curve.RandomScalar(rand)
		if err != nil {
			return nil, pseudoOut, nil, err
		}

		var public *edwards25519.Point
		if twin {
			public = curve.TwinPublicKey(x, y)
		} else {
			public = curve.PublicKey(x)
		}
		copy(ring[i].PublicKey[:], public.Bytes())
		copy(ring[i].Commitment[:], curve.Commit(BaseAmount+uint64(i), m).Bytes())

		if i == index {
			copy(key.Secret[:], x.Bytes())
			if twin {
				copy(key.Twin[:], y.Bytes())
			}
			mask = m
		}
	}

	pm, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, pseudoOut, nil, err
	}
	copy(pseudoOut[:], curve.Commit(BaseAmount+uint64(index), pm).Bytes())
	copy(key.Mask[:], new(edwards25519.Scalar).Subtract(mask, pm).Bytes())
	return ring, pseudoOut, key, nil
}
