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

package ringsig

import (
	"errors"

	"github.com/mxhess/salvium-rs-sub001/curve"
)

var (
	ErrRingTooSmall     = errors.New("ring is empty")
	ErrRingTooLarge     = errors.New("ring is too large")
	ErrRingSizeMismatch = errors.New("ring size does not match signature")
	ErrSecretIndex      = errors.New("secret index is outside the ring")
	ErrInvalidSignature = errors.New("signature does not verify")
	ErrInvalidKeyLength = errors.New("key must be 32 bytes")
	ErrInvalidPoint     = curve.ErrInvalidPoint
	ErrInvalidScalar    = curve.ErrInvalidScalar
	ErrTruncated        = errors.New("signature data is truncated")
	ErrTrailingBytes    = errors.New("signature data has trailing bytes")
)
