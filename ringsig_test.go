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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/curve"
)

func TestKeyHex(t *testing.T) {
	const h = "8b655970153799af2aeadc9ff1add0ea6c7251d54154cfa92c173a0dd39c1f94"
	k, err := ringsig.KeyFromHex(h)
	require.NoError(t, err)
	assert.Equal(t, h, k.String())
	assert.Equal(t, curve.H().Bytes(), k[:])

	_, err = ringsig.KeyFromHex(h[:62])
	assert.ErrorIs(t, err, ringsig.ErrInvalidKeyLength)
	_, err = ringsig.KeyFromHex(h + "00")
	assert.ErrorIs(t, err, ringsig.ErrInvalidKeyLength)
	_, err = ringsig.KeyFromHex(strings.Repeat("zz", 32))
	assert.Error(t, err)
}

func TestRingAccessors(t *testing.T) {
	ring := ringsig.Ring{
		{PublicKey: ringsig.Key{1}, Commitment: ringsig.Key{2}},
		{PublicKey: ringsig.Key{3}, Commitment: ringsig.Key{4}},
	}
	assert.Equal(t, []ringsig.Key{{1}, {3}}, ring.PublicKeys())
	assert.Equal(t, []ringsig.Key{{2}, {4}}, ring.Commitments())
	assert.Empty(t, ringsig.Ring(nil).PublicKeys())
}

func TestEncodingErrors(t *testing.T) {
	assert.True(t, errors.Is(ringsig.ErrInvalidPoint, curve.ErrInvalidPoint))
	assert.True(t, errors.Is(ringsig.ErrInvalidScalar, curve.ErrInvalidScalar))
	assert.NotEqual(t, ringsig.ErrTruncated, ringsig.ErrTrailingBytes)
}
