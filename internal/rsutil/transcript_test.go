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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ringsig "github.com/mxhess/salvium-rs-sub001"
)

func TestWalk(t *testing.T) {
	tests := []struct {
		index, n int
		want     []int
	}{
		{0, 1, []int{}},
		{0, 2, []int{1}},
		{1, 2, []int{0}},
		{0, 5, []int{1, 2, 3, 4}},
		{4, 5, []int{0, 1, 2, 3}},
		{2, 5, []int{3, 4, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("index %d of %d", tt.index, tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, Walk(tt.index, tt.n))
		})
	}
	assert.Nil(t, Walk(0, 0))
}

func TestAnchorCapture(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		for _, index := range []int{0, n - 1} {
			positions := Walk(index, n)
			anchors := 0
			for k, i := range positions {
				if IsAnchor(i) {
					anchors++
					// The anchor is the step that wraps past the ring's end.
					assert.Equal(t, n-1-index, k, "n=%d index=%d", n, index)
				}
			}
			if index == 0 {
				// The signer sits on the anchor, so c1 comes from the
				// challenge that closes the ring.
				assert.Zero(t, anchors, "n=%d", n)
			} else {
				assert.Equal(t, 1, anchors, "n=%d index=%d", n, index)
			}

			seen := map[int]bool{index: true}
			for _, i := range positions {
				assert.False(t, seen[i], "position %d visited twice", i)
				seen[i] = true
			}
			assert.Len(t, seen, n)
		}
	}
	assert.True(t, IsAnchor(0))
	assert.False(t, IsAnchor(1))
}

func TestDecodeSpendKey(t *testing.T) {
	_, _, _, err := DecodeSpendKey(nil, 3)
	assert.ErrorIs(t, err, ringsig.ErrSecretIndex)
	_, _, _, err = DecodeSpendKey(&ringsig.SpendKey{Index: 3}, 3)
	assert.ErrorIs(t, err, ringsig.ErrSecretIndex)

	x, y, z, err := DecodeSpendKey(&ringsig.SpendKey{Index: 2, Secret: ringsig.Key{1}, Twin: ringsig.Key{2}, Mask: ringsig.Key{3}}, 3)
	require.NoError(t, err)
	assert.Equal(t, byte(1), x.Bytes()[0])
	assert.Equal(t, byte(2), y.Bytes()[0])
	assert.Equal(t, byte(3), z.Bytes()[0])
}
