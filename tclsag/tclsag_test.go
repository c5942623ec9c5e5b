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

package tclsag_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/clsag"
	"github.com/mxhess/salvium-rs-sub001/curve"
	"github.com/mxhess/salvium-rs-sub001/internal/rsutil"
	"github.com/mxhess/salvium-rs-sub001/internal/vectors"
	"github.com/mxhess/salvium-rs-sub001/tclsag"
)

func TestTCLSAG(t *testing.T) {
	rsutil.TestScheme(t, tclsag.New(), true)
}

func mustKey(t *testing.T, s string) ringsig.Key {
	k, err := ringsig.KeyFromHex(s)
	require.NoError(t, err)
	return k
}

func TestVectors(t *testing.T) {
	all, err := vectors.LoadFile("../testdata/vectors.json")
	require.NoError(t, err)

	count := 0
	for _, v := range all {
		if v.Scheme != "tclsag" {
			continue
		}
		count++
		t.Run(v.Seed, func(t *testing.T) {
			raw, err := hex.DecodeString(v.Signature)
			require.NoError(t, err)
			require.Len(t, raw, tclsag.Size(len(v.Ring)))
			sig, err := tclsag.ParseSignature(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, sig.Bytes())

			ring := make(ringsig.Ring, len(v.Ring))
			for i, m := range v.Ring {
				ring[i] = ringsig.RingMember{PublicKey: mustKey(t, m.PublicKey), Commitment: mustKey(t, m.Commitment)}
			}
			pseudoOut := mustKey(t, v.PseudoOut)
			message := rsutil.HashMessage(v.Message)
			assert.True(t, tclsag.Verify(message, sig, ring, pseudoOut))
			assert.False(t, tclsag.Verify(rsutil.HashMessage("wrong"), sig, ring, pseudoOut))

			stream := vectors.NewStream([]byte(v.Seed))
			_, _, key, err := rsutil.GenerateRing(stream, len(ring), v.SecretIndex, true)
			require.NoError(t, err)
			assert.Equal(t, v.SecretY, key.Twin.String())
			again, err := tclsag.Sign(stream, message, ring, pseudoOut, key)
			require.NoError(t, err)
			assert.Equal(t, raw, again.Bytes())
		})
	}
	assert.Equal(t, 3, count)
}

func TestSecretIsolation(t *testing.T) {
	ring, pseudoOut, key, err := rsutil.GenerateRing(rsutil.NewRandPRNG(11), 4, 1, true)
	require.NoError(t, err)

	a, err := tclsag.Sign(rsutil.NewRandPRNG(1), rsutil.HashMessage("first"), ring, pseudoOut, key)
	require.NoError(t, err)
	b, err := tclsag.Sign(rsutil.NewRandPRNG(1), rsutil.HashMessage("second"), ring, pseudoOut, key)
	require.NoError(t, err)
	assert.NotEqual(t, a.Sy[key.Index], b.Sy[key.Index])
	assert.NotEqual(t, a.Sx[key.Index], b.Sx[key.Index])
	assert.Equal(t, a.I, b.I)
	assert.Equal(t, a.D, b.D)
	assert.NotEqual(t, a.C1, b.C1)

	// The key image depends on x alone.
	x := curve.ReduceScalar(key.Secret[:])
	assert.Equal(t, curve.KeyImage(x, ring[key.Index].PublicKey[:]).Bytes(), a.I[:])

	wrongTwin := *key
	wrongTwin.Twin = rsutil.HashMessage("not the twin secret")
	c, err := tclsag.Sign(nil, rsutil.HashMessage("first"), ring, pseudoOut, &wrongTwin)
	require.NoError(t, err)
	assert.Equal(t, a.I, c.I)
	assert.False(t, tclsag.Verify(rsutil.HashMessage("first"), c, ring, pseudoOut))
}

func TestSingleMember(t *testing.T) {
	ring, pseudoOut, key, err := rsutil.GenerateRing(rsutil.NewRandPRNG(5), 1, 0, true)
	require.NoError(t, err)
	message := rsutil.HashMessage("single")
	sig, err := tclsag.Sign(nil, message, ring, pseudoOut, key)
	require.NoError(t, err)
	assert.Len(t, sig.Bytes(), tclsag.Size(1))
	assert.True(t, tclsag.Verify(message, sig, ring, pseudoOut))
}

func TestCodec(t *testing.T) {
	ring, pseudoOut, key, err := rsutil.GenerateRing(rsutil.NewRandPRNG(9), 3, 2, true)
	require.NoError(t, err)
	message := rsutil.HashMessage("codec")
	sig, err := tclsag.Sign(rsutil.NewRandPRNG(10), message, ring, pseudoOut, key)
	require.NoError(t, err)

	raw := sig.Bytes()
	require.Len(t, raw, 4+64*3+96)
	assert.Equal(t, sig.Sx[0][:], raw[4:36])
	assert.Equal(t, sig.Sy[0][:], raw[4+3*32:4+4*32])

	parsed, err := tclsag.ParseSignature(raw)
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)
	_, err = tclsag.ParseSignature(raw[:len(raw)-32])
	assert.ErrorIs(t, err, ringsig.ErrTruncated)
	_, err = tclsag.ParseSignature(append(append([]byte(nil), raw...), 1, 2))
	assert.ErrorIs(t, err, ringsig.ErrTrailingBytes)

	prunable := sig.PrunableBytes()
	require.Len(t, prunable, tclsag.PrunableSize(3))
	restored, err := tclsag.ParsePrunable(prunable, 3, sig.I)
	require.NoError(t, err)
	assert.Equal(t, sig, restored)
	assert.True(t, tclsag.Verify(message, restored, ring, pseudoOut))
	_, err = tclsag.ParsePrunable(prunable, ringsig.MaxRingSize+1, sig.I)
	assert.ErrorIs(t, err, ringsig.ErrRingTooLarge)

	// A CLSAG reading of the same bytes does not verify.
	if misread, err := clsag.ParsePrunable(prunable, 6, sig.I); err == nil {
		assert.False(t, clsag.Verify(message, misread, ring, pseudoOut))
	}
}

func TestMismatchedResponses(t *testing.T) {
	ring, pseudoOut, key, err := rsutil.GenerateRing(rsutil.NewRandPRNG(12), 3, 0, true)
	require.NoError(t, err)
	message := rsutil.HashMessage("lengths")
	sig, err := tclsag.Sign(nil, message, ring, pseudoOut, key)
	require.NoError(t, err)

	short := *sig
	short.Sy = sig.Sy[:2]
	assert.False(t, tclsag.Verify(message, &short, ring, pseudoOut))

	swapped := *sig
	swapped.Sx, swapped.Sy = sig.Sy, sig.Sx
	assert.False(t, tclsag.Verify(message, &swapped, ring, pseudoOut))
}

func BenchmarkSign2(b *testing.B)    { rsutil.BenchmarkSign(b, tclsag.New(), true, 2) }
func BenchmarkSign16(b *testing.B)   { rsutil.BenchmarkSign(b, tclsag.New(), true, 16) }
func BenchmarkVerify2(b *testing.B)  { rsutil.BenchmarkVerify(b, tclsag.New(), true, 2) }
func BenchmarkVerify16(b *testing.B) { rsutil.BenchmarkVerify(b, tclsag.New(), true, 16) }
