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
	"bytes"
	"errors"
	"fmt"
	"io"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/curve"
)

type randPRNG mrand.Rand

func (prng *randPRNG) Read(p []byte) (n int, err error) {
	n = len(p)
	err = nil

	// We pull 7 bytes out of every random int64 (MSB is always 0)
	r := (*mrand.Rand)(prng)
	var x int64
	for i := 0; i < n; i++ {
		if i%7 == 0 {
			x = r.Int63()
		}
		p[i] = byte(x & 0xFF)
		x >>= 8
	}
	return
}

// NewRandPRNG returns a deterministic, insecure byte source for tests.
func NewRandPRNG(seed int64) io.Reader { return (*randPRNG)(mrand.New(mrand.NewSource(seed))) }

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

// HashMessage returns the Keccak-256 digest of s, the form in which messages
// reach the schemes.
func HashMessage(s string) ringsig.Key { return curve.Keccak256([]byte(s)) }

func mustRing(t testing.TB, rand io.Reader, n, index int, twin bool) (ringsig.Ring, ringsig.Key, *ringsig.SpendKey) {
	ring, pseudoOut, key, err := GenerateRing(rand, n, index, twin)
	require.NoError(t, err)
	return ring, pseudoOut, key
}

// signatureFields splits a full encoding into its response scalars and c1,
// dropping the ring size prefix and the two trailing images.
func signatureFields(t *testing.T, sig ringsig.Signature) []ringsig.Key {
	raw := sig.Bytes()
	body := raw[HeaderSize : len(raw)-2*ringsig.KeySize]
	require.Zero(t, len(body)%ringsig.KeySize)
	fields := make([]ringsig.Key, len(body)/ringsig.KeySize)
	for i := range fields {
		copy(fields[i][:], body[i*ringsig.KeySize:])
	}
	return fields
}

func testExportable(t *testing.T, name string, data ringsig.Exportable, importer func(io.Reader) (ringsig.Exportable, error)) {
	buf := new(bytes.Buffer)
	n, err := data.WriteTo(buf)
	require.NoError(t, err, "failed to export %s", name)
	dataBytes := append([]byte(nil), buf.Bytes()...)
	assert.Equal(t, int64(len(dataBytes)), n, "export size mismatch")

	data2, err := importer(buf)
	require.NoError(t, err, "failed to import %s", name)
	assert.Zero(t, buf.Len(), "importing %s left unread bytes", name)
	assert.Equal(t, dataBytes, data2.Bytes(), "loading %s produced different export", name)
	assert.Equal(t, dataBytes, data.Bytes(), "%s returned different bytes than it wrote", name)
}

func testSigning(t *testing.T, name string, scheme ringsig.Scheme, rand io.Reader, messages []string, ring ringsig.Ring, pseudoOut ringsig.Key, key *ringsig.SpendKey) {
	for i, message := range messages {
		m := HashMessage(message)
		sig, err := scheme.Sign(rand, m, ring, pseudoOut, key)
		require.NoError(t, err, "signing %q on msg %d", name, i)
		require.NotNil(t, sig)
		assert.Equal(t, len(ring), sig.RingSize())
		assert.True(t, scheme.Verify(m, sig, ring, pseudoOut), "verifying %q on msg %d", name, i)
	}
}

// TestScheme runs the behavior every linkable ring signature scheme must
// share. twin selects xG + yT ring keys.
func TestScheme(t *testing.T, scheme ringsig.Scheme, twin bool) {
	rand := NewRandPRNG(int64(len(scheme.Name())))
	ring, pseudoOut, key := mustRing(t, rand, 5, 3, twin)

	messages := []string{"message", "Hello, World!", "Hello, 世界", string([]byte{0, 1, 2, 10, 13, 254, 255}), ""}
	quick := HashMessage("For other tests, one simple message. ☺")

	t.Run("signing", func(t *testing.T) {
		for _, size := range []int{1, 2, 3, 5, 11} {
			for _, index := range []int{0, size / 2, size - 1} {
				ring, pseudoOut, key := mustRing(t, rand, size, index, twin)
				testSigning(t, fmt.Sprintf("ring size %d index %d", size, index), scheme, rand, messages, ring, pseudoOut, key)
			}
		}
	})

	sig, err := scheme.Sign(rand, quick, ring, pseudoOut, key)
	require.NoError(t, err, "failed to generate simple signature")

	t.Run("export", func(t *testing.T) {
		testExportable(t, "signature", sig, func(r io.Reader) (ringsig.Exportable, error) { return scheme.LoadSignature(r) })
	})

	t.Run("corruption", func(t *testing.T) {
		sigBytes := sig.Bytes()
		positions := mrand.New(mrand.NewSource(1))
		for i := 0; i < 100; i++ {
			flipPos := positions.Intn(len(sigBytes))
			sigBytes[flipPos] ^= 0x10

			// The signature should fail to be imported, or fail to verify
			if corrupted, err := scheme.LoadSignature(bytes.NewReader(sigBytes)); err == nil {
				assert.False(t, scheme.Verify(quick, corrupted, ring, pseudoOut), "corrupted signature byte %d verified", flipPos)
			}

			sigBytes[flipPos] ^= 0x10
		}
	})

	t.Run("tampering", func(t *testing.T) {
		assert.False(t, scheme.Verify(HashMessage("wrong"), sig, ring, pseudoOut), "wrong message")

		other, otherPseudo, _ := mustRing(t, rand, len(ring), 0, twin)
		assert.False(t, scheme.Verify(quick, sig, ring, otherPseudo), "wrong pseudo-output")

		for i := range ring {
			swapped := append(ringsig.Ring(nil), ring...)
			swapped[i].PublicKey = other[i].PublicKey
			assert.False(t, scheme.Verify(quick, sig, swapped, pseudoOut), "public key %d replaced", i)

			swapped = append(ringsig.Ring(nil), ring...)
			swapped[i].Commitment = other[i].Commitment
			assert.False(t, scheme.Verify(quick, sig, swapped, pseudoOut), "commitment %d replaced", i)
		}

		reordered := append(ringsig.Ring(nil), ring...)
		reordered[0], reordered[1] = reordered[1], reordered[0]
		assert.False(t, scheme.Verify(quick, sig, reordered, pseudoOut), "reordered ring")

		assert.False(t, scheme.Verify(quick, sig, ring[:len(ring)-1], pseudoOut), "subring mismatch high")
		assert.False(t, scheme.Verify(quick, sig, ring[1:], pseudoOut), "subring mismatch low")
		assert.False(t, scheme.Verify(quick, sig, append(append(ringsig.Ring(nil), ring...), other[0]), pseudoOut), "superring mismatch")
		assert.False(t, scheme.Verify(quick, sig, nil, pseudoOut), "empty ring")

		var invalid ringsig.Key
		invalid[0] = 2
		assert.False(t, scheme.Verify(quick, sig, ring, invalid), "undecodable pseudo-output")
	})

	t.Run("linkability", func(t *testing.T) {
		sig2, err := scheme.Sign(rand, HashMessage("another message"), ring, pseudoOut, key)
		require.NoError(t, err)
		assert.Equal(t, sig.KeyImage(), sig2.KeyImage())
		assert.Equal(t, sig.CommitmentImage(), sig2.CommitmentImage())
		assert.NotEqual(t, sig.Bytes(), sig2.Bytes())

		// Fresh nonces over the same message keep both images but move c1
		// and every response.
		sig4, err := scheme.Sign(NewRandPRNG(99), quick, ring, pseudoOut, key)
		require.NoError(t, err)
		assert.Equal(t, sig.KeyImage(), sig4.KeyImage())
		assert.Equal(t, sig.CommitmentImage(), sig4.CommitmentImage())
		fields := signatureFields(t, sig)
		fresh := signatureFields(t, sig4)
		require.Equal(t, len(fields), len(fresh))
		for i := range fields {
			assert.NotEqual(t, fields[i], fresh[i], "field %d", i)
		}

		x := curve.ReduceScalar(key.Secret[:])
		image := sig.KeyImage()
		assert.Equal(t, curve.KeyImage(x, ring[key.Index].PublicKey[:]).Bytes(), image[:])

		// The same output in a different ring links to the same image.
		other, otherPseudo, _ := mustRing(t, rand, 4, 0, twin)
		other[2] = ring[key.Index]
		moved := *key
		moved.Index = 2
		// Keep the balance: the commitment still opens with the original
		// mask difference against the original pseudo-output.
		sig3, err := scheme.Sign(rand, quick, other, pseudoOut, &moved)
		require.NoError(t, err)
		assert.True(t, scheme.Verify(quick, sig3, other, pseudoOut))
		assert.False(t, scheme.Verify(quick, sig3, other, otherPseudo))
		assert.Equal(t, sig.KeyImage(), sig3.KeyImage())
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := scheme.Sign(NewRandPRNG(42), quick, ring, pseudoOut, key)
		require.NoError(t, err)
		b, err := scheme.Sign(NewRandPRNG(42), quick, ring, pseudoOut, key)
		require.NoError(t, err)
		assert.Equal(t, a.Bytes(), b.Bytes())
	})

	t.Run("system randomness", func(t *testing.T) {
		sig, err := scheme.Sign(nil, quick, ring, pseudoOut, key)
		require.NoError(t, err)
		assert.True(t, scheme.Verify(quick, sig, ring, pseudoOut))
	})

	t.Run("failures", func(t *testing.T) {
		wrong := *key
		wrong.Secret = HashMessage("not the secret")
		forged, err := scheme.Sign(rand, quick, ring, pseudoOut, &wrong)
		require.NoError(t, err)
		assert.False(t, scheme.Verify(quick, forged, ring, pseudoOut), "with wrong secret")

		wrong = *key
		wrong.Mask = HashMessage("not the mask")
		forged, err = scheme.Sign(rand, quick, ring, pseudoOut, &wrong)
		require.NoError(t, err)
		assert.False(t, scheme.Verify(quick, forged, ring, pseudoOut), "with wrong mask")

		_, err = scheme.Sign(rand, quick, nil, pseudoOut, key)
		assert.ErrorIs(t, err, ringsig.ErrRingTooSmall)

		_, err = scheme.Sign(rand, quick, ring, pseudoOut, nil)
		assert.ErrorIs(t, err, ringsig.ErrSecretIndex)

		for _, index := range []int{-1, len(ring)} {
			wrong = *key
			wrong.Index = index
			_, err = scheme.Sign(rand, quick, ring, pseudoOut, &wrong)
			assert.ErrorIs(t, err, ringsig.ErrSecretIndex, "index %d", index)
		}

		var invalid ringsig.Key
		invalid[0] = 2
		_, err = scheme.Sign(rand, quick, ring, invalid, key)
		assert.ErrorIs(t, err, ringsig.ErrInvalidPoint)

		broken := append(ringsig.Ring(nil), ring...)
		broken[1].PublicKey = invalid
		_, err = scheme.Sign(rand, quick, broken, pseudoOut, key)
		assert.ErrorIs(t, err, ringsig.ErrInvalidPoint)

		_, err = scheme.Sign(failingReader{}, quick, ring, pseudoOut, key)
		assert.Error(t, err)
	})

	t.Run("truncated load", func(t *testing.T) {
		sigBytes := sig.Bytes()
		for _, cut := range []int{0, 3, 4, len(sigBytes) - 1} {
			_, err := scheme.LoadSignature(bytes.NewReader(sigBytes[:cut]))
			assert.ErrorIs(t, err, ringsig.ErrTruncated, "cut at %d", cut)
		}
		_, err := scheme.LoadSignature(bytes.NewReader([]byte{0, 0, 0, 0}))
		assert.ErrorIs(t, err, ringsig.ErrRingTooSmall)
		_, err = scheme.LoadSignature(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}))
		assert.ErrorIs(t, err, ringsig.ErrRingTooLarge)
	})
}

func benchmarkRing(b *testing.B, n int, twin bool) (ringsig.Ring, ringsig.Key, *ringsig.SpendKey) {
	ring, pseudoOut, key, err := GenerateRing(NewRandPRNG(1), n, n/2, twin)
	if err != nil {
		b.Fatalf("failed to generate ring: %v", err)
	}
	return ring, pseudoOut, key
}

// BenchmarkSign measures signing over a ring of n members.
func BenchmarkSign(b *testing.B, scheme ringsig.Scheme, twin bool, n int) {
	ring, pseudoOut, key := benchmarkRing(b, n, twin)
	message := HashMessage("sign")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheme.Sign(nil, message, ring, pseudoOut, key)
	}
}

// BenchmarkVerify measures verification over a ring of n members.
func BenchmarkVerify(b *testing.B, scheme ringsig.Scheme, twin bool, n int) {
	ring, pseudoOut, key := benchmarkRing(b, n, twin)
	message := HashMessage("verify")
	sig, err := scheme.Sign(nil, message, ring, pseudoOut, key)
	if err != nil {
		b.Fatalf("failed to sign message: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheme.Verify(message, sig, ring, pseudoOut)
	}
}
