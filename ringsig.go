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
	"encoding/hex"
	"io"
)

// KeySize is the length of every point and scalar encoding.
const KeySize = 32

// MaxRingSize bounds the ring size accepted when decoding signatures, so a
// hostile length prefix cannot force a large allocation.
const MaxRingSize = 1024

// Key is the 32-byte encoding of a curve point or a scalar.
type Key [KeySize]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// KeyFromHex parses a 64-character hex string.
func KeyFromHex(s string) (Key, error) {
	var k Key
	b, err := hex.DecodeString(s)
	if err != nil {
		return k, err
	}
	if len(b) != KeySize {
		return k, ErrInvalidKeyLength
	}
	copy(k[:], b)
	return k, nil
}

// Exportable represents a type that can be encoded into a binary stream. They
// can be written to a Writer or transformed directly into bytes.
type Exportable interface {
	io.WriterTo
	Bytes() []byte
}

// RingMember is one output referenced by a transaction input: its one-time
// public key and the Pedersen commitment to its amount.
type RingMember struct {
	PublicKey  Key
	Commitment Key
}

// Ring is an ordered list of ring members. Signer and verifier must use the
// same order.
type Ring []RingMember

// PublicKeys returns the public keys of the ring in order.
func (r Ring) PublicKeys() []Key {
	keys := make([]Key, len(r))
	for i, m := range r {
		keys[i] = m.PublicKey
	}
	return keys
}

// Commitments returns the amount commitments of the ring in order.
func (r Ring) Commitments() []Key {
	keys := make([]Key, len(r))
	for i, m := range r {
		keys[i] = m.Commitment
	}
	return keys
}

// SpendKey is the secret material for spending the ring member at Index.
//
// Secret is the G component of the one-time private key. Twin is the T
// component, used only by twin-key schemes. Mask is the difference between
// the real output's commitment mask and the pseudo-output's mask.
type SpendKey struct {
	Index  int
	Secret Key
	Twin   Key
	Mask   Key
}

// Signature represents a linkable ring signature over one transaction input.
type Signature interface {
	Exportable

	// RingSize returns the number of ring members the signature covers.
	RingSize() int
	// KeyImage returns the linking tag of the signer's key.
	KeyImage() Key
	// CommitmentImage returns the commitment key image, divided by 8.
	CommitmentImage() Key
}

// Scheme represents a linkable ring signature scheme.
//
// Signatures are generated using the Sign method. The ring must have at least
// one member and key.Index must identify the member whose secret key is
// supplied. Randomness is drawn from rand; a nil reader selects crypto/rand.
//
// Signatures are verified using the Verify method against the same message,
// ring and pseudo-output commitment used for signing. Verify returns false for
// any malformed or forged input and never panics.
//
// Signatures are restored from their binary form with LoadSignature.
type Scheme interface {
	Name() string

	Sign(rand io.Reader, message Key, ring Ring, pseudoOut Key, key *SpendKey) (Signature, error)
	Verify(message Key, signature Signature, ring Ring, pseudoOut Key) bool

	LoadSignature(io.Reader) (Signature, error)
}
