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

package clsag

import (
	"bytes"
	"io"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/internal/genutil"
	"github.com/mxhess/salvium-rs-sub001/internal/rsutil"
)

// Signature is a CLSAG signature. I is the key image and D the commitment
// image divided by 8.
//
// The full encoding is
//
//	[n u32 LE][s₀ … sₙ₋₁][c1][I][D]
//
// and the transaction-embedded encoding omits the ring size and the key
// image:
//
//	[s₀ … sₙ₋₁][c1][D]
type Signature struct {
	S  []ringsig.Key
	C1 ringsig.Key
	I  ringsig.Key
	D  ringsig.Key
}

// Size returns the length of the full encoding for a ring of n members.
func Size(n int) int { return rsutil.HeaderSize + (n+3)*ringsig.KeySize }

// PrunableSize returns the length of the transaction-embedded encoding.
func PrunableSize(n int) int { return (n + 2) * ringsig.KeySize }

func (sig *Signature) RingSize() int                { return len(sig.S) }
func (sig *Signature) KeyImage() ringsig.Key        { return sig.I }
func (sig *Signature) CommitmentImage() ringsig.Key { return sig.D }

func (sig *Signature) WriteTo(w io.Writer) (n int64, err error) {
	bw := genutil.NewWriter(w)
	bw.Uint32(uint32(len(sig.S)))
	for i := range sig.S {
		bw.Key(sig.S[i])
	}
	bw.Key(sig.C1)
	bw.Key(sig.I)
	bw.Key(sig.D)
	return bw.Count(), bw.Err()
}

func (sig *Signature) Bytes() []byte { return genutil.ConvertToBytes(sig) }

// PrunableBytes returns the transaction-embedded encoding.
func (sig *Signature) PrunableBytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, PrunableSize(len(sig.S))))
	bw := genutil.NewWriter(buf)
	for i := range sig.S {
		bw.Key(sig.S[i])
	}
	bw.Key(sig.C1)
	bw.Key(sig.D)
	return buf.Bytes()
}

// ParseSignature decodes the full encoding. The buffer must hold exactly one
// signature.
func ParseSignature(b []byte) (*Signature, error) {
	if _, err := rsutil.CheckEncoding(b, 1, 3); err != nil {
		return nil, err
	}
	return LoadSignature(bytes.NewReader(b))
}

// LoadSignature reads one full encoding from r.
func LoadSignature(r io.Reader) (*Signature, error) {
	br := genutil.NewReader(r)
	n := br.Uint32()
	if err := br.Err(); err != nil {
		return nil, rsutil.ReadError(err)
	}
	if err := rsutil.CheckRingSize(n); err != nil {
		return nil, err
	}
	sig := &Signature{S: make([]ringsig.Key, n)}
	for i := range sig.S {
		sig.S[i] = br.Key()
	}
	sig.C1 = br.Key()
	sig.I = br.Key()
	sig.D = br.Key()
	if err := br.Err(); err != nil {
		return nil, rsutil.ReadError(err)
	}
	return sig, nil
}

// ParsePrunable decodes the transaction-embedded encoding of a signature over
// a ring of n members, taking the key image from the transaction prefix.
func ParsePrunable(b []byte, n int, keyImage ringsig.Key) (*Signature, error) {
	if err := rsutil.CheckPrunable(b, n, 1, 2); err != nil {
		return nil, err
	}
	br := genutil.NewReader(bytes.NewReader(b))
	sig := &Signature{S: make([]ringsig.Key, n), I: keyImage}
	for i := range sig.S {
		sig.S[i] = br.Key()
	}
	sig.C1 = br.Key()
	sig.D = br.Key()
	if err := br.Err(); err != nil {
		return nil, rsutil.ReadError(err)
	}
	return sig, nil
}
