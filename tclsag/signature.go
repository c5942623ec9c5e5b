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

package tclsag

import (
	"bytes"
	"io"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/internal/genutil"
	"github.com/mxhess/salvium-rs-sub001/internal/rsutil"
)

// Signature is a TCLSAG signature: Sx holds the G responses and Sy the T
// responses. I is the key image and D the commitment image divided by 8.
//
// The full encoding is
//
//	[n u32 LE][sx₀ … sxₙ₋₁][sy₀ … syₙ₋₁][c1][I][D]
//
// and the transaction-embedded encoding drops the ring size and I.
type Signature struct {
	Sx []ringsig.Key
	Sy []ringsig.Key
	C1 ringsig.Key
	I  ringsig.Key
	D  ringsig.Key
}

// Size returns the length of the full encoding for a ring of n members.
func Size(n int) int { return rsutil.HeaderSize + (2*n+3)*ringsig.KeySize }

// PrunableSize returns the length of the transaction-embedded encoding.
func PrunableSize(n int) int { return (2*n + 2) * ringsig.KeySize }

func (sig *Signature) RingSize() int                { return len(sig.Sx) }
func (sig *Signature) KeyImage() ringsig.Key        { return sig.I }
func (sig *Signature) CommitmentImage() ringsig.Key { return sig.D }

func (sig *Signature) writeResponses(bw *genutil.Writer) {
	for i := range sig.Sx {
		bw.Key(sig.Sx[i])
	}
	for i := range sig.Sy {
		bw.Key(sig.Sy[i])
	}
}

func (sig *Signature) WriteTo(w io.Writer) (n int64, err error) {
	bw := genutil.NewWriter(w)
	bw.Uint32(uint32(len(sig.Sx)))
	sig.writeResponses(bw)
	bw.Key(sig.C1)
	bw.Key(sig.I)
	bw.Key(sig.D)
	return bw.Count(), bw.Err()
}

func (sig *Signature) Bytes() []byte { return genutil.ConvertToBytes(sig) }

// PrunableBytes returns the transaction-embedded encoding.
func (sig *Signature) PrunableBytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, PrunableSize(len(sig.Sx))))
	bw := genutil.NewWriter(buf)
	sig.writeResponses(bw)
	bw.Key(sig.C1)
	bw.Key(sig.D)
	return buf.Bytes()
}

// ParseSignature decodes the full encoding. The buffer must hold exactly one
// signature.
func ParseSignature(b []byte) (*Signature, error) {
	if _, err := rsutil.CheckEncoding(b, 2, 3); err != nil {
		return nil, err
	}
	return LoadSignature(bytes.NewReader(b))
}

func readResponses(br *genutil.Reader, n int) (sx, sy []ringsig.Key) {
	sx = make([]ringsig.Key, n)
	sy = make([]ringsig.Key, n)
	for i := range sx {
		sx[i] = br.Key()
	}
	for i := range sy {
		sy[i] = br.Key()
	}
	return
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
	sig := &Signature{}
	sig.Sx, sig.Sy = readResponses(br, int(n))
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
	if err := rsutil.CheckPrunable(b, n, 2, 2); err != nil {
		return nil, err
	}
	br := genutil.NewReader(bytes.NewReader(b))
	sig := &Signature{I: keyImage}
	sig.Sx, sig.Sy = readResponses(br, n)
	sig.C1 = br.Key()
	sig.D = br.Key()
	if err := br.Err(); err != nil {
		return nil, rsutil.ReadError(err)
	}
	return sig, nil
}
