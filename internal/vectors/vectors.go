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

// Package vectors generates and checks cross-implementation test vectors.
//
// A vector is fully determined by its scheme, seed, ring size, secret index
// and message: the seed drives a Keccak counter stream that supplies the
// ring's keys and masks and then the signing nonces, so any implementation
// that consumes randomness in the same order reproduces the signature bytes.
package vectors

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/clsag"
	"github.com/mxhess/salvium-rs-sub001/curve"
	"github.com/mxhess/salvium-rs-sub001/internal/rsutil"
	"github.com/mxhess/salvium-rs-sub001/tclsag"
)

var (
	ErrUnknownScheme = errors.New("vectors: unknown scheme")
	ErrMismatch      = errors.New("vectors: mismatch")
)

// Member is a ring member in hex.
type Member struct {
	PublicKey  string `json:"public_key"`
	Commitment string `json:"commitment"`
}

// Vector is one signing case and its expected outputs. Keys and the
// signature are hex encoded; Message is the preimage of the signed hash.
type Vector struct {
	Scheme          string   `json:"scheme"`
	Seed            string   `json:"seed"`
	Message         string   `json:"message"`
	SecretIndex     int      `json:"secret_index"`
	Ring            []Member `json:"ring"`
	PseudoOut       string   `json:"pseudo_out"`
	SecretX         string   `json:"secret_x"`
	SecretY         string   `json:"secret_y"`
	Mask            string   `json:"mask"`
	KeyImage        string   `json:"key_image"`
	CommitmentImage string   `json:"commitment_image"`
	Signature       string   `json:"signature"`
}

type schemeEntry struct {
	scheme ringsig.Scheme
	twin   bool
	parse  func([]byte) (ringsig.Signature, error)
}

var schemes = map[string]schemeEntry{
	"clsag": {clsag.New(), false, func(b []byte) (ringsig.Signature, error) {
		sig, err := clsag.ParseSignature(b)
		if err != nil {
			return nil, err
		}
		return sig, nil
	}},
	"tclsag": {tclsag.New(), true, func(b []byte) (ringsig.Signature, error) {
		sig, err := tclsag.ParseSignature(b)
		if err != nil {
			return nil, err
		}
		return sig, nil
	}},
}

func lookup(name string) (schemeEntry, error) {
	e, ok := schemes[name]
	if !ok {
		return e, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	return e, nil
}

type stream struct {
	seed    []byte
	counter uint64
	buf     []byte
}

// NewStream returns the deterministic byte stream
// keccak(seed ‖ le64(0)) ‖ keccak(seed ‖ le64(1)) ‖ …
func NewStream(seed []byte) io.Reader {
	return &stream{seed: append([]byte(nil), seed...)}
}

func (s *stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.buf) == 0 {
			var ctr [8]byte
			binary.LittleEndian.PutUint64(ctr[:], s.counter)
			s.counter++
			block := curve.Keccak256(s.seed, ctr[:])
			s.buf = block[:]
		}
		c := copy(p[n:], s.buf)
		s.buf = s.buf[c:]
		n += c
	}
	return n, nil
}

// Generate builds the vector for the given parameters.
func Generate(scheme, seed string, n, index int, message string) (*Vector, error) {
	e, err := lookup(scheme)
	if err != nil {
		return nil, err
	}
	rand := NewStream([]byte(seed))
	ring, pseudoOut, key, err := rsutil.GenerateRing(rand, n, index, e.twin)
	if err != nil {
		return nil, fmt.Errorf("vectors: ring: %w", err)
	}
	sig, err := e.scheme.Sign(rand, curve.Keccak256([]byte(message)), ring, pseudoOut, key)
	if err != nil {
		return nil, fmt.Errorf("vectors: sign: %w", err)
	}

	v := &Vector{
		Scheme:          scheme,
		Seed:            seed,
		Message:         message,
		SecretIndex:     index,
		Ring:            make([]Member, n),
		PseudoOut:       pseudoOut.String(),
		SecretX:         key.Secret.String(),
		Mask:            key.Mask.String(),
		KeyImage:        sig.KeyImage().String(),
		CommitmentImage: sig.CommitmentImage().String(),
		Signature:       hex.EncodeToString(sig.Bytes()),
	}
	if e.twin {
		v.SecretY = key.Twin.String()
	}
	for i, m := range ring {
		v.Ring[i] = Member{PublicKey: m.PublicKey.String(), Commitment: m.Commitment.String()}
	}
	return v, nil
}

func (v *Vector) decodeRing() (ringsig.Ring, error) {
	ring := make(ringsig.Ring, len(v.Ring))
	for i, m := range v.Ring {
		var err error
		if ring[i].PublicKey, err = ringsig.KeyFromHex(m.PublicKey); err != nil {
			return nil, fmt.Errorf("ring member %d public key: %w", i, err)
		}
		if ring[i].Commitment, err = ringsig.KeyFromHex(m.Commitment); err != nil {
			return nil, fmt.Errorf("ring member %d commitment: %w", i, err)
		}
	}
	return ring, nil
}

// Check verifies v's signature, confirms it fails against another message,
// and regenerates v from its parameters to compare every output.
func Check(v *Vector) error {
	e, err := lookup(v.Scheme)
	if err != nil {
		return err
	}
	ring, err := v.decodeRing()
	if err != nil {
		return fmt.Errorf("vectors: %s: %w", v.Seed, err)
	}
	pseudoOut, err := ringsig.KeyFromHex(v.PseudoOut)
	if err != nil {
		return fmt.Errorf("vectors: %s: pseudo-output: %w", v.Seed, err)
	}
	raw, err := hex.DecodeString(v.Signature)
	if err != nil {
		return fmt.Errorf("vectors: %s: signature: %w", v.Seed, err)
	}
	sig, err := e.parse(raw)
	if err != nil {
		return fmt.Errorf("vectors: %s: signature: %w", v.Seed, err)
	}

	message := curve.Keccak256([]byte(v.Message))
	if !e.scheme.Verify(message, sig, ring, pseudoOut) {
		return fmt.Errorf("%w: %s: signature does not verify", ErrMismatch, v.Seed)
	}
	if e.scheme.Verify(curve.Keccak256([]byte("wrong")), sig, ring, pseudoOut) {
		return fmt.Errorf("%w: %s: signature verifies a different message", ErrMismatch, v.Seed)
	}
	if got := sig.KeyImage().String(); got != v.KeyImage {
		return fmt.Errorf("%w: %s: key image %s, want %s", ErrMismatch, v.Seed, got, v.KeyImage)
	}

	regenerated, err := Generate(v.Scheme, v.Seed, len(v.Ring), v.SecretIndex, v.Message)
	if err != nil {
		return err
	}
	for _, f := range []struct{ name, have, want string }{
		{"ring", fmt.Sprint(regenerated.Ring), fmt.Sprint(v.Ring)},
		{"pseudo-output", regenerated.PseudoOut, v.PseudoOut},
		{"secret", regenerated.SecretX, v.SecretX},
		{"twin secret", regenerated.SecretY, v.SecretY},
		{"mask", regenerated.Mask, v.Mask},
		{"commitment image", regenerated.CommitmentImage, v.CommitmentImage},
		{"signature", regenerated.Signature, v.Signature},
	} {
		if f.have != f.want {
			return fmt.Errorf("%w: %s: %s differs", ErrMismatch, v.Seed, f.name)
		}
	}
	return nil
}

// Load decodes a JSON array of vectors.
func Load(r io.Reader) ([]Vector, error) {
	var vs []Vector
	if err := json.NewDecoder(r).Decode(&vs); err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}
	return vs, nil
}

// LoadFile decodes the vectors stored at path.
func LoadFile(path string) ([]Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Write encodes vs as an indented JSON array.
func Write(w io.Writer, vs []Vector) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vs); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
