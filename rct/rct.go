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

// Package rct verifies the ring signatures of a RingCT transaction.
//
// Transactions carry each input's signature in its prunable form: the ring
// size follows from the input's ring and the key image from the transaction
// prefix. The RingCT type selects the scheme.
package rct

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ringsig "github.com/mxhess/salvium-rs-sub001"
	"github.com/mxhess/salvium-rs-sub001/clsag"
	"github.com/mxhess/salvium-rs-sub001/curve"
	"github.com/mxhess/salvium-rs-sub001/tclsag"
)

// Type is a RingCT signature type.
type Type uint8

const (
	TypeCLSAG           Type = 5
	TypeBulletproofPlus Type = 6
	TypeFullProofs      Type = 7
	TypeSalviumZero     Type = 8
	TypeSalviumOne      Type = 9
)

func (t Type) String() string {
	switch t {
	case TypeCLSAG:
		return "CLSAG"
	case TypeBulletproofPlus:
		return "BulletproofPlus"
	case TypeFullProofs:
		return "FullProofs"
	case TypeSalviumZero:
		return "SalviumZero"
	case TypeSalviumOne:
		return "SalviumOne"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Twin reports whether inputs of this type carry TCLSAG signatures.
func (t Type) Twin() bool { return t == TypeSalviumOne }

func (t Type) supported() bool { return t >= TypeCLSAG && t <= TypeSalviumOne }

var (
	ErrUnsupportedType  = errors.New("rct: unsupported signature type")
	ErrNoInputs         = errors.New("rct: transaction has no inputs")
	ErrInvalidSignature = ringsig.ErrInvalidSignature
)

// InputError reports the input that failed verification. It matches
// ErrInvalidSignature under errors.Is and unwraps to the cause.
type InputError struct {
	Index int
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("rct: input %d: %v", e.Index, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

func (e *InputError) Is(target error) bool { return target == ErrInvalidSignature }

// Input is one transaction input as seen by the verifier.
type Input struct {
	Ring      ringsig.Ring
	KeyImage  ringsig.Key
	PseudoOut ringsig.Key
	Signature []byte // prunable form
}

// Transaction holds the parts of a transaction the signatures commit to.
type Transaction struct {
	Type                  Type
	PrefixHash            ringsig.Key
	Base                  []byte // serialized RingCT base
	BulletproofComponents []byte
	Inputs                []Input
}

// Message returns the hash every input signature of a transaction signs:
// keccak(prefixHash ‖ keccak(base) ‖ keccak(bulletproofComponents)).
func Message(prefixHash ringsig.Key, base, bulletproofComponents []byte) ringsig.Key {
	h1 := curve.Keccak256(base)
	h2 := curve.Keccak256(bulletproofComponents)
	return curve.Keccak256(prefixHash[:], h1[:], h2[:])
}

// SignatureSize returns the length of the prunable signature of one input
// with a ring of n members.
func SignatureSize(t Type, n int) int {
	if t.Twin() {
		return tclsag.PrunableSize(n)
	}
	return clsag.PrunableSize(n)
}

// SplitSignatures cuts the packed prunable signatures of count inputs, all
// with rings of n members, into one slice per input.
func SplitSignatures(t Type, n, count int, packed []byte) ([][]byte, error) {
	if !t.supported() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
	}
	if count <= 0 {
		return nil, ErrNoInputs
	}
	if n <= 0 {
		return nil, ringsig.ErrRingTooSmall
	}
	if n > ringsig.MaxRingSize {
		return nil, ringsig.ErrRingTooLarge
	}
	size := SignatureSize(t, n)
	switch {
	case len(packed)/size < count:
		return nil, ringsig.ErrTruncated
	case len(packed) != size*count:
		return nil, ringsig.ErrTrailingBytes
	}
	sigs := make([][]byte, count)
	for i := range sigs {
		sigs[i] = packed[i*size : (i+1)*size : (i+1)*size]
	}
	return sigs, nil
}

// Verifier checks the input signatures of transactions.
type Verifier struct {
	log         *zap.Logger
	concurrency int
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger rejected inputs are reported to.
func WithLogger(log *zap.Logger) Option {
	return func(v *Verifier) {
		if log != nil {
			v.log = log
		}
	}
}

// WithConcurrency bounds the number of inputs verified at once.
func WithConcurrency(n int) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

// NewVerifier returns a Verifier. By default it logs nothing and verifies up
// to GOMAXPROCS inputs at once.
func NewVerifier(opts ...Option) *Verifier {
	v := &Verifier{
		log:         zap.NewNop(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyTransaction verifies every input of tx against its RingCT message.
func (v *Verifier) VerifyTransaction(ctx context.Context, tx *Transaction) error {
	message := Message(tx.PrefixHash, tx.Base, tx.BulletproofComponents)
	return v.VerifyInputs(ctx, tx.Type, message, tx.Inputs)
}

// VerifyInputs verifies the signatures of inputs over message. Inputs are
// checked concurrently; when several fail, the error names the lowest index.
// A failing input is reported as an *InputError.
func (v *Verifier) VerifyInputs(ctx context.Context, t Type, message ringsig.Key, inputs []Input) error {
	if !t.supported() {
		return fmt.Errorf("%w: %v", ErrUnsupportedType, t)
	}
	if len(inputs) == 0 {
		return ErrNoInputs
	}

	results := make([]error, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = verifyInput(t, message, &inputs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, err := range results {
		if err != nil {
			v.log.Debug("rejected input",
				zap.Stringer("type", t),
				zap.Int("input", i),
				zap.Int("ringSize", len(inputs[i].Ring)),
				zap.Error(err),
			)
			return &InputError{Index: i, Err: err}
		}
	}
	return nil
}

func verifyInput(t Type, message ringsig.Key, in *Input) error {
	n := len(in.Ring)
	if t.Twin() {
		sig, err := tclsag.ParsePrunable(in.Signature, n, in.KeyImage)
		if err != nil {
			return err
		}
		return tclsag.Check(message, sig, in.Ring, in.PseudoOut)
	}
	sig, err := clsag.ParsePrunable(in.Signature, n, in.KeyImage)
	if err != nil {
		return err
	}
	return clsag.Check(message, sig, in.Ring, in.PseudoOut)
}
